package repository

import "github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/entity"

// InvoiceRepository persistance des factures.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	ListByUser(userID string, limit, offset int) ([]*entity.Invoice, error)
	CountByUser(userID string) (int, error)
	UpdateStatus(id, status string) error
	UpdatePDF(id, pdfBase64 string) error
	Delete(id string) error
}
