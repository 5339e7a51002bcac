package repository

import "github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/entity"

// QuoteRepository persistance des devis.
type QuoteRepository interface {
	Create(quote *entity.Quote) error
	GetByID(id string) (*entity.Quote, error)
	ListByUser(userID string, limit, offset int) ([]*entity.Quote, error)
	CountByUser(userID string) (int, error)
	UpdateStatus(id, status string) error
	UpdatePDF(id, pdfBase64 string) error
	Delete(id string) error
}
