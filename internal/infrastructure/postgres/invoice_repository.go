package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mandaniainarandriambinintsoa/Factupro/internal/domain"
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/entity"
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implémentation de InvoiceRepository (pool ou tx). Les lignes
// d'articles sont stockées en JSONB : elles sont toujours lues et écrites en
// bloc avec leur document, jamais requêtées individuellement.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, user_id, number, date, due_date, currency, payment_method,
		company_name, company_address, company_email, company_phone, logo_url,
		company_fiscal_region, company_fiscal_nif, company_fiscal_stat, company_fiscal_siret, company_fiscal_tva_number,
		client_name, client_address, client_email, client_phone,
		client_fiscal_region, client_fiscal_nif, client_fiscal_stat, client_fiscal_siret, client_fiscal_tva_number,
		items, total, status, notes, pdf_base64, created_at, updated_at`

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var items []byte
	err := row.Scan(
		&inv.ID, &inv.UserID, &inv.Number, &inv.Date, &inv.DueDate, &inv.Currency, &inv.PaymentMethod,
		&inv.CompanyName, &inv.CompanyAddress, &inv.CompanyEmail, &inv.CompanyPhone, &inv.LogoURL,
		&inv.CompanyFiscal.Region, &inv.CompanyFiscal.NIF, &inv.CompanyFiscal.Stat,
		&inv.CompanyFiscal.Siret, &inv.CompanyFiscal.TVANumber,
		&inv.ClientName, &inv.ClientAddress, &inv.ClientEmail, &inv.ClientPhone,
		&inv.ClientFiscal.Region, &inv.ClientFiscal.NIF, &inv.ClientFiscal.Stat,
		&inv.ClientFiscal.Siret, &inv.ClientFiscal.TVANumber,
		&items, &inv.Total, &inv.Status, &inv.Notes, &inv.PDFBase64, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &inv.Items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return &inv, nil
}

// Create persiste une nouvelle facture.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	items, err := json.Marshal(invoice.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
			$18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33)`
	_, err = r.q.Exec(context.Background(), query,
		invoice.ID, invoice.UserID, invoice.Number, invoice.Date, invoice.DueDate,
		invoice.Currency, invoice.PaymentMethod,
		invoice.CompanyName, invoice.CompanyAddress, invoice.CompanyEmail, invoice.CompanyPhone, invoice.LogoURL,
		invoice.CompanyFiscal.Region, invoice.CompanyFiscal.NIF, invoice.CompanyFiscal.Stat,
		invoice.CompanyFiscal.Siret, invoice.CompanyFiscal.TVANumber,
		invoice.ClientName, invoice.ClientAddress, invoice.ClientEmail, invoice.ClientPhone,
		invoice.ClientFiscal.Region, invoice.ClientFiscal.NIF, invoice.ClientFiscal.Stat,
		invoice.ClientFiscal.Siret, invoice.ClientFiscal.TVANumber,
		items, invoice.Total, invoice.Status, invoice.Notes, invoice.PDFBase64,
		invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID obtient une facture par ID.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// ListByUser liste les factures du propriétaire, les plus récentes d'abord.
func (r *InvoiceRepo) ListByUser(userID string, limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices
		WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// CountByUser compte les factures du propriétaire.
func (r *InvoiceRepo) CountByUser(userID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM invoices WHERE user_id = $1`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return n, nil
}

// UpdateStatus change le statut d'une facture.
func (r *InvoiceRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE invoices SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	return nil
}

// UpdatePDF met en cache le rendu PDF encodé en base64.
func (r *InvoiceRepo) UpdatePDF(id, pdfBase64 string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE invoices SET pdf_base64 = $2 WHERE id = $1`, id, pdfBase64)
	if err != nil {
		return fmt.Errorf("update invoice pdf: %w", err)
	}
	return nil
}

// Delete supprime une facture par ID.
func (r *InvoiceRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}
