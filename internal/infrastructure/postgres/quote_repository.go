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

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

// QuoteRepo implémentation de QuoteRepository (pool ou tx). Même schéma que
// les factures, avec une date de validité au lieu d'une échéance.
type QuoteRepo struct {
	q Querier
}

// NewQuoteRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewQuoteRepository(q Querier) *QuoteRepo {
	return &QuoteRepo{q: q}
}

const quoteColumns = `id, user_id, number, date, validity_date, currency, payment_method,
		company_name, company_address, company_email, company_phone, logo_url,
		company_fiscal_region, company_fiscal_nif, company_fiscal_stat, company_fiscal_siret, company_fiscal_tva_number,
		client_name, client_address, client_email, client_phone,
		client_fiscal_region, client_fiscal_nif, client_fiscal_stat, client_fiscal_siret, client_fiscal_tva_number,
		items, total, status, notes, pdf_base64, created_at, updated_at`

func scanQuote(row pgx.Row) (*entity.Quote, error) {
	var q entity.Quote
	var items []byte
	err := row.Scan(
		&q.ID, &q.UserID, &q.Number, &q.Date, &q.ValidityDate, &q.Currency, &q.PaymentMethod,
		&q.CompanyName, &q.CompanyAddress, &q.CompanyEmail, &q.CompanyPhone, &q.LogoURL,
		&q.CompanyFiscal.Region, &q.CompanyFiscal.NIF, &q.CompanyFiscal.Stat,
		&q.CompanyFiscal.Siret, &q.CompanyFiscal.TVANumber,
		&q.ClientName, &q.ClientAddress, &q.ClientEmail, &q.ClientPhone,
		&q.ClientFiscal.Region, &q.ClientFiscal.NIF, &q.ClientFiscal.Stat,
		&q.ClientFiscal.Siret, &q.ClientFiscal.TVANumber,
		&items, &q.Total, &q.Status, &q.Notes, &q.PDFBase64, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &q.Items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return &q, nil
}

// Create persiste un nouveau devis.
func (r *QuoteRepo) Create(quote *entity.Quote) error {
	items, err := json.Marshal(quote.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	query := `
		INSERT INTO quotes (` + quoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
			$18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33)`
	_, err = r.q.Exec(context.Background(), query,
		quote.ID, quote.UserID, quote.Number, quote.Date, quote.ValidityDate,
		quote.Currency, quote.PaymentMethod,
		quote.CompanyName, quote.CompanyAddress, quote.CompanyEmail, quote.CompanyPhone, quote.LogoURL,
		quote.CompanyFiscal.Region, quote.CompanyFiscal.NIF, quote.CompanyFiscal.Stat,
		quote.CompanyFiscal.Siret, quote.CompanyFiscal.TVANumber,
		quote.ClientName, quote.ClientAddress, quote.ClientEmail, quote.ClientPhone,
		quote.ClientFiscal.Region, quote.ClientFiscal.NIF, quote.ClientFiscal.Stat,
		quote.ClientFiscal.Siret, quote.ClientFiscal.TVANumber,
		items, quote.Total, quote.Status, quote.Notes, quote.PDFBase64,
		quote.CreatedAt, quote.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert quote: %w", err)
	}
	return nil
}

// GetByID obtient un devis par ID.
func (r *QuoteRepo) GetByID(id string) (*entity.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE id = $1`
	q, err := scanQuote(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quote: %w", err)
	}
	return q, nil
}

// ListByUser liste les devis du propriétaire, les plus récents d'abord.
func (r *QuoteRepo) ListByUser(userID string, limit, offset int) ([]*entity.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes
		WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		list = append(list, q)
	}
	return list, rows.Err()
}

// CountByUser compte les devis du propriétaire.
func (r *QuoteRepo) CountByUser(userID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM quotes WHERE user_id = $1`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count quotes: %w", err)
	}
	return n, nil
}

// UpdateStatus change le statut d'un devis.
func (r *QuoteRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE quotes SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update quote status: %w", err)
	}
	return nil
}

// UpdatePDF met en cache le rendu PDF encodé en base64.
func (r *QuoteRepo) UpdatePDF(id, pdfBase64 string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE quotes SET pdf_base64 = $2 WHERE id = $1`, id, pdfBase64)
	if err != nil {
		return fmt.Errorf("update quote pdf: %w", err)
	}
	return nil
}

// Delete supprime un devis par ID.
func (r *QuoteRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM quotes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}
	return nil
}
