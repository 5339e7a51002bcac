package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mandaniainarandriambinintsoa/Factupro/internal/domain"
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/entity"
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implémentation de CompanyRepository (pool ou tx).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

const companyColumns = `id, user_id, name, address, email, phone, logo_url,
		fiscal_region, fiscal_nif, fiscal_stat, fiscal_siret, fiscal_tva_number,
		iban, bic, default_currency, default_payment_method, invoice_prefix, quote_prefix,
		is_default, notes, created_at, updated_at`

func scanCompany(row pgx.Row) (*entity.Company, error) {
	var c entity.Company
	err := row.Scan(
		&c.ID, &c.UserID, &c.Name, &c.Address, &c.Email, &c.Phone, &c.LogoURL,
		&c.Fiscal.Region, &c.Fiscal.NIF, &c.Fiscal.Stat, &c.Fiscal.Siret, &c.Fiscal.TVANumber,
		&c.IBAN, &c.BIC, &c.DefaultCurrency, &c.DefaultPaymentMethod, &c.InvoicePrefix, &c.QuotePrefix,
		&c.IsDefault, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un nouveau profil société.
func (r *CompanyRepo) Create(company *entity.Company) error {
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`
	_, err := r.q.Exec(context.Background(), query,
		company.ID, company.UserID, company.Name, company.Address, company.Email, company.Phone, company.LogoURL,
		company.Fiscal.Region, company.Fiscal.NIF, company.Fiscal.Stat, company.Fiscal.Siret, company.Fiscal.TVANumber,
		company.IBAN, company.BIC, company.DefaultCurrency, company.DefaultPaymentMethod,
		company.InvoicePrefix, company.QuotePrefix,
		company.IsDefault, company.Notes, company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtient un profil société par ID.
func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	c, err := scanCompany(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

// GetDefaultByUser obtient le profil société par défaut du propriétaire, ou
// (nil, nil) s'il n'en a désigné aucun.
func (r *CompanyRepo) GetDefaultByUser(userID string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies
		WHERE user_id = $1 AND is_default LIMIT 1`
	c, err := scanCompany(r.q.QueryRow(context.Background(), query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get default company: %w", err)
	}
	return c, nil
}

// ListByUser liste les profils sociétés du propriétaire avec pagination.
func (r *CompanyRepo) ListByUser(userID string, limit, offset int) ([]*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies
		WHERE user_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()
	var list []*entity.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update met à jour un profil société.
func (r *CompanyRepo) Update(company *entity.Company) error {
	query := `
		UPDATE companies SET name = $2, address = $3, email = $4, phone = $5, logo_url = $6,
			fiscal_region = $7, fiscal_nif = $8, fiscal_stat = $9, fiscal_siret = $10, fiscal_tva_number = $11,
			iban = $12, bic = $13, default_currency = $14, default_payment_method = $15,
			invoice_prefix = $16, quote_prefix = $17, is_default = $18, notes = $19, updated_at = $20
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		company.ID, company.Name, company.Address, company.Email, company.Phone, company.LogoURL,
		company.Fiscal.Region, company.Fiscal.NIF, company.Fiscal.Stat, company.Fiscal.Siret, company.Fiscal.TVANumber,
		company.IBAN, company.BIC, company.DefaultCurrency, company.DefaultPaymentMethod,
		company.InvoicePrefix, company.QuotePrefix, company.IsDefault, company.Notes, company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// ClearDefault retire le marqueur société par défaut de tous les profils du
// propriétaire.
func (r *CompanyRepo) ClearDefault(userID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE companies SET is_default = FALSE WHERE user_id = $1 AND is_default`, userID)
	if err != nil {
		return fmt.Errorf("clear default company: %w", err)
	}
	return nil
}

// Delete supprime un profil société par ID.
func (r *CompanyRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	return nil
}
