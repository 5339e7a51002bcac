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

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implémentation de ClientRepository (pool ou tx). Les identifiants
// fiscaux sont aplatis en colonnes dédiées, jamais en JSON : le bloc est petit,
// fermé et filtrable.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `id, user_id, name, email, address, phone, company_name, notes,
		fiscal_region, fiscal_nif, fiscal_stat, fiscal_siret, fiscal_tva_number,
		created_at, updated_at`

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(
		&c.ID, &c.UserID, &c.Name, &c.Email, &c.Address, &c.Phone, &c.CompanyName, &c.Notes,
		&c.Fiscal.Region, &c.Fiscal.NIF, &c.Fiscal.Stat, &c.Fiscal.Siret, &c.Fiscal.TVANumber,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un nouveau profil client.
func (r *ClientRepo) Create(client *entity.Client) error {
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.UserID, client.Name, client.Email, client.Address, client.Phone,
		client.CompanyName, client.Notes,
		client.Fiscal.Region, client.Fiscal.NIF, client.Fiscal.Stat, client.Fiscal.Siret, client.Fiscal.TVANumber,
		client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtient un profil client par ID.
func (r *ClientRepo) GetByID(id string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	c, err := scanClient(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// ListByUser liste les profils clients du propriétaire avec pagination.
func (r *ClientRepo) ListByUser(userID string, limit, offset int) ([]*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients
		WHERE user_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// SearchByUser recherche par nom ou email, sous-chaîne insensible à la casse.
func (r *ClientRepo) SearchByUser(userID, query string, limit int) ([]*entity.Client, error) {
	sql := `SELECT ` + clientColumns + ` FROM clients
		WHERE user_id = $1 AND (name ILIKE '%' || $2 || '%' OR email ILIKE '%' || $2 || '%')
		ORDER BY name LIMIT $3`
	rows, err := r.q.Query(context.Background(), sql, userID, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update met à jour un profil client.
func (r *ClientRepo) Update(client *entity.Client) error {
	query := `
		UPDATE clients SET name = $2, email = $3, address = $4, phone = $5,
			company_name = $6, notes = $7,
			fiscal_region = $8, fiscal_nif = $9, fiscal_stat = $10, fiscal_siret = $11, fiscal_tva_number = $12,
			updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.Name, client.Email, client.Address, client.Phone,
		client.CompanyName, client.Notes,
		client.Fiscal.Region, client.Fiscal.NIF, client.Fiscal.Stat, client.Fiscal.Siret, client.Fiscal.TVANumber,
		client.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

// Delete supprime un profil client par ID.
func (r *ClientRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}
