package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/mandaniainarandriambinintsoa/Factupro/internal/application/dto"
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/domain"
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/entity"
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/repository"
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/validation"
)

// ClientUseCase cas d'usage des profils clients réutilisables.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construit le cas d'usage.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// validateClient applique les validateurs dans un ordre fixe — « première
// erreur gagne », le même corps invalide rapporte toujours le même message.
func validateClient(in dto.ClientRequest, f entity.FiscalInfo) validation.Result {
	return validation.Combine(
		validation.ValidateRequired(in.Name, "Nom"),
		validation.ValidateEmail(in.Email),
		validation.ValidatePhone(in.Phone),
		validation.ValidateSiret(f.Siret),
		validation.ValidateVatNumber(f.TVANumber),
		validation.ValidateNif(f.NIF),
		validation.ValidateStat(f.Stat),
	)
}

// Create valide puis persiste un nouveau profil client.
func (uc *ClientUseCase) Create(userID string, in dto.ClientRequest) (*dto.ClientResponse, error) {
	f := fiscalFromDTO(in.FiscalInfo)
	if r := validateClient(in, f); !r.IsValid {
		return nil, domain.NewValidationError(r.Error)
	}
	now := time.Now()
	client := &entity.Client{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        in.Name,
		Email:       in.Email,
		Address:     in.Address,
		Phone:       in.Phone,
		CompanyName: in.CompanyName,
		Notes:       in.Notes,
		Fiscal:      f,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetByID retourne un profil client du propriétaire.
func (uc *ClientUseCase) GetByID(userID, id string) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if client.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return toClientResponse(client), nil
}

// List liste les profils clients du propriétaire.
func (uc *ClientUseCase) List(userID string, page dto.PageRequest) ([]*dto.ClientResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByUser(userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toClientResponse(c))
	}
	return out, nil
}

// Search recherche par nom ou email (sous-chaîne, insensible à la casse).
func (uc *ClientUseCase) Search(userID, query string, limit int) ([]*dto.ClientResponse, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	list, err := uc.repo.SearchByUser(userID, query, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toClientResponse(c))
	}
	return out, nil
}

// Update valide puis met à jour un profil client du propriétaire.
// Les documents déjà créés depuis ce profil ne sont pas retouchés (copie par
// valeur à la création).
func (uc *ClientUseCase) Update(userID, id string, in dto.ClientRequest) (*dto.ClientResponse, error) {
	existing, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	if existing.UserID != userID {
		return nil, domain.ErrForbidden
	}
	f := fiscalFromDTO(in.FiscalInfo)
	if r := validateClient(in, f); !r.IsValid {
		return nil, domain.NewValidationError(r.Error)
	}
	existing.Name = in.Name
	existing.Email = in.Email
	existing.Address = in.Address
	existing.Phone = in.Phone
	existing.CompanyName = in.CompanyName
	existing.Notes = in.Notes
	existing.Fiscal = f
	existing.UpdatedAt = time.Now()
	if err := uc.repo.Update(existing); err != nil {
		return nil, err
	}
	return toClientResponse(existing), nil
}

// Delete supprime un profil client du propriétaire.
func (uc *ClientUseCase) Delete(userID, id string) error {
	existing, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	if existing.UserID != userID {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(id)
}
