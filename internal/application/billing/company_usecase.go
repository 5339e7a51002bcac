package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/mandaniainarandriambinintsoa/Factupro/internal/application/dto"
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/domain"
	domainbilling "github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/billing"
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/entity"
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/fiscal"
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/repository"
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/validation"
)

// CompanyUseCase cas d'usage des profils émetteurs (sociétés).
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construit le cas d'usage.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// validateCompany applique le tronc commun puis les validateurs de la région
// sélectionnée (EU -> SIRET + TVA, MG -> NIF + STAT). L'email n'est contrôlé
// que s'il est renseigné : un profil société peut se créer sans email.
func validateCompany(in dto.CompanyRequest, f entity.FiscalInfo) validation.Result {
	results := []validation.Result{
		validation.ValidateRequired(in.Name, "Nom de la société"),
		validation.ValidatePhone(in.Phone),
		validation.ValidateIban(in.IBAN),
		validation.ValidateBic(in.BIC),
	}
	if in.Email != "" {
		results = append(results, validation.ValidateEmail(in.Email))
	}
	results = append(results, fiscal.ValidateInfo(f))
	return validation.Combine(results...)
}

func applyCompanyDefaults(c *entity.Company) {
	if c.DefaultCurrency == "" || !domainbilling.IsSupportedCurrency(c.DefaultCurrency) {
		c.DefaultCurrency = domainbilling.DefaultCurrency
	}
	if c.DefaultPaymentMethod == "" || !domainbilling.IsSupportedPaymentMethod(c.DefaultPaymentMethod) {
		c.DefaultPaymentMethod = domainbilling.PaymentMethods[0]
	}
	if c.InvoicePrefix == "" {
		c.InvoicePrefix = "FAC"
	}
	if c.QuotePrefix == "" {
		c.QuotePrefix = "DEV"
	}
}

// Create valide puis persiste un profil société. Si le profil est marqué par
// défaut, le marqueur est d'abord retiré des autres profils du propriétaire.
func (uc *CompanyUseCase) Create(userID string, in dto.CompanyRequest) (*dto.CompanyResponse, error) {
	f := fiscalFromDTO(in.FiscalInfo)
	if r := validateCompany(in, f); !r.IsValid {
		return nil, domain.NewValidationError(r.Error)
	}
	now := time.Now()
	company := &entity.Company{
		ID:                   uuid.New().String(),
		UserID:               userID,
		Name:                 in.Name,
		Address:              in.Address,
		Email:                in.Email,
		Phone:                in.Phone,
		LogoURL:              in.LogoURL,
		Fiscal:               f,
		IBAN:                 in.IBAN,
		BIC:                  in.BIC,
		DefaultCurrency:      in.DefaultCurrency,
		DefaultPaymentMethod: in.DefaultPaymentMethod,
		InvoicePrefix:        in.InvoicePrefix,
		QuotePrefix:          in.QuotePrefix,
		IsDefault:            in.IsDefault,
		Notes:                in.Notes,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	applyCompanyDefaults(company)
	if company.IsDefault {
		if err := uc.repo.ClearDefault(userID); err != nil {
			return nil, err
		}
	}
	if err := uc.repo.Create(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// GetByID retourne un profil société du propriétaire.
func (uc *CompanyUseCase) GetByID(userID, id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if company.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return toCompanyResponse(company), nil
}

// List liste les profils sociétés du propriétaire.
func (uc *CompanyUseCase) List(userID string, page dto.PageRequest) ([]*dto.CompanyResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByUser(userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCompanyResponse(c))
	}
	return out, nil
}

// Update valide puis met à jour un profil société du propriétaire.
func (uc *CompanyUseCase) Update(userID, id string, in dto.CompanyRequest) (*dto.CompanyResponse, error) {
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
	if r := validateCompany(in, f); !r.IsValid {
		return nil, domain.NewValidationError(r.Error)
	}
	existing.Name = in.Name
	existing.Address = in.Address
	existing.Email = in.Email
	existing.Phone = in.Phone
	existing.LogoURL = in.LogoURL
	existing.Fiscal = f
	existing.IBAN = in.IBAN
	existing.BIC = in.BIC
	existing.DefaultCurrency = in.DefaultCurrency
	existing.DefaultPaymentMethod = in.DefaultPaymentMethod
	existing.InvoicePrefix = in.InvoicePrefix
	existing.QuotePrefix = in.QuotePrefix
	existing.IsDefault = in.IsDefault
	existing.Notes = in.Notes
	existing.UpdatedAt = time.Now()
	applyCompanyDefaults(existing)
	if existing.IsDefault {
		if err := uc.repo.ClearDefault(userID); err != nil {
			return nil, err
		}
	}
	if err := uc.repo.Update(existing); err != nil {
		return nil, err
	}
	return toCompanyResponse(existing), nil
}

// Delete supprime un profil société du propriétaire.
func (uc *CompanyUseCase) Delete(userID, id string) error {
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
