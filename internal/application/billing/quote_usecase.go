package billing

import (
	"fmt"
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

// QuoteUseCase cas d'usage du cycle de vie des devis.
type QuoteUseCase struct {
	quotes    repository.QuoteRepository
	clients   repository.ClientRepository
	companies repository.CompanyRepository
}

// NewQuoteUseCase construit le cas d'usage.
func NewQuoteUseCase(
	quotes repository.QuoteRepository,
	clients repository.ClientRepository,
	companies repository.CompanyRepository,
) *QuoteUseCase {
	return &QuoteUseCase{quotes: quotes, clients: clients, companies: companies}
}

func applyCompanyProfileQuote(in *dto.CreateQuoteRequest, c *entity.Company) {
	if in.CompanyName == "" {
		in.CompanyName = c.Name
	}
	if in.CompanyAddress == "" {
		in.CompanyAddress = c.Address
	}
	if in.CompanyEmail == "" {
		in.CompanyEmail = c.Email
	}
	if in.CompanyPhone == "" {
		in.CompanyPhone = c.Phone
	}
	if in.LogoURL == "" {
		in.LogoURL = c.LogoURL
	}
	if in.FiscalInfo == nil {
		in.FiscalInfo = fiscalToDTO(c.Fiscal)
	}
	if in.Currency == "" {
		in.Currency = c.DefaultCurrency
	}
	if in.PaymentMethod == "" {
		in.PaymentMethod = c.DefaultPaymentMethod
	}
}

func applyClientProfileQuote(in *dto.CreateQuoteRequest, c *entity.Client) {
	if in.ClientName == "" {
		in.ClientName = c.Name
	}
	if in.ClientAddress == "" {
		in.ClientAddress = c.Address
	}
	if in.ClientEmail == "" {
		in.ClientEmail = c.Email
	}
	if in.ClientPhone == "" {
		in.ClientPhone = c.Phone
	}
	if in.ClientFiscalInfo == nil {
		in.ClientFiscalInfo = fiscalToDTO(c.Fiscal)
	}
}

func (uc *QuoteUseCase) resolveProfiles(userID string, in *dto.CreateQuoteRequest) error {
	if in.CompanyID != "" {
		company, err := uc.companies.GetByID(in.CompanyID)
		if err != nil {
			return err
		}
		if company == nil {
			return domain.ErrNotFound
		}
		if company.UserID != userID {
			return domain.ErrForbidden
		}
		applyCompanyProfileQuote(in, company)
	}
	if in.ClientID != "" {
		client, err := uc.clients.GetByID(in.ClientID)
		if err != nil {
			return err
		}
		if client == nil {
			return domain.ErrNotFound
		}
		if client.UserID != userID {
			return domain.ErrForbidden
		}
		applyClientProfileQuote(in, client)
	}
	return nil
}

// validateQuote valide le document assemblé. La date de validité est requise,
// contrairement à l'échéance de facture.
func validateQuote(in dto.CreateQuoteRequest, companyFiscal, clientFiscal entity.FiscalInfo, items []entity.LineItem) validation.Result {
	results := []validation.Result{
		validation.ValidateRequired(in.QuoteNumber, "Le numéro de devis"),
		validation.ValidateDate(in.QuoteDate, "La date du devis"),
		validation.ValidateDate(in.ValidityDate, "La date de validité"),
		validation.ValidateRequired(in.CompanyName, "Nom de la société"),
		validation.ValidateRequired(in.ClientName, "Le nom du client"),
	}
	if in.CompanyEmail != "" {
		results = append(results, validation.ValidateEmail(in.CompanyEmail))
	}
	if in.ClientEmail != "" {
		results = append(results, validation.ValidateEmail(in.ClientEmail))
	}
	results = append(results,
		validation.ValidatePhone(in.CompanyPhone),
		validation.ValidatePhone(in.ClientPhone),
		fiscal.ValidateInfo(companyFiscal),
		fiscal.ValidateInfo(clientFiscal),
		validation.ValidateLineItems(items),
	)
	return validation.Combine(results...)
}

// Create assemble, valide puis persiste un devis en brouillon.
func (uc *QuoteUseCase) Create(userID string, in dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	if err := uc.resolveProfiles(userID, &in); err != nil {
		return nil, err
	}
	if in.Currency == "" {
		in.Currency = domainbilling.DefaultCurrency
	}
	companyFiscal := fiscalFromDTO(in.FiscalInfo)
	clientFiscal := fiscalFromDTO(in.ClientFiscalInfo)
	items := itemsFromDTO(in.Items)
	if r := validateQuote(in, companyFiscal, clientFiscal, items); !r.IsValid {
		return nil, domain.NewValidationError(r.Error)
	}
	if !domainbilling.IsSupportedCurrency(in.Currency) {
		return nil, domain.NewValidationError("Devise non supportée")
	}
	date, err := validation.ParseDate(in.QuoteDate)
	if err != nil {
		return nil, domain.NewValidationError("La date du devis est invalide")
	}
	validity, err := validation.ParseDate(in.ValidityDate)
	if err != nil {
		return nil, domain.NewValidationError("La date de validité est invalide")
	}
	now := time.Now()
	quote := &entity.Quote{
		ID:             uuid.New().String(),
		UserID:         userID,
		Number:         in.QuoteNumber,
		Date:           date,
		ValidityDate:   validity,
		Currency:       in.Currency,
		PaymentMethod:  in.PaymentMethod,
		CompanyName:    in.CompanyName,
		CompanyAddress: in.CompanyAddress,
		CompanyEmail:   in.CompanyEmail,
		CompanyPhone:   in.CompanyPhone,
		LogoURL:        in.LogoURL,
		CompanyFiscal:  companyFiscal,
		ClientName:     in.ClientName,
		ClientAddress:  in.ClientAddress,
		ClientEmail:    in.ClientEmail,
		ClientPhone:    in.ClientPhone,
		ClientFiscal:   clientFiscal,
		Items:          items,
		Total:          domainbilling.SnapshotTotal(items),
		Status:         entity.QuoteStatusDraft,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.quotes.Create(quote); err != nil {
		return nil, err
	}
	return toQuoteResponse(quote), nil
}

// GetByID retourne un devis du propriétaire.
func (uc *QuoteUseCase) GetByID(userID, id string) (*dto.QuoteResponse, error) {
	quote, err := uc.getOwned(userID, id)
	if err != nil {
		return nil, err
	}
	return toQuoteResponse(quote), nil
}

// List liste les devis du propriétaire, les plus récents d'abord.
func (uc *QuoteUseCase) List(userID string, page dto.PageRequest) ([]*dto.QuoteResponse, error) {
	page.DefaultPage()
	list, err := uc.quotes.ListByUser(userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.QuoteResponse, 0, len(list))
	for _, q := range list {
		out = append(out, toQuoteResponse(q))
	}
	return out, nil
}

// UpdateStatus applique une transition de statut de devis.
func (uc *QuoteUseCase) UpdateStatus(userID, id, status string) (*dto.QuoteResponse, error) {
	quote, err := uc.getOwned(userID, id)
	if err != nil {
		return nil, err
	}
	if !isKnownStatus(status, entity.QuoteStatuses) {
		return nil, domain.NewValidationError(fmt.Sprintf("Statut de devis inconnu: %s", status))
	}
	if err := uc.quotes.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	quote.Status = status
	quote.UpdatedAt = time.Now()
	return toQuoteResponse(quote), nil
}

// Delete supprime un devis du propriétaire.
func (uc *QuoteUseCase) Delete(userID, id string) error {
	if _, err := uc.getOwned(userID, id); err != nil {
		return err
	}
	return uc.quotes.Delete(id)
}

// SuggestNumber propose le prochain numéro de devis du propriétaire.
func (uc *QuoteUseCase) SuggestNumber(userID string) (*dto.NextNumberResponse, error) {
	prefix := "DEV"
	company, err := uc.companies.GetDefaultByUser(userID)
	if err != nil {
		return nil, err
	}
	if company != nil && company.QuotePrefix != "" {
		prefix = company.QuotePrefix
	}
	count, err := uc.quotes.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	number := fmt.Sprintf("%s-%d-%03d", prefix, time.Now().Year(), count+1)
	return &dto.NextNumberResponse{Number: number}, nil
}

func (uc *QuoteUseCase) getOwned(userID, id string) (*entity.Quote, error) {
	quote, err := uc.quotes.GetByID(id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, domain.ErrNotFound
	}
	if quote.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return quote, nil
}
