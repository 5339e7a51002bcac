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

// InvoiceUseCase cas d'usage du cycle de vie des factures.
type InvoiceUseCase struct {
	invoices  repository.InvoiceRepository
	clients   repository.ClientRepository
	companies repository.CompanyRepository
}

// NewInvoiceUseCase construit le cas d'usage.
func NewInvoiceUseCase(
	invoices repository.InvoiceRepository,
	clients repository.ClientRepository,
	companies repository.CompanyRepository,
) *InvoiceUseCase {
	return &InvoiceUseCase{invoices: invoices, clients: clients, companies: companies}
}

// applyCompanyProfile copie par valeur les champs société du profil dans la
// requête, sans écraser les champs explicitement renseignés dans le corps.
func applyCompanyProfile(in *dto.CreateInvoiceRequest, c *entity.Company) {
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

func applyClientProfile(in *dto.CreateInvoiceRequest, c *entity.Client) {
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

// resolveProfiles charge et copie les profils référencés par clientId et
// companyId. Le profil doit appartenir au propriétaire du document.
func (uc *InvoiceUseCase) resolveProfiles(userID string, in *dto.CreateInvoiceRequest) error {
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
		applyCompanyProfile(in, company)
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
		applyClientProfile(in, client)
	}
	return nil
}

// validateInvoice valide le document assemblé (après copie des profils).
// Les emails d'instantané ne sont contrôlés que s'ils sont renseignés : un
// document peut se créer pour un client sans adresse email connue.
func validateInvoice(in dto.CreateInvoiceRequest, companyFiscal, clientFiscal entity.FiscalInfo, items []entity.LineItem) validation.Result {
	results := []validation.Result{
		validation.ValidateRequired(in.InvoiceNumber, "Le numéro de facture"),
		validation.ValidateDate(in.InvoiceDate, "La date de facture"),
		validation.ValidateRequired(in.CompanyName, "Nom de la société"),
		validation.ValidateRequired(in.ClientName, "Le nom du client"),
	}
	if in.DueDate != "" {
		results = append(results, validation.ValidateDate(in.DueDate, "La date d'échéance"))
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

// Create assemble, valide puis persiste une facture en brouillon. Les champs
// société et client sont figés par valeur : modifier un profil plus tard ne
// retouche jamais les documents existants.
func (uc *InvoiceUseCase) Create(userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := uc.resolveProfiles(userID, &in); err != nil {
		return nil, err
	}
	if in.Currency == "" {
		in.Currency = domainbilling.DefaultCurrency
	}
	companyFiscal := fiscalFromDTO(in.FiscalInfo)
	clientFiscal := fiscalFromDTO(in.ClientFiscalInfo)
	items := itemsFromDTO(in.Items)
	if r := validateInvoice(in, companyFiscal, clientFiscal, items); !r.IsValid {
		return nil, domain.NewValidationError(r.Error)
	}
	if !domainbilling.IsSupportedCurrency(in.Currency) {
		return nil, domain.NewValidationError("Devise non supportée")
	}
	date, err := validation.ParseDate(in.InvoiceDate)
	if err != nil {
		return nil, domain.NewValidationError("La date de facture est invalide")
	}
	var dueDate *time.Time
	if in.DueDate != "" {
		d, err := validation.ParseDate(in.DueDate)
		if err != nil {
			return nil, domain.NewValidationError("La date d'échéance est invalide")
		}
		dueDate = &d
	}
	now := time.Now()
	invoice := &entity.Invoice{
		ID:             uuid.New().String(),
		UserID:         userID,
		Number:         in.InvoiceNumber,
		Date:           date,
		DueDate:        dueDate,
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
		Status:         entity.InvoiceStatusDraft,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.invoices.Create(invoice); err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice), nil
}

// GetByID retourne une facture du propriétaire.
func (uc *InvoiceUseCase) GetByID(userID, id string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.getOwned(userID, id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice), nil
}

// List liste les factures du propriétaire, les plus récentes d'abord.
func (uc *InvoiceUseCase) List(userID string, page dto.PageRequest) ([]*dto.InvoiceResponse, error) {
	page.DefaultPage()
	list, err := uc.invoices.ListByUser(userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, toInvoiceResponse(inv))
	}
	return out, nil
}

// UpdateStatus applique une transition de statut. Tout statut connu est
// accepté comme cible, le retour en arrière compris (repasser une facture
// payée en envoyée corrige une erreur de saisie).
func (uc *InvoiceUseCase) UpdateStatus(userID, id, status string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.getOwned(userID, id)
	if err != nil {
		return nil, err
	}
	if !isKnownStatus(status, entity.InvoiceStatuses) {
		return nil, domain.NewValidationError(fmt.Sprintf("Statut de facture inconnu: %s", status))
	}
	if err := uc.invoices.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	invoice.Status = status
	invoice.UpdatedAt = time.Now()
	return toInvoiceResponse(invoice), nil
}

// Delete supprime une facture du propriétaire.
func (uc *InvoiceUseCase) Delete(userID, id string) error {
	if _, err := uc.getOwned(userID, id); err != nil {
		return err
	}
	return uc.invoices.Delete(id)
}

// SuggestNumber propose le prochain numéro de facture du propriétaire :
// préfixe de la société par défaut (FAC sinon), année courante et compteur
// incrémental sur trois chiffres. La suggestion n'est pas une réservation;
// l'utilisateur reste libre de saisir un autre numéro.
func (uc *InvoiceUseCase) SuggestNumber(userID string) (*dto.NextNumberResponse, error) {
	prefix := "FAC"
	company, err := uc.companies.GetDefaultByUser(userID)
	if err != nil {
		return nil, err
	}
	if company != nil && company.InvoicePrefix != "" {
		prefix = company.InvoicePrefix
	}
	count, err := uc.invoices.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	number := fmt.Sprintf("%s-%d-%03d", prefix, time.Now().Year(), count+1)
	return &dto.NextNumberResponse{Number: number}, nil
}

func (uc *InvoiceUseCase) getOwned(userID, id string) (*entity.Invoice, error) {
	invoice, err := uc.invoices.GetByID(id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	if invoice.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return invoice, nil
}

func isKnownStatus(status string, known []string) bool {
	for _, s := range known {
		if s == status {
			return true
		}
	}
	return false
}
