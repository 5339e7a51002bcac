package billing_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/mandaniainarandriambinintsoa/Factupro/internal/application/billing"
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/application/dto"
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/domain"
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/entity"
	"github.com/mandaniainarandriambinintsoa/Factupro/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Doubles en mémoire des dépôts. Ils reproduisent le contrat des dépôts
// PostgreSQL : GetByID retourne (nil, nil) quand la ressource n'existe pas.
// ──────────────────────────────────────────────────────────────────────────────

type fakeClientRepo struct {
	clients map[string]*entity.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: map[string]*entity.Client{}}
}

func (r *fakeClientRepo) Create(c *entity.Client) error {
	r.clients[c.ID] = c
	return nil
}

func (r *fakeClientRepo) GetByID(id string) (*entity.Client, error) {
	return r.clients[id], nil
}

func (r *fakeClientRepo) ListByUser(userID string, limit, offset int) ([]*entity.Client, error) {
	var out []*entity.Client
	for _, c := range r.clients {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeClientRepo) SearchByUser(userID, query string, limit int) ([]*entity.Client, error) {
	var out []*entity.Client
	for _, c := range r.clients {
		if c.UserID == userID && strings.Contains(strings.ToLower(c.Name), strings.ToLower(query)) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeClientRepo) Update(c *entity.Client) error {
	r.clients[c.ID] = c
	return nil
}

func (r *fakeClientRepo) Delete(id string) error {
	delete(r.clients, id)
	return nil
}

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: map[string]*entity.Company{}}
}

func (r *fakeCompanyRepo) Create(c *entity.Company) error {
	r.companies[c.ID] = c
	return nil
}

func (r *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	return r.companies[id], nil
}

func (r *fakeCompanyRepo) GetDefaultByUser(userID string) (*entity.Company, error) {
	for _, c := range r.companies {
		if c.UserID == userID && c.IsDefault {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCompanyRepo) ListByUser(userID string, limit, offset int) ([]*entity.Company, error) {
	var out []*entity.Company
	for _, c := range r.companies {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCompanyRepo) Update(c *entity.Company) error {
	r.companies[c.ID] = c
	return nil
}

func (r *fakeCompanyRepo) ClearDefault(userID string) error {
	for _, c := range r.companies {
		if c.UserID == userID {
			c.IsDefault = false
		}
	}
	return nil
}

func (r *fakeCompanyRepo) Delete(id string) error {
	delete(r.companies, id)
	return nil
}

type fakeInvoiceRepo struct {
	invoices map[string]*entity.Invoice
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: map[string]*entity.Invoice{}}
}

func (r *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	r.invoices[inv.ID] = inv
	return nil
}

func (r *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	return r.invoices[id], nil
}

func (r *fakeInvoiceRepo) ListByUser(userID string, limit, offset int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.invoices {
		if inv.UserID == userID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) CountByUser(userID string) (int, error) {
	n := 0
	for _, inv := range r.invoices {
		if inv.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakeInvoiceRepo) UpdateStatus(id, status string) error {
	if inv, ok := r.invoices[id]; ok {
		inv.Status = status
	}
	return nil
}

func (r *fakeInvoiceRepo) UpdatePDF(id, pdfBase64 string) error {
	if inv, ok := r.invoices[id]; ok {
		inv.PDFBase64 = pdfBase64
	}
	return nil
}

func (r *fakeInvoiceRepo) Delete(id string) error {
	delete(r.invoices, id)
	return nil
}

type fakeQuoteRepo struct {
	quotes map[string]*entity.Quote
}

func newFakeQuoteRepo() *fakeQuoteRepo {
	return &fakeQuoteRepo{quotes: map[string]*entity.Quote{}}
}

func (r *fakeQuoteRepo) Create(q *entity.Quote) error {
	r.quotes[q.ID] = q
	return nil
}

func (r *fakeQuoteRepo) GetByID(id string) (*entity.Quote, error) {
	return r.quotes[id], nil
}

func (r *fakeQuoteRepo) ListByUser(userID string, limit, offset int) ([]*entity.Quote, error) {
	var out []*entity.Quote
	for _, q := range r.quotes {
		if q.UserID == userID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *fakeQuoteRepo) CountByUser(userID string) (int, error) {
	n := 0
	for _, q := range r.quotes {
		if q.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakeQuoteRepo) UpdateStatus(id, status string) error {
	if q, ok := r.quotes[id]; ok {
		q.Status = status
	}
	return nil
}

func (r *fakeQuoteRepo) UpdatePDF(id, pdfBase64 string) error {
	if q, ok := r.quotes[id]; ok {
		q.PDFBase64 = pdfBase64
	}
	return nil
}

func (r *fakeQuoteRepo) Delete(id string) error {
	delete(r.quotes, id)
	return nil
}

// Doubles des ports de sortie.

type fakePDF struct{}

func (fakePDF) GenerateInvoicePDF(_ context.Context, _ *entity.Invoice) ([]byte, error) {
	return []byte("%PDF-facture"), nil
}

func (fakePDF) GenerateQuotePDF(_ context.Context, _ *entity.Quote) ([]byte, error) {
	return []byte("%PDF-devis"), nil
}

type fakeEmail struct {
	sent []appbilling.EmailMessage
	err  error
}

func (f *fakeEmail) Send(_ context.Context, msg appbilling.EmailMessage) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeWebhook struct {
	payloads []any
}

func (f *fakeWebhook) Notify(_ context.Context, payload any) {
	f.payloads = append(f.payloads, payload)
}

// validInvoiceRequest construit une requête de facture minimale valide.
func validInvoiceRequest() dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		CompanyName:   "Hasina Consulting",
		ClientName:    "Rakoto & Fils",
		InvoiceNumber: "FAC-2026-001",
		InvoiceDate:   "2026-08-29",
		Currency:      "EUR",
		Items: []dto.LineItemDTO{
			{ID: "1", Name: "Développement", Quantity: 2, UnitPrice: 450},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Clients
// ──────────────────────────────────────────────────────────────────────────────

func TestClientUseCase_Create_Valide(t *testing.T) {
	uc := appbilling.NewClientUseCase(newFakeClientRepo())

	resp, err := uc.Create("user-1", dto.ClientRequest{
		Name:  "Rakoto & Fils",
		Email: "contact@rakoto.mg",
		FiscalInfo: &dto.FiscalInfoDTO{
			Region: "MG",
			Nif:    "4019532272",
			Stat:   "24101112000010023",
		},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "user-1", resp.UserID)
	require.NotNil(t, resp.FiscalInfo)
	assert.Equal(t, "MG", resp.FiscalInfo.Region)
}

func TestClientUseCase_Create_PremiereErreurGagne(t *testing.T) {
	uc := appbilling.NewClientUseCase(newFakeClientRepo())

	// Email et SIRET invalides en même temps : l'email est contrôlé avant le
	// SIRET, donc c'est son message qui remonte.
	_, err := uc.Create("user-1", dto.ClientRequest{
		Name:  "Client",
		Email: "pas-un-email",
		FiscalInfo: &dto.FiscalInfoDTO{
			Region: "EU",
			Siret:  "123",
		},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "Format d'email invalide", err.Error())
}

func TestClientUseCase_Create_SiretInvalide(t *testing.T) {
	uc := appbilling.NewClientUseCase(newFakeClientRepo())

	_, err := uc.Create("user-1", dto.ClientRequest{
		Name:  "Client",
		Email: "client@exemple.fr",
		FiscalInfo: &dto.FiscalInfoDTO{
			Region: "EU",
			Siret:  "73282932000075", // clé de Luhn fausse
		},
	})

	require.Error(t, err)
	assert.Equal(t, "Numéro SIRET invalide", err.Error())
}

func TestClientUseCase_GetByID_AutreProprietaire(t *testing.T) {
	repo := newFakeClientRepo()
	uc := appbilling.NewClientUseCase(repo)

	created, err := uc.Create("user-1", dto.ClientRequest{Name: "Client", Email: "c@exemple.fr"})
	require.NoError(t, err)

	_, err = uc.GetByID("user-2", created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.GetByID("user-1", "inexistant")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sociétés
// ──────────────────────────────────────────────────────────────────────────────

func TestCompanyUseCase_Create_ValeursParDefaut(t *testing.T) {
	uc := appbilling.NewCompanyUseCase(newFakeCompanyRepo())

	resp, err := uc.Create("user-1", dto.CompanyRequest{Name: "Hasina Consulting"})

	require.NoError(t, err)
	assert.Equal(t, "EUR", resp.DefaultCurrency)
	assert.Equal(t, "Virement Bancaire", resp.DefaultPaymentMethod)
	assert.Equal(t, "FAC", resp.InvoicePrefix)
	assert.Equal(t, "DEV", resp.QuotePrefix)
}

func TestCompanyUseCase_Create_EmailOptionnel(t *testing.T) {
	uc := appbilling.NewCompanyUseCase(newFakeCompanyRepo())

	// Sans email : valide. Avec un email malformé : rejeté.
	_, err := uc.Create("user-1", dto.CompanyRequest{Name: "Société"})
	require.NoError(t, err)

	_, err = uc.Create("user-1", dto.CompanyRequest{Name: "Société", Email: "nope"})
	require.Error(t, err)
	assert.Equal(t, "Format d'email invalide", err.Error())
}

func TestCompanyUseCase_Create_BasculeParDefaut(t *testing.T) {
	repo := newFakeCompanyRepo()
	uc := appbilling.NewCompanyUseCase(repo)

	first, err := uc.Create("user-1", dto.CompanyRequest{Name: "Première", IsDefault: true})
	require.NoError(t, err)
	second, err := uc.Create("user-1", dto.CompanyRequest{Name: "Seconde", IsDefault: true})
	require.NoError(t, err)

	// Une seule société par défaut à la fois.
	stored, err := repo.GetDefaultByUser("user-1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, second.ID, stored.ID)
	assert.NotEqual(t, first.ID, stored.ID)
}

func TestCompanyUseCase_Create_IbanInvalide(t *testing.T) {
	uc := appbilling.NewCompanyUseCase(newFakeCompanyRepo())

	_, err := uc.Create("user-1", dto.CompanyRequest{Name: "Société", IBAN: "FR76-pas-bon"})

	require.Error(t, err)
	assert.Equal(t, "Format d'IBAN invalide", err.Error())
}

// ──────────────────────────────────────────────────────────────────────────────
// Factures
// ──────────────────────────────────────────────────────────────────────────────

func newInvoiceUC() (*appbilling.InvoiceUseCase, *fakeInvoiceRepo, *fakeClientRepo, *fakeCompanyRepo) {
	invoices := newFakeInvoiceRepo()
	clients := newFakeClientRepo()
	companies := newFakeCompanyRepo()
	return appbilling.NewInvoiceUseCase(invoices, clients, companies), invoices, clients, companies
}

func TestInvoiceUseCase_Create_Brouillon(t *testing.T) {
	uc, _, _, _ := newInvoiceUC()

	resp, err := uc.Create("user-1", validInvoiceRequest())

	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusDraft, resp.Status)
	assert.InDelta(t, 900.0, resp.Total, 1e-9)
	assert.Equal(t, "900.00", resp.TotalDisplay)
}

func TestInvoiceUseCase_Create_SansArticle(t *testing.T) {
	uc, _, _, _ := newInvoiceUC()

	req := validInvoiceRequest()
	req.Items = nil

	_, err := uc.Create("user-1", req)
	require.Error(t, err)
	assert.Equal(t, "Au moins un article est requis", err.Error())
}

func TestInvoiceUseCase_Create_ArticleFautifPositionne(t *testing.T) {
	uc, _, _, _ := newInvoiceUC()

	req := validInvoiceRequest()
	req.Items = []dto.LineItemDTO{
		{ID: "1", Name: "OK", Quantity: 1, UnitPrice: 10},
		{ID: "2", Name: "Mauvais", Quantity: 0, UnitPrice: 10},
	}

	_, err := uc.Create("user-1", req)
	require.Error(t, err)
	assert.Equal(t, "Article 2: la quantité doit être positive", err.Error())
}

func TestInvoiceUseCase_Create_CopieDesProfils(t *testing.T) {
	uc, _, clients, companies := newInvoiceUC()

	companyUC := appbilling.NewCompanyUseCase(companies)
	company, err := companyUC.Create("user-1", dto.CompanyRequest{
		Name:    "Hasina Consulting",
		Address: "Lot II A 101 Antananarivo",
		Email:   "contact@hasina.mg",
		FiscalInfo: &dto.FiscalInfoDTO{
			Region: "MG",
			Nif:    "4019532272",
			Stat:   "24101112000010023",
		},
	})
	require.NoError(t, err)

	clientUC := appbilling.NewClientUseCase(clients)
	client, err := clientUC.Create("user-1", dto.ClientRequest{
		Name:    "Rakoto & Fils",
		Email:   "contact@rakoto.mg",
		Address: "Ambohibao",
	})
	require.NoError(t, err)

	req := dto.CreateInvoiceRequest{
		CompanyID:     company.ID,
		ClientID:      client.ID,
		InvoiceNumber: "FAC-2026-001",
		InvoiceDate:   "2026-08-29",
		ClientEmail:   "facturation@rakoto.mg", // le champ explicite prime
		Items:         []dto.LineItemDTO{{ID: "1", Name: "Audit", Quantity: 1, UnitPrice: 300}},
	}

	resp, err := uc.Create("user-1", req)
	require.NoError(t, err)

	// Champs copiés par valeur depuis les profils.
	assert.Equal(t, "Hasina Consulting", resp.CompanyName)
	assert.Equal(t, "Lot II A 101 Antananarivo", resp.CompanyAddress)
	assert.Equal(t, "Rakoto & Fils", resp.ClientName)
	assert.Equal(t, "Ambohibao", resp.ClientAddress)
	require.NotNil(t, resp.FiscalInfo)
	assert.Equal(t, "MG", resp.FiscalInfo.Region)
	// Champ explicite non écrasé par le profil.
	assert.Equal(t, "facturation@rakoto.mg", resp.ClientEmail)

	// Modifier le profil ensuite ne retouche pas le document.
	_, err = clientUC.Update("user-1", client.ID, dto.ClientRequest{
		Name:  "Nouveau Nom",
		Email: "contact@rakoto.mg",
	})
	require.NoError(t, err)

	fetched, err := uc.GetByID("user-1", resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rakoto & Fils", fetched.ClientName)
}

func TestInvoiceUseCase_Create_ProfilAutreProprietaire(t *testing.T) {
	uc, _, clients, _ := newInvoiceUC()

	clientUC := appbilling.NewClientUseCase(clients)
	other, err := clientUC.Create("user-2", dto.ClientRequest{Name: "Client", Email: "c@exemple.fr"})
	require.NoError(t, err)

	req := validInvoiceRequest()
	req.ClientID = other.ID

	_, err = uc.Create("user-1", req)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestInvoiceUseCase_UpdateStatus(t *testing.T) {
	uc, _, _, _ := newInvoiceUC()

	created, err := uc.Create("user-1", validInvoiceRequest())
	require.NoError(t, err)

	resp, err := uc.UpdateStatus("user-1", created.ID, entity.InvoiceStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, resp.Status)

	_, err = uc.UpdateStatus("user-1", created.ID, "archived")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInvoiceUseCase_SuggestNumber(t *testing.T) {
	uc, _, _, companies := newInvoiceUC()

	companyUC := appbilling.NewCompanyUseCase(companies)
	_, err := companyUC.Create("user-1", dto.CompanyRequest{
		Name:          "Hasina Consulting",
		InvoicePrefix: "HC",
		IsDefault:     true,
	})
	require.NoError(t, err)

	first, err := uc.SuggestNumber("user-1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first.Number, "HC-"), first.Number)
	assert.True(t, strings.HasSuffix(first.Number, "-001"), first.Number)

	_, err = uc.Create("user-1", validInvoiceRequest())
	require.NoError(t, err)

	second, err := uc.SuggestNumber("user-1")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(second.Number, "-002"), second.Number)
}

// ──────────────────────────────────────────────────────────────────────────────
// Devis
// ──────────────────────────────────────────────────────────────────────────────

func TestQuoteUseCase_Create_DateValiditeRequise(t *testing.T) {
	uc := appbilling.NewQuoteUseCase(newFakeQuoteRepo(), newFakeClientRepo(), newFakeCompanyRepo())

	_, err := uc.Create("user-1", dto.CreateQuoteRequest{
		CompanyName: "Société",
		ClientName:  "Client",
		QuoteNumber: "DEV-2026-001",
		QuoteDate:   "2026-08-29",
		Items:       []dto.LineItemDTO{{ID: "1", Name: "Conseil", Quantity: 1, UnitPrice: 100}},
	})

	require.Error(t, err)
	assert.Equal(t, "La date de validité est requise", err.Error())
}

func TestQuoteUseCase_CycleDeVie(t *testing.T) {
	uc := appbilling.NewQuoteUseCase(newFakeQuoteRepo(), newFakeClientRepo(), newFakeCompanyRepo())

	created, err := uc.Create("user-1", dto.CreateQuoteRequest{
		CompanyName:  "Société",
		ClientName:   "Client",
		QuoteNumber:  "DEV-2026-001",
		QuoteDate:    "2026-08-29",
		ValidityDate: "2026-09-29",
		Items:        []dto.LineItemDTO{{ID: "1", Name: "Conseil", Quantity: 2, UnitPrice: 150}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.QuoteStatusDraft, created.Status)
	assert.Equal(t, "300.00", created.TotalDisplay)

	accepted, err := uc.UpdateStatus("user-1", created.ID, entity.QuoteStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, entity.QuoteStatusAccepted, accepted.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Envoi et sorties
// ──────────────────────────────────────────────────────────────────────────────

func newSendUC(email appbilling.EmailSender, webhook appbilling.WebhookNotifier) (*appbilling.SendUseCase, *appbilling.InvoiceUseCase) {
	invoiceUC, _, _, _ := newInvoiceUC()
	quoteUC := appbilling.NewQuoteUseCase(newFakeQuoteRepo(), newFakeClientRepo(), newFakeCompanyRepo())
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	send := appbilling.NewSendUseCase(invoiceUC, quoteUC, fakePDF{}, email, webhook, nil, log)
	return send, invoiceUC
}

func TestSendUseCase_DownloadInvoicePDF_Cache(t *testing.T) {
	send, invoiceUC := newSendUC(nil, nil)

	created, err := invoiceUC.Create("user-1", validInvoiceRequest())
	require.NoError(t, err)

	pdf, name, err := send.DownloadInvoicePDF(context.Background(), "user-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-facture"), pdf)
	assert.Equal(t, "facture-FAC-2026-001.pdf", name)

	// Deuxième rendu servi depuis le cache base64.
	again, _, err := send.DownloadInvoicePDF(context.Background(), "user-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, pdf, again)
}

func TestSendUseCase_SendInvoice_PasseEnEnvoyee(t *testing.T) {
	email := &fakeEmail{}
	webhook := &fakeWebhook{}
	send, invoiceUC := newSendUC(email, webhook)

	req := validInvoiceRequest()
	req.ClientEmail = "contact@rakoto.mg"
	created, err := invoiceUC.Create("user-1", req)
	require.NoError(t, err)

	resp, err := send.SendInvoice(context.Background(), "user-1", created.ID)
	require.NoError(t, err)
	assert.True(t, resp.Sent)

	require.Len(t, email.sent, 1)
	assert.Equal(t, "contact@rakoto.mg", email.sent[0].ToEmail)
	assert.Equal(t, "facture-FAC-2026-001.pdf", email.sent[0].AttachName)
	assert.NotEmpty(t, email.sent[0].Attachment)

	fetched, err := invoiceUC.GetByID("user-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusSent, fetched.Status)

	// Le webhook a été notifié après l'envoi.
	require.Len(t, webhook.payloads, 1)
}

func TestSendUseCase_SendInvoice_SansEmailClient(t *testing.T) {
	send, invoiceUC := newSendUC(&fakeEmail{}, nil)

	created, err := invoiceUC.Create("user-1", validInvoiceRequest())
	require.NoError(t, err)

	_, err = send.SendInvoice(context.Background(), "user-1", created.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSendUseCase_NotifyInvoiceWebhook_SansWebhookConfigure(t *testing.T) {
	// Webhook absent : l'opération reste un succès, c'est un canal latéral.
	send, invoiceUC := newSendUC(nil, nil)

	created, err := invoiceUC.Create("user-1", validInvoiceRequest())
	require.NoError(t, err)

	resp, err := send.NotifyInvoiceWebhook(context.Background(), "user-1", created.ID)
	require.NoError(t, err)
	assert.True(t, resp.Sent)
}
