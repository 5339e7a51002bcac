package dto

import "time"

// CreateInvoiceRequest création d'une facture. Si clientId/companyId sont
// fournis, les champs du profil sont copiés par valeur dans l'instantané du
// document; les champs explicites du corps priment quand ils sont renseignés.
type CreateInvoiceRequest struct {
	CompanyID string `json:"companyId,omitempty"`
	ClientID  string `json:"clientId,omitempty"`

	CompanyName    string         `json:"companyName"`
	CompanyAddress string         `json:"companyAddress,omitempty"`
	CompanyEmail   string         `json:"companyEmail"`
	CompanyPhone   string         `json:"companyPhone,omitempty"`
	LogoURL        string         `json:"logoUrl,omitempty"`
	FiscalInfo     *FiscalInfoDTO `json:"fiscalInfo,omitempty"`

	ClientName       string         `json:"clientName"`
	ClientAddress    string         `json:"clientAddress,omitempty"`
	ClientEmail      string         `json:"clientEmail"`
	ClientPhone      string         `json:"clientPhone,omitempty"`
	ClientFiscalInfo *FiscalInfoDTO `json:"clientFiscalInfo,omitempty"`

	InvoiceNumber string `json:"invoiceNumber"`
	InvoiceDate   string `json:"invoiceDate"`
	DueDate       string `json:"dueDate,omitempty"`
	Currency      string `json:"currency"`
	PaymentMethod string `json:"paymentMethod,omitempty"`

	Items []LineItemDTO `json:"items"`
	Notes string        `json:"notes,omitempty"`
}

// CreateQuoteRequest création d'un devis. Même structure que la facture à la
// sémantique des dates près (date de validité au lieu d'échéance).
type CreateQuoteRequest struct {
	CompanyID string `json:"companyId,omitempty"`
	ClientID  string `json:"clientId,omitempty"`

	CompanyName    string         `json:"companyName"`
	CompanyAddress string         `json:"companyAddress,omitempty"`
	CompanyEmail   string         `json:"companyEmail"`
	CompanyPhone   string         `json:"companyPhone,omitempty"`
	LogoURL        string         `json:"logoUrl,omitempty"`
	FiscalInfo     *FiscalInfoDTO `json:"fiscalInfo,omitempty"`

	ClientName       string         `json:"clientName"`
	ClientAddress    string         `json:"clientAddress,omitempty"`
	ClientEmail      string         `json:"clientEmail"`
	ClientPhone      string         `json:"clientPhone,omitempty"`
	ClientFiscalInfo *FiscalInfoDTO `json:"clientFiscalInfo,omitempty"`

	QuoteNumber   string `json:"quoteNumber"`
	QuoteDate     string `json:"quoteDate"`
	ValidityDate  string `json:"validityDate"`
	Currency      string `json:"currency"`
	PaymentMethod string `json:"paymentMethod,omitempty"`

	Items []LineItemDTO `json:"items"`
	Notes string        `json:"notes,omitempty"`
}

// UpdateStatusRequest transition de statut d'un document.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// InvoiceResponse facture persistée.
type InvoiceResponse struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`

	InvoiceNumber string `json:"invoiceNumber"`
	InvoiceDate   string `json:"invoiceDate"`
	DueDate       string `json:"dueDate,omitempty"`
	Currency      string `json:"currency"`
	PaymentMethod string `json:"paymentMethod,omitempty"`

	CompanyName    string         `json:"companyName"`
	CompanyAddress string         `json:"companyAddress,omitempty"`
	CompanyEmail   string         `json:"companyEmail"`
	CompanyPhone   string         `json:"companyPhone,omitempty"`
	LogoURL        string         `json:"logoUrl,omitempty"`
	FiscalInfo     *FiscalInfoDTO `json:"fiscalInfo,omitempty"`

	ClientName       string         `json:"clientName"`
	ClientAddress    string         `json:"clientAddress,omitempty"`
	ClientEmail      string         `json:"clientEmail"`
	ClientPhone      string         `json:"clientPhone,omitempty"`
	ClientFiscalInfo *FiscalInfoDTO `json:"clientFiscalInfo,omitempty"`

	Items []LineItemDTO `json:"items"`
	// Total dérivé des lignes (TVA 0 %), arrondi à deux décimales.
	Total        float64 `json:"total"`
	TotalDisplay string  `json:"totalDisplay"`

	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// QuoteResponse devis persisté.
type QuoteResponse struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`

	QuoteNumber   string `json:"quoteNumber"`
	QuoteDate     string `json:"quoteDate"`
	ValidityDate  string `json:"validityDate"`
	Currency      string `json:"currency"`
	PaymentMethod string `json:"paymentMethod,omitempty"`

	CompanyName    string         `json:"companyName"`
	CompanyAddress string         `json:"companyAddress,omitempty"`
	CompanyEmail   string         `json:"companyEmail"`
	CompanyPhone   string         `json:"companyPhone,omitempty"`
	LogoURL        string         `json:"logoUrl,omitempty"`
	FiscalInfo     *FiscalInfoDTO `json:"fiscalInfo,omitempty"`

	ClientName       string         `json:"clientName"`
	ClientAddress    string         `json:"clientAddress,omitempty"`
	ClientEmail      string         `json:"clientEmail"`
	ClientPhone      string         `json:"clientPhone,omitempty"`
	ClientFiscalInfo *FiscalInfoDTO `json:"clientFiscalInfo,omitempty"`

	Items        []LineItemDTO `json:"items"`
	Total        float64       `json:"total"`
	TotalDisplay string        `json:"totalDisplay"`

	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NextNumberResponse suggestion de numéro de document.
type NextNumberResponse struct {
	Number string `json:"number"`
}

// SendResponse résultat d'un envoi par email.
type SendResponse struct {
	Sent    bool   `json:"sent"`
	Message string `json:"message,omitempty"`
}
