package dto

import "time"

// CompanyRequest création ou mise à jour d'un profil société.
type CompanyRequest struct {
	Name                 string         `json:"name"`
	Address              string         `json:"address,omitempty"`
	Email                string         `json:"email,omitempty"`
	Phone                string         `json:"phone,omitempty"`
	LogoURL              string         `json:"logoUrl,omitempty"`
	FiscalInfo           *FiscalInfoDTO `json:"fiscalInfo,omitempty"`
	IBAN                 string         `json:"iban,omitempty"`
	BIC                  string         `json:"bic,omitempty"`
	DefaultCurrency      string         `json:"defaultCurrency,omitempty"`
	DefaultPaymentMethod string         `json:"defaultPaymentMethod,omitempty"`
	InvoicePrefix        string         `json:"invoicePrefix,omitempty"`
	QuotePrefix          string         `json:"quotePrefix,omitempty"`
	IsDefault            bool           `json:"isDefault,omitempty"`
	Notes                string         `json:"notes,omitempty"`
}

// CompanyResponse profil société persisté.
type CompanyResponse struct {
	ID                   string         `json:"id"`
	UserID               string         `json:"userId"`
	Name                 string         `json:"name"`
	Address              string         `json:"address,omitempty"`
	Email                string         `json:"email,omitempty"`
	Phone                string         `json:"phone,omitempty"`
	LogoURL              string         `json:"logoUrl,omitempty"`
	FiscalInfo           *FiscalInfoDTO `json:"fiscalInfo,omitempty"`
	IBAN                 string         `json:"iban,omitempty"`
	BIC                  string         `json:"bic,omitempty"`
	DefaultCurrency      string         `json:"defaultCurrency"`
	DefaultPaymentMethod string         `json:"defaultPaymentMethod"`
	InvoicePrefix        string         `json:"invoicePrefix"`
	QuotePrefix          string         `json:"quotePrefix"`
	IsDefault            bool           `json:"isDefault"`
	Notes                string         `json:"notes,omitempty"`
	CreatedAt            time.Time      `json:"createdAt"`
	UpdatedAt            time.Time      `json:"updatedAt"`
}
