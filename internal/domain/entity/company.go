package entity

import "time"

// Company représente un profil émetteur réutilisable : identité de la
// société, coordonnées bancaires et préférences de facturation.
type Company struct {
	ID                   string
	UserID               string
	Name                 string
	Address              string
	Email                string
	Phone                string
	LogoURL              string
	Fiscal               FiscalInfo
	IBAN                 string
	BIC                  string
	DefaultCurrency      string
	DefaultPaymentMethod string
	InvoicePrefix        string
	QuotePrefix          string
	IsDefault            bool
	Notes                string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
