package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statuts du cycle de vie d'un devis persisté.
const (
	QuoteStatusDraft    = "draft"
	QuoteStatusSent     = "sent"
	QuoteStatusAccepted = "accepted"
	QuoteStatusRejected = "rejected"
	QuoteStatusExpired  = "expired"
)

// QuoteStatuses liste les statuts valides d'un devis.
var QuoteStatuses = []string{
	QuoteStatusDraft, QuoteStatusSent, QuoteStatusAccepted,
	QuoteStatusRejected, QuoteStatusExpired,
}

// Quote représente un devis persisté. Structurellement identique à la facture
// à la sémantique des dates près : date de validité au lieu d'échéance.
type Quote struct {
	ID     string
	UserID string

	Number        string
	Date          time.Time
	ValidityDate  time.Time
	Currency      string
	PaymentMethod string

	CompanyName    string
	CompanyAddress string
	CompanyEmail   string
	CompanyPhone   string
	LogoURL        string
	CompanyFiscal  FiscalInfo

	ClientName    string
	ClientAddress string
	ClientEmail   string
	ClientPhone   string
	ClientFiscal  FiscalInfo

	Items []LineItem
	Total decimal.Decimal

	Status    string
	Notes     string
	PDFBase64 string
	CreatedAt time.Time
	UpdatedAt time.Time
}
