package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statuts du cycle de vie d'une facture persistée.
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusSent      = "sent"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusCancelled = "cancelled"
)

// InvoiceStatuses liste les statuts valides, pour validation des transitions.
var InvoiceStatuses = []string{
	InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusCancelled,
}

// Invoice représente une facture persistée. Les champs société et client sont
// des instantanés copiés par valeur au moment de la création. Total est un
// instantané dérivé des lignes (jamais une entrée faisant autorité) : il est
// recalculé à chaque écriture des items.
type Invoice struct {
	ID     string
	UserID string

	Number        string
	Date          time.Time
	DueDate       *time.Time // optionnelle
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
	Total decimal.Decimal // instantané: somme quantité × prix unitaire, TVA 0 %

	Status    string
	Notes     string
	PDFBase64 string
	CreatedAt time.Time
	UpdatedAt time.Time
}
