package billing

// Currency décrit une devise supportée.
type Currency struct {
	Code   string
	Symbol string
	Name   string
}

// Currencies est la liste fermée des devises proposées sur un document.
var Currencies = []Currency{
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "GBP", Symbol: "£", Name: "British Pound"},
	{Code: "CAD", Symbol: "$", Name: "Canadian Dollar"},
	{Code: "CHF", Symbol: "CHF", Name: "Swiss Franc"},
}

// PaymentMethods est la liste fermée des moyens de paiement proposés.
var PaymentMethods = []string{
	"Virement Bancaire",
	"Carte Bancaire",
	"Chèque",
	"PayPal",
	"Espèces",
}

// DefaultCurrency est la devise présélectionnée sur un nouveau document.
const DefaultCurrency = "EUR"

// IsSupportedCurrency indique si le code devise fait partie du catalogue.
func IsSupportedCurrency(code string) bool {
	for _, c := range Currencies {
		if c.Code == code {
			return true
		}
	}
	return false
}

// CurrencySymbol retourne le symbole d'une devise, ou son code si inconnue.
func CurrencySymbol(code string) string {
	for _, c := range Currencies {
		if c.Code == code {
			return c.Symbol
		}
	}
	return code
}

// IsSupportedPaymentMethod indique si le libellé fait partie du catalogue.
func IsSupportedPaymentMethod(label string) bool {
	for _, m := range PaymentMethods {
		if m == label {
			return true
		}
	}
	return false
}
