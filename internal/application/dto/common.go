package dto

// PageRequest pagination des listages.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage applique les valeurs par défaut si Limit/Offset sont absents.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse corps d'erreur HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FiscalInfoDTO bloc d'identifiants fiscaux tel qu'échangé avec le frontend.
// Les clés JSON suivent le format historique du client web.
type FiscalInfoDTO struct {
	Region    string `json:"region"`
	Nif       string `json:"nif,omitempty"`
	Stat      string `json:"stat,omitempty"`
	Siret     string `json:"siret,omitempty"`
	TvaNumber string `json:"tvaNumber,omitempty"`
}

// LineItemDTO ligne d'article d'un document.
type LineItemDTO struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}
