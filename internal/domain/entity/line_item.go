package entity

// LineItem représente une ligne facturable d'un document (facture ou devis).
// L'ID est opaque et unique au sein du document; l'ordre des lignes est
// significatif pour l'affichage. Les tags JSON suivent le format du payload
// frontend/webhook et de la colonne JSONB items.
type LineItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}
