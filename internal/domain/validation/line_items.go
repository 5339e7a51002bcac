package validation

import (
	"fmt"
	"math"

	"github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/entity"
)

// ValidateLineItems valide la collection de lignes d'une facture ou d'un
// devis. Échec immédiat sur la première ligne fautive (ordre du document);
// les messages portent la position 1-based de l'article.
//
// Règles par ligne : nom non vide, quantité strictement positive, prix
// unitaire positif ou nul.
func ValidateLineItems(items []entity.LineItem) Result {
	if len(items) == 0 {
		return Invalid(KindEmptyCollection, "Au moins un article est requis")
	}
	for i, item := range items {
		n := i + 1
		if r := ValidateRequired(item.Name, ""); !r.IsValid {
			return Invalid(KindMissingField, fmt.Sprintf("Article %d: le nom est requis", n))
		}
		if math.IsNaN(item.Quantity) || item.Quantity <= 0 {
			return Invalid(KindInvalidQuantity, fmt.Sprintf("Article %d: la quantité doit être positive", n))
		}
		if math.IsNaN(item.UnitPrice) || item.UnitPrice < 0 {
			return Invalid(KindInvalidPrice, fmt.Sprintf("Article %d: le prix unitaire doit être positif ou nul", n))
		}
	}
	return Valid()
}
