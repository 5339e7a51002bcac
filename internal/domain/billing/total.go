// Package billing porte le calcul des totaux de document et les catalogues
// de facturation (devises, moyens de paiement).
package billing

import (
	"github.com/shopspring/decimal"

	"github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/entity"
)

// TaxRatePercent est le taux de TVA appliqué aux documents. Fixé à 0 dans le
// périmètre actuel : le sous-total affiché et le total affiché sont toujours
// égaux. TODO: rendre le taux paramétrable par profil société quand la
// gestion de la TVA collectée sera décidée.
const TaxRatePercent = 0

// CalculateTotal somme quantité × prix unitaire sur les lignes, de gauche à
// droite, en flottant sans arrondi intermédiaire — l'arrondi n'a lieu qu'au
// formatage (deux décimales). Le total est dérivé : à recalculer à chaque
// modification des lignes, jamais mis en cache. Une collection vide retourne
// 0 (l'invariant « au moins un article » est tenu au niveau du document).
func CalculateTotal(items []entity.LineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Quantity * item.UnitPrice
	}
	return total
}

// SnapshotTotal fige le total dérivé en décimal deux chiffres pour la
// persistance et les exports (colonne NUMERIC, XML UBL).
func SnapshotTotal(items []entity.LineItem) decimal.Decimal {
	return decimal.NewFromFloat(CalculateTotal(items)).Round(2)
}

// LineAmount retourne le montant d'une ligne (quantité × prix unitaire).
func LineAmount(item entity.LineItem) float64 {
	return item.Quantity * item.UnitPrice
}
