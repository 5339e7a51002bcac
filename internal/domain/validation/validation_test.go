package validation_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/entity"
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/validation"
)

// ──────────────────────────────────────────────────────────────────────────────
// Email
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateEmail_Valide(t *testing.T) {
	r := validation.ValidateEmail("a@b.com")
	assert.True(t, r.IsValid)
	assert.Empty(t, r.Error)
}

func TestValidateEmail_SansTLD_FormatInvalide(t *testing.T) {
	r := validation.ValidateEmail("a@b")
	assert.False(t, r.IsValid)
	assert.Equal(t, validation.KindInvalidFormat, r.Kind)
	assert.NotEmpty(t, r.Error, "tout échec doit porter un message lisible")
}

func TestValidateEmail_Vide_ChampRequis(t *testing.T) {
	// Contrairement aux identifiants fiscaux, l'email n'est pas optionnel.
	r := validation.ValidateEmail("")
	assert.False(t, r.IsValid)
	assert.Equal(t, validation.KindMissingField, r.Kind)
}

func TestValidateEmail_AvecEspace_FormatInvalide(t *testing.T) {
	r := validation.ValidateEmail("a b@c.com")
	assert.False(t, r.IsValid)
	assert.Equal(t, validation.KindInvalidFormat, r.Kind)
}

// ──────────────────────────────────────────────────────────────────────────────
// Champs optionnels : vide ⇒ valide, toujours
// ──────────────────────────────────────────────────────────────────────────────

func TestChampsOptionnels_VideToujoursValide(t *testing.T) {
	optionnels := map[string]func(string) validation.Result{
		"phone": validation.ValidatePhone,
		"siret": validation.ValidateSiret,
		"tva":   validation.ValidateVatNumber,
		"nif":   validation.ValidateNif,
		"stat":  validation.ValidateStat,
		"iban":  validation.ValidateIban,
		"bic":   validation.ValidateBic,
	}
	for name, validate := range optionnels {
		assert.True(t, validate("").IsValid, "%s vide doit être valide", name)
		assert.True(t, validate("   ").IsValid, "%s blanc doit être valide", name)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// SIRET — clé de Luhn
//
// Vecteur calculé à la main pour "73282932000074" :
// chiffres d'index pair doublés (7→14→5, 2→4, 2→4, 3→6, 0, 0, 7→14→5),
// somme = 5+3+4+8+4+9+6+2+0+0+0+0+5+4 = 50, multiple de 10 ⇒ valide.
// "73282932000075" donne 51 ⇒ clé invalide.
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateSiret_CleValide(t *testing.T) {
	r := validation.ValidateSiret("73282932000074")
	assert.True(t, r.IsValid, "somme de Luhn 50, multiple de 10")
}

func TestValidateSiret_CleInvalide(t *testing.T) {
	r := validation.ValidateSiret("73282932000075")
	require.False(t, r.IsValid)
	assert.Equal(t, validation.KindInvalidChecksum, r.Kind)
	assert.Equal(t, "Numéro SIRET invalide", r.Error)
}

func TestValidateSiret_EspacesInternesIgnores(t *testing.T) {
	r := validation.ValidateSiret("732 829 320 00074")
	assert.True(t, r.IsValid, "les espaces de groupage usuels doivent être ignorés")
}

func TestValidateSiret_MauvaiseLongueur_FormatInvalide(t *testing.T) {
	for _, s := range []string{"123", "7328293200007", "732829320000740"} {
		r := validation.ValidateSiret(s)
		require.False(t, r.IsValid, "siret %q", s)
		assert.Equal(t, validation.KindInvalidFormat, r.Kind)
	}
}

func TestValidateSiret_NonNumerique_FormatInvalide(t *testing.T) {
	r := validation.ValidateSiret("7328293200007A")
	require.False(t, r.IsValid)
	assert.Equal(t, validation.KindInvalidFormat, r.Kind)
}

// ──────────────────────────────────────────────────────────────────────────────
// TVA intracommunautaire, NIF, STAT, IBAN, BIC, téléphone
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateVatNumber(t *testing.T) {
	assert.True(t, validation.ValidateVatNumber("FR12345678901").IsValid)
	assert.True(t, validation.ValidateVatNumber("fr12345678901").IsValid, "casse indifférente")
	assert.True(t, validation.ValidateVatNumber("FR 12 345678901").IsValid, "espaces ignorés")
	assert.False(t, validation.ValidateVatNumber("DE12345678901").IsValid, "seul le format FR est supporté")
	assert.False(t, validation.ValidateVatNumber("FR1234567890").IsValid, "SIREN à 9 chiffres requis")
}

func TestValidateNif(t *testing.T) {
	assert.True(t, validation.ValidateNif("4019532272").IsValid)
	assert.True(t, validation.ValidateNif("40 195-32272").IsValid)
	assert.False(t, validation.ValidateNif("1234").IsValid, "moins de 5 caractères")
	assert.False(t, validation.ValidateNif("ABC123456").IsValid, "lettres interdites")
}

func TestValidateStat(t *testing.T) {
	assert.True(t, validation.ValidateStat("2410111200010023").IsValid)
	assert.True(t, validation.ValidateStat("ST-2410 1112").IsValid, "alphanumérique autorisé")
	assert.False(t, validation.ValidateStat("AB12").IsValid, "moins de 5 caractères")
}

func TestValidateIban(t *testing.T) {
	assert.True(t, validation.ValidateIban("FR7630006000011234567890189").IsValid)
	assert.True(t, validation.ValidateIban("fr76 3000 6000 0112 3456 7890 189").IsValid,
		"minuscules et espaces normalisés avant contrôle")
	assert.False(t, validation.ValidateIban("FR76").IsValid)
	assert.False(t, validation.ValidateIban("7630006000011234567890189").IsValid,
		"le code pays à 2 lettres est obligatoire")
}

func TestValidateBic(t *testing.T) {
	assert.True(t, validation.ValidateBic("BNPAFRPP").IsValid, "forme à 8 caractères")
	assert.True(t, validation.ValidateBic("BNPAFRPPXXX").IsValid, "forme à 11 caractères (agence)")
	assert.False(t, validation.ValidateBic("BNPAFRP").IsValid)
	assert.False(t, validation.ValidateBic("BNPAFRPPXXXX").IsValid)
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, validation.ValidatePhone("+33612345678").IsValid)
	assert.True(t, validation.ValidatePhone("06 12 34 56 78").IsValid)
	assert.True(t, validation.ValidatePhone("(0261) 20 222-33").IsValid)
	assert.False(t, validation.ValidatePhone("0612345").IsValid, "trop court (< 8)")
	assert.False(t, validation.ValidatePhone("06 12 34 56 78 90 12 34 56").IsValid, "trop long (> 20)")
	assert.False(t, validation.ValidatePhone("06abc45678").IsValid, "lettres interdites")
}

// ──────────────────────────────────────────────────────────────────────────────
// Nombres et dates
// ──────────────────────────────────────────────────────────────────────────────

func TestValidatePositiveNumber(t *testing.T) {
	assert.True(t, validation.ValidatePositiveNumber(12.5, "Quantité").IsValid)
	assert.True(t, validation.ValidatePositiveNumber(0, "Prix").IsValid, "zéro est accepté")

	r := validation.ValidatePositiveNumber(-1, "Prix")
	require.False(t, r.IsValid)
	assert.Equal(t, validation.KindNegativeValue, r.Kind)
	assert.Equal(t, "Prix doit être positif", r.Error)
}

func TestValidatePositiveNumber_NaN(t *testing.T) {
	r := validation.ValidatePositiveNumber(math.NaN(), "Quantité")
	require.False(t, r.IsValid)
	assert.Equal(t, validation.KindNotANumber, r.Kind)
	assert.Equal(t, "Quantité doit être un nombre", r.Error)
}

func TestValidateDate(t *testing.T) {
	assert.True(t, validation.ValidateDate("2026-08-29", "Date de facture").IsValid)
	assert.True(t, validation.ValidateDate("29/08/2026", "Date de facture").IsValid)

	r := validation.ValidateDate("", "Date de facture")
	require.False(t, r.IsValid)
	assert.Equal(t, validation.KindMissingField, r.Kind)
	assert.Equal(t, "Date de facture est requise", r.Error)

	r = validation.ValidateDate("pas-une-date", "Date de facture")
	require.False(t, r.IsValid)
	assert.Equal(t, validation.KindInvalidDate, r.Kind)
}

func TestValidateRequired(t *testing.T) {
	assert.True(t, validation.ValidateRequired("Rakoto", "Nom").IsValid)

	r := validation.ValidateRequired("   ", "Nom")
	require.False(t, r.IsValid)
	assert.Equal(t, validation.KindMissingField, r.Kind)
	assert.Equal(t, "Nom est requis", r.Error)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lignes d'articles
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateLineItems_CollectionVide(t *testing.T) {
	r := validation.ValidateLineItems(nil)
	require.False(t, r.IsValid)
	assert.Equal(t, validation.KindEmptyCollection, r.Kind)
	assert.Equal(t, "Au moins un article est requis", r.Error)
}

func TestValidateLineItems_NomManquant_PositionDansLeMessage(t *testing.T) {
	items := []entity.LineItem{{ID: "1", Name: "", Quantity: 1, UnitPrice: 0}}
	r := validation.ValidateLineItems(items)
	require.False(t, r.IsValid)
	assert.Equal(t, validation.KindMissingField, r.Kind)
	assert.Equal(t, "Article 1: le nom est requis", r.Error)
}

func TestValidateLineItems_EchecSurPremiereLigneFautive(t *testing.T) {
	// La ligne 2 a une quantité nulle ET la ligne 3 un prix négatif :
	// seule l'erreur de la ligne 2 doit remonter (court-circuit en ordre).
	items := []entity.LineItem{
		{ID: "1", Name: "Conseil", Quantity: 2, UnitPrice: 100},
		{ID: "2", Name: "Audit", Quantity: 0, UnitPrice: 50},
		{ID: "3", Name: "Formation", Quantity: 1, UnitPrice: -5},
	}
	r := validation.ValidateLineItems(items)
	require.False(t, r.IsValid)
	assert.Equal(t, validation.KindInvalidQuantity, r.Kind)
	assert.Equal(t, "Article 2: la quantité doit être positive", r.Error)
}

func TestValidateLineItems_PrixNegatif(t *testing.T) {
	items := []entity.LineItem{{ID: "1", Name: "Conseil", Quantity: 1, UnitPrice: -0.01}}
	r := validation.ValidateLineItems(items)
	require.False(t, r.IsValid)
	assert.Equal(t, validation.KindInvalidPrice, r.Kind)
	assert.Equal(t, "Article 1: le prix unitaire doit être positif ou nul", r.Error)
}

func TestValidateLineItems_PrixZeroAccepte(t *testing.T) {
	items := []entity.LineItem{{ID: "1", Name: "Geste commercial", Quantity: 1, UnitPrice: 0}}
	assert.True(t, validation.ValidateLineItems(items).IsValid)
}

// ──────────────────────────────────────────────────────────────────────────────
// Combine — « première erreur gagne »
// ──────────────────────────────────────────────────────────────────────────────

func TestCombine_PremiereErreurGagne(t *testing.T) {
	ok := validation.Valid()
	echecA := validation.Invalid(validation.KindInvalidFormat, "erreur A")
	echecB := validation.Invalid(validation.KindMissingField, "erreur B")

	r := validation.Combine(ok, echecA, echecB)
	require.False(t, r.IsValid)
	// Exactement l'échec A, indépendamment de la « gravité » de B.
	assert.Equal(t, echecA, r)
}

func TestCombine_TousValides(t *testing.T) {
	r := validation.Combine(validation.Valid(), validation.Valid())
	assert.True(t, r.IsValid)
}

func TestCombine_SansArguments(t *testing.T) {
	assert.True(t, validation.Combine().IsValid)
}

func TestCombine_OrdreStable(t *testing.T) {
	// La même liste d'entrées doit toujours rapporter le même message.
	echecs := []validation.Result{
		validation.Invalid(validation.KindInvalidFormat, "premier"),
		validation.Invalid(validation.KindInvalidChecksum, "second"),
	}
	for i := 0; i < 10; i++ {
		r := validation.Combine(echecs...)
		assert.Equal(t, "premier", r.Error, fmt.Sprintf("itération %d", i))
	}
}
