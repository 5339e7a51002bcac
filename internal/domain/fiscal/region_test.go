package fiscal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/entity"
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/fiscal"
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/validation"
)

func TestParseRegion(t *testing.T) {
	assert.Equal(t, fiscal.RegionEU, fiscal.ParseRegion("EU"))
	assert.Equal(t, fiscal.RegionMG, fiscal.ParseRegion("MG"))
	assert.Equal(t, fiscal.RegionNone, fiscal.ParseRegion("NONE"))
	assert.Equal(t, fiscal.RegionNone, fiscal.ParseRegion(""), "vide retombe sur NONE")
	assert.Equal(t, fiscal.RegionNone, fiscal.ParseRegion("US"), "code inconnu retombe sur NONE")
}

func TestFieldCodes_ParRegion(t *testing.T) {
	assert.Equal(t, []string{"siret", "tvaNumber"}, fiscal.RegionEU.FieldCodes())
	assert.Equal(t, []string{"nif", "stat"}, fiscal.RegionMG.FieldCodes())
	assert.Empty(t, fiscal.RegionNone.FieldCodes())
}

// Les champs hors région restent stockés mais ne doivent jamais être rendus.
func TestDisplayIdentifiers_FiltreParRegion(t *testing.T) {
	info := entity.FiscalInfo{
		Region:    "MG",
		NIF:       "4019532272",
		Stat:      "2410111200010023",
		Siret:     "73282932000074", // hors région: ignoré à l'affichage
		TVANumber: "FR12345678901",  // hors région: ignoré à l'affichage
	}
	ids := fiscal.DisplayIdentifiers(info)
	require.Len(t, ids, 2)
	assert.Equal(t, "NIF", ids[0].Label)
	assert.Equal(t, "40 195 32 272", ids[0].Value, "le NIF est formaté pour l'affichage")
	assert.Equal(t, "STAT", ids[1].Label)
	assert.Equal(t, "24101 11 2000 1 0023", ids[1].Value)
}

func TestDisplayIdentifiers_ChangementDeRegion(t *testing.T) {
	info := entity.FiscalInfo{
		Region: "EU",
		NIF:    "4019532272",
		Siret:  "73282932000074",
	}
	ids := fiscal.DisplayIdentifiers(info)
	require.Len(t, ids, 1)
	assert.Equal(t, "SIRET", ids[0].Label)

	// Basculer la région masque le SIRET sans que le NIF stocké soit perdu.
	info.Region = "MG"
	ids = fiscal.DisplayIdentifiers(info)
	require.Len(t, ids, 1)
	assert.Equal(t, "NIF", ids[0].Label)
}

func TestDisplayIdentifiers_SansRegion(t *testing.T) {
	info := entity.FiscalInfo{Region: "NONE", Siret: "73282932000074"}
	assert.Empty(t, fiscal.DisplayIdentifiers(info))
}

func TestValidateInfo_EU(t *testing.T) {
	// EU déclenche SIRET + TVA; les champs vides restent valides.
	assert.True(t, fiscal.ValidateInfo(entity.FiscalInfo{Region: "EU"}).IsValid)

	r := fiscal.ValidateInfo(entity.FiscalInfo{Region: "EU", Siret: "73282932000075"})
	require.False(t, r.IsValid)
	assert.Equal(t, validation.KindInvalidChecksum, r.Kind)

	r = fiscal.ValidateInfo(entity.FiscalInfo{Region: "EU", TVANumber: "DE123"})
	require.False(t, r.IsValid)
	assert.Equal(t, validation.KindInvalidFormat, r.Kind)
}

func TestValidateInfo_MG(t *testing.T) {
	assert.True(t, fiscal.ValidateInfo(entity.FiscalInfo{Region: "MG"}).IsValid)

	r := fiscal.ValidateInfo(entity.FiscalInfo{Region: "MG", NIF: "12"})
	require.False(t, r.IsValid)
	assert.Equal(t, "Format de NIF invalide", r.Error)
}

func TestValidateInfo_NONE_IgnoreToutesLesValeurs(t *testing.T) {
	// En région NONE aucun validateur régional ne s'applique, même si des
	// champs (malformés) sont renseignés.
	info := entity.FiscalInfo{Region: "NONE", Siret: "999", NIF: "x"}
	assert.True(t, fiscal.ValidateInfo(info).IsValid)
}

func TestValidateInfo_OrdreDesErreurs(t *testing.T) {
	// SIRET avant TVA : « première erreur gagne ».
	info := entity.FiscalInfo{Region: "EU", Siret: "123", TVANumber: "DE123"}
	r := fiscal.ValidateInfo(info)
	require.False(t, r.IsValid)
	assert.Equal(t, "Le SIRET doit contenir 14 chiffres", r.Error)
}
