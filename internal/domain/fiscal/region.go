// Package fiscal modélise les juridictions fiscales supportées et le
// formatage d'affichage des identifiants régionaux.
//
// La région (ensemble fermé NONE / EU / MG) pilote deux choses : quels champs
// identifiants sont collectés et affichés, et quels validateurs s'appliquent
// à l'enregistrement d'un profil. Les champs hors région ne sont jamais
// affichés même s'ils sont renseignés (changer de région masque les champs de
// l'ancienne région sans effacer les valeurs stockées).
package fiscal

import (
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/entity"
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/validation"
)

// Region est une juridiction fiscale supportée.
type Region string

const (
	RegionNone Region = entity.FiscalRegionNone
	RegionEU   Region = entity.FiscalRegionEU
	RegionMG   Region = entity.FiscalRegionMG
)

// Regions liste les juridictions supportées, dans l'ordre de présentation.
var Regions = []Region{RegionNone, RegionEU, RegionMG}

// ParseRegion normalise un code région. Tout code inconnu (y compris vide)
// retombe sur NONE : un profil sans information fiscale reste utilisable.
func ParseRegion(code string) Region {
	switch Region(code) {
	case RegionEU:
		return RegionEU
	case RegionMG:
		return RegionMG
	default:
		return RegionNone
	}
}

// Label retourne le libellé de présentation de la région.
func (r Region) Label() string {
	switch r {
	case RegionEU:
		return "Union Européenne (France)"
	case RegionMG:
		return "Madagascar"
	default:
		return "Aucune"
	}
}

// Identifier est un identifiant fiscal prêt pour l'affichage.
type Identifier struct {
	Code  string // clé technique: siret, tvaNumber, nif, stat
	Label string // libellé imprimé: SIRET, N° TVA, NIF, STAT
	Value string // valeur formatée pour lecture humaine
}

// FieldCodes retourne les clés des champs identifiants collectés pour la
// région : EU -> {siret, tvaNumber}, MG -> {nif, stat}, NONE -> aucun.
func (r Region) FieldCodes() []string {
	switch r {
	case RegionEU:
		return []string{"siret", "tvaNumber"}
	case RegionMG:
		return []string{"nif", "stat"}
	default:
		return nil
	}
}

// DisplayIdentifiers retourne les identifiants affichables d'un bloc fiscal,
// filtrés par sa région et formatés. Les champs renseignés mais étrangers à
// la région active sont ignorés; les champs vides ne sont pas émis.
func DisplayIdentifiers(info entity.FiscalInfo) []Identifier {
	var out []Identifier
	add := func(code, label, value string) {
		if value != "" {
			out = append(out, Identifier{Code: code, Label: label, Value: value})
		}
	}
	switch ParseRegion(info.Region) {
	case RegionEU:
		add("siret", "SIRET", info.Siret)
		add("tvaNumber", "N° TVA", info.TVANumber)
	case RegionMG:
		add("nif", "NIF", FormatNif(info.NIF))
		add("stat", "STAT", FormatStat(info.Stat))
	}
	return out
}

// ValidateInfo applique les validateurs de la région sélectionnée :
// EU déclenche SIRET + TVA, MG déclenche NIF + STAT, que les champs soient
// renseignés ou non (vide reste valide, renseigné-et-malformé est rejeté).
func ValidateInfo(info entity.FiscalInfo) validation.Result {
	switch ParseRegion(info.Region) {
	case RegionEU:
		return validation.Combine(
			validation.ValidateSiret(info.Siret),
			validation.ValidateVatNumber(info.TVANumber),
		)
	case RegionMG:
		return validation.Combine(
			validation.ValidateNif(info.NIF),
			validation.ValidateStat(info.Stat),
		)
	default:
		return validation.Valid()
	}
}
