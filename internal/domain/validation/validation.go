// Package validation implémente le moteur de validation des champs
// structurés d'une société, d'un client, d'une facture ou d'un devis.
//
// Contrat commun : chaque validateur est une fonction pure qui reçoit la
// valeur d'un champ (plus, au besoin, un libellé lisible pour le message) et
// retourne un Result par valeur — jamais de panic, jamais d'error Go. Les
// champs identifiants (téléphone, SIRET, TVA, NIF, STAT, IBAN, BIC) sont
// optionnels : une valeur vide est valide, seule une valeur renseignée mais
// malformée est rejetée. Ce choix évite de bloquer la création d'un profil
// aux données fiscales incomplètes.
package validation

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
)

// Kind identifie la catégorie d'échec d'une validation. Toutes sont
// récupérables; la propagation se fait par valeur.
type Kind string

const (
	KindNone            Kind = ""
	KindMissingField    Kind = "MISSING_FIELD"
	KindInvalidFormat   Kind = "INVALID_FORMAT"
	KindInvalidChecksum Kind = "INVALID_CHECKSUM"
	KindInvalidQuantity Kind = "INVALID_QUANTITY"
	KindInvalidPrice    Kind = "INVALID_PRICE"
	KindEmptyCollection Kind = "EMPTY_COLLECTION"
	KindNotANumber      Kind = "NOT_A_NUMBER"
	KindNegativeValue   Kind = "NEGATIVE_VALUE"
	KindInvalidDate     Kind = "INVALID_DATE"
)

// Result est le résultat d'une validation. Quand IsValid est faux, Error
// contient toujours un message non vide lisible par l'utilisateur.
type Result struct {
	IsValid bool
	Kind    Kind
	Error   string
}

// Valid retourne un résultat de succès.
func Valid() Result { return Result{IsValid: true} }

// Invalid retourne un résultat d'échec avec sa catégorie et son message.
func Invalid(kind Kind, message string) Result {
	return Result{IsValid: false, Kind: kind, Error: message}
}

// Expressions de format. Les espaces internes sont retirés avant contrôle
// pour les identifiants qui s'écrivent usuellement groupés (SIRET, TVA, IBAN, BIC).
var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9\s\-().]{8,20}$`)
	siretRe = regexp.MustCompile(`^[0-9]{14}$`)
	vatRe   = regexp.MustCompile(`(?i)^FR[0-9A-Z]{2}[0-9]{9}$`)
	nifRe   = regexp.MustCompile(`^[0-9\s-]{5,20}$`)
	statRe  = regexp.MustCompile(`^[\w\s-]{5,30}$`)
	ibanRe  = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]{11,30}$`)
	bicRe   = regexp.MustCompile(`(?i)^[A-Z]{4}[A-Z]{2}[A-Z0-9]{2}([A-Z0-9]{3})?$`)
)

// ValidateRequired échoue si la valeur est vide ou uniquement blanche.
func ValidateRequired(value, fieldName string) Result {
	if strings.TrimSpace(value) == "" {
		return Invalid(KindMissingField, fmt.Sprintf("%s est requis", fieldName))
	}
	return Valid()
}

// ValidateEmail valide une adresse email (forme locale@domaine.tld).
func ValidateEmail(email string) Result {
	if strings.TrimSpace(email) == "" {
		return Invalid(KindMissingField, "L'email est requis")
	}
	if !emailRe.MatchString(email) {
		return Invalid(KindInvalidFormat, "Format d'email invalide")
	}
	return Valid()
}

// ValidatePhone valide un numéro de téléphone, format international ou local
// (+33612345678, 06 12 34 56 78, etc.). Champ optionnel : vide = valide.
func ValidatePhone(phone string) Result {
	if strings.TrimSpace(phone) == "" {
		return Valid()
	}
	if !phoneRe.MatchString(phone) {
		return Invalid(KindInvalidFormat, "Format de téléphone invalide")
	}
	return Valid()
}

// ValidateSiret valide un numéro SIRET français : 14 chiffres (espaces
// ignorés) puis clé de Luhn — chaque chiffre d'index pair (base 0, depuis la
// gauche) est doublé, 9 est retranché au-delà de 9, et la somme des 14
// chiffres résultants doit être un multiple de 10.
func ValidateSiret(siret string) Result {
	if strings.TrimSpace(siret) == "" {
		return Valid()
	}
	clean := stripSpaces(siret)
	if !siretRe.MatchString(clean) {
		return Invalid(KindInvalidFormat, "Le SIRET doit contenir 14 chiffres")
	}
	sum := 0
	for i := 0; i < 14; i++ {
		digit := int(clean[i] - '0')
		if i%2 == 0 {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
	}
	if sum%10 != 0 {
		return Invalid(KindInvalidChecksum, "Numéro SIRET invalide")
	}
	return Valid()
}

// ValidateVatNumber valide un numéro de TVA intracommunautaire français :
// FR + 2 caractères alphanumériques + 9 chiffres (SIREN), casse indifférente.
func ValidateVatNumber(vatNumber string) Result {
	if strings.TrimSpace(vatNumber) == "" {
		return Valid()
	}
	if !vatRe.MatchString(stripSpaces(vatNumber)) {
		return Invalid(KindInvalidFormat, "Format de N° TVA invalide (ex: FR12345678901)")
	}
	return Valid()
}

// ValidateNif valide un NIF (Numéro d'Identification Fiscale, Madagascar) :
// 5 à 20 caractères parmi chiffres, espaces et tirets.
func ValidateNif(nif string) Result {
	if strings.TrimSpace(nif) == "" {
		return Valid()
	}
	if !nifRe.MatchString(nif) {
		return Invalid(KindInvalidFormat, "Format de NIF invalide")
	}
	return Valid()
}

// ValidateStat valide un numéro STAT (immatriculation statistique,
// Madagascar) : 5 à 30 caractères alphanumériques, espaces ou tirets.
func ValidateStat(stat string) Result {
	if strings.TrimSpace(stat) == "" {
		return Valid()
	}
	if !statRe.MatchString(stat) {
		return Invalid(KindInvalidFormat, "Format de STAT invalide")
	}
	return Valid()
}

// ValidateIban valide un IBAN (contrôle de forme uniquement) : 2 lettres +
// 2 chiffres + 11 à 30 caractères alphanumériques, espaces ignorés.
func ValidateIban(iban string) Result {
	if strings.TrimSpace(iban) == "" {
		return Valid()
	}
	clean := strings.ToUpper(stripSpaces(iban))
	if !ibanRe.MatchString(clean) {
		return Invalid(KindInvalidFormat, "Format d'IBAN invalide")
	}
	return Valid()
}

// ValidateBic valide un BIC/SWIFT : 4 lettres (établissement) + 2 lettres
// (pays) + 2 alphanumériques (localité) + 3 alphanumériques optionnels
// (agence), casse indifférente.
func ValidateBic(bic string) Result {
	if strings.TrimSpace(bic) == "" {
		return Valid()
	}
	if !bicRe.MatchString(stripSpaces(bic)) {
		return Invalid(KindInvalidFormat, "Format de BIC invalide")
	}
	return Valid()
}

// ValidatePositiveNumber valide un nombre positif ou nul. NaN est rejeté
// comme non-nombre; zéro est accepté.
func ValidatePositiveNumber(value float64, fieldName string) Result {
	if math.IsNaN(value) {
		return Invalid(KindNotANumber, fmt.Sprintf("%s doit être un nombre", fieldName))
	}
	if value < 0 {
		return Invalid(KindNegativeValue, fmt.Sprintf("%s doit être positif", fieldName))
	}
	return Valid()
}

// Formats de date acceptés en entrée (ISO d'abord, puis les variantes
// usuelles des exports).
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
}

// ValidateDate échoue si la date est absente ou ne peut pas être interprétée
// comme une date calendaire.
func ValidateDate(value, fieldName string) Result {
	if strings.TrimSpace(value) == "" {
		return Invalid(KindMissingField, fmt.Sprintf("%s est requise", fieldName))
	}
	if _, err := ParseDate(value); err != nil {
		return Invalid(KindInvalidDate, fmt.Sprintf("%s invalide", fieldName))
	}
	return Valid()
}

// ParseDate interprète une date selon les formats acceptés.
func ParseDate(value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("validation: date inintelligible %q", value)
}

// Combine retourne le premier résultat en échec, ou le succès si aucun.
// La composition est un court-circuit gauche→droite : l'ordre de la liste
// détermine quelle erreur est rapportée quand plusieurs champs sont invalides
// en même temps. Les appelants s'appuient sur ce déterminisme (« première
// erreur gagne ») pour qu'une même entrée invalide produise toujours le même
// message.
func Combine(results ...Result) Result {
	for _, r := range results {
		if !r.IsValid {
			return r
		}
	}
	return Valid()
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, s)
}
