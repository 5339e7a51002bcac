package fiscal

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Fonctions de formatage pur pour l'affichage : elles ne valident rien, elles
// remettent en forme des chaînes déjà acceptées. Les espaces internes sont
// retirés avant regroupement, ce qui les rend sûres sur une entrée déjà
// formatée (ré-appliquer le formatage ne change pas le résultat).

// FormatNif formate un NIF pour l'affichage : groupes 2-3-2-3 séparés par des
// espaces à partir de 10 chiffres, ex. "4019532272" -> "40 195 32 272".
// En dessous de 10 chiffres la valeur est rendue telle quelle, sans
// regroupement. Les chiffres au-delà du dixième ne sont pas rendus.
func FormatNif(nif string) string {
	digits := stripSpaces(nif)
	if len(digits) >= 10 {
		return digits[0:2] + " " + digits[2:5] + " " + digits[5:7] + " " + digits[7:10]
	}
	return digits
}

// FormatStat formate un numéro STAT : groupes 5-2-4-1-(reste) à partir de
// 16 chiffres. En dessous de 16, repli sur un regroupement générique par
// milliers (groupes de 3 depuis la droite).
func FormatStat(stat string) string {
	digits := stripSpaces(stat)
	if len(digits) >= 16 {
		return digits[0:5] + " " + digits[5:7] + " " + digits[7:11] + " " + digits[11:12] + " " + digits[12:]
	}
	return groupThousands(digits)
}

// FormatAmount formate un montant monétaire : exactement deux décimales, puis
// espace comme séparateur de milliers dans la partie entière
// (ex. 1234.5 -> "1 234.50"). L'arrondi n'intervient qu'ici, jamais pendant
// le calcul des totaux.
func FormatAmount(value float64) string {
	fixed := decimal.NewFromFloat(value).StringFixed(2)

	neg := strings.HasPrefix(fixed, "-")
	if neg {
		fixed = fixed[1:]
	}
	intPart, decPart, _ := strings.Cut(fixed, ".")
	out := groupThousands(intPart) + "." + decPart
	if neg {
		out = "-" + out
	}
	return out
}

// groupThousands insère un espace tous les 3 caractères depuis la droite.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var b strings.Builder
	first := n % 3
	if first > 0 {
		b.WriteString(s[:first])
	}
	for i := first; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, s)
}
