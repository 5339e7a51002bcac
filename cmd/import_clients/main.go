// import_clients génère un script SQL pour importer des profils clients depuis
// un export CSV (logiciel de facturation précédent, carnet d'adresses...).
//
// Usage: go run ./cmd/import_clients <user-id> [chemin/clients.csv]
// Par défaut lit clients.csv dans le répertoire courant.
// Colonnes attendues (avec en-tête): name,email,phone,address,region,nif,stat,siret,tva_number
// Les exports en Latin-1 (ISO-8859-1) sont détectés et convertis en UTF-8.
// Écrit: import_clients.sql dans le répertoire courant.
//
// Les lignes dont l'email, le téléphone ou les identifiants fiscaux sont
// invalides sont ignorées avec un avertissement, jamais insérées à moitié.
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/entity"
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/fiscal"
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/validation"
)

type row struct {
	name, email, phone, address string
	info                        entity.FiscalInfo
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: import_clients <user-id> [clients.csv]")
		os.Exit(1)
	}
	userID := os.Args[1]
	csvPath := "clients.csv"
	if len(os.Args) > 2 {
		csvPath = os.Args[2]
	}

	raw, err := os.ReadFile(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Lecture CSV: %v\n", err)
		os.Exit(1)
	}

	var reader io.Reader = strings.NewReader(string(raw))
	if !utf8.Valid(raw) {
		// Export Latin-1 d'un outil legacy
		reader = transform.NewReader(strings.NewReader(string(raw)), charmap.ISO8859_1.NewDecoder())
	}

	dec := csv.NewReader(reader)
	dec.FieldsPerRecord = 9
	dec.TrimLeadingSpace = true

	header, err := dec.Read()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Lecture en-tête: %v\n", err)
		os.Exit(1)
	}
	if len(header) == 0 || !strings.EqualFold(strings.TrimSpace(header[0]), "name") {
		fmt.Fprintln(os.Stderr, "En-tête attendu: name,email,phone,address,region,nif,stat,siret,tva_number")
		os.Exit(1)
	}

	var rows []row
	line := 1
	for {
		rec, err := dec.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			fmt.Fprintf(os.Stderr, "Ligne %d ignorée: %v\n", line, err)
			continue
		}
		r := row{
			name:    strings.TrimSpace(rec[0]),
			email:   strings.TrimSpace(rec[1]),
			phone:   strings.TrimSpace(rec[2]),
			address: strings.TrimSpace(rec[3]),
			info: entity.FiscalInfo{
				Region:    string(fiscal.ParseRegion(strings.TrimSpace(rec[4]))),
				NIF:       strings.TrimSpace(rec[5]),
				Stat:      strings.TrimSpace(rec[6]),
				Siret:     strings.TrimSpace(rec[7]),
				TVANumber: strings.TrimSpace(rec[8]),
			},
		}
		if msg, ok := check(r); !ok {
			fmt.Fprintf(os.Stderr, "Ligne %d ignorée: %s\n", line, msg)
			continue
		}
		rows = append(rows, r)
	}

	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "Aucune ligne valide, rien à générer")
		os.Exit(1)
	}

	outPath := "import_clients.sql"
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Création fichier: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	fmt.Fprintf(out, "-- Import de %d profils clients (généré depuis %s)\n\n", len(rows), csvPath)
	for _, r := range rows {
		fmt.Fprintf(out,
			"INSERT INTO clients (user_id, name, email, phone, address, fiscal_region, fiscal_nif, fiscal_stat, fiscal_siret, fiscal_tva_number)\n"+
				"VALUES ('%s', '%s', '%s', '%s', '%s', '%s', '%s', '%s', '%s', '%s');\n",
			escapeSQL(userID), escapeSQL(r.name), escapeSQL(r.email), escapeSQL(r.phone),
			escapeSQL(r.address), r.info.Region, escapeSQL(r.info.NIF), escapeSQL(r.info.Stat),
			escapeSQL(r.info.Siret), escapeSQL(r.info.TVANumber))
	}

	fmt.Printf("Généré %s: %d clients\n", outPath, len(rows))
}

// check applique les mêmes règles que la création de client via l'API.
func check(r row) (string, bool) {
	if res := validation.ValidateRequired(r.name, "Le nom"); !res.IsValid {
		return res.Error, false
	}
	if r.email != "" {
		if res := validation.ValidateEmail(r.email); !res.IsValid {
			return res.Error, false
		}
	}
	if res := validation.ValidatePhone(r.phone); !res.IsValid {
		return res.Error, false
	}
	if res := fiscal.ValidateInfo(r.info); !res.IsValid {
		return res.Error, false
	}
	return "", true
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
