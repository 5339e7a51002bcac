// Package pdf implémente le rendu PDF des factures et devis avec Maroto v2.
//
// Mise en page A4 :
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  EN-TÊTE : Société + identifiants fiscaux │ N° + dates      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ÉMETTEUR : adresse / tél / email / IBAN / BIC               │
//	│  CLIENT : nom + identifiants fiscaux + contact               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLEAU : Qté | Description | P.U. HT | Montant             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAUX : Sous-total / TVA 0 % / TOTAL                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PIED : moyen de paiement + notes                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	domainbilling "github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/billing"
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/entity"
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/fiscal"
)

var (
	colorPrimary = &props.Color{Red: 30, Green: 64, Blue: 175}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoGenerator implémente billing.DocumentPDFGenerator avec Maroto v2.
type MarotoGenerator struct{}

// NewMarotoGenerator construit le générateur.
func NewMarotoGenerator() *MarotoGenerator { return &MarotoGenerator{} }

// GenerateInvoicePDF rend la facture et retourne les octets du PDF.
func (g *MarotoGenerator) GenerateInvoicePDF(_ context.Context, invoice *entity.Invoice) ([]byte, error) {
	doc := documentLayout{
		title:       "FACTURE",
		number:      invoice.Number,
		dateLabel:   "Date : " + invoice.Date.Format("02/01/2006"),
		companyName: invoice.CompanyName,
		companyIDs:  fiscal.DisplayIdentifiers(invoice.CompanyFiscal),
		address:     invoice.CompanyAddress,
		email:       invoice.CompanyEmail,
		phone:       invoice.CompanyPhone,
		clientName:  invoice.ClientName,
		clientIDs:   fiscal.DisplayIdentifiers(invoice.ClientFiscal),
		clientLine: contactLine(map[string]string{
			"Adresse": invoice.ClientAddress,
			"Email":   invoice.ClientEmail,
			"Tél":     invoice.ClientPhone,
		}),
		items:         invoice.Items,
		currency:      invoice.Currency,
		paymentMethod: invoice.PaymentMethod,
		notes:         invoice.Notes,
	}
	if invoice.DueDate != nil {
		doc.secondDate = "Échéance : " + invoice.DueDate.Format("02/01/2006")
	}
	return doc.render(invoice.CompanyName, "Facture "+invoice.Number)
}

// GenerateQuotePDF rend le devis et retourne les octets du PDF.
func (g *MarotoGenerator) GenerateQuotePDF(_ context.Context, quote *entity.Quote) ([]byte, error) {
	doc := documentLayout{
		title:       "DEVIS",
		number:      quote.Number,
		dateLabel:   "Date : " + quote.Date.Format("02/01/2006"),
		secondDate:  "Valable jusqu'au : " + quote.ValidityDate.Format("02/01/2006"),
		companyName: quote.CompanyName,
		companyIDs:  fiscal.DisplayIdentifiers(quote.CompanyFiscal),
		address:     quote.CompanyAddress,
		email:       quote.CompanyEmail,
		phone:       quote.CompanyPhone,
		clientName:  quote.ClientName,
		clientIDs:   fiscal.DisplayIdentifiers(quote.ClientFiscal),
		clientLine: contactLine(map[string]string{
			"Adresse": quote.ClientAddress,
			"Email":   quote.ClientEmail,
			"Tél":     quote.ClientPhone,
		}),
		items:         quote.Items,
		currency:      quote.Currency,
		paymentMethod: quote.PaymentMethod,
		notes:         quote.Notes,
	}
	return doc.render(quote.CompanyName, "Devis "+quote.Number)
}

// documentLayout porte les champs communs aux deux mises en page.
type documentLayout struct {
	title       string
	number      string
	dateLabel   string
	secondDate  string
	companyName string
	companyIDs  []fiscal.Identifier
	address     string
	email       string
	phone       string
	clientName  string
	clientIDs   []fiscal.Identifier
	clientLine  string

	items         []entity.LineItem
	currency      string
	paymentMethod string
	notes         string
}

func (d documentLayout) render(author, title string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(d.headerRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(d.issuerRow())
	m.AddRows(d.clientRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(d.items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(d.totalsRow())

	for _, r := range d.footerRows() {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: générer le document: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow : société + identifiants fiscaux (gauche), titre + numéro + dates
// (droite). Seuls les identifiants de la région active sont affichés.
func (d documentLayout) headerRow() core.Row {
	left := []core.Component{
		text.New(d.companyName, props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
		}),
	}
	top := 9.0
	for _, id := range d.companyIDs {
		left = append(left, text.New(id.Label+" : "+id.Value, props.Text{
			Size: 8, Top: top, Color: colorGray,
		}))
		top += 4
	}

	right := []core.Component{
		text.New(d.title, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
		}),
		text.New(d.number, props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
		}),
		text.New(d.dateLabel, props.Text{
			Size: 8, Align: align.Right, Top: 14, Color: colorGray,
		}),
	}
	if d.secondDate != "" {
		right = append(right, text.New(d.secondDate, props.Text{
			Size: 8, Align: align.Right, Top: 18, Color: colorGray,
		}))
	}

	return row.New(24).Add(
		col.New(7).Add(left...),
		col.New(5).Add(right...),
	)
}

// issuerRow : coordonnées de l'émetteur.
func (d documentLayout) issuerRow() core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("ÉMETTEUR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(contactLine(map[string]string{
				"Adresse": d.address,
				"Tél":     d.phone,
				"Email":   d.email,
			}), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// clientRow : destinataire du document.
func (d documentLayout) clientRow() core.Row {
	components := []core.Component{
		text.New("CLIENT", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}),
		text.New(d.clientName, props.Text{
			Style: fontstyle.Bold, Size: 10, Top: 6,
		}),
	}
	top := 12.0
	if d.clientLine != "" {
		components = append(components, text.New(d.clientLine, props.Text{
			Size: 8, Top: top, Color: colorGray,
		}))
		top += 4
	}
	for _, id := range d.clientIDs {
		components = append(components, text.New(id.Label+" : "+id.Value, props.Text{
			Size: 8, Top: top, Color: colorGray,
		}))
		top += 4
	}
	return row.New(top + 2).Add(col.New(12).Add(components...))
}

// tableHeaderRow : en-tête du tableau des articles.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qté", 1, align.Center),
		h("Description", 6, align.Left),
		h("P.U. HT", 2, align.Right),
		h("Montant", 3, align.Right),
	)
}

// tableItemRows : une ligne par article.
func tableItemRows(items []entity.LineItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, item := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				formatQuantity(item.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				item.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				fiscal.FormatAmount(item.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				fiscal.FormatAmount(domainbilling.LineAmount(item)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow : sous-total, TVA et total, alignés à droite.
func (d documentLayout) totalsRow() core.Row {
	total := domainbilling.CalculateTotal(d.items)
	symbol := domainbilling.CurrencySymbol(d.currency)

	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1,
		})
	}

	amount := fiscal.FormatAmount(total) + " " + symbol

	return row.New(22).Add(
		col.New(4),
		col.New(4).Add(
			label("Sous-total HT :"),
			label(fmt.Sprintf("TVA (%d %%) :", domainbilling.TaxRatePercent)),
			grandLabel("TOTAL :"),
		),
		col.New(4).Add(
			value(amount),
			value(fiscal.FormatAmount(0)+" "+symbol),
			grandValue(amount),
		),
	)
}

// footerRows : moyen de paiement et notes libres.
func (d documentLayout) footerRows() []core.Row {
	var rows []core.Row
	if d.paymentMethod != "" {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Moyen de paiement : "+d.paymentMethod, props.Text{Size: 8, Top: 1}),
		)))
	}
	if d.notes != "" {
		rows = append(rows,
			row.New(2),
			row.New(10).Add(col.New(12).Add(
				text.New("Notes :", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1}),
				text.New(d.notes, props.Text{Size: 8, Top: 5, Color: colorGray}),
			)),
		)
	}
	return rows
}

// contactLine assemble "Clé : valeur | Clé : valeur" en omettant les vides.
// L'ordre d'itération d'une map n'étant pas stable, les clés sont parcourues
// dans un ordre fixe.
func contactLine(fields map[string]string) string {
	var parts []string
	for _, key := range []string{"Adresse", "Tél", "Email"} {
		if v := fields[key]; v != "" {
			parts = append(parts, key+" : "+v)
		}
	}
	return strings.Join(parts, "   |   ")
}

// formatQuantity affiche les quantités entières sans décimales.
func formatQuantity(q float64) string {
	if q == float64(int64(q)) {
		return fmt.Sprintf("%d", int64(q))
	}
	return fmt.Sprintf("%g", q)
}
