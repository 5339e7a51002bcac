// Package ubl exporte une facture au format UBL 2.1 (Invoice) pour les outils
// comptables. Export non signé : pas d'extension de signature électronique.
package ubl

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	domainbilling "github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/billing"
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/entity"
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/fiscal"
)

const (
	NamespaceInvoice = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	NamespaceCAC     = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	NamespaceCBC     = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"
)

// Builder construit le document UBL.
type Builder struct{}

// NewBuilder construit l'exporteur.
func NewBuilder() *Builder { return &Builder{} }

// ExportInvoice sérialise la facture en XML UBL 2.1 indenté.
func (b *Builder) ExportInvoice(invoice *entity.Invoice) ([]byte, error) {
	if invoice == nil {
		return nil, fmt.Errorf("ubl: facture nil")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("Invoice")
	root.CreateAttr("xmlns", NamespaceInvoice)
	root.CreateAttr("xmlns:cac", NamespaceCAC)
	root.CreateAttr("xmlns:cbc", NamespaceCBC)

	root.CreateElement("cbc:UBLVersionID").SetText("2.1")
	root.CreateElement("cbc:ID").SetText(invoice.Number)
	root.CreateElement("cbc:IssueDate").SetText(invoice.Date.Format("2006-01-02"))
	if invoice.DueDate != nil {
		root.CreateElement("cbc:DueDate").SetText(invoice.DueDate.Format("2006-01-02"))
	}
	root.CreateElement("cbc:InvoiceTypeCode").SetText("380") // facture commerciale
	if invoice.Notes != "" {
		root.CreateElement("cbc:Note").SetText(invoice.Notes)
	}
	root.CreateElement("cbc:DocumentCurrencyCode").SetText(invoice.Currency)

	appendParty(root, "cac:AccountingSupplierParty", partyInfo{
		name:    invoice.CompanyName,
		address: invoice.CompanyAddress,
		email:   invoice.CompanyEmail,
		phone:   invoice.CompanyPhone,
		fiscal:  invoice.CompanyFiscal,
	})
	appendParty(root, "cac:AccountingCustomerParty", partyInfo{
		name:    invoice.ClientName,
		address: invoice.ClientAddress,
		email:   invoice.ClientEmail,
		phone:   invoice.ClientPhone,
		fiscal:  invoice.ClientFiscal,
	})

	if invoice.PaymentMethod != "" {
		means := root.CreateElement("cac:PaymentMeans")
		means.CreateElement("cbc:InstructionNote").SetText(invoice.PaymentMethod)
	}

	total := decimal.NewFromFloat(domainbilling.CalculateTotal(invoice.Items)).Round(2)

	taxTotal := root.CreateElement("cac:TaxTotal")
	amountWithCurrency(taxTotal, "cbc:TaxAmount", decimal.Zero, invoice.Currency)

	monetary := root.CreateElement("cac:LegalMonetaryTotal")
	amountWithCurrency(monetary, "cbc:LineExtensionAmount", total, invoice.Currency)
	amountWithCurrency(monetary, "cbc:TaxExclusiveAmount", total, invoice.Currency)
	amountWithCurrency(monetary, "cbc:TaxInclusiveAmount", total, invoice.Currency)
	amountWithCurrency(monetary, "cbc:PayableAmount", total, invoice.Currency)

	for i, item := range invoice.Items {
		appendInvoiceLine(root, i+1, item, invoice.Currency)
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}

type partyInfo struct {
	name    string
	address string
	email   string
	phone   string
	fiscal  entity.FiscalInfo
}

// appendParty ajoute un bloc fournisseur ou client. Les identifiants fiscaux
// suivent la région active : les champs hors région ne sortent jamais.
func appendParty(root *etree.Element, tag string, info partyInfo) {
	wrapper := root.CreateElement(tag)
	party := wrapper.CreateElement("cac:Party")

	partyName := party.CreateElement("cac:PartyName")
	partyName.CreateElement("cbc:Name").SetText(info.name)

	if info.address != "" {
		address := party.CreateElement("cac:PostalAddress")
		line := address.CreateElement("cac:AddressLine")
		line.CreateElement("cbc:Line").SetText(info.address)
	}

	for _, id := range fiscal.DisplayIdentifiers(info.fiscal) {
		scheme := party.CreateElement("cac:PartyTaxScheme")
		companyID := scheme.CreateElement("cbc:CompanyID")
		companyID.CreateAttr("schemeName", id.Code)
		companyID.SetText(id.Value)
		taxScheme := scheme.CreateElement("cac:TaxScheme")
		taxScheme.CreateElement("cbc:ID").SetText("VAT")
	}

	if info.email != "" || info.phone != "" {
		contact := party.CreateElement("cac:Contact")
		if info.phone != "" {
			contact.CreateElement("cbc:Telephone").SetText(info.phone)
		}
		if info.email != "" {
			contact.CreateElement("cbc:ElectronicMail").SetText(info.email)
		}
	}
}

func appendInvoiceLine(root *etree.Element, position int, item entity.LineItem, currency string) {
	line := root.CreateElement("cac:InvoiceLine")
	line.CreateElement("cbc:ID").SetText(fmt.Sprintf("%d", position))

	qty := line.CreateElement("cbc:InvoicedQuantity")
	qty.CreateAttr("unitCode", "C62") // unité
	qty.SetText(decimal.NewFromFloat(item.Quantity).String())

	amount := decimal.NewFromFloat(domainbilling.LineAmount(item)).Round(2)
	amountWithCurrency(line, "cbc:LineExtensionAmount", amount, currency)

	itemEl := line.CreateElement("cac:Item")
	itemEl.CreateElement("cbc:Name").SetText(item.Name)

	price := line.CreateElement("cac:Price")
	amountWithCurrency(price, "cbc:PriceAmount", decimal.NewFromFloat(item.UnitPrice).Round(2), currency)
}

func amountWithCurrency(parent *etree.Element, tag string, amount decimal.Decimal, currency string) {
	el := parent.CreateElement(tag)
	el.CreateAttr("currencyID", currency)
	el.SetText(amount.StringFixed(2))
}
