package billing

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/mandaniainarandriambinintsoa/Factupro/internal/application/dto"
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/domain"
	domainbilling "github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/billing"
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/entity"
	"github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/fiscal"
	"github.com/mandaniainarandriambinintsoa/Factupro/pkg/logger"
)

// SendUseCase porte la sortie des documents : rendu PDF, envoi par email avec
// pièce jointe, export XML et notification du webhook d'automatisation.
type SendUseCase struct {
	invoices *InvoiceUseCase
	quotes   *QuoteUseCase
	pdf      DocumentPDFGenerator
	email    EmailSender
	webhook  WebhookNotifier
	xml      InvoiceXMLExporter
	log      *logger.Logger
}

// NewSendUseCase construit le cas d'usage. email, webhook et xml peuvent être
// nil si la fonctionnalité n'est pas configurée.
func NewSendUseCase(
	invoices *InvoiceUseCase,
	quotes *QuoteUseCase,
	pdf DocumentPDFGenerator,
	email EmailSender,
	webhook WebhookNotifier,
	xml InvoiceXMLExporter,
	log *logger.Logger,
) *SendUseCase {
	return &SendUseCase{
		invoices: invoices,
		quotes:   quotes,
		pdf:      pdf,
		email:    email,
		webhook:  webhook,
		xml:      xml,
		log:      log,
	}
}

// DownloadInvoicePDF rend la facture en PDF. Le rendu est mis en cache en
// base64 sur le document; les rendus suivants le resservent tel quel (le
// document est immuable hors statut).
func (uc *SendUseCase) DownloadInvoicePDF(ctx context.Context, userID, id string) ([]byte, string, error) {
	invoice, err := uc.invoices.getOwned(userID, id)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.invoicePDF(ctx, invoice)
	if err != nil {
		return nil, "", err
	}
	return pdf, invoiceFileName(invoice), nil
}

// DownloadQuotePDF rend le devis en PDF, avec le même cache que la facture.
func (uc *SendUseCase) DownloadQuotePDF(ctx context.Context, userID, id string) ([]byte, string, error) {
	quote, err := uc.quotes.getOwned(userID, id)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.quotePDF(ctx, quote)
	if err != nil {
		return nil, "", err
	}
	return pdf, quoteFileName(quote), nil
}

// SendInvoice envoie la facture par email au client avec le PDF joint, passe
// le statut à « envoyée » puis notifie le webhook. L'échec de l'email est une
// erreur; l'échec du webhook ne l'est jamais.
func (uc *SendUseCase) SendInvoice(ctx context.Context, userID, id string) (*dto.SendResponse, error) {
	invoice, err := uc.invoices.getOwned(userID, id)
	if err != nil {
		return nil, err
	}
	if uc.email == nil {
		return nil, domain.NewValidationError("L'envoi d'emails n'est pas configuré")
	}
	if invoice.ClientEmail == "" {
		return nil, domain.NewValidationError("Le client n'a pas d'adresse email")
	}
	pdf, err := uc.invoicePDF(ctx, invoice)
	if err != nil {
		return nil, err
	}
	msg := EmailMessage{
		DocType:    "invoice",
		ToName:     invoice.ClientName,
		ToEmail:    invoice.ClientEmail,
		FromName:   invoice.CompanyName,
		ReplyTo:    invoice.CompanyEmail,
		Subject:    fmt.Sprintf("Facture %s - %s", invoice.Number, invoice.CompanyName),
		BodyText:   invoiceEmailBody(invoice),
		Attachment: pdf,
		AttachName: invoiceFileName(invoice),
	}
	if err := uc.email.Send(ctx, msg); err != nil {
		return nil, fmt.Errorf("envoi de la facture %s: %w", invoice.Number, err)
	}
	if invoice.Status == entity.InvoiceStatusDraft {
		if err := uc.invoices.invoices.UpdateStatus(id, entity.InvoiceStatusSent); err != nil {
			return nil, err
		}
		invoice.Status = entity.InvoiceStatusSent
	}
	uc.notify(ctx, "invoice.sent", toInvoiceResponse(invoice))
	return &dto.SendResponse{Sent: true, Message: fmt.Sprintf("Facture %s envoyée à %s", invoice.Number, invoice.ClientEmail)}, nil
}

// SendQuote envoie le devis par email au client avec le PDF joint.
func (uc *SendUseCase) SendQuote(ctx context.Context, userID, id string) (*dto.SendResponse, error) {
	quote, err := uc.quotes.getOwned(userID, id)
	if err != nil {
		return nil, err
	}
	if uc.email == nil {
		return nil, domain.NewValidationError("L'envoi d'emails n'est pas configuré")
	}
	if quote.ClientEmail == "" {
		return nil, domain.NewValidationError("Le client n'a pas d'adresse email")
	}
	pdf, err := uc.quotePDF(ctx, quote)
	if err != nil {
		return nil, err
	}
	msg := EmailMessage{
		DocType:    "quote",
		ToName:     quote.ClientName,
		ToEmail:    quote.ClientEmail,
		FromName:   quote.CompanyName,
		ReplyTo:    quote.CompanyEmail,
		Subject:    fmt.Sprintf("Devis %s - %s", quote.Number, quote.CompanyName),
		BodyText:   quoteEmailBody(quote),
		Attachment: pdf,
		AttachName: quoteFileName(quote),
	}
	if err := uc.email.Send(ctx, msg); err != nil {
		return nil, fmt.Errorf("envoi du devis %s: %w", quote.Number, err)
	}
	if quote.Status == entity.QuoteStatusDraft {
		if err := uc.quotes.quotes.UpdateStatus(id, entity.QuoteStatusSent); err != nil {
			return nil, err
		}
		quote.Status = entity.QuoteStatusSent
	}
	uc.notify(ctx, "quote.sent", toQuoteResponse(quote))
	return &dto.SendResponse{Sent: true, Message: fmt.Sprintf("Devis %s envoyé à %s", quote.Number, quote.ClientEmail)}, nil
}

// NotifyInvoiceWebhook pousse la facture vers le webhook d'automatisation à la
// demande. Toujours un succès côté appelant : l'implémentation journalise les
// échecs sans les propager.
func (uc *SendUseCase) NotifyInvoiceWebhook(ctx context.Context, userID, id string) (*dto.SendResponse, error) {
	invoice, err := uc.invoices.getOwned(userID, id)
	if err != nil {
		return nil, err
	}
	uc.notify(ctx, "invoice.pushed", toInvoiceResponse(invoice))
	return &dto.SendResponse{Sent: true}, nil
}

// ExportInvoiceXML exporte la facture en XML UBL.
func (uc *SendUseCase) ExportInvoiceXML(userID, id string) ([]byte, string, error) {
	invoice, err := uc.invoices.getOwned(userID, id)
	if err != nil {
		return nil, "", err
	}
	if uc.xml == nil {
		return nil, "", domain.NewValidationError("L'export XML n'est pas configuré")
	}
	out, err := uc.xml.ExportInvoice(invoice)
	if err != nil {
		return nil, "", fmt.Errorf("export XML de la facture %s: %w", invoice.Number, err)
	}
	return out, fmt.Sprintf("facture-%s.xml", invoice.Number), nil
}

func (uc *SendUseCase) invoicePDF(ctx context.Context, invoice *entity.Invoice) ([]byte, error) {
	if invoice.PDFBase64 != "" {
		if pdf, err := base64.StdEncoding.DecodeString(invoice.PDFBase64); err == nil {
			return pdf, nil
		}
		// cache illisible : on régénère
	}
	pdf, err := uc.pdf.GenerateInvoicePDF(ctx, invoice)
	if err != nil {
		return nil, fmt.Errorf("rendu PDF de la facture %s: %w", invoice.Number, err)
	}
	encoded := base64.StdEncoding.EncodeToString(pdf)
	if err := uc.invoices.invoices.UpdatePDF(invoice.ID, encoded); err != nil {
		uc.log.Warn().Err(err).Str("invoice_id", invoice.ID).Msg("cache PDF non persisté")
	}
	invoice.PDFBase64 = encoded
	return pdf, nil
}

func (uc *SendUseCase) quotePDF(ctx context.Context, quote *entity.Quote) ([]byte, error) {
	if quote.PDFBase64 != "" {
		if pdf, err := base64.StdEncoding.DecodeString(quote.PDFBase64); err == nil {
			return pdf, nil
		}
	}
	pdf, err := uc.pdf.GenerateQuotePDF(ctx, quote)
	if err != nil {
		return nil, fmt.Errorf("rendu PDF du devis %s: %w", quote.Number, err)
	}
	encoded := base64.StdEncoding.EncodeToString(pdf)
	if err := uc.quotes.quotes.UpdatePDF(quote.ID, encoded); err != nil {
		uc.log.Warn().Err(err).Str("quote_id", quote.ID).Msg("cache PDF non persisté")
	}
	quote.PDFBase64 = encoded
	return pdf, nil
}

func (uc *SendUseCase) notify(ctx context.Context, event string, payload any) {
	if uc.webhook == nil {
		return
	}
	uc.webhook.Notify(ctx, map[string]any{"event": event, "data": payload})
}

func invoiceFileName(inv *entity.Invoice) string {
	return fmt.Sprintf("facture-%s.pdf", inv.Number)
}

func quoteFileName(q *entity.Quote) string {
	return fmt.Sprintf("devis-%s.pdf", q.Number)
}

func invoiceEmailBody(inv *entity.Invoice) string {
	body := fmt.Sprintf(
		"Bonjour %s,\n\nVeuillez trouver ci-joint la facture %s d'un montant de %s %s.",
		inv.ClientName, inv.Number, fiscal.FormatAmount(domainbilling.CalculateTotal(inv.Items)), inv.Currency,
	)
	if inv.DueDate != nil {
		body += fmt.Sprintf("\nDate d'échéance : %s.", inv.DueDate.Format("02/01/2006"))
	}
	body += fmt.Sprintf("\n\nCordialement,\n%s", inv.CompanyName)
	return body
}

func quoteEmailBody(q *entity.Quote) string {
	return fmt.Sprintf(
		"Bonjour %s,\n\nVeuillez trouver ci-joint le devis %s d'un montant de %s %s, valable jusqu'au %s.\n\nCordialement,\n%s",
		q.ClientName, q.Number, fiscal.FormatAmount(domainbilling.CalculateTotal(q.Items)), q.Currency,
		q.ValidityDate.Format("02/01/2006"), q.CompanyName,
	)
}
