package billing

import (
	"context"

	"github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/entity"
)

// DocumentPDFGenerator rend un document persisté en PDF (octets).
type DocumentPDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice) ([]byte, error)
	GenerateQuotePDF(ctx context.Context, quote *entity.Quote) ([]byte, error)
}

// EmailMessage décrit l'envoi d'un document par email avec PDF joint.
type EmailMessage struct {
	DocType    string // "invoice" | "quote"
	ToName     string
	ToEmail    string
	FromName   string
	ReplyTo    string
	Subject    string
	BodyText   string
	Attachment []byte // contenu PDF
	AttachName string
}

// EmailSender envoie un email transactionnel. Un échec d'envoi est une
// erreur du flux principal (contrairement au webhook).
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// WebhookNotifier est un canal latéral « best effort » vers le moteur
// d'automatisation : l'implémentation journalise tout échec (réseau, CORS,
// statut HTTP) mais ne le propage jamais — Notify ne retourne pas d'erreur,
// le flux principal continue quoi qu'il arrive. Le contrat est dans la
// signature, pas dans un catch silencieux.
type WebhookNotifier interface {
	Notify(ctx context.Context, payload any)
}

// InvoiceXMLExporter exporte une facture en XML UBL pour les outils
// comptables.
type InvoiceXMLExporter interface {
	ExportInvoice(invoice *entity.Invoice) ([]byte, error)
}
