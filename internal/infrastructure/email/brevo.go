// Package email implémente l'envoi transactionnel via l'API REST Brevo
// (/v3/smtp/email), pièce jointe PDF encodée en base64.
package email

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	appbilling "github.com/mandaniainarandriambinintsoa/Factupro/internal/application/billing"
	"github.com/mandaniainarandriambinintsoa/Factupro/pkg/config"
)

// Vérification à la compilation que BrevoSender implémente EmailSender.
var _ appbilling.EmailSender = (*BrevoSender)(nil)

// BrevoSender adaptateur qui implémente EmailSender avec l'API REST Brevo.
type BrevoSender struct {
	cfg        config.EmailConfig
	httpClient *http.Client
}

// NewBrevoSender construit l'adaptateur. Avec une clé API vide, Send retourne
// une erreur descriptive au lieu de paniquer.
func NewBrevoSender(cfg config.EmailConfig) *BrevoSender {
	return &BrevoSender{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// ── Structures du protocole Brevo ─────────────────────────────────────────────

type brevoContact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type brevoAttachment struct {
	Name    string `json:"name"`
	Content string `json:"content"` // base64
}

type brevoRequest struct {
	Sender      brevoContact      `json:"sender"`
	To          []brevoContact    `json:"to"`
	ReplyTo     *brevoContact     `json:"replyTo,omitempty"`
	Subject     string            `json:"subject"`
	TextContent string            `json:"textContent"`
	Attachment  []brevoAttachment `json:"attachment,omitempty"`
}

type brevoError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Send envoie le message. Erreur si Brevo répond hors 2xx.
func (s *BrevoSender) Send(ctx context.Context, msg appbilling.EmailMessage) error {
	if !s.cfg.Enabled() {
		return fmt.Errorf("email: envoi non configuré (BREVO_API_KEY / EMAIL_FROM_EMAIL)")
	}

	req := brevoRequest{
		Sender:      brevoContact{Name: s.cfg.FromName, Email: s.cfg.FromEmail},
		To:          []brevoContact{{Name: msg.ToName, Email: msg.ToEmail}},
		Subject:     msg.Subject,
		TextContent: msg.BodyText,
	}
	if msg.FromName != "" {
		req.Sender.Name = msg.FromName
	}
	if msg.ReplyTo != "" {
		req.ReplyTo = &brevoContact{Name: msg.FromName, Email: msg.ReplyTo}
	}
	if len(msg.Attachment) > 0 {
		req.Attachment = []brevoAttachment{{
			Name:    msg.AttachName,
			Content: base64.StdEncoding.EncodeToString(msg.Attachment),
		}}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("email: encoder la requête: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.cfg.APIBaseURL+"/v3/smtp/email", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("email: construire la requête: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("api-key", s.cfg.APIKey)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("email: appel Brevo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		var apiErr brevoError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("email: Brevo %d: %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("email: Brevo %d: %s", resp.StatusCode, string(raw))
	}
	return nil
}
