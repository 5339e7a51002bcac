// Package webhook pousse les documents vers le moteur d'automatisation
// externe. Canal strictement best effort : tout échec est journalisé en
// warning et jamais propagé, le flux principal (PDF, email, statut) continue.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	appbilling "github.com/mandaniainarandriambinintsoa/Factupro/internal/application/billing"
	"github.com/mandaniainarandriambinintsoa/Factupro/pkg/config"
	"github.com/mandaniainarandriambinintsoa/Factupro/pkg/logger"
)

// Vérification à la compilation que Notifier implémente WebhookNotifier.
var _ appbilling.WebhookNotifier = (*Notifier)(nil)

// Notifier POST le payload JSON vers l'URL configurée.
type Notifier struct {
	url        string
	httpClient *http.Client
	log        *logger.Logger
}

// NewNotifier construit le notificateur. URL vide = notifications désactivées
// (Notify devient un no-op silencieux).
func NewNotifier(cfg config.WebhookConfig, log *logger.Logger) *Notifier {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Notifier{
		url:        cfg.URL,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// Notify envoie le payload. Ne retourne rien : un statut HTTP hors 2xx ou une
// erreur réseau se journalise en warning et s'arrête là.
func (n *Notifier) Notify(ctx context.Context, payload any) {
	if n.url == "" {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		n.log.Warn().Err(err).Msg("webhook: payload non sérialisable")
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		n.log.Warn().Err(err).Str("url", n.url).Msg("webhook: requête invalide")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		n.log.Warn().Err(err).Str("url", n.url).Msg("webhook: transfert échoué, flux principal poursuivi")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		n.log.Warn().Int("status", resp.StatusCode).Str("url", n.url).
			Msg("webhook: statut HTTP non 2xx, flux principal poursuivi")
	}
}
