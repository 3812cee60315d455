package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/hotdrive/rental-service/pkg/circuitbreaker"
	"github.com/hotdrive/rental-service/rental/internal/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	breakerWindow     = 10
	breakerCooldown   = 30 * time.Second
	breakerThreshold  = 0.5
	breakerProbeQuota = 2
)

// Mailer posts confirmation payloads to the mail webhook. Calls run through
// a circuit breaker so a dead webhook stops costing a timeout per event.
type Mailer struct {
	log        *zap.Logger
	client     *http.Client
	webhookURL string
	cb         *circuitbreaker.Breaker
}

func New(log *zap.Logger, webhookURL string) *Mailer {
	return &Mailer{
		log:        log.Named("mailer"),
		client:     &http.Client{Timeout: time.Minute},
		webhookURL: webhookURL,
		cb:         circuitbreaker.New(breakerWindow, breakerCooldown, breakerThreshold, breakerProbeQuota),
	}
}

func (m *Mailer) Send(ctx context.Context, payload model.NotificationPayload) error {
	if m.webhookURL == "" {
		m.log.Debug("webhook url not configured, dropping notification",
			zap.String("reference", payload.Reference))
		return nil
	}
	return m.cb.Call(func() error {
		return m.post(ctx, payload)
	})
}

func (m *Mailer) post(ctx context.Context, payload model.NotificationPayload) error {
	b := bytes.NewBuffer(nil)
	if err := json.NewEncoder(b).Encode(payload); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.webhookURL, b)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return errors.Errorf("mail webhook: status %d", resp.StatusCode)
	}
	m.log.Debug("confirmation delivered",
		zap.String("reference", payload.Reference),
		zap.String("email", payload.Email))
	return nil
}
