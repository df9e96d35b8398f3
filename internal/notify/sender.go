package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// Sender delivers one templated message to a recipient. Template rendering
// and mail transport live behind the webhook; this side only supplies the
// template name and its flat data map.
type Sender interface {
	Send(ctx context.Context, recipientEmail string, p Payload) error
}

type message struct {
	To       string            `json:"to"`
	Template string            `json:"template"`
	Data     map[string]string `json:"data"`
}

// WebhookSender POSTs messages to the mail service.
type WebhookSender struct {
	url    string
	client *http.Client
}

func NewWebhookSender(url string) *WebhookSender {
	return &WebhookSender{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *WebhookSender) Send(ctx context.Context, recipientEmail string, p Payload) error {
	body, err := json.Marshal(message{
		To:       recipientEmail,
		Template: p.Template(),
		Data:     p.Data(),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notify webhook returned %d for template %s", resp.StatusCode, p.Template())
	}
	return nil
}

// LogSender stands in when no webhook is configured.
type LogSender struct{}

func (LogSender) Send(_ context.Context, recipientEmail string, p Payload) error {
	log.Printf("[NOTIFY] [INFO] template=%s to=%s data=%v", p.Template(), recipientEmail, p.Data())
	return nil
}

// NewSender picks the webhook sender when a URL is configured.
func NewSender(webhookURL string) Sender {
	if webhookURL == "" {
		log.Println("[NOTIFY] [INFO] no webhook configured, logging notifications")
		return LogSender{}
	}
	return NewWebhookSender(webhookURL)
}
