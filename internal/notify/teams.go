package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Notifier delivers run-outcome messages to the operator channel. The run
// controller sends exactly three kinds: success, already-up-to-date, failure.
type Notifier interface {
	Send(ctx context.Context, title, content string) error
}

// TeamsWebhook posts MessageCard payloads to a Microsoft Teams incoming
// webhook. The channel is fixed by the webhook URL.
type TeamsWebhook struct {
	url    string
	client *http.Client
}

func NewTeamsWebhook(url string, timeout time.Duration) *TeamsWebhook {
	return &TeamsWebhook{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type messageCard struct {
	Type    string `json:"@type"`
	Context string `json:"@context"`
	Title   string `json:"title"`
	Text    string `json:"text"`
}

func (t *TeamsWebhook) Send(ctx context.Context, title, content string) error {
	payload, err := json.Marshal(messageCard{
		Type:    "MessageCard",
		Context: "http://schema.org/extensions",
		Title:   title,
		Text:    content,
	})
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
