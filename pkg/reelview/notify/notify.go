// Package notify alerts a human reviewer out-of-band when a video is
// ready to post. The collaborator is an opaque webhook; delivery is
// one-way with no retry.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Notifier posts review alerts to a configured webhook.
type Notifier struct {
	webhookURL string
	client     *http.Client
}

// New creates a notifier. An empty webhook URL yields a disabled
// notifier whose Send always reports non-delivery.
func New(webhookURL string) *Notifier {
	return &Notifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

type alertPayload struct {
	Caption  string `json:"caption"`
	Feedback string `json:"feedback"`
}

// Send delivers one alert carrying the caption and feedback text.
// Returns whether delivery succeeded and, when it did not, a message
// describing why.
func (n *Notifier) Send(ctx context.Context, caption, feedback string) (bool, string) {
	if n.webhookURL == "" {
		return false, "notifier not configured"
	}

	body, err := json.Marshal(alertPayload{Caption: caption, Feedback: feedback})
	if err != nil {
		return false, err.Error()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return false, err.Error()
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return false, err.Error()
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, fmt.Sprintf("webhook returned %d", resp.StatusCode)
	}
	return true, ""
}
