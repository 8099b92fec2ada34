package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/slack-go/slack"

	"ci-notifier/internal/notifier"
)

// Transport posts notifications to a Slack incoming webhook
type Transport struct {
	client *http.Client
}

var _ notifier.Transport = (*Transport)(nil)

// New returns a Slack transport. A nil client uses http.DefaultClient.
func New(client *http.Client) *Transport {
	if client == nil {
		client = http.DefaultClient
	}
	return &Transport{client: client}
}

func (t *Transport) Name() string { return "slack" }

func (t *Transport) Post(ctx context.Context, webhookURL string, body []byte) (notifier.Result, error) {
	var msg slack.WebhookMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return notifier.Result{}, fmt.Errorf("decode payload: %w", err)
	}
	if err := slack.PostWebhookCustomHTTPContext(ctx, webhookURL, t.client, &msg); err != nil {
		return notifier.Result{}, err
	}
	return notifier.Result{Output: []byte("ok")}, nil
}
