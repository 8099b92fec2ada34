package notifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultWebhookSuffix is appended to the upper-cased actor to name the webhook
	DefaultWebhookSuffix = "_WEBHOOK"

	// DefaultRunsURL is the base of the link to a workflow run
	DefaultRunsURL = "https://github.com/solo-io/gloo/actions/runs/"
)

// ErrInvalidUTF8 is returned when the actor or run id is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("payload text is not valid UTF-8")

// Message is the JSON body posted to the webhook.
type Message struct {
	Text string `json:"text"`
}

// Destination returns the webhook reference name for actor.
func Destination(actor, suffix string) string {
	return strings.ToUpper(actor) + suffix
}

// Text returns the human readable notification line.
func Text(actor, runID, runsURL string) string {
	return "Hey `" + actor + "`! I noticed that your <" + runsURL + runID + "|PR build has failed>"
}

// BuildPayload serializes the notification for actor and runID.
// HTML escaping is disabled so the Slack link markup stays literal. Invalid
// UTF-8 is rejected rather than replaced with U+FFFD.
func BuildPayload(actor, runID, runsURL string) ([]byte, error) {
	text := Text(actor, runID, runsURL)
	if !utf8.ValidString(text) {
		return nil, ErrInvalidUTF8
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(Message{Text: text}); err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
