package notifier

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// ErrDelivery wraps every failure reported by a Transport.
var ErrDelivery = errors.New("notification delivery failed")

// Resolver maps a webhook reference name to its URL.
type Resolver func(name string) (string, bool)

// Result is what a transport captured from a delivery attempt.
type Result struct {
	Output []byte
}

// Transport posts a JSON body to a destination.
type Transport interface {
	Name() string
	Post(ctx context.Context, destination string, body []byte) (Result, error)
}

// Report describes a single notification attempt.
type Report struct {
	Reference   string
	Destination string
	Payload     []byte
	Output      []byte
	Err         error
}

// Delivered reports whether the transport call succeeded.
func (r Report) Delivered() bool {
	return r.Err == nil
}

// Print writes the captured output and the delivery error, one line each.
func (r Report) Print(w io.Writer) error {
	errText := "None"
	if r.Err != nil {
		errText = r.Err.Error()
	}
	_, err := fmt.Fprintf(w, "output: %s\nerror: %s\n", r.Output, errText)
	return err
}

// Option configures a Sender.
type Option func(*Sender)

// WithResolver replaces the environment based resolver.
func WithResolver(resolve Resolver) Option {
	return func(s *Sender) {
		if resolve != nil {
			s.resolve = resolve
		}
	}
}

// WithWebhookSuffix overrides DefaultWebhookSuffix.
func WithWebhookSuffix(suffix string) Option {
	return func(s *Sender) {
		if suffix != "" {
			s.suffix = suffix
		}
	}
}

// WithRunsURL overrides DefaultRunsURL.
func WithRunsURL(runsURL string) Option {
	return func(s *Sender) {
		if runsURL != "" {
			s.runsURL = runsURL
		}
	}
}

// WithBestEffort toggles best-effort delivery. It is on by default.
func WithBestEffort(bestEffort bool) Option {
	return func(s *Sender) {
		s.bestEffort = bestEffort
	}
}

// WithTimeout bounds the transport call. Zero waits indefinitely.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Sender) {
		s.timeout = timeout
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Sender) {
		s.logger = logger
	}
}

// Sender builds and delivers failed build notifications.
type Sender struct {
	transport  Transport
	resolve    Resolver
	suffix     string
	runsURL    string
	bestEffort bool
	timeout    time.Duration
	logger     zerolog.Logger
}

// NewSender constructs a Sender delivering through transport.
func NewSender(transport Transport, opts ...Option) (*Sender, error) {
	if transport == nil {
		return nil, errors.New("notification transport required")
	}
	s := &Sender{
		transport:  transport,
		resolve:    os.LookupEnv,
		suffix:     DefaultWebhookSuffix,
		runsURL:    DefaultRunsURL,
		bestEffort: true,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// BestEffort reports whether delivery failures are swallowed.
func (s *Sender) BestEffort() bool {
	return s.bestEffort
}

// Notify sends the failed build notification for actor and runID.
// Exactly one transport call is made once the payload is built. Failures,
// including a payload that cannot be built, are recorded in the Report and
// only returned when the sender is not in best-effort mode.
func (s *Sender) Notify(ctx context.Context, actor, runID string) (Report, error) {
	report := Report{Reference: Destination(actor, s.suffix)}

	payload, err := BuildPayload(actor, runID, s.runsURL)
	if err != nil {
		report.Err = err
		if !s.bestEffort {
			return report, err
		}
		s.logger.Warn().Err(err).Str("reference", report.Reference).Msg("notification not sent, ignoring")
		return report, nil
	}
	report.Payload = payload

	report.Destination = report.Reference
	if url, ok := s.resolve(report.Reference); ok && url != "" {
		report.Destination = url
	} else {
		s.logger.Debug().Str("reference", report.Reference).Msg("webhook reference not resolved, forwarding name as-is")
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	s.logger.Debug().
		Str("transport", s.transport.Name()).
		Str("reference", report.Reference).
		Str("runID", runID).
		Msg("posting notification")

	result, err := s.transport.Post(ctx, report.Destination, payload)
	report.Output = result.Output
	if err != nil {
		report.Err = fmt.Errorf("%w: %s: %w", ErrDelivery, s.transport.Name(), err)
		if !s.bestEffort {
			return report, report.Err
		}
		s.logger.Warn().Err(err).Str("reference", report.Reference).Msg("notification delivery failed, ignoring")
	}

	return report, nil
}
