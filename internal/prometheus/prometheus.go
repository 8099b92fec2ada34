package prometheus

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const (
	DefaultJob = "ci_notifier"

	outcomeDelivered = "delivered"
	outcomeFailed    = "failed"
)

// Delivery is the outcome of one notification attempt
type Delivery struct {
	Actor     string
	Transport string
	Delivered bool
	Time      time.Time
}

// PushDelivery pushes the delivery counter and timestamp to a Prometheus Pushgateway.
func PushDelivery(ctx context.Context, pushgatewayURL, job string, delivery Delivery) error {
	if job == "" {
		job = DefaultJob
	}
	if delivery.Time.IsZero() {
		delivery.Time = time.Now()
	}

	notifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ci_notifier_notifications_total",
		Help: "Failed build notifications attempted, by transport and outcome.",
	}, []string{"transport", "outcome"})
	lastNotification := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ci_notifier_last_notification_timestamp_seconds",
		Help: "Unix time of the last notification attempt.",
	})

	outcome := outcomeDelivered
	if !delivery.Delivered {
		outcome = outcomeFailed
	}
	notifications.WithLabelValues(delivery.Transport, outcome).Inc()
	lastNotification.Set(float64(delivery.Time.Unix()))

	pusher := push.New(pushgatewayURL, job).
		Collector(notifications).
		Collector(lastNotification)
	if delivery.Actor != "" {
		pusher = pusher.Grouping("actor", delivery.Actor)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := pusher.AddContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics to Pushgateway: %w", err)
	}
	return nil
}
