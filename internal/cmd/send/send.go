package send

import (
	"ci-notifier/api/v1alpha1"
	"ci-notifier/internal/config"
	"ci-notifier/internal/curl"
	"ci-notifier/internal/globals"
	"ci-notifier/internal/logger"
	"ci-notifier/internal/notifier"
	"ci-notifier/internal/prometheus"
	"ci-notifier/internal/slack"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const (
	descriptionShort = `Send a failed pull request build notification`
	descriptionLong  = `
	Send a failed pull request build notification to <ACTOR>_WEBHOOK.

	Usage: send <actor> <run_id>

	The webhook URL is looked up in the environment under the upper-cased actor
	followed by _WEBHOOK. When it is not set, the name itself is handed to the
	HTTP client. Delivery failures are printed and ignored unless --strict is set.`
)

// dependencies are the collaborators a send run talks to
type dependencies struct {
	resolver   notifier.Resolver
	executor   curl.Executor
	httpClient *http.Client
}

func NewCommand() *cobra.Command {
	return newCommand(dependencies{
		resolver: globals.LookupEnv,
	})
}

func newCommand(deps dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:                   "send <actor> <run_id>",
		DisableFlagsInUseLine: true,
		Short:                 descriptionShort,
		Long:                  strings.ReplaceAll(descriptionLong, "\t", ""),
		Args:                  cobra.ArbitraryArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return deps.run(cmd, args)
		},
	}

	cmd.Flags().String("config", globals.GetEnv(configEnvVar, defaultConfigPath), "Path to the YAML config file")
	cmd.Flags().String("transport", "", "Delivery transport: curl or slack (overrides the config file)")
	cmd.Flags().Bool("strict", false, "Exit non-zero when delivery fails instead of ignoring it")
	cmd.Flags().Bool("debug", false, "Enable debug logging on stderr")

	// Anything after the actor is positional, so an extra dash-leading
	// argument counts toward the argument check instead of failing as a flag
	cmd.Flags().SetInterspersed(false)
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		fmt.Fprintln(cmd.OutOrStdout(), usageMessage)
		return nil
	})

	return cmd
}

func (d dependencies) run(cmd *cobra.Command, args []string) error {

	// Wrong argument count is reported but never fails the caller
	if len(args) != 2 {
		fmt.Fprintln(cmd.OutOrStdout(), usageMessage)
		return nil
	}
	actor, runID := args[0], args[1]

	debug, err := cmd.Flags().GetBool("debug")
	if err != nil {
		return fmt.Errorf("error getting debug flag: %w", err)
	}
	log := logger.New(cmd.ErrOrStderr(), debug)

	configContent, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("error parsing configuration file: %w", err)
	}

	// Configure application's context
	ctx := v1alpha1.Context{
		Config: &configContent,
	}

	if err := applyFlags(cmd, ctx.Config); err != nil {
		return err
	}
	applyDefaults(ctx.Config)

	transport, err := d.newTransport(ctx.Config)
	if err != nil {
		return err
	}

	sender, err := notifier.NewSender(transport,
		notifier.WithResolver(d.resolver),
		notifier.WithWebhookSuffix(ctx.Config.Notifications.WebhookSuffix),
		notifier.WithRunsURL(ctx.Config.Notifications.RunsURL),
		notifier.WithBestEffort(*ctx.Config.Notifications.BestEffort),
		notifier.WithTimeout(time.Duration(ctx.Config.Notifications.TimeoutSec)*time.Second),
		notifier.WithLogger(log),
	)
	if err != nil {
		return err
	}

	report, notifyErr := sender.Notify(cmd.Context(), actor, runID)
	if err := report.Print(cmd.OutOrStdout()); err != nil {
		log.Warn().Err(err).Msg("Error writing notification report")
	}

	pushMetrics(cmd, log, ctx.Config, transport.Name(), actor, report)

	return notifyErr
}

// loadConfig reads the config file. Only a path passed explicitly with --config must exist.
func loadConfig(cmd *cobra.Command) (v1alpha1.ConfigSpec, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return v1alpha1.ConfigSpec{}, err
	}
	if configPath == "" {
		return v1alpha1.ConfigSpec{}, nil
	}
	if cmd.Flags().Changed("config") {
		return config.ReadFile(configPath)
	}
	return config.ReadOptionalFile(configPath)
}

func applyFlags(cmd *cobra.Command, cfg *v1alpha1.ConfigSpec) error {
	if cmd.Flags().Changed("transport") {
		transport, err := cmd.Flags().GetString("transport")
		if err != nil {
			return fmt.Errorf("error getting transport flag: %w", err)
		}
		cfg.Transport.Type = transport
	}
	if cmd.Flags().Changed("strict") {
		strict, err := cmd.Flags().GetBool("strict")
		if err != nil {
			return fmt.Errorf("error getting strict flag: %w", err)
		}
		bestEffort := !strict
		cfg.Notifications.BestEffort = &bestEffort
	}
	return nil
}

func applyDefaults(cfg *v1alpha1.ConfigSpec) {
	if cfg.Transport.Type == "" {
		cfg.Transport.Type = defaultTransport
	}
	if cfg.Notifications.WebhookSuffix == "" {
		cfg.Notifications.WebhookSuffix = defaultWebhookSuffix
	}
	if cfg.Notifications.RunsURL == "" {
		cfg.Notifications.RunsURL = defaultRunsURL
	}
	if cfg.Notifications.BestEffort == nil {
		bestEffort := defaultBestEffort
		cfg.Notifications.BestEffort = &bestEffort
	}
}

func (d dependencies) newTransport(cfg *v1alpha1.ConfigSpec) (notifier.Transport, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Transport.Type)) {
	case transportCurl:
		return curl.New(cfg.Transport.Curl.Binary, curl.WithExecutor(d.executor)), nil
	case transportSlack:
		return slack.New(d.httpClient), nil
	default:
		return nil, fmt.Errorf("unknown transport %q", cfg.Transport.Type)
	}
}

// pushMetrics records the delivery outcome when a Pushgateway is configured
func pushMetrics(cmd *cobra.Command, log zerolog.Logger, cfg *v1alpha1.ConfigSpec, transport, actor string, report notifier.Report) {
	if cfg.Metrics.Prometheus.PushgatewayURL == "" {
		return
	}
	err := prometheus.PushDelivery(cmd.Context(), cfg.Metrics.Prometheus.PushgatewayURL, cfg.Metrics.Prometheus.Job, prometheus.Delivery{
		Actor:     actor,
		Transport: transport,
		Delivered: report.Delivered(),
	})
	if err != nil {
		log.Warn().Err(err).Msg("Error pushing notification metrics")
	}
}
