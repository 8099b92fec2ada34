package send

import "ci-notifier/internal/notifier"

const (
	usageMessage = "Incorrect number of arguments provided.  Aborting."

	configEnvVar      = "NOTIFIER_CONFIG"
	defaultConfigPath = "notifier.yaml"

	transportCurl  = "curl"
	transportSlack = "slack"

	defaultTransport     = transportCurl
	defaultWebhookSuffix = notifier.DefaultWebhookSuffix
	defaultRunsURL       = notifier.DefaultRunsURL
	defaultBestEffort    = true
)
