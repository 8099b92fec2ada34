package v1alpha1

// Configuration struct
type ConfigSpec struct {
	Notifications struct {
		WebhookSuffix string `yaml:"webhookSuffix,omitempty"`
		RunsURL       string `yaml:"runsUrl,omitempty"`
		BestEffort    *bool  `yaml:"bestEffort,omitempty"`
		TimeoutSec    int    `yaml:"timeoutSec,omitempty"`
	} `yaml:"notifications,omitempty"`

	Transport struct {
		Type string `yaml:"type,omitempty"`
		Curl struct {
			Binary string `yaml:"binary,omitempty"`
		} `yaml:"curl,omitempty"`
	} `yaml:"transport,omitempty"`

	Metrics struct {
		Prometheus struct {
			PushgatewayURL string `yaml:"pushgatewayUrl,omitempty"`
			Job            string `yaml:"job,omitempty"`
		} `yaml:"prometheus,omitempty"`
	} `yaml:"metrics,omitempty"`
}
