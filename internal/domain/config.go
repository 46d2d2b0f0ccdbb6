package domain

import "errors"

// ObservabilityConfig controls the metrics/health sidecar server.
type ObservabilityConfig struct {
	ListenAddress string `json:"listenAddress"`
	Metrics       bool   `json:"metrics"`
	Healthz       bool   `json:"healthz"`
}

// RuntimeConfig is the process-wide server configuration. It is established
// once at startup and never mutated, so request handlers may read it
// concurrently without locking.
type RuntimeConfig struct {
	Debug         bool                `json:"debug"`
	ListenAddress string              `json:"listenAddress"`
	MaxBodyBytes  int64               `json:"maxBodyBytes"`
	Observability ObservabilityConfig `json:"observability"`
}

func (c RuntimeConfig) Validate() error {
	if c.ListenAddress == "" {
		return errors.New("listenAddress must not be empty")
	}
	if c.MaxBodyBytes <= 0 {
		return errors.New("maxBodyBytes must be positive")
	}
	if (c.Observability.Metrics || c.Observability.Healthz) && c.Observability.ListenAddress == "" {
		return errors.New("observability.listenAddress must not be empty when metrics or healthz are enabled")
	}
	return nil
}
