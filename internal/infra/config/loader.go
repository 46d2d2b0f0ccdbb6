// Package config loads the runtime configuration from a YAML file. The
// result is immutable for the process lifetime; there is no reload path.
package config

import (
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"jrpcd/internal/domain"
)

type Loader struct {
	logger *zap.Logger
}

func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger.Named("config")}
}

func newRuntimeViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	setRuntimeDefaults(v)
	return v
}

func setRuntimeDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("listenAddress", domain.DefaultListenAddress)
	v.SetDefault("maxBodyBytes", domain.DefaultMaxBodyBytes)
	v.SetDefault("observability.listenAddress", domain.DefaultObservabilityListenAddress)
	v.SetDefault("observability.metrics", true)
	v.SetDefault("observability.healthz", true)
}

type rawRuntimeConfig struct {
	Debug         bool                   `mapstructure:"debug"`
	ListenAddress string                 `mapstructure:"listenAddress"`
	MaxBodyBytes  int64                  `mapstructure:"maxBodyBytes"`
	Observability rawObservabilityConfig `mapstructure:"observability"`
}

type rawObservabilityConfig struct {
	ListenAddress string `mapstructure:"listenAddress"`
	Metrics       bool   `mapstructure:"metrics"`
	Healthz       bool   `mapstructure:"healthz"`
}

// Load reads the config file at path. An empty path yields the defaults.
func (l *Loader) Load(path string) (domain.RuntimeConfig, error) {
	v := newRuntimeViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return domain.RuntimeConfig{}, domain.Wrap(domain.CodeInternal, "config.read", err)
		}
	}

	var raw rawRuntimeConfig
	if err := v.Unmarshal(&raw); err != nil {
		return domain.RuntimeConfig{}, domain.Wrap(domain.CodeInternal, "config.decode", err)
	}

	cfg := domain.RuntimeConfig{
		Debug:         raw.Debug,
		ListenAddress: raw.ListenAddress,
		MaxBodyBytes:  raw.MaxBodyBytes,
		Observability: domain.ObservabilityConfig{
			ListenAddress: raw.Observability.ListenAddress,
			Metrics:       raw.Observability.Metrics,
			Healthz:       raw.Observability.Healthz,
		},
	}
	if err := cfg.Validate(); err != nil {
		return domain.RuntimeConfig{}, domain.Wrap(domain.CodeInternal, "config.validate", err)
	}

	if cfg.Debug {
		l.logger.Warn("debug mode enabled, responses will carry diagnostic detail")
	}
	return cfg, nil
}
