package config

import (
	"errors"
	"fmt"
	"time"

	"dario.cat/mergo"

	"golang.org/x/crypto/bcrypt"
)

type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return config, config.validate()
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags() *configBuilder {
	flags := ParseFlags()

	b.configs = append(b.configs, flags)
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string
	isJSONSpecified := false

	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			isJSONSpecified = true
			jsonPath = cfg.JSONFilePath
		}
	}

	if isJSONSpecified {
		jsonCfg, err := parseJSON(jsonPath)
		if err != nil {
			b.err = errors.Join(b.err, err)
			return b
		}
		b.configs = append(b.configs, jsonCfg)
	}

	return b
}

// withDefaults appends the built-in defaults as the lowest-priority source.
// mergo keeps values already set by env, flags, or JSON, so defaults only
// fill fields no other source provided.
func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = append(b.configs, defaultConfig())
	return b
}

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "go-accountant",
			TokenDuration: 168 * time.Hour,
			BcryptCost:    bcrypt.DefaultCost,
			Version:       "N/A",
		},
		Storage: Storage{
			Redis: Redis{
				CacheTTL: time.Hour,
			},
		},
		Server: Server{
			HTTPAddress:     "localhost:8080",
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Firebase: Firebase{
			CertsURL: "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com",
		},
		Rates: Rates{
			ProviderURL:  "https://open.er-api.com/v6/latest",
			BaseCurrency: "USD",
		},
		IAP: IAP{
			GoogleVerifyURL: "https://androidpublisher.googleapis.com/androidpublisher/v3",
			AppleVerifyURL:  "https://buy.itunes.apple.com/verifyReceipt",
		},
		Workers: Workers{
			RecurringInterval:  time.Hour,
			RecurringBatchSize: 100,
		},
		Events: Events{
			Exchange: "accountant.events",
		},
		RateLimit: RateLimit{
			RPS:   10,
			Burst: 20,
		},
	}
}
