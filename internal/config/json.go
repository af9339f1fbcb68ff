package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		BcryptCost    int      `json:"bcrypt_cost"`
		Version       string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Redis struct {
			Addr     string   `json:"address"`
			Password string   `json:"password"`
			DB       int      `json:"db"`
			CacheTTL Duration `json:"cache_ttl"`
		} `json:"redis,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
	} `json:"server,omitempty"`

	Firebase struct {
		ProjectID string `json:"project_id"`
		CertsURL  string `json:"certs_url"`
	} `json:"firebase,omitempty"`

	Rates struct {
		ProviderURL  string `json:"provider_url"`
		APIKey       string `json:"api_key"`
		BaseCurrency string `json:"base_currency"`
	} `json:"rates,omitempty"`

	IAP struct {
		GoogleVerifyURL string `json:"google_verify_url"`
		AppleVerifyURL  string `json:"apple_verify_url"`
	} `json:"iap,omitempty"`

	Workers struct {
		RecurringInterval  Duration `json:"recurring_interval"`
		RecurringBatchSize int      `json:"recurring_batch_size"`
	} `json:"workers,omitempty"`

	Events struct {
		AMQPAddress string `json:"amqp_address"`
		Exchange    string `json:"exchange"`
	} `json:"events,omitempty"`

	RateLimit struct {
		RPS   float64 `json:"rps"`
		Burst int     `json:"burst"`
	} `json:"rate_limit,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			BcryptCost:    jsonCfg.App.BcryptCost,
			Version:       jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Redis: Redis{
				Addr:     jsonCfg.Storage.Redis.Addr,
				Password: jsonCfg.Storage.Redis.Password,
				DB:       jsonCfg.Storage.Redis.DB,
				CacheTTL: time.Duration(jsonCfg.Storage.Redis.CacheTTL),
			},
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
		},
		Firebase: Firebase{
			ProjectID: jsonCfg.Firebase.ProjectID,
			CertsURL:  jsonCfg.Firebase.CertsURL,
		},
		Rates: Rates{
			ProviderURL:  jsonCfg.Rates.ProviderURL,
			APIKey:       jsonCfg.Rates.APIKey,
			BaseCurrency: jsonCfg.Rates.BaseCurrency,
		},
		IAP: IAP{
			GoogleVerifyURL: jsonCfg.IAP.GoogleVerifyURL,
			AppleVerifyURL:  jsonCfg.IAP.AppleVerifyURL,
		},
		Workers: Workers{
			RecurringInterval:  time.Duration(jsonCfg.Workers.RecurringInterval),
			RecurringBatchSize: jsonCfg.Workers.RecurringBatchSize,
		},
		Events: Events{
			AMQPAddress: jsonCfg.Events.AMQPAddress,
			Exchange:    jsonCfg.Events.Exchange,
		},
		RateLimit: RateLimit{
			RPS:   jsonCfg.RateLimit.RPS,
			Burst: jsonCfg.RateLimit.Burst,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
