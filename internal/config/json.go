package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk layout of the JSON configuration file.
type StructuredJSONConfig struct {
	App struct {
		SecretKey     string   `json:"secret_key"`
		Debug         bool     `json:"debug"`
		LogLevel      string   `json:"log_level"`
		BaseURL       string   `json:"base_url"`
		OTPTTL        Duration `json:"otp_ttl"`
		SessionTTL    Duration `json:"session_ttl"`
		ActivationTTL Duration `json:"activation_ttl"`
	} `json:"app,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
		CORSOrigins     []string `json:"cors_origins"`
		TrustedProxies  []string `json:"trusted_proxies"`
	} `json:"server,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
		RedisURL string `json:"redis_url"`
	} `json:"storage,omitempty"`

	Mail struct {
		Server   string `json:"server"`
		Port     int    `json:"port"`
		Address  string `json:"address"`
		Password string `json:"password"`
		FromName string `json:"from_name"`
	} `json:"mail,omitempty"`

	Limits struct {
		LoginMax    int      `json:"login_max"`
		LoginWindow Duration `json:"login_window"`
		OTPMax      int      `json:"otp_max"`
		OTPWindow   Duration `json:"otp_window"`
	} `json:"limits,omitempty"`
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
			SecretKey:     jsonCfg.App.SecretKey,
			Debug:         jsonCfg.App.Debug,
			LogLevel:      jsonCfg.App.LogLevel,
			BaseURL:       jsonCfg.App.BaseURL,
			OTPTTL:        time.Duration(jsonCfg.App.OTPTTL),
			SessionTTL:    time.Duration(jsonCfg.App.SessionTTL),
			ActivationTTL: time.Duration(jsonCfg.App.ActivationTTL),
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
			CORSOrigins:     jsonCfg.Server.CORSOrigins,
			TrustedProxies:  jsonCfg.Server.TrustedProxies,
		},
		Storage: Storage{
			DB:       DB{DSN: jsonCfg.Storage.DB.DSN},
			RedisURL: jsonCfg.Storage.RedisURL,
		},
		Mail: Mail{
			Server:   jsonCfg.Mail.Server,
			Port:     jsonCfg.Mail.Port,
			Address:  jsonCfg.Mail.Address,
			Password: jsonCfg.Mail.Password,
			FromName: jsonCfg.Mail.FromName,
		},
		Limits: Limits{
			LoginMax:    jsonCfg.Limits.LoginMax,
			LoginWindow: time.Duration(jsonCfg.Limits.LoginWindow),
			OTPMax:      jsonCfg.Limits.OTPMax,
			OTPWindow:   time.Duration(jsonCfg.Limits.OTPWindow),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
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
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
