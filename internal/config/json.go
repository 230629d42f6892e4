package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the layout of the JSON
// config file. Durations are written as strings such as "30s".
type StructuredJSONConfig struct {
	App struct {
		PostLoginRedirect string `json:"post_login_redirect"`
		LogLevel          string `json:"log_level"`
		SeedSampleData    bool   `json:"seed_sample_data"`
		Version           string `json:"version"`
	} `json:"app,omitempty"`

	Security struct {
		SessionSignKey         string   `json:"session_sign_key"`
		SessionIssuer          string   `json:"session_issuer"`
		SessionIdleTimeout     Duration `json:"session_idle_timeout"`
		SessionAbsoluteTimeout Duration `json:"session_absolute_timeout"`
		CookieSecure           bool     `json:"cookie_secure"`
		HashTime               uint32   `json:"hash_time"`
		HashMemoryKiB          uint32   `json:"hash_memory_kib"`
		HashThreads            uint8    `json:"hash_threads"`
		CSRFExemptPaths        []string `json:"csrf_exempt_paths"`
	} `json:"security,omitempty"`

	Storage struct {
		DB struct {
			Driver       string   `json:"driver"`
			DSN          string   `json:"dsn"`
			QueryTimeout Duration `json:"query_timeout"`
			MaxOpenConns int      `json:"max_open_conns"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
	} `json:"server,omitempty"`

	Workers struct {
		SessionSweepInterval Duration `json:"session_sweep_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	raw, err := os.ReadFile(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}

	var file StructuredJSONConfig
	if err = json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return file.structured(), nil
}

func (j *StructuredJSONConfig) structured() *StructuredConfig {
	cfg := &StructuredConfig{}

	cfg.App.PostLoginRedirect = j.App.PostLoginRedirect
	cfg.App.LogLevel = j.App.LogLevel
	cfg.App.SeedSampleData = j.App.SeedSampleData
	cfg.App.Version = j.App.Version

	sec := &cfg.Security
	sec.SessionSignKey = j.Security.SessionSignKey
	sec.SessionIssuer = j.Security.SessionIssuer
	sec.SessionIdleTimeout = time.Duration(j.Security.SessionIdleTimeout)
	sec.SessionAbsoluteTimeout = time.Duration(j.Security.SessionAbsoluteTimeout)
	sec.CookieSecure = j.Security.CookieSecure
	sec.HashTime, sec.HashMemoryKiB, sec.HashThreads = j.Security.HashTime, j.Security.HashMemoryKiB, j.Security.HashThreads
	sec.CSRFExemptPaths = j.Security.CSRFExemptPaths

	cfg.Storage.DB = DB{
		Driver:       j.Storage.DB.Driver,
		DSN:          j.Storage.DB.DSN,
		QueryTimeout: time.Duration(j.Storage.DB.QueryTimeout),
		MaxOpenConns: j.Storage.DB.MaxOpenConns,
	}

	cfg.Server.HTTPAddress = j.Server.HTTPAddress
	cfg.Server.RequestTimeout = time.Duration(j.Server.RequestTimeout)
	cfg.Server.ShutdownTimeout = time.Duration(j.Server.ShutdownTimeout)

	cfg.Workers.SessionSweepInterval = time.Duration(j.Workers.SessionSweepInterval)

	return cfg
}

// Duration accepts either a Go duration string or a number of nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	if !bytes.HasPrefix(b, []byte(`"`)) {
		var ns int64
		if err := json.Unmarshal(b, &ns); err != nil {
			return fmt.Errorf("duration must be a string or nanoseconds: %w", err)
		}
		*d = Duration(ns)
		return nil
	}

	var text string
	if err := json.Unmarshal(b, &text); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(text)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
