package config

import (
	"errors"
	"fmt"
	"time"

	"dario.cat/mergo"
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

	config := b.merge()
	if config == nil {
		return nil, fmt.Errorf("error merging configs: %w", b.err)
	}

	return config, config.validate()
}

// merge folds b.configs into one config; earlier non-zero fields win.
func (b *configBuilder) merge() *StructuredConfig {
	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg); err != nil {
			b.err = err
			return nil
		}
	}
	return config
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

func (b *configBuilder) withFlags(args []string) *configBuilder {
	flags, err := parseFlags(args)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, flags)
	return b
}

// withJSONPath adds the JSON file at path regardless of what earlier
// sources say.
func (b *configBuilder) withJSONPath(path string) *configBuilder {
	if path == "" {
		return b
	}

	jsonCfg, err := parseJSON(path)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.configs = append(b.configs, jsonCfg)

	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string
	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
			break
		}
	}

	return b.withJSONPath(jsonPath)
}

func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = append(b.configs, defaultConfig())
	return b
}

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			PostLoginRedirect: "/courses",
			LogLevel:          "debug",
		},
		Security: Security{
			SessionIssuer:          "go-course-catalog",
			SessionIdleTimeout:     30 * time.Minute,
			SessionAbsoluteTimeout: 12 * time.Hour,
			HashTime:               3,
			HashMemoryKiB:          64 * 1024,
			HashThreads:            2,
		},
		Storage: Storage{
			DB: DB{
				Driver:       DriverPostgres,
				QueryTimeout: 5 * time.Second,
				MaxOpenConns: 10,
			},
		},
		Server: Server{
			HTTPAddress:     "localhost:8080",
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Workers: Workers{
			SessionSweepInterval: time.Minute,
		},
	}
}
