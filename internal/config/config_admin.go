package config

import "fmt"

// AdminConfig is the configuration view used by the catalogadm operator
// tool: the database and the password hashing work factor.
type AdminConfig struct {
	Storage  Storage
	Security Security
	App      App
}

// GetAdminConfig builds an [AdminConfig] from environment variables, the
// optional JSON file at jsonPath and the defaults. Command-line flags belong
// to the CLI itself and are not parsed here.
func GetAdminConfig(jsonPath string) (*AdminConfig, error) {
	b := newConfigBuilder().withEnv()
	if jsonPath == "" {
		b = b.withJSON()
	} else {
		b = b.withJSONPath(jsonPath)
	}
	b = b.withDefaults()
	if b.err != nil {
		return nil, fmt.Errorf("error get structured config: %w", b.err)
	}

	cfg := b.merge()
	if cfg == nil {
		return nil, fmt.Errorf("error merging configs: %w", b.err)
	}

	adminCfg := &AdminConfig{
		Storage:  cfg.Storage,
		Security: cfg.Security,
		App:      cfg.App,
	}

	return adminCfg, adminCfg.validate()
}

func (cfg *AdminConfig) validate() error {
	if err := cfg.Storage.DB.validate(); err != nil {
		return err
	}
	return cfg.Security.validateHashing()
}
