// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// MinSessionSignKeyLength is the shortest accepted session signing key.
const MinSessionSignKeyLength = 16

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if err := cfg.Storage.DB.validate(); err != nil {
		return err
	}

	if len(cfg.Security.SessionSignKey) < MinSessionSignKeyLength {
		return fmt.Errorf("%w: session sign key must be at least %d bytes", ErrInvalidSecurityConfigs, MinSessionSignKeyLength)
	}
	if cfg.Security.SessionIdleTimeout <= 0 {
		return fmt.Errorf("%w: session idle timeout must be positive", ErrInvalidSecurityConfigs)
	}
	if err := cfg.Security.validateHashing(); err != nil {
		return err
	}

	if !IsLocalPath(cfg.App.PostLoginRedirect) {
		return fmt.Errorf("%w: post-login redirect %q is not a local path", ErrInvalidAppConfigs, cfg.App.PostLoginRedirect)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Workers.SessionSweepInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (db DB) validate() error {
	if db.DSN == "" {
		return fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs)
	}
	if db.Driver != DriverPostgres && db.Driver != DriverSQLite {
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, db.Driver)
	}
	return nil
}

func (s Security) validateHashing() error {
	if s.HashTime < 1 || s.HashThreads < 1 || s.HashMemoryKiB < 8*uint32(s.HashThreads) {
		return fmt.Errorf("%w: argon2id parameters below minimum (t=%d, m=%d, p=%d)",
			ErrInvalidSecurityConfigs, s.HashTime, s.HashMemoryKiB, s.HashThreads)
	}
	return nil
}

// IsLocalPath reports whether p is an absolute path on this site, safe to
// use as a redirect target.
func IsLocalPath(p string) bool {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.ContainsAny(p, "\\\r\n") {
		return false
	}
	u, err := url.Parse(p)
	return err == nil && u.Scheme == "" && u.Host == ""
}
