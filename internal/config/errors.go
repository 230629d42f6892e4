package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty DSN or unknown driver).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidSecurityConfigs indicates invalid session or hashing
	// settings (for example, a short sign key or a zero idle timeout).
	ErrInvalidSecurityConfigs = errors.New("invalid security configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, a post-login redirect pointing off-site).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidServerConfigs indicates invalid listener settings.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, zero sweep interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)

var errInvalidNetAddress = errors.New("need address in a form `host:port`")
