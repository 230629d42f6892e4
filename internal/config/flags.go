package config

import (
	"flag"
	"fmt"
	"net"
	"strconv"
	"time"
)

// NetAddress is a listen address given as host:port. It implements
// flag.Value. The host may be empty (all interfaces), "localhost" or an IP
// literal; IPv6 literals go in brackets.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses command-line configuration flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-driver database driver: postgres or sqlite
//	-d database DSN
//	-c/-config json file path with configs
//	-session-sign-key session cookie signing key
//	-session-idle-timeout session idle timeout (e.g., "30m")
//	-hash-time argon2id iterations
//	-hash-memory argon2id memory in KiB
//	-post-login-redirect local path opened after login
//	-seed fill empty tables with sample data
func parseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var requestTimeout time.Duration
	var driver string
	var databaseDSN string
	var jsonConfigPath string
	var sessionSignKey string
	var sessionIdleTimeout time.Duration
	var hashTime, hashMemory uint
	var postLoginRedirect string
	var seed bool

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&driver, "driver", "", "Database driver (postgres, sqlite)")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&sessionSignKey, "session-sign-key", "", "Session cookie signing key")
	fs.DurationVar(&sessionIdleTimeout, "session-idle-timeout", 0, "Session idle timeout (e.g., 30m)")
	fs.UintVar(&hashTime, "hash-time", 0, "Argon2id iterations")
	fs.UintVar(&hashMemory, "hash-memory", 0, "Argon2id memory in KiB")
	fs.StringVar(&postLoginRedirect, "post-login-redirect", "", "Local path opened after login")
	fs.BoolVar(&seed, "seed", false, "Seed sample data into empty tables")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			PostLoginRedirect: postLoginRedirect,
			SeedSampleData:    seed,
		},
		Security: Security{
			SessionSignKey:     sessionSignKey,
			SessionIdleTimeout: sessionIdleTimeout,
			HashTime:           uint32(hashTime),
			HashMemoryKiB:      uint32(hashMemory),
		},
		Storage: Storage{
			DB: DB{
				Driver: driver,
				DSN:    databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns "" for an unset address so it does not override other
// configuration sources.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidNetAddress, err)
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: port %q is not in 1-65535", errInvalidNetAddress, rawPort)
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return fmt.Errorf("%w: host %q is neither localhost nor an IP address", errInvalidNetAddress, host)
	}

	a.Host = host
	a.Port = port
	return nil
}
