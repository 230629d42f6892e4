package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetAddress(t *testing.T) {
	tests := []struct {
		input    string
		want     NetAddress
		wantText string
		wantErr  bool
	}{
		{input: "localhost:8080", want: NetAddress{Host: "localhost", Port: 8080}, wantText: "localhost:8080"},
		{input: "127.0.0.1:9090", want: NetAddress{Host: "127.0.0.1", Port: 9090}, wantText: "127.0.0.1:9090"},
		{input: ":8080", want: NetAddress{Port: 8080}, wantText: ":8080"},
		{input: "[::1]:8443", want: NetAddress{Host: "::1", Port: 8443}, wantText: "[::1]:8443"},
		{input: "localhost8080", wantErr: true},
		{input: "host:port:extra", wantErr: true},
		{input: "localhost:abc", wantErr: true},
		{input: "localhost:0", wantErr: true},
		{input: "localhost:70000", wantErr: true},
		{input: "catalog.example.com:8080", wantErr: true},
		{input: "", wantErr: true},
		{input: ":", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var addr NetAddress
			err := addr.Set(tt.input)

			if tt.wantErr {
				assert.ErrorIs(t, err, errInvalidNetAddress)
				assert.Equal(t, "", addr.String(), "a rejected value must leave the address unset")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, addr)
			assert.Equal(t, tt.wantText, addr.String())
		})
	}
}

func TestParseFlags(t *testing.T) {
	cfg, err := parseFlags([]string{
		"-a", "127.0.0.1:9000",
		"-request-timeout", "15s",
		"-driver", "sqlite",
		"-d", "file:catalog.db",
		"-config", "/etc/catalog.json",
		"-session-sign-key", "0123456789abcdef",
		"-session-idle-timeout", "45m",
		"-hash-time", "4",
		"-hash-memory", "32768",
		"-post-login-redirect", "/users",
		"-seed",
	})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.HTTPAddress)
	assert.Equal(t, 15*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, DriverSQLite, cfg.Storage.DB.Driver)
	assert.Equal(t, "file:catalog.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "/etc/catalog.json", cfg.JSONFilePath)
	assert.Equal(t, "0123456789abcdef", cfg.Security.SessionSignKey)
	assert.Equal(t, 45*time.Minute, cfg.Security.SessionIdleTimeout)
	assert.Equal(t, uint32(4), cfg.Security.HashTime)
	assert.Equal(t, uint32(32768), cfg.Security.HashMemoryKiB)
	assert.Equal(t, "/users", cfg.App.PostLoginRedirect)
	assert.True(t, cfg.App.SeedSampleData)
}

func TestParseFlags_Empty(t *testing.T) {
	cfg, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseFlags_ShortConfigAlias(t *testing.T) {
	cfg, err := parseFlags([]string{"-c", "cfg.json"})
	require.NoError(t, err)
	assert.Equal(t, "cfg.json", cfg.JSONFilePath)
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "invalid address", args: []string{"-a", "nohost"}},
		{name: "invalid duration", args: []string{"-request-timeout", "soon"}},
		{name: "unknown flag", args: []string{"-grpc-address", "localhost:9090"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFlags(tt.args)
			assert.Error(t, err)
		})
	}
}
