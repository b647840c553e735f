package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNetAddress_String tests the String method of NetAddress
func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{name: "empty address", addr: NetAddress{}, expected: ""},
		{name: "localhost with port", addr: NetAddress{Host: "localhost", Port: 9100}, expected: "localhost:9100"},
		{name: "IP address with port", addr: NetAddress{Host: "127.0.0.1", Port: 9090}, expected: "127.0.0.1:9090"},
		{name: "only port no host", addr: NetAddress{Port: 9100}, expected: ":9100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

// TestNetAddress_Set tests the Set method of NetAddress
func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		want        NetAddress
	}{
		{name: "localhost", input: "localhost:9100", want: NetAddress{Host: "localhost", Port: 9100}},
		{name: "ipv4", input: "10.0.0.1:80", want: NetAddress{Host: "10.0.0.1", Port: 80}},
		{name: "all interfaces", input: ":9100", want: NetAddress{Port: 9100}},
		{name: "missing port", input: "localhost", expectError: true},
		{name: "non numeric port", input: "localhost:http", expectError: true},
		{name: "zero port", input: "localhost:0", expectError: true},
		{name: "port too large", input: "localhost:70000", expectError: true},
		{name: "hostname", input: "example.com:80", expectError: true},
		{name: "too many colons", input: "::1:80", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var addr NetAddress
			err := addr.Set(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, addr)
		})
	}
}

func TestParseFlags_AllFlags(t *testing.T) {
	cfg, err := parseFlags([]string{
		"-a", "http://localhost:8080",
		"-push", "ws://localhost:8080/push",
		"-d", "file:chat.db",
		"-config", "/etc/chatsync.json",
		"-token", "secret",
		"-self-id", "7",
		"-metrics-address", "127.0.0.1:9100",
		"-request-timeout", "5s",
		"-rps", "3",
		"-unresolved-policy", "apply",
		"-flush-interval", "1m",
	})

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.Adapter.HTTPAddress)
	assert.Equal(t, "ws://localhost:8080/push", cfg.Adapter.PushAddress)
	assert.Equal(t, "file:chat.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "/etc/chatsync.json", cfg.JSONFilePath)
	assert.Equal(t, "secret", cfg.App.Token)
	assert.Equal(t, int64(7), cfg.App.SelfID)
	assert.Equal(t, "127.0.0.1:9100", cfg.App.MetricsAddress)
	assert.Equal(t, 5*time.Second, cfg.Adapter.RequestTimeout)
	assert.InDelta(t, 3.0, cfg.Adapter.RequestsPerSecond, 1e-9)
	assert.Equal(t, "apply", cfg.Sync.UnresolvedPolicy)
	assert.Equal(t, time.Minute, cfg.Workers.StateFlushInterval)
}

func TestParseFlags_ShortConfigAlias(t *testing.T) {
	cfg, err := parseFlags([]string{"-c", "cfg.json"})

	require.NoError(t, err)
	assert.Equal(t, "cfg.json", cfg.JSONFilePath)
}

func TestParseFlags_Empty(t *testing.T) {
	cfg, err := parseFlags(nil)

	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown flag", args: []string{"-unknown"}},
		{name: "bad duration", args: []string{"-request-timeout", "later"}},
		{name: "bad metrics address", args: []string{"-metrics-address", "nowhere"}},
		{name: "bad self id", args: []string{"-self-id", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFlags(tt.args)
			assert.Error(t, err)
		})
	}
}
