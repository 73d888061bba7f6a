/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		bind:           "0.0.0.0",
		maxPlayers:     8,
		playerTimeout:  time.Minute,
		port:           8080,
		rateBurst:      60,
		rateLimit:      20,
		sessionTimeout: time.Hour,
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"reaping disabled", func(c *Config) { c.sessionTimeout = 0 }, false},
		{"tls pair", func(c *Config) { c.tlsCert, c.tlsKey = "cert.pem", "key.pem" }, false},
		{"cert without key", func(c *Config) { c.tlsCert = "cert.pem" }, true},
		{"port too low", func(c *Config) { c.port = 0 }, true},
		{"port too high", func(c *Config) { c.port = 70000 }, true},
		{"single player rooms", func(c *Config) { c.maxPlayers = 1 }, true},
		{"no liveness window", func(c *Config) { c.playerTimeout = 0 }, true},
		{"negative session timeout", func(c *Config) { c.sessionTimeout = -time.Second }, true},
		{"zero rate", func(c *Config) { c.rateLimit = 0 }, true},
		{"zero burst", func(c *Config) { c.rateBurst = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			if tt.wantErr {
				assert.Error(t, cfg.validate())
			} else {
				assert.NoError(t, cfg.validate())
			}
		})
	}
}

func TestConfigScheme(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, "http", cfg.scheme())

	cfg.tlsCert, cfg.tlsKey = "cert.pem", "key.pem"
	assert.Equal(t, "https", cfg.scheme())
}

func TestFlagDefaults(t *testing.T) {
	cfg := &Config{}
	newCmd(cfg)

	assert.Equal(t, 8080, cfg.port)
	assert.Equal(t, 8, cfg.maxPlayers)
	assert.Equal(t, 60*time.Second, cfg.playerTimeout)
	assert.Equal(t, 60*time.Minute, cfg.sessionTimeout)
	assert.NoError(t, cfg.validate())
}

func TestFlagsFromEnvironment(t *testing.T) {
	t.Setenv("HEADBANDS_PORT", "9090")
	t.Setenv("HEADBANDS_MAX_PLAYERS", "12")
	t.Setenv("HEADBANDS_SESSION_TIMEOUT", "5m")

	cfg := &Config{}
	newCmd(cfg)

	assert.Equal(t, 9090, cfg.port)
	assert.Equal(t, 12, cfg.maxPlayers)
	assert.Equal(t, 5*time.Minute, cfg.sessionTimeout)
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("HEADBANDS_PORT", "9090")

	cfg := &Config{}
	cmd := newCmd(cfg)
	require.NoError(t, cmd.Flags().Parse([]string{"--port", "7070"}))

	assert.Equal(t, 7070, cfg.port)
}
