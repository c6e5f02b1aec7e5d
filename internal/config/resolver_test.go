package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveBaseURL(t *testing.T) {
	cfg := Default()
	cfg.AllowedOverrides = []string{"local", "https://staging.example.com", "http://10.0.0.5:3000"}

	cases := []struct {
		name     string
		hostname string
		override string
		want     string
	}{
		{"production", "mayelewoo.com", "", "https://mayelewoo-back.onrender.com"},
		{"localhost", "localhost", "", "http://localhost:3000"},
		{"loopback ip", "127.0.0.1", "", "http://127.0.0.1:3000"},
		{"local override on production host", "mayelewoo.com", "local", "http://localhost:3000"},
		{"explicit url wins over localhost", "localhost", "https://staging.example.com/", "https://staging.example.com"},
		{"explicit url is case insensitive", "mayelewoo.com", "HTTP://10.0.0.5:3000", "HTTP://10.0.0.5:3000"},
		{"garbage override ignored", "mayelewoo.com", "ftp://nope", "https://mayelewoo-back.onrender.com"},
		{"garbage override falls to heuristic", "localhost", "staging", "http://localhost:3000"},
		{"unlisted url ignored", "mayelewoo.com", "https://evil.example.net", "https://mayelewoo-back.onrender.com"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ResolveBaseURL(tc.hostname, tc.override, cfg))
		})
	}
}

func TestResolveBaseURLIgnoresOverridesByDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "https://mayelewoo-back.onrender.com", ResolveBaseURL("mayelewoo.com", "local", cfg))
	assert.Equal(t, "https://mayelewoo-back.onrender.com", ResolveBaseURL("mayelewoo.com", "https://evil.example.net", cfg))
	assert.False(t, OverrideAllowed("local", cfg))
}

func TestResolveBaseURLUsesConfiguredValues(t *testing.T) {
	cfg := Default()
	cfg.ProductionURL = "https://api.example.org/"
	cfg.LocalPort = 4000
	cfg.AllowedOverrides = []string{"local"}

	assert.Equal(t, "https://api.example.org", ResolveBaseURL("example.org", "", cfg))
	assert.Equal(t, "http://localhost:4000", ResolveBaseURL("localhost", "", cfg))
	assert.Equal(t, "http://localhost:4000", ResolveBaseURL("example.org", "local", cfg))
}
