package config

import (
	"fmt"
	"regexp"
	"strings"
)

// OverrideLocal is the value of the backend query parameter that selects a local backend.
const OverrideLocal = "local"

var explicitURL = regexp.MustCompile(`(?i)^https?://`)

// ResolveBaseURL picks the backend base URL for a request.
// Precedence: allowed override > localhost heuristic > production URL.
// An override missing from cfg.AllowedOverrides is ignored.
func ResolveBaseURL(hostname, override string, cfg *Config) string {
	if OverrideAllowed(override, cfg) {
		switch {
		case override == OverrideLocal:
			return fmt.Sprintf("http://localhost:%d", cfg.LocalPort)
		case explicitURL.MatchString(override):
			return strings.TrimRight(override, "/")
		}
	}
	if isLocalHost(hostname) {
		return fmt.Sprintf("http://%s:%d", hostname, cfg.LocalPort)
	}
	return strings.TrimRight(cfg.ProductionURL, "/")
}

// OverrideAllowed reports whether override is "local" or an http(s) URL listed in cfg.AllowedOverrides.
func OverrideAllowed(override string, cfg *Config) bool {
	if override != OverrideLocal && !explicitURL.MatchString(override) {
		return false
	}
	want := normalizeOverride(override)
	for _, allowed := range cfg.AllowedOverrides {
		if normalizeOverride(allowed) == want {
			return true
		}
	}
	return false
}

func normalizeOverride(s string) string {
	return strings.ToLower(strings.TrimRight(strings.TrimSpace(s), "/"))
}

func isLocalHost(hostname string) bool {
	return hostname == "localhost" || hostname == "127.0.0.1"
}
