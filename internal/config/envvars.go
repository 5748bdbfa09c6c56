// ABOUTME: Environment handling for settings: TERMROOT_* overrides and ${VAR} expansion
// ABOUTME: Replaces ${VAR} patterns with os.Getenv values; unset vars become empty

package config

import (
	"os"
	"regexp"
)

// Environment variables that override file settings.
const (
	EnvBackend  = "TERMROOT_BACKEND"
	EnvLogFile  = "TERMROOT_LOG_FILE"
	EnvLogLevel = "TERMROOT_LOG_LEVEL"
)

var envVarPattern = regexp.MustCompile(`\$\{(\w+)\}`)

// ApplyEnv overrides settings from TERMROOT_* variables that are set and
// non-empty.
func ApplyEnv(s *Settings) {
	if v := os.Getenv(EnvBackend); v != "" {
		s.Backend = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		s.LogFile = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		s.LogLevel = v
	}
}

// ResolveEnvVars expands ${VAR} patterns in path-like fields of Settings.
func ResolveEnvVars(s *Settings) {
	s.LogFile = expandEnv(s.LogFile)
}

// expandEnv replaces ${VAR} with os.Getenv(VAR). Unset vars become "".
func expandEnv(s string) string {
	if s == "" {
		return s
	}
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}
