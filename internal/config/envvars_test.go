// ABOUTME: Tests for environment variable expansion in settings
// ABOUTME: Validates ${VAR} replacement, unset vars, and literal strings

package config

import "testing"

func TestExpandEnv(t *testing.T) {
	t.Setenv("TERMROOT_TEST_DIR", "/var/tmp")
	t.Setenv("TERMROOT_TEST_EMPTY", "")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "literal", input: "/tmp/app.log", want: "/tmp/app.log"},
		{name: "set var", input: "${TERMROOT_TEST_DIR}/app.log", want: "/var/tmp/app.log"},
		{name: "empty var", input: "${TERMROOT_TEST_EMPTY}app.log", want: "app.log"},
		{name: "unset var", input: "${TERMROOT_TEST_UNSET_XYZ}/a", want: "/a"},
		{name: "bare dollar kept", input: "$HOME/a", want: "$HOME/a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := expandEnv(tt.input); got != tt.want {
				t.Errorf("expandEnv(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveEnvVars(t *testing.T) {
	t.Setenv("TERMROOT_TEST_DIR", "/var/tmp")

	s := &Settings{LogFile: "${TERMROOT_TEST_DIR}/termroot.log", Backend: "${TERMROOT_TEST_DIR}"}
	ResolveEnvVars(s)

	if s.LogFile != "/var/tmp/termroot.log" {
		t.Errorf("LogFile = %q", s.LogFile)
	}
	if s.Backend != "${TERMROOT_TEST_DIR}" {
		t.Errorf("Backend must not be expanded, got %q", s.Backend)
	}
}
