// ABOUTME: Tests for settings loading, merging, env overrides and validation
// ABOUTME: Uses temp dirs with HOME redirected so no real user config is read

package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/mauromedda/termroot/pkg/tui/backend"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
}

func boolPtr(b bool) *bool { return &b }

func TestMerge(t *testing.T) {
	t.Parallel()

	global := &Settings{
		Backend:       "tcell",
		Backends:      []string{"termios"},
		NamedFallback: boolPtr(true),
		PollTimeout:   Duration(50 * time.Millisecond),
		LogLevel:      "debug",
	}
	project := &Settings{
		Backend:       "termios",
		NamedFallback: boolPtr(false),
		LogFile:       "/tmp/termroot.log",
	}

	got := merge(global, project)

	if got.Backend != "termios" {
		t.Errorf("Backend = %q, want termios", got.Backend)
	}
	if !reflect.DeepEqual(got.Backends, []string{"termios"}) {
		t.Errorf("Backends = %v, want global value kept", got.Backends)
	}
	if got.FallbackEnabled() {
		t.Error("explicit project named_fallback: false must override global true")
	}
	if got.PollTimeout != Duration(50*time.Millisecond) {
		t.Errorf("PollTimeout = %v, want 50ms", time.Duration(got.PollTimeout))
	}
	if got.LogLevel != "debug" || got.LogFile != "/tmp/termroot.log" {
		t.Errorf("log settings = %q/%q", got.LogLevel, got.LogFile)
	}
	if global.Backend != "tcell" {
		t.Error("merge must not modify the global settings")
	}
}

func TestMerge_Nil(t *testing.T) {
	t.Parallel()

	if got := merge(nil, nil); got == nil || got.Backend != "" {
		t.Errorf("merge(nil, nil) = %+v, want zero settings", got)
	}
	g := &Settings{Backend: "tcell"}
	if got := merge(g, nil); got.Backend != "tcell" {
		t.Errorf("merge(g, nil).Backend = %q, want tcell", got.Backend)
	}
}

func TestLoadFile_NotExist(t *testing.T) {
	t.Parallel()

	_, err := loadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("loadFile error = %v, want os.ErrNotExist", err)
	}
}

func TestLoadFile_Valid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, `
backend: crossterm
backends: [termios, tcell]
named_fallback: true
poll_timeout: 75ms
log_level: warn
`)

	s, err := loadFile(path)
	if err != nil {
		t.Fatalf("loadFile: %v", err)
	}
	want := &Settings{
		Backend:       "crossterm",
		Backends:      []string{"termios", "tcell"},
		NamedFallback: boolPtr(true),
		PollTimeout:   Duration(75 * time.Millisecond),
		LogLevel:      "warn",
	}
	if !reflect.DeepEqual(s, want) {
		t.Errorf("loadFile = %+v, want %+v", s, want)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{name: "not yaml", data: "backend: [unterminated"},
		{name: "bad duration", data: "poll_timeout: soon"},
		{name: "duration not scalar", data: "poll_timeout: [1, 2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "config.yaml")
			writeFile(t, path, tt.data)
			if _, err := loadFile(path); err == nil {
				t.Error("expected a parse error")
			}
		})
	}
}

func TestLoad_ProjectOverridesGlobal(t *testing.T) {
	home := t.TempDir()
	project := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvBackend, "")
	t.Setenv(EnvLogFile, "")
	t.Setenv(EnvLogLevel, "")

	writeFile(t, filepath.Join(home, ".termroot", "config.yaml"), "backend: tcell\nlog_level: debug\n")
	writeFile(t, filepath.Join(project, ".termroot", "config.yaml"), "backend: dummy\n")

	s, err := Load(project)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Backend != "dummy" || s.LogLevel != "debug" {
		t.Errorf("Load = %+v, want backend dummy and log_level debug", s)
	}
}

func TestLoad_NoFiles(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvBackend, "")
	t.Setenv(EnvLogFile, "")
	t.Setenv(EnvLogLevel, "")

	s, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, named, _ := s.BackendKind(); named {
		t.Error("no config must mean the automatic scan")
	}
}

func TestLoad_InvalidSettings(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvBackend, "")
	t.Setenv(EnvLogFile, "")
	t.Setenv(EnvLogLevel, "")

	writeFile(t, filepath.Join(home, ".termroot", "config.yaml"), "backend: vt100\n")

	_, err := Load(t.TempDir())
	if !errors.Is(err, backend.ErrUnknownKind) {
		t.Errorf("Load error = %v, want ErrUnknownKind", err)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadFile error = %v, want os.ErrNotExist", err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvBackend, "termios")
	t.Setenv(EnvLogFile, "")
	t.Setenv(EnvLogLevel, "error")

	s := &Settings{Backend: "tcell", LogFile: "/var/log/x.log", LogLevel: "info"}
	ApplyEnv(s)

	if s.Backend != "termios" {
		t.Errorf("Backend = %q, want termios", s.Backend)
	}
	if s.LogFile != "/var/log/x.log" {
		t.Errorf("empty env var must not override: LogFile = %q", s.LogFile)
	}
	if s.LogLevel != "error" {
		t.Errorf("LogLevel = %q, want error", s.LogLevel)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		s       Settings
		wantErr bool
	}{
		{name: "zero", s: Settings{}},
		{name: "auto", s: Settings{Backend: "AUTO"}},
		{name: "alias", s: Settings{Backend: "crossterm", Backends: []string{"raw", "curses"}}},
		{name: "unknown backend", s: Settings{Backend: "vt100"}, wantErr: true},
		{name: "unknown in order", s: Settings{Backends: []string{"tcell", "nope"}}, wantErr: true},
		{name: "bad level", s: Settings{LogLevel: "chatty"}, wantErr: true},
		{name: "negative timeout", s: Settings{PollTimeout: Duration(-time.Second)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBackendKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		backend   string
		wantKind  backend.Kind
		wantNamed bool
	}{
		{"", "", false},
		{"auto", "", false},
		{"tcell", backend.KindTcell, true},
		{" Termion ", backend.KindTermios, true},
		{"none", backend.KindDummy, true},
	}

	for _, tt := range tests {
		s := Settings{Backend: tt.backend}
		kind, named, err := s.BackendKind()
		if err != nil {
			t.Errorf("BackendKind(%q): %v", tt.backend, err)
			continue
		}
		if kind != tt.wantKind || named != tt.wantNamed {
			t.Errorf("BackendKind(%q) = %q, %v; want %q, %v", tt.backend, kind, named, tt.wantKind, tt.wantNamed)
		}
	}
}

func TestSelectorOptions(t *testing.T) {
	t.Parallel()

	s := Settings{Backends: []string{"tcell", "raw"}}
	opts, err := s.SelectorOptions()
	if err != nil {
		t.Fatalf("SelectorOptions: %v", err)
	}
	sel := backend.NewSelector(opts...)
	want := []backend.Kind{backend.KindTcell, backend.KindTermios}
	if got := sel.Order(); !reflect.DeepEqual(got, want) {
		t.Errorf("Order() = %v, want %v", got, want)
	}

	defaults, err := (&Settings{}).SelectorOptions()
	if err != nil {
		t.Fatalf("SelectorOptions: %v", err)
	}
	if got := backend.NewSelector(defaults...).Order(); !reflect.DeepEqual(got, backend.DefaultOrder) {
		t.Errorf("default Order() = %v, want %v", got, backend.DefaultOrder)
	}

	bad := Settings{Backends: []string{"nope"}}
	if _, err := bad.SelectorOptions(); !errors.Is(err, backend.ErrUnknownKind) {
		t.Errorf("SelectorOptions error = %v, want ErrUnknownKind", err)
	}
}

func TestDuration_MarshalYAML(t *testing.T) {
	t.Parallel()

	v, err := Duration(1500 * time.Millisecond).MarshalYAML()
	if err != nil || v != "1.5s" {
		t.Errorf("MarshalYAML = %v, %v; want 1.5s", v, err)
	}
}
