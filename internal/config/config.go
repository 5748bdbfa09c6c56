// ABOUTME: Settings loading with global + project config merge, env overrides, and validation
// ABOUTME: YAML configuration via gopkg.in/yaml.v3; converts to backend selector options

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mauromedda/termroot/internal/log"
	"github.com/mauromedda/termroot/pkg/tui/backend"
)

// AutoBackend selects by priority scan; it is also what an empty Backend
// means.
const AutoBackend = "auto"

// Settings holds the merged configuration.
type Settings struct {
	// Backend names the backend to open, or "auto".
	Backend string `yaml:"backend,omitempty"`
	// Backends overrides the priority order used by "auto".
	Backends []string `yaml:"backends,omitempty"`
	// NamedFallback makes a failed named backend fall back to the dummy
	// instead of aborting. Unset means false.
	NamedFallback *bool `yaml:"named_fallback,omitempty"`
	// PollTimeout bounds one run-loop wait for input.
	PollTimeout Duration `yaml:"poll_timeout,omitempty"`
	LogFile     string   `yaml:"log_file,omitempty"`
	LogLevel    string   `yaml:"log_level,omitempty"`
}

// Duration is a time.Duration written as a Go duration string ("50ms").
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: poll_timeout: %w", value.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Load reads and merges global and project-local settings, then applies
// environment overrides. Project settings override global settings.
func Load(projectRoot string) (*Settings, error) {
	global, err := loadFile(GlobalConfigFile())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	project, err := loadFile(ProjectConfigFile(projectRoot))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return finish(merge(global, project))
}

// LoadFile reads exactly one settings file, skipping discovery. A missing
// file is an error.
func LoadFile(path string) (*Settings, error) {
	s, err := loadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return finish(s)
}

func finish(s *Settings) (*Settings, error) {
	ApplyEnv(s)
	ResolveEnvVars(s)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// loadFile reads a Settings from a YAML file. Returns zero Settings if the
// file does not exist.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	log.Debug("config: loaded %s", path)
	return &s, nil
}

// merge overlays project settings onto global settings.
// Non-zero project values override global values.
func merge(global, project *Settings) *Settings {
	if global == nil {
		global = &Settings{}
	}
	if project == nil {
		return global
	}

	result := *global

	if project.Backend != "" {
		result.Backend = project.Backend
	}
	if len(project.Backends) > 0 {
		result.Backends = append([]string(nil), project.Backends...)
	}
	if project.NamedFallback != nil {
		v := *project.NamedFallback
		result.NamedFallback = &v
	}
	if project.PollTimeout != 0 {
		result.PollTimeout = project.PollTimeout
	}
	if project.LogFile != "" {
		result.LogFile = project.LogFile
	}
	if project.LogLevel != "" {
		result.LogLevel = project.LogLevel
	}

	return &result
}

// Validate checks backend names, the log level, and the poll timeout.
func (s *Settings) Validate() error {
	var errs []error
	if _, _, err := s.BackendKind(); err != nil {
		errs = append(errs, fmt.Errorf("backend: %w", err))
	}
	for _, name := range s.Backends {
		if _, err := backend.ParseKind(name); err != nil {
			errs = append(errs, fmt.Errorf("backends: %w", err))
		}
	}
	if s.LogLevel != "" {
		if _, err := log.ParseLevel(s.LogLevel); err != nil {
			errs = append(errs, fmt.Errorf("log_level: %w", err))
		}
	}
	if s.PollTimeout < 0 {
		errs = append(errs, fmt.Errorf("poll_timeout: must not be negative, got %s", time.Duration(s.PollTimeout)))
	}
	return errors.Join(errs...)
}

// BackendKind resolves the Backend field. named is false for "auto".
func (s *Settings) BackendKind() (kind backend.Kind, named bool, err error) {
	name := strings.TrimSpace(s.Backend)
	if name == "" || strings.EqualFold(name, AutoBackend) {
		return "", false, nil
	}
	kind, err = backend.ParseKind(name)
	if err != nil {
		return "", false, err
	}
	return kind, true, nil
}

// FallbackEnabled reports the effective named_fallback value.
func (s *Settings) FallbackEnabled() bool {
	return s.NamedFallback != nil && *s.NamedFallback
}

// SelectorOptions converts the settings into backend selector options.
func (s *Settings) SelectorOptions() ([]backend.SelectorOption, error) {
	opts := []backend.SelectorOption{backend.WithNamedFallback(s.FallbackEnabled())}
	if len(s.Backends) > 0 {
		order := make([]backend.Kind, 0, len(s.Backends))
		for _, name := range s.Backends {
			kind, err := backend.ParseKind(name)
			if err != nil {
				return nil, fmt.Errorf("backends: %w", err)
			}
			order = append(order, kind)
		}
		opts = append(opts, backend.WithOrder(order...))
	}
	return opts, nil
}
