// ABOUTME: Standard filesystem paths for termroot configuration
// ABOUTME: Resolves ~/.termroot/ for global and .termroot/ for project-local paths

package config

import (
	"os"
	"path/filepath"
)

const (
	globalDirName  = ".termroot"
	projectDirName = ".termroot"
	configFileName = "config.yaml"
)

// GlobalDir returns the user-global config directory (~/.termroot/).
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", globalDirName)
	}
	return filepath.Join(home, globalDirName)
}

// ProjectDir returns the project-local config directory (.termroot/ in
// projectRoot).
func ProjectDir(projectRoot string) string {
	return filepath.Join(projectRoot, projectDirName)
}

// GlobalConfigFile returns the path to the global config file.
func GlobalConfigFile() string {
	return filepath.Join(GlobalDir(), configFileName)
}

// ProjectConfigFile returns the path to the project-local config file.
func ProjectConfigFile(projectRoot string) string {
	return filepath.Join(ProjectDir(projectRoot), configFileName)
}

// ConfigFiles returns the files Load reads, lowest precedence first.
func ConfigFiles(projectRoot string) []string {
	return []string{GlobalConfigFile(), ProjectConfigFile(projectRoot)}
}

// EnsureDir creates a directory and all parents if they don't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o700)
}
