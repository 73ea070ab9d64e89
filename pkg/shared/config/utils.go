package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
)

// GetBoolValue retrieves a boolean value from a nested struct based on a dot-separated path.
// It returns the provided defaultValue if the specified field is not explicitly set or is nil.
func GetBoolValue(config interface{}, fieldPath string, defaultValue bool) bool {
	if config == nil {
		return defaultValue
	}

	fields := strings.Split(fieldPath, ".")
	val := reflect.ValueOf(config)

	for _, field := range fields {
		if val.Kind() == reflect.Ptr {
			val = val.Elem()
		}

		val = val.FieldByName(field)
		if !val.IsValid() {
			return defaultValue
		}
	}

	if val.Kind() == reflect.Ptr && !val.IsNil() {
		return val.Elem().Bool()
	} else if val.Kind() == reflect.Bool {
		return val.Bool()
	}

	return defaultValue
}

// SetThen provides a utility to select the first value if set, otherwise defaults.
func SetThen[T any](value T, defaultValue T) T {
	if reflect.ValueOf(value).IsZero() {
		return defaultValue
	}
	return value
}

// GetThreadlintHome resolves the tool's home folder: config first, then the
// THREADLINT_HOME environment variable, then ~/.threadlint.
func GetThreadlintHome(cfg *Config) string {
	if cfg != nil && cfg.HomeFolder != "" {
		return cfg.HomeFolder
	}
	if envHome := os.Getenv("THREADLINT_HOME"); envHome != "" {
		return envHome
	}
	home, err := os.UserHomeDir()
	if err != nil {
		panic("unable to get home folder")
	}
	return filepath.Join(home, ".threadlint")
}

// GetProjectsHome returns the folder fetched repositories land in.
func GetProjectsHome(cfg *Config) string {
	return filepath.Join(GetThreadlintHome(cfg), "projects")
}

// GetResultsHome returns the folder scan results land in by default.
func GetResultsHome(cfg *Config) string {
	return filepath.Join(GetThreadlintHome(cfg), "results")
}

// GetRepositoryPath maps a repository to its location under the projects
// folder.
func GetRepositoryPath(cfg *Config, domain, repoWithNamespace string) string {
	return filepath.Join(GetProjectsHome(cfg), domain, repoWithNamespace)
}

// IsCI reports whether the run executes in CI mode: fixed result file names,
// no timestamps.
func IsCI(cfg *Config) bool {
	return GetBoolValue(cfg, "CI", false)
}
