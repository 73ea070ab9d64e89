package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

// ValidateConfig checks the global configuration and normalizes
// environment-driven settings. Called once at startup, right after loading.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}
	resolveCI(cfg)
	if err := ValidateAnalysisConfig(&cfg.Analysis); err != nil {
		return fmt.Errorf("YAML global config: analysis directive is invalid: %w", err)
	}
	if err := ValidateAdvisorConfig(&cfg.Advisor); err != nil {
		return fmt.Errorf("YAML global config: advisor directive is invalid: %w", err)
	}
	if err := ValidateHTTPConfig(&cfg.HttpClient); err != nil {
		return fmt.Errorf("YAML global config: http_client directive is invalid: %w", err)
	}
	return nil
}

// ValidateAnalysisConfig checks the analysis settings.
func ValidateAnalysisConfig(analysis *Analysis) error {
	if analysis == nil {
		return fmt.Errorf("analysis configuration is nil")
	}
	if analysis.Workers < 0 || analysis.Workers > 64 {
		return fmt.Errorf("workers must be between 0 and 64: %d", analysis.Workers)
	}
	if analysis.MaxFileSizeKB < 0 {
		return fmt.Errorf("max_file_size_kb cannot be negative: %d", analysis.MaxFileSizeKB)
	}
	return nil
}

// ValidateAdvisorConfig checks the advisor settings when the advisor is on.
func ValidateAdvisorConfig(advisor *Advisor) error {
	if advisor == nil {
		return fmt.Errorf("advisor configuration is nil")
	}
	if !advisor.Enabled {
		return nil
	}
	if advisor.URL == "" {
		return fmt.Errorf("url is required when the advisor is enabled")
	}
	if _, err := url.Parse(advisor.URL); err != nil {
		return fmt.Errorf("invalid advisor URL: %w", err)
	}
	return nil
}

// ValidateHTTPConfig checks if the HTTP configurations have valid values.
func ValidateHTTPConfig(httpConfig *HttpClient) error {
	if httpConfig == nil {
		return fmt.Errorf("HTTP configuration is nil")
	}
	if httpConfig.RetryCount < 0 || httpConfig.RetryCount > 20 {
		return fmt.Errorf("retry_count must be between 0 and 20: %d", httpConfig.RetryCount)
	}

	durations := map[string]time.Duration{
		"RetryMaxWaitTime": httpConfig.RetryMaxWaitTime,
		"RetryWaitTime":    httpConfig.RetryWaitTime,
		"Timeout":          httpConfig.Timeout,
	}
	for name, duration := range durations {
		if err := validateDuration(duration, name, 10*time.Minute); err != nil {
			return err
		}
	}

	return validateProxy(&httpConfig.Proxy)
}

// validateDuration checks that a time.Duration is valid and within a specified maximum duration.
func validateDuration(d time.Duration, name string, max time.Duration) error {
	if d < 0 {
		return fmt.Errorf("invalid duration for %q: %v cannot be negative", name, d)
	}
	if d > max {
		return fmt.Errorf("%q duration is too long: %v exceeds maximum of %v", name, d, max)
	}
	return nil
}

// validateProxy checks if the given Proxy settings are valid.
func validateProxy(proxy *Proxy) error {
	if proxy == nil {
		return fmt.Errorf("proxy configuration is nil")
	}

	// host and port unset means no proxy
	if proxy.Host == "" || proxy.Port == 0 {
		return nil
	}

	if err := validateHost(&proxy.Host); err != nil {
		return err
	}
	return validatePort(proxy.Port)
}

// validateHost ensures the proxy host carries a scheme; adds "http" if missing.
func validateHost(host *string) error {
	if host == nil {
		return fmt.Errorf("host string pointer is nil")
	}

	if !strings.Contains(*host, "://") {
		*host = "http://" + *host
	}
	*host = strings.TrimRight(*host, "/")

	if _, err := url.Parse(*host); err != nil {
		return fmt.Errorf("invalid host URL: %w", err)
	}
	return nil
}

// validatePort checks if the port part of the proxy configuration is valid.
func validatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", port)
	}
	return nil
}

// resolveCI turns on CI mode when the surrounding environment says so.
func resolveCI(cfg *Config) {
	if os.Getenv("CI") == "true" || os.Getenv("THREADLINT_MODE") == "CI" {
		cfg.CI = true
	}
}
