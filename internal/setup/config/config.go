package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var (
	ErrConfigFileNotFound    = errors.New("could not find config file in any config path")
	ErrConfigVersionMissing  = errors.New("config file is missing version field")
	ErrConfigVersionMismatch = errors.New("config file version mismatch")
)

// RepositoryVersion is the repository version tag for config file references.
const RepositoryVersion = "v0.3.0"

// Current version of the config file.
const (
	CurrentCommonVersion = 1
	CurrentAPIVersion    = 1
)

// Config represents the entire application configuration.
type Config struct {
	Common CommonConfig
	API    APIConfig `koanf:"api"`
}

// CommonConfig contains configuration shared between the API server and the tools.
type CommonConfig struct {
	// Version of the common config.
	Version    int        `koanf:"version"`
	Debug      Debug      `koanf:"debug"`
	PostgreSQL PostgreSQL `koanf:"postgresql"`
	Redis      Redis      `koanf:"redis"`
	Telemetry  Telemetry  `koanf:"telemetry"`
}

// APIConfig contains REST API specific configuration.
type APIConfig struct {
	// Version of the api config.
	Version    int        `koanf:"version"`
	Server     Server     `koanf:"server"`
	IP         IPConfig   `koanf:"ip"`
	RateLimit  RateLimit  `koanf:"rate_limit"`
	Submission Submission `koanf:"submission"`
	Workflow   Workflow   `koanf:"workflow"`
}

// Debug contains debug-related configuration.
type Debug struct {
	// Log level (debug, info, warn, error).
	LogLevel string `koanf:"log_level"`
	// Maximum log files to keep.
	MaxLogsToKeep int `koanf:"max_logs_to_keep"`
	// Maximum lines per log file.
	MaxLogLines int `koanf:"max_log_lines"`
}

// PostgreSQL contains database connection configuration.
type PostgreSQL struct {
	// Database hostname.
	Host string `koanf:"host"`
	// Database port.
	Port int `koanf:"port"`
	// Database username.
	User string `koanf:"user"`
	// Database password.
	Password string `koanf:"password"`
	// Database name.
	DBName string `koanf:"db_name"`
	// Maximum open connections.
	MaxOpenConns int `koanf:"max_open_conns"`
	// Maximum idle connections.
	MaxIdleConns int `koanf:"max_idle_conns"`
	// Connection lifetime in minutes.
	MaxLifetime int `koanf:"max_lifetime"`
	// Idle timeout in minutes.
	MaxIdleTime int `koanf:"max_idle_time"`
}

// Redis contains Redis connection configuration.
type Redis struct {
	// Redis hostname.
	Host string `koanf:"host"`
	// Redis port.
	Port int `koanf:"port"`
	// Redis username.
	Username string `koanf:"username"`
	// Redis password.
	Password string `koanf:"password"`
	// Disable client side caching for servers without CLIENT TRACKING.
	DisableCache bool `koanf:"disable_cache"`
}

// Telemetry contains tracing configuration.
type Telemetry struct {
	// Uptrace DSN. Tracing is disabled when empty.
	UptraceDSN string `koanf:"uptrace_dsn"`
	// Service name reported with spans.
	ServiceName string `koanf:"service_name"`
}

// Server contains HTTP listener configuration.
type Server struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
}

// IPConfig contains client IP detection configuration.
type IPConfig struct {
	// Read the client IP from headers set by trusted proxies.
	EnableHeaderCheck bool `koanf:"enable_header_check"`
	// CIDR ranges of proxies allowed to set the client IP headers.
	TrustedProxies []string `koanf:"trusted_proxies"`
	// Headers checked in order, e.g. CF-Connecting-IP or X-Forwarded-For.
	CustomHeaders []string `koanf:"custom_headers"`
	// Accept private and loopback addresses. Meant for development.
	AllowLocalIPs bool `koanf:"allow_local_ips"`
}

// RateLimit contains request rate limiting configuration.
type RateLimit struct {
	// Requests per second allowed for each client IP.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	// Maximum burst size for each client IP.
	BurstSize int `koanf:"burst_size"`
	// Requests per second allowed for staff accounts.
	StaffRequestsPerSec float64 `koanf:"staff_requests_per_sec"`
	// Maximum burst size for staff accounts.
	StaffBurstSize int `koanf:"staff_burst_size"`
	// Violations before a client is blocked.
	StrikeLimit int `koanf:"strike_limit"`
	// Block duration in seconds.
	BlockDuration int `koanf:"block_duration"`
}

// Submission contains resubmission guard configuration.
type Submission struct {
	// How long a submission digest blocks identical resubmissions, in seconds.
	DuplicateTTL int `koanf:"duplicate_ttl"`
}

// Workflow contains multi-step workflow configuration.
type Workflow struct {
	// How long a company link workflow stays resumable, in seconds.
	LinkTTL int `koanf:"link_ttl"`
}

// DuplicateWindow returns the duplicate TTL as a duration, defaulting to one hour.
func (s Submission) DuplicateWindow() time.Duration {
	if s.DuplicateTTL <= 0 {
		return time.Hour
	}
	return time.Duration(s.DuplicateTTL) * time.Second
}

// LinkWindow returns the link workflow TTL as a duration, defaulting to one day.
func (w Workflow) LinkWindow() time.Duration {
	if w.LinkTTL <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(w.LinkTTL) * time.Second
}

// LoadConfig loads the configuration from the default search paths.
// Returns the config along with the used config directory.
func LoadConfig() (*Config, string, error) {
	// Get user's home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return LoadConfigFrom([]string{
		".pracor",
		homeDir + "/.pracor/config",
		"/etc/pracor/config",
		"/app/config",
		"config",
		".",
	})
}

// LoadConfigFrom loads common.toml and api.toml from the first path that contains each.
func LoadConfigFrom(configPaths []string) (*Config, string, error) {
	k := koanf.New(".")

	// Load all config files
	var usedConfigPath string

	configFiles := []string{"common", "api"}
	for _, configName := range configFiles {
		configLoaded := false

		for _, path := range configPaths {
			configPath := fmt.Sprintf("%s/%s.toml", path, configName)
			if err := k.Load(file.Provider(configPath), toml.Parser()); err == nil {
				configLoaded = true

				if usedConfigPath == "" {
					usedConfigPath = path
				}

				break
			}
		}

		if !configLoaded {
			return nil, "", fmt.Errorf("%w: %s.toml", ErrConfigFileNotFound, configName)
		}
	}

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, "", fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Check versions for each config file
	if err := checkConfigVersion("common", config.Common.Version, CurrentCommonVersion); err != nil {
		return nil, "", err
	}

	if err := checkConfigVersion("api", config.API.Version, CurrentAPIVersion); err != nil {
		return nil, "", err
	}

	return &config, usedConfigPath, nil
}

// checkConfigVersion checks if the config file version is correct.
func checkConfigVersion(name string, current, expected int) error {
	if current == 0 {
		return fmt.Errorf("%w: %s.toml", ErrConfigVersionMissing, name)
	}

	if current != expected {
		return fmt.Errorf(
			"%w: %s.toml (got: %d, expected: %d)\n"+
				"Please update your config file from: https://github.com/pracor/pracor/tree/%s/config/%s.toml",
			ErrConfigVersionMismatch,
			name,
			current,
			expected,
			RepositoryVersion,
			name,
		)
	}

	return nil
}
