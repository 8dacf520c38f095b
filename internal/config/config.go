package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/imaginasean/weather-modeling/internal/forecast"
	"github.com/imaginasean/weather-modeling/internal/nws"
	"github.com/imaginasean/weather-modeling/internal/sounding"
)

// Config represents the main application configuration structure
// containing all configuration sections
type Config struct {
	Server   ServerConfig           `toml:"server"`   // HTTP server settings
	Logging  LoggingConfig          `toml:"logging"`  // Application logging settings
	Storage  StorageConfig          `toml:"storage"`  // Data persistence settings
	Station  StationConfig          `toml:"station"`  // Default forecast location settings
	NWS      nws.Config             `toml:"nws"`      // api.weather.gov client settings
	Derive   DeriveConfig           `toml:"derive"`   // Forecast derivation settings
	Simulate SimulateConfig         `toml:"simulate"` // Advection solver limits
	Sounding sounding.ServiceConfig `toml:"sounding"` // Upper-air sounding settings
}

// ServerConfig contains HTTP server configuration settings
type ServerConfig struct {
	Port               int      `toml:"port"`                  // HTTP port for the server
	Host               string   `toml:"host"`                  // Host address to bind to (e.g., 127.0.0.1 for localhost only, 0.0.0.0 for all interfaces)
	CORSAllowedOrigins []string `toml:"cors_allowed_origins"`  // List of origins allowed for CORS requests (use ["*"] for all origins)
	ReadTimeoutSecs    int      `toml:"read_timeout_seconds"`  // Maximum duration for reading the entire request (0 = no timeout)
	WriteTimeoutSecs   int      `toml:"write_timeout_seconds"` // Maximum duration for writing the response (0 = no timeout, recommended for streaming)
	IdleTimeoutSecs    int      `toml:"idle_timeout_seconds"`  // Maximum duration to wait for the next request when keep-alives are enabled
}

// LoggingConfig contains application logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`  // Log level: "debug", "info", "warn", or "error"
	Format string `toml:"format"` // Log format: "json" (structured) or "console" (human-readable)
}

// StorageConfig contains data persistence configuration
type StorageConfig struct {
	Type           string `toml:"type"`             // Storage backend type (currently only "sqlite" is supported)
	SQLiteBasePath string `toml:"sqlite_base_path"` // Base path for SQLite database files (actual filename will be generated as wxlab-YYYY-MM-DD.db)
}

// StationConfig is the default forecast location used when a request does
// not supply coordinates.
type StationConfig struct {
	Latitude  float64 `toml:"latitude"`
	Longitude float64 `toml:"longitude"`
	Name      string  `toml:"name"`
}

// DeriveConfig contains forecast derivation settings.
type DeriveConfig struct {
	TauHours               float64             `toml:"tau_hours"`                // Default bias/blend decay constant; must be one of 6, 12, 24
	HorizonSteps           int                 `toml:"horizon_steps"`            // Hourly steps in the derived sequence
	RefreshIntervalMinutes int                 `toml:"refresh_interval_minutes"` // Home station background refresh cadence
	Bands                  forecast.HalfWidths `toml:"bands"`                    // Uncertainty band half-widths
}

// SimulateConfig bounds solver request parameters so a single API call
// cannot hold a worker for an unbounded run.
type SimulateConfig struct {
	MaxGridPoints int `toml:"max_grid_points"` // Largest nx (1-D) or nx*ny (2-D) accepted
	MaxSteps      int `toml:"max_steps"`       // Largest num_steps accepted
}

// Load reads and parses the TOML configuration file at path.
func Load(path string) (*Config, error) {
	var config Config

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	return &config, nil
}

// LoadWithFallback attempts to load a config from the preferred path, then
// the conventional locations.
func LoadWithFallback(preferredPath string) (*Config, error) {
	searchPaths := []string{
		preferredPath,         // User-specified path (if provided)
		"configs/config.toml", // configs/ folder
		"config.toml",         // Root directory
	}

	// Remove duplicates while preserving order
	uniquePaths := make([]string, 0, len(searchPaths))
	seen := make(map[string]bool)
	for _, path := range searchPaths {
		if path != "" && !seen[path] {
			uniquePaths = append(uniquePaths, path)
			seen[path] = true
		}
	}

	var lastErr error
	for _, path := range uniquePaths {
		if _, err := os.Stat(path); err == nil {
			config, err := Load(path)
			if err != nil {
				lastErr = fmt.Errorf("failed to load config from %s: %w", path, err)
				continue
			}
			return config, nil
		}
		lastErr = fmt.Errorf("config file not found: %s", path)
	}

	return nil, fmt.Errorf("config file not found in any of the expected locations: %v. Last error: %w", uniquePaths, lastErr)
}

// Validate checks the configuration and fills in defaults for omitted
// sections.
func (c *Config) Validate() error {
	// Validate server config
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if len(c.Server.CORSAllowedOrigins) == 0 {
		c.Server.CORSAllowedOrigins = []string{"*"}
	}
	if c.Server.ReadTimeoutSecs == 0 {
		c.Server.ReadTimeoutSecs = 30
	}
	if c.Server.IdleTimeoutSecs == 0 {
		c.Server.IdleTimeoutSecs = 60
	}

	// Validate logging config
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be 'debug', 'info', 'warn', or 'error')", c.Logging.Level)
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be 'json' or 'console')", c.Logging.Format)
	}

	// Validate storage config
	if c.Storage.Type == "" {
		c.Storage.Type = "sqlite"
	}
	if c.Storage.Type != "sqlite" {
		return fmt.Errorf("invalid storage type: %s (only 'sqlite' is supported)", c.Storage.Type)
	}
	if c.Storage.SQLiteBasePath == "" {
		c.Storage.SQLiteBasePath = "data"
	}

	// Validate station config
	if c.Station.Latitude < -90 || c.Station.Latitude > 90 {
		return fmt.Errorf("invalid station latitude: %f", c.Station.Latitude)
	}
	if c.Station.Longitude < -180 || c.Station.Longitude > 180 {
		return fmt.Errorf("invalid station longitude: %f", c.Station.Longitude)
	}
	if c.Station.Latitude == 0 && c.Station.Longitude == 0 {
		// Default to Tampa, FL
		c.Station.Latitude = 27.95
		c.Station.Longitude = -82.46
		c.Station.Name = "Tampa, FL"
	}

	// Validate NWS client config
	defaults := nws.DefaultConfig()
	if c.NWS.BaseURL == "" {
		c.NWS.BaseURL = defaults.BaseURL
	}
	if c.NWS.UserAgent == "" {
		c.NWS.UserAgent = defaults.UserAgent
	}
	if c.NWS.RequestTimeoutSeconds == 0 {
		c.NWS.RequestTimeoutSeconds = defaults.RequestTimeoutSeconds
	}
	if c.NWS.MaxRetries == 0 {
		c.NWS.MaxRetries = defaults.MaxRetries
	}
	if c.NWS.CacheTTLMinutes == 0 {
		c.NWS.CacheTTLMinutes = defaults.CacheTTLMinutes
	}

	// Validate derivation config
	if c.Derive.TauHours == 0 {
		c.Derive.TauHours = 6
	}
	validTau := false
	for _, tau := range forecast.AllowedTaus {
		if c.Derive.TauHours == tau {
			validTau = true
			break
		}
	}
	if !validTau {
		return fmt.Errorf("invalid tau_hours: %v (must be one of %v)", c.Derive.TauHours, forecast.AllowedTaus)
	}
	if c.Derive.HorizonSteps == 0 {
		c.Derive.HorizonSteps = forecast.DefaultHorizonSteps
	}
	if c.Derive.HorizonSteps < 1 {
		return fmt.Errorf("invalid horizon_steps: %d (must be >= 1)", c.Derive.HorizonSteps)
	}
	if c.Derive.RefreshIntervalMinutes == 0 {
		c.Derive.RefreshIntervalMinutes = 30
	}
	if c.Derive.RefreshIntervalMinutes < 1 {
		return fmt.Errorf("invalid refresh_interval_minutes: %d (must be >= 1)", c.Derive.RefreshIntervalMinutes)
	}
	if c.Derive.Bands == (forecast.HalfWidths{}) {
		c.Derive.Bands = forecast.DefaultHalfWidths()
	}

	// Validate solver limits
	if c.Simulate.MaxGridPoints == 0 {
		c.Simulate.MaxGridPoints = 40000
	}
	if c.Simulate.MaxSteps == 0 {
		c.Simulate.MaxSteps = 20000
	}
	if c.Simulate.MaxGridPoints < 2 || c.Simulate.MaxSteps < 1 {
		return fmt.Errorf("invalid simulate limits: max_grid_points=%d max_steps=%d", c.Simulate.MaxGridPoints, c.Simulate.MaxSteps)
	}

	// Validate sounding config
	soundingDefaults := sounding.DefaultServiceConfig()
	if c.Sounding.Wyoming.BaseURL == "" {
		c.Sounding.Wyoming.BaseURL = soundingDefaults.Wyoming.BaseURL
	}
	if c.Sounding.Wyoming.RequestTimeoutSeconds == 0 {
		c.Sounding.Wyoming.RequestTimeoutSeconds = soundingDefaults.Wyoming.RequestTimeoutSeconds
	}
	if c.Sounding.CacheTTLMinutes == 0 {
		c.Sounding.CacheTTLMinutes = soundingDefaults.CacheTTLMinutes
	}

	return nil
}
