package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// LoginEnv overrides the saved username.
	LoginEnv = "WIUT_LOGIN"
	// PasswordEnv holds the password, which is never written to disk.
	PasswordEnv = "WIUT_PASSWORD"

	defaultOutputDir = "timetables"
	defaultDelayMS   = 2000
	defaultJitterMS  = 3000
)

// AppConfig holds all user-defined persistent settings
type AppConfig struct {
	Username        string   `json:"username,omitempty"`
	SavedGroups     []string `json:"saved_groups,omitempty"`
	OutputDir       string   `json:"output_dir,omitempty"`
	AccentColor     string   `json:"accent_color,omitempty"`
	Timezone        string   `json:"timezone,omitempty"`
	RequestDelayMS  int      `json:"request_delay_ms,omitempty"`
	RequestJitterMS int      `json:"request_jitter_ms,omitempty"`
	Lenient         bool     `json:"lenient,omitempty"`
}

// getConfigPath returns the absolute path to ~/.wiutctl.json
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".wiutctl.json"), nil
}

// Load reads the application configuration from disk.
// Returns an empty struct if the file does not exist.
func Load() (*AppConfig, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, just return an empty default configuration
		if os.IsNotExist(err) {
			return &AppConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Save writes the application configuration back to disk.
func Save(cfg *AppConfig) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Login returns whatever credentials are available, preferring the
// environment. Either value may be empty.
func (c *AppConfig) Login() (username, password string) {
	username = c.Username
	if env := os.Getenv(LoginEnv); env != "" {
		username = env
	}
	return username, os.Getenv(PasswordEnv)
}

// Credentials returns the login to use and fails if any part is missing.
func (c *AppConfig) Credentials() (username, password string, err error) {
	username, password = c.Login()

	if username == "" {
		return "", "", fmt.Errorf("no username configured: run 'wiutctl config --username ID' or set %s", LoginEnv)
	}
	if password == "" {
		return "", "", fmt.Errorf("no password given: set %s", PasswordEnv)
	}
	return username, password, nil
}

// Output returns the directory timetables are written to.
func (c *AppConfig) Output() string {
	if c.OutputDir == "" {
		return defaultOutputDir
	}
	return c.OutputDir
}

// Pacing returns the minimum delay and random jitter between requests.
// Zero selects the default; a negative value turns that part off.
func (c *AppConfig) Pacing() (time.Duration, time.Duration) {
	return pacingValue(c.RequestDelayMS, defaultDelayMS), pacingValue(c.RequestJitterMS, defaultJitterMS)
}

func pacingValue(ms, def int) time.Duration {
	switch {
	case ms < 0:
		return 0
	case ms == 0:
		ms = def
	}
	return time.Duration(ms) * time.Millisecond
}

// Location returns the configured timezone for calendar export, or the local one.
func (c *AppConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("could not load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
