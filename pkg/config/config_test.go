package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestConfigLoadSave(t *testing.T) {
	// Create a temporary directory to act as the user's home directory
	tempDir := t.TempDir()

	// Override the home directory environment variable for testing
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir) // For Windows compatibility in tests

	// 1. Test Load with no existing file
	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error when loading missing config, got: %v", err)
	}
	if cfg == nil {
		t.Fatalf("expected empty config to be returned, got nil")
	}

	// 2. Modify and Save the config
	cfg.Username = "00012345"
	cfg.SavedGroups = []string{"4BIS1", "4BIS2"}
	cfg.OutputDir = "out"
	cfg.Timezone = "Asia/Tashkent"
	cfg.RequestDelayMS = 1500

	err = Save(cfg)
	if err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	// Verify the file was actually created
	configPath := filepath.Join(tempDir, ".wiutctl.json")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Errorf("expected config file to be created at %s", configPath)
	}

	// 3. Test Load with existing file
	loadedCfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load existing config: %v", err)
	}

	// Compare loaded config with saved config
	if !reflect.DeepEqual(cfg, loadedCfg) {
		t.Errorf("loaded config does not match saved config.\nGot: %+v\nExpected: %+v", loadedCfg, cfg)
	}
}

func TestConfigParseError(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	// Write invalid JSON to the config file
	configPath := filepath.Join(tempDir, ".wiutctl.json")
	err := os.WriteFile(configPath, []byte("invalid json { content"), 0644)
	if err != nil {
		t.Fatalf("failed to write invalid json: %v", err)
	}

	// Attempt to load the invalid JSON
	_, err = Load()
	if err == nil {
		t.Errorf("expected error when loading invalid json, got nil")
	}
}

func TestCredentials(t *testing.T) {
	t.Setenv(LoginEnv, "")
	t.Setenv(PasswordEnv, "")

	cfg := &AppConfig{Username: "00012345"}
	if _, _, err := cfg.Credentials(); err == nil {
		t.Errorf("expected error without a password")
	}

	t.Setenv(PasswordEnv, "secret")
	user, pass, err := cfg.Credentials()
	if err != nil || user != "00012345" || pass != "secret" {
		t.Errorf("unexpected credentials %q %q %v", user, pass, err)
	}

	// The environment wins over the saved username
	t.Setenv(LoginEnv, "00099999")
	user, _, _ = cfg.Credentials()
	if user != "00099999" {
		t.Errorf("expected env username, got %q", user)
	}

	empty := &AppConfig{}
	t.Setenv(LoginEnv, "")
	if _, _, err := empty.Credentials(); err == nil {
		t.Errorf("expected error without a username")
	}
}

func TestDefaults(t *testing.T) {
	cfg := &AppConfig{}

	if cfg.Output() != "timetables" {
		t.Errorf("unexpected default output dir %q", cfg.Output())
	}

	delay, jitter := cfg.Pacing()
	if delay != 2*time.Second || jitter != 3*time.Second {
		t.Errorf("unexpected default pacing %v %v", delay, jitter)
	}

	loc, err := cfg.Location()
	if err != nil || loc != time.Local {
		t.Errorf("expected local timezone by default, got %v %v", loc, err)
	}

	cfg.Timezone = "Not/AZone"
	if _, err := cfg.Location(); err == nil {
		t.Errorf("expected error for unknown timezone")
	}
}

func TestPacingOptOut(t *testing.T) {
	cfg := &AppConfig{RequestDelayMS: 500, RequestJitterMS: -1}
	delay, jitter := cfg.Pacing()
	if delay != 500*time.Millisecond || jitter != 0 {
		t.Errorf("expected 500ms delay without jitter, got %v %v", delay, jitter)
	}

	cfg = &AppConfig{RequestDelayMS: -1, RequestJitterMS: -1}
	delay, jitter = cfg.Pacing()
	if delay != 0 || jitter != 0 {
		t.Errorf("expected pacing turned off, got %v %v", delay, jitter)
	}
}

func TestLoginDoesNotFail(t *testing.T) {
	t.Setenv(LoginEnv, "")
	t.Setenv(PasswordEnv, "")

	cfg := &AppConfig{Username: "00012345"}
	user, pass := cfg.Login()
	if user != "00012345" || pass != "" {
		t.Errorf("unexpected login %q %q", user, pass)
	}

	t.Setenv(LoginEnv, "00099999")
	t.Setenv(PasswordEnv, "secret")
	user, pass = cfg.Login()
	if user != "00099999" || pass != "secret" {
		t.Errorf("expected env credentials, got %q %q", user, pass)
	}
}
