package scraper

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"wiutctl/pkg/timetable"
)

// cacheDuration determines how long a timetable is kept before refreshing
const cacheDuration = 12 * time.Hour

// CacheEntry represents the disk data format
type CacheEntry struct {
	Timestamp time.Time       `json:"timestamp"`
	Week      *timetable.Week `json:"week"`
}

func getCachePath(groupID string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}

	cacheDir := filepath.Join(homeDir, ".wiutctl_cache")
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return "", fmt.Errorf("could not create cache directory: %w", err)
	}

	// Group ids are opaque; keep only the base name so they cannot escape the cache dir
	return filepath.Join(cacheDir, filepath.Base(groupID)+".json"), nil
}

// readCache checks if a valid, unexpired cache exists for this group
func readCache(groupID string) (*timetable.Week, bool) {
	path, err := getCachePath(groupID)
	if err != nil {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false // File doesn't exist or can't be read
	}

	var entry CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil || entry.Week == nil {
		return nil, false
	}

	if time.Since(entry.Timestamp) > cacheDuration {
		return nil, false // Expired
	}

	return entry.Week, true
}

// writeCache saves the timetable to disk
func writeCache(groupID string, week *timetable.Week) {
	path, err := getCachePath(groupID)
	if err != nil {
		return
	}

	entry := CacheEntry{
		Timestamp: time.Now(),
		Week:      week,
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return
	}

	_ = os.WriteFile(path, data, 0644)
}

// ClearCache removes every cached timetable.
func ClearCache() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("could not find user home directory: %w", err)
	}
	return os.RemoveAll(filepath.Join(homeDir, ".wiutctl_cache"))
}
