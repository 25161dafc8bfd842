package scraper

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"wiutctl/pkg/timetable"
)

func TestCacheReadWrite(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	groupID := "12345"

	// 1. Read non-existent cache
	week, ok := readCache(groupID)
	if ok || week != nil {
		t.Errorf("expected readCache to fail for non-existent cache, but got success")
	}

	// 2. Write cache
	testWeek := timetable.NewWeek()
	testWeek.Tuesday = timetable.Day{
		{Name: "Testing 101", Tutor: "Dr. T", Format: timetable.Seminar, Start: 10, Length: 2, Location: "ATB 101"},
	}
	writeCache(groupID, testWeek)

	// Verify file was created
	expectedPath := filepath.Join(tempDir, ".wiutctl_cache", "12345.json")
	if _, err := os.Stat(expectedPath); os.IsNotExist(err) {
		t.Errorf("expected cache file to be created at %s", expectedPath)
	}

	// 3. Read existing valid cache
	loaded, ok := readCache(groupID)
	if !ok {
		t.Fatalf("expected readCache to succeed for existing cache, but failed")
	}
	if !reflect.DeepEqual(testWeek, loaded) {
		t.Errorf("loaded week does not match written week.\nGot: %+v\nExpected: %+v", loaded, testWeek)
	}

	// 4. Clearing removes it
	if err := ClearCache(); err != nil {
		t.Fatalf("ClearCache failed: %v", err)
	}
	if _, ok := readCache(groupID); ok {
		t.Errorf("expected cache to be empty after ClearCache")
	}
}

func TestCacheExpiration(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	groupID := "expired"

	// Write cache normally first (so we guarantee directory structure)
	writeCache(groupID, timetable.NewWeek())

	cachePath, _ := getCachePath(groupID)

	entry := CacheEntry{
		Timestamp: time.Now().Add(-24 * time.Hour), // Expired (older than 12h)
		Week:      timetable.NewWeek(),
	}

	data, _ := json.Marshal(entry)
	if err := os.WriteFile(cachePath, data, 0644); err != nil {
		t.Fatalf("failed to overwrite cache file: %v", err)
	}

	if _, ok := readCache(groupID); ok {
		t.Errorf("expected readCache to reject expired cache (24h old, limit is 12h), but it incorrectly succeeded")
	}
}
