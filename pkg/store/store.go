package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"wiutctl/pkg/timetable"
)

// unsafeChars are replaced when a group name becomes a file name.
var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ErrNameCollision is returned when two groups would share one file.
var ErrNameCollision = errors.New("file name already used by another group")

// Store keeps one JSON file per group under a directory. A store refuses to
// let a second group overwrite a file it has written for a different group.
type Store struct {
	Dir string

	mu     sync.Mutex
	owners map[string]string
}

// New returns a store rooted at dir.
func New(dir string) *Store {
	return &Store{Dir: dir}
}

// FileName returns the file name used for a group.
func FileName(group string) string {
	name := unsafeChars.ReplaceAllString(strings.TrimSpace(group), "_")
	name = strings.Trim(name, "._")
	if name == "" {
		name = "group"
	}
	return name + ".json"
}

// Path returns where the timetable of group is stored.
func (s *Store) Path(group string) string {
	return filepath.Join(s.Dir, FileName(group))
}

// Save writes the week of group, replacing any previous file.
func (s *Store) Save(group string, week *timetable.Week) error {
	if err := s.claim(group); err != nil {
		return err
	}

	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(week, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize timetable of %s: %w", group, err)
	}

	// Write to a temp file first so readers never see a half written week
	tmp, err := os.CreateTemp(s.Dir, ".tmp-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write timetable of %s: %w", group, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmp.Name(), s.Path(group)); err != nil {
		return fmt.Errorf("failed to write timetable of %s: %w", group, err)
	}
	return nil
}

func (s *Store) claim(group string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := FileName(group)
	if owner, ok := s.owners[name]; ok && owner != group {
		return fmt.Errorf("%s: %w: %s", group, ErrNameCollision, owner)
	}
	if s.owners == nil {
		s.owners = make(map[string]string)
	}
	s.owners[name] = group
	return nil
}

// Load reads a stored week.
func (s *Store) Load(group string) (*timetable.Week, error) {
	data, err := os.ReadFile(s.Path(group))
	if err != nil {
		return nil, fmt.Errorf("failed to read timetable of %s: %w", group, err)
	}

	week := timetable.NewWeek()
	if err := json.Unmarshal(data, week); err != nil {
		return nil, fmt.Errorf("failed to parse timetable of %s: %w", group, err)
	}
	return week, nil
}

// List returns the stored file names without extension, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != ".json" {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(names)
	return names, nil
}
