package scraper

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnknownGroup is returned when a group name is not in the group table.
	ErrUnknownGroup = errors.New("unknown group")
	// ErrLoginRejected is returned when the intranet refuses the credentials.
	ErrLoginRejected = errors.New("login rejected")
	// ErrNotLoggedIn is returned when a page request is bounced to the login form.
	ErrNotLoggedIn = errors.New("session is not logged in")
)

// Group represents a study group (e.g., "4BIS1") and its internal class id
type Group struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// GroupTable maps group display names to internal ids, in page order.
type GroupTable struct {
	groups []Group
	byName map[string]string
}

// NewGroupTable builds a table from groups. Later duplicates of a name are ignored.
func NewGroupTable(groups []Group) *GroupTable {
	t := &GroupTable{byName: make(map[string]string, len(groups))}
	for _, g := range groups {
		g.Name = strings.TrimSpace(g.Name)
		if _, exists := t.byName[g.Name]; exists {
			continue
		}
		t.byName[g.Name] = g.ID
		t.groups = append(t.groups, g)
	}
	return t
}

// Groups returns all groups in page order.
func (t *GroupTable) Groups() []Group {
	return append([]Group(nil), t.groups...)
}

// Len returns the number of groups.
func (t *GroupTable) Len() int {
	return len(t.groups)
}

// Lookup resolves a group name to its id. It never guesses: a name that is
// not in the table yields ErrUnknownGroup.
func (t *GroupTable) Lookup(name string) (string, error) {
	id, ok := t.byName[strings.TrimSpace(name)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownGroup, name)
	}
	return id, nil
}

// Select resolves several names at once, failing on the first unknown one.
func (t *GroupTable) Select(names []string) ([]Group, error) {
	var out []Group
	for _, name := range names {
		id, err := t.Lookup(name)
		if err != nil {
			return nil, err
		}
		out = append(out, Group{Name: strings.TrimSpace(name), ID: id})
	}
	return out, nil
}

// Match returns the groups whose name contains query, case-insensitively, sorted by name.
func (t *GroupTable) Match(query string) []Group {
	query = strings.ToLower(strings.TrimSpace(query))
	var out []Group
	for _, g := range t.groups {
		if strings.Contains(strings.ToLower(g.Name), query) {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
