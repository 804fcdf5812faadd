// Package airport holds the static set of departure airports that bring a
// flight under APPR.
package airport

import (
	"sort"
	"strings"
	"sync"
)

// Entry is one airport in the registry.
type Entry struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Registry is an immutable membership set of eligible departure airports.
// Safe for concurrent reads; a reload means constructing a new Registry.
type Registry struct {
	names map[string]string
	codes []string
}

// NewRegistry builds a registry from entries. Codes are case-normalized and
// the first entry wins on duplicates.
func NewRegistry(entries []Entry) *Registry {
	r := &Registry{
		names: make(map[string]string, len(entries)),
		codes: make([]string, 0, len(entries)),
	}
	for _, e := range entries {
		code := normalize(e.Code)
		if code == "" {
			continue
		}
		if _, dup := r.names[code]; dup {
			continue
		}
		r.names[code] = e.Name
		r.codes = append(r.codes, code)
	}
	sort.Strings(r.codes)
	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry of Canadian airports.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry(canadianAirports)
	})
	return defaultRegistry
}

// IsEligibleDeparture reports whether a flight departing from code is covered.
// Unknown codes return false.
func (r *Registry) IsEligibleDeparture(code string) bool {
	_, ok := r.names[normalize(code)]
	return ok
}

// Name returns the airport name for code.
func (r *Registry) Name(code string) (string, bool) {
	name, ok := r.names[normalize(code)]
	return name, ok
}

// List returns the registered codes in ascending order. The slice is a copy.
func (r *Registry) List() []string {
	return append([]string(nil), r.codes...)
}

// Entries returns code/name pairs in List order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.codes))
	for _, code := range r.codes {
		out = append(out, Entry{Code: code, Name: r.names[code]})
	}
	return out
}

// Len returns the number of registered airports.
func (r *Registry) Len() int {
	return len(r.codes)
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
