// Package filters keeps list-view filter state (search term, active tab,
// page number, month/year) synchronized with a URL query string. The query
// string is the single source of truth; data-fetching components observe
// navigations and re-render from it.
package filters

import (
	"net/url"
	"sync"
	"time"
)

// pageKey is the one key whose writes do not reset pagination.
const pageKey = "page"

// Navigator receives the encoded query string produced by each state change.
type Navigator func(query string)

// State holds the current filter values and the per-key debounce timers.
type State struct {
	mu       sync.Mutex
	values   url.Values
	navigate Navigator
	timers   map[string]*time.Timer
}

// New parses the current query string. A nil navigator is allowed; state
// changes are then only observable through Get/Query.
func New(rawQuery string, navigate Navigator) (*State, error) {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, err
	}
	if navigate == nil {
		navigate = func(string) {}
	}
	return &State{
		values:   values,
		navigate: navigate,
		timers:   make(map[string]*time.Timer),
	}, nil
}

// Get returns the current value for key, or "" if unset.
func (s *State) Get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values.Get(key)
}

// Query returns the encoded query string.
func (s *State) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values.Encode()
}

// Update writes key=value and navigates. A zero debounce applies
// immediately. A nonzero debounce collapses rapid updates on the same key
// to the last value inside the window, issuing exactly one navigation;
// every key has an independent timer. Writing any key other than "page"
// resets "page" to "1". An empty value removes the key.
func (s *State) Update(key, value string, debounce time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// An in-flight debounce for this key is superseded either way.
	if t, ok := s.timers[key]; ok {
		t.Stop()
		delete(s.timers, key)
	}

	if debounce <= 0 {
		s.applyLocked(key, value)
		s.navigate(s.values.Encode())
		return
	}

	s.timers[key] = time.AfterFunc(debounce, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.timers, key)
		s.applyLocked(key, value)
		s.navigate(s.values.Encode())
	})
}

// UpdateBatch applies several writes as one navigation.
func (s *State) UpdateBatch(updates map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range updates {
		if t, ok := s.timers[key]; ok {
			t.Stop()
			delete(s.timers, key)
		}
		s.applyLocked(key, value)
	}
	s.navigate(s.values.Encode())
}

// Toggle removes key when it already holds value, otherwise sets it.
func (s *State) Toggle(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.values.Get(key) == value {
		s.applyLocked(key, "")
	} else {
		s.applyLocked(key, value)
	}
	s.navigate(s.values.Encode())
}

// ClearAll removes every key not listed in except and navigates once.
func (s *State) ClearAll(except ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keep := make(map[string]bool, len(except))
	for _, k := range except {
		keep[k] = true
	}

	// A pending debounce may target a key that has no value yet; its timer
	// must not fire after the clear.
	for key, t := range s.timers {
		if !keep[key] {
			t.Stop()
			delete(s.timers, key)
		}
	}
	for key := range s.values {
		if !keep[key] {
			s.values.Del(key)
		}
	}
	s.navigate(s.values.Encode())
}

// applyLocked sets or removes a key and enforces the
// pagination-reset-on-filter-change invariant. Callers hold s.mu.
func (s *State) applyLocked(key, value string) {
	if value == "" {
		s.values.Del(key)
	} else {
		s.values.Set(key, value)
	}
	if key != pageKey {
		s.values.Set(pageKey, "1")
	}
}
