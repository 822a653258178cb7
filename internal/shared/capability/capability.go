// Package capability holds session-scoped schema and feature flags.
//
// Flags start from a descriptor seeded once at startup (schema probe or config)
// and can only be switched off at runtime, never back on, until the process
// restarts.
package capability

import (
	"sort"
	"sync"
	"sync/atomic"
)

// Set is safe for concurrent use.
type Set struct {
	mu           sync.RWMutex
	imageColumns map[string]bool
	imageUploads atomic.Bool
}

// Snapshot is the JSON view exposed to the dashboard.
type Snapshot struct {
	ImageColumns map[string]bool `json:"image_columns"`
	ImageUploads bool            `json:"image_uploads"`
}

// New builds a set where every listed table has an image column.
func New(imageTables []string, uploads bool) *Set {
	s := &Set{imageColumns: make(map[string]bool, len(imageTables))}
	for _, t := range imageTables {
		s.imageColumns[t] = true
	}
	s.imageUploads.Store(uploads)
	return s
}

// ImageColumn reports whether writes to table may include image_url.
func (s *Set) ImageColumn(table string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.imageColumns[table]
}

// SetImageColumn records the probed state of a table.
func (s *Set) SetImageColumn(table string, ok bool) {
	s.mu.Lock()
	s.imageColumns[table] = ok
	s.mu.Unlock()
}

// DisableImageColumn returns true if this call flipped the flag.
func (s *Set) DisableImageColumn(table string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	was := s.imageColumns[table]
	s.imageColumns[table] = false
	return was
}

func (s *Set) ImageUploads() bool {
	return s.imageUploads.Load()
}

// DisableImageUploads returns true if this call flipped the flag.
func (s *Set) DisableImageUploads() bool {
	return s.imageUploads.Swap(false)
}

func (s *Set) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cols := make(map[string]bool, len(s.imageColumns))
	for k, v := range s.imageColumns {
		cols[k] = v
	}
	return Snapshot{ImageColumns: cols, ImageUploads: s.imageUploads.Load()}
}

// Tables lists the tables known to the set, sorted.
func (s *Set) Tables() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.imageColumns))
	for k := range s.imageColumns {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
