// Package workspace owns the tab state machine: which documents are open,
// which one is active, and how the active index is recomputed on removal.
package workspace

import (
	"sync"

	"pdf-insight-workspace/internal/dto"
	"pdf-insight-workspace/pkg/store"
)

// State is a point-in-time snapshot of the workspace. ActiveIndex is nil when
// no tab is focused (the file-picker view); after any tab mutation it is nil
// iff Tabs is empty, otherwise 0 <= *ActiveIndex < len(Tabs).
type State struct {
	Tabs        []store.Tab
	ActiveIndex *int

	Documents        []dto.DocumentInfo
	DocumentRefresh  bool
	EmbedAPIClientID string
}

// Store is the single writer for workspace state. Every mutation happens
// under one mutex so observers never see a partially updated state; reads go
// through Snapshot rather than long-lived references.
type Store struct {
	mu    sync.Mutex
	state State
}

func NewStore() *Store {
	return &Store{}
}

// Snapshot returns a copy of the current state. The tab slice is copied so a
// caller holding a snapshot across an asynchronous boundary cannot observe
// later mutations.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyStateLocked()
}

func (s *Store) copyStateLocked() State {
	out := s.state
	out.Tabs = make([]store.Tab, len(s.state.Tabs))
	copy(out.Tabs, s.state.Tabs)
	if s.state.ActiveIndex != nil {
		idx := *s.state.ActiveIndex
		out.ActiveIndex = &idx
	}
	out.Documents = make([]dto.DocumentInfo, len(s.state.Documents))
	copy(out.Documents, s.state.Documents)
	return out
}

// AddTab appends the tab, makes it active, and returns its index. There is no
// de-duplication by document id: two tabs may reference the same document.
func (s *Store) AddTab(tab store.Tab) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Tabs = append(s.state.Tabs, tab)
	idx := len(s.state.Tabs) - 1
	s.state.ActiveIndex = &idx
	return idx
}

// UpdateTab replaces the tab at idx in place. Out-of-range indices are a
// silent no-op.
func (s *Store) UpdateTab(idx int, tab store.Tab) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx < 0 || idx >= len(s.state.Tabs) {
		return
	}
	s.state.Tabs[idx] = tab
}

// RemoveTab removes the tab at idx and recomputes the active index:
//   - no tabs left: nil
//   - previously nil: first tab becomes active
//   - removed before active: active shifts down by one
//   - removed the active tab: the tab that slid into its position becomes
//     active, or the new last tab if the removed one was last
//   - removed after active: unchanged
func (s *Store) RemoveTab(idx int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx < 0 || idx >= len(s.state.Tabs) {
		return
	}

	newTabs := make([]store.Tab, 0, len(s.state.Tabs)-1)
	newTabs = append(newTabs, s.state.Tabs[:idx]...)
	newTabs = append(newTabs, s.state.Tabs[idx+1:]...)

	prev := s.state.ActiveIndex
	var next *int
	switch {
	case len(newTabs) == 0:
		next = nil
	case prev == nil:
		next = intPtr(0)
	case idx < *prev:
		next = intPtr(*prev - 1)
	case idx == *prev:
		if idx >= len(newTabs) {
			next = intPtr(len(newTabs) - 1)
		} else {
			next = intPtr(idx)
		}
	default:
		next = intPtr(*prev)
	}

	s.state.Tabs = newTabs
	s.state.ActiveIndex = next
}

// SetActiveIndex sets the active index unconditionally; callers are
// responsible for bounds. nil focuses no tab.
func (s *Store) SetActiveIndex(idx *int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx == nil {
		s.state.ActiveIndex = nil
		return
	}
	v := *idx
	s.state.ActiveIndex = &v
}

// NextTab rotates forward cyclically. No-op with no tabs; with no active tab
// the first tab becomes active.
func (s *Store) NextTab() {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.state.Tabs)
	if n == 0 {
		return
	}
	if s.state.ActiveIndex == nil {
		s.state.ActiveIndex = intPtr(0)
		return
	}
	s.state.ActiveIndex = intPtr((*s.state.ActiveIndex + 1) % n)
}

// PreviousTab rotates backward cyclically. No-op with no tabs; with no active
// tab the last tab becomes active.
func (s *Store) PreviousTab() {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.state.Tabs)
	if n == 0 {
		return
	}
	if s.state.ActiveIndex == nil {
		s.state.ActiveIndex = intPtr(n - 1)
		return
	}
	s.state.ActiveIndex = intPtr((*s.state.ActiveIndex - 1 + n) % n)
}

// ActiveTab returns the currently focused tab, or false when none is.
func (s *Store) ActiveTab() (store.Tab, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.ActiveIndex == nil {
		return store.Tab{}, false
	}
	return s.state.Tabs[*s.state.ActiveIndex], true
}

func (s *Store) SetDocuments(docs []dto.DocumentInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Documents = docs
}

func (s *Store) SetDocumentRefresh(value bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.DocumentRefresh = value
}

func (s *Store) SetEmbedAPIClientID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.EmbedAPIClientID = id
}

func intPtr(v int) *int {
	return &v
}
