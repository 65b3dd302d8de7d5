// Package widgets owns the ephemeral session state of the four floating
// panels: search results ("connect dots"), contextual actions, insights, and
// the audio player. Panels are independently toggleable; payloads survive
// close/open toggles except for the audio panel, whose payload is cleared on
// close so a stale audio URL can never replay.
package widgets

import (
	"sync"

	"pdf-insight-workspace/internal/constant"
	"pdf-insight-workspace/pkg/store"
)

// SelectionPatch is a shallow-merge patch for the search panel's selection
// payload. Nil fields leave the existing value untouched.
type SelectionPatch struct {
	SelectedText     *string
	ContextText      *string
	DocumentFilename *string
}

// SelectionListener observes selection payload changes. Listeners fire only
// when the merged selection actually changed and the selected text is
// non-empty; this is what drives the search flow.
type SelectionListener func(store.SelectionContext)

type Store struct {
	mu sync.Mutex

	searchOpen    bool
	searchSession store.SearchSession

	contextualOpen    bool
	contextualSession store.ContextualActionSession

	insightOpen    bool
	insightSession store.InsightSession

	audioOpen    bool
	audioSession store.AudioSession

	selectionListeners []SelectionListener
}

func NewStore() *Store {
	return &Store{}
}

// OnSelectionChanged registers a listener for selection-driven search.
func (s *Store) OnSelectionChanged(fn SelectionListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectionListeners = append(s.selectionListeners, fn)
}

// --- Search panel ---

func (s *Store) SetSearchOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchOpen = open
}

func (s *Store) SearchOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchOpen
}

// MergeSelection shallow-merges the patch into the selection payload. Fields
// absent from the patch survive unchanged. Fires selection listeners when the
// selection changed and its text is non-empty.
func (s *Store) MergeSelection(patch SelectionPatch) {
	s.mu.Lock()
	prev := s.searchSession.Selection
	next := prev
	if patch.SelectedText != nil {
		next.SelectedText = *patch.SelectedText
	}
	if patch.ContextText != nil {
		next.ContextText = *patch.ContextText
	}
	if patch.DocumentFilename != nil {
		next.DocumentFilename = *patch.DocumentFilename
	}
	s.searchSession.Selection = next

	var listeners []SelectionListener
	if next != prev && next.SelectedText != "" {
		listeners = append(listeners, s.selectionListeners...)
	}
	s.mu.Unlock()

	// Listeners run outside the lock; they read back through snapshots.
	for _, fn := range listeners {
		fn(next)
	}
}

// SetSearchResults replaces the search panel's result set.
func (s *Store) SetSearchResults(query string, processingTime float64, results []store.SearchResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchSession.Query = query
	s.searchSession.ProcessingTime = processingTime
	s.searchSession.Results = results
}

// ClearSearchResults drops the result set, keeping the selection payload.
func (s *Store) ClearSearchResults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchSession.Query = ""
	s.searchSession.ProcessingTime = 0
	s.searchSession.Results = nil
}

func (s *Store) SearchSession() store.SearchSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.searchSession
	out.Results = make([]store.SearchResult, len(s.searchSession.Results))
	copy(out.Results, s.searchSession.Results)
	return out
}

func (s *Store) Selection() store.SelectionContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchSession.Selection
}

// --- Contextual action panel ---

func (s *Store) SetContextualOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contextualOpen = open
}

func (s *Store) ContextualOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contextualOpen
}

func (s *Store) SetContextualSession(session store.ContextualActionSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contextualSession = session
}

func (s *Store) ContextualSession() store.ContextualActionSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.contextualSession
	out.Sections = make([]store.DocumentSection, len(s.contextualSession.Sections))
	copy(out.Sections, s.contextualSession.Sections)
	return out
}

// HandlePointerDown implements the click-outside dismissal contract: while
// the contextual panel is open, a pointer press whose structural markers
// include neither panel root closes it. The bridge forwards pointer events
// only while the panel is open.
func (s *Store) HandlePointerDown(markers []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.contextualOpen {
		return
	}
	for _, m := range markers {
		if m == constant.MarkerContextualPanel || m == constant.MarkerSearchPanel {
			return
		}
	}
	s.contextualOpen = false
}

// --- Insight panel ---

func (s *Store) SetInsightOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insightOpen = open
}

func (s *Store) InsightOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insightOpen
}

func (s *Store) SetInsightSession(session store.InsightSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insightSession = session
}

func (s *Store) InsightSession() store.InsightSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insightSession
}

// --- Audio panel ---

// SetAudioOpen toggles the audio panel. Closing resets the payload to its
// zero value: a re-opened player must never resume a stale audio URL.
func (s *Store) SetAudioOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audioOpen = open
	if !open {
		s.audioSession = store.AudioSession{}
	}
}

func (s *Store) AudioOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.audioOpen
}

func (s *Store) SetAudioSession(session store.AudioSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audioSession = session
}

func (s *Store) AudioSession() store.AudioSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.audioSession
}
