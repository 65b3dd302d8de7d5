package store

// DocumentSection is one extracted section of a processed document.
// Immutable once fetched from the backend.
type DocumentSection struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	SectionNumber int    `json:"section_number"`
	PageNumber    int    `json:"page_number"`
	Snippet       string `json:"snippet"`
}

// SearchResult is a single semantic search hit across the corpus.
type SearchResult struct {
	ID               string  `json:"id"`
	DocumentID       string  `json:"document_id"`
	DocumentTitle    string  `json:"document_title"`
	DocumentFilename string  `json:"document_filename"`
	SectionTitle     string  `json:"section_title"`
	Snippet          string  `json:"snippet"`
	PageNumber       int     `json:"page_number"`
	RelevanceScore   float64 `json:"relevance_score"`
}

// Tab is one open document view within the workspace.
// FocusHint, when present, tells the renderer which location to jump to on open.
type Tab struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	SourceURL string        `json:"url"`
	FileName  string        `json:"file_name,omitempty"`
	FocusHint *SearchResult `json:"focus_hint,omitempty"`
}

// SelectionContext is the ephemeral payload derived from a text selection.
// Not persisted beyond the current selection session.
type SelectionContext struct {
	SelectedText     string `json:"selected_text"`
	ContextText      string `json:"context"`
	DocumentFilename string `json:"filename"`
}

// ContextualActionSession is the page-window snapshot used to scope
// insight/audio generation to sections near the current page. Sections holds
// ALL sections of the document; the page window is re-applied at submit time.
type ContextualActionSession struct {
	PageNumber int               `json:"page_number"`
	Sections   []DocumentSection `json:"sections"`
}

// InsightSession is the insight panel payload.
type InsightSession struct {
	SelectedText         string `json:"selected_text"`
	InsightType          string `json:"insight_type"`
	Insights             string `json:"insights"`
	RelatedSectionsCount int    `json:"related_sections_count"`
	GroundedInDocuments  bool   `json:"grounded_in_documents"`
}

// AudioSession is the audio panel payload. Cleared when the panel closes so a
// stale audio URL can never replay.
type AudioSession struct {
	AudioURL string `json:"audio_url"`
	Title    string `json:"title"`
}

// SearchSession is the search panel payload: the selection that drove the
// query plus the reconciled result set.
type SearchSession struct {
	Selection      SelectionContext `json:"selection"`
	Query          string           `json:"query"`
	ProcessingTime float64          `json:"processing_time"`
	Results        []SearchResult   `json:"results"`
}
