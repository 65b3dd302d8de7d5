package dto

import "pdf-insight-workspace/pkg/store"

// ConnectDotsRequest is the semantic search request, sent form-encoded.
// Context is omitted from the form when empty: search then runs on the
// selected text alone.
type ConnectDotsRequest struct {
	SelectedText string `json:"selected_text" validate:"required"`
	Context      string `json:"context,omitempty"`
	MaxResults   int    `json:"max_results" validate:"min=1"`
}

// ConnectDotsResponse is the semantic search response.
type ConnectDotsResponse struct {
	Query          string               `json:"query"`
	ProcessingTime float64              `json:"processing_time"`
	Results        []store.SearchResult `json:"results"`
}

// InsightRequest asks for a textual insight grounded in nearby sections.
type InsightRequest struct {
	SelectedText    string   `json:"selected_text" validate:"required"`
	InsightType     string   `json:"insight_type" validate:"required"`
	RelatedSections []string `json:"related_sections"`
}

// InsightResponse is the generated insight.
type InsightResponse struct {
	SelectedText         string `json:"selected_text"`
	InsightType          string `json:"insight_type"`
	Insights             string `json:"insights"`
	RelatedSectionsCount int    `json:"related_sections_count"`
	GroundedInDocuments  bool   `json:"grounded_in_documents"`
}

// AudioRequest asks for a synthesized audio overview. RelatedSections must be
// non-empty: audio generation is never attempted with zero grounding sections.
type AudioRequest struct {
	TextContent     string   `json:"text_content" validate:"required"`
	RelatedSections []string `json:"related_sections" validate:"min=1"`
	AudioType       string   `json:"audio_type" validate:"required"`
	Voice           string   `json:"voice"`
}

// AudioResponse is the audio generation outcome. Success false on an
// otherwise-2xx response means the backend declined to generate; callers
// treat it as a no-op, not an error.
type AudioResponse struct {
	Success          bool   `json:"success"`
	AudioFile        string `json:"audio_file"`
	Script           string `json:"script"`
	DurationEstimate string `json:"duration_estimate"`
	AudioType        string `json:"audio_type"`
	SectionsIncluded int    `json:"sections_included"`
}
