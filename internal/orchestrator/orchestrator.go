// Package orchestrator turns selection events and user submissions into
// backend calls and reconciles their asynchronous results with current UI
// state. Three independent flows: semantic search, insight generation, audio
// overview generation.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"pdf-insight-workspace/internal/config"
	"pdf-insight-workspace/internal/dto"
	"pdf-insight-workspace/internal/pkg/logger"
	"pdf-insight-workspace/internal/widgets"
	"pdf-insight-workspace/internal/workspace"
	"pdf-insight-workspace/pkg/backend"
	"pdf-insight-workspace/pkg/contextwindow"
	"pdf-insight-workspace/pkg/store"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Client-side preconditions, checked before any network call.
var (
	ErrEmptySelection      = errors.New("no text selected")
	ErrNoInsightCategory   = errors.New("no insight category selected")
	ErrNoAudioCategory     = errors.New("no audio overview category selected")
	ErrUnknownCategory     = errors.New("category not in the allowed set")
	ErrNoGroundingSections = errors.New("no sections found near the current page")
	ErrGenerationBusy      = errors.New("a generation request is already in flight")
)

type Orchestrator struct {
	client    *backend.Client
	workspace *workspace.Store
	widgets   *widgets.Store
	cfg       *config.Config
	logger    logger.ILogger
	validate  *validator.Validate

	mu            sync.Mutex
	searchLoading bool
	searchErrors  []string
	searchGen     uint64
	actionBusy    bool
}

func New(
	client *backend.Client,
	workspaceStore *workspace.Store,
	widgetStore *widgets.Store,
	cfg *config.Config,
	sysLogger logger.ILogger,
) *Orchestrator {
	return &Orchestrator{
		client:    client,
		workspace: workspaceStore,
		widgets:   widgetStore,
		cfg:       cfg,
		logger:    sysLogger,
		validate:  validator.New(),
	}
}

var tracer = otel.Tracer("pdf-insight-workspace/orchestrator")

// --- Search flow ---

// Search runs the connect-dots flow for one selection. Requests are never
// cancelled; instead each call takes a generation ticket and only the latest
// generation may write results back, so a slow older response can never
// clobber a newer one.
func (o *Orchestrator) Search(ctx context.Context, selection store.SelectionContext) {
	if selection.SelectedText == "" {
		return
	}

	ctx, span := tracer.Start(ctx, "connect-dots")
	defer span.End()
	span.SetAttributes(attribute.Int("selection.length", len(selection.SelectedText)))

	o.mu.Lock()
	o.searchGen++
	gen := o.searchGen
	o.searchLoading = true
	o.searchErrors = nil
	o.mu.Unlock()

	resp, err := o.client.ConnectDots(ctx, dto.ConnectDotsRequest{
		SelectedText: selection.SelectedText,
		Context:      selection.ContextText,
		MaxResults:   o.cfg.Backend.MaxResults,
	})

	o.mu.Lock()
	if gen != o.searchGen {
		// A newer selection superseded this request while it was in
		// flight. Drop the response on the floor.
		o.mu.Unlock()
		o.logger.Debug("Orchestrator", "Discarded stale search response", map[string]interface{}{
			"generation": gen,
		})
		return
	}
	o.searchLoading = false
	if err != nil {
		o.searchErrors = []string{err.Error()}
	}
	o.mu.Unlock()

	if err != nil {
		o.logger.Error("Orchestrator", "Connect dots failed", map[string]interface{}{
			"error": err.Error(),
		})
		o.widgets.ClearSearchResults()
		return
	}

	o.widgets.SetSearchResults(resp.Query, resp.ProcessingTime, resp.Results)
}

// SearchLoading reports whether a search request is in flight.
func (o *Orchestrator) SearchLoading() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.searchLoading
}

// SearchErrors returns the error messages of the most recent failed search.
func (o *Orchestrator) SearchErrors() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, len(o.searchErrors))
	copy(out, o.searchErrors)
	return out
}

// OpenSearchResult opens a result as a new tab carrying a focus hint for the
// renderer. No de-duplication: picking the same document twice opens two tabs.
func (o *Orchestrator) OpenSearchResult(result store.SearchResult) int {
	return o.workspace.AddTab(store.Tab{
		ID:        result.DocumentID,
		Title:     result.DocumentFilename,
		SourceURL: o.client.DocumentPDFURL(result.DocumentID),
		FileName:  result.DocumentFilename,
		FocusHint: &result,
	})
}

// --- Insight flow ---

// SubmitInsight runs the insight generation flow for the chosen category.
// Validation failures return before any network call; network failures come
// back as a generic wrapped error for toast-level display.
func (o *Orchestrator) SubmitInsight(ctx context.Context, category string) error {
	if err := o.acquireAction(); err != nil {
		return err
	}
	defer o.releaseAction()

	ctx, span := tracer.Start(ctx, "generate-insights")
	defer span.End()

	if category == "" {
		return ErrNoInsightCategory
	}
	if !contains(o.cfg.Generation.InsightTypes, category) {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}

	selection := o.widgets.Selection()
	if selection.SelectedText == "" {
		return ErrEmptySelection
	}

	session := o.widgets.ContextualSession()
	sectionIDs := contextwindow.SectionIDs(session.Sections, session.PageNumber)

	req := dto.InsightRequest{
		SelectedText:    selection.SelectedText,
		InsightType:     category,
		RelatedSections: sectionIDs,
	}
	if err := o.validate.Struct(req); err != nil {
		return fmt.Errorf("invalid insight request: %w", err)
	}

	resp, err := o.client.GenerateInsights(ctx, req)
	if err != nil {
		o.logger.Error("Orchestrator", "Insight generation failed", map[string]interface{}{
			"insight_type": category,
			"error":        err.Error(),
		})
		return fmt.Errorf("failed to generate insights: %w", err)
	}

	o.widgets.SetInsightSession(store.InsightSession{
		SelectedText:         resp.SelectedText,
		InsightType:          resp.InsightType,
		Insights:             resp.Insights,
		RelatedSectionsCount: resp.RelatedSectionsCount,
		GroundedInDocuments:  resp.GroundedInDocuments,
	})
	o.widgets.SetInsightOpen(true)
	return nil
}

// --- Audio flow ---

// SubmitAudio runs the audio overview flow. Stricter than insights: the
// grounding subset must be non-empty, and a 2xx response with success=false
// is a logged no-op rather than an error (the panel simply does not open).
func (o *Orchestrator) SubmitAudio(ctx context.Context, category string) error {
	if err := o.acquireAction(); err != nil {
		return err
	}
	defer o.releaseAction()

	ctx, span := tracer.Start(ctx, "generate-audio-overview")
	defer span.End()

	if category == "" {
		return ErrNoAudioCategory
	}
	if !contains(o.cfg.Generation.AudioTypes, category) {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}

	selection := o.widgets.Selection()
	if selection.SelectedText == "" {
		return ErrEmptySelection
	}

	session := o.widgets.ContextualSession()
	sectionIDs := contextwindow.SectionIDs(session.Sections, session.PageNumber)
	if len(sectionIDs) == 0 {
		return ErrNoGroundingSections
	}

	req := dto.AudioRequest{
		TextContent:     selection.SelectedText,
		RelatedSections: sectionIDs,
		AudioType:       category,
		Voice:           o.cfg.Generation.Voice,
	}
	if err := o.validate.Struct(req); err != nil {
		return fmt.Errorf("invalid audio request: %w", err)
	}

	resp, err := o.client.GenerateAudio(ctx, req)
	if err != nil {
		o.logger.Error("Orchestrator", "Audio generation failed", map[string]interface{}{
			"audio_type": category,
			"error":      err.Error(),
		})
		return fmt.Errorf("failed to generate audio overview: %w", err)
	}

	if !resp.Success {
		o.logger.Warn("Orchestrator", "Audio generation declined by backend", map[string]interface{}{
			"audio_type": category,
			"sections":   len(sectionIDs),
		})
		return nil
	}

	o.widgets.SetAudioSession(store.AudioSession{
		AudioURL: o.client.AudioFileURL(resp.AudioFile),
		Title:    fmt.Sprintf("%s - Audio %s", selection.DocumentFilename, category),
	})
	o.widgets.SetAudioOpen(true)
	return nil
}

// ActionBusy reports whether an insight or audio request is in flight. The
// flag is shared between the two forms to prevent double submission.
func (o *Orchestrator) ActionBusy() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.actionBusy
}

func (o *Orchestrator) acquireAction() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.actionBusy {
		return ErrGenerationBusy
	}
	o.actionBusy = true
	return nil
}

func (o *Orchestrator) releaseAction() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.actionBusy = false
}

func contains(set []string, value string) bool {
	for _, v := range set {
		if v == value {
			return true
		}
	}
	return false
}
