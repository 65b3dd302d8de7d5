// Package bridge adapts the external viewer's event stream into workspace and
// widget state changes. Untyped renderer payloads are decoded into a closed
// event set here and never travel further.
package bridge

import (
	"context"
	"encoding/json"
	"sync"

	"pdf-insight-workspace/internal/config"
	"pdf-insight-workspace/internal/pkg/logger"
	"pdf-insight-workspace/internal/service"
	"pdf-insight-workspace/internal/widgets"
	"pdf-insight-workspace/internal/workspace"
	"pdf-insight-workspace/pkg/contextwindow"
	"pdf-insight-workspace/pkg/events"
	"pdf-insight-workspace/pkg/store"
	"pdf-insight-workspace/pkg/viewer"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type ISelectionEventBridge interface {
	Consume(ctx context.Context) error
}

type selectionEventBridge struct {
	pubSub    *gochannel.GoChannel
	viewer    viewer.Viewer
	documents service.IDocumentService
	workspace *workspace.Store
	widgets   *widgets.Store
	cfg       *config.Config
	logger    logger.ILogger

	mu        sync.Mutex
	lastPages map[string]int // documentID -> last scrolled page (0-based)
}

func NewSelectionEventBridge(
	pubSub *gochannel.GoChannel,
	viewerAPI viewer.Viewer,
	documents service.IDocumentService,
	workspaceStore *workspace.Store,
	widgetStore *widgets.Store,
	cfg *config.Config,
	sysLogger logger.ILogger,
) ISelectionEventBridge {
	return &selectionEventBridge{
		pubSub:    pubSub,
		viewer:    viewerAPI,
		documents: documents,
		workspace: workspaceStore,
		widgets:   widgetStore,
		cfg:       cfg,
		logger:    sysLogger,
		lastPages: make(map[string]int),
	}
}

// Consume subscribes to the viewer event topic and dispatches events until
// the context is cancelled.
func (b *selectionEventBridge) Consume(ctx context.Context) error {
	messages, err := b.pubSub.Subscribe(ctx, events.Topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			b.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (b *selectionEventBridge) processMessage(ctx context.Context, msg *message.Message) {
	// Viewer events are fire-and-forget; everything gets acked.
	defer msg.Ack()

	var env events.Envelope
	if err := json.Unmarshal(msg.Payload, &env); err != nil {
		b.logger.Warn("Bridge", "Dropped undecodable viewer event", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	event := env.Decode()
	if event == nil {
		b.logger.Debug("Bridge", "Ignored unknown viewer event kind", map[string]interface{}{
			"kind": env.Kind,
		})
		return
	}

	switch e := event.(type) {
	case events.SelectionEnd:
		b.handleSelectionEnd(ctx, e)
	case events.RenderStart:
		b.handleRenderStart(ctx, e)
	case events.PageScrolled:
		b.handlePageScrolled(e)
	case events.KeyDown:
		b.handleKeyDown(e)
	case events.PointerDown:
		// Pointer presses only matter while the contextual panel is open;
		// nothing else reacts to them.
		if b.widgets.ContextualOpen() {
			b.widgets.HandlePointerDown(e.Markers)
		}
	}
}

// handleSelectionEnd runs the selection pipeline: query the viewer, derive
// the page-window context, open the search and contextual panels. A
// selection made before the document detail finished loading is silently
// dropped; the user reselects once loading completes.
func (b *selectionEventBridge) handleSelectionEnd(ctx context.Context, e events.SelectionEnd) {
	selectedText, err := b.viewer.SelectedContent(ctx)
	if err != nil {
		b.logger.Warn("Bridge", "Failed to read selection from viewer", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if selectedText == "" {
		return
	}

	currentPage, err := b.viewer.CurrentPage(ctx)
	if err != nil {
		// The scroll tracker is the fallback when the page query fails.
		b.mu.Lock()
		currentPage = b.lastPages[e.DocumentID]
		b.mu.Unlock()
	}

	activeTab, ok := b.workspace.ActiveTab()
	if !ok {
		return
	}

	detail, found := b.documents.Detail(activeTab.ID)
	if !found {
		b.logger.Warn("Bridge", "Selection dropped: document detail not loaded yet", map[string]interface{}{
			"document_id": activeTab.ID,
		})
		return
	}

	_, contextText := contextwindow.Extract(detail.Sections, currentPage)

	b.widgets.MergeSelection(widgets.SelectionPatch{
		SelectedText:     &selectedText,
		ContextText:      &contextText,
		DocumentFilename: &activeTab.Title,
	})
	b.widgets.SetSearchOpen(true)

	// The contextual session snapshots ALL sections; the page window is
	// re-applied when an action is submitted, consistently with the
	// extraction above.
	b.widgets.SetContextualSession(store.ContextualActionSession{
		PageNumber: currentPage,
		Sections:   detail.Sections,
	})
	b.widgets.SetContextualOpen(true)
}

// handleRenderStart loads document detail into the cache and, when the tab
// carries a focus hint from a previously chosen search result, issues a
// one-time jump to the hinted page at the default zoom.
func (b *selectionEventBridge) handleRenderStart(ctx context.Context, e events.RenderStart) {
	if _, err := b.documents.EnsureDetail(ctx, e.DocumentID); err != nil {
		b.logger.Error("Bridge", "Failed to load document detail", map[string]interface{}{
			"document_id": e.DocumentID,
			"error":       err.Error(),
		})
		return
	}

	snapshot := b.workspace.Snapshot()
	for idx, tab := range snapshot.Tabs {
		if tab.ID != e.DocumentID || tab.FocusHint == nil {
			continue
		}
		hint := *tab.FocusHint
		if err := b.viewer.GoToLocation(ctx, e.DocumentID, hint.PageNumber, b.cfg.Viewer.DefaultZoom); err != nil {
			b.logger.Warn("Bridge", "Focus hint jump failed", map[string]interface{}{
				"document_id": e.DocumentID,
				"page":        hint.PageNumber,
				"error":       err.Error(),
			})
			return
		}
		// Consume the hint so the jump happens exactly once.
		tab.FocusHint = nil
		b.workspace.UpdateTab(idx, tab)
		return
	}
}

func (b *selectionEventBridge) handlePageScrolled(e events.PageScrolled) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastPages[e.DocumentID] = e.PageNumber
}

// handleKeyDown maps workspace chords: ctrl+right/left cycles tabs, ctrl+w
// closes the active tab.
func (b *selectionEventBridge) handleKeyDown(e events.KeyDown) {
	if !e.Ctrl {
		return
	}
	switch e.Key {
	case "ArrowRight":
		b.workspace.NextTab()
	case "ArrowLeft":
		b.workspace.PreviousTab()
	case "w":
		snapshot := b.workspace.Snapshot()
		if snapshot.ActiveIndex != nil {
			b.workspace.RemoveTab(*snapshot.ActiveIndex)
		}
	}
}
