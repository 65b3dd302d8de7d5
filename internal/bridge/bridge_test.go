package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"pdf-insight-workspace/internal/config"
	"pdf-insight-workspace/internal/dto"
	"pdf-insight-workspace/internal/widgets"
	"pdf-insight-workspace/internal/workspace"
	"pdf-insight-workspace/pkg/events"
	"pdf-insight-workspace/pkg/store"
	"pdf-insight-workspace/pkg/viewer"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

// stubDocuments serves pre-seeded details and records EnsureDetail calls.
type stubDocuments struct {
	details map[string]*dto.DocumentDetail
	ensured []string
}

func (s *stubDocuments) RefreshDocuments(ctx context.Context) error { return nil }

func (s *stubDocuments) EnsureDetail(ctx context.Context, documentID string) (*dto.DocumentDetail, error) {
	s.ensured = append(s.ensured, documentID)
	if detail, ok := s.details[documentID]; ok {
		return detail, nil
	}
	return nil, errors.New("document not found")
}

func (s *stubDocuments) Detail(documentID string) (*dto.DocumentDetail, bool) {
	detail, ok := s.details[documentID]
	return detail, ok
}

func (s *stubDocuments) LoadEmbedCredential(ctx context.Context) error { return nil }

// pagelessViewer fails the current-page query so the scroll tracker fallback
// kicks in.
type pagelessViewer struct {
	*viewer.Fake
}

func (pagelessViewer) CurrentPage(ctx context.Context) (int, error) {
	return 0, errors.New("page query unavailable")
}

func testBridge(documents *stubDocuments, viewerAPI viewer.Viewer) (*selectionEventBridge, *workspace.Store, *widgets.Store) {
	workspaceStore := workspace.NewStore()
	widgetStore := widgets.NewStore()
	cfg := &config.Config{Viewer: config.ViewerConfig{DefaultZoom: 100}}
	b := &selectionEventBridge{
		viewer:    viewerAPI,
		documents: documents,
		workspace: workspaceStore,
		widgets:   widgetStore,
		cfg:       cfg,
		logger:    nopLogger{},
		lastPages: make(map[string]int),
	}
	return b, workspaceStore, widgetStore
}

func detailWithSections(id string, pages ...int) *dto.DocumentDetail {
	detail := &dto.DocumentDetail{}
	detail.Document.ID = id
	for i, p := range pages {
		detail.Sections = append(detail.Sections, store.DocumentSection{
			ID:         string(rune('a' + i)),
			PageNumber: p,
			Snippet:    string(rune('A' + i)),
		})
	}
	return detail
}

func TestSelectionOpensSearchAndContextualPanels(t *testing.T) {
	documents := &stubDocuments{details: map[string]*dto.DocumentDetail{
		"doc-1": detailWithSections("doc-1", 0, 1, 2, 5),
	}}
	fakeViewer := viewer.NewFake()
	fakeViewer.SetSelection("quoted passage", 1)

	b, workspaceStore, widgetStore := testBridge(documents, fakeViewer)
	workspaceStore.AddTab(store.Tab{ID: "doc-1", Title: "paper.pdf"})

	b.handleSelectionEnd(context.Background(), events.SelectionEnd{DocumentID: "doc-1"})

	sel := widgetStore.Selection()
	assert.Equal(t, "quoted passage", sel.SelectedText)
	assert.Equal(t, "A B C", sel.ContextText, "context is the snippets within one page of page 1")
	assert.Equal(t, "paper.pdf", sel.DocumentFilename)
	assert.True(t, widgetStore.SearchOpen())
	assert.True(t, widgetStore.ContextualOpen())

	session := widgetStore.ContextualSession()
	assert.Equal(t, 1, session.PageNumber)
	assert.Len(t, session.Sections, 4, "contextual session snapshots all sections, not the window")
}

func TestSelectionBeforeDetailLoadedIsDropped(t *testing.T) {
	documents := &stubDocuments{details: map[string]*dto.DocumentDetail{}}
	fakeViewer := viewer.NewFake()
	fakeViewer.SetSelection("too early", 0)

	b, workspaceStore, widgetStore := testBridge(documents, fakeViewer)
	workspaceStore.AddTab(store.Tab{ID: "doc-1", Title: "paper.pdf"})

	b.handleSelectionEnd(context.Background(), events.SelectionEnd{DocumentID: "doc-1"})

	assert.False(t, widgetStore.SearchOpen())
	assert.False(t, widgetStore.ContextualOpen())
	assert.Empty(t, widgetStore.Selection().SelectedText)
}

func TestEmptySelectionIgnored(t *testing.T) {
	documents := &stubDocuments{details: map[string]*dto.DocumentDetail{
		"doc-1": detailWithSections("doc-1", 0),
	}}
	b, workspaceStore, widgetStore := testBridge(documents, viewer.NewFake())
	workspaceStore.AddTab(store.Tab{ID: "doc-1", Title: "paper.pdf"})

	b.handleSelectionEnd(context.Background(), events.SelectionEnd{DocumentID: "doc-1"})

	assert.False(t, widgetStore.SearchOpen())
}

func TestSelectionFallsBackToScrollTracker(t *testing.T) {
	documents := &stubDocuments{details: map[string]*dto.DocumentDetail{
		"doc-1": detailWithSections("doc-1", 0, 3, 4, 9),
	}}
	fakeViewer := viewer.NewFake()
	fakeViewer.SetSelection("quoted passage", 0) // page ignored, query fails

	b, workspaceStore, widgetStore := testBridge(documents, pagelessViewer{fakeViewer})
	workspaceStore.AddTab(store.Tab{ID: "doc-1", Title: "paper.pdf"})

	b.handlePageScrolled(events.PageScrolled{DocumentID: "doc-1", PageNumber: 3})
	b.handleSelectionEnd(context.Background(), events.SelectionEnd{DocumentID: "doc-1"})

	assert.Equal(t, 3, widgetStore.ContextualSession().PageNumber,
		"last scrolled page substitutes for a failed page query")
	assert.Equal(t, "B C", widgetStore.Selection().ContextText)
}

func TestRenderStartFocusHintJumpsExactlyOnce(t *testing.T) {
	documents := &stubDocuments{details: map[string]*dto.DocumentDetail{
		"doc-1": detailWithSections("doc-1", 0),
	}}
	fakeViewer := viewer.NewFake()

	b, workspaceStore, _ := testBridge(documents, fakeViewer)
	workspaceStore.AddTab(store.Tab{
		ID:        "doc-1",
		Title:     "paper.pdf",
		FocusHint: &store.SearchResult{DocumentID: "doc-1", PageNumber: 4},
	})

	b.handleRenderStart(context.Background(), events.RenderStart{DocumentID: "doc-1"})
	b.handleRenderStart(context.Background(), events.RenderStart{DocumentID: "doc-1"})

	jumps := fakeViewer.Jumps()
	if assert.Len(t, jumps, 1, "focus hint must be consumed after the first jump") {
		assert.Equal(t, viewer.Jump{DocumentID: "doc-1", Page: 4, Zoom: 100}, jumps[0])
	}
	assert.Nil(t, workspaceStore.Snapshot().Tabs[0].FocusHint)
	assert.Equal(t, []string{"doc-1", "doc-1"}, documents.ensured)
}

func TestRenderStartWithoutHintOnlyWarmsCache(t *testing.T) {
	documents := &stubDocuments{details: map[string]*dto.DocumentDetail{
		"doc-1": detailWithSections("doc-1", 0),
	}}
	fakeViewer := viewer.NewFake()

	b, workspaceStore, _ := testBridge(documents, fakeViewer)
	workspaceStore.AddTab(store.Tab{ID: "doc-1", Title: "paper.pdf"})

	b.handleRenderStart(context.Background(), events.RenderStart{DocumentID: "doc-1"})

	assert.Empty(t, fakeViewer.Jumps())
	assert.Equal(t, []string{"doc-1"}, documents.ensured)
}

func TestKeyDownChords(t *testing.T) {
	documents := &stubDocuments{details: map[string]*dto.DocumentDetail{}}
	b, workspaceStore, _ := testBridge(documents, viewer.NewFake())
	for _, id := range []string{"A", "B", "C"} {
		workspaceStore.AddTab(store.Tab{ID: id})
	}

	active := func() int {
		state := workspaceStore.Snapshot()
		if state.ActiveIndex == nil {
			return -1
		}
		return *state.ActiveIndex
	}

	b.handleKeyDown(events.KeyDown{Key: "ArrowRight", Ctrl: true})
	assert.Equal(t, 0, active(), "ctrl+right wraps from the last tab")

	b.handleKeyDown(events.KeyDown{Key: "ArrowLeft", Ctrl: true})
	assert.Equal(t, 2, active())

	// Without ctrl the chord does nothing.
	b.handleKeyDown(events.KeyDown{Key: "ArrowRight"})
	assert.Equal(t, 2, active())

	b.handleKeyDown(events.KeyDown{Key: "w", Ctrl: true})
	state := workspaceStore.Snapshot()
	assert.Len(t, state.Tabs, 2)
	assert.Equal(t, 1, active())
}

func TestConsumeDispatchesPublishedEvents(t *testing.T) {
	documents := &stubDocuments{details: map[string]*dto.DocumentDetail{}}
	b, workspaceStore, _ := testBridge(documents, viewer.NewFake())

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	b.pubSub = pubSub

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	assert.NoError(t, b.Consume(ctx))

	for _, id := range []string{"A", "B"} {
		workspaceStore.AddTab(store.Tab{ID: id})
	}
	assert.NoError(t, events.Publish(pubSub, events.Envelope{
		Kind:       events.TypeKeyDown,
		OccurredAt: time.Now(),
		Key:        "ArrowRight",
		Ctrl:       true,
	}))

	assert.Eventually(t, func() bool {
		state := workspaceStore.Snapshot()
		return state.ActiveIndex != nil && *state.ActiveIndex == 0
	}, 2*time.Second, 10*time.Millisecond, "published chord never reached the workspace")
}

func TestPointerDownForwardedOnlyWhileContextualOpen(t *testing.T) {
	documents := &stubDocuments{details: map[string]*dto.DocumentDetail{}}
	b, _, widgetStore := testBridge(documents, viewer.NewFake())

	widgetStore.SetContextualOpen(true)
	b.processMessage(context.Background(), pointerMessage(t, "page-canvas"))
	assert.False(t, widgetStore.ContextualOpen(), "outside press closes the open panel")

	// Closed panel: the press is not forwarded at all.
	b.processMessage(context.Background(), pointerMessage(t, "page-canvas"))
	assert.False(t, widgetStore.ContextualOpen())
}

func pointerMessage(t *testing.T, markers ...string) *message.Message {
	t.Helper()
	payload, err := json.Marshal(events.Envelope{
		Kind:       events.TypePointerDown,
		OccurredAt: time.Now(),
		Markers:    markers,
	})
	assert.NoError(t, err)
	return message.NewMessage(watermill.NewUUID(), payload)
}
