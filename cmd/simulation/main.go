package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"pdf-insight-workspace/internal/bootstrap"
	"pdf-insight-workspace/internal/config"
	"pdf-insight-workspace/internal/constant"
	"pdf-insight-workspace/pkg/events"
	"pdf-insight-workspace/pkg/store"
	"pdf-insight-workspace/pkg/viewer"

	"github.com/fatih/color"
)

// Scripted end-to-end run against a live backend: open a document, select
// text on page 0, connect dots, generate an insight and an audio overview.
func main() {
	heading := color.New(color.FgCyan, color.Bold)
	success := color.New(color.FgGreen)
	failure := color.New(color.FgRed)

	heading.Println("=== PDF Insight Workspace Simulation ===")

	cfg := config.Load()
	fakeViewer := viewer.NewFake()
	container := bootstrap.NewContainer(cfg, fakeViewer)
	defer container.Logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := container.Bridge.Consume(ctx); err != nil {
		log.Fatalf("Failed to start bridge: %v", err)
	}

	// 1. Corpus catalog
	if err := container.DocumentService.RefreshDocuments(ctx); err != nil {
		log.Fatalf("Failed to load documents: %v", err)
	}
	snapshot := container.Workspace.Snapshot()
	heading.Printf("Documents in corpus: %d\n", len(snapshot.Documents))
	if len(snapshot.Documents) == 0 {
		failure.Println("Nothing to simulate: upload documents first.")
		return
	}
	doc := snapshot.Documents[0]

	// 2. Open the first document as a tab and let the viewer render it
	container.Workspace.AddTab(store.Tab{
		ID:       doc.ID,
		Title:    doc.Filename,
		FileName: doc.Filename,
	})
	publish(container, events.Envelope{Kind: events.TypeRenderStart, DocumentID: doc.ID})
	waitFor(func() bool {
		_, found := container.DocumentService.Detail(doc.ID)
		return found
	})
	success.Printf("Opened %s (%d sections)\n", doc.Filename, doc.TotalSections)

	// 3. Select the document title text on page 0
	fakeViewer.SetSelection(doc.Title, 0)
	publish(container, events.Envelope{Kind: events.TypeSelectionEnd, DocumentID: doc.ID})
	waitFor(func() bool {
		return !container.Orchestrator.SearchLoading() && container.Widgets.SearchOpen()
	})

	searchSession := container.Widgets.SearchSession()
	heading.Printf("Connect dots: %d results for %q (%.2fs)\n",
		len(searchSession.Results), searchSession.Query, searchSession.ProcessingTime)
	for _, result := range searchSession.Results {
		fmt.Printf("  - %s (page %d) relevance %.0f%%\n",
			result.DocumentFilename, result.PageNumber+1, result.RelevanceScore*100)
	}

	// 4. Insight generation
	if err := container.Orchestrator.SubmitInsight(ctx, constant.InsightComprehensive); err != nil {
		failure.Printf("Insight generation failed: %v\n", err)
	} else {
		insight := container.Widgets.InsightSession()
		success.Printf("Insights (%s, %d sections):\n%s\n",
			insight.InsightType, insight.RelatedSectionsCount, insight.Insights)
	}

	// 5. Audio overview
	if err := container.Orchestrator.SubmitAudio(ctx, constant.AudioOverview); err != nil {
		failure.Printf("Audio generation failed: %v\n", err)
	} else if container.Widgets.AudioOpen() {
		audio := container.Widgets.AudioSession()
		success.Printf("Audio overview ready: %s (%s)\n", audio.Title, audio.AudioURL)
	} else {
		failure.Println("Audio generation declined by backend.")
	}
}

func publish(container *bootstrap.Container, env events.Envelope) {
	env.OccurredAt = time.Now()
	if err := events.Publish(container.PubSub, env); err != nil {
		log.Fatalf("Failed to publish %s: %v", env.Kind, err)
	}
}

// waitFor polls a condition with a hard cap; the simulation has no UI event
// loop to resume on.
func waitFor(cond func() bool) {
	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
}
