package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"pdf-insight-workspace/internal/bootstrap"
	"pdf-insight-workspace/internal/config"
	"pdf-insight-workspace/internal/tracer"
	"pdf-insight-workspace/pkg/viewer"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Bootstrap Dependencies (Container)
	// A real renderer adapter implements viewer.Viewer and publishes its
	// events into Container.PubSub; the scripted fake stands in until an
	// embedding is attached.
	viewerAPI := viewer.NewFake()
	container := bootstrap.NewContainer(cfg, viewerAPI)
	defer container.Logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Start Background Consumer
	log.Println("Background: Starting Selection Event Bridge...")
	if err := container.Bridge.Consume(ctx); err != nil {
		log.Fatalf("Bridge consumer error: %v", err)
	}

	// 4. Warm the workspace: corpus catalog + viewer embedding credential
	if err := container.DocumentService.RefreshDocuments(ctx); err != nil {
		log.Printf("Warning: could not load document catalog: %v", err)
	}
	if err := container.DocumentService.LoadEmbedCredential(ctx); err != nil {
		log.Printf("Warning: could not load embed credential: %v", err)
	}

	// 5. Run until interrupted
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down workspace...")
}
