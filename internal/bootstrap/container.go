package bootstrap

import (
	"context"
	"time"

	"pdf-insight-workspace/internal/bridge"
	"pdf-insight-workspace/internal/config"
	"pdf-insight-workspace/internal/orchestrator"
	"pdf-insight-workspace/internal/pkg/logger"
	"pdf-insight-workspace/internal/repository/memory"
	"pdf-insight-workspace/internal/service"
	"pdf-insight-workspace/internal/widgets"
	"pdf-insight-workspace/internal/workspace"
	"pdf-insight-workspace/pkg/backend"
	"pdf-insight-workspace/pkg/store"
	"pdf-insight-workspace/pkg/viewer"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// State containers
	Workspace *workspace.Store
	Widgets   *widgets.Store

	// Services
	DocumentService service.IDocumentService
	UploadService   service.IUploadService
	Orchestrator    *orchestrator.Orchestrator

	// Background consumer (exposed for main.go to run)
	Bridge bridge.ISelectionEventBridge

	// Event bus: renderer adapters publish viewer events here
	PubSub *gochannel.GoChannel

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config, viewerAPI viewer.Viewer) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	client := backend.NewClient(cfg.Backend.BaseURL, time.Duration(cfg.Backend.RequestTimeout)*time.Second)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. State containers
	workspaceStore := workspace.NewStore()
	widgetStore := widgets.NewStore()

	// 4. Repositories & services
	documentRepo := memory.NewDocumentRepository()
	documentService := service.NewDocumentService(client, documentRepo, workspaceStore, sysLogger)
	uploadService := service.NewUploadService(client, workspaceStore, cfg.Upload, sysLogger)

	// 5. Orchestrator
	orch := orchestrator.New(client, workspaceStore, widgetStore, cfg, sysLogger)

	// Selection changes drive the search flow. The network call runs off the
	// event goroutine; the generation counter inside the orchestrator keeps
	// overlapping responses ordered.
	widgetStore.OnSelectionChanged(func(selection store.SelectionContext) {
		go orch.Search(context.Background(), selection)
	})

	// 6. Bridge
	eventBridge := bridge.NewSelectionEventBridge(
		pubSub,
		viewerAPI,
		documentService,
		workspaceStore,
		widgetStore,
		cfg,
		sysLogger,
	)

	return &Container{
		Workspace:       workspaceStore,
		Widgets:         widgetStore,
		DocumentService: documentService,
		UploadService:   uploadService,
		Orchestrator:    orch,
		Bridge:          eventBridge,
		PubSub:          pubSub,
		Logger:          sysLogger,
	}
}
