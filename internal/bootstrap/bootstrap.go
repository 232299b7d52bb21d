package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/jmittelstaedt/faxsort/internal/config"
	"github.com/jmittelstaedt/faxsort/internal/core/domain"
	"github.com/jmittelstaedt/faxsort/internal/core/usecase"
	"github.com/jmittelstaedt/faxsort/internal/infrastructure/journal"
	"github.com/jmittelstaedt/faxsort/internal/infrastructure/llm/ollama"
	"github.com/jmittelstaedt/faxsort/internal/infrastructure/render"
	"github.com/jmittelstaedt/faxsort/internal/infrastructure/resilience"
	"github.com/jmittelstaedt/faxsort/internal/infrastructure/storage/localfs"
	"github.com/jmittelstaedt/faxsort/internal/observability/metrics"
)

// App wires configuration into the concrete adapters and the use cases. All
// commands construct exactly one App and pick the pieces they need.
type App struct {
	Config  config.Config
	Folders domain.FolderSet
	Logger  *slog.Logger

	Journal *journal.Store
	Metrics *metrics.PipelineMetrics
	Ollama  *ollama.Client

	Processor *usecase.ProcessUseCase
	Scanner   *usecase.ScanUseCase
	Retrier   *usecase.RetryUseCase
}

func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	if cfg.InboundDir == "" {
		return nil, fmt.Errorf("no inbound folder configured")
	}

	folders, err := localfs.EnsureFolders(cfg.InboundDir)
	if err != nil {
		return nil, fmt.Errorf("prepare folders: %w", err)
	}

	files := localfs.NewStore()
	journalStore := journal.NewStore(cfg.JournalPath, cfg.JournalMaxEntries)
	pipelineMetrics := metrics.NewPipelineMetrics()

	executor := resilience.NewExecutor(resilience.DefaultConfig())
	client := ollama.New(ollama.Config{
		BaseURL:     cfg.Ollama.URL,
		Model:       cfg.Ollama.Model,
		Timeout:     cfg.Ollama.Timeout.Std(),
		KeepAlive:   cfg.Ollama.KeepAlive,
		Temperature: cfg.Ollama.Temperature,
		NumCtx:      cfg.Ollama.NumCtx,
	}, executor)
	analyzer := ollama.NewClassifier(client, cfg.OwnIdentity)

	renderer := render.NewRenderer(render.Config{
		Pdftoppm: cfg.Render.Pdftoppm,
		Mutool:   cfg.Render.Mutool,
	})

	processor := usecase.NewProcessUseCase(folders, files, renderer, analyzer, journalStore, pipelineMetrics)
	scanner := usecase.NewScanUseCase(folders, files, processor, cfg.DocumentPause.Std())
	retrier := usecase.NewRetryUseCase(folders, files)

	return &App{
		Config:    cfg,
		Folders:   folders,
		Logger:    logger,
		Journal:   journalStore,
		Metrics:   pipelineMetrics,
		Ollama:    client,
		Processor: processor,
		Scanner:   scanner,
		Retrier:   retrier,
	}, nil
}
