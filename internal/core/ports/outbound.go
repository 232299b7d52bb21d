package ports

import (
	"context"

	"github.com/jmittelstaedt/faxsort/internal/core/domain"
)

// PageRenderer rasterizes the first page of a PDF into a PNG image.
type PageRenderer interface {
	RenderFirstPage(ctx context.Context, path string) ([]byte, error)
}

// DocumentAnalyzer classifies a rendered document image.
type DocumentAnalyzer interface {
	Analyze(ctx context.Context, pngImage []byte) (domain.Classification, error)
}

// FileStore performs the pipeline's filesystem operations.
type FileStore interface {
	ListPDFs(dir string) ([]string, error)
	Copy(src, dst string) error
	Move(src, dst string) error
}

// Journal is the bounded, append-only processing log.
type Journal interface {
	Append(entry domain.LogEntry) error
	Entries() ([]domain.LogEntry, error)
}

// PipelineMetrics records per-document pipeline outcomes.
type PipelineMetrics interface {
	StartDocument()
	FinishDocument(status domain.Status, seconds float64)
}
