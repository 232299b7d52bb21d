package usecase

import (
	"context"
	"time"

	"github.com/jmittelstaedt/faxsort/internal/core/domain"
	"github.com/jmittelstaedt/faxsort/internal/core/ports"
)

// ScanUseCase enumerates the inbound folder once and processes every PDF
// found, strictly sequentially in filename order. A fixed pause separates the
// end of one document from the start of the next, so back-to-back vision
// requests never hit the local model server without a gap. Files arriving
// after enumeration wait for the next scan.
type ScanUseCase struct {
	folders   domain.FolderSet
	files     ports.FileStore
	processor ports.DocumentProcessor
	pause     time.Duration
}

func NewScanUseCase(
	folders domain.FolderSet,
	files ports.FileStore,
	processor ports.DocumentProcessor,
	pause time.Duration,
) *ScanUseCase {
	return &ScanUseCase{
		folders:   folders,
		files:     files,
		processor: processor,
		pause:     pause,
	}
}

func (uc *ScanUseCase) ScanAndProcess(ctx context.Context) ([]domain.Result, error) {
	paths, err := uc.files.ListPDFs(uc.folders.Inbound)
	if err != nil {
		return nil, err
	}

	var results []domain.Result
	for i, path := range paths {
		// The pause counts from the end of the previous document, however
		// long its processing took. The first document starts immediately.
		if i > 0 && uc.pause > 0 {
			if err := sleepContext(ctx, uc.pause); err != nil {
				return results, err
			}
		}
		results = append(results, uc.processor.ProcessFile(ctx, path))
	}
	return results, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
