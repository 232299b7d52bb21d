package usecase

import (
	"context"
	"path/filepath"
	"regexp"

	"github.com/jmittelstaedt/faxsort/internal/core/domain"
	"github.com/jmittelstaedt/faxsort/internal/core/ports"
	"github.com/jmittelstaedt/faxsort/internal/naming"
)

var reStageMarker = regexp.MustCompile(
	`^(` + domain.MarkerAnalysis + `|` + domain.MarkerConversion + `)_\d{8}_\d{6}_`)

// RetryUseCase moves failed documents from the errors folder back into the
// inbound root, stripping the stage-marker prefix, so the next scan picks
// them up again. Errors-folder files are never retried automatically.
type RetryUseCase struct {
	folders domain.FolderSet
	files   ports.FileStore
}

func NewRetryUseCase(folders domain.FolderSet, files ports.FileStore) *RetryUseCase {
	return &RetryUseCase{folders: folders, files: files}
}

func (uc *RetryUseCase) RetryErrors(ctx context.Context) (int, error) {
	paths, err := uc.files.ListPDFs(uc.folders.Errors)
	if err != nil {
		return 0, err
	}

	moved := 0
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return moved, err
		}
		name := filepath.Base(path)
		clean := reStageMarker.ReplaceAllString(name, "")
		dest := naming.UniquePath(uc.folders.Inbound, clean)
		if err := uc.files.Move(path, dest); err != nil {
			continue
		}
		moved++
	}
	return moved, nil
}
