package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jmittelstaedt/faxsort/internal/core/domain"
	"github.com/jmittelstaedt/faxsort/internal/core/ports"
	"github.com/jmittelstaedt/faxsort/internal/naming"
)

// ProcessUseCase drives one document through the filing state machine:
//
//	Pending -> Archived -> Rendered -> Classified -> Filed
//
// with error exits BackupError, ConversionError, AnalysisError and MoveError.
// Every terminal state writes exactly one journal entry. The use case never
// returns an error: each document's failure is isolated in its Result.
type ProcessUseCase struct {
	folders  domain.FolderSet
	files    ports.FileStore
	renderer ports.PageRenderer
	analyzer ports.DocumentAnalyzer
	journal  ports.Journal
	metrics  ports.PipelineMetrics
	now      func() time.Time
}

func NewProcessUseCase(
	folders domain.FolderSet,
	files ports.FileStore,
	renderer ports.PageRenderer,
	analyzer ports.DocumentAnalyzer,
	journal ports.Journal,
	metrics ports.PipelineMetrics,
) *ProcessUseCase {
	return &ProcessUseCase{
		folders:  folders,
		files:    files,
		renderer: renderer,
		analyzer: analyzer,
		journal:  journal,
		metrics:  metrics,
		now:      time.Now,
	}
}

func (uc *ProcessUseCase) ProcessFile(ctx context.Context, path string) domain.Result {
	start := uc.now()
	if uc.metrics != nil {
		uc.metrics.StartDocument()
	}

	result := uc.run(ctx, path)

	if err := uc.journal.Append(domain.NewLogEntry(uc.now(), result)); err != nil {
		result.Details = joinDetails(result.Details, fmt.Sprintf("journal append failed: %v", err))
	}
	if uc.metrics != nil {
		uc.metrics.FinishDocument(result.Status, uc.now().Sub(start).Seconds())
	}
	return result
}

func (uc *ProcessUseCase) run(ctx context.Context, path string) domain.Result {
	original := filepath.Base(path)
	timestamp := uc.now().Format(naming.TimestampLayout)

	// Pending -> Archived. The copy is the one step whose failure leaves the
	// original untouched in the inbound folder: without a safe archive copy
	// the pipeline must not move the file anywhere.
	archivePath := naming.UniquePath(uc.folders.Archive, timestamp+"_"+original)
	if err := uc.files.Copy(path, archivePath); err != nil {
		return domain.Result{
			Original: original,
			Status:   domain.StatusBackupError,
			Details:  domain.WrapError(domain.ErrBackup, "archive copy", err).Error(),
		}
	}

	// Archived -> Rendered.
	pngImage, err := uc.renderer.RenderFirstPage(ctx, path)
	if err != nil {
		details := domain.WrapError(domain.ErrConversion, "render page 1", err).Error()
		if _, moveErr := uc.moveToErrors(path, domain.MarkerConversion, timestamp, original); moveErr != nil {
			details = joinDetails(details, fmt.Sprintf("error-folder move failed: %v", moveErr))
		}
		return domain.Result{
			Original: original,
			Status:   domain.StatusConversionError,
			Details:  details,
		}
	}

	// Rendered -> Classified.
	classification, err := uc.analyzer.Analyze(ctx, pngImage)
	if err != nil {
		// The intended error-folder name is recorded even when the move
		// itself fails, so the journal always shows where the document was
		// supposed to go.
		details := err.Error()
		errorName, moveErr := uc.moveToErrors(path, domain.MarkerAnalysis, timestamp, original)
		if moveErr != nil {
			details = joinDetails(details, fmt.Sprintf("error-folder move failed: %v", moveErr))
		}
		return domain.Result{
			Original: original,
			NewName:  errorName,
			Status:   domain.StatusAnalysisError,
			Details:  details,
		}
	}

	// Classified -> Filed.
	newName := naming.BuildFilename(classification, timestamp)
	destPath := naming.UniquePath(uc.folders.Filed, newName)
	if err := uc.files.Move(path, destPath); err != nil {
		// The classification work is lost, but the intended filename is
		// recorded so a human can reconcile. Move guarantees the file still
		// sits in exactly one of inbound/filed.
		return domain.Result{
			Original:       original,
			NewName:        newName,
			Status:         domain.StatusMoveError,
			Classification: classification,
			Details:        domain.WrapError(domain.ErrMove, "file document", err).Error(),
		}
	}

	return domain.Result{
		Original:       original,
		NewName:        filepath.Base(destPath),
		Status:         domain.StatusSuccess,
		Classification: classification,
	}
}

// moveToErrors routes a failed original into the errors folder under a
// stage-marker prefix. The destination name is returned in any case; if the
// move fails the file stays in inbound and will be picked up again on the
// next scan.
func (uc *ProcessUseCase) moveToErrors(path, marker, timestamp, original string) (string, error) {
	dest := naming.UniquePath(uc.folders.Errors, fmt.Sprintf("%s_%s_%s", marker, timestamp, original))
	if err := uc.files.Move(path, dest); err != nil {
		return filepath.Base(dest), err
	}
	return filepath.Base(dest), nil
}

func joinDetails(existing, extra string) string {
	if existing == "" {
		return extra
	}
	return existing + "; " + extra
}
