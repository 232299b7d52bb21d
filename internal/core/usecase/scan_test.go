package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmittelstaedt/faxsort/internal/core/domain"
)

type recordingProcessor struct {
	seen   []string
	status domain.Status
}

func (p *recordingProcessor) ProcessFile(ctx context.Context, path string) domain.Result {
	p.seen = append(p.seen, filepath.Base(path))
	status := p.status
	if status == "" {
		status = domain.StatusSuccess
	}
	return domain.Result{Original: filepath.Base(path), Status: status}
}

func TestScanProcessesInFilenameOrder(t *testing.T) {
	fix := newPipelineFixture(t)
	fix.addInboundPDF(t, "c.pdf")
	fix.addInboundPDF(t, "a.pdf")
	fix.addInboundPDF(t, "b.PDF")

	processor := &recordingProcessor{}
	scanner := NewScanUseCase(fix.folders, fix.files, processor, 0)

	results, err := scanner.ScanAndProcess(context.Background())
	if err != nil {
		t.Fatalf("ScanAndProcess: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}
	want := []string{"a.pdf", "b.PDF", "c.pdf"}
	for i, name := range want {
		if processor.seen[i] != name {
			t.Fatalf("order = %v, want %v", processor.seen, want)
		}
	}
}

func TestScanIgnoresSubfoldersAndOtherTypes(t *testing.T) {
	fix := newPipelineFixture(t)
	fix.addInboundPDF(t, "fax.pdf")
	writeFile(t, filepath.Join(fix.folders.Inbound, "notes.txt"), "x")
	// The working subfolders live under the inbound root and must never be
	// scanned themselves.
	writeFile(t, filepath.Join(fix.folders.Archive, "old.pdf"), "x")

	processor := &recordingProcessor{}
	scanner := NewScanUseCase(fix.folders, fix.files, processor, 0)

	results, err := scanner.ScanAndProcess(context.Background())
	if err != nil {
		t.Fatalf("ScanAndProcess: %v", err)
	}
	if len(results) != 1 || processor.seen[0] != "fax.pdf" {
		t.Fatalf("seen = %v", processor.seen)
	}
}

func TestScanEmptyFolder(t *testing.T) {
	fix := newPipelineFixture(t)

	scanner := NewScanUseCase(fix.folders, fix.files, &recordingProcessor{}, 0)
	results, err := scanner.ScanAndProcess(context.Background())
	if err != nil {
		t.Fatalf("ScanAndProcess: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("got %d results, want 0", len(results))
	}
}

func TestScanFailureIsolation(t *testing.T) {
	fix := newPipelineFixture(t)
	fix.addInboundPDF(t, "a.pdf")
	fix.addInboundPDF(t, "b.pdf")

	processor := &recordingProcessor{status: domain.StatusAnalysisError}
	scanner := NewScanUseCase(fix.folders, fix.files, processor, 0)

	results, err := scanner.ScanAndProcess(context.Background())
	if err != nil {
		t.Fatalf("ScanAndProcess: %v", err)
	}
	// One document failing must not stop the scan.
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
}

func TestScanPausesBetweenDocuments(t *testing.T) {
	fix := newPipelineFixture(t)
	fix.addInboundPDF(t, "a.pdf")
	fix.addInboundPDF(t, "b.pdf")

	const pause = 50 * time.Millisecond
	// Processing outlasting the pause must not eat the gap: the pause counts
	// from the end of one document to the start of the next.
	processor := &timingProcessor{work: 80 * time.Millisecond}
	scanner := NewScanUseCase(fix.folders, fix.files, processor, pause)

	if _, err := scanner.ScanAndProcess(context.Background()); err != nil {
		t.Fatalf("ScanAndProcess: %v", err)
	}
	if len(processor.starts) != 2 {
		t.Fatalf("processed %d documents, want 2", len(processor.starts))
	}
	if gap := processor.starts[1].Sub(processor.ends[0]); gap < pause {
		t.Fatalf("gap between documents = %v, want at least %v", gap, pause)
	}
}

type timingProcessor struct {
	work   time.Duration
	starts []time.Time
	ends   []time.Time
}

func (p *timingProcessor) ProcessFile(ctx context.Context, path string) domain.Result {
	p.starts = append(p.starts, time.Now())
	time.Sleep(p.work)
	p.ends = append(p.ends, time.Now())
	return domain.Result{Original: filepath.Base(path), Status: domain.StatusSuccess}
}

func TestScanCancelledBetweenDocuments(t *testing.T) {
	fix := newPipelineFixture(t)
	fix.addInboundPDF(t, "a.pdf")
	fix.addInboundPDF(t, "b.pdf")

	ctx, cancel := context.WithCancel(context.Background())
	processor := &cancellingProcessor{cancel: cancel}
	// A non-zero pause means a wait before the second document, which
	// observes the cancelled context.
	scanner := NewScanUseCase(fix.folders, fix.files, processor, 10*time.Second)

	results, err := scanner.ScanAndProcess(ctx)
	if err == nil {
		t.Fatal("expected context error")
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1 before cancellation", len(results))
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

type cancellingProcessor struct {
	cancel context.CancelFunc
}

func (p *cancellingProcessor) ProcessFile(ctx context.Context, path string) domain.Result {
	p.cancel()
	return domain.Result{Original: filepath.Base(path), Status: domain.StatusSuccess}
}
