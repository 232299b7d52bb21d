package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ledongthuc/pdf"
)

// DPI is the target rasterization resolution for page 1.
const DPI = 300

type Config struct {
	Pdftoppm string // binary name or absolute path; if empty -> "pdftoppm"
	Mutool   string // fallback toolchain; if empty -> "mutool"
}

// Renderer converts page 1 of a PDF into a PNG raster. It tries pdftoppm
// first and falls back to mutool at the same resolution; a render failure is
// reported only when both toolchains fail or the document has no pages.
type Renderer struct {
	cfg    Config
	runner Runner
}

func NewRenderer(cfg Config) *Renderer {
	return NewRendererWithRunner(cfg, execRunner{})
}

func NewRendererWithRunner(cfg Config, runner Runner) *Renderer {
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Mutool == "" {
		cfg.Mutool = "mutool"
	}
	return &Renderer{cfg: cfg, runner: runner}
}

func (r *Renderer) RenderFirstPage(ctx context.Context, path string) ([]byte, error) {
	// Cheap structural check before shelling out. A parse error is not fatal
	// here: some documents break the pure-Go reader but rasterize fine.
	if pages, err := pageCount(path); err == nil && pages == 0 {
		return nil, errors.New("document has zero pages")
	}

	png, primaryErr := r.renderPdftoppm(ctx, path)
	if primaryErr == nil {
		return png, nil
	}

	png, fallbackErr := r.renderMutool(ctx, path)
	if fallbackErr == nil {
		return png, nil
	}

	return nil, fmt.Errorf("pdftoppm: %w; mutool: %w", primaryErr, fallbackErr)
}

// pdftoppm -png -r 300 -f 1 -l 1 -singlefile <in.pdf> <tmp/page>
func (r *Renderer) renderPdftoppm(ctx context.Context, path string) ([]byte, error) {
	tmp, err := os.MkdirTemp("", "faxsort-render-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmp)

	prefix := filepath.Join(tmp, "page")
	_, stderr, err := r.runner.Run(ctx, r.cfg.Pdftoppm,
		"-png", "-r", fmt.Sprint(DPI), "-f", "1", "-l", "1", "-singlefile",
		path, prefix)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, truncate(string(stderr), 200))
	}
	return readRendered(prefix + ".png")
}

// mutool draw -o <tmp/page.png> -r 300 <in.pdf> 1
func (r *Renderer) renderMutool(ctx context.Context, path string) ([]byte, error) {
	tmp, err := os.MkdirTemp("", "faxsort-render-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmp)

	out := filepath.Join(tmp, "page.png")
	_, stderr, err := r.runner.Run(ctx, r.cfg.Mutool,
		"draw", "-o", out, "-r", fmt.Sprint(DPI), path, "1")
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, truncate(string(stderr), 200))
	}
	return readRendered(out)
}

func readRendered(path string) ([]byte, error) {
	png, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rendered image missing: %w", err)
	}
	if len(png) == 0 {
		return nil, errors.New("rendered image is empty")
	}
	return png, nil
}

func pageCount(path string) (pages int, err error) {
	// The pure-Go reader panics on some malformed documents.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf inspect panic: %v", r)
		}
	}()
	f, reader, err := pdf.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return reader.NumPage(), nil
}
