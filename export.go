package markpad

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/quessia/markpad/internal/fileutil"
)

// Exporter turns a rendered document into a file on disk. Export is
// independent of the edit/preview pipeline: it has no cancellation
// beyond ctx, and overlapping exports proceed independently.
type Exporter interface {
	ExportPDF(ctx context.Context, html, outputPath string) error
}

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// paperDimensions maps page sizes to portrait width/height in inches.
var paperDimensions = map[string][2]float64{
	PageSizeLetter: {8.5, 11},
	PageSizeA4:     {8.27, 11.69},
	PageSizeLegal:  {8.5, 14},
}

// PageSettings configures exported page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if _, ok := paperDimensions[strings.ToLower(p.Size)]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// paper returns width/height in inches, swapped for landscape.
func (p *PageSettings) paper() (width, height float64) {
	dims := paperDimensions[strings.ToLower(p.Size)]
	width, height = dims[0], dims[1]
	if strings.ToLower(p.Orientation) == OrientationLandscape {
		width, height = height, width
	}
	return width, height
}

// pdfRenderer abstracts rendering an HTML file to PDF bytes, so tests
// run without a browser.
type pdfRenderer interface {
	renderFromFile(ctx context.Context, filePath string, page *PageSettings) ([]byte, error)
}

// Compile-time interface checks.
var (
	_ Exporter    = (*PDFExporter)(nil)
	_ pdfRenderer = (*rodRenderer)(nil)
)

// defaultExportTimeout bounds page load during export.
const defaultExportTimeout = 30 * time.Second

// PDFExporter renders documents to PDF via headless Chrome (go-rod).
// Each export builds a fresh browser connection, so overlapping exports
// share no mutable state.
type PDFExporter struct {
	page     *PageSettings
	renderer pdfRenderer
	timeout  time.Duration
}

// ExportOption configures a PDFExporter.
type ExportOption func(*PDFExporter)

// WithExportTimeout bounds page load time per export.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithExportTimeout(d time.Duration) ExportOption {
	if d <= 0 {
		panic("markpad: WithExportTimeout duration must be positive")
	}
	return func(e *PDFExporter) { e.timeout = d }
}

// WithPageSettings sets the exported page geometry.
func WithPageSettings(p *PageSettings) ExportOption {
	return func(e *PDFExporter) { e.page = p }
}

// NewPDFExporter creates a PDFExporter with default page settings.
func NewPDFExporter(opts ...ExportOption) *PDFExporter {
	e := &PDFExporter{
		page:    DefaultPageSettings(),
		timeout: defaultExportTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.renderer == nil {
		e.renderer = &rodRenderer{timeout: e.timeout}
	}
	return e
}

// ExportPDF validates settings, writes the document to a temp file,
// renders it, and writes the PDF to outputPath. Failures wrap ErrExport
// so callers can classify without losing the cause.
func (e *PDFExporter) ExportPDF(ctx context.Context, html, outputPath string) error {
	if err := e.page.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(html, "html")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExport, err)
	}
	defer cleanup()

	pdfBuf, err := e.renderer.renderFromFile(ctx, tmpPath, e.page)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}

	// #nosec G306 -- exported documents are intended to be readable
	if err := os.WriteFile(outputPath, pdfBuf, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePDF, err)
	}
	return nil
}

// rodRenderer implements pdfRenderer using go-rod. Rod downloads a
// managed Chromium on first run if none is found.
type rodRenderer struct {
	timeout time.Duration
}

// renderFromFile opens a local HTML file in headless Chrome and renders
// it to PDF. Returns explicit errors instead of panicking when browser
// operations fail.
func (r *rodRenderer) renderFromFile(ctx context.Context, filePath string, page *PageSettings) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l := launcher.New()

	// Pre-installed browser for containerized environments
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	defer browser.Close()

	p, err := browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer p.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := p.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if page == nil {
		page = DefaultPageSettings()
	}
	width, height := page.paper()

	reader, err := p.PDF(&proto.PagePrintToPDF{
		PaperWidth:      floatPtr(width),
		PaperHeight:     floatPtr(height),
		MarginTop:       floatPtr(page.Margin),
		MarginBottom:    floatPtr(page.Margin),
		MarginLeft:      floatPtr(page.Margin),
		MarginRight:     floatPtr(page.Margin),
		PrintBackground: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
