package markpad

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// withRenderer swaps the browser renderer, for tests without Chrome.
func withRenderer(r pdfRenderer) ExportOption {
	return func(e *PDFExporter) { e.renderer = r }
}

// mockPDFRenderer returns canned bytes and records the file it was given.
type mockPDFRenderer struct {
	output   []byte
	err      error
	filePath string
	page     *PageSettings
}

func (m *mockPDFRenderer) renderFromFile(_ context.Context, filePath string, page *PageSettings) ([]byte, error) {
	m.filePath = filePath
	m.page = page
	if m.err != nil {
		return nil, m.err
	}
	return m.output, nil
}

func TestPageSettings_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		page    *PageSettings
		wantErr error
	}{
		{name: "nil settings are valid", page: nil},
		{name: "defaults are valid", page: DefaultPageSettings()},
		{name: "a4 landscape", page: &PageSettings{Size: "a4", Orientation: "landscape", Margin: 1}},
		{name: "uppercase size accepted", page: &PageSettings{Size: "Letter", Orientation: "portrait", Margin: 0.5}},
		{
			name:    "unknown size",
			page:    &PageSettings{Size: "tabloid", Orientation: "portrait", Margin: 0.5},
			wantErr: ErrInvalidPageSize,
		},
		{
			name:    "unknown orientation",
			page:    &PageSettings{Size: "letter", Orientation: "sideways", Margin: 0.5},
			wantErr: ErrInvalidOrientation,
		},
		{
			name:    "margin too small",
			page:    &PageSettings{Size: "letter", Orientation: "portrait", Margin: 0.1},
			wantErr: ErrInvalidMargin,
		},
		{
			name:    "margin too large",
			page:    &PageSettings{Size: "letter", Orientation: "portrait", Margin: 4},
			wantErr: ErrInvalidMargin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.page.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPDFExporter_ExportPDF(t *testing.T) {
	t.Parallel()

	mock := &mockPDFRenderer{output: []byte("%PDF-1.4 fake")}
	e := NewPDFExporter(withRenderer(mock))

	outPath := filepath.Join(t.TempDir(), "out.pdf")
	if err := e.ExportPDF(context.Background(), "<html><body>doc</body></html>", outPath); err != nil {
		t.Fatalf("ExportPDF: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(data) != "%PDF-1.4 fake" {
		t.Errorf("output = %q", data)
	}
	if mock.filePath == "" {
		t.Error("renderer never received a temp file path")
	}
	if _, statErr := os.Stat(mock.filePath); !os.IsNotExist(statErr) {
		t.Errorf("temp file %s not cleaned up", mock.filePath)
	}
}

func TestPDFExporter_InvalidSettings(t *testing.T) {
	t.Parallel()

	e := NewPDFExporter(
		withRenderer(&mockPDFRenderer{output: []byte("x")}),
		WithPageSettings(&PageSettings{Size: "tabloid", Orientation: "portrait", Margin: 0.5}),
	)
	err := e.ExportPDF(context.Background(), "<html/>", filepath.Join(t.TempDir(), "out.pdf"))
	if !errors.Is(err, ErrExport) {
		t.Errorf("error = %v, want ErrExport", err)
	}
	if !errors.Is(err, ErrInvalidPageSize) {
		t.Errorf("error = %v, want ErrInvalidPageSize in chain", err)
	}
}

func TestPDFExporter_RendererFailure(t *testing.T) {
	t.Parallel()

	mock := &mockPDFRenderer{err: errors.New("browser crashed")}
	e := NewPDFExporter(withRenderer(mock))

	outPath := filepath.Join(t.TempDir(), "out.pdf")
	err := e.ExportPDF(context.Background(), "<html/>", outPath)
	if !errors.Is(err, ErrExport) {
		t.Fatalf("error = %v, want ErrExport", err)
	}
	if _, statErr := os.Stat(outPath); !os.IsNotExist(statErr) {
		t.Error("output file written despite render failure")
	}
}

func TestPDFExporter_WriteFailure(t *testing.T) {
	t.Parallel()

	e := NewPDFExporter(withRenderer(&mockPDFRenderer{output: []byte("x")}))
	err := e.ExportPDF(context.Background(), "<html/>", filepath.Join(t.TempDir(), "missing", "out.pdf"))
	if !errors.Is(err, ErrWritePDF) {
		t.Errorf("error = %v, want ErrWritePDF", err)
	}
}

func TestPageSettings_Paper(t *testing.T) {
	t.Parallel()

	portrait := &PageSettings{Size: "a4", Orientation: "portrait", Margin: 0.5}
	w, h := portrait.paper()
	if w != 8.27 || h != 11.69 {
		t.Errorf("a4 portrait = %gx%g", w, h)
	}

	landscape := &PageSettings{Size: "a4", Orientation: "landscape", Margin: 0.5}
	w, h = landscape.paper()
	if w != 11.69 || h != 8.27 {
		t.Errorf("a4 landscape = %gx%g", w, h)
	}
}
