package pdfparser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
)

// PageBreak separates pages in extracted text, as pdftotext does.
const PageBreak = "\f"

// PDFExtractor turns a PDF file into its text layer, one line per visual row
// and PageBreak between pages. Columns on a row are separated by at least two
// spaces so the table structure survives.
type PDFExtractor interface {
	ExtractText(ctx context.Context, pdfPath string) (string, error)
	Name() string
}

// PdftotextExtractor shells out to poppler's pdftotext in layout mode.
type PdftotextExtractor struct {
	Path string
}

// NewPdftotextExtractor returns an extractor running the binary at path,
// or "pdftotext" from PATH when path is empty.
func NewPdftotextExtractor(path string) *PdftotextExtractor {
	if path == "" {
		path = "pdftotext"
	}
	return &PdftotextExtractor{Path: path}
}

func (e *PdftotextExtractor) Name() string { return "pdftotext" }

// ExtractText runs `pdftotext -layout -enc UTF-8 <file> -` and returns stdout.
func (e *PdftotextExtractor) ExtractText(ctx context.Context, pdfPath string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.Path, "-layout", "-enc", "UTF-8", pdfPath, "-") // #nosec G204 -- binary path comes from configuration
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) || errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("pdftotext is not available: %w", err)
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("error running pdftotext: %w: %s", err, msg)
		}
		return "", fmt.Errorf("error running pdftotext: %w", err)
	}
	return stdout.String(), nil
}

// MockPDFExtractor returns canned text, for tests.
type MockPDFExtractor struct {
	MockText string
	MockErr  error
	Calls    []string
}

// NewMockPDFExtractor creates a MockPDFExtractor.
func NewMockPDFExtractor(mockText string, mockErr error) *MockPDFExtractor {
	return &MockPDFExtractor{MockText: mockText, MockErr: mockErr}
}

func (e *MockPDFExtractor) Name() string { return "mock" }

func (e *MockPDFExtractor) ExtractText(_ context.Context, pdfPath string) (string, error) {
	e.Calls = append(e.Calls, pdfPath)
	if e.MockErr != nil {
		return "", e.MockErr
	}
	return e.MockText, nil
}
