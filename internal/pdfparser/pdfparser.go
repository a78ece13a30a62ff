// Package pdfparser converts Kaspi Bank PDF statements into transactions.
// Text is pulled from the PDF by a PDFExtractor, normalised, and fed line by
// line through a small state machine driven by a layout.Profile.
package pdfparser

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"fjacquet/kaspi-csv/internal/fileutils"
	"fjacquet/kaspi-csv/internal/layout"
	"fjacquet/kaspi-csv/internal/logging"
	"fjacquet/kaspi-csv/internal/models"
	"fjacquet/kaspi-csv/internal/parsererror"
)

// PDF files start with this marker somewhere in their first kilobyte.
var pdfMagic = []byte("%PDF-")

const pdfHeaderWindow = 1024

// ParseText turns extracted statement text into transactions. A statement
// without a transaction table yields an empty, non-nil slice.
func ParseText(text string, profile *layout.Profile, logger logging.Logger) ([]models.Transaction, error) {
	return newStatementScanner(profile, logger).scan(normalizeText(text))
}

// missingInput explains why path is not a regular file.
func missingInput(path string) error {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return &parsererror.InputNotFoundError{FilePath: path, Err: errors.New("path is a directory")}
	case err == nil, errors.Is(err, fs.ErrNotExist):
		return &parsererror.InputNotFoundError{FilePath: path, Err: fs.ErrNotExist}
	default:
		return &parsererror.UnreadablePDFError{FilePath: path, Reason: "cannot access file", Err: err}
	}
}

// checkInput verifies path names a readable regular file that looks like a PDF.
func checkInput(path string) error {
	if !fileutils.FileExists(path) {
		return missingInput(path)
	}

	f, err := os.Open(path) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return &parsererror.UnreadablePDFError{FilePath: path, Reason: "cannot open file", Err: err}
	}
	defer func() { _ = f.Close() }()

	head := make([]byte, pdfHeaderWindow)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return &parsererror.UnreadablePDFError{FilePath: path, Reason: "cannot read file", Err: err}
	}
	if !bytes.Contains(head[:n], pdfMagic) {
		return &parsererror.UnreadablePDFError{FilePath: path, Reason: "missing %PDF header"}
	}
	return nil
}

// extractText checks the input and returns its normalised text layer.
func extractText(ctx context.Context, extractor PDFExtractor, path string, logger logging.Logger) (string, error) {
	if err := checkInput(path); err != nil {
		return "", err
	}

	logger.Debug("Extracting PDF text",
		logging.Field{Key: logging.FieldInputFile, Value: path},
		logging.Field{Key: logging.FieldExtractor, Value: extractor.Name()})

	text, err := extractor.ExtractText(ctx, path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", &parsererror.UnreadablePDFError{FilePath: path, Reason: "text extraction failed", Err: err}
	}

	text = normalizeText(text)
	if strings.TrimSpace(strings.ReplaceAll(text, PageBreak, "")) == "" {
		return "", &parsererror.UnreadablePDFError{FilePath: path, Reason: "no extractable text layer"}
	}
	return text, nil
}

// hasTransactionTable reports whether any line of text is a table header.
func hasTransactionTable(text string, profile *layout.Profile) (layout.Header, bool) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.ReplaceAll(line, PageBreak, ""))
		if h, ok := profile.MatchHeader(line); ok {
			return h, true
		}
	}
	return layout.Header{}, false
}
