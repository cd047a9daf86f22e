package extractor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"

	"foliogen/internal/logging"
	"foliogen/pkg/utils"
)

// PDFExtractor extracts plain text from PDF documents via docconv
type PDFExtractor struct {
	logger logging.Logger
}

// NewPDFExtractor creates a new PDF text extractor
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{
		logger: logging.GetGlobalLogger(),
	}
}

// Extract returns the plain text of the PDF at path. Downstream parsing
// tolerates the noise PDF extraction leaves behind (page breaks, ligature
// artifacts), so no cleanup happens here beyond whitespace trimming.
func (e *PDFExtractor) Extract(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", utils.NewDocumentExtractionError(fmt.Sprintf("cannot open %s: %v", path, err))
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !utils.Contains(e.SupportedExtensions(), ext) {
		return "", utils.NewDocumentExtractionError(fmt.Sprintf("unsupported document type %q (only PDF is supported)", ext))
	}

	e.logger.Info("Extracting document text", map[string]interface{}{
		"path": path,
	})

	res, err := docconv.ConvertPath(path)
	if err != nil {
		return "", utils.NewDocumentExtractionError(fmt.Sprintf("failed to parse %s: %v", filepath.Base(path), err))
	}

	text := strings.TrimSpace(res.Body)
	if text == "" {
		return "", utils.NewDocumentExtractionError(fmt.Sprintf("no text could be extracted from %s", filepath.Base(path)))
	}

	e.logger.Info("Document text extracted", map[string]interface{}{
		"path":  path,
		"chars": len(text),
	})

	return text, nil
}

// SupportedExtensions returns the file extensions this extractor handles
func (e *PDFExtractor) SupportedExtensions() []string {
	return []string{".pdf"}
}
