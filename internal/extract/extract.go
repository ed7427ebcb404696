// Package extract pulls plain text out of uploaded documents. It
// dispatches on the file extension; .txt and .pdf are the supported
// formats.
package extract

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/avendel/textamend/internal/domain"
	"github.com/ledongthuc/pdf"
)

// Text extracts the plain-text content of the named file. The extension
// check is case-insensitive. An unknown extension yields
// domain.ErrUnsupportedFile; a file that cannot be decoded yields
// domain.ErrEmptyFile wrapping the underlying cause.
func Text(filename string, r io.Reader) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		data, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrEmptyFile, err)
		}
		return string(data), nil
	case ".pdf":
		return pdfText(r)
	default:
		return "", domain.ErrUnsupportedFile
	}
}

func pdfText(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrEmptyFile, err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrEmptyFile, err)
	}

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrEmptyFile, err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(content); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrEmptyFile, err)
	}
	return buf.String(), nil
}
