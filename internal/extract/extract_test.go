package extract_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/avendel/textamend/internal/domain"
	"github.com/avendel/textamend/internal/extract"
)

func TestText_Txt(t *testing.T) {
	got, err := extract.Text("notes.txt", strings.NewReader("Hello world"))
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if got != "Hello world" {
		t.Fatalf("Text = %q, want %q", got, "Hello world")
	}
}

func TestText_ExtensionCaseInsensitive(t *testing.T) {
	got, err := extract.Text("NOTES.TXT", strings.NewReader("Hello"))
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if got != "Hello" {
		t.Fatalf("Text = %q, want %q", got, "Hello")
	}
}

func TestText_UnsupportedExtension(t *testing.T) {
	tests := []string{"image.png", "doc.docx", "noextension", "archive.tar.gz"}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := extract.Text(name, strings.NewReader("data"))
			if !errors.Is(err, domain.ErrUnsupportedFile) {
				t.Fatalf("expected ErrUnsupportedFile for %s, got %v", name, err)
			}
		})
	}
}

func TestText_MalformedPDF(t *testing.T) {
	_, err := extract.Text("broken.pdf", strings.NewReader("this is not a pdf"))
	if !errors.Is(err, domain.ErrEmptyFile) {
		t.Fatalf("expected ErrEmptyFile for malformed pdf, got %v", err)
	}
}
