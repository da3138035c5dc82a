package output

import (
	"fmt"
	"io"
	"os"
)

// Compile-time interface conformance checks.
var (
	_ DocumentWriter = (*FileDocumentWriter)(nil)
	_ DocumentWriter = (*StreamDocumentWriter)(nil)
)

// StdoutPath selects the stream writer instead of a file.
const StdoutPath = "-"

// DocumentWriter writes the rendered change log document.
type DocumentWriter interface {
	Write(document string) error
}

// FileDocumentWriter writes the document to a file.
type FileDocumentWriter struct {
	Path string
}

// Write writes the document, replacing any existing file.
func (w *FileDocumentWriter) Write(document string) error {
	if err := os.WriteFile(w.Path, []byte(document), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", w.Path, err)
	}
	return nil
}

// StreamDocumentWriter writes the document to a stream.
type StreamDocumentWriter struct {
	Out io.Writer
}

// Write copies the document to the stream.
func (w *StreamDocumentWriter) Write(document string) error {
	_, err := io.WriteString(w.Out, document)
	return err
}

// NewDocumentWriter creates a writer for the given output path. The path "-"
// selects stdout.
func NewDocumentWriter(path string) DocumentWriter {
	if path == StdoutPath {
		return &StreamDocumentWriter{Out: os.Stdout}
	}
	return &FileDocumentWriter{Path: path}
}
