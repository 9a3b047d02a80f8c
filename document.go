package faturai

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MediaTypePDF is the only non-image media type the pipeline accepts.
const MediaTypePDF = "application/pdf"

// Document is a raw invoice (or reference example) handed in by the caller.
// It lives only for the duration of one extraction call and is never persisted.
type Document struct {
	Data      []byte
	MediaType string // empty → detected from content
}

// NewDocument creates a document from in-memory bytes.
func NewDocument(data []byte, mediaType string) Document {
	return Document{Data: data, MediaType: mediaType}
}

// NewDocumentFromReader reads the full document from r. Read failures are
// propagated, not swallowed.
func NewDocumentFromReader(r io.Reader, mediaType string) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read document: %w", err)
	}
	return Document{Data: data, MediaType: mediaType}, nil
}

// ResolveMediaType returns the effective media type of the document.
// A declared type is trusted; otherwise the type is sniffed from the content.
// Anything outside image/* or application/pdf is rejected.
func (d Document) ResolveMediaType() (string, error) {
	if len(d.Data) == 0 {
		return "", ErrEmptyDocument
	}
	mt := d.MediaType
	if mt == "" {
		mt = mimetype.Detect(d.Data).String()
	}
	// Strip parameters such as "; charset=utf-8" before the gate check.
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	if !isAcceptedMediaType(mt) {
		return "", fmt.Errorf("%w: %q", ErrInputRejected, mt)
	}
	return mt, nil
}

// Validate checks the document without encoding it.
func (d Document) Validate() error {
	_, err := d.ResolveMediaType()
	return err
}

// Encode turns the document into a transport-ready inline payload part.
// The content is base64-encoded; decoding the payload yields the original
// bytes unchanged.
func (d Document) Encode() (*Part, error) {
	mt, err := d.ResolveMediaType()
	if err != nil {
		return nil, err
	}
	encoded := base64.StdEncoding.EncodeToString(d.Data)
	return NewPayloadPart(encoded, mt), nil
}

func isAcceptedMediaType(mt string) bool {
	return mt == MediaTypePDF || strings.HasPrefix(mt, "image/")
}
