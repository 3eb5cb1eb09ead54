package llm

import (
	"context"
	"errors"

	"github.com/joseph-ayodele/idcard-extractor/constants"
	"github.com/joseph-ayodele/idcard-extractor/internal/entity"
)

var (
	// ErrProvider wraps failures talking to the model provider.
	ErrProvider = errors.New("provider error")
	// ErrUnparseable means the model answered with something that is not JSON.
	ErrUnparseable = errors.New("model output is not valid JSON")
)

// ExtractRequest is one image to read.
type ExtractRequest struct {
	ImageBase64  string
	MimeType     string
	DocumentType constants.DocumentType
}

// Extraction is the shaped model output for one document.
type Extraction struct {
	// Data is the payload keyed by the document's response key, every field present.
	Data entity.Record
	// Validation mirrors Data with every leaf wrapped as {value, valid}.
	Validation entity.Record
	// Raw is the cleaned model text.
	Raw []byte
}

// FieldExtractor is what the HTTP layer depends on.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, req ExtractRequest) (Extraction, error)
}

// Prompt is the text sent alongside the image.
type Prompt struct {
	System string
	User   string
}

// Provider sends an image and a prompt to a vision model and returns its text answer.
type Provider interface {
	Name() string
	Complete(ctx context.Context, req ExtractRequest, p Prompt) (string, error)
}
