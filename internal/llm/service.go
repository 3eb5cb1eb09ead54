package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/idcard-extractor/internal/common"
	"github.com/joseph-ayodele/idcard-extractor/internal/schema"
)

// Extractor turns a provider's answer into the shaped, validated payload.
type Extractor struct {
	provider Provider
	log      *slog.Logger
}

func NewExtractor(p Provider, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{provider: p, log: logger}
}

// ExtractFields implements FieldExtractor.
func (e *Extractor) ExtractFields(ctx context.Context, req ExtractRequest) (Extraction, error) {
	rid := common.RequestIDFromContext(ctx)
	if rid == "" {
		rid = uuid.New().String()
	}
	start := time.Now()

	e.log.InfoContext(ctx, "llm.extract.start",
		"req_id", rid,
		"provider", e.provider.Name(),
		"card_type", req.DocumentType,
		"mime", req.MimeType,
		"payload_len", len(req.ImageBase64),
	)

	prompt, err := BuildPrompt(req)
	if err != nil {
		return Extraction{}, err
	}

	text, err := e.provider.Complete(ctx, req, prompt)
	if err != nil {
		e.log.ErrorContext(ctx, "llm.extract.provider_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return Extraction{}, fmt.Errorf("%w: %w", ErrProvider, err)
	}

	raw, err := CleanModelOutput(text)
	if err != nil {
		e.log.ErrorContext(ctx, "llm.extract.parse_error",
			"req_id", rid, "error", err, "content", truncate(text, 2000),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return Extraction{}, err
	}

	fields, notes, err := CoerceFields(req.DocumentType, raw)
	if err != nil {
		return Extraction{}, err
	}
	if len(notes) > 0 {
		e.log.WarnContext(ctx, "llm.extract.coerced", "req_id", rid, "fields", notes)
	}
	if err := schema.Validate(req.DocumentType, fields); err != nil {
		e.log.WarnContext(ctx, "llm.extract.schema_mismatch", "req_id", rid, "error", err)
	}

	validated, err := ValidateFields(req.DocumentType, fields)
	if err != nil {
		return Extraction{}, err
	}
	data, err := Wrap(req.DocumentType, fields)
	if err != nil {
		return Extraction{}, err
	}
	validation, err := Wrap(req.DocumentType, validated)
	if err != nil {
		return Extraction{}, err
	}

	e.log.InfoContext(ctx, "llm.extract.ok",
		"req_id", rid,
		"card_type", req.DocumentType,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return Extraction{Data: data, Validation: validation, Raw: raw}, nil
}
