// Package client talks to the remote extraction backend.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/joseph-ayodele/idcard-extractor/internal/common"
	"github.com/joseph-ayodele/idcard-extractor/internal/entity"
	"github.com/joseph-ayodele/idcard-extractor/internal/schema"
)

// ExtractPath is the backend route, relative to the base URL.
const ExtractPath = "/extract-info"

// Extractor is what the session orchestration depends on.
type Extractor interface {
	Extract(ctx context.Context, req entity.ExtractionRequest) (entity.ExtractionResult, error)
}

// Client performs one POST per extraction. It never retries.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// NewFromConfig resolves the base URL and timeout from cfg.
func NewFromConfig(cfg *common.Config, logger *slog.Logger) *Client {
	return New(cfg.APIBaseURL(), cfg.Client.Timeout, logger)
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Extract sends req and decides the document variant of the reply.
func (c *Client) Extract(ctx context.Context, req entity.ExtractionRequest) (entity.ExtractionResult, error) {
	if err := req.Validate(); err != nil {
		return entity.ExtractionResult{}, err
	}
	reqID := common.RequestIDFromContext(ctx)
	if reqID == "" {
		reqID = uuid.New().String()
		ctx = common.WithRequestID(ctx, reqID)
	}
	start := time.Now()

	c.logger.InfoContext(ctx, "client.extract.start",
		"req_id", reqID,
		"card_type", req.DocumentType,
		"mime", req.MimeType,
		"payload_len", len(req.ImageData),
	)

	raw, status, err := common.SendJSON(ctx, c.http, c.baseURL+ExtractPath, req, nil, c.logger)
	if err != nil {
		msg := transportMessage(raw, err)
		c.logger.ErrorContext(ctx, "client.extract.transport_failed",
			"req_id", reqID, "status", status, "error", err, "message", msg,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.ExtractionResult{}, common.NewAppError(common.CodeTransport, msg, errors.Join(common.ErrTransport, err))
	}

	var resp entity.ExtractionResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		c.logger.ErrorContext(ctx, "client.extract.decode_failed",
			"req_id", reqID, "error", err, "bytes", len(raw),
		)
		return entity.ExtractionResult{}, common.NewAppError(common.CodeTransport, common.MsgTransport, err)
	}

	if !resp.Success {
		msg := strings.TrimSpace(resp.Error)
		if msg == "" {
			msg = common.MsgRejected
		}
		c.logger.WarnContext(ctx, "client.extract.rejected",
			"req_id", reqID, "message", msg,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.ExtractionResult{}, common.NewAppError(common.CodeRejected, msg, common.ErrExtractionRejected)
	}

	result, ok := resolve(resp)
	if !ok {
		c.logger.WarnContext(ctx, "client.extract.empty_result",
			"req_id", reqID, "elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.ExtractionResult{}, common.NewAppError(common.CodeEmptyResult, common.MsgEmptyResult, common.ErrEmptyResult)
	}

	if result.Type != req.DocumentType {
		c.logger.InfoContext(ctx, "client.extract.type_differs",
			"req_id", reqID, "requested", req.DocumentType, "detected", result.Type,
		)
	}
	if err := schema.Validate(result.Type, result.Fields); err != nil {
		c.logger.WarnContext(ctx, "client.extract.schema_mismatch",
			"req_id", reqID, "card_type", result.Type, "error", err,
		)
	}

	c.logger.InfoContext(ctx, "client.extract.ok",
		"req_id", reqID,
		"card_type", result.Type,
		"from_validation", len(resp.Validation) > 0,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}

// resolve prefers the validation block, which carries {value, valid} wrappers.
func resolve(resp entity.ExtractionResponse) (entity.ExtractionResult, bool) {
	if len(resp.Validation) > 0 {
		if r, ok := entity.ResolveVariant(resp.Validation); ok {
			return r, true
		}
	}
	return entity.ResolveVariant(resp.Data)
}

// transportMessage picks the server's detail, then the transport error text,
// then the fixed fallback.
func transportMessage(raw []byte, err error) string {
	var body entity.ErrorDetail
	if len(raw) > 0 && json.Unmarshal(raw, &body) == nil && strings.TrimSpace(body.Detail) != "" {
		return body.Detail
	}
	// validation errors carry a list of {loc, msg, type}
	if msg := gjson.GetBytes(raw, "detail.0.msg").String(); msg != "" {
		return msg
	}
	if err != nil && strings.TrimSpace(err.Error()) != "" {
		return err.Error()
	}
	return common.MsgTransport
}
