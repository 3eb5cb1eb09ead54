package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/joseph-ayodele/idcard-extractor/constants"
	"github.com/joseph-ayodele/idcard-extractor/internal/common"
	"github.com/joseph-ayodele/idcard-extractor/internal/entity"
	"github.com/joseph-ayodele/idcard-extractor/internal/llm"
)

// maxBodyBytes bounds the JSON body; base64 inflates the image by a third.
const maxBodyBytes = 2 * constants.MaxImageMBDefault << 20

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rid := common.RequestIDFromContext(ctx)
	start := time.Now()

	var req entity.ExtractionRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	payload := strings.TrimSpace(req.ImageData)
	if _, after, ok := strings.Cut(payload, ","); ok && strings.HasPrefix(payload, "data:") {
		payload = after
	}
	if payload == "" {
		writeError(w, http.StatusBadRequest, "No image data provided")
		return
	}
	if !constants.IsImageMIME(req.MimeType) {
		writeError(w, http.StatusBadRequest, "Invalid image format")
		return
	}
	if !req.DocumentType.Valid() {
		writeError(w, http.StatusBadRequest,
			"Invalid card_type, expected one of: "+strings.Join(constants.AsStringSlice(), ", "))
		return
	}

	s.logger.InfoContext(ctx, "server.extract.start",
		"req_id", rid,
		"card_type", req.DocumentType,
		"mime", req.MimeType,
		"payload_len", len(payload),
	)

	out, err := s.extractor.ExtractFields(ctx, llm.ExtractRequest{
		ImageBase64:  payload,
		MimeType:     req.MimeType,
		DocumentType: req.DocumentType,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "server.extract.failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		switch {
		case errors.Is(err, llm.ErrUnparseable):
			writeError(w, http.StatusUnprocessableEntity, "Failed to parse model response as JSON: "+err.Error())
			return
		case errors.Is(err, llm.ErrProvider):
			writeError(w, http.StatusInternalServerError, "Model API error: "+err.Error())
			return
		}
		writeJson(w, http.StatusOK, entity.ExtractionResponse{
			Success: false,
			Error:   "Failed to process image: " + err.Error(),
		})
		return
	}

	s.logger.InfoContext(ctx, "server.extract.ok",
		"req_id", rid,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	writeJson(w, http.StatusOK, entity.ExtractionResponse{
		Success:    true,
		Data:       json.RawMessage(out.Data),
		Validation: json.RawMessage(out.Validation),
	})
}
