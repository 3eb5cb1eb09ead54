package server

import (
	"encoding/json"
	"net/http"

	"github.com/joseph-ayodele/idcard-extractor/internal/entity"
)

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJson(w, http.StatusOK, map[string]string{
		"message": "DL Info Extractor API is running!",
		"status":  "ok",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJson(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "driving-license-extractor",
	})
}

func (s *Server) handleExtractUsage(w http.ResponseWriter, _ *http.Request) {
	writeJson(w, http.StatusOK, map[string]any{
		"message":         "This endpoint accepts POST requests only",
		"method":          http.MethodPost,
		"endpoint":        "/extract-info",
		"content_type":    "application/json",
		"required_fields": []string{"image_data", "mime_type", "card_type"},
		"description":     "Upload an identity document image to extract its fields",
		"example": map[string]string{
			"image_data": "base64_encoded_image_string",
			"mime_type":  "image/jpeg",
			"card_type":  "driving_license",
		},
	})
}

func writeJson(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, code int, detail string) {
	if detail == "" {
		detail = http.StatusText(code)
	}
	writeJson(w, code, entity.ErrorDetail{Detail: detail})
}
