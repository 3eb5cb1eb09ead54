package entity

import (
	"encoding/json"

	"github.com/tidwall/gjson"

	"github.com/joseph-ayodele/idcard-extractor/constants"
	"github.com/joseph-ayodele/idcard-extractor/internal/common"
)

// ExtractionRequest is the body POSTed to the extraction backend.
type ExtractionRequest struct {
	ImageData    string                 `json:"image_data"`
	MimeType     string                 `json:"mime_type"`
	DocumentType constants.DocumentType `json:"card_type"`
}

// NewExtractionRequest builds a validated request.
func NewExtractionRequest(payload, mimeType string, dt constants.DocumentType) (ExtractionRequest, error) {
	req := ExtractionRequest{ImageData: payload, MimeType: mimeType, DocumentType: dt}
	if err := req.Validate(); err != nil {
		return ExtractionRequest{}, err
	}
	return req, nil
}

func (r ExtractionRequest) Validate() error {
	v := common.NewValidator().
		Field("image_data", r.ImageData, common.Required, common.Base64).
		Field("mime_type", r.MimeType, common.Required, common.ImageMIME).
		Field("card_type", string(r.DocumentType), common.Required, common.OneOf(constants.AsStringSlice()...))
	return common.ValidateAndReturnError(v)
}

// ExtractionResponse is the backend's reply. Validation is only sent by
// backends that compute per-field validity flags.
type ExtractionResponse struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data,omitempty"`
	Validation json.RawMessage `json:"validation,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// ErrorDetail is the body of non-2xx backend replies.
type ErrorDetail struct {
	Detail string `json:"detail"`
}

// ExtractionResult is the document variant decided once from the response.
type ExtractionResult struct {
	Type   constants.DocumentType `json:"type"`
	Fields Record                 `json:"fields"`
}

// ResolveVariant picks the first non-empty known document key in payload, in
// precedence order drivingLicense, panCard, aadhaarCard.
func ResolveVariant(payload []byte) (ExtractionResult, bool) {
	if !gjson.ValidBytes(payload) {
		return ExtractionResult{}, false
	}
	for _, dt := range constants.DocumentTypes() {
		res := gjson.GetBytes(payload, dt.ResponseKey())
		rec := Record(res.Raw)
		if res.IsObject() && !rec.IsEmpty() {
			return ExtractionResult{Type: dt, Fields: rec}, true
		}
	}
	return ExtractionResult{}, false
}

// Clone returns a result whose Fields share nothing with r.
func (r ExtractionResult) Clone() ExtractionResult {
	return ExtractionResult{Type: r.Type, Fields: r.Fields.Clone()}
}
