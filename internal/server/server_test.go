package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/joseph-ayodele/idcard-extractor/constants"
	"github.com/joseph-ayodele/idcard-extractor/internal/common"
	"github.com/joseph-ayodele/idcard-extractor/internal/entity"
	"github.com/joseph-ayodele/idcard-extractor/internal/llm"
)

type fakeExtractor struct {
	out   llm.Extraction
	err   error
	got   llm.ExtractRequest
	rid   string
	calls int
}

func (f *fakeExtractor) ExtractFields(ctx context.Context, req llm.ExtractRequest) (llm.Extraction, error) {
	f.calls++
	f.got = req
	f.rid = common.RequestIDFromContext(ctx)
	return f.out, f.err
}

func newTestServer(ext llm.FieldExtractor) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(ext, common.ServerConfig{CORSOrigins: []string{"http://localhost:5173"}}, logger).Handler()
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/extract-info", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRootAndHealth(t *testing.T) {
	h := newTestServer(&fakeExtractor{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"message":"DL Info Extractor API is running!","status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"healthy","service":"driving-license-extractor"}`, rec.Body.String())
	require.NotEmpty(t, rec.Header().Get(common.HeaderRequestID))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/extract-info", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "POST", gjson.Get(rec.Body.String(), "method").String())
}

func TestExtract_OK(t *testing.T) {
	ext := &fakeExtractor{out: llm.Extraction{
		Data:       entity.Record(`{"panCard":{"panNumber":"ABCDE1234F"}}`),
		Validation: entity.Record(`{"panCard":{"panNumber":{"value":"ABCDE1234F","valid":true}}}`),
	}}
	h := newTestServer(ext)

	req := httptest.NewRequest(http.MethodPost, "/extract-info",
		strings.NewReader(`{"image_data":"data:image/png;base64,aGVsbG8=","mime_type":"image/png","card_type":"pan_card"}`))
	req.Header.Set(common.HeaderRequestID, "rid-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "rid-1", rec.Header().Get(common.HeaderRequestID))
	require.Equal(t, "rid-1", ext.rid)
	require.Equal(t, "aGVsbG8=", ext.got.ImageBase64)
	require.Equal(t, constants.PANCard, ext.got.DocumentType)

	var resp entity.ExtractionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.JSONEq(t, `{"panCard":{"panNumber":"ABCDE1234F"}}`, string(resp.Data))
	require.True(t, gjson.GetBytes(resp.Validation, "panCard.panNumber.valid").Bool())
}

func TestExtract_BadRequests(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		detail string
	}{
		{"not json", `{`, "Invalid request body"},
		{"empty image", `{"image_data":"","mime_type":"image/png","card_type":"pan_card"}`, "No image data provided"},
		{"empty data url", `{"image_data":"data:image/png;base64,","mime_type":"image/png","card_type":"pan_card"}`, "No image data provided"},
		{"pdf", `{"image_data":"aGVsbG8=","mime_type":"application/pdf","card_type":"pan_card"}`, "Invalid image format"},
		{"card type", `{"image_data":"aGVsbG8=","mime_type":"image/png","card_type":"voter_id"}`, "Invalid card_type"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ext := &fakeExtractor{}
			rec := post(t, newTestServer(ext), tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Contains(t, gjson.Get(rec.Body.String(), "detail").String(), tc.detail)
			require.Zero(t, ext.calls)
		})
	}
}

func TestExtract_ProviderError(t *testing.T) {
	ext := &fakeExtractor{err: fmt.Errorf("%w: quota exceeded", llm.ErrProvider)}
	rec := post(t, newTestServer(ext), `{"image_data":"aGVsbG8=","mime_type":"image/jpeg","card_type":"driving_license"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	detail := gjson.Get(rec.Body.String(), "detail").String()
	require.True(t, strings.HasPrefix(detail, "Model API error: "))
	require.Contains(t, detail, "quota exceeded")
}

func TestExtract_OtherFailure(t *testing.T) {
	ext := &fakeExtractor{err: context.DeadlineExceeded}
	rec := post(t, newTestServer(ext), `{"image_data":"aGVsbG8=","mime_type":"image/jpeg","card_type":"driving_license"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp entity.ExtractionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.Equal(t, "Failed to process image: "+context.DeadlineExceeded.Error(), resp.Error)
}

func TestExtract_Unparseable(t *testing.T) {
	ext := &fakeExtractor{err: fmt.Errorf("%w: no JSON object found", llm.ErrUnparseable)}
	rec := post(t, newTestServer(ext), `{"image_data":"aGVsbG8=","mime_type":"image/jpeg","card_type":"aadhaar_card"}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, gjson.Get(rec.Body.String(), "detail").String(), "Failed to parse model response as JSON")
}

func TestCORS(t *testing.T) {
	h := newTestServer(&fakeExtractor{})

	req := httptest.NewRequest(http.MethodOptions, "/extract-info", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/extract-info", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := New(&fakeExtractor{}, common.ServerConfig{HTTPAddr: "127.0.0.1:0"}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.ListenAndServe(ctx)
	require.True(t, err == nil || errors.Is(err, http.ErrServerClosed))
}
