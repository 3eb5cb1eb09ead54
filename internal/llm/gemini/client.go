// Package gemini is the Google Gemini vision provider.
package gemini

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/joseph-ayodele/idcard-extractor/internal/llm"
)

const DefaultModel = "gemini-2.0-flash"

type Client struct {
	apiKey string
	model  string
	log    *slog.Logger
}

func NewClient(apiKey, model string, logger *slog.Logger) *Client {
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		apiKey: strings.TrimSpace(apiKey),
		model:  strings.TrimSpace(model),
		log:    logger,
	}
}

func (c *Client) Name() string { return "gemini" }

// Complete implements llm.Provider.
func (c *Client) Complete(ctx context.Context, req llm.ExtractRequest, p llm.Prompt) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("GEMINI_API_KEY is empty")
	}
	img, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil {
		return "", fmt.Errorf("gemini: bad base64: %w", err)
	}
	start := time.Now()

	cl, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return "", err
	}
	defer func() { _ = cl.Close() }()

	m := cl.GenerativeModel(c.model)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0),
		ResponseMIMEType: "application/json",
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(p.System)},
	}

	resp, err := m.GenerateContent(ctx,
		genai.Text(p.User),
		&genai.Blob{MIMEType: req.MimeType, Data: img},
	)
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}
	txt := firstText(resp)
	if txt == "" {
		return "", errors.New("gemini: empty response")
	}
	c.log.DebugContext(ctx, "llm.gemini.ok",
		"model", c.model,
		"content_len", len(txt),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return txt, nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
