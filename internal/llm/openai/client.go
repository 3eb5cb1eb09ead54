package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/joseph-ayodele/idcard-extractor/internal/common"
	"github.com/joseph-ayodele/idcard-extractor/internal/llm"
)

func (c *Client) Name() string { return "openai" }

// Complete implements llm.Provider with one chat/completions call carrying
// the image as a data URL content part.
func (c *Client) Complete(ctx context.Context, req llm.ExtractRequest, p llm.Prompt) (string, error) {
	start := time.Now()
	dataURL := "data:" + req.MimeType + ";base64," + req.ImageBase64

	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"max_tokens":      c.cfg.MaxTokens,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": p.System},
			{"role": "user", "content": []map[string]any{
				{"type": "text", "text": p.User},
				{"type": "image_url", "image_url": map[string]any{"url": dataURL, "detail": "high"}},
			}},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}
	raw, status, err := common.SendJSON(ctx, c.http, endpoint, body, headers, c.log)
	if err != nil {
		if len(raw) > 0 {
			return "", fmt.Errorf("openai status %d: %s", status, truncate(string(raw), 500))
		}
		return "", fmt.Errorf("openai http error: %w", err)
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		return "", fmt.Errorf("decode openai response: %w", err)
	}
	if cc.Error != nil && cc.Error.Message != "" {
		return "", fmt.Errorf("openai error: %s", cc.Error.Message)
	}
	if len(cc.Choices) == 0 {
		c.log.ErrorContext(ctx, "llm.openai.no_choices", "raw", truncate(string(raw), 2000))
		return "", fmt.Errorf("no choices in openai response")
	}

	content := strings.TrimSpace(cc.Choices[0].Message.Content)
	c.log.DebugContext(ctx, "llm.openai.ok",
		"model", c.cfg.Model,
		"content_len", len(content),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "...(truncated)"
}
