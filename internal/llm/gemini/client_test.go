package gemini

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/idcard-extractor/internal/llm"
)

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(" key ", "", nil)
	require.Equal(t, "key", c.apiKey)
	require.Equal(t, DefaultModel, c.model)
	require.Equal(t, "gemini", c.Name())
}

func TestComplete_RejectsBeforeCalling(t *testing.T) {
	_, err := NewClient("", "", nil).Complete(context.Background(), llm.ExtractRequest{}, llm.Prompt{})
	require.ErrorContains(t, err, "GEMINI_API_KEY")

	_, err = NewClient("k", "", nil).Complete(context.Background(), llm.ExtractRequest{ImageBase64: "%%%"}, llm.Prompt{})
	require.ErrorContains(t, err, "bad base64")
}

func TestFirstText(t *testing.T) {
	require.Empty(t, firstText(nil))
	resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
		{Content: nil},
		{Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"a":1}`)}}},
	}}
	require.Equal(t, `{"a":1}`, firstText(resp))
}
