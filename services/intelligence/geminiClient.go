// File: services/intelligence/geminiClient.go
package intelligence

import (
	"context"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiClient struct {
	model    *genai.GenerativeModel
	embedder *genai.EmbeddingModel
}

func NewGeminiClient(apiKey string) *GeminiClient {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		panic(fmt.Sprintf("failed to create Gemini client: %v", err))
	}

	model := client.GenerativeModel("models/gemini-1.5-pro")
	embedder := client.EmbeddingModel("models/embedding-001")
	return &GeminiClient{model: model, embedder: embedder}
}

// GenerateText runs one prompt through the generative model and flattens the
// text parts of the first candidate.
func (g *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}

// EmbedText returns the embedding vector for one text chunk. Implements the
// recall index's Embedder contract.
func (g *GeminiClient) EmbedText(ctx context.Context, text string) ([]float32, error) {
	resp, err := g.embedder.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("gemini embed error: %w", err)
	}
	if resp.Embedding == nil {
		return nil, fmt.Errorf("gemini returned no embedding")
	}
	return resp.Embedding.Values, nil
}
