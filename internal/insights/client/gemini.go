package client

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"building_insights_backend/platform/config"
	"building_insights_backend/platform/logger"
)

// Gemini is the Generator implementation backed by the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
	log    *logger.Logger
}

// NewGemini creates a Gemini generation client.
func NewGemini(ctx context.Context, cfg config.GenerationConfig, log *logger.Logger) (*Gemini, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GetGeminiAPIKey(),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Gemini{
		client: c,
		model:  cfg.GetGeminiModel(),
		log:    log,
	}, nil
}

// Generate sends the prompt and any images as a single user turn and returns
// the response text. JSON output is requested via the response MIME type,
// but callers must still treat the result as untrusted prose.
func (g *Gemini) Generate(ctx context.Context, req Request) (string, error) {
	parts := make([]*genai.Part, 0, len(req.Images)+1)
	for _, img := range req.Images {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: img.MIMEType,
				Data:     img.Data,
			},
		})
	}
	parts = append(parts, genai.NewPartFromText(req.Prompt))

	contents := []*genai.Content{{
		Role:  genai.RoleUser,
		Parts: parts,
	}}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		g.log.UpstreamError("gemini", "generate content", err)
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty generation response")
	}

	return text, nil
}

var _ Generator = (*Gemini)(nil)
