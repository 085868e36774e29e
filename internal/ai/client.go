package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// Generator produces a raw plan-shaped text response for a generation input.
// The response is untrusted until it passes ValidatePlanOutput.
type Generator interface {
	GeneratePlan(ctx context.Context, input *PlanInput) (string, error)
}

// generationTemperature keeps the model moderately creative while staying
// schema-bound.
const generationTemperature float32 = 0.7

// geminiClient implements Generator against the Gemini API.
type geminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Generator backed by the Gemini API. The model
// name comes from configuration (default gemini-2.5-flash-lite).
func NewGeminiClient(ctx context.Context, apiKey, model string) (Generator, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	if model == "" {
		return nil, errors.New("gemini model name is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &geminiClient{client: client, model: model}, nil
}

// GeneratePlan sends the serialized input plus the fixed system instruction
// and returns the raw text response. A single attempt: transport or service
// errors propagate to the caller, and there is no retry.
func (g *geminiClient) GeneratePlan(ctx context.Context, input *PlanInput) (string, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("marshal plan input: %w", err)
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemPrompt(), genai.RoleModel),
		ResponseMIMEType:  "application/json",
		Temperature:       genai.Ptr(generationTemperature),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(string(payload)), config)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", errors.New("gemini returned an empty response")
	}
	return text, nil
}
