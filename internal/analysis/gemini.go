package analysis

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.0-flash"

const analysisPrompt = `You are an expert agricultural advisor for coconut farms.

Analyze the following farm data and provide recommendations for optimal harvest timings, an overview of seasonal variations, and a summary of historical trends.

Harvest Data: %s

Rainfall Data: %s

Custom Intervals: %s`

// GeminiModel implements Model against the Gemini API, requesting a
// JSON reply constrained to the Result shape.
type GeminiModel struct {
	client *genai.Client
	model  string
}

// NewGeminiModel creates a Gemini-backed model client.
func NewGeminiModel(ctx context.Context, apiKey, model string) (*GeminiModel, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiModel{
		client: client,
		model:  model,
	}, nil
}

func (m *GeminiModel) Analyze(ctx context.Context, harvestData, rainfallData, customIntervals string) (Result, error) {
	prompt := fmt.Sprintf(analysisPrompt, harvestData, rainfallData, customIntervals)

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"recommendations":    {Type: genai.TypeString},
				"seasonalVariations": {Type: genai.TypeString},
				"historicalTrends":   {Type: genai.TypeString},
			},
			Required: []string{"recommendations", "seasonalVariations", "historicalTrends"},
		},
	}

	resp, err := m.client.Models.GenerateContent(ctx, m.model, contents, config)
	if err != nil {
		return Result{}, fmt.Errorf("gemini generate failed: %w", err)
	}

	var result Result
	if err := json.Unmarshal([]byte(resp.Text()), &result); err != nil {
		return Result{}, fmt.Errorf("decode gemini response: %w", err)
	}
	return result, nil
}
