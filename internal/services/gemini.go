package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"orienta-backend/internal/config"
)

// GeminiService is the completion-provider boundary. It exposes a single
// Complete operation; everything above it treats the provider as an opaque
// text-completion service.
type GeminiService struct {
	client      *genai.Client
	strictModel *genai.GenerativeModel
	plainModel  *genai.GenerativeModel
	rateChan    chan struct{} // Token bucket
}

func NewGeminiService(apiKey, modelName string, concurrentReqs int) (*GeminiService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	plainModel := client.GenerativeModel(modelName)
	plainModel.SetTemperature(0.7)
	plainModel.SetTopP(0.95)

	// Strict contract: ask the API itself for JSON matching the payload
	// schema. The extractor still parses defensively because the contract
	// is not enforced provider-side.
	strictModel := client.GenerativeModel(modelName)
	strictModel.SetTemperature(0.7)
	strictModel.SetTopP(0.95)
	strictModel.ResponseMIMEType = "application/json"
	strictModel.ResponseSchema = suggestionSchema()

	// Token bucket for rate limiting
	rateChan := make(chan struct{}, concurrentReqs)
	for i := 0; i < concurrentReqs; i++ {
		rateChan <- struct{}{}
	}

	return &GeminiService{
		client:      client,
		strictModel: strictModel,
		plainModel:  plainModel,
		rateChan:    rateChan,
	}, nil
}

func (s *GeminiService) Close() {
	s.client.Close()
}

// acquireRate blocks until a rate slot is available
func (s *GeminiService) acquireRate(ctx context.Context) error {
	select {
	case <-s.rateChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(5 * time.Minute):
		return fmt.Errorf("timeout waiting for Gemini rate slot")
	}
}

func (s *GeminiService) releaseRate() {
	s.rateChan <- struct{}{}
}

// Complete sends the rendered prompt and returns the raw completion text.
// Transport, auth and rate-limit failures surface as *ProviderError.
func (s *GeminiService) Complete(ctx context.Context, prompt, contract string) (string, error) {
	if err := s.acquireRate(ctx); err != nil {
		return "", &ProviderError{Message: "no Gemini capacity available", Err: err}
	}
	defer s.releaseRate()

	model := s.plainModel
	if contract == config.ContractStrict {
		model = s.strictModel
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &ProviderError{Message: "Gemini API error", Err: err}
	}

	rawText := extractText(resp)
	if strings.TrimSpace(rawText) == "" {
		return "", &ProviderError{Message: "Gemini returned an empty completion"}
	}

	return rawText, nil
}

func suggestionSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"chatReply": {Type: genai.TypeString},
			"suggestedCareers": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":            {Type: genai.TypeString},
						"percentageMatch": {Type: genai.TypeNumber},
						"reason":          {Type: genai.TypeString},
					},
					Required: []string{"name", "percentageMatch", "reason"},
				},
			},
		},
		Required: []string{"chatReply", "suggestedCareers"},
	}
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
