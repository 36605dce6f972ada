package gemini

import (
	"context"
	"fmt"
	"iter"

	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

// Config for a Gemini-backed model.
type Config struct {
	APIKey string
	Model  string
}

// Model adapts the Gemini API to the ADK model.LLM interface.
type Model struct {
	name   string
	client *genai.Client
}

// NewModel creates a Gemini client bound to a single model name.
func NewModel(ctx context.Context, cfg Config) (*Model, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: api key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &Model{name: cfg.Model, client: client}, nil
}

func (m *Model) Name() string {
	return m.name
}

// GenerateContent forwards ADK requests to the Gemini models endpoint.
// With stream=false a single final response is yielded.
func (m *Model) GenerateContent(ctx context.Context, req *model.LLMRequest, stream bool) iter.Seq2[*model.LLMResponse, error] {
	if stream {
		return func(yield func(*model.LLMResponse, error) bool) {
			for resp, err := range m.client.Models.GenerateContentStream(ctx, m.name, req.Contents, req.Config) {
				if err != nil {
					yield(nil, err)
					return
				}
				out := toLLMResponse(resp)
				out.Partial = true
				if !yield(out, nil) {
					return
				}
			}
		}
	}

	return func(yield func(*model.LLMResponse, error) bool) {
		resp, err := m.client.Models.GenerateContent(ctx, m.name, req.Contents, req.Config)
		if err != nil {
			yield(nil, err)
			return
		}
		out := toLLMResponse(resp)
		out.TurnComplete = true
		yield(out, nil)
	}
}

func toLLMResponse(resp *genai.GenerateContentResponse) *model.LLMResponse {
	out := &model.LLMResponse{}
	if resp == nil {
		return out
	}
	out.UsageMetadata = resp.UsageMetadata
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return out
	}
	cand := resp.Candidates[0]
	out.Content = cand.Content
	out.GroundingMetadata = cand.GroundingMetadata
	return out
}
