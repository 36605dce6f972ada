package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestToLLMResponseUsesFirstCandidate(t *testing.T) {
	grounding := &genai.GroundingMetadata{WebSearchQueries: []string{"vit vellore fees"}}
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: genai.NewContentFromText("first", genai.RoleModel), GroundingMetadata: grounding},
			{Content: genai.NewContentFromText("second", genai.RoleModel)},
		},
	}

	out := toLLMResponse(resp)
	require.NotNil(t, out.Content)
	assert.Equal(t, "first", out.Content.Parts[0].Text)
	assert.Same(t, grounding, out.GroundingMetadata)
}

func TestToLLMResponseWithoutCandidates(t *testing.T) {
	out := toLLMResponse(&genai.GenerateContentResponse{})
	assert.Nil(t, out.Content)
	assert.Nil(t, toLLMResponse(nil).Content)
}

func TestNewModelRequiresAPIKey(t *testing.T) {
	_, err := NewModel(t.Context(), Config{})
	assert.Error(t, err)
}
