package service

import (
	"context"
	"errors"
	"iter"
	"net/http"
	"testing"

	"github.com/ReachRyt-Services/collegeSeraBot/platform/apperr"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

type fakeLLM struct {
	name      string
	responses []*model.LLMResponse
	err       error
	requests  []*model.LLMRequest
}

func (f *fakeLLM) Name() string { return f.name }

func (f *fakeLLM) GenerateContent(_ context.Context, req *model.LLMRequest, _ bool) iter.Seq2[*model.LLMResponse, error] {
	f.requests = append(f.requests, req)
	return func(yield func(*model.LLMResponse, error) bool) {
		if f.err != nil {
			yield(nil, f.err)
			return
		}
		for _, resp := range f.responses {
			if !yield(resp, nil) {
				return
			}
		}
	}
}

type staticInstruction string

func (s staticInstruction) SystemInstruction() string { return string(s) }

func textResponse(parts ...*genai.Part) *model.LLMResponse {
	return &model.LLMResponse{Content: &genai.Content{Role: genai.RoleModel, Parts: parts}}
}

func newTestService(search, thinking *fakeLLM) *Service {
	return New(search, thinking, staticInstruction("be helpful"), 1024, logger.Discard())
}

func TestRespondSearchModeAddsGoogleSearch(t *testing.T) {
	search := &fakeLLM{name: "flash", responses: []*model.LLMResponse{textResponse(genai.NewPartFromText("VIT fees are ₹1.98 - 7.8 Lakhs"))}}
	thinking := &fakeLLM{name: "pro"}

	reply, err := newTestService(search, thinking).Respond(context.Background(),
		[]Turn{{Role: "user", Text: "hi"}, {Role: "model", Text: "Namaste!"}, {Role: "user", Text: "  "}},
		"fees at VIT?", ModeSearch)
	require.NoError(t, err)
	assert.Equal(t, "VIT fees are ₹1.98 - 7.8 Lakhs", reply.Text)
	assert.Equal(t, ModeSearch, reply.Mode)

	require.Len(t, search.requests, 1)
	assert.Empty(t, thinking.requests)
	req := search.requests[0]
	require.Len(t, req.Config.Tools, 1)
	assert.NotNil(t, req.Config.Tools[0].GoogleSearch)
	assert.Nil(t, req.Config.ThinkingConfig)
	assert.Equal(t, "be helpful", req.Config.SystemInstruction.Parts[0].Text)

	require.Len(t, req.Contents, 3)
	assert.Equal(t, "model", req.Contents[1].Role)
	assert.Equal(t, "fees at VIT?", req.Contents[2].Parts[0].Text)
	assert.Equal(t, "user", req.Contents[2].Role)
}

func TestRespondThinkingModeUsesBudget(t *testing.T) {
	search := &fakeLLM{name: "flash"}
	thinking := &fakeLLM{name: "pro", responses: []*model.LLMResponse{textResponse(
		&genai.Part{Text: "weighing options", Thought: true},
		genai.NewPartFromText("IIT Madras suits research."),
	)}}

	reply, err := newTestService(search, thinking).Respond(context.Background(), nil, "which is best?", ModeThinking)
	require.NoError(t, err)
	assert.Equal(t, "IIT Madras suits research.", reply.Text)

	require.Len(t, thinking.requests, 1)
	cfg := thinking.requests[0].Config
	require.NotNil(t, cfg.ThinkingConfig)
	assert.Equal(t, int32(1024), *cfg.ThinkingConfig.ThinkingBudget)
	assert.Empty(t, cfg.Tools)
}

func TestRespondFallsBackOnEmptyAnswer(t *testing.T) {
	search := &fakeLLM{responses: []*model.LLMResponse{{}}}

	reply, err := newTestService(search, &fakeLLM{}).Respond(context.Background(), nil, "hello", ModeSearch)
	require.NoError(t, err)
	assert.Equal(t, "I'm sorry, I couldn't generate a response.", reply.Text)
	assert.Empty(t, reply.Sources)
}

func TestRespondCollectsUniqueSources(t *testing.T) {
	resp := textResponse(genai.NewPartFromText("See the official site."))
	resp.GroundingMetadata = &genai.GroundingMetadata{GroundingChunks: []*genai.GroundingChunk{
		{Web: &genai.GroundingChunkWeb{URI: "https://www.srmist.edu.in", Title: "SRMIST"}},
		{Web: &genai.GroundingChunkWeb{URI: "https://www.srmist.edu.in", Title: "SRMIST again"}},
		{Web: &genai.GroundingChunkWeb{URI: "https://example.org/psg"}},
		{},
	}}

	reply, err := newTestService(&fakeLLM{responses: []*model.LLMResponse{resp}}, &fakeLLM{}).
		Respond(context.Background(), nil, "srm ranking", ModeSearch)
	require.NoError(t, err)
	assert.Equal(t, []Source{
		{URI: "https://www.srmist.edu.in", Title: "SRMIST"},
		{URI: "https://example.org/psg", Title: "https://example.org/psg"},
	}, reply.Sources)
}

func TestRespondWrapsModelErrors(t *testing.T) {
	search := &fakeLLM{name: "flash", err: errors.New("quota exceeded")}

	_, err := newTestService(search, &fakeLLM{}).Respond(context.Background(), nil, "hi", ModeSearch)
	require.Error(t, err)

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadGateway, appErr.HTTPStatus())
	assert.Equal(t, "Failed to fetch response from CollegeSeraBot.", appErr.Message)
}

func TestBuildContentsKeepsRecentHistory(t *testing.T) {
	history := make([]Turn, maxHistoryTurns+10)
	for i := range history {
		history[i] = Turn{Role: "user", Text: "msg"}
	}
	history[len(history)-1].Text = "latest"

	contents := buildContents(history, "now")
	require.Len(t, contents, maxHistoryTurns+1)
	assert.Equal(t, "latest", contents[maxHistoryTurns-1].Parts[0].Text)
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, ModeThinking, ParseMode(" Thinking "))
	assert.Equal(t, ModeSearch, ParseMode(""))
	assert.Equal(t, ModeSearch, ParseMode("turbo"))
}
