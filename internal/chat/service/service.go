// Package service forwards visitor questions to the language model with the
// college catalog as grounding context.
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/ReachRyt-Services/collegeSeraBot/platform/apperr"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/logger"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/metrics"

	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

// Mode selects how the model answers.
type Mode string

const (
	// ModeSearch answers quickly and may consult Google Search.
	ModeSearch Mode = "search"
	// ModeThinking uses the reasoning model with a thinking budget.
	ModeThinking Mode = "thinking"
)

const (
	fallbackReply = "I'm sorry, I couldn't generate a response."
	upstreamError = "Failed to fetch response from CollegeSeraBot."

	// maxHistoryTurns bounds the transcript sent back to the model.
	maxHistoryTurns = 40
)

// Turn is one prior message of the conversation.
type Turn struct {
	Role string
	Text string
}

// Source is a web page the answer was grounded on.
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// Reply is the model's answer to a single message.
type Reply struct {
	Text    string
	Sources []Source
	Mode    Mode
}

// InstructionProvider supplies the system instruction for every request.
type InstructionProvider interface {
	SystemInstruction() string
}

// Service is a direct passthrough to the configured models.
type Service struct {
	search         model.LLM
	thinking       model.LLM
	instructions   InstructionProvider
	thinkingBudget int32
	log            *logger.Logger
}

func New(search, thinking model.LLM, instructions InstructionProvider, thinkingBudget int32, log *logger.Logger) *Service {
	return &Service{
		search:         search,
		thinking:       thinking,
		instructions:   instructions,
		thinkingBudget: thinkingBudget,
		log:            log,
	}
}

// ParseMode maps the wire value to a Mode, defaulting to search.
func ParseMode(raw string) Mode {
	if Mode(strings.ToLower(strings.TrimSpace(raw))) == ModeThinking {
		return ModeThinking
	}
	return ModeSearch
}

// Respond sends history plus message to the model selected by mode.
func (s *Service) Respond(ctx context.Context, history []Turn, message string, mode Mode) (reply Reply, err error) {
	start := time.Now()
	defer func() { metrics.RecordChatReply(string(mode), err, time.Since(start)) }()

	llm, req := s.buildRequest(history, message, mode)

	var (
		text    strings.Builder
		sources []Source
		seen    = make(map[string]bool)
	)
	for resp, err := range llm.GenerateContent(ctx, req, false) {
		if err != nil {
			s.log.WithContext(ctx).Error("model request failed",
				slog.String("model", llm.Name()),
				slog.String("mode", string(mode)),
				slog.String("error", err.Error()),
			)
			return Reply{}, apperr.Upstream(upstreamError, err)
		}
		if resp == nil {
			continue
		}
		appendAnswer(&text, resp.Content)
		sources = appendSources(sources, seen, resp.GroundingMetadata)
	}

	answer := strings.TrimSpace(text.String())
	if answer == "" {
		answer = fallbackReply
	}
	return Reply{Text: answer, Sources: sources, Mode: mode}, nil
}

func (s *Service) buildRequest(history []Turn, message string, mode Mode) (model.LLM, *model.LLMRequest) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(s.instructions.SystemInstruction())},
		},
	}

	llm := s.search
	if mode == ModeThinking {
		llm = s.thinking
		cfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: genai.Ptr(s.thinkingBudget)}
	} else {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	return llm, &model.LLMRequest{
		Contents: buildContents(history, message),
		Config:   cfg,
	}
}

func buildContents(history []Turn, message string) []*genai.Content {
	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}

	contents := make([]*genai.Content, 0, len(history)+1)
	for _, turn := range history {
		text := strings.TrimSpace(turn.Text)
		if text == "" {
			continue
		}
		contents = append(contents, genai.NewContentFromText(text, roleFor(turn.Role)))
	}
	return append(contents, genai.NewContentFromText(message, genai.RoleUser))
}

func roleFor(role string) genai.Role {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "model", "assistant", "bot":
		return genai.RoleModel
	default:
		return genai.RoleUser
	}
}

func appendAnswer(b *strings.Builder, content *genai.Content) {
	if content == nil {
		return
	}
	for _, part := range content.Parts {
		if part == nil || part.Thought || part.Text == "" {
			continue
		}
		b.WriteString(part.Text)
	}
}

func appendSources(sources []Source, seen map[string]bool, meta *genai.GroundingMetadata) []Source {
	if meta == nil {
		return sources
	}
	for _, chunk := range meta.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" || seen[chunk.Web.URI] {
			continue
		}
		seen[chunk.Web.URI] = true
		title := chunk.Web.Title
		if title == "" {
			title = chunk.Web.URI
		}
		sources = append(sources, Source{URI: chunk.Web.URI, Title: title})
	}
	return sources
}
