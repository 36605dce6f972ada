package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ReachRyt-Services/collegeSeraBot/internal/chat/ports"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/chat/service"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/chat/transport"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/leads/domain"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/session"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/apperr"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResponder struct {
	reply   service.Reply
	err     error
	history []service.Turn
	message string
	mode    service.Mode
}

func (s *stubResponder) Respond(_ context.Context, history []service.Turn, message string, mode service.Mode) (service.Reply, error) {
	s.history, s.message, s.mode = history, message, mode
	return s.reply, s.err
}

type recordedTurn struct {
	visitor ports.Visitor
	message string
	reply   string
}

type stubRecorder struct {
	turns []recordedTurn
	tags  []string
}

func (s *stubRecorder) RecordTurn(_ context.Context, visitor ports.Visitor, message, reply string) []string {
	s.turns = append(s.turns, recordedTurn{visitor: visitor, message: message, reply: reply})
	return s.tags
}

type sessionConfig struct{}

func (sessionConfig) GetSessionSecret() string     { return "chat-test" }
func (sessionConfig) GetSessionTTL() time.Duration { return time.Hour }

func setup(t *testing.T, svc Responder, rec *stubRecorder) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	codec := session.NewCodec(sessionConfig{})
	token, err := codec.Save(session.Session{LeadRef: "3f1f0c7e-9a34-4b8a-9d8e-2d1c5f0b7a11", Name: "Asha", Phone: "9876543210"})
	require.NoError(t, err)

	router := gin.New()
	router.POST("/api/v1/chat", session.Required(codec), New(svc, rec, validator.New()).Send)
	return router, token
}

func post(router *gin.Engine, token, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestSendRecordsTurnAndReturnsTags(t *testing.T) {
	svc := &stubResponder{reply: service.Reply{
		Text:    "IIT Madras fees are ₹2.2 Lakhs",
		Mode:    service.ModeThinking,
		Sources: []service.Source{{URI: "https://www.iitm.ac.in", Title: "IITM"}},
	}}
	rec := &stubRecorder{tags: []string{"IIT Madras"}}
	router, token := setup(t, svc, rec)

	w := post(router, token, `{"message":"<b>fees</b> at iit?","mode":"thinking","history":[{"role":"model","text":"Namaste Asha!"}]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp transport.ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "IIT Madras fees are ₹2.2 Lakhs", resp.Text)
	assert.Equal(t, []string{"IIT Madras"}, resp.DetectedColleges)
	assert.Equal(t, "thinking", resp.Mode)
	assert.Equal(t, []transport.Source{{URI: "https://www.iitm.ac.in", Title: "IITM"}}, resp.Sources)

	assert.Equal(t, "fees at iit?", svc.message)
	assert.Equal(t, service.ModeThinking, svc.mode)
	require.Len(t, svc.history, 1)
	assert.Equal(t, "model", svc.history[0].Role)

	require.Len(t, rec.turns, 1)
	assert.Equal(t, domain.Ref("3f1f0c7e-9a34-4b8a-9d8e-2d1c5f0b7a11"), rec.turns[0].visitor.Ref)
	assert.Equal(t, "9876543210", rec.turns[0].visitor.Phone)
	assert.Equal(t, "IIT Madras fees are ₹2.2 Lakhs", rec.turns[0].reply)
}

func TestSendRejectsInvalidBodies(t *testing.T) {
	router, token := setup(t, &stubResponder{}, &stubRecorder{})

	cases := map[string]string{
		"malformed json":   `{"message":`,
		"empty message":    `{"message":"   "}`,
		"markup only":      `{"message":"<p></p>"}`,
		"unknown mode":     `{"message":"hi","mode":"turbo"}`,
		"bad history role": `{"message":"hi","history":[{"role":"system","text":"x"}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := post(router, token, body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestSendRequiresSession(t *testing.T) {
	router, _ := setup(t, &stubResponder{}, &stubRecorder{})

	w := post(router, "", `{"message":"hi"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSendMapsModelFailureToBadGateway(t *testing.T) {
	svc := &stubResponder{err: apperr.Upstream("Failed to fetch response from CollegeSeraBot.", errors.New("timeout"))}
	rec := &stubRecorder{}
	router, token := setup(t, svc, rec)

	w := post(router, token, `{"message":"hi"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to fetch response from CollegeSeraBot.")
	assert.Empty(t, rec.turns)
}
