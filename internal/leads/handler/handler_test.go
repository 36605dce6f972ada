package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ReachRyt-Services/collegeSeraBot/internal/leads/domain"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/leads/maintenance"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/leads/management"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/leads/ports"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/leads/registration"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/leads/repository"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/leads/transport"
	"github.com/ReachRyt-Services/collegeSeraBot/internal/session"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/httpkit"
	"github.com/ReachRyt-Services/collegeSeraBot/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRegistrar struct {
	result registration.Result
	got    domain.Submission
	calls  int
}

func (s *stubRegistrar) Register(_ context.Context, sub domain.Submission) registration.Result {
	s.calls++
	s.got = sub
	return s.result
}

type stubGreeter struct{}

func (stubGreeter) Welcome(name string) string { return "Namaste " + name + "!" }

type stubReader struct {
	leads []domain.Lead
}

func (s *stubReader) GetByID(_ context.Context, id uuid.UUID) (domain.Lead, error) {
	for _, lead := range s.leads {
		if lead.ID == id {
			return lead, nil
		}
	}
	return domain.Lead{}, repository.ErrNotFound
}

func (s *stubReader) List(context.Context, repository.ListParams) ([]domain.Lead, int, error) {
	return s.leads, len(s.leads), nil
}

type stubCleaner struct {
	requestedBy string
}

func (s *stubCleaner) CleanDuplicates(_ context.Context, requestedBy string, dryRun bool) (maintenance.Stats, error) {
	s.requestedBy = requestedBy
	return maintenance.Stats{TotalLeads: 3, DuplicatesFound: 1, LeadsMerged: 1, DryRun: dryRun}, nil
}

type stubScheduler struct{}

func (stubScheduler) EnqueueDuplicateCleanup(context.Context, ports.CleanupRequest) (string, error) {
	return "task-42", nil
}

type sessionConfig struct{}

func (sessionConfig) GetSessionSecret() string     { return "leads-test" }
func (sessionConfig) GetSessionTTL() time.Duration { return time.Hour }

type fixture struct {
	router    *gin.Engine
	registrar *stubRegistrar
	cleaner   *stubCleaner
	codec     *session.Codec
}

func setup(t *testing.T, reader *stubReader, scheduler ports.CleanupScheduler) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &fixture{
		registrar: &stubRegistrar{},
		cleaner:   &stubCleaner{},
		codec:     session.NewCodec(sessionConfig{}),
	}
	h := New(f.registrar, management.New(reader, f.cleaner, scheduler), f.codec, stubGreeter{}, validator.New())

	router := gin.New()
	router.POST("/leads/register", h.Register)
	admin := router.Group("/admin", func(c *gin.Context) {
		c.Set(httpkit.ContextUserIDKey, uuid.New())
		c.Set(httpkit.ContextSubjectKey, "ops@collegesera.in")
		c.Next()
	})
	admin.GET("/leads", h.List)
	admin.GET("/leads/:id", h.Get)
	admin.POST("/leads/deduplicate", h.Deduplicate)
	f.router = router
	return f
}

func (f *fixture) do(method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	f.router.ServeHTTP(w, req)
	return w
}

const validForm = `{
	"name": "Asha",
	"phone": "+91 98765 43210",
	"email": "asha@example.com",
	"preferred_college": "IIT Madras"
}`

func TestRegisterCreatesLeadAndSession(t *testing.T) {
	f := setup(t, &stubReader{}, nil)
	id := uuid.New()
	f.registrar.result = registration.Result{
		Lead:      domain.Lead{ID: id, Name: "Asha", Phone: "9876543210", Email: "asha@example.com"},
		Ref:       domain.NewPersistedRef(id),
		Created:   true,
		Persisted: true,
	}

	w := f.do(http.MethodPost, "/leads/register", validForm)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp transport.RegisterLeadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, id.String(), resp.Lead.ID)
	assert.True(t, resp.Persisted)
	assert.Equal(t, "Namaste Asha!", resp.WelcomeMessage)
	assert.Equal(t, "IIT Madras", f.registrar.got.Profile.PreferredCollege)

	sess, err := f.codec.Load(resp.SessionToken)
	require.NoError(t, err)
	assert.Equal(t, domain.NewPersistedRef(id), sess.LeadRef)
}

func TestRegisterExistingLeadReturnsOK(t *testing.T) {
	f := setup(t, &stubReader{}, nil)
	id := uuid.New()
	f.registrar.result = registration.Result{
		Lead:      domain.Lead{ID: id, Name: "Asha"},
		Ref:       domain.NewPersistedRef(id),
		Persisted: true,
	}

	w := f.do(http.MethodPost, "/leads/register", validForm)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterOfflineStillIssuesSession(t *testing.T) {
	f := setup(t, &stubReader{}, nil)
	ref := domain.NewOfflineRef(time.UnixMilli(1720000000000))
	f.registrar.result = registration.Result{
		Lead: domain.Lead{Name: "Asha", Phone: "9876543210"},
		Ref:  ref,
	}

	w := f.do(http.MethodPost, "/leads/register", validForm)
	require.Equal(t, http.StatusOK, w.Code)

	var resp transport.RegisterLeadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Persisted)
	assert.Equal(t, "offline-1720000000000", resp.Lead.ID)

	sess, err := f.codec.Load(resp.SessionToken)
	require.NoError(t, err)
	assert.True(t, sess.LeadRef.IsSynthetic())
}

func TestRegisterRejectsInvalidForm(t *testing.T) {
	cases := map[string]string{
		"malformed json": `{"name":`,
		"missing email":  `{"name":"Asha","phone":"9876543210"}`,
		"landline":       `{"name":"Asha","phone":"0442345678","email":"asha@example.com"}`,
		"bad email":      `{"name":"Asha","phone":"9876543210","email":"asha"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			f := setup(t, &stubReader{}, nil)
			w := f.do(http.MethodPost, "/leads/register", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Zero(t, f.registrar.calls)
		})
	}
}

func TestAdminGetLead(t *testing.T) {
	lead := domain.Lead{ID: uuid.New(), Name: "Ravi", Phone: "9123456789"}
	f := setup(t, &stubReader{leads: []domain.Lead{lead}}, nil)

	w := f.do(http.MethodGet, "/admin/leads/"+lead.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Ravi"`)

	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/admin/leads/"+uuid.NewString(), "").Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/admin/leads/not-a-uuid", "").Code)
}

func TestAdminListLeads(t *testing.T) {
	f := setup(t, &stubReader{leads: []domain.Lead{{ID: uuid.New(), Name: "Ravi"}}}, nil)

	w := f.do(http.MethodGet, "/admin/leads?search=ravi&page=1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp transport.LeadListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)

	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/admin/leads?pageSize=1000", "").Code)
}

func TestAdminDeduplicateInline(t *testing.T) {
	f := setup(t, &stubReader{}, nil)

	w := f.do(http.MethodPost, "/admin/leads/deduplicate?dryRun=true", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp transport.DeduplicateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Stats)
	assert.True(t, resp.Stats.DryRun)
	assert.Equal(t, 1, resp.Stats.LeadsMerged)
	assert.Equal(t, "ops@collegesera.in", f.cleaner.requestedBy)
}

func TestAdminDeduplicateQueued(t *testing.T) {
	f := setup(t, &stubReader{}, stubScheduler{})

	w := f.do(http.MethodPost, "/admin/leads/deduplicate?async=true", "")
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), `"task_id":"task-42"`)
}

func TestAdminDeduplicateAsyncUnavailable(t *testing.T) {
	f := setup(t, &stubReader{}, nil)

	w := f.do(http.MethodPost, "/admin/leads/deduplicate?async=true", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
