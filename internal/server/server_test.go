package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/artefact/buzz-dashboard/internal/auth"
	"github.com/artefact/buzz-dashboard/internal/config"
	"github.com/artefact/buzz-dashboard/internal/fixtures"
	"github.com/artefact/buzz-dashboard/internal/library"
	"github.com/artefact/buzz-dashboard/internal/models"
	"github.com/artefact/buzz-dashboard/internal/storage"
	"github.com/artefact/buzz-dashboard/internal/tagging"
	"github.com/artefact/buzz-dashboard/internal/tasks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeNotifier records notifications on channels
type fakeNotifier struct {
	submissions chan tagging.Receipt
	changes     chan models.Task
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{
		submissions: make(chan tagging.Receipt, 10),
		changes:     make(chan models.Task, 10),
	}
}

func (f *fakeNotifier) SendSubmission(receipt *tagging.Receipt) error {
	f.submissions <- *receipt
	return nil
}

func (f *fakeNotifier) SendStatusChange(task *models.Task) error {
	f.changes <- *task
	return nil
}

type testEnv struct {
	server  *Server
	handler http.Handler
	auth    *auth.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		LoginEmail:    "jiaoliang.chen@artefact.com",
		LoginPassword: "cjl@2025",
		LoginName:     "Jiaoliang Chen",
		JWTSecret:     "test-secret",
		SessionTTL:    time.Hour,
	}

	lib := library.NewService(storage.NewFSStorage(fixtures.FS(), "embedded"), "comments.json")
	require.NoError(t, lib.Load(context.Background()))

	summary, err := fixtures.SummaryRows()
	require.NoError(t, err)
	breakdowns, err := fixtures.TagBreakdowns()
	require.NoError(t, err)

	authSvc := auth.NewService(cfg)
	srv := New(&Container{
		Auth:       authSvc,
		Library:    lib,
		Tasks:      tasks.NewService(tasks.MockTasks()),
		Summary:    summary,
		Breakdowns: breakdowns,
	})
	srv.now = func() time.Time { return time.Date(2025, 3, 30, 12, 0, 0, 0, time.UTC) }

	return &testEnv{server: srv, handler: srv.Router(), auth: authSvc}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) login(t *testing.T) auth.Session {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/auth/login", "", loginRequest{
		Email:    "jiaoliang.chen@artefact.com",
		Password: "cjl@2025",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var sess auth.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sess))
	return sess
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}

func TestAuthFlow(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth/login", "", loginRequest{Email: "jiaoliang.chen@artefact.com", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Incorrect email or password", decode[map[string]string](t, rec)["error"])

	rec = env.do(t, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	sess := env.login(t)

	rec = env.do(t, http.MethodGet, "/api/auth/me", sess.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.User{Email: "jiaoliang.chen@artefact.com", Name: "Jiaoliang Chen"}, decode[models.User](t, rec))

	rec = env.do(t, http.MethodPost, "/api/auth/logout", sess.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/auth/me", sess.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginRejectsMalformedBody(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDashboard(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t).Token

	rec := env.do(t, http.MethodGet, "/api/dashboard/summary", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.SummaryRow](t, rec), 3)

	rec = env.do(t, http.MethodGet, "/api/dashboard/tags?id=1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.TagBreakdown](t, rec), 1)

	rec = env.do(t, http.MethodGet, "/api/dashboard/tags?id=x", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLibraryOptions(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t).Token

	rec := env.do(t, http.MethodGet, "/api/library/options?theme=ux", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	opts := decode[library.FilterOptions](t, rec)
	assert.Len(t, opts.Tags, 9)

	rec = env.do(t, http.MethodGet, "/api/library/options", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	opts = decode[library.FilterOptions](t, rec)
	assert.Equal(t, []library.Option{{Value: library.All, Label: "All Tags"}}, opts.Tags)
}

func TestLibraryComments(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t).Token

	rec := env.do(t, http.MethodGet, "/api/library/comments", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 12, decode[library.Result](t, rec).Total)

	q := url.Values{"game": {"Tom Clancy's Rainbow Six Siege"}}
	rec = env.do(t, http.MethodGet, "/api/library/comments?"+q.Encode(), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	result := decode[library.Result](t, rec)
	assert.Equal(t, 5, result.Total)
	for _, c := range result.Comments {
		assert.Equal(t, "Tom Clancy's Rainbow Six Siege", c.Game)
	}

	q = url.Values{"search": {"no comment says this"}}
	rec = env.do(t, http.MethodGet, "/api/library/comments?"+q.Encode(), token, nil)
	result = decode[library.Result](t, rec)
	assert.Equal(t, 0, result.Total)
	assert.Equal(t, "No comments found", result.Message)
}

func TestLibraryCriteriaPerSession(t *testing.T) {
	env := newTestEnv(t)
	first := env.login(t).Token
	second := env.login(t).Token

	rec := env.do(t, http.MethodPost, "/api/library/criteria", first, criteriaAction{Type: "set_theme", Value: "ux"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(t, http.MethodPost, "/api/library/criteria", first, criteriaAction{Type: "set_tag", Value: "#MatchmakingTime"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/library/criteria", first, criteriaAction{Type: "set_theme", Value: "story"})
	require.Equal(t, http.StatusOK, rec.Code)
	result := decode[library.Result](t, rec)
	assert.Equal(t, "story", result.Criteria.Theme)
	assert.Equal(t, library.All, result.Criteria.Tag, "tag not offered by the new theme is reset")

	rec = env.do(t, http.MethodGet, "/api/library/criteria", second, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, library.DefaultCriteria(), decode[library.Result](t, rec).Criteria)

	rec = env.do(t, http.MethodPost, "/api/library/criteria", first, criteriaAction{Type: "sort_by"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLibraryRefreshAndMetrics(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t).Token

	rec := env.do(t, http.MethodPost, "/api/library/refresh", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 12, decode[map[string]interface{}](t, rec)["total"])

	rec = env.do(t, http.MethodGet, "/api/library/metrics", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	metrics := decode[library.Metrics](t, rec)
	assert.Equal(t, 12, metrics.TotalComments)
	assert.Equal(t, "embedded", metrics.Source)
}

func TestTaggingDraft(t *testing.T) {
	env := newTestEnv(t)
	sess := env.login(t)

	rec := env.do(t, http.MethodGet, "/api/tagging/catalog", sess.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/tagging/draft", sess.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[draftResponse](t, rec)
	assert.Equal(t, tagging.ContentSelection, resp.Draft.Step)
	assert.Equal(t, "Content Selection", resp.StepLabel)

	rec = env.do(t, http.MethodPost, "/api/tagging/draft/actions", sess.Token, tagging.ActionRequest{
		Type: "add_condition", MetricID: "sentiment_score", Operator: "gt",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp = decode[draftResponse](t, rec)
	assert.Equal(t, "please select a metric, operator, and value", resp.Error)
	assert.Empty(t, resp.Draft.Selection.Conditions)

	rec = env.do(t, http.MethodPost, "/api/tagging/draft/actions", sess.Token, tagging.ActionRequest{
		Type: "add_condition", MetricID: "sentiment_score", Operator: "gt", Value: "0.7",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decode[draftResponse](t, rec)
	require.Len(t, resp.Draft.Selection.Conditions, 1)
	assert.Equal(t, "Sentiment Score > 0.7", resp.Review.MetricsCriteria)

	rec = env.do(t, http.MethodPost, "/api/tagging/draft/submit", sess.Token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "not on the review step")

	for _, req := range []tagging.ActionRequest{
		{Type: "next"}, {Type: "next"}, {Type: "next"}, {Type: "next"},
		{Type: "set_task_name", Value: "#ServerLag - Siege"},
		{Type: "set_submitter", Value: "example@artefact.com"},
	} {
		rec = env.do(t, http.MethodPost, "/api/tagging/draft/actions", sess.Token, req)
		require.Equal(t, http.StatusOK, rec.Code, req.Type)
	}

	rec = env.do(t, http.MethodPost, "/api/tagging/draft/submit", sess.Token, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	receipt := decode[tagging.Receipt](t, rec)
	assert.Equal(t, "#ServerLag - Siege has been submitted for approval.", receipt.Description)

	rec = env.do(t, http.MethodGet, "/api/tagging/draft", sess.Token, nil)
	assert.Equal(t, tagging.NewDraft(), decode[draftResponse](t, rec).Draft)
}

func TestLogoutDiscardsWorkspace(t *testing.T) {
	env := newTestEnv(t)
	sess := env.login(t)

	rec := env.do(t, http.MethodPost, "/api/tagging/draft/actions", sess.Token, tagging.ActionRequest{Type: "next"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, env.server.workspaces, 1)

	rec = env.do(t, http.MethodPost, "/api/auth/logout", sess.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, env.server.workspaces)
}

func TestExpiredSessionsDropWorkspace(t *testing.T) {
	authSvc := auth.NewService(&config.Config{
		LoginEmail:    "jiaoliang.chen@artefact.com",
		LoginPassword: "cjl@2025",
		JWTSecret:     "test-secret",
		SessionTTL:    20 * time.Millisecond,
	})
	srv := New(&Container{Auth: authSvc})

	first, err := authSvc.Login(context.Background(), "jiaoliang.chen@artefact.com", "cjl@2025")
	require.NoError(t, err)
	srv.workspaceFor(first.ID)
	require.Len(t, srv.workspaces, 1)

	time.Sleep(50 * time.Millisecond)

	second, err := authSvc.Login(context.Background(), "jiaoliang.chen@artefact.com", "cjl@2025")
	require.NoError(t, err)
	assert.Empty(t, srv.workspaces)
	assert.Equal(t, 1, authSvc.ActiveSessions())

	srv.workspaceFor(second.ID)
	assert.Len(t, srv.workspaces, 1)
}

func TestTasks(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t).Token

	rec := env.do(t, http.MethodGet, "/api/tasks", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Task](t, rec), 5)

	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"Get task", http.MethodGet, "/api/tasks/3", http.StatusOK},
		{"Missing task", http.MethodGet, "/api/tasks/99", http.StatusNotFound},
		{"Bad id", http.MethodGet, "/api/tasks/abc", http.StatusBadRequest},
		{"Approve pending", http.MethodPost, "/api/tasks/3/approve", http.StatusOK},
		{"Approve again", http.MethodPost, "/api/tasks/3/approve", http.StatusBadRequest},
		{"Pause running", http.MethodPost, "/api/tasks/3/pause", http.StatusOK},
		{"Resume paused", http.MethodPost, "/api/tasks/3/resume", http.StatusOK},
		{"Unknown action", http.MethodPost, "/api/tasks/3/delete", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, tt.method, tt.path, token, nil)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}

	rec = env.do(t, http.MethodGet, "/api/tasks/3", token, nil)
	assert.Equal(t, tasks.StatusRunning, decode[models.Task](t, rec).Status)
}

func TestNotifications(t *testing.T) {
	env := newTestEnv(t)
	notifier := newFakeNotifier()
	env.server.deps.Notifier = notifier
	sess := env.login(t)

	rec := env.do(t, http.MethodPost, "/api/tasks/3/reject", sess.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	select {
	case task := <-notifier.changes:
		assert.Equal(t, tasks.StatusRejected, task.Status)
	case <-time.After(2 * time.Second):
		t.Fatal("status change notification not sent")
	}

	rec = env.do(t, http.MethodPost, "/api/tasks/3/approve", sess.Token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	for _, req := range []tagging.ActionRequest{
		{Type: "next"}, {Type: "next"}, {Type: "next"}, {Type: "next"},
		{Type: "set_task_name", Value: "Task"},
		{Type: "set_submitter", Value: "me"},
	} {
		rec = env.do(t, http.MethodPost, "/api/tagging/draft/actions", sess.Token, req)
		require.Equal(t, http.StatusOK, rec.Code, req.Type)
	}
	rec = env.do(t, http.MethodPost, "/api/tagging/draft/submit", sess.Token, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	select {
	case receipt := <-notifier.submissions:
		assert.Equal(t, "Task", receipt.TaskName)
	case <-time.After(2 * time.Second):
		t.Fatal("submission notification not sent")
	}

	assert.Empty(t, notifier.changes, "rejected transition sends nothing")
}

func TestCORSPreflight(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodOptions, "/api/tasks", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
