package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/nhle/backlog-dashboard/internal/model"
	"github.com/nhle/backlog-dashboard/internal/source/backlog"
)

// stubFetcher implements TaskFetcher for handler tests.
type stubFetcher struct {
	tasks    []model.Task
	tasksErr error
	users    []backlog.User
	usersErr error
}

func (s *stubFetcher) FetchTasks(context.Context) ([]model.Task, error) {
	return s.tasks, s.tasksErr
}

func (s *stubFetcher) Users(context.Context) ([]backlog.User, error) {
	return s.users, s.usersErr
}

func newTestServer(t *testing.T, fetcher TaskFetcher) *Server {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(fetcher, log, "")
}

func doRequest(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)
	return rec
}

func TestHandleListTasks_ReturnsTaskJSON(t *testing.T) {
	fetcher := &stubFetcher{
		tasks: []model.Task{
			{
				ID:         10,
				ProjectKey: "TEST1",
				IssueKey:   "TEST1-10",
				Summary:    "fix the thing",
				Urgency:    model.Urgency{IsOverdue: true, OverdueDays: 2},
			},
		},
	}

	rec := doRequest(t, newTestServer(t, fetcher), "/api/tasks")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d tasks, want 1", len(got))
	}
	if got[0]["projectKey"] != "TEST1" {
		t.Errorf("projectKey = %v", got[0]["projectKey"])
	}
	// Urgency fields are flattened into the task object.
	if got[0]["isOverdue"] != true {
		t.Errorf("isOverdue = %v, want true", got[0]["isOverdue"])
	}
	if got[0]["overdueDays"] != float64(2) {
		t.Errorf("overdueDays = %v, want 2", got[0]["overdueDays"])
	}
}

func TestHandleListTasks_PipelineFailureBecomesErrorEnvelope(t *testing.T) {
	fetcher := &stubFetcher{
		tasksErr: errors.New("unexpected status 503 on GET /api/v2/projects"),
	}

	rec := doRequest(t, newTestServer(t, fetcher), "/api/tasks")

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["error"] != "unexpected status 503 on GET /api/v2/projects" {
		t.Errorf("error message = %q, want the pipeline error verbatim", body["error"])
	}
}

func TestHandleListUsers(t *testing.T) {
	fetcher := &stubFetcher{
		users: []backlog.User{{ID: 1001, Name: "Yamada Taro"}},
	}

	rec := doRequest(t, newTestServer(t, fetcher), "/api/users")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got []backlog.User
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Yamada Taro" {
		t.Errorf("users = %+v", got)
	}
}

func TestHandleHealth(t *testing.T) {
	rec := doRequest(t, newTestServer(t, &stubFetcher{}), "/api/healthz")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	rec := doRequest(t, newTestServer(t, &stubFetcher{}), "/api/healthz")

	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("X-Request-Id header missing")
	}
}
