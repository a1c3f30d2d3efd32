package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskdeck-cli/internal/model"
)

func newTestClient(t *testing.T, token string, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	var tokens TokenSource
	if token != "" {
		tokens = StaticToken(token)
	}
	return New(Config{BaseURL: srv.URL, Tokens: tokens})
}

func TestDoAttachesBearerToken(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, "tok-123", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	})

	if _, err := c.Projects(context.Background()); err != nil {
		t.Fatalf("projects: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("authorization header = %q", gotAuth)
	}
}

func TestDoOmitsHeaderWhenAnonymous(t *testing.T) {
	var gotAuth string
	var hadHeader bool
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, hadHeader = r.Header["Authorization"]
		w.Write([]byte(`[]`))
	})

	if _, err := c.Projects(context.Background()); err != nil {
		t.Fatalf("projects: %v", err)
	}
	if hadHeader {
		t.Fatalf("anonymous request carried Authorization %q", gotAuth)
	}
}

func TestLoginIsFormEncoded(t *testing.T) {
	var gotContentType, gotUser, gotPass, gotAuth string
	c := newTestClient(t, "stale-token", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotContentType = r.Header.Get("Content-Type")
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotUser = r.PostFormValue("username")
		gotPass = r.PostFormValue("password")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "fresh",
			"token_type":   "bearer",
			"user_id":      "u1",
			"name":         "Ada",
			"role":         "admin",
		})
	})

	res, err := c.Login(context.Background(), "ada@example.com", "hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if gotContentType != "application/x-www-form-urlencoded" {
		t.Fatalf("content type = %q", gotContentType)
	}
	if gotUser != "ada@example.com" || gotPass != "hunter2" {
		t.Fatalf("credentials sent = %q / %q", gotUser, gotPass)
	}
	if gotAuth != "Bearer stale-token" {
		t.Fatalf("login should still send whatever token exists, got=%q", gotAuth)
	}
	if res.AccessToken != "fresh" {
		t.Fatalf("access token = %q", res.AccessToken)
	}
}

func TestErrorDetailFromBody(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Incorrect username or password"}`))
	})

	_, err := c.Login(context.Background(), "x", "y")
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusUnauthorized || !apiErr.Unauthorized() {
		t.Fatalf("status = %d", apiErr.Status)
	}
	if apiErr.Detail != "Incorrect username or password" {
		t.Fatalf("detail = %q", apiErr.Detail)
	}
	if got := apiErr.Error(); got != "Incorrect username or password (HTTP 401)" {
		t.Fatalf("error string = %q", got)
	}
}

func TestErrorDefaultDetail(t *testing.T) {
	cases := []struct {
		status int
		detail string
	}{
		{http.StatusUnauthorized, "not authenticated"},
		{http.StatusForbidden, "permission denied"},
		{http.StatusNotFound, "not found"},
		{http.StatusInternalServerError, "server error"},
		{http.StatusTeapot, "request failed"},
	}
	for _, tc := range cases {
		c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			w.Write([]byte(`not json at all`))
		})
		_, err := c.Projects(context.Background())
		var apiErr *Error
		if !errors.As(err, &apiErr) {
			t.Fatalf("status %d: expected *Error, got %v", tc.status, err)
		}
		if apiErr.Detail != tc.detail {
			t.Fatalf("status %d: detail = %q, want %q", tc.status, apiErr.Detail, tc.detail)
		}
	}
}

func TestConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing listening anymore

	c := New(Config{BaseURL: srv.URL})
	_, err := c.Projects(context.Background())
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if !apiErr.Network() || apiErr.Error() != "connection error" {
		t.Fatalf("network failure = %+v", apiErr)
	}
}

func TestTasksScopedByProject(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tasks" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotQuery = r.URL.Query().Get("project_id")
		w.Write([]byte(`[{"id":"t1","title":"Write docs"}]`))
	})

	tasks, err := c.Tasks(context.Background(), "p42")
	if err != nil {
		t.Fatalf("tasks: %v", err)
	}
	if gotQuery != "p42" {
		t.Fatalf("project_id query = %q", gotQuery)
	}
	if len(tasks) != 1 || tasks[0].Title != "Write docs" {
		t.Fatalf("tasks = %+v", tasks)
	}

	if _, err := c.Tasks(context.Background(), ""); err != nil {
		t.Fatalf("unscoped tasks: %v", err)
	}
	if gotQuery != "" {
		t.Fatalf("unscoped fetch must not send project_id, got=%q", gotQuery)
	}
}

func TestDeleteUsesFullPathAndAcceptsEmptyBody(t *testing.T) {
	var gotMethod, gotPath string
	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	if err := c.DeleteTask(context.Background(), "t9"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/tasks/t9" {
		t.Fatalf("request = %s %s", gotMethod, gotPath)
	}
}

func TestPathEscapesIDs(t *testing.T) {
	var gotEscaped string
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		gotEscaped = r.URL.EscapedPath()
		json.NewEncoder(w).Encode(model.Project{ID: "a/b"})
	})

	if _, err := c.Project(context.Background(), "a/b"); err != nil {
		t.Fatalf("project: %v", err)
	}
	if gotEscaped != "/api/projects/a%2Fb" {
		t.Fatalf("escaped path = %q", gotEscaped)
	}
}

func TestCreateProjectSendsJSON(t *testing.T) {
	var gotContentType string
	var gotBody model.NewProject
	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		json.NewEncoder(w).Encode(model.Project{ID: "p1", Name: gotBody.Name})
	})

	p, err := c.CreateProject(context.Background(), model.NewProject{Name: "Rollout", Status: model.ProjectStatusPending})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if gotContentType != "application/json" {
		t.Fatalf("content type = %q", gotContentType)
	}
	if gotBody.Name != "Rollout" || p.ID != "p1" {
		t.Fatalf("roundtrip = %+v / %+v", gotBody, p)
	}
}
