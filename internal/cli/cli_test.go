package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"taskdeck-cli/internal/model"
)

// run executes the root command with args against a scratch config dir and
// returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func newBackend(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func decodeData[T any](t *testing.T, out string) T {
	t.Helper()
	var payload struct {
		Data T `json:"data"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	return payload.Data
}

func TestWhoamiAnonymous(t *testing.T) {
	t.Setenv("TASKDECK_CONFIG_DIR", t.TempDir())

	out, err := run(t, "whoami")
	if err != nil {
		t.Fatalf("whoami: %v", err)
	}
	if strings.TrimSpace(out) != `{"data":null}` {
		t.Fatalf("anonymous whoami = %q", out)
	}
}

func TestLoginPersistsSessionForWhoami(t *testing.T) {
	t.Setenv("TASKDECK_CONFIG_DIR", t.TempDir())
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/login" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-1",
			"user_id":      "u1",
			"name":         "Ada",
			"email":        "ada@example.com",
			"role":         "admin",
		})
	})

	out, err := run(t, "login", "--api-url", srv.URL, "--email", "ada@example.com", "--password", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if u := decodeData[model.User](t, out); u.Name != "Ada" || u.Role != "admin" {
		t.Fatalf("login output user = %+v", u)
	}

	out, err = run(t, "whoami")
	if err != nil {
		t.Fatalf("whoami: %v", err)
	}
	if u := decodeData[model.User](t, out); u.ID != "u1" {
		t.Fatalf("whoami after login = %+v", u)
	}

	if _, err := run(t, "logout"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	out, err = run(t, "whoami")
	if err != nil {
		t.Fatalf("whoami after logout: %v", err)
	}
	if strings.TrimSpace(out) != `{"data":null}` {
		t.Fatalf("whoami after logout = %q", out)
	}
}

func TestLoginRequiresFlags(t *testing.T) {
	t.Setenv("TASKDECK_CONFIG_DIR", t.TempDir())
	if _, err := run(t, "login", "--email", "x@example.com"); err == nil {
		t.Fatalf("login without --password must fail")
	}
}

func projectsBackend(t *testing.T) *httptest.Server {
	return newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/projects" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]model.Project{
			{ID: "p1", Name: "Zeta", Status: "Pending", Deadline: "2024-03-01"},
			{ID: "p2", Name: "alpha", Status: "Completed", Deadline: "2024-01-10"},
			{ID: "p3", Name: "Mid", Status: "In Progress", Deadline: "2024-02-20"},
		})
	})
}

func TestProjectsListSortAndMeta(t *testing.T) {
	t.Setenv("TASKDECK_CONFIG_DIR", t.TempDir())
	srv := projectsBackend(t)

	out, err := run(t, "projects", "list", "--api-url", srv.URL, "--sort", "name")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var payload struct {
		Data []model.Project `json:"data"`
		Meta struct {
			Page       int `json:"page"`
			TotalPages int `json:"totalPages"`
			PerPage    int `json:"perPage"`
			Total      int `json:"total"`
		} `json:"meta"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(payload.Data) != 3 || payload.Data[0].Name != "alpha" || payload.Data[2].Name != "Zeta" {
		t.Fatalf("sorted projects = %+v", payload.Data)
	}
	if payload.Meta.Page != 1 || payload.Meta.TotalPages != 1 || payload.Meta.PerPage != 5 || payload.Meta.Total != 3 {
		t.Fatalf("meta = %+v", payload.Meta)
	}
}

func TestProjectsListDescDateSort(t *testing.T) {
	t.Setenv("TASKDECK_CONFIG_DIR", t.TempDir())
	srv := projectsBackend(t)

	out, err := run(t, "projects", "list", "--api-url", srv.URL, "--sort", "deadline", "--desc")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	data := decodeData[[]model.Project](t, out)
	if data[0].ID != "p1" || data[1].ID != "p3" || data[2].ID != "p2" {
		t.Fatalf("descending deadline order = %+v", data)
	}
}

func TestProjectsListRejectsUnknownSortField(t *testing.T) {
	t.Setenv("TASKDECK_CONFIG_DIR", t.TempDir())
	srv := projectsBackend(t)

	if _, err := run(t, "projects", "list", "--api-url", srv.URL, "--sort", "owner"); err == nil {
		t.Fatalf("unknown sort field must fail")
	}
}

func TestProjectsListRejectsBadPerPage(t *testing.T) {
	t.Setenv("TASKDECK_CONFIG_DIR", t.TempDir())
	srv := projectsBackend(t)

	if _, err := run(t, "projects", "list", "--api-url", srv.URL, "--per-page", "7"); err == nil {
		t.Fatalf("per-page outside the option set must fail")
	}
}

func TestProjectsListTableOutput(t *testing.T) {
	t.Setenv("TASKDECK_CONFIG_DIR", t.TempDir())
	srv := projectsBackend(t)

	out, err := run(t, "projects", "list", "--api-url", srv.URL, "--format", "table")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "Name") || !strings.Contains(out, "Zeta") {
		t.Fatalf("table output = %q", out)
	}
	if !strings.Contains(out, "page 1/1") || !strings.Contains(out, "(3 total)") {
		t.Fatalf("table footer missing: %q", out)
	}
}

func TestTasksListScopedByProject(t *testing.T) {
	t.Setenv("TASKDECK_CONFIG_DIR", t.TempDir())
	var gotScope string
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotScope = r.URL.Query().Get("project_id")
		json.NewEncoder(w).Encode([]model.Task{{ID: "t1", Title: "Ship it", ProjectID: "p1"}})
	})

	out, err := run(t, "tasks", "list", "--api-url", srv.URL, "--project", "p1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotScope != "p1" {
		t.Fatalf("scope query = %q", gotScope)
	}
	data := decodeData[[]model.Task](t, out)
	if len(data) != 1 || data[0].Title != "Ship it" {
		t.Fatalf("tasks = %+v", data)
	}
}

func TestProjectsDelete(t *testing.T) {
	t.Setenv("TASKDECK_CONFIG_DIR", t.TempDir())
	var gotMethod, gotPath string
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	out, err := run(t, "projects", "delete", "p1", "--api-url", srv.URL)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/projects/p1" {
		t.Fatalf("request = %s %s", gotMethod, gotPath)
	}
	if deleted := decodeData[map[string]string](t, out); deleted["deleted"] != "p1" {
		t.Fatalf("delete output = %q", out)
	}
}

func TestProjectsUpdateMergesUnsetFlags(t *testing.T) {
	t.Setenv("TASKDECK_CONFIG_DIR", t.TempDir())
	var gotUpdate model.NewProject
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(model.Project{
				ID: "p1", Name: "Rollout", Description: "old words",
				Status: "Pending", Deadline: "2024-03-01",
			})
		case http.MethodPut:
			if err := json.NewDecoder(r.Body).Decode(&gotUpdate); err != nil {
				t.Errorf("decode update: %v", err)
			}
			json.NewEncoder(w).Encode(model.Project{ID: "p1", Name: gotUpdate.Name, Status: gotUpdate.Status})
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	})

	_, err := run(t, "projects", "update", "p1", "--api-url", srv.URL, "--status", "Completed")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if gotUpdate.Status != "Completed" {
		t.Fatalf("changed flag not applied: %+v", gotUpdate)
	}
	if gotUpdate.Name != "Rollout" || gotUpdate.Description != "old words" || gotUpdate.Deadline != "2024-03-01" {
		t.Fatalf("unset flags must keep server values: %+v", gotUpdate)
	}
}

func TestErrorsSurfaceServerDetail(t *testing.T) {
	t.Setenv("TASKDECK_CONFIG_DIR", t.TempDir())
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"detail":"Not enough permissions"}`))
	})

	_, err := run(t, "projects", "delete", "p1", "--api-url", srv.URL)
	if err == nil {
		t.Fatalf("forbidden delete must fail")
	}
	if !strings.Contains(err.Error(), "Not enough permissions") {
		t.Fatalf("error must carry the server detail, got %q", err.Error())
	}
}
