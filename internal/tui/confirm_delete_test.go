package tui

import (
	"net/http"
	"strings"
	"testing"

	"taskdeck-cli/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

func TestDeleteKeyOpensConfirmModal(t *testing.T) {
	m := newSignedInModel(t, nil)
	seedProjects(t, &m, 3)

	next, _ := m.Update(keyRune('d'))
	m2 := next.(appModel)
	if m2.modal != modalConfirmDelete {
		t.Fatalf("expected confirm modal, got %v", m2.modal)
	}
	if m2.confirm.kind != "project" || m2.confirm.name != "Project 00" {
		t.Fatalf("confirm state = %+v", m2.confirm)
	}

	out := m2.View()
	if !strings.Contains(out, "Project 00") || !strings.Contains(out, "Delete") {
		t.Fatalf("modal view = %q", out)
	}
}

func TestConfirmModalEscCancels(t *testing.T) {
	m := newSignedInModel(t, nil)
	seedProjects(t, &m, 3)

	next, _ := m.Update(keyRune('d'))
	next, _ = next.(appModel).Update(tea.KeyMsg{Type: tea.KeyEsc})
	m2 := next.(appModel)

	if m2.modal != modalNone {
		t.Fatalf("esc must close the modal")
	}
	if m2.projects.ctrl.Len() != 3 {
		t.Fatalf("cancel must not delete anything, len=%d", m2.projects.ctrl.Len())
	}
}

func TestConfirmModalTabTogglesFocus(t *testing.T) {
	m := newSignedInModel(t, nil)
	seedProjects(t, &m, 3)

	next, _ := m.Update(keyRune('d'))
	m2 := next.(appModel)
	if m2.confirm.focus != confirmFocusConfirm {
		t.Fatalf("modal must open focused on confirm")
	}

	next, _ = m2.Update(tea.KeyMsg{Type: tea.KeyTab})
	m3 := next.(appModel)
	if m3.confirm.focus != confirmFocusCancel {
		t.Fatalf("tab must move focus to cancel")
	}

	// Enter on cancel closes without deleting.
	next, _ = m3.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m4 := next.(appModel)
	if m4.modal != modalNone || m4.projects.ctrl.Len() != 3 {
		t.Fatalf("enter on cancel must be a no-op delete, len=%d", m4.projects.ctrl.Len())
	}
}

func TestConfirmModalEnterDeletes(t *testing.T) {
	var deletedPath string
	m := newSignedInModel(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			deletedPath = r.URL.Path
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Write([]byte(`[]`))
	})
	seedProjects(t, &m, 3)

	next, _ := m.Update(keyRune('d'))
	next, cmd := next.(appModel).Update(tea.KeyMsg{Type: tea.KeyEnter})
	m2 := next.(appModel)

	if m2.modal != modalNone {
		t.Fatalf("modal must close as soon as the delete is dispatched")
	}
	if m2.projects.ctrl.Len() != 3 {
		t.Fatalf("item must stay until the server confirms, len=%d", m2.projects.ctrl.Len())
	}
	if cmd == nil {
		t.Fatalf("enter on confirm must dispatch the delete")
	}

	next, _ = m2.Update(cmd())
	m3 := next.(appModel)
	if deletedPath != "/api/projects/p00" {
		t.Fatalf("delete request path = %q", deletedPath)
	}
	if m3.projects.ctrl.Len() != 2 {
		t.Fatalf("item must be dropped locally, len=%d", m3.projects.ctrl.Len())
	}
	if _, ok := m3.projects.ctrl.Find("p00"); ok {
		t.Fatalf("deleted project still present")
	}
	if !strings.Contains(m3.status, "Deleted Project 00") {
		t.Fatalf("status = %q", m3.status)
	}
}

func TestConfirmModalDeleteFailureKeepsItem(t *testing.T) {
	m := newSignedInModel(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"detail":"Not enough permissions"}`))
			return
		}
		w.Write([]byte(`[]`))
	})
	seedProjects(t, &m, 3)

	next, _ := m.Update(keyRune('d'))
	next, cmd := next.(appModel).Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("enter on confirm must dispatch the delete")
	}
	next, _ = next.(appModel).Update(cmd())
	m2 := next.(appModel)

	if m2.projects.ctrl.Len() != 3 {
		t.Fatalf("failed delete must keep the item, len=%d", m2.projects.ctrl.Len())
	}
	if !strings.Contains(m2.status, "Not enough permissions") {
		t.Fatalf("status must carry the server detail, got %q", m2.status)
	}
}

func TestProjectModalMentionsCascade(t *testing.T) {
	m := newSignedInModel(t, nil)
	seedProjects(t, &m, 1)

	next, _ := m.Update(keyRune('d'))
	out := next.(appModel).View()
	if !strings.Contains(out, "tasks") {
		t.Fatalf("project delete modal must warn about its tasks: %q", out)
	}
}

func TestEnterOpensProjectDetail(t *testing.T) {
	m := newSignedInModel(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	gen := m.projects.ctrl.BeginLoad()
	m.projects.finishLoad(gen, []model.Project{{ID: "p1", Name: "Rollout", Status: "Pending"}}, nil)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m2 := next.(appModel)
	if m2.view != viewProjectDetail {
		t.Fatalf("enter must open the detail view, got %v", m2.view)
	}
	if m2.detailProject == nil || m2.detailProject.ID != "p1" {
		t.Fatalf("detail project = %+v", m2.detailProject)
	}
	if m2.projectTasks == nil {
		t.Fatalf("project detail must mount a scoped tasks list")
	}

	// Esc tears the scoped list down again.
	next, _ = m2.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m3 := next.(appModel)
	if m3.view != viewProjects || m3.projectTasks != nil {
		t.Fatalf("esc must return to projects and drop the scoped list")
	}
}
