package backlog

import (
	"testing"
	"time"
)

func int64Ptr(v int64) *int64 { return &v }

func TestIssueToTask_BareIssue(t *testing.T) {
	issue := Issue{
		ID:        10,
		ProjectID: 1,
		IssueKey:  "TEST1-10",
		IssueType: IssueType{ID: 1, Name: "Bug"},
		Summary:   "fix the thing",
		Status:    Status{ID: 100, Name: "In Progress"},
		Updated:   "2026-03-01T09:30:00Z",
	}

	task := issueToTask(issue, "TEST1", nil)

	if task.ID != 10 || task.IssueKey != "TEST1-10" {
		t.Errorf("identity fields wrong: %+v", task)
	}
	if task.ProjectKey != "TEST1" {
		t.Errorf("projectKey = %q, want TEST1", task.ProjectKey)
	}
	if task.IssueType != "Bug" || task.Status != "In Progress" {
		t.Errorf("type/status wrong: %+v", task)
	}
	if task.AssigneeName != "" {
		t.Errorf("assigneeName = %q, want empty for unassigned issue", task.AssigneeName)
	}
	if task.IsOverdue || task.OverdueDays != 0 || task.IsDueTomorrow {
		t.Errorf("no due date must mean zero urgency, got %+v", task.Urgency)
	}
	if task.ParentTask != nil {
		t.Errorf("parentTask = %+v, want nil", task.ParentTask)
	}
}

func TestIssueToTask_CopiesAssigneeName(t *testing.T) {
	issue := Issue{
		ID:       11,
		IssueKey: "TEST1-11",
		Assignee: &User{ID: 1001, Name: "Yamada Taro"},
		Updated:  "2026-03-01T09:30:00Z",
	}

	task := issueToTask(issue, "TEST1", nil)

	if task.AssigneeName != "Yamada Taro" {
		t.Errorf("assigneeName = %q, want Yamada Taro", task.AssigneeName)
	}
}

func TestIssueToTask_ParentResolution(t *testing.T) {
	parent := Issue{ID: 100, IssueKey: "TEST1-1", Summary: "parent work"}
	child := Issue{
		ID:            101,
		IssueKey:      "TEST1-2",
		Summary:       "child work",
		ParentIssueID: int64Ptr(100),
		Updated:       "2026-03-01T09:30:00Z",
	}
	all := []Issue{parent, child}

	t.Run("parent found", func(t *testing.T) {
		task := issueToTask(child, "TEST1", all)

		if task.ParentTask == nil {
			t.Fatal("parentTask is nil, want resolved parent")
		}
		if task.ParentTask.ID != 100 ||
			task.ParentTask.IssueKey != "TEST1-1" ||
			task.ParentTask.Summary != "parent work" {
			t.Errorf("parentTask = %+v", task.ParentTask)
		}
	})

	t.Run("parent id not in set", func(t *testing.T) {
		orphan := child
		orphan.ParentIssueID = int64Ptr(999)

		if task := issueToTask(orphan, "TEST1", all); task.ParentTask != nil {
			t.Errorf("parentTask = %+v, want nil for unknown parent", task.ParentTask)
		}
	})

	t.Run("no issue list supplied", func(t *testing.T) {
		if task := issueToTask(child, "TEST1", nil); task.ParentTask != nil {
			t.Errorf("parentTask = %+v, want nil without an issue set", task.ParentTask)
		}
	})
}

func TestFormatUpdated(t *testing.T) {
	want := time.Date(2026, time.March, 1, 9, 30, 0, 0, time.UTC).
		Local().Format("2006/01/02 15:04")

	if got := formatUpdated("2026-03-01T09:30:00Z"); got != want {
		t.Errorf("formatUpdated = %q, want %q", got, want)
	}

	if got := formatUpdated(""); got != "" {
		t.Errorf("formatUpdated(\"\") = %q, want empty", got)
	}

	// Unparseable timestamps pass through rather than vanish.
	if got := formatUpdated("garbage"); got != "garbage" {
		t.Errorf("formatUpdated(garbage) = %q", got)
	}
}
