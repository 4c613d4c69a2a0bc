package model

// Urgency describes how pressing a task's due date is, computed
// against "today" in the reference timezone.
type Urgency struct {
	// IsOverdue reports whether the due date lies strictly in the past.
	IsOverdue bool `json:"isOverdue"`

	// OverdueDays is the whole-day count by which the due date has
	// passed. Always 0 when IsOverdue is false.
	OverdueDays int `json:"overdueDays"`

	// IsDueTomorrow reports whether the due date is exactly the
	// calendar day after today. Mutually exclusive with IsOverdue.
	IsDueTomorrow bool `json:"isDueTomorrow"`
}

// ParentTask is a lightweight reference to a task's parent issue.
type ParentTask struct {
	ID       int64  `json:"id"`
	IssueKey string `json:"issueKey"`
	Summary  string `json:"summary"`
}

// Task is the canonical dashboard record produced from one raw issue.
type Task struct {
	// ID is the issue's numeric identifier in the tracker.
	ID int64 `json:"id"`

	// ProjectKey is the short human-assigned key of the owning project
	// (e.g. "PROJ"), or a synthesized PROJECT_<id> fallback when the
	// project is unknown.
	ProjectKey string `json:"projectKey"`

	// IssueKey is the human issue key (e.g. "PROJ-123").
	IssueKey string `json:"issueKey"`

	// IssueType is the issue type display name (Bug, Task, ...).
	IssueType string `json:"issueType"`

	// Summary is the issue's one-line summary text.
	Summary string `json:"summary"`

	// Status is the workflow status display name.
	Status string `json:"status"`

	// AssigneeName is the assignee's display name, empty when the
	// issue is unassigned. Never defaulted to a placeholder here.
	AssigneeName string `json:"assigneeName,omitempty"`

	// StartDate is the optional ISO start date as returned by the API.
	StartDate string `json:"startDate,omitempty"`

	// DueDate is the optional ISO due date as returned by the API.
	DueDate string `json:"dueDate,omitempty"`

	// Updated is the last-modified timestamp formatted for display
	// as "YYYY/MM/DD HH:mm" in local time.
	Updated string `json:"updated"`

	Urgency

	// ParentTask is set only when the issue declares a parent and the
	// parent was resolvable within the fetched issue set.
	ParentTask *ParentTask `json:"parentTask,omitempty"`
}
