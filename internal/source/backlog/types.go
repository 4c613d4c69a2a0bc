package backlog

// Project represents a project from GET /api/v2/projects.
type Project struct {
	ID         int64  `json:"id"`
	ProjectKey string `json:"projectKey"`
	Name       string `json:"name"`
}

// Status represents one workflow status from
// GET /api/v2/projects/:id/statuses. IDs are unique within a project.
type Status struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// IssueType represents the type of an issue (Bug, Task, ...).
type IssueType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// User represents a space member from GET /api/v2/users.
type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Issue represents a single issue from GET /api/v2/issues.
type Issue struct {
	ID            int64     `json:"id"`
	ProjectID     int64     `json:"projectId"`
	IssueKey      string    `json:"issueKey"`
	IssueType     IssueType `json:"issueType"`
	Summary       string    `json:"summary"`
	Status        Status    `json:"status"`
	Assignee      *User     `json:"assignee"`
	ParentIssueID *int64    `json:"parentIssueId"`
	StartDate     string    `json:"startDate,omitempty"`
	DueDate       string    `json:"dueDate,omitempty"`
	Updated       string    `json:"updated"`
}

// ErrorResponse is the tracker's standard error payload.
type ErrorResponse struct {
	Errors []struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"errors"`
}
