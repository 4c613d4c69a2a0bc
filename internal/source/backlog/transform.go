package backlog

import (
	"time"

	"github.com/nhle/backlog-dashboard/internal/model"
)

// updatedDisplayLayout is the display form of the last-updated
// timestamp, rendered in the process's local time. This is a display
// concern only; urgency comparisons never use it.
const updatedDisplayLayout = "2006/01/02 15:04"

// issueToTask converts one raw issue into the canonical Task record.
// allIssues, when supplied, is scanned to resolve the issue's parent
// reference; pass nil to skip parent resolution. Pure given its
// inputs.
func issueToTask(issue Issue, projectKey string, allIssues []Issue) model.Task {
	assigneeName := ""
	if issue.Assignee != nil {
		assigneeName = issue.Assignee.Name
	}

	return model.Task{
		ID:           issue.ID,
		ProjectKey:   projectKey,
		IssueKey:     issue.IssueKey,
		IssueType:    issue.IssueType.Name,
		Summary:      issue.Summary,
		Status:       issue.Status.Name,
		AssigneeName: assigneeName,
		StartDate:    issue.StartDate,
		DueDate:      issue.DueDate,
		Updated:      formatUpdated(issue.Updated),
		Urgency:      calculateUrgency(issue.DueDate),
		ParentTask:   resolveParent(issue, allIssues),
	}
}

// resolveParent looks the issue's declared parent up in allIssues.
// Returns nil when the issue has no parent or the parent is not in
// the supplied set. A linear scan is fine at dashboard list sizes.
func resolveParent(issue Issue, allIssues []Issue) *model.ParentTask {
	if issue.ParentIssueID == nil {
		return nil
	}
	for _, candidate := range allIssues {
		if candidate.ID == *issue.ParentIssueID {
			return &model.ParentTask{
				ID:       candidate.ID,
				IssueKey: candidate.IssueKey,
				Summary:  candidate.Summary,
			}
		}
	}
	return nil
}

// formatUpdated renders an ISO timestamp as "YYYY/MM/DD HH:mm" in
// local time. Unparseable input is passed through unchanged rather
// than dropped.
func formatUpdated(s string) string {
	if s == "" {
		return ""
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05-0700",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Local().Format(updatedDisplayLayout)
		}
	}
	return s
}
