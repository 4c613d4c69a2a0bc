package backlog

import "strings"

// completedPatterns are the substrings that mark a status name as
// "done". Done-state names vary across installations and locales, so
// the check is a case-insensitive containment test rather than an
// exact match. That makes "Closed-Won" count as closed, and also lets
// a name like "Uncompleted" match "complete" — a known imprecision
// carried over from the source data set.
var completedPatterns = []string{
	"完了",
	"完成",
	"done",
	"closed",
	"close",
	"complete",
	"finished",
}

// isCompletedStatus reports whether a status name represents finished
// work. Pure and total: any input yields an answer.
func isCompletedStatus(name string) bool {
	lower := strings.ToLower(name)
	for _, pattern := range completedPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}
