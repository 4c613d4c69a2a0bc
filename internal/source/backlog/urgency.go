package backlog

import (
	"time"

	"github.com/nhle/backlog-dashboard/internal/model"
)

// referenceZone is the fixed timezone for due-date comparisons, so
// the overdue classification is deterministic regardless of where the
// process runs. Display formatting elsewhere still uses local time.
var referenceZone = loadReferenceZone()

func loadReferenceZone() *time.Location {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		return time.FixedZone("JST", 9*60*60)
	}
	return loc
}

// calculateUrgency classifies a due date against today's date.
func calculateUrgency(dueDate string) model.Urgency {
	return urgencyAt(dueDate, time.Now())
}

// urgencyAt is calculateUrgency with an injectable clock. Dates are
// compared midnight-to-midnight in the reference zone; any
// time-of-day or timezone suffix on the due date is discarded.
func urgencyAt(dueDate string, now time.Time) model.Urgency {
	if dueDate == "" {
		return model.Urgency{}
	}

	due, err := parseDateOnly(dueDate)
	if err != nil {
		return model.Urgency{}
	}

	ref := now.In(referenceZone)
	today := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, referenceZone)
	tomorrow := today.AddDate(0, 0, 1)

	switch {
	case due.Equal(today):
		return model.Urgency{}
	case due.Equal(tomorrow):
		return model.Urgency{IsDueTomorrow: true}
	}

	diff := int(today.Sub(due).Hours() / 24)
	if diff > 0 {
		return model.Urgency{IsOverdue: true, OverdueDays: diff}
	}

	// Anything beyond tomorrow is not urgent yet.
	return model.Urgency{}
}

// parseDateOnly truncates an ISO date or datetime string to its
// YYYY-MM-DD component and returns it as midnight in the reference
// zone.
func parseDateOnly(s string) (time.Time, error) {
	if len(s) > 10 {
		s = s[:10]
	}
	return time.ParseInLocation("2006-01-02", s, referenceZone)
}
