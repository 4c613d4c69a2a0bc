package backlog

import (
	"context"
	"sync"
)

// activeStatusIDs fetches each project's status vocabulary in parallel
// and returns the deduplicated union of status ids whose names are not
// classified as completed. A single project's fetch failure is logged
// and folded into an empty contribution; it never fails the call. The
// error return exists for composability and is always nil today.
func (s *Service) activeStatusIDs(
	ctx context.Context,
	projectIDs []int64,
) ([]int64, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		seen = make(map[int64]bool)
		ids  []int64
	)

	for _, projectID := range projectIDs {
		wg.Add(1)
		go func(projectID int64) {
			defer wg.Done()

			statuses, err := s.api.ProjectStatuses(ctx, projectID)
			if err != nil {
				s.log.WithField("projectId", projectID).
					WithError(err).
					Warn("status fetch failed, project contributes no statuses")
				return
			}

			mu.Lock()
			defer mu.Unlock()
			for _, status := range statuses {
				if isCompletedStatus(status.Name) {
					continue
				}
				if !seen[status.ID] {
					seen[status.ID] = true
					ids = append(ids, status.ID)
				}
			}
		}(projectID)
	}

	wg.Wait()
	return ids, nil
}
