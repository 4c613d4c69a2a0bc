package backlog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nhle/backlog-dashboard/internal/model"
)

// API is the set of remote calls the aggregation pipeline depends on.
// The real HTTP Client satisfies it in production; tests substitute a
// stub.
type API interface {
	// Projects fetches all visible projects.
	Projects(ctx context.Context) ([]Project, error)

	// ProjectStatuses fetches one project's status vocabulary.
	ProjectStatuses(ctx context.Context, projectID int64) ([]Status, error)

	// Issues fetches issues matching the query, in API order.
	Issues(ctx context.Context, q IssueQuery) ([]Issue, error)

	// Users fetches the space member list.
	Users(ctx context.Context) ([]User, error)
}

var _ API = (*Client)(nil)

// ScopeError indicates that none of the configured project keys
// matched a known project.
type ScopeError struct {
	Keys []string
}

func (e *ScopeError) Error() string {
	return fmt.Sprintf(
		"no projects matched configured project keys: %s",
		strings.Join(e.Keys, ", "),
	)
}

// IsScopeError reports whether err (or any error in its chain) is a
// ScopeError.
func IsScopeError(err error) bool {
	var scopeErr *ScopeError
	return errors.As(err, &scopeErr)
}

// Service is the aggregation pipeline: one FetchTasks call performs a
// single stateless read-and-classify pass over the remote tracker.
// Nothing is cached or shared between calls.
type Service struct {
	api API
	cfg *model.Config
	log *logrus.Logger
}

// NewService creates the pipeline over an API implementation. The
// configuration is validated up front; a missing credential or space
// URL fails here rather than on first use.
func NewService(api API, cfg *model.Config, log *logrus.Logger) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.New()
	}
	return &Service{api: api, cfg: cfg, log: log}, nil
}

// FetchTasks runs one pipeline pass: fetch projects, scope and fetch
// issues, and transform every issue into a Task. The returned order is
// the order the remote API returned the issues in. The first failure
// of a load-bearing fetch aborts the run and propagates unchanged;
// per-project status-fetch failures are absorbed by the resolver.
func (s *Service) FetchTasks(ctx context.Context) ([]model.Task, error) {
	projects, err := s.api.Projects(ctx)
	if err != nil {
		return nil, err
	}

	keyByID := make(map[int64]string, len(projects))
	for _, p := range projects {
		keyByID[p.ID] = p.ProjectKey
	}

	q := IssueQuery{Count: s.cfg.IssueCount}

	if len(s.cfg.ProjectKeys) > 0 {
		projectIDs := matchProjectIDs(projects, s.cfg.ProjectKeys)
		if len(projectIDs) == 0 {
			return nil, &ScopeError{Keys: s.cfg.ProjectKeys}
		}

		statusIDs, err := s.activeStatusIDs(ctx, projectIDs)
		if err != nil {
			return nil, err
		}

		q.ProjectIDs = projectIDs
		q.StatusIDs = statusIDs
	}

	// Member keys are opaque assignee ids, passed through verbatim.
	if len(s.cfg.MemberKeys) > 0 {
		q.AssigneeIDs = s.cfg.MemberKeys
	}

	issues, err := s.api.Issues(ctx, q)
	if err != nil {
		return nil, err
	}

	tasks := make([]model.Task, 0, len(issues))
	for _, issue := range issues {
		projectKey, ok := keyByID[issue.ProjectID]
		if !ok {
			projectKey = fmt.Sprintf("PROJECT_%d", issue.ProjectID)
		}
		tasks = append(tasks, issueToTask(issue, projectKey, issues))
	}

	return tasks, nil
}

// Users exposes the space member list for the dashboard's assignee
// filter. It plays no part in issue scoping.
func (s *Service) Users(ctx context.Context) ([]User, error) {
	return s.api.Users(ctx)
}

// matchProjectIDs resolves configured project keys to numeric ids.
// Unknown keys are skipped; the caller decides whether an empty match
// is an error.
func matchProjectIDs(projects []Project, keys []string) []int64 {
	wanted := make(map[string]bool, len(keys))
	for _, k := range keys {
		wanted[k] = true
	}

	var ids []int64
	for _, p := range projects {
		if wanted[p.ProjectKey] {
			ids = append(ids, p.ID)
		}
	}
	return ids
}
