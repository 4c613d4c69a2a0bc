package backlog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client is a thin HTTP client for the Backlog REST API v2. It handles
// apiKey query-string authentication and JSON decoding. Every request
// carries a bounded timeout so a hung remote call cannot hang a
// pipeline run indefinitely.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new API client. The baseURL should be the root
// URL of the space (e.g. https://example.backlog.com).
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// IssueQuery holds the query parameters for listing issues.
type IssueQuery struct {
	// Count caps the number of returned issues.
	Count int

	// ProjectIDs restricts results to these projects when non-empty.
	ProjectIDs []int64

	// StatusIDs restricts results to these workflow statuses when
	// non-empty.
	StatusIDs []int64

	// AssigneeIDs restricts results to these assignees when non-empty.
	// Values are sent to the API verbatim.
	AssigneeIDs []string
}

// Projects fetches all projects visible to the credential.
func (c *Client) Projects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.get(ctx, "/api/v2/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// ProjectStatuses fetches the status vocabulary of one project.
func (c *Client) ProjectStatuses(ctx context.Context, projectID int64) ([]Status, error) {
	path := fmt.Sprintf("/api/v2/projects/%d/statuses", projectID)
	var statuses []Status
	if err := c.get(ctx, path, nil, &statuses); err != nil {
		return nil, err
	}
	return statuses, nil
}

// Issues fetches issues matching the query, in the order returned by
// the remote API.
func (c *Client) Issues(ctx context.Context, q IssueQuery) ([]Issue, error) {
	params := url.Values{}
	if q.Count > 0 {
		params.Set("count", strconv.Itoa(q.Count))
	}
	for _, id := range q.ProjectIDs {
		params.Add("projectId[]", strconv.FormatInt(id, 10))
	}
	for _, id := range q.StatusIDs {
		params.Add("statusId[]", strconv.FormatInt(id, 10))
	}
	for _, id := range q.AssigneeIDs {
		params.Add("assigneeId[]", id)
	}

	var issues []Issue
	if err := c.get(ctx, "/api/v2/issues", params, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// Users fetches the space member list.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.get(ctx, "/api/v2/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// get performs one HTTP GET against path, appending the apiKey
// credential, and decodes the JSON response into result.
func (c *Client) get(
	ctx context.Context,
	path string,
	params url.Values,
	result interface{},
) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("apiKey", c.apiKey)

	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body from %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr ErrorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && len(apiErr.Errors) > 0 {
			messages := make([]string, 0, len(apiErr.Errors))
			for _, e := range apiErr.Errors {
				messages = append(messages, e.Message)
			}
			return fmt.Errorf(
				"backlog API error (%d) on GET %s: %s",
				resp.StatusCode, path, strings.Join(messages, "; "),
			)
		}
		return fmt.Errorf(
			"unexpected status %d on GET %s", resp.StatusCode, path,
		)
	}

	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("unmarshaling response from GET %s: %w", path, err)
	}

	return nil
}
