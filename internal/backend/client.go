package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Client provides access to the mock task-tracker REST API.
type Client struct {
	baseURL string
	httpCli *http.Client
}

// NewClient creates a backend client rooted at baseURL (for example
// https://host/api/v1). A nil httpCli falls back to http.DefaultClient.
func NewClient(baseURL string, httpCli *http.Client) *Client {
	if httpCli == nil {
		httpCli = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCli: httpCli,
	}
}

// ListClients fetches up to limit clients, optionally filtered by search.
func (c *Client) ListClients(ctx context.Context, search string, limit int) (ClientList, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if search != "" {
		q.Set("search", search)
	}

	var list ClientList
	raw, err := c.get(ctx, "/clients", q, &list)
	if err != nil {
		return ClientList{}, fmt.Errorf("listing clients: %w", err)
	}
	list.Raw = raw
	return list, nil
}

// ListTasksForClient fetches up to limit tasks belonging to clientID.
func (c *Client) ListTasksForClient(ctx context.Context, clientID ID, limit int) (TaskList, error) {
	q := url.Values{}
	q.Set("client_id", clientID.String())
	q.Set("limit", strconv.Itoa(limit))

	var list TaskList
	raw, err := c.get(ctx, "/tasks", q, &list)
	if err != nil {
		return TaskList{}, fmt.Errorf("listing tasks for client %s: %w", clientID, err)
	}
	list.Raw = raw
	return list, nil
}

// ListTaskComments fetches every comment on taskID.
func (c *Client) ListTaskComments(ctx context.Context, taskID ID) (CommentList, error) {
	path := "/tasks/" + url.PathEscape(taskID.String()) + "/comments"

	var list CommentList
	raw, err := c.get(ctx, path, nil, &list)
	if err != nil {
		return CommentList{}, fmt.Errorf("listing comments for task %s: %w", taskID, err)
	}
	list.Raw = raw
	return list, nil
}

// get issues a GET to path, decodes the JSON body into dst and returns the raw body.
func (c *Client) get(ctx context.Context, path string, query url.Values, dst any) (json.RawMessage, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("backend error (status %d): %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	return json.RawMessage(body), nil
}
