// Package api is the HTTP client for the taskdeck backend. It owns request
// serialization, bearer-token attachment and error classification; callers
// always get either parsed data or an *Error, never a panic or a retry.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"taskdeck-cli/internal/model"
)

// TokenSource supplies the current bearer token, or "" when anonymous.
// The session store satisfies this; tests use a literal.
type TokenSource interface {
	Token(ctx context.Context) string
}

// StaticToken is a fixed TokenSource, mainly for tests.
type StaticToken string

func (t StaticToken) Token(context.Context) string { return string(t) }

type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
}

type Config struct {
	// BaseURL is the backend root, e.g. "http://localhost:8000".
	BaseURL string
	// Tokens supplies the bearer token. Nil means always anonymous.
	Tokens TokenSource
	// HTTPClient overrides the default client (30s timeout).
	HTTPClient *http.Client
}

func New(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		tokens:     cfg.Tokens,
		httpClient: hc,
	}
}

// Do issues one authenticated JSON request. A non-nil body is serialized as
// JSON. The returned bytes are the raw response body for 2xx responses
// (possibly empty, e.g. 204 from DELETE).
func (c *Client) Do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var rd io.Reader
	contentType := ""
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Detail: "encode request: " + err.Error()}
		}
		rd = bytes.NewReader(b)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, rd, contentType)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, &Error{Detail: "build request: " + err.Error()}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	// Anonymous requests go out without the header; the server, not the
	// client, decides whether the operation needs auth.
	if c.tokens != nil {
		if tok := c.tokens.Token(ctx); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, connectionError()
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, connectionError()
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, classify(res.StatusCode, raw)
	}
	return raw, nil
}

func classify(status int, body []byte) *Error {
	detail := defaultDetail(status)
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && strings.TrimSpace(payload.Detail) != "" {
		detail = payload.Detail
	}
	return &Error{Status: status, Detail: detail}
}

func decodeInto[T any](raw json.RawMessage) (T, error) {
	var v T
	if len(bytes.TrimSpace(raw)) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, &Error{Detail: "decode response: " + err.Error()}
	}
	return v, nil
}

// Login is the one endpoint the backend wants form-encoded rather than JSON.
// On success the caller gets the token plus the identity it belongs to.
func (c *Client) Login(ctx context.Context, username, password string) (model.LoginResponse, error) {
	form := url.Values{
		"username": {username},
		"password": {password},
	}
	raw, err := c.do(ctx, http.MethodPost, "/api/login",
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	if err != nil {
		return model.LoginResponse{}, err
	}
	return decodeInto[model.LoginResponse](raw)
}

func (c *Client) Register(ctx context.Context, u model.NewUser) (model.User, error) {
	raw, err := c.Do(ctx, http.MethodPost, "/api/register", u)
	if err != nil {
		return model.User{}, err
	}
	return decodeInto[model.User](raw)
}

func (c *Client) Projects(ctx context.Context) ([]model.Project, error) {
	raw, err := c.Do(ctx, http.MethodGet, "/api/projects", nil)
	if err != nil {
		return nil, err
	}
	return decodeInto[[]model.Project](raw)
}

func (c *Client) Project(ctx context.Context, id string) (model.Project, error) {
	raw, err := c.Do(ctx, http.MethodGet, "/api/projects/"+url.PathEscape(id), nil)
	if err != nil {
		return model.Project{}, err
	}
	return decodeInto[model.Project](raw)
}

func (c *Client) CreateProject(ctx context.Context, p model.NewProject) (model.Project, error) {
	raw, err := c.Do(ctx, http.MethodPost, "/api/projects", p)
	if err != nil {
		return model.Project{}, err
	}
	return decodeInto[model.Project](raw)
}

func (c *Client) UpdateProject(ctx context.Context, id string, p model.NewProject) (model.Project, error) {
	raw, err := c.Do(ctx, http.MethodPut, "/api/projects/"+url.PathEscape(id), p)
	if err != nil {
		return model.Project{}, err
	}
	return decodeInto[model.Project](raw)
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	_, err := c.Do(ctx, http.MethodDelete, "/api/projects/"+url.PathEscape(id), nil)
	return err
}

// Tasks fetches all tasks, or only one project's tasks when projectID is
// non-empty.
func (c *Client) Tasks(ctx context.Context, projectID string) ([]model.Task, error) {
	path := "/api/tasks"
	if projectID != "" {
		path += "?project_id=" + url.QueryEscape(projectID)
	}
	raw, err := c.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decodeInto[[]model.Task](raw)
}

func (c *Client) Task(ctx context.Context, id string) (model.Task, error) {
	raw, err := c.Do(ctx, http.MethodGet, "/api/tasks/"+url.PathEscape(id), nil)
	if err != nil {
		return model.Task{}, err
	}
	return decodeInto[model.Task](raw)
}

func (c *Client) CreateTask(ctx context.Context, t model.NewTask) (model.Task, error) {
	raw, err := c.Do(ctx, http.MethodPost, "/api/tasks", t)
	if err != nil {
		return model.Task{}, err
	}
	return decodeInto[model.Task](raw)
}

func (c *Client) UpdateTask(ctx context.Context, id string, t model.NewTask) (model.Task, error) {
	raw, err := c.Do(ctx, http.MethodPut, "/api/tasks/"+url.PathEscape(id), t)
	if err != nil {
		return model.Task{}, err
	}
	return decodeInto[model.Task](raw)
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	_, err := c.Do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(id), nil)
	return err
}

func (c *Client) Users(ctx context.Context) ([]model.User, error) {
	raw, err := c.Do(ctx, http.MethodGet, "/api/users", nil)
	if err != nil {
		return nil, err
	}
	return decodeInto[[]model.User](raw)
}

func (c *Client) Me(ctx context.Context) (model.User, error) {
	raw, err := c.Do(ctx, http.MethodGet, "/api/users/me", nil)
	if err != nil {
		return model.User{}, err
	}
	return decodeInto[model.User](raw)
}

func (c *Client) User(ctx context.Context, id string) (model.User, error) {
	raw, err := c.Do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(id), nil)
	if err != nil {
		return model.User{}, err
	}
	return decodeInto[model.User](raw)
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	_, err := c.Do(ctx, http.MethodDelete, "/api/users/"+url.PathEscape(id), nil)
	return err
}
