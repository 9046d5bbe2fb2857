package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tasknest/tasknest-backend/internal/dto"
)

// DefaultBaseURL is where a locally started API listens
const DefaultBaseURL = "http://localhost:3000/api"

// APIError is a non-2xx response from the API
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.Status, e.Message)
}

// IsUnauthorized reports whether err is a 401 from the API
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// Client talks to the todo REST API
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Token      string
}

// NewClient creates a new API client
func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// do sends body as JSON and decodes a successful response into out
func (c *Client) do(ctx context.Context, method, endpoint string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var e dto.ErrorResponse
		if json.Unmarshal(respBody, &e) != nil || e.Error == "" {
			e.Error = "Request failed"
		}
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Register creates an account
func (c *Client) Register(ctx context.Context, username, password string) (*dto.RegisterResponse, error) {
	var out dto.RegisterResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", dto.RegisterRequest{Username: username, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a token and keeps it on the client
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var out dto.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", dto.LoginRequest{Username: username, Password: password}, &out); err != nil {
		return "", err
	}
	c.Token = out.Token
	return out.Token, nil
}

// TodoQuery selects a page of todos. Zero values are left out of the query.
type TodoQuery struct {
	Page       int
	Limit      int
	Completed  *bool
	Search     string
	CategoryID int64
}

// Values encodes q as URL query parameters
func (q TodoQuery) Values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Completed != nil {
		v.Set("completed", strconv.FormatBool(*q.Completed))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.CategoryID > 0 {
		v.Set("categoryId", strconv.FormatInt(q.CategoryID, 10))
	}
	return v
}

// ListTodos returns one page of the caller's todos
func (c *Client) ListTodos(ctx context.Context, q TodoQuery) (*dto.TodoListResponse, error) {
	endpoint := "/todos"
	if encoded := q.Values().Encode(); encoded != "" {
		endpoint += "?" + encoded
	}
	var out dto.TodoListResponse
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTodo fetches a single todo
func (c *Client) GetTodo(ctx context.Context, id int64) (*dto.TodoResponse, error) {
	var out dto.TodoResponse
	if err := c.do(ctx, http.MethodGet, todoPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateTodo creates a todo
func (c *Client) CreateTodo(ctx context.Context, req dto.CreateTodoRequest) (*dto.TodoResponse, error) {
	var out dto.TodoResponse
	if err := c.do(ctx, http.MethodPost, "/todos", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTodo sends the set fields of req
func (c *Client) UpdateTodo(ctx context.Context, id int64, req dto.UpdateTodoRequest) (*dto.TodoResponse, error) {
	var out dto.TodoResponse
	if err := c.do(ctx, http.MethodPut, todoPath(id), updatePayload(req), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTodo deletes a todo and returns it
func (c *Client) DeleteTodo(ctx context.Context, id int64) (*dto.TodoResponse, error) {
	var out dto.TodoResponse
	if err := c.do(ctx, http.MethodDelete, todoPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddCategory links a category to a todo
func (c *Client) AddCategory(ctx context.Context, todoID, categoryID int64) (*dto.TodoCategoryResponse, error) {
	var out dto.TodoCategoryResponse
	req := dto.LinkCategoryRequest{CategoryID: dto.NumericID(categoryID)}
	if err := c.do(ctx, http.MethodPost, todoPath(todoID)+"/categories", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveCategory unlinks a category from a todo
func (c *Client) RemoveCategory(ctx context.Context, todoID, categoryID int64) error {
	endpoint := fmt.Sprintf("%s/categories/%d", todoPath(todoID), categoryID)
	return c.do(ctx, http.MethodDelete, endpoint, nil, nil)
}

// TodoCategories lists the categories linked to a todo
func (c *Client) TodoCategories(ctx context.Context, todoID int64) ([]dto.CategoryResponse, error) {
	var out []dto.CategoryResponse
	if err := c.do(ctx, http.MethodGet, todoPath(todoID)+"/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListCategories lists the caller's categories
func (c *Client) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	var out []dto.CategoryResponse
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCategory fetches a single category
func (c *Client) GetCategory(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	var out dto.CategoryResponse
	if err := c.do(ctx, http.MethodGet, categoryPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCategory creates a category
func (c *Client) CreateCategory(ctx context.Context, name string) (*dto.CategoryResponse, error) {
	var out dto.CategoryResponse
	if err := c.do(ctx, http.MethodPost, "/categories", dto.CategoryRequest{Name: name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCategory renames a category
func (c *Client) UpdateCategory(ctx context.Context, id int64, name string) (*dto.CategoryResponse, error) {
	var out dto.CategoryResponse
	if err := c.do(ctx, http.MethodPut, categoryPath(id), dto.CategoryRequest{Name: name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCategory deletes a category and returns it
func (c *Client) DeleteCategory(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	var out dto.CategoryResponse
	if err := c.do(ctx, http.MethodDelete, categoryPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func todoPath(id int64) string     { return "/todos/" + strconv.FormatInt(id, 10) }
func categoryPath(id int64) string { return "/categories/" + strconv.FormatInt(id, 10) }

// updatePayload keeps only the fields the caller set, so omitted fields stay untouched on the server
func updatePayload(req dto.UpdateTodoRequest) map[string]interface{} {
	out := map[string]interface{}{}
	if req.Title.Set {
		out["title"] = req.Title
	}
	if req.Completed.Set {
		out["completed"] = req.Completed
	}
	if req.Description.Set {
		out["description"] = req.Description
	}
	if req.DueDate.Set {
		out["dueDate"] = req.DueDate
	}
	if req.Priority.Set {
		out["priority"] = req.Priority
	}
	return out
}
