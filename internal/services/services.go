// Package services is a Go client for the catalog and task list HTTP APIs.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"record-service/internal/models"
	"record-service/internal/resilience"
)

// APIError is a non-2xx response.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Status, e.Detail)
}

// IsNotFound reports whether err is a 404 from the service.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

type Client struct {
	baseURL    string
	client     *http.Client
	attempts   int
	retryDelay time.Duration
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		attempts:   3,
		retryDelay: 500 * time.Millisecond,
	}
}

// fetchJSON issues a GET, retrying transport errors and 5xx responses.
func (c *Client) fetchJSON(ctx context.Context, path string, target any) error {
	return resilience.Retry(ctx, c.attempts, c.retryDelay, func() error {
		err := c.do(ctx, http.MethodGet, path, nil, target)
		if apiErr, ok := err.(*APIError); ok && apiErr.Status < 500 {
			return resilience.Permanent(err)
		}
		return err
	})
}

// do sends a single request. Writes are never retried: creating twice is not
// idempotent.
func (c *Client) do(ctx context.Context, method, path string, body, target any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var detail struct {
			Detail string `json:"detail"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&detail)
		return &APIError{Status: resp.StatusCode, Detail: detail.Detail}
	}

	return json.NewDecoder(resp.Body).Decode(target)
}

func (c *Client) CreateUser(ctx context.Context, in models.UserCreate) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/users/", in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := c.fetchJSON(ctx, fmt.Sprintf("/users/%d", id), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) CreateProduct(ctx context.Context, in models.ProductCreate) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodPost, "/products/", in, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := c.fetchJSON(ctx, fmt.Sprintf("/products/%d", id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) CreateOrder(ctx context.Context, in models.OrderCreate) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/orders/", in, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	if err := c.fetchJSON(ctx, fmt.Sprintf("/orders/%d", id), &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.fetchJSON(ctx, "/tasks", &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) GetTask(ctx context.Context, pos int) (*models.Task, error) {
	var task models.Task
	if err := c.fetchJSON(ctx, fmt.Sprintf("/tasks/%d", pos), &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) CreateTask(ctx context.Context, in models.Task) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", in, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) UpdateTask(ctx context.Context, pos int, in models.Task) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", pos), in, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) DeleteTask(ctx context.Context, pos int) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", pos), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}
