// internal/backend/client.go
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Session carries the caller's backend credentials. It is passed to every
// authenticated call instead of being looked up from shared state.
type Session struct {
	Token  string
	UserID string
}

func (s Session) authorize(req *http.Request) {
	if s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}
}

// Client talks to the store's REST backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Entry
}

func NewClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.WithField("component", "backend-client"),
	}
}

// BaseURL is the API base, e.g. http://localhost:5000/api
func (c *Client) BaseURL() string {
	return c.baseURL
}

type errorBody struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func (c *Client) doJSON(ctx context.Context, session Session, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &FetchError{Method: method, Path: path, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	session.authorize(req)

	return c.send(req, path, out)
}

func (c *Client) send(req *http.Request, path string, out interface{}) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{Method: req.Method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &FetchError{Method: req.Method, Path: path, StatusCode: resp.StatusCode, Err: err}
	}

	c.logger.WithFields(logrus.Fields{
		"method":   req.Method,
		"path":     path,
		"status":   resp.StatusCode,
		"duration": time.Since(start).Milliseconds(),
	}).Debug("Backend request completed")

	if resp.StatusCode >= http.StatusBadRequest {
		return statusError(req.Method, path, resp.StatusCode, raw)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &FetchError{Method: req.Method, Path: path, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func statusError(method, path string, status int, raw []byte) error {
	var body errorBody
	_ = json.Unmarshal(raw, &body)
	message := body.Message
	if message == "" {
		message = http.StatusText(status)
	}

	switch status {
	case http.StatusNotFound:
		resource, id := splitResource(path)
		return &NotFoundError{Resource: resource, ID: id}
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return &ValidationError{Message: message, Fields: body.Errors}
	case http.StatusUnauthorized, http.StatusForbidden:
		return &AuthError{StatusCode: status, Message: message}
	default:
		return &FetchError{Method: method, Path: path, StatusCode: status, Err: errors.New(message)}
	}
}

var singular = map[string]string{
	"products":   "product",
	"categories": "category",
	"orders":     "order",
	"users":      "user",
}

// splitResource turns "/orders/abc/status" into ("order", "abc").
func splitResource(path string) (string, string) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	resource, ok := singular[parts[0]]
	if !ok {
		resource = parts[0]
	}
	if len(parts) >= 3 && parts[1] == "user" {
		return "user", parts[2]
	}
	if len(parts) >= 2 {
		return resource, parts[1]
	}
	return resource, ""
}
