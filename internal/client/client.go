// Package client is the HTTP implementation of the data-access contracts
// the planner UI depends on. One Client is scoped to one signed-in user;
// the bearer token it holds decides whose documents the server touches.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"planner/internal/auth"
	"planner/internal/board"
	"planner/internal/model"
	"planner/internal/repository"
)

type Client struct {
	baseURL string
	http    *http.Client
	auth    *auth.Provider

	mu    sync.RWMutex
	token string
}

var _ board.TaskRepository = (*Client)(nil)

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		auth:    auth.NewProvider(),
	}
}

// Auth exposes the provider so the UI can subscribe to sign-in changes.
func (c *Client) Auth() *auth.Provider {
	return c.auth
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPayload struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	EmailVerified bool   `json:"email_verified"`
}

type authPayload struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

func (c *Client) Register(ctx context.Context, email, name, password string) (*model.Principal, error) {
	var payload authPayload
	err := c.do(ctx, http.MethodPost, "/register", registerRequest{Email: email, Name: name, Password: password}, &payload)
	if err != nil {
		return nil, err
	}
	return c.signIn(payload)
}

func (c *Client) Login(ctx context.Context, email, password string) (*model.Principal, error) {
	var payload authPayload
	err := c.do(ctx, http.MethodPost, "/login", loginRequest{Email: email, Password: password}, &payload)
	if err != nil {
		return nil, err
	}
	return c.signIn(payload)
}

func (c *Client) signIn(payload authPayload) (*model.Principal, error) {
	id, err := uuid.Parse(payload.User.ID)
	if err != nil {
		return nil, fmt.Errorf("malformed user id in auth response: %w", err)
	}
	principal := &model.Principal{
		ID:            id,
		Email:         payload.User.Email,
		EmailVerified: payload.User.EmailVerified,
	}
	c.mu.Lock()
	c.token = payload.Token
	c.mu.Unlock()
	c.auth.Set(principal)
	return principal, nil
}

func (c *Client) Logout() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
	c.auth.Set(nil)
}

func (c *Client) Verify(ctx context.Context, token string) error {
	err := c.do(ctx, http.MethodPost, "/verify", map[string]string{"token": token}, nil)
	if err != nil {
		return err
	}
	// The session principal predates verification; refresh its flag.
	if current := c.auth.Current(); current != nil {
		verified := *current
		verified.EmailVerified = true
		c.auth.Set(&verified)
	}
	return nil
}

func (c *Client) ResendVerification(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/resend-verification", map[string]string{"email": email}, nil)
}

// wireTask tolerates partial documents: absent fields decode to nil and
// fall back to zero values instead of failing the whole list.
type wireTask struct {
	ID        string  `json:"id"`
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
	Order     *int    `json:"order"`
	DateKey   *string `json:"dateKey"`
}

func (w wireTask) toTask() model.Task {
	task := model.Task{DateKey: w.DateKey}
	task.ID, _ = uuid.Parse(w.ID)
	if w.Text != nil {
		task.Text = *w.Text
	}
	if w.Completed != nil {
		task.Completed = *w.Completed
	}
	if w.Order != nil {
		task.Order = *w.Order
	}
	return task
}

func toTasks(wire []wireTask) []model.Task {
	tasks := make([]model.Task, 0, len(wire))
	for _, w := range wire {
		tasks = append(tasks, w.toTask())
	}
	return repository.NormalizeTasks(tasks)
}

func (c *Client) ListUnassigned(ctx context.Context) ([]model.Task, error) {
	var wire []wireTask
	if err := c.do(ctx, http.MethodGet, "/tasks/unassigned", nil, &wire); err != nil {
		return nil, err
	}
	return toTasks(wire), nil
}

func (c *Client) ListForDate(ctx context.Context, dateKey string) ([]model.Task, error) {
	var wire []wireTask
	if err := c.do(ctx, http.MethodGet, "/tasks/date/"+dateKey, nil, &wire); err != nil {
		return nil, err
	}
	return toTasks(wire), nil
}

func (c *Client) Create(ctx context.Context, text string, order int) (*model.Task, error) {
	var wire wireTask
	body := map[string]any{"text": text, "order": order}
	if err := c.do(ctx, http.MethodPost, "/tasks", body, &wire); err != nil {
		return nil, err
	}
	task := wire.toTask()
	return &task, nil
}

// Update maps a patch onto the server's endpoints: a date key change goes
// through assign/unassign, the remaining fields through PATCH.
func (c *Client) Update(ctx context.Context, id uuid.UUID, patch model.TaskPatch) error {
	if patch.DateKeySet {
		if patch.DateKey != nil {
			body := map[string]string{"date_key": *patch.DateKey}
			if err := c.do(ctx, http.MethodPost, "/tasks/"+id.String()+"/assign", body, nil); err != nil {
				return err
			}
		} else {
			if err := c.do(ctx, http.MethodDelete, "/tasks/"+id.String()+"/assign", nil, nil); err != nil {
				return err
			}
		}
	}
	if patch.Completed == nil && patch.Order == nil {
		return nil
	}
	body := map[string]any{}
	if patch.Completed != nil {
		body["completed"] = *patch.Completed
	}
	if patch.Order != nil {
		body["order"] = *patch.Order
	}
	return c.do(ctx, http.MethodPatch, "/tasks/"+id.String(), body, nil)
}

func (c *Client) DeleteCompleted(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/completed-tasks", nil, nil)
}

type notePayload struct {
	ID        string    `json:"id"`
	DateKey   string    `json:"dateKey"`
	Text      string    `json:"text"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Note returns nil without error when no note exists for the day.
func (c *Client) Note(ctx context.Context, dateKey string) (*model.Note, error) {
	var payload notePayload
	err := c.do(ctx, http.MethodGet, "/notes/"+dateKey, nil, &payload)
	if err != nil {
		if err == repository.ErrNoteNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &model.Note{DateKey: payload.DateKey, Text: payload.Text, UpdatedAt: payload.UpdatedAt}, nil
}

// SaveNote persists the day's note; blank text deletes it server-side.
func (c *Client) SaveNote(ctx context.Context, dateKey, text string) error {
	return c.do(ctx, http.MethodPut, "/notes/"+dateKey, map[string]string{"text": text}, nil)
}

type noteKeysPayload struct {
	DateKeys []string `json:"dateKeys"`
}

// NoteKeys lists the date keys in [from, to] that carry a note.
func (c *Client) NoteKeys(ctx context.Context, from, to string) ([]string, error) {
	query := url.Values{"from": {from}, "to": {to}}
	var payload noteKeysPayload
	if err := c.do(ctx, http.MethodGet, "/notes?"+query.Encode(), nil, &payload); err != nil {
		return nil, err
	}
	return payload.DateKeys, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return statusError(resp, path)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func statusError(resp *http.Response, path string) error {
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return repository.ErrUnauthenticated
	case http.StatusForbidden:
		return repository.ErrUnverified
	case http.StatusNotFound:
		if strings.HasPrefix(path, "/notes/") {
			return repository.ErrNoteNotFound
		}
		return repository.ErrTaskNotFound
	}
	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: status %d", repository.ErrStoreUnavailable, resp.StatusCode)
	}
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		return fmt.Errorf("%s (status %d)", payload.Error, resp.StatusCode)
	}
	return fmt.Errorf("request failed with status %d", resp.StatusCode)
}
