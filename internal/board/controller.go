// Package board owns the two in-memory task lists the UI renders from:
// the unassigned list and the list for the currently selected day. It is
// the only component that mutates them; everything else goes through its
// operations.
package board

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"planner/internal/model"
)

// TaskRepository is the data-access contract the controller depends on.
// Implementations are scoped to one user. Results are normalized: order
// defaults applied, stable-sorted ascending by order.
type TaskRepository interface {
	ListUnassigned(ctx context.Context) ([]model.Task, error)
	ListForDate(ctx context.Context, dateKey string) ([]model.Task, error)
	Create(ctx context.Context, text string, order int) (*model.Task, error)
	Update(ctx context.Context, id uuid.UUID, patch model.TaskPatch) error
	DeleteCompleted(ctx context.Context) error
}

// Scope names one of the two task collections.
type Scope int

const (
	ScopeUnassigned Scope = iota
	ScopeDay
)

type Controller struct {
	repo TaskRepository
	logf func(format string, args ...any)

	mu          sync.Mutex
	unassigned  []model.Task
	day         []model.Task
	selectedKey string
	closed      bool
}

func New(repo TaskRepository, selectedKey string) *Controller {
	return &Controller{
		repo:        repo,
		selectedKey: selectedKey,
		logf:        log.Printf,
	}
}

// Close suppresses state commits from loads that resolve afterwards.
// It does not abort in-flight requests.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *Controller) SelectedDateKey() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedKey
}

// Unassigned returns a snapshot of the unassigned list.
func (c *Controller) Unassigned() []model.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.Task(nil), c.unassigned...)
}

// DayTasks returns a snapshot of the selected day's list.
func (c *Controller) DayTasks() []model.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.Task(nil), c.day...)
}

// FindTask looks a task up by id, unassigned list first, then the day
// list. Returns a copy, or nil when the id is in neither list.
func (c *Controller) FindTask(id uuid.UUID) *model.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.unassigned {
		if c.unassigned[i].ID == id {
			task := c.unassigned[i]
			return &task
		}
	}
	for i := range c.day {
		if c.day[i].ID == id {
			task := c.day[i]
			return &task
		}
	}
	return nil
}

// LoadUnassigned replaces the unassigned list wholesale with the remote
// state. Read failures are logged and leave the prior list untouched.
func (c *Controller) LoadUnassigned(ctx context.Context) {
	tasks, err := c.repo.ListUnassigned(ctx)
	if err != nil {
		c.logf("load unassigned tasks: %v", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.unassigned = tasks
}

// LoadForSelectedDate replaces the day list with the remote state for
// the date selected at call time. The result commits only if that date
// is still selected when the response arrives; a stale response is
// silently discarded so a slow load for a previous day can never
// overwrite the current one.
func (c *Controller) LoadForSelectedDate(ctx context.Context) {
	key := c.SelectedDateKey()

	tasks, err := c.repo.ListForDate(ctx, key)
	if err != nil {
		c.logf("load tasks for %s: %v", key, err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || key != c.selectedKey {
		return
	}
	c.day = tasks
}

// SetSelectedDate switches the selected day and reloads its list.
func (c *Controller) SetSelectedDate(ctx context.Context, key string) {
	c.mu.Lock()
	if key == c.selectedKey {
		c.mu.Unlock()
		return
	}
	c.selectedKey = key
	c.mu.Unlock()

	c.LoadForSelectedDate(ctx)
}

// CreateTask creates an unassigned task from text. Blank or
// whitespace-only text is a silent no-op. Returns the created task,
// or nil when nothing was created.
func (c *Controller) CreateTask(ctx context.Context, text string) *model.Task {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	c.mu.Lock()
	order := len(c.unassigned)
	c.mu.Unlock()

	task, err := c.repo.Create(ctx, text, order)
	if err != nil {
		c.logf("create task: %v", err)
		return nil
	}

	c.mu.Lock()
	if !c.closed {
		c.unassigned = append(c.unassigned, *task)
	}
	c.mu.Unlock()

	return task
}

// ToggleCompleted flips completion in whichever list holds the id and
// writes the new value through. The local flip is optimistic: a failed
// write is logged, not rolled back, and stands until the next reload.
func (c *Controller) ToggleCompleted(ctx context.Context, id uuid.UUID) {
	c.mu.Lock()
	task := c.findLocked(id)
	if task == nil {
		c.mu.Unlock()
		return
	}
	task.Completed = !task.Completed
	completed := task.Completed
	c.mu.Unlock()

	if err := c.repo.Update(ctx, id, model.TaskPatch{Completed: &completed}); err != nil {
		c.logf("toggle task %s: %v", id, err)
	}
}

func (c *Controller) findLocked(id uuid.UUID) *model.Task {
	for i := range c.unassigned {
		if c.unassigned[i].ID == id {
			return &c.unassigned[i]
		}
	}
	for i := range c.day {
		if c.day[i].ID == id {
			return &c.day[i]
		}
	}
	return nil
}

// DeleteCompletedInScope clears every completed task from the given
// collection: day tasks are unassigned (one concurrent update per task),
// unassigned tasks are bulk-deleted. The local list drops them either
// way; write failures are logged and corrected by the next reload.
func (c *Controller) DeleteCompletedInScope(ctx context.Context, scope Scope) {
	c.mu.Lock()
	source := c.unassigned
	if scope == ScopeDay {
		source = c.day
	}
	var ids []uuid.UUID
	for _, task := range source {
		if task.Completed {
			ids = append(ids, task.ID)
		}
	}
	c.mu.Unlock()

	if len(ids) == 0 {
		return
	}

	switch scope {
	case ScopeDay:
		g, gctx := errgroup.WithContext(ctx)
		for _, id := range ids {
			id := id
			g.Go(func() error {
				return c.repo.Update(gctx, id, model.TaskPatch{DateKeySet: true})
			})
		}
		if err := g.Wait(); err != nil {
			c.logf("unassign completed tasks: %v", err)
		}
	case ScopeUnassigned:
		if err := c.repo.DeleteCompleted(ctx); err != nil {
			c.logf("delete completed tasks: %v", err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if scope == ScopeDay {
		c.day = dropCompleted(c.day)
	} else {
		c.unassigned = dropCompleted(c.unassigned)
	}
}

func dropCompleted(tasks []model.Task) []model.Task {
	kept := tasks[:0:0]
	for _, task := range tasks {
		if !task.Completed {
			kept = append(kept, task)
		}
	}
	return kept
}

// AssignToDate moves the task onto the given day, then reloads both
// lists to converge on server state. No optimistic splice happens here:
// correctness of the move is reload-driven. The write error propagates
// to the caller so the drag overlay can abort its visual outcome.
func (c *Controller) AssignToDate(ctx context.Context, id uuid.UUID, dateKey string) error {
	if err := c.repo.Update(ctx, id, model.TaskPatch{DateKey: &dateKey, DateKeySet: true}); err != nil {
		c.logf("assign task %s to %s: %v", id, dateKey, err)
		return err
	}
	c.reloadBoth(ctx)
	return nil
}

// Unassign moves the task back to the unassigned list. Unassigning an
// already-unassigned task is a harmless idempotent write.
func (c *Controller) Unassign(ctx context.Context, id uuid.UUID) error {
	if err := c.repo.Update(ctx, id, model.TaskPatch{DateKeySet: true}); err != nil {
		c.logf("unassign task %s: %v", id, err)
		return err
	}
	c.reloadBoth(ctx)
	return nil
}

// reloadBoth refreshes the two lists in parallel. Both requests target
// the same final server state, so completion order does not matter.
func (c *Controller) reloadBoth(ctx context.Context) {
	var g errgroup.Group
	g.Go(func() error {
		c.LoadUnassigned(ctx)
		return nil
	})
	g.Go(func() error {
		c.LoadForSelectedDate(ctx)
		return nil
	})
	_ = g.Wait() // loads swallow their own errors
}
