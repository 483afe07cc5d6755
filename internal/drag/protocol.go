// Package drag interprets drag-gesture lifecycle events (start, end,
// cancel) into task reassignments on the board controller.
package drag

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"

	"planner/internal/board"
	"planner/internal/model"
)

// The two recognized drop destinations. A drop anywhere else (including
// intra-list reorder targets) performs no repository mutation.
const (
	DropZoneDayTasks   = "day-tasks-dropzone"
	DropZoneUnassigned = "unassigned-list"
)

// Protocol is a two-state machine: idle, or dragging one task. The
// active task backs the drag overlay and is cleared on every end or
// cancel path, success or not.
type Protocol struct {
	board *board.Controller
	logf  func(format string, args ...any)

	mu     sync.Mutex
	active *model.Task
}

func New(b *board.Controller) *Protocol {
	return &Protocol{board: b, logf: log.Printf}
}

// Start begins a drag for the given task id. The id is looked up in the
// unassigned list first, then the day list; an unknown id leaves the
// overlay empty but the gesture still proceeds to End or Cancel.
func (p *Protocol) Start(taskID string) {
	var task *model.Task
	if id, err := uuid.Parse(taskID); err == nil {
		task = p.board.FindTask(id)
	}

	p.mu.Lock()
	p.active = task
	p.mu.Unlock()
}

// Active returns the task under drag, nil when idle or the dragged id
// was unknown.
func (p *Protocol) Active() *model.Task {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// End resolves the drop. The day drop zone assigns the task to the
// currently selected date, the unassigned zone clears its date; any
// other target is a non-actionable drop and mutates nothing. Repository
// failures are logged, and the overlay clears regardless of outcome.
func (p *Protocol) End(ctx context.Context, taskID, dropTargetID string) {
	defer p.clear()

	id, err := uuid.Parse(taskID)
	if err != nil {
		return
	}

	switch dropTargetID {
	case DropZoneDayTasks:
		if err := p.board.AssignToDate(ctx, id, p.board.SelectedDateKey()); err != nil {
			p.logf("drag: assign %s: %v", id, err)
		}
	case DropZoneUnassigned:
		if err := p.board.Unassign(ctx, id); err != nil {
			p.logf("drag: unassign %s: %v", id, err)
		}
	}
}

// Cancel abandons the drag without touching the repository.
func (p *Protocol) Cancel() {
	p.clear()
}

// Dragging reports whether a drag is in progress with a known task.
func (p *Protocol) Dragging() bool {
	return p.Active() != nil
}

func (p *Protocol) clear() {
	p.mu.Lock()
	p.active = nil
	p.mu.Unlock()
}
