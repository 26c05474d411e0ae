package tracing

import (
	"log"
	"sync"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/sdramaxi/datarecording"
	"github.com/sarchlab/sdramaxi/sim"
)

// TaskTableName is the table the DBTracer writes finished tasks to.
const TaskTableName = "tasks"

// TaskEntry is one finished task. Steps counts the milestones reported while
// the task was open, which for a burst are the device commands it needed.
type TaskEntry struct {
	ID         string
	ParentID   string
	Kind       string
	What       string
	Location   string
	StartCycle uint64
	EndCycle   uint64
	Latency    uint64
	Steps      int
}

// DBTracer stores tasks, timed in cycles, into a data recorder.
type DBTracer struct {
	mu      sync.Mutex
	clock   sim.CycleTeller
	backend datarecording.DataRecorder

	firstCycle, lastCycle uint64

	open map[string]*TaskEntry
}

// NewDBTracer creates the task table and a tracer writing to it. Tasks still
// open when the program exits are written as ending at that moment.
func NewDBTracer(
	clock sim.CycleTeller,
	backend datarecording.DataRecorder,
) *DBTracer {
	backend.CreateTable(TaskTableName, TaskEntry{})

	t := &DBTracer{
		clock:   clock,
		backend: backend,
		open:    make(map[string]*TaskEntry),
	}

	atexit.Register(t.Terminate)

	return t
}

// SetCycleRange keeps only the tasks that overlap cycles [first, last]. A
// zero bound is open.
func (t *DBTracer) SetCycleRange(first, last uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.firstCycle = first
	t.lastCycle = last
}

// StartTask opens a row for the task.
func (t *DBTracer) StartTask(task Task) {
	if task.ID == "" || task.Kind == "" || task.What == "" || task.Location == "" {
		log.Panicf("incomplete task %+v", task)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock.CurrentCycle()
	if t.lastCycle > 0 && now > t.lastCycle {
		return
	}

	t.open[task.ID] = &TaskEntry{
		ID:         task.ID,
		ParentID:   task.ParentID,
		Kind:       task.Kind,
		What:       task.What,
		Location:   task.Location,
		StartCycle: now,
	}
}

// StepTask counts a milestone of an open task.
func (t *DBTracer) StepTask(task Task) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if e, ok := t.open[task.ID]; ok {
		e.Steps += len(task.Steps)
	}
}

// EndTask writes the task unless it ended before the cycle range.
func (t *DBTracer) EndTask(task Task) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.open[task.ID]
	if !ok {
		return
	}

	delete(t.open, task.ID)

	now := t.clock.CurrentCycle()
	if now < t.firstCycle {
		return
	}

	t.write(e, now)
}

// NumInflight returns the number of tasks started but not ended.
func (t *DBTracer) NumInflight() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.open)
}

// Terminate writes the open tasks as ending now and flushes the recorder.
func (t *DBTracer) Terminate() {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock.CurrentCycle()
	for id, e := range t.open {
		t.write(e, now)
		delete(t.open, id)
	}

	t.backend.Flush()
}

func (t *DBTracer) write(e *TaskEntry, end uint64) {
	e.EndCycle = end
	e.Latency = end - e.StartCycle
	t.backend.InsertData(TaskTableName, *e)
}
