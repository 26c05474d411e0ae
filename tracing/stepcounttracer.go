package tracing

import (
	"sort"
	"sync"
)

// StepCountTracer counts the steps of the tasks that pass the filter, both by
// step name and by the kind of task that owns them.
type StepCountTracer struct {
	filter TaskFilter

	lock          sync.Mutex
	inflightTasks map[string]string
	stepCount     map[string]uint64
	stepsPerWhat  map[string]uint64
	finishedTasks map[string]uint64
}

// NewStepCountTracer creates a new StepCountTracer.
func NewStepCountTracer(filter TaskFilter) *StepCountTracer {
	return &StepCountTracer{
		filter:        filter,
		inflightTasks: make(map[string]string),
		stepCount:     make(map[string]uint64),
		stepsPerWhat:  make(map[string]uint64),
		finishedTasks: make(map[string]uint64),
	}
}

// StepNames returns the names of all the steps seen, sorted.
func (t *StepCountTracer) StepNames() []string {
	t.lock.Lock()
	defer t.lock.Unlock()

	names := make([]string, 0, len(t.stepCount))
	for name := range t.stepCount {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// StepCount returns the number of steps recorded with the given name.
func (t *StepCountTracer) StepCount(stepName string) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.stepCount[stepName]
}

// TaskCount returns the number of finished tasks with the given What.
func (t *StepCountTracer) TaskCount(what string) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.finishedTasks[what]
}

// StepsPerTask returns the average number of steps taken by the finished
// tasks with the given What.
func (t *StepCountTracer) StepsPerTask(what string) float64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.finishedTasks[what] == 0 {
		return 0
	}

	return float64(t.stepsPerWhat[what]) / float64(t.finishedTasks[what])
}

// StartTask begins counting the steps of the task.
func (t *StepCountTracer) StartTask(task Task) {
	if !t.filter(task) {
		return
	}

	t.lock.Lock()
	t.inflightTasks[task.ID] = task.What
	t.lock.Unlock()
}

// StepTask counts the step if its task is being traced.
func (t *StepCountTracer) StepTask(task Task) {
	t.lock.Lock()
	defer t.lock.Unlock()

	what, ok := t.inflightTasks[task.ID]
	if !ok {
		return
	}

	for _, step := range task.Steps {
		t.stepCount[step.What]++
		t.stepsPerWhat[what]++
	}
}

// EndTask marks the task as finished.
func (t *StepCountTracer) EndTask(task Task) {
	t.lock.Lock()
	defer t.lock.Unlock()

	what, ok := t.inflightTasks[task.ID]
	if !ok {
		return
	}

	delete(t.inflightTasks, task.ID)
	t.finishedTasks[what]++
}
