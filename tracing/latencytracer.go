package tracing

import (
	"sort"
	"sync"

	"github.com/sarchlab/sdramaxi/sim"
)

// LatencyTracer measures the clock cycles between the start and the end of
// tasks, grouped by the work they do. For the controller that gives separate
// read and write burst latencies.
type LatencyTracer struct {
	clock  sim.CycleTeller
	filter TaskFilter

	lock    sync.Mutex
	started map[string]startMark
	groups  map[string]*latencyGroup
}

type startMark struct {
	what  string
	cycle uint64
}

type latencyGroup struct {
	count uint64
	total uint64
	max   uint64
}

// NewLatencyTracer creates a LatencyTracer that reads cycles from clock. A nil
// filter accepts every task.
func NewLatencyTracer(clock sim.CycleTeller, filter TaskFilter) *LatencyTracer {
	if filter == nil {
		filter = AcceptAll
	}

	return &LatencyTracer{
		clock:   clock,
		filter:  filter,
		started: make(map[string]startMark),
		groups:  make(map[string]*latencyGroup),
	}
}

// Whats returns the kinds of work that have finished tasks, sorted.
func (t *LatencyTracer) Whats() []string {
	t.lock.Lock()
	defer t.lock.Unlock()

	whats := make([]string, 0, len(t.groups))
	for what := range t.groups {
		whats = append(whats, what)
	}

	sort.Strings(whats)

	return whats
}

// Count returns the number of finished tasks doing what.
func (t *LatencyTracer) Count(what string) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	if g, ok := t.groups[what]; ok {
		return g.count
	}

	return 0
}

// TotalCount returns the number of finished tasks.
func (t *LatencyTracer) TotalCount() uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	n := uint64(0)
	for _, g := range t.groups {
		n += g.count
	}

	return n
}

// MeanCycles returns the average latency of the finished tasks doing what, or
// 0 if there are none.
func (t *LatencyTracer) MeanCycles(what string) float64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	g, ok := t.groups[what]
	if !ok {
		return 0
	}

	return float64(g.total) / float64(g.count)
}

// OverallMeanCycles averages over every finished task.
func (t *LatencyTracer) OverallMeanCycles() float64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	count, total := uint64(0), uint64(0)
	for _, g := range t.groups {
		count += g.count
		total += g.total
	}

	if count == 0 {
		return 0
	}

	return float64(total) / float64(count)
}

// MaxCycles returns the longest latency seen for tasks doing what.
func (t *LatencyTracer) MaxCycles(what string) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	if g, ok := t.groups[what]; ok {
		return g.max
	}

	return 0
}

// InFlight returns the number of traced tasks that have not ended.
func (t *LatencyTracer) InFlight() int {
	t.lock.Lock()
	defer t.lock.Unlock()

	return len(t.started)
}

// StartTask stamps the task with the current cycle.
func (t *LatencyTracer) StartTask(task Task) {
	if !t.filter(task) {
		return
	}

	t.lock.Lock()
	t.started[task.ID] = startMark{what: task.What, cycle: t.clock.CurrentCycle()}
	t.lock.Unlock()
}

// StepTask does nothing. Only the two ends of a task matter.
func (t *LatencyTracer) StepTask(_ Task) {}

// EndTask adds the latency of the task to its group.
func (t *LatencyTracer) EndTask(task Task) {
	now := t.clock.CurrentCycle()

	t.lock.Lock()
	defer t.lock.Unlock()

	mark, ok := t.started[task.ID]
	if !ok {
		return
	}

	delete(t.started, task.ID)

	g, ok := t.groups[mark.what]
	if !ok {
		g = &latencyGroup{}
		t.groups[mark.what] = g
	}

	cycles := now - mark.cycle
	g.count++
	g.total += cycles

	if cycles > g.max {
		g.max = cycles
	}
}
