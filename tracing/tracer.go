package tracing

// A Tracer turns the task notifications of a domain into measurements. Step
// and end notifications carry little more than the task ID, so a tracer keeps
// whatever it needs from StartTask.
type Tracer interface {
	StartTask(task Task)
	StepTask(task Task)
	EndTask(task Task)
}

// AcceptAll is a TaskFilter that keeps every task.
func AcceptAll(Task) bool {
	return true
}

// WhatIs keeps the tasks doing the given work, such as "read".
func WhatIs(what string) TaskFilter {
	return func(t Task) bool {
		return t.What == what
	}
}
