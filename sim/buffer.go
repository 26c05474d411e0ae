package sim

import "log"

// HookPosBufPush marks when an element is pushed into the buffer.
var HookPosBufPush = &HookPos{Name: "Buffer Push"}

// HookPosBufPop marks when an element is popped from the buffer.
var HookPosBufPop = &HookPos{Name: "Buf Pop"}

// BufferState is the element-independent view of a buffer, used to report
// occupancy.
type BufferState interface {
	Named
	Size() int
	Capacity() int
}

// A Buffer is a bounded FIFO backed by a fixed circular array. The occupancy
// counter distinguishes full from empty when the two indices meet.
type Buffer[T any] struct {
	HookableBase

	name     string
	elements []T
	head     int
	size     int
}

// NewBuffer creates a buffer that holds at most capacity elements.
func NewBuffer[T any](name string, capacity int) *Buffer[T] {
	NameMustBeValid(name)

	if capacity <= 0 {
		log.Panicf("buffer %s must have a positive capacity", name)
	}

	return &Buffer[T]{
		name:     name,
		elements: make([]T, capacity),
	}
}

// Name returns the name of the buffer.
func (b *Buffer[T]) Name() string {
	return b.name
}

// CanPush returns true if the buffer is not full.
func (b *Buffer[T]) CanPush() bool {
	return b.size < len(b.elements)
}

// IsEmpty returns true if there is nothing to pop.
func (b *Buffer[T]) IsEmpty() bool {
	return b.size == 0
}

// Push appends e to the tail. Pushing into a full buffer is a programming
// error.
func (b *Buffer[T]) Push(e T) {
	if !b.CanPush() {
		log.Panicf("buffer %s overflow", b.name)
	}

	tail := (b.head + b.size) % len(b.elements)
	b.elements[tail] = e
	b.size++

	if b.NumHooks() > 0 {
		b.InvokeHook(HookCtx{
			Domain: b,
			Pos:    HookPosBufPush,
			Item:   e,
		})
	}
}

// Pop removes and returns the head element. The second return value is false
// if the buffer is empty.
func (b *Buffer[T]) Pop() (T, bool) {
	var zero T

	if b.size == 0 {
		return zero, false
	}

	e := b.elements[b.head]
	b.elements[b.head] = zero
	b.head = (b.head + 1) % len(b.elements)
	b.size--

	if b.NumHooks() > 0 {
		b.InvokeHook(HookCtx{
			Domain: b,
			Pos:    HookPosBufPop,
			Item:   e,
		})
	}

	return e, true
}

// Peek returns the head element without removing it.
func (b *Buffer[T]) Peek() (T, bool) {
	if b.size == 0 {
		var zero T
		return zero, false
	}

	return b.elements[b.head], true
}

// Capacity returns the maximum number of elements.
func (b *Buffer[T]) Capacity() int {
	return len(b.elements)
}

// Size returns the number of elements currently held.
func (b *Buffer[T]) Size() int {
	return b.size
}

// Clear drops all the elements.
func (b *Buffer[T]) Clear() {
	var zero T
	for i := range b.elements {
		b.elements[i] = zero
	}

	b.head = 0
	b.size = 0
}
