// Package tasks holds the process-local task list. Tasks have no identifier:
// they are addressed by their zero-based position, so deleting a task
// renumbers every task after it. Nothing is persisted.
package tasks

import (
	"sync"

	"record-service/internal/models"
)

var errTaskNotFound = &models.NotFoundError{Resource: "Task"}

// List is an ordered task sequence safe for concurrent use. Positions handed
// out to callers are only valid until the next mutation.
type List struct {
	mu    sync.RWMutex
	tasks []models.Task
}

func NewList() *List {
	return &List{tasks: []models.Task{}}
}

// All returns a copy of the sequence in its current order.
func (l *List) All() []models.Task {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.tasks)
}

func (l *List) Get(pos int) (models.Task, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if !l.inRange(pos) {
		return models.Task{}, errTaskNotFound
	}
	return l.tasks[pos], nil
}

// Create appends t and returns it unchanged.
func (l *List) Create(t models.Task) models.Task {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tasks = append(l.tasks, t)
	return t
}

func (l *List) Update(pos int, t models.Task) (models.Task, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.inRange(pos) {
		return models.Task{}, errTaskNotFound
	}
	l.tasks[pos] = t
	return t, nil
}

// Delete removes the task at pos and shifts later tasks down by one.
func (l *List) Delete(pos int) (models.Task, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.inRange(pos) {
		return models.Task{}, errTaskNotFound
	}
	removed := l.tasks[pos]
	l.tasks = append(l.tasks[:pos], l.tasks[pos+1:]...)
	return removed, nil
}

func (l *List) inRange(pos int) bool {
	return pos >= 0 && pos < len(l.tasks)
}
