package player

import (
	"context"
	"sync"
)

// TaskState is the state of an asynchronous request such as a look or a tick wait.
type TaskState uint8

const (
	// TaskPending means the request is still in progress.
	TaskPending TaskState = iota
	// TaskCompleted means the request finished.
	TaskCompleted
	// TaskSuperseded means a newer request of the same kind replaced it before it finished. It is
	// not a failure.
	TaskSuperseded
)

func (s TaskState) String() string {
	switch s {
	case TaskPending:
		return "pending"
	case TaskCompleted:
		return "completed"
	case TaskSuperseded:
		return "superseded"
	}
	return "unknown"
}

// Task is a handle to an asynchronous request. It is resolved exactly once.
type Task struct {
	mu    sync.Mutex
	state TaskState
	done  chan struct{}
}

func newTask() *Task {
	return &Task{done: make(chan struct{})}
}

// doneTask returns a Task that is already resolved with the state passed.
func doneTask(state TaskState) *Task {
	t := newTask()
	t.resolve(state)
	return t
}

// State returns the current state of the task.
func (t *Task) State() TaskState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Done returns a channel that is closed once the task is resolved.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task is resolved or ctx is done, and returns the state of the task.
func (t *Task) Wait(ctx context.Context) (TaskState, error) {
	select {
	case <-t.done:
		return t.State(), nil
	case <-ctx.Done():
		return t.State(), ctx.Err()
	}
}

// resolve resolves the task with the state passed. It returns false if the task was resolved already.
func (t *Task) resolve(state TaskState) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != TaskPending {
		return false
	}
	t.state = state
	close(t.done)
	return true
}
