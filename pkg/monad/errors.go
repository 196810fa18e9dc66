package monad

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrNoSuchElement is returned by Get on an empty container
	ErrNoSuchElement = errors.New("no such element")

	// ErrCancelled is reported when a deferred value will never arrive
	ErrCancelled = errors.New("operation cancelled")
)

// ExecutionError reports a failed asynchronous task
type ExecutionError struct {
	TaskId uuid.UUID
	Cause  error
}

func NewExecutionError(taskId uuid.UUID, cause error) *ExecutionError {
	return &ExecutionError{TaskId: taskId, Cause: cause}
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("task %s failed: %v", e.TaskId, e.Cause)
}

func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// PanicError holds the value a task panicked with
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the panic value when it is an error itself
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// IsAbsence reports whether err carries the no-value signal
func IsAbsence(err error) bool {
	return errors.Is(err, ErrNoSuchElement)
}
