package workflow

import (
	"context"
	"sync"

	"studymate/internal/domain"
)

// Phase is the tagged state of a single asynchronous operation:
// Idle | Pending | Succeeded | Failed.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePending
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePending:
		return "pending"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}

// AsyncOperation tracks one request/response exchange with the backend.
// It is the loading-flag-as-mutex of the client: at most one call is in
// flight, a second start while pending is dropped rather than queued,
// and resolutions that arrive after Reset or Close are discarded instead
// of being applied to torn-down state.
type AsyncOperation[T any] struct {
	mu    sync.Mutex
	phase Phase
	value T
	err   error

	// gen is bumped by Reset and Close; a resolution whose generation
	// no longer matches is stale and must not be applied.
	gen    uint64
	closed bool
}

// Run executes fn as this operation's single in-flight call. It returns
// fn's error, an OPERATION_IN_FLIGHT error when a call is already
// pending, or an error when the operation has been closed.
func (op *AsyncOperation[T]) Run(ctx context.Context, name string, fn func(context.Context) (T, error)) error {
	op.mu.Lock()
	if op.closed {
		op.mu.Unlock()
		return domain.NewInternalError(name+" is no longer available", nil)
	}
	if op.phase == PhasePending {
		op.mu.Unlock()
		return domain.NewBusyError(name)
	}
	op.phase = PhasePending
	gen := op.gen
	op.mu.Unlock()

	value, err := fn(ctx)

	op.mu.Lock()
	defer op.mu.Unlock()
	if op.closed || op.gen != gen {
		// Stale resolution: the owner was reset or torn down while the
		// request was in flight. Drop it.
		return err
	}
	if err != nil {
		var zero T
		op.phase = PhaseFailed
		op.value = zero
		op.err = err
		return err
	}
	op.phase = PhaseSucceeded
	op.value = value
	op.err = nil
	return nil
}

// State returns the current phase together with the held value and error.
func (op *AsyncOperation[T]) State() (Phase, T, error) {
	op.mu.Lock()
	defer op.mu.Unlock()
	return op.phase, op.value, op.err
}

// Reset returns the operation to Idle and invalidates any in-flight call.
func (op *AsyncOperation[T]) Reset() {
	op.mu.Lock()
	defer op.mu.Unlock()
	var zero T
	op.gen++
	op.phase = PhaseIdle
	op.value = zero
	op.err = nil
}

// Close tears the operation down permanently. Pending resolutions are
// discarded and further Run calls fail.
func (op *AsyncOperation[T]) Close() {
	op.mu.Lock()
	defer op.mu.Unlock()
	var zero T
	op.gen++
	op.closed = true
	op.phase = PhaseIdle
	op.value = zero
	op.err = nil
}
