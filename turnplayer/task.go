package turnplayer

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/domino14/gomoku/move"
)

// Status is the lifecycle of a Task. It only moves forward.
type Status int32

const (
	Pending Status = iota
	Thinking
	Done
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Thinking:
		return "thinking"
	case Done:
		return "done"
	}
	return "unknown"
}

// Task is a move search running in the background. Observers poll Status
// or block in Wait; Thinking is always visible before Done.
type Task struct {
	status atomic.Int32
	done   chan struct{}
	result move.Move
	err    error
}

// startTask runs search on its own goroutine. If ctx is already done when
// the goroutine starts, the search is skipped; the task still passes
// through Thinking.
func startTask(ctx context.Context, search func() (move.Move, error)) *Task {
	t := &Task{done: make(chan struct{})}
	var g errgroup.Group
	g.Go(func() error {
		t.status.Store(int32(Thinking))
		if err := ctx.Err(); err != nil {
			return err
		}
		m, err := search()
		if err != nil {
			return err
		}
		t.result = m
		return nil
	})
	go func() {
		t.err = g.Wait()
		t.status.Store(int32(Done))
		close(t.done)
	}()
	return t
}

func (t *Task) Status() Status {
	return Status(t.status.Load())
}

// Done is closed when the result is available.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the search finishes or ctx is done. A search that is
// already running is not interrupted by ctx; its result is dropped.
func (t *Task) Wait(ctx context.Context) (move.Move, error) {
	select {
	case <-t.done:
		return t.result, t.err
	case <-ctx.Done():
		return move.Move{}, ctx.Err()
	}
}
