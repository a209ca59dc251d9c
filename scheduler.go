package comptool

import (
	"context"
	"sync"
)

// Scheduler is a cooperative task group for asynchronous output methods:
// the Go rendering of "the event loop driving this call". A method may
// spawn fire-and-forget tasks on the scheduler carried by its context;
// the invocation adapter cancels whatever is still pending when the call
// returns, so no background work survives a single Invoke.
//
// Tasks are cancelled through their context; a task that ignores its
// context will block the cleanup that waits for it.
type Scheduler struct {
	mu     sync.Mutex
	nextID uint64
	tasks  map[uint64]*Task
	closed bool
}

// Task is one scheduled unit of background work.
type Task struct {
	id     uint64
	name   string
	cancel context.CancelFunc
	done   chan struct{}
	err    error // written before done is closed
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{tasks: make(map[uint64]*Task)}
}

// Go schedules fn as a background task with its own cancellable context
// derived from ctx. Returns ErrSchedulerClosed if the scheduler has been
// closed. Finished tasks are forgotten; only pending ones are tracked.
func (s *Scheduler) Go(ctx context.Context, name string, fn func(context.Context) error) (*Task, error) {
	tctx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		cancel()
		return nil, ErrSchedulerClosed
	}
	s.nextID++
	t := &Task{
		id:     s.nextID,
		name:   name,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	s.tasks[t.id] = t
	s.mu.Unlock()

	go func() {
		defer close(t.done)
		defer cancel()
		err := fn(tctx)
		s.mu.Lock()
		delete(s.tasks, t.id)
		s.mu.Unlock()
		t.err = err
	}()
	return t, nil
}

// Name returns the label the task was scheduled with.
func (t *Task) Name() string { return t.name }

// Cancel requests cancellation via the task's context.
func (t *Task) Cancel() { t.cancel() }

// Done is closed when the task function has returned.
func (t *Task) Done() <-chan struct{} { return t.done }

// Err returns the task function's result. Valid only after Done is closed.
func (t *Task) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}

// Pending returns the tasks that have been scheduled but not yet finished.
func (s *Scheduler) Pending() []*Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t)
	}
	return out
}

// Closed reports whether Close has been called.
func (s *Scheduler) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// mark returns a watermark; tasks scheduled after it have larger ids.
func (s *Scheduler) mark() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextID
}

// cancelAfter cancels every pending task scheduled after the watermark and
// waits for each to stop. Returns how many tasks were cancelled.
func (s *Scheduler) cancelAfter(mark uint64) int {
	s.mu.Lock()
	stray := make([]*Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.id > mark {
			stray = append(stray, t)
		}
	}
	s.mu.Unlock()
	for _, t := range stray {
		t.cancel()
	}
	for _, t := range stray {
		<-t.done
	}
	return len(stray)
}

// Close cancels all pending tasks, waits for them to stop, and marks the
// scheduler closed. Subsequent Go calls fail with ErrSchedulerClosed.
// Safe to call more than once.
func (s *Scheduler) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancelAfter(0)
}

type schedulerCtxKey struct{}

// WithScheduler returns a context carrying s as the ambient scheduler for
// asynchronous invocations.
func WithScheduler(ctx context.Context, s *Scheduler) context.Context {
	return context.WithValue(ctx, schedulerCtxKey{}, s)
}

// SchedulerFrom returns the ambient scheduler carried by ctx, if any.
func SchedulerFrom(ctx context.Context) (*Scheduler, bool) {
	s, ok := ctx.Value(schedulerCtxKey{}).(*Scheduler)
	return s, ok
}
