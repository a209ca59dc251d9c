package comptool

import (
	"context"
	"log/slog"
)

// invoker is the uniform synchronous invocation contract over a bound
// output method: write args into the component's live state, run the
// method to completion, return its result. Errors from the method body
// propagate verbatim.
type invoker func(ctx context.Context, args map[string]any) (any, error)

// buildInvoker resolves the bound method's shape once, at construction,
// and returns the matching wrapper. A sync method needs no concurrency
// machinery; an async method goes through the scheduler-bridging
// asyncInvoker. Any other shape is a configuration error.
func buildInvoker(c *Component, out Output, logger *slog.Logger) (invoker, error) {
	m, ok := c.method(out.Method)
	if !ok {
		return nil, &ConfigError{
			Component: c.name,
			Output:    out.Name,
			Reason:    "method " + out.Method + " is not bound",
			Err:       ErrMissingMethod,
		}
	}
	switch fn := m.(type) {
	case SyncMethod:
		return syncInvoker(c, fn), nil
	case func() (any, error):
		return syncInvoker(c, fn), nil
	case AsyncMethod:
		return asyncInvoker(c, fn, logger), nil
	case func(context.Context) (any, error):
		return asyncInvoker(c, fn, logger), nil
	default:
		return nil, &ConfigError{
			Component: c.name,
			Output:    out.Name,
			Reason:    "method " + out.Method + " must be a SyncMethod or AsyncMethod",
			Err:       ErrBadMethod,
		}
	}
}

func syncInvoker(c *Component, fn func() (any, error)) invoker {
	return func(_ context.Context, args map[string]any) (any, error) {
		if err := c.Set(args); err != nil {
			return nil, err
		}
		return fn()
	}
}

// asyncInvoker bridges an asynchronous method to the synchronous Invoke
// contract. Scheduler handling per call:
//
//   - an ambient Scheduler in ctx is reused; constructing a second one
//     while the caller's is driving the stack risks deadlock;
//   - otherwise a transient Scheduler lives for exactly this call.
//
// On every exit path the tasks scheduled during the call that are still
// pending are cancelled and awaited, so no background work crosses the
// call boundary. Cleanup never overwrites the method's own error.
func asyncInvoker(c *Component, fn func(context.Context) (any, error), logger *slog.Logger) invoker {
	return func(ctx context.Context, args map[string]any) (any, error) {
		if err := c.Set(args); err != nil {
			return nil, err
		}
		sched, ambient := SchedulerFrom(ctx)
		if ambient {
			if sched.Closed() {
				return nil, &SchedulerError{Err: ErrSchedulerClosed}
			}
		} else {
			sched = NewScheduler()
			ctx = WithScheduler(ctx, sched)
		}
		mark := sched.mark()
		defer func() {
			var stray int
			if ambient {
				stray = sched.cancelAfter(mark)
			} else {
				before := len(sched.Pending())
				sched.Close()
				stray = before
			}
			if stray > 0 {
				logger.Debug("cancelled stray background tasks",
					"component", c.name, "count", stray)
			}
		}()
		return fn(ctx)
	}
}
