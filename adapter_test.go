package comptool

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestInvoker(t *testing.T, c *Component, out Output) invoker {
	t.Helper()
	logger, _ := testLogger()
	inv, err := buildInvoker(c, out, logger)
	require.NoError(t, err)
	return inv
}

func syncComponent() *Component {
	c := NewComponent("calc", "Adds numbers",
		WithInputs(
			Input{Name: "a", FieldType: "int", Required: true},
			Input{Name: "b", FieldType: "int", Required: true},
		),
		WithOutput(Output{Name: "sum", Method: "add", RequiredInputs: []string{"a", "b"}}),
	)
	c.Bind("add", func() (any, error) {
		return c.Arg("a").(int) + c.Arg("b").(int), nil
	})
	return c
}

func TestInvoker_Sync_SetsArgsAndReturns(t *testing.T) {
	c := syncComponent()
	inv := buildTestInvoker(t, c, c.Outputs()[0])
	res, err := inv(context.Background(), map[string]any{"a": 1, "b": 2})
	require.NoError(t, err)
	assert.Equal(t, 3, res)
	// Argument writes are visible on the component's live state.
	assert.Equal(t, 1, c.Arg("a"))
	assert.Equal(t, 2, c.Arg("b"))
}

func TestInvoker_Sync_ErrorPropagatesVerbatim(t *testing.T) {
	boom := errors.New("boom")
	c := NewComponent("c", "d",
		WithOutput(Output{Name: "o", Method: "fail"}),
	)
	c.Bind("fail", func() (any, error) { return nil, boom })
	inv := buildTestInvoker(t, c, c.Outputs()[0])
	_, err := inv(context.Background(), nil)
	assert.Same(t, boom, err)
}

func TestInvoker_Sync_UnknownArgRejected(t *testing.T) {
	c := syncComponent()
	inv := buildTestInvoker(t, c, c.Outputs()[0])
	_, err := inv(context.Background(), map[string]any{"nope": 1})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.ErrorIs(t, err, ErrUnknownInput)
}

func asyncComponent(fn AsyncMethod) *Component {
	c := NewComponent("fetch", "Fetches data",
		WithInputs(Input{Name: "url", FieldType: "str", Required: true}),
		WithOutput(Output{Name: "data", Method: "run", RequiredInputs: []string{"url"}}),
	)
	c.Bind("run", fn)
	return c
}

func TestInvoker_Async_NoAmbientScheduler(t *testing.T) {
	var c *Component
	c = asyncComponent(func(_ context.Context) (any, error) {
		return "got " + c.Arg("url").(string), nil
	})
	inv := buildTestInvoker(t, c, c.Outputs()[0])
	res, err := inv(context.Background(), map[string]any{"url": "http://x"})
	require.NoError(t, err)
	assert.Equal(t, "got http://x", res)
}

func TestInvoker_Async_AmbientScheduler(t *testing.T) {
	c := asyncComponent(func(ctx context.Context) (any, error) {
		// The method sees the caller's scheduler, never a nested one.
		s, ok := SchedulerFrom(ctx)
		if !ok {
			return nil, errors.New("no scheduler in context")
		}
		return s, nil
	})
	inv := buildTestInvoker(t, c, c.Outputs()[0])

	ambient := NewScheduler()
	defer ambient.Close()
	ctx := WithScheduler(context.Background(), ambient)
	res, err := inv(ctx, map[string]any{"url": "u"})
	require.NoError(t, err)
	assert.Same(t, ambient, res)
}

func TestInvoker_Async_CancelsStrayTasks_Transient(t *testing.T) {
	var stray *Task
	c := asyncComponent(func(ctx context.Context) (any, error) {
		s, _ := SchedulerFrom(ctx)
		var err error
		// Fire-and-forget: never awaited by the method.
		stray, err = s.Go(ctx, "background", func(tctx context.Context) error {
			<-tctx.Done()
			return tctx.Err()
		})
		return "done", err
	})
	inv := buildTestInvoker(t, c, c.Outputs()[0])
	res, err := inv(context.Background(), map[string]any{"url": "u"})
	require.NoError(t, err)
	assert.Equal(t, "done", res)
	require.NotNil(t, stray)
	select {
	case <-stray.Done():
	default:
		t.Fatal("stray task survived the invoke boundary")
	}
	assert.ErrorIs(t, stray.Err(), context.Canceled)
}

func TestInvoker_Async_CancelsOnlyThisCallsTasks_Ambient(t *testing.T) {
	ambient := NewScheduler()
	defer ambient.Close()
	ctx := WithScheduler(context.Background(), ambient)

	// A task the caller owns, scheduled before the invoke.
	callerTask, err := ambient.Go(ctx, "caller-owned", func(tctx context.Context) error {
		<-tctx.Done()
		return tctx.Err()
	})
	require.NoError(t, err)

	var stray *Task
	c := asyncComponent(func(mctx context.Context) (any, error) {
		s, _ := SchedulerFrom(mctx)
		stray, _ = s.Go(mctx, "method-owned", func(tctx context.Context) error {
			<-tctx.Done()
			return tctx.Err()
		})
		return 42, nil
	})
	inv := buildTestInvoker(t, c, c.Outputs()[0])
	res, err := inv(ctx, map[string]any{"url": "u"})
	require.NoError(t, err)
	assert.Equal(t, 42, res)

	// The method's fire-and-forget task is gone; the caller's is untouched.
	require.NotNil(t, stray)
	select {
	case <-stray.Done():
	default:
		t.Fatal("method-owned task survived the invoke boundary")
	}
	select {
	case <-callerTask.Done():
		t.Fatal("caller-owned task was cancelled by the adapter")
	default:
	}
}

func TestInvoker_Async_ErrorPropagatesVerbatim(t *testing.T) {
	boom := errors.New("fetch failed")
	c := asyncComponent(func(_ context.Context) (any, error) {
		return nil, boom
	})
	inv := buildTestInvoker(t, c, c.Outputs()[0])
	_, err := inv(context.Background(), map[string]any{"url": "u"})
	assert.Same(t, boom, err)
}

func TestInvoker_Async_MethodErrorWinsOverCleanup(t *testing.T) {
	boom := errors.New("method failed")
	c := asyncComponent(func(ctx context.Context) (any, error) {
		s, _ := SchedulerFrom(ctx)
		_, _ = s.Go(ctx, "background", func(tctx context.Context) error {
			<-tctx.Done()
			return tctx.Err()
		})
		return nil, boom
	})
	inv := buildTestInvoker(t, c, c.Outputs()[0])
	_, err := inv(context.Background(), map[string]any{"url": "u"})
	// Cleanup cancelled the stray task, but the method's error is what we see.
	assert.Same(t, boom, err)
}

func TestInvoker_Async_ClosedAmbientScheduler(t *testing.T) {
	ran := false
	c := asyncComponent(func(_ context.Context) (any, error) {
		ran = true
		return nil, nil
	})
	inv := buildTestInvoker(t, c, c.Outputs()[0])

	ambient := NewScheduler()
	ambient.Close()
	ctx := WithScheduler(context.Background(), ambient)
	_, err := inv(ctx, map[string]any{"url": "u"})
	require.Error(t, err)
	assert.True(t, IsSchedulerError(err))
	assert.ErrorIs(t, err, ErrSchedulerClosed)
	assert.False(t, ran, "method must not run without a usable scheduler")
}

func TestBuildInvoker_UnboundMethod(t *testing.T) {
	c := NewComponent("c", "d", WithOutput(Output{Name: "o", Method: "ghost"}))
	logger, _ := testLogger()
	_, err := buildInvoker(c, c.Outputs()[0], logger)
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
	assert.ErrorIs(t, err, ErrMissingMethod)
}

func TestBuildInvoker_UnsupportedSignature(t *testing.T) {
	c := NewComponent("c", "d", WithOutput(Output{Name: "o", Method: "weird"}))
	c.Bind("weird", func(x int) int { return x })
	logger, _ := testLogger()
	_, err := buildInvoker(c, c.Outputs()[0], logger)
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
	assert.ErrorIs(t, err, ErrBadMethod)
}
