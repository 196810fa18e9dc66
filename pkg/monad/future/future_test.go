package future

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ib-77/monad3/pkg/monad"
	"github.com/ib-77/monad3/pkg/monad/core"
	"github.com/ib-77/monad3/pkg/monad/solo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func futureValue[U any](ctx context.Context, value U) *Future[U] {
	return Submit(ctx, func(ctx context.Context) (U, error) {
		time.Sleep(20 * time.Millisecond)
		return value, nil
	})
}

func singleWorker() context.Context {
	ctx := core.WithWorkerOptions(context.Background(), 1)
	return core.WithPool(ctx, core.NewPool(ctx))
}

func TestFutureMonad(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	out := Bind(Map(futureValue(ctx, "monad"), strings.ToUpper), func(s string) *Future[string] {
		return futureValue(ctx, s+" bind")
	})

	v, err := out.Get()
	require.NoError(t, err)
	assert.Equal(t, "MONAD bind", v)
	assert.Equal(t, Kind, out.Kind())
}

func TestInstanceAndCompleted(t *testing.T) {
	t.Parallel()

	v, err := Instance(context.Background(), 42).Get()
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	c := Completed("now")
	assert.True(t, c.IsDone())
	v2, err := c.Get()
	require.NoError(t, err)
	assert.Equal(t, "now", v2)
	assert.False(t, c.CreatedAt().IsZero())
	assert.NotEqual(t, c.Id(), Completed("now").Id())
}

func TestGet_TaskError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	f := Submit(context.Background(), func(context.Context) (int, error) { return 0, boom })

	_, err := f.Get()
	var execErr *monad.ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, f.Id(), execErr.TaskId)
	assert.ErrorIs(t, err, boom)

	// a failed future keeps reporting the same failure
	_, again := f.Get()
	assert.Same(t, err, again)
}

func TestGet_TaskPanic(t *testing.T) {
	t.Parallel()

	f := Submit(context.Background(), func(context.Context) (int, error) { panic("bug") })

	_, err := f.Get()
	var pe *monad.PanicError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "bug", pe.Value)
}

func TestFailed(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, err := Failed[int](boom).Get()
	assert.ErrorIs(t, err, boom)
	var execErr *monad.ExecutionError
	assert.ErrorAs(t, err, &execErr)
}

func TestFromChan(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := make(chan string, 1)
	f := FromChan(ctx, ch)
	assert.False(t, f.IsDone())
	ch <- "value"

	v, err := f.Get()
	require.NoError(t, err)
	assert.Equal(t, "value", v)

	closed := make(chan string)
	close(closed)
	_, err = FromChan(ctx, closed).Get()
	assert.ErrorIs(t, err, monad.ErrCancelled)
	assert.True(t, monad.IsCancellationError(err))
}

func TestFromChan_ContextDone(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(singleWorker())
	f := FromChan(ctx, make(chan int))
	assert.False(t, f.IsDone())

	cancel()
	_, err := f.Get()
	assert.ErrorIs(t, err, context.Canceled)

	// the watching goroutine has ended, so the pool has nothing left to wait for
	waited := make(chan struct{})
	go func() {
		core.PoolFrom(ctx).Wait()
		close(waited)
	}()
	select {
	case <-waited:
	case <-time.After(time.Second):
		t.Fatalf("pool still tracks the channel wait after cancel")
	}
}

func TestFromChan_PoolWaitCoversContinuations(t *testing.T) {
	t.Parallel()

	ctx := singleWorker()
	pool := core.PoolFrom(ctx)

	gate := make(chan int)
	var ran atomic.Bool
	out := FromChan(ctx, gate).Map(func(i int) int {
		ran.Store(true)
		return i * 2
	})

	gate <- 21
	pool.Wait()

	assert.True(t, ran.Load())
	assert.True(t, out.IsDone())
	v, err := out.Get()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestCompletedContext_UsesItsPool(t *testing.T) {
	t.Parallel()

	ctx := singleWorker()
	release := make(chan struct{})
	started := make(chan struct{})
	busy := Submit(ctx, func(context.Context) (int, error) {
		close(started)
		<-release
		return 0, nil
	})
	<-started

	out := CompletedContext(ctx, 1).Map(func(i int) int { return i + 1 })
	failed := Map(FailedContext[int](ctx, errors.New("boom")), func(i int) int { return i })

	time.Sleep(50 * time.Millisecond)
	assert.False(t, out.IsDone(), "the only worker of the pool is busy")

	close(release)
	v, err := out.Get()
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	_, err = busy.Get()
	require.NoError(t, err)
	_, err = failed.Get()
	assert.Error(t, err)
}

func TestGetContext_Timeout(t *testing.T) {
	t.Parallel()

	src, stop := context.WithCancel(context.Background())
	defer stop()
	never := FromChan(src, make(chan int))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := never.GetContext(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSubmit_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(singleWorker())
	cancel()

	called := false
	_, err := Submit(ctx, func(context.Context) (int, error) {
		called = true
		return 1, nil
	}).Get()

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestMap_DoesNotBlock(t *testing.T) {
	t.Parallel()

	gate := make(chan int)
	src := FromChan(context.Background(), gate)

	start := time.Now()
	out := src.Map(func(i int) int { return i + 1 }).Bind(func(i int) *Future[int] { return Completed(i * 2) })
	assert.Less(t, time.Since(start), 100*time.Millisecond)
	assert.False(t, out.IsDone())

	gate <- 4
	v, err := out.Get()
	require.NoError(t, err)
	assert.Equal(t, 10, v)
}

func TestBind_SingleWorkerDeepChain(t *testing.T) {
	t.Parallel()

	ctx := singleWorker()
	out := Instance(ctx, 0)
	for range 50 {
		out = Bind(out, func(i int) *Future[int] {
			return Submit(ctx, func(context.Context) (int, error) { return i + 1, nil })
		})
	}

	waitCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	v, err := out.GetContext(waitCtx)
	require.NoError(t, err)
	assert.Equal(t, 50, v)
}

func TestFailurePropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	called := false

	out := Map(Failed[int](boom), func(i int) int {
		called = true
		return i
	})
	out = Bind(out, func(i int) *Future[int] {
		called = true
		return Completed(i)
	})

	_, err := out.Get()
	assert.ErrorIs(t, err, boom)
	assert.False(t, called)
}

func TestTryMap(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, err := TryMap(Completed(1), func(int) (string, error) { return "", boom }).Get()
	assert.ErrorIs(t, err, boom)

	v, err := TryMap(Completed(1), func(i int) (string, error) { return strings.Repeat("a", i), nil }).Get()
	require.NoError(t, err)
	assert.Equal(t, "a", v)
}

func TestBind_NilFuture(t *testing.T) {
	t.Parallel()

	_, err := Bind(Completed(1), func(int) *Future[int] { return nil }).Get()
	assert.ErrorIs(t, err, errNilFuture)
}

func TestApplyAndJoin(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fn := Instance(ctx, func(s string) int { return len(s) })

	v, err := Apply(fn, futureValue(ctx, "four")).Get()
	require.NoError(t, err)
	assert.Equal(t, 4, v)

	s, err := Join(Completed(futureValue(ctx, "inner"))).Get()
	require.NoError(t, err)
	assert.Equal(t, "inner", s)
}

func TestBlockingComposition(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	src := futureValue(ctx, "monad")

	upper, err := solo.Map[string, string, *Future[string], *Future[func(string) string]](src,
		strings.ToUpper, Of[func(string) string](), Of[string]())
	require.NoError(t, err)
	// every step has waited for its input
	assert.True(t, src.IsDone())
	assert.True(t, upper.IsDone())

	out, err := solo.Bind[string, string, *Future[string], *Future[*Future[string]], *Future[func(string) *Future[string]]](
		upper,
		func(s string) *Future[string] { return futureValue(ctx, s+" bind") },
		Of[func(string) *Future[string]](), Of[*Future[string]](), Of[string]())
	require.NoError(t, err)

	v, err := out.Get()
	require.NoError(t, err)
	assert.Equal(t, "MONAD bind", v)

	boom := errors.New("boom")
	_, err = solo.Map[int, int, *Future[int], *Future[func(int) int]](Failed[int](boom),
		monad.Identity[int], Of[func(int) int](), Of[int]())
	assert.ErrorIs(t, err, boom, "failures are not recovered")
}

func TestLaws(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := func(i int) int { return i + 1 }
	g := func(i int) int { return i * 10 }
	k := func(i int) *Future[int] { return Instance(ctx, i*3) }
	h := func(i int) *Future[int] { return Completed(i - 1) }

	boom := errors.New("boom")
	for name, m := range map[string]*Future[int]{
		"value":  Instance(ctx, 2),
		"failed": Failed[int](boom),
	} {
		t.Run(name, func(t *testing.T) {
			assert.True(t, monad.Equivalent[int](Map(m, monad.Identity[int]), m), "identity")
			assert.True(t, monad.Equivalent[int](Map(Map(m, f), g), Map(m, monad.Compose(f, g))), "composition")
			assert.True(t, monad.Equivalent[int](Bind(m, Completed[int]), m), "right identity")
			assert.True(t, monad.Equivalent[int](
				Bind(Bind(m, k), h),
				Bind(m, func(i int) *Future[int] { return Bind(k(i), h) })), "associativity")
		})
	}

	assert.True(t, monad.Equivalent[int](Bind(Of[int]().Unit(5), k), k(5)), "left identity")
}

func TestAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	values, err := All(ctx, futureValue(ctx, 1), Completed(2), Instance(ctx, 3))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, values)

	boom := errors.New("boom")
	pending, stop := context.WithCancel(ctx)
	defer stop()
	_, err = All(ctx, Completed(1), Failed[int](boom), FromChan(pending, make(chan int)))
	assert.ErrorIs(t, err, boom)

	empty, err := All[int](ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSettle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	values, err := Settle(ctx, futureValue(ctx, 1), Completed(2))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, values)

	first := errors.New("first")
	second := errors.New("second")
	values, err = Settle(ctx, Failed[int](first), Instance(ctx, 7), Failed[int](second))
	assert.ErrorIs(t, err, first)
	assert.ErrorIs(t, err, second)
	assert.Len(t, monad.GetErrors(err), 2)
	assert.Equal(t, []int{0, 7, 0}, values)
}

func TestMethods_OverContainerTypes(t *testing.T) {
	t.Parallel()

	ctx := singleWorker()
	nested := Instance(ctx, Instance(ctx, 1)).
		Map(func(f *Future[int]) *Future[int] {
			return f.Map(func(i int) int { return i + 1 })
		}).
		Bind(func(f *Future[int]) *Future[*Future[int]] {
			return CompletedContext(ctx, f.Bind(func(i int) *Future[int] { return Instance(ctx, i*10) }))
		})

	v, err := Join(nested).Get()
	require.NoError(t, err)
	assert.Equal(t, 20, v)

	fn := Completed(func(i int) int { return i * 3 }).
		Map(func(g func(int) int) func(int) int { return monad.Compose(g, g) })
	v, err = Apply(fn, Completed(2)).Get()
	require.NoError(t, err)
	assert.Equal(t, 18, v)
}
