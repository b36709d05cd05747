package poll

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReconcilerFetchesImmediatelyThenOnInterval(t *testing.T) {
	var fetches atomic.Int32
	applied := make(chan []int, 16)

	r := New(20*time.Millisecond,
		func(ctx context.Context) ([]int, error) {
			fetches.Add(1)
			return []int{int(fetches.Load())}, nil
		},
		func(items []int) { applied <- items },
	)

	r.Start(context.Background())
	defer r.Stop()

	select {
	case first := <-applied:
		require.Equal(t, []int{1}, first, "first fetch fires without waiting for the interval")
	case <-time.After(time.Second):
		t.Fatal("no immediate fetch")
	}

	select {
	case <-applied:
	case <-time.After(time.Second):
		t.Fatal("no second fetch after the interval")
	}
}

func TestReconcilerNeverOverlapsFetches(t *testing.T) {
	var inFlight atomic.Int32
	var overlapped atomic.Bool

	r := New(time.Millisecond,
		func(ctx context.Context) ([]int, error) {
			if inFlight.Add(1) > 1 {
				overlapped.Store(true)
			}
			time.Sleep(10 * time.Millisecond) // slower than the interval
			inFlight.Add(-1)
			return nil, nil
		},
		func([]int) {},
	)

	r.Start(context.Background())
	time.Sleep(100 * time.Millisecond)
	r.Stop()

	require.False(t, overlapped.Load(), "next tick must wait for the previous fetch to settle")
}

func TestReconcilerSwallowsFetchErrors(t *testing.T) {
	var fetches atomic.Int32
	applied := make(chan []int, 16)

	r := New(5*time.Millisecond,
		func(ctx context.Context) ([]int, error) {
			if fetches.Add(1) == 1 {
				return nil, errors.New("backend down")
			}
			return []int{42}, nil
		},
		func(items []int) { applied <- items },
	)

	r.Start(context.Background())
	defer r.Stop()

	// The loop keeps going after the failure
	select {
	case items := <-applied:
		require.Equal(t, []int{42}, items)
	case <-time.After(time.Second):
		t.Fatal("loop stopped after a fetch error")
	}
}

func TestReconcilerStopDiscardsInFlightResult(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var appliedAfterStop atomic.Bool

	r := New(time.Minute,
		func(ctx context.Context) ([]int, error) {
			close(started)
			<-release
			return []int{1}, nil
		},
		func([]int) { appliedAfterStop.Store(true) },
	)

	r.Start(context.Background())
	<-started

	go func() {
		time.Sleep(10 * time.Millisecond)
		close(release)
	}()
	r.Stop()

	require.False(t, appliedAfterStop.Load(), "a response settling after Stop must be discarded")
}

func TestReconcilerStartIsIdempotentWhileRunning(t *testing.T) {
	var fetches atomic.Int32

	r := New(time.Hour,
		func(ctx context.Context) ([]int, error) {
			fetches.Add(1)
			return nil, nil
		},
		func([]int) {},
	)

	r.Start(context.Background())
	r.Start(context.Background())
	r.Start(context.Background())

	time.Sleep(50 * time.Millisecond)
	r.Stop()

	require.Equal(t, int32(1), fetches.Load(), "only one loop may run")
}

func TestReconcilerStopTwice(t *testing.T) {
	r := New(time.Hour,
		func(ctx context.Context) ([]int, error) { return nil, nil },
		func([]int) {},
	)

	r.Start(context.Background())
	r.Stop()
	r.Stop() // no-op, must not panic or hang
}
