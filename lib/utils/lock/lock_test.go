package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestTryRun(t *testing.T) {
	t.Run(`second caller is refused while the first runs`, func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		done := make(chan error)
		go func() {
			done <- TryRun("applicant-1", func() error {
				close(started)
				<-release
				return nil
			})
		}()
		<-started
		require.True(t, IsLocked("applicant-1"))
		err := TryRun("applicant-1", func() error {
			t.Fatal("must not run")
			return nil
		})
		require.True(t, errors.Is(err, ErrInProgress))

		// other keys are independent
		require.Nil(t, TryRun("applicant-2", func() error { return nil }))

		close(release)
		require.Nil(t, <-done)
		require.False(t, IsLocked("applicant-1"))
	})

	t.Run(`key released after failure`, func(t *testing.T) {
		err := TryRun("applicant-3", func() error { return errors.New("network") })
		require.EqualError(t, err, "network")
		require.False(t, IsLocked("applicant-3"))
	})
}

func TestWithDelay(t *testing.T) {
	ctx := context.TODO()
	lockMap.Store("busy", true)
	success, err := WithDelay(ctx, "busy", 100*time.Millisecond, func() error { return nil })
	require.False(t, success)
	require.Nil(t, err)
	lockMap.Delete("busy")

	success, err = WithDelay(ctx, "busy", 100*time.Millisecond, func() error { return nil })
	require.True(t, success)
	require.Nil(t, err)
}

func TestResourceLock(t *testing.T) {
	lock := newResourceLock()
	require.True(t, lock.Acquire(context.TODO(), "first"))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.False(t, lock.Acquire(ctx, "second"))

	wg := sync.WaitGroup{}
	wg.Add(1)
	acquired := false
	go func() {
		defer wg.Done()
		acquired = lock.Acquire(context.TODO(), "third")
	}()
	time.Sleep(20 * time.Millisecond)
	lock.Release("first")
	wg.Wait()
	require.True(t, acquired)

	lock.Stop()
	require.False(t, lock.Acquire(context.TODO(), "fourth"))
}
