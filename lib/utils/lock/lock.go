package lock

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
)

var (
	lockMap sync.Map

	ErrInProgress = errors.New("operation already in progress")
)

// WithDelay waits up to wait for the key and runs safeCode while holding it.
func WithDelay(ctx context.Context, key string, wait time.Duration, safeCode func() error) (success bool, err error) {
	isLocked := false
	isTimeout := time.After(wait)
	for {
		if _, loaded := lockMap.LoadOrStore(key, true); !loaded {
			isLocked = true
			break
		}
		select {
		case <-isTimeout:
			return false, nil
		case <-ctx.Done():
			return false, nil
		default:
			time.Sleep(50 * time.Millisecond)
		}
	}
	if isLocked {
		defer lockMap.Delete(key)
		return true, safeCode()
	}
	return false, nil
}

// TryRun runs safeCode only when nothing else holds the key, otherwise it returns
// ErrInProgress at once.
func TryRun(key string, safeCode func() error) error {
	if _, loaded := lockMap.LoadOrStore(key, true); loaded {
		return ErrInProgress
	}
	defer lockMap.Delete(key)
	return safeCode()
}

func IsLocked(key string) bool {
	_, ok := lockMap.Load(key)
	return ok
}
