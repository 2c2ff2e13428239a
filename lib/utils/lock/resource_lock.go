package lock

import (
	"context"
	"sync"
	"sync/atomic"
)

// Resource serializes calls to the language model.
var Resource = newResourceLock()

func InitResourceLock(ctx context.Context) {
	Resource = newResourceLock()

	go func() {
		<-ctx.Done()
		Resource.Stop()
	}()
}

type ResourceLock struct {
	mu        sync.Mutex
	cond      *sync.Cond
	holder    string
	waitCount int32
	stopped   bool
}

func newResourceLock() *ResourceLock {
	lock := &ResourceLock{}
	lock.cond = sync.NewCond(&lock.mu)
	return lock
}

// Acquire blocks until the resource is free. It returns false when ctx is done or the
// lock is stopped.
func (c *ResourceLock) Acquire(ctx context.Context, holder string) bool {
	atomic.AddInt32(&c.waitCount, 1)
	defer atomic.AddInt32(&c.waitCount, -1)

	// wake waiters when ctx ends so they can leave
	stop := context.AfterFunc(ctx, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.cond.Broadcast()
	})
	defer stop()

	c.mu.Lock()
	defer c.mu.Unlock()

	for c.holder != "" && !c.stopped {
		if ctx.Err() != nil {
			return false
		}
		c.cond.Wait()
	}
	if c.stopped || ctx.Err() != nil {
		return false
	}
	c.holder = holder
	return true
}

func (c *ResourceLock) Release(holder string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.holder == holder {
		c.holder = ""
		c.cond.Broadcast()
	}
}

// Stop releases every waiter, later Acquire calls fail.
func (c *ResourceLock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopped = true
	c.cond.Broadcast()
}

func (c *ResourceLock) WaitCount() int {
	return int(atomic.LoadInt32(&c.waitCount))
}
