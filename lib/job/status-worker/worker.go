package jobstatusworker

import (
	"context"
	"time"

	jobhandler "ats-backend/lib/job"
	baseworker "ats-backend/lib/utils/base-worker"
)

// StartWorker keeps the stored job statuses in step with the calendar so that
// status filters in job lists stay accurate between edits.
func StartWorker(ctx context.Context) {
	i := &impl{
		BaseImpl: *baseworker.NewInstance("JobStatusWorker", 30*time.Second, 60*time.Minute),
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
}

func (i impl) handle(ctx context.Context) {
	if err := jobhandler.Instance.RefreshStatuses(ctx); err != nil {
		i.GetLogger().WithError(err).Error("job status refresh failed")
	}
}
