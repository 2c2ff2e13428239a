package analytics

import (
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/require"

	applicationstore "ats-backend/lib/applicant/application-store"
	assignmentstore "ats-backend/lib/applicant/assignment-store"
	jobstore "ats-backend/lib/job/store"
	"ats-backend/models"
	dbmodels "ats-backend/models/db"
)

type fakeJobStore struct {
	jobstore.Provider
	jobs  []dbmodels.Job
	calls int
}

func (f *fakeJobStore) ListAll(_ string) ([]dbmodels.Job, error) {
	f.calls++
	return f.jobs, nil
}

func (f *fakeJobStore) GetByID(_, id string) (*dbmodels.Job, error) {
	for _, job := range f.jobs {
		if job.ID == id {
			return &job, nil
		}
	}
	return nil, nil
}

type fakeApplicationCounts struct {
	applicationstore.Provider
	counts []dbmodels.StageCount
}

func (f fakeApplicationCounts) CountByStatus(_ string, _ []string) ([]dbmodels.StageCount, error) {
	return f.counts, nil
}

type fakeAssignmentCounts struct {
	assignmentstore.Provider
	counts []dbmodels.StageCount
}

func (f fakeAssignmentCounts) CountByStatus(_ string, _ []string) ([]dbmodels.StageCount, error) {
	return f.counts, nil
}

func newTestHandler() (impl, *fakeJobStore) {
	posted := time.Now().AddDate(0, 0, -10)
	open := dbmodels.Job{Title: "Backend engineer", PostedDate: &posted}
	open.ID = "job-1"
	draft := dbmodels.Job{Title: "Designer"}
	draft.ID = "job-2"
	jobs := &fakeJobStore{jobs: []dbmodels.Job{open, draft}}
	return impl{
		jobStore: jobs,
		applicationStore: fakeApplicationCounts{counts: []dbmodels.StageCount{
			{JobID: "job-1", Status: "Applied", Total: 3},
			{JobID: "job-1", Status: models.ApplicantStatusHired, Total: 1},
		}},
		assignmentStore: fakeAssignmentCounts{counts: []dbmodels.StageCount{
			{JobID: "job-2", Status: "Applied", Total: 2},
		}},
		cache: cache.New(time.Minute, time.Minute),
	}, jobs
}

func TestDashboard(t *testing.T) {
	handler, jobs := newTestHandler()

	view, err := handler.Dashboard("space-1")
	require.Nil(t, err)
	require.Equal(t, int64(6), view.Applicants)
	require.Equal(t, int64(1), view.Hired)
	require.Len(t, view.Jobs, 2)
	require.Equal(t, 1, view.JobsByStatus[models.JobStatusDraft])
	require.Equal(t, 1, jobs.calls)

	t.Run(`served from cache`, func(t *testing.T) {
		cached, err := handler.Dashboard("space-1")
		require.Nil(t, err)
		require.Equal(t, view, cached)
		require.Equal(t, 1, jobs.calls)
	})

	t.Run(`spaces are cached separately`, func(t *testing.T) {
		_, err := handler.Dashboard("space-2")
		require.Nil(t, err)
		require.Equal(t, 2, jobs.calls)
	})
}

func TestJobPipeline(t *testing.T) {
	handler, _ := newTestHandler()

	view, hMsg, err := handler.JobPipeline("space-1", "job-1")
	require.Nil(t, err)
	require.Empty(t, hMsg)
	require.Equal(t, "Backend engineer", view.Title)
	require.Equal(t, int64(1), view.Hired)

	_, hMsg, err = handler.JobPipeline("space-1", "missing")
	require.Nil(t, err)
	require.Equal(t, "job not found", hMsg)
}
