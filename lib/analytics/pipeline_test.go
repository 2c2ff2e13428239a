package analytics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ats-backend/lib/pipeline/stagelist"
	"ats-backend/models"
	dbmodels "ats-backend/models/db"
)

func TestBuildPipeline(t *testing.T) {
	stages := stagelist.List{
		{ID: "s1", Name: "Applied", Order: 1},
		{ID: "s2", Name: "Phone screen", Order: 2},
		{ID: "s3", Name: "Offer", Order: 3},
	}
	encoded, err := stagelist.Encode(stages)
	require.Nil(t, err)
	job := dbmodels.Job{Title: "Go developer", ApplicationStages: encoded}
	job.ID = "job-1"

	counts := []dbmodels.StageCount{
		{JobID: "job-1", Status: "Applied", StageID: "s1", Total: 4},
		// renamed stage, the stored status still carries the old name
		{JobID: "job-1", Status: "Screening", StageID: "s2", Total: 2},
		// legacy rows without a stage id
		{JobID: "job-1", Status: "Offer", Total: 1},
		{JobID: "job-1", Status: "Technical", Total: 3},
		{JobID: "job-1", Status: models.ApplicantStatusRejected, Total: 5},
		{JobID: "job-1", Status: models.ApplicantStatusHired, Total: 1},
		{JobID: "job-2", Status: "Applied", StageID: "s1", Total: 9},
	}

	view := buildPipeline(job, counts)
	require.Equal(t, "job-1", view.JobID)
	require.Equal(t, int64(16), view.Total)
	require.Len(t, view.Stages, 3)
	require.Equal(t, int64(4), view.Stages[0].Count)
	require.Equal(t, "Phone screen", view.Stages[1].Name)
	require.Equal(t, int64(2), view.Stages[1].Count)
	require.Equal(t, int64(1), view.Stages[2].Count)
	require.Equal(t, int64(3), view.Unmatched)
	require.Equal(t, int64(5), view.Rejected)
	require.Equal(t, int64(1), view.Hired)
	require.Equal(t, models.JobStatusDraft, view.JobStatus)

	t.Run(`default pipeline`, func(t *testing.T) {
		job := dbmodels.Job{Title: "Designer"}
		job.ID = "job-3"
		view := buildPipeline(job, []dbmodels.StageCount{{JobID: "job-3", Status: stagelist.InterviewStage, Total: 2}})
		require.Len(t, view.Stages, 4)
		require.Equal(t, int64(2), view.Stages[2].Count)
	})
}
