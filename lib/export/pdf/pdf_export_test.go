package pdfexport

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"ats-backend/models"
	dashboardapimodels "ats-backend/models/api/dashboard"
)

func TestPipelineSummary(t *testing.T) {
	view := dashboardapimodels.JobPipelineView{
		Title:     "Go developer",
		JobStatus: models.JobStatusActive,
		Total:     6,
		Stages: []dashboardapimodels.StageCountView{
			{Name: "Applied", Order: 1, Count: 3},
			{Name: "Screening", Order: 2, Count: 1},
			{Name: "Offer", Order: 3},
		},
		Rejected:  1,
		Hired:     1,
		Unmatched: 0,
	}
	body, err := PipelineSummary(view)
	require.Nil(t, err)
	require.True(t, bytes.HasPrefix(body, []byte("%PDF-")))

	t.Run(`empty pipeline`, func(t *testing.T) {
		body, err := PipelineSummary(dashboardapimodels.JobPipelineView{Title: "Résumé reviewer"})
		require.Nil(t, err)
		require.NotEmpty(t, body)
	})
}
