package analytics

import (
	jobstatus "ats-backend/lib/job-status"
	"ats-backend/models"
	dashboardapimodels "ats-backend/models/api/dashboard"
	dbmodels "ats-backend/models/db"
)

// buildPipeline places the grouped counts of one job on its pipeline. Rows are matched
// by stage id first, then by stage name for records stored without one.
func buildPipeline(job dbmodels.Job, counts []dbmodels.StageCount) dashboardapimodels.JobPipelineView {
	stages := job.Stages()
	view := dashboardapimodels.JobPipelineView{
		JobID:     job.ID,
		Title:     job.Title,
		JobStatus: jobstatus.Instance.ComputeTime(job.Deadline, job.PostedDate),
		Stages:    make([]dashboardapimodels.StageCountView, 0, len(stages)),
	}
	for _, stage := range stages {
		view.Stages = append(view.Stages, dashboardapimodels.StageCountView{
			StageID: stage.ID,
			Name:    stage.Name,
			Order:   stage.Order,
		})
	}
	for _, row := range counts {
		if row.JobID != job.ID {
			continue
		}
		view.Total += row.Total
		switch row.Status {
		case models.ApplicantStatusRejected:
			view.Rejected += row.Total
		case models.ApplicantStatusHired:
			view.Hired += row.Total
		case models.ApplicantStatusArchived:
			view.Archived += row.Total
		default:
			k := stages.IndexOfID(row.StageID)
			if k < 0 {
				k = stages.IndexOf(row.Status)
			}
			if k < 0 {
				view.Unmatched += row.Total
				continue
			}
			view.Stages[k].Count += row.Total
		}
	}
	return view
}
