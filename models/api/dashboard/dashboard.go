package dashboardapimodels

import (
	"ats-backend/models"
)

type StageCountView struct {
	StageID string `json:"stage_id"` // Stage id
	Name    string `json:"name"`     // Stage name
	Order   int    `json:"order"`    // 1-based position
	Count   int64  `json:"count"`    // Applicants in the stage
}

type JobPipelineView struct {
	JobID     string           `json:"job_id"`
	Title     string           `json:"title"`
	JobStatus models.JobStatus `json:"job_status"`
	Total     int64            `json:"total"`     // All applicants of the job
	Stages    []StageCountView `json:"stages"`    // Active applicants per stage, pipeline order
	Rejected  int64            `json:"rejected"`  // Terminal Rejected
	Hired     int64            `json:"hired"`     // Terminal Hired
	Archived  int64            `json:"archived"`  // Terminal Archived
	Unmatched int64            `json:"unmatched"` // Status matches no stage of the pipeline
}

type DashboardView struct {
	JobsByStatus map[models.JobStatus]int `json:"jobs_by_status"` // Job count per derived status
	Jobs         []JobPipelineView        `json:"jobs"`           // Pipelines of the jobs
	Applicants   int64                    `json:"applicants"`     // All applicants of the space
	Hired        int64                    `json:"hired"`          // Hired in the space
}
