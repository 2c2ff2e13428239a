package applicantapimodels

import (
	apimodels "ats-backend/models/api"
	dbmodels "ats-backend/models/db"
)

type ApplicantHistoryFilter struct {
	apimodels.Pagination
	CommentsOnly bool `json:"comments_only"` // Notes only
}

type ApplicantHistoryView struct {
	JobID      string                    `json:"job_id"`      // Job
	JobTitle   string                    `json:"job_title"`   // Job title
	UserID     string                    `json:"user_id"`     // Author
	UserName   string                    `json:"user_name"`   // Author name
	ActionType dbmodels.ActionType       `json:"action_type"` // Action
	Changes    dbmodels.ApplicantChanges `json:"changes"`     // Changes
	CreatedAt  string                    `json:"created_at"`  // Time of the action
}

type ApplicantNote struct {
	Note string `json:"note"` // Note text
}

func HistoryConvert(rec dbmodels.ApplicantHistory) ApplicantHistoryView {
	result := ApplicantHistoryView{
		JobID:      rec.JobID,
		UserName:   rec.UserName,
		ActionType: rec.ActionType,
		Changes:    rec.Changes,
		CreatedAt:  rec.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if rec.Job != nil {
		result.JobTitle = rec.Job.Title
	}
	if rec.UserID != nil {
		result.UserID = *rec.UserID
	}
	return result
}
