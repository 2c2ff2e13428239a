package dbmodels

import (
	"time"

	"ats-backend/lib/pipeline/stagelist"
	"ats-backend/models"
)

type Job struct {
	BaseSpaceModel
	CompanyID         *string `gorm:"type:varchar(36);index"`
	Company           *Company
	RecruiterID       *string `gorm:"type:varchar(36)"`
	Title             string  `gorm:"type:varchar(255)"`
	Description       string
	Location          string `gorm:"type:varchar(255)"`
	EmploymentType    string `gorm:"type:varchar(100)"`
	SalaryFrom        int
	SalaryTo          int
	Deadline          *time.Time
	PostedDate        *time.Time
	JobStatus         models.JobStatus `gorm:"type:varchar(50);index"`
	ApplicationStages string           // JSON []stagelist.Stage
}

// Stages decodes the stored pipeline, falling back to the default one.
func (j Job) Stages() stagelist.List {
	return stagelist.Decode(j.ApplicationStages)
}

type JobFilter struct {
	Search    string             `json:"search"`
	CompanyID string             `json:"company_id"`
	Statuses  []models.JobStatus `json:"statuses"`
}
