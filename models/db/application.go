package dbmodels

import (
	"time"
)

// Application is a candidate-initiated submission to a job.
type Application struct {
	BaseSpaceModel
	JobID        string     `gorm:"type:varchar(36);index"`
	Job          *Job       `gorm:"foreignKey:JobID"`
	CandidateID  string     `gorm:"type:varchar(36);index"`
	Candidate    *Candidate `gorm:"foreignKey:CandidateID"`
	Status       string     `gorm:"type:varchar(255);index"`
	StageID      string     `gorm:"type:varchar(36)"`
	AppliedDate  time.Time
	CoverLetter  string
	RejectReason string
	RejectedAt   *time.Time
	AtsAnalysis  string // opaque text from the ats analysis service
}

// Assignment is a recruiter-initiated match of a candidate to a job.
type Assignment struct {
	BaseSpaceModel
	JobID        string     `gorm:"type:varchar(36);uniqueIndex:idx_assignment"`
	Job          *Job       `gorm:"foreignKey:JobID"`
	CandidateID  string     `gorm:"type:varchar(36);uniqueIndex:idx_assignment"`
	Candidate    *Candidate `gorm:"foreignKey:CandidateID"`
	RecruiterID  *string    `gorm:"type:varchar(36)"`
	Status       string     `gorm:"type:varchar(255);index"`
	StageID      string     `gorm:"type:varchar(36)"`
	AppliedDate  time.Time
	RejectReason string
	RejectedAt   *time.Time
}

// StageCount is one row of applicants grouped by status and stage.
type StageCount struct {
	JobID   string
	Status  string
	StageID string
	Total   int64
}
