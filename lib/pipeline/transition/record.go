package transition

import (
	"context"
	"time"

	"ats-backend/models"
)

// Common holds the fields shared by both applicant variants.
type Common struct {
	Status        string // stage name or a terminal status
	StageID       string // id of the current stage, empty for legacy records
	CandidateID   string
	CandidateName string
	Email         string
	Phone         string
	AppliedDate   time.Time
}

// StatusContext travels with every status update.
type StatusContext struct {
	PrevStatus string
	StageID    string // empty for terminal statuses
	Reason     string // reject reason
	UserID     string // author of the change, empty for system changes
}

// StatusService is the persistence contract the engine drives.
type StatusService interface {
	UpdateApplicationStatus(ctx context.Context, applicationID, status string, sc StatusContext) (Application, error)
	UpdateAssignmentStatus(ctx context.Context, jobID, candidateID, status string, sc StatusContext) (Assignment, error)
	RejectApplication(ctx context.Context, applicationID, reason string, sc StatusContext) (Application, error)
}

// Record is a candidate's progress against one job. It is implemented only by
// Application and Assignment; each variant owns its update path.
type Record interface {
	Type() models.ApplicantType
	Base() Common
	updateStatus(ctx context.Context, service StatusService, status string, sc StatusContext) (Record, error)
	reject(ctx context.Context, service StatusService, reason string, sc StatusContext) (Record, error)
}

// Application is a candidate-initiated submission.
type Application struct {
	Common
	ApplicationID string
	JobID         string
}

func (a Application) Type() models.ApplicantType {
	return models.ApplicantTypeApplication
}

func (a Application) Base() Common {
	return a.Common
}

func (a Application) updateStatus(ctx context.Context, service StatusService, status string, sc StatusContext) (Record, error) {
	rec, err := service.UpdateApplicationStatus(ctx, a.ApplicationID, status, sc)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (a Application) reject(ctx context.Context, service StatusService, reason string, sc StatusContext) (Record, error) {
	rec, err := service.RejectApplication(ctx, a.ApplicationID, reason, sc)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Assignment is a recruiter-initiated match identified by (JobID, CandidateID).
type Assignment struct {
	Common
	JobID string
}

func (a Assignment) Type() models.ApplicantType {
	return models.ApplicantTypeAssignment
}

func (a Assignment) Base() Common {
	return a.Common
}

func (a Assignment) updateStatus(ctx context.Context, service StatusService, status string, sc StatusContext) (Record, error) {
	rec, err := service.UpdateAssignmentStatus(ctx, a.JobID, a.CandidateID, status, sc)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (a Assignment) reject(ctx context.Context, service StatusService, _ string, sc StatusContext) (Record, error) {
	rec, err := service.UpdateAssignmentStatus(ctx, a.JobID, a.CandidateID, models.ApplicantStatusRejected, sc)
	if err != nil {
		return nil, err
	}
	return rec, nil
}
