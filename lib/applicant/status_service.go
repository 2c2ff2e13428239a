package applicant

import (
	"context"
	"time"

	"github.com/pkg/errors"

	applicationstore "ats-backend/lib/applicant/application-store"
	assignmentstore "ats-backend/lib/applicant/assignment-store"
	"ats-backend/lib/pipeline/transition"
	"ats-backend/models"
	applicantapimodels "ats-backend/models/api/applicant"
)

// statusService persists transitions of one space.
type statusService struct {
	spaceID          string
	applicationStore applicationstore.Provider
	assignmentStore  assignmentstore.Provider
	now              func() time.Time
}

func (s statusService) UpdateApplicationStatus(_ context.Context, applicationID, status string, sc transition.StatusContext) (transition.Application, error) {
	rec, err := s.applicationStore.GetByID(s.spaceID, applicationID)
	if err != nil {
		return transition.Application{}, err
	}
	if rec == nil {
		return transition.Application{}, errors.New("application not found")
	}
	if rec.Status != status {
		updMap := statusUpdate(status, sc, s.now())
		if err = s.applicationStore.Update(s.spaceID, applicationID, updMap); err != nil {
			return transition.Application{}, err
		}
	}
	return s.reloadApplication(applicationID)
}

func (s statusService) UpdateAssignmentStatus(_ context.Context, jobID, candidateID, status string, sc transition.StatusContext) (transition.Assignment, error) {
	rec, err := s.assignmentStore.Get(s.spaceID, jobID, candidateID)
	if err != nil {
		return transition.Assignment{}, err
	}
	if rec == nil {
		return transition.Assignment{}, errors.New("assignment not found")
	}
	if rec.Status != status {
		updMap := statusUpdate(status, sc, s.now())
		if err = s.assignmentStore.Update(s.spaceID, jobID, candidateID, updMap); err != nil {
			return transition.Assignment{}, err
		}
	}
	rec, err = s.assignmentStore.Get(s.spaceID, jobID, candidateID)
	if err != nil {
		return transition.Assignment{}, err
	}
	if rec == nil {
		return transition.Assignment{}, errors.New("assignment not found")
	}
	return applicantapimodels.AssignmentRecord(*rec), nil
}

func (s statusService) RejectApplication(ctx context.Context, applicationID, reason string, sc transition.StatusContext) (transition.Application, error) {
	sc.Reason = reason
	return s.UpdateApplicationStatus(ctx, applicationID, models.ApplicantStatusRejected, sc)
}

func (s statusService) reloadApplication(applicationID string) (transition.Application, error) {
	rec, err := s.applicationStore.GetByID(s.spaceID, applicationID)
	if err != nil {
		return transition.Application{}, err
	}
	if rec == nil {
		return transition.Application{}, errors.New("application not found")
	}
	return applicantapimodels.ApplicationRecord(*rec), nil
}

func statusUpdate(status string, sc transition.StatusContext, now time.Time) map[string]interface{} {
	updMap := map[string]interface{}{
		"status":   status,
		"stage_id": sc.StageID,
	}
	if status == models.ApplicantStatusRejected {
		updMap["reject_reason"] = sc.Reason
		updMap["rejected_at"] = now
	}
	return updMap
}
