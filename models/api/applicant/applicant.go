package applicantapimodels

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"ats-backend/lib/pipeline/transition"
	"ats-backend/models"
	apimodels "ats-backend/models/api"
	dbmodels "ats-backend/models/db"
)

type CandidateData struct {
	FirstName  string   `json:"first_name"`  // First name
	LastName   string   `json:"last_name"`   // Last name
	Email      string   `json:"email"`       // Email
	Phone      string   `json:"phone"`       // Phone
	Location   string   `json:"location"`    // City, country
	Skills     []string `json:"skills"`      // Skills
	ResumeText string   `json:"resume_text"` // Plain resume text
}

func (c CandidateData) Validate() error {
	if strings.TrimSpace(c.FirstName) == "" && strings.TrimSpace(c.LastName) == "" {
		return errors.New("candidate name is required")
	}
	if c.Email == "" && c.Phone == "" {
		return errors.New("candidate email or phone is required")
	}
	return nil
}

type CandidateView struct {
	CandidateData
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}

func CandidateConvert(rec dbmodels.Candidate) CandidateView {
	return CandidateView{
		CandidateData: CandidateData{
			FirstName:  rec.FirstName,
			LastName:   rec.LastName,
			Email:      rec.Email,
			Phone:      rec.Phone,
			Location:   rec.Location,
			Skills:     rec.Skills,
			ResumeText: rec.ResumeText,
		},
		ID:       rec.ID,
		FullName: rec.GetFullName(),
	}
}

// ApplicationData is a candidate-initiated submission. Either CandidateID or Candidate is set.
type ApplicationData struct {
	JobID       string         `json:"job_id"`       // Job
	CandidateID string         `json:"candidate_id"` // Existing candidate
	Candidate   *CandidateData `json:"candidate"`    // New candidate
	CoverLetter string         `json:"cover_letter"` // Cover letter
}

func (a ApplicationData) Validate() error {
	if a.JobID == "" {
		return errors.New("job is required")
	}
	if a.CandidateID == "" {
		if a.Candidate == nil {
			return errors.New("candidate is required")
		}
		return a.Candidate.Validate()
	}
	return nil
}

// AssignmentData is a recruiter-initiated match of an existing candidate.
type AssignmentData struct {
	JobID       string `json:"job_id"`       // Job
	CandidateID string `json:"candidate_id"` // Candidate
	RecruiterID string `json:"recruiter_id"` // Recruiter, the author when empty
}

func (a AssignmentData) Validate() error {
	if a.JobID == "" {
		return errors.New("job is required")
	}
	if a.CandidateID == "" {
		return errors.New("candidate is required")
	}
	return nil
}

type RejectRequest struct {
	Reason    string                 `json:"reason"`    // Free text reason
	Initiator models.RejectInitiator `json:"initiator"` // Who refused, optional
}

func (r RejectRequest) Validate() error {
	if r.Initiator != "" {
		return r.Initiator.IsValid()
	}
	return nil
}

type CloseRequest struct {
	Status string `json:"status"` // Hired or Archived
}

type ApplicantView struct {
	ID            string               `json:"id"`             // Application or assignment id
	Type          models.ApplicantType `json:"type"`           // application or assignment
	JobID         string               `json:"job_id"`         // Job
	CandidateID   string               `json:"candidate_id"`   // Candidate
	CandidateName string               `json:"candidate_name"` // Candidate full name
	Email         string               `json:"email"`          // Email
	Phone         string               `json:"phone"`          // Phone
	Status        string               `json:"status"`         // Stage name or Rejected/Hired/Archived
	StageID       string               `json:"stage_id"`       // Current stage id
	AppliedDate   time.Time            `json:"applied_date"`   // Date applied or assigned
	RejectReason  string               `json:"reject_reason"`  // Reject reason
	AtsAnalysis   string               `json:"ats_analysis"`   // Ats analysis text
	State         transition.State     `json:"state"`          // Allowed actions
}

func ApplicationRecord(rec dbmodels.Application) transition.Application {
	result := transition.Application{
		Common: transition.Common{
			Status:      rec.Status,
			StageID:     rec.StageID,
			CandidateID: rec.CandidateID,
			AppliedDate: rec.AppliedDate,
		},
		ApplicationID: rec.ID,
		JobID:         rec.JobID,
	}
	fillCandidate(&result.Common, rec.Candidate)
	return result
}

func AssignmentRecord(rec dbmodels.Assignment) transition.Assignment {
	result := transition.Assignment{
		Common: transition.Common{
			Status:      rec.Status,
			StageID:     rec.StageID,
			CandidateID: rec.CandidateID,
			AppliedDate: rec.AppliedDate,
		},
		JobID: rec.JobID,
	}
	fillCandidate(&result.Common, rec.Candidate)
	return result
}

func fillCandidate(common *transition.Common, candidate *dbmodels.Candidate) {
	if candidate == nil {
		return
	}
	common.CandidateName = candidate.GetFullName()
	common.Email = candidate.Email
	common.Phone = candidate.Phone
}

// Convert builds the wire view of a record; id is the application or assignment row id.
func Convert(id string, rec transition.Record, state transition.State) ApplicantView {
	base := rec.Base()
	result := ApplicantView{
		ID:            id,
		Type:          rec.Type(),
		CandidateID:   base.CandidateID,
		CandidateName: base.CandidateName,
		Email:         base.Email,
		Phone:         base.Phone,
		Status:        base.Status,
		StageID:       base.StageID,
		AppliedDate:   base.AppliedDate,
		State:         state,
	}
	switch v := rec.(type) {
	case transition.Application:
		result.JobID = v.JobID
	case transition.Assignment:
		result.JobID = v.JobID
	}
	return result
}

type CandidateFilter struct {
	apimodels.Pagination
	Search string `json:"search"` // Name, email or phone
}
