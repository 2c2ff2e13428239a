package jobapimodels

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"

	jobstatus "ats-backend/lib/job-status"
	"ats-backend/lib/pipeline/stagelist"
	"ats-backend/models"
	apimodels "ats-backend/models/api"
	dbmodels "ats-backend/models/db"
)

type JobData struct {
	Title             string          `json:"title"`                        // Job title
	Description       string          `json:"description"`                  // Description
	Location          string          `json:"location"`                     // Location
	EmploymentType    string          `json:"employment_type"`              // full-time, part-time, contract
	SalaryFrom        int             `json:"salary_from"`                  // Salary, lower bound
	SalaryTo          int             `json:"salary_to"`                    // Salary, upper bound
	CompanyID         string          `json:"company_id"`                   // Company
	RecruiterID       string          `json:"recruiter_id"`                 // Responsible recruiter
	Deadline          *string         `json:"deadline"`                     // ISO date
	ApplicationStages json.RawMessage `json:"application_stages,omitempty"` // stages as an array or its JSON text
}

func (j JobData) Validate() error {
	if strings.TrimSpace(j.Title) == "" {
		return errors.New("job title is required")
	}
	if j.SalaryFrom < 0 || j.SalaryTo < 0 {
		return errors.New("salary can not be negative")
	}
	if j.SalaryTo != 0 && j.SalaryFrom > j.SalaryTo {
		return errors.New("salary lower bound exceeds the upper bound")
	}
	if j.Deadline != nil && strings.TrimSpace(*j.Deadline) != "" && jobstatus.ParseDate(j.Deadline) == nil {
		return errors.New("deadline must be an ISO date")
	}
	return nil
}

// Stages reads the submitted pipeline, nil when the request carries none or null.
func (j JobData) Stages() (stagelist.List, error) {
	text := strings.TrimSpace(string(j.ApplicationStages))
	if text == "" || text == "null" {
		return nil, nil
	}
	list, err := stagelist.Parse(j.ApplicationStages)
	if err != nil {
		return nil, ErrMalformedStages
	}
	return list, nil
}

type JobView struct {
	JobData
	ID                string           `json:"id"`
	CompanyName       string           `json:"company_name"`
	PostedDate        *string          `json:"posted_date"`
	JobStatus         models.JobStatus `json:"job_status"`
	Status            models.JobStatus `json:"status"` // legacy alias of job_status
	ApplicationStages stagelist.List   `json:"application_stages"`
	CreatedAt         time.Time        `json:"created_at"`
}

type JobFilter struct {
	apimodels.Pagination
	Search    string             `json:"search"`     // Title search
	CompanyID string             `json:"company_id"` // Company filter
	Statuses  []models.JobStatus `json:"statuses"`   // Status filter
}

func (f JobFilter) Validate() error {
	for _, status := range f.Statuses {
		if !status.IsValid() {
			return errors.Errorf("unknown job status %q", status)
		}
	}
	return nil
}

func (f JobFilter) DBFilter() dbmodels.JobFilter {
	return dbmodels.JobFilter{
		Search:    f.Search,
		CompanyID: f.CompanyID,
		Statuses:  f.Statuses,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	value := t.Format("2006-01-02")
	return &value
}

func JobConvert(rec dbmodels.Job) JobView {
	result := JobView{
		JobData: JobData{
			Title:          rec.Title,
			Description:    rec.Description,
			Location:       rec.Location,
			EmploymentType: rec.EmploymentType,
			SalaryFrom:     rec.SalaryFrom,
			SalaryTo:       rec.SalaryTo,
			Deadline:       formatDate(rec.Deadline),
		},
		ID:                rec.ID,
		PostedDate:        formatDate(rec.PostedDate),
		JobStatus:         rec.JobStatus,
		Status:            rec.JobStatus,
		ApplicationStages: rec.Stages(),
		CreatedAt:         rec.CreatedAt,
	}
	if rec.CompanyID != nil {
		result.CompanyID = *rec.CompanyID
	}
	if rec.RecruiterID != nil {
		result.RecruiterID = *rec.RecruiterID
	}
	if rec.Company != nil {
		result.CompanyName = rec.Company.Name
	}
	return result
}
