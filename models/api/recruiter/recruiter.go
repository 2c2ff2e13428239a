package recruiterapimodels

import (
	apimodels "ats-backend/models/api"
	dbmodels "ats-backend/models/db"
)

type RecruiterData struct {
	FirstName       string   `json:"first_name" validate:"required,max=255"`   // First name
	LastName        string   `json:"last_name" validate:"required,max=255"`    // Last name
	Email           string   `json:"email" validate:"required,email"`          // Work email
	Phone           string   `json:"phone" validate:"max=50"`                  // Phone
	Title           string   `json:"title" validate:"max=255"`                 // Position, e.g. Senior Recruiter
	Specializations []string `json:"specializations" validate:"dive,required"` // Hiring areas
	IsActive        bool     `json:"is_active"`                                // Takes new jobs
}

func (r *RecruiterData) Validate() error {
	return apimodels.ValidateStruct(r)
}

type RecruiterView struct {
	RecruiterData
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}

type RecruiterFilter struct {
	apimodels.Pagination
	Search         string `json:"search"`         // Name or email
	Specialization string `json:"specialization"` // Exact specialization
	OnlyActive     bool   `json:"only_active"`    // Skip inactive recruiters
}

func RecruiterConvert(rec dbmodels.Recruiter) RecruiterView {
	return RecruiterView{
		RecruiterData: RecruiterData{
			FirstName:       rec.FirstName,
			LastName:        rec.LastName,
			Email:           rec.Email,
			Phone:           rec.Phone,
			Title:           rec.Title,
			Specializations: rec.Specializations,
			IsActive:        rec.IsActive,
		},
		ID:       rec.ID,
		FullName: rec.GetFullName(),
	}
}
