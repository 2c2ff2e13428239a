package documentapimodels

import (
	"time"

	dbmodels "ats-backend/models/db"
)

type DocumentView struct {
	ID          string                `json:"id"`           // Document id
	CandidateID string                `json:"candidate_id"` // Owner
	JobID       string                `json:"job_id"`       // Job the document was sent for, optional
	Name        string                `json:"name"`         // Original file name
	Type        dbmodels.DocumentType `json:"type"`         // resume, cover_letter or other
	ContentType string                `json:"content_type"` // Mime type
	Size        int64                 `json:"size"`         // Bytes
	HasText     bool                  `json:"has_text"`     // Text was extracted
	CreatedAt   time.Time             `json:"created_at"`
}

type ShareLinkView struct {
	URL       string    `json:"url"`        // Presigned download link
	ExpiresAt time.Time `json:"expires_at"` // Link expiry
}

type UploadRequest struct {
	CandidateID string
	JobID       string
	Type        dbmodels.DocumentType
	FileName    string
	ContentType string
	Body        []byte
}

func DocumentConvert(rec dbmodels.Document) DocumentView {
	result := DocumentView{
		ID:          rec.ID,
		CandidateID: rec.CandidateID,
		Name:        rec.Name,
		Type:        rec.Type,
		ContentType: rec.ContentType,
		Size:        rec.Size,
		HasText:     rec.Text != "",
		CreatedAt:   rec.CreatedAt,
	}
	if rec.JobID != nil {
		result.JobID = *rec.JobID
	}
	return result
}
