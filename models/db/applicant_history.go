package dbmodels

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/pkg/errors"

	"ats-backend/models"
)

type ApplicantHistory struct {
	BaseSpaceModel
	ApplicantID   string               `gorm:"type:varchar(36);index"` // application id or assignment id
	ApplicantType models.ApplicantType `gorm:"type:varchar(50)"`
	JobID         string               `gorm:"type:varchar(36)"`
	Job           *Job                 `gorm:"foreignKey:JobID"`
	UserID        *string
	UserName      string
	ActionType    ActionType       `gorm:"type:varchar(255)"`
	Changes       ApplicantChanges `gorm:"type:jsonb"`
}

func (j ApplicantChanges) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *ApplicantChanges) Scan(value interface{}) error {
	var body []byte
	switch v := value.(type) {
	case []byte:
		body = v
	case string:
		body = []byte(v)
	default:
		return errors.Errorf("unsupported changes type %T", value)
	}
	return json.Unmarshal(body, j)
}

type ApplicantChanges struct {
	Description string            `json:"description"` // Human readable summary
	Data        []ApplicantChange `json:"data"`        // Changed fields
}

type ApplicantChange struct {
	Field    string      `json:"field"`     // Changed field
	OldValue interface{} `json:"old_value"` // Previous value
	NewValue interface{} `json:"new_value"` // New value
}

type ActionType string

const (
	HistoryTypeAdded       ActionType = "added"        // Applicant created
	HistoryTypeStageChange ActionType = "stage_change" // Applicant moved to another stage
	HistoryTypeReject      ActionType = "reject"       // Applicant rejected
	HistoryTypeComment     ActionType = "comment"      // Note added
	HistoryTypeAtsAnalysis ActionType = "ats_analysis" // Ats analysis stored
)
