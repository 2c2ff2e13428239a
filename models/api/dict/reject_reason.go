package dictapimodels

import (
	"github.com/pkg/errors"

	"ats-backend/models"
	dbmodels "ats-backend/models/db"
)

type RejectReasonFind struct {
	Search    string                 `json:"search"`    // Substring of the reason
	Initiator models.RejectInitiator `json:"initiator"` // Initiator filter
}

type RejectReasonData struct {
	Initiator models.RejectInitiator `json:"initiator"` // Who refuses
	Name      string                 `json:"name"`      // Reason text
}

type RejectReasonView struct {
	RejectReasonData
	ID        string `json:"id"`         // Empty for built-in reasons
	CanChange bool   `json:"can_change"` // False for built-in reasons
}

func (j RejectReasonData) Validate() error {
	if j.Initiator == "" {
		return errors.New("reject initiator is required")
	}
	err := j.Initiator.IsValid()
	if err != nil {
		return err
	}
	if j.Name == "" {
		return errors.New("reject reason is required")
	}
	return nil
}

func RejectReasonConvert(rec dbmodels.RejectReason) RejectReasonView {
	return RejectReasonView{
		RejectReasonData: RejectReasonData{
			Name:      rec.Name,
			Initiator: rec.Initiator,
		},
		ID:        rec.ID,
		CanChange: true,
	}
}
