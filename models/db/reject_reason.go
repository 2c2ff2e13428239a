package dbmodels

import (
	"github.com/pkg/errors"

	"ats-backend/models"
)

type RejectReason struct {
	BaseSpaceModel
	Initiator models.RejectInitiator `gorm:"type:varchar(255)"`
	Name      string                 `gorm:"type:varchar(255)"`
}

func (r RejectReason) Validate() error {
	if err := r.BaseSpaceModel.Validate(); err != nil {
		return err
	}
	if r.Name == "" {
		return errors.New("reject reason is empty")
	}
	return r.Initiator.IsValid()
}
