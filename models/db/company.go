package dbmodels

import (
	"github.com/pkg/errors"
)

type Company struct {
	BaseSpaceModel
	Name        string `gorm:"type:varchar(255)"`
	Website     string `gorm:"type:varchar(255)"`
	Industry    string `gorm:"type:varchar(255)"`
	Location    string `gorm:"type:varchar(255)"`
	Description string
}

func (c *Company) Validate() error {
	if err := c.BaseSpaceModel.Validate(); err != nil {
		return err
	}
	if c.Name == "" {
		return errors.New("company name is required")
	}
	return nil
}
