package dbmodels

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
)

type Recruiter struct {
	BaseSpaceModel
	FirstName       string         `gorm:"type:varchar(255)"`
	LastName        string         `gorm:"type:varchar(255)"`
	Email           string         `gorm:"type:varchar(255);index"`
	Phone           string         `gorm:"type:varchar(255)"`
	Title           string         `gorm:"type:varchar(255)"`
	Specializations pq.StringArray `gorm:"type:text[]"`
	IsActive        bool
}

func (r Recruiter) GetFullName() string {
	return strings.TrimSpace(fmt.Sprintf("%v %v", r.FirstName, r.LastName))
}
