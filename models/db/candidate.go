package dbmodels

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
)

type Candidate struct {
	BaseSpaceModel
	FirstName  string         `gorm:"type:varchar(255)"`
	LastName   string         `gorm:"type:varchar(255)"`
	Email      string         `gorm:"type:varchar(255);index"`
	Phone      string         `gorm:"type:varchar(255)"`
	Location   string         `gorm:"type:varchar(255)"`
	Skills     pq.StringArray `gorm:"type:text[]"`
	ResumeText string
}

func (c Candidate) GetFullName() string {
	return strings.TrimSpace(fmt.Sprintf("%v %v", c.FirstName, c.LastName))
}
