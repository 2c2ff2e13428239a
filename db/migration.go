package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	dbmodels "ats-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("running migrations")
	models := []struct {
		name  string
		model interface{}
	}{
		{"Company", &dbmodels.Company{}},
		{"Recruiter", &dbmodels.Recruiter{}},
		{"Job", &dbmodels.Job{}},
		{"Candidate", &dbmodels.Candidate{}},
		{"Application", &dbmodels.Application{}},
		{"Assignment", &dbmodels.Assignment{}},
		{"ApplicantHistory", &dbmodels.ApplicantHistory{}},
		{"Document", &dbmodels.Document{}},
		{"RejectReason", &dbmodels.RejectReason{}},
	}
	for _, item := range models {
		if err := DB.AutoMigrate(item.model); err != nil {
			return errors.Wrapf(err, "%v schema migration failed", item.name)
		}
	}
	log.Info("migrations finished")
	return nil
}
