package applicanthistorystore

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	applicantapimodels "ats-backend/models/api/applicant"
	dbmodels "ats-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.ApplicantHistory) (id string, err error)
	ListCount(spaceID, applicantID string, filter applicantapimodels.ApplicantHistoryFilter) (count int64, err error)
	List(spaceID, applicantID string, filter applicantapimodels.ApplicantHistoryFilter) (list []dbmodels.ApplicantHistory, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ApplicantHistory) (id string, err error) {
	err = i.db.
		Omit("Job").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListCount(spaceID, applicantID string, filter applicantapimodels.ApplicantHistoryFilter) (count int64, err error) {
	var rowCount int64
	tx := i.filtered(spaceID, applicantID, filter)
	err = tx.Count(&rowCount).Error
	if err != nil {
		log.WithError(err).Error("applicant history count failed")
		return 0, errors.New("applicant history count failed")
	}
	return rowCount, nil
}

func (i impl) List(spaceID, applicantID string, filter applicantapimodels.ApplicantHistoryFilter) (list []dbmodels.ApplicantHistory, err error) {
	list = []dbmodels.ApplicantHistory{}
	tx := i.filtered(spaceID, applicantID, filter)
	page, limit := filter.GetPage()
	err = tx.
		Order("created_at").
		Limit(limit).
		Offset((page - 1) * limit).
		Preload("Job").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) filtered(spaceID, applicantID string, filter applicantapimodels.ApplicantHistoryFilter) *gorm.DB {
	tx := i.db.
		Model(dbmodels.ApplicantHistory{}).
		Where("space_id = ?", spaceID).
		Where("applicant_id = ?", applicantID)
	if filter.CommentsOnly {
		tx = tx.Where("action_type = ?", dbmodels.HistoryTypeComment)
	}
	return tx
}
