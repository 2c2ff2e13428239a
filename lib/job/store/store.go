package jobstore

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbmodels "ats-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Job) (id string, err error)
	Update(spaceID, id string, updMap map[string]interface{}) error
	GetByID(spaceID, id string) (rec *dbmodels.Job, err error)
	Delete(spaceID, id string) error
	ListCount(spaceID string, filter dbmodels.JobFilter) (count int64, err error)
	List(spaceID string, filter dbmodels.JobFilter, page, limit int) (list []dbmodels.Job, err error)
	ListAll(spaceID string) (list []dbmodels.Job, err error)
	UpdateStages(spaceID, id, stages string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Job) (id string, err error) {
	err = i.db.
		Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(spaceID, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Job{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Updates(updMap)
	if err := tx.Error; err != nil {
		return err
	}
	if tx.RowsAffected == 0 {
		return errors.New("job not found")
	}
	return nil
}

func (i impl) UpdateStages(spaceID, id, stages string) error {
	return i.Update(spaceID, id, map[string]interface{}{
		"application_stages": stages,
	})
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.Job, error) {
	rec := dbmodels.Job{}
	err := i.db.
		Model(&dbmodels.Job{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Preload("Company").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Delete(spaceID, id string) error {
	return i.db.
		Where("space_id = ?", spaceID).
		Where("id = ?", id).
		Delete(&dbmodels.Job{}).
		Error
}

func (i impl) ListCount(spaceID string, filter dbmodels.JobFilter) (count int64, err error) {
	tx := i.db.
		Model(&dbmodels.Job{}).
		Where("space_id = ?", spaceID)
	i.addFilter(tx, filter)
	err = tx.Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) List(spaceID string, filter dbmodels.JobFilter, page, limit int) (list []dbmodels.Job, err error) {
	list = []dbmodels.Job{}
	tx := i.db.
		Model(&dbmodels.Job{}).
		Where("space_id = ?", spaceID)
	i.addFilter(tx, filter)
	offset := (page - 1) * limit
	err = tx.
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Preload("Company").
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

func (i impl) ListAll(spaceID string) (list []dbmodels.Job, err error) {
	list = []dbmodels.Job{}
	tx := i.db.Model(&dbmodels.Job{})
	if spaceID != "" {
		tx = tx.Where("space_id = ?", spaceID)
	}
	err = tx.Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) addFilter(tx *gorm.DB, filter dbmodels.JobFilter) {
	if filter.Search != "" {
		tx.Where("LOWER(title) like ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	if filter.CompanyID != "" {
		tx.Where("company_id = ?", filter.CompanyID)
	}
	if len(filter.Statuses) != 0 {
		tx.Where("job_status in (?)", filter.Statuses)
	}
}
