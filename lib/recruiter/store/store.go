package recruiterstore

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	recruiterapimodels "ats-backend/models/api/recruiter"
	dbmodels "ats-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Recruiter) (id string, err error)
	Update(spaceID, id string, updMap map[string]interface{}) error
	GetByID(spaceID, id string) (rec *dbmodels.Recruiter, err error)
	FindByEmail(spaceID, email string) (rec *dbmodels.Recruiter, err error)
	List(spaceID string, filter recruiterapimodels.RecruiterFilter) (list []dbmodels.Recruiter, count int64, err error)
	Delete(spaceID, id string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Recruiter) (id string, err error) {
	err = i.db.
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
	return i.db.
		Model(&dbmodels.Recruiter{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Updates(updMap).
		Error
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.Recruiter, error) {
	rec := dbmodels.Recruiter{}
	err := i.db.
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
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

func (i impl) FindByEmail(spaceID, email string) (*dbmodels.Recruiter, error) {
	rec := dbmodels.Recruiter{}
	err := i.db.
		Where("space_id = ?", spaceID).
		Where("LOWER(email) = ?", strings.ToLower(email)).
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

func (i impl) List(spaceID string, filter recruiterapimodels.RecruiterFilter) (list []dbmodels.Recruiter, count int64, err error) {
	list = []dbmodels.Recruiter{}
	tx := i.db.
		Model(&dbmodels.Recruiter{}).
		Where("space_id = ?", spaceID)
	if filter.Search != "" {
		searchValue := "%" + strings.ToLower(filter.Search) + "%"
		tx = tx.Where("LOWER(CONCAT(first_name, ' ', last_name)) like ? or LOWER(email) like ?", searchValue, searchValue)
	}
	if filter.Specialization != "" {
		tx = tx.Where("? = ANY(specializations)", filter.Specialization)
	}
	if filter.OnlyActive {
		tx = tx.Where("is_active = ?", true)
	}
	if err = tx.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	err = tx.
		Order("last_name, first_name").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, count, nil
}

func (i impl) Delete(spaceID, id string) error {
	rec := dbmodels.Recruiter{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			BaseModel: dbmodels.BaseModel{
				ID: id,
			},
			SpaceID: spaceID,
		},
	}
	return i.db.
		Delete(&rec).
		Error
}
