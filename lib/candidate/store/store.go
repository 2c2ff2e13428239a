package candidatestore

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "ats-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Candidate) (id string, err error)
	Update(spaceID, id string, updMap map[string]interface{}) error
	GetByID(spaceID, id string) (rec *dbmodels.Candidate, err error)
	FindByEmail(spaceID, email string) (rec *dbmodels.Candidate, err error)
	List(spaceID, search string, page, limit int) (list []dbmodels.Candidate, count int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Candidate) (id string, err error) {
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
		Model(&dbmodels.Candidate{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Updates(updMap).
		Error
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.Candidate, error) {
	rec := dbmodels.Candidate{}
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

func (i impl) FindByEmail(spaceID, email string) (*dbmodels.Candidate, error) {
	if email == "" {
		return nil, nil
	}
	rec := dbmodels.Candidate{}
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

func (i impl) List(spaceID, search string, page, limit int) (list []dbmodels.Candidate, count int64, err error) {
	list = []dbmodels.Candidate{}
	tx := i.db.
		Model(&dbmodels.Candidate{}).
		Where("space_id = ?", spaceID)
	if search != "" {
		searchValue := "%" + strings.ToLower(search) + "%"
		tx = tx.Where("LOWER(CONCAT(first_name, ' ', last_name)) like ? or LOWER(email) like ? or phone like ?", searchValue, searchValue, searchValue)
	}
	if err = tx.Count(&count).Error; err != nil {
		return nil, 0, err
	}
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
