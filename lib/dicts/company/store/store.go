package store

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"ats-backend/lib/utils/helpers"
	dbmodels "ats-backend/models/db"
)

var ErrDuplicate = errors.New("company with this name already exists")

// Provider keeps company names unique within a space, compared by helpers.NameKey.
type Provider interface {
	Create(rec dbmodels.Company) (id string, err error)
	GetByID(spaceID, id string) (rec *dbmodels.Company, err error)
	FindByName(spaceID, name string) (list []dbmodels.Company, err error)
	Update(spaceID, id string, updMap map[string]interface{}) error
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

func inSpace(tx *gorm.DB, spaceID string) *gorm.DB {
	return tx.Model(&dbmodels.Company{}).Where("space_id = ?", spaceID)
}

// byName finds the company holding the name in the space, nil when the name is free.
func byName(tx *gorm.DB, spaceID, name string) (*dbmodels.Company, error) {
	rec := dbmodels.Company{}
	err := inSpace(tx, spaceID).
		Where("LOWER(TRIM(name)) = ?", helpers.NameKey(name)).
		Order("created_at").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "company name lookup failed")
	}
	return &rec, nil
}

func (i impl) Create(rec dbmodels.Company) (id string, err error) {
	rec.Name = strings.TrimSpace(rec.Name)
	if err = rec.Validate(); err != nil {
		return "", err
	}
	err = i.db.Transaction(func(tx *gorm.DB) error {
		taken, err := byName(tx, rec.SpaceID, rec.Name)
		if err != nil {
			return err
		}
		if taken != nil {
			return ErrDuplicate
		}
		return tx.Create(&rec).Error
	})
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.Company, error) {
	rec := dbmodels.Company{}
	err := inSpace(i.db, spaceID).
		Where("id = ?", id).
		Take(&rec).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// FindByName lists the companies whose name contains the search text, all of them when it is blank.
func (i impl) FindByName(spaceID, name string) (list []dbmodels.Company, err error) {
	list = []dbmodels.Company{}
	tx := inSpace(i.db, spaceID)
	if helpers.NameKey(name) != "" {
		tx = tx.Where("LOWER(name) LIKE ?", helpers.ContainsPattern(name))
	}
	if err = tx.Order("LOWER(name)").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Update refuses a rename onto a name another company of the space holds.
func (i impl) Update(spaceID, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	return i.db.Transaction(func(tx *gorm.DB) error {
		if name, ok := updMap["name"].(string); ok {
			name = strings.TrimSpace(name)
			if name == "" {
				return errors.New("company name is required")
			}
			taken, err := byName(tx, spaceID, name)
			if err != nil {
				return err
			}
			if taken != nil && taken.ID != id {
				return ErrDuplicate
			}
			updMap["name"] = name
		}
		return inSpace(tx, spaceID).
			Where("id = ?", id).
			Updates(updMap).
			Error
	})
}

func (i impl) Delete(spaceID, id string) error {
	return i.db.
		Where("space_id = ?", spaceID).
		Where("id = ?", id).
		Delete(&dbmodels.Company{}).
		Error
}
