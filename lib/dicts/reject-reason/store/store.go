package rejectreasondictstore

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"ats-backend/lib/utils/helpers"
	"ats-backend/models"
	dictapimodels "ats-backend/models/api/dict"
	dbmodels "ats-backend/models/db"
)

var ErrDuplicate = errors.New("reject reason already exists")

// Provider keeps a reason name unique per space and initiator, compared by helpers.NameKey.
type Provider interface {
	// Exists reports whether another reason with the same name and initiator exists.
	Exists(spaceID string, selfID, name string, initiator models.RejectInitiator) (bool, error)
	Create(rec dbmodels.RejectReason) (id string, err error)
	GetByID(spaceID, id string) (rec *dbmodels.RejectReason, err error)
	List(spaceID string, filter dictapimodels.RejectReasonFind) (list []dbmodels.RejectReason, err error)
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
	return tx.Model(&dbmodels.RejectReason{}).Where("space_id = ?", spaceID)
}

// holders counts the reasons other than selfID using the name for the initiator.
func holders(tx *gorm.DB, spaceID, selfID, name string, initiator models.RejectInitiator) (int64, error) {
	var rowCount int64
	q := inSpace(tx, spaceID).
		Where("initiator = ?", initiator).
		Where("LOWER(TRIM(name)) = ?", helpers.NameKey(name))
	if selfID != "" {
		q = q.Where("id <> ?", selfID)
	}
	if err := q.Count(&rowCount).Error; err != nil {
		return 0, errors.Wrap(err, "reject reason uniqueness check failed")
	}
	return rowCount, nil
}

func (i impl) Exists(spaceID string, selfID, name string, initiator models.RejectInitiator) (bool, error) {
	rowCount, err := holders(i.db, spaceID, selfID, name, initiator)
	if err != nil {
		return false, err
	}
	return rowCount != 0, nil
}

func (i impl) Create(rec dbmodels.RejectReason) (id string, err error) {
	rec.Name = strings.TrimSpace(rec.Name)
	if err = rec.Validate(); err != nil {
		return "", err
	}
	err = i.db.Transaction(func(tx *gorm.DB) error {
		rowCount, err := holders(tx, rec.SpaceID, "", rec.Name, rec.Initiator)
		if err != nil {
			return err
		}
		if rowCount != 0 {
			return ErrDuplicate
		}
		return tx.Create(&rec).Error
	})
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.RejectReason, error) {
	rec := dbmodels.RejectReason{}
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

func (i impl) List(spaceID string, filter dictapimodels.RejectReasonFind) (list []dbmodels.RejectReason, err error) {
	list = []dbmodels.RejectReason{}
	tx := inSpace(i.db, spaceID)
	if filter.Initiator != "" {
		tx = tx.Where("initiator = ?", filter.Initiator)
	}
	if helpers.NameKey(filter.Search) != "" {
		tx = tx.Where("LOWER(name) LIKE ?", helpers.ContainsPattern(filter.Search))
	}
	if err = tx.Order("initiator").Order("LOWER(name)").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Update checks the name against the initiator the reason ends up with.
func (i impl) Update(spaceID, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	return i.db.Transaction(func(tx *gorm.DB) error {
		name, renamed := updMap["name"].(string)
		initiator, moved := updMap["initiator"].(models.RejectInitiator)
		if renamed || moved {
			rec := dbmodels.RejectReason{}
			err := inSpace(tx, spaceID).Where("id = ?", id).Take(&rec).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			if renamed {
				rec.Name = strings.TrimSpace(name)
				updMap["name"] = rec.Name
			}
			if moved {
				rec.Initiator = initiator
			}
			rowCount, err := holders(tx, spaceID, id, rec.Name, rec.Initiator)
			if err != nil {
				return err
			}
			if rowCount != 0 {
				return ErrDuplicate
			}
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
		Delete(&dbmodels.RejectReason{}).
		Error
}
