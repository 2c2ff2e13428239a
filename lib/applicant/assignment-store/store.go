package assignmentstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbmodels "ats-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Assignment) (id string, err error)
	Update(spaceID, jobID, candidateID string, updMap map[string]interface{}) error
	GetByID(spaceID, id string) (rec *dbmodels.Assignment, err error)
	Get(spaceID, jobID, candidateID string) (rec *dbmodels.Assignment, err error)
	ListByJob(spaceID, jobID string) (list []dbmodels.Assignment, err error)
	CountByStatus(spaceID string, jobIDs []string) (list []dbmodels.StageCount, err error)
	CountInStage(spaceID, jobID, stageID, stageName string) (count int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Assignment) (id string, err error) {
	err = i.db.
		Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(spaceID, jobID, candidateID string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Assignment{}).
		Where("space_id = ?", spaceID).
		Where("job_id = ?", jobID).
		Where("candidate_id = ?", candidateID).
		Updates(updMap)
	if err := tx.Error; err != nil {
		return err
	}
	if tx.RowsAffected == 0 {
		return errors.New("assignment not found")
	}
	return nil
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.Assignment, error) {
	rec := dbmodels.Assignment{}
	err := i.db.
		Model(&dbmodels.Assignment{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Preload(clause.Associations).
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

func (i impl) Get(spaceID, jobID, candidateID string) (*dbmodels.Assignment, error) {
	rec := dbmodels.Assignment{}
	err := i.db.
		Model(&dbmodels.Assignment{}).
		Where("space_id = ?", spaceID).
		Where("job_id = ?", jobID).
		Where("candidate_id = ?", candidateID).
		Preload(clause.Associations).
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

func (i impl) ListByJob(spaceID, jobID string) (list []dbmodels.Assignment, err error) {
	list = []dbmodels.Assignment{}
	err = i.db.
		Model(&dbmodels.Assignment{}).
		Where("space_id = ?", spaceID).
		Where("job_id = ?", jobID).
		Order("applied_date").
		Preload("Candidate").
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

func (i impl) CountByStatus(spaceID string, jobIDs []string) (list []dbmodels.StageCount, err error) {
	list = []dbmodels.StageCount{}
	if len(jobIDs) == 0 {
		return list, nil
	}
	err = i.db.
		Model(&dbmodels.Assignment{}).
		Select("job_id, status, stage_id, count(*) as total").
		Where("space_id = ?", spaceID).
		Where("job_id in (?)", jobIDs).
		Group("job_id, status, stage_id").
		Scan(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) CountInStage(spaceID, jobID, stageID, stageName string) (count int64, err error) {
	err = i.db.
		Model(&dbmodels.Assignment{}).
		Where("space_id = ?", spaceID).
		Where("job_id = ?", jobID).
		Where("stage_id = ? or (stage_id = '' and status = ?)", stageID, stageName).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
