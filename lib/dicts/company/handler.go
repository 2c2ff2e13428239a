package companyprovider

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"ats-backend/db"
	"ats-backend/lib/dicts/company/store"
	jobstore "ats-backend/lib/job/store"
	initchecker "ats-backend/lib/utils/init-checker"
	dictapimodels "ats-backend/models/api/dict"
	dbmodels "ats-backend/models/db"
)

type Provider interface {
	Create(spaceID string, request dictapimodels.CompanyData) (id, hMsg string, err error)
	Update(spaceID, id string, request dictapimodels.CompanyData) (hMsg string, err error)
	Get(spaceID, id string) (item dictapimodels.CompanyView, hMsg string, err error)
	FindByName(spaceID, name string) (list []dictapimodels.CompanyView, err error)
	Delete(spaceID, id string) (hMsg string, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:    store.NewInstance(db.DB),
		jobStore: jobstore.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"store", instance.store,
		"jobStore", instance.jobStore,
	)
	Instance = instance
}

type impl struct {
	store    store.Provider
	jobStore jobstore.Provider
}

func (i impl) Create(spaceID string, request dictapimodels.CompanyData) (id, hMsg string, err error) {
	logger := log.WithField("space_id", spaceID)
	if err = request.Validate(); err != nil {
		return "", err.Error(), nil
	}
	rec := dbmodels.Company{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		Name:        request.Name,
		Website:     request.Website,
		Industry:    request.Industry,
		Location:    request.Location,
		Description: request.Description,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return "", store.ErrDuplicate.Error(), nil
		}
		return "", "", err
	}
	logger.
		WithField("company_name", rec.Name).
		WithField("rec_id", id).
		Info("company created")
	return id, "", nil
}

func (i impl) Update(spaceID, id string, request dictapimodels.CompanyData) (hMsg string, err error) {
	logger := log.WithField("space_id", spaceID).
		WithField("rec_id", id)
	if err = request.Validate(); err != nil {
		return err.Error(), nil
	}
	updMap := map[string]interface{}{
		"name":        request.Name,
		"website":     request.Website,
		"industry":    request.Industry,
		"location":    request.Location,
		"description": request.Description,
	}
	err = i.store.Update(spaceID, id, updMap)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return store.ErrDuplicate.Error(), nil
		}
		return "", err
	}
	logger.Info("company updated")
	return "", nil
}

func (i impl) Get(spaceID, id string) (item dictapimodels.CompanyView, hMsg string, err error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return dictapimodels.CompanyView{}, "", err
	}
	if rec == nil {
		return dictapimodels.CompanyView{}, "company not found", nil
	}
	return dictapimodels.CompanyConvert(*rec), "", nil
}

func (i impl) FindByName(spaceID, name string) (list []dictapimodels.CompanyView, err error) {
	recList, err := i.store.FindByName(spaceID, name)
	if err != nil {
		return nil, err
	}
	result := make([]dictapimodels.CompanyView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, dictapimodels.CompanyConvert(rec))
	}
	return result, nil
}

func (i impl) Delete(spaceID, id string) (hMsg string, err error) {
	logger := log.WithField("space_id", spaceID).
		WithField("rec_id", id)
	count, err := i.jobStore.ListCount(spaceID, dbmodels.JobFilter{CompanyID: id})
	if err != nil {
		return "", err
	}
	if count != 0 {
		return "company has jobs and can not be deleted", nil
	}
	err = i.store.Delete(spaceID, id)
	if err != nil {
		return "", err
	}
	logger.Info("company deleted")
	return "", nil
}
