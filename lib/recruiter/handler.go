package recruiterhandler

import (
	"strings"

	"github.com/lib/pq"
	log "github.com/sirupsen/logrus"

	"ats-backend/db"
	recruiterstore "ats-backend/lib/recruiter/store"
	recruiterapimodels "ats-backend/models/api/recruiter"
	dbmodels "ats-backend/models/db"
)

type Provider interface {
	Create(spaceID string, request recruiterapimodels.RecruiterData) (id, hMsg string, err error)
	Update(spaceID, id string, request recruiterapimodels.RecruiterData) (hMsg string, err error)
	Get(spaceID, id string) (item recruiterapimodels.RecruiterView, hMsg string, err error)
	List(spaceID string, filter recruiterapimodels.RecruiterFilter) (list []recruiterapimodels.RecruiterView, count int64, err error)
	Delete(spaceID, id string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: recruiterstore.NewInstance(db.DB),
	}
}

type impl struct {
	store recruiterstore.Provider
}

func (i impl) getLogger(spaceID, id string) *log.Entry {
	logger := log.WithField("space_id", spaceID)
	if id != "" {
		logger = logger.WithField("recruiter_id", id)
	}
	return logger
}

func (i impl) Create(spaceID string, request recruiterapimodels.RecruiterData) (id, hMsg string, err error) {
	if err = request.Validate(); err != nil {
		return "", err.Error(), nil
	}
	found, err := i.store.FindByEmail(spaceID, request.Email)
	if err != nil {
		return "", "", err
	}
	if found != nil {
		return "", "recruiter with this email already exists", nil
	}
	rec := dbmodels.Recruiter{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		FirstName:       strings.TrimSpace(request.FirstName),
		LastName:        strings.TrimSpace(request.LastName),
		Email:           strings.TrimSpace(request.Email),
		Phone:           request.Phone,
		Title:           request.Title,
		Specializations: pq.StringArray(request.Specializations),
		IsActive:        request.IsActive,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", "", err
	}
	i.getLogger(spaceID, id).Info("recruiter created")
	return id, "", nil
}

func (i impl) Update(spaceID, id string, request recruiterapimodels.RecruiterData) (hMsg string, err error) {
	if err = request.Validate(); err != nil {
		return err.Error(), nil
	}
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "recruiter not found", nil
	}
	found, err := i.store.FindByEmail(spaceID, request.Email)
	if err != nil {
		return "", err
	}
	if found != nil && found.ID != id {
		return "recruiter with this email already exists", nil
	}
	updMap := map[string]interface{}{
		"first_name":      strings.TrimSpace(request.FirstName),
		"last_name":       strings.TrimSpace(request.LastName),
		"email":           strings.TrimSpace(request.Email),
		"phone":           request.Phone,
		"title":           request.Title,
		"specializations": pq.StringArray(request.Specializations),
		"is_active":       request.IsActive,
	}
	if err = i.store.Update(spaceID, id, updMap); err != nil {
		return "", err
	}
	i.getLogger(spaceID, id).Info("recruiter updated")
	return "", nil
}

func (i impl) Get(spaceID, id string) (item recruiterapimodels.RecruiterView, hMsg string, err error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return recruiterapimodels.RecruiterView{}, "", err
	}
	if rec == nil {
		return recruiterapimodels.RecruiterView{}, "recruiter not found", nil
	}
	return recruiterapimodels.RecruiterConvert(*rec), "", nil
}

func (i impl) List(spaceID string, filter recruiterapimodels.RecruiterFilter) (list []recruiterapimodels.RecruiterView, count int64, err error) {
	recList, count, err := i.store.List(spaceID, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]recruiterapimodels.RecruiterView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, recruiterapimodels.RecruiterConvert(rec))
	}
	return result, count, nil
}

func (i impl) Delete(spaceID, id string) error {
	if err := i.store.Delete(spaceID, id); err != nil {
		return err
	}
	i.getLogger(spaceID, id).Info("recruiter deleted")
	return nil
}
