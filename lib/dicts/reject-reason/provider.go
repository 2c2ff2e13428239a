package rejectreasonprovider

import (
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"ats-backend/db"
	rejectreasondictstore "ats-backend/lib/dicts/reject-reason/store"
	"ats-backend/models"
	dictapimodels "ats-backend/models/api/dict"
	dbmodels "ats-backend/models/db"
)

var recruiterReasons = []string{
	"Could not reach the candidate",
	"Education does not match",
	"Not willing to relocate",
	"Not enough experience",
	"Schedule does not match",
	"Work permit required",
	"Salary expectations too high",
	"Poor test assignment",
	"Lack of motivation",
}

var hiringManagerReasons = []string{
	"Missing skills required for the role",
	"Poor test assignment",
	"Lack of motivation",
	"Not enough experience",
	"Not a culture fit",
}

var candidateReasons = []string{
	"Accepted another offer",
	"Counter offer",
	"Not interested in the company",
	"Not interested in the tasks",
	"Compensation too low",
}

type Provider interface {
	Create(spaceID string, request dictapimodels.RejectReasonData) (id string, hMsg string, err error)
	Update(spaceID, id string, request dictapimodels.RejectReasonData) (hMsg string, err error)
	Get(spaceID, id string) (item dictapimodels.RejectReasonView, hMsg string, err error)
	List(spaceID string, filter dictapimodels.RejectReasonFind) (list []dictapimodels.RejectReasonView, err error)
	Delete(spaceID, id string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: rejectreasondictstore.NewInstance(db.DB),
	}
}

type impl struct {
	store rejectreasondictstore.Provider
}

func (i impl) Create(spaceID string, request dictapimodels.RejectReasonData) (id string, hMsg string, err error) {
	logger := log.WithField("space_id", spaceID)
	if err = request.Validate(); err != nil {
		return "", err.Error(), nil
	}
	rec := dbmodels.RejectReason{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		Initiator: request.Initiator,
		Name:      strings.TrimSpace(request.Name),
	}
	if isStatic(rec.Initiator, rec.Name) {
		return "", "reject reason already exists", nil
	}
	found, err := i.store.Exists(rec.SpaceID, "", rec.Name, rec.Initiator)
	if err != nil {
		return "", "", err
	}
	if found {
		return "", "reject reason already exists", nil
	}
	id, err = i.store.Create(rec)
	if err != nil {
		if errors.Is(err, rejectreasondictstore.ErrDuplicate) {
			return "", rejectreasondictstore.ErrDuplicate.Error(), nil
		}
		return "", "", err
	}
	logger.
		WithField("reject_reason", rec.Name).
		WithField("rec_id", id).
		Info("reject reason created")
	return id, "", nil
}

func (i impl) Update(spaceID, id string, request dictapimodels.RejectReasonData) (hMsg string, err error) {
	logger := log.WithField("space_id", spaceID).
		WithField("rec_id", id)
	if err = request.Validate(); err != nil {
		return err.Error(), nil
	}
	name := strings.TrimSpace(request.Name)
	if isStatic(request.Initiator, name) {
		return "reject reason already exists", nil
	}
	found, err := i.store.Exists(spaceID, id, name, request.Initiator)
	if err != nil {
		return "", err
	}
	if found {
		return "reject reason already exists", nil
	}
	updMap := map[string]interface{}{
		"name":      name,
		"initiator": request.Initiator,
	}
	err = i.store.Update(spaceID, id, updMap)
	if err != nil {
		if errors.Is(err, rejectreasondictstore.ErrDuplicate) {
			return rejectreasondictstore.ErrDuplicate.Error(), nil
		}
		return "", err
	}
	logger.Info("reject reason updated")
	return "", nil
}

func (i impl) Get(spaceID, id string) (item dictapimodels.RejectReasonView, hMsg string, err error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return dictapimodels.RejectReasonView{}, "", err
	}
	if rec == nil {
		return dictapimodels.RejectReasonView{}, "reject reason not found", nil
	}
	return dictapimodels.RejectReasonConvert(*rec), "", nil
}

// List returns the built-in reasons followed by the space's own ones.
func (i impl) List(spaceID string, filter dictapimodels.RejectReasonFind) (list []dictapimodels.RejectReasonView, err error) {
	recList, err := i.store.List(spaceID, filter)
	if err != nil {
		return nil, err
	}
	result := getStatic(filter)
	for _, rec := range recList {
		result = append(result, dictapimodels.RejectReasonConvert(rec))
	}
	return result, nil
}

func (i impl) Delete(spaceID, id string) error {
	logger := log.WithField("space_id", spaceID).
		WithField("rec_id", id)
	err := i.store.Delete(spaceID, id)
	if err != nil {
		return err
	}
	logger.Info("reject reason deleted")
	return nil
}

func staticReasons(initiator models.RejectInitiator) []string {
	switch initiator {
	case models.RecruiterReject:
		return recruiterReasons
	case models.HiringManagerReject:
		return hiringManagerReasons
	case models.CandidateReject:
		return candidateReasons
	}
	return nil
}

func isStatic(initiator models.RejectInitiator, name string) bool {
	for _, reason := range staticReasons(initiator) {
		if strings.EqualFold(reason, name) {
			return true
		}
	}
	return false
}

func getStatic(filter dictapimodels.RejectReasonFind) []dictapimodels.RejectReasonView {
	result := getStaticView(models.RecruiterReject, filter)
	result = append(result, getStaticView(models.HiringManagerReject, filter)...)
	result = append(result, getStaticView(models.CandidateReject, filter)...)
	return result
}

func getStaticView(initiator models.RejectInitiator, filter dictapimodels.RejectReasonFind) []dictapimodels.RejectReasonView {
	if filter.Initiator != "" && initiator != filter.Initiator {
		return []dictapimodels.RejectReasonView{}
	}
	reasons := staticReasons(initiator)
	result := make([]dictapimodels.RejectReasonView, 0, len(reasons))
	search := strings.ToLower(filter.Search)
	for _, name := range reasons {
		if search != "" && !strings.Contains(strings.ToLower(name), search) {
			continue
		}
		result = append(result, dictapimodels.RejectReasonView{
			RejectReasonData: dictapimodels.RejectReasonData{
				Name:      name,
				Initiator: initiator,
			},
			CanChange: false,
		})
	}
	return result
}
