package candidatehandler

import (
	"strings"

	"github.com/lib/pq"
	log "github.com/sirupsen/logrus"

	"ats-backend/db"
	candidatestore "ats-backend/lib/candidate/store"
	applicantapimodels "ats-backend/models/api/applicant"
	dbmodels "ats-backend/models/db"
)

type Provider interface {
	Create(spaceID string, request applicantapimodels.CandidateData) (id, hMsg string, err error)
	Update(spaceID, id string, request applicantapimodels.CandidateData) (hMsg string, err error)
	Get(spaceID, id string) (item applicantapimodels.CandidateView, hMsg string, err error)
	List(spaceID string, filter applicantapimodels.CandidateFilter) (list []applicantapimodels.CandidateView, count int64, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: candidatestore.NewInstance(db.DB),
	}
}

type impl struct {
	store candidatestore.Provider
}

func (i impl) Create(spaceID string, request applicantapimodels.CandidateData) (id, hMsg string, err error) {
	if err = request.Validate(); err != nil {
		return "", err.Error(), nil
	}
	found, err := i.store.FindByEmail(spaceID, request.Email)
	if err != nil {
		return "", "", err
	}
	if found != nil {
		return "", "candidate with this email already exists", nil
	}
	rec := dbmodels.Candidate{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		FirstName:  strings.TrimSpace(request.FirstName),
		LastName:   strings.TrimSpace(request.LastName),
		Email:      strings.TrimSpace(request.Email),
		Phone:      request.Phone,
		Location:   request.Location,
		Skills:     request.Skills,
		ResumeText: request.ResumeText,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", "", err
	}
	log.WithField("space_id", spaceID).
		WithField("candidate_id", id).
		Info("candidate created")
	return id, "", nil
}

func (i impl) Update(spaceID, id string, request applicantapimodels.CandidateData) (hMsg string, err error) {
	if err = request.Validate(); err != nil {
		return err.Error(), nil
	}
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "candidate not found", nil
	}
	found, err := i.store.FindByEmail(spaceID, request.Email)
	if err != nil {
		return "", err
	}
	if found != nil && found.ID != id {
		return "candidate with this email already exists", nil
	}
	updMap := map[string]interface{}{
		"first_name":  strings.TrimSpace(request.FirstName),
		"last_name":   strings.TrimSpace(request.LastName),
		"email":       strings.TrimSpace(request.Email),
		"phone":       request.Phone,
		"location":    request.Location,
		"skills":      pq.StringArray(request.Skills),
		"resume_text": request.ResumeText,
	}
	if err = i.store.Update(spaceID, id, updMap); err != nil {
		return "", err
	}
	log.WithField("space_id", spaceID).
		WithField("candidate_id", id).
		Info("candidate updated")
	return "", nil
}

func (i impl) Get(spaceID, id string) (item applicantapimodels.CandidateView, hMsg string, err error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return applicantapimodels.CandidateView{}, "", err
	}
	if rec == nil {
		return applicantapimodels.CandidateView{}, "candidate not found", nil
	}
	return applicantapimodels.CandidateConvert(*rec), "", nil
}

func (i impl) List(spaceID string, filter applicantapimodels.CandidateFilter) (list []applicantapimodels.CandidateView, count int64, err error) {
	page, limit := filter.GetPage()
	recList, count, err := i.store.List(spaceID, filter.Search, page, limit)
	if err != nil {
		return nil, 0, err
	}
	result := make([]applicantapimodels.CandidateView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, applicantapimodels.CandidateConvert(rec))
	}
	return result, count, nil
}
