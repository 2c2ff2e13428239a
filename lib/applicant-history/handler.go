package applicanthistoryhandler

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"ats-backend/db"
	applicanthistorystore "ats-backend/lib/applicant-history/store"
	"ats-backend/models"
	applicantapimodels "ats-backend/models/api/applicant"
	dbmodels "ats-backend/models/db"
)

// Author is the user behind a change. An empty ID marks a system change.
type Author struct {
	ID   string
	Name string
}

type Provider interface {
	List(spaceID, applicantID string, filter applicantapimodels.ApplicantHistoryFilter) ([]applicantapimodels.ApplicantHistoryView, int64, error)
	Save(spaceID, applicantID string, applicantType models.ApplicantType, jobID string, author Author, action dbmodels.ActionType, changes dbmodels.ApplicantChanges)
	SaveNote(spaceID, applicantID string, applicantType models.ApplicantType, jobID string, author Author, note applicantapimodels.ApplicantNote) error
}

var Instance Provider

func NewHandler() {
	Instance = NewProvider(applicanthistorystore.NewInstance(db.DB))
}

func NewProvider(store applicanthistorystore.Provider) Provider {
	return impl{
		store: store,
	}
}

type impl struct {
	store applicanthistorystore.Provider
}

func (i impl) List(spaceID, applicantID string, filter applicantapimodels.ApplicantHistoryFilter) ([]applicantapimodels.ApplicantHistoryView, int64, error) {
	rowCount, err := i.store.ListCount(spaceID, applicantID, filter)
	if err != nil {
		return nil, 0, err
	}

	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	if int64(offset) > rowCount {
		return []applicantapimodels.ApplicantHistoryView{}, rowCount, nil
	}

	list, err := i.store.List(spaceID, applicantID, filter)
	if err != nil {
		log.WithError(err).Error("applicant history loading failed")
		return nil, 0, errors.New("applicant history loading failed")
	}
	result := make([]applicantapimodels.ApplicantHistoryView, 0, len(list))
	for _, rec := range list {
		result = append(result, applicantapimodels.HistoryConvert(rec))
	}
	return result, rowCount, nil
}

// Save never fails the caller; history is best effort.
func (i impl) Save(spaceID, applicantID string, applicantType models.ApplicantType, jobID string, author Author, action dbmodels.ActionType, changes dbmodels.ApplicantChanges) {
	logger := log.WithField("space_id", spaceID).
		WithField("applicant_id", applicantID).
		WithField("job_id", jobID).
		WithField("action", action).
		WithField("description", changes.Description)
	rec := newRecord(spaceID, applicantID, applicantType, jobID, author)
	rec.ActionType = action
	rec.Changes = changes
	_, err := i.store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("applicant history saving failed")
	}
}

func (i impl) SaveNote(spaceID, applicantID string, applicantType models.ApplicantType, jobID string, author Author, note applicantapimodels.ApplicantNote) error {
	logger := log.WithField("space_id", spaceID).
		WithField("applicant_id", applicantID).
		WithField("action", dbmodels.HistoryTypeComment)
	if note.Note == "" {
		return errors.New("note is empty")
	}
	if author.ID == "" {
		return errors.New("note author is not set")
	}
	rec := newRecord(spaceID, applicantID, applicantType, jobID, author)
	rec.ActionType = dbmodels.HistoryTypeComment
	rec.Changes = dbmodels.ApplicantChanges{Description: note.Note}
	_, err := i.store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("applicant note saving failed")
		return errors.New("applicant note saving failed")
	}
	return nil
}

func newRecord(spaceID, applicantID string, applicantType models.ApplicantType, jobID string, author Author) dbmodels.ApplicantHistory {
	rec := dbmodels.ApplicantHistory{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		ApplicantID:   applicantID,
		ApplicantType: applicantType,
		JobID:         jobID,
		UserName:      author.Name,
	}
	if author.ID != "" {
		id := author.ID
		rec.UserID = &id
	} else {
		rec.UserName = "System"
	}
	return rec
}
