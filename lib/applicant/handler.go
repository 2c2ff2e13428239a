package applicant

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"ats-backend/db"
	applicanthistoryhandler "ats-backend/lib/applicant-history"
	applicationstore "ats-backend/lib/applicant/application-store"
	assignmentstore "ats-backend/lib/applicant/assignment-store"
	candidatestore "ats-backend/lib/candidate/store"
	jobstore "ats-backend/lib/job/store"
	messagetemplate "ats-backend/lib/message-template"
	"ats-backend/lib/pipeline/stagelist"
	"ats-backend/lib/pipeline/transition"
	"ats-backend/lib/smtp"
	"ats-backend/lib/utils/lock"
	wsnotify "ats-backend/lib/ws/notify"
	"ats-backend/models"
	applicantapimodels "ats-backend/models/api/applicant"
	dbmodels "ats-backend/models/db"
	wsmodels "ats-backend/models/ws"
)

type Author = applicanthistoryhandler.Author

type Provider interface {
	CreateApplication(spaceID string, author Author, data applicantapimodels.ApplicationData) (id, hMsg string, err error)
	CreateAssignment(spaceID string, author Author, data applicantapimodels.AssignmentData) (id, hMsg string, err error)
	ListByJob(spaceID, jobID string) (list []applicantapimodels.ApplicantView, err error)
	Get(spaceID string, applicantType models.ApplicantType, id string) (view applicantapimodels.ApplicantView, hMsg string, err error)
	Advance(ctx context.Context, spaceID string, author Author, applicantType models.ApplicantType, id string) (view applicantapimodels.ApplicantView, hMsg string, err error)
	Reject(ctx context.Context, spaceID string, author Author, applicantType models.ApplicantType, id string, request applicantapimodels.RejectRequest) (view applicantapimodels.ApplicantView, hMsg string, err error)
	Close(ctx context.Context, spaceID string, author Author, applicantType models.ApplicantType, id string, request applicantapimodels.CloseRequest) (view applicantapimodels.ApplicantView, hMsg string, err error)
	AddNote(spaceID string, author Author, applicantType models.ApplicantType, id string, note applicantapimodels.ApplicantNote) (hMsg string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		applicationStore: applicationstore.NewInstance(db.DB),
		assignmentStore:  assignmentstore.NewInstance(db.DB),
		candidateStore:   candidatestore.NewInstance(db.DB),
		jobStore:         jobstore.NewInstance(db.DB),
		history:          applicanthistoryhandler.Instance,
		notifier:         wsnotify.NewNotifier(),
		mailer:           smtp.Instance,
		now:              time.Now,
	}
}

type impl struct {
	applicationStore applicationstore.Provider
	assignmentStore  assignmentstore.Provider
	candidateStore   candidatestore.Provider
	jobStore         jobstore.Provider
	history          applicanthistoryhandler.Provider
	notifier         wsnotify.Notifier
	mailer           smtp.Provider
	now              func() time.Time
}

// loaded is a record with the pipeline of its job.
type loaded struct {
	id     string
	job    dbmodels.Job
	record transition.Record
	stages stagelist.List
	reason string
	ats    string
}

func (i impl) getLogger(spaceID string, applicantType models.ApplicantType, id string) *log.Entry {
	return log.
		WithField("space_id", spaceID).
		WithField("applicant_type", applicantType).
		WithField("applicant_id", id)
}

func (i impl) engine(spaceID string) *transition.Engine {
	return transition.NewEngine(statusService{
		spaceID:          spaceID,
		applicationStore: i.applicationStore,
		assignmentStore:  i.assignmentStore,
		now:              i.now,
	})
}

func (i impl) CreateApplication(spaceID string, author Author, data applicantapimodels.ApplicationData) (id, hMsg string, err error) {
	if err = data.Validate(); err != nil {
		return "", err.Error(), nil
	}
	job, err := i.jobStore.GetByID(spaceID, data.JobID)
	if err != nil {
		return "", "", err
	}
	if job == nil {
		return "", "job not found", nil
	}
	candidateID, hMsg, err := i.resolveCandidate(spaceID, data)
	if err != nil || hMsg != "" {
		return "", hMsg, err
	}
	found, err := i.applicationStore.FindByCandidate(spaceID, job.ID, candidateID)
	if err != nil {
		return "", "", err
	}
	if found != nil {
		return "", "candidate already applied to this job", nil
	}
	first, _ := job.Stages().First()
	rec := dbmodels.Application{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		JobID:       job.ID,
		CandidateID: candidateID,
		Status:      first.Name,
		StageID:     first.ID,
		AppliedDate: i.now(),
		CoverLetter: data.CoverLetter,
	}
	id, err = i.applicationStore.Create(rec)
	if err != nil {
		return "", "", err
	}
	i.getLogger(spaceID, models.ApplicantTypeApplication, id).
		WithField("job_id", job.ID).
		Info("application created")
	i.history.Save(spaceID, id, models.ApplicantTypeApplication, job.ID, author, dbmodels.HistoryTypeAdded,
		applicanthistoryhandler.GetCreateChanges("Application received", first.Name, first.ID))
	i.notifier.ApplicantStatusChanged(spaceID, wsmodels.ApplicantStatusEvent{
		JobID:       job.ID,
		ApplicantID: id,
		Type:        string(models.ApplicantTypeApplication),
		Status:      first.Name,
	})
	return id, "", nil
}

func (i impl) CreateAssignment(spaceID string, author Author, data applicantapimodels.AssignmentData) (id, hMsg string, err error) {
	if err = data.Validate(); err != nil {
		return "", err.Error(), nil
	}
	job, err := i.jobStore.GetByID(spaceID, data.JobID)
	if err != nil {
		return "", "", err
	}
	if job == nil {
		return "", "job not found", nil
	}
	candidate, err := i.candidateStore.GetByID(spaceID, data.CandidateID)
	if err != nil {
		return "", "", err
	}
	if candidate == nil {
		return "", "candidate not found", nil
	}
	found, err := i.assignmentStore.Get(spaceID, job.ID, candidate.ID)
	if err != nil {
		return "", "", err
	}
	if found != nil {
		return "", "candidate already assigned to this job", nil
	}
	first, _ := job.Stages().First()
	rec := dbmodels.Assignment{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		JobID:       job.ID,
		CandidateID: candidate.ID,
		Status:      first.Name,
		StageID:     first.ID,
		AppliedDate: i.now(),
	}
	if data.RecruiterID != "" {
		recruiterID := data.RecruiterID
		rec.RecruiterID = &recruiterID
	}
	id, err = i.assignmentStore.Create(rec)
	if err != nil {
		return "", "", err
	}
	i.getLogger(spaceID, models.ApplicantTypeAssignment, id).
		WithField("job_id", job.ID).
		WithField("candidate_id", candidate.ID).
		Info("candidate assigned")
	i.history.Save(spaceID, id, models.ApplicantTypeAssignment, job.ID, author, dbmodels.HistoryTypeAdded,
		applicanthistoryhandler.GetCreateChanges("Candidate assigned", first.Name, first.ID))
	i.notifier.ApplicantStatusChanged(spaceID, wsmodels.ApplicantStatusEvent{
		JobID:       job.ID,
		ApplicantID: id,
		Type:        string(models.ApplicantTypeAssignment),
		Status:      first.Name,
	})
	return id, "", nil
}

func (i impl) ListByJob(spaceID, jobID string) (list []applicantapimodels.ApplicantView, err error) {
	job, err := i.jobStore.GetByID(spaceID, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, errors.New("job not found")
	}
	stages := job.Stages()
	applications, err := i.applicationStore.ListByJob(spaceID, jobID)
	if err != nil {
		return nil, err
	}
	assignments, err := i.assignmentStore.ListByJob(spaceID, jobID)
	if err != nil {
		return nil, err
	}
	result := make([]applicantapimodels.ApplicantView, 0, len(applications)+len(assignments))
	for _, rec := range applications {
		result = append(result, loadedApplication(*job, stages, rec).view())
	}
	for _, rec := range assignments {
		result = append(result, loadedAssignment(*job, stages, rec).view())
	}
	sort.SliceStable(result, func(a, b int) bool {
		return result[a].AppliedDate.Before(result[b].AppliedDate)
	})
	return result, nil
}

func (i impl) Get(spaceID string, applicantType models.ApplicantType, id string) (view applicantapimodels.ApplicantView, hMsg string, err error) {
	item, hMsg, err := i.load(spaceID, applicantType, id)
	if err != nil || hMsg != "" {
		return applicantapimodels.ApplicantView{}, hMsg, err
	}
	return item.view(), "", nil
}

func (i impl) Advance(ctx context.Context, spaceID string, author Author, applicantType models.ApplicantType, id string) (view applicantapimodels.ApplicantView, hMsg string, err error) {
	logger := i.getLogger(spaceID, applicantType, id)
	err = lock.TryRun(lockKey(applicantType, id), func() error {
		item, msg, err := i.load(spaceID, applicantType, id)
		if err != nil || msg != "" {
			hMsg = msg
			return err
		}
		updated, err := i.engine(spaceID).Advance(ctx, item.record, item.stages, author.ID)
		if err != nil {
			if transition.IsRefusal(err) {
				logger.WithError(err).Info("advance refused")
				hMsg = refusalMessage(err)
				return nil
			}
			return err
		}
		prev := item.record.Base().Status
		status := updated.Base().Status
		i.history.Save(spaceID, id, applicantType, item.job.ID, author, dbmodels.HistoryTypeStageChange,
			applicanthistoryhandler.GetStageChange(prev, status, updated.Base().StageID))
		i.notifyStatus(spaceID, item, prev, status)
		logger.WithField("prev_status", prev).WithField("status", status).Info("applicant advanced")
		view, hMsg, err = i.Get(spaceID, applicantType, id)
		return err
	})
	return view, hMsg, err
}

func (i impl) Reject(ctx context.Context, spaceID string, author Author, applicantType models.ApplicantType, id string, request applicantapimodels.RejectRequest) (view applicantapimodels.ApplicantView, hMsg string, err error) {
	logger := i.getLogger(spaceID, applicantType, id)
	if err = request.Validate(); err != nil {
		return applicantapimodels.ApplicantView{}, err.Error(), nil
	}
	err = lock.TryRun(lockKey(applicantType, id), func() error {
		item, msg, err := i.load(spaceID, applicantType, id)
		if err != nil || msg != "" {
			hMsg = msg
			return err
		}
		prev := item.record.Base().Status
		updated, err := i.engine(spaceID).Reject(ctx, item.record, request.Reason, author.ID)
		if err != nil {
			if transition.IsRefusal(err) {
				logger.WithError(err).Info("reject refused")
				hMsg = refusalMessage(err)
				return nil
			}
			return err
		}
		if prev != models.ApplicantStatusRejected {
			reason := strings.TrimSpace(request.Reason)
			i.history.Save(spaceID, id, applicantType, item.job.ID, author, dbmodels.HistoryTypeReject,
				applicanthistoryhandler.GetRejectChange(prev, reason))
			i.notifyStatus(spaceID, item, prev, updated.Base().Status)
			i.sendApplicantEmail(logger, item, updated, messagetemplate.BuildRejectMessage)
			logger.WithField("prev_status", prev).WithField("initiator", request.Initiator).Info("applicant rejected")
		}
		view, hMsg, err = i.Get(spaceID, applicantType, id)
		return err
	})
	return view, hMsg, err
}

func (i impl) Close(ctx context.Context, spaceID string, author Author, applicantType models.ApplicantType, id string, request applicantapimodels.CloseRequest) (view applicantapimodels.ApplicantView, hMsg string, err error) {
	logger := i.getLogger(spaceID, applicantType, id)
	err = lock.TryRun(lockKey(applicantType, id), func() error {
		item, msg, err := i.load(spaceID, applicantType, id)
		if err != nil || msg != "" {
			hMsg = msg
			return err
		}
		prev := item.record.Base().Status
		updated, err := i.engine(spaceID).Close(ctx, item.record, request.Status, author.ID)
		if err != nil {
			if transition.IsRefusal(err) {
				logger.WithError(err).Info("close refused")
				hMsg = refusalMessage(err)
				return nil
			}
			return err
		}
		status := updated.Base().Status
		i.history.Save(spaceID, id, applicantType, item.job.ID, author, dbmodels.HistoryTypeStageChange,
			applicanthistoryhandler.GetCloseChange(prev, status))
		i.notifyStatus(spaceID, item, prev, status)
		if status == models.ApplicantStatusHired && prev != status {
			i.sendApplicantEmail(logger, item, updated, messagetemplate.BuildHiredMessage)
		}
		logger.WithField("prev_status", prev).WithField("status", status).Info("applicant closed")
		view, hMsg, err = i.Get(spaceID, applicantType, id)
		return err
	})
	return view, hMsg, err
}

func (i impl) AddNote(spaceID string, author Author, applicantType models.ApplicantType, id string, note applicantapimodels.ApplicantNote) (hMsg string, err error) {
	item, hMsg, err := i.load(spaceID, applicantType, id)
	if err != nil || hMsg != "" {
		return hMsg, err
	}
	return "", i.history.SaveNote(spaceID, id, applicantType, item.job.ID, author, note)
}

func (i impl) load(spaceID string, applicantType models.ApplicantType, id string) (item loaded, hMsg string, err error) {
	switch applicantType {
	case models.ApplicantTypeApplication:
		rec, err := i.applicationStore.GetByID(spaceID, id)
		if err != nil {
			return loaded{}, "", err
		}
		if rec == nil {
			return loaded{}, "application not found", nil
		}
		job, err := i.jobOf(spaceID, rec.JobID, rec.Job)
		if err != nil {
			return loaded{}, "", err
		}
		return loadedApplication(job, job.Stages(), *rec), "", nil
	case models.ApplicantTypeAssignment:
		rec, err := i.assignmentStore.GetByID(spaceID, id)
		if err != nil {
			return loaded{}, "", err
		}
		if rec == nil {
			return loaded{}, "assignment not found", nil
		}
		job, err := i.jobOf(spaceID, rec.JobID, rec.Job)
		if err != nil {
			return loaded{}, "", err
		}
		return loadedAssignment(job, job.Stages(), *rec), "", nil
	}
	return loaded{}, fmt.Sprintf("unknown applicant type %q", applicantType), nil
}

func (i impl) jobOf(spaceID, jobID string, preloaded *dbmodels.Job) (dbmodels.Job, error) {
	if preloaded != nil {
		return *preloaded, nil
	}
	job, err := i.jobStore.GetByID(spaceID, jobID)
	if err != nil {
		return dbmodels.Job{}, err
	}
	if job == nil {
		return dbmodels.Job{}, errors.Errorf("job %v not found", jobID)
	}
	return *job, nil
}

func (i impl) resolveCandidate(spaceID string, data applicantapimodels.ApplicationData) (id, hMsg string, err error) {
	if data.CandidateID != "" {
		rec, err := i.candidateStore.GetByID(spaceID, data.CandidateID)
		if err != nil {
			return "", "", err
		}
		if rec == nil {
			return "", "candidate not found", nil
		}
		return rec.ID, "", nil
	}
	rec, err := i.candidateStore.FindByEmail(spaceID, data.Candidate.Email)
	if err != nil {
		return "", "", err
	}
	if rec != nil {
		return rec.ID, "", nil
	}
	candidate := dbmodels.Candidate{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		FirstName:  data.Candidate.FirstName,
		LastName:   data.Candidate.LastName,
		Email:      data.Candidate.Email,
		Phone:      data.Candidate.Phone,
		Location:   data.Candidate.Location,
		Skills:     data.Candidate.Skills,
		ResumeText: data.Candidate.ResumeText,
	}
	id, err = i.candidateStore.Create(candidate)
	if err != nil {
		return "", "", err
	}
	return id, "", nil
}

func (i impl) notifyStatus(spaceID string, item loaded, prev, status string) {
	i.notifier.ApplicantStatusChanged(spaceID, wsmodels.ApplicantStatusEvent{
		JobID:       item.job.ID,
		ApplicantID: item.id,
		Type:        string(item.record.Type()),
		PrevStatus:  prev,
		Status:      status,
	})
}

type messageBuilder func(data messagetemplate.ApplicantTemplateData) (title, msg string, err error)

func (i impl) sendApplicantEmail(logger *log.Entry, item loaded, updated transition.Record, build messageBuilder) {
	email := updated.Base().Email
	if email == "" || i.mailer == nil {
		return
	}
	data := messagetemplate.ApplicantTemplateData{
		CandidateName: updated.Base().CandidateName,
		JobTitle:      item.job.Title,
	}
	if item.job.Company != nil {
		data.CompanyName = item.job.Company.Name
	}
	subject, message, err := build(data)
	if err != nil {
		logger.WithError(err).Error("applicant email building failed")
		return
	}
	if err = i.mailer.SendEMail(email, subject, message); err != nil {
		logger.WithError(err).Warn("applicant email not sent")
	}
}

func loadedApplication(job dbmodels.Job, stages stagelist.List, rec dbmodels.Application) loaded {
	return loaded{
		id:     rec.ID,
		job:    job,
		record: applicantapimodels.ApplicationRecord(rec),
		stages: stages,
		reason: rec.RejectReason,
		ats:    rec.AtsAnalysis,
	}
}

func loadedAssignment(job dbmodels.Job, stages stagelist.List, rec dbmodels.Assignment) loaded {
	return loaded{
		id:     rec.ID,
		job:    job,
		record: applicantapimodels.AssignmentRecord(rec),
		stages: stages,
		reason: rec.RejectReason,
	}
}

func (l loaded) view() applicantapimodels.ApplicantView {
	result := applicantapimodels.Convert(l.id, l.record, transition.Describe(l.record, l.stages))
	result.RejectReason = l.reason
	result.AtsAnalysis = l.ats
	return result
}

func lockKey(applicantType models.ApplicantType, id string) string {
	return fmt.Sprintf("applicant:%v:%v", applicantType, id)
}

func refusalMessage(err error) string {
	return errors.Cause(err).Error()
}
