package applicant

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	applicanthistoryhandler "ats-backend/lib/applicant-history"
	"ats-backend/lib/pipeline/stagelist"
	"ats-backend/lib/utils/lock"
	"ats-backend/models"
	applicantapimodels "ats-backend/models/api/applicant"
	dbmodels "ats-backend/models/db"
	wsmodels "ats-backend/models/ws"
)

const testSpace = "space-1"

type fakeApplications struct {
	recs map[string]*dbmodels.Application
}

func (f *fakeApplications) Create(rec dbmodels.Application) (string, error) {
	rec.ID = "app-new"
	f.recs[rec.ID] = &rec
	return rec.ID, nil
}

func (f *fakeApplications) Update(_, id string, updMap map[string]interface{}) error {
	rec, ok := f.recs[id]
	if !ok {
		return errors.New("application not found")
	}
	applyUpdate(&rec.Status, &rec.StageID, &rec.RejectReason, updMap)
	return nil
}

func (f *fakeApplications) GetByID(_, id string) (*dbmodels.Application, error) {
	rec, ok := f.recs[id]
	if !ok {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

func (f *fakeApplications) ListByJob(_, jobID string) ([]dbmodels.Application, error) {
	list := []dbmodels.Application{}
	for _, rec := range f.recs {
		if rec.JobID == jobID {
			list = append(list, *rec)
		}
	}
	return list, nil
}

func (f *fakeApplications) ListByStatus(spaceID, jobID, _ string) ([]dbmodels.Application, error) {
	return f.ListByJob(spaceID, jobID)
}

func (f *fakeApplications) CountByStatus(string, []string) ([]dbmodels.StageCount, error) {
	return nil, nil
}

func (f *fakeApplications) CountInStage(string, string, string, string) (int64, error) {
	return 0, nil
}

func (f *fakeApplications) FindByCandidate(_, jobID, candidateID string) (*dbmodels.Application, error) {
	for _, rec := range f.recs {
		if rec.JobID == jobID && rec.CandidateID == candidateID {
			return rec, nil
		}
	}
	return nil, nil
}

type fakeAssignments struct {
	recs map[string]*dbmodels.Assignment
}

func (f *fakeAssignments) find(jobID, candidateID string) *dbmodels.Assignment {
	for _, rec := range f.recs {
		if rec.JobID == jobID && rec.CandidateID == candidateID {
			return rec
		}
	}
	return nil
}

func (f *fakeAssignments) Create(rec dbmodels.Assignment) (string, error) {
	rec.ID = "asg-new"
	f.recs[rec.ID] = &rec
	return rec.ID, nil
}

func (f *fakeAssignments) Update(_, jobID, candidateID string, updMap map[string]interface{}) error {
	rec := f.find(jobID, candidateID)
	if rec == nil {
		return errors.New("assignment not found")
	}
	applyUpdate(&rec.Status, &rec.StageID, &rec.RejectReason, updMap)
	return nil
}

func (f *fakeAssignments) GetByID(_, id string) (*dbmodels.Assignment, error) {
	rec, ok := f.recs[id]
	if !ok {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

func (f *fakeAssignments) Get(_, jobID, candidateID string) (*dbmodels.Assignment, error) {
	rec := f.find(jobID, candidateID)
	if rec == nil {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

func (f *fakeAssignments) ListByJob(_, jobID string) ([]dbmodels.Assignment, error) {
	list := []dbmodels.Assignment{}
	for _, rec := range f.recs {
		if rec.JobID == jobID {
			list = append(list, *rec)
		}
	}
	return list, nil
}

func (f *fakeAssignments) CountByStatus(string, []string) ([]dbmodels.StageCount, error) {
	return nil, nil
}

func (f *fakeAssignments) CountInStage(string, string, string, string) (int64, error) {
	return 0, nil
}

func applyUpdate(status, stageID, reason *string, updMap map[string]interface{}) {
	if value, ok := updMap["status"]; ok {
		*status = value.(string)
	}
	if value, ok := updMap["stage_id"]; ok {
		*stageID = value.(string)
	}
	if value, ok := updMap["reject_reason"]; ok {
		*reason = value.(string)
	}
}

type fakeCandidates struct {
	recs map[string]*dbmodels.Candidate
}

func (f *fakeCandidates) Create(rec dbmodels.Candidate) (string, error) {
	rec.ID = "cand-new"
	f.recs[rec.ID] = &rec
	return rec.ID, nil
}

func (f *fakeCandidates) Update(string, string, map[string]interface{}) error {
	return nil
}

func (f *fakeCandidates) GetByID(_, id string) (*dbmodels.Candidate, error) {
	return f.recs[id], nil
}

func (f *fakeCandidates) FindByEmail(_, email string) (*dbmodels.Candidate, error) {
	for _, rec := range f.recs {
		if rec.Email == email {
			return rec, nil
		}
	}
	return nil, nil
}

func (f *fakeCandidates) List(string, string, int, int) ([]dbmodels.Candidate, int64, error) {
	return nil, 0, nil
}

type fakeJobs struct {
	recs map[string]*dbmodels.Job
}

func (f *fakeJobs) Create(rec dbmodels.Job) (string, error) {
	f.recs[rec.ID] = &rec
	return rec.ID, nil
}

func (f *fakeJobs) Update(string, string, map[string]interface{}) error {
	return nil
}

func (f *fakeJobs) GetByID(_, id string) (*dbmodels.Job, error) {
	return f.recs[id], nil
}

func (f *fakeJobs) Delete(string, string) error {
	return nil
}

func (f *fakeJobs) ListCount(string, dbmodels.JobFilter) (int64, error) {
	return int64(len(f.recs)), nil
}

func (f *fakeJobs) List(string, dbmodels.JobFilter, int, int) ([]dbmodels.Job, error) {
	return nil, nil
}

func (f *fakeJobs) ListAll(string) ([]dbmodels.Job, error) {
	return nil, nil
}

func (f *fakeJobs) UpdateStages(string, string, string) error {
	return nil
}

type savedHistory struct {
	applicantID string
	action      dbmodels.ActionType
	changes     dbmodels.ApplicantChanges
}

type fakeHistory struct {
	saved []savedHistory
}

func (f *fakeHistory) List(string, string, applicantapimodels.ApplicantHistoryFilter) ([]applicantapimodels.ApplicantHistoryView, int64, error) {
	return nil, 0, nil
}

func (f *fakeHistory) Save(_, applicantID string, _ models.ApplicantType, _ string, _ applicanthistoryhandler.Author, action dbmodels.ActionType, changes dbmodels.ApplicantChanges) {
	f.saved = append(f.saved, savedHistory{applicantID: applicantID, action: action, changes: changes})
}

func (f *fakeHistory) SaveNote(_, applicantID string, _ models.ApplicantType, _ string, _ applicanthistoryhandler.Author, note applicantapimodels.ApplicantNote) error {
	f.saved = append(f.saved, savedHistory{applicantID: applicantID, action: dbmodels.HistoryTypeComment})
	return nil
}

type fakeNotifier struct {
	events []wsmodels.ApplicantStatusEvent
}

func (f *fakeNotifier) ApplicantStatusChanged(_ string, event wsmodels.ApplicantStatusEvent) {
	f.events = append(f.events, event)
}

func (f *fakeNotifier) JobStagesSaved(string, string) {}

type sentMail struct {
	to      string
	subject string
}

type fakeMailer struct {
	sent []sentMail
}

func (f *fakeMailer) SendEMail(to, subject, _ string) error {
	f.sent = append(f.sent, sentMail{to: to, subject: subject})
	return nil
}

type fixture struct {
	handler      impl
	applications *fakeApplications
	assignments  *fakeAssignments
	history      *fakeHistory
	notifier     *fakeNotifier
	mailer       *fakeMailer
}

func newFixture(t *testing.T) fixture {
	stages := stagelist.List{}
	for k, name := range []string{"A", "B", "C", "D"} {
		stages = append(stages, stagelist.Stage{ID: "id-" + name, Name: name, Order: k + 1, Duration: 1})
	}
	encoded, err := stagelist.Encode(stages)
	require.Nil(t, err)

	candidate := &dbmodels.Candidate{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"}
	candidate.ID = "cand-1"
	job := &dbmodels.Job{Title: "Backend engineer", ApplicationStages: encoded}
	job.ID = "job-1"
	defaultJob := &dbmodels.Job{Title: "Designer"}
	defaultJob.ID = "job-2"

	application := &dbmodels.Application{JobID: "job-1", CandidateID: "cand-1", Candidate: candidate, Status: "B", StageID: "id-B"}
	application.ID = "app-1"
	last := &dbmodels.Application{JobID: "job-1", CandidateID: "cand-2", Status: "D"}
	last.ID = "app-2"
	assignment := &dbmodels.Assignment{JobID: "job-1", CandidateID: "cand-1", Candidate: candidate, Status: "A"}
	assignment.ID = "asg-1"

	f := fixture{
		applications: &fakeApplications{recs: map[string]*dbmodels.Application{"app-1": application, "app-2": last}},
		assignments:  &fakeAssignments{recs: map[string]*dbmodels.Assignment{"asg-1": assignment}},
		history:      &fakeHistory{},
		notifier:     &fakeNotifier{},
		mailer:       &fakeMailer{},
	}
	f.handler = impl{
		applicationStore: f.applications,
		assignmentStore:  f.assignments,
		candidateStore:   &fakeCandidates{recs: map[string]*dbmodels.Candidate{"cand-1": candidate}},
		jobStore:         &fakeJobs{recs: map[string]*dbmodels.Job{"job-1": job, "job-2": defaultJob}},
		history:          f.history,
		notifier:         f.notifier,
		mailer:           f.mailer,
		now:              func() time.Time { return time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC) },
	}
	return f
}

func TestAdvance(t *testing.T) {
	ctx := context.TODO()
	author := Author{ID: "user-1", Name: "Recruiter"}

	t.Run(`application moves to the next stage`, func(t *testing.T) {
		f := newFixture(t)
		view, hMsg, err := f.handler.Advance(ctx, testSpace, author, models.ApplicantTypeApplication, "app-1")
		require.Nil(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, "C", view.Status)
		require.Equal(t, "id-C", view.StageID)
		require.Equal(t, "D", view.State.NextStage.Name)
		require.Equal(t, "C", f.applications.recs["app-1"].Status)

		require.Len(t, f.history.saved, 1)
		require.Equal(t, dbmodels.HistoryTypeStageChange, f.history.saved[0].action)
		require.Len(t, f.notifier.events, 1)
		require.Equal(t, "B", f.notifier.events[0].PrevStatus)
		require.Equal(t, "C", f.notifier.events[0].Status)
	})

	t.Run(`last stage is refused`, func(t *testing.T) {
		f := newFixture(t)
		_, hMsg, err := f.handler.Advance(ctx, testSpace, author, models.ApplicantTypeApplication, "app-2")
		require.Nil(t, err)
		require.Equal(t, "Cannot Advance", hMsg)
		require.Equal(t, "D", f.applications.recs["app-2"].Status)
		require.Empty(t, f.history.saved)
		require.Empty(t, f.notifier.events)
	})

	t.Run(`assignment path`, func(t *testing.T) {
		f := newFixture(t)
		view, hMsg, err := f.handler.Advance(ctx, testSpace, author, models.ApplicantTypeAssignment, "asg-1")
		require.Nil(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, models.ApplicantTypeAssignment, view.Type)
		require.Equal(t, "B", view.Status)
		require.Equal(t, "B", f.assignments.recs["asg-1"].Status)
	})

	t.Run(`unknown applicant`, func(t *testing.T) {
		f := newFixture(t)
		_, hMsg, err := f.handler.Advance(ctx, testSpace, author, models.ApplicantTypeApplication, "missing")
		require.Nil(t, err)
		require.Equal(t, "application not found", hMsg)
	})

	t.Run(`in-flight guard`, func(t *testing.T) {
		f := newFixture(t)
		started := make(chan struct{})
		release := make(chan struct{})
		done := make(chan struct{})
		go func() {
			_ = lock.TryRun(lockKey(models.ApplicantTypeApplication, "app-1"), func() error {
				close(started)
				<-release
				return nil
			})
			close(done)
		}()
		<-started
		_, _, err := f.handler.Advance(ctx, testSpace, author, models.ApplicantTypeApplication, "app-1")
		require.True(t, errors.Is(err, lock.ErrInProgress))
		_, _, err = f.handler.Reject(ctx, testSpace, author, models.ApplicantTypeApplication, "app-1",
			applicantapimodels.RejectRequest{Reason: "position closed"})
		require.True(t, errors.Is(err, lock.ErrInProgress))
		close(release)
		<-done
		require.Equal(t, "B", f.applications.recs["app-1"].Status)
	})
}

func TestReject(t *testing.T) {
	ctx := context.TODO()
	author := Author{ID: "user-1", Name: "Recruiter"}

	t.Run(`reason is required`, func(t *testing.T) {
		f := newFixture(t)
		_, hMsg, err := f.handler.Reject(ctx, testSpace, author, models.ApplicantTypeApplication, "app-1",
			applicantapimodels.RejectRequest{Reason: "  "})
		require.Nil(t, err)
		require.Equal(t, "reject reason is required", hMsg)
		require.Equal(t, "B", f.applications.recs["app-1"].Status)
		require.Empty(t, f.mailer.sent)
	})

	t.Run(`application reject`, func(t *testing.T) {
		f := newFixture(t)
		view, hMsg, err := f.handler.Reject(ctx, testSpace, author, models.ApplicantTypeApplication, "app-1",
			applicantapimodels.RejectRequest{Reason: " not enough experience ", Initiator: models.RecruiterReject})
		require.Nil(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, models.ApplicantStatusRejected, view.Status)
		require.Equal(t, "not enough experience", view.RejectReason)
		require.True(t, view.State.IsTerminal)
		require.False(t, view.State.CanReject)
		require.Empty(t, f.applications.recs["app-1"].StageID)

		require.Len(t, f.mailer.sent, 1)
		require.Equal(t, "jane@example.com", f.mailer.sent[0].to)
		require.Contains(t, f.mailer.sent[0].subject, "Backend engineer")
		require.Equal(t, dbmodels.HistoryTypeReject, f.history.saved[0].action)

		// repeated reject is a no-op
		_, hMsg, err = f.handler.Reject(ctx, testSpace, author, models.ApplicantTypeApplication, "app-1",
			applicantapimodels.RejectRequest{Reason: "again"})
		require.Nil(t, err)
		require.Empty(t, hMsg)
		require.Len(t, f.mailer.sent, 1)
		require.Len(t, f.history.saved, 1)
	})

	t.Run(`assignment reject keeps the reason`, func(t *testing.T) {
		f := newFixture(t)
		view, _, err := f.handler.Reject(ctx, testSpace, author, models.ApplicantTypeAssignment, "asg-1",
			applicantapimodels.RejectRequest{Reason: "salary expectations"})
		require.Nil(t, err)
		require.Equal(t, models.ApplicantStatusRejected, view.Status)
		require.Equal(t, "salary expectations", f.assignments.recs["asg-1"].RejectReason)
	})

	t.Run(`hired applicant can not be rejected`, func(t *testing.T) {
		f := newFixture(t)
		_, hMsg, err := f.handler.Close(ctx, testSpace, author, models.ApplicantTypeApplication, "app-1",
			applicantapimodels.CloseRequest{Status: models.ApplicantStatusHired})
		require.Nil(t, err)
		require.Empty(t, hMsg)
		require.Len(t, f.mailer.sent, 1)
		require.Contains(t, f.mailer.sent[0].subject, "Welcome aboard")
		_, hMsg, err = f.handler.Reject(ctx, testSpace, author, models.ApplicantTypeApplication, "app-1",
			applicantapimodels.RejectRequest{Reason: "late"})
		require.Nil(t, err)
		require.Equal(t, "applicant is in a terminal status", hMsg)
		require.Equal(t, models.ApplicantStatusHired, f.applications.recs["app-1"].Status)
	})
}

func TestCreateApplication(t *testing.T) {
	author := Author{}

	t.Run(`starts at the first stage of the job`, func(t *testing.T) {
		f := newFixture(t)
		id, hMsg, err := f.handler.CreateApplication(testSpace, author, applicantapimodels.ApplicationData{
			JobID: "job-1",
			Candidate: &applicantapimodels.CandidateData{
				FirstName: "John",
				Email:     "john@example.com",
			},
		})
		require.Nil(t, err)
		require.Empty(t, hMsg)
		rec := f.applications.recs[id]
		require.Equal(t, "A", rec.Status)
		require.Equal(t, "id-A", rec.StageID)
		require.Equal(t, "cand-new", rec.CandidateID)
		require.Equal(t, dbmodels.HistoryTypeAdded, f.history.saved[0].action)
	})

	t.Run(`default pipeline when the job has none`, func(t *testing.T) {
		f := newFixture(t)
		id, hMsg, err := f.handler.CreateApplication(testSpace, author, applicantapimodels.ApplicationData{
			JobID:       "job-2",
			CandidateID: "cand-1",
		})
		require.Nil(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, stagelist.AppliedStage, f.applications.recs[id].Status)
		require.Equal(t, stagelist.StableID(stagelist.AppliedStage), f.applications.recs[id].StageID)
	})

	t.Run(`duplicate application`, func(t *testing.T) {
		f := newFixture(t)
		_, hMsg, err := f.handler.CreateApplication(testSpace, author, applicantapimodels.ApplicationData{
			JobID:       "job-1",
			CandidateID: "cand-1",
		})
		require.Nil(t, err)
		require.Equal(t, "candidate already applied to this job", hMsg)
	})
}

func TestListByJob(t *testing.T) {
	f := newFixture(t)
	list, err := f.handler.ListByJob(testSpace, "job-1")
	require.Nil(t, err)
	require.Len(t, list, 3)
	types := map[models.ApplicantType]int{}
	for _, item := range list {
		types[item.Type]++
		if item.ID == "app-2" {
			require.False(t, item.State.CanAdvance)
		}
	}
	require.Equal(t, 2, types[models.ApplicantTypeApplication])
	require.Equal(t, 1, types[models.ApplicantTypeAssignment])
}
