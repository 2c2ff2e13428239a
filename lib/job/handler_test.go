package jobhandler

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	applicationstore "ats-backend/lib/applicant/application-store"
	assignmentstore "ats-backend/lib/applicant/assignment-store"
	jobstatus "ats-backend/lib/job-status"
	"ats-backend/lib/pipeline/stagelist"
	"ats-backend/models"
	jobapimodels "ats-backend/models/api/job"
	dbmodels "ats-backend/models/db"
	wsmodels "ats-backend/models/ws"
)

type fakeJobStore struct {
	jobs map[string]*dbmodels.Job
}

func (f *fakeJobStore) Create(rec dbmodels.Job) (id string, err error) {
	rec.ID = "job-new"
	f.jobs[rec.ID] = &rec
	return rec.ID, nil
}

func (f *fakeJobStore) Update(spaceID, id string, updMap map[string]interface{}) error {
	rec, ok := f.jobs[id]
	if !ok {
		return nil
	}
	if value, ok := updMap["title"]; ok {
		rec.Title = value.(string)
	}
	if value, ok := updMap["job_status"]; ok {
		rec.JobStatus = value.(models.JobStatus)
	}
	if value, ok := updMap["application_stages"]; ok {
		rec.ApplicationStages = value.(string)
	}
	return nil
}

func (f *fakeJobStore) GetByID(spaceID, id string) (*dbmodels.Job, error) {
	rec, ok := f.jobs[id]
	if !ok || rec.SpaceID != spaceID {
		return nil, nil
	}
	result := *rec
	return &result, nil
}

func (f *fakeJobStore) Delete(spaceID, id string) error {
	delete(f.jobs, id)
	return nil
}

func (f *fakeJobStore) ListCount(spaceID string, filter dbmodels.JobFilter) (int64, error) {
	return int64(len(f.jobs)), nil
}

func (f *fakeJobStore) List(spaceID string, filter dbmodels.JobFilter, page, limit int) ([]dbmodels.Job, error) {
	return f.ListAll(spaceID)
}

func (f *fakeJobStore) ListAll(spaceID string) ([]dbmodels.Job, error) {
	list := []dbmodels.Job{}
	for _, rec := range f.jobs {
		list = append(list, *rec)
	}
	return list, nil
}

func (f *fakeJobStore) UpdateStages(spaceID, id, stages string) error {
	f.jobs[id].ApplicationStages = stages
	return nil
}

type fakeApplicationStore struct {
	applicationstore.Provider
	byStage map[string]int64
	list    []dbmodels.Application
}

func (f *fakeApplicationStore) CountInStage(spaceID, jobID, stageID, stageName string) (int64, error) {
	return f.byStage[stageID], nil
}

func (f *fakeApplicationStore) ListByJob(spaceID, jobID string) ([]dbmodels.Application, error) {
	return f.list, nil
}

type fakeAssignmentStore struct {
	assignmentstore.Provider
}

func (f *fakeAssignmentStore) CountInStage(spaceID, jobID, stageID, stageName string) (int64, error) {
	return 0, nil
}

func (f *fakeAssignmentStore) ListByJob(spaceID, jobID string) ([]dbmodels.Assignment, error) {
	return nil, nil
}

type fakeNotifier struct {
	saved []string
}

func (f *fakeNotifier) ApplicantStatusChanged(spaceID string, event wsmodels.ApplicantStatusEvent) {}

func (f *fakeNotifier) JobStagesSaved(spaceID, jobID string) {
	f.saved = append(f.saved, jobID)
}

var testStages = stagelist.List{
	{ID: "id-A", Name: "A", Order: 1, Duration: 1},
	{ID: "id-B", Name: "B", Order: 2, Duration: 2},
	{ID: "id-C", Name: "C", Order: 3, Duration: 1},
}

type fixture struct {
	handler      impl
	jobs         *fakeJobStore
	applications *fakeApplicationStore
	notifier     *fakeNotifier
}

func newFixture(t *testing.T) fixture {
	encoded, err := stagelist.Encode(testStages)
	require.Nil(t, err)
	job := &dbmodels.Job{
		BaseSpaceModel:    dbmodels.BaseSpaceModel{SpaceID: "space-1"},
		Title:             "Go developer",
		ApplicationStages: encoded,
	}
	job.ID = "job-1"
	jobs := &fakeJobStore{jobs: map[string]*dbmodels.Job{job.ID: job}}
	applications := &fakeApplicationStore{byStage: map[string]int64{"id-B": 2}}
	notifier := &fakeNotifier{}
	return fixture{
		handler: impl{
			store:            jobs,
			applicationStore: applications,
			assignmentStore:  &fakeAssignmentStore{},
			notifier:         notifier,
		},
		jobs:         jobs,
		applications: applications,
		notifier:     notifier,
	}
}

func stagesData(t *testing.T, list stagelist.List) jobapimodels.StagesData {
	body, err := json.Marshal(list)
	require.Nil(t, err)
	return jobapimodels.StagesData{ApplicationStages: body}
}

func rawStages(body string) jobapimodels.StagesData {
	return jobapimodels.StagesData{ApplicationStages: json.RawMessage(body)}
}

func TestStageEditing(t *testing.T) {
	f := newFixture(t)

	t.Run(`append to the stored pipeline`, func(t *testing.T) {
		view, hMsg, err := f.handler.AppendStage("space-1", "job-1", jobapimodels.StagesData{})
		require.Nil(t, err)
		require.Empty(t, hMsg)
		require.Len(t, view.ApplicationStages, 4)
		require.Equal(t, 4, view.ApplicationStages[3].Order)
		require.False(t, view.Valid)
		require.Contains(t, view.Errors, stagelist.FieldKey(3, stagelist.FieldName))
	})

	t.Run(`remove from the submitted pipeline`, func(t *testing.T) {
		view, hMsg, err := f.handler.RemoveStage("space-1", "job-1", jobapimodels.StageRemoveRequest{
			StagesData: stagesData(t, testStages),
			Index:      0,
		})
		require.Nil(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, []string{"B", "C"}, view.ApplicationStages.Names())
		require.Equal(t, 1, view.ApplicationStages[0].Order)
		require.True(t, view.Valid)
	})

	t.Run(`move`, func(t *testing.T) {
		view, hMsg, err := f.handler.MoveStage("space-1", "job-1", jobapimodels.StageMoveRequest{
			Index:     2,
			Direction: stagelist.DirectionUp,
		})
		require.Nil(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, []string{"A", "C", "B"}, view.ApplicationStages.Names())

		_, hMsg, err = f.handler.MoveStage("space-1", "job-1", jobapimodels.StageMoveRequest{Direction: "left"})
		require.Nil(t, err)
		require.NotEmpty(t, hMsg)
	})

	t.Run(`edit`, func(t *testing.T) {
		view, hMsg, err := f.handler.EditStage("space-1", "job-1", jobapimodels.StageEditRequest{
			Index: 1,
			Field: stagelist.FieldDuration,
			Value: float64(5),
		})
		require.Nil(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, 5, view.ApplicationStages[1].Duration)

		_, hMsg, err = f.handler.EditStage("space-1", "job-1", jobapimodels.StageEditRequest{
			Index: 7,
			Field: stagelist.FieldName,
			Value: "Z",
		})
		require.Nil(t, err)
		require.NotEmpty(t, hMsg)
	})

	t.Run(`stored pipeline is untouched`, func(t *testing.T) {
		stages, hMsg, err := f.handler.GetStages("space-1", "job-1")
		require.Nil(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, []string{"A", "B", "C"}, stages.Names())
	})

	t.Run(`unknown job`, func(t *testing.T) {
		_, hMsg, err := f.handler.AppendStage("space-1", "job-x", jobapimodels.StagesData{})
		require.Nil(t, err)
		require.Equal(t, "job not found", hMsg)
	})
}

func TestSaveStages(t *testing.T) {
	t.Run(`valid pipeline is stored`, func(t *testing.T) {
		f := newFixture(t)
		updated := testStages.Clone()
		updated[1].Name = "Technical interview"
		view, hMsg, err := f.handler.SaveStages("space-1", "job-1", stagesData(t, updated))
		require.Nil(t, err)
		require.Empty(t, hMsg)
		require.True(t, view.Valid)
		require.Equal(t, []string{"A", "Technical interview", "C"}, f.jobs.jobs["job-1"].Stages().Names())
		require.Equal(t, []string{"job-1"}, f.notifier.saved)
	})

	t.Run(`invalid pipeline is returned and not stored`, func(t *testing.T) {
		f := newFixture(t)
		updated := testStages.Clone()
		updated[2].Name = "A"
		view, hMsg, err := f.handler.SaveStages("space-1", "job-1", stagesData(t, updated))
		require.Nil(t, err)
		require.Empty(t, hMsg)
		require.False(t, view.Valid)
		require.Contains(t, view.Errors[stagelist.FieldKey(2, stagelist.FieldName)], "duplicates")
		require.Equal(t, []string{"A", "B", "C"}, f.jobs.jobs["job-1"].Stages().Names())
		require.Empty(t, f.notifier.saved)
	})

	t.Run(`stage with applicants can not be removed`, func(t *testing.T) {
		f := newFixture(t)
		view, hMsg, err := f.handler.SaveStages("space-1", "job-1", stagesData(t, testStages.Remove(1)))
		require.Nil(t, err)
		require.True(t, strings.HasPrefix(hMsg, `stage "B" still has 2`))
		require.Empty(t, view.ApplicationStages)
		require.Equal(t, []string{"A", "B", "C"}, f.jobs.jobs["job-1"].Stages().Names())
	})

	t.Run(`empty stage removal is allowed`, func(t *testing.T) {
		f := newFixture(t)
		_, hMsg, err := f.handler.SaveStages("space-1", "job-1", stagesData(t, testStages.Remove(2)))
		require.Nil(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, []string{"A", "B"}, f.jobs.jobs["job-1"].Stages().Names())
	})

	t.Run(`stages are required`, func(t *testing.T) {
		f := newFixture(t)
		_, hMsg, err := f.handler.SaveStages("space-1", "job-1", jobapimodels.StagesData{})
		require.Nil(t, err)
		require.NotEmpty(t, hMsg)
	})

	t.Run(`empty list is invalid and not stored`, func(t *testing.T) {
		for _, body := range []string{`[]`, `null`, `"[]"`} {
			f := newFixture(t)
			view, hMsg, err := f.handler.SaveStages("space-1", "job-1", rawStages(body))
			require.Nil(t, err)
			require.Empty(t, hMsg, body)
			require.False(t, view.Valid, body)
			require.Contains(t, view.Errors, stagelist.ListKey, body)
			require.Equal(t, []string{"A", "B", "C"}, f.jobs.jobs["job-1"].Stages().Names(), body)
			require.Empty(t, f.notifier.saved, body)
		}
	})

	t.Run(`malformed list is refused and not stored`, func(t *testing.T) {
		for _, body := range []string{`{"oops":true}`, `"not json"`, `[{"name":`} {
			f := newFixture(t)
			view, hMsg, err := f.handler.SaveStages("space-1", "job-1", rawStages(body))
			require.Nil(t, err)
			require.Equal(t, jobapimodels.ErrMalformedStages.Error(), hMsg, body)
			require.Empty(t, view.ApplicationStages, body)
			require.Equal(t, []string{"A", "B", "C"}, f.jobs.jobs["job-1"].Stages().Names(), body)
		}
	})

	t.Run(`stages sent without ids keep the stored ids`, func(t *testing.T) {
		f := newFixture(t)
		body := `[{"name":"A","order":1,"duration":1},{"name":"B","order":2,"duration":2},{"name":"Offer","order":3,"duration":3}]`
		view, hMsg, err := f.handler.SaveStages("space-1", "job-1", rawStages(body))
		require.Nil(t, err)
		require.Empty(t, hMsg)
		require.True(t, view.Valid)
		stored := f.jobs.jobs["job-1"].Stages()
		require.Equal(t, []string{"A", "B", "Offer"}, stored.Names())
		require.Equal(t, "id-A", stored[0].ID)
		require.Equal(t, "id-B", stored[1].ID)
		require.Equal(t, stagelist.StableID("Offer"), stored[2].ID)
	})

	t.Run(`stage without id and with applicants can not be dropped`, func(t *testing.T) {
		f := newFixture(t)
		body := `[{"name":"A","order":1,"duration":1},{"name":"C","order":2,"duration":1}]`
		_, hMsg, err := f.handler.SaveStages("space-1", "job-1", rawStages(body))
		require.Nil(t, err)
		require.True(t, strings.HasPrefix(hMsg, `stage "B" still has 2`))
		require.Equal(t, []string{"A", "B", "C"}, f.jobs.jobs["job-1"].Stages().Names())
	})
}

func TestUpdateStages(t *testing.T) {
	update := func(t *testing.T, f fixture, body string) string {
		hMsg, err := f.handler.Update("space-1", "job-1", jobapimodels.JobData{
			Title:             "Go developer",
			ApplicationStages: json.RawMessage(body),
		})
		require.Nil(t, err)
		return hMsg
	}

	t.Run(`empty list is refused`, func(t *testing.T) {
		f := newFixture(t)
		hMsg := update(t, f, `[]`)
		require.Contains(t, hMsg, stagelist.ListKey)
		require.Equal(t, []string{"A", "B", "C"}, f.jobs.jobs["job-1"].Stages().Names())
	})

	t.Run(`null leaves the pipeline alone`, func(t *testing.T) {
		f := newFixture(t)
		require.Empty(t, update(t, f, `null`))
		require.Equal(t, testStages, f.jobs.jobs["job-1"].Stages())
	})

	t.Run(`malformed list is refused`, func(t *testing.T) {
		for _, body := range []string{`{"oops":true}`, `"not json"`} {
			f := newFixture(t)
			require.Equal(t, jobapimodels.ErrMalformedStages.Error(), update(t, f, body), body)
			require.Equal(t, []string{"A", "B", "C"}, f.jobs.jobs["job-1"].Stages().Names(), body)
		}
	})

	t.Run(`stages sent without ids match by name`, func(t *testing.T) {
		f := newFixture(t)
		require.Empty(t, update(t, f, `[{"name":"B","order":1,"duration":2},{"name":"A","order":2,"duration":1}]`))
		stored := f.jobs.jobs["job-1"].Stages()
		require.Equal(t, []string{"B", "A"}, stored.Names())
		require.Equal(t, []string{"id-B", "id-A"}, []string{stored[0].ID, stored[1].ID})
	})
}

func TestCreate(t *testing.T) {
	f := newFixture(t)

	t.Run(`title is required`, func(t *testing.T) {
		_, hMsg, err := f.handler.Create("space-1", "user-1", jobapimodels.JobData{})
		require.Nil(t, err)
		require.Equal(t, "job title is required", hMsg)
	})

	t.Run(`default pipeline and draft status`, func(t *testing.T) {
		id, hMsg, err := f.handler.Create("space-1", "user-1", jobapimodels.JobData{Title: "Designer"})
		require.Nil(t, err)
		require.Empty(t, hMsg)
		rec := f.jobs.jobs[id]
		require.Equal(t, models.JobStatusDraft, rec.JobStatus)
		require.Nil(t, rec.PostedDate)
		require.Equal(t, stagelist.Default().Names(), rec.Stages().Names())
	})

	t.Run(`submitted pipeline is checked`, func(t *testing.T) {
		_, hMsg, err := f.handler.Create("space-1", "user-1", jobapimodels.JobData{
			Title:             "Analyst",
			ApplicationStages: json.RawMessage(`[]`),
		})
		require.Nil(t, err)
		require.Contains(t, hMsg, stagelist.ListKey)

		_, hMsg, err = f.handler.Create("space-1", "user-1", jobapimodels.JobData{
			Title:             "Analyst",
			ApplicationStages: json.RawMessage(`{"oops":true}`),
		})
		require.Nil(t, err)
		require.Equal(t, jobapimodels.ErrMalformedStages.Error(), hMsg)
	})

	t.Run(`deadline posts the job`, func(t *testing.T) {
		deadline := time.Now().AddDate(0, 1, 0).Format("2006-01-02")
		id, hMsg, err := f.handler.Create("space-1", "user-1", jobapimodels.JobData{Title: "Tester", Deadline: &deadline})
		require.Nil(t, err)
		require.Empty(t, hMsg)
		rec := f.jobs.jobs[id]
		require.NotNil(t, rec.PostedDate)
		require.Equal(t, models.JobStatusNew, rec.JobStatus)
	})
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	f.applications.list = []dbmodels.Application{{}}
	hMsg, err := f.handler.Delete("space-1", "job-1")
	require.Nil(t, err)
	require.NotEmpty(t, hMsg)

	f.applications.list = nil
	hMsg, err = f.handler.Delete("space-1", "job-1")
	require.Nil(t, err)
	require.Empty(t, hMsg)
	require.Empty(t, f.jobs.jobs)
}

func TestRefreshStatuses(t *testing.T) {
	f := newFixture(t)
	posted := jobstatus.Instance.Now().AddDate(0, 0, -30)
	f.jobs.jobs["job-1"].PostedDate = &posted
	f.jobs.jobs["job-1"].JobStatus = models.JobStatusNew

	require.Nil(t, f.handler.RefreshStatuses(context.Background()))
	require.Equal(t, models.JobStatusActive, f.jobs.jobs["job-1"].JobStatus)
}
