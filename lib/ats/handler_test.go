package atshandler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	applicanthistoryhandler "ats-backend/lib/applicant-history"
	"ats-backend/lib/utils/lock"
	"ats-backend/models"
	applicantapimodels "ats-backend/models/api/applicant"
	dbmodels "ats-backend/models/db"
)

type fakeApplications struct {
	rec *dbmodels.Application
	upd map[string]interface{}
}

func (f *fakeApplications) Create(dbmodels.Application) (string, error) {
	return "", nil
}

func (f *fakeApplications) Update(_, _ string, updMap map[string]interface{}) error {
	f.upd = updMap
	return nil
}

func (f *fakeApplications) GetByID(_, id string) (*dbmodels.Application, error) {
	if f.rec == nil || f.rec.ID != id {
		return nil, nil
	}
	return f.rec, nil
}

func (f *fakeApplications) ListByJob(string, string) ([]dbmodels.Application, error) {
	return nil, nil
}

func (f *fakeApplications) FindByCandidate(string, string, string) (*dbmodels.Application, error) {
	return nil, nil
}

func (f *fakeApplications) ListByStatus(string, string, string) ([]dbmodels.Application, error) {
	return nil, nil
}

func (f *fakeApplications) CountByStatus(string, []string) ([]dbmodels.StageCount, error) {
	return nil, nil
}

func (f *fakeApplications) CountInStage(string, string, string, string) (int64, error) {
	return 0, nil
}

type fakeResumes map[string]string

func (f fakeResumes) ResumeText(_, candidateID string) (string, error) {
	return f[candidateID], nil
}

type fakeGPT struct {
	prompt string
	text   string
}

func (f *fakeGPT) GenerateByPromptAndText(_ context.Context, prompt, text string) (string, error) {
	f.prompt = prompt
	f.text = text
	return " 82\nGo, PostgreSQL\n", nil
}

type fakeHistory struct {
	actions []dbmodels.ActionType
}

func (f *fakeHistory) List(string, string, applicantapimodels.ApplicantHistoryFilter) ([]applicantapimodels.ApplicantHistoryView, int64, error) {
	return nil, 0, nil
}

func (f *fakeHistory) Save(_, _ string, _ models.ApplicantType, _ string, _ applicanthistoryhandler.Author, action dbmodels.ActionType, _ dbmodels.ApplicantChanges) {
	f.actions = append(f.actions, action)
}

func (f *fakeHistory) SaveNote(string, string, models.ApplicantType, string, applicanthistoryhandler.Author, applicantapimodels.ApplicantNote) error {
	return nil
}

func TestAnalyze(t *testing.T) {
	ctx := context.TODO()
	job := &dbmodels.Job{Title: "Go developer", Description: "Build services"}
	job.ID = "job-1"
	rec := &dbmodels.Application{JobID: "job-1", Job: job, CandidateID: "cand-1"}
	rec.ID = "app-1"

	t.Run(`analysis is stored`, func(t *testing.T) {
		applications := &fakeApplications{rec: rec}
		gpt := &fakeGPT{}
		history := &fakeHistory{}
		h := impl{
			applicationStore: applications,
			resumes:          fakeResumes{"cand-1": "5 years of Go"},
			history:          history,
			gpt:              gpt,
			resource:         lock.Resource,
		}
		analysis, hMsg, err := h.Analyze(ctx, "space", applicanthistoryhandler.Author{}, "app-1")
		require.Nil(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, "82\nGo, PostgreSQL", analysis)
		require.Equal(t, analysis, applications.upd["ats_analysis"])
		require.Contains(t, gpt.text, "Job title: Go developer")
		require.Contains(t, gpt.text, "5 years of Go")
		require.Equal(t, []dbmodels.ActionType{dbmodels.HistoryTypeAtsAnalysis}, history.actions)
		require.Zero(t, lock.Resource.WaitCount())
	})

	t.Run(`no resume`, func(t *testing.T) {
		gpt := &fakeGPT{}
		h := impl{
			applicationStore: &fakeApplications{rec: rec},
			resumes:          fakeResumes{},
			history:          &fakeHistory{},
			gpt:              gpt,
			resource:         lock.Resource,
		}
		_, hMsg, err := h.Analyze(ctx, "space", applicanthistoryhandler.Author{}, "app-1")
		require.Nil(t, err)
		require.Contains(t, hMsg, "no resume text")
		require.Empty(t, gpt.text)
	})

	t.Run(`not configured`, func(t *testing.T) {
		h := impl{applicationStore: &fakeApplications{rec: rec}}
		_, hMsg, err := h.Analyze(ctx, "space", applicanthistoryhandler.Author{}, "app-1")
		require.Nil(t, err)
		require.Equal(t, "ats analysis is not configured", hMsg)
	})
}
