package atshandler

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"ats-backend/config"
	"ats-backend/db"
	applicanthistoryhandler "ats-backend/lib/applicant-history"
	applicationstore "ats-backend/lib/applicant/application-store"
	documenthandler "ats-backend/lib/document"
	yagptclient "ats-backend/lib/gpt/yagpt-client"
	"ats-backend/lib/utils/lock"
	"ats-backend/models"
	dbmodels "ats-backend/models/db"
)

const systemPrompt = "You are an applicant tracking system assistant. Compare the resume with the job " +
	"and answer in plain text: a match score from 0 to 100 on the first line, then the matching skills, " +
	"the missing requirements and a two sentence summary."

type Provider interface {
	Analyze(ctx context.Context, spaceID string, author applicanthistoryhandler.Author, applicationID string) (analysis, hMsg string, err error)
}

// resumeSource is the part of the document service the analysis reads.
type resumeSource interface {
	ResumeText(spaceID, candidateID string) (string, error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		applicationStore: applicationstore.NewInstance(db.DB),
		resumes:          documenthandler.Instance,
		history:          applicanthistoryhandler.Instance,
		resource:         lock.Resource,
	}
	if config.Conf.YandexGPT.IAMToken != "" && config.Conf.YandexGPT.CatalogID != "" {
		instance.gpt = yagptclient.NewClient(config.Conf.YandexGPT.IAMToken, config.Conf.YandexGPT.CatalogID)
	} else {
		log.Warn("YandexGPT is not configured, ats analysis is disabled")
	}
	Instance = instance
}

type impl struct {
	applicationStore applicationstore.Provider
	resumes          resumeSource
	history          applicanthistoryhandler.Provider
	gpt              yagptclient.Provider
	resource         *lock.ResourceLock
}

func (i impl) Analyze(ctx context.Context, spaceID string, author applicanthistoryhandler.Author, applicationID string) (analysis, hMsg string, err error) {
	logger := log.
		WithField("space_id", spaceID).
		WithField("application_id", applicationID)
	if i.gpt == nil {
		return "", "ats analysis is not configured", nil
	}
	rec, err := i.applicationStore.GetByID(spaceID, applicationID)
	if err != nil {
		return "", "", err
	}
	if rec == nil {
		return "", "application not found", nil
	}
	if rec.Job == nil {
		return "", "", errors.Errorf("job %v of application not loaded", rec.JobID)
	}
	resume, err := i.resumes.ResumeText(spaceID, rec.CandidateID)
	if err != nil {
		return "", "", err
	}
	if strings.TrimSpace(resume) == "" {
		return "", "candidate has no resume text, upload a resume first", nil
	}

	if !i.resource.Acquire(ctx, applicationID) {
		return "", "", errors.Wrap(ctx.Err(), "ats analysis cancelled")
	}
	analysis, err = i.gpt.GenerateByPromptAndText(ctx, systemPrompt, userText(*rec.Job, resume))
	i.resource.Release(applicationID)
	if err != nil {
		logger.WithError(err).Error("ats analysis failed")
		return "", "", err
	}
	analysis = strings.TrimSpace(analysis)

	err = i.applicationStore.Update(spaceID, applicationID, map[string]interface{}{"ats_analysis": analysis})
	if err != nil {
		return "", "", err
	}
	i.history.Save(spaceID, applicationID, models.ApplicantTypeApplication, rec.JobID, author,
		dbmodels.HistoryTypeAtsAnalysis, applicanthistoryhandler.GetAtsAnalysisChange())
	logger.Info("ats analysis stored")
	return analysis, "", nil
}

func userText(job dbmodels.Job, resume string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Job title: %v\n", job.Title))
	if job.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %v\n", job.Location))
	}
	if job.EmploymentType != "" {
		sb.WriteString(fmt.Sprintf("Employment type: %v\n", job.EmploymentType))
	}
	sb.WriteString(fmt.Sprintf("Job description:\n%v\n\n", job.Description))
	sb.WriteString(fmt.Sprintf("Resume:\n%v", resume))
	return sb.String()
}
