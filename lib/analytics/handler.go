package analytics

import (
	"bytes"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"ats-backend/db"
	"ats-backend/lib/applicant"
	applicationstore "ats-backend/lib/applicant/application-store"
	assignmentstore "ats-backend/lib/applicant/assignment-store"
	pdfexport "ats-backend/lib/export/pdf"
	xlsexport "ats-backend/lib/export/xls"
	jobstatus "ats-backend/lib/job-status"
	jobstore "ats-backend/lib/job/store"
	initchecker "ats-backend/lib/utils/init-checker"
	"ats-backend/models"
	dashboardapimodels "ats-backend/models/api/dashboard"
	jobapimodels "ats-backend/models/api/job"
	dbmodels "ats-backend/models/db"
)

type Provider interface {
	Dashboard(spaceID string) (dashboardapimodels.DashboardView, error)
	JobPipeline(spaceID, jobID string) (view dashboardapimodels.JobPipelineView, hMsg string, err error)
	ApplicantsExportToXls(spaceID, jobID string) (buf *bytes.Buffer, hMsg string, err error)
	PipelineExportToPdf(spaceID, jobID string) (body []byte, hMsg string, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		jobStore:          jobstore.NewInstance(db.DB),
		applicationStore:  applicationstore.NewInstance(db.DB),
		assignmentStore:   assignmentstore.NewInstance(db.DB),
		applicantProvider: applicant.Instance,
		xls:               xlsexport.Instance,
		cache:             cache.New(dashboardCacheTTL, 2*dashboardCacheTTL),
	}
	initchecker.CheckInit(
		"applicantProvider", instance.applicantProvider,
		"xls", instance.xls,
	)
	Instance = instance
}

type impl struct {
	jobStore          jobstore.Provider
	applicationStore  applicationstore.Provider
	assignmentStore   assignmentstore.Provider
	applicantProvider applicant.Provider
	xls               xlsexport.Provider
	cache             *cache.Cache
}

const (
	dashboardCacheKeyPattern string = "dashboard:%v"
	dashboardCacheTTL               = 30 * time.Second
)

func (i impl) Dashboard(spaceID string) (dashboardapimodels.DashboardView, error) {
	cacheKey := fmt.Sprintf(dashboardCacheKeyPattern, spaceID)
	if i.cache != nil {
		if cacheValue, ok := i.cache.Get(cacheKey); ok {
			return cacheValue.(dashboardapimodels.DashboardView), nil
		}
	}
	jobs, err := i.jobStore.ListAll(spaceID)
	if err != nil {
		return dashboardapimodels.DashboardView{}, err
	}
	counts, err := i.counts(spaceID, jobs)
	if err != nil {
		return dashboardapimodels.DashboardView{}, err
	}
	view := dashboardapimodels.DashboardView{
		JobsByStatus: map[models.JobStatus]int{},
		Jobs:         make([]dashboardapimodels.JobPipelineView, 0, len(jobs)),
	}
	for _, job := range jobs {
		pipeline := buildPipeline(job, counts)
		view.JobsByStatus[pipeline.JobStatus]++
		view.Applicants += pipeline.Total
		view.Hired += pipeline.Hired
		view.Jobs = append(view.Jobs, pipeline)
	}
	if i.cache != nil {
		i.cache.Set(cacheKey, view, cache.DefaultExpiration)
	}
	return view, nil
}

func (i impl) JobPipeline(spaceID, jobID string) (view dashboardapimodels.JobPipelineView, hMsg string, err error) {
	job, err := i.jobStore.GetByID(spaceID, jobID)
	if err != nil {
		return dashboardapimodels.JobPipelineView{}, "", err
	}
	if job == nil {
		return dashboardapimodels.JobPipelineView{}, "job not found", nil
	}
	counts, err := i.counts(spaceID, []dbmodels.Job{*job})
	if err != nil {
		return dashboardapimodels.JobPipelineView{}, "", err
	}
	return buildPipeline(*job, counts), "", nil
}

func (i impl) ApplicantsExportToXls(spaceID, jobID string) (buf *bytes.Buffer, hMsg string, err error) {
	job, err := i.jobStore.GetByID(spaceID, jobID)
	if err != nil {
		return nil, "", err
	}
	if job == nil {
		return nil, "job not found", nil
	}
	list, err := i.applicantProvider.ListByJob(spaceID, jobID)
	if err != nil {
		return nil, "", err
	}
	job.JobStatus = jobstatus.Instance.ComputeTime(job.Deadline, job.PostedDate)
	buf, err = i.xls.ExportApplicantList(jobapimodels.JobConvert(*job), list)
	if err != nil {
		return nil, "", err
	}
	return buf, "", nil
}

func (i impl) PipelineExportToPdf(spaceID, jobID string) (body []byte, hMsg string, err error) {
	view, hMsg, err := i.JobPipeline(spaceID, jobID)
	if err != nil || hMsg != "" {
		return nil, hMsg, err
	}
	body, err = pdfexport.PipelineSummary(view)
	if err != nil {
		return nil, "", err
	}
	return body, "", nil
}

func (i impl) counts(spaceID string, jobs []dbmodels.Job) ([]dbmodels.StageCount, error) {
	jobIDs := make([]string, 0, len(jobs))
	for _, job := range jobs {
		jobIDs = append(jobIDs, job.ID)
	}
	applications, err := i.applicationStore.CountByStatus(spaceID, jobIDs)
	if err != nil {
		return nil, err
	}
	assignments, err := i.assignmentStore.CountByStatus(spaceID, jobIDs)
	if err != nil {
		return nil, err
	}
	return append(applications, assignments...), nil
}
