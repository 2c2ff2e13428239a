package initializers

import (
	"context"
	"time"

	"ats-backend/config"
	"ats-backend/fiberlog"
	"ats-backend/lib/analytics"
	"ats-backend/lib/applicant"
	applicanthistoryhandler "ats-backend/lib/applicant-history"
	atshandler "ats-backend/lib/ats"
	candidatehandler "ats-backend/lib/candidate"
	companyprovider "ats-backend/lib/dicts/company"
	rejectreasonprovider "ats-backend/lib/dicts/reject-reason"
	documenthandler "ats-backend/lib/document"
	xlsexport "ats-backend/lib/export/xls"
	gpthandler "ats-backend/lib/gpt"
	jobhandler "ats-backend/lib/job"
	jobstatus "ats-backend/lib/job-status"
	jobstatusworker "ats-backend/lib/job/status-worker"
	recruiterhandler "ats-backend/lib/recruiter"
	"ats-backend/lib/utils/lock"
	connectionhub "ats-backend/lib/ws/hub/connection-hub"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	config.InitConfig()
	LoggerConfig = InitLogger()
	jobstatus.Instance = jobstatus.NewCalculator(config.Conf.Pipeline.NewPeriodDays, config.Conf.Pipeline.ClosingSoonDays)
	InitDBConnection()
	InitS3(ctx)
	InitSmtp()
	connectionhub.Init()
	lock.InitResourceLock(ctx)
	applicanthistoryhandler.NewHandler()
	companyprovider.NewHandler()
	recruiterhandler.NewHandler()
	rejectreasonprovider.NewHandler()
	jobhandler.NewHandler()
	candidatehandler.NewHandler()
	documenthandler.NewHandler()
	applicant.NewHandler()
	xlsexport.NewHandler()
	analytics.NewHandler()
	atshandler.NewHandler()
	gpthandler.NewHandler()
	go initWorkers(ctx)
}

// workers start with a gap so their first runs do not overlap
func initWorkers(ctx context.Context) {
	if makeTimeGap(ctx) {
		// stored job statuses follow the calendar
		jobstatusworker.StartWorker(ctx)
	}
}

func makeTimeGap(ctx context.Context) (canRun bool) {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(time.Second * 10):
		return true
	}
}
