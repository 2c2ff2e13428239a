package xlsexport

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"ats-backend/models"
	applicantapimodels "ats-backend/models/api/applicant"
	jobapimodels "ats-backend/models/api/job"
)

const (
	applicantSheet = "Applicants"
	pipelineSheet  = "Pipeline"
	dateLayout     = "2006-01-02"
)

type Provider interface {
	ExportApplicantList(job jobapimodels.JobView, list []applicantapimodels.ApplicantView) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var applicantHeaders = []string{"Name", "Contacts", "Type", "Stage", "Applied", "Reject reason"}

var pipelineHeaders = []string{"#", "Stage", "Applicants"}

// ExportApplicantList writes the applicants of a job and a per-stage summary in pipeline order.
func (i impl) ExportApplicantList(job jobapimodels.JobView, list []applicantapimodels.ApplicantView) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("xlsx file close failed")
		}
	}()
	if err := f.SetSheetName("Sheet1", applicantSheet); err != nil {
		return nil, errors.Wrap(err, "xlsx sheet rename failed")
	}
	row, err := writeHeader(f, applicantSheet, 0, applicantHeaders, 28)
	if err != nil {
		return nil, errors.Wrap(err, "xlsx header writing failed")
	}
	if len(list) != 0 {
		if _, err = writeApplicantData(f, applicantSheet, list, row); err != nil {
			return nil, errors.Wrap(err, "xlsx applicant rows writing failed")
		}
	}

	if _, err = f.NewSheet(pipelineSheet); err != nil {
		return nil, errors.Wrap(err, "xlsx sheet creation failed")
	}
	if err = writePipeline(f, pipelineSheet, job, list); err != nil {
		return nil, errors.Wrap(err, "xlsx pipeline writing failed")
	}
	return f.WriteToBuffer()
}

func writeApplicantData(f *excelize.File, sheet string, list []applicantapimodels.ApplicantView, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(applicantHeaders), row+len(list)); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		contacts := strings.TrimSpace(fmt.Sprintf("%v\n%v", item.Phone, item.Email))
		var applied interface{}
		if !item.AppliedDate.IsZero() {
			applied = item.AppliedDate.Format(dateLayout)
		}
		err := writeRow(f, sheet, row,
			item.CandidateName,
			contacts,
			string(item.Type),
			item.Status,
			applied,
			item.RejectReason,
		)
		if err != nil {
			return row, err
		}
	}
	return row, nil
}

func writePipeline(f *excelize.File, sheet string, job jobapimodels.JobView, list []applicantapimodels.ApplicantView) error {
	if err := writeRow(f, sheet, 1, "Job", job.Title); err != nil {
		return err
	}
	if err := writeRow(f, sheet, 2, "Status", string(job.JobStatus)); err != nil {
		return err
	}
	row, err := writeHeader(f, sheet, 3, pipelineHeaders, 22)
	if err != nil {
		return err
	}
	byStage := make([]int, len(job.ApplicationStages))
	terminal := map[string]int{}
	for _, item := range list {
		if item.State.CurrentIndex >= 0 && item.State.CurrentIndex < len(byStage) {
			byStage[item.State.CurrentIndex]++
			continue
		}
		if models.IsTerminalStatus(item.Status) {
			terminal[item.Status]++
		}
	}
	for k, stage := range job.ApplicationStages {
		row++
		if err = writeRow(f, sheet, row, stage.Order, stage.Name, byStage[k]); err != nil {
			return err
		}
	}
	for _, status := range []string{models.ApplicantStatusHired, models.ApplicantStatusRejected, models.ApplicantStatusArchived} {
		row++
		if err = writeRow(f, sheet, row, "", status, terminal[status]); err != nil {
			return err
		}
	}
	return nil
}
