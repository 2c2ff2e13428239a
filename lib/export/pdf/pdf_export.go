package pdfexport

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	"ats-backend/models"
	dashboardapimodels "ats-backend/models/api/dashboard"
)

const (
	barMaxWidth = 100.0
	rowHeight   = 8.0
)

// PipelineSummary renders the stage funnel of one job as a single page report.
func PipelineSummary(view dashboardapimodels.JobPipelineView) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("pipeline summary panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(view.Title), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(view.Title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, tr(fmt.Sprintf("Status: %v    Applicants: %v", view.JobStatus, view.Total)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	var maxCount int64
	for _, stage := range view.Stages {
		if stage.Count > maxCount {
			maxCount = stage.Count
		}
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(10, rowHeight, "#", "B", 0, "L", false, 0, "")
	pdf.CellFormat(55, rowHeight, "Stage", "B", 0, "L", false, 0, "")
	pdf.CellFormat(20, rowHeight, "Count", "B", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetFillColor(68, 114, 196)
	for _, stage := range view.Stages {
		y := pdf.GetY()
		pdf.CellFormat(10, rowHeight, fmt.Sprint(stage.Order), "", 0, "L", false, 0, "")
		pdf.CellFormat(55, rowHeight, tr(stage.Name), "", 0, "L", false, 0, "")
		pdf.CellFormat(20, rowHeight, fmt.Sprint(stage.Count), "", 0, "R", false, 0, "")
		if maxCount > 0 && stage.Count > 0 {
			width := barMaxWidth * float64(stage.Count) / float64(maxCount)
			pdf.Rect(pdf.GetX()+5, y+1.5, width, rowHeight-3, "F")
		}
		pdf.Ln(rowHeight)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, rowHeight, "Closed", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	closed := []struct {
		name  string
		count int64
	}{
		{models.ApplicantStatusHired, view.Hired},
		{models.ApplicantStatusRejected, view.Rejected},
		{models.ApplicantStatusArchived, view.Archived},
	}
	for _, item := range closed {
		pdf.CellFormat(65, rowHeight, item.name, "", 0, "L", false, 0, "")
		pdf.CellFormat(20, rowHeight, fmt.Sprint(item.count), "", 1, "R", false, 0, "")
	}
	if view.Unmatched > 0 {
		pdf.CellFormat(65, rowHeight, "Outside the pipeline", "", 0, "L", false, 0, "")
		pdf.CellFormat(20, rowHeight, fmt.Sprint(view.Unmatched), "", 1, "R", false, 0, "")
	}

	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
