package messagetemplate

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/pkg/errors"
)

const (
	rejectTitle = "Your application for {{.JobTitle}}"
	rejectBody  = `Dear {{.CandidateName}},

Thank you for your interest in the {{.JobTitle}} position{{if .CompanyName}} at {{.CompanyName}}{{end}}. After careful consideration we decided not to move forward with your application.

Best regards`

	hiredTitle = "Welcome aboard: {{.JobTitle}}"
	hiredBody  = `Dear {{.CandidateName}},

Congratulations! We are glad to confirm your hire for the {{.JobTitle}} position{{if .CompanyName}} at {{.CompanyName}}{{end}}. The recruiter will contact you with the next steps.

Best regards`
)

// ApplicantTemplateData is the data available to applicant email templates.
type ApplicantTemplateData struct {
	CandidateName string
	JobTitle      string
	CompanyName   string
}

func BuildRejectMessage(data ApplicantTemplateData) (title, msg string, err error) {
	return build(rejectTitle, rejectBody, data)
}

func BuildHiredMessage(data ApplicantTemplateData) (title, msg string, err error) {
	return build(hiredTitle, hiredBody, data)
}

func build(titleTpl, bodyTpl string, data ApplicantTemplateData) (title, msg string, err error) {
	if strings.TrimSpace(data.CandidateName) == "" {
		data.CandidateName = "candidate"
	}
	title, err = execute(titleTpl, data)
	if err != nil {
		return "", "", err
	}
	msg, err = execute(bodyTpl, data)
	if err != nil {
		return "", "", err
	}
	// smtp bodies use CRLF line endings
	return title, strings.ReplaceAll(msg, "\n", "\r\n"), nil
}

func execute(body string, data ApplicantTemplateData) (string, error) {
	tpl, err := template.New("msg_body").Parse(body)
	if err != nil {
		return "", errors.Wrap(err, "message template parsing failed")
	}
	buf := new(bytes.Buffer)
	if err = tpl.Execute(buf, data); err != nil {
		return "", errors.Wrap(err, "message template execution failed")
	}
	return buf.String(), nil
}
