package messagetemplate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRejectMessage(t *testing.T) {
	title, msg, err := BuildRejectMessage(ApplicantTemplateData{
		CandidateName: "Jane Doe",
		JobTitle:      "Backend engineer",
		CompanyName:   "Acme",
	})
	require.NoError(t, err)
	assert.Equal(t, "Your application for Backend engineer", title)
	assert.Contains(t, msg, "Dear Jane Doe,\r\n")
	assert.Contains(t, msg, "Backend engineer position at Acme.")
	assert.NotContains(t, msg, "\r\r")
}

func TestBuildHiredMessage(t *testing.T) {
	title, msg, err := BuildHiredMessage(ApplicantTemplateData{JobTitle: "QA"})
	require.NoError(t, err)
	assert.Equal(t, "Welcome aboard: QA", title)
	assert.Contains(t, msg, "Dear candidate,")
	assert.Contains(t, msg, "QA position. The recruiter")
}
