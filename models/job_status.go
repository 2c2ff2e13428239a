package models

import "github.com/pkg/errors"

type JobStatus string

const (
	JobStatusDraft       JobStatus = "draft"
	JobStatusNew         JobStatus = "new"
	JobStatusActive      JobStatus = "active"
	JobStatusClosingSoon JobStatus = "closing-soon"
	JobStatusClosed      JobStatus = "closed"
)

func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusDraft, JobStatusNew, JobStatusActive, JobStatusClosingSoon, JobStatusClosed:
		return true
	}
	return false
}

// IsPosted is true for every status except draft.
func (s JobStatus) IsPosted() bool {
	return s != JobStatusDraft
}

func ParseJobStatus(value string) (JobStatus, error) {
	status := JobStatus(value)
	if !status.IsValid() {
		return "", errors.Errorf("unknown job status %q", value)
	}
	return status, nil
}
