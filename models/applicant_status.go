package models

// Terminal applicant statuses. Any other status is the name of a pipeline stage.
const (
	ApplicantStatusRejected = "Rejected"
	ApplicantStatusHired    = "Hired"
	ApplicantStatusArchived = "Archived"
)

func IsTerminalStatus(status string) bool {
	switch status {
	case ApplicantStatusRejected, ApplicantStatusHired, ApplicantStatusArchived:
		return true
	}
	return false
}

type ApplicantType string

const (
	ApplicantTypeApplication ApplicantType = "application" // candidate-initiated submission
	ApplicantTypeAssignment  ApplicantType = "assignment"  // recruiter-initiated match
)

func (t ApplicantType) IsValid() bool {
	return t == ApplicantTypeApplication || t == ApplicantTypeAssignment
}
