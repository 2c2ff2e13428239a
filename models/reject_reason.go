package models

import "github.com/pkg/errors"

type RejectInitiator string

const (
	RecruiterReject     RejectInitiator = "recruiter_reject"      // refused by the recruiter
	HiringManagerReject RejectInitiator = "hiring_manager_reject" // refused by the hiring manager
	CandidateReject     RejectInitiator = "candidate_reject"      // candidate withdrew
)

func (r RejectInitiator) IsValid() error {
	switch r {
	case RecruiterReject, HiringManagerReject, CandidateReject:
		return nil
	}
	return errors.Errorf("unknown reject initiator %q", r)
}
