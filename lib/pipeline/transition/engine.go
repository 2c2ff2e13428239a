// Package transition moves applicants through a job pipeline.
//
// States are the stage names of the job's pipeline plus the terminal statuses
// Rejected, Hired and Archived. Advance moves to the next stage, Reject moves to
// Rejected from any non-terminal state. Terminal statuses are absorbing.
package transition

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"ats-backend/lib/pipeline/stagelist"
	"ats-backend/models"
)

var (
	ErrCannotAdvance  = errors.New("Cannot Advance")
	ErrReasonRequired = errors.New("reject reason is required")
	ErrTerminalStatus = errors.New("applicant is in a terminal status")
	ErrUnknownStatus  = errors.New("status is not a closing status")
)

type Engine struct {
	service StatusService
}

func NewEngine(service StatusService) *Engine {
	return &Engine{service: service}
}

// State describes what the client may do with a record.
type State struct {
	CurrentIndex int              `json:"current_index"` // -1 when the status matches no stage
	CurrentStage *stagelist.Stage `json:"current_stage,omitempty"`
	NextStage    *stagelist.Stage `json:"next_stage,omitempty"`
	IsTerminal   bool             `json:"is_terminal"`
	CanAdvance   bool             `json:"can_advance"`
	CanReject    bool             `json:"can_reject"`
}

func pipeline(stages stagelist.List) stagelist.List {
	if len(stages) == 0 {
		return stagelist.Default()
	}
	return stages
}

// CurrentIndex resolves the record's stage by stored stage id, then by exact name.
func CurrentIndex(rec Record, stages stagelist.List) int {
	base := rec.Base()
	if models.IsTerminalStatus(base.Status) {
		return -1
	}
	stages = pipeline(stages)
	if k := stages.IndexOfID(base.StageID); k >= 0 {
		return k
	}
	return stages.IndexOf(base.Status)
}

// NextStage returns the stage an advance would move the record to.
func NextStage(rec Record, stages stagelist.List) (stagelist.Stage, error) {
	stages = pipeline(stages)
	status := rec.Base().Status
	current := CurrentIndex(rec, stages)
	if current < 0 {
		return stagelist.Stage{}, errors.Wrapf(ErrCannotAdvance, "status %q is not a stage of this job", status)
	}
	if current >= len(stages)-1 {
		return stagelist.Stage{}, errors.Wrapf(ErrCannotAdvance, "%q is the last stage", stages[current].Name)
	}
	return stages[current+1], nil
}

func Describe(rec Record, stages stagelist.List) State {
	stages = pipeline(stages)
	status := rec.Base().Status
	state := State{
		CurrentIndex: CurrentIndex(rec, stages),
		IsTerminal:   models.IsTerminalStatus(status),
	}
	if state.CurrentIndex >= 0 {
		current := stages[state.CurrentIndex]
		state.CurrentStage = &current
	}
	if next, err := NextStage(rec, stages); err == nil {
		state.NextStage = &next
		state.CanAdvance = true
	}
	state.CanReject = !state.IsTerminal
	return state
}

// Advance moves the record to the next stage. Refusals are returned before any call
// to the service is made.
func (e *Engine) Advance(ctx context.Context, rec Record, stages stagelist.List, userID string) (Record, error) {
	next, err := NextStage(rec, stages)
	if err != nil {
		return rec, err
	}
	sc := StatusContext{
		PrevStatus: rec.Base().Status,
		StageID:    next.ID,
		UserID:     userID,
	}
	updated, err := rec.updateStatus(ctx, e.service, next.Name, sc)
	if err != nil {
		return rec, errors.Wrapf(err, "applicant status update to %q failed", next.Name)
	}
	return updated, nil
}

// Reject moves the record to Rejected. An empty reason is refused without a service call.
func (e *Engine) Reject(ctx context.Context, rec Record, reason string, userID string) (Record, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return rec, ErrReasonRequired
	}
	status := rec.Base().Status
	if status == models.ApplicantStatusRejected {
		return rec, nil
	}
	if models.IsTerminalStatus(status) {
		return rec, errors.Wrapf(ErrTerminalStatus, "status %q", status)
	}
	sc := StatusContext{
		PrevStatus: status,
		Reason:     reason,
		UserID:     userID,
	}
	updated, err := rec.reject(ctx, e.service, reason, sc)
	if err != nil {
		return rec, errors.Wrap(err, "applicant reject failed")
	}
	return updated, nil
}

// Close moves a non-terminal record to Hired or Archived.
func (e *Engine) Close(ctx context.Context, rec Record, status string, userID string) (Record, error) {
	if status != models.ApplicantStatusHired && status != models.ApplicantStatusArchived {
		return rec, errors.Wrapf(ErrUnknownStatus, "status %q", status)
	}
	current := rec.Base().Status
	if models.IsTerminalStatus(current) {
		return rec, errors.Wrapf(ErrTerminalStatus, "status %q", current)
	}
	sc := StatusContext{
		PrevStatus: current,
		UserID:     userID,
	}
	updated, err := rec.updateStatus(ctx, e.service, status, sc)
	if err != nil {
		return rec, errors.Wrapf(err, "applicant status update to %q failed", status)
	}
	return updated, nil
}

// IsRefusal reports whether err is a transition refused by the pipeline rules rather
// than a service failure.
func IsRefusal(err error) bool {
	return errors.Is(err, ErrCannotAdvance) || errors.Is(err, ErrReasonRequired) || errors.Is(err, ErrTerminalStatus) ||
		errors.Is(err, ErrUnknownStatus)
}
