package transition

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"ats-backend/lib/pipeline/stagelist"
	"ats-backend/models"
)

type call struct {
	method string
	id     string
	status string
	sc     StatusContext
}

type fakeService struct {
	calls []call
	err   error
}

func (f *fakeService) UpdateApplicationStatus(_ context.Context, applicationID, status string, sc StatusContext) (Application, error) {
	f.calls = append(f.calls, call{method: "application", id: applicationID, status: status, sc: sc})
	if f.err != nil {
		return Application{}, f.err
	}
	return Application{ApplicationID: applicationID, Common: Common{Status: status, StageID: sc.StageID}}, nil
}

func (f *fakeService) UpdateAssignmentStatus(_ context.Context, jobID, candidateID, status string, sc StatusContext) (Assignment, error) {
	f.calls = append(f.calls, call{method: "assignment", id: jobID + "/" + candidateID, status: status, sc: sc})
	if f.err != nil {
		return Assignment{}, f.err
	}
	return Assignment{JobID: jobID, Common: Common{CandidateID: candidateID, Status: status, StageID: sc.StageID}}, nil
}

func (f *fakeService) RejectApplication(_ context.Context, applicationID, reason string, sc StatusContext) (Application, error) {
	f.calls = append(f.calls, call{method: "reject", id: applicationID, status: reason, sc: sc})
	if f.err != nil {
		return Application{}, f.err
	}
	return Application{ApplicationID: applicationID, Common: Common{Status: models.ApplicantStatusRejected}}, nil
}

func abcd() stagelist.List {
	list := stagelist.List{}
	for k, name := range []string{"A", "B", "C", "D"} {
		list = append(list, stagelist.Stage{ID: "id-" + name, Name: name, Order: k + 1, Duration: 1})
	}
	return list
}

func application(status string) Application {
	return Application{ApplicationID: "app-1", Common: Common{Status: status}}
}

func TestEngineAdvance(t *testing.T) {
	ctx := context.TODO()

	t.Run(`advance monotonicity`, func(t *testing.T) {
		service := &fakeService{}
		engine := NewEngine(service)
		rec, err := engine.Advance(ctx, application("B"), abcd(), "user-1")
		require.Nil(t, err)
		require.Equal(t, "C", rec.Base().Status)
		require.Equal(t, "id-C", rec.Base().StageID)
		require.Len(t, service.calls, 1)
		require.Equal(t, "application", service.calls[0].method)
		require.Equal(t, "B", service.calls[0].sc.PrevStatus)
		require.Equal(t, "user-1", service.calls[0].sc.UserID)

		last := application("D")
		rec, err = engine.Advance(ctx, last, abcd(), "")
		require.True(t, errors.Is(err, ErrCannotAdvance))
		require.True(t, IsRefusal(err))
		require.Equal(t, "D", rec.Base().Status)
		require.Len(t, service.calls, 1)
	})

	t.Run(`unknown status guard`, func(t *testing.T) {
		service := &fakeService{}
		engine := NewEngine(service)
		rec, err := engine.Advance(ctx, application("SomeRemovedStage"), abcd(), "")
		require.True(t, errors.Is(err, ErrCannotAdvance))
		require.Equal(t, "Cannot Advance", errors.Cause(err).Error())
		require.Equal(t, "SomeRemovedStage", rec.Base().Status)
		require.Empty(t, service.calls)
	})

	t.Run(`terminal statuses are absorbing`, func(t *testing.T) {
		service := &fakeService{}
		engine := NewEngine(service)
		for _, status := range []string{models.ApplicantStatusRejected, models.ApplicantStatusHired, models.ApplicantStatusArchived} {
			_, err := engine.Advance(ctx, application(status), abcd(), "")
			require.True(t, errors.Is(err, ErrCannotAdvance), status)
		}
		require.Empty(t, service.calls)
	})

	t.Run(`stage id survives rename`, func(t *testing.T) {
		service := &fakeService{}
		engine := NewEngine(service)
		stages, err := abcd().EditField(1, stagelist.FieldName, "Phone screen")
		require.Nil(t, err)
		rec := application("B")
		rec.StageID = "id-B"
		updated, err := engine.Advance(ctx, rec, stages, "")
		require.Nil(t, err)
		require.Equal(t, "C", updated.Base().Status)
	})

	t.Run(`assignment path`, func(t *testing.T) {
		service := &fakeService{}
		engine := NewEngine(service)
		rec := Assignment{JobID: "job-1", Common: Common{CandidateID: "cand-1", Status: "A"}}
		updated, err := engine.Advance(ctx, rec, abcd(), "")
		require.Nil(t, err)
		require.Equal(t, models.ApplicantTypeAssignment, updated.Type())
		require.Equal(t, "B", updated.Base().Status)
		require.Equal(t, "assignment", service.calls[0].method)
		require.Equal(t, "job-1/cand-1", service.calls[0].id)
	})

	t.Run(`empty pipeline uses default stages`, func(t *testing.T) {
		service := &fakeService{}
		engine := NewEngine(service)
		updated, err := engine.Advance(ctx, application(stagelist.AppliedStage), nil, "")
		require.Nil(t, err)
		require.Equal(t, stagelist.ScreeningStage, updated.Base().Status)
	})

	t.Run(`service failure keeps record`, func(t *testing.T) {
		service := &fakeService{err: errors.New("connection refused")}
		engine := NewEngine(service)
		rec, err := engine.Advance(ctx, application("A"), abcd(), "")
		require.NotNil(t, err)
		require.False(t, IsRefusal(err))
		require.Equal(t, "A", rec.Base().Status)
	})
}

func TestEngineReject(t *testing.T) {
	ctx := context.TODO()

	t.Run(`reason gated`, func(t *testing.T) {
		service := &fakeService{}
		engine := NewEngine(service)
		for _, reason := range []string{"", "   ", "\t\n"} {
			rec, err := engine.Reject(ctx, application("B"), reason, "")
			require.True(t, errors.Is(err, ErrReasonRequired))
			require.Equal(t, "B", rec.Base().Status)
		}
		require.Empty(t, service.calls)
	})

	t.Run(`application reject path`, func(t *testing.T) {
		service := &fakeService{}
		engine := NewEngine(service)
		rec, err := engine.Reject(ctx, application("A"), " no experience ", "user-1")
		require.Nil(t, err)
		require.Equal(t, models.ApplicantStatusRejected, rec.Base().Status)
		require.Equal(t, "reject", service.calls[0].method)
		require.Equal(t, "no experience", service.calls[0].status)
	})

	t.Run(`assignment reject path`, func(t *testing.T) {
		service := &fakeService{}
		engine := NewEngine(service)
		rec := Assignment{JobID: "job-1", Common: Common{CandidateID: "cand-1", Status: "C"}}
		updated, err := engine.Reject(ctx, rec, "salary", "")
		require.Nil(t, err)
		require.Equal(t, models.ApplicantStatusRejected, updated.Base().Status)
		require.Equal(t, "assignment", service.calls[0].method)
		require.Equal(t, models.ApplicantStatusRejected, service.calls[0].status)
		require.Equal(t, "salary", service.calls[0].sc.Reason)
	})

	t.Run(`terminal statuses`, func(t *testing.T) {
		service := &fakeService{}
		engine := NewEngine(service)
		rec, err := engine.Reject(ctx, application(models.ApplicantStatusRejected), "again", "")
		require.Nil(t, err)
		require.Equal(t, models.ApplicantStatusRejected, rec.Base().Status)

		_, err = engine.Reject(ctx, application(models.ApplicantStatusHired), "late", "")
		require.True(t, errors.Is(err, ErrTerminalStatus))
		require.Empty(t, service.calls)
	})
}

func TestEngineClose(t *testing.T) {
	ctx := context.TODO()

	t.Run(`hire from any stage`, func(t *testing.T) {
		service := &fakeService{}
		engine := NewEngine(service)
		rec, err := engine.Close(ctx, application("B"), models.ApplicantStatusHired, "user-1")
		require.Nil(t, err)
		require.Equal(t, models.ApplicantStatusHired, rec.Base().Status)
		require.Equal(t, "B", service.calls[0].sc.PrevStatus)
		require.Empty(t, service.calls[0].sc.StageID)
	})

	t.Run(`refusals`, func(t *testing.T) {
		service := &fakeService{}
		engine := NewEngine(service)
		_, err := engine.Close(ctx, application("B"), "C", "")
		require.True(t, errors.Is(err, ErrUnknownStatus))
		_, err = engine.Close(ctx, application(models.ApplicantStatusRejected), models.ApplicantStatusArchived, "")
		require.True(t, errors.Is(err, ErrTerminalStatus))
		require.True(t, IsRefusal(err))
		require.Empty(t, service.calls)
	})
}

func TestDescribe(t *testing.T) {
	state := Describe(application("B"), abcd())
	require.Equal(t, 1, state.CurrentIndex)
	require.Equal(t, "B", state.CurrentStage.Name)
	require.Equal(t, "C", state.NextStage.Name)
	require.True(t, state.CanAdvance)
	require.True(t, state.CanReject)
	require.False(t, state.IsTerminal)

	state = Describe(application("D"), abcd())
	require.False(t, state.CanAdvance)
	require.Nil(t, state.NextStage)
	require.True(t, state.CanReject)

	state = Describe(application(models.ApplicantStatusHired), abcd())
	require.Equal(t, -1, state.CurrentIndex)
	require.True(t, state.IsTerminal)
	require.False(t, state.CanAdvance)
	require.False(t, state.CanReject)
}
