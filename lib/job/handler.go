package jobhandler

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"ats-backend/db"
	applicationstore "ats-backend/lib/applicant/application-store"
	assignmentstore "ats-backend/lib/applicant/assignment-store"
	jobstatus "ats-backend/lib/job-status"
	jobstore "ats-backend/lib/job/store"
	"ats-backend/lib/pipeline/stagelist"
	"ats-backend/lib/utils/helpers"
	wsnotify "ats-backend/lib/ws/notify"
	"ats-backend/models"
	jobapimodels "ats-backend/models/api/job"
	dbmodels "ats-backend/models/db"
)

type Provider interface {
	Create(spaceID, userID string, data jobapimodels.JobData) (id, hMsg string, err error)
	Update(spaceID, id string, data jobapimodels.JobData) (hMsg string, err error)
	GetByID(spaceID, id string) (item jobapimodels.JobView, hMsg string, err error)
	Delete(spaceID, id string) (hMsg string, err error)
	List(spaceID string, filter jobapimodels.JobFilter) (list []jobapimodels.JobView, rowCount int64, err error)
	GetStages(spaceID, id string) (stages stagelist.List, hMsg string, err error)
	AppendStage(spaceID, id string, data jobapimodels.StagesData) (view jobapimodels.StagesView, hMsg string, err error)
	RemoveStage(spaceID, id string, request jobapimodels.StageRemoveRequest) (view jobapimodels.StagesView, hMsg string, err error)
	MoveStage(spaceID, id string, request jobapimodels.StageMoveRequest) (view jobapimodels.StagesView, hMsg string, err error)
	EditStage(spaceID, id string, request jobapimodels.StageEditRequest) (view jobapimodels.StagesView, hMsg string, err error)
	SaveStages(spaceID, id string, data jobapimodels.StagesData) (view jobapimodels.StagesView, hMsg string, err error)
	RefreshStatuses(ctx context.Context) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:            jobstore.NewInstance(db.DB),
		applicationStore: applicationstore.NewInstance(db.DB),
		assignmentStore:  assignmentstore.NewInstance(db.DB),
		notifier:         wsnotify.NewNotifier(),
	}
}

type impl struct {
	store            jobstore.Provider
	applicationStore applicationstore.Provider
	assignmentStore  assignmentstore.Provider
	notifier         wsnotify.Notifier
}

func (i impl) getLogger(spaceID, jobID string) *log.Entry {
	logger := log.WithField("space_id", spaceID)
	if jobID != "" {
		logger = logger.WithField("job_id", jobID)
	}
	return logger
}

func (i impl) Create(spaceID, userID string, data jobapimodels.JobData) (id, hMsg string, err error) {
	logger := i.getLogger(spaceID, "")
	if err = data.Validate(); err != nil {
		return "", err.Error(), nil
	}
	stages, err := data.Stages()
	if err != nil {
		return "", err.Error(), nil
	}
	if stages == nil {
		stages = stagelist.Default()
	}
	if verr := stages.Validate(); len(verr) != 0 {
		return "", verr.Error(), nil
	}
	encoded, err := stagelist.Encode(stages)
	if err != nil {
		return "", "", err
	}
	rec := dbmodels.Job{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		ApplicationStages: encoded,
	}
	fillJob(&rec, data)
	rec.JobStatus = jobstatus.Instance.ComputeTime(rec.Deadline, nil)
	if rec.JobStatus != models.JobStatusDraft {
		// posting starts once the job leaves draft
		now := jobstatus.Instance.Now()
		rec.PostedDate = &now
		rec.JobStatus = jobstatus.Instance.ComputeTime(rec.Deadline, rec.PostedDate)
	}
	if err = rec.Validate(); err != nil {
		return "", err.Error(), nil
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", "", err
	}
	logger.
		WithField("job_id", id).
		WithField("user_id", userID).
		WithField("job_status", rec.JobStatus).
		Info("job created")
	return id, "", nil
}

func (i impl) Update(spaceID, id string, data jobapimodels.JobData) (hMsg string, err error) {
	logger := i.getLogger(spaceID, id)
	if err = data.Validate(); err != nil {
		return err.Error(), nil
	}
	stages, err := data.Stages()
	if err != nil {
		return err.Error(), nil
	}
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "job not found", nil
	}
	fillJob(rec, data)
	postedDate := rec.PostedDate
	status := jobstatus.Instance.ComputeTime(rec.Deadline, postedDate)
	if postedDate == nil && status != models.JobStatusDraft {
		now := jobstatus.Instance.Now()
		postedDate = &now
		status = jobstatus.Instance.ComputeTime(rec.Deadline, postedDate)
	}
	updMap := map[string]interface{}{
		"title":           rec.Title,
		"description":     rec.Description,
		"location":        rec.Location,
		"employment_type": rec.EmploymentType,
		"salary_from":     rec.SalaryFrom,
		"salary_to":       rec.SalaryTo,
		"company_id":      rec.CompanyID,
		"recruiter_id":    rec.RecruiterID,
		"deadline":        rec.Deadline,
		"posted_date":     postedDate,
		"job_status":      status,
	}
	if stages != nil {
		if verr := stages.Validate(); len(verr) != 0 {
			return verr.Error(), nil
		}
		current := rec.Stages()
		stages = stages.MatchIDs(current)
		hMsg, err = i.checkRemovedStages(spaceID, id, current, stages)
		if err != nil || hMsg != "" {
			return hMsg, err
		}
		encoded, err := stagelist.Encode(stages)
		if err != nil {
			return "", err
		}
		updMap["application_stages"] = encoded
	}
	if err = i.store.Update(spaceID, id, updMap); err != nil {
		return "", err
	}
	logger.WithField("job_status", status).Info("job updated")
	return "", nil
}

func (i impl) GetByID(spaceID, id string) (item jobapimodels.JobView, hMsg string, err error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return jobapimodels.JobView{}, "", err
	}
	if rec == nil {
		return jobapimodels.JobView{}, "job not found", nil
	}
	return i.convert(*rec), "", nil
}

func (i impl) Delete(spaceID, id string) (hMsg string, err error) {
	applications, err := i.applicationStore.ListByJob(spaceID, id)
	if err != nil {
		return "", err
	}
	assignments, err := i.assignmentStore.ListByJob(spaceID, id)
	if err != nil {
		return "", err
	}
	if len(applications)+len(assignments) != 0 {
		return "job has applicants and can not be deleted", nil
	}
	if err = i.store.Delete(spaceID, id); err != nil {
		return "", err
	}
	i.getLogger(spaceID, id).Info("job deleted")
	return "", nil
}

func (i impl) List(spaceID string, filter jobapimodels.JobFilter) (list []jobapimodels.JobView, rowCount int64, err error) {
	dbFilter := filter.DBFilter()
	rowCount, err = i.store.ListCount(spaceID, dbFilter)
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	if int64((page-1)*limit) > rowCount {
		return []jobapimodels.JobView{}, rowCount, nil
	}
	recList, err := i.store.List(spaceID, dbFilter, page, limit)
	if err != nil {
		return nil, 0, err
	}
	result := make([]jobapimodels.JobView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, i.convert(rec))
	}
	return result, rowCount, nil
}

func (i impl) GetStages(spaceID, id string) (stages stagelist.List, hMsg string, err error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return nil, "", err
	}
	if rec == nil {
		return nil, "job not found", nil
	}
	return rec.Stages(), "", nil
}

func (i impl) AppendStage(spaceID, id string, data jobapimodels.StagesData) (view jobapimodels.StagesView, hMsg string, err error) {
	stages, hMsg, err := i.editedStages(spaceID, id, data)
	if err != nil || hMsg != "" {
		return jobapimodels.StagesView{}, hMsg, err
	}
	return jobapimodels.NewStagesView(stages.Append()), "", nil
}

func (i impl) RemoveStage(spaceID, id string, request jobapimodels.StageRemoveRequest) (view jobapimodels.StagesView, hMsg string, err error) {
	stages, hMsg, err := i.editedStages(spaceID, id, request.StagesData)
	if err != nil || hMsg != "" {
		return jobapimodels.StagesView{}, hMsg, err
	}
	return jobapimodels.NewStagesView(stages.Remove(request.Index)), "", nil
}

func (i impl) MoveStage(spaceID, id string, request jobapimodels.StageMoveRequest) (view jobapimodels.StagesView, hMsg string, err error) {
	if err = request.Validate(); err != nil {
		return jobapimodels.StagesView{}, err.Error(), nil
	}
	stages, hMsg, err := i.editedStages(spaceID, id, request.StagesData)
	if err != nil || hMsg != "" {
		return jobapimodels.StagesView{}, hMsg, err
	}
	return jobapimodels.NewStagesView(stages.Move(request.Index, request.Direction)), "", nil
}

func (i impl) EditStage(spaceID, id string, request jobapimodels.StageEditRequest) (view jobapimodels.StagesView, hMsg string, err error) {
	stages, hMsg, err := i.editedStages(spaceID, id, request.StagesData)
	if err != nil || hMsg != "" {
		return jobapimodels.StagesView{}, hMsg, err
	}
	edited, err := stages.EditField(request.Index, request.Field, request.Value)
	if err != nil {
		return jobapimodels.StagesView{}, err.Error(), nil
	}
	return jobapimodels.NewStagesView(edited), "", nil
}

// SaveStages persists the pipeline. Invalid pipelines are returned with their errors and not stored.
func (i impl) SaveStages(spaceID, id string, data jobapimodels.StagesData) (view jobapimodels.StagesView, hMsg string, err error) {
	logger := i.getLogger(spaceID, id)
	stages, ok, err := data.Stages()
	if err != nil {
		return jobapimodels.StagesView{}, err.Error(), nil
	}
	if !ok {
		return jobapimodels.StagesView{}, "application stages are required", nil
	}
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return jobapimodels.StagesView{}, "", err
	}
	if rec == nil {
		return jobapimodels.StagesView{}, "job not found", nil
	}
	current := rec.Stages()
	stages = stages.MatchIDs(current)
	view = jobapimodels.NewStagesView(stages)
	if !view.Valid {
		return view, "", nil
	}
	hMsg, err = i.checkRemovedStages(spaceID, id, current, stages)
	if err != nil || hMsg != "" {
		return jobapimodels.StagesView{}, hMsg, err
	}
	encoded, err := stagelist.Encode(stages)
	if err != nil {
		return jobapimodels.StagesView{}, "", err
	}
	if err = i.store.UpdateStages(spaceID, id, encoded); err != nil {
		return jobapimodels.StagesView{}, "", err
	}
	logger.WithField("stages", stages.Names()).Info("job pipeline saved")
	if i.notifier != nil {
		i.notifier.JobStagesSaved(spaceID, id)
	}
	return view, "", nil
}

// RefreshStatuses recomputes the stored status of every job.
func (i impl) RefreshStatuses(ctx context.Context) error {
	list, err := i.store.ListAll("")
	if err != nil {
		return errors.Wrap(err, "job list loading failed")
	}
	changed := 0
	for _, rec := range list {
		if helpers.IsContextDone(ctx) {
			return ctx.Err()
		}
		status := jobstatus.Instance.ComputeTime(rec.Deadline, rec.PostedDate)
		if status == rec.JobStatus {
			continue
		}
		err = i.store.Update(rec.SpaceID, rec.ID, map[string]interface{}{"job_status": status})
		if err != nil {
			i.getLogger(rec.SpaceID, rec.ID).WithError(err).Error("job status update failed")
			continue
		}
		changed++
	}
	log.WithField("jobs", len(list)).WithField("changed", changed).Info("job statuses refreshed")
	return nil
}

func (i impl) editedStages(spaceID, id string, data jobapimodels.StagesData) (stagelist.List, string, error) {
	stages, ok, err := data.Stages()
	if err != nil {
		return nil, err.Error(), nil
	}
	if ok {
		return stages, "", nil
	}
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return nil, "", err
	}
	if rec == nil {
		return nil, "job not found", nil
	}
	return rec.Stages(), "", nil
}

// checkRemovedStages refuses a pipeline that drops a stage still holding applicants.
// updated is expected to have gone through MatchIDs so stages sent without ids match by name.
func (i impl) checkRemovedStages(spaceID, jobID string, current, updated stagelist.List) (hMsg string, err error) {
	for _, stage := range current {
		if updated.IndexOfID(stage.ID) >= 0 {
			continue
		}
		total, err := i.applicationStore.CountInStage(spaceID, jobID, stage.ID, stage.Name)
		if err != nil {
			return "", err
		}
		assigned, err := i.assignmentStore.CountInStage(spaceID, jobID, stage.ID, stage.Name)
		if err != nil {
			return "", err
		}
		if total+assigned != 0 {
			return fmt.Sprintf("stage %q still has %d applicants", stage.Name, total+assigned), nil
		}
	}
	return "", nil
}

func (i impl) convert(rec dbmodels.Job) jobapimodels.JobView {
	// status is derived on read so a stored value can not go stale
	rec.JobStatus = jobstatus.Instance.ComputeTime(rec.Deadline, rec.PostedDate)
	return jobapimodels.JobConvert(rec)
}

func fillJob(rec *dbmodels.Job, data jobapimodels.JobData) {
	rec.Title = data.Title
	rec.Description = data.Description
	rec.Location = data.Location
	rec.EmploymentType = data.EmploymentType
	rec.SalaryFrom = data.SalaryFrom
	rec.SalaryTo = data.SalaryTo
	rec.CompanyID = helpers.OptionalString(data.CompanyID)
	rec.RecruiterID = helpers.OptionalString(data.RecruiterID)
	rec.Deadline = jobstatus.ParseDate(data.Deadline)
}
