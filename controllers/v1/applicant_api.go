package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"ats-backend/controllers"
	"ats-backend/lib/applicant"
	applicanthistoryhandler "ats-backend/lib/applicant-history"
	atshandler "ats-backend/lib/ats"
	"ats-backend/lib/utils/lock"
	"ats-backend/middleware"
	"ats-backend/models"
	apimodels "ats-backend/models/api"
	applicantapimodels "ats-backend/models/api/applicant"
)

type applicantApiController struct {
	controllers.BaseAPIController
}

func InitApplicantApiRouters(app *fiber.App) {
	controller := applicantApiController{}
	app.Route("applicant", func(router fiber.Router) {
		router.Post("application", controller.createApplication)
		router.Post("assignment", controller.createAssignment)
		router.Route(":type/:id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("advance", controller.advance)
			idRoute.Put("reject", controller.reject)
			idRoute.Put("close", controller.close)
			idRoute.Post("note", controller.note)
			idRoute.Post("history", controller.history)
			idRoute.Put("ats_analysis", controller.atsAnalysis)
		})
	})
}

// @Summary Apply
// @Tags Applicant
// @Description Candidate-initiated application. The applicant starts at the first stage of the job
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 applicantapimodels.ApplicationData	true	"request body"
// @Success 200 {object} apimodels.Response{data=applicantapimodels.ApplicantView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/applicant/application [post]
func (c *applicantApiController) createApplication(ctx *fiber.Ctx) error {
	var payload applicantapimodels.ApplicationData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	id, hMsg, err := applicant.Instance.CreateApplication(spaceID, getAuthor(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "application creation failed")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return c.sendApplicant(ctx, models.ApplicantTypeApplication, id)
}

// @Summary Assign
// @Tags Applicant
// @Description Recruiter-initiated assignment of an existing candidate to a job
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 applicantapimodels.AssignmentData	true	"request body"
// @Success 200 {object} apimodels.Response{data=applicantapimodels.ApplicantView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/applicant/assignment [post]
func (c *applicantApiController) createAssignment(ctx *fiber.Ctx) error {
	var payload applicantapimodels.AssignmentData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	id, hMsg, err := applicant.Instance.CreateAssignment(spaceID, getAuthor(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "assignment creation failed")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return c.sendApplicant(ctx, models.ApplicantTypeAssignment, id)
}

// @Summary Get by ID
// @Tags Applicant
// @Description Applicant with its pipeline state
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   type          		path    string  				    	true         "application or assignment"
// @Param   id          		path    string  				    	true         "applicant ID"
// @Success 200 {object} apimodels.Response{data=applicantapimodels.ApplicantView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/applicant/{type}/{id} [get]
func (c *applicantApiController) get(ctx *fiber.Ctx) error {
	applicantType, id, err := c.getApplicant(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	return c.sendApplicant(ctx, applicantType, id)
}

// @Summary Advance
// @Tags Applicant
// @Description Moves the applicant to the next stage of the job pipeline
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   type          		path    string  				    	true         "application or assignment"
// @Param   id          		path    string  				    	true         "applicant ID"
// @Success 200 {object} apimodels.Response{data=applicantapimodels.ApplicantView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/applicant/{type}/{id}/advance [put]
func (c *applicantApiController) advance(ctx *fiber.Ctx) error {
	applicantType, id, err := c.getApplicant(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	view, hMsg, err := applicant.Instance.Advance(ctx.UserContext(), spaceID, getAuthor(ctx), applicantType, id)
	return c.sendTransition(ctx, view, hMsg, err)
}

// @Summary Reject
// @Tags Applicant
// @Description Rejects the applicant. A reason is required and the candidate is notified by email
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   type          		path    string  				    	true         "application or assignment"
// @Param   id          		path    string  				    	true         "applicant ID"
// @Param	body body	 applicantapimodels.RejectRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=applicantapimodels.ApplicantView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/applicant/{type}/{id}/reject [put]
func (c *applicantApiController) reject(ctx *fiber.Ctx) error {
	applicantType, id, err := c.getApplicant(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload applicantapimodels.RejectRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	view, hMsg, err := applicant.Instance.Reject(ctx.UserContext(), spaceID, getAuthor(ctx), applicantType, id, payload)
	return c.sendTransition(ctx, view, hMsg, err)
}

// @Summary Close
// @Tags Applicant
// @Description Moves the applicant to Hired or Archived
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   type          		path    string  				    	true         "application or assignment"
// @Param   id          		path    string  				    	true         "applicant ID"
// @Param	body body	 applicantapimodels.CloseRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=applicantapimodels.ApplicantView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/applicant/{type}/{id}/close [put]
func (c *applicantApiController) close(ctx *fiber.Ctx) error {
	applicantType, id, err := c.getApplicant(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload applicantapimodels.CloseRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	view, hMsg, err := applicant.Instance.Close(ctx.UserContext(), spaceID, getAuthor(ctx), applicantType, id, payload)
	return c.sendTransition(ctx, view, hMsg, err)
}

// @Summary Add note
// @Tags Applicant
// @Description Adds a note to the applicant history
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   type          		path    string  				    	true         "application or assignment"
// @Param   id          		path    string  				    	true         "applicant ID"
// @Param	body body	 applicantapimodels.ApplicantNote	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/applicant/{type}/{id}/note [post]
func (c *applicantApiController) note(ctx *fiber.Ctx) error {
	applicantType, id, err := c.getApplicant(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload applicantapimodels.ApplicantNote
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	hMsg, err := applicant.Instance.AddNote(spaceID, getAuthor(ctx), applicantType, id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "note saving failed")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary History
// @Tags Applicant
// @Description Status changes, notes and analyses of the applicant, newest first
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   type          		path    string  				    	true         "application or assignment"
// @Param   id          		path    string  				    	true         "applicant ID"
// @Param	body body	 applicantapimodels.ApplicantHistoryFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]applicantapimodels.ApplicantHistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/applicant/{type}/{id}/history [post]
func (c *applicantApiController) history(ctx *fiber.Ctx) error {
	_, id, err := c.getApplicant(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload applicantapimodels.ApplicantHistoryFilter
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	list, rowCount, err := applicanthistoryhandler.Instance.List(spaceID, id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "applicant history loading failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Resume analysis
// @Tags Applicant
// @Description Scores the candidate resume against the job with YandexGPT. Applications only
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   type          		path    string  				    	true         "application"
// @Param   id          		path    string  				    	true         "application ID"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/applicant/{type}/{id}/ats_analysis [put]
func (c *applicantApiController) atsAnalysis(ctx *fiber.Ctx) error {
	applicantType, id, err := c.getApplicant(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if applicantType != models.ApplicantTypeApplication {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("resume analysis is available for applications only"))
	}
	spaceID := middleware.GetUserSpace(ctx)
	analysis, hMsg, err := atshandler.Instance.Analyze(ctx.UserContext(), spaceID, getAuthor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "resume analysis failed")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(analysis))
}

func (c *applicantApiController) getApplicant(ctx *fiber.Ctx) (models.ApplicantType, string, error) {
	applicantType := models.ApplicantType(ctx.Params("type"))
	if !applicantType.IsValid() {
		return "", "", errors.Errorf("unknown applicant type %q", applicantType)
	}
	id, err := c.GetID(ctx)
	if err != nil {
		return "", "", err
	}
	return applicantType, id, nil
}

// sendApplicant answers with the stored state of the applicant.
func (c *applicantApiController) sendApplicant(ctx *fiber.Ctx, applicantType models.ApplicantType, id string) error {
	spaceID := middleware.GetUserSpace(ctx)
	view, hMsg, err := applicant.Instance.Get(spaceID, applicantType, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "applicant loading failed")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

func (c *applicantApiController) sendTransition(ctx *fiber.Ctx, view applicantapimodels.ApplicantView, hMsg string, err error) error {
	if errors.Is(err, lock.ErrInProgress) {
		return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError("another change of this applicant is in progress"))
	}
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "applicant status change failed")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

func getAuthor(ctx *fiber.Ctx) applicanthistoryhandler.Author {
	return applicanthistoryhandler.Author{
		ID:   middleware.GetUserID(ctx),
		Name: middleware.GetUserName(ctx),
	}
}
