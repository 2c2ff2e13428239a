package apiv1

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"ats-backend/controllers"
	"ats-backend/lib/analytics"
	"ats-backend/middleware"
	apimodels "ats-backend/models/api"
)

type analyticsApiController struct {
	controllers.BaseAPIController
}

func InitAnalyticsApiRouters(app *fiber.App) {
	controller := analyticsApiController{}
	app.Route("analytics", func(router fiber.Router) {
		router.Get("dashboard", controller.dashboard)
		router.Route("job/:id", func(jobRoute fiber.Router) {
			jobRoute.Get("pipeline", controller.pipeline)
			jobRoute.Get("export_xls", controller.exportXls)
			jobRoute.Get("export_pdf", controller.exportPdf)
		})
	})
}

// @Summary Dashboard
// @Tags Analytics
// @Description Job and applicant totals of the space with the pipeline of every job
// @Param   Authorization		header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=dashboardapimodels.DashboardView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/analytics/dashboard [get]
func (c *analyticsApiController) dashboard(ctx *fiber.Ctx) error {
	spaceID := middleware.GetUserSpace(ctx)
	data, err := analytics.Instance.Dashboard(spaceID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "dashboard loading failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(data))
}

// @Summary Job pipeline
// @Tags Analytics
// @Description Applicant count per stage of the job
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "job ID"
// @Success 200 {object} apimodels.Response{data=dashboardapimodels.JobPipelineView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/analytics/job/{id}/pipeline [get]
func (c *analyticsApiController) pipeline(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	data, hMsg, err := analytics.Instance.JobPipeline(spaceID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "job pipeline loading failed")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(data))
}

// @Summary Applicants. Export to Excel
// @Tags Analytics
// @Description Applicants of the job and the per-stage summary
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "job ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/analytics/job/{id}/export_xls [get]
func (c *analyticsApiController) exportXls(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	data, hMsg, err := analytics.Instance.ApplicantsExportToXls(spaceID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "applicant export failed")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	fileName := fmt.Sprintf("applicants-%v.xlsx", time.Now().Format("20060102-150405"))
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(data)
}

// @Summary Pipeline. Export to PDF
// @Tags Analytics
// @Description One page pipeline report of the job
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "job ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/analytics/job/{id}/export_pdf [get]
func (c *analyticsApiController) exportPdf(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	body, hMsg, err := analytics.Instance.PipelineExportToPdf(spaceID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "pipeline export failed")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	fileName := fmt.Sprintf("pipeline-%v.pdf", time.Now().Format("20060102-150405"))
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.Send(body)
}
