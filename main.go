package main

//go:generate swag init --parseDependency --parseInternal -g main.go

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"

	"ats-backend/config"
	apiv1 "ats-backend/controllers/v1"
	"ats-backend/controllers/v1/dict"
	"ats-backend/db"
	"ats-backend/docs"
	"ats-backend/fiberlog"
	"ats-backend/initializers"
	"ats-backend/lib/ws"
	"ats-backend/middleware"
	apimodels "ats-backend/models/api"
)

const swaggerFile = "./docs/swagger.json"

// @title ATS backend API
// @version 1.0
// @BasePath /
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	initializers.InitAllServices(ctx)

	app := fiber.New(fiber.Config{
		BodyLimit: (config.Conf.App.UploadLimitMB + 1) * 1024 * 1024,
	})
	app.Use(fiberRecover.New())

	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			Path:     "/swagger",
			FilePath: swaggerFile,
		}))
	} else {
		log.WithField("version", docs.SwaggerInfo.Version).Warn("swagger.json not found, api docs are disabled")
	}

	app.Get("/health", func(ctx *fiber.Ctx) error {
		if err := db.PingDB(); err != nil {
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(apimodels.NewError(err.Error()))
		}
		return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
	})

	//api
	apiV1 := fiber.New()
	apiV1.Use(fiberlog.New(*initializers.LoggerConfig))
	app.Mount("/api/v1", apiV1)
	apiV1.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, PUT",
	}))
	apiV1.Use(middleware.WithBodyLimit(int64(config.Conf.App.BodyLimitMB) * 1024 * 1024))
	if config.Conf.App.ErrNotifyURL != "" {
		apiV1.Use(middleware.ErrNotify(config.Conf.App.ErrNotifyURL))
	}

	//dict
	dicts := fiber.New()
	apiV1.Mount("/dict", dicts)
	dicts.Use(middleware.AuthorizationRequired())
	dicts.Use(middleware.SpaceRequired())
	dict.InitCompanyDictApiRouters(dicts)
	dict.InitRejectReasonDictApiRouters(dicts)

	//space
	space := fiber.New(fiber.Config{
		BodyLimit: (config.Conf.App.UploadLimitMB + 1) * 1024 * 1024,
	})
	apiV1.Mount("/space", space)
	space.Use(middleware.AuthorizationRequired())
	space.Use(middleware.SpaceRequired())
	apiv1.InitJobApiRouters(space)
	apiv1.InitApplicantApiRouters(space)
	apiv1.InitCandidateApiRouters(space)
	apiv1.InitDocumentApiRouters(space)
	apiv1.InitRecruiterApiRouters(space)
	apiv1.InitAnalyticsApiRouters(space)

	//pipeline events
	wsApp := fiber.New()
	app.Mount("/ws", wsApp)
	wsApp.Use(middleware.AuthorizationRequired())
	ws.InitWs(wsApp)

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	wg := sync.WaitGroup{}
	go func() {
		<-c
		wg.Add(1)
		defer wg.Done()
		log.Info("gracefully shutting down...")
		cancel()
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("graceful shutdown failed")
		}
		time.Sleep(time.Second)
		log.Info("graceful shutdown finished")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
	log.Info("HTTP server successfully stopped")
}
