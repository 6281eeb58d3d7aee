package main

import (
	"attachment-portal-backend/config"
	apiv1 "attachment-portal-backend/controllers/v1"
	"attachment-portal-backend/controllers/v1/dict"
	"attachment-portal-backend/fiberlog"
	"attachment-portal-backend/initializers"
	resetcodeworker "attachment-portal-backend/lib/auth/reset-code-worker"
	"attachment-portal-backend/middleware"
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	log "github.com/sirupsen/logrus"
)

func main() {
	initializers.InitAllServices()

	workersCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	resetcodeworker.StartWorker(workersCtx)

	bodyLimit := config.Conf.App.BodyLimitMb * 1024 * 1024
	app := fiber.New(fiber.Config{
		BodyLimit: bodyLimit,
	})
	app.Use(fiberRecover.New())
	app.Use(requestid.New())

	if _, err := os.Stat(config.Conf.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			Path:     "/swagger",
			FilePath: config.Conf.App.SwaggerFile,
		}))
	} else {
		log.WithField("file", config.Conf.App.SwaggerFile).Warn("swagger file not found, API docs are disabled")
	}

	//api
	apiV1 := fiber.New(fiber.Config{
		BodyLimit: bodyLimit,
	})
	loggerConfig := *initializers.LoggerConfig
	loggerConfig.SkipPaths = []string{"/api/v1/health"}
	apiV1.Use(fiberlog.New(loggerConfig))
	apiV1.Use(middleware.ErrNotify(config.Conf.App.ErrorNotifyURL))
	apiV1.Use(middleware.WithBodyLimit(int64(bodyLimit)))
	apiV1.Use(cors.New(cors.Config{
		AllowOrigins: config.Conf.App.FrontendURL,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, PUT",
	}))
	app.Mount("/api/v1", apiV1)
	apiv1.InitHealthApiRouters(apiV1)
	apiv1.InitAuthApiRouters(apiV1)
	apiv1.InitProfileApiRouters(apiV1)
	apiv1.InitUserApiRouters(apiV1)
	apiv1.InitApplicationApiRouters(apiV1)
	apiv1.InitDocumentApiRouters(apiV1)

	//dict
	dict.InitDepartmentDictApiRouters(apiV1)
	dict.InitRoleDictApiRouters(apiV1)

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-c
		log.Info("Gracefully shutting down...")
		stopWorkers()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("Error when try gracefully shutting down")
		}
		log.Info("Gracefully shutting down finished")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
	log.Info("HTTP server successfully stopped")
}
