package apiv1

import (
	"attachment-portal-backend/controllers"
	"attachment-portal-backend/db"
	apimodels "attachment-portal-backend/models/api"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

type healthApiController struct {
	controllers.BaseAPIController
}

func InitHealthApiRouters(app *fiber.App) {
	controller := healthApiController{}
	app.Get("health", controller.health)
}

// @Summary Health check
// @Tags Service
// @Description Answers 200 when the database is reachable
// @Success 200 {object} apimodels.Response
// @Failure 503 {object} apimodels.Response
// @router /api/v1/health [get]
func (c *healthApiController) health(ctx *fiber.Ctx) error {
	if err := db.PingDB(); err != nil {
		log.WithError(err).Error("database ping failed")
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(apimodels.NewError("database is not reachable"))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse("ok"))
}
