package dict

import (
	"attachment-portal-backend/controllers"
	apimodels "attachment-portal-backend/models/api"
	dictapimodels "attachment-portal-backend/models/api/dict"

	"github.com/gofiber/fiber/v2"
)

type roleDictApiController struct {
	controllers.BaseAPIController
}

func InitRoleDictApiRouters(app *fiber.App) {
	controller := roleDictApiController{}
	app.Route("roles", func(router fiber.Router) {
		router.Get("", controller.list)
	})
}

// @Summary Roles
// @Tags Dictionary. Roles
// @Description Account roles with display names
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.RoleView}
// @router /api/v1/roles [get]
func (c *roleDictApiController) list(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(dictapimodels.GetRoles()))
}
