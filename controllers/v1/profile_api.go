package apiv1

import (
	"attachment-portal-backend/controllers"
	usershandler "attachment-portal-backend/lib/users"
	"attachment-portal-backend/middleware"
	apimodels "attachment-portal-backend/models/api"
	userapimodels "attachment-portal-backend/models/api/user"

	"github.com/gofiber/fiber/v2"
)

type profileApiController struct {
	controllers.BaseAPIController
}

func InitProfileApiRouters(app *fiber.App) {
	controller := profileApiController{}
	app.Route("profile", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Use(middleware.RbacMiddleware())
		router.Get("", controller.get)
		router.Put("", controller.update)
		router.Put("change-password", controller.changePassword)
	})
}

// @Summary Profile
// @Tags Profile
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=userapimodels.UserView}
// @Failure 401 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/profile [get]
func (c *profileApiController) get(ctx *fiber.Ctx) error {
	resp, err := usershandler.Instance.GetProfile(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "profile read failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Update profile
// @Tags Profile
// @Description Academic fields are kept for applicants only
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		userapimodels.ProfileUpdate	true	"request body"
// @Success 200 {object} apimodels.Response{data=userapimodels.UserView}
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/profile [put]
func (c *profileApiController) update(ctx *fiber.Ctx) error {
	var payload userapimodels.ProfileUpdate
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	resp, err := usershandler.Instance.UpdateProfile(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "profile update failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Change password
// @Tags Profile
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		userapimodels.ChangePasswordRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/profile/change-password [put]
func (c *profileApiController) changePassword(ctx *fiber.Ctx) error {
	var payload userapimodels.ChangePasswordRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err := usershandler.Instance.ChangePassword(middleware.GetUserID(ctx), payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "password change failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
