package dict

import (
	"attachment-portal-backend/controllers"
	departmentprovider "attachment-portal-backend/lib/dicts/department"
	apperrors "attachment-portal-backend/lib/utils/app-errors"
	apimodels "attachment-portal-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

type departmentDictApiController struct {
	controllers.BaseAPIController
}

func InitDepartmentDictApiRouters(app *fiber.App) {
	controller := departmentDictApiController{}
	app.Route("departments", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Get(":code/subdepartments", controller.subdepartments)
	})
}

// @Summary Departments
// @Tags Dictionary. Departments
// @Description Departments an application can be addressed to, in catalog order
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.DepartmentView}
// @router /api/v1/departments [get]
func (c *departmentDictApiController) list(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(departmentprovider.Instance.ListDepartments()))
}

// @Summary Subdepartments
// @Tags Dictionary. Departments
// @Description Subdepartments of the department, empty for departments without subdepartments
// @Param   code		path		string	true	"department code"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.SubdepartmentView}
// @Failure 404 {object} apimodels.Response
// @router /api/v1/departments/{code}/subdepartments [get]
func (c *departmentDictApiController) subdepartments(ctx *fiber.Ctx) error {
	code, err := c.GetParam(ctx, "code")
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	list, err := departmentprovider.Instance.ListSubdepartments(code)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), apperrors.NotFound(err.Error()), "subdepartment list failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}
