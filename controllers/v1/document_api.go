package apiv1

import (
	"attachment-portal-backend/controllers"
	applicationhandler "attachment-portal-backend/lib/application"
	"attachment-portal-backend/middleware"
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"
)

type documentApiController struct {
	controllers.BaseAPIController
}

func InitDocumentApiRouters(app *fiber.App) {
	controller := documentApiController{}
	app.Route("documents", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Use(middleware.RbacMiddleware())
		router.Get(":filename", controller.download)
	})
}

// @Summary Download document
// @Tags Documents
// @Description Stream a stored document of an application visible to the caller
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   filename			path		string	true	"stored file name"
// @Success 200
// @Failure 401 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/documents/{filename} [get]
func (c *documentApiController) download(ctx *fiber.Ctx) error {
	fileName, err := c.GetParam(ctx, "filename")
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	doc, err := applicationhandler.Instance.GetDocument(ctx.UserContext(), middleware.GetUserID(ctx), fileName)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx).WithField("file_name", fileName), err, "document read failed")
	}
	ctx.Set(fiber.HeaderContentType, doc.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename*=UTF-8''%s`, url.PathEscape(doc.OriginalName)))
	return ctx.Status(fiber.StatusOK).Send(doc.Body)
}
