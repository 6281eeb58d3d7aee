package apiv1

import (
	"attachment-portal-backend/controllers"
	applicationhandler "attachment-portal-backend/lib/application"
	"attachment-portal-backend/middleware"
	"attachment-portal-backend/models"
	apimodels "attachment-portal-backend/models/api"
	applicationapimodels "attachment-portal-backend/models/api/application"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

type applicationApiController struct {
	controllers.BaseAPIController
}

// InitApplicationApiRouters registers the application routes. Static segments
// go before the {id} routes.
func InitApplicationApiRouters(app *fiber.App) {
	controller := applicationApiController{}
	analyticsController := analyticsApiController{}
	app.Route("applications", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Use(middleware.RbacMiddleware())
		router.Post("", controller.submit)
		router.Get("", controller.list)
		router.Get("my-applications", controller.myApplications)
		router.Get("export", controller.export)
		router.Put("hr-review/:id", controller.hrReview)
		router.Put("hod-review/:id", controller.hodReview)
		router.Get("analytics/stats", analyticsController.stats)
		router.Get(":id", controller.get)
		router.Get(":id/history", controller.history)
	})
}

// @Summary Submit application
// @Tags Applications
// @Description Submit an internship or attachment application with all documents required for the applicant role.
// @Description Every document is sent as a file field named by its type (applicationLetter, cv, nationalIdCopy, ...).
// @Accept multipart/form-data
// @Param   Authorization			header		string	true	"Authorization token"
// @Param   nationalIdNumber		formData	string	true	"National ID number"
// @Param   startDate				formData	string	true	"Start date, YYYY-MM-DD"
// @Param   endDate					formData	string	true	"End date, YYYY-MM-DD"
// @Param   preferredDepartment		formData	string	true	"Department code"
// @Param   preferredSubdepartment	formData	string	true	"Subdepartment code, NONE for departments without subdepartments"
// @Param   cv						formData	file	false	"Curriculum vitae"
// @Success 201 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications [post]
func (c *applicationApiController) submit(ctx *fiber.Ctx) error {
	form, err := ctx.MultipartForm()
	if err != nil {
		return c.SendBadRequest(ctx, errors.New("multipart form expected"))
	}
	payload, err := parseSubmitForm(form)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	resp, err := applicationhandler.Instance.Submit(ctx.UserContext(), middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "application submit failed")
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(resp))
}

// @Summary My applications
// @Tags Applications
// @Description Applications of the current applicant, newest first
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]applicationapimodels.ApplicationView}
// @Failure 401 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/my-applications [get]
func (c *applicationApiController) myApplications(ctx *fiber.Ctx) error {
	resp, err := applicationhandler.Instance.MyApplications(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "my applications read failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Application list
// @Tags Applications
// @Description Applications visible to the reviewer. Department filters outside of the reviewer scope are overridden.
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   filter				query		applicationapimodels.ListFilter	false	"filter"
// @Success 200 {object} apimodels.Response{data=[]applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications [get]
func (c *applicationApiController) list(ctx *fiber.Ctx) error {
	var filter applicationapimodels.ListFilter
	if err := c.QueryParser(ctx, &filter); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	resp, err := applicationhandler.Instance.List(middleware.GetUserID(ctx), filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "application list read failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Export application list
// @Tags Applications
// @Description Export the filtered list visible to the reviewer to Excel or PDF
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   format				query		string	false	"xlsx (default) or pdf"
// @Param   filter				query		applicationapimodels.ListFilter	false	"filter"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/export [get]
func (c *applicationApiController) export(ctx *fiber.Ctx) error {
	var filter applicationapimodels.ListFilter
	if err := c.QueryParser(ctx, &filter); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	file, err := applicationhandler.Instance.Export(middleware.GetUserID(ctx), filter, ctx.Query("format"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "application export failed")
	}
	ctx.Set(fiber.HeaderContentType, file.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+file.FileName+`"`)
	return ctx.Status(fiber.StatusOK).Send(file.Body)
}

// @Summary Application
// @Tags Applications
// @Description Application details, available to the owner and reviewers whose scope covers it
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id					path		string	true	"application ID"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 401 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id} [get]
func (c *applicationApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	resp, err := applicationhandler.Instance.Get(middleware.GetUserID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx).WithField("application_id", id), err, "application read failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Application history
// @Tags Applications
// @Description State changes of the application, oldest first
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id					path		string	true	"application ID"
// @Success 200 {object} apimodels.Response{data=[]applicationapimodels.HistoryView}
// @Failure 401 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id}/history [get]
func (c *applicationApiController) history(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	resp, err := applicationhandler.Instance.History(middleware.GetUserID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx).WithField("application_id", id), err, "application history read failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// parseSubmitForm reads the text fields and one file per document type.
func parseSubmitForm(form *multipart.Form) (applicationapimodels.SubmitRequest, error) {
	value := func(key string) string {
		if values := form.Value[key]; len(values) != 0 {
			return values[0]
		}
		return ""
	}
	startDate, err := applicationapimodels.ParseDate(value("startDate"))
	if err != nil {
		return applicationapimodels.SubmitRequest{}, err
	}
	endDate, err := applicationapimodels.ParseDate(value("endDate"))
	if err != nil {
		return applicationapimodels.SubmitRequest{}, err
	}
	payload := applicationapimodels.SubmitRequest{
		NationalIDNumber:       value("nationalIdNumber"),
		StartDate:              startDate,
		EndDate:                endDate,
		PreferredDepartment:    value("preferredDepartment"),
		PreferredSubdepartment: value("preferredSubdepartment"),
		Documents:              map[models.DocumentType]applicationapimodels.UploadedDocument{},
	}
	for field, files := range form.File {
		docType := models.DocumentType(field)
		if !docType.IsValid() {
			return applicationapimodels.SubmitRequest{}, errors.Errorf("unknown document field %q", field)
		}
		if len(files) == 0 {
			continue
		}
		doc, err := readUploadedFile(files[0])
		if err != nil {
			return applicationapimodels.SubmitRequest{}, errors.Wrapf(err, "document %v", docType)
		}
		payload.Documents[docType] = doc
	}
	return payload, nil
}

func readUploadedFile(header *multipart.FileHeader) (applicationapimodels.UploadedDocument, error) {
	file, err := header.Open()
	if err != nil {
		return applicationapimodels.UploadedDocument{}, err
	}
	defer file.Close()
	body, err := io.ReadAll(file)
	if err != nil {
		return applicationapimodels.UploadedDocument{}, err
	}
	return applicationapimodels.UploadedDocument{
		FileName:    header.Filename,
		ContentType: header.Header.Get(fiber.HeaderContentType),
		Body:        body,
	}, nil
}
