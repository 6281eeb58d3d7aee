package apiv1

import (
	applicationhandler "attachment-portal-backend/lib/application"
	"attachment-portal-backend/middleware"
	apimodels "attachment-portal-backend/models/api"
	applicationapimodels "attachment-portal-backend/models/api/application"

	"github.com/gofiber/fiber/v2"
)

// @Summary HR review
// @Tags Review
// @Description Approve forwards the application to the HOD of its department, reject closes it
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id					path		string	true	"application ID"
// @Param	body				body		applicationapimodels.ReviewRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/hr-review/{id} [put]
func (c *applicationApiController) hrReview(ctx *fiber.Ctx) error {
	id, payload, err := c.reviewPayload(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	resp, err := applicationhandler.Instance.HRReview(middleware.GetUserID(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx).WithField("application_id", id), err, "HR review failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary HOD review
// @Tags Review
// @Description Final decision of the HOD of the application department pair
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id					path		string	true	"application ID"
// @Param	body				body		applicationapimodels.ReviewRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/hod-review/{id} [put]
func (c *applicationApiController) hodReview(ctx *fiber.Ctx) error {
	id, payload, err := c.reviewPayload(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	resp, err := applicationhandler.Instance.HODReview(middleware.GetUserID(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx).WithField("application_id", id), err, "HOD review failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// reviewPayload reads the id and body. Field validation is left to the
// handler so that scope and existence are reported first.
func (c *applicationApiController) reviewPayload(ctx *fiber.Ctx) (string, applicationapimodels.ReviewRequest, error) {
	var payload applicationapimodels.ReviewRequest
	id, err := c.GetID(ctx)
	if err != nil {
		return "", payload, err
	}
	if err = c.BodyParser(ctx, &payload); err != nil {
		return "", payload, err
	}
	return id, payload, nil
}
