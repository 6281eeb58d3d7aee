package notification

import (
	"attachment-portal-backend/config"
	departmentprovider "attachment-portal-backend/lib/dicts/department"
	messagetemplate "attachment-portal-backend/lib/message-template"
	"attachment-portal-backend/lib/smtp"
	initchecker "attachment-portal-backend/lib/utils/init-checker"
	"attachment-portal-backend/models"
	dbmodels "attachment-portal-backend/models/db"
	"strings"

	log "github.com/sirupsen/logrus"
)

const dateLayout = "02 Jan 2006"

// Provider sends workflow emails. Delivery problems are logged and never
// returned, a failed email must not undo a committed transition.
type Provider interface {
	ApplicationSubmitted(app dbmodels.Application)
	HRDecision(app dbmodels.Application)
	HODInbox(app dbmodels.Application, hods []dbmodels.User)
	FinalDecision(app dbmodels.Application)
	ResetPassword(user dbmodels.User, code string)
}

var Instance Provider

func NewHandler() {
	initchecker.CheckInit(
		"smtp", smtp.Instance,
		"departmentprovider", departmentprovider.Instance,
	)
	Instance = NewInstance(smtp.Instance, departmentprovider.Instance, config.Conf.App.FrontendURL, config.Conf.Auth.ResetCodeExpireInMin)
}

func NewInstance(sender smtp.Provider, catalog departmentprovider.Provider, frontendURL string, resetCodeExpireInMin int) Provider {
	return &impl{
		sender:               sender,
		catalog:              catalog,
		frontendURL:          strings.TrimRight(frontendURL, "/"),
		resetCodeExpireInMin: resetCodeExpireInMin,
	}
}

type impl struct {
	sender               smtp.Provider
	catalog              departmentprovider.Provider
	frontendURL          string
	resetCodeExpireInMin int
}

func (i impl) ApplicationSubmitted(app dbmodels.Application) {
	data := i.templateData(app, "")
	title, body, err := messagetemplate.BuildSubmittedMsg(data)
	i.send(app, applicantEmail(app), title, body, err)
}

func (i impl) HRDecision(app dbmodels.Application) {
	data := i.templateData(app, app.HRComments)
	data.ReviewerName = reviewerName(app.HRReviewer)
	var title, body string
	var err error
	switch app.Status {
	case models.AppStatusHODReview:
		title, body, err = messagetemplate.BuildForwardedMsg(data)
	case models.AppStatusRejected:
		title, body, err = messagetemplate.BuildRejectedByHRMsg(data)
	case models.AppStatusPending, models.AppStatusHRReview, models.AppStatusApproved:
		i.logger(app).Warnf("no HR decision message for status %v", app.Status)
		return
	default:
		i.logger(app).Errorf("unknown application status %v", app.Status)
		return
	}
	i.send(app, applicantEmail(app), title, body, err)
}

func (i impl) HODInbox(app dbmodels.Application, hods []dbmodels.User) {
	for _, hod := range hods {
		data := models.HODInboxTemplateData{
			HODName:       hod.GetFullName(),
			ApplicantName: app.GetApplicantName(),
			ApplicationID: app.ID,
			Department:    i.catalog.DepartmentName(app.PreferredDepartment),
			Subdepartment: i.catalog.SubdepartmentName(app.PreferredDepartment, app.PreferredSubdepartment),
			HRComments:    app.HRComments,
			PortalLink:    i.frontendURL + "/applications/" + app.ID,
		}
		title, body, err := messagetemplate.BuildHODInboxMsg(data)
		i.send(app, hod.Email, title, body, err)
	}
}

func (i impl) FinalDecision(app dbmodels.Application) {
	data := i.templateData(app, app.HODComments)
	data.ReviewerName = reviewerName(app.HODReviewer)
	switch app.Status {
	case models.AppStatusApproved:
		data.Decision = &models.DecisionTemplateData{
			Approved:     true,
			Headline:     "Congratulations, your application has been approved.",
			NextSteps:    "Bring the originals of your uploaded documents on your first day.",
			ReportingDay: app.StartDate.Format(dateLayout),
		}
	case models.AppStatusRejected:
		data.Decision = &models.DecisionTemplateData{
			Headline:  "We regret to inform you that your application was not successful.",
			NextSteps: "You may submit a new application for a later period.",
		}
	case models.AppStatusPending, models.AppStatusHRReview, models.AppStatusHODReview:
		i.logger(app).Warnf("no final decision message for status %v", app.Status)
		return
	default:
		i.logger(app).Errorf("unknown application status %v", app.Status)
		return
	}
	title, body, err := messagetemplate.BuildDecisionMsg(data)
	i.send(app, applicantEmail(app), title, body, err)
}

func (i impl) ResetPassword(user dbmodels.User, code string) {
	logger := log.WithField("user_id", user.ID)
	title, body, err := messagetemplate.BuildResetPasswordMsg(models.ResetPasswordTemplateData{
		UserName:    user.GetFullName(),
		Code:        code,
		ResetLink:   i.frontendURL + "/reset-password?code=" + code,
		ExpireInMin: i.resetCodeExpireInMin,
	})
	if err != nil {
		logger.WithError(err).Error("reset password email build failed")
		return
	}
	err = i.sender.SendHTML(user.Email, title, body)
	if err != nil {
		logger.WithError(err).Error("reset password email send failed")
	}
}

func (i impl) templateData(app dbmodels.Application, comments string) models.TemplateData {
	return models.TemplateData{
		ApplicantName:          app.GetApplicantName(),
		ApplicantRole:          app.ApplicantRole.ToHuman(),
		ApplicationID:          app.ID,
		PreferredDepartment:    i.catalog.DepartmentName(app.PreferredDepartment),
		PreferredSubdepartment: i.catalog.SubdepartmentName(app.PreferredDepartment, app.PreferredSubdepartment),
		StartDate:              app.StartDate.Format(dateLayout),
		EndDate:                app.EndDate.Format(dateLayout),
		Status:                 app.Status.ToHuman(),
		Comments:               comments,
		PortalLink:             i.frontendURL + "/my-applications",
	}
}

func (i impl) send(app dbmodels.Application, to, title, body string, buildErr error) {
	logger := i.logger(app).WithField("recipient", to)
	if buildErr != nil {
		logger.WithError(buildErr).Error("notification build failed")
		return
	}
	if to == "" {
		logger.Warn("notification skipped, recipient email is empty")
		return
	}
	err := i.sender.SendHTML(to, title, body)
	if err != nil {
		logger.WithError(err).Error("notification send failed")
	}
}

func (i impl) logger(app dbmodels.Application) *log.Entry {
	return log.
		WithField("application_id", app.ID).
		WithField("status", app.Status)
}

func applicantEmail(app dbmodels.Application) string {
	if app.Applicant == nil {
		return ""
	}
	return app.Applicant.Email
}

func reviewerName(reviewer *dbmodels.User) string {
	if reviewer == nil {
		return models.SystemUser
	}
	return reviewer.GetFullName()
}
