package messagetemplate

import (
	"attachment-portal-backend/models"
	"bytes"
	"embed"
	"html/template"
	"strings"

	"github.com/pkg/errors"
)

//go:embed static/*.html
var staticFS embed.FS

const (
	submittedTitle     = "Application received"
	forwardedTitle     = "Application forwarded to the Head of Department"
	rejectedByHRTitle  = "Application update"
	approvedTitle      = "Application approved"
	rejectedTitle      = "Application not successful"
	hodInboxTitle      = "New application awaiting your decision"
	resetPasswordTitle = "Password reset"
)

func BuildSubmittedMsg(data models.TemplateData) (title, body string, err error) {
	body, err = render("static/application_submitted.html", data)
	return submittedTitle, body, err
}

func BuildForwardedMsg(data models.TemplateData) (title, body string, err error) {
	body, err = render("static/application_forwarded.html", data)
	return forwardedTitle, body, err
}

func BuildRejectedByHRMsg(data models.TemplateData) (title, body string, err error) {
	body, err = render("static/application_rejected_hr.html", data)
	return rejectedByHRTitle, body, err
}

// BuildDecisionMsg renders the final decision. data.Decision must be set.
func BuildDecisionMsg(data models.TemplateData) (title, body string, err error) {
	if data.Decision == nil {
		return "", "", errors.New("decision data is not set")
	}
	body, err = render("static/application_decision.html", data)
	if data.Decision.Approved {
		return approvedTitle, body, err
	}
	return rejectedTitle, body, err
}

func BuildHODInboxMsg(data models.HODInboxTemplateData) (title, body string, err error) {
	body, err = render("static/hod_inbox.html", data)
	return hodInboxTitle, body, err
}

func BuildResetPasswordMsg(data models.ResetPasswordTemplateData) (title, body string, err error) {
	body, err = render("static/reset_password.html", data)
	return resetPasswordTitle, body, err
}

func render(filePath string, data interface{}) (string, error) {
	tpl, err := getTemplate(filePath)
	if err != nil {
		return "", err
	}
	buf := new(bytes.Buffer)
	err = tpl.Execute(buf, data)
	if err != nil {
		return "", errors.Wrapf(err, "template execution failed %v", filePath)
	}
	return buf.String(), nil
}

func getTemplate(filePath string) (*template.Template, error) {
	tmplBody, err := staticFS.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "template file read failed %v", filePath)
	}
	body := strings.Replace(string(tmplBody), "\n", "", -1)
	return template.New("msg_body").Parse(body)
}
