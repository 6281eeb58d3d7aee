package models

// TemplateData is the data every notification template is rendered with.
type TemplateData struct {
	ApplicantName          string
	ApplicantRole          string
	ApplicationID          string
	PreferredDepartment    string
	PreferredSubdepartment string
	StartDate              string
	EndDate                string
	Status                 string
	ReviewerName           string
	Comments               string
	PortalLink             string
	Decision               *DecisionTemplateData
}

// DecisionTemplateData carries the branch specific part of a final decision message.
type DecisionTemplateData struct {
	Approved     bool
	Headline     string
	NextSteps    string
	ReportingDay string
}

type ResetPasswordTemplateData struct {
	UserName    string
	Code        string
	ResetLink   string
	ExpireInMin int
}

type HODInboxTemplateData struct {
	HODName       string
	ApplicantName string
	ApplicationID string
	Department    string
	Subdepartment string
	HRComments    string
	PortalLink    string
}
