package rbac

import (
	"attachment-portal-backend/models"
)

var (
	ApplicantRoleSet = []models.UserRole{models.InternRole, models.AttacheeRole}
	ReviewerRoleSet  = []models.UserRole{models.HRRole, models.HODRole, models.ChiefOfStaffRole, models.PrincipalSecretaryRole}
	ReaderRoleSet    = append(append([]models.UserRole{}, ApplicantRoleSet...), ReviewerRoleSet...)
	AdminRoleSet     = []models.UserRole{models.AdminRole}
	HRRoleSet        = []models.UserRole{models.HRRole}
	HODRoleSet       = []models.UserRole{models.HODRole}
)

func (i *impl) initRules() {
	i.applications()
	i.review()
	i.analytics()
	i.documents()
	i.users()
	i.profile()
}

func (i *impl) register(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string) {
	if err := i.RegisterRule(module, permission, roles, swaggerPattern); err != nil {
		panic(err.Error())
	}
}

func (i *impl) applications() {
	// CREATE
	i.register(models.ApplicationModule, models.CreatePermission, ApplicantRoleSet, "/api/v1/applications [post]")
	// VIEW
	i.register(models.ApplicationModule, models.ViewPermission, ApplicantRoleSet, "/api/v1/applications/my-applications [get]")
	i.register(models.ApplicationModule, models.ViewPermission, ReviewerRoleSet, "/api/v1/applications [get]")
	i.register(models.ApplicationModule, models.ViewPermission, ReaderRoleSet, "/api/v1/applications/{id} [get]")
	i.register(models.ApplicationModule, models.ViewPermission, ReviewerRoleSet, "/api/v1/applications/{id}/history [get]")
	// EXPORT
	i.register(models.ApplicationModule, models.ExportPermission, ReviewerRoleSet, "/api/v1/applications/export [get]")
}

func (i *impl) review() {
	// FLOW, scope and state are checked by the handler
	i.register(models.ReviewModule, models.FlowPermission, HRRoleSet, "/api/v1/applications/hr-review/{id} [put]")
	i.register(models.ReviewModule, models.FlowPermission, HODRoleSet, "/api/v1/applications/hod-review/{id} [put]")
}

func (i *impl) analytics() {
	i.register(models.AnalyticsModule, models.ViewPermission, ReviewerRoleSet, "/api/v1/applications/analytics/stats [get]")
}

func (i *impl) documents() {
	i.register(models.DocumentModule, models.ViewPermission, ReaderRoleSet, "/api/v1/documents/{filename} [get]")
}

func (i *impl) users() {
	// VIEW
	i.register(models.UsersModule, models.ViewPermission, AdminRoleSet, "/api/v1/users [get]")
	i.register(models.UsersModule, models.ViewPermission, AdminRoleSet, "/api/v1/users/{id} [get]")
	// MANAGE
	i.register(models.UsersModule, models.ManagePermission, AdminRoleSet, "/api/v1/users [post]")
	i.register(models.UsersModule, models.ManagePermission, AdminRoleSet, "/api/v1/users/{id} [put]")
	i.register(models.UsersModule, models.ManagePermission, AdminRoleSet, "/api/v1/users/{id} [delete]")
	i.register(models.UsersModule, models.ManagePermission, AdminRoleSet, "/api/v1/users/{id}/active [put]")
}

func (i *impl) profile() {
	i.register(models.ProfileModule, models.ViewPermission, models.AllRoles, "/api/v1/profile [get]")
	i.register(models.ProfileModule, models.EditPermission, models.AllRoles, "/api/v1/profile [put]")
	i.register(models.ProfileModule, models.EditPermission, models.AllRoles, "/api/v1/profile/change-password [put]")
}
