package models

type Module string

const (
	ApplicationModule Module = "APPLICATION"
	ReviewModule      Module = "REVIEW"
	AnalyticsModule   Module = "ANALYTICS"
	UsersModule       Module = "USERS"
	ProfileModule     Module = "PROFILE"
	DocumentModule    Module = "DOCUMENT"
)

type Permission string

const (
	CreatePermission Permission = "CREATE"
	ViewPermission   Permission = "VIEW"
	ManagePermission Permission = "MANAGE"
	FlowPermission   Permission = "FLOW"
	EditPermission   Permission = "EDIT"
	ExportPermission Permission = "EXPORT"
)
