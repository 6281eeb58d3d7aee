package dictapimodels

import "attachment-portal-backend/models"

func GetRoles() []RoleView {
	result := make([]RoleView, 0, len(models.AllRoles))
	for _, role := range models.AllRoles {
		result = append(result, GetRole(role))
	}
	return result
}

func GetRole(role models.UserRole) RoleView {
	return RoleView{
		Code: string(role),
		Name: role.ToHuman(),
	}
}

type RoleView struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
