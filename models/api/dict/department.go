package dictapimodels

type DepartmentView struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type SubdepartmentView struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
