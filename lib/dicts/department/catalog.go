package departmentprovider

import (
	dictapimodels "attachment-portal-backend/models/api/dict"
	dbmodels "attachment-portal-backend/models/db"
	"strings"

	"github.com/pkg/errors"
)

type Provider interface {
	ListDepartments() []dictapimodels.DepartmentView
	ListSubdepartments(code string) ([]dictapimodels.SubdepartmentView, error)
	Validate(deptCode, subdeptCode string) bool
	HasDepartment(code string) bool
	DepartmentName(code string) string
	SubdepartmentName(deptCode, subdeptCode string) string
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance()
}

func NewInstance() Provider {
	byCode := make(map[string]department, len(catalog))
	for _, dept := range catalog {
		byCode[dept.code] = dept
	}
	return impl{
		byCode: byCode,
	}
}

type impl struct {
	byCode map[string]department
}

func (i impl) ListDepartments() []dictapimodels.DepartmentView {
	result := make([]dictapimodels.DepartmentView, 0, len(catalog))
	for _, dept := range catalog {
		result = append(result, dictapimodels.DepartmentView{
			Code: dept.code,
			Name: dept.name,
		})
	}
	return result
}

func (i impl) ListSubdepartments(code string) ([]dictapimodels.SubdepartmentView, error) {
	dept, ok := i.lookup(code)
	if !ok {
		return nil, errors.Errorf("department %v not found", code)
	}
	result := make([]dictapimodels.SubdepartmentView, 0, len(dept.subdepartments))
	for _, sub := range dept.subdepartments {
		result = append(result, dictapimodels.SubdepartmentView{
			Code: sub.code,
			Name: sub.name,
		})
	}
	return result, nil
}

// Validate is true when the department exists and the subdepartment belongs to it.
// Departments without subdepartments accept only the NONE sentinel.
func (i impl) Validate(deptCode, subdeptCode string) bool {
	dept, ok := i.lookup(deptCode)
	if !ok {
		return false
	}
	if len(dept.subdepartments) == 0 {
		return subdeptCode == dbmodels.NoSubdepartment
	}
	for _, sub := range dept.subdepartments {
		if sub.code == subdeptCode {
			return true
		}
	}
	return false
}

func (i impl) HasDepartment(code string) bool {
	_, ok := i.lookup(code)
	return ok
}

func (i impl) DepartmentName(code string) string {
	dept, ok := i.lookup(code)
	if !ok {
		return code
	}
	return dept.name
}

func (i impl) SubdepartmentName(deptCode, subdeptCode string) string {
	dept, ok := i.lookup(deptCode)
	if !ok {
		return subdeptCode
	}
	for _, sub := range dept.subdepartments {
		if sub.code == subdeptCode {
			return sub.name
		}
	}
	return subdeptCode
}

func (i impl) lookup(code string) (department, bool) {
	dept, ok := i.byCode[strings.ToUpper(strings.TrimSpace(code))]
	return dept, ok
}
