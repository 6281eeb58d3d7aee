package analytics

import (
	"attachment-portal-backend/db"
	"attachment-portal-backend/lib/application/access"
	applicationstore "attachment-portal-backend/lib/application/store"
	departmentprovider "attachment-portal-backend/lib/dicts/department"
	usersstore "attachment-portal-backend/lib/users/store"
	apperrors "attachment-portal-backend/lib/utils/app-errors"
	initchecker "attachment-portal-backend/lib/utils/init-checker"
	analyticsapimodels "attachment-portal-backend/models/api/analytics"
	dbmodels "attachment-portal-backend/models/db"
	"time"
)

type Provider interface {
	Stats(userID string) (analyticsapimodels.StatsView, error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		applicationStore: applicationstore.NewInstance(db.DB),
		usersStore:       usersstore.NewInstance(db.DB),
		catalog:          departmentprovider.Instance,
		now:              time.Now,
	}
	initchecker.CheckInit(
		"catalog", instance.catalog,
	)
	Instance = instance
}

type impl struct {
	applicationStore applicationstore.Provider
	usersStore       usersstore.Provider
	catalog          departmentprovider.Provider
	now              func() time.Time
}

func (i impl) Stats(userID string) (analyticsapimodels.StatsView, error) {
	user, err := i.usersStore.GetByID(userID)
	if err != nil {
		return analyticsapimodels.StatsView{}, err
	}
	if user == nil || !user.IsActive {
		return analyticsapimodels.StatsView{}, apperrors.Unauthenticated("account not found or deactivated")
	}
	scope, err := access.ScopeFor(*user)
	if err != nil {
		return analyticsapimodels.StatsView{}, err
	}
	if !scope.IsStaff() {
		return analyticsapimodels.StatsView{}, apperrors.Forbidden("analytics is available to reviewers only")
	}
	list, err := i.applicationStore.List(scope.Restrict(dbmodels.ApplicationFilter{}))
	if err != nil {
		return analyticsapimodels.StatsView{}, err
	}
	return ComputeStats(list, i.now(), i.catalog.DepartmentName), nil
}
