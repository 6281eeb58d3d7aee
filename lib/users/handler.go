package usershandler

import (
	"attachment-portal-backend/db"
	departmentprovider "attachment-portal-backend/lib/dicts/department"
	usersstore "attachment-portal-backend/lib/users/store"
	apperrors "attachment-portal-backend/lib/utils/app-errors"
	authutils "attachment-portal-backend/lib/utils/auth-utils"
	initchecker "attachment-portal-backend/lib/utils/init-checker"
	"attachment-portal-backend/models"
	userapimodels "attachment-portal-backend/models/api/user"
	dbmodels "attachment-portal-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	List(filter userapimodels.ListFilter) (list []userapimodels.UserView, rowCount int64, err error)
	GetByID(userID string) (userapimodels.UserView, error)
	Create(actorID string, request userapimodels.CreateUser) (userapimodels.UserView, error)
	Update(actorID, userID string, request userapimodels.UpdateUser) (userapimodels.UserView, error)
	SetActive(actorID, userID string, isActive bool) error
	Delete(actorID, userID string) error
	GetProfile(userID string) (userapimodels.UserView, error)
	UpdateProfile(userID string, request userapimodels.ProfileUpdate) (userapimodels.UserView, error)
	ChangePassword(userID string, request userapimodels.ChangePasswordRequest) error
}

var Instance Provider

func NewHandler() {
	initchecker.CheckInit("departmentprovider", departmentprovider.Instance)
	Instance = NewInstance(usersstore.NewInstance(db.DB), departmentprovider.Instance)
}

func NewInstance(store usersstore.Provider, catalog departmentprovider.Provider) Provider {
	return impl{
		store:   store,
		catalog: catalog,
	}
}

type impl struct {
	store   usersstore.Provider
	catalog departmentprovider.Provider
}

func (i impl) List(filter userapimodels.ListFilter) (list []userapimodels.UserView, rowCount int64, err error) {
	storeFilter, err := filter.ToStoreFilter()
	if err != nil {
		return nil, 0, apperrors.Validation(err.Error())
	}
	recList, rowCount, err := i.store.List(storeFilter)
	if err != nil {
		log.WithError(err).Error("user list failed")
		return nil, 0, err
	}
	list = make([]userapimodels.UserView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, i.convert(rec))
	}
	return list, rowCount, nil
}

func (i impl) GetByID(userID string) (userapimodels.UserView, error) {
	rec, err := i.getUser(userID)
	if err != nil {
		return userapimodels.UserView{}, err
	}
	return i.convert(*rec), nil
}

func (i impl) Create(actorID string, request userapimodels.CreateUser) (userapimodels.UserView, error) {
	logger := log.WithField("actor_id", actorID).WithField("email", request.Email)
	request.Normalize()
	if err := request.Validate(); err != nil {
		return userapimodels.UserView{}, apperrors.Validation(err.Error())
	}
	if err := authutils.ValidatePassword(request.Password); err != nil {
		return userapimodels.UserView{}, apperrors.Validation(err.Error())
	}
	department, subdepartment, err := i.checkDepartment(request.Role, request.Department, request.Subdepartment)
	if err != nil {
		return userapimodels.UserView{}, err
	}
	exist, err := i.store.ExistByEmail(request.Email)
	if err != nil {
		logger.WithError(err).Error("user email check failed")
		return userapimodels.UserView{}, err
	}
	if exist {
		return userapimodels.UserView{}, apperrors.Conflict("user with this email already exists")
	}
	hash, err := authutils.HashPassword(request.Password)
	if err != nil {
		return userapimodels.UserView{}, err
	}
	rec := dbmodels.User{
		Email:         request.Email,
		Password:      hash,
		Role:          request.Role,
		Department:    department,
		Subdepartment: subdepartment,
		FirstName:     strings.TrimSpace(request.FirstName),
		LastName:      strings.TrimSpace(request.LastName),
		PhoneNumber:   request.PhoneNumber,
		IsActive:      true,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("user create failed")
		return userapimodels.UserView{}, err
	}
	logger.WithField("user_id", id).Infof("%v account created", rec.Role)
	return i.GetByID(id)
}

func (i impl) Update(actorID, userID string, request userapimodels.UpdateUser) (userapimodels.UserView, error) {
	logger := log.WithField("actor_id", actorID).WithField("user_id", userID)
	rec, err := i.getUser(userID)
	if err != nil {
		return userapimodels.UserView{}, err
	}
	role := rec.Role
	if request.Role != "" {
		if !request.Role.IsValid() {
			return userapimodels.UserView{}, apperrors.Validation("unknown role: %v", request.Role)
		}
		if request.Role.IsApplicant() != rec.Role.IsApplicant() {
			return userapimodels.UserView{}, apperrors.Validation("role can not change between applicant and staff")
		}
		if actorID == userID && request.Role != rec.Role {
			return userapimodels.UserView{}, apperrors.Forbidden("you can not change your own role")
		}
		role = request.Role
	}
	department, subdepartment := rec.Department, rec.Subdepartment
	if request.Department != "" || request.Subdepartment != "" || role != rec.Role {
		if request.Department != "" {
			department = request.Department
		}
		if request.Subdepartment != "" {
			subdepartment = request.Subdepartment
		}
		department, subdepartment, err = i.checkDepartment(role, department, subdepartment)
		if err != nil {
			return userapimodels.UserView{}, err
		}
	}
	updMap := map[string]interface{}{
		"role":          role,
		"department":    department,
		"subdepartment": subdepartment,
	}
	if name := strings.TrimSpace(request.FirstName); name != "" {
		updMap["first_name"] = name
	}
	if name := strings.TrimSpace(request.LastName); name != "" {
		updMap["last_name"] = name
	}
	if request.PhoneNumber != "" {
		updMap["phone_number"] = request.PhoneNumber
	}
	if err = i.store.Update(userID, updMap); err != nil {
		logger.WithError(err).Error("user update failed")
		return userapimodels.UserView{}, err
	}
	return i.GetByID(userID)
}

func (i impl) SetActive(actorID, userID string, isActive bool) error {
	if actorID == userID && !isActive {
		return apperrors.Forbidden("you can not deactivate your own account")
	}
	if _, err := i.getUser(userID); err != nil {
		return err
	}
	err := i.store.Update(userID, map[string]interface{}{"is_active": isActive})
	if err != nil {
		log.WithField("user_id", userID).WithError(err).Error("user activity update failed")
		return err
	}
	return nil
}

// Delete removes the account permanently. Applications of an applicant are
// removed with it by the foreign keys, reviewers with decisions on record can
// only be deactivated.
func (i impl) Delete(actorID, userID string) error {
	logger := log.WithField("actor_id", actorID).WithField("user_id", userID)
	if actorID == userID {
		return apperrors.Forbidden("you can not delete your own account")
	}
	rec, err := i.getUser(userID)
	if err != nil {
		return err
	}
	if !rec.Role.IsValid() {
		return apperrors.Validation("unknown role: %v", rec.Role)
	}
	if err = i.store.Delete(userID); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return apperrors.Conflict("account has review records, deactivate it instead")
		}
		logger.WithError(err).Error("user delete failed")
		return err
	}
	logger.Infof("%v account deleted", rec.Role)
	return nil
}

func (i impl) GetProfile(userID string) (userapimodels.UserView, error) {
	return i.GetByID(userID)
}

func (i impl) UpdateProfile(userID string, request userapimodels.ProfileUpdate) (userapimodels.UserView, error) {
	rec, err := i.getUser(userID)
	if err != nil {
		return userapimodels.UserView{}, err
	}
	updated := *rec
	if name := strings.TrimSpace(request.FirstName); name != "" {
		updated.FirstName = name
	}
	if name := strings.TrimSpace(request.LastName); name != "" {
		updated.LastName = name
	}
	if request.PhoneNumber != "" {
		updated.PhoneNumber = request.PhoneNumber
	}
	if rec.Role.IsApplicant() {
		if request.Institution != "" {
			updated.Institution = strings.TrimSpace(request.Institution)
		}
		if request.Course != "" {
			updated.Course = strings.TrimSpace(request.Course)
		}
		if request.YearOfStudy != 0 {
			updated.YearOfStudy = request.YearOfStudy
		}
	}
	if err = updated.Validate(); err != nil {
		return userapimodels.UserView{}, apperrors.Validation(err.Error())
	}
	updMap := map[string]interface{}{
		"first_name":    updated.FirstName,
		"last_name":     updated.LastName,
		"phone_number":  updated.PhoneNumber,
		"institution":   updated.Institution,
		"course":        updated.Course,
		"year_of_study": updated.YearOfStudy,
	}
	if err = i.store.Update(userID, updMap); err != nil {
		log.WithField("user_id", userID).WithError(err).Error("profile update failed")
		return userapimodels.UserView{}, err
	}
	return i.GetByID(userID)
}

func (i impl) ChangePassword(userID string, request userapimodels.ChangePasswordRequest) error {
	if err := request.Validate(); err != nil {
		return apperrors.Validation(err.Error())
	}
	rec, err := i.getUser(userID)
	if err != nil {
		return err
	}
	if !authutils.CheckPassword(rec.Password, request.CurrentPassword) {
		return apperrors.Validation("current password is incorrect")
	}
	if err = authutils.ValidatePassword(request.NewPassword); err != nil {
		return apperrors.Validation(err.Error())
	}
	hash, err := authutils.HashPassword(request.NewPassword)
	if err != nil {
		return err
	}
	if err = i.store.Update(userID, map[string]interface{}{"password": hash}); err != nil {
		log.WithField("user_id", userID).WithError(err).Error("password update failed")
		return err
	}
	return nil
}

// checkDepartment returns the department pair stored for the role. Roles
// without a department binding never keep one, department-wide roles keep NONE.
func (i impl) checkDepartment(role models.UserRole, department, subdepartment string) (string, string, error) {
	if !role.NeedsDepartment() {
		return "", "", nil
	}
	department = strings.ToUpper(strings.TrimSpace(department))
	subdepartment = strings.ToUpper(strings.TrimSpace(subdepartment))
	if department == "" {
		return "", "", apperrors.Validation("department is required for role %v", role)
	}
	switch role {
	case models.ChiefOfStaffRole, models.PrincipalSecretaryRole:
		if !i.catalog.HasDepartment(department) {
			return "", "", apperrors.Validation("unknown department %v", department)
		}
		return department, dbmodels.NoSubdepartment, nil
	case models.HODRole:
		if subdepartment == "" {
			subdepartment = dbmodels.NoSubdepartment
		}
		if !i.catalog.Validate(department, subdepartment) {
			return "", "", apperrors.Validation("unknown department %v/%v", department, subdepartment)
		}
		return department, subdepartment, nil
	}
	return "", "", apperrors.Validation("unknown role: %v", role)
}

func (i impl) getUser(userID string) (*dbmodels.User, error) {
	rec, err := i.store.GetByID(userID)
	if err != nil {
		log.WithField("user_id", userID).WithError(err).Error("user read failed")
		return nil, err
	}
	if rec == nil {
		return nil, apperrors.NotFound("user not found")
	}
	return rec, nil
}

func (i impl) convert(rec dbmodels.User) userapimodels.UserView {
	view := userapimodels.UserConvert(rec)
	if rec.Department != "" {
		view.DepartmentName = i.catalog.DepartmentName(rec.Department)
		view.SubdepartmentName = i.catalog.SubdepartmentName(rec.Department, rec.Subdepartment)
	}
	return view
}
