package authhandler

import (
	"attachment-portal-backend/config"
	"attachment-portal-backend/db"
	departmentprovider "attachment-portal-backend/lib/dicts/department"
	"attachment-portal-backend/lib/notification"
	"attachment-portal-backend/lib/rbac"
	usersstore "attachment-portal-backend/lib/users/store"
	apperrors "attachment-portal-backend/lib/utils/app-errors"
	authutils "attachment-portal-backend/lib/utils/auth-utils"
	initchecker "attachment-portal-backend/lib/utils/init-checker"
	authapimodels "attachment-portal-backend/models/api/auth"
	userapimodels "attachment-portal-backend/models/api/user"
	dbmodels "attachment-portal-backend/models/db"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Register(request authapimodels.RegisterRequest) (userapimodels.UserView, error)
	Login(email, password string) (authapimodels.JWTResponse, error)
	RefreshToken(refreshToken string) (authapimodels.JWTResponse, error)
	Me(userID string) (authapimodels.MeView, error)
	ForgotPassword(email string) error
	ResetPassword(request authapimodels.ResetPasswordRequest) error
}

var Instance Provider

func NewHandler() {
	initchecker.CheckInit(
		"notification", notification.Instance,
		"rbac", rbac.Instance,
		"departmentprovider", departmentprovider.Instance,
	)
	Instance = impl{
		store:                usersstore.NewInstance(db.DB),
		notifier:             notification.Instance,
		permissions:          rbac.Instance,
		catalog:              departmentprovider.Instance,
		resetCodeExpireInMin: config.Conf.Auth.ResetCodeExpireInMin,
		now:                  time.Now,
	}
}

type impl struct {
	store                usersstore.Provider
	notifier             notification.Provider
	permissions          rbac.Provider
	catalog              departmentprovider.Provider
	resetCodeExpireInMin int
	now                  func() time.Time
}

func (i impl) Register(request authapimodels.RegisterRequest) (userapimodels.UserView, error) {
	logger := log.WithField("email", request.Email)
	if err := request.Validate(); err != nil {
		return userapimodels.UserView{}, apperrors.Validation(err.Error())
	}
	if err := authutils.ValidatePassword(request.Password); err != nil {
		return userapimodels.UserView{}, apperrors.Validation(err.Error())
	}
	rec := dbmodels.User{
		Email:       usersstore.NormalizeEmail(request.Email),
		Role:        request.Role,
		FirstName:   strings.TrimSpace(request.FirstName),
		LastName:    strings.TrimSpace(request.LastName),
		PhoneNumber: strings.TrimSpace(request.PhoneNumber),
		Institution: strings.TrimSpace(request.Institution),
		Course:      strings.TrimSpace(request.Course),
		YearOfStudy: request.YearOfStudy,
		IsActive:    true,
	}
	if err := rec.Validate(); err != nil {
		return userapimodels.UserView{}, apperrors.Validation(err.Error())
	}
	exist, err := i.store.ExistByEmail(rec.Email)
	if err != nil {
		logger.WithError(err).Error("user email check failed")
		return userapimodels.UserView{}, err
	}
	if exist {
		return userapimodels.UserView{}, apperrors.Conflict("user with this email already exists")
	}
	rec.Password, err = authutils.HashPassword(request.Password)
	if err != nil {
		return userapimodels.UserView{}, err
	}
	rec.ID, err = i.store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("user registration failed")
		return userapimodels.UserView{}, err
	}
	logger.WithField("user_id", rec.ID).Infof("%v registered", rec.Role)
	return userapimodels.UserConvert(rec), nil
}

func (i impl) Login(email, password string) (authapimodels.JWTResponse, error) {
	logger := log.WithField("email", email)
	user, err := i.store.FindByEmail(email)
	if err != nil {
		logger.WithError(err).Error("user lookup by email failed")
		return authapimodels.JWTResponse{}, err
	}
	if user == nil || !authutils.CheckPassword(user.Password, password) {
		logger.Debug("invalid credentials")
		return authapimodels.JWTResponse{}, apperrors.Unauthenticated("invalid email or password")
	}
	if !user.IsActive {
		return authapimodels.JWTResponse{}, apperrors.Forbidden("account is deactivated")
	}
	resp, err := i.issueTokens(*user)
	if err != nil {
		logger.WithError(err).Error("JWT generation failed")
		return authapimodels.JWTResponse{}, err
	}
	now := i.now()
	err = i.store.Update(user.ID, map[string]interface{}{"last_login": now})
	if err != nil {
		logger.WithError(err).Error("last login update failed")
	}
	resp.User.LastLogin = &now
	return resp, nil
}

func (i impl) RefreshToken(refreshToken string) (authapimodels.JWTResponse, error) {
	userID, err := authutils.ParseRefreshToken(refreshToken)
	if err != nil {
		return authapimodels.JWTResponse{}, apperrors.Unauthenticated("invalid refresh token")
	}
	user, err := i.activeUser(userID)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	return i.issueTokens(*user)
}

func (i impl) Me(userID string) (authapimodels.MeView, error) {
	user, err := i.activeUser(userID)
	if err != nil {
		return authapimodels.MeView{}, err
	}
	return authapimodels.MeView{
		UserView:    i.convert(*user),
		Permissions: i.permissions.GetPermissions(user.Role),
	}, nil
}

// ForgotPassword never reports whether the email is registered.
func (i impl) ForgotPassword(email string) error {
	logger := log.WithField("email", email)
	user, err := i.store.FindByEmail(email)
	if err != nil {
		logger.WithError(err).Error("user lookup by email failed")
		return err
	}
	if user == nil || !user.IsActive {
		logger.Debug("password reset requested for unknown or inactive account")
		return nil
	}
	code, err := authutils.GenerateCode()
	if err != nil {
		return err
	}
	until := i.now().Add(time.Duration(i.resetCodeExpireInMin) * time.Minute)
	err = i.store.Update(user.ID, map[string]interface{}{
		"reset_code":       code,
		"reset_code_until": until,
	})
	if err != nil {
		logger.WithError(err).Error("reset code save failed")
		return err
	}
	i.notifier.ResetPassword(*user, code)
	return nil
}

func (i impl) ResetPassword(request authapimodels.ResetPasswordRequest) error {
	if err := request.Validate(); err != nil {
		return apperrors.Validation(err.Error())
	}
	user, err := i.store.GetByResetCode(strings.TrimSpace(request.ResetCode))
	if err != nil {
		log.WithError(err).Error("user lookup by reset code failed")
		return err
	}
	if user == nil || user.ResetCodeUntil == nil || i.now().After(*user.ResetCodeUntil) {
		return apperrors.Validation("reset code is invalid or expired")
	}
	if err = authutils.ValidatePassword(request.NewPassword); err != nil {
		return apperrors.Validation(err.Error())
	}
	hash, err := authutils.HashPassword(request.NewPassword)
	if err != nil {
		return err
	}
	err = i.store.Update(user.ID, map[string]interface{}{
		"password":         hash,
		"reset_code":       "",
		"reset_code_until": nil,
	})
	if err != nil {
		log.WithField("user_id", user.ID).WithError(err).Error("password reset failed")
		return err
	}
	return nil
}

func (i impl) issueTokens(user dbmodels.User) (authapimodels.JWTResponse, error) {
	token, err := authutils.GetToken(user)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	refreshToken, err := authutils.GetRefreshToken(user.ID, user.GetFullName())
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	return authapimodels.JWTResponse{
		Token:        token,
		RefreshToken: refreshToken,
		User:         i.convert(user),
	}, nil
}

func (i impl) activeUser(userID string) (*dbmodels.User, error) {
	user, err := i.store.GetByID(userID)
	if err != nil {
		log.WithField("user_id", userID).WithError(err).Error("user read failed")
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, apperrors.Unauthenticated("account not found or deactivated")
	}
	return user, nil
}

func (i impl) convert(user dbmodels.User) userapimodels.UserView {
	view := userapimodels.UserConvert(user)
	if user.Department != "" {
		view.DepartmentName = i.catalog.DepartmentName(user.Department)
		view.SubdepartmentName = i.catalog.SubdepartmentName(user.Department, user.Subdepartment)
	}
	return view
}
