package usersstore

import (
	apperrors "attachment-portal-backend/lib/utils/app-errors"
	"attachment-portal-backend/models"
	dbmodels "attachment-portal-backend/models/db"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.User) (string, error)
	Update(userID string, updMap map[string]interface{}) error
	Delete(userID string) error
	GetByID(userID string) (rec *dbmodels.User, err error)
	FindByEmail(email string) (rec *dbmodels.User, err error)
	ExistByEmail(email string) (bool, error)
	GetByResetCode(code string) (rec *dbmodels.User, err error)
	List(filter dbmodels.UserFilter) (list []dbmodels.User, rowCount int64, err error)
	ListByScope(role models.UserRole, department, subdepartment string) (list []dbmodels.User, err error)
	ClearExpiredResetCodes(now time.Time) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (i impl) Create(rec dbmodels.User) (string, error) {
	rec.Email = NormalizeEmail(rec.Email)
	err := i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", createError(err)
	}
	return rec.ID, nil
}

// createError turns a lost race on the unique email index into a conflict.
func createError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Conflict("user with this email already exists")
	}
	return err
}

func (i impl) Update(userID string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	if email, ok := updMap["email"].(string); ok {
		updMap["email"] = NormalizeEmail(email)
	}
	tx := i.db.
		Model(&dbmodels.User{}).
		Where("id = ?", userID).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (i impl) Delete(userID string) error {
	tx := i.db.
		Where("id = ?", userID).
		Delete(&dbmodels.User{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (i impl) GetByID(userID string) (rec *dbmodels.User, err error) {
	err = i.db.Model(dbmodels.User{}).
		Where("id = ?", userID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) FindByEmail(email string) (rec *dbmodels.User, err error) {
	err = i.db.Model(dbmodels.User{}).
		Where("email = ?", NormalizeEmail(email)).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) ExistByEmail(email string) (bool, error) {
	var exists bool
	err := i.db.Model(&dbmodels.User{}).
		Select("count(*) > 0").
		Where("email = ?", NormalizeEmail(email)).
		Find(&exists).
		Error
	return exists, err
}

func (i impl) GetByResetCode(code string) (rec *dbmodels.User, err error) {
	err = i.db.Model(dbmodels.User{}).
		Where("reset_code = ?", code).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) List(filter dbmodels.UserFilter) (list []dbmodels.User, rowCount int64, err error) {
	tx := i.db.Model(dbmodels.User{})
	if len(filter.Roles) != 0 {
		tx = tx.Where("role IN ?", filter.Roles)
	}
	if filter.Search != "" {
		searchValue := "%" + strings.ToLower(filter.Search) + "%"
		tx = tx.Where("LOWER(first_name || ' ' || last_name) like ? or email like ? or LOWER(institution) like ?",
			searchValue, searchValue, searchValue)
	}
	err = tx.Count(&rowCount).Error
	if err != nil {
		return nil, 0, err
	}
	list = []dbmodels.User{}
	page, limit := GetPage(filter.Page, filter.Limit)
	err = tx.
		Order("created_at ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

func (i impl) ListByScope(role models.UserRole, department, subdepartment string) (list []dbmodels.User, err error) {
	list = []dbmodels.User{}
	err = i.db.Model(dbmodels.User{}).
		Where("role = ?", role).
		Where("department = ?", department).
		Where("subdepartment = ?", subdepartment).
		Where("is_active = ?", true).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ClearExpiredResetCodes(now time.Time) (int64, error) {
	tx := i.db.
		Model(&dbmodels.User{}).
		Where("reset_code <> ''").
		Where("reset_code_until < ?", now).
		Updates(map[string]interface{}{
			"reset_code":       "",
			"reset_code_until": nil,
		})
	return tx.RowsAffected, tx.Error
}

func GetPage(pageValue, limitValue int) (page, limit int) {
	page = 1
	limit = 20
	if pageValue > 0 {
		page = pageValue
	}
	if limitValue > 0 {
		limit = limitValue
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
