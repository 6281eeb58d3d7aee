package historystore

import (
	dbmodels "attachment-portal-backend/models/db"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.ApplicationHistory) error
	List(applicationID string) (list []dbmodels.ApplicationHistory, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ApplicationHistory) error {
	return i.db.Omit(clause.Associations).Create(&rec).Error
}

func (i impl) List(applicationID string) (list []dbmodels.ApplicationHistory, err error) {
	list = []dbmodels.ApplicationHistory{}
	err = i.db.
		Model(&dbmodels.ApplicationHistory{}).
		Where("application_id = ?", applicationID).
		Preload("Actor").
		Order("created_at ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
