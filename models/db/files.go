package dbmodels

import "attachment-portal-backend/models"

type FileStorage struct {
	BaseModel
	OwnerID       string              `gorm:"type:varchar(36);index"`
	ApplicationID *string             `gorm:"type:varchar(36);index"`
	DocumentType  models.DocumentType `gorm:"type:varchar(50)"`
	Name          string              `gorm:"type:varchar(255);uniqueIndex"`
	OriginalName  string              `gorm:"type:varchar(255)"`
	ContentType   string              `gorm:"type:varchar(100)"`
	Size          int64
}

type UploadFileInfo struct {
	OwnerID      string
	DocumentType models.DocumentType
	FileName     string
	ContentType  string
	Body         []byte
}
