package dbmodels

import "attachment-portal-backend/models"

// ApplicationHistory is one audit record per state change of an application.
type ApplicationHistory struct {
	BaseModel
	ApplicationID string                   `gorm:"type:varchar(36);index"`
	Application   *Application             `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE" json:"-"`
	ActorID       string                   `gorm:"type:varchar(36)"`
	Actor         *User                    `gorm:"foreignKey:ActorID"`
	ActorRole     models.UserRole          `gorm:"type:varchar(50)"`
	FromStatus    models.ApplicationStatus `gorm:"type:varchar(30)"`
	ToStatus      models.ApplicationStatus `gorm:"type:varchar(30)"`
	Comment       string
	Changes       EntityChanges `gorm:"type:jsonb"`
}
