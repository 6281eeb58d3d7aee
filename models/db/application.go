package dbmodels

import (
	"attachment-portal-backend/models"
	"time"
)

type Application struct {
	BaseModel
	ApplicantID            string                   `gorm:"type:varchar(36);index"`
	Applicant              *User                    `gorm:"foreignKey:ApplicantID;constraint:OnDelete:CASCADE"`
	ApplicantRole          models.UserRole          `gorm:"type:varchar(50);index"`
	NationalIDNumber       string                   `gorm:"type:varchar(30)"`
	StartDate              time.Time                `gorm:"index"`
	EndDate                time.Time                `gorm:"index"`
	PreferredDepartment    string                   `gorm:"type:varchar(50);index:idx_application_scope"`
	PreferredSubdepartment string                   `gorm:"type:varchar(50);index:idx_application_scope"`
	Status                 models.ApplicationStatus `gorm:"type:varchar(30);index"`
	Documents              []FileStorage            `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE"`
	HRReviewerID           *string                  `gorm:"type:varchar(36)"`
	HRReviewer             *User                    `gorm:"foreignKey:HRReviewerID"`
	HRComments             string
	HRReviewDate           *time.Time
	HODReviewerID          *string `gorm:"type:varchar(36)"`
	HODReviewer            *User   `gorm:"foreignKey:HODReviewerID"`
	HODComments            string
	HODReviewDate          *time.Time
}

// GetDocument returns the stored file of the given type, nil when it was not uploaded.
func (a Application) GetDocument(docType models.DocumentType) *FileStorage {
	for idx := range a.Documents {
		if a.Documents[idx].DocumentType == docType {
			return &a.Documents[idx]
		}
	}
	return nil
}

func (a Application) GetApplicantName() string {
	if a.Applicant == nil {
		return ""
	}
	return a.Applicant.GetFullName()
}

// ApplicationFilter is the store level filter. Scope fields are already forced by
// the access filter when it reaches the store.
type ApplicationFilter struct {
	ApplicantID   string
	Statuses      []models.ApplicationStatus
	Department    string
	Subdepartment string
	Role          models.UserRole
	Search        string
	StartDate     *time.Time
	EndDate       *time.Time
	SortBy        ApplicationSortField
	SortDesc      bool
}

type ApplicationSortField string

const (
	SortByName       ApplicationSortField = "name"
	SortByDepartment ApplicationSortField = "department"
	SortByStatus     ApplicationSortField = "status"
	SortByStartDate  ApplicationSortField = "startDate"
	SortByCreatedAt  ApplicationSortField = "createdAt"
)

func (s ApplicationSortField) IsValid() bool {
	switch s {
	case SortByName, SortByDepartment, SortByStatus, SortByStartDate, SortByCreatedAt:
		return true
	}
	return false
}
