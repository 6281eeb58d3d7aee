package applicationapimodels

import (
	"attachment-portal-backend/models"
	dbmodels "attachment-portal-backend/models/db"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const DateLayout = "2006-01-02"

// SubmitRequest is the parsed multipart submission.
type SubmitRequest struct {
	NationalIDNumber       string
	StartDate              time.Time
	EndDate                time.Time
	PreferredDepartment    string
	PreferredSubdepartment string
	Documents              map[models.DocumentType]UploadedDocument
}

type UploadedDocument struct {
	FileName    string
	ContentType string
	Body        []byte
}

func (r SubmitRequest) Validate() error {
	if strings.TrimSpace(r.NationalIDNumber) == "" {
		return errors.New("national ID number is required")
	}
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return errors.New("start and end dates are required")
	}
	if !r.StartDate.Before(r.EndDate) {
		return errors.New("start date must be before end date")
	}
	if r.PreferredDepartment == "" {
		return errors.New("preferred department is required")
	}
	if r.PreferredSubdepartment == "" {
		return errors.New("preferred subdepartment is required")
	}
	return nil
}

// MissingDocuments lists the documents the role requires that were not uploaded.
func (r SubmitRequest) MissingDocuments(role models.UserRole) []models.DocumentType {
	missing := []models.DocumentType{}
	for _, docType := range models.RequiredDocuments(role) {
		doc, ok := r.Documents[docType]
		if !ok || len(doc.Body) == 0 {
			missing = append(missing, docType)
		}
	}
	return missing
}

// ParseDate accepts a calendar date or an RFC 3339 timestamp.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	date, err := time.Parse(DateLayout, value)
	if err == nil {
		return date, nil
	}
	date, err = time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, errors.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return date, nil
}

type ReviewRequest struct {
	Action   models.ReviewAction `json:"action"`   // approve/reject
	Comments string              `json:"comments"` // required reviewer comment
}

func (r ReviewRequest) Validate() error {
	if err := r.Action.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.Comments) == "" {
		return errors.New("comments are required")
	}
	return nil
}

// ListFilter carries the query of the application list and export endpoints.
type ListFilter struct {
	Status        string `query:"status"`        // pending/hr_review/hod_review/approved/rejected, "awaiting_hr" for both HR states
	Department    string `query:"department"`    // department code
	Subdepartment string `query:"subdepartment"` // subdepartment code
	Role          string `query:"role"`          // intern/attachee
	Search        string `query:"search"`        // applicant name, email, institution or department
	StartDate     string `query:"startDate"`     // applications starting on or after, YYYY-MM-DD
	EndDate       string `query:"endDate"`       // applications ending on or before, YYYY-MM-DD
	SortBy        string `query:"sortBy"`        // name/department/status/startDate/createdAt
	SortOrder     string `query:"sortOrder"`     // asc/desc
}

const AwaitingHRFilter = "awaiting_hr"

// ToStoreFilter validates the query and converts it to the store filter.
func (f ListFilter) ToStoreFilter() (dbmodels.ApplicationFilter, error) {
	result := dbmodels.ApplicationFilter{
		Department:    strings.ToUpper(strings.TrimSpace(f.Department)),
		Subdepartment: strings.ToUpper(strings.TrimSpace(f.Subdepartment)),
		Search:        strings.TrimSpace(f.Search),
	}
	switch f.Status {
	case "":
	case AwaitingHRFilter:
		result.Statuses = models.AwaitingHRStatuses
	default:
		status, err := models.ParseApplicationStatus(f.Status)
		if err != nil {
			return result, err
		}
		if status.IsAwaitingHR() {
			result.Statuses = models.AwaitingHRStatuses
		} else {
			result.Statuses = []models.ApplicationStatus{status}
		}
	}
	if f.Role != "" {
		role, err := models.ParseUserRole(f.Role)
		if err != nil {
			return result, err
		}
		if !role.IsApplicant() {
			return result, errors.Errorf("role filter must be an applicant role, got %v", f.Role)
		}
		result.Role = role
	}
	if f.StartDate != "" {
		date, err := ParseDate(f.StartDate)
		if err != nil {
			return result, err
		}
		result.StartDate = &date
	}
	if f.EndDate != "" {
		date, err := ParseDate(f.EndDate)
		if err != nil {
			return result, err
		}
		result.EndDate = &date
	}
	if f.SortBy != "" {
		sortBy := dbmodels.ApplicationSortField(f.SortBy)
		if !sortBy.IsValid() {
			return result, errors.Errorf("unknown sort field: %v", f.SortBy)
		}
		result.SortBy = sortBy
	}
	switch strings.ToLower(f.SortOrder) {
	case "", "asc":
	case "desc":
		result.SortDesc = true
	default:
		return result, errors.Errorf("sort order must be asc or desc, got %v", f.SortOrder)
	}
	return result, nil
}

type ApplicantView struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Institution string `json:"institution"`
	Course      string `json:"course"`
	YearOfStudy int    `json:"yearOfStudy"`
}

type ReviewerView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type DocumentView struct {
	Type         models.DocumentType `json:"type"`
	Title        string              `json:"title"`
	FileName     string              `json:"fileName"` // object name for GET /documents/:filename
	OriginalName string              `json:"originalName"`
	Size         int64               `json:"size"`
}

type ApplicationView struct {
	ID                         string                   `json:"id"`
	Applicant                  *ApplicantView           `json:"applicant,omitempty"`
	ApplicantRole              models.UserRole          `json:"applicantRole"`
	NationalIDNumber           string                   `json:"nationalIdNumber"`
	StartDate                  time.Time                `json:"startDate"`
	EndDate                    time.Time                `json:"endDate"`
	PreferredDepartment        string                   `json:"preferredDepartment"`
	PreferredDepartmentName    string                   `json:"preferredDepartmentName"`
	PreferredSubdepartment     string                   `json:"preferredSubdepartment"`
	PreferredSubdepartmentName string                   `json:"preferredSubdepartmentName"`
	Status                     models.ApplicationStatus `json:"status"`
	StatusName                 string                   `json:"statusName"`
	Documents                  []DocumentView           `json:"documents"`
	HRReviewer                 *ReviewerView            `json:"hrReviewer,omitempty"`
	HRComments                 string                   `json:"hrComments,omitempty"`
	HRReviewDate               *time.Time               `json:"hrReviewDate,omitempty"`
	HODReviewer                *ReviewerView            `json:"hodReviewer,omitempty"`
	HODComments                string                   `json:"hodComments,omitempty"`
	HODReviewDate              *time.Time               `json:"hodReviewDate,omitempty"`
	CreatedAt                  time.Time                `json:"createdAt"`
	UpdatedAt                  time.Time                `json:"updatedAt"`
}

func ApplicationConvert(rec dbmodels.Application) ApplicationView {
	result := ApplicationView{
		ID:                     rec.ID,
		ApplicantRole:          rec.ApplicantRole,
		NationalIDNumber:       rec.NationalIDNumber,
		StartDate:              rec.StartDate,
		EndDate:                rec.EndDate,
		PreferredDepartment:    rec.PreferredDepartment,
		PreferredSubdepartment: rec.PreferredSubdepartment,
		Status:                 rec.Status,
		StatusName:             rec.Status.ToHuman(),
		Documents:              make([]DocumentView, 0, len(rec.Documents)),
		HRReviewer:             reviewerConvert(rec.HRReviewer),
		HRComments:             rec.HRComments,
		HRReviewDate:           rec.HRReviewDate,
		HODReviewer:            reviewerConvert(rec.HODReviewer),
		HODComments:            rec.HODComments,
		HODReviewDate:          rec.HODReviewDate,
		CreatedAt:              rec.CreatedAt,
		UpdatedAt:              rec.UpdatedAt,
	}
	if rec.Applicant != nil {
		result.Applicant = &ApplicantView{
			ID:          rec.Applicant.ID,
			FirstName:   rec.Applicant.FirstName,
			LastName:    rec.Applicant.LastName,
			Email:       rec.Applicant.Email,
			PhoneNumber: rec.Applicant.PhoneNumber,
			Institution: rec.Applicant.Institution,
			Course:      rec.Applicant.Course,
			YearOfStudy: rec.Applicant.YearOfStudy,
		}
	}
	for _, doc := range rec.Documents {
		result.Documents = append(result.Documents, DocumentView{
			Type:         doc.DocumentType,
			Title:        doc.DocumentType.ToHuman(),
			FileName:     doc.Name,
			OriginalName: doc.OriginalName,
			Size:         doc.Size,
		})
	}
	return result
}

func reviewerConvert(rec *dbmodels.User) *ReviewerView {
	if rec == nil {
		return nil
	}
	return &ReviewerView{
		ID:   rec.ID,
		Name: rec.GetFullName(),
	}
}

type HistoryView struct {
	ID         string                   `json:"id"`
	ActorID    string                   `json:"actorId"`
	ActorName  string                   `json:"actorName"`
	ActorRole  models.UserRole          `json:"actorRole"`
	FromStatus models.ApplicationStatus `json:"fromStatus"`
	ToStatus   models.ApplicationStatus `json:"toStatus"`
	Comment    string                   `json:"comment"`
	Changes    dbmodels.EntityChanges   `json:"changes"`
	CreatedAt  time.Time                `json:"createdAt"`
}

func HistoryConvert(rec dbmodels.ApplicationHistory) HistoryView {
	result := HistoryView{
		ID:         rec.ID,
		ActorID:    rec.ActorID,
		ActorName:  models.SystemUser,
		ActorRole:  rec.ActorRole,
		FromStatus: rec.FromStatus,
		ToStatus:   rec.ToStatus,
		Comment:    rec.Comment,
		Changes:    rec.Changes,
		CreatedAt:  rec.CreatedAt,
	}
	if rec.Actor != nil {
		result.ActorName = rec.Actor.GetFullName()
	}
	return result
}

// DocumentContent is a stored document ready to be streamed.
type DocumentContent struct {
	OriginalName string
	ContentType  string
	Body         []byte
}

// ExportFile is a rendered export.
type ExportFile struct {
	FileName    string
	ContentType string
	Body        []byte
}
