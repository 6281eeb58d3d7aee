package applicationstore

import (
	"attachment-portal-backend/models"
	dbmodels "attachment-portal-backend/models/db"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrInFlightExists is returned by Create when the applicant already has an in-flight application.
var ErrInFlightExists = errors.New("applicant already has an application in progress")

type Provider interface {
	Create(rec dbmodels.Application) (id string, err error)
	GetByID(id string) (rec *dbmodels.Application, err error)
	ExistInFlight(applicantID string) (bool, error)
	List(filter dbmodels.ApplicationFilter) (list []dbmodels.Application, err error)
	// Transition applies updMap only while the application is still in one of the
	// expected statuses. changed is false when another request won the race.
	Transition(id string, expected []models.ApplicationStatus, updMap map[string]interface{}) (changed bool, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Application) (id string, err error) {
	err = i.db.
		Omit("Applicant", "HRReviewer", "HODReviewer", "Documents").
		Create(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", ErrInFlightExists
		}
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Application, error) {
	rec := dbmodels.Application{}
	err := i.db.
		Where("id = ?", id).
		Preload(clause.Associations).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) ExistInFlight(applicantID string) (bool, error) {
	var exists bool
	err := i.db.Model(&dbmodels.Application{}).
		Select("count(*) > 0").
		Where("applicant_id = ?", applicantID).
		Where("status IN ?", models.InFlightStatuses).
		Find(&exists).
		Error
	return exists, err
}

func (i impl) List(filter dbmodels.ApplicationFilter) (list []dbmodels.Application, err error) {
	list = []dbmodels.Application{}
	err = listQuery(i.db, filter).
		Preload(clause.Associations).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Transition(id string, expected []models.ApplicationStatus, updMap map[string]interface{}) (bool, error) {
	if len(expected) == 0 {
		return false, errors.New("expected statuses are not set")
	}
	tx := i.db.
		Model(&dbmodels.Application{}).
		Where("id = ?", id).
		Where("status IN ?", expected).
		Updates(updMap)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

// listQuery builds the filtered and ordered application query joined with the applicant.
func listQuery(db *gorm.DB, filter dbmodels.ApplicationFilter) *gorm.DB {
	tx := db.
		Model(&dbmodels.Application{}).
		Joins("JOIN users AS applicant ON applicant.id = applications.applicant_id")
	tx = addFilter(tx, filter)
	for _, order := range orderBy(filter) {
		tx = tx.Order(order)
	}
	return tx
}

func addFilter(tx *gorm.DB, filter dbmodels.ApplicationFilter) *gorm.DB {
	if filter.ApplicantID != "" {
		tx = tx.Where("applications.applicant_id = ?", filter.ApplicantID)
	}
	if len(filter.Statuses) != 0 {
		tx = tx.Where("applications.status IN ?", filter.Statuses)
	}
	if filter.Department != "" {
		tx = tx.Where("applications.preferred_department = ?", filter.Department)
	}
	if filter.Subdepartment != "" {
		tx = tx.Where("applications.preferred_subdepartment = ?", filter.Subdepartment)
	}
	if filter.Role != "" {
		tx = tx.Where("applications.applicant_role = ?", filter.Role)
	}
	if filter.StartDate != nil {
		tx = tx.Where("applications.start_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		tx = tx.Where("applications.end_date <= ?", *filter.EndDate)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		searchValue := searchPattern(search)
		tx = tx.Where(searchCondition, searchValue, searchValue, searchValue, searchValue)
	}
	return tx
}

const searchCondition = `(LOWER(applicant.first_name || ' ' || applicant.last_name) LIKE ? ESCAPE '\'` +
	` OR LOWER(applicant.email) LIKE ? ESCAPE '\'` +
	` OR LOWER(applicant.institution) LIKE ? ESCAPE '\'` +
	` OR LOWER(applications.preferred_department) LIKE ? ESCAPE '\')`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// searchPattern is a lower-cased substring pattern with LIKE wildcards escaped.
func searchPattern(search string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
}

// orderBy always ends with arrival order so equal keys keep a stable order.
func orderBy(filter dbmodels.ApplicationFilter) []string {
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}
	result := []string{}
	switch filter.SortBy {
	case dbmodels.SortByName:
		result = append(result,
			fmt.Sprintf("LOWER(applicant.first_name) %s", direction),
			fmt.Sprintf("LOWER(applicant.last_name) %s", direction))
	case dbmodels.SortByDepartment:
		result = append(result,
			fmt.Sprintf("applications.preferred_department %s", direction),
			fmt.Sprintf("applications.preferred_subdepartment %s", direction))
	case dbmodels.SortByStatus:
		result = append(result, fmt.Sprintf("applications.status %s", direction))
	case dbmodels.SortByStartDate:
		result = append(result, fmt.Sprintf("applications.start_date %s", direction))
	case dbmodels.SortByCreatedAt:
		result = append(result, fmt.Sprintf("applications.created_at %s", direction))
	default:
		result = append(result, "applications.created_at DESC")
	}
	return append(result, "applications.created_at ASC", "applications.id ASC")
}
