package applicationhandler

import (
	"attachment-portal-backend/config"
	applicationstore "attachment-portal-backend/lib/application/store"
	departmentprovider "attachment-portal-backend/lib/dicts/department"
	xlsexport "attachment-portal-backend/lib/export/xls"
	"attachment-portal-backend/models"
	applicationapimodels "attachment-portal-backend/models/api/application"
	dbmodels "attachment-portal-backend/models/db"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var baseTime = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

// memDB backs every fake store so preloaded relations stay consistent.
type memDB struct {
	users            map[string]*dbmodels.User
	apps             map[string]*dbmodels.Application
	order            []string
	files            []dbmodels.FileStorage
	history          []dbmodels.ApplicationHistory
	seq              int
	beforeTransition func()
}

func newMemDB() *memDB {
	return &memDB{
		users: map[string]*dbmodels.User{},
		apps:  map[string]*dbmodels.Application{},
	}
}

func (m *memDB) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *memDB) addUser(id string, role models.UserRole, dept, subdept string) dbmodels.User {
	rec := dbmodels.User{
		Email:         id + "@portal.test",
		Role:          role,
		Department:    dept,
		Subdepartment: subdept,
		FirstName:     strings.ToUpper(id[:1]) + id[1:],
		LastName:      "Test",
		IsActive:      true,
	}
	rec.ID = id
	m.users[id] = &rec
	return rec
}

func (m *memDB) hydrate(rec dbmodels.Application) dbmodels.Application {
	if user, ok := m.users[rec.ApplicantID]; ok {
		copied := *user
		rec.Applicant = &copied
	}
	if rec.HRReviewerID != nil {
		rec.HRReviewer = m.users[*rec.HRReviewerID]
	}
	if rec.HODReviewerID != nil {
		rec.HODReviewer = m.users[*rec.HODReviewerID]
	}
	rec.Documents = nil
	for _, file := range m.files {
		if file.ApplicationID != nil && *file.ApplicationID == rec.ID {
			rec.Documents = append(rec.Documents, file)
		}
	}
	return rec
}

type fakeApplicationStore struct {
	db *memDB
}

func (f fakeApplicationStore) Create(rec dbmodels.Application) (string, error) {
	for _, app := range f.db.apps {
		if app.ApplicantID == rec.ApplicantID && app.Status.IsInFlight() {
			return "", applicationstore.ErrInFlightExists
		}
	}
	rec.ID = f.db.nextID("app")
	rec.CreatedAt = baseTime.Add(time.Duration(f.db.seq) * time.Minute)
	rec.UpdatedAt = rec.CreatedAt
	f.db.apps[rec.ID] = &rec
	f.db.order = append(f.db.order, rec.ID)
	return rec.ID, nil
}

func (f fakeApplicationStore) GetByID(id string) (*dbmodels.Application, error) {
	app, ok := f.db.apps[id]
	if !ok {
		return nil, nil
	}
	rec := f.db.hydrate(*app)
	return &rec, nil
}

func (f fakeApplicationStore) ExistInFlight(applicantID string) (bool, error) {
	for _, app := range f.db.apps {
		if app.ApplicantID == applicantID && app.Status.IsInFlight() {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeApplicationStore) List(filter dbmodels.ApplicationFilter) ([]dbmodels.Application, error) {
	result := []dbmodels.Application{}
	for _, id := range f.db.order {
		app := f.db.apps[id]
		if filter.ApplicantID != "" && app.ApplicantID != filter.ApplicantID {
			continue
		}
		if filter.Department != "" && app.PreferredDepartment != filter.Department {
			continue
		}
		if filter.Subdepartment != "" && app.PreferredSubdepartment != filter.Subdepartment {
			continue
		}
		if filter.Role != "" && app.ApplicantRole != filter.Role {
			continue
		}
		if len(filter.Statuses) != 0 && !containsStatus(filter.Statuses, app.Status) {
			continue
		}
		result = append(result, f.db.hydrate(*app))
	}
	return result, nil
}

func (f fakeApplicationStore) Transition(id string, expected []models.ApplicationStatus, updMap map[string]interface{}) (bool, error) {
	if f.db.beforeTransition != nil {
		hook := f.db.beforeTransition
		f.db.beforeTransition = nil
		hook()
	}
	app, ok := f.db.apps[id]
	if !ok || !containsStatus(expected, app.Status) {
		return false, nil
	}
	for key, value := range updMap {
		switch key {
		case "status":
			app.Status = value.(models.ApplicationStatus)
		case "hr_reviewer_id":
			reviewerID := value.(string)
			app.HRReviewerID = &reviewerID
		case "hr_comments":
			app.HRComments = value.(string)
		case "hr_review_date":
			date := value.(time.Time)
			app.HRReviewDate = &date
		case "hod_reviewer_id":
			reviewerID := value.(string)
			app.HODReviewerID = &reviewerID
		case "hod_comments":
			app.HODComments = value.(string)
		case "hod_review_date":
			date := value.(time.Time)
			app.HODReviewDate = &date
		default:
			return false, errors.Errorf("unexpected column %v", key)
		}
	}
	return true, nil
}

func containsStatus(list []models.ApplicationStatus, status models.ApplicationStatus) bool {
	for _, item := range list {
		if item == status {
			return true
		}
	}
	return false
}

type fakeFilesStore struct {
	db *memDB
}

func (f fakeFilesStore) SaveFile(rec dbmodels.FileStorage) (string, error) {
	rec.ID = f.db.nextID("file")
	f.db.files = append(f.db.files, rec)
	return rec.ID, nil
}

func (f fakeFilesStore) GetByName(name string) (*dbmodels.FileStorage, error) {
	for _, file := range f.db.files {
		if file.Name == name {
			rec := file
			return &rec, nil
		}
	}
	return nil, nil
}

func (f fakeFilesStore) ListByApplication(applicationID string) ([]dbmodels.FileStorage, error) {
	result := []dbmodels.FileStorage{}
	for _, file := range f.db.files {
		if file.ApplicationID != nil && *file.ApplicationID == applicationID {
			result = append(result, file)
		}
	}
	return result, nil
}

type fakeHistoryStore struct {
	db *memDB
}

func (f fakeHistoryStore) Create(rec dbmodels.ApplicationHistory) error {
	rec.ID = f.db.nextID("history")
	f.db.history = append(f.db.history, rec)
	return nil
}

func (f fakeHistoryStore) List(applicationID string) ([]dbmodels.ApplicationHistory, error) {
	result := []dbmodels.ApplicationHistory{}
	for _, rec := range f.db.history {
		if rec.ApplicationID == applicationID {
			if actor, ok := f.db.users[rec.ActorID]; ok {
				rec.Actor = actor
			}
			result = append(result, rec)
		}
	}
	return result, nil
}

type fakeUsersStore struct {
	db *memDB
}

func (f fakeUsersStore) Create(rec dbmodels.User) (string, error) {
	rec.ID = f.db.nextID("user")
	f.db.users[rec.ID] = &rec
	return rec.ID, nil
}

func (f fakeUsersStore) Update(userID string, updMap map[string]interface{}) error {
	return errors.New("not used")
}

func (f fakeUsersStore) Delete(userID string) error {
	delete(f.db.users, userID)
	return nil
}

func (f fakeUsersStore) GetByID(userID string) (*dbmodels.User, error) {
	if user, ok := f.db.users[userID]; ok {
		rec := *user
		return &rec, nil
	}
	return nil, nil
}

func (f fakeUsersStore) FindByEmail(email string) (*dbmodels.User, error) {
	for _, user := range f.db.users {
		if user.Email == email {
			rec := *user
			return &rec, nil
		}
	}
	return nil, nil
}

func (f fakeUsersStore) ExistByEmail(email string) (bool, error) {
	rec, err := f.FindByEmail(email)
	return rec != nil, err
}

func (f fakeUsersStore) GetByResetCode(code string) (*dbmodels.User, error) {
	return nil, nil
}

func (f fakeUsersStore) List(filter dbmodels.UserFilter) ([]dbmodels.User, int64, error) {
	return nil, 0, nil
}

func (f fakeUsersStore) ListByScope(role models.UserRole, department, subdepartment string) ([]dbmodels.User, error) {
	result := []dbmodels.User{}
	for _, user := range f.db.users {
		if user.Role == role && user.Department == department && user.Subdepartment == subdepartment && user.IsActive {
			result = append(result, *user)
		}
	}
	return result, nil
}

func (f fakeUsersStore) ClearExpiredResetCodes(now time.Time) (int64, error) {
	return 0, nil
}

type fakeFileStorage struct {
	objects     map[string][]byte
	removed     []string
	failOnCount int
	uploads     int
}

func newFakeFileStorage() *fakeFileStorage {
	return &fakeFileStorage{objects: map[string][]byte{}}
}

func (f *fakeFileStorage) UploadFile(_ context.Context, info dbmodels.UploadFileInfo) (string, error) {
	f.uploads++
	if f.failOnCount != 0 && f.uploads == f.failOnCount {
		return "", errors.New("s3 unavailable")
	}
	name := fmt.Sprintf("%s-%d-%s", info.OwnerID, f.uploads, info.FileName)
	f.objects[name] = info.Body
	return name, nil
}

func (f *fakeFileStorage) GetFile(_ context.Context, objectName string) ([]byte, error) {
	body, ok := f.objects[objectName]
	if !ok {
		return nil, errors.New("object not found")
	}
	return body, nil
}

func (f *fakeFileStorage) RemoveFile(_ context.Context, objectName string) error {
	delete(f.objects, objectName)
	f.removed = append(f.removed, objectName)
	return nil
}

func (f *fakeFileStorage) MakeBucket(_ context.Context) error {
	return nil
}

type fakeNotifier struct {
	submitted   []string
	hrDecisions []models.ApplicationStatus
	hodInbox    []string
	final       []models.ApplicationStatus
}

func (f *fakeNotifier) ApplicationSubmitted(app dbmodels.Application) {
	f.submitted = append(f.submitted, app.ID)
}

func (f *fakeNotifier) HRDecision(app dbmodels.Application) {
	f.hrDecisions = append(f.hrDecisions, app.Status)
}

func (f *fakeNotifier) HODInbox(app dbmodels.Application, hods []dbmodels.User) {
	for _, hod := range hods {
		f.hodInbox = append(f.hodInbox, hod.ID)
	}
}

func (f *fakeNotifier) FinalDecision(app dbmodels.Application) {
	f.final = append(f.final, app.Status)
}

func (f *fakeNotifier) ResetPassword(user dbmodels.User, code string) {}

type testEnv struct {
	db       *memDB
	storage  *fakeFileStorage
	notifier *fakeNotifier
	handler  impl
}

func newTestEnv() *testEnv {
	conf := &config.Configuration{}
	conf.Documents.MaxSizeMb = 5
	conf.Documents.AllowedExtensions = []string{".pdf", ".jpg", ".png"}
	config.Conf = conf

	xlsexport.NewHandler()

	db := newMemDB()
	env := &testEnv{
		db:       db,
		storage:  newFakeFileStorage(),
		notifier: &fakeNotifier{},
	}
	stores := applicationstore.Stores{
		Applications: fakeApplicationStore{db: db},
		Files:        fakeFilesStore{db: db},
		History:      fakeHistoryStore{db: db},
	}
	env.handler = impl{
		applicationStore: stores.Applications,
		historyStore:     stores.History,
		filesStore:       stores.Files,
		usersStore:       fakeUsersStore{db: db},
		tx: func(fn func(stores applicationstore.Stores) error) error {
			return fn(stores)
		},
		fileStorage: env.storage,
		catalog:     departmentprovider.NewInstance(),
		notifier:    env.notifier,
		xls:         xlsexport.Instance,
		now: func() time.Time {
			return baseTime.Add(48 * time.Hour)
		},
	}
	return env
}

func submitRequest(role models.UserRole, dept, subdept string) applicationapimodels.SubmitRequest {
	docs := map[models.DocumentType]applicationapimodels.UploadedDocument{}
	for _, docType := range models.RequiredDocuments(role) {
		docs[docType] = applicationapimodels.UploadedDocument{
			FileName:    string(docType) + ".pdf",
			ContentType: "application/pdf",
			Body:        []byte("%PDF-1.4 " + string(docType)),
		}
	}
	return applicationapimodels.SubmitRequest{
		NationalIDNumber:       "12345678",
		StartDate:              time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		EndDate:                time.Date(2025, 3, 28, 0, 0, 0, 0, time.UTC),
		PreferredDepartment:    dept,
		PreferredSubdepartment: subdept,
		Documents:              docs,
	}
}
