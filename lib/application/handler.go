package applicationhandler

import (
	"attachment-portal-backend/db"
	"attachment-portal-backend/lib/application/access"
	applicationstore "attachment-portal-backend/lib/application/store"
	historystore "attachment-portal-backend/lib/application-history/store"
	departmentprovider "attachment-portal-backend/lib/dicts/department"
	pdfexport "attachment-portal-backend/lib/export/pdf"
	xlsexport "attachment-portal-backend/lib/export/xls"
	filestorage "attachment-portal-backend/lib/file-storage"
	filesdbstorage "attachment-portal-backend/lib/file-storage/storage"
	"attachment-portal-backend/lib/notification"
	usersstore "attachment-portal-backend/lib/users/store"
	apperrors "attachment-portal-backend/lib/utils/app-errors"
	initchecker "attachment-portal-backend/lib/utils/init-checker"
	"attachment-portal-backend/models"
	applicationapimodels "attachment-portal-backend/models/api/application"
	dbmodels "attachment-portal-backend/models/db"
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Submit(ctx context.Context, applicantID string, req applicationapimodels.SubmitRequest) (applicationapimodels.ApplicationView, error)
	MyApplications(applicantID string) ([]applicationapimodels.ApplicationView, error)
	Get(userID, id string) (applicationapimodels.ApplicationView, error)
	List(userID string, filter applicationapimodels.ListFilter) ([]applicationapimodels.ApplicationView, error)
	History(userID, id string) ([]applicationapimodels.HistoryView, error)
	Export(userID string, filter applicationapimodels.ListFilter, format string) (applicationapimodels.ExportFile, error)
	GetDocument(ctx context.Context, userID, fileName string) (applicationapimodels.DocumentContent, error)
	HRReview(reviewerID, id string, req applicationapimodels.ReviewRequest) (applicationapimodels.ApplicationView, error)
	HODReview(reviewerID, id string, req applicationapimodels.ReviewRequest) (applicationapimodels.ApplicationView, error)
}

var Instance Provider

func NewHandler() {
	initchecker.CheckInit(
		"filestorage", filestorage.Instance,
		"departmentprovider", departmentprovider.Instance,
		"notification", notification.Instance,
		"xlsexport", xlsexport.Instance,
	)
	Instance = impl{
		applicationStore: applicationstore.NewInstance(db.DB),
		historyStore:     historystore.NewInstance(db.DB),
		filesStore:       filesdbstorage.NewInstance(db.DB),
		usersStore:       usersstore.NewInstance(db.DB),
		tx:               applicationstore.NewTx(db.DB),
		fileStorage:      filestorage.Instance,
		catalog:          departmentprovider.Instance,
		notifier:         notification.Instance,
		xls:              xlsexport.Instance,
		now:              time.Now,
	}
}

type impl struct {
	applicationStore applicationstore.Provider
	historyStore     historystore.Provider
	filesStore       filesdbstorage.Provider
	usersStore       usersstore.Provider
	tx               applicationstore.TxFunc
	fileStorage      filestorage.Provider
	catalog          departmentprovider.Provider
	notifier         notification.Provider
	xls              xlsexport.Provider
	now              func() time.Time
}

const (
	ExportFormatXLSX = "xlsx"
	ExportFormatPDF  = "pdf"
)

func (i impl) getLogger(userID, applicationID string) *log.Entry {
	logger := log.WithField("user_id", userID)
	if applicationID != "" {
		logger = logger.WithField("application_id", applicationID)
	}
	return logger
}

func (i impl) Submit(ctx context.Context, applicantID string, req applicationapimodels.SubmitRequest) (applicationapimodels.ApplicationView, error) {
	applicant, err := i.getActor(applicantID)
	if err != nil {
		return applicationapimodels.ApplicationView{}, err
	}
	if !applicant.Role.IsApplicant() {
		return applicationapimodels.ApplicationView{}, apperrors.Forbidden("only interns and attachees can submit applications")
	}
	logger := i.getLogger(applicantID, "")

	inFlight, err := i.applicationStore.ExistInFlight(applicantID)
	if err != nil {
		return applicationapimodels.ApplicationView{}, errors.Wrap(err, "in-flight application check failed")
	}
	if inFlight {
		return applicationapimodels.ApplicationView{}, apperrors.Conflict("you already have an application in progress")
	}

	req.PreferredDepartment = strings.ToUpper(strings.TrimSpace(req.PreferredDepartment))
	req.PreferredSubdepartment = strings.ToUpper(strings.TrimSpace(req.PreferredSubdepartment))
	if err = req.Validate(); err != nil {
		return applicationapimodels.ApplicationView{}, apperrors.Validation(err.Error())
	}
	missing := req.MissingDocuments(applicant.Role)
	if len(missing) != 0 {
		names := make([]string, 0, len(missing))
		for _, docType := range missing {
			names = append(names, fmt.Sprintf("%s (%s)", docType.ToHuman(), docType))
		}
		return applicationapimodels.ApplicationView{}, apperrors.Validation("missing required documents: %s", strings.Join(names, ", "))
	}
	if !i.catalog.Validate(req.PreferredDepartment, req.PreferredSubdepartment) {
		return applicationapimodels.ApplicationView{}, apperrors.Validation("subdepartment %s is not valid for department %s",
			req.PreferredSubdepartment, req.PreferredDepartment)
	}
	requiredDocs := models.RequiredDocuments(applicant.Role)
	for _, docType := range requiredDocs {
		doc := req.Documents[docType]
		if err = filestorage.ValidateUpload(doc.FileName, int64(len(doc.Body))); err != nil {
			return applicationapimodels.ApplicationView{}, apperrors.Validation(err.Error())
		}
	}

	files := make([]dbmodels.FileStorage, 0, len(requiredDocs))
	for _, docType := range requiredDocs {
		doc := req.Documents[docType]
		objectName, err := i.fileStorage.UploadFile(ctx, dbmodels.UploadFileInfo{
			OwnerID:      applicantID,
			DocumentType: docType,
			FileName:     doc.FileName,
			ContentType:  doc.ContentType,
			Body:         doc.Body,
		})
		if err != nil {
			i.removeObjects(ctx, files, logger)
			return applicationapimodels.ApplicationView{}, errors.Wrapf(err, "document %v upload failed", docType)
		}
		files = append(files, dbmodels.FileStorage{
			OwnerID:      applicantID,
			DocumentType: docType,
			Name:         objectName,
			OriginalName: doc.FileName,
			ContentType:  doc.ContentType,
			Size:         int64(len(doc.Body)),
		})
	}

	rec := dbmodels.Application{
		ApplicantID:            applicantID,
		ApplicantRole:          applicant.Role,
		NationalIDNumber:       strings.TrimSpace(req.NationalIDNumber),
		StartDate:              req.StartDate,
		EndDate:                req.EndDate,
		PreferredDepartment:    req.PreferredDepartment,
		PreferredSubdepartment: req.PreferredSubdepartment,
		Status:                 models.AppStatusPending,
	}
	var id string
	err = i.tx(func(stores applicationstore.Stores) error {
		var txErr error
		id, txErr = stores.Applications.Create(rec)
		if txErr != nil {
			return txErr
		}
		for _, file := range files {
			file.ApplicationID = &id
			if _, txErr = stores.Files.SaveFile(file); txErr != nil {
				return errors.Wrap(txErr, "document metadata save failed")
			}
		}
		return stores.History.Create(dbmodels.ApplicationHistory{
			ApplicationID: id,
			ActorID:       applicantID,
			ActorRole:     applicant.Role,
			ToStatus:      models.AppStatusPending,
			Comment:       "application submitted",
		})
	})
	if err != nil {
		i.removeObjects(ctx, files, logger)
		if errors.Is(err, applicationstore.ErrInFlightExists) {
			return applicationapimodels.ApplicationView{}, apperrors.Conflict("you already have an application in progress")
		}
		return applicationapimodels.ApplicationView{}, errors.Wrap(err, "application create failed")
	}
	logger.WithField("application_id", id).Info("application submitted")

	created, err := i.getApplication(id)
	if err != nil {
		return applicationapimodels.ApplicationView{}, err
	}
	i.notifier.ApplicationSubmitted(*created)
	return i.convert(*created), nil
}

// removeObjects deletes uploaded objects of a submission that was not stored.
func (i impl) removeObjects(ctx context.Context, files []dbmodels.FileStorage, logger *log.Entry) {
	for _, file := range files {
		if err := i.fileStorage.RemoveFile(ctx, file.Name); err != nil {
			logger.WithError(err).WithField("object", file.Name).Warn("uploaded document cleanup failed")
		}
	}
}

func (i impl) MyApplications(applicantID string) ([]applicationapimodels.ApplicationView, error) {
	applicant, err := i.getActor(applicantID)
	if err != nil {
		return nil, err
	}
	if !applicant.Role.IsApplicant() {
		return nil, apperrors.Forbidden("only interns and attachees have own applications")
	}
	list, err := i.applicationStore.List(dbmodels.ApplicationFilter{
		ApplicantID: applicantID,
		SortBy:      dbmodels.SortByCreatedAt,
		SortDesc:    true,
	})
	if err != nil {
		return nil, err
	}
	return i.convertList(list), nil
}

func (i impl) Get(userID, id string) (applicationapimodels.ApplicationView, error) {
	_, rec, err := i.getVisible(userID, id)
	if err != nil {
		return applicationapimodels.ApplicationView{}, err
	}
	return i.convert(*rec), nil
}

func (i impl) List(userID string, filter applicationapimodels.ListFilter) ([]applicationapimodels.ApplicationView, error) {
	list, err := i.scopedList(userID, filter)
	if err != nil {
		return nil, err
	}
	return i.convertList(list), nil
}

func (i impl) History(userID, id string) ([]applicationapimodels.HistoryView, error) {
	scope, _, err := i.getVisible(userID, id)
	if err != nil {
		return nil, err
	}
	if !scope.IsStaff() {
		return nil, apperrors.Forbidden("review history is available to reviewers only")
	}
	list, err := i.historyStore.List(id)
	if err != nil {
		return nil, err
	}
	result := make([]applicationapimodels.HistoryView, 0, len(list))
	for _, rec := range list {
		result = append(result, applicationapimodels.HistoryConvert(rec))
	}
	return result, nil
}

func (i impl) Export(userID string, filter applicationapimodels.ListFilter, format string) (applicationapimodels.ExportFile, error) {
	list, err := i.scopedList(userID, filter)
	if err != nil {
		return applicationapimodels.ExportFile{}, err
	}
	views := i.convertList(list)
	now := i.now()
	baseName := fmt.Sprintf("applications_%s", now.Format("20060102_1504"))
	switch strings.ToLower(format) {
	case "", ExportFormatXLSX:
		buf, err := i.xls.ExportApplicationList(views)
		if err != nil {
			return applicationapimodels.ExportFile{}, err
		}
		return applicationapimodels.ExportFile{
			FileName:    baseName + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Body:        buf.Bytes(),
		}, nil
	case ExportFormatPDF:
		body, err := pdfexport.GenerateApplicationList("Internship and attachment applications", views, now)
		if err != nil {
			return applicationapimodels.ExportFile{}, err
		}
		return applicationapimodels.ExportFile{
			FileName:    baseName + ".pdf",
			ContentType: "application/pdf",
			Body:        body,
		}, nil
	}
	return applicationapimodels.ExportFile{}, apperrors.Validation("export format must be xlsx or pdf, got %s", format)
}

func (i impl) GetDocument(ctx context.Context, userID, fileName string) (applicationapimodels.DocumentContent, error) {
	meta, err := i.filesStore.GetByName(fileName)
	if err != nil {
		return applicationapimodels.DocumentContent{}, err
	}
	if meta == nil || meta.ApplicationID == nil {
		return applicationapimodels.DocumentContent{}, apperrors.NotFound("document not found")
	}
	if _, _, err = i.getVisible(userID, *meta.ApplicationID); err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return applicationapimodels.DocumentContent{}, apperrors.NotFound("document not found")
		}
		return applicationapimodels.DocumentContent{}, err
	}
	body, err := i.fileStorage.GetFile(ctx, meta.Name)
	if err != nil {
		if errors.Is(err, filestorage.ErrObjectNotFound) {
			return applicationapimodels.DocumentContent{}, apperrors.NotFound("document not found")
		}
		return applicationapimodels.DocumentContent{}, err
	}
	contentType := meta.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return applicationapimodels.DocumentContent{
		OriginalName: meta.OriginalName,
		ContentType:  contentType,
		Body:         body,
	}, nil
}

func (i impl) scopedList(userID string, filter applicationapimodels.ListFilter) ([]dbmodels.Application, error) {
	user, err := i.getActor(userID)
	if err != nil {
		return nil, err
	}
	scope, err := access.ScopeFor(*user)
	if err != nil {
		return nil, err
	}
	if !scope.IsStaff() {
		return nil, apperrors.Forbidden("application list is available to reviewers only")
	}
	storeFilter, err := filter.ToStoreFilter()
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	return i.applicationStore.List(scope.Restrict(storeFilter))
}

func (i impl) getVisible(userID, id string) (access.Scope, *dbmodels.Application, error) {
	user, err := i.getActor(userID)
	if err != nil {
		return access.Scope{}, nil, err
	}
	scope, err := access.ScopeFor(*user)
	if err != nil {
		return access.Scope{}, nil, err
	}
	rec, err := i.getApplication(id)
	if err != nil {
		return access.Scope{}, nil, err
	}
	if !scope.CanView(*rec) {
		return access.Scope{}, nil, apperrors.Forbidden("application is outside of your scope")
	}
	return scope, rec, nil
}

// getActor loads the requesting user. Tokens of deleted or deactivated
// accounts are rejected.
func (i impl) getActor(userID string) (*dbmodels.User, error) {
	user, err := i.usersStore.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, apperrors.Unauthenticated("account not found or deactivated")
	}
	return user, nil
}

func (i impl) getApplication(id string) (*dbmodels.Application, error) {
	rec, err := i.applicationStore.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperrors.NotFound("application not found")
	}
	return rec, nil
}

func (i impl) convert(rec dbmodels.Application) applicationapimodels.ApplicationView {
	sort.SliceStable(rec.Documents, func(a, b int) bool {
		return rec.Documents[a].DocumentType < rec.Documents[b].DocumentType
	})
	view := applicationapimodels.ApplicationConvert(rec)
	view.PreferredDepartmentName = i.catalog.DepartmentName(rec.PreferredDepartment)
	view.PreferredSubdepartmentName = i.catalog.SubdepartmentName(rec.PreferredDepartment, rec.PreferredSubdepartment)
	return view
}

func (i impl) convertList(list []dbmodels.Application) []applicationapimodels.ApplicationView {
	result := make([]applicationapimodels.ApplicationView, 0, len(list))
	for _, rec := range list {
		result = append(result, i.convert(rec))
	}
	return result
}
