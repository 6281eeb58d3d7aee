package applicationhandler

import (
	"attachment-portal-backend/lib/application/access"
	applicationstore "attachment-portal-backend/lib/application/store"
	apperrors "attachment-portal-backend/lib/utils/app-errors"
	"attachment-portal-backend/models"
	applicationapimodels "attachment-portal-backend/models/api/application"
	dbmodels "attachment-portal-backend/models/db"
	"strings"

	"github.com/pkg/errors"
)

// transition is one review decision applied with compare-and-swap on the status.
type transition struct {
	reviewer dbmodels.User
	app      dbmodels.Application
	expected []models.ApplicationStatus
	target   models.ApplicationStatus
	comments string
	// fields are the reviewer, comment and date columns of the reviewing stage.
	fields reviewFields
}

type reviewFields struct {
	reviewerID string
	comments   string
	reviewDate string
}

var (
	hrFields = reviewFields{
		reviewerID: "hr_reviewer_id",
		comments:   "hr_comments",
		reviewDate: "hr_review_date",
	}
	hodFields = reviewFields{
		reviewerID: "hod_reviewer_id",
		comments:   "hod_comments",
		reviewDate: "hod_review_date",
	}
)

func (i impl) HRReview(reviewerID, id string, req applicationapimodels.ReviewRequest) (applicationapimodels.ApplicationView, error) {
	reviewer, err := i.getActor(reviewerID)
	if err != nil {
		return applicationapimodels.ApplicationView{}, err
	}
	if reviewer.Role != models.HRRole {
		return applicationapimodels.ApplicationView{}, apperrors.Forbidden("only Human Resource can record the HR review")
	}
	app, err := i.getApplication(id)
	if err != nil {
		return applicationapimodels.ApplicationView{}, err
	}
	if !app.Status.IsAwaitingHR() {
		return applicationapimodels.ApplicationView{}, invalidTransition(app.Status)
	}
	if err = req.Validate(); err != nil {
		return applicationapimodels.ApplicationView{}, apperrors.Validation(err.Error())
	}
	updated, err := i.applyTransition(transition{
		reviewer: *reviewer,
		app:      *app,
		expected: models.AwaitingHRStatuses,
		target:   req.Action.HRTarget(),
		comments: strings.TrimSpace(req.Comments),
		fields:   hrFields,
	})
	if err != nil {
		return applicationapimodels.ApplicationView{}, err
	}

	i.notifier.HRDecision(*updated)
	if updated.Status == models.AppStatusHODReview {
		i.notifyHODs(*updated)
	}
	return i.convert(*updated), nil
}

func (i impl) HODReview(reviewerID, id string, req applicationapimodels.ReviewRequest) (applicationapimodels.ApplicationView, error) {
	reviewer, err := i.getActor(reviewerID)
	if err != nil {
		return applicationapimodels.ApplicationView{}, err
	}
	if reviewer.Role != models.HODRole {
		return applicationapimodels.ApplicationView{}, apperrors.Forbidden("only a Head of Department can record the final decision")
	}
	app, err := i.getApplication(id)
	if err != nil {
		return applicationapimodels.ApplicationView{}, err
	}
	// scope is checked before the status
	if !access.InHODScope(reviewer.Department, reviewer.Subdepartment, *app) {
		return applicationapimodels.ApplicationView{}, apperrors.Forbidden("application is routed to %s/%s, outside of your department",
			app.PreferredDepartment, app.PreferredSubdepartment)
	}
	if app.Status != models.AppStatusHODReview {
		return applicationapimodels.ApplicationView{}, invalidTransition(app.Status)
	}
	if err = req.Validate(); err != nil {
		return applicationapimodels.ApplicationView{}, apperrors.Validation(err.Error())
	}
	updated, err := i.applyTransition(transition{
		reviewer: *reviewer,
		app:      *app,
		expected: models.AwaitingHODStatuses,
		target:   req.Action.HODTarget(),
		comments: strings.TrimSpace(req.Comments),
		fields:   hodFields,
	})
	if err != nil {
		return applicationapimodels.ApplicationView{}, err
	}

	i.notifier.FinalDecision(*updated)
	return i.convert(*updated), nil
}

func (i impl) applyTransition(t transition) (*dbmodels.Application, error) {
	logger := i.getLogger(t.reviewer.ID, t.app.ID)
	now := i.now()
	updMap := map[string]interface{}{
		"status":            t.target,
		t.fields.reviewerID: t.reviewer.ID,
		t.fields.comments:   t.comments,
		t.fields.reviewDate: now,
	}
	err := i.tx(func(stores applicationstore.Stores) error {
		changed, txErr := stores.Applications.Transition(t.app.ID, t.expected, updMap)
		if txErr != nil {
			return txErr
		}
		if !changed {
			return invalidTransition("")
		}
		return stores.History.Create(dbmodels.ApplicationHistory{
			ApplicationID: t.app.ID,
			ActorID:       t.reviewer.ID,
			ActorRole:     t.reviewer.Role,
			FromStatus:    t.app.Status,
			ToStatus:      t.target,
			Comment:       t.comments,
			Changes: dbmodels.EntityChanges{
				Description: "review decision",
				Data: []dbmodels.FieldChanges{
					{Field: "status", OldValue: t.app.Status, NewValue: t.target},
					{Field: t.fields.reviewerID, NewValue: t.reviewer.ID},
					{Field: t.fields.comments, NewValue: t.comments},
				},
			},
		})
	})
	if err != nil {
		if apperrors.Is(err, apperrors.KindConflict) {
			logger.Info("review lost the race, application status already changed")
			return nil, err
		}
		return nil, errors.Wrap(err, "application transition failed")
	}
	logger.
		WithField("from", t.app.Status).
		WithField("to", t.target).
		Info("application reviewed")
	return i.getApplication(t.app.ID)
}

func (i impl) notifyHODs(app dbmodels.Application) {
	hods, err := i.usersStore.ListByScope(models.HODRole, app.PreferredDepartment, app.PreferredSubdepartment)
	if err != nil {
		i.getLogger("", app.ID).WithError(err).Error("HOD lookup for inbox notification failed")
		return
	}
	if len(hods) == 0 {
		i.getLogger("", app.ID).Warn("no active HOD for the routed department")
		return
	}
	i.notifier.HODInbox(app, hods)
}

func invalidTransition(current models.ApplicationStatus) error {
	if current == "" {
		return apperrors.Conflict("application status changed, reload and try again")
	}
	return apperrors.Conflict("invalid transition: application is %s", strings.ToLower(current.ToHuman()))
}
