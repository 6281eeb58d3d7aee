package applicationhandler

import (
	applicationstore "attachment-portal-backend/lib/application/store"
	apperrors "attachment-portal-backend/lib/utils/app-errors"
	"attachment-portal-backend/models"
	applicationapimodels "attachment-portal-backend/models/api/application"
	dbmodels "attachment-portal-backend/models/db"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func review(action models.ReviewAction, comments string) applicationapimodels.ReviewRequest {
	return applicationapimodels.ReviewRequest{Action: action, Comments: comments}
}

func TestEndToEndReview(t *testing.T) {
	env := newTestEnv()
	env.db.addUser("intern", models.InternRole, "", "")
	hr := env.db.addUser("hr", models.HRRole, "", dbmodels.NoSubdepartment)
	env.db.addUser("hod", models.HODRole, "SDPA", "ICT")
	ctx := context.Background()

	app, err := env.handler.Submit(ctx, "intern", submitRequest(models.InternRole, "SDPA", "ICT"))
	require.NoError(t, err)
	require.Equal(t, models.AppStatusPending, app.Status)
	require.Len(t, app.Documents, 11)
	require.Equal(t, "Information Communication Technology", app.PreferredSubdepartmentName)
	require.Equal(t, []string{app.ID}, env.notifier.submitted)

	forwarded, err := env.handler.HRReview("hr", app.ID, review(models.ReviewActionApprove, "looks good"))
	require.NoError(t, err)
	require.Equal(t, models.AppStatusHODReview, forwarded.Status)
	require.Equal(t, "looks good", forwarded.HRComments)
	require.NotNil(t, forwarded.HRReviewer)
	require.Equal(t, hr.ID, forwarded.HRReviewer.ID)
	require.NotNil(t, forwarded.HRReviewDate)
	require.Equal(t, []string{"hod"}, env.notifier.hodInbox)

	decided, err := env.handler.HODReview("hod", app.ID, review(models.ReviewActionReject, "insufficient experience"))
	require.NoError(t, err)
	require.Equal(t, models.AppStatusRejected, decided.Status)
	require.Equal(t, "insufficient experience", decided.HODComments)
	require.Equal(t, []models.ApplicationStatus{models.AppStatusRejected}, env.notifier.final)

	_, err = env.handler.HODReview("hod", app.ID, review(models.ReviewActionApprove, "changed my mind"))
	require.True(t, apperrors.Is(err, apperrors.KindConflict))
	_, err = env.handler.HRReview("hr", app.ID, review(models.ReviewActionApprove, "again"))
	require.True(t, apperrors.Is(err, apperrors.KindConflict))

	history, err := env.handler.History("hr", app.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	require.Equal(t, models.AppStatusHODReview, history[1].ToStatus)
	require.Equal(t, models.AppStatusRejected, history[2].ToStatus)

	// a rejected applicant may apply again
	_, err = env.handler.Submit(ctx, "intern", submitRequest(models.InternRole, "OPCS", dbmodels.NoSubdepartment))
	require.NoError(t, err)
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run(`second in-flight application conflicts`, func(t *testing.T) {
		env := newTestEnv()
		env.db.addUser("attachee", models.AttacheeRole, "", "")
		_, err := env.handler.Submit(ctx, "attachee", submitRequest(models.AttacheeRole, "SDPS", "ICT"))
		require.NoError(t, err)
		_, err = env.handler.Submit(ctx, "attachee", submitRequest(models.AttacheeRole, "SDPS", "HRM"))
		require.True(t, apperrors.Is(err, apperrors.KindConflict))
		require.Len(t, env.db.apps, 1)
	})

	t.Run(`missing documents are named`, func(t *testing.T) {
		env := newTestEnv()
		env.db.addUser("intern", models.InternRole, "", "")
		req := submitRequest(models.InternRole, "SDPA", "ICT")
		delete(req.Documents, models.DocKRAPin)
		delete(req.Documents, models.DocPassportPhoto)
		_, err := env.handler.Submit(ctx, "intern", req)
		require.True(t, apperrors.Is(err, apperrors.KindValidation))
		message := apperrors.Message(err)
		require.True(t, strings.Contains(message, "kraPin"))
		require.True(t, strings.Contains(message, "passportPhoto"))
		require.Empty(t, env.storage.objects)
	})

	t.Run(`invalid subdepartment`, func(t *testing.T) {
		env := newTestEnv()
		env.db.addUser("intern", models.InternRole, "", "")
		_, err := env.handler.Submit(ctx, "intern", submitRequest(models.InternRole, "SDPA", "BOGUS"))
		require.True(t, apperrors.Is(err, apperrors.KindValidation))
	})

	t.Run(`start must precede end`, func(t *testing.T) {
		env := newTestEnv()
		env.db.addUser("intern", models.InternRole, "", "")
		req := submitRequest(models.InternRole, "SDPA", "ICT")
		req.StartDate, req.EndDate = req.EndDate, req.StartDate
		_, err := env.handler.Submit(ctx, "intern", req)
		require.True(t, apperrors.Is(err, apperrors.KindValidation))
	})

	t.Run(`unsupported extension`, func(t *testing.T) {
		env := newTestEnv()
		env.db.addUser("intern", models.InternRole, "", "")
		req := submitRequest(models.InternRole, "SDPA", "ICT")
		doc := req.Documents[models.DocCV]
		doc.FileName = "cv.exe"
		req.Documents[models.DocCV] = doc
		_, err := env.handler.Submit(ctx, "intern", req)
		require.True(t, apperrors.Is(err, apperrors.KindValidation))
	})

	t.Run(`staff cannot submit`, func(t *testing.T) {
		env := newTestEnv()
		env.db.addUser("hr", models.HRRole, "", "")
		_, err := env.handler.Submit(ctx, "hr", submitRequest(models.InternRole, "SDPA", "ICT"))
		require.True(t, apperrors.Is(err, apperrors.KindForbidden))
	})

	t.Run(`deactivated account is rejected`, func(t *testing.T) {
		env := newTestEnv()
		env.db.addUser("intern", models.InternRole, "", "")
		env.db.users["intern"].IsActive = false
		_, err := env.handler.Submit(ctx, "intern", submitRequest(models.InternRole, "SDPA", "ICT"))
		require.True(t, apperrors.Is(err, apperrors.KindUnauthenticated))
	})

	t.Run(`failed upload removes stored objects`, func(t *testing.T) {
		env := newTestEnv()
		env.db.addUser("intern", models.InternRole, "", "")
		env.storage.failOnCount = 4
		_, err := env.handler.Submit(ctx, "intern", submitRequest(models.InternRole, "SDPA", "ICT"))
		require.Error(t, err)
		require.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
		require.Len(t, env.storage.removed, 3)
		require.Empty(t, env.storage.objects)
		require.Empty(t, env.db.apps)
	})
}

func TestHRReview(t *testing.T) {
	ctx := context.Background()
	setup := func(t *testing.T) (*testEnv, string) {
		env := newTestEnv()
		env.db.addUser("intern", models.InternRole, "", "")
		env.db.addUser("hr", models.HRRole, "", "")
		env.db.addUser("hod", models.HODRole, "SDPA", "ICT")
		app, err := env.handler.Submit(ctx, "intern", submitRequest(models.InternRole, "SDPA", "ICT"))
		require.NoError(t, err)
		return env, app.ID
	}

	t.Run(`reject is terminal`, func(t *testing.T) {
		env, id := setup(t)
		app, err := env.handler.HRReview("hr", id, review(models.ReviewActionReject, "incomplete transcripts"))
		require.NoError(t, err)
		require.Equal(t, models.AppStatusRejected, app.Status)
		require.Empty(t, env.notifier.hodInbox)
		require.Equal(t, []models.ApplicationStatus{models.AppStatusRejected}, env.notifier.hrDecisions)
		_, err = env.handler.HRReview("hr", id, review(models.ReviewActionApprove, "retry"))
		require.True(t, apperrors.Is(err, apperrors.KindConflict))
	})

	t.Run(`repeat review without comments is a conflict`, func(t *testing.T) {
		env, id := setup(t)
		_, err := env.handler.HRReview("hr", id, review(models.ReviewActionReject, "incomplete transcripts"))
		require.NoError(t, err)
		_, err = env.handler.HRReview("hr", id, review(models.ReviewActionApprove, ""))
		require.True(t, apperrors.Is(err, apperrors.KindConflict))
	})

	t.Run(`comments are required`, func(t *testing.T) {
		env, id := setup(t)
		_, err := env.handler.HRReview("hr", id, review(models.ReviewActionApprove, "   "))
		require.True(t, apperrors.Is(err, apperrors.KindValidation))
		require.Equal(t, models.AppStatusPending, env.db.apps[id].Status)
	})

	t.Run(`unknown action`, func(t *testing.T) {
		env, id := setup(t)
		_, err := env.handler.HRReview("hr", id, review("forward", "ok"))
		require.True(t, apperrors.Is(err, apperrors.KindValidation))
	})

	t.Run(`unknown application`, func(t *testing.T) {
		env, _ := setup(t)
		_, err := env.handler.HRReview("hr", "missing", review(models.ReviewActionApprove, "ok"))
		require.True(t, apperrors.Is(err, apperrors.KindNotFound))
	})

	t.Run(`only hr reviews`, func(t *testing.T) {
		env, id := setup(t)
		_, err := env.handler.HRReview("hod", id, review(models.ReviewActionApprove, "ok"))
		require.True(t, apperrors.Is(err, apperrors.KindForbidden))
	})

	t.Run(`legacy hr_review status is accepted`, func(t *testing.T) {
		env, id := setup(t)
		env.db.apps[id].Status = models.AppStatusHRReview
		app, err := env.handler.HRReview("hr", id, review(models.ReviewActionApprove, "ok"))
		require.NoError(t, err)
		require.Equal(t, models.AppStatusHODReview, app.Status)
	})

	t.Run(`concurrent decision loses with conflict`, func(t *testing.T) {
		env, id := setup(t)
		env.db.beforeTransition = func() {
			env.db.apps[id].Status = models.AppStatusRejected
		}
		_, err := env.handler.HRReview("hr", id, review(models.ReviewActionApprove, "ok"))
		require.True(t, apperrors.Is(err, apperrors.KindConflict))
		require.Nil(t, env.db.apps[id].HRReviewerID)
		require.Empty(t, env.notifier.hrDecisions)
	})
}

func TestHODReview(t *testing.T) {
	ctx := context.Background()
	setup := func(t *testing.T) (*testEnv, string) {
		env := newTestEnv()
		env.db.addUser("intern", models.InternRole, "", "")
		env.db.addUser("hr", models.HRRole, "", "")
		env.db.addUser("hod", models.HODRole, "SDPA", "ICT")
		env.db.addUser("hod-finance", models.HODRole, "SDPA", "FINANCE")
		app, err := env.handler.Submit(ctx, "intern", submitRequest(models.InternRole, "SDPA", "ICT"))
		require.NoError(t, err)
		return env, app.ID
	}

	t.Run(`foreign hod is forbidden without state change`, func(t *testing.T) {
		env, id := setup(t)
		_, err := env.handler.HRReview("hr", id, review(models.ReviewActionApprove, "ok"))
		require.NoError(t, err)
		_, err = env.handler.HODReview("hod-finance", id, review(models.ReviewActionApprove, "ok"))
		require.True(t, apperrors.Is(err, apperrors.KindForbidden))
		require.Equal(t, models.AppStatusHODReview, env.db.apps[id].Status)
		require.Nil(t, env.db.apps[id].HODReviewerID)
	})

	t.Run(`foreign hod is forbidden regardless of status`, func(t *testing.T) {
		env, id := setup(t)
		_, err := env.handler.HODReview("hod-finance", id, review(models.ReviewActionApprove, "ok"))
		require.True(t, apperrors.Is(err, apperrors.KindForbidden))
	})

	t.Run(`pending application is not ready for hod`, func(t *testing.T) {
		env, id := setup(t)
		_, err := env.handler.HODReview("hod", id, review(models.ReviewActionApprove, "ok"))
		require.True(t, apperrors.Is(err, apperrors.KindConflict))
	})

	t.Run(`approve`, func(t *testing.T) {
		env, id := setup(t)
		_, err := env.handler.HRReview("hr", id, review(models.ReviewActionApprove, "ok"))
		require.NoError(t, err)
		app, err := env.handler.HODReview("hod", id, review(models.ReviewActionApprove, "welcome"))
		require.NoError(t, err)
		require.Equal(t, models.AppStatusApproved, app.Status)
		require.Equal(t, "hod", app.HODReviewer.ID)
		require.Equal(t, []models.ApplicationStatus{models.AppStatusApproved}, env.notifier.final)
	})

	t.Run(`decided application without comments is a conflict`, func(t *testing.T) {
		env, id := setup(t)
		_, err := env.handler.HRReview("hr", id, review(models.ReviewActionApprove, "ok"))
		require.NoError(t, err)
		_, err = env.handler.HODReview("hod", id, review(models.ReviewActionReject, "no slots"))
		require.NoError(t, err)
		_, err = env.handler.HODReview("hod", id, review(models.ReviewActionApprove, ""))
		require.True(t, apperrors.Is(err, apperrors.KindConflict))
		require.Equal(t, models.AppStatusRejected, env.db.apps[id].Status)
	})

	t.Run(`only hod decides`, func(t *testing.T) {
		env, id := setup(t)
		_, err := env.handler.HODReview("hr", id, review(models.ReviewActionApprove, "ok"))
		require.True(t, apperrors.Is(err, apperrors.KindForbidden))
	})
}

func TestReadScope(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.db.addUser("intern-a", models.InternRole, "", "")
	env.db.addUser("intern-b", models.InternRole, "", "")
	env.db.addUser("attachee-c", models.AttacheeRole, "", "")
	env.db.addUser("hr", models.HRRole, "", "")
	env.db.addUser("hod", models.HODRole, "SDPA", "ICT")
	env.db.addUser("cos", models.ChiefOfStaffRole, "SDPA", dbmodels.NoSubdepartment)
	env.db.addUser("admin", models.AdminRole, "", dbmodels.NoSubdepartment)

	appA, err := env.handler.Submit(ctx, "intern-a", submitRequest(models.InternRole, "SDPA", "ICT"))
	require.NoError(t, err)
	_, err = env.handler.Submit(ctx, "intern-b", submitRequest(models.InternRole, "SDPA", "FINANCE"))
	require.NoError(t, err)
	_, err = env.handler.Submit(ctx, "attachee-c", submitRequest(models.AttacheeRole, "SDPS", "ICT"))
	require.NoError(t, err)

	t.Run(`hr sees all`, func(t *testing.T) {
		list, err := env.handler.List("hr", applicationapimodels.ListFilter{})
		require.NoError(t, err)
		require.Len(t, list, 3)
	})

	t.Run(`hr filters by role`, func(t *testing.T) {
		list, err := env.handler.List("hr", applicationapimodels.ListFilter{Role: "attachee"})
		require.NoError(t, err)
		require.Len(t, list, 1)
	})

	t.Run(`hod scope ignores requested department`, func(t *testing.T) {
		list, err := env.handler.List("hod", applicationapimodels.ListFilter{Department: "SDPS", Subdepartment: "ICT"})
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, appA.ID, list[0].ID)
	})

	t.Run(`chief of staff sees department`, func(t *testing.T) {
		list, err := env.handler.List("cos", applicationapimodels.ListFilter{})
		require.NoError(t, err)
		require.Len(t, list, 2)
	})

	t.Run(`admin has no application access`, func(t *testing.T) {
		_, err := env.handler.List("admin", applicationapimodels.ListFilter{})
		require.True(t, apperrors.Is(err, apperrors.KindForbidden))
	})

	t.Run(`applicant cannot list`, func(t *testing.T) {
		_, err := env.handler.List("intern-a", applicationapimodels.ListFilter{})
		require.True(t, apperrors.Is(err, apperrors.KindForbidden))
	})

	t.Run(`bad filter`, func(t *testing.T) {
		_, err := env.handler.List("hr", applicationapimodels.ListFilter{SortBy: "salary"})
		require.True(t, apperrors.Is(err, apperrors.KindValidation))
	})

	t.Run(`my applications`, func(t *testing.T) {
		list, err := env.handler.MyApplications("intern-a")
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, appA.ID, list[0].ID)
	})

	t.Run(`detail visibility`, func(t *testing.T) {
		_, err := env.handler.Get("intern-a", appA.ID)
		require.NoError(t, err)
		_, err = env.handler.Get("intern-b", appA.ID)
		require.True(t, apperrors.Is(err, apperrors.KindForbidden))
		_, err = env.handler.Get("hod", appA.ID)
		require.NoError(t, err)
	})

	t.Run(`history is for reviewers`, func(t *testing.T) {
		_, err := env.handler.History("intern-a", appA.ID)
		require.True(t, apperrors.Is(err, apperrors.KindForbidden))
	})

	t.Run(`document download`, func(t *testing.T) {
		fileName := appA.Documents[0].FileName
		doc, err := env.handler.GetDocument(ctx, "intern-a", fileName)
		require.NoError(t, err)
		require.Equal(t, "application/pdf", doc.ContentType)
		require.NotEmpty(t, doc.Body)

		_, err = env.handler.GetDocument(ctx, "intern-b", fileName)
		require.True(t, apperrors.Is(err, apperrors.KindForbidden))

		_, err = env.handler.GetDocument(ctx, "hr", "unknown.pdf")
		require.True(t, apperrors.Is(err, apperrors.KindNotFound))
	})

	t.Run(`export`, func(t *testing.T) {
		file, err := env.handler.Export("cos", applicationapimodels.ListFilter{}, "xlsx")
		require.NoError(t, err)
		require.True(t, strings.HasSuffix(file.FileName, ".xlsx"))
		require.NotEmpty(t, file.Body)

		file, err = env.handler.Export("hr", applicationapimodels.ListFilter{}, "pdf")
		require.NoError(t, err)
		require.Equal(t, "application/pdf", file.ContentType)

		_, err = env.handler.Export("hr", applicationapimodels.ListFilter{}, "csv")
		require.True(t, apperrors.Is(err, apperrors.KindValidation))
	})
}

var _ applicationstore.Provider = fakeApplicationStore{}
