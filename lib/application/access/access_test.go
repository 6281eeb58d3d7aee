package access

import (
	apperrors "attachment-portal-backend/lib/utils/app-errors"
	"attachment-portal-backend/models"
	dbmodels "attachment-portal-backend/models/db"
	"testing"

	"github.com/stretchr/testify/require"
)

func user(id string, role models.UserRole, dept, subdept string) dbmodels.User {
	rec := dbmodels.User{Role: role, Department: dept, Subdepartment: subdept}
	rec.ID = id
	return rec
}

func application(applicantID, dept, subdept string) dbmodels.Application {
	return dbmodels.Application{
		ApplicantID:            applicantID,
		PreferredDepartment:    dept,
		PreferredSubdepartment: subdept,
	}
}

func TestScopeFor(t *testing.T) {
	t.Run(`admin is forbidden`, func(t *testing.T) {
		_, err := ScopeFor(user("a", models.AdminRole, "", dbmodels.NoSubdepartment))
		require.True(t, apperrors.Is(err, apperrors.KindForbidden))
	})
	t.Run(`unknown role fails`, func(t *testing.T) {
		_, err := ScopeFor(user("o", models.UserRole("officer"), "", ""))
		require.Error(t, err)
		require.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
	})
	t.Run(`hod without department is forbidden`, func(t *testing.T) {
		_, err := ScopeFor(user("h", models.HODRole, "", ""))
		require.True(t, apperrors.Is(err, apperrors.KindForbidden))
	})
	t.Run(`every applicant and staff role resolves`, func(t *testing.T) {
		for _, role := range []models.UserRole{models.InternRole, models.AttacheeRole, models.HRRole, models.HODRole, models.ChiefOfStaffRole, models.PrincipalSecretaryRole} {
			_, err := ScopeFor(user("u", role, "SDPA", "ICT"))
			require.NoError(t, err, role)
		}
	})
}

func TestRestrict(t *testing.T) {
	requested := dbmodels.ApplicationFilter{Department: "SDPS", Subdepartment: "HRM", Search: "jane"}

	t.Run(`hr keeps requested filter`, func(t *testing.T) {
		scope, err := ScopeFor(user("hr", models.HRRole, "", ""))
		require.NoError(t, err)
		require.Equal(t, requested, scope.Restrict(requested))
	})
	t.Run(`hod scope is forced`, func(t *testing.T) {
		scope, err := ScopeFor(user("hod", models.HODRole, "SDPA", "ICT"))
		require.NoError(t, err)
		filter := scope.Restrict(requested)
		require.Equal(t, "SDPA", filter.Department)
		require.Equal(t, "ICT", filter.Subdepartment)
		require.Equal(t, "jane", filter.Search)
	})
	t.Run(`principal secretary forces department only`, func(t *testing.T) {
		scope, err := ScopeFor(user("ps", models.PrincipalSecretaryRole, "SDPA", dbmodels.NoSubdepartment))
		require.NoError(t, err)
		filter := scope.Restrict(requested)
		require.Equal(t, "SDPA", filter.Department)
		require.Equal(t, "HRM", filter.Subdepartment)
	})
	t.Run(`applicant sees own`, func(t *testing.T) {
		scope, err := ScopeFor(user("intern-1", models.InternRole, "", ""))
		require.NoError(t, err)
		require.Equal(t, "intern-1", scope.Restrict(requested).ApplicantID)
	})
}

func TestCanView(t *testing.T) {
	ictApp := application("intern-1", "SDPA", "ICT")

	hod, _ := ScopeFor(user("hod", models.HODRole, "SDPA", "ICT"))
	require.True(t, hod.CanView(ictApp))

	foreignHOD, _ := ScopeFor(user("hod2", models.HODRole, "SDPA", "FINANCE"))
	require.False(t, foreignHOD.CanView(ictApp))

	cos, _ := ScopeFor(user("cos", models.ChiefOfStaffRole, "SDPA", dbmodels.NoSubdepartment))
	require.True(t, cos.CanView(ictApp))
	require.False(t, cos.CanView(application("intern-2", "SDPS", "ICT")))

	owner, _ := ScopeFor(user("intern-1", models.InternRole, "", ""))
	require.True(t, owner.CanView(ictApp))
	require.False(t, owner.IsStaff())

	other, _ := ScopeFor(user("intern-9", models.InternRole, "", ""))
	require.False(t, other.CanView(ictApp))
}

func TestInHODScope(t *testing.T) {
	require.True(t, InHODScope("OPCS", dbmodels.NoSubdepartment, application("x", "OPCS", dbmodels.NoSubdepartment)))
	require.False(t, InHODScope("", "", application("x", "", "")))
}
