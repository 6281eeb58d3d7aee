package analytics

import (
	"attachment-portal-backend/models"
	dbmodels "attachment-portal-backend/models/db"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func app(id string, status models.ApplicationStatus, role models.UserRole, dept, institution string, createdAt time.Time) dbmodels.Application {
	rec := dbmodels.Application{
		ApplicantRole:       role,
		PreferredDepartment: dept,
		Status:              status,
		Applicant: &dbmodels.User{
			FirstName:   "Applicant",
			LastName:    id,
			Institution: institution,
		},
	}
	rec.ID = id
	rec.CreatedAt = createdAt
	return rec
}

func TestApprovalRate(t *testing.T) {
	require.Equal(t, json.Number("75.0"), ApprovalRate(3, 1))
	require.Equal(t, json.Number("0"), ApprovalRate(0, 0))
	require.Equal(t, json.Number("66.7"), ApprovalRate(2, 1))
	require.Equal(t, json.Number("0.0"), ApprovalRate(0, 4))
}

func TestComputeStats(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	list := []dbmodels.Application{
		app("a1", models.AppStatusApproved, models.InternRole, "SDPA", "University of Nairobi", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)),
		app("a2", models.AppStatusApproved, models.InternRole, "SDPA", "university of nairobi ", time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)),
		app("a3", models.AppStatusApproved, models.AttacheeRole, "SDPS", "Moi University", time.Date(2025, 5, 11, 0, 0, 0, 0, time.UTC)),
		app("a4", models.AppStatusRejected, models.AttacheeRole, "SDPA", "Moi University", time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)),
		app("a5", models.AppStatusPending, models.InternRole, "OPCS", "", time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)),
		app("a6", models.AppStatusHODReview, models.InternRole, "SDPA", "Strathmore University", time.Date(2024, 11, 30, 0, 0, 0, 0, time.UTC)),
	}
	names := map[string]string{"SDPA": "Public Administration"}
	stats := ComputeStats(list, now, func(code string) string {
		if name, ok := names[code]; ok {
			return name
		}
		return code
	})

	require.Equal(t, 6, stats.TotalApplications)
	require.Equal(t, 3, stats.StatusCounts["approved"])
	require.Equal(t, 1, stats.StatusCounts["rejected"])
	require.Equal(t, 0, stats.StatusCounts["hr_review"])
	require.Equal(t, 4, stats.RoleCounts["intern"])
	require.Equal(t, 2, stats.RoleCounts["attachee"])
	require.Equal(t, json.Number("75.0"), stats.ApprovalRate)

	require.Equal(t, "SDPA", stats.DepartmentCounts[0].Code)
	require.Equal(t, "Public Administration", stats.DepartmentCounts[0].Name)
	require.Equal(t, 4, stats.DepartmentCounts[0].Count)

	require.Len(t, stats.InstitutionCounts, 3)
	require.Equal(t, 2, stats.InstitutionCounts[0].Count)
	require.Equal(t, "Moi University", stats.InstitutionCounts[0].Name)
	require.Equal(t, "University of Nairobi", stats.InstitutionCounts[1].Name)

	require.Len(t, stats.Timeline, 6)
	require.Equal(t, "2025-01", stats.Timeline[0].Month)
	require.Equal(t, "2025-06", stats.Timeline[5].Month)
	require.Equal(t, 2, stats.Timeline[5].Total)
	require.Equal(t, 2, stats.Timeline[4].Approved)
	require.Equal(t, 1, stats.Timeline[2].Rejected)

	require.Len(t, stats.RecentApplications, 5)
	require.Equal(t, "a5", stats.RecentApplications[0].ID)
	require.Equal(t, "a1", stats.RecentApplications[1].ID)
	require.Equal(t, "a4", stats.RecentApplications[4].ID)
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil, time.Now(), func(code string) string { return code })
	require.Equal(t, 0, stats.TotalApplications)
	require.Equal(t, json.Number("0"), stats.ApprovalRate)
	require.Len(t, stats.Timeline, 6)
	require.Empty(t, stats.RecentApplications)
	require.Equal(t, 0, stats.StatusCounts["pending"])
}
