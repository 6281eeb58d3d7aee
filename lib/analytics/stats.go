package analytics

import (
	"attachment-portal-backend/models"
	analyticsapimodels "attachment-portal-backend/models/api/analytics"
	dbmodels "attachment-portal-backend/models/db"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	timelineMonths = 6
	recentLimit    = 5
)

// ComputeStats aggregates an already scoped application list. departmentName
// resolves display names of department codes.
func ComputeStats(list []dbmodels.Application, now time.Time, departmentName func(code string) string) analyticsapimodels.StatsView {
	result := analyticsapimodels.StatsView{
		TotalApplications: len(list),
		StatusCounts:      map[string]int{},
		RoleCounts:        map[string]int{},
	}
	for _, status := range models.AllApplicationStatuses {
		result.StatusCounts[string(status)] = 0
	}
	for _, role := range models.AllRoles {
		if role.IsApplicant() {
			result.RoleCounts[string(role)] = 0
		}
	}

	departments := map[string]int{}
	institutions := map[string]int{}
	institutionNames := map[string]string{}
	for _, app := range list {
		result.StatusCounts[string(app.Status)]++
		result.RoleCounts[string(app.ApplicantRole)]++
		departments[app.PreferredDepartment]++
		if app.Applicant != nil && strings.TrimSpace(app.Applicant.Institution) != "" {
			name := strings.TrimSpace(app.Applicant.Institution)
			key := strings.ToLower(name)
			institutions[key]++
			if _, ok := institutionNames[key]; !ok {
				institutionNames[key] = name
			}
		}
	}

	result.DepartmentCounts = make([]analyticsapimodels.CountItem, 0, len(departments))
	for code, count := range departments {
		result.DepartmentCounts = append(result.DepartmentCounts, analyticsapimodels.CountItem{
			Code:  code,
			Name:  departmentName(code),
			Count: count,
		})
	}
	sortCounts(result.DepartmentCounts)

	result.InstitutionCounts = make([]analyticsapimodels.CountItem, 0, len(institutions))
	for key, count := range institutions {
		result.InstitutionCounts = append(result.InstitutionCounts, analyticsapimodels.CountItem{
			Code:  institutionNames[key],
			Name:  institutionNames[key],
			Count: count,
		})
	}
	sortCounts(result.InstitutionCounts)

	result.Timeline = timeline(list, now)
	result.RecentApplications = recent(list)
	result.ApprovalRate = ApprovalRate(result.StatusCounts[string(models.AppStatusApproved)], result.StatusCounts[string(models.AppStatusRejected)])
	return result
}

// ApprovalRate formats approved/(approved+rejected) in percent with one decimal.
func ApprovalRate(approved, rejected int) json.Number {
	decided := approved + rejected
	if decided == 0 {
		return json.Number("0")
	}
	return json.Number(fmt.Sprintf("%.1f", float64(approved)/float64(decided)*100))
}

func sortCounts(items []analyticsapimodels.CountItem) {
	sort.SliceStable(items, func(a, b int) bool {
		if items[a].Count != items[b].Count {
			return items[a].Count > items[b].Count
		}
		return items[a].Name < items[b].Name
	})
}

// timeline covers the current month and the five before it, oldest first.
func timeline(list []dbmodels.Application, now time.Time) []analyticsapimodels.TimelineItem {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	result := make([]analyticsapimodels.TimelineItem, 0, timelineMonths)
	index := map[string]int{}
	for offset := timelineMonths - 1; offset >= 0; offset-- {
		month := firstOfMonth.AddDate(0, -offset, 0)
		key := month.Format("2006-01")
		index[key] = len(result)
		result = append(result, analyticsapimodels.TimelineItem{
			Month: key,
			Label: month.Format("Jan 2006"),
		})
	}
	for _, app := range list {
		idx, ok := index[app.CreatedAt.In(now.Location()).Format("2006-01")]
		if !ok {
			continue
		}
		result[idx].Total++
		switch app.Status {
		case models.AppStatusApproved:
			result[idx].Approved++
		case models.AppStatusRejected:
			result[idx].Rejected++
		case models.AppStatusPending, models.AppStatusHRReview, models.AppStatusHODReview:
		}
	}
	return result
}

func recent(list []dbmodels.Application) []analyticsapimodels.RecentItem {
	sorted := make([]dbmodels.Application, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].CreatedAt.After(sorted[b].CreatedAt)
	})
	if len(sorted) > recentLimit {
		sorted = sorted[:recentLimit]
	}
	result := make([]analyticsapimodels.RecentItem, 0, len(sorted))
	for _, app := range sorted {
		result = append(result, analyticsapimodels.RecentItem{
			ID:                     app.ID,
			ApplicantName:          app.GetApplicantName(),
			ApplicantRole:          app.ApplicantRole,
			PreferredDepartment:    app.PreferredDepartment,
			PreferredSubdepartment: app.PreferredSubdepartment,
			Status:                 app.Status,
			CreatedAt:              app.CreatedAt,
		})
	}
	return result
}
