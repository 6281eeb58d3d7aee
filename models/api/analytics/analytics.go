package analyticsapimodels

import (
	"attachment-portal-backend/models"
	"encoding/json"
	"time"
)

type CountItem struct {
	Code  string `json:"code"`  // department code or institution name
	Name  string `json:"name"`  // display name
	Count int    `json:"count"` // applications
}

type TimelineItem struct {
	Month    string `json:"month"`    // YYYY-MM
	Label    string `json:"label"`    // "Jan 2025"
	Total    int    `json:"total"`    // applications submitted in the month
	Approved int    `json:"approved"` // of them approved
	Rejected int    `json:"rejected"` // of them rejected
}

type RecentItem struct {
	ID                     string                   `json:"id"`
	ApplicantName          string                   `json:"applicantName"`
	ApplicantRole          models.UserRole          `json:"applicantRole"`
	PreferredDepartment    string                   `json:"preferredDepartment"`
	PreferredSubdepartment string                   `json:"preferredSubdepartment"`
	Status                 models.ApplicationStatus `json:"status"`
	CreatedAt              time.Time                `json:"createdAt"`
}

type StatsView struct {
	TotalApplications  int            `json:"totalApplications"`
	StatusCounts       map[string]int `json:"statusCounts"`
	RoleCounts         map[string]int `json:"roleCounts"`
	DepartmentCounts   []CountItem    `json:"departmentCounts"`
	InstitutionCounts  []CountItem    `json:"institutionCounts"`
	Timeline           []TimelineItem `json:"timeline"`
	RecentApplications []RecentItem   `json:"recentApplications"`
	// ApprovalRate is approved/(approved+rejected) in percent with one decimal, 0 when nothing is decided.
	ApprovalRate json.Number `json:"approvalRate" swaggertype:"number"`
}
