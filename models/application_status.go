package models

import "github.com/pkg/errors"

type ApplicationStatus string

const (
	// AppStatusPending is the state every submission starts in. Together with
	// AppStatusHRReview it forms the HR inbox.
	AppStatusPending ApplicationStatus = "pending"
	// AppStatusHRReview is kept for records written by earlier releases, no
	// transition produces it.
	AppStatusHRReview  ApplicationStatus = "hr_review"
	AppStatusHODReview ApplicationStatus = "hod_review"
	AppStatusApproved  ApplicationStatus = "approved"
	AppStatusRejected  ApplicationStatus = "rejected"
)

var AllApplicationStatuses = []ApplicationStatus{
	AppStatusPending,
	AppStatusHRReview,
	AppStatusHODReview,
	AppStatusApproved,
	AppStatusRejected,
}

// AwaitingHRStatuses are the pre-states of an HR decision.
var AwaitingHRStatuses = []ApplicationStatus{AppStatusPending, AppStatusHRReview}

// AwaitingHODStatuses are the pre-states of an HOD decision.
var AwaitingHODStatuses = []ApplicationStatus{AppStatusHODReview}

var InFlightStatuses = []ApplicationStatus{AppStatusPending, AppStatusHRReview, AppStatusHODReview}

var appStatusHumanName = map[ApplicationStatus]string{
	AppStatusPending:   "Awaiting HR review",
	AppStatusHRReview:  "Awaiting HR review",
	AppStatusHODReview: "Awaiting HOD review",
	AppStatusApproved:  "Approved",
	AppStatusRejected:  "Rejected",
}

func ParseApplicationStatus(value string) (ApplicationStatus, error) {
	status := ApplicationStatus(value)
	if _, ok := appStatusHumanName[status]; !ok {
		return "", errors.Errorf("unknown application status: %v", value)
	}
	return status, nil
}

func (s ApplicationStatus) ToHuman() string {
	if human, exist := appStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s ApplicationStatus) IsTerminal() bool {
	return s == AppStatusApproved || s == AppStatusRejected
}

func (s ApplicationStatus) IsInFlight() bool {
	return s == AppStatusPending || s == AppStatusHRReview || s == AppStatusHODReview
}

func (s ApplicationStatus) IsAwaitingHR() bool {
	return s == AppStatusPending || s == AppStatusHRReview
}

type ReviewAction string

const (
	ReviewActionApprove ReviewAction = "approve"
	ReviewActionReject  ReviewAction = "reject"
)

func (a ReviewAction) Validate() error {
	switch a {
	case ReviewActionApprove, ReviewActionReject:
		return nil
	}
	return errors.Errorf("action must be one of approve, reject, got %q", string(a))
}

// HRTarget returns the status an HR decision moves an application to.
func (a ReviewAction) HRTarget() ApplicationStatus {
	if a == ReviewActionApprove {
		return AppStatusHODReview
	}
	return AppStatusRejected
}

// HODTarget returns the status an HOD decision moves an application to.
func (a ReviewAction) HODTarget() ApplicationStatus {
	if a == ReviewActionApprove {
		return AppStatusApproved
	}
	return AppStatusRejected
}
