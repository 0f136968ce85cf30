package entities

type EntitlementScope string

const (
	EntitlementScopeNone         EntitlementScope = ""
	EntitlementScopeFullCourse   EntitlementScope = "full_course"
	EntitlementScopeSingleLesson EntitlementScope = "single_lesson"
)

// EnrollmentStatus is the enrollment service's answer for one user/target pair.
type EnrollmentStatus struct {
	IsEnrolled                 bool   `json:"isEnrolled"`
	EnrollmentType             string `json:"enrollmentType"`
	HasAccessToRequestedLesson bool   `json:"hasAccessToRequestedLesson"`
}

// Entitlement is the guard's verdict.
type Entitlement struct {
	Entitled    bool
	Scope       EntitlementScope
	BlockReason string
}
