package models

import "time"

// ReportType distinguishes a corruption complaint from an intervention request
type ReportType string

// Report types accepted by the API
const (
	ReportTypeRedFlag      ReportType = "red-flag"
	ReportTypeIntervention ReportType = "intervention"
)

// ReportStatus is the server-owned lifecycle state of a report
type ReportStatus string

// Report statuses. A report is created as StatusDraft and only an admin
// status change moves it further.
const (
	StatusDraft              ReportStatus = "draft"
	StatusUnderInvestigation ReportStatus = "under-investigation"
	StatusRejected           ReportStatus = "rejected"
	StatusResolved           ReportStatus = "resolved"
)

// ValidStatus reports whether s is one of the statuses the API understands
func ValidStatus(s ReportStatus) bool {
	switch s {
	case StatusDraft, StatusUnderInvestigation, StatusRejected, StatusResolved:
		return true
	}
	return false
}

// Location is a coordinate pair attached to a report
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Report represents a submitted complaint or intervention request
type Report struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId"`
	Type        ReportType   `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Location    *Location    `json:"location"`
	Status      ReportStatus `json:"status"`
	Images      []string     `json:"images"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Editable reports whether the record may still receive content mutations.
// Once the status leaves draft only a status change is legal.
func (r Report) Editable() bool {
	return r.Status == StatusDraft
}

// ReportInput carries the user-supplied fields of a create or update call.
// Field-level rules live in the validate tags and are checked by the
// lifecycle service before any network call.
type ReportInput struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description" validate:"required"`
	Type        ReportType `json:"type" validate:"required,oneof=red-flag intervention"`
	Location    *Location  `json:"location,omitempty"`
}
