// Package reports owns the in-memory report collection and every mutation
// against it. Mutations are gated on the report's status before the network
// is touched, and local state only changes after the server confirms.
package reports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sautiwatch/ireporter-core/client"
	"github.com/sautiwatch/ireporter-core/models"
)

// MaxMediaFiles is the most media parts a single submission may carry
const MaxMediaFiles = 4

// Notifier is the one-way sink for user-visible notifications. The core
// only produces them; a nil Notifier discards them.
type Notifier interface {
	Notify(n models.Notification)
}

// Service is the report lifecycle controller. It is the single writer of
// the collection it owns; readers get snapshots.
type Service struct {
	client   client.Requester
	notifier Notifier
	validate *validator.Validate

	mu      sync.Mutex
	reports []models.Report
	loading bool
	lastErr string
}

// NewService initializes a lifecycle service over the given transport and
// notification sink
func NewService(c client.Requester, n Notifier) *Service {
	return &Service{
		client:   c,
		notifier: n,
		validate: validator.New(),
	}
}

type reportPayload struct {
	Report models.Report `json:"report"`
}

type reportsPayload struct {
	Reports []models.Report `json:"reports"`
}

// Loading reports whether a call is currently in flight
func (s *Service) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the failure message of the most recent call, empty when it
// succeeded. The field is cleared when the next call starts.
func (s *Service) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Reports returns a snapshot of the local collection, most recent first
func (s *Service) Reports() []models.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Report(nil), s.reports...)
}

// List fetches every report and replaces the local collection with the
// server's view
func (s *Service) List(ctx context.Context) ([]models.Report, error) {
	s.begin()
	env := s.client.Get(ctx, "/reports", true)
	if !env.Success {
		return nil, s.fail("", env.Error, false)
	}
	var payload reportsPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return nil, s.fail("", "unexpected response shape", false)
	}

	s.mu.Lock()
	s.reports = payload.Reports
	snapshot := append([]models.Report(nil), s.reports...)
	s.loading = false
	s.mu.Unlock()
	return snapshot, nil
}

// ListForUser fetches the reports belonging to one user and replaces the
// local collection with them
func (s *Service) ListForUser(ctx context.Context, userID string) ([]models.Report, error) {
	s.begin()
	if userID == "" {
		return nil, s.reject("", models.NewValidationError(models.CodeEmptyID, "user id is required"), false)
	}
	env := s.client.Get(ctx, "/reports?userId="+url.QueryEscape(userID), true)
	if !env.Success {
		return nil, s.fail("", env.Error, false)
	}
	var payload reportsPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return nil, s.fail("", "unexpected response shape", false)
	}

	s.mu.Lock()
	s.reports = payload.Reports
	snapshot := append([]models.Report(nil), s.reports...)
	s.loading = false
	s.mu.Unlock()
	return snapshot, nil
}

// Get fetches a single report without touching the local collection
func (s *Service) Get(ctx context.Context, id string) (*models.Report, error) {
	s.begin()
	if id == "" {
		return nil, s.reject("", models.NewValidationError(models.CodeEmptyID, "report id is required"), false)
	}
	env := s.client.Get(ctx, "/reports/"+id, true)
	if !env.Success {
		return nil, s.fail("", env.Error, false)
	}
	var payload reportPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return nil, s.fail("", "unexpected response shape", false)
	}
	s.finish("")
	return &payload.Report, nil
}

// Create validates the input, submits it as multipart form data together
// with the packaged media parts, and prepends the confirmed report to the
// local collection
func (s *Service) Create(ctx context.Context, input models.ReportInput, parts []models.FormPart) (*models.Report, error) {
	s.begin()
	if err := s.validate.Struct(input); err != nil {
		return nil, s.reject("Submission failed",
			models.NewValidationError(models.CodeInvalidInput, "title, description and a valid type are required"), true)
	}
	if len(parts) > MaxMediaFiles {
		return nil, s.reject("Submission failed",
			models.NewValidationError(models.CodeTooManyMediaFiles,
				fmt.Sprintf("cannot attach more than %d files", MaxMediaFiles)), true)
	}

	fields := map[string]string{
		"title":       input.Title,
		"description": input.Description,
		"type":        string(input.Type),
	}
	if input.Location != nil {
		loc, err := json.Marshal(input.Location)
		if err != nil {
			return nil, s.reject("Submission failed",
				models.NewValidationError(models.CodeInvalidInput, "location could not be encoded"), true)
		}
		fields["location"] = string(loc)
	}

	env := s.client.PostMultipart(ctx, "/reports", fields, parts, true)
	if !env.Success {
		return nil, s.fail("Submission failed", env.Error, true)
	}
	var payload reportPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return nil, s.fail("Submission failed", "unexpected response shape", true)
	}

	// most-recent-first ordering: the confirmed report goes to the front
	s.mu.Lock()
	s.reports = append([]models.Report{payload.Report}, s.reports...)
	s.loading = false
	s.mu.Unlock()

	s.notify("Report submitted", "Your report has been received", models.NotificationSuccess)
	zap.S().Infow("report created", "reportId", payload.Report.ID, "type", payload.Report.Type)
	return &payload.Report, nil
}

// Update replaces the content fields of a draft report. Reports whose
// status has left draft reject the call before any network I/O.
func (s *Service) Update(ctx context.Context, id string, input models.ReportInput) (*models.Report, error) {
	s.begin()
	if id == "" {
		return nil, s.reject("Update failed",
			models.NewValidationError(models.CodeEmptyID, "report id is required"), true)
	}
	if verr := s.guard(id, models.CodeCannotEdit); verr != nil {
		return nil, s.reject("Update failed", verr, true)
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, s.reject("Update failed",
			models.NewValidationError(models.CodeInvalidInput, "title, description and a valid type are required"), true)
	}

	env := s.client.Put(ctx, "/reports/"+id, input, true)
	if !env.Success {
		return nil, s.fail("Update failed", env.Error, true)
	}
	var payload reportPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return nil, s.fail("Update failed", "unexpected response shape", true)
	}

	s.replace(payload.Report)
	s.finish("")
	s.notify("Report updated", "Your changes have been saved", models.NotificationSuccess)
	return &payload.Report, nil
}

// Remove deletes a report that is still a draft and excises it from the
// local collection once the server confirms
func (s *Service) Remove(ctx context.Context, id string) error {
	s.begin()
	if id == "" {
		return s.reject("Delete failed",
			models.NewValidationError(models.CodeEmptyID, "report id is required"), true)
	}
	if verr := s.guard(id, models.CodeCannotDelete); verr != nil {
		return s.reject("Delete failed", verr, true)
	}

	env := s.client.Delete(ctx, "/reports/"+id, true)
	if !env.Success {
		return s.fail("Delete failed", env.Error, true)
	}

	s.mu.Lock()
	for i := range s.reports {
		if s.reports[i].ID == id {
			s.reports = append(s.reports[:i], s.reports[i+1:]...)
			break
		}
	}
	s.loading = false
	s.mu.Unlock()

	s.notify("Report deleted", "The draft has been removed", models.NotificationSuccess)
	return nil
}

// SetStatus performs a pure status change. It is exempt from the content
// mutation guard; the server decides whether the transition is allowed.
func (s *Service) SetStatus(ctx context.Context, id string, status models.ReportStatus) (*models.Report, error) {
	s.begin()
	if id == "" {
		return nil, s.reject("Status change failed",
			models.NewValidationError(models.CodeEmptyID, "report id is required"), true)
	}
	if !models.ValidStatus(status) {
		return nil, s.reject("Status change failed",
			models.NewValidationError(models.CodeInvalidInput, fmt.Sprintf("unknown status %q", status)), true)
	}

	env := s.client.Post(ctx, "/reports/"+id+"/status", map[string]models.ReportStatus{"status": status}, true)
	if !env.Success {
		return nil, s.fail("Status change failed", env.Error, true)
	}
	var payload reportPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return nil, s.fail("Status change failed", "unexpected response shape", true)
	}

	s.replace(payload.Report)
	s.finish("")
	s.notify("Status updated", fmt.Sprintf("Report is now %s", payload.Report.Status), models.NotificationSuccess)
	return &payload.Report, nil
}

// guard enforces the status gate against the locally known copy of the
// report. An id the collection has never seen cannot be checked, so it is
// rejected before the network as well.
func (s *Service) guard(id string, code models.ErrorCode) *models.ValidationError {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reports {
		if s.reports[i].ID != id {
			continue
		}
		if s.reports[i].Editable() {
			return nil
		}
		verb := "edited"
		if code == models.CodeCannotDelete {
			verb = "deleted"
		}
		return models.NewValidationError(code,
			fmt.Sprintf("a report under status %q can no longer be %s", s.reports[i].Status, verb))
	}
	return models.NewValidationError(models.CodeReportNotFound, "report not found")
}

// replace swaps the matching entry in place, preserving its position
func (s *Service) replace(report models.Report) {
	s.mu.Lock()
	for i := range s.reports {
		if s.reports[i].ID == report.ID {
			s.reports[i] = report
			break
		}
	}
	s.mu.Unlock()
}

func (s *Service) begin() {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()
}

func (s *Service) finish(errMsg string) {
	s.mu.Lock()
	s.loading = false
	s.lastErr = errMsg
	s.mu.Unlock()
}

// reject settles a call that failed client-side validation: the transport
// was never touched. Mutating calls also surface the failure as a
// notification; reads only record it.
func (s *Service) reject(title string, verr *models.ValidationError, notifyUser bool) error {
	s.finish(verr.Message)
	if notifyUser {
		s.notify(title, verr.Message, models.NotificationError)
	}
	return verr
}

// fail settles a call whose envelope came back unsuccessful
func (s *Service) fail(title, message string, notifyUser bool) error {
	s.finish(message)
	if notifyUser {
		s.notify(title, message, models.NotificationError)
	}
	zap.S().Warnw("report call failed", "error", message)
	return errors.New(message)
}

func (s *Service) notify(title, description string, variant models.NotificationVariant) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(models.Notification{Title: title, Description: description, Variant: variant})
}
