// Package testhelpers provides an in-memory stand-in for the remote
// reporting API, used by transport and lifecycle tests.
package testhelpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/sautiwatch/ireporter-core/models"
)

// APIServer serves the /auth and /reports surface against an in-memory map.
// Delay and FailAll let tests force timeouts and server errors; LastAuth and
// LastImageCount record what the most recent request carried.
type APIServer struct {
	Server *httptest.Server

	mu      sync.Mutex
	reports map[string]models.Report
	nextID  int

	Delay           time.Duration
	FailAll         bool
	LastAuth        string
	LastContentType string
	LastImageCount  int
}

// NewAPIServer starts the fake API. Callers own Close.
func NewAPIServer() *APIServer {
	s := &APIServer{reports: map[string]models.Report{}}

	r := mux.NewRouter()
	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	r.HandleFunc("/auth/signup", s.login).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", s.login).Methods(http.MethodPost)
	r.HandleFunc("/auth/logout", s.ok).Methods(http.MethodPost)
	r.HandleFunc("/auth/make-admin", s.ok).Methods(http.MethodPost)
	r.HandleFunc("/auth/me", s.me).Methods(http.MethodGet)
	r.HandleFunc("/reports", s.listReports).Methods(http.MethodGet)
	r.HandleFunc("/reports", s.createReport).Methods(http.MethodPost)
	r.HandleFunc("/reports/{id}", s.getReport).Methods(http.MethodGet)
	r.HandleFunc("/reports/{id}", s.updateReport).Methods(http.MethodPut)
	r.HandleFunc("/reports/{id}", s.deleteReport).Methods(http.MethodDelete)
	r.HandleFunc("/reports/{id}/status", s.setStatus).Methods(http.MethodPost)

	s.Server = httptest.NewServer(s.wrap(r))
	return s
}

// URL returns the base URL clients should point at
func (s *APIServer) URL() string {
	return s.Server.URL
}

// Close shuts the fake API down
func (s *APIServer) Close() {
	s.Server.Close()
}

// Seed loads reports into the store
func (s *APIServer) Seed(reports ...models.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range reports {
		s.reports[r.ID] = r
	}
}

// wrap records the auth header and applies Delay/FailAll before routing
func (s *APIServer) wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.LastAuth = r.Header.Get("Authorization")
		delay, failAll := s.Delay, s.FailAll
		s.mu.Unlock()

		if delay > 0 {
			time.Sleep(delay)
		}
		if failAll {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "something went wrong"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *APIServer) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"alive": true})
}

func (s *APIServer) ok(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
}

func (s *APIServer) login(w http.ResponseWriter, r *http.Request) {
	var body map[string]string
	_ = json.NewDecoder(r.Body).Decode(&body)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": "test-token",
		"user":  models.User{ID: "u-1", Email: body["email"], Name: body["name"]},
	})
}

func (s *APIServer) me(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user": models.User{ID: "u-1", Email: "citizen@example.com"},
	})
}

func (s *APIServer) listReports(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")

	s.mu.Lock()
	out := make([]models.Report, 0, len(s.reports))
	for _, rep := range s.reports {
		if userID == "" || rep.UserID == userID {
			out = append(out, rep)
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]interface{}{"reports": out})
}

func (s *APIServer) createReport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "expected multipart form data"})
		return
	}

	var location *models.Location
	if raw := r.FormValue("location"); raw != "" {
		location = &models.Location{}
		if err := json.Unmarshal([]byte(raw), location); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "malformed location"})
			return
		}
	}

	s.mu.Lock()
	s.nextID++
	id := fmt.Sprintf("r-%d", s.nextID)
	s.LastContentType = r.Header.Get("Content-Type")
	s.LastImageCount = len(r.MultipartForm.File["images"])
	images := make([]string, 0, s.LastImageCount)
	for i := 0; i < s.LastImageCount; i++ {
		images = append(images, fmt.Sprintf("https://media.example.com/%s/%d", id, i))
	}
	report := models.Report{
		ID:          id,
		UserID:      "u-1",
		Type:        models.ReportType(r.FormValue("type")),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Location:    location,
		Status:      models.StatusDraft,
		Images:      images,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	s.reports[id] = report
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]interface{}{"report": report})
}

func (s *APIServer) getReport(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	report, ok := s.reports[id]
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "report not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"report": report})
}

func (s *APIServer) updateReport(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var input models.ReportInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "malformed body"})
		return
	}

	s.mu.Lock()
	report, ok := s.reports[id]
	if ok {
		report.Title = input.Title
		report.Description = input.Description
		report.Type = input.Type
		report.Location = input.Location
		report.UpdatedAt = time.Now().UTC()
		s.reports[id] = report
	}
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "report not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"report": report})
}

func (s *APIServer) deleteReport(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	_, ok := s.reports[id]
	delete(s.reports, id)
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "report not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "report deleted"})
}

func (s *APIServer) setStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var body struct {
		Status models.ReportStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || !models.ValidStatus(body.Status) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "unknown status"})
		return
	}

	s.mu.Lock()
	report, ok := s.reports[id]
	if ok {
		report.Status = body.Status
		report.UpdatedAt = time.Now().UTC()
		s.reports[id] = report
	}
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "report not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"report": report})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
