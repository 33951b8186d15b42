package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/burakcan/atelier/internal/auth"
	"github.com/burakcan/atelier/internal/validation"
	"github.com/burakcan/atelier/pkg"
)

var jobSchema = validation.Schema{
	validation.String("title").Required("Title is required"),
	validation.String("department").Required("Department is required"),
	validation.String("location").Required("Location is required"),
	validation.String("type").Required("Type is required"),
	validation.String("description").Required("Description is required"),
}

type jobPayload struct {
	Title       string `json:"title"`
	Department  string `json:"department"`
	Location    string `json:"location"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

func (p jobPayload) values() map[string]string {
	return map[string]string{
		"title":       p.Title,
		"department":  p.Department,
		"location":    p.Location,
		"type":        p.Type,
		"description": p.Description,
	}
}

func (p jobPayload) fields() JobFields {
	return JobFields{
		Title:       p.Title,
		Department:  p.Department,
		Location:    p.Location,
		Type:        p.Type,
		Description: p.Description,
	}
}

type jobsRepo interface {
	Insert(ctx context.Context, fields JobFields) (*Job, error)
	GetByID(ctx context.Context, id int) (*Job, error)
	Update(ctx context.Context, id int, fields JobFields) (*Job, error)
	Delete(ctx context.Context, id int) error
	ListAll(ctx context.Context) ([]*Job, error)
}

type Handler struct {
	repo     jobsRepo
	resolver *auth.SessionResolver
	policy   auth.MutationPolicy
}

func NewHandler(repo jobsRepo, resolver *auth.SessionResolver, policy auth.MutationPolicy) *Handler {
	return &Handler{
		repo:     repo,
		resolver: resolver,
		policy:   policy,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/api/jobs", handler.handleCreate).Methods("POST", "OPTIONS").Name("new-job")
	router.HandleFunc("/api/jobs", handler.handleList).Methods("GET").Name("list-jobs")
	router.HandleFunc("/api/jobs/{id}", handler.handleGet).Methods("GET").Name("get-job")
	router.HandleFunc("/api/jobs/{id}", handler.handleUpdate).Methods("PUT", "OPTIONS").Name("update-job")
	router.HandleFunc("/api/jobs/{id}", handler.handleDelete).Methods("DELETE", "OPTIONS").Name("delete-job")
}

// authorized gates mutations on the configured policy. Job postings ship
// with a public policy, so this only bites when ops flips it.
func (handler *Handler) authorized(w http.ResponseWriter, r *http.Request) bool {
	if !handler.policy.RequiresSession() {
		return true
	}
	if handler.resolver.Resolve(r) == nil {
		pkg.WriteJSONError(w, "Unauthorized. Please login first.", http.StatusUnauthorized)
		return false
	}
	return true
}

func (handler *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	if !handler.authorized(w, r) {
		return
	}

	var payload jobPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Errorf("new job, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "Missing fields", http.StatusBadRequest)
		return
	}
	if jobSchema.Validate(payload.values()) != nil {
		pkg.WriteJSONError(w, "Missing fields", http.StatusBadRequest)
		return
	}

	newJob, err := handler.repo.Insert(r.Context(), payload.fields())
	if err != nil {
		log.Errorf("add new job failed: %s", err)
		pkg.WriteJSONError(w, "Failed to create job", http.StatusInternalServerError)
		return
	}

	log.Tracef("new job %d: [%s] added", newJob.ID, newJob.Title)
	writeJob(w, newJob, http.StatusCreated)
}

func (handler *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := jobID(w, r)
	if !ok {
		return
	}

	j, err := handler.repo.GetByID(r.Context(), id)
	if errors.Is(err, ErrJobNotFound) {
		pkg.WriteJSONError(w, "Job not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("get job %d: %s", id, err)
		pkg.WriteJSONError(w, "Failed to fetch job", http.StatusInternalServerError)
		return
	}
	writeJob(w, j, http.StatusOK)
}

func (handler *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "PUT, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	if !handler.authorized(w, r) {
		return
	}

	id, ok := jobID(w, r)
	if !ok {
		return
	}

	var payload jobPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Errorf("update job %d, unmarshal json params: %s", id, err)
		pkg.WriteJSONError(w, "Missing fields", http.StatusBadRequest)
		return
	}
	if jobSchema.Validate(payload.values()) != nil {
		pkg.WriteJSONError(w, "Missing fields", http.StatusBadRequest)
		return
	}

	updated, err := handler.repo.Update(r.Context(), id, payload.fields())
	if errors.Is(err, ErrJobNotFound) {
		pkg.WriteJSONError(w, "Job not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("update job %d failed: %s", id, err)
		pkg.WriteJSONError(w, "Failed to update job", http.StatusInternalServerError)
		return
	}
	writeJob(w, updated, http.StatusOK)
}

func (handler *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "DELETE, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	if !handler.authorized(w, r) {
		return
	}

	id, ok := jobID(w, r)
	if !ok {
		return
	}

	// idempotent: deleting a missing job is still a 204
	if err := handler.repo.Delete(r.Context(), id); err != nil {
		log.Errorf("delete job %d: %s", id, err)
		pkg.WriteJSONError(w, "Failed to delete job", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	allJobs, err := handler.repo.ListAll(r.Context())
	if err != nil {
		log.Errorf("get all jobs error: %s", err)
		pkg.WriteJSONError(w, "Failed to fetch jobs", http.StatusInternalServerError)
		return
	}
	if allJobs == nil {
		allJobs = []*Job{}
	}

	respBytes, err := json.Marshal(allJobs)
	if err != nil {
		log.Errorf("marshal all jobs error: %s", err)
		pkg.WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

func jobID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		pkg.WriteJSONError(w, "Invalid job ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeJob(w http.ResponseWriter, j *Job, statusCode int) {
	respBytes, err := json.Marshal(j)
	if err != nil {
		log.Errorf("marshal job response: %s", err)
		pkg.WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, statusCode)
}
