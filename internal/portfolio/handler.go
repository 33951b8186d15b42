package portfolio

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

var projectSchema = validation.Schema{
	validation.String("title").Required("Title and description are required"),
	validation.String("description").Required("Title and description are required"),
}

type projectPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

func (p projectPayload) fields() ProjectFields {
	return ProjectFields{
		Title:       p.Title,
		Description: p.Description,
		Image:       validation.Optional(p.Image),
	}
}

type projectsRepo interface {
	Insert(ctx context.Context, fields ProjectFields) (*Project, error)
	Update(ctx context.Context, id int, fields ProjectFields) (*Project, error)
	Delete(ctx context.Context, id int) (bool, error)
	ListAll(ctx context.Context) ([]*Project, error)
}

type Handler struct {
	repo     projectsRepo
	resolver *auth.SessionResolver
	policy   auth.MutationPolicy
}

func NewHandler(repo projectsRepo, resolver *auth.SessionResolver, policy auth.MutationPolicy) *Handler {
	return &Handler{
		repo:     repo,
		resolver: resolver,
		policy:   policy,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/api/portfolio", handler.handleCreate).Methods("POST", "OPTIONS").Name("new-project")
	router.HandleFunc("/api/portfolio", handler.handleList).Methods("GET").Name("list-projects")
	router.HandleFunc("/api/portfolio/{id}", handler.handleUpdate).Methods("PUT", "OPTIONS").Name("update-project")
	router.HandleFunc("/api/portfolio/{id}", handler.handleDelete).Methods("DELETE", "OPTIONS").Name("delete-project")
}

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

	payload, ok := decodeProject(w, r)
	if !ok {
		return
	}

	newProject, err := handler.repo.Insert(r.Context(), payload.fields())
	if err != nil {
		log.Errorf("add new project failed: %s", err)
		pkg.WriteJSONError(w, "Failed to create project", http.StatusInternalServerError)
		return
	}

	log.Tracef("new project %d: [%s] added", newProject.ID, newProject.Title)
	writeProject(w, newProject, http.StatusCreated)
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

	id, ok := projectID(w, r)
	if !ok {
		return
	}

	payload, ok := decodeProject(w, r)
	if !ok {
		return
	}

	updated, err := handler.repo.Update(r.Context(), id, payload.fields())
	if errors.Is(err, ErrProjectNotFound) {
		pkg.WriteJSONError(w, "Project not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("update project %d failed: %s", id, err)
		pkg.WriteJSONError(w, "Failed to update project", http.StatusInternalServerError)
		return
	}
	writeProject(w, updated, http.StatusOK)
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

	id, ok := projectID(w, r)
	if !ok {
		return
	}

	deleted, err := handler.repo.Delete(r.Context(), id)
	if err != nil {
		log.Errorf("delete project %d: %s", id, err)
		pkg.WriteJSONError(w, "Failed to delete project", http.StatusInternalServerError)
		return
	}
	if !deleted {
		pkg.WriteJSONError(w, "Project not found", http.StatusNotFound)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, []byte(`{"message":"Project deleted successfully"}`))
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	projects, err := handler.repo.ListAll(r.Context())
	if err != nil {
		log.Errorf("get all projects error: %s", err)
		pkg.WriteJSONError(w, "Failed to fetch projects", http.StatusInternalServerError)
		return
	}
	if projects == nil {
		projects = []*Project{}
	}

	respBytes, err := json.Marshal(projects)
	if err != nil {
		log.Errorf("marshal all projects error: %s", err)
		pkg.WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

func decodeProject(w http.ResponseWriter, r *http.Request) (projectPayload, bool) {
	var payload projectPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Errorf("project, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "Title and description are required", http.StatusBadRequest)
		return payload, false
	}
	if projectSchema.Validate(map[string]string{
		"title":       payload.Title,
		"description": payload.Description,
	}) != nil {
		pkg.WriteJSONError(w, "Title and description are required", http.StatusBadRequest)
		return payload, false
	}
	return payload, true
}

func projectID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		pkg.WriteJSONError(w, "Invalid project ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeProject(w http.ResponseWriter, p *Project, statusCode int) {
	respBytes, err := json.Marshal(p)
	if err != nil {
		log.Errorf("marshal project response: %s", err)
		pkg.WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, statusCode)
}
