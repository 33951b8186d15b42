package blog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/burakcan/atelier/internal/auth"
	"github.com/burakcan/atelier/internal/telemetry/metrics"
	"github.com/burakcan/atelier/internal/validation"
	"github.com/burakcan/atelier/pkg"
)

// Stable message strings, the UI matches on them.
const (
	msgUnauthorized     = "Unauthorized. Please login first."
	msgInvalidBlogID    = "Invalid blog ID"
	msgBlogNotFound     = "Blog not found"
	msgValidationFailed = "Validation failed"
	msgEditOwnBlogs     = "You can only edit your own blogs"
	msgDeleteOwnBlogs   = "You can only delete your own blogs"
	msgBlogDeleted      = "Blog deleted successfully"
)

var blogSchema = validation.Schema{
	validation.String("title").Required("Title is required").Max(255, "Title must be at most 255 characters"),
	validation.String("content").Required("Content is required"),
	validation.String("imageUrl").URL("Invalid URL"),
}

type blogPayload struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl"`
}

func (p blogPayload) values() map[string]string {
	return map[string]string{
		"title":    p.Title,
		"content":  p.Content,
		"imageUrl": p.ImageURL,
	}
}

// trim drops surrounding whitespace so that what gets stored is exactly
// what the length rules measured.
func (p blogPayload) trim() blogPayload {
	return blogPayload{
		Title:    strings.TrimSpace(p.Title),
		Content:  strings.TrimSpace(p.Content),
		ImageURL: p.ImageURL,
	}
}

type blogResponse struct {
	Success bool  `json:"success"`
	Blog    *Blog `json:"blog"`
}

type deleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type validationResponse struct {
	Error   string                 `json:"error"`
	Details validation.FieldErrors `json:"details,omitempty"`
}

type blogRepo interface {
	Insert(ctx context.Context, fields NewBlogFields) (*Blog, error)
	GetByID(ctx context.Context, id int) (*Blog, error)
	Update(ctx context.Context, id int, fields UpdateBlogFields) (*Blog, error)
	Delete(ctx context.Context, id int) (bool, error)
	ListAll(ctx context.Context) ([]*Blog, error)
}

type Handler struct {
	repo     blogRepo
	resolver *auth.SessionResolver
	metrics  *metrics.Manager
}

func NewHandler(
	repo blogRepo,
	resolver *auth.SessionResolver,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		repo:     repo,
		resolver: resolver,
		metrics:  metricsManager,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/api/blogs", handler.handleCreate).Methods("POST", "OPTIONS").Name("new-blog")
	router.HandleFunc("/api/blogs", handler.handleList).Methods("GET").Name("list-blogs")
	router.HandleFunc("/api/blogs/{id}", handler.handleGet).Methods("GET").Name("get-blog")
	router.HandleFunc("/api/blogs/{id}", handler.handleUpdate).Methods("PATCH", "OPTIONS").Name("update-blog")
	router.HandleFunc("/api/blogs/{id}", handler.handleDelete).Methods("DELETE", "OPTIONS").Name("delete-blog")
}

func (handler *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	// authentication first, before the body is even looked at
	claims := handler.resolver.Resolve(r)
	if claims == nil {
		pkg.WriteJSONError(w, msgUnauthorized, http.StatusUnauthorized)
		return
	}

	var payload blogPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Errorf("new blog, unmarshal json params: %s", err)
		writeValidationFailed(w, nil)
		return
	}

	if fieldErrs := blogSchema.Validate(payload.values()); fieldErrs != nil {
		writeValidationFailed(w, fieldErrs)
		return
	}
	payload = payload.trim()

	newBlog, err := handler.repo.Insert(r.Context(), NewBlogFields{
		Title:    payload.Title,
		Content:  payload.Content,
		ImageURL: validation.Optional(payload.ImageURL),
		// the author always comes from the session, never from the client
		AuthorID: claims.UserID,
	})
	if err != nil {
		log.Errorf("add new blog failed: %s", err)
		pkg.WriteJSONError(w, "Failed to create blog", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterBlogPosts.Inc()
	log.Tracef("new blog %d: [%s] added", newBlog.ID, newBlog.Title)

	writeBlogResponse(w, newBlog, http.StatusCreated)
}

func (handler *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := blogID(w, r)
	if !ok {
		return
	}

	b, err := handler.repo.GetByID(r.Context(), id)
	if errors.Is(err, ErrBlogNotFound) {
		pkg.WriteJSONError(w, msgBlogNotFound, http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("get blog %d: %s", id, err)
		pkg.WriteJSONError(w, "Failed to fetch blog", http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(struct {
		Blog *Blog `json:"blog"`
	}{Blog: b})
	if err != nil {
		log.Errorf("marshal blog %d: %s", id, err)
		pkg.WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

func (handler *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "PATCH, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	// state machine: unauthenticated -> not found -> forbidden -> invalid,
	// first match wins
	claims := handler.resolver.Resolve(r)
	if claims == nil {
		pkg.WriteJSONError(w, msgUnauthorized, http.StatusUnauthorized)
		return
	}

	id, ok := blogID(w, r)
	if !ok {
		return
	}

	existing, err := handler.repo.GetByID(r.Context(), id)
	if errors.Is(err, ErrBlogNotFound) {
		pkg.WriteJSONError(w, msgBlogNotFound, http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("update blog %d, fetch existing: %s", id, err)
		pkg.WriteJSONError(w, "Failed to update blog", http.StatusInternalServerError)
		return
	}

	// ownership before payload validation: a non-owner with a broken
	// payload is told forbidden, not invalid
	if !auth.CanModify(claims, existing.AuthorID) {
		pkg.WriteJSONError(w, msgEditOwnBlogs, http.StatusForbidden)
		return
	}

	var payload blogPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Errorf("update blog %d, unmarshal json params: %s", id, err)
		writeValidationFailed(w, nil)
		return
	}

	if fieldErrs := blogSchema.Validate(payload.values()); fieldErrs != nil {
		writeValidationFailed(w, fieldErrs)
		return
	}
	payload = payload.trim()

	// note: no transaction between the ownership read above and this
	// write, two concurrent owner edits can interleave
	updated, err := handler.repo.Update(r.Context(), id, UpdateBlogFields{
		Title:    payload.Title,
		Content:  payload.Content,
		ImageURL: validation.Optional(payload.ImageURL),
	})
	if errors.Is(err, ErrBlogNotFound) {
		pkg.WriteJSONError(w, msgBlogNotFound, http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("update blog %d failed: %s", id, err)
		pkg.WriteJSONError(w, "Failed to update blog", http.StatusInternalServerError)
		return
	}

	writeBlogResponse(w, updated, http.StatusOK)
}

func (handler *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "DELETE, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	claims := handler.resolver.Resolve(r)
	if claims == nil {
		pkg.WriteJSONError(w, msgUnauthorized, http.StatusUnauthorized)
		return
	}

	id, ok := blogID(w, r)
	if !ok {
		return
	}

	existing, err := handler.repo.GetByID(r.Context(), id)
	if errors.Is(err, ErrBlogNotFound) {
		pkg.WriteJSONError(w, msgBlogNotFound, http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("delete blog %d, fetch existing: %s", id, err)
		pkg.WriteJSONError(w, "Failed to delete blog", http.StatusInternalServerError)
		return
	}

	if !auth.CanModify(claims, existing.AuthorID) {
		pkg.WriteJSONError(w, msgDeleteOwnBlogs, http.StatusForbidden)
		return
	}

	deleted, err := handler.repo.Delete(r.Context(), id)
	if err != nil {
		log.Errorf("delete blog %d: %s", id, err)
		pkg.WriteJSONError(w, "Failed to delete blog", http.StatusInternalServerError)
		return
	}
	if !deleted {
		// the row vanished between the ownership read and the delete
		pkg.WriteJSONError(w, msgBlogNotFound, http.StatusNotFound)
		return
	}

	respBytes, err := json.Marshal(deleteResponse{
		Success: true,
		Message: msgBlogDeleted,
	})
	if err != nil {
		log.Errorf("marshal delete response: %s", err)
		pkg.WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	allBlogs, err := handler.repo.ListAll(r.Context())
	if err != nil {
		log.Errorf("get all blogs error: %s", err)
		pkg.WriteJSONError(w, "Failed to fetch blogs", http.StatusInternalServerError)
		return
	}
	if allBlogs == nil {
		allBlogs = []*Blog{}
	}

	respBytes, err := json.Marshal(allBlogs)
	if err != nil {
		log.Errorf("marshal all blogs error: %s", err)
		pkg.WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

// blogID parses the path id. Non-numeric ids are rejected before any store
// access.
func blogID(w http.ResponseWriter, r *http.Request) (int, bool) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.Atoi(idStr)
	if err != nil {
		pkg.WriteJSONError(w, msgInvalidBlogID, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeBlogResponse(w http.ResponseWriter, b *Blog, statusCode int) {
	respBytes, err := json.Marshal(blogResponse{
		Success: true,
		Blog:    b,
	})
	if err != nil {
		log.Errorf("marshal blog response: %s", err)
		pkg.WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, statusCode)
}

func writeValidationFailed(w http.ResponseWriter, fieldErrs validation.FieldErrors) {
	respBytes, err := json.Marshal(validationResponse{
		Error:   msgValidationFailed,
		Details: fieldErrs,
	})
	if err != nil {
		log.Errorf("marshal validation response: %s", err)
		pkg.WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusBadRequest)
}
