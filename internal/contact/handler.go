package contact

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/burakcan/atelier/internal/telemetry/metrics"
	"github.com/burakcan/atelier/pkg"
)

type messagesRepo interface {
	Add(ctx context.Context, name, email, message string) (*Message, error)
	ListAll(ctx context.Context) ([]*Message, error)
}

type Handler struct {
	repo    messagesRepo
	metrics *metrics.Manager
}

func NewHandler(repo messagesRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		metrics: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/api/contact", handler.handleAdd).Methods("POST", "OPTIONS").Name("new-contact-message")
	router.HandleFunc("/api/contact", handler.handleList).Methods("GET").Name("list-contact-messages")
}

func (handler *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var payload struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Errorf("new contact message, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if _, err := handler.repo.Add(r.Context(), payload.Name, payload.Email, payload.Message); err != nil {
		log.Errorf("add contact message failed: %s", err)
		pkg.WriteJSONError(w, "Failed to send message", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterContactMessages.Inc()
	log.Tracef("new contact message from [%s]", payload.Email)

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, []byte(`{"success":true}`))
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	all, err := handler.repo.ListAll(r.Context())
	if err != nil {
		log.Errorf("get contact messages error: %s", err)
		pkg.WriteJSONError(w, "Failed to fetch messages", http.StatusInternalServerError)
		return
	}
	if all == nil {
		all = []*Message{}
	}

	respBytes, err := json.Marshal(all)
	if err != nil {
		log.Errorf("marshal contact messages error: %s", err)
		pkg.WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}
