package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/burakcan/atelier/internal/middleware"
	"github.com/burakcan/atelier/internal/telemetry/metrics"
	"github.com/burakcan/atelier/pkg"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool      `json:"success"`
	User    *userInfo `json:"user"`
}

type verifyResponse struct {
	IsAdmin bool      `json:"isAdmin"`
	User    *userInfo `json:"user"`
}

type userInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type usersRepo interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
}

type Handler struct {
	repo     usersRepo
	codec    *Codec
	resolver *SessionResolver
	metrics  *metrics.Manager
}

func NewHandler(
	repo usersRepo,
	codec *Codec,
	resolver *SessionResolver,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		repo:     repo,
		codec:    codec,
		resolver: resolver,
		metrics:  metricsManager,
	}
}

func (handler *Handler) SetupRoutes(
	router *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	loginAllowedPerMin int,
) {
	// verify stays outside the rate limited subrouter: the UI polls it on
	// every page load and it must always answer
	router.HandleFunc("/api/auth/verify", handler.handleVerify).Methods("GET").Name("verify")

	loginRouter := router.PathPrefix("/api/auth").Subrouter()
	loginRouter.HandleFunc("/login", handler.handleLogin).Methods("POST", "OPTIONS").Name("login")
	loginRouter.HandleFunc("/logout", handler.handleLogout).Methods("POST", "OPTIONS").Name("logout")

	// rate limit the login endpoints to slow down credential guessing
	if rateLimiter != nil {
		loginRouter.Use(middleware.RateLimit(rateLimiter, "login", loginAllowedPerMin, handler.metrics))
	}
}

func (handler *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var loginReq loginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		log.Errorf("login, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if loginReq.Email == "" || loginReq.Password == "" {
		pkg.WriteJSONError(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	user, err := handler.repo.GetByEmail(r.Context(), loginReq.Email)
	if errors.Is(err, ErrUserNotFound) {
		handler.failLogin(w, r, loginReq.Email)
		return
	}
	if err != nil {
		// a store failure is not a wrong credential
		log.Errorf("login, get user by email: %s", err)
		pkg.WriteJSONError(w, "Login failed", http.StatusInternalServerError)
		return
	}

	if !pkg.CheckPasswordHash(loginReq.Password, user.PasswordHash) {
		handler.failLogin(w, r, loginReq.Email)
		return
	}

	token, err := handler.codec.Mint(user.ID, user.Email)
	if err != nil {
		log.Errorf("login failed, mint token error: %s", err)
		pkg.WriteJSONError(w, "Login failed", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, handler.resolver.SessionCookie(token))
	handler.metrics.CounterLogins.Inc()
	log.Tracef("new login for user %s", user.ID)

	respBytes, err := json.Marshal(loginResponse{
		Success: true,
		User:    &userInfo{ID: user.ID, Email: user.Email},
	})
	if err != nil {
		log.Errorf("marshal login response: %s", err)
		pkg.WriteJSONError(w, "Login failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

// failLogin hides whether the email or the password was wrong.
func (handler *Handler) failLogin(w http.ResponseWriter, r *http.Request, email string) {
	reqIp, _ := pkg.ReadUserIP(r)
	log.Tracef("failed login attempt for [%s] from [%s]", email, reqIp)
	handler.metrics.CounterFailedLogins.Inc()
	pkg.WriteJSONError(w, "Invalid email or password", http.StatusUnauthorized)
}

func (handler *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	http.SetCookie(w, handler.resolver.ExpiredSessionCookie())
	pkg.WriteJSONResponseOK(w, `{"success":true}`)
}

// handleVerify is the who-am-I endpoint consumed by the UI. It never fails:
// absent or invalid token yields `{isAdmin:false, user:null}`.
func (handler *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	resp := verifyResponse{}
	if claims := handler.resolver.Resolve(r); claims != nil {
		resp.IsAdmin = true
		resp.User = &userInfo{ID: claims.UserID, Email: claims.Email}
	}

	respBytes, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("marshal verify response: %s", err)
		pkg.WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}
