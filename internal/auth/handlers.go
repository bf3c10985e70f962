package auth

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mustafakart000/hospital-backend/pkg/api"
	"github.com/mustafakart000/hospital-backend/pkg/interfaces"
	"github.com/mustafakart000/hospital-backend/pkg/logger"
	"github.com/mustafakart000/hospital-backend/pkg/types"
)

// Handlers exposes the authentication HTTP endpoints
type Handlers struct {
	service interfaces.AuthService
	guard   *Guard
	logger  *logger.Logger
}

// NewHandlers creates authentication handlers
func NewHandlers(service interfaces.AuthService, guard *Guard, log *logger.Logger) *Handlers {
	return &Handlers{
		service: service,
		guard:   guard,
		logger:  log,
	}
}

// RegisterRoutes mounts the authentication endpoints on the router
func (h *Handlers) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
	router.HandleFunc("/auth/doctor/login", h.DoctorLogin).Methods(http.MethodPost)
	router.HandleFunc("/auth/register", h.RegisterPatient).Methods(http.MethodPost)

	adminOnly := h.guard.RequireRoles(types.RoleAdmin)
	router.Handle("/auth/doctor/register", adminOnly(http.HandlerFunc(h.RegisterDoctor))).Methods(http.MethodPost)
	router.Handle("/auth/admin/register", adminOnly(http.HandlerFunc(h.RegisterAdmin))).Methods(http.MethodPost)

	authenticated := h.guard.RequireRoles()
	router.Handle("/auth/me", authenticated(http.HandlerFunc(h.CurrentUser))).Methods(http.MethodGet)
}

// Login handles POST /auth/login
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var credentials types.Credentials
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		api.WriteError(w, types.NewValidationError(types.ErrCodeInvalidInput, "invalid request body"))
		return
	}

	response, err := h.service.Login(&credentials)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, response)
}

// DoctorLogin handles POST /auth/doctor/login
func (h *Handlers) DoctorLogin(w http.ResponseWriter, r *http.Request) {
	var credentials types.Credentials
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		api.WriteError(w, types.NewValidationError(types.ErrCodeInvalidInput, "invalid request body"))
		return
	}

	response, err := h.service.DoctorLogin(&credentials)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, response)
}

// RegisterPatient handles POST /auth/register
func (h *Handlers) RegisterPatient(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, h.service.RegisterPatient, "patient registered successfully")
}

// RegisterDoctor handles POST /auth/doctor/register
func (h *Handlers) RegisterDoctor(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, h.service.RegisterDoctor, "doctor registered successfully")
}

// RegisterAdmin handles POST /auth/admin/register
func (h *Handlers) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, h.service.RegisterAdmin, "admin registered successfully")
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request, fn func(*types.RegisterRequest) error, message string) {
	var req types.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, types.NewValidationError(types.ErrCodeInvalidInput, "invalid request body"))
		return
	}

	if err := fn(&req); err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, &api.Message{Message: message})
}

// CurrentUser handles GET /auth/me
func (h *Handlers) CurrentUser(w http.ResponseWriter, r *http.Request) {
	account, ok := AccountFromContext(r.Context())
	if !ok {
		api.WriteError(w, types.NewAuthenticationError(types.ErrCodeUnauthenticated, "missing authentication context"))
		return
	}

	summary, err := h.service.CurrentUser(account.Username)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, summary)
}
