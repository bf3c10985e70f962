package reservation

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mustafakart000/hospital-backend/internal/auth"
	"github.com/mustafakart000/hospital-backend/pkg/api"
	"github.com/mustafakart000/hospital-backend/pkg/interfaces"
	"github.com/mustafakart000/hospital-backend/pkg/logger"
	"github.com/mustafakart000/hospital-backend/pkg/types"
)

// Handlers exposes the reservation HTTP endpoints
type Handlers struct {
	service interfaces.ReservationService
	guard   *auth.Guard
	logger  *logger.Logger
}

// NewHandlers creates reservation handlers
func NewHandlers(service interfaces.ReservationService, guard *auth.Guard, log *logger.Logger) *Handlers {
	return &Handlers{
		service: service,
		guard:   guard,
		logger:  log,
	}
}

// RegisterRoutes mounts the reservation endpoints on the router
func (h *Handlers) RegisterRoutes(router *mux.Router) {
	patientOnly := h.guard.RequireRoles(types.RolePatient)
	doctorOrPatient := h.guard.RequireRoles(types.RoleDoctor, types.RolePatient)
	authenticated := h.guard.RequireRoles()

	router.Handle("/reservations/create", patientOnly(http.HandlerFunc(h.Create))).Methods(http.MethodPost)
	router.Handle("/reservations/get/{id}", doctorOrPatient(http.HandlerFunc(h.Get))).Methods(http.MethodGet)
	router.Handle("/reservations/getall", doctorOrPatient(http.HandlerFunc(h.GetAll))).Methods(http.MethodGet)
	router.Handle("/reservations/update/{id}", authenticated(http.HandlerFunc(h.Update))).Methods(http.MethodPut)
	router.Handle("/reservations/delete/{id}", doctorOrPatient(http.HandlerFunc(h.Delete))).Methods(http.MethodDelete)
	router.Handle("/reservations/getall/doctors/{id}", doctorOrPatient(http.HandlerFunc(h.GetDoctorsBySpeciality))).Methods(http.MethodGet)
	router.Handle("/reservations/getall/speciality", doctorOrPatient(http.HandlerFunc(h.ListSpecialities))).Methods(http.MethodGet)
}

// Create handles POST /reservations/create. The reservation is booked
// for the authenticated patient; a patientId in the body is ignored.
func (h *Handlers) Create(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.AccountFromContext(r.Context())
	if !ok {
		api.WriteError(w, types.NewAuthenticationError(types.ErrCodeUnauthenticated, "missing authentication context"))
		return
	}

	var req types.ReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, types.NewValidationError(types.ErrCodeInvalidInput, "invalid request body"))
		return
	}

	response, err := h.service.CreateReservation(account.ID, &req)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, response)
}

// Get handles GET /reservations/get/{id}
func (h *Handlers) Get(w http.ResponseWriter, r *http.Request) {
	response, err := h.service.GetReservation(mux.Vars(r)["id"])
	if err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, response)
}

// GetAll handles GET /reservations/getall
func (h *Handlers) GetAll(w http.ResponseWriter, r *http.Request) {
	responses, err := h.service.GetAllReservations()
	if err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, responses)
}

// Update handles PUT /reservations/update/{id}
func (h *Handlers) Update(w http.ResponseWriter, r *http.Request) {
	var req types.ReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, types.NewValidationError(types.ErrCodeInvalidInput, "invalid request body"))
		return
	}

	response, err := h.service.UpdateReservation(mux.Vars(r)["id"], &req)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, response)
}

// Delete handles DELETE /reservations/delete/{id}
func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteReservation(mux.Vars(r)["id"]); err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, &api.Message{Message: "reservation deleted successfully"})
}

// GetDoctorsBySpeciality handles GET /reservations/getall/doctors/{id},
// where {id} is a speciality catalog id
func (h *Handlers) GetDoctorsBySpeciality(w http.ResponseWriter, r *http.Request) {
	catalogID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		api.WriteError(w, types.NewValidationError(types.ErrCodeInvalidInput, "speciality id must be a number"))
		return
	}

	doctors, err := h.service.GetDoctorsBySpeciality(catalogID)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, doctors)
}

// ListSpecialities handles GET /reservations/getall/speciality
func (h *Handlers) ListSpecialities(w http.ResponseWriter, r *http.Request) {
	specialities, err := h.service.ListSpecialities()
	if err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, specialities)
}
