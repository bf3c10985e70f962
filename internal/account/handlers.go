package account

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mustafakart000/hospital-backend/internal/auth"
	"github.com/mustafakart000/hospital-backend/pkg/api"
	"github.com/mustafakart000/hospital-backend/pkg/interfaces"
	"github.com/mustafakart000/hospital-backend/pkg/logger"
	"github.com/mustafakart000/hospital-backend/pkg/types"
)

// Handlers exposes the doctor and patient directory endpoints
type Handlers struct {
	doctors  interfaces.DoctorService
	patients interfaces.PatientService
	guard    *auth.Guard
	logger   *logger.Logger
}

// NewHandlers creates account handlers
func NewHandlers(doctors interfaces.DoctorService, patients interfaces.PatientService, guard *auth.Guard, log *logger.Logger) *Handlers {
	return &Handlers{
		doctors:  doctors,
		patients: patients,
		guard:    guard,
		logger:   log,
	}
}

// RegisterRoutes mounts the directory endpoints on the router
func (h *Handlers) RegisterRoutes(router *mux.Router) {
	adminOnly := h.guard.RequireRoles(types.RoleAdmin)
	adminOrDoctor := h.guard.RequireRoles(types.RoleAdmin, types.RoleDoctor)
	doctorOrPatient := h.guard.RequireRoles(types.RoleDoctor, types.RolePatient)

	router.Handle("/doctor/all", adminOnly(http.HandlerFunc(h.GetAllDoctors))).Methods(http.MethodGet)
	router.Handle("/doctor/get/{id}", adminOrDoctor(http.HandlerFunc(h.GetDoctor))).Methods(http.MethodGet)
	router.Handle("/doctor/update/{id}", adminOrDoctor(http.HandlerFunc(h.UpdateDoctor))).Methods(http.MethodPut)
	router.Handle("/doctor/delete/{id}", adminOnly(http.HandlerFunc(h.DeleteDoctor))).Methods(http.MethodDelete)

	router.Handle("/patient/get/{id}", doctorOrPatient(http.HandlerFunc(h.GetPatient))).Methods(http.MethodGet)
}

// GetAllDoctors handles GET /doctor/all
func (h *Handlers) GetAllDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.doctors.GetAllDoctors()
	if err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, doctors)
}

// GetDoctor handles GET /doctor/get/{id}
func (h *Handlers) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctor, err := h.doctors.GetDoctorByID(mux.Vars(r)["id"])
	if err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, doctor)
}

// UpdateDoctor handles PUT /doctor/update/{id}
func (h *Handlers) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	var updates types.DoctorUpdates
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		api.WriteError(w, types.NewValidationError(types.ErrCodeInvalidInput, "invalid request body"))
		return
	}

	id := mux.Vars(r)["id"]
	if err := h.doctors.UpdateDoctor(id, &updates); err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, &api.Message{Message: "doctor updated successfully"})
}

// DeleteDoctor handles DELETE /doctor/delete/{id}
func (h *Handlers) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	if err := h.doctors.DeleteDoctor(mux.Vars(r)["id"]); err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, &api.Message{Message: "doctor deleted successfully"})
}

// GetPatient handles GET /patient/get/{id}
func (h *Handlers) GetPatient(w http.ResponseWriter, r *http.Request) {
	patient, err := h.patients.GetPatientByID(mux.Vars(r)["id"])
	if err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, patient)
}
