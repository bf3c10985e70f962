package catalog

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mustafakart000/hospital-backend/internal/auth"
	"github.com/mustafakart000/hospital-backend/pkg/api"
	"github.com/mustafakart000/hospital-backend/pkg/interfaces"
	"github.com/mustafakart000/hospital-backend/pkg/types"
)

// Handlers exposes the speciality catalog endpoints
type Handlers struct {
	catalog interfaces.CatalogRepository
	guard   *auth.Guard
}

// NewHandlers creates catalog handlers
func NewHandlers(catalog interfaces.CatalogRepository, guard *auth.Guard) *Handlers {
	return &Handlers{
		catalog: catalog,
		guard:   guard,
	}
}

// RegisterRoutes mounts the catalog endpoints on the router. The listing
// lives under /auth for compatibility with existing clients.
func (h *Handlers) RegisterRoutes(router *mux.Router) {
	anyRole := h.guard.RequireRoles(types.RoleAdmin, types.RoleDoctor, types.RolePatient)
	router.Handle("/auth/allspecialties", anyRole(http.HandlerFunc(h.ListSpecialities))).Methods(http.MethodGet)
}

// ListSpecialities handles GET /auth/allspecialties
func (h *Handlers) ListSpecialities(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.catalog.List()
	if err != nil {
		api.WriteError(w, err)
		return
	}

	response := make([]*types.SpecialityResponse, 0, len(catalog))
	for _, row := range catalog {
		response = append(response, &types.SpecialityResponse{
			ID:   row.ID,
			Name: row.DisplayName,
		})
	}
	api.WriteJSON(w, http.StatusOK, response)
}
