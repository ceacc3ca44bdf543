package handlers

import (
	"net/http"

	"github.com/nuevas-energias/hrcore/internal/api"
	"github.com/nuevas-energias/hrcore/internal/middleware"
	"github.com/nuevas-energias/hrcore/internal/services"
)

// APIHandler handles the incident back-office API endpoints
type APIHandler struct {
	incidentService     *services.IncidentService
	statementService    *services.StatementService
	employeeService     *services.EmployeeService
	notificationService *services.NotificationService
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(incidentService *services.IncidentService, statementService *services.StatementService, employeeService *services.EmployeeService, notificationService *services.NotificationService) *APIHandler {
	return &APIHandler{
		incidentService:     incidentService,
		statementService:    statementService,
		employeeService:     employeeService,
		notificationService: notificationService,
	}
}

// SetupRoutes sets up all API routes
func (h *APIHandler) SetupRoutes(mux *http.ServeMux) {
	// Incident groups
	mux.HandleFunc("GET /api/incident-groups", h.handleListGroups)
	mux.HandleFunc("POST /api/incident-groups", h.handleCreateGroup)
	mux.HandleFunc("GET /api/incident-groups/{groupID}", h.handleGetGroup)
	mux.HandleFunc("POST /api/incident-groups/{groupID}/correct", h.handleCorrectGroup)

	// Resolutions
	mux.HandleFunc("POST /api/resolutions", h.handleCreateResolution)

	// Statements (descargos) per record
	mux.HandleFunc("GET /api/records/{recordID}/statements", h.handleListStatements)
	mux.HandleFunc("POST /api/records/{recordID}/statements", h.handleCreateStatement)

	// Incident type catalog
	mux.HandleFunc("GET /api/incident-types", h.handleListIncidentTypes)
	mux.HandleFunc("POST /api/incident-types", h.handleCreateIncidentType)
	mux.HandleFunc("GET /api/incident-types/{id}", h.handleGetIncidentType)
	mux.HandleFunc("PUT /api/incident-types/{id}", h.handleUpdateIncidentType)
	mux.HandleFunc("DELETE /api/incident-types/{id}", h.handleDeleteIncidentType)

	// Employees (read-only)
	mux.HandleFunc("GET /api/employees", h.handleListEmployees)
	mux.HandleFunc("GET /api/employees/{id}", h.handleGetEmployee)

	// Notifications
	mux.HandleFunc("GET /api/notifications", h.handleListNotifications)
	mux.HandleFunc("POST /api/notifications/{id}/read", h.handleMarkNotificationRead)
}

// principal extracts the authenticated principal, responding 401 when
// the request somehow reached a protected handler without one.
func (h *APIHandler) principal(w http.ResponseWriter, r *http.Request) (middleware.Principal, bool) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		api.RespondError(w, http.StatusUnauthorized, "Not authenticated")
		return middleware.Principal{}, false
	}
	return principal, true
}

// requireAdmin gates the write surface: only administrators may write.
func (h *APIHandler) requireAdmin(w http.ResponseWriter, r *http.Request) (middleware.Principal, bool) {
	principal, ok := h.principal(w, r)
	if !ok {
		return middleware.Principal{}, false
	}
	if !principal.IsAdmin() {
		api.RespondError(w, http.StatusForbidden, "Admin access required")
		return middleware.Principal{}, false
	}
	return principal, true
}

// scopeEmployee resolves the employee id a read should be scoped to.
// Admins see everything (nil scope). Employee accounts are scoped to
// their own profile; an employee account without a profile sees
// nothing, signalled by the second return.
func (h *APIHandler) scopeEmployee(w http.ResponseWriter, principal middleware.Principal) (*uint, bool, bool) {
	if principal.IsAdmin() {
		return nil, true, true
	}
	employee, err := h.employeeService.EmployeeForUser(principal.UserID)
	if err != nil {
		api.RespondError(w, http.StatusInternalServerError, "Failed to resolve employee profile")
		return nil, false, false
	}
	if employee == nil {
		return nil, false, true
	}
	return &employee.ID, true, true
}
