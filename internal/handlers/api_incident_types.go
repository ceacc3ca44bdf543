package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/nuevas-energias/hrcore/internal/api"
	"github.com/nuevas-energias/hrcore/internal/database"
	"gorm.io/gorm"
)

// handleListIncidentTypes handles GET /api/incident-types
func (h *APIHandler) handleListIncidentTypes(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.principal(w, r); !ok {
		return
	}
	db := database.GetDB()

	var types []database.IncidentType
	if err := db.Where("active = ?", true).Order("label ASC").Find(&types).Error; err != nil {
		api.RespondError(w, http.StatusInternalServerError, "Failed to list incident types")
		return
	}

	api.RespondJSON(w, http.StatusOK, types)
}

// handleGetIncidentType handles GET /api/incident-types/{id}
func (h *APIHandler) handleGetIncidentType(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.principal(w, r); !ok {
		return
	}
	db := database.GetDB()

	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		api.RespondError(w, http.StatusBadRequest, "Invalid incident type ID")
		return
	}

	var incidentType database.IncidentType
	if err := db.First(&incidentType, uint(id)).Error; err != nil {
		api.RespondError(w, http.StatusNotFound, "Incident type not found")
		return
	}

	api.RespondJSON(w, http.StatusOK, incidentType)
}

// handleCreateIncidentType handles POST /api/incident-types
func (h *APIHandler) handleCreateIncidentType(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}
	db := database.GetDB()

	var req api.CreateIncidentTypeRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if fieldErrors := api.Validate(req); fieldErrors != nil {
		api.RespondValidationError(w, fieldErrors)
		return
	}

	incidentType := database.IncidentType{
		Label:       req.Label,
		Description: req.Description,
		Active:      true,
	}
	if err := db.Create(&incidentType).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			api.RespondError(w, http.StatusConflict, "An incident type with this label already exists")
			return
		}
		api.RespondError(w, http.StatusInternalServerError, "Failed to create incident type")
		return
	}

	log.Printf("APIHandler: User '%s' created incident type '%s'", principal.Username, incidentType.Label)
	api.RespondJSON(w, http.StatusCreated, incidentType)
}

// handleUpdateIncidentType handles PUT /api/incident-types/{id}
func (h *APIHandler) handleUpdateIncidentType(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}
	db := database.GetDB()

	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		api.RespondError(w, http.StatusBadRequest, "Invalid incident type ID")
		return
	}

	var req api.UpdateIncidentTypeRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if fieldErrors := api.Validate(req); fieldErrors != nil {
		api.RespondValidationError(w, fieldErrors)
		return
	}

	var incidentType database.IncidentType
	if err := db.First(&incidentType, uint(id)).Error; err != nil {
		api.RespondError(w, http.StatusNotFound, "Incident type not found")
		return
	}

	updates := make(map[string]interface{})
	if req.Label != nil {
		updates["label"] = *req.Label
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if len(updates) > 0 {
		if err := db.Model(&incidentType).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				api.RespondError(w, http.StatusConflict, "An incident type with this label already exists")
				return
			}
			api.RespondError(w, http.StatusInternalServerError, "Failed to update incident type")
			return
		}
	}

	api.RespondJSON(w, http.StatusOK, incidentType)
}

// handleDeleteIncidentType handles DELETE /api/incident-types/{id}.
// Types are reference data for historical records, so deletion only
// deactivates the row.
func (h *APIHandler) handleDeleteIncidentType(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}
	db := database.GetDB()

	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		api.RespondError(w, http.StatusBadRequest, "Invalid incident type ID")
		return
	}

	var incidentType database.IncidentType
	if err := db.First(&incidentType, uint(id)).Error; err != nil {
		api.RespondError(w, http.StatusNotFound, "Incident type not found")
		return
	}

	if err := db.Model(&incidentType).Update("active", false).Error; err != nil {
		api.RespondError(w, http.StatusInternalServerError, "Failed to deactivate incident type")
		return
	}

	log.Printf("APIHandler: User '%s' deactivated incident type '%s'", principal.Username, incidentType.Label)
	api.RespondNoContent(w)
}
