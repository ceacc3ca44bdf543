package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/nuevas-energias/hrcore/internal/api"
	"github.com/nuevas-energias/hrcore/internal/services"
)

// handleListGroups handles GET /api/incident-groups
func (h *APIHandler) handleListGroups(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	scope, visible, ok := h.scopeEmployee(w, principal)
	if !ok {
		return
	}
	if !visible {
		// Employee account without a profile is part of no group.
		api.RespondJSON(w, http.StatusOK, []services.GroupSummary{})
		return
	}

	summaries, err := h.incidentService.ListGroups(scope)
	if err != nil {
		log.Printf("APIHandler: Failed to list incident groups: %v", err)
		api.RespondError(w, http.StatusInternalServerError, "Failed to list incident groups")
		return
	}

	api.RespondJSON(w, http.StatusOK, summaries)
}

// handleGetGroup handles GET /api/incident-groups/{groupID}
func (h *APIHandler) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	groupID := r.PathValue("groupID")

	scope, visible, ok := h.scopeEmployee(w, principal)
	if !ok {
		return
	}
	if !visible {
		api.RespondError(w, http.StatusNotFound, "Incident group not found")
		return
	}

	detail, err := h.incidentService.GetGroupDetail(groupID, scope)
	if errors.Is(err, services.ErrGroupNotFound) {
		api.RespondError(w, http.StatusNotFound, "Incident group not found")
		return
	}
	if err != nil {
		log.Printf("APIHandler: Failed to get incident group %s: %v", groupID, err)
		api.RespondError(w, http.StatusInternalServerError, "Failed to get incident group")
		return
	}

	api.RespondJSON(w, http.StatusOK, detail)
}

// handleCreateGroup handles POST /api/incident-groups
func (h *APIHandler) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	var req api.CreateGroupRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if fieldErrors := api.Validate(req); fieldErrors != nil {
		api.RespondValidationError(w, fieldErrors)
		return
	}

	occurrence, err := api.ParseDate(req.OccurrenceDate)
	if err != nil {
		api.RespondError(w, http.StatusBadRequest, "occurrence_date must be a date in 2006-01-02 format")
		return
	}

	summary, err := h.incidentService.CreateGroup(services.CreateGroupInput{
		IncidentTypeID: req.IncidentTypeID,
		EmployeeIDs:    req.EmployeeIDs,
		OccurrenceDate: occurrence,
		Description:    req.Description,
		Observations:   req.Observations,
	}, principal.UserID)
	if err != nil {
		h.respondGroupWriteError(w, err, groupWriteCreate)
		return
	}

	log.Printf("APIHandler: User '%s' created incident group %s (%d records)", principal.Username, summary.GroupID, len(summary.Employees))
	api.RespondJSON(w, http.StatusCreated, summary)
}

// handleCorrectGroup handles POST /api/incident-groups/{groupID}/correct
func (h *APIHandler) handleCorrectGroup(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}
	groupID := r.PathValue("groupID")

	var req api.CorrectGroupRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if fieldErrors := api.Validate(req); fieldErrors != nil {
		api.RespondValidationError(w, fieldErrors)
		return
	}

	occurrence, err := api.ParseDate(req.OccurrenceDate)
	if err != nil {
		api.RespondError(w, http.StatusBadRequest, "occurrence_date must be a date in 2006-01-02 format")
		return
	}

	summary, err := h.incidentService.Correct(groupID, services.CreateGroupInput{
		IncidentTypeID: req.IncidentTypeID,
		EmployeeIDs:    req.EmployeeIDs,
		OccurrenceDate: occurrence,
		Description:    req.Description,
		Observations:   req.Observations,
	}, principal.UserID)
	if err != nil {
		h.respondGroupWriteError(w, err, groupWriteCorrect)
		return
	}

	log.Printf("APIHandler: User '%s' corrected incident group %s with %s", principal.Username, groupID, summary.GroupID)
	api.RespondJSON(w, http.StatusCreated, summary)
}

type groupWriteOp int

const (
	groupWriteCreate groupWriteOp = iota
	groupWriteCorrect
	groupWriteResolve
)

// respondGroupWriteError maps the service error taxonomy onto HTTP
// statuses. A terminal group is a 400 on the correct endpoint and a
// 409 on the resolution endpoint.
func (h *APIHandler) respondGroupWriteError(w http.ResponseWriter, err error, op groupWriteOp) {
	switch {
	case errors.Is(err, services.ErrEmptyEmployeeList):
		api.RespondError(w, http.StatusBadRequest, "employee_ids must contain at least one employee")
	case errors.Is(err, services.ErrEmptyDescription):
		api.RespondError(w, http.StatusBadRequest, "description is required")
	case errors.Is(err, services.ErrIncidentTypeInactive):
		api.RespondError(w, http.StatusBadRequest, "Incident type does not exist or is inactive")
	case errors.Is(err, services.ErrEmployeeNotFound):
		api.RespondError(w, http.StatusBadRequest, "One or more employees do not exist")
	case errors.Is(err, services.ErrGroupNotFound):
		api.RespondError(w, http.StatusNotFound, "Incident group not found")
	case errors.Is(err, services.ErrNoEmployeeProfile):
		api.RespondError(w, http.StatusForbidden, "Your account has no employee profile")
	case errors.Is(err, services.ErrGroupClosed):
		if op == groupWriteResolve {
			api.RespondError(w, http.StatusConflict, "Incident group is already closed")
		} else {
			api.RespondError(w, http.StatusBadRequest, "Incident group is already closed")
		}
	case errors.Is(err, services.ErrDuplicateResolution):
		api.RespondError(w, http.StatusConflict, "Incident group already has a resolution")
	default:
		log.Printf("APIHandler: Incident group write failed: %v", err)
		api.RespondError(w, http.StatusInternalServerError, "Failed to process incident group")
	}
}
