package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/nuevas-energias/hrcore/internal/api"
	"github.com/nuevas-energias/hrcore/internal/services"
)

// handleListStatements handles GET /api/records/{recordID}/statements
func (h *APIHandler) handleListStatements(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	recordID, err := strconv.ParseUint(r.PathValue("recordID"), 10, 32)
	if err != nil {
		api.RespondError(w, http.StatusBadRequest, "Invalid record ID")
		return
	}

	statements, err := h.statementService.ListStatements(uint(recordID), principal.UserID, principal.IsAdmin())
	if errors.Is(err, services.ErrRecordNotFound) {
		api.RespondError(w, http.StatusNotFound, "Incident record not found")
		return
	}
	if err != nil {
		log.Printf("APIHandler: Failed to list statements for record %d: %v", recordID, err)
		api.RespondError(w, http.StatusInternalServerError, "Failed to list statements")
		return
	}

	api.RespondJSON(w, http.StatusOK, statements)
}

// handleCreateStatement handles POST /api/records/{recordID}/statements
func (h *APIHandler) handleCreateStatement(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	recordID, err := strconv.ParseUint(r.PathValue("recordID"), 10, 32)
	if err != nil {
		api.RespondError(w, http.StatusBadRequest, "Invalid record ID")
		return
	}

	var req api.CreateStatementRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if fieldErrors := api.Validate(req); fieldErrors != nil {
		api.RespondValidationError(w, fieldErrors)
		return
	}

	statement, err := h.statementService.CreateStatement(uint(recordID), req.Content, req.AttachmentPath, principal.UserID, principal.IsAdmin())
	switch {
	case errors.Is(err, services.ErrRecordNotFound):
		api.RespondError(w, http.StatusNotFound, "Incident record not found")
		return
	case errors.Is(err, services.ErrNoEmployeeProfile):
		api.RespondError(w, http.StatusForbidden, "Your account has no employee profile")
		return
	case errors.Is(err, services.ErrNotRecordOwner):
		api.RespondError(w, http.StatusForbidden, "You can only add statements to your own records")
		return
	case err != nil:
		log.Printf("APIHandler: Failed to create statement for record %d: %v", recordID, err)
		api.RespondError(w, http.StatusInternalServerError, "Failed to create statement")
		return
	}

	api.RespondJSON(w, http.StatusCreated, statement)
}
