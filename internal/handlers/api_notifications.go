package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/nuevas-energias/hrcore/internal/api"
	"github.com/nuevas-energias/hrcore/internal/services"
)

// handleListNotifications handles GET /api/notifications. Users only
// ever see their own notifications.
func (h *APIHandler) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	params := api.ParsePagination(r)
	notifications, total, err := h.notificationService.ListForUser(principal.UserID, params.Offset(), params.PerPage)
	if err != nil {
		api.RespondError(w, http.StatusInternalServerError, "Failed to list notifications")
		return
	}

	api.RespondJSON(w, http.StatusOK, api.PaginatedResponse{
		Data: notifications,
		Pagination: api.PaginationMeta{
			Page:       params.Page,
			PerPage:    params.PerPage,
			Total:      total,
			TotalPages: params.TotalPages(total),
		},
	})
}

// handleMarkNotificationRead handles POST /api/notifications/{id}/read
func (h *APIHandler) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		api.RespondError(w, http.StatusBadRequest, "Invalid notification ID")
		return
	}

	if err := h.notificationService.MarkRead(principal.UserID, uint(id)); err != nil {
		if errors.Is(err, services.ErrNotificationNotFound) {
			api.RespondError(w, http.StatusNotFound, "Notification not found")
			return
		}
		api.RespondError(w, http.StatusInternalServerError, "Failed to mark notification as read")
		return
	}

	api.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
