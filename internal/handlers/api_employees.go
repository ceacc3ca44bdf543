package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/nuevas-energias/hrcore/internal/api"
	"github.com/nuevas-energias/hrcore/internal/services"
)

// handleListEmployees handles GET /api/employees
func (h *APIHandler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}

	params := api.ParsePagination(r)
	employees, total, err := h.employeeService.ListEmployees(params.Offset(), params.PerPage)
	if err != nil {
		api.RespondError(w, http.StatusInternalServerError, "Failed to list employees")
		return
	}

	api.RespondJSON(w, http.StatusOK, api.PaginatedResponse{
		Data: api.EmployeesToListItems(employees),
		Pagination: api.PaginationMeta{
			Page:       params.Page,
			PerPage:    params.PerPage,
			Total:      total,
			TotalPages: params.TotalPages(total),
		},
	})
}

// handleGetEmployee handles GET /api/employees/{id}
func (h *APIHandler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}

	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		api.RespondError(w, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	employee, err := h.employeeService.GetEmployee(uint(id))
	if errors.Is(err, services.ErrEmployeeNotFound) {
		api.RespondError(w, http.StatusNotFound, "Employee not found")
		return
	}
	if err != nil {
		api.RespondError(w, http.StatusInternalServerError, "Failed to get employee")
		return
	}

	api.RespondJSON(w, http.StatusOK, employee)
}
