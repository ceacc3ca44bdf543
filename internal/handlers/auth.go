package handlers

import (
	"log"
	"net/http"

	"github.com/nuevas-energias/hrcore/internal/api"
	"github.com/nuevas-energias/hrcore/internal/database"
	"github.com/nuevas-energias/hrcore/internal/middleware"
	"github.com/nuevas-energias/hrcore/internal/services"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	jwtAuth         *middleware.JWTAuthMiddleware
	employeeService *services.EmployeeService
	expiryHours     int
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(jwtAuth *middleware.JWTAuthMiddleware, employeeService *services.EmployeeService, expiryHours int) *AuthHandler {
	return &AuthHandler{
		jwtAuth:         jwtAuth,
		employeeService: employeeService,
		expiryHours:     expiryHours,
	}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token     string            `json:"token"`
	Username  string            `json:"username"`
	Role      database.UserRole `json:"role"`
	ExpiresIn int               `json:"expires_in"` // seconds
}

// SetupRoutes sets up authentication routes
func (h *AuthHandler) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /auth/login", h.handleLogin)
	mux.HandleFunc("GET /auth/me", h.handleMe)
}

// handleLogin handles POST /auth/login
func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" {
		api.RespondError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := h.jwtAuth.ValidateCredentials(req.Username, req.Password)
	if err != nil {
		log.Printf("AuthHandler: Failed login attempt for user '%s' from %s", req.Username, r.RemoteAddr)
		api.RespondError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, err := h.jwtAuth.GenerateToken(user)
	if err != nil {
		log.Printf("AuthHandler: Failed to generate token for user '%s': %v", req.Username, err)
		api.RespondError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	log.Printf("AuthHandler: User '%s' logged in from %s", user.Username, r.RemoteAddr)

	api.RespondJSON(w, http.StatusOK, LoginResponse{
		Token:     token,
		Username:  user.Username,
		Role:      user.Role,
		ExpiresIn: h.expiryHours * 60 * 60,
	})
}

// handleMe handles GET /auth/me - returns the authenticated principal
// and, when one exists, the linked employee profile.
func (h *AuthHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		api.RespondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	response := map[string]interface{}{
		"id":       principal.UserID,
		"username": principal.Username,
		"role":     principal.Role,
	}

	employee, err := h.employeeService.EmployeeForUser(principal.UserID)
	if err != nil {
		api.RespondError(w, http.StatusInternalServerError, "Failed to resolve employee profile")
		return
	}
	if employee != nil {
		response["employee"] = employee
	}

	api.RespondJSON(w, http.StatusOK, response)
}
