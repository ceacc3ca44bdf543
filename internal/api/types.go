package api

// ========== Incident Group Types ==========

// CreateGroupRequest is the request body for POST /api/incident-groups.
type CreateGroupRequest struct {
	IncidentTypeID uint   `json:"incident_type_id" validate:"required"`
	EmployeeIDs    []uint `json:"employee_ids" validate:"required,min=1"`
	OccurrenceDate string `json:"occurrence_date" validate:"required,datetime=2006-01-02"`
	Description    string `json:"description" validate:"required,max=255"`
	Observations   string `json:"observations" validate:"omitempty,max=255"`
}

// CorrectGroupRequest is the request body for
// POST /api/incident-groups/:groupID/correct. It carries the revised
// version of the case; the original group is closed by the correction.
type CorrectGroupRequest struct {
	IncidentTypeID uint   `json:"incident_type_id" validate:"required"`
	EmployeeIDs    []uint `json:"employee_ids" validate:"required,min=1"`
	OccurrenceDate string `json:"occurrence_date" validate:"required,datetime=2006-01-02"`
	Description    string `json:"description" validate:"required,max=255"`
	Observations   string `json:"observations" validate:"omitempty,max=255"`
}

// ========== Resolution Types ==========

// CreateResolutionRequest is the request body for POST /api/resolutions.
type CreateResolutionRequest struct {
	GroupID     string `json:"group_id" validate:"required,uuid4"`
	Description string `json:"description" validate:"required,max=255"`
}

// ========== Statement Types ==========

// CreateStatementRequest is the request body for
// POST /api/records/:recordID/statements.
type CreateStatementRequest struct {
	Content        string `json:"content" validate:"required,max=255"`
	AttachmentPath string `json:"attachment_path" validate:"omitempty,max=255"`
}

// ========== Incident Catalog Types ==========

// CreateIncidentTypeRequest is the request body for POST /api/incident-types.
type CreateIncidentTypeRequest struct {
	Label       string `json:"label" validate:"required,min=1,max=255"`
	Description string `json:"description"`
}

// UpdateIncidentTypeRequest is the request body for PUT /api/incident-types/:id.
// Nil fields are left unchanged.
type UpdateIncidentTypeRequest struct {
	Label       *string `json:"label" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

// ========== Pagination Types ==========

// PaginationMeta contains pagination metadata for list responses.
type PaginationMeta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// PaginatedResponse wraps a list response with pagination metadata.
type PaginatedResponse struct {
	Data       interface{}    `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

// ========== Mapper Output Types ==========

// EmployeeListItem is the compact employee representation for list
// views. It omits the user link and timestamps.
type EmployeeListItem struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	DNI       string `json:"dni"`
	Email     string `json:"email"`
	Status    string `json:"status"`
}
