package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"crm-dedupe/internal/api"
	"crm-dedupe/internal/db"
	"crm-dedupe/internal/matching"
	"crm-dedupe/internal/repository"
	"crm-dedupe/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ContactServiceInterface is the part of service.ContactService the handler uses.
type ContactServiceInterface interface {
	CreateContact(ctx context.Context, req repository.CreateContactRequest, force bool) (*service.CreateContactResult, error)
	GetContact(ctx context.Context, id uuid.UUID) (*repository.Contact, error)
	ListContactsPage(ctx context.Context, params repository.ListContactsParams) ([]repository.Contact, int64, error)
	DeleteContact(ctx context.Context, id uuid.UUID) error
}

// ContactHandler handles contact-related HTTP requests
type ContactHandler struct {
	contactService ContactServiceInterface
	validator      *validator.Validate
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService ContactServiceInterface) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		validator:      validator.New(),
	}
}

// Contact response model
// @Description Contact information
type ContactResponse struct {
	ID        string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	FullName  string    `json:"full_name" example:"John Doe"`
	Email     *string   `json:"email,omitempty" example:"john.doe@example.com"`
	Phone     *string   `json:"phone,omitempty" example:"+15551234567"`
	Company   *string   `json:"company,omitempty" example:"Acme"`
	CreatedAt time.Time `json:"created_at" example:"2024-01-01T00:00:00Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2024-01-15T10:30:00Z"`
}

// MatchedContactResponse is the stored contact a match points at.
type MatchedContactResponse struct {
	ID    string  `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name  string  `json:"name" example:"John Smith"`
	Email *string `json:"email,omitempty" example:"john@example.com"`
	Phone *string `json:"phone,omitempty" example:"5551234567"`
}

// DuplicateMatchResponse is one probable duplicate
// @Description Probable duplicate of a contact
type DuplicateMatchResponse struct {
	Contact       MatchedContactResponse `json:"contact"`
	MatchType     string                 `json:"match_type" example:"similar_name" enums:"exact_email,exact_phone,similar_name,partial_match"`
	Confidence    int                    `json:"confidence" example:"90"`
	MatchedFields []string               `json:"matched_fields" example:"name,email_domain"`
}

// CreateContactResponse is a created contact with any advisory matches.
type CreateContactResponse struct {
	Contact    ContactResponse          `json:"contact"`
	Duplicates []DuplicateMatchResponse `json:"duplicates"`
	Warning    string                   `json:"warning,omitempty" example:"Potential duplicate found: John Smith (90% match on name, email_domain)"`
}

// DuplicateConflictResponse is returned with a 409 when creation is refused.
type DuplicateConflictResponse struct {
	Existing MatchedContactResponse `json:"existing"`
	Warning  string                 `json:"warning"`
}

// CreateContactRequest represents the request to create a contact
// @Description Create contact request
type CreateContactRequest struct {
	FullName string  `json:"full_name" validate:"required,min=1,max=255" example:"John Doe"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email,max=255" example:"john.doe@example.com"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=50" example:"+1 (555) 123-4567"`
	Company  *string `json:"company,omitempty" validate:"omitempty,max=255" example:"Acme"`
}

// ListContactsQuery represents query parameters for listing contacts
type ListContactsQuery struct {
	Page  int `form:"page" validate:"omitempty,min=1" example:"1"`
	Limit int `form:"limit" validate:"omitempty,min=1,max=1000" example:"20"`
}

func contactToResponse(contact *repository.Contact) ContactResponse {
	return ContactResponse{
		ID:        contact.ID.String(),
		FullName:  contact.FullName,
		Email:     contact.Email,
		Phone:     contact.Phone,
		Company:   contact.Company,
		CreatedAt: contact.CreatedAt,
		UpdatedAt: contact.UpdatedAt,
	}
}

func matchedContactToResponse(contact *matching.Contact) MatchedContactResponse {
	return MatchedContactResponse{
		ID:    contact.ID,
		Name:  contact.Name,
		Email: contact.Email,
		Phone: contact.Phone,
	}
}

func matchesToResponse(matches []matching.DuplicateMatch) []DuplicateMatchResponse {
	responses := make([]DuplicateMatchResponse, len(matches))
	for i, match := range matches {
		responses[i] = DuplicateMatchResponse{
			Contact:       matchedContactToResponse(match.Contact),
			MatchType:     string(match.MatchType),
			Confidence:    match.Confidence,
			MatchedFields: match.MatchedFields,
		}
	}
	return responses
}

// trimOptional trims surrounding whitespace so validation sees the stored value.
func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func parseForce(c *gin.Context) (bool, error) {
	raw := c.Query("force")
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}

// CreateContact creates a new contact
// @Summary Create a new contact
// @Description Create a contact after checking it for duplicates. A contact sharing an email or phone number with an existing one is rejected unless force=true.
// @Tags contacts
// @Accept json
// @Produce json
// @Param force query bool false "Create even when a definite duplicate exists"
// @Param contact body CreateContactRequest true "Contact information"
// @Success 201 {object} api.APIResponse{data=CreateContactResponse} "Contact created successfully"
// @Failure 400 {object} api.APIResponse{error=api.APIError} "Invalid request"
// @Failure 409 {object} api.APIResponse{data=DuplicateConflictResponse,error=api.APIError} "Definite duplicate"
// @Failure 500 {object} api.APIResponse{error=api.APIError} "Internal server error"
// @Router /contacts [post]
func (h *ContactHandler) CreateContact(c *gin.Context) {
	var req CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = trimOptional(req.Email)
	req.Phone = trimOptional(req.Phone)
	req.Company = trimOptional(req.Company)

	if err := h.validator.Struct(req); err != nil {
		api.SendValidationError(c, "Validation failed", err.Error())
		return
	}

	force, err := parseForce(c)
	if err != nil {
		api.SendValidationError(c, "Invalid force parameter", "force must be true or false")
		return
	}

	result, err := h.contactService.CreateContact(c.Request.Context(), repository.CreateContactRequest{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Company:  req.Company,
	}, force)
	if err != nil {
		var dupErr *service.DuplicateError
		if errors.As(err, &dupErr) {
			api.SendConflictWithData(c, dupErr.Error(), DuplicateConflictResponse{
				Existing: matchedContactToResponse(dupErr.Existing),
				Warning:  dupErr.Warning,
			})
			return
		}
		api.SendInternalError(c, "Failed to create contact")
		return
	}

	response := CreateContactResponse{
		Contact:    contactToResponse(result.Contact),
		Duplicates: matchesToResponse(result.Matches),
		Warning:    result.Warning,
	}
	api.SendSuccess(c, http.StatusCreated, response, nil)
}

// GetContact retrieves a contact by ID
// @Summary Get a contact by ID
// @Description Get a specific contact by its ID
// @Tags contacts
// @Produce json
// @Param id path string true "Contact ID" format(uuid)
// @Success 200 {object} api.APIResponse{data=ContactResponse} "Contact retrieved successfully"
// @Failure 400 {object} api.APIResponse{error=api.APIError} "Invalid contact ID"
// @Failure 404 {object} api.APIResponse{error=api.APIError} "Contact not found"
// @Failure 500 {object} api.APIResponse{error=api.APIError} "Internal server error"
// @Router /contacts/{id} [get]
func (h *ContactHandler) GetContact(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.SendValidationError(c, "Invalid contact ID", "ID must be a valid UUID")
		return
	}

	contact, err := h.contactService.GetContact(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			api.SendNotFound(c, "Contact")
			return
		}
		api.SendInternalError(c, "Failed to retrieve contact")
		return
	}

	api.SendSuccess(c, http.StatusOK, contactToResponse(contact), nil)
}

// ListContacts retrieves a paginated list of contacts
// @Summary List contacts
// @Description Get a paginated list of contacts ordered by name
// @Tags contacts
// @Produce json
// @Param page query int false "Page number" default(1) minimum(1)
// @Param limit query int false "Items per page" default(20) minimum(1) maximum(1000)
// @Success 200 {object} api.APIResponse{data=[]ContactResponse,meta=api.Meta} "Contacts retrieved successfully"
// @Failure 400 {object} api.APIResponse{error=api.APIError} "Invalid query parameters"
// @Failure 500 {object} api.APIResponse{error=api.APIError} "Internal server error"
// @Router /contacts [get]
func (h *ContactHandler) ListContacts(c *gin.Context) {
	var query ListContactsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		api.SendValidationError(c, "Invalid query parameters", err.Error())
		return
	}

	if err := h.validator.Struct(query); err != nil {
		api.SendValidationError(c, "Validation failed", err.Error())
		return
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 20
	}

	contacts, total, err := h.contactService.ListContactsPage(c.Request.Context(), repository.ListContactsParams{
		Limit:  int32(query.Limit),
		Offset: int32((query.Page - 1) * query.Limit),
	})
	if err != nil {
		api.SendInternalError(c, "Failed to retrieve contacts")
		return
	}

	responses := make([]ContactResponse, len(contacts))
	for i := range contacts {
		responses[i] = contactToResponse(&contacts[i])
	}

	totalPages := int(total) / query.Limit
	if int(total)%query.Limit > 0 {
		totalPages++
	}

	meta := &api.Meta{
		Pagination: &api.PaginationMeta{
			Page:  query.Page,
			Limit: query.Limit,
			Total: total,
			Pages: totalPages,
		},
	}

	api.SendSuccess(c, http.StatusOK, responses, meta)
}

// DeleteContact deletes a contact
// @Summary Delete a contact
// @Description Soft delete a contact by ID
// @Tags contacts
// @Produce json
// @Param id path string true "Contact ID" format(uuid)
// @Success 204 "Contact deleted successfully"
// @Failure 400 {object} api.APIResponse{error=api.APIError} "Invalid contact ID"
// @Failure 404 {object} api.APIResponse{error=api.APIError} "Contact not found"
// @Failure 500 {object} api.APIResponse{error=api.APIError} "Internal server error"
// @Router /contacts/{id} [delete]
func (h *ContactHandler) DeleteContact(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.SendValidationError(c, "Invalid contact ID", "ID must be a valid UUID")
		return
	}

	if err := h.contactService.DeleteContact(c.Request.Context(), id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			api.SendNotFound(c, "Contact")
			return
		}
		api.SendInternalError(c, "Failed to delete contact")
		return
	}

	c.Status(http.StatusNoContent)
}
