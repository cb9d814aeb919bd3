package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"crm-dedupe/internal/api"
	"crm-dedupe/internal/matching"
	"crm-dedupe/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// DuplicateServiceInterface is the part of service.DuplicateService the handler uses.
type DuplicateServiceInterface interface {
	Check(ctx context.Context, candidate matching.Candidate) (*service.DuplicateCheck, error)
	CheckWithThreshold(ctx context.Context, candidate matching.Candidate, threshold int) (*service.DuplicateCheck, error)
	PreviewImport(ctx context.Context, rows []matching.Candidate) (*service.ImportPreview, error)
	Scan(ctx context.Context) (*service.ScanReport, error)
	LatestScan() *service.ScanReport
	Rules() matching.Rules
}

// DuplicateHandler exposes duplicate detection over HTTP
type DuplicateHandler struct {
	duplicateService DuplicateServiceInterface
	validator        *validator.Validate
}

func NewDuplicateHandler(duplicateService DuplicateServiceInterface) *DuplicateHandler {
	return &DuplicateHandler{
		duplicateService: duplicateService,
		validator:        validator.New(),
	}
}

// CheckDuplicatesRequest is a prospective contact to check
// @Description Duplicate check request
type CheckDuplicatesRequest struct {
	Name      string  `json:"name" validate:"max=255" example:"John Smyth"`
	Email     string  `json:"email" validate:"max=255" example:"different@example.com"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=50" example:"555-123-4567"`
	Threshold *int    `json:"threshold,omitempty" validate:"omitempty,min=0,max=100" example:"70"`
}

// CheckDuplicatesResponse lists the probable duplicates of a prospective contact
type CheckDuplicatesResponse struct {
	Matches           []DuplicateMatchResponse `json:"matches"`
	Warning           string                   `json:"warning,omitempty"`
	DefiniteDuplicate *MatchedContactResponse  `json:"definite_duplicate,omitempty"`
	Threshold         int                      `json:"threshold" example:"70"`
	Compared          int                      `json:"compared" example:"120"`
	Truncated         bool                     `json:"truncated,omitempty"`
}

// ImportContactRequest is one row of an import batch
type ImportContactRequest struct {
	Name  string  `json:"name" validate:"required,max=255" example:"Jane Doe"`
	Email string  `json:"email" validate:"max=255" example:"jane@example.com"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,max=50" example:"+1 555 000 1234"`
}

// ImportPreviewRequest is a batch of contacts about to be imported
type ImportPreviewRequest struct {
	Contacts []ImportContactRequest `json:"contacts" validate:"required,min=1,max=1000,dive"`
}

// ImportRowResponse is the suggested handling of one import row
type ImportRowResponse struct {
	Index       int                      `json:"index" example:"0"`
	Name        string                   `json:"name" example:"Jane Doe"`
	Decision    string                   `json:"decision" example:"review" enums:"create,review,skip"`
	Matches     []DuplicateMatchResponse `json:"matches"`
	Warning     string                   `json:"warning,omitempty"`
	DuplicateOf *MatchedContactResponse  `json:"duplicate_of,omitempty"`
}

// ImportPreviewResponse summarizes an import batch
type ImportPreviewResponse struct {
	Rows      []ImportRowResponse `json:"rows"`
	Create    int                 `json:"create" example:"8"`
	Review    int                 `json:"review" example:"1"`
	Skip      int                 `json:"skip" example:"1"`
	Compared  int                 `json:"compared" example:"120"`
	Truncated bool                `json:"truncated,omitempty"`
}

func candidateFromCheck(req CheckDuplicatesRequest) matching.Candidate {
	return matching.Candidate{
		Name:  strings.TrimSpace(req.Name),
		Email: req.Email,
		Phone: req.Phone,
	}
}

// CheckDuplicates reports stored contacts that probably duplicate a prospective one
// @Summary Check a contact for duplicates
// @Description Compare a prospective contact with stored contacts. Matches are ranked by confidence, highest first.
// @Tags duplicates
// @Accept json
// @Produce json
// @Param contact body CheckDuplicatesRequest true "Prospective contact"
// @Success 200 {object} api.APIResponse{data=CheckDuplicatesResponse} "Duplicate check completed"
// @Failure 400 {object} api.APIResponse{error=api.APIError} "Invalid request"
// @Failure 500 {object} api.APIResponse{error=api.APIError} "Internal server error"
// @Router /contacts/duplicates/check [post]
func (h *DuplicateHandler) CheckDuplicates(c *gin.Context) {
	var req CheckDuplicatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(req); err != nil {
		api.SendValidationError(c, "Validation failed", err.Error())
		return
	}

	candidate := candidateFromCheck(req)
	threshold := h.duplicateService.Rules().Threshold

	var (
		check *service.DuplicateCheck
		err   error
	)
	if req.Threshold != nil {
		threshold = *req.Threshold
		check, err = h.duplicateService.CheckWithThreshold(c.Request.Context(), candidate, threshold)
	} else {
		check, err = h.duplicateService.Check(c.Request.Context(), candidate)
	}
	if err != nil {
		api.SendInternalError(c, "Failed to check for duplicates")
		return
	}

	response := CheckDuplicatesResponse{
		Matches:   matchesToResponse(check.Matches),
		Warning:   check.Warning,
		Threshold: threshold,
		Compared:  check.Compared,
		Truncated: check.Truncated,
	}
	if check.Definite != nil {
		definite := matchedContactToResponse(check.Definite)
		response.DefiniteDuplicate = &definite
	}

	api.SendSuccess(c, http.StatusOK, response, nil)
}

// PreviewImport reports how each row of an import batch relates to stored contacts
// @Summary Preview an import batch
// @Description Check each row against stored contacts and earlier rows of the batch
// @Tags duplicates
// @Accept json
// @Produce json
// @Param batch body ImportPreviewRequest true "Contacts to import"
// @Success 200 {object} api.APIResponse{data=ImportPreviewResponse} "Preview generated"
// @Failure 400 {object} api.APIResponse{error=api.APIError} "Invalid request"
// @Failure 500 {object} api.APIResponse{error=api.APIError} "Internal server error"
// @Router /contacts/import/preview [post]
func (h *DuplicateHandler) PreviewImport(c *gin.Context) {
	var req ImportPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(req); err != nil {
		api.SendValidationError(c, "Validation failed", err.Error())
		return
	}

	rows := make([]matching.Candidate, len(req.Contacts))
	for i, row := range req.Contacts {
		rows[i] = matching.Candidate{
			Name:  strings.TrimSpace(row.Name),
			Email: row.Email,
			Phone: row.Phone,
		}
	}

	preview, err := h.duplicateService.PreviewImport(c.Request.Context(), rows)
	if err != nil {
		api.SendInternalError(c, "Failed to preview import")
		return
	}

	response := ImportPreviewResponse{
		Rows:      make([]ImportRowResponse, len(preview.Rows)),
		Create:    preview.Create,
		Review:    preview.Review,
		Skip:      preview.Skip,
		Compared:  preview.Compared,
		Truncated: preview.Truncated,
	}
	for i, row := range preview.Rows {
		rowResponse := ImportRowResponse{
			Index:    row.Index,
			Name:     row.Candidate.Name,
			Decision: string(row.Decision),
			Matches:  matchesToResponse(row.Matches),
			Warning:  row.Warning,
		}
		if row.DuplicateOf != nil {
			duplicateOf := matchedContactToResponse(row.DuplicateOf)
			rowResponse.DuplicateOf = &duplicateOf
		}
		response.Rows[i] = rowResponse
	}

	api.SendSuccess(c, http.StatusOK, response, nil)
}

// RunScan compares every stored contact with the others
// @Summary Run a duplicate scan
// @Description Scan all stored contacts for probable duplicate pairs. Only one scan runs at a time.
// @Tags duplicates
// @Produce json
// @Success 200 {object} api.APIResponse{data=service.ScanReport} "Scan completed"
// @Failure 409 {object} api.APIResponse{error=api.APIError} "Scan already running"
// @Failure 500 {object} api.APIResponse{error=api.APIError} "Internal server error"
// @Router /duplicates/scan [post]
func (h *DuplicateHandler) RunScan(c *gin.Context) {
	report, err := h.duplicateService.Scan(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrScanInProgress) {
			api.SendConflict(c, "A duplicate scan is already running")
			return
		}
		api.SendInternalError(c, "Failed to scan for duplicates")
		return
	}

	api.SendSuccess(c, http.StatusOK, report, nil)
}

// GetLatestScan returns the most recent scan report
// @Summary Get the latest duplicate scan
// @Tags duplicates
// @Produce json
// @Success 200 {object} api.APIResponse{data=service.ScanReport} "Latest scan report"
// @Failure 404 {object} api.APIResponse{error=api.APIError} "No scan has run yet"
// @Router /duplicates/scan/latest [get]
func (h *DuplicateHandler) GetLatestScan(c *gin.Context) {
	report := h.duplicateService.LatestScan()
	if report == nil {
		api.SendNotFound(c, "Scan report")
		return
	}

	api.SendSuccess(c, http.StatusOK, report, nil)
}
