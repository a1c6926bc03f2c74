package handlers

import (
	"errors"
	"net/http"
	"path/filepath"

	"letter-office-backend/internal/auth"
	apperrors "letter-office-backend/internal/errors"
	"letter-office-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LetterHandler handles HTTP requests for letters
type LetterHandler struct {
	service service.LetterServiceInterface
}

// NewLetterHandler creates a new letter handler
func NewLetterHandler(service service.LetterServiceInterface) *LetterHandler {
	return &LetterHandler{service: service}
}

// GenerateLetter handles POST /api/letters
func (h *LetterHandler) GenerateLetter(c *gin.Context) {
	var req service.GenerateLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	var userID *uuid.UUID
	if v, exists := c.Get(auth.ContextUserIDKey); exists {
		if id, ok := v.(uuid.UUID); ok {
			userID = &id
		}
	}

	resp, err := h.service.Generate(&req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrOrganizationNotFound),
			errors.Is(err, apperrors.ErrContactNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrTemplateNotConfigured),
			apperrors.IsFileError(err):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case isValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate letter", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListLetters handles GET /api/letters
func (h *LetterHandler) ListLetters(c *gin.Context) {
	organizationID, ok := parseOptionalUUIDQuery(c, "organization_id")
	if !ok {
		return
	}
	contactID, ok := parseOptionalUUIDQuery(c, "contact_id")
	if !ok {
		return
	}

	letters, err := h.service.List(organizationID, contactID, c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get letters", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, letters)
}

// GetLetterTypes handles GET /api/letters/types
func (h *LetterHandler) GetLetterTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"types": h.service.TypeLabels()})
}

// GetLetter handles GET /api/letters/:code
func (h *LetterHandler) GetLetter(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Letter code is required"})
		return
	}

	letter, err := h.service.GetByCode(code)
	if err != nil {
		if errors.Is(err, apperrors.ErrLetterNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get letter", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, letter)
}

// DownloadLetter handles GET /api/letters/:code/file, streaming the
// generated document
func (h *LetterHandler) DownloadLetter(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Letter code is required"})
		return
	}

	path, err := h.service.ResolveFile(code)
	if err != nil {
		if errors.Is(err, apperrors.ErrLetterNotFound) || apperrors.IsFileError(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve letter file", "details": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filepath.Base(path)+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	c.File(path)
}
