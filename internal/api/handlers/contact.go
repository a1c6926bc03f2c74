package handlers

import (
	"errors"
	"net/http"

	apperrors "letter-office-backend/internal/errors"
	"letter-office-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContactHandler handles HTTP requests for contacts
type ContactHandler struct {
	service service.ContactServiceInterface
}

// NewContactHandler creates a new contact handler
func NewContactHandler(service service.ContactServiceInterface) *ContactHandler {
	return &ContactHandler{service: service}
}

// CreateContact handles POST /api/contacts
func (h *ContactHandler) CreateContact(c *gin.Context) {
	var req service.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	contact, err := h.service.Create(&req)
	if err != nil {
		if errors.Is(err, apperrors.ErrOrganizationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create contact", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, contact)
}

// GetContact handles GET /api/contacts/:id
func (h *ContactHandler) GetContact(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact ID: invalid UUID format"})
		return
	}

	contact, err := h.service.GetByID(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrContactNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get contact", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, contact)
}

// ListContacts handles GET /api/contacts
func (h *ContactHandler) ListContacts(c *gin.Context) {
	organizationID, ok := parseOptionalUUIDQuery(c, "organization_id")
	if !ok {
		return
	}

	contacts, err := h.service.List(organizationID, c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get contacts", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, contacts)
}

// UpdateContact handles PUT /api/contacts/:id
func (h *ContactHandler) UpdateContact(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact ID"})
		return
	}

	var req service.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	contact, err := h.service.Update(id, &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrContactNotFound) || errors.Is(err, apperrors.ErrOrganizationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update contact", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, contact)
}

// DeleteContact handles DELETE /api/contacts/:id
func (h *ContactHandler) DeleteContact(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact ID"})
		return
	}

	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, apperrors.ErrContactNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete contact", "details": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
