package controller

import (
	"context"
	"io"
	"net/http"

	"medstaff-backend/middelware"
	"medstaff-backend/models"
	"medstaff-backend/services"
	"medstaff-backend/utils/logger"

	"github.com/gin-gonic/gin"
)

type BriefcaseController struct {
	ctx     context.Context
	service services.BriefcaseServiceInterface
	logger  logger.Logger
}

func NewBriefcaseController(ctx context.Context, service services.BriefcaseServiceInterface, log logger.Logger) *BriefcaseController {
	return &BriefcaseController{
		ctx:     ctx,
		service: service,
		logger:  log,
	}
}

// The item payload stays raw here. Each briefcase field has its own
// item type and the service decodes against it.
func (h *BriefcaseController) fieldAndPayload(c *gin.Context, withBody bool) (models.BriefcaseField, []byte, bool) {
	field, err := models.ParseBriefcaseField(c.Param("field"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Unknown briefcase field",
			Error: &models.APIError{
				Type:    "ValidationError",
				Details: err.Error(),
				Field:   c.Param("field"),
			},
		})
		return "", nil, false
	}

	if !withBody {
		return field, nil, true
	}

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil || len(payload) == 0 {
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error: &models.APIError{
				Type:    "ValidationError",
				Details: "request body must be a JSON item",
			},
		})
		return "", nil, false
	}
	return field, payload, true
}

// AddItem handles POST /professionals/:id/briefcase/:field
func (h *BriefcaseController) AddItem(c *gin.Context) {
	field, payload, ok := h.fieldAndPayload(c, true)
	if !ok {
		return
	}

	session := middelware.SessionFrom(c)
	item, err := h.service.AddItem(c.Request.Context(), session, c.Param("id"), field, payload)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, models.APIResponse{
		Status:  "success",
		Code:    http.StatusCreated,
		Message: "Briefcase item added successfully",
		Data:    item,
	})
}

// UpdateItem handles PATCH /professionals/:id/briefcase/:field/:itemId
func (h *BriefcaseController) UpdateItem(c *gin.Context) {
	field, payload, ok := h.fieldAndPayload(c, true)
	if !ok {
		return
	}

	session := middelware.SessionFrom(c)
	item, err := h.service.UpdateItem(c.Request.Context(), session, c.Param("id"), field, c.Param("itemId"), payload)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Briefcase item updated successfully",
		Data:    item,
	})
}

// DeleteItem handles DELETE /professionals/:id/briefcase/:field/:itemId
func (h *BriefcaseController) DeleteItem(c *gin.Context) {
	field, _, ok := h.fieldAndPayload(c, false)
	if !ok {
		return
	}

	session := middelware.SessionFrom(c)
	if err := h.service.DeleteItem(c.Request.Context(), session, c.Param("id"), field, c.Param("itemId")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Briefcase item deleted successfully",
	})
}
