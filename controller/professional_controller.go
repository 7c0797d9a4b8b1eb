package controller

import (
	"context"
	"encoding/csv"
	"io"
	"net/http"
	"strings"

	"medstaff-backend/middelware"
	"medstaff-backend/models"
	"medstaff-backend/services"
	"medstaff-backend/utils/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ProfessionalController struct {
	ctx           context.Context
	service       services.ProfessionalServiceInterface
	importService services.ImportServiceInterface
	logger        logger.Logger
	validator     *validator.Validate
}

func NewProfessionalController(ctx context.Context, service services.ProfessionalServiceInterface, importService services.ImportServiceInterface, log logger.Logger) *ProfessionalController {
	return &ProfessionalController{
		ctx:           ctx,
		service:       service,
		importService: importService,
		logger:        log,
		validator:     validator.New(),
	}
}

// formatValidationErrors formats validation errors into readable messages
func (h *ProfessionalController) formatValidationErrors(err error) string {
	var errorMessages []string

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			switch fieldError.Tag() {
			case "required":
				errorMessages = append(errorMessages, fieldError.Field()+" is required")
			case "email":
				errorMessages = append(errorMessages, fieldError.Field()+" must be a valid email address")
			default:
				errorMessages = append(errorMessages, fieldError.Field()+" is invalid")
			}
		}
	}

	return strings.Join(errorMessages, "; ")
}

// Add handles POST /professionals. Anonymous callers sign up themselves;
// organization sessions add a professional to their organization. When
// the account already exists the response is 200 with the affiliated
// account, a 201 is a newly created one.
func (h *ProfessionalController) Add(c *gin.Context) {
	var req models.AddProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON:", err)
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Invalid request",
			Error: &models.APIError{
				Type:    "ValidationError",
				Details: err.Error(),
			},
		})
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.logger.Error("Validation failed:", err)
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Validation failed",
			Error: &models.APIError{
				Type:    "ValidationError",
				Details: h.formatValidationErrors(err),
			},
		})
		return
	}
	req.SignupIPAddress = c.ClientIP()

	session := middelware.SessionFrom(c)
	professional, created, err := h.service.AddProfessional(c.Request.Context(), session, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	status := http.StatusOK
	message := "Affiliation added to existing account"
	if created {
		status = http.StatusCreated
		message = "Professional created successfully"
	}
	c.JSON(status, models.APIResponse{
		Status:  "success",
		Code:    status,
		Message: message,
		Data:    professional,
	})
}

// Get handles GET /professionals/:id
func (h *ProfessionalController) Get(c *gin.Context) {
	session := middelware.SessionFrom(c)

	professional, err := h.service.GetProfessional(c.Request.Context(), session, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Professional retrieved successfully",
		Data:    professional,
	})
}

// Update handles PATCH /professionals/:id
func (h *ProfessionalController) Update(c *gin.Context) {
	var req models.UpdateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON:", err)
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Invalid request",
			Error: &models.APIError{
				Type:    "ValidationError",
				Details: err.Error(),
			},
		})
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.logger.Error("Validation failed:", err)
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Validation failed",
			Error: &models.APIError{
				Type:    "ValidationError",
				Details: h.formatValidationErrors(err),
			},
		})
		return
	}

	session := middelware.SessionFrom(c)
	professional, err := h.service.UpdateProfessional(c.Request.Context(), session, c.Param("id"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Professional updated successfully",
		Data:    professional,
	})
}

// BulkImport handles POST /professionals/import. The body is a CSV
// file, either uploaded as the multipart field "file" or sent raw. The
// first record is the header row.
func (h *ProfessionalController) BulkImport(c *gin.Context) {
	rows, err := h.readCSV(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Invalid CSV payload",
			Error: &models.APIError{
				Type:    "ValidationError",
				Details: err.Error(),
			},
		})
		return
	}

	session := middelware.SessionFrom(c)
	summary, err := h.importService.BulkImport(c.Request.Context(), session, rows)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Import completed",
		Data:    summary,
	})
}

func (h *ProfessionalController) readCSV(c *gin.Context) ([]map[string]string, error) {
	var source io.Reader = c.Request.Body
	if file, _, err := c.Request.FormFile("file"); err == nil {
		defer file.Close()
		source = file
	}

	reader := csv.NewReader(source)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
