package controller

import (
	"context"
	"errors"
	"net/http"

	"medstaff-backend/dal"
	"medstaff-backend/middelware"
	"medstaff-backend/models"
	"medstaff-backend/repository"
	"medstaff-backend/services"
	"medstaff-backend/utils/logger"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	Professional *ProfessionalController
	Briefcase    *BriefcaseController

	jwtManager *middelware.JWTManager
	logger     logger.Logger
}

func NewController(ctx context.Context, cfg *models.Config, log logger.Logger) *Controller {
	dbclient, err := dal.NewDynamoDBClient(cfg, log)
	if err != nil {
		log.Fatalf("Failed to initialize DynamoDB client: %v", err)
	}
	store, err := dal.NewObjectStoreClient(cfg, log)
	if err != nil {
		log.Fatalf("Failed to initialize object store client: %v", err)
	}

	repo := repository.NewRepository(dbclient, cfg, log)
	svc := services.NewService(repo, store, cfg, log)
	jwtManager := middelware.NewJWTManager(cfg, log, repo.Professional)

	return &Controller{
		Professional: NewProfessionalController(ctx, svc.GetProfessionalService(), svc.GetImportService(), log),
		Briefcase:    NewBriefcaseController(ctx, svc.GetBriefcaseService(), log),
		jwtManager:   jwtManager,
		logger:       log,
	}
}

func (c *Controller) RegisterRoutes(ctx context.Context, config *models.Config, r *gin.Engine, basePath string) error {
	corsMiddleware := middelware.NewCORSMiddleware(config)
	loggingMiddleware := middelware.NewLoggingMiddleware(c.logger)

	r.Use(corsMiddleware.CORS())
	r.Use(loggingMiddleware.RequestLogger())
	r.Use(loggingMiddleware.Recovery())

	v1 := r.Group(basePath)

	// Health check endpoint (no auth required)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"version": config.AppVersion,
			"service": config.AppName,
		})
	})

	v1.POST("/auth/login", c.jwtManager.LoginEndpoint)

	// Signup accepts anonymous requests; an organization session changes
	// the affiliation handling but is not required.
	professionals := v1.Group("/professionals")
	professionals.POST("", c.jwtManager.OptionalAuth(), c.Professional.Add)
	professionals.POST("/import", c.jwtManager.AuthMiddleware(), c.Professional.BulkImport)
	professionals.GET("/:id", c.jwtManager.AuthMiddleware(), c.Professional.Get)
	professionals.PATCH("/:id", c.jwtManager.AuthMiddleware(), c.Professional.Update)

	briefcase := professionals.Group("/:id/briefcase", c.jwtManager.AuthMiddleware())
	briefcase.POST("/:field", c.Briefcase.AddItem)
	briefcase.PATCH("/:field/:itemId", c.Briefcase.UpdateItem)
	briefcase.DELETE("/:field/:itemId", c.Briefcase.DeleteItem)

	srv := &http.Server{
		Addr:    config.AppHost + ":" + config.AppPort,
		Handler: r,
	}
	c.logger.Infof("Starting server on %s:%s", config.AppHost, config.AppPort)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// respondError translates service errors into API responses.
func respondError(c *gin.Context, log logger.Logger, err error) {
	if gate, ok := models.IsAddAffiliationRequired(err); ok {
		c.JSON(http.StatusConflict, models.APIResponse{
			Status:  "error",
			Code:    http.StatusConflict,
			Message: "Affiliation confirmation required",
			Error: &models.APIError{
				Type:    "AffiliationConfirmationRequired",
				Details: gate.Error(),
			},
			Data: map[string]interface{}{
				"professional_id": gate.ProfessionalID,
			},
		})
		return
	}

	var rowErrs models.RowErrors
	if errors.As(err, &rowErrs) {
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Invalid import data",
			Error: &models.APIError{
				Type:    "ValidationError",
				Details: rowErrs.Error(),
			},
		})
		return
	}

	status := http.StatusInternalServerError
	errType := "InternalError"
	message := "Request failed"

	switch {
	case errors.Is(err, models.ErrAccountAlreadyExists):
		status, errType, message = http.StatusConflict, "ConflictError", "Account already exists"
	case errors.Is(err, models.ErrEmailAlreadyInUse):
		status, errType, message = http.StatusBadRequest, "ValidationError", "Email already in use"
	case errors.Is(err, models.ErrDeactivatedAccount):
		status, errType, message = http.StatusForbidden, "AccessDenied", "Account has been deactivated"
	case errors.Is(err, models.ErrUnauthorized):
		status, errType, message = http.StatusForbidden, "AccessDenied", "Not allowed"
	case errors.Is(err, models.ErrUserNotFound):
		status, errType, message = http.StatusNotFound, "NotFoundError", "Account not found"
	case errors.Is(err, models.ErrBriefcaseItemNotFound):
		status, errType, message = http.StatusNotFound, "NotFoundError", "Briefcase item not found"
	case errors.Is(err, models.ErrOrganizationNotFound):
		status, errType, message = http.StatusBadRequest, "ValidationError", "Unknown organization"
	case errors.Is(err, models.ErrDepartmentNotFound):
		status, errType, message = http.StatusBadRequest, "ValidationError", "Unknown department"
	case errors.Is(err, models.ErrPasswordRequired):
		status, errType, message = http.StatusBadRequest, "ValidationError", "Password is required"
	case errors.Is(err, models.ErrProfessionAlreadyAssigned):
		status, errType, message = http.StatusBadRequest, "ValidationError", "Profession cannot be changed"
	}

	if status == http.StatusInternalServerError {
		log.Errorf("Request failed: %v", err)
	}

	c.JSON(status, models.APIResponse{
		Status:  "error",
		Code:    status,
		Message: message,
		Error: &models.APIError{
			Type:    errType,
			Details: err.Error(),
		},
	})
}
