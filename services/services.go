package services

import (
	"medstaff-backend/dal"
	"medstaff-backend/models"
	"medstaff-backend/repository"
	"medstaff-backend/utils/logger"
)

// Service bundles the service layer behind its interfaces
type Service struct {
	professionalService ProfessionalServiceInterface
	importService       ImportServiceInterface
	briefcaseService    BriefcaseServiceInterface
}

// NewService creates a new service container with all dependencies injected
func NewService(
	repo *repository.Repository,
	store dal.ObjectStoreInterface,
	cfg *models.Config,
	log logger.Logger,
) *Service {
	assets := NewAssetManager(store, repo.UploadedFile, log)
	dispatcher := NewDispatcher(
		repo.Organization,
		NewHTTPWebhookPublisher(log),
		NewHTTPNotificationSender(cfg.MailerEndpoint, log),
		log,
	)
	verifier := NewHTTPLicenseVerifier(log)

	professionalService := NewProfessionalService(
		repo.Professional, repo.Organization, repo.Lookup, repo.Audit, repo.Settings,
		assets, dispatcher, log,
	)

	return &Service{
		professionalService: professionalService,
		importService:       NewImportService(professionalService, repo.Professional, repo.Lookup, log),
		briefcaseService: NewBriefcaseService(
			repo.Professional, repo.Lookup, repo.Audit, repo.Settings,
			assets, dispatcher, verifier, log,
		),
	}
}

// GetProfessionalService returns the professional service interface
func (s *Service) GetProfessionalService() ProfessionalServiceInterface {
	return s.professionalService
}

// GetImportService returns the import service interface
func (s *Service) GetImportService() ImportServiceInterface {
	return s.importService
}

// GetBriefcaseService returns the briefcase service interface
func (s *Service) GetBriefcaseService() BriefcaseServiceInterface {
	return s.briefcaseService
}
