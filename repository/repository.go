package repository

import (
	"medstaff-backend/dal"
	"medstaff-backend/models"
	"medstaff-backend/utils/logger"
)

type Repository struct {
	Professional *ProfessionalRepository
	Organization *OrganizationRepository
	Lookup       *LookupRepository
	UploadedFile *UploadedFileRepository
	Audit        *AuditRepository
	Settings     *SettingsRepository
}

func NewRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *Repository {
	return &Repository{
		Professional: NewProfessionalRepository(db, cfg, log),
		Organization: NewOrganizationRepository(db, cfg, log),
		Lookup:       NewLookupRepository(db, cfg, log),
		UploadedFile: NewUploadedFileRepository(db, cfg, log),
		Audit:        NewAuditRepository(db, cfg, log),
		Settings:     NewSettingsRepository(db, cfg, log),
	}
}
