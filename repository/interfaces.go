package repository

import (
	"context"

	"medstaff-backend/models"
)

// ProfessionalRepositoryInterface defines the contract for professional repository operations
type ProfessionalRepositoryInterface interface {
	FindByEmail(ctx context.Context, email string) (*models.Professional, error)
	FindByID(ctx context.Context, id string) (*models.Professional, error)
	Insert(ctx context.Context, professional *models.Professional) (*models.Professional, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	Save(ctx context.Context, professional *models.Professional) error
	AddAffiliation(ctx context.Context, professional *models.Professional, affiliation *models.Affiliation) error
	UpdateBriefcase(ctx context.Context, id string, briefcase *models.Briefcase) error
	Suspend(ctx context.Context, id, reason string) error
	AddShare(ctx context.Context, professional *models.Professional, share *models.Share) error
	ListAutoVerifiable(ctx context.Context) ([]*models.Professional, error)
}

// OrganizationRepositoryInterface defines the contract for organization repository operations
type OrganizationRepositoryInterface interface {
	GetOrganization(ctx context.Context, id string) (*models.Organization, error)
	GetDepartment(ctx context.Context, organizationID, departmentID string) (*models.Department, error)
	ListDepartments(ctx context.Context, organizationID string) ([]models.Department, error)
	GetUserByEmail(ctx context.Context, organizationID, email string) (*models.OrganizationUser, error)
	GetUserByID(ctx context.Context, id string) (*models.OrganizationUser, error)
}

// LookupRepositoryInterface defines the contract for lookup repository operations
type LookupRepositoryInterface interface {
	LoadLookups(ctx context.Context, organizationID string) (*models.Lookups, error)
	GetLicenseType(ctx context.Context, abbr string) (*models.LicenseType, error)
	GetLicenseBody(ctx context.Context, name string) (*models.LicenseBody, error)
	FindCity(ctx context.Context, city, state string) (*models.City, error)
}

// UploadedFileRepositoryInterface defines the contract for uploaded-file repository operations
type UploadedFileRepositoryInterface interface {
	ListByOwner(ctx context.Context, ownerID string) ([]models.UploadedFile, error)
	Delete(ctx context.Context, id string) error
}

// AuditRepositoryInterface defines the contract for audit repository operations
type AuditRepositoryInterface interface {
	Append(ctx context.Context, entry *models.AuditEntry)
}

// SettingsRepositoryInterface defines the contract for settings repository operations
type SettingsRepositoryInterface interface {
	GetServerSettings(ctx context.Context) (*models.ServerSettings, error)
	GetStorageSettings(ctx context.Context) (*models.StorageSettings, error)
	GetVerificationSettings(ctx context.Context) (*models.VerificationSettings, error)
}
