package services

import (
	"context"
	"time"

	"medstaff-backend/models"
)

// ProfessionalServiceInterface defines the contract for professional account operations
type ProfessionalServiceInterface interface {
	AddProfessional(ctx context.Context, session *models.Session, req *models.AddProfessionalRequest) (*models.Professional, bool, error)
	UpdateProfessional(ctx context.Context, session *models.Session, id string, req *models.UpdateProfessionalRequest) (*models.Professional, error)
	GetProfessional(ctx context.Context, session *models.Session, id string) (*models.Professional, error)
}

// ImportServiceInterface defines the contract for bulk account imports
type ImportServiceInterface interface {
	BulkImport(ctx context.Context, session *models.Session, rows []map[string]string) (*models.ImportSummary, error)
}

// BriefcaseServiceInterface defines the contract for briefcase item operations
type BriefcaseServiceInterface interface {
	AddItem(ctx context.Context, session *models.Session, professionalID string, field models.BriefcaseField, payload []byte) (models.BriefcaseItem, error)
	UpdateItem(ctx context.Context, session *models.Session, professionalID string, field models.BriefcaseField, itemID string, payload []byte) (models.BriefcaseItem, error)
	DeleteItem(ctx context.Context, session *models.Session, professionalID string, field models.BriefcaseField, itemID string) error
	RecheckLicenses(ctx context.Context, professional *models.Professional) (*models.RecheckResult, error)
}

// PromotedFile is the outcome of moving one staged upload to permanent
// storage. Cleanup of the staging side runs only after the referencing
// save succeeds.
type PromotedFile struct {
	URL        string
	UploadedAt time.Time

	stagingID     string
	supersededKey string
}

// AssetManagerInterface defines the contract for the upload promotion lifecycle
type AssetManagerInterface interface {
	Promote(ctx context.Context, storage *models.StorageSettings, ownerID, itemID string, field *models.FileField, rawURL, currentURL string) (*PromotedFile, error)
	Cleanup(ctx context.Context, storage *models.StorageSettings, field *models.FileField, promoted *PromotedFile)
	DeleteByURL(ctx context.Context, storage *models.StorageSettings, url string)
}

// DispatcherInterface defines the contract for best-effort side effects
type DispatcherInterface interface {
	ProfessionalEvent(ctx context.Context, session *models.Session, professional *models.Professional, event models.WebhookEvent)
	Notify(ctx context.Context, notification *models.Notification)
}

// WebhookPublisherInterface delivers one webhook call
type WebhookPublisherInterface interface {
	Publish(ctx context.Context, delivery *models.WebhookDelivery) error
}

// NotificationSenderInterface delivers one outbound email
type NotificationSenderInterface interface {
	Send(ctx context.Context, notification *models.Notification) error
}

// LicenseVerifierInterface queries the third-party verification gateway
type LicenseVerifierInterface interface {
	Verify(ctx context.Context, settings *models.VerificationSettings, req *models.LicenseVerificationRequest) (*models.LicenseVerificationResult, error)
}
