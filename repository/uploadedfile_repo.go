package repository

import (
	"context"

	"medstaff-backend/dal"
	"medstaff-backend/models"
	"medstaff-backend/utils/logger"
)

type UploadedFileRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

// NewUploadedFileRepository creates a new uploaded-file repository
func NewUploadedFileRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *UploadedFileRepository {
	return &UploadedFileRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *UploadedFileRepository) tableName() string {
	return r.config.DynamoDBTablePrefix + "_uploaded_files"
}

// ListByOwner returns the pending staging records for a professional
func (r *UploadedFileRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.UploadedFile, error) {
	var files []models.UploadedFile
	err := r.db.QueryByIndex(ctx, r.tableName(), "owner-index", "owner_id", ownerID, &files)
	if err != nil {
		r.logger.Errorf("Failed to list uploaded files for %s: %v", ownerID, err)
		return nil, err
	}
	return files, nil
}

// Delete removes one staging record
func (r *UploadedFileRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.DeleteItem(ctx, r.tableName(), "id", id); err != nil {
		r.logger.Errorf("Failed to delete uploaded file %s: %v", id, err)
		return err
	}
	return nil
}
