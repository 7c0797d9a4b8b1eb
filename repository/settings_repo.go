package repository

import (
	"context"

	"medstaff-backend/dal"
	"medstaff-backend/models"
	"medstaff-backend/utils/logger"
)

type SettingsRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *SettingsRepository {
	return &SettingsRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *SettingsRepository) get(ctx context.Context, key string, result interface{}) error {
	err := r.db.GetItem(ctx, models.QueryConfig{
		TableName: r.config.DynamoDBTablePrefix + "_settings",
		KeyName:   "id",
		KeyValue:  key,
		KeyType:   models.StringType,
	}, result)
	if err != nil {
		r.logger.Errorf("Failed to get settings %s: %v", key, err)
	}
	return err
}

// GetServerSettings loads the environment and panel URL settings
func (r *SettingsRepository) GetServerSettings(ctx context.Context) (*models.ServerSettings, error) {
	settings := &models.ServerSettings{}
	if err := r.get(ctx, models.SettingsKeyServer, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// GetStorageSettings loads the object storage settings
func (r *SettingsRepository) GetStorageSettings(ctx context.Context) (*models.StorageSettings, error) {
	settings := &models.StorageSettings{}
	if err := r.get(ctx, models.SettingsKeyStorage, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// GetVerificationSettings loads the license verification settings
func (r *SettingsRepository) GetVerificationSettings(ctx context.Context) (*models.VerificationSettings, error) {
	settings := &models.VerificationSettings{}
	if err := r.get(ctx, models.SettingsKeyVerification, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
