package services

import (
	"context"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"medstaff-backend/dal"
	"medstaff-backend/models"
	"medstaff-backend/repository"
	"medstaff-backend/utils/logger"
)

// AssetManager moves staged uploads to permanent storage and retires
// superseded objects. Promotion happens before the referencing save so
// a stored URL always points at a permanent object; cleanup happens
// only after the save succeeds.
type AssetManager struct {
	store    dal.ObjectStoreInterface
	fileRepo repository.UploadedFileRepositoryInterface
	logger   logger.Logger
}

// NewAssetManager creates a new asset lifecycle manager
func NewAssetManager(store dal.ObjectStoreInterface, fileRepo repository.UploadedFileRepositoryInterface, log logger.Logger) *AssetManager {
	return &AssetManager{
		store:    store,
		fileRepo: fileRepo,
		logger:   log,
	}
}

// permanentKey derives the storage key for a promoted object:
// uploadFolder/ownerID[/itemID]/unixSeconds/baseName.ext
func permanentKey(storage *models.StorageSettings, ownerID, itemID string, field *models.FileField, ext string, now time.Time) string {
	parts := []string{storage.UploadFolder, ownerID}
	if field.HasID && itemID != "" {
		parts = append(parts, itemID)
	}
	parts = append(parts, strconv.FormatInt(now.Unix(), 10), field.BaseName+ext)
	return path.Join(parts...)
}

// keyFromURL extracts the storage key from a permanent URL. Returns ""
// for URLs outside the permanent prefix.
func keyFromURL(storage *models.StorageSettings, url string) string {
	prefix := strings.TrimSuffix(storage.URLPrefix, "/") + "/"
	if !strings.HasPrefix(url, prefix) {
		return ""
	}
	return strings.TrimPrefix(url, prefix)
}

// Promote copies a staged upload to permanent storage and returns the
// rewritten URL. A URL equal to the stored one, or already permanent,
// is left untouched and returns nil.
func (m *AssetManager) Promote(ctx context.Context, storage *models.StorageSettings, ownerID, itemID string, field *models.FileField, rawURL, currentURL string) (*PromotedFile, error) {
	if rawURL == "" || rawURL == currentURL {
		return nil, nil
	}
	if keyFromURL(storage, rawURL) != "" {
		// Already permanent; nothing to promote.
		return nil, nil
	}

	staged, err := m.findStaged(ctx, ownerID, rawURL)
	if err != nil {
		return nil, err
	}
	if staged == nil {
		return nil, fmt.Errorf("no staged upload matches %s", rawURL)
	}

	key := permanentKey(storage, ownerID, itemID, field, path.Ext(staged.Path), time.Now())
	if err := m.store.CopyObject(ctx, storage.TempBucket, staged.Path, storage.Bucket, key); err != nil {
		return nil, fmt.Errorf("failed to promote upload %s: %w", staged.ID, err)
	}

	m.logger.Infof("Promoted upload %s to %s", staged.ID, key)
	return &PromotedFile{
		URL:           strings.TrimSuffix(storage.URLPrefix, "/") + "/" + key,
		UploadedAt:    staged.UploadedAt,
		stagingID:     staged.ID,
		supersededKey: keyFromURL(storage, currentURL),
	}, nil
}

// Cleanup retires the staging record and, for non-history fields, the
// superseded permanent object. Runs only after the referencing save
// committed; failures are logged, never surfaced.
func (m *AssetManager) Cleanup(ctx context.Context, storage *models.StorageSettings, field *models.FileField, promoted *PromotedFile) {
	if promoted == nil {
		return
	}

	if err := m.fileRepo.Delete(ctx, promoted.stagingID); err != nil {
		m.logger.Warnf("Failed to delete staging record %s: %v", promoted.stagingID, err)
	}

	if field.History || promoted.supersededKey == "" {
		return
	}
	if err := m.store.DeleteObject(ctx, storage.Bucket, promoted.supersededKey); err != nil {
		m.logger.Warnf("Failed to delete superseded object %s: %v", promoted.supersededKey, err)
	}
}

// DeleteByURL removes a permanent object referenced by URL. Used when a
// client explicitly nulls a file field.
func (m *AssetManager) DeleteByURL(ctx context.Context, storage *models.StorageSettings, url string) {
	key := keyFromURL(storage, url)
	if key == "" {
		return
	}
	if err := m.store.DeleteObject(ctx, storage.Bucket, key); err != nil {
		m.logger.Warnf("Failed to delete object %s: %v", key, err)
	}
}

func (m *AssetManager) findStaged(ctx context.Context, ownerID, url string) (*models.UploadedFile, error) {
	files, err := m.fileRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for i := range files {
		if files[i].URL == url {
			return &files[i], nil
		}
	}
	return nil, nil
}
