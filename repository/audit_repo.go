package repository

import (
	"context"
	"time"

	"medstaff-backend/dal"
	"medstaff-backend/models"
	"medstaff-backend/utils"
	"medstaff-backend/utils/logger"
)

type AuditRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *AuditRepository {
	return &AuditRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

// Append writes an audit-trail entry. Audit writes never fail the
// mutation they describe; errors are logged and swallowed.
func (r *AuditRepository) Append(ctx context.Context, entry *models.AuditEntry) {
	if entry.ID == "" {
		entry.ID = utils.GenerateUUID()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	if err := r.db.PutItem(ctx, r.config.DynamoDBTablePrefix+"_audit_trail", entry); err != nil {
		r.logger.Errorf("Failed to append audit entry %s: %v", entry.Action, err)
	}
}
