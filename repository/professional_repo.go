package repository

import (
	"context"
	"strings"
	"time"

	"medstaff-backend/dal"
	"medstaff-backend/models"
	"medstaff-backend/utils"
	"medstaff-backend/utils/logger"
)

type ProfessionalRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

// NewProfessionalRepository creates a new professional repository
func NewProfessionalRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *ProfessionalRepository {
	return &ProfessionalRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *ProfessionalRepository) tableName() string {
	return r.config.DynamoDBTablePrefix + "_professionals"
}

// FindByEmail looks up a professional by email. Emails are stored
// lowercased, so the lookup lowercases before hitting the index.
// Returns nil without error when no record matches.
func (r *ProfessionalRepository) FindByEmail(ctx context.Context, email string) (*models.Professional, error) {
	var professionals []*models.Professional
	err := r.db.QueryByIndex(ctx, r.tableName(), "email-index", "email", strings.ToLower(strings.TrimSpace(email)), &professionals)
	if err != nil {
		r.logger.Errorf("Failed to query professional by email: %v", err)
		return nil, err
	}
	if len(professionals) == 0 {
		return nil, nil
	}
	return professionals[0], nil
}

// FindByID retrieves a professional by primary key. Returns nil without
// error when no record exists.
func (r *ProfessionalRepository) FindByID(ctx context.Context, id string) (*models.Professional, error) {
	professional := &models.Professional{}
	err := r.db.GetItem(ctx, models.QueryConfig{
		TableName: r.tableName(),
		KeyName:   "id",
		KeyValue:  id,
		KeyType:   models.StringType,
	}, professional)
	if err != nil {
		r.logger.Errorf("Failed to get professional %s: %v", id, err)
		return nil, err
	}
	if professional.ID == "" {
		return nil, nil
	}
	return professional, nil
}

// Insert stores a new professional record
func (r *ProfessionalRepository) Insert(ctx context.Context, professional *models.Professional) (*models.Professional, error) {
	now := time.Now()
	if professional.ID == "" {
		professional.ID = utils.GenerateUUID()
	}
	professional.Email = strings.ToLower(strings.TrimSpace(professional.Email))
	professional.CreatedAt = now
	professional.UpdatedAt = now

	if err := r.db.PutItem(ctx, r.tableName(), professional); err != nil {
		r.logger.Errorf("Failed to create professional: %v", err)
		return nil, err
	}

	r.logger.Infof("Professional created successfully: %s", professional.ID)
	return professional, nil
}

// Update applies a partial field update to a professional record
func (r *ProfessionalRepository) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	if err := r.db.UpdateItem(ctx, r.tableName(), "id", id, updates); err != nil {
		r.logger.Errorf("Failed to update professional %s: %v", id, err)
		return err
	}
	return nil
}

// Save writes the full professional record back
func (r *ProfessionalRepository) Save(ctx context.Context, professional *models.Professional) error {
	professional.UpdatedAt = time.Now()

	if err := r.db.PutItem(ctx, r.tableName(), professional); err != nil {
		r.logger.Errorf("Failed to save professional %s: %v", professional.ID, err)
		return err
	}
	return nil
}

// AddAffiliation appends an affiliation to the professional, dropping
// any earlier rejected affiliation to the same organization first.
func (r *ProfessionalRepository) AddAffiliation(ctx context.Context, professional *models.Professional, affiliation *models.Affiliation) error {
	kept := make([]models.Affiliation, 0, len(professional.Affiliations)+1)
	for _, a := range professional.Affiliations {
		if a.Organization.ID == affiliation.Organization.ID && a.RejectedAt != nil {
			continue
		}
		kept = append(kept, a)
	}
	professional.Affiliations = append(kept, *affiliation)

	return r.Update(ctx, professional.ID, map[string]interface{}{
		"affiliations": professional.Affiliations,
	})
}

// UpdateBriefcase persists only the briefcase of a professional
func (r *ProfessionalRepository) UpdateBriefcase(ctx context.Context, id string, briefcase *models.Briefcase) error {
	return r.Update(ctx, id, map[string]interface{}{
		"briefcase": briefcase,
	})
}

// Suspend marks the professional suspended with a reason
func (r *ProfessionalRepository) Suspend(ctx context.Context, id, reason string) error {
	now := time.Now()
	r.logger.Warnf("Suspending professional %s: %s", id, reason)
	return r.Update(ctx, id, map[string]interface{}{
		"suspended_at":     now,
		"suspended_reason": reason,
	})
}

// AddShare appends a briefcase share link to the professional
func (r *ProfessionalRepository) AddShare(ctx context.Context, professional *models.Professional, share *models.Share) error {
	professional.Shares = append(professional.Shares, *share)
	return r.Update(ctx, professional.ID, map[string]interface{}{
		"shares": professional.Shares,
	})
}

// ListAutoVerifiable scans for professionals whose license auto
// verification is still enabled, for the scheduled recheck.
func (r *ProfessionalRepository) ListAutoVerifiable(ctx context.Context) ([]*models.Professional, error) {
	var professionals []*models.Professional
	if err := r.db.ScanTable(ctx, r.tableName(), &professionals); err != nil {
		r.logger.Errorf("Failed to scan professionals table: %v", err)
		return nil, err
	}

	eligible := make([]*models.Professional, 0, len(professionals))
	for _, p := range professionals {
		if p.SuspendedAt != nil || p.DeactivatedAt != nil || p.Briefcase == nil {
			continue
		}
		v := p.Briefcase.Verification
		if v != nil && !v.IsEnabled {
			continue
		}
		if len(p.Briefcase.Licenses) == 0 {
			continue
		}
		eligible = append(eligible, p)
	}
	return eligible, nil
}
