package repository

import (
	"context"
	"strings"

	"medstaff-backend/dal"
	"medstaff-backend/models"
	"medstaff-backend/utils/logger"
)

type OrganizationRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

// NewOrganizationRepository creates a new organization repository
func NewOrganizationRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *OrganizationRepository {
	return &OrganizationRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

// GetOrganization retrieves an organization by id. Returns nil without
// error when no record exists.
func (r *OrganizationRepository) GetOrganization(ctx context.Context, id string) (*models.Organization, error) {
	organization := &models.Organization{}
	err := r.db.GetItem(ctx, models.QueryConfig{
		TableName: r.config.DynamoDBTablePrefix + "_organizations",
		KeyName:   "id",
		KeyValue:  id,
		KeyType:   models.StringType,
	}, organization)
	if err != nil {
		r.logger.Errorf("Failed to get organization %s: %v", id, err)
		return nil, err
	}
	if organization.ID == "" {
		return nil, nil
	}
	return organization, nil
}

// GetDepartment retrieves a department and checks it belongs to the
// given organization.
func (r *OrganizationRepository) GetDepartment(ctx context.Context, organizationID, departmentID string) (*models.Department, error) {
	department := &models.Department{}
	err := r.db.GetItem(ctx, models.QueryConfig{
		TableName: r.config.DynamoDBTablePrefix + "_departments",
		KeyName:   "id",
		KeyValue:  departmentID,
		KeyType:   models.StringType,
	}, department)
	if err != nil {
		r.logger.Errorf("Failed to get department %s: %v", departmentID, err)
		return nil, err
	}
	if department.ID == "" || department.OrganizationID != organizationID {
		return nil, nil
	}
	return department, nil
}

// ListDepartments returns all departments of an organization
func (r *OrganizationRepository) ListDepartments(ctx context.Context, organizationID string) ([]models.Department, error) {
	var departments []models.Department
	err := r.db.QueryByIndex(ctx, r.config.DynamoDBTablePrefix+"_departments", "organization-index", "organization_id", organizationID, &departments)
	if err != nil {
		r.logger.Errorf("Failed to list departments for %s: %v", organizationID, err)
		return nil, err
	}
	return departments, nil
}

// GetUserByEmail finds an organization user by email within the given
// organization. Returns nil without error when no user matches.
func (r *OrganizationRepository) GetUserByEmail(ctx context.Context, organizationID, email string) (*models.OrganizationUser, error) {
	var users []*models.OrganizationUser
	err := r.db.QueryByIndex(ctx, r.config.DynamoDBTablePrefix+"_organization_users", "email-index", "email", strings.ToLower(strings.TrimSpace(email)), &users)
	if err != nil {
		r.logger.Errorf("Failed to query organization user by email: %v", err)
		return nil, err
	}
	for _, u := range users {
		if u.OrganizationID == organizationID {
			return u, nil
		}
	}
	return nil, nil
}

// GetUserByID retrieves an organization user by id
func (r *OrganizationRepository) GetUserByID(ctx context.Context, id string) (*models.OrganizationUser, error) {
	user := &models.OrganizationUser{}
	err := r.db.GetItem(ctx, models.QueryConfig{
		TableName: r.config.DynamoDBTablePrefix + "_organization_users",
		KeyName:   "id",
		KeyValue:  id,
		KeyType:   models.StringType,
	}, user)
	if err != nil {
		r.logger.Errorf("Failed to get organization user %s: %v", id, err)
		return nil, err
	}
	if user.ID == "" {
		return nil, nil
	}
	return user, nil
}
