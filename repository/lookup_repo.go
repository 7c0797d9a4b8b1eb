package repository

import (
	"context"
	"strings"

	"medstaff-backend/dal"
	"medstaff-backend/models"
	"medstaff-backend/utils/logger"

	"golang.org/x/sync/errgroup"
)

// Lookup collection names inside the lookups table. Each collection is
// stored under a partition key so one table serves all reference data.
const (
	lookupStates                   = "states"
	lookupLicenseTypes             = "license_types"
	lookupLicenseBodies            = "license_bodies"
	lookupSpecialties              = "specialties"
	lookupCertifications           = "certifications"
	lookupAdditionalCertifications = "additional_certifications"
	lookupEducationLevels          = "education_levels"
)

type LookupRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

// NewLookupRepository creates a new lookup repository
func NewLookupRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *LookupRepository {
	return &LookupRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *LookupRepository) tableName() string {
	return r.config.DynamoDBTablePrefix + "_lookups"
}

func (r *LookupRepository) queryCollection(ctx context.Context, collection string, results interface{}) error {
	return r.db.QueryByIndex(ctx, r.tableName(), "collection-index", "collection", collection, results)
}

// LoadLookups fetches every reference collection needed for a bulk
// import, in parallel. One failed collection fails the whole load so
// imports never run with partial reference data.
func (r *LookupRepository) LoadLookups(ctx context.Context, organizationID string) (*models.Lookups, error) {
	lookups := &models.Lookups{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.queryCollection(gctx, lookupStates, &lookups.States)
	})
	g.Go(func() error {
		return r.queryCollection(gctx, lookupLicenseTypes, &lookups.LicenseTypes)
	})
	g.Go(func() error {
		return r.queryCollection(gctx, lookupLicenseBodies, &lookups.LicenseBodies)
	})
	g.Go(func() error {
		return r.queryCollection(gctx, lookupSpecialties, &lookups.Specialties)
	})
	g.Go(func() error {
		return r.queryCollection(gctx, lookupCertifications, &lookups.Certifications)
	})
	g.Go(func() error {
		return r.queryCollection(gctx, lookupAdditionalCertifications, &lookups.AdditionalCertifications)
	})
	g.Go(func() error {
		return r.queryCollection(gctx, lookupEducationLevels, &lookups.EducationLevels)
	})
	g.Go(func() error {
		var departments []models.Department
		err := r.db.QueryByIndex(gctx, r.config.DynamoDBTablePrefix+"_departments", "organization-index", "organization_id", organizationID, &departments)
		if err != nil {
			return err
		}
		lookups.Departments = departments
		return nil
	})

	if err := g.Wait(); err != nil {
		r.logger.Errorf("Failed to load lookups: %v", err)
		return nil, err
	}

	return lookups, nil
}

// GetLicenseType returns the license-type entry for an abbreviation.
// Returns nil without error when no entry matches.
func (r *LookupRepository) GetLicenseType(ctx context.Context, abbr string) (*models.LicenseType, error) {
	var types []models.LicenseType
	if err := r.queryCollection(ctx, lookupLicenseTypes, &types); err != nil {
		r.logger.Errorf("Failed to load license types: %v", err)
		return nil, err
	}
	for i := range types {
		if strings.EqualFold(types[i].Abbr, abbr) {
			return &types[i], nil
		}
	}
	return nil, nil
}

// GetLicenseBody returns the license-body entry for a body name.
// Returns nil without error when no entry matches.
func (r *LookupRepository) GetLicenseBody(ctx context.Context, name string) (*models.LicenseBody, error) {
	var bodies []models.LicenseBody
	if err := r.queryCollection(ctx, lookupLicenseBodies, &bodies); err != nil {
		r.logger.Errorf("Failed to load license bodies: %v", err)
		return nil, err
	}
	for i := range bodies {
		if strings.EqualFold(bodies[i].Name, name) {
			return &bodies[i], nil
		}
	}
	return nil, nil
}

// FindCity resolves a city name and state to a geocoded city entry.
// Returns nil without error when the city is unknown.
func (r *LookupRepository) FindCity(ctx context.Context, city, state string) (*models.City, error) {
	var cities []models.City
	err := r.db.QueryByIndex(ctx, r.config.DynamoDBTablePrefix+"_lookups", "city-index", "city", strings.TrimSpace(city), &cities)
	if err != nil {
		r.logger.Errorf("Failed to query city %s: %v", city, err)
		return nil, err
	}
	for i := range cities {
		if strings.EqualFold(cities[i].State, strings.TrimSpace(state)) {
			return &cities[i], nil
		}
	}
	return nil, nil
}
