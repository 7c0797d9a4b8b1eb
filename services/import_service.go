package services

import (
	"context"
	"errors"

	"medstaff-backend/models"
	"medstaff-backend/repository"
	"medstaff-backend/utils/logger"
)

// ImportService processes bulk account imports. Rows are isolated: one
// bad row is recorded and skipped, the rest of the file proceeds.
type ImportService struct {
	professionals ProfessionalServiceInterface
	profRepo      repository.ProfessionalRepositoryInterface
	lookupRepo    repository.LookupRepositoryInterface
	logger        logger.Logger
}

// NewImportService creates a new import service
func NewImportService(professionals ProfessionalServiceInterface, profRepo repository.ProfessionalRepositoryInterface, lookupRepo repository.LookupRepositoryInterface, log logger.Logger) *ImportService {
	return &ImportService{
		professionals: professionals,
		profRepo:      profRepo,
		lookupRepo:    lookupRepo,
		logger:        log,
	}
}

// BulkImport maps, validates and creates an account per row. Existing
// accounts get an affiliation without the confirmation gate; brand-new
// accounts get their briefcase and job preferences attached.
func (s *ImportService) BulkImport(ctx context.Context, session *models.Session, rows []map[string]string) (*models.ImportSummary, error) {
	if session == nil || !session.IsOrganizationUser() {
		return nil, models.ErrUnauthorized
	}

	lookups, err := s.lookupRepo.LoadLookups(ctx, session.OrganizationID)
	if err != nil {
		return nil, err
	}
	mapper := NewRowMapper(lookups)

	summary := &models.ImportSummary{Total: len(rows)}
	for i, row := range rows {
		result := s.importRow(ctx, session, mapper, i+1, row)
		if len(result.Errors) > 0 {
			summary.Failed++
		} else {
			summary.Imported++
		}
		summary.Results = append(summary.Results, result)
	}

	s.logger.Infof("Bulk import for organization %s: %d imported, %d failed of %d",
		session.OrganizationID, summary.Imported, summary.Failed, summary.Total)
	return summary, nil
}

func (s *ImportService) importRow(ctx context.Context, session *models.Session, mapper *RowMapper, rowNum int, row map[string]string) models.ImportRowResult {
	result := models.ImportRowResult{Row: rowNum}

	mapped, err := mapper.MapRow(row)
	if err != nil {
		result.Errors = rowErrors(err)
		return result
	}
	result.Email = mapped.Request.Email

	// Imports never stop at the affiliation gate.
	mapped.Request.ConfirmAffiliation = true

	professional, created, err := s.professionals.AddProfessional(ctx, session, mapped.Request)
	if err != nil {
		result.Errors = rowErrors(err)
		return result
	}
	result.ProfessionalID = professional.ID

	if created {
		updates := map[string]interface{}{}
		if mapped.Briefcase != nil {
			updates["briefcase"] = mapped.Briefcase
		}
		if mapped.Jobs != nil {
			mapped.Jobs.WorkCities = s.geocode(ctx, mapped.Jobs.WorkCities)
			updates["jobs"] = mapped.Jobs
		}
		if mapped.Address != nil {
			if mapped.Address.Country == "" {
				mapped.Address.Country = "US"
			}
			updates["address"] = mapped.Address
		}
		if mapped.Gender != "" {
			updates["gender"] = mapped.Gender
		}
		if mapped.DateOfBirth != nil {
			updates["date_of_birth"] = mapped.DateOfBirth
		}
		if mapped.SSNLast4 != "" {
			updates["ssn_last4"] = mapped.SSNLast4
		}
		if len(mapped.Languages) > 0 {
			updates["languages"] = mapped.Languages
		}
		if len(updates) > 0 {
			if err := s.profRepo.Update(ctx, professional.ID, updates); err != nil {
				result.Errors = rowErrors(err)
				return result
			}
		}
	}

	return result
}

// rowErrors keeps per-column validation detail where it exists and
// wraps anything else as a single column-less entry.
func rowErrors(err error) []models.RowError {
	var structured models.RowErrors
	if errors.As(err, &structured) {
		return structured
	}
	return []models.RowError{{Message: err.Error()}}
}

// geocode resolves coordinates for imported work cities, dropping the
// ones the city reference set does not contain.
func (s *ImportService) geocode(ctx context.Context, cities []models.WorkCity) []models.WorkCity {
	out := make([]models.WorkCity, 0, len(cities))
	for _, c := range cities {
		found, err := s.lookupRepo.FindCity(ctx, c.City, c.State)
		if err != nil || found == nil {
			s.logger.Warnf("Dropping unknown work city %s, %s", c.City, c.State)
			continue
		}
		c.City = found.City
		c.State = found.State
		c.Country = found.Country
		c.Coordinates = found.Coordinates
		out = append(out, c)
	}
	return out
}
