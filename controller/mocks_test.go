package controller

import (
	"context"

	"medstaff-backend/models"

	"github.com/stretchr/testify/mock"
)

// MockLogger implements the logger.Logger interface for testing
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(args ...interface{})                 { m.Called(args) }
func (m *MockLogger) Debugf(format string, args ...interface{}) { m.Called(format, args) }
func (m *MockLogger) Info(args ...interface{})                  { m.Called(args) }
func (m *MockLogger) Infof(format string, args ...interface{})  { m.Called(format, args) }
func (m *MockLogger) Warn(args ...interface{})                  { m.Called(args) }
func (m *MockLogger) Warnf(format string, args ...interface{})  { m.Called(format, args) }
func (m *MockLogger) Error(args ...interface{})                 { m.Called(args) }
func (m *MockLogger) Errorf(format string, args ...interface{}) { m.Called(format, args) }
func (m *MockLogger) Fatal(args ...interface{})                 { m.Called(args) }
func (m *MockLogger) Fatalf(format string, args ...interface{}) { m.Called(format, args) }

// newMockLogger returns a logger accepting any call
func newMockLogger() *MockLogger {
	m := &MockLogger{}
	m.On("Debug", mock.Anything).Maybe()
	m.On("Debugf", mock.AnythingOfType("string"), mock.Anything).Maybe()
	m.On("Info", mock.Anything).Maybe()
	m.On("Infof", mock.AnythingOfType("string"), mock.Anything).Maybe()
	m.On("Warn", mock.Anything).Maybe()
	m.On("Warnf", mock.AnythingOfType("string"), mock.Anything).Maybe()
	m.On("Error", mock.Anything).Maybe()
	m.On("Errorf", mock.AnythingOfType("string"), mock.Anything).Maybe()
	return m
}

// MockProfessionalService implements the services.ProfessionalServiceInterface for testing
type MockProfessionalService struct {
	mock.Mock
}

func (m *MockProfessionalService) AddProfessional(ctx context.Context, session *models.Session, req *models.AddProfessionalRequest) (*models.Professional, bool, error) {
	args := m.Called(ctx, session, req)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.Professional), args.Bool(1), args.Error(2)
}

func (m *MockProfessionalService) UpdateProfessional(ctx context.Context, session *models.Session, id string, req *models.UpdateProfessionalRequest) (*models.Professional, error) {
	args := m.Called(ctx, session, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Professional), args.Error(1)
}

func (m *MockProfessionalService) GetProfessional(ctx context.Context, session *models.Session, id string) (*models.Professional, error) {
	args := m.Called(ctx, session, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Professional), args.Error(1)
}

// MockImportService implements the services.ImportServiceInterface for testing
type MockImportService struct {
	mock.Mock
}

func (m *MockImportService) BulkImport(ctx context.Context, session *models.Session, rows []map[string]string) (*models.ImportSummary, error) {
	args := m.Called(ctx, session, rows)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ImportSummary), args.Error(1)
}

// MockBriefcaseService implements the services.BriefcaseServiceInterface for testing
type MockBriefcaseService struct {
	mock.Mock
}

func (m *MockBriefcaseService) AddItem(ctx context.Context, session *models.Session, professionalID string, field models.BriefcaseField, payload []byte) (models.BriefcaseItem, error) {
	args := m.Called(ctx, session, professionalID, field, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.BriefcaseItem), args.Error(1)
}

func (m *MockBriefcaseService) UpdateItem(ctx context.Context, session *models.Session, professionalID string, field models.BriefcaseField, itemID string, payload []byte) (models.BriefcaseItem, error) {
	args := m.Called(ctx, session, professionalID, field, itemID, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.BriefcaseItem), args.Error(1)
}

func (m *MockBriefcaseService) DeleteItem(ctx context.Context, session *models.Session, professionalID string, field models.BriefcaseField, itemID string) error {
	args := m.Called(ctx, session, professionalID, field, itemID)
	return args.Error(0)
}

func (m *MockBriefcaseService) RecheckLicenses(ctx context.Context, professional *models.Professional) (*models.RecheckResult, error) {
	args := m.Called(ctx, professional)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RecheckResult), args.Error(1)
}
