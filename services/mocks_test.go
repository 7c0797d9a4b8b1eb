package services

import (
	"context"

	"medstaff-backend/models"

	"github.com/stretchr/testify/mock"
)

// MockLogger implements the logger.Logger interface for testing
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(args ...interface{}) {
	m.Called(args...)
}

func (m *MockLogger) Debugf(format string, args ...interface{}) {
	m.Called(format, args)
}

func (m *MockLogger) Info(args ...interface{}) {
	m.Called(args...)
}

func (m *MockLogger) Infof(format string, args ...interface{}) {
	m.Called(format, args)
}

func (m *MockLogger) Warn(args ...interface{}) {
	m.Called(args...)
}

func (m *MockLogger) Warnf(format string, args ...interface{}) {
	m.Called(format, args)
}

func (m *MockLogger) Error(args ...interface{}) {
	m.Called(args...)
}

func (m *MockLogger) Errorf(format string, args ...interface{}) {
	m.Called(format, args)
}

func (m *MockLogger) Fatal(args ...interface{}) {
	m.Called(args...)
}

func (m *MockLogger) Fatalf(format string, args ...interface{}) {
	m.Called(format, args)
}

// newMockLogger returns a logger that accepts any call
func newMockLogger() *MockLogger {
	m := &MockLogger{}
	m.On("Debug", mock.Anything).Return().Maybe()
	m.On("Debugf", mock.AnythingOfType("string"), mock.Anything).Return().Maybe()
	m.On("Info", mock.Anything).Return().Maybe()
	m.On("Infof", mock.AnythingOfType("string"), mock.Anything).Return().Maybe()
	m.On("Warn", mock.Anything).Return().Maybe()
	m.On("Warnf", mock.AnythingOfType("string"), mock.Anything).Return().Maybe()
	m.On("Error", mock.Anything).Return().Maybe()
	m.On("Errorf", mock.AnythingOfType("string"), mock.Anything).Return().Maybe()
	return m
}

// MockProfessionalRepository implements the ProfessionalRepositoryInterface for testing
type MockProfessionalRepository struct {
	mock.Mock
}

func (m *MockProfessionalRepository) FindByEmail(ctx context.Context, email string) (*models.Professional, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Professional), args.Error(1)
}

func (m *MockProfessionalRepository) FindByID(ctx context.Context, id string) (*models.Professional, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Professional), args.Error(1)
}

func (m *MockProfessionalRepository) Insert(ctx context.Context, professional *models.Professional) (*models.Professional, error) {
	args := m.Called(ctx, professional)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Professional), args.Error(1)
}

func (m *MockProfessionalRepository) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	args := m.Called(ctx, id, updates)
	return args.Error(0)
}

func (m *MockProfessionalRepository) Save(ctx context.Context, professional *models.Professional) error {
	args := m.Called(ctx, professional)
	return args.Error(0)
}

func (m *MockProfessionalRepository) AddAffiliation(ctx context.Context, professional *models.Professional, affiliation *models.Affiliation) error {
	args := m.Called(ctx, professional, affiliation)
	return args.Error(0)
}

func (m *MockProfessionalRepository) UpdateBriefcase(ctx context.Context, id string, briefcase *models.Briefcase) error {
	args := m.Called(ctx, id, briefcase)
	return args.Error(0)
}

func (m *MockProfessionalRepository) Suspend(ctx context.Context, id, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *MockProfessionalRepository) AddShare(ctx context.Context, professional *models.Professional, share *models.Share) error {
	args := m.Called(ctx, professional, share)
	return args.Error(0)
}

func (m *MockProfessionalRepository) ListAutoVerifiable(ctx context.Context) ([]*models.Professional, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Professional), args.Error(1)
}

// MockOrganizationRepository implements the OrganizationRepositoryInterface for testing
type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) GetOrganization(ctx context.Context, id string) (*models.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) GetDepartment(ctx context.Context, organizationID, departmentID string) (*models.Department, error) {
	args := m.Called(ctx, organizationID, departmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Department), args.Error(1)
}

func (m *MockOrganizationRepository) ListDepartments(ctx context.Context, organizationID string) ([]models.Department, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Department), args.Error(1)
}

func (m *MockOrganizationRepository) GetUserByEmail(ctx context.Context, organizationID, email string) (*models.OrganizationUser, error) {
	args := m.Called(ctx, organizationID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrganizationUser), args.Error(1)
}

func (m *MockOrganizationRepository) GetUserByID(ctx context.Context, id string) (*models.OrganizationUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrganizationUser), args.Error(1)
}

// MockLookupRepository implements the LookupRepositoryInterface for testing
type MockLookupRepository struct {
	mock.Mock
}

func (m *MockLookupRepository) LoadLookups(ctx context.Context, organizationID string) (*models.Lookups, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lookups), args.Error(1)
}

func (m *MockLookupRepository) GetLicenseType(ctx context.Context, abbr string) (*models.LicenseType, error) {
	args := m.Called(ctx, abbr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LicenseType), args.Error(1)
}

func (m *MockLookupRepository) GetLicenseBody(ctx context.Context, name string) (*models.LicenseBody, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LicenseBody), args.Error(1)
}

func (m *MockLookupRepository) FindCity(ctx context.Context, city, state string) (*models.City, error) {
	args := m.Called(ctx, city, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.City), args.Error(1)
}

// MockUploadedFileRepository implements the UploadedFileRepositoryInterface for testing
type MockUploadedFileRepository struct {
	mock.Mock
}

func (m *MockUploadedFileRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.UploadedFile, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UploadedFile), args.Error(1)
}

func (m *MockUploadedFileRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAuditRepository implements the AuditRepositoryInterface for testing
type MockAuditRepository struct {
	mock.Mock

	Entries []*models.AuditEntry
}

func (m *MockAuditRepository) Append(ctx context.Context, entry *models.AuditEntry) {
	m.Entries = append(m.Entries, entry)
	m.Called(ctx, entry)
}

// newMockAuditRepository returns an audit repository accepting any append
func newMockAuditRepository() *MockAuditRepository {
	m := &MockAuditRepository{}
	m.On("Append", mock.Anything, mock.Anything).Return().Maybe()
	return m
}

// actions returns the recorded audit actions in order
func (m *MockAuditRepository) actions() []string {
	out := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		out[i] = e.Action
	}
	return out
}

// MockSettingsRepository implements the SettingsRepositoryInterface for testing
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) GetServerSettings(ctx context.Context) (*models.ServerSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServerSettings), args.Error(1)
}

func (m *MockSettingsRepository) GetStorageSettings(ctx context.Context) (*models.StorageSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StorageSettings), args.Error(1)
}

func (m *MockSettingsRepository) GetVerificationSettings(ctx context.Context) (*models.VerificationSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VerificationSettings), args.Error(1)
}

// MockAssetManager implements the AssetManagerInterface for testing
type MockAssetManager struct {
	mock.Mock
}

func (m *MockAssetManager) Promote(ctx context.Context, storage *models.StorageSettings, ownerID, itemID string, field *models.FileField, rawURL, currentURL string) (*PromotedFile, error) {
	args := m.Called(ctx, storage, ownerID, itemID, field, rawURL, currentURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PromotedFile), args.Error(1)
}

func (m *MockAssetManager) Cleanup(ctx context.Context, storage *models.StorageSettings, field *models.FileField, promoted *PromotedFile) {
	m.Called(ctx, storage, field, promoted)
}

func (m *MockAssetManager) DeleteByURL(ctx context.Context, storage *models.StorageSettings, url string) {
	m.Called(ctx, storage, url)
}

// MockDispatcher implements the DispatcherInterface for testing
type MockDispatcher struct {
	mock.Mock

	Events        []models.WebhookEvent
	Notifications []*models.Notification
}

func (m *MockDispatcher) ProfessionalEvent(ctx context.Context, session *models.Session, professional *models.Professional, event models.WebhookEvent) {
	m.Events = append(m.Events, event)
	m.Called(ctx, session, professional, event)
}

func (m *MockDispatcher) Notify(ctx context.Context, notification *models.Notification) {
	if notification != nil {
		m.Notifications = append(m.Notifications, notification)
	}
	m.Called(ctx, notification)
}

// newMockDispatcher returns a dispatcher accepting any side effect
func newMockDispatcher() *MockDispatcher {
	m := &MockDispatcher{}
	m.On("ProfessionalEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return().Maybe()
	m.On("Notify", mock.Anything, mock.Anything).Return().Maybe()
	return m
}

// templates returns the recorded notification templates in order
func (m *MockDispatcher) templates() []string {
	out := make([]string, len(m.Notifications))
	for i, n := range m.Notifications {
		out[i] = n.Template
	}
	return out
}

// MockLicenseVerifier implements the LicenseVerifierInterface for testing
type MockLicenseVerifier struct {
	mock.Mock
}

func (m *MockLicenseVerifier) Verify(ctx context.Context, settings *models.VerificationSettings, req *models.LicenseVerificationRequest) (*models.LicenseVerificationResult, error) {
	args := m.Called(ctx, settings, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LicenseVerificationResult), args.Error(1)
}

// MockWebhookPublisher implements the WebhookPublisherInterface for testing
type MockWebhookPublisher struct {
	mock.Mock

	Deliveries []*models.WebhookDelivery
}

func (m *MockWebhookPublisher) Publish(ctx context.Context, delivery *models.WebhookDelivery) error {
	m.Deliveries = append(m.Deliveries, delivery)
	args := m.Called(ctx, delivery)
	return args.Error(0)
}

// MockNotificationSender implements the NotificationSenderInterface for testing
type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) Send(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

// MockObjectStore implements the dal.ObjectStoreInterface for testing
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) CopyObject(ctx context.Context, fromBucket, fromKey, toBucket, toKey string) error {
	args := m.Called(ctx, fromBucket, fromKey, toBucket, toKey)
	return args.Error(0)
}

func (m *MockObjectStore) DeleteObject(ctx context.Context, bucket, key string) error {
	args := m.Called(ctx, bucket, key)
	return args.Error(0)
}

// MockProfessionalService implements the ProfessionalServiceInterface for testing
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
