package services

import (
	"context"
	"testing"
	"time"

	"medstaff-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// BriefcaseServiceTestSuite defines a test suite for BriefcaseService functions
type BriefcaseServiceTestSuite struct {
	suite.Suite
	ctx          context.Context
	profRepo     *MockProfessionalRepository
	lookupRepo   *MockLookupRepository
	auditRepo    *MockAuditRepository
	settingsRepo *MockSettingsRepository
	assets       *MockAssetManager
	dispatcher   *MockDispatcher
	verifier     *MockLicenseVerifier
	service      *BriefcaseService

	professional *models.Professional
	selfSession  *models.Session
}

// SetupTest runs before each test
func (suite *BriefcaseServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.profRepo = &MockProfessionalRepository{}
	suite.lookupRepo = &MockLookupRepository{}
	suite.auditRepo = newMockAuditRepository()
	suite.settingsRepo = &MockSettingsRepository{}
	suite.assets = &MockAssetManager{}
	suite.dispatcher = newMockDispatcher()
	suite.verifier = &MockLicenseVerifier{}

	suite.service = NewBriefcaseService(
		suite.profRepo, suite.lookupRepo, suite.auditRepo, suite.settingsRepo,
		suite.assets, suite.dispatcher, suite.verifier, newMockLogger(),
	)

	dob := time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC)
	suite.professional = &models.Professional{
		ID:          "prof-1",
		Email:       "jane@example.com",
		FirstName:   "Jane",
		LastName:    "Doe",
		SSNLast4:    "6789",
		DateOfBirth: &dob,
		Briefcase:   &models.Briefcase{},
	}
	suite.selfSession = &models.Session{UserID: "prof-1", UserType: models.UserTypeProfessional}

	suite.profRepo.On("FindByID", mock.Anything, "prof-1").Return(suite.professional, nil)
	suite.profRepo.On("UpdateBriefcase", mock.Anything, "prof-1", mock.Anything).Return(nil).Maybe()
}

func (suite *BriefcaseServiceTestSuite) verificationSettings(settings *models.VerificationSettings) {
	suite.settingsRepo.On("GetVerificationSettings", mock.Anything).Return(settings, nil)
	suite.settingsRepo.On("GetServerSettings", mock.Anything).Return(&models.ServerSettings{
		Env:          models.EnvStaging,
		SupportEmail: "support@example.com",
	}, nil).Maybe()
}

func (suite *BriefcaseServiceTestSuite) licenseStorage() {
	suite.settingsRepo.On("GetStorageSettings", mock.Anything).
		Return(&models.StorageSettings{Bucket: "assets", URLPrefix: "https://cdn.example.com"}, nil).Maybe()
	suite.assets.On("Promote", mock.Anything, mock.Anything, "prof-1", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, nil).Maybe()
}

func (suite *BriefcaseServiceTestSuite) TestAddItemAssignsID() {
	payload := []byte(`{"institute":"State University","program_name":"BSN"}`)

	item, err := suite.service.AddItem(suite.ctx, suite.selfSession, "prof-1", models.BriefcaseFieldEducation, payload)

	assert.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), item.ItemID())
	assert.Len(suite.T(), suite.professional.Briefcase.Education, 1)
	assert.Contains(suite.T(), suite.auditRepo.actions(), models.AuditUserItemAdded)
	assert.Contains(suite.T(), suite.dispatcher.Events, models.WebhookEventItemUpdated)
}

func (suite *BriefcaseServiceTestSuite) TestUpdateItemMissingPrior() {
	payload := []byte(`{"institute":"State University","program_name":"BSN"}`)

	_, err := suite.service.UpdateItem(suite.ctx, suite.selfSession, "prof-1", models.BriefcaseFieldEducation, "missing", payload)

	assert.ErrorIs(suite.T(), err, models.ErrBriefcaseItemNotFound)
	suite.profRepo.AssertNotCalled(suite.T(), "UpdateBriefcase", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BriefcaseServiceTestSuite) TestAddItemUnauthorized() {
	payload := []byte(`{"institute":"State University","program_name":"BSN"}`)
	stranger := &models.Session{UserID: "someone-else", UserType: models.UserTypeProfessional}

	_, err := suite.service.AddItem(suite.ctx, stranger, "prof-1", models.BriefcaseFieldEducation, payload)

	assert.ErrorIs(suite.T(), err, models.ErrUnauthorized)
}

func (suite *BriefcaseServiceTestSuite) TestAddItemStripsThirdPartyForNonAPI() {
	payload := []byte(`{"institute":"State University","program_name":"BSN","third_party_systems":[{"system":"ats","entity_id":"x"}]}`)

	item, err := suite.service.AddItem(suite.ctx, suite.selfSession, "prof-1", models.BriefcaseFieldEducation, payload)

	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), item.ThirdParty())
}

func (suite *BriefcaseServiceTestSuite) TestUpdateItemKeepsPriorThirdPartyForNonAPI() {
	prior := &models.Education{Institute: "State University", ProgramName: "BSN"}
	prior.ID = "edu-1"
	prior.ThirdPartySystems = []models.ThirdPartySystem{{System: "ats", EntityID: "ext-1"}}
	suite.professional.Briefcase.Education = []models.Education{*prior}

	payload := []byte(`{"institute":"State University","program_name":"MSN"}`)
	item, err := suite.service.UpdateItem(suite.ctx, suite.selfSession, "prof-1", models.BriefcaseFieldEducation, "edu-1", payload)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), prior.ThirdPartySystems, item.ThirdParty())
}

func (suite *BriefcaseServiceTestSuite) TestAddItemKeepsThirdPartyForAPI() {
	accepted := time.Now()
	suite.professional.Affiliations = []models.Affiliation{
		{ID: "aff-1", Organization: models.OrganizationRef{ID: "org-1"}, AcceptedAt: &accepted},
	}
	payload := []byte(`{"institute":"State University","program_name":"BSN","third_party_systems":[{"system":"ats","entity_id":"x"}]}`)

	item, err := suite.service.AddItem(suite.ctx, apiSession(), "prof-1", models.BriefcaseFieldEducation, payload)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), []models.ThirdPartySystem{{System: "ats", EntityID: "x"}}, item.ThirdParty())
}

func (suite *BriefcaseServiceTestSuite) TestAddLicenseIgnorePatternVerifiesManually() {
	suite.verificationSettings(&models.VerificationSettings{
		Enabled:            true,
		IgnoreEmailPattern: "@example\\.com$",
	})
	suite.licenseStorage()

	payload := []byte(`{"license_type":"RN","license_body":"Texas Board of Nursing","license_number":"123456"}`)
	item, err := suite.service.AddItem(suite.ctx, suite.selfSession, "prof-1", models.BriefcaseFieldLicenses, payload)

	assert.NoError(suite.T(), err)
	license := item.(*models.License)
	assert.NotNil(suite.T(), license.VerifiedAt)
	assert.Equal(suite.T(), models.VerificationTextManual, license.VerificationText)
	suite.verifier.AssertNotCalled(suite.T(), "Verify", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BriefcaseServiceTestSuite) TestAddLicenseNonElectronicSuspendsPendingReview() {
	suite.verificationSettings(&models.VerificationSettings{Enabled: true, NotificationEmail: "ops@example.com"})
	suite.licenseStorage()
	suite.lookupRepo.On("GetLicenseType", mock.Anything, "LVN").
		Return(&models.LicenseType{Abbr: "LVN", UseEVerify: false}, nil)
	suite.lookupRepo.On("GetLicenseBody", mock.Anything, "Texas Board of Nursing").
		Return(&models.LicenseBody{Name: "Texas Board of Nursing", UseEVerify: true}, nil)
	suite.profRepo.On("Suspend", mock.Anything, "prof-1", models.VerificationTextPendingBoard).Return(nil)

	payload := []byte(`{"license_type":"LVN","license_body":"Texas Board of Nursing","license_number":"123456"}`)
	item, err := suite.service.AddItem(suite.ctx, suite.selfSession, "prof-1", models.BriefcaseFieldLicenses, payload)

	assert.NoError(suite.T(), err)
	license := item.(*models.License)
	assert.Nil(suite.T(), license.VerifiedAt)
	assert.Equal(suite.T(), models.VerificationTextManualRequired, license.VerificationText)
	assert.Contains(suite.T(), suite.dispatcher.templates(), models.TemplateVerificationManual)
	suite.verifier.AssertNotCalled(suite.T(), "Verify", mock.Anything, mock.Anything, mock.Anything)

	suite.profRepo.AssertCalled(suite.T(), "Suspend", mock.Anything, "prof-1", models.VerificationTextPendingBoard)
	assert.NotNil(suite.T(), suite.professional.Briefcase.Verification)
	assert.False(suite.T(), suite.professional.Briefcase.Verification.IsEnabled)
	assert.Contains(suite.T(), suite.auditRepo.actions(), models.AuditUserSuspended)
}

func (suite *BriefcaseServiceTestSuite) TestAddLicenseManualOverrideVerifiesWithoutSuspension() {
	suite.verificationSettings(&models.VerificationSettings{Enabled: true, NotificationEmail: "ops@example.com"})
	suite.licenseStorage()

	payload := []byte(`{"license_type":"RN","license_body":"Texas Board of Nursing","license_number":"123456","manual_override":true}`)
	item, err := suite.service.AddItem(suite.ctx, suite.selfSession, "prof-1", models.BriefcaseFieldLicenses, payload)

	assert.NoError(suite.T(), err)
	license := item.(*models.License)
	assert.NotNil(suite.T(), license.VerifiedAt)
	assert.Equal(suite.T(), models.VerificationTextManual, license.VerificationText)
	assert.Contains(suite.T(), suite.dispatcher.templates(), models.TemplateVerificationManual)
	suite.profRepo.AssertNotCalled(suite.T(), "Suspend", mock.Anything, mock.Anything, mock.Anything)
	suite.verifier.AssertNotCalled(suite.T(), "Verify", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BriefcaseServiceTestSuite) TestAddLicenseWithoutIdentityInputsStaysUnverified() {
	suite.verificationSettings(&models.VerificationSettings{Enabled: true})
	suite.licenseStorage()
	suite.professional.SSNLast4 = ""
	suite.professional.DateOfBirth = nil

	payload := []byte(`{"license_type":"RN","license_body":"Texas Board of Nursing","license_number":"123456"}`)
	item, err := suite.service.AddItem(suite.ctx, suite.selfSession, "prof-1", models.BriefcaseFieldLicenses, payload)

	assert.NoError(suite.T(), err)
	license := item.(*models.License)
	assert.Nil(suite.T(), license.VerifiedAt)
	assert.Empty(suite.T(), license.VerificationText)
	suite.verifier.AssertNotCalled(suite.T(), "Verify", mock.Anything, mock.Anything, mock.Anything)
	suite.profRepo.AssertNotCalled(suite.T(), "Suspend", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BriefcaseServiceTestSuite) electronicLookups() {
	suite.lookupRepo.On("GetLicenseType", mock.Anything, "RN").
		Return(&models.LicenseType{Abbr: "RN", UseEVerify: true}, nil)
	suite.lookupRepo.On("GetLicenseBody", mock.Anything, "Texas Board of Nursing").
		Return(&models.LicenseBody{Name: "Texas Board of Nursing", UseEVerify: true}, nil)
}

func (suite *BriefcaseServiceTestSuite) TestAddLicenseElectronicVerified() {
	suite.verificationSettings(&models.VerificationSettings{Enabled: true, NotificationEmail: "ops@example.com"})
	suite.licenseStorage()
	suite.electronicLookups()
	var request *models.LicenseVerificationRequest
	suite.verifier.On("Verify", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			request = args.Get(2).(*models.LicenseVerificationRequest)
		}).
		Return(&models.LicenseVerificationResult{Verified: true}, nil)

	payload := []byte(`{"license_type":"RN","license_body":"Texas Board of Nursing","license_number":"123456"}`)
	item, err := suite.service.AddItem(suite.ctx, suite.selfSession, "prof-1", models.BriefcaseFieldLicenses, payload)

	assert.NoError(suite.T(), err)
	license := item.(*models.License)
	assert.NotNil(suite.T(), license.VerifiedAt)
	assert.Equal(suite.T(), models.VerificationTextUnencumbered, license.VerificationText)

	assert.Equal(suite.T(), "6789", request.SSNLast4)
	assert.Equal(suite.T(), suite.professional.DateOfBirth, request.DateOfBirth)

	var success *models.Notification
	for _, n := range suite.dispatcher.Notifications {
		if n.Template == models.TemplateVerificationSuccess {
			success = n
		}
	}
	assert.NotNil(suite.T(), success)
	assert.Equal(suite.T(), "ops@example.com", success.To)
}

func (suite *BriefcaseServiceTestSuite) TestAddLicensePrefersRequestIdentityInputs() {
	suite.verificationSettings(&models.VerificationSettings{Enabled: true, NotificationEmail: "ops@example.com"})
	suite.licenseStorage()
	suite.electronicLookups()
	var request *models.LicenseVerificationRequest
	suite.verifier.On("Verify", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			request = args.Get(2).(*models.LicenseVerificationRequest)
		}).
		Return(&models.LicenseVerificationResult{Verified: true}, nil)

	payload := []byte(`{"license_type":"RN","license_body":"Texas Board of Nursing","license_number":"123456","ssn":"987-65-1111","date_of_birth":"1985-02-03T00:00:00Z"}`)
	_, err := suite.service.AddItem(suite.ctx, suite.selfSession, "prof-1", models.BriefcaseFieldLicenses, payload)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "1111", request.SSNLast4)
	assert.Equal(suite.T(), time.Date(1985, 2, 3, 0, 0, 0, 0, time.UTC), request.DateOfBirth.UTC())
}

func (suite *BriefcaseServiceTestSuite) TestAddLicenseSuspensionPattern() {
	suite.verificationSettings(&models.VerificationSettings{
		Enabled:           true,
		ErrorPatterns:     []string{"revoked", "surrendered"},
		NotificationEmail: "ops@example.com",
	})
	suite.licenseStorage()
	suite.electronicLookups()
	suite.verifier.On("Verify", mock.Anything, mock.Anything, mock.Anything).
		Return(&models.LicenseVerificationResult{Verified: false, Errors: []string{"License status is REVOKED"}}, nil)
	suite.profRepo.On("Suspend", mock.Anything, "prof-1", "License status is REVOKED").Return(nil)

	payload := []byte(`{"license_type":"RN","license_body":"Texas Board of Nursing","license_number":"123456"}`)
	item, err := suite.service.AddItem(suite.ctx, suite.selfSession, "prof-1", models.BriefcaseFieldLicenses, payload)

	assert.NoError(suite.T(), err)
	license := item.(*models.License)
	assert.Nil(suite.T(), license.VerifiedAt)
	assert.Equal(suite.T(), "License status is REVOKED", license.VerificationText)

	suite.profRepo.AssertCalled(suite.T(), "Suspend", mock.Anything, "prof-1", "License status is REVOKED")
	assert.NotNil(suite.T(), suite.professional.Briefcase.Verification)
	assert.False(suite.T(), suite.professional.Briefcase.Verification.IsEnabled)
	assert.Contains(suite.T(), suite.auditRepo.actions(), models.AuditUserSuspended)
	assert.Contains(suite.T(), suite.dispatcher.templates(), models.TemplateVerificationFailed)
}

func (suite *BriefcaseServiceTestSuite) TestAddLicenseRejectedWithoutPatternSuspends() {
	suite.verificationSettings(&models.VerificationSettings{
		Enabled:       true,
		ErrorPatterns: []string{"revoked"},
		GenericError:  "Verification could not be completed",
	})
	suite.licenseStorage()
	suite.electronicLookups()
	suite.verifier.On("Verify", mock.Anything, mock.Anything, mock.Anything).
		Return(&models.LicenseVerificationResult{Verified: false, Errors: []string{"No matching record found"}}, nil)
	suite.profRepo.On("Suspend", mock.Anything, "prof-1", "Verification could not be completed").Return(nil)

	payload := []byte(`{"license_type":"RN","license_body":"Texas Board of Nursing","license_number":"123456"}`)
	item, err := suite.service.AddItem(suite.ctx, suite.selfSession, "prof-1", models.BriefcaseFieldLicenses, payload)

	assert.NoError(suite.T(), err)
	license := item.(*models.License)
	assert.Nil(suite.T(), license.VerifiedAt)
	assert.Equal(suite.T(), "No matching record found", license.VerificationText)
	assert.Equal(suite.T(), "Verification could not be completed", suite.professional.SuspendedReason)
	assert.Contains(suite.T(), suite.dispatcher.templates(), models.TemplateVerificationFailed)
	suite.profRepo.AssertCalled(suite.T(), "Suspend", mock.Anything, "prof-1", "Verification could not be completed")
}

func (suite *BriefcaseServiceTestSuite) TestAddLicenseGatewayFailureSuspends() {
	suite.verificationSettings(&models.VerificationSettings{Enabled: true})
	suite.licenseStorage()
	suite.electronicLookups()
	suite.verifier.On("Verify", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, assert.AnError)
	suite.profRepo.On("Suspend", mock.Anything, "prof-1", assert.AnError.Error()).Return(nil)

	payload := []byte(`{"license_type":"RN","license_body":"Texas Board of Nursing","license_number":"123456"}`)
	item, err := suite.service.AddItem(suite.ctx, suite.selfSession, "prof-1", models.BriefcaseFieldLicenses, payload)

	assert.NoError(suite.T(), err)
	license := item.(*models.License)
	assert.Nil(suite.T(), license.VerifiedAt)
	assert.Equal(suite.T(), assert.AnError.Error(), license.VerificationText)
	assert.NotNil(suite.T(), suite.professional.Briefcase.Verification)
	assert.False(suite.T(), suite.professional.Briefcase.Verification.IsEnabled)
	assert.Contains(suite.T(), suite.dispatcher.templates(), models.TemplateVerificationFailed)
	suite.profRepo.AssertCalled(suite.T(), "Suspend", mock.Anything, "prof-1", assert.AnError.Error())
}

func (suite *BriefcaseServiceTestSuite) TestAddLicenseVerificationDisabled() {
	suite.verificationSettings(&models.VerificationSettings{Enabled: false})
	suite.licenseStorage()

	payload := []byte(`{"license_type":"RN","license_body":"Texas Board of Nursing","license_number":"123456"}`)
	item, err := suite.service.AddItem(suite.ctx, suite.selfSession, "prof-1", models.BriefcaseFieldLicenses, payload)

	assert.NoError(suite.T(), err)
	license := item.(*models.License)
	assert.Nil(suite.T(), license.VerifiedAt)
	assert.Empty(suite.T(), license.VerificationText)
	suite.verifier.AssertNotCalled(suite.T(), "Verify", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BriefcaseServiceTestSuite) TestAddItemPromotesStagedFile() {
	storage := &models.StorageSettings{Bucket: "assets", TempBucket: "assets-tmp", URLPrefix: "https://cdn.example.com"}
	uploadedAt := time.Now().Add(-time.Minute)
	promoted := &PromotedFile{
		URL:        "https://cdn.example.com/uploads/prof-1/cert-1/1/certification.pdf",
		UploadedAt: uploadedAt,
	}

	suite.settingsRepo.On("GetStorageSettings", mock.Anything).Return(storage, nil)
	suite.assets.On("Promote", mock.Anything, storage, "prof-1", mock.Anything, mock.Anything,
		"https://cdn-tmp.example.com/staged/cert.pdf", "").
		Return(promoted, nil)
	suite.assets.On("Cleanup", mock.Anything, storage, mock.Anything, promoted).Return()

	payload := []byte(`{"name":"BLS","file_url":"https://cdn-tmp.example.com/staged/cert.pdf"}`)
	item, err := suite.service.AddItem(suite.ctx, suite.selfSession, "prof-1", models.BriefcaseFieldCertifications, payload)

	assert.NoError(suite.T(), err)
	cert := item.(*models.Certification)
	assert.Equal(suite.T(), promoted.URL, cert.FileURL)
	assert.NotNil(suite.T(), cert.FileUploadedAt)
	suite.assets.AssertCalled(suite.T(), "Cleanup", mock.Anything, storage, mock.Anything, promoted)
	assert.Contains(suite.T(), suite.dispatcher.Events, models.WebhookEventFileUploaded)
}

func (suite *BriefcaseServiceTestSuite) TestDeleteItemRemovesRetiredFile() {
	cert := models.Certification{Name: "BLS", FileURL: "https://cdn.example.com/uploads/prof-1/cert-1/1/certification.pdf"}
	cert.ID = "cert-1"
	suite.professional.Briefcase.Certifications = []models.Certification{cert}

	storage := &models.StorageSettings{Bucket: "assets", URLPrefix: "https://cdn.example.com"}
	suite.settingsRepo.On("GetStorageSettings", mock.Anything).Return(storage, nil)
	suite.assets.On("DeleteByURL", mock.Anything, storage, cert.FileURL).Return()

	err := suite.service.DeleteItem(suite.ctx, suite.selfSession, "prof-1", models.BriefcaseFieldCertifications, "cert-1")

	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), suite.professional.Briefcase.Certifications)
	suite.assets.AssertCalled(suite.T(), "DeleteByURL", mock.Anything, storage, cert.FileURL)
	assert.Contains(suite.T(), suite.auditRepo.actions(), models.AuditUserItemDeleted)
	assert.Contains(suite.T(), suite.dispatcher.Events, models.WebhookEventItemDeleted)
}

func (suite *BriefcaseServiceTestSuite) TestDeleteItemHistoryFieldKeepsFile() {
	doc := models.HealthDocument{Name: "MMR", FileURL: "https://cdn.example.com/uploads/prof-1/doc-1/1/health-document.pdf"}
	doc.ID = "doc-1"
	suite.professional.Briefcase.HealthDocuments = []models.HealthDocument{doc}

	err := suite.service.DeleteItem(suite.ctx, suite.selfSession, "prof-1", models.BriefcaseFieldHealthDocuments, "doc-1")

	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), suite.professional.Briefcase.HealthDocuments)
	suite.assets.AssertNotCalled(suite.T(), "DeleteByURL", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BriefcaseServiceTestSuite) TestAddItemNotifiesOnCompletion() {
	profRepo := &MockProfessionalRepository{}
	dispatcher := newMockDispatcher()
	service := NewBriefcaseService(
		profRepo, suite.lookupRepo, suite.auditRepo, suite.settingsRepo,
		suite.assets, dispatcher, suite.verifier, newMockLogger(),
	)

	before := &models.Professional{
		ID:        "prof-1",
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Briefcase: &models.Briefcase{},
	}
	completed := time.Now()
	accepted := time.Now()
	after := &models.Professional{
		ID:        "prof-1",
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Briefcase: &models.Briefcase{CompletedAt: &completed},
		Affiliations: []models.Affiliation{{
			ID:           "aff-1",
			Organization: models.OrganizationRef{ID: "org-1", Name: "Mercy General"},
			AcceptedAt:   &accepted,
			Recruiter:    &models.RecruiterRef{Email: "recruiter@example.com"},
		}},
	}

	profRepo.On("FindByID", mock.Anything, "prof-1").Return(before, nil).Once()
	profRepo.On("FindByID", mock.Anything, "prof-1").Return(after, nil).Once()
	profRepo.On("UpdateBriefcase", mock.Anything, "prof-1", mock.Anything).Return(nil)
	profRepo.On("AddShare", mock.Anything, after, mock.Anything).Return(nil)
	suite.settingsRepo.On("GetServerSettings", mock.Anything).Return(&models.ServerSettings{
		Env:          models.EnvStaging,
		SupportEmail: "support@example.com",
	}, nil)

	payload := []byte(`{"institute":"State University","program_name":"BSN"}`)
	_, err := service.AddItem(suite.ctx, suite.selfSession, "prof-1", models.BriefcaseFieldEducation, payload)

	assert.NoError(suite.T(), err)
	assert.Contains(suite.T(), dispatcher.templates(), models.TemplateProfileCompleted)

	var recruiterMail *models.Notification
	for _, n := range dispatcher.Notifications {
		if n.Template == models.TemplateBriefcaseCompleted {
			recruiterMail = n
		}
	}
	assert.NotNil(suite.T(), recruiterMail)
	assert.Equal(suite.T(), "recruiter@example.com", recruiterMail.To)
	profRepo.AssertCalled(suite.T(), "AddShare", mock.Anything, after, mock.Anything)
}

func (suite *BriefcaseServiceTestSuite) TestAddItemAlreadyCompleteStaysQuiet() {
	completed := time.Now().Add(-time.Hour)
	suite.professional.Briefcase.CompletedAt = &completed

	payload := []byte(`{"institute":"State University","program_name":"BSN"}`)
	_, err := suite.service.AddItem(suite.ctx, suite.selfSession, "prof-1", models.BriefcaseFieldEducation, payload)

	assert.NoError(suite.T(), err)
	assert.NotContains(suite.T(), suite.dispatcher.templates(), models.TemplateProfileCompleted)
}

func (suite *BriefcaseServiceTestSuite) TestDeleteItemMissing() {
	err := suite.service.DeleteItem(suite.ctx, suite.selfSession, "prof-1", models.BriefcaseFieldEducation, "missing")

	assert.ErrorIs(suite.T(), err, models.ErrBriefcaseItemNotFound)
}

func (suite *BriefcaseServiceTestSuite) TestRecheckLicensesCountsOutcomes() {
	suite.verificationSettings(&models.VerificationSettings{
		Enabled:            true,
		IgnoreEmailPattern: "@example\\.com$",
	})
	first := models.License{LicenseType: "RN", LicenseNumber: "1"}
	first.ID = "lic-1"
	second := models.License{LicenseType: "RN", LicenseNumber: "2"}
	second.ID = "lic-2"
	suite.professional.Briefcase.Licenses = []models.License{first, second}

	result, err := suite.service.RecheckLicenses(suite.ctx, suite.professional)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, result.Checked)
	assert.Equal(suite.T(), 2, result.Verified)
	assert.Equal(suite.T(), 0, result.Failed)
	suite.profRepo.AssertCalled(suite.T(), "UpdateBriefcase", mock.Anything, "prof-1", suite.professional.Briefcase)
}

func (suite *BriefcaseServiceTestSuite) TestRecheckLicensesStopsOnSuspension() {
	suite.verificationSettings(&models.VerificationSettings{
		Enabled:       true,
		ErrorPatterns: []string{"revoked"},
	})
	suite.electronicLookups()
	suite.verifier.On("Verify", mock.Anything, mock.Anything, mock.Anything).
		Return(&models.LicenseVerificationResult{Verified: false, Errors: []string{"revoked"}}, nil)
	suite.profRepo.On("Suspend", mock.Anything, "prof-1", "revoked").Return(nil)

	first := models.License{LicenseType: "RN", LicenseBody: "Texas Board of Nursing", LicenseNumber: "1"}
	first.ID = "lic-1"
	second := models.License{LicenseType: "RN", LicenseBody: "Texas Board of Nursing", LicenseNumber: "2"}
	second.ID = "lic-2"
	suite.professional.Briefcase.Licenses = []models.License{first, second}

	result, err := suite.service.RecheckLicenses(suite.ctx, suite.professional)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, result.Checked)
	assert.Equal(suite.T(), 1, result.Suspended)
	assert.Equal(suite.T(), 1, result.Failed)
	assert.Equal(suite.T(), 0, result.Verified)
}

func TestBriefcaseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BriefcaseServiceTestSuite))
}
