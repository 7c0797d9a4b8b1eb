package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"medstaff-backend/models"
	"medstaff-backend/repository"
	"medstaff-backend/utils"
	"medstaff-backend/utils/logger"
)

type BriefcaseService struct {
	profRepo     repository.ProfessionalRepositoryInterface
	lookupRepo   repository.LookupRepositoryInterface
	auditRepo    repository.AuditRepositoryInterface
	settingsRepo repository.SettingsRepositoryInterface
	assets       AssetManagerInterface
	dispatcher   DispatcherInterface
	verifier     LicenseVerifierInterface
	logger       logger.Logger
}

// NewBriefcaseService creates a new briefcase service
func NewBriefcaseService(
	profRepo repository.ProfessionalRepositoryInterface,
	lookupRepo repository.LookupRepositoryInterface,
	auditRepo repository.AuditRepositoryInterface,
	settingsRepo repository.SettingsRepositoryInterface,
	assets AssetManagerInterface,
	dispatcher DispatcherInterface,
	verifier LicenseVerifierInterface,
	log logger.Logger,
) *BriefcaseService {
	return &BriefcaseService{
		profRepo:     profRepo,
		lookupRepo:   lookupRepo,
		auditRepo:    auditRepo,
		settingsRepo: settingsRepo,
		assets:       assets,
		dispatcher:   dispatcher,
		verifier:     verifier,
		logger:       log,
	}
}

func (s *BriefcaseService) loadProfessional(ctx context.Context, session *models.Session, id string) (*models.Professional, error) {
	professional, err := s.profRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if professional == nil {
		return nil, models.ErrUserNotFound
	}
	if !professional.HasAccess(session) {
		return nil, models.ErrUnauthorized
	}
	if professional.DeactivatedAt != nil {
		return nil, models.ErrDeactivatedAccount
	}
	return professional, nil
}

// AddItem decodes and stores a new briefcase item, running license
// verification and file promotion where the field calls for them.
func (s *BriefcaseService) AddItem(ctx context.Context, session *models.Session, professionalID string, field models.BriefcaseField, payload []byte) (models.BriefcaseItem, error) {
	item, err := models.DecodeBriefcaseItem(field, payload)
	if err != nil {
		return nil, err
	}
	item.SetItemID(utils.GenerateUUID())
	return s.saveItem(ctx, session, professionalID, field, item, nil, models.AuditUserItemAdded)
}

// UpdateItem replaces an existing briefcase item in place.
func (s *BriefcaseService) UpdateItem(ctx context.Context, session *models.Session, professionalID string, field models.BriefcaseField, itemID string, payload []byte) (models.BriefcaseItem, error) {
	item, err := models.DecodeBriefcaseItem(field, payload)
	if err != nil {
		return nil, err
	}
	item.SetItemID(itemID)
	return s.saveItem(ctx, session, professionalID, field, item, &itemID, models.AuditUserItemUpdated)
}

func (s *BriefcaseService) saveItem(ctx context.Context, session *models.Session, professionalID string, field models.BriefcaseField, item models.BriefcaseItem, requireID *string, auditAction string) (models.BriefcaseItem, error) {
	professional, err := s.loadProfessional(ctx, session, professionalID)
	if err != nil {
		return nil, err
	}
	if professional.Briefcase == nil {
		professional.Briefcase = &models.Briefcase{}
	}
	briefcase := professional.Briefcase
	hadCompleted := briefcase.CompletedAt != nil

	var prior models.BriefcaseItem
	if requireID != nil {
		prior = briefcase.Item(field, *requireID)
		if prior == nil {
			return nil, models.ErrBriefcaseItemNotFound
		}
	}

	// External linkage is owned by API integrations. Edits from any
	// other session keep whatever linkage the item already carried.
	if session == nil || !session.IsAPI() {
		if prior != nil {
			item.SetThirdParty(prior.ThirdParty())
		} else {
			item.SetThirdParty(nil)
		}
	}

	suspended := false
	if license, ok := item.(*models.License); ok {
		suspended, err = s.verifyLicense(ctx, professional, license)
		if err != nil {
			return nil, err
		}
	}

	var promoted *PromotedFile
	var storage *models.StorageSettings
	fileField := models.FileFieldFor(field)
	if fileField != nil {
		carrier, ok := item.(models.FileCarrier)
		if !ok {
			return nil, fmt.Errorf("%s items do not carry files", field)
		}
		current := ""
		if prior != nil {
			if priorCarrier, ok := prior.(models.FileCarrier); ok {
				current = priorCarrier.GetFileURL()
			}
		}

		storage, err = s.settingsRepo.GetStorageSettings(ctx)
		if err != nil {
			return nil, err
		}
		promoted, err = s.assets.Promote(ctx, storage, professional.ID, item.ItemID(), fileField, carrier.GetFileURL(), current)
		if err != nil {
			return nil, err
		}
		if promoted != nil {
			uploadedAt := promoted.UploadedAt
			carrier.SetFile(promoted.URL, &uploadedAt)
		}
	}

	if err := briefcase.SetItem(field, item); err != nil {
		return nil, err
	}
	if err := s.profRepo.UpdateBriefcase(ctx, professional.ID, briefcase); err != nil {
		return nil, err
	}

	if promoted != nil {
		s.assets.Cleanup(ctx, storage, fileField, promoted)
	}

	s.auditRepo.Append(ctx, &models.AuditEntry{
		Action:    auditAction,
		UserID:    professional.ID,
		CreatedBy: session.Actor(),
		Data:      map[string]interface{}{"field": field, "item_id": item.ItemID()},
	})
	if suspended {
		s.auditRepo.Append(ctx, &models.AuditEntry{
			Action:    models.AuditUserSuspended,
			UserID:    professional.ID,
			CreatedBy: session.Actor(),
			Data:      map[string]interface{}{"reason": professional.SuspendedReason},
		})
	}

	s.dispatcher.ProfessionalEvent(ctx, session, professional, models.WebhookEventItemUpdated)
	if promoted != nil {
		s.dispatcher.ProfessionalEvent(ctx, session, professional, models.WebhookEventFileUploaded)
	}

	if !hadCompleted {
		s.notifyIfCompleted(ctx, professional.ID)
	}

	return item, nil
}

// DeleteItem removes a briefcase item. Files on history fields survive
// the deletion; everything else is retired with the item.
func (s *BriefcaseService) DeleteItem(ctx context.Context, session *models.Session, professionalID string, field models.BriefcaseField, itemID string) error {
	professional, err := s.loadProfessional(ctx, session, professionalID)
	if err != nil {
		return err
	}
	if professional.Briefcase == nil {
		return models.ErrBriefcaseItemNotFound
	}

	prior := professional.Briefcase.Item(field, itemID)
	if prior == nil {
		return models.ErrBriefcaseItemNotFound
	}
	hadCompleted := professional.Briefcase.CompletedAt != nil
	professional.Briefcase.RemoveItem(field, itemID)

	if err := s.profRepo.UpdateBriefcase(ctx, professional.ID, professional.Briefcase); err != nil {
		return err
	}

	fileField := models.FileFieldFor(field)
	if fileField != nil && !fileField.History {
		if carrier, ok := prior.(models.FileCarrier); ok && carrier.GetFileURL() != "" {
			storage, err := s.settingsRepo.GetStorageSettings(ctx)
			if err == nil {
				s.assets.DeleteByURL(ctx, storage, carrier.GetFileURL())
			}
		}
	}

	s.auditRepo.Append(ctx, &models.AuditEntry{
		Action:    models.AuditUserItemDeleted,
		UserID:    professional.ID,
		CreatedBy: session.Actor(),
		Data:      map[string]interface{}{"field": field, "item_id": itemID},
	})
	s.dispatcher.ProfessionalEvent(ctx, session, professional, models.WebhookEventItemDeleted)

	if !hadCompleted {
		s.notifyIfCompleted(ctx, professional.ID)
	}

	return nil
}

// notifyIfCompleted re-reads the professional and sends the one-time
// completion notifications when the briefcase has a completed timestamp.
// The stored record is the arbiter so a completion raced in by a
// concurrent profile update is still announced.
func (s *BriefcaseService) notifyIfCompleted(ctx context.Context, professionalID string) {
	professional, err := s.profRepo.FindByID(ctx, professionalID)
	if err != nil || professional == nil {
		if err != nil {
			s.logger.Warnf("Completion check failed for %s: %v", professionalID, err)
		}
		return
	}
	if professional.Briefcase == nil || professional.Briefcase.CompletedAt == nil {
		return
	}
	server := s.settingsServer(ctx)
	if server == nil {
		return
	}
	sendCompletedNotifications(ctx, s.profRepo, s.dispatcher, s.logger, server, professional)
}

// verifyLicense runs the verification state machine for one license.
// Returns whether the professional was suspended as a result.
//
// Outcomes:
//   - SSN or date of birth missing without a manual override: nothing
//     happens, the license stays unverified
//   - professional email matches the ignore pattern: marked verified manually
//   - explicit manual override: marked verified manually, ops notified
//   - gateway verifies: UNENCUMBERED, ops notified
//   - gateway rejects or fails: professional suspended, auto
//     verification disabled, ops notified
//   - no electronic channel: manual review requested, professional
//     suspended until a human clears it
func (s *BriefcaseService) verifyLicense(ctx context.Context, professional *models.Professional, license *models.License) (bool, error) {
	settings, err := s.settingsRepo.GetVerificationSettings(ctx)
	if err != nil {
		return false, err
	}
	if !settings.Enabled {
		return false, nil
	}

	ssn := lastFourSSN(license.SSN)
	if ssn == "" {
		ssn = professional.SSNLast4
	}
	dateOfBirth := license.DateOfBirth
	if dateOfBirth == nil {
		dateOfBirth = professional.DateOfBirth
	}
	if !license.ManualOverride && (ssn == "" || dateOfBirth == nil) {
		// Electronic checks need the identity inputs.
		return false, nil
	}

	server := s.settingsServer(ctx)
	opsTo := ""
	if server != nil {
		opsTo = opsRecipient(server, settings)
	}

	if !license.ManualOverride {
		if matched, _ := regexp.MatchString(settings.IgnoreEmailPattern, professional.Email); settings.IgnoreEmailPattern != "" && matched {
			now := time.Now()
			license.VerifiedAt = &now
			license.VerificationText = models.VerificationTextManual
			return false, nil
		}
	}

	if license.ManualOverride {
		now := time.Now()
		license.VerifiedAt = &now
		license.VerificationText = models.VerificationTextManual
		s.dispatcher.Notify(ctx, verificationManualNotification(professional, license, opsTo))
		return false, nil
	}

	licenseType, err := s.lookupRepo.GetLicenseType(ctx, license.LicenseType)
	if err != nil {
		return false, err
	}
	body, err := s.lookupRepo.GetLicenseBody(ctx, license.LicenseBody)
	if err != nil {
		return false, err
	}
	electronic := licenseType != nil && licenseType.UseEVerify && body != nil && body.UseEVerify

	if !electronic {
		license.VerifiedAt = nil
		license.VerificationText = models.VerificationTextManualRequired
		if err := s.suspendForVerification(ctx, professional, models.VerificationTextPendingBoard); err != nil {
			return false, err
		}
		s.dispatcher.Notify(ctx, verificationManualNotification(professional, license, opsTo))
		return true, nil
	}

	result, err := s.verifier.Verify(ctx, settings, &models.LicenseVerificationRequest{
		FirstName:     professional.FirstName,
		LastName:      professional.LastName,
		DateOfBirth:   dateOfBirth,
		SSNLast4:      ssn,
		LicenseNumber: license.LicenseNumber,
		LicenseBody:   license.LicenseBody,
		LicenseType:   license.LicenseType,
	})
	if err != nil {
		s.logger.Warnf("License verification failed for %s: %v", professional.ID, err)
		return true, s.failVerification(ctx, professional, license, []string{err.Error()}, settings, opsTo)
	}

	if result.Verified {
		now := time.Now()
		license.VerifiedAt = &now
		license.VerificationText = models.VerificationTextUnencumbered
		s.dispatcher.Notify(ctx, verificationSuccessNotification(professional, license, opsTo))
		return false, nil
	}

	return true, s.failVerification(ctx, professional, license, result.Errors, settings, opsTo)
}

// failVerification records a rejected electronic check. The raw gateway
// messages land on the license; the suspension reason substitutes the
// generic text for any message outside the configured patterns so
// internal gateway detail never reaches the account.
func (s *BriefcaseService) failVerification(ctx context.Context, professional *models.Professional, license *models.License, messages []string, settings *models.VerificationSettings, opsTo string) error {
	if len(messages) == 0 {
		messages = []string{models.VerificationTextManualRequired}
	}
	license.VerifiedAt = nil
	license.VerificationText = strings.Join(messages, "\n")

	safe := make([]string, 0, len(messages))
	for _, msg := range messages {
		if matchesErrorPattern(settings, msg) || settings.GenericError == "" {
			safe = append(safe, msg)
		} else {
			safe = append(safe, settings.GenericError)
		}
	}
	reason := strings.Join(safe, "\n")

	if err := s.suspendForVerification(ctx, professional, reason); err != nil {
		return err
	}
	s.dispatcher.Notify(ctx, verificationFailedNotification(professional, license, messages, opsTo))
	return nil
}

// suspendForVerification suspends the account and turns off automatic
// verification until a human reviews it.
func (s *BriefcaseService) suspendForVerification(ctx context.Context, professional *models.Professional, reason string) error {
	if professional.Briefcase == nil {
		professional.Briefcase = &models.Briefcase{}
	}
	professional.Briefcase.Verification = &models.AutoVerification{
		IsEnabled:        false,
		VerificationText: reason,
	}
	professional.SuspendedReason = reason
	return s.profRepo.Suspend(ctx, professional.ID, reason)
}

// matchesErrorPattern reports whether a gateway message matches one of
// the configured suspension patterns.
func matchesErrorPattern(settings *models.VerificationSettings, msg string) bool {
	for _, pattern := range settings.ErrorPatterns {
		if strings.Contains(strings.ToLower(msg), strings.ToLower(pattern)) {
			return true
		}
	}
	return false
}

var ssnDigits = regexp.MustCompile(`\D`)

// lastFourSSN strips non-digits and keeps the trailing four.
func lastFourSSN(ssn string) string {
	digits := ssnDigits.ReplaceAllString(ssn, "")
	if len(digits) > 4 {
		digits = digits[len(digits)-4:]
	}
	return digits
}

// RecheckLicenses re-verifies every license on a professional, used by
// the scheduled daily pass. Persists updated verification state.
func (s *BriefcaseService) RecheckLicenses(ctx context.Context, professional *models.Professional) (*models.RecheckResult, error) {
	result := &models.RecheckResult{StartTime: time.Now()}
	if professional.Briefcase == nil {
		return result, nil
	}

	for i := range professional.Briefcase.Licenses {
		license := &professional.Briefcase.Licenses[i]
		result.Checked++

		suspended, err := s.verifyLicense(ctx, professional, license)
		if err != nil {
			return nil, err
		}
		if suspended {
			result.Suspended++
			result.Failed++
			break
		}
		if license.VerifiedAt != nil {
			result.Verified++
		} else {
			result.Failed++
		}
	}

	if err := s.profRepo.UpdateBriefcase(ctx, professional.ID, professional.Briefcase); err != nil {
		return nil, err
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)
	return result, nil
}

func (s *BriefcaseService) settingsServer(ctx context.Context) *models.ServerSettings {
	server, err := s.settingsRepo.GetServerSettings(ctx)
	if err != nil {
		s.logger.Warnf("Server settings unavailable: %v", err)
		return nil
	}
	return server
}
