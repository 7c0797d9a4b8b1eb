package services

import (
	"context"
	"strings"
	"time"

	"medstaff-backend/models"
	"medstaff-backend/repository"
	"medstaff-backend/utils"
	"medstaff-backend/utils/logger"
)

// verificationTokenTTL bounds activation and email-change links.
const verificationTokenTTL = 7 * 24 * time.Hour

// shareTypeOverview is the share link reused for recruiter-facing
// briefcase notifications. One per professional, created on first use.
const shareTypeOverview = "overview"

type ProfessionalService struct {
	profRepo     repository.ProfessionalRepositoryInterface
	orgRepo      repository.OrganizationRepositoryInterface
	lookupRepo   repository.LookupRepositoryInterface
	auditRepo    repository.AuditRepositoryInterface
	settingsRepo repository.SettingsRepositoryInterface
	assets       AssetManagerInterface
	dispatcher   DispatcherInterface
	logger       logger.Logger
}

// NewProfessionalService creates a new professional service
func NewProfessionalService(
	profRepo repository.ProfessionalRepositoryInterface,
	orgRepo repository.OrganizationRepositoryInterface,
	lookupRepo repository.LookupRepositoryInterface,
	auditRepo repository.AuditRepositoryInterface,
	settingsRepo repository.SettingsRepositoryInterface,
	assets AssetManagerInterface,
	dispatcher DispatcherInterface,
	log logger.Logger,
) *ProfessionalService {
	return &ProfessionalService{
		profRepo:     profRepo,
		orgRepo:      orgRepo,
		lookupRepo:   lookupRepo,
		auditRepo:    auditRepo,
		settingsRepo: settingsRepo,
		assets:       assets,
		dispatcher:   dispatcher,
		logger:       log,
	}
}

// ensureVerificationToken reuses the current token while it is still
// valid, otherwise mints a new one. The expiry is reset either way so
// the freshly sent link always gets the full window.
func ensureVerificationToken(p *models.Professional, now time.Time) {
	if !p.TokenValid(now) {
		p.VerificationToken = utils.GenerateVerificationToken()
	}
	expiry := now.Add(verificationTokenTTL)
	p.VerificationTokenExpiresAt = &expiry
}

// GetProfessional returns a professional the session may access
func (s *ProfessionalService) GetProfessional(ctx context.Context, session *models.Session, id string) (*models.Professional, error) {
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
	return professional, nil
}

// AddProfessional creates a professional account or, when the email
// already belongs to one, routes through the affiliation confirmation
// gate. The second return value reports whether a record was created.
func (s *ProfessionalService) AddProfessional(ctx context.Context, session *models.Session, req *models.AddProfessionalRequest) (*models.Professional, bool, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	organization, department, err := s.resolveOrgContext(ctx, session, req)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.profRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		professional, err := s.affiliateExisting(ctx, session, req, existing, organization, department)
		return professional, false, err
	}

	professional, err := s.createProfessional(ctx, session, req, email, organization, department)
	return professional, professional != nil, err
}

// resolveOrgContext loads and validates the acting organization and the
// target department. Organization sessions act on their own
// organization; public signups may name one on the affiliation payload.
func (s *ProfessionalService) resolveOrgContext(ctx context.Context, session *models.Session, req *models.AddProfessionalRequest) (*models.Organization, *models.Department, error) {
	organizationID := ""
	if session != nil && session.IsOrganizationUser() {
		organizationID = session.OrganizationID
	} else if req.Affiliation != nil {
		organizationID = req.Affiliation.OrganizationID
	}
	if organizationID == "" {
		return nil, nil, nil
	}

	organization, err := s.orgRepo.GetOrganization(ctx, organizationID)
	if err != nil {
		return nil, nil, err
	}
	if organization == nil {
		return nil, nil, models.ErrOrganizationNotFound
	}

	var department *models.Department
	if req.Affiliation != nil && req.Affiliation.DepartmentID != "" {
		department, err = s.orgRepo.GetDepartment(ctx, organization.ID, req.Affiliation.DepartmentID)
		if err != nil {
			return nil, nil, err
		}
		if department == nil {
			return nil, nil, models.ErrDepartmentNotFound
		}
	}
	return organization, department, nil
}

// affiliateExisting handles an add against an email that already has an
// account: deactivated accounts and profession conflicts reject,
// duplicate affiliations reject with an activation resend, and an
// unconfirmed request returns the confirmation gate.
func (s *ProfessionalService) affiliateExisting(ctx context.Context, session *models.Session, req *models.AddProfessionalRequest, existing *models.Professional, organization *models.Organization, department *models.Department) (*models.Professional, error) {
	if existing.DeactivatedAt != nil {
		return nil, models.ErrDeactivatedAccount
	}
	if req.Profession != "" && existing.Profession != "" && !strings.EqualFold(req.Profession, existing.Profession) {
		return nil, models.ErrProfessionAlreadyAssigned
	}

	var current *models.Affiliation
	if organization != nil {
		current = existing.ActiveAffiliation(organization.ID)
	}

	duplicateMarketplace := organization == nil && existing.IsMarketplace
	duplicateAffiliation := current != nil && (!req.IsIRPAdd || current.AcceptedAt != nil)
	if duplicateMarketplace || duplicateAffiliation {
		return nil, s.rejectDuplicate(ctx, existing)
	}

	if session == nil {
		return nil, s.requestAffiliationConfirmation(ctx, existing, organization)
	}
	if !req.ConfirmAffiliation {
		return nil, &models.AddAffiliationRequired{ProfessionalID: existing.ID}
	}

	now := time.Now()
	ensureVerificationToken(existing, now)

	switch {
	case organization == nil:
		// Sessionful add without an organization upgrades the
		// account to the marketplace.
		existing.IsMarketplace = true
		updates := tokenUpdates(existing)
		updates["is_marketplace"] = true
		if err := s.profRepo.Update(ctx, existing.ID, updates); err != nil {
			return nil, err
		}
		s.auditRepo.Append(ctx, &models.AuditEntry{
			Action:    models.AuditUserUpdated,
			UserID:    existing.ID,
			CreatedBy: session.Actor(),
		})

	case current != nil:
		// An IRP add accepts the professional's pending
		// affiliation instead of creating a second one.
		current.AcceptedAt = &now
		current.AcceptedBy = session.Actor()
		updates := tokenUpdates(existing)
		updates["affiliations"] = existing.Affiliations
		if err := s.profRepo.Update(ctx, existing.ID, updates); err != nil {
			return nil, err
		}
		s.auditRepo.Append(ctx, &models.AuditEntry{
			Action:    models.AuditUserUpdated,
			UserID:    existing.ID,
			CreatedBy: session.Actor(),
			Data:      current,
		})
		s.dispatcher.ProfessionalEvent(ctx, session, existing, models.WebhookEventAffiliationAdded)

	default:
		affiliation, err := s.buildAffiliation(ctx, session, req.Affiliation, organization, department)
		if err != nil {
			return nil, err
		}
		if err := s.profRepo.AddAffiliation(ctx, existing, affiliation); err != nil {
			return nil, err
		}
		if err := s.profRepo.Update(ctx, existing.ID, tokenUpdates(existing)); err != nil {
			return nil, err
		}
		s.auditRepo.Append(ctx, &models.AuditEntry{
			Action:    models.AuditUserUpdated,
			UserID:    existing.ID,
			CreatedBy: session.Actor(),
			Data:      affiliation,
		})
		s.dispatcher.ProfessionalEvent(ctx, session, existing, models.WebhookEventAffiliationAdded)
	}

	if server := s.serverSettings(ctx); server != nil {
		if existing.ActivatedAt != nil {
			s.dispatcher.Notify(ctx, welcomeNotification(existing, organization, server))
		} else {
			s.dispatcher.Notify(ctx, addAffiliationNotification(existing, organization, server))
		}
	}

	s.logger.Infof("Existing professional %s attached (organization %s)", existing.ID, organizationLabel(organization))
	return existing, nil
}

// rejectDuplicate rejects the add but, when the account was never
// activated, resends the activation email so the professional can still
// claim it. The verification token is reused while it remains valid.
func (s *ProfessionalService) rejectDuplicate(ctx context.Context, existing *models.Professional) error {
	if existing.ActivatedAt == nil {
		ensureVerificationToken(existing, time.Now())
		if err := s.profRepo.Update(ctx, existing.ID, tokenUpdates(existing)); err != nil {
			return err
		}
		if server := s.serverSettings(ctx); server != nil {
			s.dispatcher.Notify(ctx, activationNotification(existing, server))
		}
	}
	return models.ErrAccountAlreadyExists
}

// requestAffiliationConfirmation handles a public add against an
// existing account: a fresh verification token and an affiliation
// notification go out, but nothing is attached until the professional
// confirms.
func (s *ProfessionalService) requestAffiliationConfirmation(ctx context.Context, existing *models.Professional, organization *models.Organization) error {
	ensureVerificationToken(existing, time.Now())
	if err := s.profRepo.Update(ctx, existing.ID, tokenUpdates(existing)); err != nil {
		return err
	}
	if server := s.serverSettings(ctx); server != nil {
		s.dispatcher.Notify(ctx, addAffiliationNotification(existing, organization, server))
	}
	return &models.AddAffiliationRequired{ProfessionalID: existing.ID}
}

func tokenUpdates(p *models.Professional) map[string]interface{} {
	return map[string]interface{}{
		"verification_token":            p.VerificationToken,
		"verification_token_expires_at": p.VerificationTokenExpiresAt,
	}
}

func organizationLabel(organization *models.Organization) string {
	if organization == nil {
		return "marketplace"
	}
	return organization.ID
}

// createProfessional provisions a brand-new account.
func (s *ProfessionalService) createProfessional(ctx context.Context, session *models.Session, req *models.AddProfessionalRequest, email string, organization *models.Organization, department *models.Department) (*models.Professional, error) {
	if organization == nil && req.Password == "" {
		return nil, models.ErrPasswordRequired
	}

	now := time.Now()
	professional := &models.Professional{
		UserType:        models.UserTypeProfessional,
		FirstName:       strings.TrimSpace(req.FirstName),
		LastName:        strings.TrimSpace(req.LastName),
		Email:           email,
		PhoneNumber:     utils.FormatPhoneNumber(req.PhoneNumber),
		Profession:      req.Profession,
		IsMarketplace:   req.IsMarketplace,
		SignupChannel:   signupChannel(session, req),
		SignupIPAddress: req.SignupIPAddress,
	}
	if session != nil {
		professional.CreatedBy = session.Actor()
	}

	if req.Password != "" {
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		professional.PasswordHash = hash
	}

	ensureVerificationToken(professional, now)

	if organization != nil {
		affiliation, err := s.buildAffiliation(ctx, session, req.Affiliation, organization, department)
		if err != nil {
			return nil, err
		}
		professional.Affiliations = []models.Affiliation{*affiliation}
	}

	created, err := s.profRepo.Insert(ctx, professional)
	if err != nil {
		return nil, err
	}

	s.auditRepo.Append(ctx, &models.AuditEntry{
		Action:    models.AuditUserCreated,
		UserID:    created.ID,
		CreatedBy: created.CreatedBy,
	})

	if server := s.serverSettings(ctx); server != nil {
		s.dispatcher.Notify(ctx, activationNotification(created, server))
	}
	if organization != nil {
		s.dispatcher.ProfessionalEvent(ctx, session, created, models.WebhookEventAffiliationAdded)
	}

	s.logger.Infof("Professional created: %s (channel %s)", created.ID, created.SignupChannel)
	return created, nil
}

// buildAffiliation assembles the affiliation record for the acting
// organization. Interactive organization users accept on behalf of the
// professional immediately; API-tier adds stay pending.
func (s *ProfessionalService) buildAffiliation(ctx context.Context, session *models.Session, req *models.AffiliationRequest, organization *models.Organization, department *models.Department) (*models.Affiliation, error) {
	now := time.Now()
	affiliation := &models.Affiliation{
		ID:           utils.GenerateUUID(),
		Organization: organization.Ref(),
		CreatedAt:    now,
	}
	if session != nil {
		affiliation.CreatedBy = session.Actor()
		if session.UserType == models.UserTypeOrganizationUser {
			affiliation.AcceptedAt = &now
			affiliation.AcceptedBy = session.Actor()
		}
	}
	if department != nil {
		affiliation.DepartmentID = department.ID
	}

	if req != nil {
		affiliation.ThirdPartyID = req.ThirdPartyID
		if session != nil && session.IsAPI() {
			affiliation.ThirdPartySystems = req.ThirdPartySystems
		}
		if req.Note != "" {
			affiliation.Notes = []models.AffiliationNote{{
				CreatedAt: now,
				CreatedBy: affiliation.CreatedBy,
				Text:      req.Note,
			}}
		}

		recruiter, err := s.resolveRecruiter(ctx, organization.ID, req)
		if err != nil {
			return nil, err
		}
		affiliation.Recruiter = recruiter
	}

	return affiliation, nil
}

// resolveRecruiter prefers a matching organization user for the given
// email; unknown recruiters are stored as an inline snapshot.
func (s *ProfessionalService) resolveRecruiter(ctx context.Context, organizationID string, req *models.AffiliationRequest) (*models.RecruiterRef, error) {
	email := req.RecruiterEmail
	if email == "" && req.Recruiter != nil {
		email = req.Recruiter.Email
	}
	if email != "" {
		user, err := s.orgRepo.GetUserByEmail(ctx, organizationID, email)
		if err != nil {
			return nil, err
		}
		if user != nil {
			return user.Recruiter(), nil
		}
	}

	if req.Recruiter != nil {
		snapshot := *req.Recruiter
		snapshot.UserID = ""
		snapshot.PhoneNumber = utils.FormatPhoneNumber(snapshot.PhoneNumber)
		return &snapshot, nil
	}
	if email != "" {
		return &models.RecruiterRef{Email: email}, nil
	}
	return nil, nil
}

func signupChannel(session *models.Session, req *models.AddProfessionalRequest) string {
	if req.SignupChannel != "" {
		return req.SignupChannel
	}
	if session != nil && session.IsAPI() {
		return models.SignupChannelAPI
	}
	return models.SignupChannelWeb
}

// UpdateProfessional applies a partial profile update with the email
// change flow, profession lock, work-city geocoding, profile picture
// lifecycle and briefcase scalar fields.
func (s *ProfessionalService) UpdateProfessional(ctx context.Context, session *models.Session, id string, req *models.UpdateProfessionalRequest) (*models.Professional, error) {
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

	updates := map[string]interface{}{}
	var pendingEmailChange *models.Notification
	var promotedPic *PromotedFile
	var storage *models.StorageSettings

	if req.FirstName != nil {
		professional.FirstName = strings.TrimSpace(*req.FirstName)
		updates["first_name"] = professional.FirstName
	}
	if req.LastName != nil {
		professional.LastName = strings.TrimSpace(*req.LastName)
		updates["last_name"] = professional.LastName
	}
	if req.PhoneNumber != nil {
		professional.PhoneNumber = utils.FormatPhoneNumber(*req.PhoneNumber)
		updates["phone_number"] = professional.PhoneNumber
	}
	if req.Gender != nil {
		professional.Gender = *req.Gender
		updates["gender"] = professional.Gender
	}
	if req.DateOfBirth != nil {
		professional.DateOfBirth = req.DateOfBirth
		updates["date_of_birth"] = req.DateOfBirth
	}
	if req.Languages != nil {
		professional.Languages = req.Languages
		updates["languages"] = req.Languages
	}
	if req.Address != nil {
		professional.Address = req.Address
		updates["address"] = req.Address
	}
	if req.EmailCommunicationEnabled != nil {
		professional.EmailCommunicationEnabled = req.EmailCommunicationEnabled
		updates["email_communication_enabled"] = req.EmailCommunicationEnabled
	}
	if req.IsMarketplace != nil {
		professional.IsMarketplace = *req.IsMarketplace
		updates["is_marketplace"] = professional.IsMarketplace
	}

	if req.Profession != nil && !strings.EqualFold(*req.Profession, professional.Profession) {
		if professional.Profession != "" {
			return nil, models.ErrProfessionAlreadyAssigned
		}
		professional.Profession = *req.Profession
		updates["profession"] = professional.Profession
	}

	if req.Email != nil {
		newEmail := strings.ToLower(strings.TrimSpace(*req.Email))
		if newEmail != professional.Email {
			inUse, err := s.profRepo.FindByEmail(ctx, newEmail)
			if err != nil {
				return nil, err
			}
			if inUse != nil && inUse.ID != professional.ID {
				return nil, models.ErrEmailAlreadyInUse
			}

			ensureVerificationToken(professional, time.Now())
			professional.Email = newEmail
			professional.EmailVerifiedAt = nil
			updates["email"] = newEmail
			updates["email_verified_at"] = nil
			updates["verification_token"] = professional.VerificationToken
			updates["verification_token_expires_at"] = professional.VerificationTokenExpiresAt

			if server := s.serverSettings(ctx); server != nil {
				pendingEmailChange = emailChangeNotification(professional, newEmail, server)
			}
		}
	}

	if len(req.ThirdPartySystems) > 0 && session != nil && session.IsAPI() {
		if affiliation := professional.ActiveAffiliation(session.OrganizationID); affiliation != nil {
			affiliation.ThirdPartySystems = req.ThirdPartySystems
			updates["affiliations"] = professional.Affiliations
		}
	}

	if req.Jobs != nil {
		geocoded, err := s.geocodeWorkCities(ctx, req.Jobs.WorkCities)
		if err != nil {
			return nil, err
		}
		req.Jobs.WorkCities = geocoded
		professional.Jobs = req.Jobs
		updates["jobs"] = req.Jobs
	}

	if req.ProfilePicURL.Set {
		storage, err = s.settingsRepo.GetStorageSettings(ctx)
		if err != nil {
			return nil, err
		}
		if !req.ProfilePicURL.Valid {
			if professional.ProfilePicURL != nil {
				s.assets.DeleteByURL(ctx, storage, *professional.ProfilePicURL)
			}
			if professional.ProfilePicThumbURL != nil {
				s.assets.DeleteByURL(ctx, storage, *professional.ProfilePicThumbURL)
			}
			professional.ProfilePicURL = nil
			professional.ProfilePicThumbURL = nil
			updates["profile_pic_url"] = nil
			updates["profile_pic_thumb_url"] = nil
		} else {
			current := ""
			if professional.ProfilePicURL != nil {
				current = *professional.ProfilePicURL
			}
			field := &models.ProfessionalFileFields[0]
			promotedPic, err = s.assets.Promote(ctx, storage, professional.ID, "", field, req.ProfilePicURL.Value, current)
			if err != nil {
				return nil, err
			}
			if promotedPic != nil {
				professional.ProfilePicURL = &promotedPic.URL
				updates["profile_pic_url"] = promotedPic.URL
			}
		}
	}

	completedTransition := false
	if req.Briefcase != nil {
		if professional.Briefcase == nil {
			professional.Briefcase = &models.Briefcase{}
		}
		completedTransition = applyBriefcaseUpdate(professional.Briefcase, req.Briefcase)
		updates["briefcase"] = professional.Briefcase
	}

	if len(updates) > 0 {
		if err := s.profRepo.Update(ctx, professional.ID, updates); err != nil {
			return nil, err
		}
	}

	if promotedPic != nil {
		s.assets.Cleanup(ctx, storage, &models.ProfessionalFileFields[0], promotedPic)
	}

	s.auditRepo.Append(ctx, &models.AuditEntry{
		Action:    models.AuditUserUpdated,
		UserID:    professional.ID,
		CreatedBy: session.Actor(),
	})

	s.dispatcher.Notify(ctx, pendingEmailChange)
	s.dispatcher.ProfessionalEvent(ctx, session, professional, models.WebhookEventUpdated)

	if completedTransition {
		s.sendCompletedNotifications(ctx, professional)
	}

	return professional, nil
}

// applyBriefcaseUpdate merges scalar briefcase fields and reports
// whether CompletedAt transitioned from unset. The completed timestamp
// is write-once; later updates never clear or move it.
func applyBriefcaseUpdate(briefcase *models.Briefcase, update *models.BriefcaseUpdate) bool {
	completedTransition := false
	if update.CompletedAt != nil && briefcase.CompletedAt == nil {
		briefcase.CompletedAt = update.CompletedAt
		completedTransition = true
	}
	if update.CurrentStep != nil {
		briefcase.CurrentStep = *update.CurrentStep
	}
	if update.LicensedAt != nil && briefcase.LicensedAt == nil {
		briefcase.LicensedAt = update.LicensedAt
	}
	if update.ConsentedAt != nil && briefcase.ConsentedAt == nil {
		briefcase.ConsentedAt = update.ConsentedAt
	}
	if update.EducationLevel != nil {
		briefcase.EducationLevel = *update.EducationLevel
	}
	if update.Specialties != nil {
		briefcase.Specialties = update.Specialties
	}
	if update.EHRSkills != nil {
		briefcase.EHRSkills = update.EHRSkills
	}
	if update.YearsOfExperience != nil {
		briefcase.YearsOfExperience = *update.YearsOfExperience
	}
	if update.DriversLicense != nil {
		briefcase.DriversLicense = update.DriversLicense
	}
	if update.LiabilityInsurance != nil {
		briefcase.LiabilityInsurance = update.LiabilityInsurance
	}
	if update.WorkExperience != nil {
		briefcase.WorkExperience = update.WorkExperience
	}
	return completedTransition
}

// geocodeWorkCities resolves coordinates for submitted work cities.
// Cities missing from the reference set are dropped rather than stored
// without coordinates.
func (s *ProfessionalService) geocodeWorkCities(ctx context.Context, cities []models.WorkCity) ([]models.WorkCity, error) {
	if len(cities) == 0 {
		return cities, nil
	}
	out := make([]models.WorkCity, 0, len(cities))
	for _, c := range cities {
		if len(c.Coordinates) == 2 {
			out = append(out, c)
			continue
		}
		found, err := s.lookupRepo.FindCity(ctx, c.City, c.State)
		if err != nil {
			return nil, err
		}
		if found == nil {
			s.logger.Warnf("Dropping unknown work city %s, %s", c.City, c.State)
			continue
		}
		c.City = found.City
		c.State = found.State
		c.Country = found.Country
		c.Coordinates = found.Coordinates
		out = append(out, c)
	}
	return out, nil
}

// sendCompletedNotifications tells the professional and every recruiter
// on an active affiliation that the briefcase is complete.
func (s *ProfessionalService) sendCompletedNotifications(ctx context.Context, professional *models.Professional) {
	server := s.serverSettings(ctx)
	if server == nil {
		return
	}
	sendCompletedNotifications(ctx, s.profRepo, s.dispatcher, s.logger, server, professional)
}

// serverSettings loads server settings for notification building.
// Failures are logged and reported as nil so mail becomes a no-op.
func (s *ProfessionalService) serverSettings(ctx context.Context) *models.ServerSettings {
	server, err := s.settingsRepo.GetServerSettings(ctx)
	if err != nil {
		s.logger.Warnf("Server settings unavailable: %v", err)
		return nil
	}
	return server
}
