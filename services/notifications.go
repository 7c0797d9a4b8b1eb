package services

import (
	"context"
	"fmt"
	"time"

	"medstaff-backend/models"
	"medstaff-backend/repository"
	"medstaff-backend/utils"
	"medstaff-backend/utils/logger"
)

// Builders for the outbound notifications. Panel URLs come from server
// settings so each environment links to its own frontend.

func activationNotification(p *models.Professional, server *models.ServerSettings) *models.Notification {
	return &models.Notification{
		To:       p.Email,
		Template: models.TemplateActivation,
		Args: map[string]interface{}{
			"first_name":     p.FirstName,
			"activation_url": fmt.Sprintf("%s/activate/%s", server.ProfessionalPanelURL, p.VerificationToken),
		},
	}
}

func welcomeNotification(p *models.Professional, organization *models.Organization, server *models.ServerSettings) *models.Notification {
	return &models.Notification{
		To:       p.Email,
		Template: models.TemplateWelcome,
		Args: map[string]interface{}{
			"first_name":        p.FirstName,
			"organization_name": organizationName(organization),
			"panel_url":         server.ProfessionalPanelURL,
		},
	}
}

func addAffiliationNotification(p *models.Professional, organization *models.Organization, server *models.ServerSettings) *models.Notification {
	return &models.Notification{
		To:       p.Email,
		Template: models.TemplateAddAffiliation,
		Args: map[string]interface{}{
			"first_name":        p.FirstName,
			"organization_name": organizationName(organization),
			"confirmation_url":  fmt.Sprintf("%s/affiliations/%s", server.ProfessionalPanelURL, p.VerificationToken),
		},
	}
}

func organizationName(organization *models.Organization) string {
	if organization == nil {
		return ""
	}
	return organization.Name
}

func emailChangeNotification(p *models.Professional, newEmail string, server *models.ServerSettings) *models.Notification {
	return &models.Notification{
		To:       newEmail,
		Template: models.TemplateEmailChange,
		Args: map[string]interface{}{
			"first_name":       p.FirstName,
			"verification_url": fmt.Sprintf("%s/verify-email/%s", server.ProfessionalPanelURL, p.VerificationToken),
		},
	}
}

func briefcaseCompletedNotification(p *models.Professional, recruiterEmail, shareToken string, server *models.ServerSettings) *models.Notification {
	return &models.Notification{
		To:       recruiterEmail,
		Template: models.TemplateBriefcaseCompleted,
		Args: map[string]interface{}{
			"professional_name": p.FullName(),
			"briefcase_url":     fmt.Sprintf("%s/shared/%s", server.BriefcasePanelURL, shareToken),
		},
	}
}

func profileCompletedNotification(p *models.Professional, server *models.ServerSettings) *models.Notification {
	return &models.Notification{
		To:       p.Email,
		Template: models.TemplateProfileCompleted,
		Args: map[string]interface{}{
			"first_name": p.FirstName,
			"panel_url":  server.ProfessionalPanelURL,
		},
	}
}

// sendCompletedNotifications tells the professional and every recruiter
// on an active affiliation that the briefcase is complete. Recruiters
// all receive the same overview share link, created on first use.
func sendCompletedNotifications(ctx context.Context, profRepo repository.ProfessionalRepositoryInterface, dispatcher DispatcherInterface, log logger.Logger, server *models.ServerSettings, professional *models.Professional) {
	dispatcher.Notify(ctx, profileCompletedNotification(professional, server))

	var share *models.Share
	for i := range professional.Shares {
		if professional.Shares[i].Type == shareTypeOverview {
			share = &professional.Shares[i]
			break
		}
	}
	if share == nil {
		share = &models.Share{
			ID:        utils.GenerateUUID(),
			Type:      shareTypeOverview,
			Token:     utils.GenerateVerificationToken(),
			CreatedAt: time.Now(),
		}
		if err := profRepo.AddShare(ctx, professional, share); err != nil {
			log.Warnf("Failed to store overview share for %s: %v", professional.ID, err)
			return
		}
	}

	for i := range professional.Affiliations {
		affiliation := &professional.Affiliations[i]
		if !affiliation.IsActive() || affiliation.Recruiter == nil || affiliation.Recruiter.Email == "" {
			continue
		}
		dispatcher.Notify(ctx, briefcaseCompletedNotification(professional, affiliation.Recruiter.Email, share.Token, server))
	}
}

// opsRecipient routes operational verification mail. Live environments
// notify the support mailbox; everything else goes to the address
// configured on the verification settings.
func opsRecipient(server *models.ServerSettings, verification *models.VerificationSettings) string {
	if server.IsLive() {
		return server.SupportEmail
	}
	return verification.NotificationEmail
}

func verificationSuccessNotification(p *models.Professional, license *models.License, to string) *models.Notification {
	return &models.Notification{
		To:       to,
		Template: models.TemplateVerificationSuccess,
		Args: map[string]interface{}{
			"professional_name": p.FullName(),
			"professional_id":   p.ID,
			"license_number":    license.LicenseNumber,
			"license_body":      license.LicenseBody,
			"status":            license.VerificationText,
		},
	}
}

func verificationFailedNotification(p *models.Professional, license *models.License, errors []string, to string) *models.Notification {
	return &models.Notification{
		To:       to,
		Template: models.TemplateVerificationFailed,
		Args: map[string]interface{}{
			"professional_name": p.FullName(),
			"professional_id":   p.ID,
			"license_number":    license.LicenseNumber,
			"license_body":      license.LicenseBody,
			"errors":            errors,
		},
	}
}

func verificationManualNotification(p *models.Professional, license *models.License, to string) *models.Notification {
	return &models.Notification{
		To:       to,
		Template: models.TemplateVerificationManual,
		Args: map[string]interface{}{
			"professional_name": p.FullName(),
			"professional_id":   p.ID,
			"license_number":    license.LicenseNumber,
			"license_body":      license.LicenseBody,
		},
	}
}
