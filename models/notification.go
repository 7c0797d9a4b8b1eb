package models

// Notification templates rendered by the outbound mail service.
const (
	TemplateActivation          = "account-activation"
	TemplateWelcome             = "welcome"
	TemplateAddAffiliation      = "add-affiliation"
	TemplateEmailChange         = "email-change-verification"
	TemplateProfileCompleted    = "profile-completed"
	TemplateBriefcaseCompleted  = "briefcase-completed"
	TemplateVerificationSuccess = "license-verification-success"
	TemplateVerificationFailed  = "license-verification-failed"
	TemplateVerificationManual  = "license-verification-manual"
)

// Notification is a single outbound email request. Delivery is best
// effort; failures never roll back the mutation that produced it.
type Notification struct {
	To       string                 `json:"to"`
	Template string                 `json:"template"`
	Args     map[string]interface{} `json:"args,omitempty"`
}

// WebhookDelivery is one outbound webhook call with its restricted
// payload.
type WebhookDelivery struct {
	Webhook *Webhook     `json:"-"`
	Event   WebhookEvent `json:"event"`
	Payload interface{}  `json:"payload"`
}

// ProfessionalProjection is the restricted professional view sent to
// organization webhooks. Nothing outside this set ever crosses over.
type ProfessionalProjection struct {
	ID                string             `json:"id"`
	Email             string             `json:"email"`
	FirstName         string             `json:"first_name"`
	LastName          string             `json:"last_name"`
	IntID             int64              `json:"int_id,omitempty"`
	ThirdPartySystems []ThirdPartySystem `json:"third_party_systems,omitempty"`
	Recruiter         *RecruiterRef      `json:"recruiter,omitempty"`
}

// Projection builds the restricted webhook view of a professional for
// one organization's affiliation.
func (p *Professional) Projection(organizationID string) *ProfessionalProjection {
	out := &ProfessionalProjection{
		ID:        p.ID,
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		IntID:     p.IntID,
	}
	if a := p.ActiveAffiliation(organizationID); a != nil {
		out.ThirdPartySystems = a.ThirdPartySystems
		out.Recruiter = a.Recruiter
	}
	return out
}
