package models

import "time"

// WebhookEvent names the per-organization webhook hooks this system fires.
type WebhookEvent string

const (
	WebhookEventAffiliationAdded WebhookEvent = "affiliationAdded"
	WebhookEventUpdated          WebhookEvent = "updated"
	WebhookEventItemUpdated      WebhookEvent = "itemUpdated"
	WebhookEventItemDeleted      WebhookEvent = "itemDeleted"
	WebhookEventFileUploaded     WebhookEvent = "fileUploaded"
)

// Webhook describes one configured webhook endpoint.
type Webhook struct {
	HTTPMethod string            `json:"http_method" dynamodbav:"http_method"`
	URL        string            `json:"url" dynamodbav:"url"`
	Headers    map[string]string `json:"headers,omitempty" dynamodbav:"headers,omitempty"`
}

// ProfessionalWebhooks is the set of webhook endpoints an organization has
// configured for professional-record events.
type ProfessionalWebhooks struct {
	AffiliationAdded *Webhook `json:"affiliation_added,omitempty" dynamodbav:"affiliation_added,omitempty"`
	Updated          *Webhook `json:"updated,omitempty" dynamodbav:"updated,omitempty"`
	ItemUpdated      *Webhook `json:"item_updated,omitempty" dynamodbav:"item_updated,omitempty"`
	ItemDeleted      *Webhook `json:"item_deleted,omitempty" dynamodbav:"item_deleted,omitempty"`
	FileUploaded     *Webhook `json:"file_uploaded,omitempty" dynamodbav:"file_uploaded,omitempty"`
}

// ForEvent returns the configured webhook for the event, or nil.
func (w *ProfessionalWebhooks) ForEvent(event WebhookEvent) *Webhook {
	if w == nil {
		return nil
	}
	switch event {
	case WebhookEventAffiliationAdded:
		return w.AffiliationAdded
	case WebhookEventUpdated:
		return w.Updated
	case WebhookEventItemUpdated:
		return w.ItemUpdated
	case WebhookEventItemDeleted:
		return w.ItemDeleted
	case WebhookEventFileUploaded:
		return w.FileUploaded
	}
	return nil
}

// Organization is a hiring organization. Referenced by affiliations, never
// owned by a professional.
type Organization struct {
	ID           string                `json:"id" dynamodbav:"id"`
	Name         string                `json:"name" dynamodbav:"name"`
	ContactEmail string                `json:"contact_email,omitempty" dynamodbav:"contact_email,omitempty"`
	Address      *Address              `json:"address,omitempty" dynamodbav:"address,omitempty"`
	LogoURL      string                `json:"logo_url,omitempty" dynamodbav:"logo_url,omitempty"`
	Webhooks     *ProfessionalWebhooks `json:"webhooks,omitempty" dynamodbav:"webhooks,omitempty"`
	CreatedAt    time.Time             `json:"created_at" dynamodbav:"created_at"`
}

// Ref returns the embedded snapshot used on affiliations.
func (o *Organization) Ref() OrganizationRef {
	return OrganizationRef{ID: o.ID, Name: o.Name}
}

// Department belongs to exactly one organization.
type Department struct {
	ID             string `json:"id" dynamodbav:"id"`
	OrganizationID string `json:"organization_id" dynamodbav:"organization_id"`
	Name           string `json:"name" dynamodbav:"name"`
}

// OrganizationUser is a recruiter/admin account belonging to an organization.
type OrganizationUser struct {
	ID             string   `json:"id" dynamodbav:"id"`
	OrganizationID string   `json:"organization_id" dynamodbav:"organization_id"`
	UserType       UserType `json:"user_type" dynamodbav:"user_type"`
	FirstName      string   `json:"first_name" dynamodbav:"first_name"`
	LastName       string   `json:"last_name" dynamodbav:"last_name"`
	Email          string   `json:"email" dynamodbav:"email"`
	PhoneNumber    string   `json:"phone_number,omitempty" dynamodbav:"phone_number,omitempty"`
}

// Actor returns the organization user as an ActorRef.
func (u *OrganizationUser) Actor() *ActorRef {
	return &ActorRef{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
}

// Recruiter returns the organization user as a resolved recruiter reference.
func (u *OrganizationUser) Recruiter() *RecruiterRef {
	return &RecruiterRef{UserID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email, PhoneNumber: u.PhoneNumber}
}
