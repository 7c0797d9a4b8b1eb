package models

import (
	"strings"
	"time"
)

// Profession values are lookup-driven (license types carry the profession they
// belong to); the constants here are only the ones the code branches on.
const (
	SignupChannelWeb    = "WEB"
	SignupChannelAPI    = "API"
	SignupChannelImport = "IMPORT"
)

// ActorRef is a denormalized pointer to the user that performed an action.
type ActorRef struct {
	ID        string `json:"id" dynamodbav:"id"`
	Type      string `json:"type,omitempty" dynamodbav:"type,omitempty"`
	FirstName string `json:"first_name,omitempty" dynamodbav:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty" dynamodbav:"last_name,omitempty"`
	Email     string `json:"email,omitempty" dynamodbav:"email,omitempty"`
}

// Address is a postal address with optional geocoordinates.
type Address struct {
	Address1    string    `json:"address1,omitempty" dynamodbav:"address1,omitempty"`
	Address2    string    `json:"address2,omitempty" dynamodbav:"address2,omitempty"`
	City        string    `json:"city,omitempty" dynamodbav:"city,omitempty"`
	State       string    `json:"state,omitempty" dynamodbav:"state,omitempty"`
	Zip         string    `json:"zip,omitempty" dynamodbav:"zip,omitempty"`
	Country     string    `json:"country,omitempty" dynamodbav:"country,omitempty"`
	Coordinates []float64 `json:"coordinates,omitempty" dynamodbav:"coordinates,omitempty"`
}

// WorkCity is a city a professional is willing to work in.
type WorkCity struct {
	City        string    `json:"city" dynamodbav:"city"`
	State       string    `json:"state" dynamodbav:"state"`
	Country     string    `json:"country" dynamodbav:"country"`
	Coordinates []float64 `json:"coordinates,omitempty" dynamodbav:"coordinates,omitempty"`
}

// JobPreferences holds the professional's job-matching preferences.
type JobPreferences struct {
	WorkCities   []WorkCity `json:"work_cities,omitempty" dynamodbav:"work_cities,omitempty"`
	WorkStates   []string   `json:"work_states,omitempty" dynamodbav:"work_states,omitempty"`
	WorkDistance int        `json:"work_distance,omitempty" dynamodbav:"work_distance,omitempty"`
	NewJobEmail  int        `json:"new_job_email,omitempty" dynamodbav:"new_job_email,omitempty"`
	NewJobSMS    *bool      `json:"new_job_sms,omitempty" dynamodbav:"new_job_sms,omitempty"`
}

// ThirdPartySystem links a record (or sub-item) to an identifier in an
// external system. Writable only by API-tier sessions; non-API edits must
// never erase it.
type ThirdPartySystem struct {
	System   string `json:"system" dynamodbav:"system"`
	EntityID string `json:"entity_id" dynamodbav:"entity_id"`
}

// RecruiterRef is either a reference to an organization user (UserID set) or
// a denormalized inline snapshot of the submitted recruiter contact.
type RecruiterRef struct {
	UserID      string `json:"user_id,omitempty" dynamodbav:"user_id,omitempty"`
	FirstName   string `json:"first_name,omitempty" dynamodbav:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty" dynamodbav:"last_name,omitempty"`
	Email       string `json:"email,omitempty" dynamodbav:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty" dynamodbav:"phone_number,omitempty"`
}

// IsReference reports whether the recruiter was resolved to an existing
// organization user rather than stored inline.
func (r *RecruiterRef) IsReference() bool {
	return r != nil && r.UserID != ""
}

// AffiliationNote is an append-only note on an affiliation.
type AffiliationNote struct {
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
	CreatedBy *ActorRef `json:"created_by,omitempty" dynamodbav:"created_by,omitempty"`
	Text      string    `json:"text" dynamodbav:"text"`
}

// OrganizationRef is the embedded snapshot of the organization an affiliation
// points at.
type OrganizationRef struct {
	ID   string `json:"id" dynamodbav:"id"`
	Name string `json:"name,omitempty" dynamodbav:"name,omitempty"`
}

// Affiliation is the relation between a professional and one organization.
// Affiliations are soft-deleted only: RejectedAt set, never removed.
type Affiliation struct {
	ID                string             `json:"id" dynamodbav:"id"`
	Organization      OrganizationRef    `json:"organization" dynamodbav:"organization"`
	CreatedAt         time.Time          `json:"created_at" dynamodbav:"created_at"`
	CreatedBy         *ActorRef          `json:"created_by,omitempty" dynamodbav:"created_by,omitempty"`
	AcceptedAt        *time.Time         `json:"accepted_at,omitempty" dynamodbav:"accepted_at,omitempty"`
	AcceptedBy        *ActorRef          `json:"accepted_by,omitempty" dynamodbav:"accepted_by,omitempty"`
	RejectedAt        *time.Time         `json:"rejected_at,omitempty" dynamodbav:"rejected_at,omitempty"`
	Recruiter         *RecruiterRef      `json:"recruiter,omitempty" dynamodbav:"recruiter,omitempty"`
	DepartmentID      string             `json:"department_id,omitempty" dynamodbav:"department_id,omitempty"`
	ThirdPartyID      string             `json:"third_party_id,omitempty" dynamodbav:"third_party_id,omitempty"`
	ThirdPartySystems []ThirdPartySystem `json:"third_party_systems,omitempty" dynamodbav:"third_party_systems,omitempty"`
	Notes             []AffiliationNote  `json:"notes,omitempty" dynamodbav:"notes,omitempty"`
}

// IsActive reports whether the affiliation has not been rejected.
func (a *Affiliation) IsActive() bool {
	return a.RejectedAt == nil
}

// IsPending reports whether the affiliation is awaiting acceptance.
func (a *Affiliation) IsPending() bool {
	return a.RejectedAt == nil && a.AcceptedAt == nil
}

// Share is a time-boxed access grant generated for briefcase sharing.
type Share struct {
	ID        string    `json:"id" dynamodbav:"id"`
	Type      string    `json:"type" dynamodbav:"type"`
	Token     string    `json:"token" dynamodbav:"token"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}

// Professional is the managed worker identity record. Email is globally
// unique (case-insensitive) among professional accounts.
type Professional struct {
	ID                          string          `json:"id" dynamodbav:"id"`
	IntID                       int64           `json:"int_id,omitempty" dynamodbav:"int_id,omitempty"`
	UserType                    UserType        `json:"user_type" dynamodbav:"user_type"`
	FirstName                   string          `json:"first_name" dynamodbav:"first_name"`
	LastName                    string          `json:"last_name" dynamodbav:"last_name"`
	Email                       string          `json:"email" dynamodbav:"email"`
	PhoneNumber                 string          `json:"phone_number,omitempty" dynamodbav:"phone_number,omitempty"`
	Profession                  string          `json:"profession,omitempty" dynamodbav:"profession,omitempty"`
	Gender                      string          `json:"gender,omitempty" dynamodbav:"gender,omitempty"`
	DateOfBirth                 *time.Time      `json:"date_of_birth,omitempty" dynamodbav:"date_of_birth,omitempty"`
	SSNLast4                    string          `json:"-" dynamodbav:"ssn_last4,omitempty"`
	Languages                   []string        `json:"languages,omitempty" dynamodbav:"languages,omitempty"`
	Address                     *Address        `json:"address,omitempty" dynamodbav:"address,omitempty"`
	PasswordHash                string          `json:"-" dynamodbav:"password_hash,omitempty"`
	EmailCommunicationEnabled   *bool           `json:"email_communication_enabled,omitempty" dynamodbav:"email_communication_enabled,omitempty"`
	ProfilePicURL               *string         `json:"profile_pic_url,omitempty" dynamodbav:"profile_pic_url,omitempty"`
	ProfilePicThumbURL          *string         `json:"profile_pic_thumb_url,omitempty" dynamodbav:"profile_pic_thumb_url,omitempty"`
	IsMarketplace               bool            `json:"is_marketplace,omitempty" dynamodbav:"is_marketplace,omitempty"`
	SignupChannel               string          `json:"signup_channel,omitempty" dynamodbav:"signup_channel,omitempty"`
	SignupIPAddress             string          `json:"-" dynamodbav:"signup_ip_address,omitempty"`
	ActivatedAt                 *time.Time      `json:"activated_at,omitempty" dynamodbav:"activated_at,omitempty"`
	DeactivatedAt               *time.Time      `json:"deactivated_at,omitempty" dynamodbav:"deactivated_at,omitempty"`
	SuspendedAt                 *time.Time      `json:"suspended_at,omitempty" dynamodbav:"suspended_at,omitempty"`
	SuspendedReason             string          `json:"suspended_reason,omitempty" dynamodbav:"suspended_reason,omitempty"`
	EmailVerifiedAt             *time.Time      `json:"email_verified_at,omitempty" dynamodbav:"email_verified_at,omitempty"`
	VerificationToken           string          `json:"-" dynamodbav:"verification_token,omitempty"`
	VerificationTokenExpiresAt  *time.Time      `json:"-" dynamodbav:"verification_token_expires_at,omitempty"`
	PasswordResetToken          string          `json:"-" dynamodbav:"password_reset_token,omitempty"`
	PasswordResetTokenExpiresAt *time.Time      `json:"-" dynamodbav:"password_reset_token_expires_at,omitempty"`
	Jobs                        *JobPreferences `json:"jobs,omitempty" dynamodbav:"jobs,omitempty"`
	Briefcase                   *Briefcase      `json:"briefcase,omitempty" dynamodbav:"briefcase,omitempty"`
	Affiliations                []Affiliation   `json:"affiliations,omitempty" dynamodbav:"affiliations,omitempty"`
	Shares                      []Share         `json:"-" dynamodbav:"shares,omitempty"`
	CreatedAt                   time.Time       `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt                   time.Time       `json:"updated_at" dynamodbav:"updated_at"`
	CreatedBy                   *ActorRef       `json:"created_by,omitempty" dynamodbav:"created_by,omitempty"`
}

// ActiveAffiliation returns the non-rejected affiliation for the given
// organization, or nil.
func (p *Professional) ActiveAffiliation(organizationID string) *Affiliation {
	for i := range p.Affiliations {
		if p.Affiliations[i].RejectedAt == nil && p.Affiliations[i].Organization.ID == organizationID {
			return &p.Affiliations[i]
		}
	}
	return nil
}

// HasActiveAffiliations reports whether any affiliation has not been rejected.
func (p *Professional) HasActiveAffiliations() bool {
	for i := range p.Affiliations {
		if p.Affiliations[i].RejectedAt == nil {
			return true
		}
	}
	return false
}

// HasOtherActiveAffiliation reports whether a non-rejected affiliation exists
// to an organization other than the given one.
func (p *Professional) HasOtherActiveAffiliation(organizationID string) bool {
	for i := range p.Affiliations {
		if p.Affiliations[i].RejectedAt == nil && p.Affiliations[i].Organization.ID != organizationID {
			return true
		}
	}
	return false
}

// TokenValid reports whether the current verification token is still usable.
func (p *Professional) TokenValid(now time.Time) bool {
	return p.VerificationToken != "" && p.VerificationTokenExpiresAt != nil && p.VerificationTokenExpiresAt.After(now)
}

// Actor returns the professional as an ActorRef.
func (p *Professional) Actor() *ActorRef {
	return &ActorRef{ID: p.ID, FirstName: p.FirstName, LastName: p.LastName, Email: p.Email}
}

// FullName joins first and last name, skipping blanks.
func (p *Professional) FullName() string {
	parts := make([]string, 0, 2)
	if p.FirstName != "" {
		parts = append(parts, p.FirstName)
	}
	if p.LastName != "" {
		parts = append(parts, p.LastName)
	}
	return strings.Join(parts, " ")
}

// HasAccess reproduces the capability rule for mutating a professional:
// self-access, admin access, or an organization session (user or API tier)
// whose organization holds a non-rejected affiliation.
func (p *Professional) HasAccess(session *Session) bool {
	if session == nil {
		return false
	}
	if session.UserID == p.ID || session.UserType == UserTypeAdmin {
		return true
	}
	if session.IsOrganizationUser() && session.OrganizationID != "" {
		return p.ActiveAffiliation(session.OrganizationID) != nil
	}
	return false
}
