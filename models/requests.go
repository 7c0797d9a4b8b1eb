package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Nullable distinguishes an absent JSON field from an explicit null.
// Explicit null is how clients request deletion of optional fields.
type Nullable[T any] struct {
	Set   bool
	Valid bool
	Value T
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Valid = false
		return nil
	}
	n.Valid = true
	return json.Unmarshal(data, &n.Value)
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// AffiliationRequest carries the affiliation details submitted alongside
// an account creation or affiliation confirmation.
type AffiliationRequest struct {
	// OrganizationID names the target organization for public signups
	// that carry no organization session.
	OrganizationID    string             `json:"organization_id,omitempty"`
	DepartmentID      string             `json:"department_id,omitempty"`
	RecruiterEmail    string             `json:"recruiter_email,omitempty"`
	Recruiter         *RecruiterRef      `json:"recruiter,omitempty"`
	ThirdPartyID      string             `json:"third_party_id,omitempty"`
	ThirdPartySystems []ThirdPartySystem `json:"third_party_systems,omitempty"`
	Note              string             `json:"note,omitempty"`
}

// AddProfessionalRequest is the payload for creating a professional or
// affiliating an existing one.
type AddProfessionalRequest struct {
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Password    string `json:"password,omitempty"`
	Profession  string `json:"profession,omitempty"`

	IsMarketplace bool `json:"is_marketplace,omitempty"`

	// ConfirmAffiliation acknowledges that the account already exists and
	// the caller wants an affiliation added to it.
	ConfirmAffiliation bool                `json:"confirm_affiliation,omitempty"`
	Affiliation        *AffiliationRequest `json:"affiliation,omitempty"`

	// IsIRPAdd marks a recruiter-driven add that accepts a pending
	// affiliation to the same organization instead of rejecting it.
	IsIRPAdd bool `json:"is_irp_add,omitempty"`

	SignupIPAddress string `json:"-"`
	// SignupChannel overrides the session-derived channel. Set internally
	// by the bulk importer, never by clients.
	SignupChannel string `json:"-"`
}

// BriefcaseUpdate holds the scalar briefcase fields updatable through
// the profile endpoint. Item collections go through the item endpoints.
type BriefcaseUpdate struct {
	CurrentStep        *int                `json:"current_step,omitempty"`
	CompletedAt        *time.Time          `json:"completed_at,omitempty"`
	LicensedAt         *time.Time          `json:"licensed_at,omitempty"`
	ConsentedAt        *time.Time          `json:"consented_at,omitempty"`
	EducationLevel     *string             `json:"education_level,omitempty"`
	Specialties        []string            `json:"specialties,omitempty"`
	EHRSkills          []string            `json:"ehr_skills,omitempty"`
	YearsOfExperience  *string             `json:"years_of_experience,omitempty"`
	DriversLicense     *DriversLicense     `json:"drivers_license,omitempty"`
	LiabilityInsurance *LiabilityInsurance `json:"liability_insurance,omitempty"`
	WorkExperience     *WorkExperience     `json:"work_experience,omitempty"`
}

// UpdateProfessionalRequest is a partial update. Nil pointers mean the
// field was not submitted and keeps its stored value.
type UpdateProfessionalRequest struct {
	FirstName                 *string          `json:"first_name,omitempty"`
	LastName                  *string          `json:"last_name,omitempty"`
	Email                     *string          `json:"email,omitempty" validate:"omitempty,email"`
	PhoneNumber               *string          `json:"phone_number,omitempty"`
	Profession                *string          `json:"profession,omitempty"`
	Gender                    *string          `json:"gender,omitempty"`
	DateOfBirth               *time.Time       `json:"date_of_birth,omitempty"`
	Languages                 []string         `json:"languages,omitempty"`
	Address                   *Address         `json:"address,omitempty"`
	Jobs                      *JobPreferences  `json:"jobs,omitempty"`
	EmailCommunicationEnabled *bool            `json:"email_communication_enabled,omitempty"`
	IsMarketplace             *bool            `json:"is_marketplace,omitempty"`
	ProfilePicURL             Nullable[string] `json:"profile_pic_url,omitempty"`
	Briefcase                 *BriefcaseUpdate `json:"briefcase,omitempty"`

	// ThirdPartySystems applies to the acting organization's affiliation.
	// Honored only for API-tier sessions.
	ThirdPartySystems []ThirdPartySystem `json:"third_party_systems,omitempty"`
}

// RowError is one import validation failure tied to a source column.
// Failures without a column (a rejected insert, say) leave it empty.
type RowError struct {
	Column  string `json:"column,omitempty"`
	Message string `json:"message"`
}

// RowErrors aggregates every validation failure of a row so the caller
// sees all problems at once instead of one per attempt.
type RowErrors []RowError

func (e RowErrors) Error() string {
	parts := make([]string, len(e))
	for i, re := range e {
		if re.Column == "" {
			parts[i] = re.Message
			continue
		}
		parts[i] = re.Column + ": " + re.Message
	}
	return strings.Join(parts, "; ")
}

// ImportRowResult is the per-row outcome of a bulk import.
type ImportRowResult struct {
	Row            int        `json:"row"`
	ProfessionalID string     `json:"professional_id,omitempty"`
	Email          string     `json:"email,omitempty"`
	Errors         []RowError `json:"errors,omitempty"`
}

// ImportSummary aggregates a bulk import run.
type ImportSummary struct {
	Total    int               `json:"total"`
	Imported int               `json:"imported"`
	Failed   int               `json:"failed"`
	Results  []ImportRowResult `json:"results"`
}
