package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// BriefcaseField identifies one of the briefcase sub-collections that support
// item-level add/update/delete. The set is closed; switches over it must be
// exhaustive.
type BriefcaseField string

const (
	BriefcaseFieldLicenses                 BriefcaseField = "licenses"
	BriefcaseFieldCertifications           BriefcaseField = "certifications"
	BriefcaseFieldAdditionalCertifications BriefcaseField = "additionalCertifications"
	BriefcaseFieldEducation                BriefcaseField = "education"
	BriefcaseFieldFacilities               BriefcaseField = "facilities"
	BriefcaseFieldReferences               BriefcaseField = "references"
	BriefcaseFieldHealthDocuments          BriefcaseField = "healthDocuments"
)

// ParseBriefcaseField validates a path segment against the closed field set.
func ParseBriefcaseField(s string) (BriefcaseField, error) {
	switch BriefcaseField(s) {
	case BriefcaseFieldLicenses, BriefcaseFieldCertifications, BriefcaseFieldAdditionalCertifications,
		BriefcaseFieldEducation, BriefcaseFieldFacilities, BriefcaseFieldReferences, BriefcaseFieldHealthDocuments:
		return BriefcaseField(s), nil
	}
	return "", fmt.Errorf("unknown briefcase field: %s", s)
}

// BriefcaseItem is implemented by every briefcase sub-item type.
type BriefcaseItem interface {
	ItemID() string
	SetItemID(id string)
	ThirdParty() []ThirdPartySystem
	SetThirdParty(tps []ThirdPartySystem)
}

// ItemMeta carries the identity and external linkage every sub-item has.
// Embedded by the concrete item types.
type ItemMeta struct {
	ID                string             `json:"id,omitempty" dynamodbav:"id,omitempty"`
	ThirdPartySystems []ThirdPartySystem `json:"third_party_systems,omitempty" dynamodbav:"third_party_systems,omitempty"`
}

func (m *ItemMeta) ItemID() string                       { return m.ID }
func (m *ItemMeta) SetItemID(id string)                  { m.ID = id }
func (m *ItemMeta) ThirdParty() []ThirdPartySystem       { return m.ThirdPartySystems }
func (m *ItemMeta) SetThirdParty(tps []ThirdPartySystem) { m.ThirdPartySystems = tps }

// FileCarrier is implemented by item types that carry an uploaded file.
type FileCarrier interface {
	GetFileURL() string
	SetFile(url string, uploadedAt *time.Time)
}

// License verification status texts. VerifiedAt set alongside
// VerificationTextVerified/Unencumbered; SuspendedAt handling lives in the
// briefcase service.
const (
	VerificationTextManual         = "Verified manually"
	VerificationTextUnencumbered   = "UNENCUMBERED"
	VerificationTextManualRequired = "Manual Verification Required"
	VerificationTextPendingBoard   = "Your license is pending verification with the issuing Board. Please continue to fill out your Professional Briefcase."
)

// License is a professional license. SSN and DateOfBirth are collected only
// to drive third-party verification and are never returned to clients.
type License struct {
	ItemMeta
	LicenseType      string     `json:"license_type" dynamodbav:"license_type"`
	LicenseBody      string     `json:"license_body,omitempty" dynamodbav:"license_body,omitempty"`
	LicenseNumber    string     `json:"license_number,omitempty" dynamodbav:"license_number,omitempty"`
	IssueDate        *time.Time `json:"issue_date,omitempty" dynamodbav:"issue_date,omitempty"`
	ExpirationDate   *time.Time `json:"expiration_date,omitempty" dynamodbav:"expiration_date,omitempty"`
	IsCompact        bool       `json:"is_compact,omitempty" dynamodbav:"is_compact,omitempty"`
	SSN              string     `json:"ssn,omitempty" dynamodbav:"-"`
	DateOfBirth      *time.Time `json:"date_of_birth,omitempty" dynamodbav:"-"`
	ManualOverride   bool       `json:"manual_override,omitempty" dynamodbav:"-"`
	VerifiedAt       *time.Time `json:"verified_at,omitempty" dynamodbav:"verified_at,omitempty"`
	VerificationText string     `json:"verification_text,omitempty" dynamodbav:"verification_text,omitempty"`
	FileURL          string     `json:"file_url,omitempty" dynamodbav:"file_url,omitempty"`
	FileUploadedAt   *time.Time `json:"file_uploaded_at,omitempty" dynamodbav:"file_uploaded_at,omitempty"`
}

func (l *License) GetFileURL() string { return l.FileURL }
func (l *License) SetFile(url string, uploadedAt *time.Time) {
	l.FileURL = url
	l.FileUploadedAt = uploadedAt
}

// Certification is a primary certification (BLS, ACLS, ...).
type Certification struct {
	ItemMeta
	Name           string     `json:"name" dynamodbav:"name"`
	CertifyingBody string     `json:"certifying_body,omitempty" dynamodbav:"certifying_body,omitempty"`
	ECardNumber    string     `json:"ecard_number,omitempty" dynamodbav:"ecard_number,omitempty"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty" dynamodbav:"expiration_date,omitempty"`
	FileURL        string     `json:"file_url,omitempty" dynamodbav:"file_url,omitempty"`
	FileUploadedAt *time.Time `json:"file_uploaded_at,omitempty" dynamodbav:"file_uploaded_at,omitempty"`
}

func (c *Certification) GetFileURL() string { return c.FileURL }
func (c *Certification) SetFile(url string, uploadedAt *time.Time) {
	c.FileURL = url
	c.FileUploadedAt = uploadedAt
}

// AdditionalCertification is a supplementary certification.
type AdditionalCertification struct {
	ItemMeta
	Name           string     `json:"name" dynamodbav:"name"`
	ECardNumber    string     `json:"ecard_number,omitempty" dynamodbav:"ecard_number,omitempty"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty" dynamodbav:"expiration_date,omitempty"`
	FileURL        string     `json:"file_url,omitempty" dynamodbav:"file_url,omitempty"`
	FileUploadedAt *time.Time `json:"file_uploaded_at,omitempty" dynamodbav:"file_uploaded_at,omitempty"`
}

func (c *AdditionalCertification) GetFileURL() string { return c.FileURL }
func (c *AdditionalCertification) SetFile(url string, uploadedAt *time.Time) {
	c.FileURL = url
	c.FileUploadedAt = uploadedAt
}

// Education is an education history entry.
type Education struct {
	ItemMeta
	Institute   string `json:"institute" dynamodbav:"institute"`
	ProgramName string `json:"program_name" dynamodbav:"program_name"`
	Status      string `json:"status,omitempty" dynamodbav:"status,omitempty"`
	YearFrom    int    `json:"year_from,omitempty" dynamodbav:"year_from,omitempty"`
	YearTo      int    `json:"year_to,omitempty" dynamodbav:"year_to,omitempty"`
}

// Facility is a facility the professional has worked at.
type Facility struct {
	ItemMeta
	Name  string `json:"name" dynamodbav:"name"`
	City  string `json:"city" dynamodbav:"city"`
	State string `json:"state" dynamodbav:"state"`
}

// Reference is a professional reference contact.
type Reference struct {
	ItemMeta
	Title        string `json:"title" dynamodbav:"title"`
	Organization string `json:"organization,omitempty" dynamodbav:"organization,omitempty"`
	FirstName    string `json:"first_name" dynamodbav:"first_name"`
	LastName     string `json:"last_name" dynamodbav:"last_name"`
	Email        string `json:"email,omitempty" dynamodbav:"email,omitempty"`
	PhoneNumber  string `json:"phone_number,omitempty" dynamodbav:"phone_number,omitempty"`
}

// HealthDocument is an immunization or screening record.
type HealthDocument struct {
	ItemMeta
	Name           string     `json:"name" dynamodbav:"name"`
	Reason         string     `json:"reason,omitempty" dynamodbav:"reason,omitempty"`
	Date           *time.Time `json:"date,omitempty" dynamodbav:"date,omitempty"`
	FileURL        string     `json:"file_url,omitempty" dynamodbav:"file_url,omitempty"`
	FileUploadedAt *time.Time `json:"file_uploaded_at,omitempty" dynamodbav:"file_uploaded_at,omitempty"`
}

func (h *HealthDocument) GetFileURL() string { return h.FileURL }
func (h *HealthDocument) SetFile(url string, uploadedAt *time.Time) {
	h.FileURL = url
	h.FileUploadedAt = uploadedAt
}

// DriversLicense is the single (non-collection) drivers license entry.
type DriversLicense struct {
	Number         string     `json:"number" dynamodbav:"number"`
	State          string     `json:"state" dynamodbav:"state"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty" dynamodbav:"expiration_date,omitempty"`
}

// LiabilityInsurance is the liability insurance entry.
type LiabilityInsurance struct {
	Company        string     `json:"company" dynamodbav:"company"`
	PolicyNumber   string     `json:"policy_number" dynamodbav:"policy_number"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty" dynamodbav:"expiration_date,omitempty"`
}

// WorkExperience holds resume-level work history pointers.
type WorkExperience struct {
	LinkedInURL    string     `json:"linkedin_url,omitempty" dynamodbav:"linkedin_url,omitempty"`
	ResumeURL      string     `json:"resume_url,omitempty" dynamodbav:"resume_url,omitempty"`
	ResumeUploaded *time.Time `json:"resume_uploaded,omitempty" dynamodbav:"resume_uploaded,omitempty"`
}

// AutoVerification tracks the automatic (daily) license re-verification
// state for a professional. Disabled when electronic verification fails or
// the license requires manual review.
type AutoVerification struct {
	IsEnabled        bool   `json:"is_enabled" dynamodbav:"is_enabled"`
	VerificationText string `json:"verification_text,omitempty" dynamodbav:"verification_text,omitempty"`
}

// Briefcase is the aggregate of onboarding sub-documents. Present only for
// nurse-profession professionals; omitted entirely when empty.
type Briefcase struct {
	CurrentStep              int                       `json:"current_step,omitempty" dynamodbav:"current_step,omitempty"`
	CompletedAt              *time.Time                `json:"completed_at,omitempty" dynamodbav:"completed_at,omitempty"`
	LicensedAt               *time.Time                `json:"licensed_at,omitempty" dynamodbav:"licensed_at,omitempty"`
	ConsentedAt              *time.Time                `json:"consented_at,omitempty" dynamodbav:"consented_at,omitempty"`
	Verification             *AutoVerification         `json:"verification,omitempty" dynamodbav:"verification,omitempty"`
	Licenses                 []License                 `json:"licenses,omitempty" dynamodbav:"licenses,omitempty"`
	Certifications           []Certification           `json:"certifications,omitempty" dynamodbav:"certifications,omitempty"`
	AdditionalCertifications []AdditionalCertification `json:"additional_certifications,omitempty" dynamodbav:"additional_certifications,omitempty"`
	Education                []Education               `json:"education,omitempty" dynamodbav:"education,omitempty"`
	Facilities               []Facility                `json:"facilities,omitempty" dynamodbav:"facilities,omitempty"`
	References               []Reference               `json:"references,omitempty" dynamodbav:"references,omitempty"`
	HealthDocuments          []HealthDocument          `json:"health_documents,omitempty" dynamodbav:"health_documents,omitempty"`
	DriversLicense           *DriversLicense           `json:"drivers_license,omitempty" dynamodbav:"drivers_license,omitempty"`
	LiabilityInsurance       *LiabilityInsurance       `json:"liability_insurance,omitempty" dynamodbav:"liability_insurance,omitempty"`
	WorkExperience           *WorkExperience           `json:"work_experience,omitempty" dynamodbav:"work_experience,omitempty"`
	EducationLevel           string                    `json:"education_level,omitempty" dynamodbav:"education_level,omitempty"`
	Specialties              []string                  `json:"specialties,omitempty" dynamodbav:"specialties,omitempty"`
	EHRSkills                []string                  `json:"ehr_skills,omitempty" dynamodbav:"ehr_skills,omitempty"`
	YearsOfExperience        string                    `json:"years_of_experience,omitempty" dynamodbav:"years_of_experience,omitempty"`
}

// IsEmpty reports whether the briefcase carries no content at all.
func (b *Briefcase) IsEmpty() bool {
	if b == nil {
		return true
	}
	return len(b.Licenses) == 0 && len(b.Certifications) == 0 && len(b.AdditionalCertifications) == 0 &&
		len(b.Education) == 0 && len(b.Facilities) == 0 && len(b.References) == 0 &&
		len(b.HealthDocuments) == 0 && b.DriversLicense == nil && b.LiabilityInsurance == nil &&
		b.WorkExperience == nil && b.EducationLevel == "" && len(b.Specialties) == 0 &&
		len(b.EHRSkills) == 0 && b.YearsOfExperience == "" && b.CurrentStep == 0
}

// DecodeBriefcaseItem unmarshals raw JSON into the concrete item type for the
// field. One handler per variant keeps the dispatch closed and checkable.
func DecodeBriefcaseItem(field BriefcaseField, data []byte) (BriefcaseItem, error) {
	var item BriefcaseItem
	switch field {
	case BriefcaseFieldLicenses:
		item = &License{}
	case BriefcaseFieldCertifications:
		item = &Certification{}
	case BriefcaseFieldAdditionalCertifications:
		item = &AdditionalCertification{}
	case BriefcaseFieldEducation:
		item = &Education{}
	case BriefcaseFieldFacilities:
		item = &Facility{}
	case BriefcaseFieldReferences:
		item = &Reference{}
	case BriefcaseFieldHealthDocuments:
		item = &HealthDocument{}
	default:
		return nil, fmt.Errorf("unknown briefcase field: %s", field)
	}
	if err := json.Unmarshal(data, item); err != nil {
		return nil, fmt.Errorf("failed to decode %s item: %w", field, err)
	}
	return item, nil
}

// Items returns the sub-collection for the field as a slice of BriefcaseItem.
func (b *Briefcase) Items(field BriefcaseField) []BriefcaseItem {
	var out []BriefcaseItem
	switch field {
	case BriefcaseFieldLicenses:
		for i := range b.Licenses {
			out = append(out, &b.Licenses[i])
		}
	case BriefcaseFieldCertifications:
		for i := range b.Certifications {
			out = append(out, &b.Certifications[i])
		}
	case BriefcaseFieldAdditionalCertifications:
		for i := range b.AdditionalCertifications {
			out = append(out, &b.AdditionalCertifications[i])
		}
	case BriefcaseFieldEducation:
		for i := range b.Education {
			out = append(out, &b.Education[i])
		}
	case BriefcaseFieldFacilities:
		for i := range b.Facilities {
			out = append(out, &b.Facilities[i])
		}
	case BriefcaseFieldReferences:
		for i := range b.References {
			out = append(out, &b.References[i])
		}
	case BriefcaseFieldHealthDocuments:
		for i := range b.HealthDocuments {
			out = append(out, &b.HealthDocuments[i])
		}
	}
	return out
}

// Item returns the sub-item with the given id, or nil.
func (b *Briefcase) Item(field BriefcaseField, id string) BriefcaseItem {
	for _, item := range b.Items(field) {
		if item.ItemID() == id {
			return item
		}
	}
	return nil
}

// SetItem appends the item when no entry with its id exists, otherwise
// replaces the existing entry in place.
func (b *Briefcase) SetItem(field BriefcaseField, item BriefcaseItem) error {
	switch field {
	case BriefcaseFieldLicenses:
		v, ok := item.(*License)
		if !ok {
			return fmt.Errorf("expected license item, got %T", item)
		}
		b.Licenses = upsertItem(b.Licenses, *v, func(l License) string { return l.ID })
	case BriefcaseFieldCertifications:
		v, ok := item.(*Certification)
		if !ok {
			return fmt.Errorf("expected certification item, got %T", item)
		}
		b.Certifications = upsertItem(b.Certifications, *v, func(c Certification) string { return c.ID })
	case BriefcaseFieldAdditionalCertifications:
		v, ok := item.(*AdditionalCertification)
		if !ok {
			return fmt.Errorf("expected additional certification item, got %T", item)
		}
		b.AdditionalCertifications = upsertItem(b.AdditionalCertifications, *v, func(c AdditionalCertification) string { return c.ID })
	case BriefcaseFieldEducation:
		v, ok := item.(*Education)
		if !ok {
			return fmt.Errorf("expected education item, got %T", item)
		}
		b.Education = upsertItem(b.Education, *v, func(e Education) string { return e.ID })
	case BriefcaseFieldFacilities:
		v, ok := item.(*Facility)
		if !ok {
			return fmt.Errorf("expected facility item, got %T", item)
		}
		b.Facilities = upsertItem(b.Facilities, *v, func(f Facility) string { return f.ID })
	case BriefcaseFieldReferences:
		v, ok := item.(*Reference)
		if !ok {
			return fmt.Errorf("expected reference item, got %T", item)
		}
		b.References = upsertItem(b.References, *v, func(r Reference) string { return r.ID })
	case BriefcaseFieldHealthDocuments:
		v, ok := item.(*HealthDocument)
		if !ok {
			return fmt.Errorf("expected health document item, got %T", item)
		}
		b.HealthDocuments = upsertItem(b.HealthDocuments, *v, func(h HealthDocument) string { return h.ID })
	default:
		return fmt.Errorf("unknown briefcase field: %s", field)
	}
	return nil
}

// RemoveItem deletes the sub-item with the given id. Returns false when no
// such item exists.
func (b *Briefcase) RemoveItem(field BriefcaseField, id string) bool {
	switch field {
	case BriefcaseFieldLicenses:
		var ok bool
		b.Licenses, ok = removeItem(b.Licenses, id, func(l License) string { return l.ID })
		return ok
	case BriefcaseFieldCertifications:
		var ok bool
		b.Certifications, ok = removeItem(b.Certifications, id, func(c Certification) string { return c.ID })
		return ok
	case BriefcaseFieldAdditionalCertifications:
		var ok bool
		b.AdditionalCertifications, ok = removeItem(b.AdditionalCertifications, id, func(c AdditionalCertification) string { return c.ID })
		return ok
	case BriefcaseFieldEducation:
		var ok bool
		b.Education, ok = removeItem(b.Education, id, func(e Education) string { return e.ID })
		return ok
	case BriefcaseFieldFacilities:
		var ok bool
		b.Facilities, ok = removeItem(b.Facilities, id, func(f Facility) string { return f.ID })
		return ok
	case BriefcaseFieldReferences:
		var ok bool
		b.References, ok = removeItem(b.References, id, func(r Reference) string { return r.ID })
		return ok
	case BriefcaseFieldHealthDocuments:
		var ok bool
		b.HealthDocuments, ok = removeItem(b.HealthDocuments, id, func(h HealthDocument) string { return h.ID })
		return ok
	}
	return false
}

func upsertItem[T any](items []T, item T, id func(T) string) []T {
	target := id(item)
	for i := range items {
		if id(items[i]) == target {
			items[i] = item
			return items
		}
	}
	return append(items, item)
}

func removeItem[T any](items []T, target string, id func(T) string) ([]T, bool) {
	for i := range items {
		if id(items[i]) == target {
			return append(items[:i], items[i+1:]...), true
		}
	}
	return items, false
}
