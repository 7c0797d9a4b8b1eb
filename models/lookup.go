package models

import "strings"

// State is a US state reference entry.
type State struct {
	Name string `json:"name" dynamodbav:"name"`
	Abbr string `json:"abbr" dynamodbav:"abbr"`
}

// LicenseType is a license-type reference entry. DetailsRequired license
// types must carry body, number and expiration together. UseEVerify marks
// eligibility for electronic verification.
type LicenseType struct {
	Abbr            string `json:"abbr" dynamodbav:"abbr"`
	Profession      string `json:"profession" dynamodbav:"profession"`
	DetailsRequired bool   `json:"details_required" dynamodbav:"details_required"`
	UseEVerify      bool   `json:"use_everify" dynamodbav:"use_everify"`
}

// LicenseBody is a licensing board reference entry.
type LicenseBody struct {
	Name           string   `json:"name" dynamodbav:"name"`
	State          string   `json:"state" dynamodbav:"state"`
	UseEVerify     bool     `json:"use_everify" dynamodbav:"use_everify"`
	LicenseFormats []string `json:"license_formats,omitempty" dynamodbav:"license_formats,omitempty"`
}

// NamedLookup is a profession-scoped named reference entry (specialties,
// certifications, additional certifications, education levels).
type NamedLookup struct {
	Name           string `json:"name" dynamodbav:"name"`
	Profession     string `json:"profession,omitempty" dynamodbav:"profession,omitempty"`
	CertifyingBody string `json:"certifying_body,omitempty" dynamodbav:"certifying_body,omitempty"`
}

// City is a geocoded city reference entry.
type City struct {
	City        string    `json:"city" dynamodbav:"city"`
	State       string    `json:"state" dynamodbav:"state"`
	Country     string    `json:"country" dynamodbav:"country"`
	Coordinates []float64 `json:"coordinates,omitempty" dynamodbav:"coordinates,omitempty"`
	Population  int       `json:"population,omitempty" dynamodbav:"population,omitempty"`
}

// Lookups bundles the preloaded reference collections used to normalize
// free-text input during bulk import.
type Lookups struct {
	States                   []State
	LicenseTypes             []LicenseType
	LicenseBodies            []LicenseBody
	Specialties              []NamedLookup
	Certifications           []NamedLookup
	AdditionalCertifications []NamedLookup
	EducationLevels          []NamedLookup
	Departments              []Department
}

// ResolveState matches free text against state name or abbreviation and
// returns the canonical abbreviation. Falls back to the input when unmatched.
func (l *Lookups) ResolveState(value string) (string, bool) {
	v := strings.TrimSpace(value)
	for _, s := range l.States {
		if strings.EqualFold(v, s.Abbr) || strings.EqualFold(v, s.Name) {
			return s.Abbr, true
		}
	}
	return v, false
}

// ResolveLicenseType matches free text against license-type abbreviations.
func (l *Lookups) ResolveLicenseType(value string) (string, bool) {
	v := strings.TrimSpace(value)
	for _, t := range l.LicenseTypes {
		if strings.EqualFold(v, t.Abbr) {
			return t.Abbr, true
		}
	}
	return v, false
}

// LicenseType returns the license-type entry for an abbreviation, or nil.
func (l *Lookups) LicenseType(abbr string) *LicenseType {
	for i := range l.LicenseTypes {
		if strings.EqualFold(abbr, l.LicenseTypes[i].Abbr) {
			return &l.LicenseTypes[i]
		}
	}
	return nil
}

// ResolveLicenseBody matches free text against body name or state (state
// names and abbreviations are normalized first).
func (l *Lookups) ResolveLicenseBody(value string) (string, bool) {
	v, _ := l.ResolveState(value)
	for _, b := range l.LicenseBodies {
		if strings.EqualFold(v, b.Name) || strings.EqualFold(v, b.State) {
			return b.Name, true
		}
	}
	return v, false
}

// ResolveNamed matches free text against a named lookup set.
func ResolveNamed(set []NamedLookup, value string) (string, bool) {
	v := strings.TrimSpace(value)
	for _, item := range set {
		if strings.EqualFold(v, item.Name) {
			return item.Name, true
		}
	}
	return v, false
}

// ResolveDepartment matches free text against department names and returns
// the department id.
func (l *Lookups) ResolveDepartment(value string) (string, bool) {
	v := strings.TrimSpace(value)
	for _, d := range l.Departments {
		if strings.EqualFold(v, d.Name) || d.ID == v {
			return d.ID, true
		}
	}
	return v, false
}
