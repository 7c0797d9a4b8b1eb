package models

import "time"

// LicenseVerificationRequest is the query sent to the third-party
// license verification gateway.
type LicenseVerificationRequest struct {
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	DateOfBirth   *time.Time `json:"date_of_birth,omitempty"`
	SSNLast4      string     `json:"ssn_last4,omitempty"`
	LicenseNumber string     `json:"license_number"`
	LicenseBody   string     `json:"license_body"`
	LicenseType   string     `json:"license_type"`
}

// LicenseVerificationResult is the gateway's answer. Errors carries the
// inner error messages returned on failure, matched against the
// configured suspension patterns.
type LicenseVerificationResult struct {
	Verified bool     `json:"verified"`
	Status   string   `json:"status,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}
