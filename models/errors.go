package models

import "errors"

// Sentinel errors surfaced by the service layer and mapped to HTTP
// statuses at the controller boundary.
var (
	ErrAccountAlreadyExists      = errors.New("an account with this email already exists")
	ErrDeactivatedAccount        = errors.New("account has been deactivated")
	ErrProfessionAlreadyAssigned = errors.New("profession cannot be changed once assigned")
	ErrOrganizationNotFound      = errors.New("organization not found")
	ErrDepartmentNotFound        = errors.New("department not found")
	ErrUserNotFound              = errors.New("user not found")
	ErrEmailAlreadyInUse         = errors.New("email is already in use")
	ErrPasswordRequired          = errors.New("password is required")
	ErrUnauthorized              = errors.New("unauthorized")
	ErrBriefcaseItemNotFound     = errors.New("briefcase item not found")
)

// AddAffiliationRequired signals that the professional already exists
// and the caller must confirm before an affiliation is added. It is a
// workflow gate rather than a failure, mapped to 409 at the boundary.
type AddAffiliationRequired struct {
	ProfessionalID string
}

func (e *AddAffiliationRequired) Error() string {
	return "professional already exists, affiliation confirmation required"
}

// IsAddAffiliationRequired reports whether err is the affiliation gate
// and returns the existing professional id when it is.
func IsAddAffiliationRequired(err error) (*AddAffiliationRequired, bool) {
	var gate *AddAffiliationRequired
	if errors.As(err, &gate) {
		return gate, true
	}
	return nil, false
}
