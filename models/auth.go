package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// UserType distinguishes the kinds of authenticated callers.
type UserType string

// User types carried in JWT claims and session contexts.
const (
	UserTypeProfessional     UserType = "professional"
	UserTypeOrganizationUser UserType = "organization_user"
	UserTypeOrganizationAPI  UserType = "organization_api"
	UserTypeAdmin            UserType = "admin"
)

// Session identifies the authenticated caller of a request.
type Session struct {
	UserID         string   `json:"user_id"`
	UserType       UserType `json:"user_type"`
	OrganizationID string   `json:"organization_id,omitempty"`
}

// IsOrganizationUser reports whether the session belongs to an
// organization, either an interactive user or an API integration.
func (s *Session) IsOrganizationUser() bool {
	if s == nil {
		return false
	}
	return s.UserType == UserTypeOrganizationUser || s.UserType == UserTypeOrganizationAPI
}

// IsAPI reports whether the session is an organization API integration.
// API sessions may write third-party linkage and never trigger webhooks
// back to their own organization.
func (s *Session) IsAPI() bool {
	return s != nil && s.UserType == UserTypeOrganizationAPI
}

// Actor returns the session as an actor reference for audit records.
func (s *Session) Actor() *ActorRef {
	if s == nil {
		return nil
	}
	return &ActorRef{ID: s.UserID, Type: string(s.UserType)}
}

// JWTClaims represents the JWT claims
type JWTClaims struct {
	UserID         string   `json:"user_id"`
	Email          string   `json:"email"`
	UserType       UserType `json:"user_type"`
	OrganizationID string   `json:"organization_id,omitempty"`

	jwt.RegisteredClaims
}

// Session builds the request session from validated claims.
func (c *JWTClaims) Session() *Session {
	return &Session{
		UserID:         c.UserID,
		UserType:       c.UserType,
		OrganizationID: c.OrganizationID,
	}
}
