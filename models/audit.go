package models

import "time"

// Audit trail actions written by the core mutations.
const (
	AuditUserCreated     = "USER_CREATED"
	AuditUserUpdated     = "USER_UPDATED"
	AuditUserSuspended   = "USER_SUSPENDED"
	AuditUserItemAdded   = "USER_ITEM_ADDED"
	AuditUserItemUpdated = "USER_ITEM_UPDATED"
	AuditUserItemDeleted = "USER_ITEM_DELETED"
)

// AuditEntry is an append-only audit-trail record written alongside the
// mutation it describes.
type AuditEntry struct {
	ID        string      `json:"id" dynamodbav:"id"`
	Action    string      `json:"action" dynamodbav:"action"`
	UserID    string      `json:"user_id,omitempty" dynamodbav:"user_id,omitempty"`
	CreatedBy *ActorRef   `json:"created_by,omitempty" dynamodbav:"created_by,omitempty"`
	CreatedAt time.Time   `json:"created_at" dynamodbav:"created_at"`
	Data      interface{} `json:"data,omitempty" dynamodbav:"data,omitempty"`
}
