package models

import "time"

// Audit actor types.
const (
	ActorUser   = "USER"
	ActorAI     = "AI"
	ActorSystem = "SYSTEM"
)

// Audit actions recorded by the booking, QR and registry flows.
const (
	ActionCreated    = "CREATED"
	ActionConfirmed  = "CONFIRMED"
	ActionRejected   = "REJECTED"
	ActionCancelled  = "CANCELLED"
	ActionReassigned = "REASSIGNED"
	ActionModified   = "MODIFIED"
	ActionOverridden = "OVERRIDDEN"
	ActionScanned    = "SCANNED"
	ActionCheckedIn  = "CHECKED_IN"
	ActionGenerated  = "GENERATED"
	ActionUpdated    = "UPDATED"
)

// AuditLog is an append-only record of a state transition. Never mutated.
type AuditLog struct {
	ID          string    `bson:"id" json:"id"`
	ActorType   string    `bson:"actorType" json:"actorType"`
	ActorID     string    `bson:"actorId,omitempty" json:"actorId,omitempty"`
	EntityType  string    `bson:"entityType" json:"entityType"`
	EntityID    string    `bson:"entityId" json:"entityId"`
	Action      string    `bson:"action" json:"action"`
	Description string    `bson:"description" json:"description"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// Actor identifies who performed an operation. Passed explicitly on every
// state-changing call; the services never read ambient session state.
type Actor struct {
	Type string
	ID   string
}

// SystemActor is the actor attributed to automated transitions.
var SystemActor = Actor{Type: ActorSystem}

// AuditFilter narrows audit log queries.
type AuditFilter struct {
	EntityType string
	Action     string
	ActorID    string
	Limit      int64
}
