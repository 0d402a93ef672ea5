package events

import (
	"github.com/google/uuid"

	platformevents "shopwise_backend/platform/events"
)

// Re-exported platform types so modules depend on a single import path.
type (
	Event       = platformevents.Event
	BaseEvent   = platformevents.BaseEvent
	Handler     = platformevents.Handler
	HandlerFunc = platformevents.HandlerFunc
	Bus         = platformevents.Bus
)

// NewBaseEvent creates a new base event with the current timestamp.
func NewBaseEvent() BaseEvent {
	return platformevents.NewBaseEvent()
}

// UserRegistered fires after a user account is created.
type UserRegistered struct {
	BaseEvent
	UserID   uuid.UUID
	Email    string
	FullName string
}

// EventName returns the unique event identifier.
func (UserRegistered) EventName() string { return "auth.user_registered" }

// BusinessRegistered fires after a tenant business is created. The business
// module seeds the public directory entry from it.
type BusinessRegistered struct {
	BaseEvent
	BusinessID uuid.UUID
	Name       string
}

// EventName returns the unique event identifier.
func (BusinessRegistered) EventName() string { return "business.registered" }

// CatalogChanged fires when a business's product set changes (create or
// delete), so denormalized directory counts can be re-derived.
type CatalogChanged struct {
	BaseEvent
	BusinessID uuid.UUID
}

// EventName returns the unique event identifier.
func (CatalogChanged) EventName() string { return "catalog.changed" }

// WorkforceChanged fires when a business's employee set changes (create
// or delete).
type WorkforceChanged struct {
	BaseEvent
	BusinessID uuid.UUID
}

// EventName returns the unique event identifier.
func (WorkforceChanged) EventName() string { return "workforce.changed" }

// SaleRecorded fires after a sale is persisted, with the stock already
// decremented in the same transaction.
type SaleRecorded struct {
	BaseEvent
	BusinessID uuid.UUID
	SaleID     uuid.UUID
	ProductID  uuid.UUID
	Quantity   int
	TotalCents int64
}

// EventName returns the unique event identifier.
func (SaleRecorded) EventName() string { return "finance.sale_recorded" }
