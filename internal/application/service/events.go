package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	ProfileEventCreated = "profile.created"
	ProfileEventUpdated = "profile.updated"
	ProfileEventDeleted = "profile.deleted"
)

type ProfileEvent struct {
	Type       string    `json:"type"`
	UserID     uuid.UUID `json:"user_id"`
	Handle     string    `json:"handle,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher fans profile lifecycle events out to the message broker.
// Publishing is best-effort: use cases log failures and never fail the
// request over a broker error.
type EventPublisher interface {
	PublishProfileEvent(ctx context.Context, event ProfileEvent) error
}
