// Package events publishes domain events describing graph and content changes.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Type names a domain event
type Type string

const (
	PostCreated    Type = "post.created"
	PostDeleted    Type = "post.deleted"
	PostLiked      Type = "post.liked"
	PostUnliked    Type = "post.unliked"
	CommentCreated Type = "comment.created"
	CommentDeleted Type = "comment.deleted"
	UserFollowed   Type = "user.followed"
	UserUnfollowed Type = "user.unfollowed"
)

// Event is the payload written to the event stream
type Event struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	ActorID    uint      `json:"actor_id"`
	SubjectID  string    `json:"subject_id"`
	OwnerID    uint      `json:"owner_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// New builds an event with a fresh id and the current time
func New(t Type, actorID uint, subjectID string, ownerID uint) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       t,
		ActorID:    actorID,
		SubjectID:  subjectID,
		OwnerID:    ownerID,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher delivers events to downstream consumers
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

type noopPublisher struct{}

// NewNoopPublisher returns a Publisher that drops every event
func NewNoopPublisher() Publisher { return noopPublisher{} }

func (noopPublisher) Publish(context.Context, Event) error { return nil }
func (noopPublisher) Close() error                         { return nil }
