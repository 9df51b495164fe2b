// Package queue defines message payloads exchanged over the message broker
// and the RabbitMQ publisher/consumer pair that carries them.
package queue

import "time"

// ActivityQueue is the durable queue activity events are routed to.
const ActivityQueue = "cinepedia.activity"

// Event types.
const (
    EventMovieCreated   = "movie.created"
    EventMovieUpdated   = "movie.updated"
    EventMovieDeleted   = "movie.deleted"
    EventCommentCreated = "comment.created"
    EventCommentDeleted = "comment.deleted"
)

// ActivityEvent is published after a movie or comment mutation commits.
// It carries enough for downstream consumers to log or notify without
// querying the primary database.
type ActivityEvent struct {
    Type       string `json:"type"`
    ActorID    uint64 `json:"actor_id"`
    MovieID    uint64 `json:"movie_id"`
    CommentID  uint64 `json:"comment_id,omitempty"`
    Title      string `json:"title,omitempty"`
    OccurredAt string `json:"occurred_at"`
}

// NewActivityEvent stamps an event with the current UTC time.
func NewActivityEvent(typ string, actorID, movieID, commentID uint64, title string) ActivityEvent {
    return ActivityEvent{
        Type:       typ,
        ActorID:    actorID,
        MovieID:    movieID,
        CommentID:  commentID,
        Title:      title,
        OccurredAt: time.Now().UTC().Format(time.RFC3339),
    }
}
