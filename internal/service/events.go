package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/iliyamo/cinepedia/internal/queue"
)

// publish hands ev to pub.  Delivery is best effort: the mutation has
// already committed, so a broker failure is logged and otherwise ignored.
func publish(ctx context.Context, pub EventPublisher, log zerolog.Logger, ev queue.ActivityEvent) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, ev); err != nil {
		log.Warn().Err(err).Str("event", ev.Type).Uint64("movie_id", ev.MovieID).Msg("activity event not published")
	}
}
