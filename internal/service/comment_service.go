package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/iliyamo/cinepedia/internal/metrics"
	"github.com/iliyamo/cinepedia/internal/model"
	"github.com/iliyamo/cinepedia/internal/queue"
)

type commentInput struct {
	Content string `validate:"required"`
}

// CommentService implements posting and removing comments.
type CommentService struct {
	comments CommentStore
	movies   MovieStore
	events   EventPublisher
	log      zerolog.Logger
}

// NewCommentService wires a CommentService.  events may be nil.
func NewCommentService(comments CommentStore, movies MovieStore, events EventPublisher, log zerolog.Logger) *CommentService {
	return &CommentService{comments: comments, movies: movies, events: events, log: log}
}

// Create posts content on movieID as authorID.  Owners may not comment on
// their own movies.
func (s *CommentService) Create(ctx context.Context, movieID, authorID uint64, content string) (c *model.Comment, err error) {
	defer func() { metrics.CommentOperationsTotal.WithLabelValues("create", Outcome(err)).Inc() }()

	in := commentInput{Content: strings.TrimSpace(content)}
	if err := check(in, rule{"required", MsgCommentEmpty}); err != nil {
		return nil, err
	}

	m, err := s.movies.GetByID(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeMovie(ActionComment, m, authorID).Err(); err != nil {
		return nil, err
	}

	c = &model.Comment{MovieID: movieID, AuthorID: authorID, Content: in.Content}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}

	s.log.Info().Uint64("comment_id", c.ID).Uint64("movie_id", movieID).Msg("comment created")
	publish(ctx, s.events, s.log, queue.NewActivityEvent(queue.EventCommentCreated, authorID, movieID, c.ID, m.Title))
	return c, nil
}

// Delete removes comment commentID if requesterID wrote it.  The comment is
// returned whenever it exists, including on a forbidden attempt, so the
// caller can send the user back to its movie.
func (s *CommentService) Delete(ctx context.Context, commentID, requesterID uint64) (c *model.Comment, err error) {
	defer func() { metrics.CommentOperationsTotal.WithLabelValues("delete", Outcome(err)).Inc() }()

	c, err = s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeComment(ActionDelete, c, requesterID).Err(); err != nil {
		return c, err
	}
	if err := s.comments.DeleteByIDAndAuthor(ctx, commentID, requesterID); err != nil {
		return c, err
	}

	s.log.Info().Uint64("comment_id", commentID).Msg("comment deleted")
	publish(ctx, s.events, s.log, queue.NewActivityEvent(queue.EventCommentDeleted, requesterID, c.MovieID, commentID, ""))
	return c, nil
}
