package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/iliyamo/cinepedia/internal/metrics"
	"github.com/iliyamo/cinepedia/internal/model"
	"github.com/iliyamo/cinepedia/internal/queue"
	"github.com/iliyamo/cinepedia/internal/repository"
)

// MovieInput is the create/edit form.  ReleaseDate is YYYY-MM-DD.
type MovieInput struct {
	Title       string `form:"title" validate:"required,min=3"`
	Director    string `form:"director" validate:"required,min=3"`
	ReleaseDate string `form:"release_date" validate:"required,datetime=2006-01-02"`
	Synopsis    string `form:"synopsis" validate:"required,min=3"`
}

// FromMovie fills the form from a stored movie.
func FromMovie(m *model.Movie) MovieInput {
	return MovieInput{
		Title:       m.Title,
		Director:    m.Director,
		ReleaseDate: m.ReleaseDate.Format(model.ReleaseDateLayout),
		Synopsis:    m.Synopsis,
	}
}

// parse trims every field, validates the form and returns the release date.
func (in *MovieInput) parse() (time.Time, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Director = strings.TrimSpace(in.Director)
	in.ReleaseDate = strings.TrimSpace(in.ReleaseDate)
	in.Synopsis = strings.TrimSpace(in.Synopsis)

	if err := check(*in,
		rule{"required", MsgAllFieldsRequired},
		rule{"min", MsgMovieFieldTooShort},
		rule{"datetime", MsgInvalidReleaseDate},
	); err != nil {
		return time.Time{}, err
	}
	d, err := time.ParseInLocation(model.ReleaseDateLayout, in.ReleaseDate, time.UTC)
	if err != nil {
		return time.Time{}, invalid(MsgInvalidReleaseDate)
	}
	return d, nil
}

// MovieService implements the movie catalogue use cases.
type MovieService struct {
	movies   MovieStore
	comments CommentStore
	events   EventPublisher
	log      zerolog.Logger
}

// NewMovieService wires a MovieService.  events may be nil.
func NewMovieService(movies MovieStore, comments CommentStore, events EventPublisher, log zerolog.Logger) *MovieService {
	return &MovieService{movies: movies, comments: comments, events: events, log: log}
}

// List returns every movie, newest first.
func (s *MovieService) List(ctx context.Context) ([]*model.Movie, error) {
	return s.movies.ListAll(ctx)
}

// Get returns a movie with its comments.
func (s *MovieService) Get(ctx context.Context, id uint64) (*model.MovieDetail, error) {
	m, err := s.movies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByMovie(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.MovieDetail{Movie: m, Comments: comments}, nil
}

// GetForEdit returns the movie only if editorID owns it.
func (s *MovieService) GetForEdit(ctx context.Context, id, editorID uint64) (*model.Movie, error) {
	m, err := s.movies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeMovie(ActionEdit, m, editorID).Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// Create stores a new movie owned by ownerID.
func (s *MovieService) Create(ctx context.Context, ownerID uint64, in MovieInput) (m *model.Movie, err error) {
	defer func() { metrics.MovieOperationsTotal.WithLabelValues("create", Outcome(err)).Inc() }()

	released, err := in.parse()
	if err != nil {
		return nil, err
	}
	if err := s.ensureTitleFree(ctx, in.Title, 0); err != nil {
		return nil, err
	}

	m = &model.Movie{
		Title:       in.Title,
		Director:    in.Director,
		ReleaseDate: released,
		Synopsis:    in.Synopsis,
		OwnerID:     ownerID,
	}
	if err := s.movies.Create(ctx, m); err != nil {
		return nil, titleConflict(err)
	}

	s.log.Info().Uint64("movie_id", m.ID).Uint64("owner_id", ownerID).Msg("movie created")
	publish(ctx, s.events, s.log, queue.NewActivityEvent(queue.EventMovieCreated, ownerID, m.ID, 0, m.Title))
	return m, nil
}

// Update overwrites the editable fields of movie id.  Checks run in this
// order: existence, ownership, form validity, title uniqueness.
func (s *MovieService) Update(ctx context.Context, id, editorID uint64, in MovieInput) (m *model.Movie, err error) {
	defer func() { metrics.MovieOperationsTotal.WithLabelValues("update", Outcome(err)).Inc() }()

	m, err = s.movies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeMovie(ActionEdit, m, editorID).Err(); err != nil {
		return nil, err
	}
	released, err := in.parse()
	if err != nil {
		return nil, err
	}
	if err := s.ensureTitleFree(ctx, in.Title, id); err != nil {
		return nil, err
	}

	m.Title = in.Title
	m.Director = in.Director
	m.ReleaseDate = released
	m.Synopsis = in.Synopsis
	if err := s.movies.Update(ctx, m); err != nil {
		return nil, titleConflict(err)
	}

	s.log.Info().Uint64("movie_id", m.ID).Msg("movie updated")
	publish(ctx, s.events, s.log, queue.NewActivityEvent(queue.EventMovieUpdated, editorID, m.ID, 0, m.Title))
	return m, nil
}

// Delete removes movie id and, through the foreign key, its comments.
func (s *MovieService) Delete(ctx context.Context, id, requesterID uint64) (err error) {
	defer func() { metrics.MovieOperationsTotal.WithLabelValues("delete", Outcome(err)).Inc() }()

	m, err := s.movies.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := AuthorizeMovie(ActionDelete, m, requesterID).Err(); err != nil {
		return err
	}
	if err := s.movies.DeleteByIDAndOwner(ctx, id, requesterID); err != nil {
		if errors.Is(err, repository.ErrForbidden) {
			return &ForbiddenError{Reason: ReasonDeleteNotOwner}
		}
		return err
	}

	s.log.Info().Uint64("movie_id", id).Msg("movie deleted")
	publish(ctx, s.events, s.log, queue.NewActivityEvent(queue.EventMovieDeleted, requesterID, id, 0, m.Title))
	return nil
}

func (s *MovieService) ensureTitleFree(ctx context.Context, title string, exceptID uint64) error {
	taken, err := s.movies.TitleTaken(ctx, title, exceptID)
	if err != nil {
		return err
	}
	if taken {
		return &ConflictError{Msg: MsgTitleTaken}
	}
	return nil
}

// titleConflict turns the unique index's verdict into the user-facing error.
func titleConflict(err error) error {
	if errors.Is(err, repository.ErrConflict) {
		return &ConflictError{Msg: MsgTitleTaken}
	}
	return err
}
