package service

import (
	"context"

	"github.com/iliyamo/cinepedia/internal/model"
	"github.com/iliyamo/cinepedia/internal/queue"
)

// UserStore is the persistence the auth use cases need.  *repository.UserRepo
// satisfies it.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	EmailExists(ctx context.Context, email string) (bool, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uint64) (*model.User, error)
}

// MovieStore is satisfied by *repository.MovieRepo.
type MovieStore interface {
	Create(ctx context.Context, m *model.Movie) error
	GetByID(ctx context.Context, id uint64) (*model.Movie, error)
	ListAll(ctx context.Context) ([]*model.Movie, error)
	TitleTaken(ctx context.Context, title string, exceptID uint64) (bool, error)
	Update(ctx context.Context, m *model.Movie) error
	DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error
}

// CommentStore is satisfied by *repository.CommentRepo.
type CommentStore interface {
	Create(ctx context.Context, c *model.Comment) error
	GetByID(ctx context.Context, id uint64) (*model.Comment, error)
	ListByMovie(ctx context.Context, movieID uint64) ([]*model.Comment, error)
	DeleteByIDAndAuthor(ctx context.Context, id, authorID uint64) error
}

// EventPublisher receives activity events after a mutation commits.
// *queue.Publisher and queue.NopPublisher satisfy it.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.ActivityEvent) error
}
