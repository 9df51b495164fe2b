package handler

import (
	"context"

	"github.com/iliyamo/cinepedia/internal/model"
	"github.com/iliyamo/cinepedia/internal/service"
)

// The handler package depends on these narrow views of the services so
// tests can substitute stubs.

type AuthService interface {
	Register(ctx context.Context, in service.RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
	Profile(ctx context.Context, id uint64) (*model.User, error)
}

type MovieService interface {
	List(ctx context.Context) ([]*model.Movie, error)
	Get(ctx context.Context, id uint64) (*model.MovieDetail, error)
	GetForEdit(ctx context.Context, id, editorID uint64) (*model.Movie, error)
	Create(ctx context.Context, ownerID uint64, in service.MovieInput) (*model.Movie, error)
	Update(ctx context.Context, id, editorID uint64, in service.MovieInput) (*model.Movie, error)
	Delete(ctx context.Context, id, requesterID uint64) error
}

type CommentService interface {
	Create(ctx context.Context, movieID, authorID uint64, content string) (*model.Comment, error)
	Delete(ctx context.Context, commentID, requesterID uint64) (*model.Comment, error)
}
