package handler

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinepedia/internal/model"
	"github.com/iliyamo/cinepedia/internal/repository"
	"github.com/iliyamo/cinepedia/internal/service"
	"github.com/iliyamo/cinepedia/internal/session"
)

func TestCommentCreate(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target string
		sev    session.Severity
	}{
		{"ok", nil, "/movies/3", session.Success},
		{"empty", &service.ValidationError{Msg: service.MsgCommentEmpty}, "/movies/3", session.Danger},
		{"own movie", &service.ForbiddenError{Reason: service.ReasonCommentOwnMovie}, "/movies/3", session.Warning},
		{"movie gone", repository.ErrNotFound, "/movies", session.Danger},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEcho(t)
			h := NewCommentHandler(&stubComments{createFn: func(_ context.Context, movieID, author uint64, content string) (*model.Comment, error) {
				assert.Equal(t, uint64(3), movieID)
				assert.Equal(t, "Great film", content)
				if tt.err != nil {
					return nil, tt.err
				}
				return &model.Comment{ID: 9, MovieID: movieID, AuthorID: author}, nil
			}}, zerolog.Nop())

			c, rec := request(e, http.MethodPost, "/movies/3/comments", url.Values{"content": {"Great film"}}, 2, "id", "3")
			require.NoError(t, h.Create(c))
			assert.Equal(t, tt.target, rec.Header().Get(echo.HeaderLocation))
			f := flashOf(t, rec)
			require.NotNil(t, f)
			assert.Equal(t, tt.sev, f.Severity)
		})
	}
}

func TestCommentDelete(t *testing.T) {
	tests := []struct {
		name    string
		comment *model.Comment
		err     error
		target  string
		msg     string
	}{
		{"ok", &model.Comment{ID: 9, MovieID: 3}, nil, "/movies/3", msgCommentDeleted},
		{"not author", &model.Comment{ID: 9, MovieID: 3}, &service.ForbiddenError{Reason: service.ReasonDeleteNotAuthor}, "/movies/3", service.ReasonDeleteNotAuthor},
		{"missing", nil, repository.ErrNotFound, "/movies", msgCommentNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEcho(t)
			h := NewCommentHandler(&stubComments{deleteFn: func(context.Context, uint64, uint64) (*model.Comment, error) {
				return tt.comment, tt.err
			}}, zerolog.Nop())

			c, rec := request(e, http.MethodGet, "/comments/9/delete", nil, 2, "id", "9")
			require.NoError(t, h.Delete(c))
			assert.Equal(t, tt.target, rec.Header().Get(echo.HeaderLocation))
			assert.Equal(t, tt.msg, flashOf(t, rec).Message)
		})
	}
}
