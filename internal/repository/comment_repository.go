package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/cinepedia/internal/database"
	"github.com/iliyamo/cinepedia/internal/model"
)

// CommentRepo encapsulates queries on the comments table.
type CommentRepo struct {
	db *sql.DB
}

func NewCommentRepo(db *sql.DB) *CommentRepo {
	return &CommentRepo{db: db}
}

const commentSelect = `SELECT c.id, c.movie_id, c.user_id, c.content, c.created_at, u.first_name, u.last_name
	FROM comments c
	JOIN users u ON u.id = c.user_id`

func scanComment(s rowScanner) (*model.Comment, error) {
	var (
		c           model.Comment
		first, last string
	)
	if err := s.Scan(&c.ID, &c.MovieID, &c.AuthorID, &c.Content, &c.CreatedAt, &first, &last); err != nil {
		return nil, err
	}
	c.AuthorName = model.JoinName(first, last)
	return &c, nil
}

// Create inserts c and reloads it so ID, CreatedAt and AuthorName are set.
// It returns ErrNotFound if the movie or author no longer exists.
func (r *CommentRepo) Create(ctx context.Context, c *model.Comment) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO comments (content, movie_id, user_id) VALUES (?, ?, ?)",
		c.Content, c.MovieID, c.AuthorID)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return ErrNotFound
		}
		return fmt.Errorf("insert comment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	stored, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*c = *stored
	return nil
}

// GetByID returns the comment or ErrNotFound.
func (r *CommentRepo) GetByID(ctx context.Context, id uint64) (*model.Comment, error) {
	c, err := scanComment(r.db.QueryRowContext(ctx, commentSelect+" WHERE c.id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// ListByMovie returns the comments of a movie, newest first.
func (r *CommentRepo) ListByMovie(ctx context.Context, movieID uint64) ([]*model.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		commentSelect+" WHERE c.movie_id = ? ORDER BY c.created_at DESC, c.id DESC", movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByIDAndAuthor removes a comment only if authorID wrote it.  No
// matching row yields ErrNotFound.
func (r *CommentRepo) DeleteByIDAndAuthor(ctx context.Context, id, authorID uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM comments WHERE id = ? AND user_id = ?", id, authorID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
