package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/cinepedia/internal/database"
	"github.com/iliyamo/cinepedia/internal/model"
)

// MovieRepo encapsulates all database queries related to movies.  Reads
// join users so callers always get the owner's display name.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the provided DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

const movieSelect = `SELECT m.id, m.title, m.director, m.release_date, m.synopsis, m.user_id, m.created_at,
	u.first_name, u.last_name
	FROM movies m
	JOIN users u ON u.id = m.user_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovie(s rowScanner) (*model.Movie, error) {
	var (
		m           model.Movie
		first, last string
	)
	if err := s.Scan(&m.ID, &m.Title, &m.Director, &m.ReleaseDate, &m.Synopsis, &m.OwnerID, &m.CreatedAt, &first, &last); err != nil {
		return nil, err
	}
	m.OwnerName = model.JoinName(first, last)
	return &m, nil
}

// Create inserts a new movie.  On success ID, CreatedAt and OwnerName are
// populated by a follow-up SELECT.  A duplicate title yields ErrConflict.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	const q = "INSERT INTO movies (title, director, release_date, synopsis, user_id) VALUES (?, ?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, q, m.Title, m.Director, m.ReleaseDate, m.Synopsis, m.OwnerID)
	if err != nil {
		if database.IsDuplicate(err) {
			return ErrConflict
		}
		return fmt.Errorf("insert movie: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	stored, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*m = *stored
	return nil
}

// GetByID fetches a movie by its ID regardless of owner.  It returns
// ErrNotFound if no row is found.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	m, err := scanMovie(r.db.QueryRowContext(ctx, movieSelect+" WHERE m.id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

// ListAll returns every movie, most recently created first.
func (r *MovieRepo) ListAll(ctx context.Context) ([]*model.Movie, error) {
	rows, err := r.db.QueryContext(ctx, movieSelect+" ORDER BY m.created_at DESC, m.id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// TitleTaken reports whether a movie other than exceptID already uses
// title.  Pass exceptID 0 when creating.  This is only a fast path; the
// unique index on movies.title is authoritative.
func (r *MovieRepo) TitleTaken(ctx context.Context, title string, exceptID uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM movies WHERE title = ? AND id <> ? LIMIT 1", title, exceptID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Update overwrites the editable fields of m if it belongs to m.OwnerID.
// It returns ErrNotFound when no row matches and ErrConflict when the new
// title is used by another movie.
func (r *MovieRepo) Update(ctx context.Context, m *model.Movie) error {
	const q = `UPDATE movies
	           SET title = ?, director = ?, release_date = ?, synopsis = ?
	           WHERE id = ? AND user_id = ?`
	res, err := r.db.ExecContext(ctx, q, m.Title, m.Director, m.ReleaseDate, m.Synopsis, m.ID, m.OwnerID)
	if err != nil {
		if database.IsDuplicate(err) {
			return ErrConflict
		}
		return fmt.Errorf("update movie: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByIDAndOwner removes a movie provided it belongs to ownerID.  If
// the movie does not exist ErrNotFound is returned; if it exists but is
// owned by a different user ErrForbidden is returned.  Comments go with
// it through the foreign key's ON DELETE CASCADE.
func (r *MovieRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	var dbOwnerID uint64
	if err = tx.QueryRowContext(ctx, `SELECT user_id FROM movies WHERE id = ?`, id).Scan(&dbOwnerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if dbOwnerID != ownerID {
		return ErrForbidden
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
	return err
}
