package model

import "time"

// ReleaseDateLayout is the wire and form format of Movie.ReleaseDate.
const ReleaseDateLayout = "2006-01-02"

// Movie represents a row in the `movies` table joined with the
// owner's display name.  Titles are unique across all movies and
// compared case-sensitively.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – unique title.
//  Director    – director name.
//  ReleaseDate – release day (time part is zero).
//  Synopsis    – free text summary.
//  OwnerID     – user ID of the creator; only the owner may edit or delete.
//  OwnerName   – owner's display name (from users, not stored on movies).
//  CreatedAt   – server-assigned creation timestamp.
type Movie struct {
    ID          uint64    // movies.id
    Title       string    // movies.title
    Director    string    // movies.director
    ReleaseDate time.Time // movies.release_date
    Synopsis    string    // movies.synopsis
    OwnerID     uint64    // movies.user_id
    OwnerName   string    // users.first_name + users.last_name
    CreatedAt   time.Time // movies.created_at
}

// IsOwnedBy reports whether userID created the movie.
func (m *Movie) IsOwnedBy(userID uint64) bool {
    return m != nil && m.OwnerID == userID
}

// MovieDetail is a movie together with its comments, newest first.
type MovieDetail struct {
    Movie    *Movie
    Comments []*Comment
}
