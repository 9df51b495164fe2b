package model

import "time"

// Comment represents a row in the `comments` table joined with the
// author's display name.  A comment belongs to one movie and is
// removed with it.
//
// Fields:
//  ID         – primary key identifier.
//  MovieID    – movie the comment is attached to.
//  AuthorID   – user who wrote it; only the author may delete it.
//  AuthorName – author's display name.
//  Content    – comment text.
//  CreatedAt  – server-assigned creation timestamp.
type Comment struct {
    ID         uint64    // comments.id
    MovieID    uint64    // comments.movie_id
    AuthorID   uint64    // comments.user_id
    AuthorName string    // users.first_name + users.last_name
    Content    string    // comments.content
    CreatedAt  time.Time // comments.created_at
}
