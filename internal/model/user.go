package model

import (
    "strings"
    "time"
)

// User represents an application user record as stored in the
// `users` table.  The email column is the login identity and is
// unique; it is stored lower-cased and trimmed.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique login identity.
//  FirstName    – given name, shown in greetings.
//  LastName     – family name.
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of creation.
type User struct {
    ID           uint64    // users.id
    Email        string    // users.email
    FirstName    string    // users.first_name
    LastName     string    // users.last_name
    PasswordHash string    // users.password_hash
    CreatedAt    time.Time // users.created_at
}

// DisplayName joins first and last name.
func (u User) DisplayName() string {
    return JoinName(u.FirstName, u.LastName)
}

// JoinName builds a display name from its parts, skipping empty ones.
func JoinName(first, last string) string {
    return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}
