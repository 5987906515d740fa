package models

import (
	"database/sql"
	"strings"
	"time"
)

// User is a book-tracker account record. PasswordHash holds a salted bcrypt
// digest and must never be serialized through any read path.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Bio          string
	AvatarKey    sql.NullString
	ReadingGoal  sql.NullInt64
	IsPrivate    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName joins first and last name, trimming the separator when either
// part is empty.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// UserPatch describes a partial profile update. Nil fields are left
// unchanged.
type UserPatch struct {
	FirstName   *string
	LastName    *string
	Bio         *string
	AvatarKey   *string
	ReadingGoal *int64
	IsPrivate   *bool
}
