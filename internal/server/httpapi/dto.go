package httpapi

import (
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/booktracker-app/server/internal/server/models"
)

// Reading goal bounds, inclusive.
const (
	readingGoalMin = 12
	readingGoalMax = 1000
)

// readingGoalInRange enforces the reading goal bounds on an optional field.
// ozzo's Min/Max treat a dereferenced zero as an empty value and skip it, so
// the check has to be an explicit rule.
func readingGoalInRange(value interface{}) error {
	v, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	goal, ok := v.(int64)
	if !ok {
		return errors.New("must be an integer")
	}
	if goal < readingGoalMin || goal > readingGoalMax {
		return fmt.Errorf("must be between %v and %v", readingGoalMin, readingGoalMax)
	}
	return nil
}

type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	ReadingGoal     *int64 `json:"reading_goal"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(3, 150)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 128)),
		validation.Field(&r.PasswordConfirm, validation.Required),
		validation.Field(&r.ReadingGoal, validation.By(readingGoalInRange)),
	)
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

func (r RefreshRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Refresh, validation.Required),
	)
}

type VerifyRequest struct {
	Token string `json:"token"`
}

func (r VerifyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Token, validation.Required),
	)
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ProfileUpdateRequest carries a partial profile update. Absent fields stay
// untouched, which makes PUT and PATCH behave identically.
type ProfileUpdateRequest struct {
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	Bio            *string `json:"bio"`
	ProfilePicture *string `json:"profile_picture"`
	ReadingGoal    *int64  `json:"reading_goal"`
	IsPrivate      *bool   `json:"is_private"`
}

func (r ProfileUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ReadingGoal, validation.By(readingGoalInRange)),
	)
}

func (r *ProfileUpdateRequest) toPatch() *models.UserPatch {
	return &models.UserPatch{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Bio:         r.Bio,
		AvatarKey:   r.ProfilePicture,
		ReadingGoal: r.ReadingGoal,
		IsPrivate:   r.IsPrivate,
	}
}

// UserResponse is the public profile view. The password hash is not part of
// this structure on purpose.
type UserResponse struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	FullName       string    `json:"full_name"`
	Bio            string    `json:"bio"`
	ProfilePicture *string   `json:"profile_picture"`
	ReadingGoal    *int64    `json:"reading_goal"`
	IsPrivate      bool      `json:"is_private"`
	CreatedAt      time.Time `json:"created_at"`
}

// newUserResponse builds the public view of a user, with profilePicture
// already resolved to a downloadable URL (or empty when no avatar is set).
func newUserResponse(u *models.User, profilePicture string) *UserResponse {
	resp := &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
		Bio:       u.Bio,
		IsPrivate: u.IsPrivate,
		CreatedAt: u.CreatedAt,
	}
	if profilePicture != "" {
		resp.ProfilePicture = &profilePicture
	}
	if u.ReadingGoal.Valid {
		goal := u.ReadingGoal.Int64
		resp.ReadingGoal = &goal
	}
	return resp
}

type TokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type AccessTokenResponse struct {
	Access string `json:"access"`
}

type RegisterResponse struct {
	User    *UserResponse `json:"user"`
	Message string        `json:"message"`
}

type AvatarUploadResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
}
