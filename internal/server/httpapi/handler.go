// Package httpapi exposes the account service over HTTP using gin. Handlers
// stay thin: bind and validate the request, call the service layer, map the
// result onto the wire.
package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/booktracker-app/server/internal/common"
	"github.com/booktracker-app/server/internal/logging"
	"github.com/booktracker-app/server/internal/server/auth"
	"github.com/booktracker-app/server/internal/server/models"
	"github.com/booktracker-app/server/internal/server/services"
)

// Accounts is the slice of the user service the handlers need.
type Accounts interface {
	Register(ctx context.Context, p services.RegisterParams) (*models.User, error)
	Login(ctx context.Context, username, password string) (*auth.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Verify(ctx context.Context, token string) error
	Authorize(ctx context.Context, accessToken string) (string, error)
	Logout(ctx context.Context, refreshToken string) error
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, patch *models.UserPatch) (*models.User, error)
}

// Avatars issues presigned URLs for profile pictures.
type Avatars interface {
	GetPresignedPutURL(ctx context.Context, userID string) (string, string, error)
	GetPresignedGetURL(ctx context.Context, key string) (string, error)
}

type Handler struct {
	accounts Accounts
	avatars  Avatars
	log      logging.Logger
}

func NewHandler(accounts Accounts, avatars Avatars, log logging.Logger) *Handler {
	return &Handler{accounts: accounts, avatars: avatars, log: log.With("component", "httpapi")}
}

// writeTokenError maps a token validation failure onto a 401 with a distinct
// reason per failure kind.
func writeTokenError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrTokenWrongType),
		errors.Is(err, auth.ErrTokenRevoked),
		errors.Is(err, auth.ErrTokenMalformed):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func (h *Handler) RegisterHandler(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Password != req.PasswordConfirm {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrPasswordsDiffer.Error()})
		return
	}

	user, err := h.accounts.Register(c.Request.Context(), services.RegisterParams{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		ReadingGoal: req.ReadingGoal,
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrUsernameTaken):
			c.JSON(http.StatusBadRequest, gin.H{"username": err.Error()})
		case errors.Is(err, common.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"email": err.Error()})
		default:
			h.log.Error(c.Request.Context(), "register failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, RegisterResponse{
		User:    newUserResponse(user, ""),
		Message: "User registered successfully",
	})
}

func (h *Handler) LoginHandler(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pair, err := h.accounts.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		// The reason stays generic on purpose: no hint whether the
		// username or the password was wrong.
		if errors.Is(err, common.ErrorUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		h.log.Error(c.Request.Context(), "login failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, TokenPairResponse{Access: pair.AccessToken, Refresh: pair.RefreshToken})
}

func (h *Handler) RefreshHandler(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	access, err := h.accounts.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		writeTokenError(c, err)
		return
	}

	c.JSON(http.StatusOK, AccessTokenResponse{Access: access})
}

func (h *Handler) VerifyHandler(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accounts.Verify(c.Request.Context(), req.Token); err != nil {
		writeTokenError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

func (h *Handler) LogoutHandler(c *gin.Context) {
	var req LogoutRequest
	// A missing or empty body means a missing token, not a transport error.
	_ = c.ShouldBindJSON(&req)

	err := h.accounts.Logout(c.Request.Context(), req.RefreshToken)
	if err == nil {
		c.JSON(http.StatusResetContent, gin.H{"message": "Successfully logged out"})
		return
	}

	switch {
	case errors.Is(err, common.ErrMissingToken):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Refresh token is required"})
	case errors.Is(err, auth.ErrTokenMalformed),
		errors.Is(err, auth.ErrTokenWrongType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		// Anything unexpected is still a 400 with a generic message so the
		// request never surfaces internal detail or an unhandled fault.
		h.log.Error(c.Request.Context(), "logout failed", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to log out"})
	}
}

// profilePictureURL resolves the stored avatar key to a presigned GET URL.
// Failures degrade to an absent picture rather than failing the profile read.
func (h *Handler) profilePictureURL(ctx context.Context, user *models.User) string {
	if !user.AvatarKey.Valid || user.AvatarKey.String == "" {
		return ""
	}
	url, err := h.avatars.GetPresignedGetURL(ctx, user.AvatarKey.String)
	if err != nil {
		h.log.Warn(ctx, "presigning avatar url failed", "error", err)
		return ""
	}
	return url
}

func (h *Handler) GetProfileHandler(c *gin.Context) {
	userID := c.GetString(ctxKeyUserID)

	user, err := h.accounts.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		h.log.Error(c.Request.Context(), "get profile failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user, h.profilePictureURL(c.Request.Context(), user)))
}

func (h *Handler) UpdateProfileHandler(c *gin.Context) {
	userID := c.GetString(ctxKeyUserID)

	var req ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.accounts.UpdateProfile(c.Request.Context(), userID, req.toPatch())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		h.log.Error(c.Request.Context(), "update profile failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user, h.profilePictureURL(c.Request.Context(), user)))
}

// AvatarUploadHandler returns a fresh storage key and a presigned PUT URL.
// The client uploads to the URL, then sets profile_picture to the key via a
// profile update.
func (h *Handler) AvatarUploadHandler(c *gin.Context) {
	userID := c.GetString(ctxKeyUserID)

	key, url, err := h.avatars.GetPresignedPutURL(c.Request.Context(), userID)
	if err != nil {
		h.log.Error(c.Request.Context(), "presigning avatar upload failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, AvatarUploadResponse{Key: key, UploadURL: url})
}
