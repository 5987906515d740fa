package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/booktracker-app/server/internal/logging"
)

// requestLogger logs one line per completed request.
func requestLogger(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// NewRouter wires the account endpoints. Paths are registered with the
// trailing slash they are documented with; gin's default trailing-slash
// redirect covers the slashless variants.
func NewRouter(h *Handler, log logging.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))

	g := r.Group("/auth")
	g.POST("/login/", h.LoginHandler)
	g.POST("/refresh/", h.RefreshHandler)
	g.POST("/verify/", h.VerifyHandler)
	g.POST("/register/", h.RegisterHandler)

	authed := g.Group("", h.AuthMiddleware())
	authed.GET("/profile/", h.GetProfileHandler)
	authed.PUT("/profile/", h.UpdateProfileHandler)
	authed.PATCH("/profile/", h.UpdateProfileHandler)
	authed.POST("/profile/avatar/", h.AvatarUploadHandler)
	authed.POST("/logout/", h.LogoutHandler)

	return r
}
