package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/tourbook/tourbook-api/internal/interface/http"
)

// AuthModule registers the public account routes. Limiter, when set, is the
// per-IP rate limit applied to every public endpoint.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Limiter gin.HandlerFunc
}

func NewAuthModule(h *handlers.AuthHandler, limiter gin.HandlerFunc) *AuthModule {
	return &AuthModule{Handler: h, Limiter: limiter}
}

func (m *AuthModule) Mount(rg *gin.RouterGroup) {
	g := rg.Group("/auth")
	if m.Limiter != nil {
		g.Use(m.Limiter)
	}
	g.POST("/register", m.Handler.Register)
	g.POST("/login", m.Handler.Login)
	g.GET("/verify-email", m.Handler.VerifyEmail)
	g.POST("/forgot-password", m.Handler.ForgotPassword)
	g.POST("/reset-password", m.Handler.ResetPassword)
}
