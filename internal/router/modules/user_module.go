package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/tourbook/tourbook-api/internal/domain/entity"
	repo "github.com/tourbook/tourbook-api/internal/domain/repository"
	handlers "github.com/tourbook/tourbook-api/internal/interface/http"
	"github.com/tourbook/tourbook-api/internal/interface/middleware"
	"github.com/tourbook/tourbook-api/pkg/helpers"
)

// UserModule registers the authenticated account routes behind the bearer
// token middleware.
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
	Users   repo.UserRepository
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager, users repo.UserRepository) *UserModule {
	return &UserModule{Handler: h, JWT: jwt, Users: users}
}

func (m *UserModule) Mount(rg *gin.RouterGroup) {
	g := rg.Group("/auth")
	g.Use(middleware.Auth(m.JWT, m.Users))

	g.GET("/me", m.Handler.Me)
	g.PATCH("/update-profile", m.Handler.UpdateProfile)
	g.PATCH("/update-password", m.Handler.UpdatePassword)
	g.GET("/users/search", middleware.RequireRole(entity.RoleAdmin), m.Handler.SearchUsers)
}
