package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/cineview/backend/internal/interface/http"
	"github.com/cineview/backend/internal/interface/middleware"
	"github.com/cineview/backend/pkg/helpers"
)

// UserModule wires the bearer-protected profile and watchlist routes:
// GET/PUT /users/profile, GET/POST /users/watchlist,
// DELETE /users/watchlist/:movieId

type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(middleware.JWTAuth(m.JWT))
	{
		users.GET("/profile", m.Handler.GetProfile)
		users.PUT("/profile", m.Handler.UpdateProfile)
		users.GET("/watchlist", m.Handler.GetWatchlist)
		users.POST("/watchlist", m.Handler.AddToWatchlist)
		users.DELETE("/watchlist/:movieId", m.Handler.RemoveFromWatchlist)
	}
}
