package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/cineview/backend/internal/interface/http"
	"github.com/cineview/backend/internal/interface/middleware"
	"github.com/cineview/backend/pkg/helpers"
)

// MovieModule wires the catalog passthrough routes. Everything is public
// except /movies/recommended, which needs the caller's genre preference.

type MovieModule struct {
	Handler *handlers.MovieHandler
	JWT     *helpers.JWTManager
}

func NewMovieModule(h *handlers.MovieHandler, jwt *helpers.JWTManager) *MovieModule {
	return &MovieModule{Handler: h, JWT: jwt}
}

func (m *MovieModule) Register(rg *gin.RouterGroup) {
	movies := rg.Group("/movies")
	{
		movies.GET("/trending", m.Handler.Trending)
		movies.GET("/top-rated", m.Handler.TopRated)
		movies.GET("/search", m.Handler.Search)
		movies.GET("/details/:id", m.Handler.Details)
		movies.GET("/recommended", middleware.JWTAuth(m.JWT), m.Handler.Recommended)
	}
}
