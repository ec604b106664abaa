package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cineview/backend/internal/application"
	"github.com/cineview/backend/internal/infrastructure/tmdb"
	"github.com/cineview/backend/internal/interface/middleware"
	"github.com/cineview/backend/pkg/response"
)

type MovieHandler struct {
	Catalog *application.CatalogService
	Logger  *logrus.Logger
}

func NewMovieHandler(catalog *application.CatalogService, logger *logrus.Logger) *MovieHandler {
	return &MovieHandler{Catalog: catalog, Logger: logger}
}

// Trending handles GET /movies/trending
func (h *MovieHandler) Trending(c *gin.Context) {
	movies, err := h.Catalog.TMDB.Trending(c.Request.Context())
	if err != nil {
		h.upstreamError(c, "trending", err)
		return
	}
	response.JSON(c, http.StatusOK, movies)
}

// TopRated handles GET /movies/top-rated
func (h *MovieHandler) TopRated(c *gin.Context) {
	movies, err := h.Catalog.TMDB.TopRated(c.Request.Context())
	if err != nil {
		h.upstreamError(c, "top_rated", err)
		return
	}
	response.JSON(c, http.StatusOK, movies)
}

// Search handles GET /movies/search?query=
func (h *MovieHandler) Search(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		response.Message(c, http.StatusBadRequest, "query parameter is required")
		return
	}
	movies, err := h.Catalog.TMDB.Search(c.Request.Context(), query)
	if err != nil {
		h.upstreamError(c, "search", err)
		return
	}
	response.JSON(c, http.StatusOK, movies)
}

// Details handles GET /movies/details/:id
func (h *MovieHandler) Details(c *gin.Context) {
	movieID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Message(c, http.StatusBadRequest, "id must be an integer")
		return
	}
	detail, err := h.Catalog.TMDB.Details(c.Request.Context(), movieID)
	if err != nil {
		h.upstreamError(c, "details", err)
		return
	}
	response.JSON(c, http.StatusOK, detail)
}

// Recommended handles GET /movies/recommended (bearer token required)
func (h *MovieHandler) Recommended(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	movies, err := h.Catalog.Recommended(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Message(c, http.StatusNotFound, "user not found")
			return
		}
		h.upstreamError(c, "recommended", err)
		return
	}
	response.JSON(c, http.StatusOK, movies)
}

// upstreamError maps a catalog failure to the caller: a known upstream
// status is propagated, anything else is a 500. The upstream body never is.
func (h *MovieHandler) upstreamError(c *gin.Context, op string, err error) {
	status := http.StatusInternalServerError
	var ue *tmdb.UpstreamError
	if errors.As(err, &ue) && ue.Status >= 400 && ue.Status <= 599 {
		status = ue.Status
	}
	h.Logger.WithError(err).WithField("op", op).Warn("catalog request failed")
	response.Message(c, status, "failed to fetch movies")
}
