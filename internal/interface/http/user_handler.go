package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cineview/backend/internal/application"
	"github.com/cineview/backend/internal/interface/middleware"
	"github.com/cineview/backend/pkg/response"
	"github.com/cineview/backend/pkg/validation"
)

type UserHandler struct {
	Svc     *application.UserService
	Catalog *application.CatalogService
	Logger  *logrus.Logger
}

func NewUserHandler(svc *application.UserService, catalog *application.CatalogService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Catalog: catalog, Logger: logger}
}

type updateProfileRequest struct {
	// Pointer distinguishes "absent" (keep current genres) from an explicit
	// list; a non-array value fails binding with a 400.
	Genres *[]int64 `json:"genres"`
}

type addWatchlistRequest struct {
	MovieID int64 `json:"movieId" binding:"required"`
}

type profileBody struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Genres   []int64 `json:"genres"`
}

// GetProfile handles GET /users/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Svc.GetProfile(uid)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Message(c, http.StatusNotFound, "user not found")
			return
		}
		h.Logger.WithError(err).WithFields(logrus.Fields{"op": "get_profile", "user_id": uid}).Error("profile fetch failed")
		response.Message(c, http.StatusInternalServerError, "server error")
		return
	}
	response.JSON(c, http.StatusOK, profileBody{
		Username: u.Username,
		Email:    u.Email,
		Genres:   genresOrEmpty(u.Genres),
	})
}

// UpdateProfile handles PUT /users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "genres must be an array of integers")
		return
	}
	u, err := h.Svc.UpdateGenres(c.Request.Context(), uid, req.Genres)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Message(c, http.StatusNotFound, "user not found")
			return
		}
		h.Logger.WithError(err).WithFields(logrus.Fields{"op": "update_profile", "user_id": uid}).Error("profile update failed")
		response.Message(c, http.StatusInternalServerError, "server error")
		return
	}
	response.JSON(c, http.StatusOK, profileBody{
		Username: u.Username,
		Email:    u.Email,
		Genres:   genresOrEmpty(u.Genres),
	})
}

// GetWatchlist handles GET /users/watchlist. Each saved id is resolved to a
// full detail record; ids the catalog cannot resolve are omitted.
func (h *UserHandler) GetWatchlist(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	movies, err := h.Catalog.WatchlistDetails(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Message(c, http.StatusNotFound, "user not found")
			return
		}
		h.Logger.WithError(err).WithFields(logrus.Fields{"op": "watchlist_details", "user_id": uid}).Error("watchlist fetch failed")
		response.Message(c, http.StatusInternalServerError, "server error")
		return
	}
	response.JSON(c, http.StatusOK, movies)
}

// AddToWatchlist handles POST /users/watchlist
func (h *UserHandler) AddToWatchlist(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req addWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, validation.FirstMessage(err))
		return
	}
	if _, err := h.Svc.AddToWatchlist(c.Request.Context(), uid, req.MovieID); err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Message(c, http.StatusNotFound, "user not found")
			return
		}
		h.Logger.WithError(err).WithFields(logrus.Fields{"op": "watchlist_add", "user_id": uid}).Error("watchlist add failed")
		response.Message(c, http.StatusInternalServerError, "server error")
		return
	}
	response.Message(c, http.StatusOK, "added to watchlist")
}

// RemoveFromWatchlist handles DELETE /users/watchlist/:movieId
func (h *UserHandler) RemoveFromWatchlist(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	movieID, err := strconv.ParseInt(c.Param("movieId"), 10, 64)
	if err != nil {
		response.Message(c, http.StatusBadRequest, "movieId must be an integer")
		return
	}
	if err := h.Svc.RemoveFromWatchlist(c.Request.Context(), uid, movieID); err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Message(c, http.StatusNotFound, "user not found")
			return
		}
		h.Logger.WithError(err).WithFields(logrus.Fields{"op": "watchlist_remove", "user_id": uid}).Error("watchlist remove failed")
		response.Message(c, http.StatusInternalServerError, "server error")
		return
	}
	response.Message(c, http.StatusOK, "removed from watchlist")
}

func genresOrEmpty(g []int64) []int64 {
	if g == nil {
		return []int64{}
	}
	return g
}
