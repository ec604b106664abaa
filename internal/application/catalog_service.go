package application

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/cineview/backend/internal/domain/entity"
	repo "github.com/cineview/backend/internal/domain/repository"
	"github.com/cineview/backend/internal/infrastructure/tmdb"
)

// DefaultGenreID is used for recommendations when the user has no genre
// preference. 28 is the catalog's action genre.
const DefaultGenreID int64 = 28

// CatalogService combines the TMDB gateway with user preferences for the
// personalized endpoints. The passthrough endpoints go straight to the
// client.
type CatalogService struct {
	TMDB   *tmdb.Client
	Repo   repo.UserRepository
	Logger *logrus.Logger
}

func NewCatalogService(client *tmdb.Client, r repo.UserRepository, logger *logrus.Logger) *CatalogService {
	return &CatalogService{TMDB: client, Repo: r, Logger: logger}
}

// Recommended returns popular movies for the user's first preferred genre,
// falling back to DefaultGenreID when no preference is set. Only the first
// genre entry drives the query; the rest of the list is deliberately
// ignored.
func (s *CatalogService) Recommended(ctx context.Context, userID string) ([]tmdb.MovieSummary, error) {
	u, err := s.getUser("recommended", userID)
	if err != nil {
		return nil, err
	}
	genreID := DefaultGenreID
	if len(u.Genres) > 0 {
		genreID = u.Genres[0]
	}
	return s.TMDB.DiscoverByGenre(ctx, genreID)
}

// WatchlistDetails resolves every id on the user's watchlist to a full
// MovieDetail. Lookups run concurrently; the output keeps the watchlist's
// order and ids that fail upstream are silently dropped, so one broken id
// never fails the whole request.
func (s *CatalogService) WatchlistDetails(ctx context.Context, userID string) ([]tmdb.MovieDetail, error) {
	u, err := s.getUser("watchlist_details", userID)
	if err != nil {
		return nil, err
	}

	results := make([]*tmdb.MovieDetail, len(u.Watchlist))
	var wg sync.WaitGroup
	for i, movieID := range u.Watchlist {
		wg.Add(1)
		go func(i int, movieID int64) {
			defer wg.Done()
			d, dErr := s.TMDB.Details(ctx, movieID)
			if dErr != nil {
				if s.Logger != nil {
					s.Logger.WithError(dErr).WithFields(logrus.Fields{
						"user_id":  userID,
						"movie_id": movieID,
					}).Warn("watchlist lookup dropped")
				}
				return
			}
			results[i] = d
		}(i, movieID)
	}
	wg.Wait()

	out := make([]tmdb.MovieDetail, 0, len(results))
	for _, d := range results {
		if d != nil {
			out = append(out, *d)
		}
	}
	return out, nil
}

// getUser mirrors UserService.getUser: only a missing row becomes
// ErrUserNotFound, any other store failure is logged and passed through.
func (s *CatalogService) getUser(op, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		if s.Logger != nil {
			s.Logger.WithError(err).WithFields(logrus.Fields{"op": op, "user_id": userID}).Error("user store operation failed")
		}
		return nil, err
	}
	return u, nil
}
