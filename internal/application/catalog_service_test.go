package application

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cineview/backend/internal/domain/entity"
	"github.com/cineview/backend/internal/infrastructure/tmdb"
)

// stubCatalog serves the subset of the TMDB API the service touches.
// Movie ids listed in failIDs answer 404.
func stubCatalog(t *testing.T, failIDs ...int64) *httptest.Server {
	t.Helper()
	failing := map[int64]bool{}
	for _, id := range failIDs {
		failing[id] = true
	}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/discover/movie":
			genre, _ := strconv.ParseInt(r.URL.Query().Get("with_genres"), 10, 64)
			assert.Equal(t, "popularity.desc", r.URL.Query().Get("sort_by"))
			// Echo the genre back as the movie id so callers can assert on it
			_ = json.NewEncoder(w).Encode(map[string]any{
				"results": []map[string]any{{"id": genre, "title": "discover"}},
			})
		case strings.HasPrefix(r.URL.Path, "/movie/"):
			id, err := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/movie/"), 10, 64)
			require.NoError(t, err)
			if failing[id] {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id":    id,
				"title": "movie-" + strconv.FormatInt(id, 10),
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func newTestCatalogService(t *testing.T, srv *httptest.Server) (*CatalogService, *fakeUserRepo) {
	t.Helper()
	repo := newFakeUserRepo()
	client := tmdb.NewClient(srv.URL, "test-key", 5*time.Second, nil)
	return NewCatalogService(client, repo, nil), repo
}

func seedUser(t *testing.T, repo *fakeUserRepo, genres, watchlist []int64) string {
	t.Helper()
	u := &entity.User{
		Email:     "a@b.com",
		Password:  "hash",
		Username:  "al",
		Genres:    genres,
		Watchlist: watchlist,
	}
	require.NoError(t, repo.Create(u))
	return u.ID
}

func TestRecommendedUsesFirstGenre(t *testing.T) {
	srv := stubCatalog(t)
	defer srv.Close()
	svc, repo := newTestCatalogService(t, srv)

	uid := seedUser(t, repo, []int64{12, 35}, nil)

	movies, err := svc.Recommended(context.Background(), uid)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	// Only genres[0] drives the discover query
	assert.Equal(t, int64(12), movies[0].ID)
}

func TestRecommendedFallsBackToDefaultGenre(t *testing.T) {
	srv := stubCatalog(t)
	defer srv.Close()
	svc, repo := newTestCatalogService(t, srv)

	uid := seedUser(t, repo, nil, nil)

	movies, err := svc.Recommended(context.Background(), uid)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, DefaultGenreID, movies[0].ID)
}

func TestRecommendedUnknownUser(t *testing.T) {
	srv := stubCatalog(t)
	defer srv.Close()
	svc, _ := newTestCatalogService(t, srv)

	_, err := svc.Recommended(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCatalogStoreOutagePropagates(t *testing.T) {
	srv := stubCatalog(t)
	defer srv.Close()
	storeErr := errors.New("pg: connection refused")
	client := tmdb.NewClient(srv.URL, "test-key", 5*time.Second, nil)
	svc := NewCatalogService(client, &failingUserRepo{err: storeErr}, nil)
	ctx := context.Background()

	_, err := svc.Recommended(ctx, "some-id")
	assert.NotErrorIs(t, err, ErrUserNotFound)
	assert.ErrorIs(t, err, storeErr)

	_, err = svc.WatchlistDetails(ctx, "some-id")
	assert.NotErrorIs(t, err, ErrUserNotFound)
	assert.ErrorIs(t, err, storeErr)
}

func TestWatchlistDetailsKeepsOrder(t *testing.T) {
	srv := stubCatalog(t)
	defer srv.Close()
	svc, repo := newTestCatalogService(t, srv)

	uid := seedUser(t, repo, nil, []int64{9, 3, 7})

	movies, err := svc.WatchlistDetails(context.Background(), uid)
	require.NoError(t, err)
	require.Len(t, movies, 3)
	assert.Equal(t, int64(9), movies[0].ID)
	assert.Equal(t, int64(3), movies[1].ID)
	assert.Equal(t, int64(7), movies[2].ID)
}

func TestWatchlistDetailsDropsFailedLookups(t *testing.T) {
	srv := stubCatalog(t, 2)
	defer srv.Close()
	svc, repo := newTestCatalogService(t, srv)

	uid := seedUser(t, repo, nil, []int64{1, 2, 3})

	movies, err := svc.WatchlistDetails(context.Background(), uid)
	require.NoError(t, err)
	// Id 2 404s upstream: dropped, not fatal; order of the rest holds
	require.Len(t, movies, 2)
	assert.Equal(t, int64(1), movies[0].ID)
	assert.Equal(t, int64(3), movies[1].ID)
}

func TestWatchlistDetailsEmpty(t *testing.T) {
	srv := stubCatalog(t)
	defer srv.Close()
	svc, repo := newTestCatalogService(t, srv)

	uid := seedUser(t, repo, nil, nil)

	movies, err := svc.WatchlistDetails(context.Background(), uid)
	require.NoError(t, err)
	assert.Empty(t, movies)
}
