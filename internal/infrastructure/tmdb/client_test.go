package tmdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(srv.URL, "test-key", 5*time.Second, nil)
}

func TestTrending(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/trending/movie/week", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"id": 603, "title": "The Matrix", "vote_average": 8.2},
			},
		})
	}))
	defer srv.Close()

	movies, err := newTestClient(srv).Trending(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, int64(603), movies[0].ID)
	assert.Equal(t, "The Matrix", movies[0].Title)
	assert.InDelta(t, 8.2, movies[0].VoteAverage, 0.001)
}

func TestSearchEncodesQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/movie", r.URL.Path)
		assert.Equal(t, "blade runner", r.URL.Query().Get("query"))
		_ = json.NewEncoder(w).Encode(map[string]any{"results": []map[string]any{}})
	}))
	defer srv.Close()

	movies, err := newTestClient(srv).Search(context.Background(), "blade runner")
	require.NoError(t, err)
	assert.Empty(t, movies)
	assert.NotNil(t, movies)
}

func TestDetailsAppendsVideos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/603", r.URL.Path)
		assert.Equal(t, "videos", r.URL.Query().Get("append_to_response"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      603,
			"title":   "The Matrix",
			"runtime": 136,
			"genres":  []map[string]any{{"id": 28, "name": "Action"}},
			"videos": map[string]any{
				"results": []map[string]any{
					{"id": "v1", "key": "abc", "site": "YouTube", "type": "Trailer"},
				},
			},
		})
	}))
	defer srv.Close()

	detail, err := newTestClient(srv).Details(context.Background(), 603)
	require.NoError(t, err)
	assert.Equal(t, int64(603), detail.ID)
	assert.Equal(t, 136, detail.Runtime)
	require.Len(t, detail.Videos.Results, 1)
	assert.Equal(t, "abc", detail.Videos.Results[0].Key)
}

func TestUpstreamStatusNormalized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status_message":"The resource you requested could not be found."}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Details(context.Background(), 999)
	require.Error(t, err)

	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, http.StatusNotFound, ue.Status)
	// Upstream body shape must not leak through
	assert.NotContains(t, ue.Message, "resource you requested")
}

func TestNetworkFailureNormalized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	_, err := newTestClient(srv).Trending(context.Background())
	require.Error(t, err)

	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, http.StatusBadGateway, ue.Status)
}

func TestTimeoutNormalized(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer func() {
		close(block)
		srv.Close()
	}()

	client := NewClient(srv.URL, "test-key", 50*time.Millisecond, nil)
	_, err := client.TopRated(context.Background())
	require.Error(t, err)

	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, http.StatusBadGateway, ue.Status)
}

func TestMalformedBodyNormalized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Trending(context.Background())
	require.Error(t, err)

	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, http.StatusBadGateway, ue.Status)
}
