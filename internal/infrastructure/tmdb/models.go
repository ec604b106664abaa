package tmdb

// MovieSummary is the normalized list-item shape returned by list endpoints
// (trending, top rated, search, discover).
type MovieSummary struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date"`
	GenreIDs     []int64 `json:"genre_ids"`
	Popularity   float64 `json:"popularity"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int64   `json:"vote_count"`
}

// Genre is a catalog genre reference as embedded in MovieDetail.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Video is trailer/teaser metadata attached to a MovieDetail.
type Video struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// MovieDetail is the normalized single-movie shape, including the videos
// appended by the details call.
type MovieDetail struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date"`
	Runtime      int     `json:"runtime"`
	Genres       []Genre `json:"genres"`
	Popularity   float64 `json:"popularity"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int64   `json:"vote_count"`
	Videos       struct {
		Results []Video `json:"results"`
	} `json:"videos"`
}

type listResponse struct {
	Results []MovieSummary `json:"results"`
}
