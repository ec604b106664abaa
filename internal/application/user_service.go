package application

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/cineview/backend/internal/domain/entity"
	repo "github.com/cineview/backend/internal/domain/repository"
	"github.com/cineview/backend/pkg/helpers"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// login responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = repo.ErrEmailTaken
)

// UserService owns registration, login, and per-user preferences (genres
// and watchlist).
//
// Preference mutations are read-modify-write against the store without a
// per-user lock; two concurrent mutations on the same user can lose an
// update. Accepted at this product's scale.
type UserService struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Redis  *redis.Client
	Logger *logrus.Logger
}

func NewUserService(r repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger) *UserService {
	return &UserService{Repo: r, JWT: jwt, Redis: rdb, Logger: logger}
}

// AuthResult is what register/login hand back to the HTTP layer.
type AuthResult struct {
	Token       string
	TokenExpiry time.Time
	User        *entity.User
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

// Register creates an account and issues a token for it. A duplicate email
// fails with ErrEmailTaken and leaves the existing account untouched.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Email:     email,
		Password:  hash,
		Username:  username,
		Genres:    []int64{},
		Watchlist: []int64{},
	}
	if err := s.Repo.Create(u); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		s.logStoreError("register", err, nil)
		return nil, err
	}
	s.logInfo("user registered", logrus.Fields{"user_id": u.ID})
	return s.issueToken(ctx, u)
}

// Login validates credentials and issues a token. The caller receives the
// same error whether the email is unknown or the password is wrong; the
// distinction stays in the logs. A store failure is neither: it propagates
// so the boundary reports a server error, not bad credentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.Repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.logInfo("login failed: unknown email", nil)
			return nil, ErrInvalidCredentials
		}
		s.logStoreError("login", err, nil)
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		s.logInfo("login failed: password mismatch", logrus.Fields{"user_id": u.ID})
		return nil, ErrInvalidCredentials
	}
	s.logInfo("user logged in", logrus.Fields{"user_id": u.ID})
	return s.issueToken(ctx, u)
}

func (s *UserService) issueToken(ctx context.Context, u *entity.User) (*AuthResult, error) {
	token, exp, err := s.JWT.GenerateToken(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		}
		return nil, err
	}

	// Best-effort session record; auth never reads it, so redis being down
	// degrades to a warning.
	if s.Redis != nil {
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"username":   u.Username,
			"created_at": time.Now().UTC().Format(time.RFC3339Nano),
		})
		pipe.Expire(ctx, key, s.JWT.TTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return &AuthResult{Token: token, TokenExpiry: exp, User: u}, nil
}

// getUser resolves a verified identity to its record. A missing row maps to
// ErrUserNotFound; any other store failure is logged with context and
// propagated as-is so handlers report it as a server error.
func (s *UserService) getUser(op, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		s.logStoreError(op, err, logrus.Fields{"user_id": userID})
		return nil, err
	}
	return u, nil
}

// GetProfile returns the user backing a verified identity.
func (s *UserService) GetProfile(userID string) (*entity.User, error) {
	return s.getUser("get_profile", userID)
}

// UpdateGenres replaces the user's genre preference list. A nil pointer
// means the field was absent from the request and existing genres are kept;
// that is an explicit no-op, not an error.
func (s *UserService) UpdateGenres(ctx context.Context, userID string, genres *[]int64) (*entity.User, error) {
	u, err := s.getUser("update_genres", userID)
	if err != nil {
		return nil, err
	}
	if genres == nil {
		return u, nil
	}
	u.Genres = *genres
	if err := s.Repo.Update(u); err != nil {
		s.logStoreError("update_genres", err, logrus.Fields{"user_id": u.ID})
		return nil, err
	}
	s.logInfo("genres updated", logrus.Fields{"user_id": u.ID, "genres": u.Genres})
	return u, nil
}

// GetWatchlist returns the user's saved movie ids.
func (s *UserService) GetWatchlist(userID string) ([]int64, error) {
	u, err := s.getUser("get_watchlist", userID)
	if err != nil {
		return nil, err
	}
	return u.Watchlist, nil
}

// AddToWatchlist appends movieID unless already present. Re-adding an id is
// a successful no-op; the watchlist never holds duplicates.
func (s *UserService) AddToWatchlist(ctx context.Context, userID string, movieID int64) ([]int64, error) {
	u, err := s.getUser("watchlist_add", userID)
	if err != nil {
		return nil, err
	}
	for _, id := range u.Watchlist {
		if id == movieID {
			return u.Watchlist, nil
		}
	}
	u.Watchlist = append(u.Watchlist, movieID)
	if err := s.Repo.Update(u); err != nil {
		s.logStoreError("watchlist_add", err, logrus.Fields{"user_id": u.ID, "movie_id": movieID})
		return nil, err
	}
	s.logInfo("watchlist add", logrus.Fields{"user_id": u.ID, "movie_id": movieID})
	return u.Watchlist, nil
}

// RemoveFromWatchlist drops movieID from the watchlist. Removing an absent
// id is a successful no-op.
func (s *UserService) RemoveFromWatchlist(ctx context.Context, userID string, movieID int64) error {
	u, err := s.getUser("watchlist_remove", userID)
	if err != nil {
		return err
	}
	kept := make([]int64, 0, len(u.Watchlist))
	found := false
	for _, id := range u.Watchlist {
		if id == movieID {
			found = true
			continue
		}
		kept = append(kept, id)
	}
	if !found {
		return nil
	}
	u.Watchlist = kept
	if err := s.Repo.Update(u); err != nil {
		s.logStoreError("watchlist_remove", err, logrus.Fields{"user_id": u.ID, "movie_id": movieID})
		return err
	}
	s.logInfo("watchlist remove", logrus.Fields{"user_id": u.ID, "movie_id": movieID})
	return nil
}

func (s *UserService) logInfo(msg string, fields logrus.Fields) {
	if s.Logger == nil {
		return
	}
	if fields == nil {
		fields = logrus.Fields{}
	}
	s.Logger.WithFields(fields).Info(msg)
}

func (s *UserService) logStoreError(op string, err error, fields logrus.Fields) {
	if s.Logger == nil {
		return
	}
	if fields == nil {
		fields = logrus.Fields{}
	}
	fields["op"] = op
	s.Logger.WithError(err).WithFields(fields).Error("user store operation failed")
}
