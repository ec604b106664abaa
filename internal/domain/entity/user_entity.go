package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Password holds a bcrypt hash and is never serialized to callers.
// Genres is an ordered preference list (index 0 drives recommendations);
// Watchlist is kept duplicate-free by the application layer.
type User struct {
	ID        string
	Email     string
	Password  string
	Username  string
	Genres    []int64
	Watchlist []int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
