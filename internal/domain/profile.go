package domain

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// BookGenres is the fixed catalog of genre preferences a user can pick.
var BookGenres = []string{
	"Fantasy",
	"Science Fiction",
	"Krimi/Thriller",
	"Romance",
	"Historisch",
	"Biografie",
	"Sachbuch",
	"Horror",
	"Abenteuer",
	"Klassiker",
	"Young Adult",
	"Mystery",
}

// IsKnownGenre reports whether genre is part of the fixed catalog.
func IsKnownGenre(genre string) bool {
	for _, g := range BookGenres {
		if g == genre {
			return true
		}
	}
	return false
}

// UserProfile is the per-user profile document. Created lazily on first
// access with a randomly generated username.
type UserProfile struct {
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	Status       string    `json:"status,omitempty"`
	ProfileImage string    `json:"profile_image,omitempty"`
	Genres       []string  `json:"genres"`
}

var usernameAdjectives = []string{
	"Clever", "Magic", "Brave", "Swift", "Wise", "Lucky", "Happy", "Bright",
	"Cool", "Wild", "Free", "Bold", "Calm", "Pure", "Strong", "Quick",
}

var usernameNouns = []string{
	"Reader", "Dreamer", "Explorer", "Writer", "Thinker", "Seeker", "Hunter",
	"Walker", "Runner", "Climber", "Finder", "Creator", "Builder", "Maker",
}

// RandomUsername builds a display name like "CleverReader042".
func RandomUsername() string {
	adjective := usernameAdjectives[rand.IntN(len(usernameAdjectives))]
	noun := usernameNouns[rand.IntN(len(usernameNouns))]
	return fmt.Sprintf("%s%s%d", adjective, noun, rand.IntN(1000))
}
