package domain

import (
	"strings"
	"time"
)

// ShelfKind discriminates standard shelves from user-created ones.
// It is derived from the shelf ID and never stored.
type ShelfKind string

const (
	// ShelfKindStandard marks one of the fixed system shelves.
	ShelfKindStandard ShelfKind = "standard"
	// ShelfKindCustom marks a user-created shelf.
	ShelfKindCustom ShelfKind = "custom"
)

// Standard shelf IDs. These shelves exist implicitly for every user and
// cannot be created, renamed, or deleted. A book occupies at most one of
// them at any time.
const (
	ShelfCompleted = "completed"
	ShelfReading   = "reading"
	ShelfWishlist  = "wishlist"
)

// Shelf is a named book collection belonging to one user.
// Standard shelves carry fixed metadata; custom shelves are fully editable.
type Shelf struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color"`
	IsPrivate bool      `json:"is_private"`
}

// StandardShelves is the fixed set of system shelves, in display order.
// Present for every user with no explicit creation step.
var StandardShelves = []Shelf{
	{ID: ShelfCompleted, Title: "Durchgelesen", Icon: "checkmark-circle-outline", Color: "#4CAF50"},
	{ID: ShelfReading, Title: "Aktuell dabei", Icon: "book-outline", Color: "#2196F3"},
	{ID: ShelfWishlist, Title: "Leseliste", Icon: "bookmark-outline", Color: "#FF9800"},
}

// IsStandardShelf reports whether id names one of the fixed system shelves.
func IsStandardShelf(id string) bool {
	switch id {
	case ShelfCompleted, ShelfReading, ShelfWishlist:
		return true
	}
	return false
}

// StandardShelfByID returns the standard shelf with the given id.
func StandardShelfByID(id string) (Shelf, bool) {
	for _, s := range StandardShelves {
		if s.ID == id {
			return s, true
		}
	}
	return Shelf{}, false
}

// Kind returns the derived shelf kind.
func (s *Shelf) Kind() ShelfKind {
	if IsStandardShelf(s.ID) {
		return ShelfKindStandard
	}
	return ShelfKindCustom
}

// NormalizeTitle prepares a shelf title for comparison: surrounding
// whitespace is trimmed and ASCII case is folded. No Unicode
// normalization is applied.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// TitleReserved reports whether title collides (case-insensitively) with a
// standard shelf title.
func TitleReserved(title string) bool {
	normalized := NormalizeTitle(title)
	for _, s := range StandardShelves {
		if NormalizeTitle(s.Title) == normalized {
			return true
		}
	}
	return false
}

// ShelfBook is one membership entry: a book placed in a shelf, with the
// display fields copied from the catalog at the time of addition.
type ShelfBook struct {
	AddedAt    time.Time  `json:"added_at"`
	BookID     string     `json:"book_id"`
	Title      string     `json:"title"`
	Authors    []string   `json:"authors"`
	ImageLinks ImageLinks `json:"image_links"`
	IsPrivate  bool       `json:"is_private"` // inherited from the shelf at addition time
}

// MovedFromShelf identifies the standard shelf a book was displaced from
// during an exclusive add.
type MovedFromShelf struct {
	ShelfID    string `json:"shelf_id"`
	ShelfTitle string `json:"shelf_title"`
}

// MoveResult describes the outcome of adding a book to a shelf.
// MovedFrom is nil for a plain add and set when the add displaced the book
// from another standard shelf.
type MoveResult struct {
	MovedFrom *MovedFromShelf `json:"moved_from,omitempty"`
}
