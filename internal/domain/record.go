package domain

import "time"

// UserRecord is the per-user library document: custom shelf definitions
// plus every shelf's membership list. It is read and rewritten as a whole
// inside a single store transaction, which is what makes a standard-shelf
// move atomic.
type UserRecord struct {
	UpdatedAt     time.Time              `json:"updated_at"`
	CustomShelves []Shelf                `json:"custom_shelves"`
	ShelfBooks    map[string][]ShelfBook `json:"shelf_books"`
}

// NewUserRecord returns an empty record. Standard shelves are implicit and
// need no entry until a book is added.
func NewUserRecord() *UserRecord {
	return &UserRecord{
		CustomShelves: []Shelf{},
		ShelfBooks:    map[string][]ShelfBook{},
	}
}

// Shelves returns every shelf visible to the user: the standard shelves in
// display order followed by custom shelves in creation order.
func (r *UserRecord) Shelves() []Shelf {
	out := make([]Shelf, 0, len(StandardShelves)+len(r.CustomShelves))
	out = append(out, StandardShelves...)
	out = append(out, r.CustomShelves...)
	return out
}

// ShelfByID looks a shelf up by ID, standard or custom.
func (r *UserRecord) ShelfByID(id string) (Shelf, bool) {
	if s, ok := StandardShelfByID(id); ok {
		return s, true
	}
	for _, s := range r.CustomShelves {
		if s.ID == id {
			return s, true
		}
	}
	return Shelf{}, false
}

// CustomShelfIndex returns the index of the custom shelf with the given ID,
// or -1.
func (r *UserRecord) CustomShelfIndex(id string) int {
	for i, s := range r.CustomShelves {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// HasCustomTitle reports whether any custom shelf other than excludeID
// already uses the given title, compared case-insensitively.
func (r *UserRecord) HasCustomTitle(title, excludeID string) bool {
	normalized := NormalizeTitle(title)
	for _, s := range r.CustomShelves {
		if s.ID == excludeID {
			continue
		}
		if NormalizeTitle(s.Title) == normalized {
			return true
		}
	}
	return false
}

// Books returns the membership list for a shelf, oldest first.
func (r *UserRecord) Books(shelfID string) []ShelfBook {
	return r.ShelfBooks[shelfID]
}

// ContainsBook reports whether the shelf already holds the book.
func (r *UserRecord) ContainsBook(shelfID, bookID string) bool {
	for _, b := range r.ShelfBooks[shelfID] {
		if b.BookID == bookID {
			return true
		}
	}
	return false
}

// StandardShelfContaining returns the ID of the standard shelf currently
// holding the book, or "" when the book is in none of them. At most one
// standard shelf can hold a given book.
func (r *UserRecord) StandardShelfContaining(bookID string) string {
	for _, s := range StandardShelves {
		if r.ContainsBook(s.ID, bookID) {
			return s.ID
		}
	}
	return ""
}

// AppendBook adds a membership entry at the end of the shelf's list,
// preserving oldest-first order.
func (r *UserRecord) AppendBook(shelfID string, book ShelfBook) {
	if r.ShelfBooks == nil {
		r.ShelfBooks = map[string][]ShelfBook{}
	}
	r.ShelfBooks[shelfID] = append(r.ShelfBooks[shelfID], book)
}

// RemoveBook deletes the book's entry from the shelf, reporting whether an
// entry was present.
func (r *UserRecord) RemoveBook(shelfID, bookID string) bool {
	books := r.ShelfBooks[shelfID]
	for i, b := range books {
		if b.BookID == bookID {
			r.ShelfBooks[shelfID] = append(books[:i:i], books[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveCustomShelf deletes the custom shelf definition and its membership
// list, reporting whether the shelf existed.
func (r *UserRecord) RemoveCustomShelf(id string) bool {
	idx := r.CustomShelfIndex(id)
	if idx < 0 {
		return false
	}
	r.CustomShelves = append(r.CustomShelves[:idx:idx], r.CustomShelves[idx+1:]...)
	delete(r.ShelfBooks, id)
	return true
}
