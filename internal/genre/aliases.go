package genre

import "github.com/readnestapp/readnest-server/internal/domain"

// categoryAliases maps slug fragments of remote catalog categories to genres
// from the catalog in domain.BookGenres. Google Books categories come in
// forms like "Fiction / Science Fiction" or "Juvenile Fiction", so matching
// is on fragments rather than whole slugs.
var categoryAliases = map[string]string{
	"science-fiction": "Science Fiction",
	"sci-fi":          "Science Fiction",

	"fantasy": "Fantasy",

	"thriller":  "Krimi/Thriller",
	"thrillers": "Krimi/Thriller",
	"crime":     "Krimi/Thriller",
	"detective": "Krimi/Thriller",
	"krimi":     "Krimi/Thriller",

	"mystery": "Mystery",

	"romance":    "Romance",
	"love-story": "Romance",

	"historical": "Historisch",
	"history":    "Historisch",

	"biography":     "Biografie",
	"autobiography": "Biografie",
	"memoir":        "Biografie",

	"horror": "Horror",
	"ghost":  "Horror",

	"adventure": "Abenteuer",

	"classic":              "Klassiker",
	"classics":             "Klassiker",
	"literary-collections": "Klassiker",

	"juvenile":    "Young Adult",
	"young-adult": "Young Adult",

	"self-help":   "Sachbuch",
	"business":    "Sachbuch",
	"philosophy":  "Sachbuch",
	"psychology":  "Sachbuch",
	"nature":      "Sachbuch",
	"cooking":     "Sachbuch",
	"travel":      "Sachbuch",
	"education":   "Sachbuch",
	"reference":   "Sachbuch",
	"mathematics": "Sachbuch",
}

// Match resolves remote catalog categories to genres from the fixed catalog.
// The result is deduplicated and ordered as in domain.BookGenres.
func Match(categories []string) []string {
	matched := make(map[string]bool)

	for _, category := range categories {
		slug := Slugify(category)
		for fragment, genre := range categoryAliases {
			if containsFragment(slug, fragment) {
				matched[genre] = true
			}
		}
	}

	result := make([]string, 0, len(matched))
	for _, genre := range domain.BookGenres {
		if matched[genre] {
			result = append(result, genre)
		}
	}
	return result
}

// containsFragment reports whether slug contains fragment on hyphen
// boundaries. "science-fiction" contains "fiction" but "nonfiction" does not.
func containsFragment(slug, fragment string) bool {
	if slug == fragment {
		return true
	}
	if len(slug) <= len(fragment) {
		return false
	}
	for i := 0; i+len(fragment) <= len(slug); i++ {
		if slug[i:i+len(fragment)] != fragment {
			continue
		}
		startOK := i == 0 || slug[i-1] == '-'
		end := i + len(fragment)
		endOK := end == len(slug) || slug[end] == '-'
		if startOK && endOK {
			return true
		}
	}
	return false
}
