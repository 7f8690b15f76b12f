// Package catalog derives the visible subset of the community catalog.
//
// Everything here is a pure function of its inputs. The handlers fetch the
// listing from the backend once per request and then call Filter and
// Cities; nothing in this package performs I/O or keeps state.
package catalog

import (
	"strings"

	"github.com/boraler/boraler-web/internal/types"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// AllCities is the city option meaning "no city filter".
const AllCities = "all"

// Criteria groups what the user selected in the search and filter bars.
type Criteria struct {
	Query      string
	Objectives []types.Objective
	City       string
}

// Normalize returns c with the "all cities" option mapped to no city.
func (c Criteria) Normalize() Criteria {
	if c.City == AllCities {
		c.City = ""
	}
	return c
}

// Active reports whether an objective or city filter is selected.
// The free-text query does not count.
func (c Criteria) Active() bool {
	c = c.Normalize()
	return len(c.Objectives) > 0 || c.City != ""
}

// CityKey returns the composite "<city>-<state>" key of the book's owner.
func CityKey(b types.Book) string {
	return b.UserCity + "-" + b.UserState
}

// Filter returns the books matching every criterion, preserving the input
// order:
//   - an empty query matches everything; otherwise the query must occur,
//     ignoring case, in the title, genre, author or owner name;
//   - an empty objective list matches everything; otherwise the book must
//     share at least one objective with it;
//   - an empty city matches everything; otherwise CityKey must equal it.
func Filter(books []types.Book, query string, objectives []types.Objective, city string) []types.Book {
	// A Caser is stateful; one per call keeps Filter safe to run from
	// concurrent requests.
	lower := cases.Lower(language.Und)
	q := lower.String(query)

	out := make([]types.Book, 0, len(books))
	for _, b := range books {
		if !matchesQuery(lower, b, q) {
			continue
		}
		if !matchesObjectives(b, objectives) {
			continue
		}
		if city != "" && CityKey(b) != city {
			continue
		}
		out = append(out, b)
	}
	return out
}

// Apply runs Filter with the normalized criteria.
func Apply(books []types.Book, c Criteria) []types.Book {
	c = c.Normalize()
	return Filter(books, c.Query, c.Objectives, c.City)
}

func matchesQuery(lower cases.Caser, b types.Book, q string) bool {
	if q == "" {
		return true
	}
	for _, field := range []string{b.Title, b.Genre, b.Author, b.UserName} {
		if strings.Contains(lower.String(field), q) {
			return true
		}
	}
	return false
}

func matchesObjectives(b types.Book, want []types.Objective) bool {
	if len(want) == 0 {
		return true
	}
	for _, o := range want {
		if b.HasObjective(o) {
			return true
		}
	}
	return false
}

// Cities returns the distinct city keys of books whose owner has a city,
// in the order they first appear.
func Cities(books []types.Book) []string {
	seen := make(map[string]struct{}, len(books))
	cities := make([]string, 0)
	for _, b := range books {
		if b.UserCity == "" {
			continue
		}
		key := CityKey(b)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		cities = append(cities, key)
	}
	return cities
}

// Contains reports whether key is one of cities.
func Contains(cities []string, key string) bool {
	for _, c := range cities {
		if c == key {
			return true
		}
	}
	return false
}

// PublicView hides the owner's phone and e-mail when the owner explicitly
// declined to share contact details.
func PublicView(b types.Book) types.Book {
	if b.UserPublicContact != nil && !*b.UserPublicContact {
		b.UserPhone = ""
		b.UserEmail = ""
	}
	return b
}
