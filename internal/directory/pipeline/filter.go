// Package pipeline implements the pure filter, sort, paginate and facet
// stages that turn the fetched record set into the view shown to the user.
// No function in this package mutates its input slice.
package pipeline

import (
	"strings"

	"github.com/gartstein/directory/internal/directory/models"
)

// Filter returns the records that satisfy every non-empty constraint in f.
// The search term matches name or description as a case-insensitive substring;
// industry and location must match exactly.
func Filter(records []models.Company, f models.Filter) []models.Company {
	out := make([]models.Company, 0, len(records))
	term := strings.ToLower(f.Search)
	for _, c := range records {
		if matches(c, term, f.Industry, f.Location) {
			out = append(out, c)
		}
	}
	return out
}

func matches(c models.Company, term, industry, location string) bool {
	if term != "" &&
		!strings.Contains(strings.ToLower(c.Name), term) &&
		!strings.Contains(strings.ToLower(c.Description), term) {
		return false
	}
	if industry != "" && c.Industry != industry {
		return false
	}
	if location != "" && c.Location != location {
		return false
	}
	return true
}
