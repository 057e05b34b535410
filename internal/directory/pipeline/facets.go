package pipeline

import (
	"slices"

	"github.com/gartstein/directory/internal/directory/models"
)

// Facets returns the distinct values of field across records, sorted ascending.
// Callers pass the full record set so options stay complete while filters are active.
func Facets(records []models.Company, field models.FacetField) []string {
	seen := make(map[string]struct{}, len(records))
	values := make([]string, 0)
	for _, c := range records {
		v := facetValue(c, field)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	slices.Sort(values)
	return values
}

func facetValue(c models.Company, field models.FacetField) string {
	if field == models.FacetLocation {
		return c.Location
	}
	return c.Industry
}
