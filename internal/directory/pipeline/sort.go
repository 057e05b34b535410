package pipeline

import (
	"cmp"
	"slices"
	"strings"

	"github.com/gartstein/directory/internal/directory/models"
)

// Sort returns a stably ordered copy of records.
// Text fields compare lowercased, numeric fields compare numerically.
// Descending negates the same comparator, so equal keys keep their input
// order in both directions. Unknown fields sort by name.
func Sort(records []models.Company, s models.Sort) []models.Company {
	out := slices.Clone(records)
	compare := comparator(s.Field)
	if s.Direction == models.Descending {
		asc := compare
		compare = func(a, b models.Company) int { return -asc(a, b) }
	}
	slices.SortStableFunc(out, compare)
	return out
}

func comparator(field models.SortField) func(a, b models.Company) int {
	switch field {
	case models.SortByIndustry:
		return textKey(func(c models.Company) string { return c.Industry })
	case models.SortByLocation:
		return textKey(func(c models.Company) string { return c.Location })
	case models.SortByEmployees:
		return func(a, b models.Company) int { return cmp.Compare(a.Employees, b.Employees) }
	case models.SortByFounded:
		return func(a, b models.Company) int { return cmp.Compare(a.Founded, b.Founded) }
	default:
		return textKey(func(c models.Company) string { return c.Name })
	}
}

func textKey(key func(models.Company) string) func(a, b models.Company) int {
	return func(a, b models.Company) int {
		return strings.Compare(strings.ToLower(key(a)), strings.ToLower(key(b)))
	}
}
