// Package models defines the core domain models of the company directory.
// It includes the Company record and the value types that describe how a
// record set is filtered, sorted and presented.
package models

import (
	"fmt"
	"strings"
)

// PageSize is the fixed number of companies shown per page.
const PageSize = 10

// CompanyID uniquely identifies a company within one fetch result.
// Upstream sources send either JSON strings or numbers; both are kept as text.
type CompanyID string

// Company defines the domain model for a directory entry.
type Company struct {
	// ID is the unique identifier for the company.
	ID CompanyID `json:"id"`
	// Name is the company’s display name.
	Name string `json:"name"`
	// Description provides details about the company.
	Description string `json:"description"`
	// Industry is the category used for filtering and facets.
	Industry string `json:"industry"`
	// Location is the category used for filtering and facets.
	Location string `json:"location"`
	// Employees is the number of employees in the company.
	Employees int `json:"employees"`
	// Founded is the year the company was founded.
	Founded int `json:"founded"`
}

// SortField names the Company attribute used as the sort key.
type SortField string

const (
	SortByName      SortField = "name"
	SortByIndustry  SortField = "industry"
	SortByLocation  SortField = "location"
	SortByEmployees SortField = "employees"
	SortByFounded   SortField = "founded"
)

// SortFields lists the selectable sort fields in display order.
func SortFields() []SortField {
	return []SortField{SortByName, SortByIndustry, SortByLocation, SortByEmployees, SortByFounded}
}

// ParseSortField converts user input into a SortField.
func ParseSortField(s string) (SortField, error) {
	f := SortField(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range SortFields() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown sort field %q", s)
}

// Numeric reports whether the field is compared numerically.
func (f SortField) Numeric() bool {
	return f == SortByEmployees || f == SortByFounded
}

// Label returns the human readable name of the field.
func (f SortField) Label() string {
	switch f {
	case SortByIndustry:
		return "Industry"
	case SortByLocation:
		return "Location"
	case SortByEmployees:
		return "Employees"
	case SortByFounded:
		return "Founded Year"
	default:
		return "Name"
	}
}

// SortDirection is the order applied to the sort comparator.
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// ParseSortDirection converts user input into a SortDirection.
func ParseSortDirection(s string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return "", fmt.Errorf("unknown sort direction %q", s)
	}
}

// Label returns the human readable name of the direction.
func (d SortDirection) Label() string {
	if d == Descending {
		return "Descending"
	}
	return "Ascending"
}

// Filter holds the free-text query and the category constraints.
// Empty fields impose no constraint.
type Filter struct {
	Search   string
	Industry string
	Location string
}

// IsEmpty reports whether the filter keeps every record.
func (f Filter) IsEmpty() bool {
	return f.Search == "" && f.Industry == "" && f.Location == ""
}

// Sort selects the sort key and direction.
type Sort struct {
	Field     SortField
	Direction SortDirection
}

// FacetField names a categorical Company attribute offered as filter options.
type FacetField string

const (
	FacetIndustry FacetField = "industry"
	FacetLocation FacetField = "location"
)

// ViewMode selects how a page of companies is presented.
type ViewMode string

const (
	ViewTable ViewMode = "table"
	ViewCard  ViewMode = "card"
)

// ParseViewMode converts user input into a ViewMode.
func ParseViewMode(s string) (ViewMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "table":
		return ViewTable, nil
	case "card", "cards":
		return ViewCard, nil
	default:
		return "", fmt.Errorf("unknown view mode %q", s)
	}
}
