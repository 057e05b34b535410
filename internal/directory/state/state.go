// Package state holds the browse state of the directory and the reducer that
// moves it from one value to the next in response to user actions.
package state

import (
	"github.com/gartstein/directory/internal/directory/models"
)

// State is the complete, immutable browse state. It is passed by value.
type State struct {
	Filter   models.Filter
	Sort     models.Sort
	Page     int
	ViewMode models.ViewMode
}

// Default returns the state a directory starts with.
func Default() State {
	return State{
		Sort: models.Sort{
			Field:     models.SortByName,
			Direction: models.Ascending,
		},
		Page:     1,
		ViewMode: models.ViewTable,
	}
}

// Action is a user intent applied to a State by Reduce.
type Action interface {
	apply(State) State
}

// SetSearch replaces the free-text query.
type SetSearch struct{ Term string }

// SetIndustry selects an industry; empty clears the constraint.
type SetIndustry struct{ Industry string }

// SetLocation selects a location; empty clears the constraint.
type SetLocation struct{ Location string }

// SetSortField selects the sort key.
type SetSortField struct{ Field models.SortField }

// SetSortDirection selects the sort order.
type SetSortDirection struct{ Direction models.SortDirection }

// SetPage jumps to a page. Values below 1 become 1; the upper bound is
// enforced when the view is derived.
type SetPage struct{ Page int }

// NextPage advances one page.
type NextPage struct{}

// PrevPage goes back one page, stopping at 1.
type PrevPage struct{}

// SetViewMode switches between table and card presentation.
type SetViewMode struct{ Mode models.ViewMode }

// ToggleViewMode flips between table and card presentation.
type ToggleViewMode struct{}

// Reset restores filters and sort order to their defaults.
type Reset struct{}

// Reduce returns the state that results from applying a to s.
// A nil action returns s unchanged.
func Reduce(s State, a Action) State {
	if a == nil {
		return s
	}
	return a.apply(s)
}

func (a SetSearch) apply(s State) State {
	s.Filter.Search = a.Term
	s.Page = 1
	return s
}

func (a SetIndustry) apply(s State) State {
	s.Filter.Industry = a.Industry
	s.Page = 1
	return s
}

func (a SetLocation) apply(s State) State {
	s.Filter.Location = a.Location
	s.Page = 1
	return s
}

func (a SetSortField) apply(s State) State {
	s.Sort.Field = a.Field
	s.Page = 1
	return s
}

func (a SetSortDirection) apply(s State) State {
	s.Sort.Direction = a.Direction
	s.Page = 1
	return s
}

func (a SetPage) apply(s State) State {
	s.Page = max(a.Page, 1)
	return s
}

func (NextPage) apply(s State) State {
	s.Page++
	return s
}

func (PrevPage) apply(s State) State {
	s.Page = max(s.Page-1, 1)
	return s
}

func (a SetViewMode) apply(s State) State {
	s.ViewMode = a.Mode
	return s
}

func (ToggleViewMode) apply(s State) State {
	if s.ViewMode == models.ViewCard {
		s.ViewMode = models.ViewTable
	} else {
		s.ViewMode = models.ViewCard
	}
	return s
}

func (Reset) apply(s State) State {
	d := Default()
	d.ViewMode = s.ViewMode
	return d
}
