package main

import (
	"fmt"

	"github.com/gartstein/directory/internal/directory/controller"
	e "github.com/gartstein/directory/internal/directory/errors"
	"github.com/gartstein/directory/internal/directory/models"
	"github.com/gartstein/directory/internal/directory/render"
	"github.com/gartstein/directory/internal/directory/state"
	"github.com/spf13/cobra"
)

// browseFlags are the state-selecting flags shared by list and browse.
type browseFlags struct {
	search   string
	industry string
	location string
	sort     string
	order    string
	page     int
	view     string
}

func (f *browseFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "case-insensitive match on name or description")
	cmd.Flags().StringVar(&f.industry, "industry", "", "exact industry to keep")
	cmd.Flags().StringVar(&f.location, "location", "", "exact location to keep")
	cmd.Flags().StringVar(&f.sort, "sort", string(models.SortByName), "sort field: name, industry, location, employees, founded")
	cmd.Flags().StringVar(&f.order, "order", string(models.Ascending), "sort order: asc or desc")
	cmd.Flags().IntVarP(&f.page, "page", "p", 1, "page number")
	cmd.Flags().StringVar(&f.view, "view", "", "table or card (defaults to view.mode)")
}

// state turns the flags into an initial browse state.
func (f *browseFlags) state(defaultView models.ViewMode) (state.State, error) {
	field, err := models.ParseSortField(f.sort)
	if err != nil {
		return state.State{}, fmt.Errorf("%w: %v", e.ErrInvalidInput, err)
	}
	dir, err := models.ParseSortDirection(f.order)
	if err != nil {
		return state.State{}, fmt.Errorf("%w: %v", e.ErrInvalidInput, err)
	}
	view := defaultView
	if f.view != "" {
		if view, err = models.ParseViewMode(f.view); err != nil {
			return state.State{}, fmt.Errorf("%w: %v", e.ErrInvalidInput, err)
		}
	}
	if f.page < 1 {
		return state.State{}, fmt.Errorf("%w: page must be at least 1, got %d", e.ErrInvalidInput, f.page)
	}

	s := state.Default()
	for _, a := range []state.Action{
		state.SetViewMode{Mode: view},
		state.SetSearch{Term: f.search},
		state.SetIndustry{Industry: f.industry},
		state.SetLocation{Location: f.location},
		state.SetSortField{Field: field},
		state.SetSortDirection{Direction: dir},
		// last, since filter and sort changes return to page 1
		state.SetPage{Page: f.page},
	} {
		s = state.Reduce(s, a)
	}
	return s, nil
}

func newListCmd(a *app) *cobra.Command {
	flags := &browseFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of companies",
		Example: `  directory list --industry Technology --sort employees --order desc
  directory list --search cloud --view card --page 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			initial, err := flags.state(a.cfg.ViewMode())
			if err != nil {
				return err
			}

			dir := controller.New(a.source(), initial, a.logger)
			snap, err := dir.Load(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), render.New(0).Snapshot(snap))
			if err != nil {
				return fmt.Errorf("failed to load companies: %w", err)
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
