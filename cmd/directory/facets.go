package main

import (
	"fmt"
	"io"

	"github.com/gartstein/directory/internal/directory/controller"
	e "github.com/gartstein/directory/internal/directory/errors"
	"github.com/gartstein/directory/internal/directory/models"
	"github.com/gartstein/directory/internal/directory/state"
	"github.com/spf13/cobra"
)

func newFacetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "facets [industry|location]",
		Short:     "Print the distinct industries and locations available as filters",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(models.FacetIndustry), string(models.FacetLocation)},
		RunE: func(cmd *cobra.Command, args []string) error {
			var only models.FacetField
			if len(args) == 1 {
				only = models.FacetField(args[0])
				if only != models.FacetIndustry && only != models.FacetLocation {
					return fmt.Errorf("%w: unknown facet %q", e.ErrInvalidInput, args[0])
				}
			}

			dir := controller.New(a.source(), state.Default(), a.logger)
			snap, err := dir.Load(cmd.Context())
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), snap.Message)
				return fmt.Errorf("failed to load companies: %w", err)
			}

			out := cmd.OutOrStdout()
			switch only {
			case models.FacetIndustry:
				printList(out, snap.Industries)
			case models.FacetLocation:
				printList(out, snap.Locations)
			default:
				fmt.Fprintln(out, "Industries:")
				printList(out, snap.Industries)
				fmt.Fprintln(out, "\nLocations:")
				printList(out, snap.Locations)
			}
			return nil
		},
	}
}

func printList(w io.Writer, values []string) {
	for _, v := range values {
		fmt.Fprintln(w, v)
	}
}
