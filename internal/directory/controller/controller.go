// Package controller implements the coordinating component of the directory:
// it loads the record set once, owns the browse state and rebuilds the derived
// view on every state change.
package controller

import (
	"context"
	"fmt"

	e "github.com/gartstein/directory/internal/directory/errors"
	"github.com/gartstein/directory/internal/directory/models"
	"github.com/gartstein/directory/internal/directory/pipeline"
	"github.com/gartstein/directory/internal/directory/source"
	"github.com/gartstein/directory/internal/directory/state"
	"go.uber.org/zap"
)

// FetchFailureMessage is the user-facing text shown when loading fails.
const FetchFailureMessage = "Failed to fetch companies. Please make sure the API server is running."

// Status is the lifecycle of the record set.
type Status int

const (
	Loading Status = iota
	Ready
	Failed
)

func (s Status) String() string {
	switch s {
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "loading"
	}
}

// Snapshot is everything the presentation layer needs for one render.
type Snapshot struct {
	Status  Status
	Message string
	State   state.State
	// Page is the visible slice with its bounds and totals.
	Page       pipeline.Page
	Industries []string
	Locations  []string
	// Rejected counts records quarantined by the source.
	Rejected int
}

// Directory owns the record set, the browse state and the derived view.
// It is not safe for concurrent use; one goroutine drives it.
type Directory struct {
	source source.Source
	logger *zap.Logger

	started  bool
	status   Status
	records  []models.Company
	rejected int

	industries []string
	locations  []string

	state state.State
	view  pipeline.View
}

// New constructs a Directory that will read from src, starting from initial state.
func New(src source.Source, initial state.State, logger *zap.Logger) *Directory {
	d := &Directory{
		source: src,
		logger: logger.Named("directory"),
		status: Loading,
		state:  initial,
	}
	d.rebuild()
	return d
}

// Load fetches the record set. It runs at most once per Directory.
func (d *Directory) Load(ctx context.Context) (Snapshot, error) {
	if d.started {
		return d.Snapshot(), e.ErrAlreadyLoaded
	}
	d.started = true
	res, err := d.source.Fetch(ctx)
	return d.Apply(res, err), err
}

// Apply commits the outcome of a fetch performed elsewhere. Once the record set
// is ready or has failed, later outcomes are ignored.
func (d *Directory) Apply(res *source.Result, err error) Snapshot {
	d.started = true
	if d.status != Loading {
		d.logger.Warn("Ignoring fetch result, directory already settled", zap.Stringer("status", d.status))
		return d.Snapshot()
	}

	if err == nil && res == nil {
		err = fmt.Errorf("%w: empty result", e.ErrFetchFailed)
	}
	if err != nil {
		d.logger.Error("Error fetching companies", zap.Error(err))
		d.status = Failed
		return d.Snapshot()
	}

	d.records = res.Companies
	d.rejected = len(res.Rejected)
	d.industries = pipeline.Facets(d.records, models.FacetIndustry)
	d.locations = pipeline.Facets(d.records, models.FacetLocation)
	d.status = Ready
	d.rebuild()

	d.logger.Info("Directory ready",
		zap.Int("companies", len(d.records)),
		zap.Int("industries", len(d.industries)),
		zap.Int("locations", len(d.locations)),
	)
	return d.Snapshot()
}

// Dispatch applies an action to the browse state and rebuilds the view.
func (d *Directory) Dispatch(a state.Action) Snapshot {
	d.state = state.Reduce(d.state, a)
	d.rebuild()
	return d.Snapshot()
}

// State returns the current browse state.
func (d *Directory) State() state.State {
	return d.state
}

// Records returns the full record set. Callers must not modify it.
func (d *Directory) Records() []models.Company {
	return d.records
}

// Snapshot returns the current derived output.
func (d *Directory) Snapshot() Snapshot {
	snap := Snapshot{
		Status:     d.status,
		State:      d.state,
		Page:       d.view.Page,
		Industries: d.industries,
		Locations:  d.locations,
		Rejected:   d.rejected,
	}
	if d.status == Failed {
		snap.Message = FetchFailureMessage
		snap.Page = pipeline.Page{}
	}
	return snap
}

// rebuild derives the view from scratch and pins the state page to the
// effective page so stale page numbers never outlive a smaller result set.
func (d *Directory) rebuild() {
	d.view = pipeline.DeriveView(d.records, d.state.Filter, d.state.Sort, d.state.Page)
	d.state.Page = d.view.Page.Number
}
