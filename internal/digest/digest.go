package digest

import (
	"context"
	"time"

	"github.com/giordafrancis/jobdigest/internal/models"
	"github.com/giordafrancis/jobdigest/internal/source"
	"github.com/rs/zerolog"
)

// Section is one source's standardized contribution to the digest. A failed
// source still gets a section, with no rows.
type Section struct {
	Source string       `json:"source"`
	Rows   []models.Row `json:"rows"`
}

// Failure records a source that could not be polled.
type Failure struct {
	Source string
	Err    error
}

// Result is the aggregate of one run, sections in configured order.
type Result struct {
	StartedAt time.Time
	Sections  []Section
	Failures  []Failure
	Total     int
}

// Rows flattens all sections in order.
func (r Result) Rows() []models.Row {
	rows := make([]models.Row, 0, r.Total)
	for _, section := range r.Sections {
		rows = append(rows, section.Rows...)
	}
	return rows
}

// Orchestrator owns the configured sources and polls them one at a time in
// order. Sources share no state, so ordering is purely about stable digest
// layout; pages within a source are already sequential by contract.
type Orchestrator struct {
	sources []source.Source
	logger  zerolog.Logger
}

func New(sources []source.Source, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{sources: sources, logger: logger}
}

// Run polls every source. A source's transport or parse failure is logged and
// recorded; it never aborts the run, and every other source is unaffected.
// A run with zero total rows is still a valid result.
func (o *Orchestrator) Run(ctx context.Context) Result {
	result := Result{StartedAt: time.Now()}

	for _, src := range o.sources {
		listings, err := src.Jobs(ctx)
		if err != nil {
			o.logger.Error().Err(err).Str("source", src.Name()).Msg("source failed")
			result.Failures = append(result.Failures, Failure{Source: src.Name(), Err: err})
			result.Sections = append(result.Sections, Section{Source: src.Name(), Rows: []models.Row{}})
			continue
		}

		rows := source.Standardize(listings)
		o.logger.Debug().Str("source", src.Name()).Int("rows", len(rows)).Msg("source polled")
		result.Sections = append(result.Sections, Section{Source: src.Name(), Rows: rows})
		result.Total += len(rows)
	}

	return result
}
