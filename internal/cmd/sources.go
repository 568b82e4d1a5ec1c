package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/giordafrancis/jobdigest/internal/source"
)

type SourcesCmd struct{}

var sourceDescriptions = map[string]string{
	source.SourceTES:        "TES jobs board (structured JSON payload, paginated)",
	source.SourceGovUK:      "GOV.UK Teaching Vacancies",
	source.SourceRAA:        "Royal Alexandra and Albert School vacancy board (paginated)",
	source.SourceDunottar:   "Dunottar School careers page",
	source.SourceWoldingham: "Woldingham School careers page",
	source.SourceSuttonHigh: "Sutton High School careers page",
	source.SourceGDST:       "GDST group vacancy board (pre-filtered to configured schools)",
}

func (s *SourcesCmd) Run(ctx *Context) error {
	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "name\tdescription")
	for _, name := range source.Order {
		fmt.Fprintf(tw, "%s\t%s\n", name, sourceDescriptions[name])
	}
	return tw.Flush()
}
