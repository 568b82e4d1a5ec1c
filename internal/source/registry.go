package source

import (
	"strings"

	"github.com/giordafrancis/jobdigest/internal/models"
	"github.com/giordafrancis/jobdigest/internal/network"
)

const (
	SourceTES        = "tes"
	SourceGovUK      = "govuk"
	SourceRAA        = "raa"
	SourceDunottar   = "dunottar"
	SourceWoldingham = "woldingham"
	SourceSuttonHigh = "suttonhigh"
	SourceGDST       = "gdst"
)

// Order is the configured polling order for a digest run.
var Order = []string{
	SourceTES,
	SourceGovUK,
	SourceRAA,
	SourceDunottar,
	SourceWoldingham,
	SourceSuttonHigh,
	SourceGDST,
}

// Registry builds the closed set of configured sources, one client each so a
// banned cookie jar on one site never bleeds into another.
func Registry(rotator *network.Rotator, params models.SearchParams, gdstSchools []string) (map[string]Source, error) {
	makeClient := func() (*network.Client, error) {
		return network.NewClient(rotator)
	}

	tes, err := makeClient()
	if err != nil {
		return nil, err
	}
	govuk, err := makeClient()
	if err != nil {
		return nil, err
	}
	raa, err := makeClient()
	if err != nil {
		return nil, err
	}
	dunottar, err := makeClient()
	if err != nil {
		return nil, err
	}
	woldingham, err := makeClient()
	if err != nil {
		return nil, err
	}
	suttonHigh, err := makeClient()
	if err != nil {
		return nil, err
	}
	gdst, err := makeClient()
	if err != nil {
		return nil, err
	}

	return map[string]Source{
		SourceTES:        NewTES(tes, params),
		SourceGovUK:      NewGovUK(govuk, params),
		SourceRAA:        NewRAA(raa, params),
		SourceDunottar:   NewDunottar(dunottar),
		SourceWoldingham: NewWoldingham(woldingham),
		SourceSuttonHigh: NewSuttonHigh(suttonHigh),
		SourceGDST:       NewGDST(gdst, gdstSchools),
	}, nil
}

// NormalizeNames lowercases and trims requested source names.
func NormalizeNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		out = append(out, name)
	}
	return out
}
