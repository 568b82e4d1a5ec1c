package source

import (
	"context"

	"github.com/giordafrancis/jobdigest/internal/models"
)

// Source is one external job board or school career page. Search pulls the
// site's raw records, Normalize maps them into the canonical listing shape,
// and Jobs is the standard composition of the two plus the relevance filter.
//
// Search returns an error only for a true transport or parse failure; zero
// results is an empty slice. Normalize is total: a record missing optional
// fields still yields a listing, with the corresponding fields left empty.
type Source interface {
	Name() string
	Search(ctx context.Context) ([]models.RawRecord, error)
	Normalize(raw []models.RawRecord) []models.Listing
	Jobs(ctx context.Context) ([]models.Listing, error)
}

// jobs is the default Jobs composition shared by every variant.
func jobs(ctx context.Context, s Source) ([]models.Listing, error) {
	raw, err := s.Search(ctx)
	if err != nil {
		return nil, err
	}
	return FilterRelevant(s.Normalize(raw)), nil
}
