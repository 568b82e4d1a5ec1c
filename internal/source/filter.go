package source

import (
	"regexp"

	"github.com/giordafrancis/jobdigest/internal/models"
)

// relevantPattern is the subject heuristic: anything plausibly Design &
// Technology, including the "D&T" shorthand with stray spacing.
var relevantPattern = regexp.MustCompile(`(?i)(design|technology|d\s*&\s*t)`)

// FilterRelevant keeps listings whose title or description matches the target
// subject. A listing with no matchable text at all is not relevant. The
// filter is idempotent: already-relevant listings always survive a second
// pass.
func FilterRelevant(listings []models.Listing) []models.Listing {
	out := make([]models.Listing, 0, len(listings))
	for _, listing := range listings {
		if listing.Title == "" && listing.Description == "" {
			continue
		}
		if relevantPattern.MatchString(listing.Title) || relevantPattern.MatchString(listing.Description) {
			out = append(out, listing)
		}
	}
	return out
}
