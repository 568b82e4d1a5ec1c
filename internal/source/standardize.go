package source

import "github.com/giordafrancis/jobdigest/internal/models"

// Standardize renames each listing into the shared presentation vocabulary.
// Pure rename and selection: no filtering, no recomputation, absent optional
// fields simply stay empty.
func Standardize(listings []models.Listing) []models.Row {
	rows := make([]models.Row, 0, len(listings))
	for _, listing := range listings {
		rows = append(rows, models.Row{
			Title:         listing.Title,
			Employer:      listing.Employer,
			Location:      listing.Location,
			ContractType:  listing.ContractType,
			ContractTerm:  listing.ContractTerm,
			Salary:        salaryText(listing),
			ClosingDate:   listing.CloseDateFormatted,
			DaysRemaining: listing.DaysToApply,
			Description:   listing.Description,
			URL:           listingURL(listing),
			Source:        listing.Source,
		})
	}
	return rows
}

// salaryText prefers the structured range over the free-text description,
// matching the email's display rule.
func salaryText(listing models.Listing) string {
	if listing.SalaryRange != "" {
		return listing.SalaryRange
	}
	return listing.SalaryDescription
}

func listingURL(listing models.Listing) string {
	if listing.FullURL != "" {
		return listing.FullURL
	}
	return listing.URL
}
