package render

import (
	"strings"
	"testing"

	"github.com/giordafrancis/jobdigest/internal/digest"
	"github.com/giordafrancis/jobdigest/internal/models"
)

func intPtr(v int) *int { return &v }

func sampleResult() digest.Result {
	return digest.Result{
		Total: 2,
		Sections: []digest.Section{
			{
				Source: "tes",
				Rows: []models.Row{
					{
						Title:         "Teacher of Design and Technology",
						Employer:      "Oakwood School",
						Location:      "Croydon",
						ContractTerm:  "Permanent",
						ContractType:  "Full Time",
						Salary:        "MPS/UPS",
						ClosingDate:   "20 March 2026, 09:00",
						DaysRemaining: intPtr(3),
						URL:           "https://www.tes.com/jobs/vacancy/12345",
					},
				},
			},
			{Source: "govuk", Rows: []models.Row{
				{
					Title:         "Head of Technology",
					Employer:      "Riverside Academy",
					ClosingDate:   "05 April 2026, 00:00",
					DaysRemaining: intPtr(22),
					URL:           "No URL available",
				},
			}},
			{Source: "raa", Rows: []models.Row{}},
		},
	}
}

func sampleParams() models.SearchParams {
	return models.SearchParams{
		Keywords:      "Design and Technology Teacher",
		Postcode:      "CR5 1SS",
		Latitude:      "51.30662208651764",
		Longitude:     "-0.1133822439545745",
		DistanceMiles: 10,
		Sort:          "distance",
	}
}

func TestHTMLRendersSectionsAndRows(t *testing.T) {
	out, err := HTML(sampleResult(), sampleParams())
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}

	for _, want := range []string{
		"A total of 2 jobs found",
		"<h2>TES (1)</h2>",
		"<h2>GOV.UK Teaching Vacancies (1)</h2>",
		"Teacher of Design and Technology",
		"Oakwood School",
		"Permanent / Full Time",
		"20 March 2026, 09:00",
		`href="https://www.tes.com/jobs/vacancy/12345"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("rendered digest missing %q", want)
		}
	}
}

func TestHTMLSkipsEmptySections(t *testing.T) {
	out, err := HTML(sampleResult(), sampleParams())
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if strings.Contains(out, "Royal Alexandra") {
		t.Fatalf("empty section should not render a heading")
	}
}

func TestHTMLMarksUrgentRows(t *testing.T) {
	out, err := HTML(sampleResult(), sampleParams())
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if !strings.Contains(out, `class="urgent"`) {
		t.Fatalf("row closing in 3 days should be marked urgent")
	}
	if strings.Count(out, `class="urgent"`) != 1 {
		t.Fatalf("row closing in 22 days must not be urgent")
	}
}

func TestHTMLHidesPlaceholderURL(t *testing.T) {
	out, err := HTML(sampleResult(), sampleParams())
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if strings.Contains(out, "No URL available") {
		t.Fatalf("placeholder URL must not leak into the document")
	}
}

func TestSearchURLCarriesSearchParameters(t *testing.T) {
	got := searchURL(sampleParams())
	if !strings.HasPrefix(got, "https://www.tes.com/jobs/search?") {
		t.Fatalf("unexpected search URL: %q", got)
	}
	for _, want := range []string{"keywords=Design+and+Technology+Teacher", "distance=10", "distanceUnit=mi", "sort=distance"} {
		if !strings.Contains(got, want) {
			t.Fatalf("search URL missing %q: %q", want, got)
		}
	}
}
