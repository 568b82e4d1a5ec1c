package source

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/giordafrancis/jobdigest/internal/models"
	"github.com/giordafrancis/jobdigest/internal/network"
)

const (
	gdstBaseURL      = "https://www.gdst.net"
	gdstVacanciesURL = gdstBaseURL + "/careers/vacancies/"
)

// GDST scrapes the Girls' Day School Trust group board, which lists vacancies
// across all member schools. Extraction pre-filters to the configured schools
// of interest; results still flow through the generic relevance filter, which
// is idempotent over the already-relevant set.
type GDST struct {
	client  *network.Client
	schools []string
	now     func() time.Time
}

func NewGDST(client *network.Client, schools []string) *GDST {
	return &GDST{client: client, schools: schools, now: time.Now}
}

func (g *GDST) Name() string { return SourceGDST }

func (g *GDST) Search(ctx context.Context) ([]models.RawRecord, error) {
	doc, err := fetchDocument(ctx, g.client, gdstVacanciesURL, nil)
	if err != nil {
		return nil, err
	}
	return g.records(doc), nil
}

func (g *GDST) records(doc *goquery.Document) []models.RawRecord {
	var records []models.RawRecord

	doc.Find(".vacancy-listing__item, li.vacancy").Each(func(_ int, item *goquery.Selection) {
		title := cleanText(item.Find("h3, .vacancy-listing__title").First().Text())
		if title == "" {
			return
		}
		school := cleanText(item.Find(".vacancy-listing__school, .school-name").First().Text())
		if !g.matchesSchool(school) {
			return
		}

		record := models.RawRecord{}
		record.SetString("title", title)
		record.SetString("employer_name", school)
		record.SetString("url", item.Find("a").First().AttrOr("href", ""))
		record.SetString("display_location", cleanText(item.Find(".vacancy-listing__location").First().Text()))
		record.SetString("contract_type", cleanText(item.Find(".vacancy-listing__contract").First().Text()))
		record.SetString("short_description", cleanText(item.Find("p").First().Text()))
		record.SetString("application_close_date", item.Find("time").First().AttrOr("datetime", ""))
		records = append(records, record)
	})

	return records
}

// matchesSchool keeps only the configured member schools. An empty configured
// list keeps everything.
func (g *GDST) matchesSchool(school string) bool {
	if len(g.schools) == 0 {
		return true
	}
	school = strings.ToLower(school)
	for _, want := range g.schools {
		if strings.Contains(school, strings.ToLower(strings.TrimSpace(want))) {
			return true
		}
	}
	return false
}

func (g *GDST) Normalize(raw []models.RawRecord) []models.Listing {
	now := g.now()
	listings := make([]models.Listing, 0, len(raw))
	for _, record := range raw {
		listing := models.Listing{Source: g.Name(), Status: models.StatusCurrent}
		listing.Title, _ = record.String("title")
		listing.Employer, _ = record.String("employer_name")
		listing.Location, _ = record.String("display_location")
		listing.ContractType, _ = record.String("contract_type")
		listing.Description, _ = record.String("short_description")

		if value, ok := record.String("url"); ok {
			listing.URL = value
			listing.FullURL = absoluteURL(gdstBaseURL, value)
		}

		if value, ok := record.String("application_close_date"); ok {
			if close, ok := parseISOTime(value); ok {
				listing.CloseDate = &close
				listing.CloseDateFormatted = formatDisplayTime(close)
				days := daysUntil(close, now)
				listing.DaysToApply = &days
			}
		}

		listings = append(listings, listing)
	}
	return listings
}

func (g *GDST) Jobs(ctx context.Context) ([]models.Listing, error) {
	return jobs(ctx, g)
}
