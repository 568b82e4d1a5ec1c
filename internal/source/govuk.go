package source

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/giordafrancis/jobdigest/internal/models"
	"github.com/giordafrancis/jobdigest/internal/network"
)

const (
	govukBaseURL   = "https://teaching-vacancies.service.gov.uk"
	govukSearchURL = govukBaseURL + "/jobs"
)

// GovUK scrapes the GOV.UK Teaching Vacancies service. One results page is
// enough at a 10-mile radius; closing dates come as ISO datetime attributes
// on <time> elements.
type GovUK struct {
	client *network.Client
	params models.SearchParams
	now    func() time.Time
}

func NewGovUK(client *network.Client, params models.SearchParams) *GovUK {
	return &GovUK{client: client, params: params, now: time.Now}
}

func (g *GovUK) Name() string { return SourceGovUK }

func (g *GovUK) Search(ctx context.Context) ([]models.RawRecord, error) {
	doc, err := fetchDocument(ctx, g.client, g.searchURL(), nil)
	if err != nil {
		return nil, err
	}
	return govukRecords(doc), nil
}

func (g *GovUK) searchURL() string {
	values := url.Values{}
	values.Set("keyword", g.params.Keywords)
	values.Set("location", g.params.Postcode)
	values.Set("radius", strconv.Itoa(g.params.DistanceMiles))
	return govukSearchURL + "?" + values.Encode()
}

func govukRecords(doc *goquery.Document) []models.RawRecord {
	var records []models.RawRecord

	doc.Find("li.search-results__item").Each(func(_ int, item *goquery.Selection) {
		anchor := item.Find("h2 a").First()
		title := cleanText(anchor.Text())
		if title == "" {
			return
		}

		record := models.RawRecord{}
		record.SetString("title", title)
		record.SetString("url", anchor.AttrOr("href", ""))
		record.SetString("employer_name", cleanText(item.Find(".search-results__item__organisation").First().Text()))
		record.SetString("display_location", cleanText(item.Find("address").First().Text()))
		record.SetString("salary_description", cleanText(item.Find("[data-test='salary']").First().Text()))
		record.SetString("contract_type", cleanText(item.Find("[data-test='working-pattern']").First().Text()))
		record.SetString("short_description", cleanText(item.Find(".search-results__item__summary").First().Text()))
		record.SetString("application_close_date", item.Find("time").First().AttrOr("datetime", ""))
		records = append(records, record)
	})

	return records
}

func (g *GovUK) Normalize(raw []models.RawRecord) []models.Listing {
	now := g.now()
	listings := make([]models.Listing, 0, len(raw))
	for _, record := range raw {
		listing := models.Listing{Source: g.Name(), Status: models.StatusCurrent}
		listing.Title, _ = record.String("title")
		listing.Employer, _ = record.String("employer_name")
		listing.Location, _ = record.String("display_location")
		listing.SalaryDescription, _ = record.String("salary_description")
		listing.ContractType, _ = record.String("contract_type")
		listing.Description, _ = record.String("short_description")

		if value, ok := record.String("url"); ok {
			listing.URL = value
			listing.FullURL = absoluteURL(govukBaseURL, value)
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

func (g *GovUK) Jobs(ctx context.Context) ([]models.Listing, error) {
	return jobs(ctx, g)
}
