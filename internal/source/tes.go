package source

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/giordafrancis/jobdigest/internal/models"
	"github.com/giordafrancis/jobdigest/internal/network"
)

const (
	tesBaseURL   = "https://www.tes.com"
	tesSearchURL = tesBaseURL + "/jobs/search"

	// tesPageSize is the full-page result count; a shorter page signals the
	// last one.
	tesPageSize = 20

	// tesRecentWindow separates recent adverts from older ones.
	tesRecentWindow = 7 * 24 * time.Hour
)

// TES scrapes the TES jobs board. The search page is a Next.js app that ships
// its results inside the __NEXT_DATA__ script, so extraction is JSON
// navigation rather than DOM scraping.
//
// TES publishes UTC instants, so all recency and deadline arithmetic here is
// done against a UTC clock. The other sources deliberately stay on naive
// local time to match their own date formats.
type TES struct {
	client *network.Client
	params models.SearchParams
	now    func() time.Time
}

func NewTES(client *network.Client, params models.SearchParams) *TES {
	return &TES{
		client: client,
		params: params,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (t *TES) Name() string { return SourceTES }

func (t *TES) Search(ctx context.Context) ([]models.RawRecord, error) {
	return paginate(ctx, t.params.MaxPages, tesPageSize, func(ctx context.Context, page int) ([]models.RawRecord, bool, error) {
		doc, err := fetchDocument(ctx, t.client, t.searchURL(page), nil)
		if err != nil {
			return nil, false, err
		}
		payload, ok := tesPayload(doc)
		if !ok {
			// No embedded payload means no data on this page, not a failure.
			return nil, true, nil
		}
		return tesRecords(payload), false, nil
	})
}

func (t *TES) searchURL(page int) string {
	values := url.Values{}
	values.Set("keywords", t.params.Keywords)
	values.Set("displayLocation", t.params.Postcode)
	values.Set("lat", t.params.Latitude)
	values.Set("lon", t.params.Longitude)
	values.Set("distance", strconv.Itoa(t.params.DistanceMiles))
	values.Set("distanceUnit", "mi")
	values.Set("sort", t.params.Sort)
	values.Set("page", strconv.Itoa(page))
	return tesSearchURL + "?" + values.Encode()
}

// tesPayload locates the search state embedded in the __NEXT_DATA__ script
// and walks the fixed path props.pageProps.trpcState.json.queries[0].state.data.
// A missing script or a broken path is a recoverable no-data condition.
func tesPayload(doc *goquery.Document) (map[string]any, bool) {
	raw := strings.TrimSpace(doc.Find("script#__NEXT_DATA__").First().Text())
	if raw == "" {
		return nil, false
	}

	var data any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, false
	}

	queries, ok := dig(data, "props", "pageProps", "trpcState", "json", "queries").([]any)
	if !ok || len(queries) == 0 {
		return nil, false
	}
	payload, ok := dig(queries[0], "state", "data").(map[string]any)
	if !ok {
		return nil, false
	}
	return payload, true
}

// tesRecords flattens the payload's jobs array into raw records, keeping only
// the fields the digest displays.
func tesRecords(payload map[string]any) []models.RawRecord {
	list, ok := payload["jobs"].([]any)
	if !ok {
		return nil
	}

	records := make([]models.RawRecord, 0, len(list))
	for _, item := range list {
		job, ok := item.(map[string]any)
		if !ok {
			continue
		}

		record := models.RawRecord{}
		record.SetString("id", stringField(job["id"]))
		record.SetString("title", stringField(job["title"]))
		record.SetString("short_description", stringField(job["shortDescription"]))
		record.SetString("display_location", stringField(job["displayLocation"]))
		record.SetString("contract_terms", joinStrings(job["contractTerms"], ", "))
		record.SetString("contract_types", joinStrings(job["contractTypes"], ", "))
		record.SetString("employer_name", stringField(dig(job, "employer", "name")))
		record.SetString("salary_description", stringField(dig(job, "salary", "description")))
		record.SetString("salary_range", stringField(dig(job, "salary", "range")))
		record.SetString("advert_start_date", stringField(dig(job, "advert", "startDate")))
		record.SetString("advert_end_date", stringField(dig(job, "advert", "endDate")))
		record.SetString("application_close_date", stringField(dig(job, "application", "closeDate")))
		record.SetString("url", stringField(job["canonicalUrl"]))
		records = append(records, record)
	}
	return records
}

func (t *TES) Normalize(raw []models.RawRecord) []models.Listing {
	now := t.now()
	listings := make([]models.Listing, 0, len(raw))
	for _, record := range raw {
		listing := models.Listing{Source: t.Name(), Status: models.StatusCurrent}
		listing.Title, _ = record.String("title")
		listing.Description, _ = record.String("short_description")
		listing.Location, _ = record.String("display_location")
		listing.Employer, _ = record.String("employer_name")
		listing.ContractTerm, _ = record.String("contract_terms")
		listing.ContractType, _ = record.String("contract_types")
		listing.SalaryDescription, _ = record.String("salary_description")
		listing.SalaryRange, _ = record.String("salary_range")

		if value, ok := record.String("url"); ok {
			listing.URL = value
			listing.FullURL = absoluteURL(tesBaseURL, value)
		} else {
			listing.FullURL = "No URL available"
		}

		if value, ok := record.String("advert_start_date"); ok {
			if start, ok := parseISOTime(value); ok {
				start = start.UTC()
				listing.StartDate = &start
				listing.StartDateFormatted = formatDisplayTime(start)
				if start.Before(now.Add(-tesRecentWindow)) {
					listing.Status = models.StatusOlder
				} else {
					listing.Status = models.StatusRecent
				}
			}
		}

		if value, ok := record.String("application_close_date"); ok {
			if close, ok := parseISOTime(value); ok {
				close = close.UTC()
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

func (t *TES) Jobs(ctx context.Context) ([]models.Listing, error) {
	return jobs(ctx, t)
}
