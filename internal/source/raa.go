package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/giordafrancis/jobdigest/internal/models"
	"github.com/giordafrancis/jobdigest/internal/network"
)

const (
	raaBaseURL       = "https://www.raa-school.co.uk"
	raaVacanciesPath = "/vacancies"

	// raaPageSize is the board's rows-per-page; a shorter page is the last.
	raaPageSize = 10
)

// RAA scrapes the Royal Alexandra and Albert School vacancy board. The board
// paginates and renders closing dates as DD/MM/YYYY HH:MM in a table cell.
type RAA struct {
	client *network.Client
	params models.SearchParams
	now    func() time.Time
}

func NewRAA(client *network.Client, params models.SearchParams) *RAA {
	return &RAA{client: client, params: params, now: time.Now}
}

func (r *RAA) Name() string { return SourceRAA }

func (r *RAA) Search(ctx context.Context) ([]models.RawRecord, error) {
	return paginate(ctx, r.params.MaxPages, raaPageSize, func(ctx context.Context, page int) ([]models.RawRecord, bool, error) {
		doc, err := fetchDocument(ctx, r.client, raaPageURL(page), nil)
		if err != nil {
			return nil, false, err
		}
		if raaNoMoreResults(doc) {
			return nil, true, nil
		}
		return raaRecords(doc), false, nil
	})
}

func raaPageURL(page int) string {
	if page <= 1 {
		return raaBaseURL + raaVacanciesPath
	}
	return fmt.Sprintf("%s%s?page=%d", raaBaseURL, raaVacanciesPath, page)
}

// raaNoMoreResults detects the board's explicit empty-page banner.
func raaNoMoreResults(doc *goquery.Document) bool {
	banner := strings.ToLower(cleanText(doc.Find(".vacancies-empty, .no-results").First().Text()))
	if banner == "" {
		return false
	}
	return strings.Contains(banner, "no vacancies") || strings.Contains(banner, "no more results")
}

func raaRecords(doc *goquery.Document) []models.RawRecord {
	var records []models.RawRecord

	doc.Find("table.vacancies tbody tr, .vacancy-item").Each(func(_ int, item *goquery.Selection) {
		anchor := item.Find("a").First()
		title := cleanText(anchor.Text())
		if title == "" {
			title = cleanText(item.Find(".vacancy-title").First().Text())
		}
		if title == "" {
			return
		}

		record := models.RawRecord{}
		record.SetString("title", title)
		record.SetString("url", anchor.AttrOr("href", ""))
		record.SetString("contract_term", cleanText(item.Find(".vacancy-term, td:nth-child(2)").First().Text()))
		record.SetString("salary_description", cleanText(item.Find(".vacancy-salary").First().Text()))
		record.SetString("short_description", cleanText(item.Find(".vacancy-summary").First().Text()))
		record.SetString("application_close_date", cleanText(item.Find(".vacancy-closing, td:last-child").First().Text()))
		records = append(records, record)
	})

	return records
}

func (r *RAA) Normalize(raw []models.RawRecord) []models.Listing {
	now := r.now()
	listings := make([]models.Listing, 0, len(raw))
	for _, record := range raw {
		listing := models.Listing{
			Source:   r.Name(),
			Employer: "Royal Alexandra and Albert School",
			Status:   models.StatusCurrent,
		}
		listing.Title, _ = record.String("title")
		listing.ContractTerm, _ = record.String("contract_term")
		listing.SalaryDescription, _ = record.String("salary_description")
		listing.Description, _ = record.String("short_description")

		if value, ok := record.String("url"); ok {
			listing.URL = value
			listing.FullURL = absoluteURL(raaBaseURL, value)
		}

		if value, ok := record.String("application_close_date"); ok {
			if close, ok := parseSlashTime(value); ok {
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

func (r *RAA) Jobs(ctx context.Context) ([]models.Listing, error) {
	return jobs(ctx, r)
}
