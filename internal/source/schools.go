package source

import (
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/giordafrancis/jobdigest/internal/models"
	"github.com/giordafrancis/jobdigest/internal/network"
)

// SchoolPage scrapes one ad-hoc school careers page. These pages share no
// markup conventions, so each school declares its own base URL, item selector
// and closing-date strategy. Records without a title are dropped at
// extraction; a card with no heading is navigation chrome, not a vacancy.
//
// Closing-date arithmetic uses naive local time: these pages publish wall
// clock dates with no zone, so a naive "now" matches their own convention.
type SchoolPage struct {
	client       *network.Client
	name         string
	employer     string
	baseURL      string
	vacanciesURL string
	itemSelector string
	// datesInText directs closing-date extraction at the card's prose via the
	// named regex rules instead of a structured <time> element.
	datesInText bool
	now         func() time.Time
}

func NewDunottar(client *network.Client) *SchoolPage {
	return &SchoolPage{
		client:       client,
		name:         SourceDunottar,
		employer:     "Dunottar School",
		baseURL:      "https://www.dunottarschool.com",
		vacanciesURL: "https://www.dunottarschool.com/about-us/vacancies/",
		itemSelector: ".vacancy, .job-listing",
		now:          time.Now,
	}
}

func NewWoldingham(client *network.Client) *SchoolPage {
	return &SchoolPage{
		client:       client,
		name:         SourceWoldingham,
		employer:     "Woldingham School",
		baseURL:      "https://www.woldinghamschool.co.uk",
		vacanciesURL: "https://www.woldinghamschool.co.uk/join-us/vacancies",
		itemSelector: ".vacancy-card, article.vacancy",
		datesInText:  true,
		now:          time.Now,
	}
}

func NewSuttonHigh(client *network.Client) *SchoolPage {
	return &SchoolPage{
		client:       client,
		name:         SourceSuttonHigh,
		employer:     "Sutton High School",
		baseURL:      "https://www.suttonhigh.gdst.net",
		vacanciesURL: "https://www.suttonhigh.gdst.net/about-us/vacancies/",
		itemSelector: ".vacancy, .accordion-item",
		datesInText:  true,
		now:          time.Now,
	}
}

func (s *SchoolPage) Name() string { return s.name }

func (s *SchoolPage) Search(ctx context.Context) ([]models.RawRecord, error) {
	doc, err := fetchDocument(ctx, s.client, s.vacanciesURL, nil)
	if err != nil {
		return nil, err
	}
	return s.records(doc), nil
}

func (s *SchoolPage) records(doc *goquery.Document) []models.RawRecord {
	var records []models.RawRecord

	doc.Find(s.itemSelector).Each(func(_ int, item *goquery.Selection) {
		title := cleanText(item.Find("h2, h3, .vacancy-title").First().Text())
		if title == "" {
			return
		}

		record := models.RawRecord{}
		record.SetString("title", title)
		record.SetString("url", item.Find("a").First().AttrOr("href", ""))
		record.SetString("contract_type", cleanText(item.Find(".vacancy-contract, .contract-type").First().Text()))
		record.SetString("salary_description", cleanText(item.Find(".vacancy-salary, .salary").First().Text()))

		body := cleanText(item.Find("p, .vacancy-summary").Text())
		record.SetString("short_description", body)

		if s.datesInText {
			if close, ok := extractClosingDate(body + " " + cleanText(item.Text())); ok {
				record.SetTime("application_close_date", close)
			}
		} else if value := item.Find("time").First().AttrOr("datetime", ""); value != "" {
			if close, ok := parseISOTime(value); ok {
				record.SetTime("application_close_date", close)
			}
		}

		records = append(records, record)
	})

	return records
}

func (s *SchoolPage) Normalize(raw []models.RawRecord) []models.Listing {
	now := s.now()
	listings := make([]models.Listing, 0, len(raw))
	for _, record := range raw {
		listing := models.Listing{
			Source:   s.name,
			Employer: s.employer,
			Status:   models.StatusCurrent,
		}
		listing.Title, _ = record.String("title")
		listing.ContractType, _ = record.String("contract_type")
		listing.SalaryDescription, _ = record.String("salary_description")
		listing.Description, _ = record.String("short_description")

		if value, ok := record.String("url"); ok {
			listing.URL = value
			listing.FullURL = absoluteURL(s.baseURL, value)
		}

		if close, ok := record.Time("application_close_date"); ok {
			closeAt := close
			listing.CloseDate = &closeAt
			listing.CloseDateFormatted = formatDisplayTime(closeAt)
			days := daysUntil(closeAt, now)
			listing.DaysToApply = &days
		}

		listings = append(listings, listing)
	}
	return listings
}

func (s *SchoolPage) Jobs(ctx context.Context) ([]models.Listing, error) {
	return jobs(ctx, s)
}
