package source

import (
	"testing"
	"time"

	"github.com/giordafrancis/jobdigest/internal/models"
)

const govukFixture = `
<ul>
  <li class="search-results__item">
    <h2><a href="/jobs/teacher-of-design-and-technology-example">Teacher of Design and Technology</a></h2>
    <div class="search-results__item__organisation">Example Academy</div>
    <address>Coulsdon, Surrey</address>
    <div data-test="salary">MPS/UPS</div>
    <div data-test="working-pattern">Full time</div>
    <p class="search-results__item__summary">Lead our thriving D&amp;T workshops</p>
    <time datetime="2026-03-20T09:00:00">20 March 2026</time>
  </li>
  <li class="search-results__item">
    <h2><a href="/jobs/head-of-maths">Head of Maths</a></h2>
    <div class="search-results__item__organisation">Other School</div>
  </li>
  <li class="search-results__item">
    <div>advert card with no heading</div>
  </li>
</ul>`

func TestGovUKRecords(t *testing.T) {
	doc := mustDoc(t, govukFixture)
	records := govukRecords(doc)
	if len(records) != 2 {
		t.Fatalf("expected 2 records (card without a title dropped), got %d", len(records))
	}

	title, _ := records[0].String("title")
	if title != "Teacher of Design and Technology" {
		t.Fatalf("unexpected title: %q", title)
	}
	closeDate, ok := records[0].String("application_close_date")
	if !ok || closeDate != "2026-03-20T09:00:00" {
		t.Fatalf("unexpected close date: %q", closeDate)
	}
	if _, ok := records[1].String("application_close_date"); ok {
		t.Fatalf("card without a time element should have no close date")
	}
}

func TestGovUKNormalize(t *testing.T) {
	g := NewGovUK(nil, models.SearchParams{})
	g.now = func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) }

	doc := mustDoc(t, govukFixture)
	listings := g.Normalize(govukRecords(doc))
	if len(listings) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(listings))
	}

	full := listings[0]
	if full.Source != SourceGovUK {
		t.Fatalf("missing source tag: %+v", full)
	}
	if full.FullURL != "https://teaching-vacancies.service.gov.uk/jobs/teacher-of-design-and-technology-example" {
		t.Fatalf("unexpected full URL: %q", full.FullURL)
	}
	if full.CloseDate == nil || full.DaysToApply == nil || *full.DaysToApply != 6 {
		t.Fatalf("unexpected close date derivation: %+v", full)
	}
	if full.Status != models.StatusCurrent {
		t.Fatalf("sources without start dates report current, got %q", full.Status)
	}

	sparse := listings[1]
	if sparse.CloseDate != nil || sparse.DaysToApply != nil {
		t.Fatalf("missing date fields should stay null: %+v", sparse)
	}
}

func TestGovUKFilteredJobs(t *testing.T) {
	g := NewGovUK(nil, models.SearchParams{})
	g.now = func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) }

	doc := mustDoc(t, govukFixture)
	listings := FilterRelevant(g.Normalize(govukRecords(doc)))
	if len(listings) != 1 {
		t.Fatalf("expected only the relevant listing, got %d", len(listings))
	}
	if listings[0].Title != "Teacher of Design and Technology" {
		t.Fatalf("unexpected survivor: %q", listings[0].Title)
	}
}
