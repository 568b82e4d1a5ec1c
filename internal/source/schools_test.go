package source

import (
	"testing"
	"time"
)

const woldinghamFixture = `
<div>
  <article class="vacancy-card">
    <h3>Teacher of Design and Technology</h3>
    <a href="/join-us/vacancies/teacher-of-dt">Details</a>
    <p class="vacancy-summary">Inspire pupils in our D&amp;T studios. Closing date: 20th March 2026.</p>
  </article>
  <article class="vacancy-card">
    <h3>School Nurse</h3>
    <p>Term-time role. Apply by 2 April 2026.</p>
  </article>
  <article class="vacancy-card">
    <p>Sign up to our newsletter to hear about future roles.</p>
  </article>
</div>`

func TestSchoolPageRecordsFreeTextDates(t *testing.T) {
	school := NewWoldingham(nil)
	doc := mustDoc(t, woldinghamFixture)

	records := school.records(doc)
	if len(records) != 2 {
		t.Fatalf("expected 2 records (title-less card dropped), got %d", len(records))
	}

	close, ok := records[0].Time("application_close_date")
	if !ok {
		t.Fatalf("closing date should be extracted from prose")
	}
	want := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	if !close.Equal(want) {
		t.Fatalf("closing date = %v, want %v", close, want)
	}

	close2, ok := records[1].Time("application_close_date")
	if !ok || close2.Month() != time.April {
		t.Fatalf("apply-by rule should match the nurse card, got %v ok=%v", close2, ok)
	}
}

func TestSchoolPageNormalize(t *testing.T) {
	school := NewWoldingham(nil)
	school.now = func() time.Time { return time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC) }

	doc := mustDoc(t, woldinghamFixture)
	listings := school.Normalize(school.records(doc))

	full := listings[0]
	if full.Source != SourceWoldingham || full.Employer != "Woldingham School" {
		t.Fatalf("unexpected identity fields: %+v", full)
	}
	if full.FullURL != "https://www.woldinghamschool.co.uk/join-us/vacancies/teacher-of-dt" {
		t.Fatalf("unexpected full URL: %q", full.FullURL)
	}
	if full.DaysToApply == nil || *full.DaysToApply != 6 {
		t.Fatalf("unexpected days to apply: %v", full.DaysToApply)
	}
}

func TestSchoolPageEndToEndRelevance(t *testing.T) {
	school := NewSuttonHigh(nil)
	school.now = func() time.Time { return time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC) }

	doc := mustDoc(t, `
<div>
  <div class="vacancy">
    <h3>Teacher of Design and Technology</h3>
    <a href="/about-us/vacancies/dt-teacher">Apply</a>
    <p>Deadline: 25 March 2026</p>
  </div>
  <div class="vacancy">
    <h3>Receptionist</h3>
    <p>Front of house role.</p>
  </div>
</div>`)

	listings := FilterRelevant(school.Normalize(school.records(doc)))
	if len(listings) != 1 {
		t.Fatalf("expected exactly the relevant vacancy, got %d", len(listings))
	}
	if listings[0].Source != SourceSuttonHigh {
		t.Fatalf("unexpected source tag: %q", listings[0].Source)
	}
}

func TestDunottarUsesStructuredDates(t *testing.T) {
	school := NewDunottar(nil)
	school.now = func() time.Time { return time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC) }

	doc := mustDoc(t, `
<div class="vacancy">
  <h2>Design Technology Technician</h2>
  <a href="/about-us/vacancies/dt-technician">More</a>
  <time datetime="2026-03-21">21 March 2026</time>
</div>`)

	listings := school.Normalize(school.records(doc))
	if len(listings) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(listings))
	}
	if listings[0].CloseDate == nil || *listings[0].DaysToApply != 7 {
		t.Fatalf("structured time element should parse: %+v", listings[0])
	}
}
