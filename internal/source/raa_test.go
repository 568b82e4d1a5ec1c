package source

import (
	"testing"
	"time"

	"github.com/giordafrancis/jobdigest/internal/models"
)

const raaFixture = `
<table class="vacancies">
  <tbody>
    <tr>
      <td><a href="/vacancies/teacher-of-design-technology">Teacher of Design Technology</a></td>
      <td>Full time, permanent</td>
      <td>20/03/2026 09:00</td>
    </tr>
    <tr>
      <td><a href="/vacancies/cover-supervisor">Cover Supervisor</a></td>
      <td>Casual</td>
      <td>TBC</td>
    </tr>
  </tbody>
</table>`

func TestRAARecords(t *testing.T) {
	doc := mustDoc(t, raaFixture)
	records := raaRecords(doc)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	closeDate, _ := records[0].String("application_close_date")
	if closeDate != "20/03/2026 09:00" {
		t.Fatalf("unexpected close date text: %q", closeDate)
	}
}

func TestRAANormalizeSlashDates(t *testing.T) {
	r := NewRAA(nil, models.SearchParams{MaxPages: 3})
	r.now = func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) }

	doc := mustDoc(t, raaFixture)
	listings := r.Normalize(raaRecords(doc))

	full := listings[0]
	if full.Employer != "Royal Alexandra and Albert School" {
		t.Fatalf("unexpected employer: %q", full.Employer)
	}
	if full.CloseDate == nil {
		t.Fatalf("slash-format date should parse: %+v", full)
	}
	if full.CloseDateFormatted != "20 March 2026, 09:00" {
		t.Fatalf("unexpected formatted date: %q", full.CloseDateFormatted)
	}
	if full.DaysToApply == nil || *full.DaysToApply != 6 {
		t.Fatalf("unexpected days to apply: %v", full.DaysToApply)
	}

	// "TBC" is not a date; the record survives with null date fields.
	sparse := listings[1]
	if sparse.CloseDate != nil || sparse.DaysToApply != nil {
		t.Fatalf("unparseable date should stay null: %+v", sparse)
	}
}

func TestRAANoMoreResultsMarker(t *testing.T) {
	doc := mustDoc(t, `<div class="vacancies-empty">There are currently no vacancies.</div>`)
	if !raaNoMoreResults(doc) {
		t.Fatalf("empty-board banner should be detected")
	}

	doc = mustDoc(t, raaFixture)
	if raaNoMoreResults(doc) {
		t.Fatalf("populated board should not read as empty")
	}
}
