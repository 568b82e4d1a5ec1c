package source

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/giordafrancis/jobdigest/internal/models"
)

func TestParseISOTime(t *testing.T) {
	cases := []string{
		"2026-03-14",
		"2026-03-14T09:00:00",
		time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC).Format(time.RFC3339),
	}

	for _, value := range cases {
		parsed, ok := parseISOTime(value)
		if !ok {
			t.Fatalf("expected parse success for %s", value)
		}
		if parsed.IsZero() {
			t.Fatalf("parsed time should not be zero for %s", value)
		}
	}

	if _, ok := parseISOTime("14th March 2026"); ok {
		t.Fatalf("expected parse failure for non-ISO text")
	}
}

func TestParseSlashTime(t *testing.T) {
	parsed, ok := parseSlashTime("14/03/2026 09:00")
	if !ok {
		t.Fatalf("expected parse success")
	}
	if parsed.Day() != 14 || parsed.Month() != time.March || parsed.Hour() != 9 {
		t.Fatalf("unexpected parse result: %v", parsed)
	}

	if _, ok := parseSlashTime("2026-03-14"); ok {
		t.Fatalf("expected parse failure for ISO text")
	}
}

func TestAbsoluteURL(t *testing.T) {
	base := "https://example.com/path/page"
	cases := []struct {
		href string
		want string
	}{
		{"/jobs/1", "https://example.com/jobs/1"},
		{"https://other.com/a", "https://other.com/a"},
		{"//cdn.example.com/asset", "https://cdn.example.com/asset"},
	}

	for _, tc := range cases {
		got := absoluteURL(base, tc.href)
		if got != tc.want {
			t.Fatalf("absoluteURL(%q) = %q, want %q", tc.href, got, tc.want)
		}
	}
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	if got := daysUntil(now, now); got != 0 {
		t.Fatalf("deadline exactly now should be 0 days, got %d", got)
	}
	if got := daysUntil(now.AddDate(0, 0, -1), now); got >= 0 {
		t.Fatalf("deadline one day past should be negative, got %d", got)
	}
	if got := daysUntil(now.Add(-12*time.Hour), now); got != -1 {
		t.Fatalf("deadline half a day past should floor to -1, got %d", got)
	}
	if got := daysUntil(now.AddDate(0, 0, 3), now); got != 3 {
		t.Fatalf("deadline in three days should be 3, got %d", got)
	}
}

func TestExtractClosingDate(t *testing.T) {
	cases := []struct {
		text string
		want time.Time
	}{
		{"Closing date: 14th March 2026", time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)},
		{"Please apply by 2 April 2026 at the latest", time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)},
		{"Deadline: 1st May 2026", time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"Applications close on 23rd June 2026", time.Date(2026, 6, 23, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		got, ok := extractClosingDate(tc.text)
		if !ok {
			t.Fatalf("expected a closing date in %q", tc.text)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("extractClosingDate(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}

	if _, ok := extractClosingDate("We welcome applications all year round"); ok {
		t.Fatalf("expected no closing date in unrelated text")
	}
}

func fakePages(counts ...int) pageFunc {
	return func(_ context.Context, page int) ([]models.RawRecord, bool, error) {
		if page > len(counts) {
			return nil, false, fmt.Errorf("page %d fetched past the end", page)
		}
		records := make([]models.RawRecord, counts[page-1])
		for i := range records {
			record := models.RawRecord{}
			record.SetString("title", fmt.Sprintf("Job %d-%d", page, i))
			records[i] = record
		}
		return records, false, nil
	}
}

func TestPaginateStopsOnShortPage(t *testing.T) {
	records, err := paginate(context.Background(), 10, 20, fakePages(20, 20, 5))
	if err != nil {
		t.Fatalf("paginate() error = %v", err)
	}
	if len(records) != 45 {
		t.Fatalf("expected 45 records across three pages, got %d", len(records))
	}
}

func TestPaginateStopsOnEmptyFirstPage(t *testing.T) {
	fetched := 0
	records, err := paginate(context.Background(), 10, 20, func(_ context.Context, page int) ([]models.RawRecord, bool, error) {
		fetched++
		return nil, false, nil
	})
	if err != nil {
		t.Fatalf("paginate() error = %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected 0 records, got %d", len(records))
	}
	if fetched != 1 {
		t.Fatalf("expected exactly one page fetch, got %d", fetched)
	}
}

func TestPaginateRespectsMaxPages(t *testing.T) {
	records, err := paginate(context.Background(), 2, 20, fakePages(20, 20, 20, 20))
	if err != nil {
		t.Fatalf("paginate() error = %v", err)
	}
	if len(records) != 40 {
		t.Fatalf("expected 40 records over two pages, got %d", len(records))
	}
}

func TestPaginateStopsOnLastMarker(t *testing.T) {
	records, err := paginate(context.Background(), 10, 20, func(_ context.Context, page int) ([]models.RawRecord, bool, error) {
		record := models.RawRecord{}
		record.SetString("title", "only")
		// Full page but the site says this is the end.
		out := make([]models.RawRecord, 20)
		for i := range out {
			out[i] = record
		}
		return out, page == 2, nil
	})
	if err != nil {
		t.Fatalf("paginate() error = %v", err)
	}
	if len(records) != 40 {
		t.Fatalf("expected 40 records, got %d", len(records))
	}
}

func TestPaginateFirstPageErrorPropagates(t *testing.T) {
	wantErr := errors.New("boom")
	_, err := paginate(context.Background(), 10, 20, func(_ context.Context, page int) ([]models.RawRecord, bool, error) {
		return nil, false, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected first-page error to propagate, got %v", err)
	}
}

func TestPaginateLaterPageErrorStopsQuietly(t *testing.T) {
	records, err := paginate(context.Background(), 10, 20, func(_ context.Context, page int) ([]models.RawRecord, bool, error) {
		if page == 2 {
			return nil, false, errors.New("boom")
		}
		return fakePages(20)(context.Background(), 1)
	})
	if err != nil {
		t.Fatalf("expected later-page error to be swallowed, got %v", err)
	}
	if len(records) != 20 {
		t.Fatalf("expected the first page's 20 records, got %d", len(records))
	}
}

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse document: %v", err)
	}
	return doc
}
