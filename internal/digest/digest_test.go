package digest

import (
	"context"
	"errors"
	"testing"

	"github.com/giordafrancis/jobdigest/internal/models"
	"github.com/giordafrancis/jobdigest/internal/source"
	"github.com/rs/zerolog"
)

type fakeSource struct {
	name     string
	listings []models.Listing
	err      error
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Search(context.Context) ([]models.RawRecord, error) { return nil, f.err }

func (f *fakeSource) Normalize([]models.RawRecord) []models.Listing { return f.listings }

func (f *fakeSource) Jobs(context.Context) ([]models.Listing, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.listings, nil
}

func listing(src, title string) models.Listing {
	return models.Listing{Source: src, Title: title}
}

func sourcesOf(fakes ...*fakeSource) []source.Source {
	out := make([]source.Source, len(fakes))
	for i, f := range fakes {
		out[i] = f
	}
	return out
}

func TestRunIsolatesFailedSource(t *testing.T) {
	first := &fakeSource{name: "first", listings: []models.Listing{
		listing("first", "Teacher of Design and Technology"),
		listing("first", "Head of Technology"),
	}}
	broken := &fakeSource{name: "broken", err: errors.New("connection refused")}
	third := &fakeSource{name: "third", listings: []models.Listing{
		listing("third", "Design Technician"),
	}}

	result := New(sourcesOf(first, broken, third), zerolog.Nop()).Run(context.Background())

	if len(result.Sections) != 3 {
		t.Fatalf("expected a section per source, got %d", len(result.Sections))
	}
	if got := []string{result.Sections[0].Source, result.Sections[1].Source, result.Sections[2].Source}; got[0] != "first" || got[1] != "broken" || got[2] != "third" {
		t.Fatalf("sections out of order: %v", got)
	}
	if len(result.Sections[0].Rows) != 2 || len(result.Sections[2].Rows) != 1 {
		t.Fatalf("healthy sources lost rows: %d, %d", len(result.Sections[0].Rows), len(result.Sections[2].Rows))
	}
	if result.Sections[1].Rows == nil || len(result.Sections[1].Rows) != 0 {
		t.Fatalf("failed source must contribute an empty, non-nil row set")
	}
	if result.Total != 3 {
		t.Fatalf("expected total 3, got %d", result.Total)
	}
	if len(result.Failures) != 1 || result.Failures[0].Source != "broken" {
		t.Fatalf("unexpected failures: %+v", result.Failures)
	}
}

func TestRunWithAllSourcesEmptyIsValid(t *testing.T) {
	result := New(sourcesOf(&fakeSource{name: "quiet"}), zerolog.Nop()).Run(context.Background())

	if result.Total != 0 {
		t.Fatalf("expected zero total, got %d", result.Total)
	}
	if len(result.Failures) != 0 {
		t.Fatalf("empty is not failure: %+v", result.Failures)
	}
	if len(result.Rows()) != 0 {
		t.Fatalf("expected no rows")
	}
}

func TestResultRowsFlattensInOrder(t *testing.T) {
	a := &fakeSource{name: "a", listings: []models.Listing{listing("a", "First")}}
	b := &fakeSource{name: "b", listings: []models.Listing{listing("b", "Second")}}

	rows := New(sourcesOf(a, b), zerolog.Nop()).Run(context.Background()).Rows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Title != "First" || rows[1].Title != "Second" {
		t.Fatalf("rows out of order: %q, %q", rows[0].Title, rows[1].Title)
	}
}
