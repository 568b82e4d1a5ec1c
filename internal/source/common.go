package source

import (
	"context"
	"fmt"
	"html"
	"math"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/giordafrancis/jobdigest/internal/models"
	"github.com/giordafrancis/jobdigest/internal/network"
)

// displayTimeLayout is the human-readable form shown in the digest,
// e.g. "14 March 2026, 09:00".
const displayTimeLayout = "02 January 2006, 15:04"

func fetchDocument(ctx context.Context, client *network.Client, target string, headers map[string]string) (*goquery.Document, error) {
	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	applyHeaders(req, headers)
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("http %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func applyHeaders(req *fhttp.Request, headers map[string]string) {
	if headers == nil {
		headers = map[string]string{}
	}
	if _, ok := headers["accept"]; !ok {
		headers["accept"] = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	}
	if _, ok := headers["accept-language"]; !ok {
		headers["accept-language"] = "en-GB,en;q=0.9"
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
}

func cleanText(value string) string {
	value = html.UnescapeString(value)
	return strings.Join(strings.Fields(value), " ")
}

func absoluteURL(base string, href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(ref).String()
}

// parseISOTime handles the ISO-style formats TES and GOV.UK publish.
func parseISOTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	layouts := []string{
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// parseSlashTime handles the DD/MM/YYYY HH:MM form the RAA board uses.
func parseSlashTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"02/01/2006 15:04", "02/01/2006"} {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func formatDisplayTime(ts time.Time) string {
	return ts.Format(displayTimeLayout)
}

// daysUntil is the whole-day distance from now to close, floored so a
// deadline 12 hours gone already reads as negative.
func daysUntil(close, now time.Time) int {
	return int(math.Floor(close.Sub(now).Hours() / 24))
}

// closingDateRule is one named free-text heuristic. School pages bury the
// deadline in prose; each rule captures a "2 March 2026"-style date after a
// known label so breakage stays attributable to a single rule.
type closingDateRule struct {
	name string
	re   *regexp.Regexp
}

var closingDateRules = []closingDateRule{
	{name: "closing-date-label", re: regexp.MustCompile(`(?i)closing\s+date[:\s]+(\d{1,2})(?:st|nd|rd|th)?\s+([A-Za-z]+)\s+(\d{4})`)},
	{name: "apply-by-label", re: regexp.MustCompile(`(?i)apply\s+by[:\s]+(\d{1,2})(?:st|nd|rd|th)?\s+([A-Za-z]+)\s+(\d{4})`)},
	{name: "deadline-label", re: regexp.MustCompile(`(?i)deadline[:\s]+(\d{1,2})(?:st|nd|rd|th)?\s+([A-Za-z]+)\s+(\d{4})`)},
	{name: "applications-close-label", re: regexp.MustCompile(`(?i)applications\s+close[:\s]+(?:on\s+)?(\d{1,2})(?:st|nd|rd|th)?\s+([A-Za-z]+)\s+(\d{4})`)},
}

// extractClosingDate runs the named rules over free text and parses the first
// match. Ordinal suffixes are already stripped by the capture groups.
func extractClosingDate(text string) (time.Time, bool) {
	text = cleanText(text)
	for _, rule := range closingDateRules {
		match := rule.re.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		candidate := fmt.Sprintf("%s %s %s", match[1], match[2], match[3])
		if ts, err := time.Parse("2 January 2006", candidate); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// pageFunc fetches one page of raw records. last reports an explicit
// "no more results" marker on the page itself.
type pageFunc func(ctx context.Context, page int) (records []models.RawRecord, last bool, err error)

// paginate walks pages sequentially from 1 and applies the shared stop rules:
// an empty page, a page shorter than pageSize, an explicit last-page marker,
// or maxPages reached. A transport failure on the first page is the source's
// failure; on a later page it just ends pagination with what was collected.
func paginate(ctx context.Context, maxPages, pageSize int, fetch pageFunc) ([]models.RawRecord, error) {
	var all []models.RawRecord
	for page := 1; maxPages <= 0 || page <= maxPages; page++ {
		records, last, err := fetch(ctx, page)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			break
		}
		if len(records) == 0 {
			break
		}
		all = append(all, records...)
		if last {
			break
		}
		if pageSize > 0 && len(records) < pageSize {
			break
		}
	}
	return all, nil
}

// stringField mirrors the loose JSON navigation used for embedded payloads:
// the first non-empty stringable value wins.
func stringField(values ...any) string {
	for _, value := range values {
		switch v := value.(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		case float64:
			return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
		case map[string]any:
			if name := stringField(v["name"]); name != "" {
				return name
			}
		}
	}
	return ""
}

// dig walks nested JSON objects by key, returning nil as soon as the path
// breaks.
func dig(value any, keys ...string) any {
	for _, key := range keys {
		m, ok := value.(map[string]any)
		if !ok {
			return nil
		}
		value = m[key]
	}
	return value
}

func joinStrings(value any, sep string) string {
	list, ok := value.([]any)
	if !ok {
		return ""
	}
	parts := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			parts = append(parts, strings.TrimSpace(s))
		}
	}
	return strings.Join(parts, sep)
}
