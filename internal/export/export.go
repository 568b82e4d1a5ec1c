package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/giordafrancis/jobdigest/internal/models"
	"github.com/muesli/termenv"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatTSV      Format = "tsv"
)

type WriteOptions struct {
	ColorEnabled bool
	Hyperlinks   bool
	LinkStyle    LinkStyle
}

type LinkStyle string

const (
	LinkStyleShort LinkStyle = "short"
	LinkStyleFull  LinkStyle = "full"
)

// WriteRows emits the standardized presentation rows in the requested format.
func WriteRows(w io.Writer, rows []models.Row, format Format, opts WriteOptions) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, rows)
	case FormatCSV:
		return writeCSV(w, rows, ',')
	case FormatTSV:
		return writeCSV(w, rows, '\t')
	case FormatMarkdown:
		return writeMarkdown(w, rows)
	default:
		return writeTable(w, rows, opts)
	}
}

func writeJSON(w io.Writer, rows []models.Row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func writeCSV(w io.Writer, rows []models.Row, delim rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = delim
	if err := writer.Write(csvHeader()); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write(csvRow(row)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeTable(w io.Writer, rows []models.Row, opts WriteOptions) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(tableHeader(), "\t"))
	output := termenv.NewOutput(w)
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(tableRow(row, output, opts), "\t"))
	}
	return tw.Flush()
}

func writeMarkdown(w io.Writer, rows []models.Row) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No results.")
		return err
	}
	for _, row := range rows {
		urlLine := "  URL: -"
		if link := safe(row.URL); link != "" {
			urlLine = fmt.Sprintf("  URL: [Open listing](<%s>)", link)
		}
		lines := []string{
			fmt.Sprintf("- **%s** (%s)", safe(row.Title), safe(row.Employer)),
			fmt.Sprintf("  Source: %s", safe(row.Source)),
			urlLine,
		}
		if row.Location != "" {
			lines = append(lines, fmt.Sprintf("  Location: %s", safe(row.Location)))
		}
		if contract := contractLine(row); contract != "" {
			lines = append(lines, fmt.Sprintf("  Contract: %s", contract))
		}
		if row.Salary != "" {
			lines = append(lines, fmt.Sprintf("  Salary: %s", safe(row.Salary)))
		}
		if row.ClosingDate != "" {
			lines = append(lines, fmt.Sprintf("  Apply by: %s", safe(row.ClosingDate)))
		}
		if row.DaysRemaining != nil {
			lines = append(lines, fmt.Sprintf("  Days remaining: %d", *row.DaysRemaining))
		}
		if row.Description != "" {
			lines = append(lines, fmt.Sprintf("  Summary: %s", safe(row.Description)))
		}
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func contractLine(row models.Row) string {
	parts := make([]string, 0, 2)
	if row.ContractTerm != "" {
		parts = append(parts, row.ContractTerm)
	}
	if row.ContractType != "" {
		parts = append(parts, row.ContractType)
	}
	return strings.Join(parts, " / ")
}

func csvHeader() []string {
	return []string{
		"source",
		"title",
		"employer_name",
		"location",
		"contract_type",
		"contract_term",
		"salary",
		"closing_date",
		"days_remaining",
		"description",
		"url_",
	}
}

func csvRow(row models.Row) []string {
	days := ""
	if row.DaysRemaining != nil {
		days = strconv.Itoa(*row.DaysRemaining)
	}
	return []string{
		row.Source,
		row.Title,
		row.Employer,
		row.Location,
		row.ContractType,
		row.ContractTerm,
		row.Salary,
		row.ClosingDate,
		days,
		row.Description,
		row.URL,
	}
}

func safe(value string) string {
	return strings.TrimSpace(value)
}

func tableHeader() []string {
	return []string{
		"source",
		"title",
		"employer",
		"closing",
		"url",
	}
}

func tableRow(row models.Row, output *termenv.Output, opts WriteOptions) []string {
	const linkColor = "#87CEEB"

	link := safe(row.URL)
	displayURL := "-"
	if link != "" {
		displayURL = link
		if opts.LinkStyle == LinkStyleShort && opts.Hyperlinks {
			displayURL = shortURLLabel(link)
		}
		if opts.ColorEnabled {
			displayURL = output.String(displayURL).Foreground(output.Color(linkColor)).String()
		}
		if opts.Hyperlinks {
			displayURL = hyperlink(link, displayURL)
		}
	}

	closing := safe(row.ClosingDate)
	if closing == "" {
		closing = "-"
	}

	return []string{
		safe(row.Source),
		safe(row.Title),
		safe(row.Employer),
		closing,
		displayURL,
	}
}

func hyperlink(url string, text string) string {
	const esc = "\x1b"
	return esc + "]8;;" + url + esc + "\\" + text + esc + "]8;;" + esc + "\\"
}

func shortURLLabel(raw string) string {
	const maxLen = 60
	label := strings.TrimSpace(raw)
	if parsed, err := url.Parse(raw); err == nil {
		host := strings.TrimPrefix(parsed.Host, "www.")
		if host != "" {
			label = host + parsed.Path
		}
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = raw
	}
	if len(label) > maxLen {
		label = label[:maxLen-3] + "..."
	}
	return label
}
