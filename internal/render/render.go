package render

import (
	"html/template"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/giordafrancis/jobdigest/internal/digest"
	"github.com/giordafrancis/jobdigest/internal/models"
)

const digestTemplate = `<!DOCTYPE html>
<html>
<head>
<style>
  body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
  .container { max-width: 800px; margin: 0 auto; padding: 20px; }
  h1 { color: #2c3e50; border-bottom: 2px solid #eee; padding-bottom: 10px; }
  h2 { color: #3498db; margin-top: 30px; }
  table { border-collapse: collapse; width: 100%; margin-top: 20px; }
  th, td { text-align: left; padding: 12px; }
  th { background-color: #3498db; color: white; }
  tr:nth-child(even) { background-color: #f2f2f2; }
  .urgent { background-color: #fff8e8; border-left: 4px solid #f39c12; }
  .job-title { font-weight: bold; color: #2c3e50; }
  .apply-by { font-weight: bold; color: #e74c3c; }
  .search-link a { color: #3498db; text-decoration: none; font-weight: bold; }
</style>
</head>
<body>
<div class="container">
  <h1>Design Technology Teacher Job Listings</h1>
  <p>Search performed on {{.GeneratedAt}}, covering jobs within {{.Distance}} mi of your home postcode plus local school career pages</p>
  <div class="search-link"><a href="{{.SearchURL}}" target="_blank">View all results on TES Jobs &rarr;</a></div>
  <h2>A total of {{.Total}} jobs found</h2>
  {{- range .Sections}}
  {{- if .Rows}}
  <h2>{{.Name}} ({{len .Rows}})</h2>
  <table>
    <tr>
      <th>Job Title</th><th>School</th><th>Location</th><th>Contract</th><th>Salary</th><th>Apply By</th><th>Link</th>
    </tr>
    {{- range .Rows}}
    <tr{{if .Urgent}} class="urgent"{{end}}>
      <td class="job-title">{{.Title}}</td>
      <td>{{.Employer}}</td>
      <td>{{.Location}}</td>
      <td>{{.Contract}}</td>
      <td>{{.Salary}}</td>
      <td class="apply-by">{{.ClosingDate}}</td>
      <td>{{if .URL}}<a href="{{.URL}}" target="_blank">View Job</a>{{else}}-{{end}}</td>
    </tr>
    {{- end}}
  </table>
  {{- end}}
  {{- end}}
  <p><small>Jobs closing within a week are highlighted. Listings are rebuilt in full on every run.</small></p>
</div>
</body>
</html>
`

var digestTmpl = template.Must(template.New("digest").Parse(digestTemplate))

type page struct {
	GeneratedAt string
	Distance    int
	SearchURL   string
	Total       int
	Sections    []section
}

type section struct {
	Name string
	Rows []row
}

type row struct {
	Title       string
	Employer    string
	Location    string
	Contract    string
	Salary      string
	ClosingDate string
	URL         string
	Urgent      bool
}

// urgentWindow marks rows whose deadline is within a week.
const urgentWindow = 7

// HTML renders the aggregated digest into the email document. Pure function
// of its inputs apart from the generation timestamp.
func HTML(result digest.Result, params models.SearchParams) (string, error) {
	data := page{
		GeneratedAt: time.Now().Format("02 January 2006 at 15:04"),
		Distance:    params.DistanceMiles,
		SearchURL:   searchURL(params),
		Total:       result.Total,
	}

	for _, sec := range result.Sections {
		rows := make([]row, 0, len(sec.Rows))
		for _, r := range sec.Rows {
			rows = append(rows, row{
				Title:       orDash(r.Title),
				Employer:    orDash(r.Employer),
				Location:    orDash(r.Location),
				Contract:    contractText(r),
				Salary:      orDash(r.Salary),
				ClosingDate: orDash(r.ClosingDate),
				URL:         linkURL(r.URL),
				Urgent:      r.DaysRemaining != nil && *r.DaysRemaining >= 0 && *r.DaysRemaining <= urgentWindow,
			})
		}
		data.Sections = append(data.Sections, section{Name: sectionName(sec.Source), Rows: rows})
	}

	var b strings.Builder
	if err := digestTmpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

// searchURL is the clickable TES search the digest was built from.
func searchURL(params models.SearchParams) string {
	values := url.Values{}
	values.Set("keywords", params.Keywords)
	values.Set("displayLocation", params.Postcode)
	values.Set("lat", params.Latitude)
	values.Set("lon", params.Longitude)
	values.Set("distance", strconv.Itoa(params.DistanceMiles))
	values.Set("distanceUnit", "mi")
	values.Set("sort", params.Sort)
	values.Set("page", "1")
	return "https://www.tes.com/jobs/search?" + values.Encode()
}

var sectionNames = map[string]string{
	"tes":        "TES",
	"govuk":      "GOV.UK Teaching Vacancies",
	"raa":        "Royal Alexandra and Albert School",
	"dunottar":   "Dunottar School",
	"woldingham": "Woldingham School",
	"suttonhigh": "Sutton High School",
	"gdst":       "GDST",
}

func sectionName(source string) string {
	if name, ok := sectionNames[source]; ok {
		return name
	}
	return source
}

func contractText(r models.Row) string {
	switch {
	case r.ContractTerm != "" && r.ContractType != "":
		return r.ContractTerm + " / " + r.ContractType
	case r.ContractTerm != "":
		return r.ContractTerm
	case r.ContractType != "":
		return r.ContractType
	}
	return "-"
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Not specified"
	}
	return value
}

func linkURL(value string) string {
	if value == "" || value == "No URL available" {
		return ""
	}
	return value
}
