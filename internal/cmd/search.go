package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/giordafrancis/jobdigest/internal/export"
	"github.com/giordafrancis/jobdigest/internal/source"
	"github.com/muesli/termenv"
)

type SearchCmd struct {
	Sources  string `arg:"" optional:"" help:"Comma-separated source names (default: all)." default:"all"`
	Distance int    `help:"Search radius in miles." env:"JOBDIGEST_DISTANCE"`
	MaxPages int    `help:"Maximum pages per paginated source." env:"JOBDIGEST_MAX_PAGES"`
	Format   string `help:"Output format: csv, json, md, tsv, table." enum:",csv,json,md,tsv,table" default:""`
	Links    string `help:"Table link display: short or full." enum:"short,full" default:"full"`
	Output   string `name:"output" short:"o" help:"Write output to a file."`
	Proxies  string `help:"Comma-separated proxy URLs." env:"JOBDIGEST_PROXIES"`
}

func (s *SearchCmd) Run(ctx *Context) error {
	names, err := selectSources(s.Sources)
	if err != nil {
		return err
	}

	params := searchParams(ctx.Config, s.Distance, s.MaxPages)
	orchestrator, err := buildOrchestrator(ctx, params, s.Proxies, names)
	if err != nil {
		return err
	}

	result := orchestrator.Run(context.Background())
	reportFailures(ctx, result.Failures)

	format, err := resolveFormat(ctx, s.Format, s.Output)
	if err != nil {
		return err
	}

	writer := ctx.Out
	if s.Output != "" {
		file, err := os.Create(s.Output)
		if err != nil {
			return err
		}
		defer file.Close()
		writer = file
	}

	colorEnabled := ctx.UI != nil && ctx.UI.ColorEnabled
	hyperlinks := colorEnabled && isTTY(writer)
	linkStyle := export.LinkStyleFull
	if strings.EqualFold(s.Links, string(export.LinkStyleShort)) {
		linkStyle = export.LinkStyleShort
	}

	if err := export.WriteRows(writer, result.Rows(), format, export.WriteOptions{
		ColorEnabled: colorEnabled,
		Hyperlinks:   hyperlinks,
		LinkStyle:    linkStyle,
	}); err != nil {
		return err
	}

	printRunSummary(ctx, result)
	return nil
}

// selectSources resolves the requested names against the registry's closed
// set, preserving configured order and expanding common aliases.
func selectSources(arg string) ([]string, error) {
	requested := source.NormalizeNames(strings.Split(arg, ","))
	if len(requested) == 0 || (len(requested) == 1 && requested[0] == "all") {
		return append([]string{}, source.Order...), nil
	}

	known := make(map[string]struct{}, len(source.Order))
	for _, name := range source.Order {
		known[name] = struct{}{}
	}

	names := make([]string, 0, len(requested))
	for _, name := range requested {
		name = expandAlias(name)
		if _, ok := known[name]; !ok {
			return nil, fmt.Errorf("unknown source: %s", name)
		}
		names = append(names, name)
	}
	return names, nil
}

func expandAlias(name string) string {
	switch name {
	case "gov", "gov.uk", "teaching-vacancies":
		return source.SourceGovUK
	case "tes.com":
		return source.SourceTES
	case "sutton-high", "sutton":
		return source.SourceSuttonHigh
	default:
		return name
	}
}

func resolveFormat(ctx *Context, flagValue, outputPath string) (export.Format, error) {
	if ctx.JSONOutput {
		return export.FormatJSON, nil
	}
	if ctx.PlainText {
		return export.FormatTSV, nil
	}
	if flagValue != "" {
		return parseFormat(flagValue)
	}
	if outputPath != "" {
		return export.FormatCSV, nil
	}
	if isTTY(ctx.Out) {
		return export.FormatTable, nil
	}
	return export.FormatCSV, nil
}

func parseFormat(value string) (export.Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "csv":
		return export.FormatCSV, nil
	case "json":
		return export.FormatJSON, nil
	case "md", "markdown":
		return export.FormatMarkdown, nil
	case "tsv":
		return export.FormatTSV, nil
	case "table", "":
		return export.FormatTable, nil
	default:
		return "", fmt.Errorf("unknown format: %s", value)
	}
}

func isTTY(out io.Writer) bool {
	output := termenv.NewOutput(out)
	return output.ColorProfile() != termenv.Ascii
}
