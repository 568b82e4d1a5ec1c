package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/giordafrancis/jobdigest/internal/config"
	"github.com/giordafrancis/jobdigest/internal/digest"
	"github.com/giordafrancis/jobdigest/internal/mail"
	"github.com/giordafrancis/jobdigest/internal/models"
	"github.com/giordafrancis/jobdigest/internal/network"
	"github.com/giordafrancis/jobdigest/internal/render"
	"github.com/giordafrancis/jobdigest/internal/source"
)

type RunCmd struct {
	Distance int    `help:"Search radius in miles." env:"JOBDIGEST_DISTANCE"`
	MaxPages int    `help:"Maximum pages per paginated source." env:"JOBDIGEST_MAX_PAGES"`
	Subject  string `help:"Email subject line." default:"Design Technology Teacher Jobs Near You"`
	Email    bool   `help:"Require email delivery; fail instead of falling back to a file."`
	NoEmail  bool   `help:"Skip delivery and write the digest to the fallback file."`
	Output   string `name:"output" short:"o" help:"Fallback file path (default from config)."`
	Proxies  string `help:"Comma-separated proxy URLs." env:"JOBDIGEST_PROXIES"`
}

func (r *RunCmd) Run(ctx *Context) error {
	if r.Email && r.NoEmail {
		return fmt.Errorf("--email and --no-email are mutually exclusive")
	}

	cfg := ctx.Config
	params := searchParams(cfg, r.Distance, r.MaxPages)

	orchestrator, err := buildOrchestrator(ctx, params, r.Proxies, source.Order)
	if err != nil {
		return err
	}

	ctx.Logger.Info().Str("keywords", params.Keywords).Int("distance", params.DistanceMiles).Msg("starting digest run")
	result := orchestrator.Run(context.Background())
	reportFailures(ctx, result.Failures)

	html, err := render.HTML(result, params)
	if err != nil {
		return fmt.Errorf("render digest: %w", err)
	}

	fallbackPath := firstNonEmpty(r.Output, cfg.FallbackFile,
		"digest.html")

	if r.NoEmail {
		if err := mail.WriteFallback(fallbackPath, html); err != nil {
			return err
		}
		ctx.UI.Infof("Digest written to %s", fallbackPath)
		printRunSummary(ctx, result)
		return nil
	}

	sender := mail.NewSender(mail.Settings{
		Host:       cfg.SMTP.Host,
		Port:       cfg.SMTP.Port,
		Username:   cfg.SMTP.Username,
		Password:   cfg.SMTP.Password,
		From:       cfg.SMTP.From,
		Recipients: cfg.Recipients,
	})

	sendCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	switch err := sender.Send(sendCtx, r.Subject, html); {
	case err == nil:
		ctx.UI.Successf("Digest emailed to %d recipients", len(cfg.Recipients))
	case errors.Is(err, mail.ErrMissingCredentials) && r.Email:
		// Delivery was explicitly required; a hard misconfiguration surfaces.
		return err
	case errors.Is(err, mail.ErrNoRecipients):
		ctx.UI.Warnf("No recipients configured; writing digest to %s", fallbackPath)
		if err := mail.WriteFallback(fallbackPath, html); err != nil {
			return err
		}
	default:
		ctx.Logger.Warn().Err(err).Msg("delivery failed, using fallback file")
		ctx.UI.Warnf("Delivery failed (%v); writing digest to %s", err, fallbackPath)
		if err := mail.WriteFallback(fallbackPath, html); err != nil {
			return err
		}
	}

	printRunSummary(ctx, result)
	return nil
}

// searchParams applies command-line overrides on top of the configured
// defaults.
func searchParams(cfg config.Config, distance, maxPages int) models.SearchParams {
	params := cfg.SearchParams()
	if distance > 0 {
		params.DistanceMiles = distance
	}
	if maxPages > 0 {
		params.MaxPages = maxPages
	}
	return params
}

// buildOrchestrator wires proxies, per-source clients and the registry into
// an orchestrator over the named sources, in the given order.
func buildOrchestrator(ctx *Context, params models.SearchParams, proxiesFlag string, names []string) (*digest.Orchestrator, error) {
	proxies, err := config.LoadProxies(proxiesFlag)
	if err != nil {
		return nil, err
	}

	var rotator *network.Rotator
	if len(proxies) > 0 {
		rotator, err = network.NewRotator(proxies, 10*time.Minute)
		if err != nil {
			return nil, err
		}
	}

	registry, err := source.Registry(rotator, params, ctx.Config.GDSTSchools)
	if err != nil {
		return nil, err
	}

	sources := make([]source.Source, 0, len(names))
	for _, name := range names {
		src, ok := registry[name]
		if !ok {
			return nil, fmt.Errorf("unknown source: %s", name)
		}
		sources = append(sources, src)
	}

	return digest.New(sources, ctx.Logger), nil
}

func reportFailures(ctx *Context, failures []digest.Failure) {
	if ctx == nil || ctx.UI == nil || len(failures) == 0 {
		return
	}
	ctx.UI.Warnf("\nSource errors:")
	for _, failure := range failures {
		ctx.UI.Warnf("  %s: %v", failure.Source, failure.Err)
	}
}

func printRunSummary(ctx *Context, result digest.Result) {
	if ctx == nil || ctx.Err == nil {
		return
	}
	_, _ = fmt.Fprintf(ctx.Err, "%s\n", formatRunSummary(result))
}

func formatRunSummary(result digest.Result) string {
	parts := make([]string, 0, len(result.Sections))
	for _, section := range result.Sections {
		parts = append(parts, fmt.Sprintf("%s:%d", section.Source, len(section.Rows)))
	}
	if len(parts) == 0 {
		return "summary: jobs=0 by_source=none"
	}
	return fmt.Sprintf("summary: jobs=%d by_source=%s", result.Total, strings.Join(parts, ", "))
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
