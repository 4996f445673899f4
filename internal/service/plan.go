package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"substplan/internal/render"
	"substplan/internal/scrapers/untis"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

// Plan is the result of one fetch -> parse -> render run.
type Plan struct {
	Days []untis.Day
	Text string
	// Skipped holds the tables that could not be read, every day in Days is complete.
	Skipped []*untis.ParseError
}

// Empty is true when there is nothing to show.
func (p Plan) Empty() bool {
	return strings.TrimSpace(p.Text) == ""
}

// SkippedLabels names the skipped tables by weekday where one is known.
func (p Plan) SkippedLabels() []string {
	labels := make([]string, 0, len(p.Skipped))
	for _, skipped := range p.Skipped {
		if skipped.Weekday != "" {
			labels = append(labels, skipped.Weekday)
			continue
		}
		labels = append(labels, fmt.Sprintf("Tabelle %d", skipped.Table+1))
	}
	return labels
}

// PNG rasterizes the plan's text. An empty plan returns nil and no error,
// failures are *render.RenderError and the caller should fall back to Text.
func (p Plan) PNG() ([]byte, error) {
	img, err := render.Image(p.Text)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	err = render.EncodePNG(&buf, img)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// HTML returns the raw plan page, any error is an *untis.FetchError.
func (s PlanService) HTML(ctx context.Context) (string, error) {
	ctx, span := tracer.Start(ctx, "PlanService:HTML")
	defer span.End()

	page, err := s.fetcher.Fetch(ctx)
	if err != nil {
		s.tel.ReportBroken(report_plan_fetch, err)
		span.SetStatus(codes.Error, "failed to fetch")
		s.count(ctx, "fetch_error")
		return "", err
	}
	s.count(ctx, "html")
	return page, nil
}

// Plan fetches, parses and renders the current plan.
//
// A fetch failure (*untis.FetchError) or a page without any substitution table
// (*untis.ParseError wrapping untis.ErrNoTables) is returned as an error.
// Tables that could not be read are listed in Plan.Skipped instead.
func (s PlanService) Plan(ctx context.Context) (Plan, error) {
	ctx, span := tracer.Start(ctx, "PlanService:Plan")
	defer span.End()

	page, err := s.fetcher.Fetch(ctx)
	if err != nil {
		s.tel.ReportBroken(report_plan_fetch, err)
		span.SetStatus(codes.Error, "failed to fetch")
		s.count(ctx, "fetch_error")
		return Plan{}, err
	}

	days, err := untis.Parse(ctx, page)
	if errors.Is(err, untis.ErrNoTables) {
		s.tel.ReportBroken(report_plan_parse, err)
		span.SetStatus(codes.Error, "no substitution tables")
		s.count(ctx, "parse_error")
		return Plan{}, err
	}

	skipped := collectParseErrors(err)
	for _, parseErr := range skipped {
		s.tel.ReportWarning(report_plan_parse, parseErr)
	}
	if err != nil && len(skipped) == 0 {
		// Parse only returns *ParseError, anything else is a bug worth seeing
		s.tel.ReportBroken(report_plan_parse, err)
	}

	text := render.Text(days, s.renderOpts...)
	span.SetAttributes(
		attribute.Int("days", len(days)),
		attribute.Int("skipped", len(skipped)),
	)
	s.count(ctx, "ok")

	return Plan{
		Days:    days,
		Text:    text,
		Skipped: skipped,
	}, nil
}

func (s PlanService) count(ctx context.Context, outcome string) {
	s.requests.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func collectParseErrors(err error) []*untis.ParseError {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []*untis.ParseError
		for _, inner := range joined.Unwrap() {
			out = append(out, collectParseErrors(inner)...)
		}
		return out
	}
	var parseErr *untis.ParseError
	if errors.As(err, &parseErr) {
		return []*untis.ParseError{parseErr}
	}
	return nil
}
