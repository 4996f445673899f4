package service

import (
	"context"
	"substplan/internal/components/assert"
	"substplan/internal/components/telemetry"
	"substplan/internal/render"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

var tracer = otel.Tracer("substplan/service")

const (
	report_plan_fetch = "plan.fetch"
	report_plan_parse = "plan.parse"
	report_plan_meter = "plan.meter"
)

// FetchAPI is anything that can download the current plan page.
//
// note: fault injection point
type FetchAPI interface {
	Fetch(ctx context.Context) (string, error)
}

// PlanService runs fetch -> parse -> render for every request. It holds no
// state between calls, concurrent use is safe as long as the FetchAPI is.
type PlanService struct {
	fetcher    FetchAPI
	tel        telemetry.API
	renderOpts []render.Option
	requests   metric.Int64Counter
}

type planServiceConfig struct {
	tel        telemetry.API
	renderOpts []render.Option
}

type PlanServiceOption func(cfg *planServiceConfig)

func WithCustomTelemetryAPI(tel telemetry.API) PlanServiceOption {
	return func(cfg *planServiceConfig) {
		cfg.tel = tel
	}
}

func WithRenderOptions(opts ...render.Option) PlanServiceOption {
	return func(cfg *planServiceConfig) {
		cfg.renderOpts = append(cfg.renderOpts, opts...)
	}
}

func NewPlanService(fetcher FetchAPI, options ...PlanServiceOption) PlanService {
	assert.NotNil(fetcher)

	cfg := planServiceConfig{
		tel: telemetry.SlogAPI{},
	}
	for _, opt := range options {
		opt(&cfg)
	}
	tel := telemetry.NewScopedAPI("service", cfg.tel)

	requests, err := otel.Meter("substplan/service").Int64Counter(
		"substplan.plan.requests",
		metric.WithDescription("plans requested, by outcome"),
	)
	if err != nil {
		tel.ReportWarning(report_plan_meter, err)
		requests, _ = noop.Meter{}.Int64Counter("substplan.plan.requests")
	}

	return PlanService{
		fetcher:    fetcher,
		tel:        tel,
		renderOpts: cfg.renderOpts,
		requests:   requests,
	}
}
