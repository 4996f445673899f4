package untis

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"substplan/internal/components/assert"
	"substplan/internal/components/chrono"
	"substplan/internal/components/telemetry"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"
)

var tracer = otel.Tracer("substplan/scrapers/untis")

const (
	report_client_fetch       = "client.fetch"
	report_client_write_raw   = "client.write-raw"
	report_client_decode_body = "client.decode-body"
)

// RawHtmlFilename is the id the fetched page is stored under in the RawOutput.
const RawHtmlFilename = "plan.html"

// RawOutput receives a copy of every successfully fetched page for inspection.
// Nothing ever reads it back.
type RawOutput interface {
	Write(id string, contents string) error
}

type ClientOptions struct {
	BaseUrl string
	// ClassFile identifies the page of one class, ex. `w00022.htm`.
	ClassFile string
	Username  string
	Password  string
	// Timeout bounds a whole request, defaults to 30 seconds.
	Timeout time.Duration
	// RawOutput is optional.
	RawOutput RawOutput
}

// Client downloads the plan page of a single class.
type Client struct {
	http      *resty.Client
	baseUrl   string
	classFile string
	output    RawOutput
	time      chrono.API
	tel       telemetry.API
}

func NewClient(opts ClientOptions, clock chrono.API, tel telemetry.API) *Client {
	assert.NotEmptyStr(opts.BaseUrl)
	assert.NotEmptyStr(opts.ClassFile)
	assert.NotNil(clock)
	assert.NotNil(tel)

	tel = telemetry.NewScopedAPI("untis_scraper", tel)

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	httpClient := resty.New()
	httpClient.SetTimeout(timeout)
	httpClient.SetHeader("user-agent", "substplan/1.0")
	if opts.Username != "" || opts.Password != "" {
		httpClient.SetBasicAuth(opts.Username, opts.Password)
	}

	// the plan is fetched on demand by chat users, 1 request per second
	// with a burst of 3 keeps a busy channel from hammering the school's server
	rateLimiter := rate.NewLimiter(1, 3)
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return rateLimiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(httpClient, tel)

	return &Client{
		http:      httpClient,
		baseUrl:   opts.BaseUrl,
		classFile: opts.ClassFile,
		output:    opts.RawOutput,
		time:      clock,
		tel:       tel,
	}
}

// Fetch downloads the plan of the week that is current at the client's clock.
func (c *Client) Fetch(ctx context.Context) (string, error) {
	return c.FetchWeek(ctx, WeekFor(c.time.Now()))
}

// FetchWeek downloads the plan page of the given ISO week, every failure is
// returned as a *FetchError.
func (c *Client) FetchWeek(ctx context.Context, week int) (string, error) {
	endpoint := WeekURL(c.baseUrl, c.classFile, week)
	ctx, span := tracer.Start(ctx, "client:FetchWeek", trace.WithAttributes(
		attribute.String("url", endpoint),
		attribute.Int("week", week),
	))
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		Get(endpoint)
	if err != nil {
		fetchErr := &FetchError{URL: endpoint, Err: err}
		c.tel.ReportBroken(report_client_fetch, fetchErr)
		span.RecordError(fetchErr)
		span.SetStatus(codes.Error, "failed to fetch")
		return "", fetchErr
	}
	if !res.IsSuccess() {
		fetchErr := &FetchError{URL: endpoint, StatusCode: res.StatusCode()}
		c.tel.ReportBroken(report_client_fetch, fetchErr)
		span.RecordError(fetchErr)
		span.SetStatus(codes.Error, "unexpected status")
		return "", fetchErr
	}

	page, err := decodeBody(res.Body(), res.Header().Get("Content-Type"))
	if err != nil {
		// the raw bytes are still the best guess we have
		c.tel.ReportWarning(report_client_decode_body, err, endpoint)
		page = string(res.Body())
	}

	if c.output != nil {
		err = c.output.Write(RawHtmlFilename, page)
		if err != nil {
			c.tel.ReportWarning(report_client_write_raw, err)
		}
	}

	return page, nil
}

// decodeBody converts the body to utf-8, untis exports are frequently served
// as iso-8859-1.
func decodeBody(body []byte, contentType string) (string, error) {
	reader, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return "", fmt.Errorf("detect charset: %w", err)
	}
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("decode body: %w", err)
	}
	return string(decoded), nil
}
