package commands

import (
	"fmt"
	"substplan/internal/components/chrono"
	"substplan/internal/components/telemetry"
	"substplan/internal/render"
	"substplan/internal/scrapers/untis"
	"substplan/internal/service"
	"substplan/pkg/configutil"
	"substplan/pkg/fsoutput"
	"time"
)

type UpstreamConfig struct {
	BaseUrl        string `json:"base_url"`
	ClassFile      string `json:"class_file"`
	Username       string `json:"username"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	// Password is only ever read from PLAN_PASSWORD.
	Password string `json:"-"`
}

type ScheduleConfig struct {
	// Cron is a standard 5 field cron spec in the configured timezone, the
	// scheduled post is disabled when it is empty.
	Cron      string `json:"cron"`
	ChannelID string `json:"channel_id"`
}

type BotConfig struct {
	// Token is only ever read from BOT.
	Token          string         `json:"-"`
	TimeoutSeconds int            `json:"timeout_seconds"`
	Schedule       ScheduleConfig `json:"schedule"`
}

type Config struct {
	Upstream     UpstreamConfig   `json:"upstream"`
	Bot          BotConfig        `json:"bot"`
	Timezone     string           `json:"timezone"`
	RawOutputDir string           `json:"raw_output_dir"`
	Truncate     bool             `json:"truncate"`
	Telemetry    telemetry.Config `json:"telemetry"`
}

var defaultConfig = Config{
	Upstream: UpstreamConfig{
		BaseUrl:        "https://www.wvsgym.de/vertretungsplans",
		ClassFile:      "w00022.htm",
		Username:       "schueler",
		TimeoutSeconds: 30,
	},
	Bot: BotConfig{
		TimeoutSeconds: 60,
	},
	Timezone:     "Europe/Berlin",
	RawOutputDir: ".",
}

func loadConfig(path string) (Config, error) {
	cfg, err := configutil.ReadConfigWithDefaults(path, defaultConfig)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	configutil.OverrideFromEnv(map[string]*string{
		"BOT":           &cfg.Bot.Token,
		"PLAN_PASSWORD": &cfg.Upstream.Password,
	})
	return cfg, nil
}

func newClock(cfg Config, date string) (chrono.API, error) {
	clock, err := chrono.NewStandardImpl(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}
	if date == "" {
		return clock, nil
	}
	at, err := time.ParseInLocation(time.DateOnly, date, clock.Location())
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", date, err)
	}
	return chrono.FixedImpl{At: at}, nil
}

func newPlanService(cfg Config, clock chrono.API, tel telemetry.API) (service.PlanService, error) {
	opts := untis.ClientOptions{
		BaseUrl:   cfg.Upstream.BaseUrl,
		ClassFile: cfg.Upstream.ClassFile,
		Username:  cfg.Upstream.Username,
		Password:  cfg.Upstream.Password,
		Timeout:   time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second,
	}
	if cfg.RawOutputDir != "" {
		output, err := fsoutput.NewFilesystemOutput(cfg.RawOutputDir)
		if err != nil {
			return service.PlanService{}, fmt.Errorf("create raw output: %w", err)
		}
		opts.RawOutput = output
	}

	client := untis.NewClient(opts, clock, tel)

	serviceOpts := []service.PlanServiceOption{service.WithCustomTelemetryAPI(tel)}
	if cfg.Truncate {
		serviceOpts = append(serviceOpts, service.WithRenderOptions(render.WithTruncation()))
	}
	return service.NewPlanService(client, serviceOpts...), nil
}
