package commands

import (
	"context"
	"errors"
	"log/slog"
	"substplan/internal/bot"
	"substplan/internal/components/chrono"
	"substplan/internal/components/telemetry"
	"substplan/pkg/serviceutil"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Connects to discord and answers !plan until interrupted.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		cfg, err := loadConfig(*configPath)
		if err != nil {
			serviceutil.Fatal("failed to load config", err)
		}
		if cfg.Bot.Token == "" {
			serviceutil.Fatal("missing discord token", errors.New("environment variable BOT is not set"))
		}

		otel, err := telemetry.Setup(ctx, "substplan", cfg.Telemetry)
		if err != nil {
			serviceutil.Fatal("failed to setup telemetry", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			err := otel.Shutdown(shutdownCtx)
			if err != nil {
				slog.Warn("failed to flush telemetry", "err", err)
			}
		}()

		tel := telemetry.SlogAPI{}
		clock, err := newClock(cfg, "")
		if err != nil {
			serviceutil.Fatal("failed to create clock", err)
		}
		plans, err := newPlanService(cfg, clock, tel)
		if err != nil {
			serviceutil.Fatal("failed to create plan service", err)
		}

		session, err := bot.NewSession(cfg.Bot.Token)
		if err != nil {
			serviceutil.Fatal("failed to create discord session", err)
		}
		b := bot.NewBot(
			session,
			plans,
			time.Duration(cfg.Bot.TimeoutSeconds)*time.Second,
			tel,
		)

		if cfg.Bot.Schedule.Cron != "" {
			cron := chrono.NewStandardCron(clock, tel)
			err = bot.SchedulePost(ctx, cron, cfg.Bot.Schedule.Cron, cfg.Bot.Schedule.ChannelID, b)
			if err != nil {
				serviceutil.Fatal("failed to schedule post", err)
			}
			cron.Start()
			defer cron.Stop()
			slog.Info("scheduled post enabled", "cron", cfg.Bot.Schedule.Cron, "channel", cfg.Bot.Schedule.ChannelID)
		}

		slog.Info("serving", "base_url", cfg.Upstream.BaseUrl, "class_file", cfg.Upstream.ClassFile)
		err = bot.Run(ctx, session, b)
		if err != nil {
			serviceutil.Fatal("bot stopped", err)
		}
	},
}
