package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"substplan/internal/components/chrono"
	"substplan/internal/components/telemetry"
	"substplan/internal/render"
	"substplan/internal/scrapers/untis"
	"substplan/internal/service"
	"substplan/pkg/fsoutput"
	"substplan/pkg/serviceutil"

	"github.com/spf13/cobra"
)

var (
	planFormat *string
	planOut    *string
	planDate   *string
)

func init() {
	planFormat = planCmd.Flags().StringP("format", "f", "text", "The output format: text, image, html, pretty or ics.")
	planOut = planCmd.Flags().StringP("out", "o", "", "The file to write to, stdout when empty.")
	planDate = planCmd.Flags().String("date", "", "Fetch the plan as if today was this date (YYYY-MM-DD).")
	rootCmd.AddCommand(planCmd)
}

var validFormats = map[string]bool{
	"text":   true,
	"image":  true,
	"html":   true,
	"pretty": true,
	"ics":    true,
}

var planCmd = &cobra.Command{
	Use:   "plan [--format text|image|html|pretty|ics] [--out <file>] [--date <YYYY-MM-DD>]",
	Short: "Fetches the current plan once and prints it.",
	Run: func(cmd *cobra.Command, args []string) {
		if !validFormats[*planFormat] {
			serviceutil.Fatal("invalid --format", fmt.Errorf("unknown format %q", *planFormat))
		}

		cfg, err := loadConfig(*configPath)
		if err != nil {
			serviceutil.Fatal("failed to load config", err)
		}
		clock, err := newClock(cfg, *planDate)
		if err != nil {
			serviceutil.Fatal("failed to create clock", err)
		}
		plans, err := newPlanService(cfg, clock, telemetry.SlogAPI{})
		if err != nil {
			serviceutil.Fatal("failed to create plan service", err)
		}

		output, err := planOutput(cmd, plans, clock, *planFormat)
		if err != nil {
			serviceutil.Fatal("failed to produce plan", err)
		}

		if *planOut == "" {
			_, err = cmd.OutOrStdout().Write([]byte(output))
			if err != nil {
				serviceutil.Fatal("failed to write plan", err)
			}
			return
		}
		out, err := fsoutput.NewFilesystemOutput(filepath.Dir(*planOut))
		if err != nil {
			serviceutil.Fatal("failed to create output directory", err)
		}
		err = out.Write(filepath.Base(*planOut), output)
		if err != nil {
			serviceutil.Fatal("failed to write plan", err)
		}
		slog.Info("wrote plan", "path", out.Path(filepath.Base(*planOut)))
	},
}

func planOutput(cmd *cobra.Command, plans service.PlanService, clock chrono.API, format string) (string, error) {
	ctx := cmd.Context()

	if format == "html" {
		return plans.HTML(ctx)
	}

	plan, err := plans.Plan(ctx)
	if err != nil {
		return "", err
	}
	if labels := plan.SkippedLabels(); len(labels) > 0 {
		slog.Warn("skipped unreadable days", "days", labels)
	}
	if plan.Empty() {
		fmt.Fprintln(os.Stderr, "Diese Woche gibt es keine Vertretungen.")
		return "", nil
	}

	switch format {
	case "text":
		return plan.Text + "\n", nil
	case "pretty":
		return render.Pretty(plan.Days) + "\n", nil
	case "image":
		data, err := plan.PNG()
		if err != nil {
			return "", err
		}
		return string(data), nil
	case "ics":
		now := clock.Now()
		return render.Calendar(plan.Days, untis.MondayOf(now), now)
	}
	return "", fmt.Errorf("unknown format %q", format)
}
