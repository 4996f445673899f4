package bot

import (
	"context"
	"fmt"
	"substplan/internal/components/chrono"
)

const report_bot_scheduled_post = "bot.scheduled-post"

// SchedulePost posts the plan image to channelID every time spec fires.
func SchedulePost(ctx context.Context, cron chrono.CronAPI, spec, channelID string, b Bot) error {
	err := cron.Cron(spec, func() {
		if ctx.Err() != nil {
			return
		}
		postCtx, cancel := context.WithTimeout(ctx, b.timeout)
		defer cancel()

		err := b.Deliver(postCtx, channelID, Command{Kind: CommandImage})
		if err != nil {
			b.tel.ReportBroken(report_bot_scheduled_post, err, channelID)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule post %q: %w", spec, err)
	}
	return nil
}
