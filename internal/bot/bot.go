package bot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"substplan/internal/components/assert"
	"substplan/internal/components/telemetry"
	"substplan/internal/scrapers/untis"
	"substplan/internal/service"
	"time"

	"github.com/bwmarrin/discordgo"
)

const (
	report_bot_send    = "bot.send"
	report_bot_plan    = "bot.plan"
	report_bot_render  = "bot.render"
	report_bot_command = "bot.command"
)

const (
	ImageFilename = "plan.png"
	HTMLFilename  = "plan.html"
)

const (
	replyFetchFailed     = "Der Vertretungsplan konnte nicht abgerufen werden."
	replyUnreadable      = "Der Vertretungsplan konnte nicht gelesen werden."
	replyNoSubstitutions = "Diese Woche gibt es keine Vertretungen."
	replyUsage           = "Verfügbar: `!plan`, `!plan text`, `!plan html`"
)

// Messenger is the part of a chat session the bot replies through,
// *discordgo.Session implements it.
//
// note: fault injection point
type Messenger interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelFileSend(channelID, name string, r io.Reader, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// PlanAPI produces the plan in the forms the commands deliver.
type PlanAPI interface {
	Plan(ctx context.Context) (service.Plan, error)
	HTML(ctx context.Context) (string, error)
}

// Bot answers `!plan` commands.
type Bot struct {
	messenger Messenger
	plans     PlanAPI
	timeout   time.Duration
	tel       telemetry.API
}

// NewBot creates a Bot replying through messenger, timeout bounds the handling
// of a single command.
func NewBot(messenger Messenger, plans PlanAPI, timeout time.Duration, tel telemetry.API) Bot {
	assert.NotNil(messenger)
	assert.NotNil(plans)
	assert.NotNil(tel)
	assert.Positive("timeout", timeout)

	return Bot{
		messenger: messenger,
		plans:     plans,
		timeout:   timeout,
		tel:       telemetry.NewScopedAPI("bot", tel),
	}
}

// HandleMessage reacts to a single chat message, messages written by bots
// (including this one) are ignored.
func (b Bot) HandleMessage(ctx context.Context, fromBot bool, channelID, content string) {
	if fromBot {
		return
	}
	cmd := ParseCommand(content)
	if cmd.Kind == CommandNone {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	b.tel.ReportDebug("command", cmd.Kind.String(), channelID)
	err := b.Deliver(ctx, channelID, cmd)
	if err != nil {
		b.tel.ReportBroken(report_bot_command, err, cmd.Kind.String(), channelID)
	}
}

// Deliver sends the reply for cmd to a channel, the returned error only
// reports messages that could not be sent.
func (b Bot) Deliver(ctx context.Context, channelID string, cmd Command) error {
	switch cmd.Kind {
	case CommandImage:
		return b.deliverImage(ctx, channelID)
	case CommandText:
		return b.deliverText(ctx, channelID)
	case CommandHTML:
		return b.deliverHTML(ctx, channelID)
	case CommandUnknown:
		reply := fmt.Sprintf("Unbekannte Option `%s`. %s", cmd.Option, replyUsage)
		if cmd.Suggestion != "" {
			reply = fmt.Sprintf(
				"Unbekannte Option `%s`, meintest du `%s %s`?",
				cmd.Option, commandPrefix, cmd.Suggestion,
			)
		}
		return b.send(channelID, reply)
	}
	return nil
}

// plan fetches the plan, on failure the user has already been told.
func (b Bot) plan(ctx context.Context, channelID string) (service.Plan, bool, error) {
	plan, err := b.plans.Plan(ctx)
	if err != nil {
		b.tel.ReportWarning(report_bot_plan, err)
		return service.Plan{}, false, b.send(channelID, failureReply(err))
	}
	return plan, true, nil
}

func (b Bot) deliverImage(ctx context.Context, channelID string) error {
	plan, ok, err := b.plan(ctx, channelID)
	if !ok {
		return err
	}
	if plan.Empty() {
		return b.sendWithNotes(channelID, plan, replyNoSubstitutions)
	}

	data, err := plan.PNG()
	if err != nil {
		b.tel.ReportWarning(report_bot_render, err)
		return b.sendText(channelID, plan)
	}

	_, err = b.messenger.ChannelFileSend(channelID, ImageFilename, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("send image: %w", err)
	}
	return b.sendNotes(channelID, plan)
}

func (b Bot) deliverText(ctx context.Context, channelID string) error {
	plan, ok, err := b.plan(ctx, channelID)
	if !ok {
		return err
	}
	if plan.Empty() {
		return b.sendWithNotes(channelID, plan, replyNoSubstitutions)
	}
	return b.sendText(channelID, plan)
}

func (b Bot) sendText(channelID string, plan service.Plan) error {
	for _, chunk := range FencedChunks(plan.Text, MessageLimit) {
		err := b.send(channelID, chunk)
		if err != nil {
			return err
		}
	}
	return b.sendNotes(channelID, plan)
}

func (b Bot) deliverHTML(ctx context.Context, channelID string) error {
	page, err := b.plans.HTML(ctx)
	if err != nil {
		b.tel.ReportWarning(report_bot_plan, err)
		return b.send(channelID, failureReply(err))
	}
	_, err = b.messenger.ChannelFileSend(channelID, HTMLFilename, strings.NewReader(page))
	if err != nil {
		return fmt.Errorf("send html: %w", err)
	}
	return nil
}

func (b Bot) sendWithNotes(channelID string, plan service.Plan, message string) error {
	if note := skippedNote(plan); note != "" {
		message += "\n" + note
	}
	return b.send(channelID, message)
}

func (b Bot) sendNotes(channelID string, plan service.Plan) error {
	note := skippedNote(plan)
	if note == "" {
		return nil
	}
	return b.send(channelID, note)
}

func (b Bot) send(channelID, content string) error {
	_, err := b.messenger.ChannelMessageSend(channelID, content)
	if err != nil {
		b.tel.ReportBroken(report_bot_send, err, channelID)
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

func skippedNote(plan service.Plan) string {
	labels := plan.SkippedLabels()
	if len(labels) == 0 {
		return ""
	}
	return fmt.Sprintf("Nicht lesbar: %s", strings.Join(labels, ", "))
}

func failureReply(err error) string {
	var fetchErr *untis.FetchError
	if errors.As(err, &fetchErr) {
		return replyFetchFailed
	}
	var parseErr *untis.ParseError
	if errors.As(err, &parseErr) {
		return replyUnreadable
	}
	// context deadline and anything unexpected
	return replyFetchFailed
}
