package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// NewSession creates a discord session that receives guild and direct
// messages including their content. It is not connected yet.
func NewSession(token string) (*discordgo.Session, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent
	return session, nil
}

// Run connects the session, dispatches every created message to b and blocks
// until ctx is done.
func Run(ctx context.Context, session *discordgo.Session, b Bot) error {
	removeHandler := session.AddHandler(func(_ *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author == nil {
			return
		}
		b.HandleMessage(ctx, m.Author.Bot, m.ChannelID, m.Content)
	})
	defer removeHandler()

	session.AddHandlerOnce(func(_ *discordgo.Session, r *discordgo.Ready) {
		b.tel.ReportDebug("ready", r.User.Username)
	})

	err := session.Open()
	if err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	defer session.Close()

	<-ctx.Done()
	return nil
}
