package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Bot connects the Discord gateway to the command dispatcher. Messages
// outside the allowed channel set, or without the command prefix, are
// dropped silently.
type Bot struct {
	session         *discordgo.Session
	dispatcher      *Dispatcher
	prefix          string
	allowedChannels map[string]struct{}
	logger          *zap.Logger
}

func New(token, prefix string, allowedChannels []string, dispatcher *Dispatcher, logger *zap.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	if logger == nil {
		logger = zap.NewNop()
	}
	allowed := make(map[string]struct{}, len(allowedChannels))
	for _, ch := range allowedChannels {
		allowed[ch] = struct{}{}
	}

	b := &Bot{
		session:         session,
		dispatcher:      dispatcher,
		prefix:          prefix,
		allowedChannels: allowed,
		logger:          logger,
	}
	session.AddHandler(b.onMessageCreate)
	return b, nil
}

// Run opens the gateway session and blocks until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	b.logger.Info("discord session open",
		zap.Int("allowed_channels", len(b.allowedChannels)),
		zap.String("prefix", b.prefix))

	<-ctx.Done()
	return b.session.Close()
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID || m.Author.Bot {
		return
	}
	if _, ok := b.allowedChannels[m.ChannelID]; !ok {
		return
	}
	content := strings.TrimSpace(m.Content)
	if !strings.HasPrefix(content, b.prefix) {
		return
	}
	line := strings.TrimPrefix(content, b.prefix)

	b.logger.Debug("command received",
		zap.String("channel", m.ChannelID), zap.String("content", content))

	// Remote calls may block; keep the gateway handler free.
	go func() {
		responses := b.dispatcher.Dispatch(context.Background(), line)
		b.send(m.ChannelID, responses)
	}()
}

// Announce pushes unprompted responses to a channel, used by the daily
// scheduler.
func (b *Bot) Announce(channelID string, responses []Response) {
	if b == nil {
		return
	}
	b.send(channelID, responses)
}

func (b *Bot) send(channelID string, responses []Response) {
	for _, r := range responses {
		var err error
		if r.Embed != nil {
			_, err = b.session.ChannelMessageSendEmbed(channelID, r.Embed)
		} else if r.Content != "" {
			_, err = b.session.ChannelMessageSend(channelID, r.Content)
		}
		if err != nil {
			b.logger.Warn("send failed", zap.String("channel", channelID), zap.Error(err))
		}
	}
}
