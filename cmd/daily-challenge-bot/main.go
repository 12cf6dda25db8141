package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/0hneB/Daily-Challenge-Bot/internal/bot"
	"github.com/0hneB/Daily-Challenge-Bot/internal/challenge"
	appcfg "github.com/0hneB/Daily-Challenge-Bot/internal/config"
	"github.com/0hneB/Daily-Challenge-Bot/internal/geoguessr"
	"github.com/0hneB/Daily-Challenge-Bot/internal/msgcat"
	"github.com/0hneB/Daily-Challenge-Bot/internal/obslog"
	"github.com/0hneB/Daily-Challenge-Bot/internal/scheduler"
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer obslog.Sync()
	logger := obslog.L()

	catalog, err := msgcat.New(cfg.MsgOverrideDir)
	if err != nil {
		logger.Fatal("message catalog init failed", zap.Error(err))
	}

	client := geoguessr.NewClient(cfg.GeoguessrToken,
		geoguessr.WithBaseURL(cfg.GeoguessrBaseURL),
		geoguessr.WithTimeout(cfg.HTTPTimeout),
		geoguessr.WithLogger(logger.Named("geoguessr")),
	)

	rotation := challenge.DefaultRotation()
	manager := challenge.NewManager(client, rotation,
		challenge.WithLeaderboardCap(cfg.LeaderboardLimit),
		challenge.WithLogger(logger.Named("challenge")),
	)

	formatter := bot.NewFormatter(catalog, cfg.BotPrefix)

	// Daily results land in the first allowed channel.
	announceChannel := cfg.AllowedChannels[0]

	var b *bot.Bot
	daily, err := scheduler.NewDaily(cfg.DailyPostHour, cfg.DailyPostMinute, cfg.Location(),
		func(ctx context.Context) {
			res := manager.RunDailyCycle(ctx)
			b.Announce(announceChannel, formatter.Cycle(res))
		},
		scheduler.WithLogger(logger.Named("scheduler")),
	)
	if err != nil {
		logger.Fatal("scheduler init failed", zap.Error(err))
	}

	dispatcher := bot.NewDispatcher(manager, daily, formatter, rotation,
		bot.WithLogger(logger.Named("dispatch")),
		bot.WithDailyTime(cfg.DailyPostHour, cfg.DailyPostMinute, cfg.DailyPostTZ),
	)

	b, err = bot.New(cfg.DiscordToken, cfg.BotPrefix, cfg.AllowedChannels, dispatcher, logger.Named("bot"))
	if err != nil {
		logger.Fatal("bot init failed", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := b.Run(ctx); err != nil {
		logger.Error("bot stopped", zap.Error(err))
	}
	daily.Stop()
	logger.Info("shutdown complete")
}
