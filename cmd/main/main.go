package main

import (
	"context"
	"flag"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/Nirav-vruttitech/taskreminder/pkg/config"
	"github.com/Nirav-vruttitech/taskreminder/pkg/controller"
	"github.com/Nirav-vruttitech/taskreminder/pkg/events"
	"github.com/Nirav-vruttitech/taskreminder/pkg/notify"
	"github.com/Nirav-vruttitech/taskreminder/pkg/reminder"
	"github.com/Nirav-vruttitech/taskreminder/pkg/storage"
	"github.com/Nirav-vruttitech/taskreminder/pkg/tasks"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	var configPath string

	flag.StringVar(&configPath, "config", "config.yml", "configuration file")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	filePerms := 0o666

	logFile, err := os.OpenFile(cfg.LogFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, fs.FileMode(filePerms))
	if err != nil {
		panic(err)
	}

	defer logFile.Close()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(level)

	log.Logger = log.With().Caller().Logger().Output(zerolog.ConsoleWriter{
		Out: logFile, TimeFormat: "2006-01-02_15:04:05",
	})

	log.Info().Msg("starting application...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, err := storage.Open(ctx, cfg.DBFile)
	if err != nil {
		// the store is the one thing the session cannot live without
		log.Fatal().Err(err).Msg("error opening the database")
	}

	defer engine.Close()

	taskRepo := tasks.NewRepository(engine)
	taskRepo.CreateSchema(ctx)

	eventLog := events.NewLog(engine)
	eventLog.CreateSchema(ctx)

	notifier := notify.NewTimerNotifier()
	defer notifier.Close()

	scheduler := reminder.NewScheduler(notifier, eventLog, notify.Channel{
		ID:   cfg.ChannelID,
		Name: cfg.ChannelName,
	})

	go func() {
		if err := scheduler.Run(ctx); err != nil {
			log.Error().Err(err).Msg("scheduler stopped")
		}
	}()

	c := controller.NewController(ctx, taskRepo, eventLog, scheduler, notifier)
	c.Go()
}
