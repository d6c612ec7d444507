package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"tavernbot/internal/bot"
	"tavernbot/internal/game"
	"tavernbot/internal/store"
)

type Config struct {
	DiscordToken string        `env:"DISCORD_TOKEN,required"`
	DatabaseFile string        `env:"DATABASE_FILE" envDefault:"data/tavern.json"`
	GuildID      string        `env:"GUILD_ID"`
	LogLevel     string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFile      string        `env:"LOG_FILE"`
	SaveDebounce time.Duration `env:"SAVE_DEBOUNCE" envDefault:"1s"`
	Housekeeping time.Duration `env:"HOUSEKEEPING_CYCLE" envDefault:"10m"`
}

func main() {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "could not parse configuration: %v\n", err)
		os.Exit(1)
	}
	setupLogger(cfg)

	// Document store, the single owner of the data file
	db := store.New(cfg.DatabaseFile, cfg.SaveDebounce, map[store.Kind]store.Factory{
		store.KindUser:  game.NewPlayerDoc,
		store.KindGuild: game.NewGuildDoc,
	})
	if err := db.Open(); err != nil {
		log.Error().Msg(fmt.Sprintf("Could not open the document store: %v", err))
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Msg(fmt.Sprintf("Final flush failed: %v", err))
		}
	}()

	// Bot with the store injected
	tavern := bot.New(cfg.DiscordToken, cfg.GuildID, db, cfg.Housekeeping)
	if err := tavern.Run(); err != nil {
		log.Error().Msg(fmt.Sprintf("Bot stopped with an error: %v", err))
		db.Close()
		os.Exit(1)
	}
}

func setupLogger(cfg Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	var writer io.Writer = console
	if cfg.LogFile != "" {
		writer = zerolog.MultiLevelWriter(console, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    20, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	}
	log.Logger = zerolog.New(writer).With().Timestamp().Logger()
}
