package main

import (
	"database/sql"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := NewLogger(cfg.LogLevel, cfg.LogPretty)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	db, err := sql.Open("sqlite3", cfg.DBPath)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer db.Close()

	repo := NewSQLiteRepository(db)
	if err := repo.CreateTables(); err != nil {
		logger.Fatal("create tables", zap.Error(err))
	}

	store, err := NewParticipantStore(repo)
	if err != nil {
		logger.Fatal("init participant store", zap.Error(err))
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		logger.Fatal("init telegram api", zap.Error(err))
	}
	api.Debug = cfg.BotDebug
	logger.Info("authorized", zap.String("account", api.Self.UserName))

	bot := NewBot(cfg, logger, api, store, repo)
	bot.scheduler.Start()
	defer bot.scheduler.Stop()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates, err := api.GetUpdatesChan(u)
	if err != nil {
		logger.Fatal("get updates channel", zap.Error(err))
	}

	for update := range updates {
		bot.HandleUpdate(update)
	}
}
