package main

import (
	"log"

	"github.com/vkotenko/fintrack/internal/bot"
	"github.com/vkotenko/fintrack/internal/config"
	"github.com/vkotenko/fintrack/internal/gateway"
	"github.com/vkotenko/fintrack/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_TOKEN is not set")
	}

	repo, err := repository.NewSupabaseRepository(cfg.SupabaseURL, cfg.SupabaseKey)
	if err != nil {
		log.Fatal(err)
	}

	gw := gateway.New(repo)

	b, err := bot.New(cfg.TelegramToken, gw)
	if err != nil {
		log.Fatal(err)
	}

	if err := b.Start(); err != nil {
		log.Fatal(err)
	}
}
