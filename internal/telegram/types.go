package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/hatem4830/cryptopulse/internal/database"
	"github.com/hatem4830/cryptopulse/internal/market"
)

// BotConfig configuration of the bot
type BotConfig struct {
	Token                 string
	Debug                 bool
	UpdatesTimeout        int
	DefaultUpdateInterval int64
}

// Bot telegram interaction client
type Bot struct {
	Bot    *tgbotapi.BotAPI
	Config BotConfig

	db     *database.DB
	market *market.Client
}

// Message a telegram message struct
type Message struct {
	ChatID    int64
	MessageID int
	Text      string
}
