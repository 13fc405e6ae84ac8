package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/hatem4830/cryptopulse/internal/commands"
	"github.com/hatem4830/cryptopulse/internal/database"
	"github.com/hatem4830/cryptopulse/internal/market"
	"github.com/hatem4830/cryptopulse/lib/translation"
)

// NewBot creates new telegram bot
func NewBot(c BotConfig, db *database.DB, m *market.Client) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(c.Token)
	if err != nil {
		return nil, errors.Wrap(err, "could not create telegram bot")
	}

	bot.Debug = c.Debug

	return &Bot{
		Bot:    bot,
		Config: c,
		db:     db,
		market: m,
	}, nil
}

// GetUpdatesChannel gets the long-poll updates channel
func (b *Bot) GetUpdatesChannel() tgbotapi.UpdatesChannel {
	updatesConfig := tgbotapi.NewUpdate(0)
	if b.Config.UpdatesTimeout > 0 {
		updatesConfig.Timeout = b.Config.UpdatesTimeout
	}
	return b.Bot.GetUpdatesChan(updatesConfig)
}

// SendMessage sends a telegram message
func (b *Bot) SendMessage(m Message) error {
	msg := tgbotapi.NewMessage(m.ChatID, m.Text)
	msg.ReplyToMessageID = m.MessageID
	msg.DisableWebPagePreview = true
	msg.ParseMode = "MarkdownV2"
	_, err := b.Bot.Send(msg)
	return errors.Wrapf(err, "could not send message to chat %d", m.ChatID)
}

// Notify delivers an engine-formatted notification to a chat. It satisfies
// the engine's Notifier contract.
func (b *Bot) Notify(chatID int64, text string) error {
	return b.SendMessage(Message{ChatID: chatID, Text: text})
}

// HandleUpdate processes one Telegram update and returns the reply text, or
// "" when the handler already replied itself (e.g. chart photos).
func (b *Bot) HandleUpdate(u tgbotapi.Update) string {
	text := helpText()
	log.Debugf("received command: %s", u.Message.Command())

	chatID := u.Message.Chat.ID
	args := u.Message.CommandArguments()

	var err error

	switch u.Message.Command() {
	case "start", "help":
		text = helpText()
	case "price", "p":
		if text, err = commands.Price(b.market, args); err != nil {
			text = translation.Translate("Coin not found")
			log.Error(err)
		}
	case "coins":
		if text, err = commands.TopCoins(b.market, args); err != nil {
			text = translation.Translate("Could not fetch coins list")
			log.Error(err)
		}
	case "chart", "c":
		chartData, caption, err := commands.Chart(b.market, args)
		if err != nil {
			text = translation.Translate("Coin not found")
			log.Error(err)
			break
		}
		if chartData == nil {
			text = caption
			break
		}

		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{
			Name:  "chart.png",
			Bytes: chartData,
		})
		photo.Caption = caption
		photo.ParseMode = "MarkdownV2"
		photo.ReplyToMessageID = u.Message.MessageID
		if _, err = b.Bot.Send(photo); err != nil {
			log.Error("error sending chart: ", err)
		}
		return ""
	case "subscribe":
		text = b.handleSubscribe(chatID, args)
	case "unsubscribe":
		text = b.handleUnsubscribe(chatID, args)
	case "list":
		text = b.handleList(chatID)
	case "alert":
		text = b.handleAlert(chatID, args)
	case "alerts":
		text = b.handleAlerts(chatID)
	case "delalert":
		text = b.handleDelAlert(chatID, args)
	}

	return text
}
