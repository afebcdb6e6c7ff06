package telegram

// Client defines an interface for sending plain text messages via a Telegram bot.
// It keeps the poller independent of the bot library.
type Client interface {
	SendMessage(chatID string, text string) error
}
