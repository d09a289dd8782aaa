package notifier

import (
	"context"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// CommandHandler is called when a user command is received. command has no
// leading slash or bot suffix; args is the rest of the message.
type CommandHandler func(ctx context.Context, command, args string) string

// StartPolling begins long-polling for Telegram commands from the configured chat.
// Blocks until ctx is cancelled.
func (t *TelegramNotifier) StartPolling(ctx context.Context, handler CommandHandler) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := t.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			t.bot.StopReceivingUpdates()
			log.Println("[INFO] Telegram polling stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			msg := update.Message
			if msg == nil || !msg.IsCommand() {
				continue
			}
			if msg.Chat.ID != t.chatID {
				log.Printf("[WARN] ignoring command from chat %d", msg.Chat.ID)
				continue
			}
			log.Printf("[INFO] received command: %s", msg.Text)
			reply := handler(ctx, msg.Command(), strings.TrimSpace(msg.CommandArguments()))
			if reply == "" {
				continue
			}
			if err := t.sendTo(msg.Chat.ID, reply); err != nil {
				log.Printf("[ERROR] send reply: %v", err)
			}
		}
	}
}
