// File: internal/domain/ports/adapter/telegram.go
package adapter

import "context"

type URLButton struct {
	Text string
	URL  string
}

type TelegramBotAdapter interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendMessageWithButtons(ctx context.Context, chatID int64, text string, rows [][]URLButton) error
}
