// File: internal/infra/telegram/real_bot.go
package telegram

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"telegram-crates-bot/internal/application"
	"telegram-crates-bot/internal/config"
	"telegram-crates-bot/internal/domain/ports/adapter"
	"telegram-crates-bot/internal/infra/logging"
)

// RateLimiter gates commands per chat. Implemented by redis.RateLimiter.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimitKeyFunc builds the limiter key for a chat/command pair.
type RateLimitKeyFunc func(chatID int64, command string) string

// RealTelegramBotAdapter implements adapter.TelegramBotAdapter using
// tgbotapi with concurrent polling.
type RealTelegramBotAdapter struct {
	bot    *tgbotapi.BotAPI
	cfg    *config.BotConfig
	facade *application.BotFacade
	log    *zerolog.Logger

	limiter    RateLimiter // optional, may be nil
	limiterCfg config.RateLimitConfig
	limiterKey RateLimitKeyFunc

	// updateWorkers is how many goroutines concurrently process updates.
	updateWorkers int
	cancelPolling context.CancelFunc
}

var _ adapter.TelegramBotAdapter = (*RealTelegramBotAdapter)(nil)

func NewRealTelegramBotAdapter(cfg *config.BotConfig, facade *application.BotFacade, limiter RateLimiter, limiterCfg config.RateLimitConfig, limiterKey RateLimitKeyFunc, logger *zerolog.Logger) (*RealTelegramBotAdapter, error) {
	if cfg == nil {
		return nil, errors.New("bot config is nil")
	}
	if facade == nil {
		return nil, errors.New("bot facade is nil")
	}
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = 5
	}

	return &RealTelegramBotAdapter{
		bot:           bot,
		cfg:           cfg,
		facade:        facade,
		log:           logger,
		limiter:       limiter,
		limiterCfg:    limiterCfg,
		limiterKey:    limiterKey,
		updateWorkers: workers,
	}, nil
}

// Username reports the authenticated bot account name.
func (r *RealTelegramBotAdapter) Username() string { return r.bot.Self.UserName }

// StartPolling polls Telegram for updates and fans them out to workers.
// It runs until ctx is canceled.
func (r *RealTelegramBotAdapter) StartPolling(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := r.bot.GetUpdatesChan(u)

	ctx, cancel := context.WithCancel(ctx)
	r.cancelPolling = cancel

	var wg sync.WaitGroup
	updateChan := make(chan tgbotapi.Update, 100)

	for i := 0; i < r.updateWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for {
				select {
				case update, ok := <-updateChan:
					if !ok {
						return
					}
					if err := r.handleUpdate(ctx, update); err != nil {
						r.log.Error().Err(err).Int("worker", workerID).Msg("handle update")
					}
				case <-ctx.Done():
					return
				}
			}
		}(i + 1)
	}

	go func() {
		defer close(updateChan)
		for {
			select {
			case update := <-updates:
				select {
				case updateChan <- update:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	<-ctx.Done()
	r.bot.StopReceivingUpdates()
	wg.Wait()
	return nil
}

// StopPolling stops the polling loop gracefully.
func (r *RealTelegramBotAdapter) StopPolling() {
	if r.cancelPolling != nil {
		r.cancelPolling()
	}
}

func (r *RealTelegramBotAdapter) SendMessage(ctx context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	_, err := r.bot.Send(msg)
	return err
}

func (r *RealTelegramBotAdapter) SendMessageWithButtons(ctx context.Context, chatID int64, text string, rows [][]adapter.URLButton) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	var keyboard [][]tgbotapi.InlineKeyboardButton
	for _, row := range rows {
		var btns []tgbotapi.InlineKeyboardButton
		for _, b := range row {
			btns = append(btns, tgbotapi.NewInlineKeyboardButtonURL(b.Text, b.URL))
		}
		if len(btns) > 0 {
			keyboard = append(keyboard, btns)
		}
	}
	if len(keyboard) > 0 {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(keyboard...)
	}
	_, err := r.bot.Send(msg)
	return err
}

// handleUpdate processes a single Telegram update. Non-command chatter gets
// a hint instead of silence.
func (r *RealTelegramBotAdapter) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	if update.Message == nil || update.Message.Text == "" {
		return nil
	}
	msg := update.Message
	chatID := msg.Chat.ID

	ctx = logging.WithTraceID(ctx, uuid.NewString())
	ctx = logging.WithChatID(ctx, chatID)
	log := logging.With(ctx, r.log)

	text := strings.TrimSpace(msg.Text)
	if !strings.HasPrefix(text, "/") {
		// Non-command chatter only gets a hint one-on-one; in groups the
		// bot stays quiet.
		if msg.Chat.IsPrivate() {
			return r.SendMessage(ctx, chatID, "Send /help to see what I can look up.")
		}
		return nil
	}

	// "/crate@otherbot" in a group chat is addressed to a different bot.
	if self := r.selfName(); self != "" {
		if m := commandMention(text); m != "" && !strings.EqualFold(m, self) {
			return nil
		}
	}

	switch msg.Command() {
	case "start", "help":
		return r.SendMessage(ctx, chatID, r.facade.HelpText())
	}

	if ok, err := r.allow(ctx, chatID, msg.Command()); err != nil {
		log.Warn().Err(err).Msg("rate limiter unavailable, allowing")
	} else if !ok {
		return r.SendMessage(ctx, chatID, "Too many requests, please slow down.")
	}

	// Lookups take a moment; show the typing indicator meanwhile.
	if _, err := r.bot.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		log.Debug().Err(err).Msg("chat action failed")
	}

	ctx = logging.WithVerb(ctx, msg.Command())
	reply := r.facade.HandleMessage(ctx, text)
	if len(reply.Buttons) > 0 {
		return r.SendMessageWithButtons(ctx, chatID, reply.Text, reply.Buttons)
	}
	return r.SendMessage(ctx, chatID, reply.Text)
}

// selfName is the account name "@bot" mentions are matched against. The
// configured username wins so tests and staging bots can override what the
// API reports.
func (r *RealTelegramBotAdapter) selfName() string {
	if r.cfg.Username != "" {
		return r.cfg.Username
	}
	if r.bot != nil {
		return r.bot.Self.UserName
	}
	return ""
}

// commandMention extracts the "@botname" mention attached to the command
// token, or "" when the command is unaddressed.
func commandMention(text string) string {
	token := text
	if i := strings.IndexAny(token, " \t\n\r"); i >= 0 {
		token = token[:i]
	}
	if i := strings.IndexByte(token, '@'); i >= 0 {
		return token[i+1:]
	}
	return ""
}

func (r *RealTelegramBotAdapter) allow(ctx context.Context, chatID int64, command string) (bool, error) {
	if r.limiter == nil || r.limiterCfg.PerChat <= 0 || r.limiterKey == nil {
		return true, nil
	}
	return r.limiter.Allow(ctx, r.limiterKey(chatID, command), r.limiterCfg.PerChat, r.limiterCfg.Window.Std())
}
