package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/ivanoskov/daily_balance_bot/internal/charts"
	"github.com/ivanoskov/daily_balance_bot/internal/ledger"
	"github.com/ivanoskov/daily_balance_bot/internal/model"
	"github.com/ivanoskov/daily_balance_bot/internal/storage"
)

// telegramAPI — часть *tgbotapi.BotAPI, которой пользуется бот.
// Интерфейс нужен для подмены транспорта в тестах.
type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type Bot struct {
	api    telegramAPI
	store  storage.Store
	engine *ledger.Engine
	charts *charts.Generator
	log    zerolog.Logger
	tz     *time.Location

	// Последовательная обработка событий одного пользователя: Telegram
	// доставляет не-реже-одного-раза, и два события одного диалога не
	// должны перемешиваться.
	mu    sync.Mutex
	locks map[int64]*sync.Mutex

	now        func() time.Time
	newBackOff func() backoff.BackOff
}

func NewBot(token string, store storage.Store, tz *time.Location, log zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return newBot(api, store, tz, log), nil
}

func newBot(api telegramAPI, store storage.Store, tz *time.Location, log zerolog.Logger) *Bot {
	return &Bot{
		api:    api,
		store:  store,
		engine: ledger.NewEngine(tz),
		charts: charts.NewGenerator(),
		log:    log,
		tz:     tz,
		locks:  make(map[int64]*sync.Mutex),
		now:    time.Now,
		newBackOff: func() backoff.BackOff {
			return backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3)
		},
	}
}

// Start запускает бота в режиме long polling
func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if err := b.handleUpdate(update); err != nil {
			// Логируем ошибку, но продолжаем работу
			b.log.Error().Err(err).Msg("error handling update")
		}
	}

	return nil
}

// HandleWebhook — точка входа для обработки входящих webhook-обновлений
func (b *Bot) HandleWebhook(body []byte) error {
	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return err
	}

	return b.handleUpdate(update)
}

// handleUpdate обрабатывает одно обновление целиком: чтение записи
// пользователя, шаг диалога, сохранение.
func (b *Bot) handleUpdate(update tgbotapi.Update) error {
	switch {
	case update.CallbackQuery != nil && update.CallbackQuery.From != nil && update.CallbackQuery.Message != nil:
		cb := update.CallbackQuery
		return b.withUser(cb.From.ID, cb.Message.Chat.ID, func(rec *model.Record) error {
			return b.handleCallback(rec, cb)
		})

	case update.Message != nil && update.Message.From != nil && update.Message.IsCommand():
		msg := update.Message
		return b.withUser(msg.From.ID, msg.Chat.ID, func(rec *model.Record) error {
			return b.handleCommand(rec, msg)
		})

	case update.Message != nil && update.Message.From != nil:
		msg := update.Message
		return b.withUser(msg.From.ID, msg.Chat.ID, func(rec *model.Record) error {
			return b.handleText(rec, msg)
		})
	}

	return nil
}

// withUser сериализует обработку событий пользователя и оборачивает её в
// цикл чтение-изменение-сохранение. Если обработчик вернул ошибку, запись
// не сохраняется: диалог остается в прежнем состоянии до следующего события.
func (b *Bot) withUser(userID, chatID int64, fn func(*model.Record) error) error {
	lock := b.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	ctx := context.Background()
	rec, err := b.store.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user %d: %w", userID, err)
	}
	if rec == nil {
		rec = &model.Record{}
	}
	rec.ChatID = chatID

	if err := fn(rec); err != nil {
		return err
	}

	if err := b.store.Put(ctx, userID, rec); err != nil {
		return fmt.Errorf("save user %d: %w", userID, err)
	}
	return nil
}

func (b *Bot) userLock(userID int64) *sync.Mutex {
	b.mu.Lock()
	defer b.mu.Unlock()

	lock, ok := b.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		b.locks[userID] = lock
	}
	return lock
}

// send отправляет сообщение с повторами при временных сбоях транспорта
func (b *Bot) send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	var sent tgbotapi.Message
	op := func() error {
		var err error
		sent, err = b.api.Send(c)
		return err
	}

	if err := backoff.Retry(op, b.newBackOff()); err != nil {
		return tgbotapi.Message{}, err
	}
	return sent, nil
}
