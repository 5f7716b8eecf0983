package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"

	"github.com/ivanoskov/daily_balance_bot/internal/model"
	"github.com/ivanoskov/daily_balance_bot/internal/render"
)

// renderMode определяет судьбу главного меню: правка живого сообщения или
// отправка нового с перепривязкой LiveMessageID
type renderMode int

const (
	sendNew renderMode = iota
	editExisting
)

func (b *Bot) handleCommand(rec *model.Record, msg *tgbotapi.Message) error {
	switch msg.Command() {
	case "start":
		return b.handleStart(rec, msg.From.FirstName)
	case "chart":
		return b.handleChart(rec)
	}

	return nil
}

// handleStart сбрасывает диалог и показывает главное меню. Если живое
// сообщение уже есть, оно правится на месте; иначе отправляется новое.
func (b *Bot) handleStart(rec *model.Record, firstName string) error {
	rec.Session.State = model.StateMainMenu
	rec.Session.Pending = nil

	mode := sendNew
	if rec.Session.LiveMessageID != 0 {
		mode = editExisting
	}
	return b.showMainMenu(rec, firstName, mode)
}

func (b *Bot) handleCallback(rec *model.Record, cb *tgbotapi.CallbackQuery) error {
	// Отвечаем на callback, чтобы убрать loading indicator
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		b.log.Warn().Err(err).Str("callback_id", cb.ID).Msg("callback answer failed")
	}

	// Нажатия вне главного меню — повторная доставка или устаревшая
	// кнопка; молча пропускаем
	if rec.Session.State != model.StateMainMenu {
		return nil
	}

	var kind model.Kind
	switch cb.Data {
	case callbackAddIncome:
		kind = model.KindIncome
	case callbackAddExpense:
		kind = model.KindExpense
	default:
		return nil
	}

	rec.Session.Pending = &model.Transaction{Kind: kind}
	rec.Session.State = model.StateAwaitingAmount

	messageID := rec.Session.LiveMessageID
	if messageID == 0 {
		messageID = cb.Message.MessageID
	}

	prompt := render.PromptAmount(kind)
	if _, err := b.api.Send(tgbotapi.NewEditMessageText(rec.ChatID, messageID, prompt)); err != nil {
		b.log.Warn().Err(err).Int64("chat_id", rec.ChatID).Msg("prompt edit failed, sending new message")
		sent, serr := b.send(tgbotapi.NewMessage(rec.ChatID, prompt))
		if serr != nil {
			return fmt.Errorf("send amount prompt: %w", serr)
		}
		// Прежнее живое сообщение осиротело: убираем и перепривязываемся
		b.deleteLiveMessage(rec)
		rec.Session.LiveMessageID = sent.MessageID
	}

	return nil
}

func (b *Bot) handleText(rec *model.Record, msg *tgbotapi.Message) error {
	switch rec.Session.State {
	case model.StateAwaitingAmount:
		return b.handleAmountInput(rec, msg.From.FirstName, msg.Text)
	case model.StateAwaitingDescription:
		return b.handleDescriptionInput(rec, msg.From.FirstName, msg.Text)
	}

	// Текст вне диалога меню и журнал не трогает
	return nil
}

func (b *Bot) handleAmountInput(rec *model.Record, firstName, text string) error {
	if rec.Session.Pending == nil {
		return b.resetSession(rec, firstName)
	}

	amount, err := parseAmount(text)
	if err != nil {
		b.log.Debug().Str("input", text).Msg("amount parse failed")
		if _, serr := b.send(tgbotapi.NewMessage(rec.ChatID, render.MsgNotANumber)); serr != nil {
			return fmt.Errorf("send retry prompt: %w", serr)
		}
		// Остаёмся в ожидании суммы
		return nil
	}

	rec.Session.Pending.Amount = amount
	rec.Session.State = model.StateAwaitingDescription

	if _, err := b.send(tgbotapi.NewMessage(rec.ChatID, render.PromptDescription)); err != nil {
		return fmt.Errorf("send description prompt: %w", err)
	}
	return nil
}

func (b *Bot) handleDescriptionInput(rec *model.Record, firstName, text string) error {
	pending := rec.Session.Pending
	if pending == nil || pending.Amount.IsZero() {
		return b.resetSession(rec, firstName)
	}

	pending.Description = strings.TrimSpace(text)
	pending.Date = b.now().In(b.tz)
	pending.GenerateID()

	// Перенос дня срабатывает до записи: операция, введённая после
	// полуночи, попадает в новый день
	b.engine.DailyStats(&rec.Ledger, b.now())
	b.engine.Append(&rec.Ledger, *pending)
	rec.Session.Pending = nil
	rec.Session.State = model.StateMainMenu

	// Старое меню больше не актуально: удаляем его и отправляем новое
	b.deleteLiveMessage(rec)
	return b.showMainMenu(rec, firstName, sendNew)
}

func (b *Bot) handleChart(rec *model.Record) error {
	stats := b.engine.DailyStats(&rec.Ledger, b.now())

	png, err := b.charts.DayChart(stats)
	if err != nil {
		return fmt.Errorf("render day chart: %w", err)
	}
	if png == nil {
		_, err := b.send(tgbotapi.NewMessage(rec.ChatID, render.MsgNoOperations))
		return err
	}

	photo := tgbotapi.NewPhoto(rec.ChatID, tgbotapi.FileBytes{Name: "day.png", Bytes: png})
	if _, err := b.send(photo); err != nil {
		return fmt.Errorf("send day chart: %w", err)
	}
	return nil
}

// showMainMenu рендерит главный экран. В режиме editExisting правка живого
// сообщения; при её сбое откатываемся на отправку нового сообщения и
// перепривязываем LiveMessageID.
func (b *Bot) showMainMenu(rec *model.Record, firstName string, mode renderMode) error {
	stats := b.engine.DailyStats(&rec.Ledger, b.now())
	text := render.MainMenu(firstName, stats)
	keyboard := mainMenuKeyboard()

	if mode == editExisting && rec.Session.LiveMessageID != 0 {
		edit := tgbotapi.NewEditMessageTextAndMarkup(rec.ChatID, rec.Session.LiveMessageID, text, keyboard)
		_, err := b.api.Send(edit)
		if err == nil || isNotModified(err) {
			return nil
		}
		b.log.Warn().Err(err).Int64("chat_id", rec.ChatID).Msg("menu edit failed, sending new message")
		b.deleteLiveMessage(rec)
	}

	msg := tgbotapi.NewMessage(rec.ChatID, text)
	msg.ReplyMarkup = keyboard
	sent, err := b.send(msg)
	if err != nil {
		return fmt.Errorf("send main menu: %w", err)
	}
	rec.Session.LiveMessageID = sent.MessageID
	return nil
}

// deleteLiveMessage убирает устаревшее меню. Сбой удаления не критичен:
// у пользователя останется лишнее сообщение, и только.
func (b *Bot) deleteLiveMessage(rec *model.Record) {
	if rec.Session.LiveMessageID == 0 {
		return
	}

	del := tgbotapi.NewDeleteMessage(rec.ChatID, rec.Session.LiveMessageID)
	if _, err := b.api.Request(del); err != nil {
		b.log.Info().Err(err).Int64("chat_id", rec.ChatID).Msg("could not delete old menu message")
	}
	rec.Session.LiveMessageID = 0
}

// resetSession сбрасывает диалог, потерявший данные (например, после отката
// хранилища), и показывает свежее меню вместо продолжения с мусором
func (b *Bot) resetSession(rec *model.Record, firstName string) error {
	b.log.Warn().Int64("chat_id", rec.ChatID).Msg("session missing pending transaction, resetting")

	rec.Session.Pending = nil
	rec.Session.State = model.StateMainMenu
	b.deleteLiveMessage(rec)
	return b.showMainMenu(rec, firstName, sendNew)
}

// parseAmount принимает только положительные числа; запятая как
// десятичный разделитель допускается
func parseAmount(text string) (decimal.Decimal, error) {
	normalized := strings.Replace(strings.TrimSpace(text), ",", ".", 1)
	amount, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if !amount.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("amount must be positive, got %s", amount)
	}
	return amount, nil
}

// isNotModified распознает ответ Telegram на правку сообщения тем же
// текстом; для нас это успех, а не сбой
func isNotModified(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
