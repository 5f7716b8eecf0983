// Package render форматирует тексты сообщений бота. Без состояния: на входе
// статистика, на выходе готовая строка.
package render

import (
	"fmt"
	"strings"

	"github.com/ivanoskov/daily_balance_bot/internal/ledger"
	"github.com/ivanoskov/daily_balance_bot/internal/model"
)

const (
	// MsgNotANumber отправляется при нечисловой или неположительной сумме
	MsgNotANumber = "Это не похоже на число. Пожалуйста, введите сумму еще раз."
	// MsgNoOperations — ответ на /chart в день без операций
	MsgNoOperations = "Пока нет операций за сегодня."
	// PromptDescription запрашивает описание после ввода суммы
	PromptDescription = "Теперь введите краткое описание:"

	dateLayout         = "02.01.2006"
	defaultDescription = "без описания"
	lastShown          = 5
)

// PromptAmount запрашивает сумму для выбранного типа операции
func PromptAmount(kind model.Kind) string {
	if kind == model.KindIncome {
		return "Введите сумму дохода:"
	}
	return "Введите сумму расхода:"
}

// MainMenu форматирует главный экран: дата, балансы и последние операции.
// Показываются не более пяти последних операций в хронологическом порядке.
func MainMenu(firstName string, stats ledger.Stats) string {
	var sb strings.Builder

	if firstName != "" {
		sb.WriteString(fmt.Sprintf("Привет, %s!\n\n", firstName))
	}
	sb.WriteString(fmt.Sprintf("📅 Сегодня: %s\n", stats.Date.Format(dateLayout)))
	sb.WriteString(fmt.Sprintf("💰 На начало дня: %s\n", stats.BalanceStart.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("📈 Доходы: +%s\n", stats.TotalIncome.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("📉 Расходы: -%s\n", stats.TotalExpense.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("🏦 На конец дня: %s\n\n", stats.BalanceEnd.StringFixed(2)))
	sb.WriteString("Последние операции:\n")

	if len(stats.Transactions) == 0 {
		sb.WriteString(MsgNoOperations + "\n")
		return sb.String()
	}

	shown := stats.Transactions
	if len(shown) > lastShown {
		shown = shown[len(shown)-lastShown:]
	}
	for _, t := range shown {
		marker := "✅"
		if t.Kind == model.KindExpense {
			marker = "🔻"
		}
		desc := t.Description
		if desc == "" {
			desc = defaultDescription
		}
		sb.WriteString(fmt.Sprintf("%s %s - %s\n", marker, t.Amount.StringFixed(2), desc))
	}

	return sb.String()
}
