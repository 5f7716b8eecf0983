package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ivanoskov/daily_balance_bot/internal/model"
)

// DateLayout — формат даты переноса баланса
const DateLayout = "2006-01-02"

// Stats — снимок дневной статистики пользователя
type Stats struct {
	Date         time.Time
	BalanceStart decimal.Decimal
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	BalanceEnd   decimal.Decimal
	Transactions []model.Transaction
}

// Engine считает дневную статистику и выполняет перенос баланса на новый
// день. Без собственного I/O: хранение и отправка сообщений — забота
// вызывающего кода.
type Engine struct {
	tz *time.Location
}

// NewEngine создает движок, привязанный к рабочему часовому поясу
func NewEngine(tz *time.Location) *Engine {
	return &Engine{tz: tz}
}

// DailyStats возвращает статистику за сегодня. Если ledger последний раз
// обновлялся в другой день (или вообще не обновлялся), сначала выполняется
// перенос: вчерашний конечный баланс становится сегодняшним начальным, а
// журнал операций очищается. Повторные вызовы в течение одного дня перенос
// не трогают.
//
// Конечный баланс пересчитывается при каждом вызове и записывается обратно
// в ledger — завтрашний перенос берёт его оттуда.
func (e *Engine) DailyStats(l *model.UserLedger, now time.Time) Stats {
	now = now.In(e.tz)
	today := now.Format(DateLayout)

	if l.LastUpdateDate != today {
		// Перенос выполняется одним шагом независимо от длины перерыва:
		// пропущенные дни отдельных записей не получают.
		l.BalanceStartDay = l.BalanceEndDay
		l.TransactionsToday = nil
		l.LastUpdateDate = today
	}

	totalIncome := decimal.Zero
	totalExpense := decimal.Zero
	for _, t := range l.TransactionsToday {
		switch t.Kind {
		case model.KindIncome:
			totalIncome = totalIncome.Add(t.Amount)
		case model.KindExpense:
			totalExpense = totalExpense.Add(t.Amount)
		}
	}

	balanceEnd := l.BalanceStartDay.Add(totalIncome).Sub(totalExpense)
	l.BalanceEndDay = balanceEnd

	return Stats{
		Date:         now,
		BalanceStart: l.BalanceStartDay,
		TotalIncome:  totalIncome,
		TotalExpense: totalExpense,
		BalanceEnd:   balanceEnd,
		Transactions: l.TransactionsToday,
	}
}

// Append добавляет операцию в сегодняшний журнал. Балансы при этом не
// пересчитываются — вызывающий код обязан вызвать DailyStats.
func (e *Engine) Append(l *model.UserLedger, t model.Transaction) {
	l.TransactionsToday = append(l.TransactionsToday, t)
}
