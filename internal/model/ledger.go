package model

import "github.com/shopspring/decimal"

// UserLedger хранит дневной баланс пользователя.
//
// LastUpdateDate — дата (YYYY-MM-DD в рабочем часовом поясе) последнего
// переноса баланса. BalanceEndDay кэшируется после каждого пересчёта и
// служит источником для переноса на следующий день.
type UserLedger struct {
	LastUpdateDate    string          `json:"last_update_date"`
	BalanceStartDay   decimal.Decimal `json:"balance_start_day"`
	BalanceEndDay     decimal.Decimal `json:"balance_end_day"`
	TransactionsToday []Transaction   `json:"transactions_today"`
}
