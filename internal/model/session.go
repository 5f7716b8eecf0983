package model

// State — шаг диалога пользователя
type State int

const (
	StateMainMenu State = iota
	StateAwaitingAmount
	StateAwaitingDescription
)

// Session представляет текущее состояние диалога пользователя.
//
// Pending заполняется по шагам диалога (тип при нажатии кнопки, сумма после
// второго шага) и существует только между StateAwaitingAmount и фиксацией
// операции. LiveMessageID — единственное актуальное сообщение с главным
// меню; ноль означает, что меню ещё не отправлялось или было удалено.
type Session struct {
	State         State        `json:"state"`
	Pending       *Transaction `json:"pending,omitempty"`
	LiveMessageID int          `json:"live_message_id,omitempty"`
}

// Record — всё, что бот хранит по одному пользователю.
type Record struct {
	ChatID  int64      `json:"chat_id"`
	Ledger  UserLedger `json:"ledger"`
	Session Session    `json:"session"`
}
