package domain

// AggregatedBalance is the sum of all UNSETTLED debt amounts between a user and
// one counterparty, in a single direction. Each counterparty appears at most
// once per side of a summary.
type AggregatedBalance struct {
	CounterpartyID string `json:"counterpartyId"`
	TotalAmount    int64  `json:"totalAmount"`
}

// SettlementAction tells the user which way the single netted transfer goes.
type SettlementAction string

const (
	ActionPay     SettlementAction = "PAY"
	ActionReceive SettlementAction = "RECEIVE"
	// ActionSettled marks a fully offset cross debt: both directions cancel
	// exactly and no transfer is needed.
	ActionSettled SettlementAction = "SETTLED"
)

// SettlementSuggestion proposes collapsing a bidirectional (cross) debt with one
// counterparty into a single net transfer. Derived on every read, never persisted.
type SettlementSuggestion struct {
	CounterpartyID string           `json:"counterpartyId"`
	PayAmount      int64            `json:"payAmount"`
	ReceiveAmount  int64            `json:"receiveAmount"`
	NetAmount      int64            `json:"netAmount"`
	Action         SettlementAction `json:"action"`
}

// BalanceSummary is the whole-ledger view for one user: per-counterparty totals
// in both directions, grand totals, and the derived settlement suggestions.
type BalanceSummary struct {
	Payables        []AggregatedBalance    `json:"payables"`
	Receivables     []AggregatedBalance    `json:"receivables"`
	TotalPayable    int64                  `json:"totalPayable"`
	TotalReceivable int64                  `json:"totalReceivable"`
	Net             int64                  `json:"net"` // TotalReceivable - TotalPayable
	Suggestions     []SettlementSuggestion `json:"suggestions"`
}

// GroupBalance is one member's net position across all UNSETTLED debts in a
// group: positive means the member is owed money, negative means they owe.
type GroupBalance struct {
	UserID    string `json:"userId"`
	NetAmount int64  `json:"netAmount"`
}
