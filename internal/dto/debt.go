package dto

import (
	"time"

	"github.com/anygroup/splitfair/internal/core/domain"
)

// DebtResponse defines the JSON structure returned for a debt record.
type DebtResponse struct {
	ID          string            `json:"id"`
	ExpenseID   string            `json:"expenseId"`
	GroupID     string            `json:"groupId"`
	FromUserID  string            `json:"fromUserId"`
	ToUserID    string            `json:"toUserId"`
	Amount      int64             `json:"amount"`
	Status      domain.DebtStatus `json:"status"`
	CreatedTime time.Time         `json:"createdTime"`
}

// ToDebtResponse maps a domain debt record to its response DTO.
func ToDebtResponse(debt domain.Debt) DebtResponse {
	return DebtResponse{
		ID:          debt.DebtID,
		ExpenseID:   debt.ExpenseID,
		GroupID:     debt.GroupID,
		FromUserID:  debt.FromUserID,
		ToUserID:    debt.ToUserID,
		Amount:      debt.Amount,
		Status:      debt.Status,
		CreatedTime: debt.CreatedAt,
	}
}

// ToDebtResponses maps a slice of domain debts to response DTOs.
func ToDebtResponses(debts []domain.Debt) []DebtResponse {
	responses := make([]DebtResponse, len(debts))
	for i, d := range debts {
		responses[i] = ToDebtResponse(d)
	}
	return responses
}

// ListDebtsResponse wraps the raw debt records of one user.
type ListDebtsResponse struct {
	Debts []DebtResponse `json:"debts"`
}

// AggregatedBalanceResponse is one per-counterparty total.
type AggregatedBalanceResponse struct {
	CounterpartyID string `json:"counterpartyId"`
	TotalAmount    int64  `json:"totalAmount"`
}

// SettlementSuggestionResponse is one derived cross-debt netting proposal.
type SettlementSuggestionResponse struct {
	CounterpartyID string                  `json:"counterpartyId"`
	PayAmount      int64                   `json:"payAmount"`
	ReceiveAmount  int64                   `json:"receiveAmount"`
	NetAmount      int64                   `json:"netAmount"`
	Action         domain.SettlementAction `json:"action"`
}

// BalanceSummaryResponse is the whole-ledger aggregation for one user.
type BalanceSummaryResponse struct {
	Payables        []AggregatedBalanceResponse    `json:"payables"`
	Receivables     []AggregatedBalanceResponse    `json:"receivables"`
	TotalPayable    int64                          `json:"totalPayable"`
	TotalReceivable int64                          `json:"totalReceivable"`
	Net             int64                          `json:"net"`
	Suggestions     []SettlementSuggestionResponse `json:"suggestions"`
}

// ToBalanceSummaryResponse maps the domain summary to its response DTO.
func ToBalanceSummaryResponse(summary *domain.BalanceSummary) BalanceSummaryResponse {
	resp := BalanceSummaryResponse{
		Payables:        make([]AggregatedBalanceResponse, len(summary.Payables)),
		Receivables:     make([]AggregatedBalanceResponse, len(summary.Receivables)),
		TotalPayable:    summary.TotalPayable,
		TotalReceivable: summary.TotalReceivable,
		Net:             summary.Net,
		Suggestions:     make([]SettlementSuggestionResponse, len(summary.Suggestions)),
	}
	for i, b := range summary.Payables {
		resp.Payables[i] = AggregatedBalanceResponse{CounterpartyID: b.CounterpartyID, TotalAmount: b.TotalAmount}
	}
	for i, b := range summary.Receivables {
		resp.Receivables[i] = AggregatedBalanceResponse{CounterpartyID: b.CounterpartyID, TotalAmount: b.TotalAmount}
	}
	for i, s := range summary.Suggestions {
		resp.Suggestions[i] = SettlementSuggestionResponse{
			CounterpartyID: s.CounterpartyID,
			PayAmount:      s.PayAmount,
			ReceiveAmount:  s.ReceiveAmount,
			NetAmount:      s.NetAmount,
			Action:         s.Action,
		}
	}
	return resp
}

// GroupBalanceResponse is one member's net position within a group.
type GroupBalanceResponse struct {
	UserID    string `json:"userId"`
	NetAmount int64  `json:"netAmount"`
}

// ToGroupBalanceResponses maps domain group balances to response DTOs.
func ToGroupBalanceResponses(balances []domain.GroupBalance) []GroupBalanceResponse {
	responses := make([]GroupBalanceResponse, len(balances))
	for i, b := range balances {
		responses[i] = GroupBalanceResponse{UserID: b.UserID, NetAmount: b.NetAmount}
	}
	return responses
}

// SettleDebtsBatchRequest defines the expected JSON body for batch settlement.
type SettleDebtsBatchRequest struct {
	DebtIDs []string `json:"debtIds" binding:"required,min=1,dive,required"`
}
