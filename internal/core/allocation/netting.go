package allocation

import (
	"sort"

	"github.com/anygroup/splitfair/internal/core/domain"
)

// AggregateBalances partitions a user's debt records into payables (user owes)
// and receivables (user is owed), grouped and summed per counterparty. Only
// UNSETTLED records count. Both sides are sorted by counterparty ID so output
// is reproducible.
func AggregateBalances(userID string, debts []domain.Debt) (payables, receivables []domain.AggregatedBalance) {
	owed := make(map[string]int64)
	owedToMe := make(map[string]int64)

	for _, d := range debts {
		if d.Status != domain.DebtUnsettled {
			continue
		}
		switch userID {
		case d.FromUserID:
			owed[d.ToUserID] += d.Amount
		case d.ToUserID:
			owedToMe[d.FromUserID] += d.Amount
		}
	}

	return toSortedBalances(owed), toSortedBalances(owedToMe)
}

// Summarize builds the whole-ledger summary for one user: per-counterparty
// balances, grand totals, net position, and settlement suggestions.
func Summarize(userID string, debts []domain.Debt) domain.BalanceSummary {
	payables, receivables := AggregateBalances(userID, debts)

	var totalPayable, totalReceivable int64
	for _, b := range payables {
		totalPayable += b.TotalAmount
	}
	for _, b := range receivables {
		totalReceivable += b.TotalAmount
	}

	return domain.BalanceSummary{
		Payables:        payables,
		Receivables:     receivables,
		TotalPayable:    totalPayable,
		TotalReceivable: totalReceivable,
		Net:             totalReceivable - totalPayable,
		Suggestions:     SuggestSettlements(payables, receivables),
	}
}

// SuggestSettlements detects counterparties with reciprocal (cross) debts and
// proposes one net transfer per pair, collapsing two real-world payments into
// one. Fully offset pairs are still surfaced, with a zero net amount and the
// SETTLED action. This is strictly two-party netting; multi-party debt-graph
// simplification is out of scope.
func SuggestSettlements(payables, receivables []domain.AggregatedBalance) []domain.SettlementSuggestion {
	receivableBy := make(map[string]int64, len(receivables))
	for _, r := range receivables {
		receivableBy[r.CounterpartyID] = r.TotalAmount
	}

	suggestions := make([]domain.SettlementSuggestion, 0)
	for _, p := range payables {
		receivable, ok := receivableBy[p.CounterpartyID]
		if !ok {
			continue
		}
		diff := receivable - p.TotalAmount
		action := domain.ActionSettled
		switch {
		case diff > 0:
			action = domain.ActionReceive
		case diff < 0:
			action = domain.ActionPay
		}
		suggestions = append(suggestions, domain.SettlementSuggestion{
			CounterpartyID: p.CounterpartyID,
			PayAmount:      p.TotalAmount,
			ReceiveAmount:  receivable,
			NetAmount:      abs(diff),
			Action:         action,
		})
	}
	return suggestions
}

// NetGroupBalances computes each member's net position across all UNSETTLED
// debts in a group: credits for money owed to them, debits for money they owe.
// Output is sorted by user ID.
func NetGroupBalances(debts []domain.Debt) []domain.GroupBalance {
	net := make(map[string]int64)
	for _, d := range debts {
		if d.Status != domain.DebtUnsettled {
			continue
		}
		net[d.ToUserID] += d.Amount
		net[d.FromUserID] -= d.Amount
	}

	balances := make([]domain.GroupBalance, 0, len(net))
	for userID, amount := range net {
		balances = append(balances, domain.GroupBalance{UserID: userID, NetAmount: amount})
	}
	sort.Slice(balances, func(i, j int) bool { return balances[i].UserID < balances[j].UserID })
	return balances
}

func toSortedBalances(totals map[string]int64) []domain.AggregatedBalance {
	balances := make([]domain.AggregatedBalance, 0, len(totals))
	for counterpartyID, total := range totals {
		balances = append(balances, domain.AggregatedBalance{CounterpartyID: counterpartyID, TotalAmount: total})
	}
	sort.Slice(balances, func(i, j int) bool { return balances[i].CounterpartyID < balances[j].CounterpartyID })
	return balances
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
