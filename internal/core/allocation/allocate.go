// Package allocation implements the pure computation engines of the ledger:
// share allocation (how one expense's amount is distributed into per-member
// obligations), debt record generation, and debt aggregation/netting. Nothing
// in this package performs I/O; persistence is a collaborator responsibility.
package allocation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/anygroup/splitfair/internal/apperrors"
	"github.com/anygroup/splitfair/internal/core/domain"
)

// percentageTolerance is how far the included percentages may stray from 100
// before the input is rejected (two-decimal inputs, so one hundredth).
var percentageTolerance = decimal.NewFromFloat(0.01)

var oneHundred = decimal.NewFromInt(100)

// Allocate computes each included participant's share of totalAmount under the
// given policy. Shares are whole currency units and always sum exactly to
// totalAmount; rounding remainders are absorbed by the last included
// participant in input order, a fixed deterministic tie-break.
func Allocate(totalAmount int64, policy domain.AllocationPolicy, inputs []domain.ParticipantInput) ([]domain.Share, error) {
	if totalAmount <= 0 {
		return nil, fmt.Errorf("%w: total amount must be positive, got %d", apperrors.ErrValidation, totalAmount)
	}
	if !policy.IsValid() {
		return nil, fmt.Errorf("%w: unknown allocation policy %q", apperrors.ErrValidation, policy)
	}

	included := includedInputs(inputs)
	if len(included) == 0 {
		return nil, fmt.Errorf("%w: at least one participant must be included", apperrors.ErrValidation)
	}

	var (
		shares []domain.Share
		err    error
	)
	switch policy {
	case domain.SplitEqual:
		shares = allocateEqual(totalAmount, included)
	case domain.SplitExact:
		shares, err = allocateExact(included)
	case domain.SplitPercentage:
		shares, err = allocatePercentage(totalAmount, included)
	case domain.SplitShares:
		shares, err = allocateByWeight(totalAmount, included)
	}
	if err != nil {
		return nil, err
	}

	for _, s := range shares {
		if s.Amount < 0 {
			return nil, fmt.Errorf("%w: computed share for participant %s is negative (%d)", apperrors.ErrValidation, s.UserID, s.Amount)
		}
	}

	// Uniform reconciliation check. With remainder absorption this can only
	// trip on caller-supplied EXACT values; never clamp, always surface.
	var sum int64
	for _, s := range shares {
		sum += s.Amount
	}
	if sum != totalAmount {
		return nil, &apperrors.AmountMismatchError{Expected: totalAmount, Actual: sum}
	}

	return shares, nil
}

func includedInputs(inputs []domain.ParticipantInput) []domain.ParticipantInput {
	out := make([]domain.ParticipantInput, 0, len(inputs))
	for _, in := range inputs {
		if in.Included {
			out = append(out, in)
		}
	}
	return out
}

// allocateEqual gives everyone floor(total/count); the last included
// participant absorbs the remainder so the sum reconciles exactly.
func allocateEqual(totalAmount int64, included []domain.ParticipantInput) []domain.Share {
	count := int64(len(included))
	base := totalAmount / count

	shares := make([]domain.Share, len(included))
	for i, in := range included {
		amount := base
		if i == len(included)-1 {
			amount = totalAmount - base*(count-1)
		}
		shares[i] = domain.Share{UserID: in.UserID, Amount: amount}
	}
	return shares
}

// allocateExact takes each raw value as-is, in whole currency units. No
// redistribution happens here; the interactive form may auto-balance fields,
// but the engine only validates what it is given.
func allocateExact(included []domain.ParticipantInput) ([]domain.Share, error) {
	shares := make([]domain.Share, len(included))
	for i, in := range included {
		if !in.RawValue.IsInteger() {
			return nil, fmt.Errorf("%w: exact amount for participant %s must be a whole currency amount, got %s", apperrors.ErrValidation, in.UserID, in.RawValue)
		}
		if in.RawValue.IsNegative() {
			return nil, fmt.Errorf("%w: exact amount for participant %s must not be negative", apperrors.ErrValidation, in.UserID)
		}
		shares[i] = domain.Share{UserID: in.UserID, Amount: in.RawValue.IntPart()}
	}
	return shares, nil
}

// allocatePercentage computes round-half-up shares of totalAmount; percentages
// must sum to 100 within the tolerance, and the last included participant
// absorbs the rounding remainder.
func allocatePercentage(totalAmount int64, included []domain.ParticipantInput) ([]domain.Share, error) {
	percentSum := decimal.Zero
	for _, in := range included {
		if in.RawValue.IsNegative() {
			return nil, fmt.Errorf("%w: percentage for participant %s must not be negative", apperrors.ErrValidation, in.UserID)
		}
		percentSum = percentSum.Add(in.RawValue)
	}
	if percentSum.Sub(oneHundred).Abs().GreaterThan(percentageTolerance) {
		return nil, fmt.Errorf("%w: percentages must sum to 100, got %s", apperrors.ErrValidation, percentSum)
	}

	total := decimal.NewFromInt(totalAmount)
	shares := make([]domain.Share, len(included))
	var allocated int64
	for i, in := range included {
		if i == len(included)-1 {
			shares[i] = domain.Share{UserID: in.UserID, Amount: totalAmount - allocated}
			break
		}
		amount := total.Mul(in.RawValue).Div(oneHundred).Round(0).IntPart()
		allocated += amount
		shares[i] = domain.Share{UserID: in.UserID, Amount: amount}
	}
	return shares, nil
}

// allocateByWeight splits totalAmount proportionally to share weights, with the
// same last-participant remainder absorption as EQUAL.
func allocateByWeight(totalAmount int64, included []domain.ParticipantInput) ([]domain.Share, error) {
	weightSum := decimal.Zero
	for _, in := range included {
		if in.RawValue.IsNegative() {
			return nil, fmt.Errorf("%w: share weight for participant %s must not be negative", apperrors.ErrValidation, in.UserID)
		}
		weightSum = weightSum.Add(in.RawValue)
	}
	if weightSum.IsZero() {
		return nil, fmt.Errorf("%w: share weights must not all be zero", apperrors.ErrValidation)
	}

	total := decimal.NewFromInt(totalAmount)
	shares := make([]domain.Share, len(included))
	var allocated int64
	for i, in := range included {
		if i == len(included)-1 {
			shares[i] = domain.Share{UserID: in.UserID, Amount: totalAmount - allocated}
			break
		}
		amount := total.Mul(in.RawValue).Div(weightSum).Round(0).IntPart()
		allocated += amount
		shares[i] = domain.Share{UserID: in.UserID, Amount: amount}
	}
	return shares, nil
}
