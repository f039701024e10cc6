package dto

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/anygroup/splitfair/internal/apperrors"
	"github.com/anygroup/splitfair/internal/core/domain"
)

// ParticipantShareInput is one participant's row in an expense creation request.
// RawValue is a decimal string with at most two decimal places; its meaning
// depends on the split method and it may be omitted for EQUAL.
type ParticipantShareInput struct {
	UserID   string `json:"id" binding:"required"`
	Included bool   `json:"included"`
	RawValue string `json:"rawValue" binding:"omitempty,decimal2"`
}

// CreateExpenseRequest defines the expected JSON body for creating an expense.
type CreateExpenseRequest struct {
	GroupID      string                  `json:"groupId" binding:"required"`
	Description  string                  `json:"description" binding:"max=255"`
	Amount       int64                   `json:"amount" binding:"required,gt=0"` // Whole VND
	PaidBy       string                  `json:"payerId" binding:"required"`
	SplitMethod  domain.AllocationPolicy `json:"policy" binding:"required,oneof=EQUAL EXACT PERCENTAGE SHARES"`
	Participants []ParticipantShareInput `json:"participants" binding:"required,min=1,dive"`
}

// ToParticipantInputs converts the request rows into domain inputs, parsing the
// decimal strings. An empty raw value parses as zero.
func (r CreateExpenseRequest) ToParticipantInputs() ([]domain.ParticipantInput, error) {
	inputs := make([]domain.ParticipantInput, len(r.Participants))
	for i, p := range r.Participants {
		rawValue := decimal.Zero
		if p.RawValue != "" {
			parsed, err := decimal.NewFromString(p.RawValue)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid raw value %q for participant %s", apperrors.ErrValidation, p.RawValue, p.UserID)
			}
			rawValue = parsed
		}
		inputs[i] = domain.ParticipantInput{
			UserID:   p.UserID,
			Included: p.Included,
			RawValue: rawValue,
		}
	}
	return inputs, nil
}

// ShareInput is one finalized share amount in a save-shares request.
type ShareInput struct {
	UserID      string `json:"userId" binding:"required"`
	ShareAmount int64  `json:"shareAmount" binding:"gte=0"` // Whole VND
}

// SaveExpenseSharesRequest defines the expected JSON body for persisting the
// finalized shares of an expense, replacing any prior debt records for it.
type SaveExpenseSharesRequest struct {
	ExpenseID   string       `json:"expenseId" binding:"required"`
	TotalAmount int64        `json:"totalAmount" binding:"required,gt=0"`
	Shares      []ShareInput `json:"shares" binding:"required,min=1,dive"`
}

// ShareResponse is one computed share in an expense response.
type ShareResponse struct {
	UserID string `json:"userId"`
	Amount int64  `json:"amount"`
}

// ExpenseResponse defines the JSON structure returned for an expense.
type ExpenseResponse struct {
	ExpenseID   string                  `json:"expenseId"`
	GroupID     string                  `json:"groupId"`
	Description string                  `json:"description"`
	Amount      int64                   `json:"amount"`
	PaidBy      string                  `json:"payerId"`
	SplitMethod domain.AllocationPolicy `json:"policy"`
	CreatedAt   time.Time               `json:"createdAt"`
	Shares      []ShareResponse         `json:"shares,omitempty"`
	Debts       []DebtResponse          `json:"debts,omitempty"`
}

// ToExpenseResponse maps a domain expense and its computed shares to the
// response DTO.
func ToExpenseResponse(expense *domain.Expense, shares []domain.Share) ExpenseResponse {
	resp := ExpenseResponse{
		ExpenseID:   expense.ExpenseID,
		GroupID:     expense.GroupID,
		Description: expense.Description,
		Amount:      expense.Amount,
		PaidBy:      expense.PaidBy,
		SplitMethod: expense.SplitMethod,
		CreatedAt:   expense.CreatedAt,
	}
	for _, s := range shares {
		resp.Shares = append(resp.Shares, ShareResponse{UserID: s.UserID, Amount: s.Amount})
	}
	return resp
}

// ValidateDecimal2 is the "decimal2" binding rule: a decimal string with at
// most two decimal places. Keeps percentage and share-weight inputs out of
// binary-float territory.
func ValidateDecimal2(fl validator.FieldLevel) bool {
	value, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return value.Exponent() >= -2
}
