package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/anygroup/splitfair/internal/apperrors"
	"github.com/anygroup/splitfair/internal/core/domain"
	portssvc "github.com/anygroup/splitfair/internal/core/ports/services"
	"github.com/anygroup/splitfair/internal/dto"
	"github.com/anygroup/splitfair/internal/handlers"
	"github.com/anygroup/splitfair/pkg/config"
)

// --- Mock ExpenseService ---
type MockExpenseService struct {
	mock.Mock
}

func (m *MockExpenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, []domain.Share, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Expense), args.Get(1).([]domain.Share), args.Error(2)
}

func (m *MockExpenseService) GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, []domain.Debt, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Expense), args.Get(1).([]domain.Debt), args.Error(2)
}

func (m *MockExpenseService) SaveExpenseShares(ctx context.Context, req dto.SaveExpenseSharesRequest) ([]domain.Debt, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Debt), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ExpenseSvcFacade = (*MockExpenseService)(nil)

// --- Test Suite ---
type ExpenseHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockExpenseService *MockExpenseService
}

func (suite *ExpenseHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("decimal2", dto.ValidateDecimal2)
	}

	suite.mockExpenseService = new(MockExpenseService)

	services := &portssvc.ServiceContainer{
		Expense: suite.mockExpenseService,
	}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, &config.Config{}, services)
}

func (suite *ExpenseHandlerTestSuite) performRequest(method, path, userID string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *ExpenseHandlerTestSuite) TestCreateExpense_Success() {
	req := dto.CreateExpenseRequest{
		GroupID:     "group-1",
		Description: "Lunch",
		Amount:      300,
		PaidBy:      "payer",
		SplitMethod: domain.SplitEqual,
		Participants: []dto.ParticipantShareInput{
			{UserID: "payer", Included: true},
			{UserID: "alice", Included: true},
			{UserID: "bob", Included: true},
		},
	}
	body, _ := json.Marshal(req)

	expense := &domain.Expense{ExpenseID: "exp-1", GroupID: "group-1", Amount: 300, PaidBy: "payer", SplitMethod: domain.SplitEqual}
	shares := []domain.Share{
		{UserID: "payer", Amount: 100},
		{UserID: "alice", Amount: 100},
		{UserID: "bob", Amount: 100},
	}
	suite.mockExpenseService.On("CreateExpense", mock.Anything, req, "creator").Return(expense, shares, nil).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/expenses", "creator", body)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ExpenseResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("exp-1", resp.ExpenseID)
	suite.Len(resp.Shares, 3)

	suite.mockExpenseService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestCreateExpense_MissingIdentity() {
	req := dto.CreateExpenseRequest{
		GroupID:     "group-1",
		Amount:      300,
		PaidBy:      "payer",
		SplitMethod: domain.SplitEqual,
		Participants: []dto.ParticipantShareInput{
			{UserID: "payer", Included: true},
		},
	}
	body, _ := json.Marshal(req)

	w := suite.performRequest(http.MethodPost, "/api/v1/expenses", "", body)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockExpenseService.AssertNotCalled(suite.T(), "CreateExpense", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExpenseHandlerTestSuite) TestCreateExpense_ValidationError() {
	req := dto.CreateExpenseRequest{
		GroupID:     "group-1",
		Amount:      1000,
		PaidBy:      "payer",
		SplitMethod: domain.SplitExact,
		Participants: []dto.ParticipantShareInput{
			{UserID: "payer", Included: true, RawValue: "600"},
			{UserID: "alice", Included: true, RawValue: "300"},
		},
	}
	body, _ := json.Marshal(req)

	mismatch := &apperrors.AmountMismatchError{Expected: 1000, Actual: 900}
	suite.mockExpenseService.On("CreateExpense", mock.Anything, req, "creator").Return(nil, nil, mismatch).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/expenses", "creator", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockExpenseService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestCreateExpense_MalformedPolicyRejected() {
	body := []byte(`{"groupId":"g","amount":100,"payerId":"p","policy":"HALVES","participants":[{"id":"p","included":true}]}`)

	w := suite.performRequest(http.MethodPost, "/api/v1/expenses", "creator", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockExpenseService.AssertNotCalled(suite.T(), "CreateExpense", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExpenseHandlerTestSuite) TestGetExpense_Success() {
	expense := &domain.Expense{ExpenseID: "exp-1", GroupID: "group-1", Amount: 300, PaidBy: "payer", SplitMethod: domain.SplitEqual}
	debts := []domain.Debt{
		{DebtID: "d1", ExpenseID: "exp-1", FromUserID: "alice", ToUserID: "payer", Amount: 150, Status: domain.DebtUnsettled},
	}
	suite.mockExpenseService.On("GetExpenseByID", mock.Anything, "exp-1").Return(expense, debts, nil).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/expenses/exp-1", "", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "exp-1")
	suite.Contains(w.Body.String(), "d1")

	suite.mockExpenseService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestGetExpense_NotFound() {
	suite.mockExpenseService.On("GetExpenseByID", mock.Anything, "ghost").Return(nil, nil, apperrors.ErrNotFound).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/expenses/ghost", "", nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockExpenseService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestSaveExpenseShares_Success() {
	req := dto.SaveExpenseSharesRequest{
		ExpenseID:   "exp-1",
		TotalAmount: 300,
		Shares: []dto.ShareInput{
			{UserID: "payer", ShareAmount: 150},
			{UserID: "alice", ShareAmount: 150},
		},
	}
	body, _ := json.Marshal(req)

	debts := []domain.Debt{
		{DebtID: "d1", ExpenseID: "exp-1", FromUserID: "alice", ToUserID: "payer", Amount: 150, Status: domain.DebtUnsettled},
	}
	suite.mockExpenseService.On("SaveExpenseShares", mock.Anything, req).Return(debts, nil).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/expense-shares/save", "creator", body)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListDebtsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Debts, 1)

	suite.mockExpenseService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestSaveExpenseShares_SumMismatch() {
	req := dto.SaveExpenseSharesRequest{
		ExpenseID:   "exp-1",
		TotalAmount: 300,
		Shares:      []dto.ShareInput{{UserID: "alice", ShareAmount: 100}},
	}
	body, _ := json.Marshal(req)

	mismatch := &apperrors.AmountMismatchError{Expected: 300, Actual: 100}
	suite.mockExpenseService.On("SaveExpenseShares", mock.Anything, req).Return(nil, mismatch).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/expense-shares/save", "creator", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockExpenseService.AssertExpectations(suite.T())
}

// Run the suite
func TestExpenseHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseHandlerTestSuite))
}
