package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/anygroup/splitfair/internal/apperrors"
	"github.com/anygroup/splitfair/internal/core/domain"
	portssvc "github.com/anygroup/splitfair/internal/core/ports/services"
	"github.com/anygroup/splitfair/internal/dto"
	"github.com/anygroup/splitfair/internal/handlers"
	"github.com/anygroup/splitfair/pkg/config"
)

// --- Mock DebtService ---
type MockDebtService struct {
	mock.Mock
}

func (m *MockDebtService) ListDebtsByUser(ctx context.Context, userID string) ([]domain.Debt, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Debt), args.Error(1)
}

func (m *MockDebtService) GetUserBalanceSummary(ctx context.Context, userID string) (*domain.BalanceSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSummary), args.Error(1)
}

func (m *MockDebtService) GetGroupNetBalances(ctx context.Context, groupID string) ([]domain.GroupBalance, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GroupBalance), args.Error(1)
}

func (m *MockDebtService) SettleDebt(ctx context.Context, debtID string, settlerUserID string) (*domain.Debt, error) {
	args := m.Called(ctx, debtID, settlerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debt), args.Error(1)
}

func (m *MockDebtService) SettleDebtsBatch(ctx context.Context, debtIDs []string, settlerUserID string) ([]domain.Debt, error) {
	args := m.Called(ctx, debtIDs, settlerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Debt), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.DebtSvcFacade = (*MockDebtService)(nil)

// --- Test Suite ---
type DebtHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockDebtService *MockDebtService
}

func (suite *DebtHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockDebtService = new(MockDebtService)

	services := &portssvc.ServiceContainer{
		Debt: suite.mockDebtService,
	}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, &config.Config{}, services)
}

func (suite *DebtHandlerTestSuite) performRequest(method, path, userID string, body []byte) *httptest.ResponseRecorder {
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

func (suite *DebtHandlerTestSuite) TestListUserDebts_Success() {
	debts := []domain.Debt{
		{DebtID: "d1", ExpenseID: "e1", FromUserID: "alice", ToUserID: "payer", Amount: 100, Status: domain.DebtUnsettled},
	}
	suite.mockDebtService.On("ListDebtsByUser", mock.Anything, "alice").Return(debts, nil).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/debts/user/alice", "", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListDebtsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Debts, 1)
	suite.Equal("d1", resp.Debts[0].ID)
	suite.Equal(int64(100), resp.Debts[0].Amount)

	suite.mockDebtService.AssertExpectations(suite.T())
}

func (suite *DebtHandlerTestSuite) TestGetUserBalanceSummary_Success() {
	summary := &domain.BalanceSummary{
		Payables:        []domain.AggregatedBalance{{CounterpartyID: "payer", TotalAmount: 150}},
		Receivables:     []domain.AggregatedBalance{},
		TotalPayable:    150,
		TotalReceivable: 0,
		Net:             -150,
		Suggestions: []domain.SettlementSuggestion{
			{CounterpartyID: "payer", PayAmount: 150, NetAmount: 150, Action: domain.ActionPay},
		},
	}
	suite.mockDebtService.On("GetUserBalanceSummary", mock.Anything, "alice").Return(summary, nil).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/debts/user/alice/summary", "", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.BalanceSummaryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(-150), resp.Net)
	suite.Require().Len(resp.Suggestions, 1)
	suite.Equal(domain.ActionPay, resp.Suggestions[0].Action)

	suite.mockDebtService.AssertExpectations(suite.T())
}

func (suite *DebtHandlerTestSuite) TestSettleDebt_Success() {
	settled := &domain.Debt{DebtID: "d1", Status: domain.DebtSettled, Version: 2}
	suite.mockDebtService.On("SettleDebt", mock.Anything, "d1", "payer").Return(settled, nil).Once()

	w := suite.performRequest(http.MethodPatch, "/api/v1/debts/d1/settle", "payer", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.DebtResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.DebtSettled, resp.Status)

	suite.mockDebtService.AssertExpectations(suite.T())
}

func (suite *DebtHandlerTestSuite) TestSettleDebt_MissingIdentity() {
	w := suite.performRequest(http.MethodPatch, "/api/v1/debts/d1/settle", "", nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockDebtService.AssertNotCalled(suite.T(), "SettleDebt", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DebtHandlerTestSuite) TestSettleDebt_NotFound() {
	suite.mockDebtService.On("SettleDebt", mock.Anything, "ghost", "payer").Return(nil, apperrors.ErrNotFound).Once()

	w := suite.performRequest(http.MethodPatch, "/api/v1/debts/ghost/settle", "payer", nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockDebtService.AssertExpectations(suite.T())
}

func (suite *DebtHandlerTestSuite) TestSettleDebt_Conflict() {
	suite.mockDebtService.On("SettleDebt", mock.Anything, "d1", "payer").Return(nil, apperrors.ErrConcurrentModification).Once()

	w := suite.performRequest(http.MethodPatch, "/api/v1/debts/d1/settle", "payer", nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockDebtService.AssertExpectations(suite.T())
}

func (suite *DebtHandlerTestSuite) TestSettleDebtsBatch_Success() {
	body, _ := json.Marshal(dto.SettleDebtsBatchRequest{DebtIDs: []string{"d1", "d2"}})
	settled := []domain.Debt{
		{DebtID: "d1", Status: domain.DebtSettled},
		{DebtID: "d2", Status: domain.DebtSettled},
	}
	suite.mockDebtService.On("SettleDebtsBatch", mock.Anything, []string{"d1", "d2"}, "payer").Return(settled, nil).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/debts/settle-batch", "payer", body)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListDebtsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Debts, 2)

	suite.mockDebtService.AssertExpectations(suite.T())
}

func (suite *DebtHandlerTestSuite) TestSettleDebtsBatch_UnknownIDs() {
	body, _ := json.Marshal(dto.SettleDebtsBatchRequest{DebtIDs: []string{"d1", "ghost"}})
	batchErr := &apperrors.BatchSettleError{MissingIDs: []string{"ghost"}}
	suite.mockDebtService.On("SettleDebtsBatch", mock.Anything, []string{"d1", "ghost"}, "payer").Return(nil, batchErr).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/debts/settle-batch", "payer", body)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Contains(w.Body.String(), "ghost")

	suite.mockDebtService.AssertExpectations(suite.T())
}

func (suite *DebtHandlerTestSuite) TestSettleDebtsBatch_EmptyBodyRejected() {
	body := []byte(`{"debtIds": []}`)

	w := suite.performRequest(http.MethodPost, "/api/v1/debts/settle-batch", "payer", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockDebtService.AssertNotCalled(suite.T(), "SettleDebtsBatch", mock.Anything, mock.Anything, mock.Anything)
}

// Run the suite
func TestDebtHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(DebtHandlerTestSuite))
}
