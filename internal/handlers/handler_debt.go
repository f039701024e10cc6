package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anygroup/splitfair/internal/apperrors"
	portssvc "github.com/anygroup/splitfair/internal/core/ports/services"
	"github.com/anygroup/splitfair/internal/dto"
	"github.com/anygroup/splitfair/internal/middleware"
)

// debtHandler handles HTTP requests related to debt records and balances.
type debtHandler struct {
	debtService portssvc.DebtSvcFacade
}

// newDebtHandler creates a new debtHandler.
func newDebtHandler(ds portssvc.DebtSvcFacade) *debtHandler {
	return &debtHandler{
		debtService: ds,
	}
}

// registerDebtRoutes registers routes related to debts.
func registerDebtRoutes(rg *gin.RouterGroup, debtService portssvc.DebtSvcFacade) {
	h := newDebtHandler(debtService)

	debts := rg.Group("/debts")
	{
		debts.GET("/user/:id", h.listUserDebts)
		debts.GET("/user/:id/summary", h.getUserBalanceSummary)
		debts.GET("/group/:id/net-balances", h.getGroupNetBalances)
		debts.PATCH("/:id/settle", h.settleDebt)
		debts.POST("/settle-batch", h.settleDebtsBatch)
	}
}

func (h *debtHandler) listUserDebts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("id")

	logger = logger.With(slog.String("target_user_id", userID))
	logger.Info("Received request to list user debts")

	debts, err := h.debtService.ListDebtsByUser(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list debts from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list debts"})
		return
	}

	logger.Info("Debts listed successfully", slog.Int("count", len(debts)))
	c.JSON(http.StatusOK, dto.ListDebtsResponse{Debts: dto.ToDebtResponses(debts)})
}

func (h *debtHandler) getUserBalanceSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("id")

	logger = logger.With(slog.String("target_user_id", userID))
	logger.Info("Received request for balance summary")

	summary, err := h.debtService.GetUserBalanceSummary(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to get balance summary from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve balance summary"})
		return
	}

	logger.Info("Balance summary retrieved successfully")
	c.JSON(http.StatusOK, dto.ToBalanceSummaryResponse(summary))
}

func (h *debtHandler) getGroupNetBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("id")

	logger = logger.With(slog.String("target_group_id", groupID))
	logger.Info("Received request for group net balances")

	balances, err := h.debtService.GetGroupNetBalances(c.Request.Context(), groupID)
	if err != nil {
		logger.Error("Failed to get group net balances from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve group balances"})
		return
	}

	logger.Info("Group net balances retrieved successfully", slog.Int("member_count", len(balances)))
	c.JSON(http.StatusOK, gin.H{"balances": dto.ToGroupBalanceResponses(balances)})
}

func (h *debtHandler) settleDebt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	debtID := c.Param("id")

	settlerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Settler user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("target_debt_id", debtID), slog.String("settler_user_id", settlerUserID))
	logger.Info("Received request to settle debt")

	debt, err := h.debtService.SettleDebt(c.Request.Context(), debtID, settlerUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Debt not found for settlement")
			c.JSON(http.StatusNotFound, gin.H{"error": "Debt not found"})
		} else if errors.Is(err, apperrors.ErrConcurrentModification) {
			logger.Warn("Concurrent modification settling debt", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": "Debt was modified concurrently, retry"})
		} else {
			logger.Error("Failed to settle debt in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to settle debt"})
		}
		return
	}

	logger.Info("Debt settled successfully")
	c.JSON(http.StatusOK, dto.ToDebtResponse(*debt))
}

func (h *debtHandler) settleDebtsBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SettleDebtsBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SettleDebtsBatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	settlerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Settler user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("settler_user_id", settlerUserID))
	logger.Info("Received request to settle debt batch", slog.Int("debt_count", len(req.DebtIDs)))

	debts, err := h.debtService.SettleDebtsBatch(c.Request.Context(), req.DebtIDs, settlerUserID)
	if err != nil {
		var batchErr *apperrors.BatchSettleError
		if errors.As(err, &batchErr) {
			logger.Warn("Batch settle rejected, unknown debt IDs", slog.Int("missing_count", len(batchErr.MissingIDs)))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": batchErr.Error(), "missingDebtIds": batchErr.MissingIDs})
		} else if errors.Is(err, apperrors.ErrConcurrentModification) {
			logger.Warn("Concurrent modification settling debt batch", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": "One or more debts were modified concurrently, retry"})
		} else {
			logger.Error("Failed to settle debt batch in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to settle debts"})
		}
		return
	}

	logger.Info("Debt batch settled successfully", slog.Int("count", len(debts)))
	c.JSON(http.StatusOK, dto.ListDebtsResponse{Debts: dto.ToDebtResponses(debts)})
}
