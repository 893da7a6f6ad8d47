package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	networthv1 "github.com/simaogato/networth-backend/internal/adapter/grpc/networth/v1"
	"github.com/simaogato/networth-backend/internal/domain"
	"github.com/simaogato/networth-backend/internal/usecase/aggregator"
	"github.com/simaogato/networth-backend/internal/usecase/ledger"
)

// LedgerHandler exposes the ledger controller over HTTP.
type LedgerHandler struct {
	controller *ledger.Controller
	logger     *zap.Logger
}

// NewLedgerHandler constructs the HTTP handler adapter.
func NewLedgerHandler(controller *ledger.Controller, logger *zap.Logger) *LedgerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerHandler{controller: controller, logger: logger}
}

// Health reports the controller phase; only Ready is healthy.
func (h *LedgerHandler) Health(c *gin.Context) {
	state := h.controller.State()
	body := gin.H{"status": "ok", "phase": state.Phase, "degraded": state.Degraded}
	if state.Phase != ledger.PhaseReady {
		body["status"] = "unavailable"
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}
	c.JSON(http.StatusOK, body)
}

// GetLedger returns collections, totals and phase.
func (h *LedgerHandler) GetLedger(c *gin.Context) {
	state := h.controller.State()
	c.JSON(http.StatusOK, networthv1.NewLedger(
		string(state.Phase), state.Degraded, aggregator.Aggregate(state.Assets, state.Liabilities),
		state.Assets, state.Liabilities, state.History,
	))
}

// GetHistory returns the history entries ordered by date.
func (h *LedgerHandler) GetHistory(c *gin.Context) {
	history := h.controller.State().History
	out := make([]networthv1.HistoryEntry, 0, len(history))
	for _, e := range history {
		out = append(out, *networthv1.FromEntry(e))
	}
	c.JSON(http.StatusOK, gin.H{"history": out})
}

// AddAsset creates an asset from {category, description, value}.
func (h *LedgerHandler) AddAsset(c *gin.Context) {
	var req networthv1.AddAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	value, err := decimal.NewFromString(req.Value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid value format"})
		return
	}

	asset, entry, err := h.controller.AddAsset(c.Request.Context(), domain.NewAsset{
		Category:    domain.AssetCategory(req.Category),
		Description: req.Description,
		Value:       value,
	})
	if asset == nil {
		h.writeError(c, err)
		return
	}

	h.writeResult(c, http.StatusCreated, &networthv1.MutationResult{Asset: networthv1.FromAsset(asset)}, entry, err)
}

// AddLiability creates a liability from {category, description, amount}.
func (h *LedgerHandler) AddLiability(c *gin.Context) {
	var req networthv1.AddLiabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount format"})
		return
	}

	liability, entry, err := h.controller.AddLiability(c.Request.Context(), domain.NewLiability{
		Category:    domain.LiabilityCategory(req.Category),
		Description: req.Description,
		Amount:      amount,
	})
	if liability == nil {
		h.writeError(c, err)
		return
	}

	h.writeResult(c, http.StatusCreated, &networthv1.MutationResult{Liability: networthv1.FromLiability(liability)}, entry, err)
}

// RemoveAsset deletes the asset named in the path.
func (h *LedgerHandler) RemoveAsset(c *gin.Context) {
	entry, err := h.controller.RemoveAsset(c.Request.Context(), c.Param("id"))
	if err != nil && !isPersistenceError(err) {
		h.writeError(c, err)
		return
	}
	h.writeResult(c, http.StatusOK, &networthv1.MutationResult{}, entry, err)
}

// RemoveLiability deletes the liability named in the path.
func (h *LedgerHandler) RemoveLiability(c *gin.Context) {
	entry, err := h.controller.RemoveLiability(c.Request.Context(), c.Param("id"))
	if err != nil && !isPersistenceError(err) {
		h.writeError(c, err)
		return
	}
	h.writeResult(c, http.StatusOK, &networthv1.MutationResult{}, entry, err)
}

// RecordSnapshot records the current totals.
func (h *LedgerHandler) RecordSnapshot(c *gin.Context) {
	entry, err := h.controller.RecordSnapshot(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, &networthv1.MutationResult{Entry: networthv1.FromEntry(entry)})
}

func (h *LedgerHandler) writeResult(c *gin.Context, code int, res *networthv1.MutationResult, entry *domain.NetWorthEntry, historyErr error) {
	if historyErr != nil {
		res.Warning = historyErr.Error()
	} else if entry != nil {
		res.Entry = networthv1.FromEntry(entry)
	}
	c.JSON(code, res)
}

func (h *LedgerHandler) writeError(c *gin.Context, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(code, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	var (
		validationErr *domain.ValidationError
		opErr         *domain.OperationError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNotReady):
		return http.StatusServiceUnavailable
	case errors.As(err, &opErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func isPersistenceError(err error) bool {
	var pErr *domain.PersistenceError
	return errors.As(err, &pErr)
}
