package handler

import (
	"context"
	"errors"
	"io"
	"strconv"

	"coinwall/internal/adapter/http/dto"
	"coinwall/internal/core/domain"
	"coinwall/internal/core/ports"
	"coinwall/pkg/apperror"
	"coinwall/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WalletHandler handles ledger endpoints.
type WalletHandler struct {
	walletSvc ports.WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletSvc ports.WalletService) *WalletHandler {
	return &WalletHandler{walletSvc: walletSvc}
}

// CreateOrUpsert handles POST /wallet.
func (h *WalletHandler) CreateOrUpsert(c *gin.Context) {
	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ErrBadPayload(err.Error()))
		return
	}

	w, err := h.walletSvc.CreateOrUpsert(c.Request.Context(), req.Nickname, req.Mnemonic)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToWalletResponse(w))
}

// Generate handles POST /wallet/create. The generated words appear in
// this response and nowhere else, ever.
func (h *WalletHandler) Generate(c *gin.Context) {
	var req dto.GenerateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, apperror.ErrBadPayload(err.Error()))
		return
	}

	result, err := h.walletSvc.Generate(c.Request.Context(), req.Alias)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.GeneratedWalletResponse{
		WalletResponse: dto.ToWalletResponse(result.Wallet),
		Words:          result.Words,
	})
}

// Import handles POST /wallet/import.
func (h *WalletHandler) Import(c *gin.Context) {
	var req dto.ImportWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ErrBadPayload(err.Error()))
		return
	}

	w, err := h.walletSvc.ImportByWords(c.Request.Context(), req.Words)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToWalletResponse(w))
}

// GetByID handles GET /wallet/:id.
func (h *WalletHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.ErrNotFound("wallet"))
		return
	}

	w, err := h.walletSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToWalletResponse(w))
}

// GetByAddress handles GET /wallet/address/:address.
func (h *WalletHandler) GetByAddress(c *gin.Context) {
	w, err := h.walletSvc.GetByAddress(c.Request.Context(), c.Param("address"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToWalletResponse(w))
}

// Award handles POST /wallet/:id/award.
func (h *WalletHandler) Award(c *gin.Context) {
	h.mutate(c, h.walletSvc.Award)
}

// Spend handles POST /wallet/:id/spend.
func (h *WalletHandler) Spend(c *gin.Context) {
	h.mutate(c, h.walletSvc.Spend)
}

func (h *WalletHandler) mutate(c *gin.Context, op func(ctx context.Context, req ports.MutationRequest) (*domain.Wallet, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.ErrNotFound("wallet"))
		return
	}

	var req dto.MutateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// A missing or non-numeric amount is an amount problem, not a
		// generic payload problem.
		response.Error(c, apperror.ErrBadAmount())
		return
	}

	w, err := op(c.Request.Context(), ports.MutationRequest{
		WalletID: id,
		Amount:   req.Amount,
		Reason:   req.Reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToWalletResponse(w))
}

// History handles GET /wallet/:id/history.
func (h *WalletHandler) History(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.ErrNotFound("wallet"))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := h.walletSvc.History(c.Request.Context(), id, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, entries)
}
