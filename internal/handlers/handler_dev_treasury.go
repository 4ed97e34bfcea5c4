package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/wallet_ledger_service/internal/core/domain"
	portssvc "github.com/SscSPs/wallet_ledger_service/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger_service/internal/dto"
	"github.com/SscSPs/wallet_ledger_service/internal/middleware"
	"github.com/gin-gonic/gin"
)

type devTreasuryHandler struct {
	treasuryService portssvc.TreasurySvcFacade
}

// RegisterDevTreasuryRoutes registers the test-funding endpoints. Never call this in production.
func RegisterDevTreasuryRoutes(rg *gin.RouterGroup, treasuryService portssvc.TreasurySvcFacade) {
	registerValidators()
	h := &devTreasuryHandler{treasuryService: treasuryService}

	treasury := rg.Group("/dev/treasury")
	{
		treasury.POST("/mint", h.mint)
		treasury.POST("/mint/usd", h.mint) // alias of /mint for the default USD treasury
	}
}

// mint godoc
// @Summary Mint test money into an account
// @Description Tops up the dev treasury from the issuer and transfers the amount to the target account. Not available in production.
// @Tags dev
// @Produce  json
// @Param   Idempotency-Key header string true "Client-chosen key, 1-80 characters"
// @Param   toAccountId query int true "Target account ID"
// @Param   amountMinor query int true "Amount in minor units"
// @Param   currency query string false "Must equal the treasury currency"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} dto.APIError
// @Failure 404 {object} dto.APIError "Target account not found"
// @Failure 500 {object} dto.APIError
// @Router /dev/treasury/mint [post]
func (h *devTreasuryHandler) mint(c *gin.Context) {
	key, ok := idempotencyKey(c)
	if !ok {
		return
	}

	var params dto.MintParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Received dev mint request",
		slog.Int64("to_account_id", params.ToAccountID),
		slog.Int64("amount_minor", params.AmountMinor))

	result, err := h.treasuryService.Mint(c.Request.Context(), domain.MintCommand{
		IdempotencyKey: key,
		ToAccountID:    params.ToAccountID,
		AmountMinor:    params.AmountMinor,
		Currency:       params.Currency,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransferResponse(result))
}
