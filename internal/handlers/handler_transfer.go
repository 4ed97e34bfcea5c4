package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/wallet_ledger_service/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_service/internal/core/domain"
	portssvc "github.com/SscSPs/wallet_ledger_service/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger_service/internal/dto"
	"github.com/SscSPs/wallet_ledger_service/internal/middleware"
	"github.com/gin-gonic/gin"
)

type transferHandler struct {
	transferService portssvc.TransferSvcFacade
}

// RegisterTransferRoutes registers the transfer endpoint.
func RegisterTransferRoutes(rg *gin.RouterGroup, transferService portssvc.TransferSvcFacade) {
	registerValidators()
	h := &transferHandler{transferService: transferService}

	rg.POST("/transfers", h.createTransfer)
}

// createTransfer godoc
// @Summary Transfer money between two accounts
// @Description Posts a balanced journal entry and moves the amount from the source to the destination account.
// @Description Repeating a request with the same Idempotency-Key returns the original result and moves nothing.
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   Idempotency-Key header string true "Client-chosen key, 1-80 characters"
// @Param   transfer body dto.TransferRequest true "Transfer details"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} dto.APIError "Validation error, insufficient funds or missing header"
// @Failure 404 {object} dto.APIError "Account not found"
// @Failure 500 {object} dto.APIError
// @Router /transfers [post]
func (h *transferHandler) createTransfer(c *gin.Context) {
	key, ok := idempotencyKey(c)
	if !ok {
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if subject, ok := middleware.GetUserIDFromContext(c); ok {
		logger = logger.With(slog.String("requested_by", subject))
	}
	logger.Debug("Received transfer request",
		slog.String("idempotency_key", key),
		slog.Int64("from_account_id", req.FromAccountID),
		slog.Int64("to_account_id", req.ToAccountID))

	result, err := h.transferService.Transfer(c.Request.Context(), req.ToCommand(key))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransferResponse(result))
}

// idempotencyKey reads the required Idempotency-Key header and writes the error
// response itself when the header is absent or too long.
func idempotencyKey(c *gin.Context) (string, bool) {
	key := strings.TrimSpace(c.GetHeader(dto.IdempotencyKeyHeader))
	if key == "" {
		respondMissingHeader(c, dto.IdempotencyKeyHeader)
		return "", false
	}
	if len(key) > domain.MaxIdempotencyKeyLength {
		respondWithError(c, apperrors.NewValidationError(
			fmt.Sprintf("%s must be at most %d characters", dto.IdempotencyKeyHeader, domain.MaxIdempotencyKeyLength)))
		return "", false
	}
	return key, true
}
