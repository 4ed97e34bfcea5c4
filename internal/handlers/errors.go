package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/wallet_ledger_service/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_service/internal/dto"
	"github.com/SscSPs/wallet_ledger_service/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondWithError maps an application error onto the uniform error body.
func respondWithError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	switch apperrors.Kind(err) {
	case apperrors.ErrValidation:
		writeError(c, http.StatusBadRequest, dto.CodeValidation, "Validation failed", apperrors.Message(err))
	case apperrors.ErrNotFound:
		writeError(c, http.StatusNotFound, dto.CodeNotFound, "Not found", apperrors.Message(err))
	case apperrors.ErrConflict:
		writeError(c, http.StatusConflict, dto.CodeConflict, "Conflict", apperrors.Message(err))
	default:
		logger.Error("Unhandled error", slog.String("error", err.Error()))
		writeError(c, http.StatusInternalServerError, dto.CodeInternal, "Internal error", "")
	}
}

// respondBindError reports a request that failed JSON decoding or binding validation.
func respondBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid request", slog.String("error", err.Error()))

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			parts = append(parts, fe.Field()+": "+describeFieldError(fe))
		}
		writeError(c, http.StatusBadRequest, dto.CodeValidation, "Validation failed", strings.Join(parts, ", "))
		return
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		writeError(c, http.StatusBadRequest, dto.CodeValidation, "Validation failed",
			fmt.Sprintf("%s: must be of type %s", typeErr.Field, typeErr.Type))
		return
	}

	writeError(c, http.StatusBadRequest, dto.CodeBadRequest, "Malformed request", err.Error())
}

// respondMissingHeader reports an absent required header.
func respondMissingHeader(c *gin.Context, header string) {
	writeError(c, http.StatusBadRequest, dto.CodeBadRequest, "Required header is missing", "Missing header: "+header)
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "currency_code":
		return "must be a 3-letter ISO-4217 code"
	}
	return "failed on " + fe.Tag()
}

func writeError(c *gin.Context, status int, code, message, details string) {
	c.AbortWithStatusJSON(status, dto.APIError{
		Code:      code,
		Message:   message,
		Details:   details,
		Path:      c.Request.URL.Path,
		Timestamp: time.Now().UTC(),
	})
}
