package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "quickbite.backend/internal/domain/errors"
	"quickbite.backend/pkg/utils"
)

// Success sends a success envelope
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"ok": true, "data": data})
}

// Message sends a success envelope carrying only a human-readable message
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"ok": true, "message": message})
}

// List sends a paginated listing envelope
func List(c *gin.Context, rows interface{}, meta utils.PaginationMeta) {
	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"page":       meta.Page,
		"pageSize":   meta.PageSize,
		"total":      meta.TotalCount,
		"totalPages": meta.TotalPages,
		"rows":       rows,
	})
}

// Error sends an error envelope. AppErrors keep their status, code and
// offending field; bare sentinels map to their usual HTTP status; anything
// else becomes an opaque 500.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		appErr = fromSentinel(err)
	}

	body := gin.H{
		"ok":      false,
		"code":    appErr.Code,
		"message": appErr.Message,
	}
	if appErr.Field != "" {
		body["field"] = appErr.Field
	}
	c.JSON(appErr.Status, body)
}

func fromSentinel(err error) *domainerrors.AppError {
	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		return domainerrors.NotFound("Resource not found")
	case errors.Is(err, domainerrors.ErrConflict):
		return domainerrors.Conflict("", "Resource already exists")
	case errors.Is(err, domainerrors.ErrValidation):
		return domainerrors.Validation(err.Error())
	case errors.Is(err, domainerrors.ErrOTPInvalid):
		return domainerrors.OTPInvalid()
	case errors.Is(err, domainerrors.ErrNotActive):
		return domainerrors.NotActive()
	case errors.Is(err, domainerrors.ErrUnauthorized):
		return domainerrors.Unauthorized("Unauthorized")
	case errors.Is(err, domainerrors.ErrForbidden):
		return domainerrors.Forbidden("Forbidden")
	default:
		return domainerrors.Internal(err)
	}
}
