package helper

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"todolist/internal/adapter/http/validation"
	"todolist/internal/core/domain"
	"todolist/internal/core/model/response"
)

func SendSuccess(c *gin.Context, statusCode int, data any, message ...string) {
	resp := response.SuccessResponse{
		Data: data,
	}

	if len(message) > 0 && message[0] != "" {
		resp.Message = message[0]
	}

	c.JSON(statusCode, resp)
}

func SendError(c *gin.Context, statusCode int, code string, errs []response.ValidationError, details ...any) {
	errorResponse := response.ErrorResponse{
		Error: response.ResponseError{
			Code:   code,
			Errors: errs,
		},
	}

	if len(details) > 0 {
		errorResponse.Error.Details = details[0]
	}

	c.JSON(statusCode, errorResponse)
}

func SendValidationError(c *gin.Context, err error) {
	errs := validation.FormatValidationErrors(err)

	if len(errs) == 0 {
		errs = []response.ValidationError{
			{Field: "request", Message: "Invalid request parameters"},
		}
	}

	SendError(c, http.StatusBadRequest, "VALIDATION_ERROR", errs)
}

func SendBadRequestError(c *gin.Context, field string, message string) {
	SendError(c, http.StatusBadRequest, "BAD_REQUEST", []response.ValidationError{
		{Field: field, Message: message},
	})
}

func SendUnauthorizedError(c *gin.Context, message string) {
	SendError(c, http.StatusUnauthorized, "UNAUTHORIZED", []response.ValidationError{
		{Field: "auth", Message: message},
	})
}

func SendNotFoundError(c *gin.Context, message string) {
	SendError(c, http.StatusNotFound, "NOT_FOUND", []response.ValidationError{
		{Field: "resource", Message: message},
	})
}

func SendInternalError(c *gin.Context, message string, details ...any) {
	SendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", []response.ValidationError{
		{Field: "server", Message: message},
	}, details...)
}

// SendDomainError maps the service error taxonomy onto HTTP statuses.
// Ownership mismatches surface exactly like missing records.
func SendDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		SendValidationError(c, err)
	case errors.Is(err, domain.ErrEmptyUpdate):
		SendBadRequestError(c, "request", "No valid fields to update")
	case errors.Is(err, domain.ErrNotFound):
		SendNotFoundError(c, "Todo not found")
	case errors.Is(err, domain.ErrUserNotFound):
		SendNotFoundError(c, "User not found")
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrInvalidCredentials):
		SendUnauthorizedError(c, "Unauthorized request")
	case errors.Is(err, domain.ErrEmailTaken):
		SendError(c, http.StatusUnprocessableEntity, "EMAIL_TAKEN", []response.ValidationError{
			{Field: "email", Message: "Email already registered"},
		})
	default:
		SendInternalError(c, "Internal server error")
	}
}
