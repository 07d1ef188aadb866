package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"smarthourly.com/smarthourly/hourly/core"
)

// RespondError maps a domain error onto the HTTP surface. Every kind is
// per-action and recoverable: validation problems come back to the form,
// duplicates tell the operator the slot is taken, a lost pending entry
// prompts a queue refresh, and remote failures invite a retry.
func RespondError(c *gin.Context, err error) {
	var ve *core.ValidationError
	var ise *core.InvalidShiftError
	var dup *core.DuplicateSlotError
	var remote *core.RemoteUnavailableError

	switch {
	case errors.As(err, &ve), errors.As(err, &ise):
		c.JSON(http.StatusBadRequest, NewErrorResponse(err.Error()))
	case errors.As(err, &dup):
		c.JSON(http.StatusConflict, NewErrorResponse(err.Error()))
	case errors.Is(err, core.ErrNotPending):
		c.JSON(http.StatusNotFound, NewErrorResponse(err.Error()))
	case errors.As(err, &remote):
		c.JSON(http.StatusBadGateway, NewErrorResponse(err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, NewErrorResponse(err.Error()))
	}
}
