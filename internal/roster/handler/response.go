package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rizalarf/matchday/internal/roster/model"
	"github.com/rizalarf/matchday/pkg/matchkey"
	"github.com/rizalarf/matchday/pkg/namelist"
)

// ErrorResponse represents the error envelope returned by all endpoints.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// errorResponse writes an error envelope with the given code and status.
func errorResponse(c *gin.Context, code string, message string, statusCode int) {
	resp := ErrorResponse{}
	resp.Error.Code = code
	resp.Error.Message = message
	c.JSON(statusCode, resp)
}

// serviceError maps domain sentinel errors to HTTP responses. Anything
// unmapped is a backend failure and must be reported, not hidden.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrMatchNotFound),
		errors.Is(err, model.ErrPlayerNotFound),
		errors.Is(err, model.ErrProofNotFound):
		errorResponse(c, "NOT_FOUND", err.Error(), http.StatusNotFound)
	case errors.Is(err, model.ErrMatchExists):
		errorResponse(c, "MATCH_EXISTS", err.Error(), http.StatusConflict)
	case errors.Is(err, model.ErrKeyCollision):
		errorResponse(c, "KEY_COLLISION", err.Error(), http.StatusConflict)
	case errors.Is(err, model.ErrDuplicatePlayer):
		errorResponse(c, "DUPLICATE_PLAYER", err.Error(), http.StatusConflict)
	case errors.Is(err, model.ErrRecordLocked):
		errorResponse(c, "RECORD_LOCKED", err.Error(), http.StatusConflict)
	case errors.Is(err, model.ErrInvalidStatus):
		errorResponse(c, "INVALID_STATUS", err.Error(), http.StatusBadRequest)
	case errors.Is(err, model.ErrAmbiguousMatch):
		errorResponse(c, "AMBIGUOUS_MATCH", err.Error(), http.StatusBadRequest)
	case errors.Is(err, namelist.ErrEmptyList):
		errorResponse(c, "EMPTY_NAME_LIST", err.Error(), http.StatusBadRequest)
	case errors.Is(err, matchkey.ErrEmptyDate),
		errors.Is(err, matchkey.ErrEmptyField),
		errors.Is(err, matchkey.ErrEmptyPlayer):
		errorResponse(c, "INVALID_MATCH_KEY", err.Error(), http.StatusBadRequest)
	default:
		errorResponse(c, "BACKEND_ERROR", "storage backend failure", http.StatusInternalServerError)
	}
}
