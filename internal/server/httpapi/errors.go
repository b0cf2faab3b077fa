package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/folio/internal/common"
)

// errorBody is the JSON envelope of every failed request.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes carried in errorDetail.Code.
const (
	codeValidation   = "validation_failed"
	codeUnauthorized = "unauthorized"
	codeForbidden    = "forbidden"
	codeNotFound     = "not_found"
	codeConflict     = "conflict"
	codeInternal     = "internal"
)

// statusFor maps a service error onto an HTTP status, an error code and a
// message that is safe to show to the client.
func statusFor(err error) (int, string, string) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, codeValidation, err.Error()
	case errors.Is(err, common.ErrTokenKindMismatch):
		return http.StatusUnauthorized, codeUnauthorized, "token kind mismatch"
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized, codeUnauthorized, "incorrect email or password"
	case errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, codeUnauthorized, "token expired"
	case common.IsAuthFailure(err):
		return http.StatusUnauthorized, codeUnauthorized, "could not validate credentials"
	case errors.Is(err, common.ErrorForbidden):
		return http.StatusForbidden, codeForbidden, "not enough permissions"
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, codeNotFound, "resource not found"
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict, codeConflict, conflictMessage(err)
	default:
		return http.StatusInternalServerError, codeInternal, "internal server error"
	}
}

// conflictMessage keeps only the part of the error after the sentinel, such
// as "already exists: email", and never the driver text.
func conflictMessage(err error) string {
	msg := err.Error()
	sentinel := common.ErrorAlreadyExists.Error()
	i := strings.Index(msg, sentinel)
	if i < 0 {
		return sentinel
	}
	rest := msg[i:]
	if j := strings.IndexAny(rest, ";("); j >= 0 {
		rest = rest[:j]
	}
	return strings.TrimSpace(rest)
}

// respondError writes the error envelope and aborts the chain. Unmapped
// errors are logged with their full text since the client only sees a
// generic message.
func (s *Server) respondError(c *gin.Context, err error) {
	status, code, msg := statusFor(err)
	if status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", common.BearerScheme)
	}
	if status == http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"request_id", c.GetString(requestIDKey),
			"error", err.Error(),
		)
	}
	c.AbortWithStatusJSON(status, errorBody{Error: errorDetail{Code: code, Message: msg}})
}
