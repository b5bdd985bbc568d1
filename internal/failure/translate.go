// Package failure turns transport failures into user-facing notifications
// without changing what the caller observes.
package failure

import (
	"context"
	"errors"
	"net/http"
	"strings"

	apperrors "github.com/enicarthage/library-client/internal/errors"
)

// Messages shown for well-known statuses.
const (
	MsgUnauthorized = "Unauthorized access. Please login again."
	MsgForbidden    = "Access forbidden. You do not have permission to perform this action."
	MsgNotFound     = "Resource not found."
	MsgServerError  = "Internal server error. Please try again later."
	MsgGeneric      = "An error occurred"
)

var statusMessages = map[int]string{
	http.StatusUnauthorized:        MsgUnauthorized,
	http.StatusForbidden:           MsgForbidden,
	http.StatusNotFound:            MsgNotFound,
	http.StatusInternalServerError: MsgServerError,
}

// Translate returns the single human-readable message for err.
// Precedence: status-specific message, then the message embedded in the
// response body, then the client-side failure text, then a generic fallback.
func Translate(err error) string {
	if err == nil {
		return ""
	}
	te, ok := apperrors.AsTransport(err)
	if !ok {
		return MsgGeneric
	}
	if msg, ok := statusMessages[te.Status]; ok {
		return msg
	}
	if msg := strings.TrimSpace(te.ServerMessage); msg != "" {
		return msg
	}
	if te.ClientSide && te.Cause != nil {
		if msg := strings.TrimSpace(te.Cause.Error()); msg != "" {
			return msg
		}
	}
	return MsgGeneric
}

// Notifiable reports whether err should reach the user. Requests abandoned
// by their caller (screen closed, command interrupted) are not shown.
func Notifiable(err error) bool {
	return err != nil && !errors.Is(err, context.Canceled)
}
