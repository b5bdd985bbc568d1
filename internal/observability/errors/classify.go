package errors

import (
	"context"
	goerrors "errors"
	"reflect"
	"strconv"
	"strings"

	apperrors "github.com/enicarthage/library-client/internal/errors"
)

// Classify returns a normalized error class suitable for tagging metrics/logs.
// Transport failures are classed by status ("http_404") or as "network";
// client errors by their code ("app_validation"); anything else by the
// innermost concrete type name in snake_case-ish form.
func Classify(err error) string {
	if err == nil {
		return ""
	}
	if goerrors.Is(err, context.Canceled) {
		return "canceled"
	}
	if goerrors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	if te, ok := apperrors.AsTransport(err); ok {
		if te.ClientSide || te.Status == 0 {
			return "network"
		}
		return "http_" + strconv.Itoa(te.Status)
	}
	if code := apperrors.GetCode(err); code != "" {
		return "app_" + string(code)
	}

	// Unwrap to the innermost error for better signal.
	for {
		unwrapped := goerrors.Unwrap(err)
		if unwrapped == nil {
			break
		}
		err = unwrapped
	}

	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "unknown"
	}

	name := strings.ToLower(strings.ReplaceAll(t.String(), "*", ""))
	name = strings.ReplaceAll(name, ".", "_")
	if name == "" {
		return "unknown"
	}
	return name
}
