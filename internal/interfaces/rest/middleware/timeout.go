package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/DanielPopoola/ficmart-checkout/internal/application"
	"github.com/DanielPopoola/ficmart-checkout/internal/interfaces/rest"
)

// Timeout bounds every request and answers with the TIMEOUT envelope once the
// deadline passes. The deadline is also set on the request context so an
// in-flight operator call is cancelled with it.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	_, body := rest.BuildErrorResponse(application.NewTimeoutError())
	msg, err := json.Marshal(body)
	if err != nil {
		msg = []byte(`{"success":false,"error":{"code":"TIMEOUT","message":"Request timed out"}}`)
	}

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, string(msg))
	}
}
