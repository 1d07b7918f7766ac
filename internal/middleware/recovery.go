package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/handlers"
)

type slogRecoveryLogger struct{}

func (slogRecoveryLogger) Println(v ...interface{}) {
	slog.Error("recovered from panic", "error", fmt.Sprint(v...))
}

// Recovery turns handler panics into 500s and logs them.
func Recovery() func(http.Handler) http.Handler {
	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(slogRecoveryLogger{}),
		handlers.PrintRecoveryStack(false),
	)
}

// Compress gzips responses for clients that accept it.
func Compress() func(http.Handler) http.Handler {
	return handlers.CompressHandler
}
