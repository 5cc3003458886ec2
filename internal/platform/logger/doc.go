// Package logger provides structured logging for the application.
//
// It builds log/slog JSON loggers with a configurable level and carries
// request-scoped loggers through context.Context.
package logger
