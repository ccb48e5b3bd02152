package logger

import (
	"log/slog"
	"os"
)

var log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
	Level: slog.LevelDebug,
}))

// normalize keeps slog happy when a bare error is passed as the only argument
func normalize(args []any) []any {
	if len(args)%2 == 1 {
		return append([]any{"error"}, args...)
	}
	return args
}

func Info(msg string, args ...any) {
	log.Info(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	log.Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	log.Error(msg, normalize(args)...)
}

func Debug(msg string, args ...any) {
	log.Debug(msg, normalize(args)...)
}
