package errors

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

const consoleTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// LogHandler is an ErrorHandler that logs errors through zerolog.
// The zero value writes human-readable lines to stderr.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
	// Out overrides the destination. Nil means os.Stderr.
	Out io.Writer
}

func (h *LogHandler) logger() zerolog.Logger {
	out := h.Out
	if out == nil {
		out = os.Stderr
	}
	cw := zerolog.ConsoleWriter{Out: out, TimeFormat: consoleTimeFormat, NoColor: true}
	return zerolog.New(cw).With().Timestamp().Logger()
}

// HandleError logs a BridgeError.
func (h *LogHandler) HandleError(err *BridgeError) {
	if err == nil {
		return
	}
	l := h.logger()
	ev := l.Error().Str("op", err.Op).Err(err.Err)
	if h.Verbose {
		ev = ev.Str("kind", err.Kind.String())
		if err.Channel != "" {
			ev = ev.Str("channel", err.Channel)
		}
		if err.StackTrace != "" {
			ev = ev.Str("stack", err.StackTrace)
		}
	}
	ev.Msg("okverify error")
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	l := h.logger()
	ev := l.Error().Interface("value", err.Value)
	if err.Op != "" {
		ev = ev.Str("op", err.Op)
	}
	if h.Verbose && err.StackTrace != "" {
		ev = ev.Str("stack", err.StackTrace)
	}
	ev.Msg("okverify panic")
}
