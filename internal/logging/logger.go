package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// Fields carries structured key/value context for a log entry.
type Fields map[string]interface{}

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

func output(e *zerolog.Event, msg string, fields Fields) {
	for k, v := range fields {
		e = e.Interface(k, v)
	}
	e.Msg(msg)
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	output(logger.Info(), msg, fields)
}

// Error logs an error message and includes the error in the fields.
func Error(msg string, err error, fields Fields) {
	output(logger.Error().Err(err), msg, fields)
}

// Fatal logs a fatal error and exits the process.
func Fatal(msg string, err error, fields Fields) {
	output(logger.Fatal().Err(err), msg, fields)
}
