package service

import (
	"os"

	"github.com/rs/zerolog"
)

// newLogger builds the console logger used by the CLI commands and server.
func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}
