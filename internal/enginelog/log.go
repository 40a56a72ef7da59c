// Package enginelog is a thin wrapper over github.com/op/go-logging,
// reducing the boilerplate needed at each call site to a single GetLog()/
// GetSearchLog() call. Grounded on the teacher's logging/log.go (module-level
// *logging.Logger singletons, a shared timestamped format string, stdout
// backend wired in lazily on first use).
package enginelog

import (
	"log"
	"os"

	"github.com/op/go-logging"
)

var (
	standardLog *logging.Logger
	searchLog   *logging.Logger

	format = logging.MustStringFormatter(
		`%{time:15:04:05.000} %{shortpkg:-8.8s}:%{shortfile:-14.14s} %{level:-7.7s}:  %{message}`,
	)

	// Level is the module level applied to both loggers. Every GetLog/
	// GetSearchLog call rebuilds the backend, so a change takes effect on
	// the next call; cmd/corvid sets it after engineconfig.Setup.
	Level = logging.INFO
)

func init() {
	standardLog = logging.MustGetLogger("standard")
	searchLog = logging.MustGetLogger("search")
}

func backend() logging.Backend {
	raw := logging.NewLogBackend(os.Stdout, "", log.Lmsgprefix)
	formatted := logging.NewBackendFormatter(raw, format)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(Level, "")
	return leveled
}

// GetLog returns the standard logger, reconfigured with the current Level.
func GetLog() *logging.Logger {
	standardLog.SetBackend(backend())
	return standardLog
}

// GetSearchLog returns the search logger, reconfigured with the current
// Level. It is a separately named logger ("search"), but it shares Level
// with the standard logger; it cannot be given a level of its own here.
func GetSearchLog() *logging.Logger {
	searchLog.SetBackend(backend())
	return searchLog
}
