// Package report is responsible for reporting errors, warnings, and other
// kinds of messages to the user during program execution.  It exposes two
// channels for diagnostics: warnings, which are accumulated and never stop
// processing, and errors, which indicate that the current phase has failed.
package report

import (
	"sync"
	"time"
)

// Reporter receives the diagnostics produced while validating libraries and
// resolving modules.  Implementations decide what failure means: the console
// reporter displays and keeps going, test reporters collect, and the strict
// reporter used for lazy resolution records the first error as an abort.
type Reporter interface {
	// Error reports a fatal condition.  Processing of the current unit stops
	// after the first error.
	Error(msg string)

	// Warning reports a non-fatal condition.  Processing continues.
	Warning(msg string)
}

// reporter stores the global display state of the compiler.
type reporter struct {
	// The mutex used to synchronize reporting from multiple goroutines.
	m *sync.Mutex

	// The selected log level.  This must be one of the enumerated log levels.
	logLevel int

	// The number of errors displayed so far.
	errorCount int

	// warnings is the list of warnings deferred until the end of compilation.
	warnings []string

	// startTime is used to display the total compilation time.
	startTime time.Time
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays warnings and errors to the user.
	LogLevelVerbose        // Displays all compilation messages (default).
)

// rep is the global reporter instance.
var rep = &reporter{
	m:         &sync.Mutex{},
	logLevel:  LogLevelVerbose,
	startTime: time.Now(),
}

// InitReporter initializes the global reporter with the provided log level.
func InitReporter(logLevel int) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.logLevel = logLevel
	rep.startTime = time.Now()
}
