package report

import (
	"fmt"
	"os"
)

// ShouldProceed indicates whether or not there have been any non-fatal errors
// that should cause compilation to stop at the current phase.
func ShouldProceed() bool {
	rep.m.Lock()
	defer rep.m.Unlock()

	return rep.errorCount == 0
}

// AnyErrors returns whether or not any errors were detected.
func AnyErrors() bool {
	return !ShouldProceed()
}

// -----------------------------------------------------------------------------

// ReportModuleError reports an error resolving the module graph.
func ReportModuleError(msg string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++

	if rep.logLevel > LogLevelSilent {
		displayModuleMessage("error", fmt.Sprintf(msg, args...))
	}
}

// ReportModuleWarning reports a warning produced while resolving the module
// graph.  Warnings are deferred and displayed at the end of compilation.
func ReportModuleWarning(msg string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.warnings = append(rep.warnings, fmt.Sprintf(msg, args...))
}

// ReportFatal reports a fatal error and exits the program.  These are expected
// errors that generally result from invalid configuration of some form:
// missing build profile, unreadable root path, etc.
func ReportFatal(msg string, args ...interface{}) {
	rep.m.Lock()

	if rep.logLevel > LogLevelSilent {
		displayFatal(fmt.Sprintf(msg, args...))
	}

	rep.m.Unlock()
	os.Exit(1)
}

// -----------------------------------------------------------------------------

// ReportCompileHeader reports the pre-compilation header: information about the
// compiler's current configuration.  Only displayed at the verbose log level.
func ReportCompileHeader(moduleName string, libCount int) {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel == LogLevelVerbose {
		displayCompileHeader(moduleName, libCount)
	}
}

// ReportCompilationFinished reports the concluding message for compilation and
// flushes all deferred warnings.
func ReportCompilationFinished() {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel >= LogLevelWarn {
		for _, warning := range rep.warnings {
			displayModuleMessage("warning", warning)
		}
	}

	if rep.logLevel == LogLevelVerbose {
		displayCompilationFinished(rep.errorCount == 0, rep.startTime)
	}
}

// -----------------------------------------------------------------------------

// ConsoleReporter is a Reporter which forwards diagnostics to the global
// console reporter.  This is the lenient reporter: errors are displayed and
// counted but the process keeps running so the caller can decide what to do.
type ConsoleReporter struct{}

func (ConsoleReporter) Error(msg string) {
	ReportModuleError("%s", msg)
}

func (ConsoleReporter) Warning(msg string) {
	ReportModuleWarning("%s", msg)
}
