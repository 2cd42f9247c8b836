package report

import (
	"fmt"
	"os"
	"runtime"

	"github.com/jcelerier/faust/binop"
)

// exit terminates the process.  Tests replace it.
var exit = os.Exit

// ReportICE reports an internal compiler error.  These are errors that
// specifically result from a bug or unexpected condition occurring within the
// compiler: they are not intended to ever happen.  These errors are always
// displayed regardless of log level.
func ReportICE(message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	displayEndPhase(false)
	displayICE(fmt.Sprintf(message, args...))

	exit(-1)
}

// ReportFatal reports a fatal error.  These are errors that should cause all
// compilation to stop immediately.  However, they are expected errors that
// generally result from invalid invocation: bad arguments, unwritable output
// directory, etc.
func ReportFatal(message string, args ...interface{}) {
	if rep.logLevel > LogLevelSilent {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayEndPhase(false)
		displayFatal(fmt.Sprintf(message, args...))
	}

	exit(1)
}

// ReportCompileError reports a compilation error: ie. an erroneous unit.  The
// unitPath is the path to the unit file as given by the user.
func ReportCompileError(unitPath string, message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++

	if rep.logLevel > LogLevelSilent {
		displayEndPhase(false)
		displayCompileMessage("error", unitPath, fmt.Sprintf(message, args...))
	}
}

// ReportCompileWarning reports a compilation warning.  The arguments are of the
// same form as those to ReportCompileError.  Warnings are displayed when
// compilation finishes.
func ReportCompileWarning(unitPath string, message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.warnings = append(rep.warnings, warning{unitPath: unitPath, message: fmt.Sprintf(message, args...)})
}

// ReportStdError reports a non-fatal, standard Go error.
func ReportStdError(unitPath string, err error) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++

	if rep.logLevel > LogLevelSilent {
		displayEndPhase(false)
		displayStdError(unitPath, err)
	}
}

// -----------------------------------------------------------------------------
// Below are all the "aesthetic" reporting functions that will only run if the
// log level is verbose.

// ReportCompileHeader reports the pre-compilation header: the compiler version,
// the selected profile and its targets.
func ReportCompileHeader(profile string, targets []string) {
	if rep.logLevel == LogLevelVerbose {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayCompileHeader(profile, targets)
	}
}

// BeginPhase displays the start of a compilation phase.  Only one phase can be
// displayed at a time.
func BeginPhase(phase string) {
	if rep.logLevel == LogLevelVerbose {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayBeginPhase(phase)
	}
}

// EndPhase displays the end of the current compilation phase.  The phase
// failed if any error was reported.
func EndPhase() {
	if rep.logLevel == LogLevelVerbose {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayEndPhase(rep.errorCount == 0)
	}
}

// ReportCompilationFinished reports the concluding message for compilation:
// the buffered warnings followed by a summary.
func ReportCompilationFinished(outputDir string) {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel >= LogLevelWarn {
		for _, w := range rep.warnings {
			displayCompileMessage("warning", w.unitPath, w.message)
		}
	}

	if rep.logLevel == LogLevelVerbose {
		displayCompilationFinished(rep.errorCount == 0, rep.errorCount, len(rep.warnings), outputDir)
	}
}

// -----------------------------------------------------------------------------

// AnyErrors returns whether or not any errors were detected.
func AnyErrors() bool {
	rep.m.Lock()
	defer rep.m.Unlock()

	return rep.errorCount > 0
}

// ErrorCount returns the number of errors reported so far.
func ErrorCount() int {
	rep.m.Lock()
	defer rep.m.Unlock()

	return rep.errorCount
}

// ShouldProceed indicates whether or not compilation can move on to its next
// phase.
func ShouldProceed() bool {
	return !AnyErrors()
}

// -----------------------------------------------------------------------------

// CatchErrors catches any errors thrown by a `panic` while compiling a unit. An
// out-of-range operator kind or a runtime fault is a bug and reported as an
// internal compiler error.  Any other error is reported as a standard error of
// the unit, and anything else as an internal compiler error.
// NB: This function must ALWAYS be deferred.
func CatchErrors(unitPath string) {
	if x := recover(); x != nil {
		if kerr, ok := x.(*binop.KindError); ok {
			ReportICE("%s: %s", unitPath, kerr)
		} else if rerr, ok := x.(runtime.Error); ok {
			ReportICE("%s: %s", unitPath, rerr)
		} else if serr, ok := x.(error); ok {
			ReportStdError(unitPath, serr)
		} else {
			ReportICE("%s: %v", unitPath, x)
		}
	}
}
