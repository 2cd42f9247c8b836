package report

import (
	"strings"
	"sync"
)

// Reporter is responsible for reporting errors, warnings, and other kinds of
// messages to the user during program execution.  The reporter respects the set
// log level and is synchronized: its functions can be safely called from
// multiple goroutines.
type Reporter struct {
	// The mutex used to synchonize different report calls.
	m *sync.Mutex

	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels below.
	logLevel int

	// The number of errors reported so far.
	errorCount int

	// The warnings reported so far.  They are displayed when compilation
	// finishes so they do not get lost between errors.
	warnings []warning
}

// warning is a buffered compilation warning.
type warning struct {
	unitPath string
	message  string
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays only warnings and errors to the user.
	LogLevelVerbose        // Displays all compilation messages to the user (default).
)

// rep is the global reporter instance.
var rep *Reporter

// InitReporter initializes the global reporter to the given log level.  If the
// reporter has already been initialized, this function does nothing.
func InitReporter(logLevel int) {
	if rep == nil {
		rep = &Reporter{
			m:        &sync.Mutex{},
			logLevel: logLevel,
		}
	}
}

// ParseLogLevel converts the name of a log level as given on the command line
// or in a unit profile into a log level.  Unknown names select the verbose
// level.
func ParseLogLevel(name string) int {
	switch strings.ToLower(name) {
	case "silent":
		return LogLevelSilent
	case "error":
		return LogLevelError
	case "warn", "warning":
		return LogLevelWarn
	default:
		return LogLevelVerbose
	}
}

// LogLevel returns the log level of the global reporter.
func LogLevel() int {
	return rep.logLevel
}
