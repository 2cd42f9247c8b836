package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/jcelerier/faust/common"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// displayICE displays an internal compiler error message.
func displayICE(message string) {
	fmt.Print("\n")
	ErrorStyleBG.Print("Internal Compiler Error")
	ErrorColorFG.Println(" " + message)
	InfoColorFG.Println("This error was not supposed to happen: it is a bug in the compiler.")
	fmt.Println()
}

// displayFatal displays a fatal error message.
func displayFatal(message string) {
	fmt.Print("\n")
	ErrorStyleBG.Print("Fatal Error")
	ErrorColorFG.Println(" " + message)
	fmt.Println()
}

// displayCompileMessage displays a compilation error or warning.  The label is
// the string to prefix the message with: eg. if we want to display an error,
// the label is "error".
func displayCompileMessage(label, unitPath, message string) {
	if label == "error" {
		ErrorStyleBG.Print(" " + label + " ")
		ErrorColorFG.Print(" " + unitPath + ": ")
	} else {
		WarnStyleBG.Print(" " + label + " ")
		WarnColorFG.Print(" " + unitPath + ": ")
	}

	fmt.Println(message)
}

// displayStdError displays a standard Go error.
func displayStdError(unitPath string, err error) {
	displayCompileMessage("error", unitPath, err.Error())
}

// -----------------------------------------------------------------------------

// displayCompileHeader displays all the compiler information before starting
// compilation.
func displayCompileHeader(profile string, targets []string) {
	fmt.Print("sigc ")
	InfoColorFG.Print("v" + common.Version)
	fmt.Print(" -- profile: ")
	InfoColorFG.Print(profile)
	fmt.Print(" -- targets: ")
	InfoColorFG.Println(strings.Join(targets, ", "))
	fmt.Println()
}

// phaseSpinner stores the current phase spinner.
var phaseSpinner *pterm.SpinnerPrinter
var currentPhase string
var phaseStartTime time.Time

const maxPhaseLength = len("Generating")

// phaseText pads a phase name so that phase lines are aligned.
func phaseText(phase string) string {
	pad := maxPhaseLength - len(phase) + 2
	if pad < 1 {
		pad = 1
	}

	return phase + strings.Repeat(" ", pad)
}

// displayBeginPhase displays the beginning of a compilation phase.
func displayBeginPhase(phase string) {
	currentPhase = phase
	phaseSpinner = pterm.DefaultSpinner.WithStyle(pterm.NewStyle(InfoColorFG))

	phaseSpinner.SuccessPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: SuccessStyleBG,
			Text:  "Done",
		},
	}

	phaseSpinner.FailPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: ErrorStyleBG,
			Text:  "Fail",
		},
	}

	phaseSpinner.Start(phaseText(phase + "..."))
	phaseStartTime = time.Now()
}

// displayEndPhase displays the end of a compilation phase.
func displayEndPhase(success bool) {
	if phaseSpinner != nil {
		if success {
			phaseSpinner.Success(
				phaseText(currentPhase),
				fmt.Sprintf("(%.3fs)", time.Since(phaseStartTime).Seconds()),
			)
		} else {
			phaseSpinner.Fail(phaseText(currentPhase))
		}

		phaseSpinner = nil
	}
}

// displayCompilationFinished displays a compilation finished message.
func displayCompilationFinished(success bool, errorCount, warningCount int, outputDir string) {
	fmt.Print("\n")

	if success {
		SuccessColorFG.Print("All done! ")
	} else {
		ErrorColorFG.Print("Oh no! ")
	}

	fmt.Print("(")

	switch errorCount {
	case 0:
		SuccessColorFG.Print(0)
		fmt.Print(" errors, ")
	case 1:
		ErrorColorFG.Print(1)
		fmt.Print(" error, ")
	default:
		ErrorColorFG.Print(errorCount)
		fmt.Print(" errors, ")
	}

	switch warningCount {
	case 0:
		SuccessColorFG.Print(0)
		fmt.Println(" warnings)")
	case 1:
		WarnColorFG.Print(1)
		fmt.Println(" warning)")
	default:
		WarnColorFG.Print(warningCount)
		fmt.Println(" warnings)")
	}

	if success && outputDir != "" {
		fmt.Print("output written to ")
		InfoColorFG.Println(outputDir)
	}
}

// -----------------------------------------------------------------------------

// PrintErrorMessage prints an error message outside of compilation.
func PrintErrorMessage(tag string, err error) {
	ErrorStyleBG.Print(tag)
	ErrorColorFG.Println(" " + err.Error())
}

// PrintInfoMessage prints an informational message to the user.
func PrintInfoMessage(tag, msg string) {
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}
