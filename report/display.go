package report

import (
	"fmt"
	"time"

	"matcha/common"

	"github.com/pterm/pterm"
)

// displayFatal displays a fatal error message.
func displayFatal(message string) {
	fmt.Printf("%s %s\n", pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint("fatal error:"), message)
}

// displayModuleMessage displays a module resolution error or warning.  The
// label is the string to prefix the message with: eg. if we want to display an
// error, the label is "error".
func displayModuleMessage(label, message string) {
	var styled string
	if label == "error" {
		styled = pterm.FgRed.Sprint(label)
	} else {
		styled = pterm.FgYellow.Sprint(label)
	}

	fmt.Printf("%s: %s\n", styled, message)
}

// displayCompileHeader displays the pre-compilation header.
func displayCompileHeader(moduleName string, libCount int) {
	fmt.Println(pterm.FgCyan.Sprintf("matchac v%s", common.MatchaVersion))
	fmt.Printf("compiling module  %s\n", pterm.Bold.Sprint(moduleName))
	fmt.Printf("libraries         %d\n\n", libCount)
}

// displayCompilationFinished displays the closing compilation message.
func displayCompilationFinished(ok bool, startTime time.Time) {
	status := pterm.FgGreen.Sprint("done")
	if !ok {
		status = pterm.FgRed.Sprint("failed")
	}

	fmt.Printf("\ncompilation %s (%.3fs)\n", status, time.Since(startTime).Seconds())
}
