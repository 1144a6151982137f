package logging

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"symres/common"
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

// PrintErrorMessage prints a standard Go error to the console
func PrintErrorMessage(tag string, err error) {
	ErrorStyleBG.Print(tag)
	ErrorColorFG.Println(" " + err.Error())
}

// PrintWarningMessage prints a warning message to the console
func PrintWarningMessage(tag, msg string) {
	WarnStyleBG.Print(tag)
	WarnColorFG.Println(" " + msg)
}

// PrintInfoMessage prints an informational message to the user
func PrintInfoMessage(tag, msg string) {
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}

// -----------------------------------------------------------------------------
// This section contains the display functions for the different kinds of
// messages that can be logged.

func (ce *ConfigError) display() {
	PrintErrorMessage(ce.Kind+" Error", errors.New(ce.Message))
}

func (bw *BuildWarning) display() {
	PrintWarningMessage(bw.Kind+" Warning", bw.Message)
}

// -----------------------------------------------------------------------------

// DisplayHeader displays the symres version banner before a run
func DisplayHeader(modulePath string) {
	if logger.LogLevel < LogLevelVerbose {
		return
	}

	fmt.Print("symres ")
	InfoColorFG.Print("v" + common.SymresVersion)
	fmt.Print(" -- module: ")
	InfoColorFG.Println(modulePath)
}

// DisplayTable renders a table whose first row is the header.  Tables are
// only shown at the verbose log level.
func DisplayTable(rows [][]string) {
	if logger.LogLevel < LogLevelVerbose || len(rows) < 2 {
		return
	}

	logger.m.Lock()
	defer logger.m.Unlock()

	if err := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData(rows)).Render(); err != nil {
		PrintErrorMessage("Display Error", err)
	}
}

// DisplayResult prints the answer of a single query.  A `found` result is
// shown in the success colour and anything else in the warning colour.
func DisplayResult(query, answer string, found bool) {
	if logger.LogLevel == LogLevelSilent {
		return
	}

	logger.m.Lock()
	defer logger.m.Unlock()

	fmt.Print(query + strings.Repeat(" ", 2) + "=> ")
	if found {
		SuccessColorFG.Println(answer)
	} else {
		WarnColorFG.Println(answer)
	}
}

// DisplayFinished displays a closing message summarizing a run
func DisplayFinished(success bool, warningCount int) {
	if logger.LogLevel == LogLevelSilent {
		return
	}

	fmt.Print("\n")

	if success {
		SuccessColorFG.Print("All done! ")
	} else {
		ErrorColorFG.Print("Oh no! ")
	}

	fmt.Print("(")

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
}
