package logging

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Log4JExploit/rtOS/common"
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

// paint colors text if the logger is styling its output
func (l *Logger) paint(c pterm.Color, text string) string {
	if l.color {
		return c.Sprint(text)
	}

	return text
}

// paintStyle applies a background style if the logger is styling its output
func (l *Logger) paintStyle(s *pterm.Style, text string) string {
	if l.color {
		return s.Sprint(text)
	}

	return text
}

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
// This section contains all the display functions for the different kinds of
// messages that can be logged.

func (ce *ConfigError) display(l *Logger) {
	if ce.IsError {
		fmt.Fprintln(l.out, l.paintStyle(ErrorStyleBG, ce.Kind+" Error")+" "+l.paint(ErrorColorFG, ce.Message))
	} else {
		fmt.Fprintln(l.out, l.paintStyle(WarnStyleBG, ce.Kind+" Warning")+" "+l.paint(WarnColorFG, ce.Message))
	}
}

var compileMsgStrings = map[int]string{
	LMKToken:  "Token",
	LMKSyntax: "Syntax",
	LMKEOF:    "Syntax",
	LMKDepth:  "Nesting",
	LMKFile:   "File",
}

func (cm *CompileMessage) display(l *Logger) {
	fmt.Fprint(l.out, "\n")
	cm.displayBanner(l)
	fmt.Fprintln(l.out, cm.Message)

	if cm.Position != nil {
		lines := formatCodeSelection(cm.Position)
		for i, line := range lines {
			// only the caret line is colored
			if i == len(lines)-1 {
				bar := strings.Index(line, "|") + 1
				fmt.Fprintln(l.out, line[:bar]+l.paint(ErrorColorFG, line[bar:]))
			} else {
				fmt.Fprintln(l.out, line)
			}
		}
	}
}

// bannerWidth is the maximum width of a message banner
const bannerWidth = 50

// displayBanner displays the banner on top of all compilation messages
func (cm *CompileMessage) displayBanner(l *Logger) {
	kindStr := compileMsgStrings[cm.Kind]
	if cm.IsError {
		kindStr += " Error"
	} else {
		kindStr += " Warning"
	}

	fileName := ""
	if cm.Context != nil {
		fileName = filepath.Base(cm.Context.FilePath)
	}

	width := bannerWidth
	if l.color {
		if tw := pterm.GetTerminalWidth() / 2; tw < width {
			width = tw
		}
	}

	dashCount := width - len(kindStr) - len(fileName) - 5
	if dashCount < 2 {
		dashCount = 2
	}

	if cm.IsError {
		kindStr = l.paintStyle(ErrorStyleBG, kindStr)
	} else {
		kindStr = l.paintStyle(WarnStyleBG, kindStr)
	}

	fmt.Fprintln(l.out, "-- "+kindStr+" "+strings.Repeat("-", dashCount)+" "+l.paint(InfoColorFG, fileName))
}

// formatCodeSelection renders a position as a line header, the numbered source
// line and a caret line beneath the offending text.  The output carries no
// styling.
func formatCodeSelection(pos *TextPosition) []string {
	lineNumber := strconv.Itoa(pos.StartLn)
	gutter := strings.Repeat(" ", len(lineNumber))

	caretCount := 1
	if pos.EndLn == pos.StartLn && pos.EndCol > pos.StartCol {
		caretCount = pos.EndCol - pos.StartCol
	}

	startCol := pos.StartCol
	if startCol < 0 {
		startCol = 0
	}

	return []string{
		fmt.Sprintf("line %d:", pos.StartLn),
		lineNumber + " | " + pos.Snippet,
		gutter + " | " + strings.Repeat(" ", startCol) + strings.Repeat("^", caretCount),
	}
}

const fatalErrorPostlude = `
This is likely a bug in the front end.
Please open an issue on Github: github.com/Log4JExploit/rtOS`

func (l *Logger) displayFatalError(msg string) {
	fmt.Fprint(l.out, "\n\n")
	fmt.Fprintln(l.out, l.paintStyle(ErrorStyleBG, "Fatal Error")+" "+l.paint(ErrorColorFG, msg))
	fmt.Fprintln(l.out, l.paint(InfoColorFG, fatalErrorPostlude))
}

// -----------------------------------------------------------------------------

// displayCompileHeader displays the front end information before processing
func (l *Logger) displayCompileHeader(target string) {
	fmt.Fprintln(l.out, "rtos "+l.paint(InfoColorFG, "v"+common.RtosVersion)+" -- target: "+l.paint(InfoColorFG, target))
}

// currentPhase is the phase being run, empty if none
var currentPhase string
var phaseStartTime time.Time

const maxPhaseLength = len("Verifying")

// beginPhase displays the beginning of a processing phase
func (l *Logger) beginPhase(phase string) {
	currentPhase = phase
	phaseStartTime = time.Now()
	fmt.Fprintln(l.out, l.paint(InfoColorFG, phase+"..."))
}

// endPhase displays the end of the current processing phase.  It does nothing
// if there is no phase running.
func (l *Logger) endPhase(success bool) {
	if currentPhase == "" {
		return
	}

	if l.LogLevel == LogLevelVerbose {
		padding := strings.Repeat(" ", maxPhaseLength-len(currentPhase)+2)
		if success {
			fmt.Fprintf(l.out, "%s %s%s(%.3fs)\n",
				l.paintStyle(SuccessStyleBG, "Done"),
				currentPhase,
				padding,
				time.Since(phaseStartTime).Seconds(),
			)
		} else {
			fmt.Fprintf(l.out, "%s %s\n", l.paintStyle(ErrorStyleBG, "Fail"), currentPhase)
		}
	}

	currentPhase = ""
}

// displayFinished displays a finished message
func (l *Logger) displayFinished(success bool, errorCount, warningCount int) {
	fmt.Fprint(l.out, "\n")

	if success {
		fmt.Fprint(l.out, l.paint(SuccessColorFG, "All done! "))
	} else {
		fmt.Fprint(l.out, l.paint(ErrorColorFG, "Oh no! "))
	}

	fmt.Fprint(l.out, "(")

	switch errorCount {
	case 0:
		fmt.Fprint(l.out, l.paint(SuccessColorFG, "0"), " errors, ")
	case 1:
		fmt.Fprint(l.out, l.paint(ErrorColorFG, "1"), " error, ")
	default:
		fmt.Fprint(l.out, l.paint(ErrorColorFG, strconv.Itoa(errorCount)), " errors, ")
	}

	switch warningCount {
	case 0:
		fmt.Fprintln(l.out, l.paint(SuccessColorFG, "0"), "warnings)")
	case 1:
		fmt.Fprintln(l.out, l.paint(WarnColorFG, "1"), "warning)")
	default:
		fmt.Fprintln(l.out, l.paint(WarnColorFG, strconv.Itoa(warningCount)), "warnings)")
	}
}
