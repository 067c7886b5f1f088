package syntax

import (
	"errors"
	"strings"

	"github.com/Log4JExploit/rtOS/logging"
	"github.com/mattn/go-runewidth"
)

// DiagKind classifies a diagnostic
type DiagKind int

// Enumeration of diagnostic kinds
const (
	DiagLexical  DiagKind = iota // malformed literal or escape sequence
	DiagMismatch                 // no statement alternative matched
	DiagEOF                      // a context was never closed
	DiagLeftover                 // text remained after the top level `done`
	DiagDepth                    // contexts nested too deeply
)

// Diagnostic is a fatal error in the source text.  Index is the position of
// the offending token in the token stream.
type Diagnostic struct {
	Kind    DiagKind
	Index   int
	Message string
}

func (d *Diagnostic) Error() string {
	return d.Message
}

// logKind maps the diagnostic to the kind of message the logger displays
func (d *Diagnostic) logKind() int {
	switch d.Kind {
	case DiagLexical:
		return logging.LMKToken
	case DiagEOF:
		return logging.LMKEOF
	case DiagDepth:
		return logging.LMKDepth
	default:
		return logging.LMKSyntax
	}
}

// tabWidth is the number of columns a tab is rendered as
const tabWidth = 4

// Locate computes the display position of the token at index.  The line is
// re-rendered from its start up to and including the offending token so the
// caret can be aligned by display width.
func Locate(tokens TokenStream, index int) *logging.TextPosition {
	if len(tokens) == 0 {
		return &logging.TextPosition{StartLn: 1, EndLn: 1, EndCol: 1}
	}

	if index >= len(tokens) {
		index = len(tokens) - 1
	}

	if index < 0 {
		index = 0
	}

	line := 1
	var sb strings.Builder
	for _, tok := range tokens[:index] {
		if tok.Kind == NEWLINE {
			line++
			sb.Reset()
			continue
		}

		text := tok.Text

		// literals may span lines: only the text after their last line break
		// belongs to the current line
		if tok.Kind == STRINGLIT || tok.Kind == CHARLIT {
			if n := strings.Count(text, "\n"); n > 0 {
				line += n
				text = text[strings.LastIndexByte(text, '\n')+1:]
				sb.Reset()
			}
		}

		sb.WriteString(expandTabs(text))
	}

	col := runewidth.StringWidth(sb.String())

	// a NEWLINE or EOF has no visible text, point just past the line instead
	tokText := renderToken(tokens[index])
	if tokens[index].Kind == NEWLINE {
		tokText = ""
	}

	sb.WriteString(tokText)
	width := runewidth.StringWidth(tokText)
	if width == 0 {
		width = 1
	}

	return &logging.TextPosition{
		StartLn:  line,
		StartCol: col,
		EndLn:    line,
		EndCol:   col + width,
		Snippet:  sb.String(),
	}
}

// renderToken returns the display text of a token.  Literals keep their
// delimiters and tabs are expanded.  A multi-line literal is cut at its first
// line break.
func renderToken(tok *Token) string {
	text := tok.Text
	if tok.Kind == STRINGLIT || tok.Kind == CHARLIT {
		if n := strings.IndexByte(text, '\n'); n >= 0 {
			text = text[:n]
		}
	}

	return expandTabs(text)
}

func expandTabs(text string) string {
	return strings.ReplaceAll(text, "\t", strings.Repeat(" ", tabWidth))
}

// Report logs an error returned by Tokenize or Parse as a compile error.  Errors
// that are not diagnostics are logged as fatal.
func Report(lctx *logging.LogContext, tokens TokenStream, err error) {
	var diag *Diagnostic
	if !errors.As(err, &diag) {
		logging.LogFatal(err.Error())
		return
	}

	logging.LogCompileError(lctx, diag.Message, diag.logKind(), Locate(tokens, diag.Index))
}
