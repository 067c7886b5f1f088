package syntax

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// IsLetter tests if a rune is an ASCII character
func IsLetter(r rune) bool {
	return r > '`' && r < '{' || r > '@' && r < '[' // avoid using <= and >= by checking characters on boundaries (same for IsDigit)
}

// IsLower tests if a rune is a lowercase ASCII character
func IsLower(r rune) bool {
	return r > '`' && r < '{'
}

// IsDigit tests if a rune is an ASCII digit
func IsDigit(r rune) bool {
	return r > '/' && r < ':'
}

// IsHexDigit tests if a rune is an ASCII hexadecimal digit
func IsHexDigit(r rune) bool {
	return IsDigit(r) || r > '`' && r < 'g' || r > '@' && r < 'G'
}

// Tokenize converts source text into a token stream.  If the text cannot be
// lexed, the returned error is a *Diagnostic pointing at the offending token
// and the returned stream ends with that (partial) token followed by EOF.
func Tokenize(src string) (TokenStream, error) {
	s := &Scanner{src: src, line: 1, col: 1}

	for {
		tok, err := s.ReadToken()
		if err != nil {
			return s.finish(false), err
		}

		if tok == nil {
			return s.finish(true), nil
		}
	}
}

// Scanner reads tokens from a string of source text
type Scanner struct {
	src string

	// pos is the byte offset of the next rune to read
	pos int

	// start is the byte offset at which the current token began
	start int

	// line and col are the position of the next rune to read
	line, col int

	// startLine and startCol are the position of the current token
	startLine, startCol int

	curr rune

	// lineHasContent is set once anything other than whitespace has been read
	// on the current line.  Comments may only start on lines without content.
	lineHasContent bool

	// value accumulates the decoded content of string and char literals
	value strings.Builder

	tokens TokenStream
}

// ReadToken reads a single token from the source, appending it to the
// scanner's stream.  A nil token with no error indicates the end of the source.
func (s *Scanner) ReadToken() (*Token, error) {
	for s.readNext() {
		switch {
		case s.curr == '#' && !s.lineHasContent:
			s.skipComment()
			continue
		case IsDigit(s.curr):
			s.readNumber()
		case s.curr == '"':
			if err := s.readStringLit(); err != nil {
				return nil, err
			}
		case s.curr == '\'':
			if err := s.readCharLit(); err != nil {
				return nil, err
			}
		case IsLetter(s.curr):
			s.readWord()
		default:
			kind, ok := symbolPatterns[s.curr]
			if !ok {
				kind = OTHER
			}

			s.makeToken(kind)
		}

		return s.tokens[len(s.tokens)-1], nil
	}

	return nil, nil
}

// finish trims trailing whitespace from the stream and appends the EOF token.
// The whitespace is left in place if lexing failed so the error token remains
// the last real token.
func (s *Scanner) finish(trim bool) TokenStream {
	if trim {
		for len(s.tokens) > 0 {
			last := s.tokens[len(s.tokens)-1].Kind
			if last != NEWLINE && last != SEPARATOR {
				break
			}

			s.tokens = s.tokens[:len(s.tokens)-1]
		}
	}

	s.start = s.pos
	s.startLine, s.startCol = s.line, s.col
	s.tokens = append(s.tokens, &Token{
		Kind:  EOF,
		Index: len(s.tokens),
		Line:  s.line,
		Col:   s.col,
	})

	return s.tokens
}

// readNext reads the next rune from the source and marks the start of a new
// token if none is in progress.  Returns false at the end of the source.
func (s *Scanner) readNext() bool {
	if s.pos >= len(s.src) {
		return false
	}

	if s.start == s.pos {
		s.startLine, s.startCol = s.line, s.col
	}

	r, size := utf8.DecodeRuneInString(s.src[s.pos:])
	s.pos += size
	s.curr = r

	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col += size
	}

	return true
}

// peek returns the next rune without consuming it
func (s *Scanner) peek() (rune, bool) {
	if s.pos >= len(s.src) {
		return 0, false
	}

	r, _ := utf8.DecodeRuneInString(s.src[s.pos:])
	return r, true
}

// makeToken builds a token from the text read since the last token and
// appends it to the stream
func (s *Scanner) makeToken(kind TokenKind) *Token {
	text := s.src[s.start:s.pos]
	tok := &Token{
		Kind:   kind,
		Text:   text,
		Value:  text,
		Length: len(text),
		Index:  len(s.tokens),
		Line:   s.startLine,
		Col:    s.startCol,
	}

	switch kind {
	case NEWLINE:
		s.lineHasContent = false
	case SEPARATOR:
	default:
		s.lineHasContent = true
	}

	s.start = s.pos
	s.tokens = append(s.tokens, tok)
	return tok
}

// fail appends whatever has been read of the current token as a partial token
// and returns a lexical diagnostic pointing at it
func (s *Scanner) fail(kind TokenKind, msg string) error {
	tok := s.makeToken(kind)
	tok.Value = s.value.String()
	return &Diagnostic{Kind: DiagLexical, Index: tok.Index, Message: msg}
}

// skipComment discards a line comment up to (but not including) the newline
func (s *Scanner) skipComment() {
	for r, ok := s.peek(); ok && r != '\n'; r, ok = s.peek() {
		s.readNext()
	}

	s.start = s.pos
}

// readNumber reads a number literal: digits with embedded exponent and sign
// markers and an optional trailing `d` or `f` suffix
func (s *Scanner) readNumber() {
	for r, ok := s.peek(); ok; r, ok = s.peek() {
		if IsDigit(r) || r == '.' || r == '-' || r == '+' || r == 'e' {
			s.readNext()
		} else if r == 'd' || r == 'f' {
			s.readNext()
			break
		} else {
			break
		}
	}

	s.makeToken(NUMBERLIT)
}

// readWord reads an identifier run and classifies it.  Only runs starting with
// a lowercase letter can be keywords or base types.
func (s *Scanner) readWord() {
	lower := IsLower(s.curr)

	for r, ok := s.peek(); ok && (IsLetter(r) || IsDigit(r) || r == '$'); r, ok = s.peek() {
		s.readNext()
	}

	if lower {
		word := s.src[s.start:s.pos]

		for _, kw := range keywords {
			if kw == word {
				s.makeToken(KEYWORD)
				return
			}
		}

		for _, bt := range baseTypes {
			if bt == word {
				s.makeToken(BASETYPE)
				return
			}
		}
	}

	s.makeToken(IDENTIFIER)
}

// readStringLit reads a string literal.  String literals may span lines.
func (s *Scanner) readStringLit() error {
	s.value.Reset()

	for s.readNext() {
		switch s.curr {
		case '\\':
			if err := s.readEscapeSequence(STRINGLIT); err != nil {
				return err
			}
		case '"':
			tok := s.makeToken(STRINGLIT)
			tok.Value = s.value.String()
			return nil
		default:
			s.value.WriteRune(s.curr)
		}
	}

	return s.fail(STRINGLIT, "unterminated string literal")
}

// readCharLit reads a char literal containing exactly one logical character
func (s *Scanner) readCharLit() error {
	s.value.Reset()

	if !s.readNext() {
		return s.fail(CHARLIT, "unterminated char literal")
	}

	switch s.curr {
	case '\'':
		return s.fail(CHARLIT, "empty char literal")
	case '\\':
		if err := s.readEscapeSequence(CHARLIT); err != nil {
			return err
		}
	default:
		s.value.WriteRune(s.curr)
	}

	if !s.readNext() {
		return s.fail(CHARLIT, "unterminated char literal")
	}

	if s.curr != '\'' {
		return s.fail(CHARLIT, "char literal must contain exactly one character")
	}

	tok := s.makeToken(CHARLIT)
	tok.Value = s.value.String()
	return nil
}

// readEscapeSequence reads an escape sequence after the leading backslash and
// writes its decoded value to the literal being built
func (s *Scanner) readEscapeSequence(kind TokenKind) error {
	if !s.readNext() {
		return s.fail(kind, "unterminated escape sequence")
	}

	switch s.curr {
	case 'n':
		s.value.WriteByte('\n')
	case 'r':
		s.value.WriteByte('\r')
	case 't':
		s.value.WriteByte('\t')
	case 'v':
		s.value.WriteByte('\v')
	case 'b':
		s.value.WriteByte('\b')
	case 'f':
		s.value.WriteByte('\f')
	case '\\':
		s.value.WriteByte('\\')
	case '"':
		s.value.WriteByte('"')
	case '\'':
		s.value.WriteByte('\'')
	case '?':
		s.value.WriteByte('?')
	case '0':
		s.value.WriteByte(0)
	case 'u':
		var hex strings.Builder
		for i := 0; i < 4; i++ {
			if !s.readNext() {
				return s.fail(kind, "end of file reached during unicode escape sequence")
			}

			if !IsHexDigit(s.curr) {
				return s.fail(kind, fmt.Sprintf("non-hex character in unicode escape sequence: `%c`", s.curr))
			}

			hex.WriteRune(s.curr)
		}

		// four hex digits always fit
		code, _ := strconv.ParseUint(hex.String(), 16, 32)
		s.value.WriteRune(rune(code))
	default:
		return s.fail(kind, fmt.Sprintf("unknown escaped character: `\\%c`", s.curr))
	}

	return nil
}
