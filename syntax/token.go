package syntax

// Token represents a token read in by the scanner
type Token struct {
	Kind TokenKind

	// Text is the exact source text of the token (literals keep their quotes)
	Text string

	// Value is the decoded content of string and char literals; it is the same
	// as Text for every other kind of token
	Value string

	// Length is the length of Text in bytes
	Length int

	// Index is the position of the token in its stream
	Index int

	// Line is line number starting at 1
	Line int

	// Col is the column number starting at 1 (in bytes)
	Col int
}

// TokenKind is the kind of a token
type TokenKind int

// The various kinds of a tokens supported by the scanner
const (
	KEYWORD TokenKind = iota
	IDENTIFIER
	NUMBERLIT
	STRINGLIT
	CHARLIT
	BASETYPE

	// punctuation
	PLUS
	MINUS
	STAR
	SLASH
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	COLON
	DOT
	COMMA
	AMP
	PIPE
	ASSIGN
	NOT

	// whitespace
	SEPARATOR
	NEWLINE

	EOF
	OTHER
)

var tokenKindNames = [...]string{
	KEYWORD:    "Keyword",
	IDENTIFIER: "Identifier",
	NUMBERLIT:  "Number",
	STRINGLIT:  "String",
	CHARLIT:    "Char",
	BASETYPE:   "BaseType",
	PLUS:       "Plus",
	MINUS:      "Minus",
	STAR:       "Star",
	SLASH:      "Slash",
	LPAREN:     "LeftParen",
	RPAREN:     "RightParen",
	LBRACE:     "LeftBrace",
	RBRACE:     "RightBrace",
	LBRACKET:   "LeftBracket",
	RBRACKET:   "RightBracket",
	COLON:      "Colon",
	DOT:        "Dot",
	COMMA:      "Comma",
	AMP:        "Ampersand",
	PIPE:       "Pipe",
	ASSIGN:     "Equals",
	NOT:        "Exclamation",
	SEPARATOR:  "Separator",
	NEWLINE:    "Newline",
	EOF:        "EndOfFile",
	OTHER:      "Other",
}

// String returns the display name of the token kind
func (k TokenKind) String() string {
	if k >= 0 && int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}

	return "Unknown"
}

// keywords lists every reserved word.  The order is significant: the first
// entry equal to an identifier run determines its classification.
var keywords = []string{
	"create",
	"delete",
	"set",
	"inc",
	"dec",
	"by",
	"invoke",
	"if",
	"else",
	"while",
	"for",
	"from",
	"to",
	"up",
	"down",
	"step",
	"function",
	"return",
	"exit",
	"done",
	"above",
	"below",
	"not",
	"true",
	"false",
}

// baseTypes lists the names of the builtin types
var baseTypes = []string{
	"bool",
	"byte",
	"char",
	"short",
	"int",
	"long",
	"float",
	"double",
	"string",
	"void",
}

// symbolPatterns maps the single character tokens to their kinds
var symbolPatterns = map[rune]TokenKind{
	'+':  PLUS,
	'-':  MINUS,
	'*':  STAR,
	'/':  SLASH,
	'(':  LPAREN,
	')':  RPAREN,
	'{':  LBRACE,
	'}':  RBRACE,
	'[':  LBRACKET,
	']':  RBRACKET,
	':':  COLON,
	'.':  DOT,
	',':  COMMA,
	'&':  AMP,
	'|':  PIPE,
	'=':  ASSIGN,
	'!':  NOT,
	'\n': NEWLINE,
	' ':  SEPARATOR,
	'\t': SEPARATOR,
	'\r': SEPARATOR,
}

// TokenStream is an ordered sequence of tokens ending with a single EOF token
type TokenStream []*Token

// At returns the token at the given index.  Reading past the end of the stream
// yields its EOF token; an empty stream yields a detached EOF token.
func (ts TokenStream) At(i int) *Token {
	if len(ts) == 0 {
		return &Token{Kind: EOF}
	}

	if i < 0 {
		i = 0
	}

	if i >= len(ts) {
		return ts[len(ts)-1]
	}

	return ts[i]
}

// Text reconstructs the source text covered by the stream
func (ts TokenStream) Text() string {
	n := 0
	for _, tok := range ts {
		n += tok.Length
	}

	buff := make([]byte, 0, n)
	for _, tok := range ts {
		buff = append(buff, tok.Text...)
	}

	return string(buff)
}
