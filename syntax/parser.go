package syntax

import (
	"github.com/Log4JExploit/rtOS/common"
)

// Options configures a parse
type Options struct {
	// Memoize enables caching of (node, position) results
	Memoize bool

	// MaxDepth is the maximum number of nested contexts
	MaxDepth int
}

// DefaultOptions returns the options used by Parse
func DefaultOptions() Options {
	return Options{Memoize: true, MaxDepth: common.DefaultMaxDepth}
}

// Parse verifies a token stream against a grammar and returns the top level
// context.  The first problem found is returned as a *Diagnostic; there is no
// error recovery.
func Parse(tokens TokenStream, g *Grammar) (*MatchResult, error) {
	return NewMatcher(tokens, g, DefaultOptions()).Parse()
}

// Parse runs the matcher over its whole token stream
func (m *Matcher) Parse() (result *MatchResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			if diag, ok := r.(*Diagnostic); ok {
				result, err = nil, diag
			} else {
				panic(r)
			}
		}
	}()

	result = m.Context(0, 0)

	// only whitespace may follow the top level terminator
	end := result.TokenCount()
	end += m.skipSeparators(end)
	if tok := m.tokens.At(end); tok.Kind != EOF {
		return nil, &Diagnostic{Kind: DiagLeftover, Index: end, Message: "unexpected token after `done`"}
	}

	return result, nil
}

// ParseSource tokenizes and parses source text.  The token stream is returned
// even on failure so that diagnostics can be located.
func ParseSource(src string, g *Grammar, opts Options) (TokenStream, *MatchResult, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return tokens, nil, err
	}

	result, err := NewMatcher(tokens, g, opts).Parse()
	return tokens, result, err
}
