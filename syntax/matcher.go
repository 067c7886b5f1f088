package syntax

import (
	"fmt"
)

// Matcher matches grammar nodes against a token stream by recursive descent
// with backtracking.  A matcher belongs to a single parse: the token stream
// and grammar are only read, but the memo table is owned by the matcher.
type Matcher struct {
	tokens  TokenStream
	grammar *Grammar
	opts    Options

	// memo stores the results of (node, position) pairs.  An entry with a nil
	// result is a match in progress and is used to cut left recursion.
	memo map[memoKey]*memoEntry

	// contexts stores the results of nested contexts by position and depth
	contexts map[contextKey]*MatchResult

	// depth is the nesting depth of the context currently being verified
	depth int
}

type memoKey struct {
	node *Node
	pos  int
}

type memoEntry struct {
	result *MatchResult
}

type contextKey struct {
	pos, depth int
}

// NewMatcher creates a new matcher for a token stream.  The stream is given an
// EOF token if it does not already end with one.
func NewMatcher(tokens TokenStream, g *Grammar, opts Options) *Matcher {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != EOF {
		tokens = append(tokens[:len(tokens):len(tokens)], &Token{Kind: EOF, Index: len(tokens)})
	}

	if opts.MaxDepth < 1 {
		opts.MaxDepth = DefaultOptions().MaxDepth
	}

	return &Matcher{
		tokens:   tokens,
		grammar:  g,
		opts:     opts,
		memo:     make(map[memoKey]*memoEntry),
		contexts: make(map[contextKey]*MatchResult),
	}
}

// Match matches a node at the given position
func (m *Matcher) Match(node *Node, pos int) *MatchResult {
	key := memoKey{node: node, pos: pos}
	if entry, ok := m.memo[key]; ok {
		if entry.result == nil {
			// re-entering a node at the same position can never make progress
			return &MatchResult{Node: node, Message: fmt.Sprintf("left recursion in `%s`", node.Name)}
		}

		return entry.result
	}

	entry := &memoEntry{}
	m.memo[key] = entry

	var result *MatchResult
	switch node.Mode {
	case ModeOnce:
		result = m.matchOnce(node, pos)
	case ModeOnceOrNone:
		result = m.matchOnce(node, pos)
		if !result.Satisfied {
			result = &MatchResult{Node: node, Satisfied: true}
		}
	case ModeOnceOrMore:
		result = m.matchRepeat(node, pos, 1)
	case ModeZeroOrMore:
		result = m.matchRepeat(node, pos, 0)
	case ModeBranch:
		result = m.matchBranch(node, pos)
	default:
		panic(fmt.Sprintf("syntax: unknown mode %d of node `%s`", node.Mode, node.Name))
	}

	if m.opts.Memoize {
		entry.result = result
	} else {
		delete(m.memo, key)
	}

	return result
}

// elementMatch is the outcome of matching a single element of a node
type elementMatch struct {
	// item is the matched leaf or (possibly partial) sub-result.  It is nil if
	// a terminal failed to match.
	item ASTNode

	// skipped is the number of separators passed over before a terminal
	skipped int

	ok      bool
	message string
	hitEOF  bool
}

// progress is the number of tokens the element consumed
func (em *elementMatch) progress() int {
	n := em.skipped
	if em.item != nil {
		n += em.item.TokenCount()
	}

	return n
}

// matchElement matches a single element at the given position
func (m *Matcher) matchElement(elem GrammaticalElement, pos int) *elementMatch {
	switch v := elem.(type) {
	case *Node:
		var sub *MatchResult
		if v.Kind() == GKindContext {
			sub = m.Context(pos, m.depth+1)
		} else {
			sub = m.Match(v, pos)
		}

		return &elementMatch{item: sub, ok: sub.Satisfied, message: sub.Message, hitEOF: sub.HitEOF}
	case Terminal:
		skipped := m.skipSeparators(pos)
		tok := m.tokens.At(pos + skipped)

		if tok.Kind == TokenKind(v) {
			return &elementMatch{item: (*ASTLeaf)(tok), skipped: skipped, ok: true}
		}

		return &elementMatch{
			skipped: skipped,
			message: "expected token type: " + TokenKind(v).String(),
			hitEOF:  tok.Kind == EOF,
		}
	case Keyword:
		skipped := m.skipSeparators(pos)
		tok := m.tokens.At(pos + skipped)

		if tok.Kind == KEYWORD && tok.Text == string(v) {
			return &elementMatch{item: (*ASTLeaf)(tok), skipped: skipped, ok: true}
		}

		return &elementMatch{
			skipped: skipped,
			message: fmt.Sprintf("expected keyword: `%s`", string(v)),
			hitEOF:  tok.Kind == EOF,
		}
	}

	panic(fmt.Sprintf("syntax: unknown grammatical element %T", elem))
}

// matchOnce matches every element of the node in sequence.  The first element
// to fail ends the match; the partial result keeps everything matched before it
// along with the failing element's own partial match.
func (m *Matcher) matchOnce(node *Node, pos int) *MatchResult {
	result := &MatchResult{Node: node, Satisfied: true}
	offset := pos

	for _, elem := range node.Elements {
		em := m.matchElement(elem, offset)

		result.Skipped += em.skipped
		if em.item != nil {
			result.Content = append(result.Content, em.item)
		}

		offset += em.progress()

		if !em.ok {
			result.Satisfied = false
			result.Message = em.message
			result.HitEOF = em.hitEOF
			return result
		}
	}

	return result
}

// matchRepeat matches the elements of the node repeatedly until a repetition
// fails.  The failed repetition is discarded unless fewer than min
// repetitions succeeded, in which case it becomes the partial result.
func (m *Matcher) matchRepeat(node *Node, pos, min int) *MatchResult {
	result := &MatchResult{Node: node, Satisfied: true}
	offset := pos

	for count := 0; ; count++ {
		rep := m.matchOnce(node, offset)

		if !rep.Satisfied {
			if count < min {
				return rep
			}

			return result
		}

		result.Skipped += rep.Skipped
		result.Content = append(result.Content, rep.Content...)

		// a repetition that consumes nothing would repeat forever
		n := rep.TokenCount()
		if n == 0 {
			return result
		}

		offset += n
	}
}

// matchBranch returns the first element of the node that matches.  If none
// match, it returns the partial match that made the most progress; earlier
// elements win ties.
func (m *Matcher) matchBranch(node *Node, pos int) *MatchResult {
	var best *elementMatch

	for _, elem := range node.Elements {
		em := m.matchElement(elem, pos)

		if em.ok {
			return &MatchResult{
				Node:      node,
				Satisfied: true,
				Skipped:   em.skipped,
				Content:   []ASTNode{em.item},
			}
		}

		if best == nil || em.progress() > best.progress() {
			best = em
		}
	}

	result := &MatchResult{Node: node}
	if best != nil {
		result.Skipped = best.skipped
		result.Message = best.message
		result.HitEOF = best.hitEOF

		if best.item != nil {
			result.Content = []ASTNode{best.item}
		}
	}

	return result
}

// skipSeparators returns the number of separator and newline tokens starting
// at the given position
func (m *Matcher) skipSeparators(pos int) int {
	n := 0
	for {
		switch m.tokens.At(pos + n).Kind {
		case SEPARATOR, NEWLINE:
			n++
		default:
			return n
		}
	}
}
