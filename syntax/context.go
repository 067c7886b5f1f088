package syntax

import (
	"fmt"
)

// Context verifies a sequence of statements terminated by the grammar's
// terminator keyword starting at pos.  The top level context (depth 0) may
// also end at the end of the file.
//
// Contexts are commit points: any statement that cannot be matched raises a
// fatal diagnostic (as a panic recovered by Parse) rather than failing back to
// the enclosing node.
func (m *Matcher) Context(pos, depth int) *MatchResult {
	if depth > m.opts.MaxDepth {
		panic(&Diagnostic{
			Kind:    DiagDepth,
			Index:   pos + m.skipSeparators(pos),
			Message: fmt.Sprintf("maximum nesting depth of %d exceeded", m.opts.MaxDepth),
		})
	}

	key := contextKey{pos: pos, depth: depth}
	if result, ok := m.contexts[key]; ok {
		return result
	}

	prevDepth := m.depth
	m.depth = depth
	defer func() {
		m.depth = prevDepth
	}()

	result := &MatchResult{Satisfied: true}
	offset := pos

	for {
		skipped := m.skipSeparators(offset)
		result.Skipped += skipped
		offset += skipped

		tok := m.tokens.At(offset)
		if tok.Kind == EOF {
			if depth == 0 {
				break
			}

			panic(&Diagnostic{Kind: DiagEOF, Index: offset, Message: "unexpected end of file"})
		}

		if tok.Kind == KEYWORD && Keyword(tok.Text) == m.grammar.Terminator {
			result.Content = append(result.Content, (*ASTLeaf)(tok))
			break
		}

		stmt := m.matchStatement(offset)
		if !stmt.Satisfied || stmt.TokenCount() == 0 {
			panic(m.mismatch(offset, stmt))
		}

		result.Content = append(result.Content, stmt)
		offset += stmt.TokenCount()
	}

	if m.opts.Memoize {
		m.contexts[key] = result
	}

	return result
}

// matchStatement tries each statement form in order and returns the first that
// matches or else the partial match that made the most progress
func (m *Matcher) matchStatement(pos int) *MatchResult {
	var best *MatchResult

	for _, stmt := range m.grammar.Statements {
		result := m.Match(stmt, pos)
		if result.Satisfied {
			return result
		}

		if best == nil || result.TokenCount() > best.TokenCount() {
			best = result
		}
	}

	if best == nil {
		best = &MatchResult{}
	}

	return best
}

// mismatch builds the diagnostic for a statement that failed to match at pos
func (m *Matcher) mismatch(pos int, best *MatchResult) *Diagnostic {
	progress := best.TokenCount()
	index := pos + progress

	switch {
	case best.HitEOF:
		return &Diagnostic{Kind: DiagEOF, Index: index, Message: "unexpected end of file"}
	case progress == 0:
		return &Diagnostic{
			Kind:    DiagMismatch,
			Index:   pos,
			Message: fmt.Sprintf("unexpected token: `%s`", m.tokens.At(pos).Text),
		}
	case best.Message != "":
		return &Diagnostic{Kind: DiagMismatch, Index: index, Message: best.Message}
	default:
		return &Diagnostic{Kind: DiagMismatch, Index: index, Message: "invalid statement"}
	}
}
