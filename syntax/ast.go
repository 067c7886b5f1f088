package syntax

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ASTNode is an element of a match result: either a leaf token or a nested
// match result
type ASTNode interface {
	// TokenCount is the number of tokens the node covers, including any
	// skipped separators
	TokenCount() int

	astNode()
}

// ASTLeaf is simply a token in the AST (at the end of branch)
type ASTLeaf Token

// TokenCount of a leaf is always one
func (*ASTLeaf) TokenCount() int {
	return 1
}

func (*ASTLeaf) astNode() {}

// Token returns the token the leaf holds
func (a *ASTLeaf) Token() *Token {
	return (*Token)(a)
}

// MatchResult is the outcome of matching a node at a position.  A result that
// is not satisfied is a partial match: its content and message describe how
// far the attempt got before failing.
type MatchResult struct {
	// Node is the node that produced the result; nil for the results of
	// nested contexts
	Node *Node

	Satisfied bool

	// Skipped is the number of separators and newlines passed over directly by
	// this result (not by its children)
	Skipped int

	Content []ASTNode

	// Message describes what was expected where a partial match failed
	Message string

	// HitEOF is set if the match failed because the end of the file was
	// reached where a token was required
	HitEOF bool
}

// TokenCount returns the number of tokens consumed by the result
func (m *MatchResult) TokenCount() int {
	n := m.Skipped
	for _, item := range m.Content {
		n += item.TokenCount()
	}

	return n
}

func (*MatchResult) astNode() {}

// Name returns the name of the producing node or `context` for nested contexts
func (m *MatchResult) Name() string {
	if m.Node == nil {
		return "context"
	}

	return m.Node.Name
}

// BranchAt gets and casts the specified element to a match result
func (m *MatchResult) BranchAt(ndx int) *MatchResult {
	return m.Content[ndx].(*MatchResult)
}

// LeafAt gets and casts the specified element to an AST leaf
func (m *MatchResult) LeafAt(ndx int) *ASTLeaf {
	return m.Content[ndx].(*ASTLeaf)
}

// Len returns the length of the result's content
func (m *MatchResult) Len() int {
	return len(m.Content)
}

// Last returns the last element of the result
func (m *MatchResult) Last() ASTNode {
	return m.Content[len(m.Content)-1]
}

// Leaves returns every token in the result in source order
func (m *MatchResult) Leaves() []*Token {
	var leaves []*Token

	var walk func(r *MatchResult)
	walk = func(r *MatchResult) {
		for _, item := range r.Content {
			switch v := item.(type) {
			case *ASTLeaf:
				leaves = append(leaves, v.Token())
			case *MatchResult:
				walk(v)
			}
		}
	}

	walk(m)
	return leaves
}

// Dump writes an indented rendering of the result tree.  Anonymous nodes are
// flattened into their parents.
func (m *MatchResult) Dump(w io.Writer) {
	m.dump(w, 0)
}

func (m *MatchResult) dump(w io.Writer, depth int) {
	fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), m.Name())
	m.dumpContent(w, depth)
}

func (m *MatchResult) dumpContent(w io.Writer, depth int) {
	indent := strings.Repeat("  ", depth)

	for _, item := range m.Content {
		switch v := item.(type) {
		case *ASTLeaf:
			fmt.Fprintf(w, "%s  %s %s\n", indent, v.Kind, strconv.Quote(v.Text))
		case *MatchResult:
			if v.Node != nil && v.Node.Name == "" {
				v.dumpContent(w, depth)
			} else {
				v.dump(w, depth+1)
			}
		}
	}
}
