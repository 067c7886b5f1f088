package syntax

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLeftCycleDirect(t *testing.T) {
	t.Parallel()

	expr := NewNode("expr", ModeBranch)
	expr.Add(NewNode("", ModeOnce, expr, Terminal(PLUS), Terminal(IDENTIFIER)), Terminal(IDENTIFIER))

	g := &Grammar{
		Statements: []*Node{NewNode("eval", ModeOnce, Keyword("set"), expr)},
		Terminator: Keyword("done"),
	}
	g.Seal()

	require.Equal(t, "expr -> expr", cycleString(g.leftCycle()))
	require.EqualError(t, g.Verify(), "grammar is left recursive: expr -> expr")
}

func TestLeftCycleThroughNullablePrefix(t *testing.T) {
	t.Parallel()

	sum := NewNode("sum", ModeOnce)
	term := NewNode("term", ModeOnce,
		NewNode("", ModeOnceOrNone, Terminal(MINUS)),
		NewNode("", ModeZeroOrMore, Terminal(NOT)),
		sum,
	)
	sum.Add(term, Terminal(PLUS))

	g := &Grammar{Statements: []*Node{sum}}
	g.Seal()

	require.Equal(t, "sum -> term -> sum", cycleString(g.leftCycle()))
}

func TestLeftCycleConsumedPrefix(t *testing.T) {
	t.Parallel()

	// recursion after a terminal always makes progress
	list := NewNode("list", ModeOnce)
	list.Add(Terminal(IDENTIFIER), NewNode("", ModeOnceOrNone, Terminal(COMMA), list))

	g := &Grammar{Statements: []*Node{list}}
	g.Seal()

	require.Nil(t, g.leftCycle())
	require.Nil(t, language.leftCycle())
}
