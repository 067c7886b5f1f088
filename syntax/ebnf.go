package syntax

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

// StartProduction is the name of the production covering a whole program
const StartProduction = "Program"

// lexicalProductions are the productions emitted for token kinds that match
// a class of text rather than a fixed symbol
var lexicalProductions = map[TokenKind]struct {
	name, body string
	deps       []string
}{
	IDENTIFIER: {"identifier", `letter { letter | digit | "$" }`, []string{"letter", "digit"}},
	NUMBERLIT:  {"number", `digit { digit | "." | "-" | "+" | "e" } [ "d" | "f" ]`, []string{"digit"}},
	STRINGLIT:  {"string", `"\"" { character } "\""`, []string{"character"}},
	CHARLIT:    {"char", `"'" character "'"`, []string{"character"}},
	BASETYPE:   {"baseType", baseTypeBody(), nil},
}

// helperProductions are the lexical productions the token classes are built
// from, in the order they are emitted
var helperProductions = []struct{ name, body string }{
	{"letter", `"a" … "z" | "A" … "Z"`},
	{"digit", `"0" … "9"`},
	{"character", `"\x00" … "\U0010FFFF"`},
}

func baseTypeBody() string {
	quoted := make([]string, len(baseTypes))
	for i, bt := range baseTypes {
		quoted[i] = strconv.Quote(bt)
	}

	return strings.Join(quoted, " | ")
}

// ebnfWriter renders a grammar as EBNF productions
type ebnfWriter struct {
	g *Grammar

	names map[*Node]string
	used  map[string]struct{}

	// queue holds the named nodes whose productions have not been written
	queue []*Node

	lexical map[TokenKind]struct{}

	// context is set once a context reference has been written
	context bool

	sb strings.Builder
}

// EBNF renders the grammar in the EBNF dialect of golang.org/x/exp/ebnf.
// Named nodes become productions, anonymous nodes are written inline and token
// classes become lexical productions.
func (g *Grammar) EBNF() string {
	w := &ebnfWriter{
		g:       g,
		names:   make(map[*Node]string),
		used:    map[string]struct{}{StartProduction: {}, "Statement": {}, "Context": {}},
		lexical: make(map[TokenKind]struct{}),
	}

	stmtNames := make([]string, len(g.Statements))
	for i, stmt := range g.Statements {
		stmtNames[i] = w.nameOf(stmt)
	}

	w.production(StartProduction, fmt.Sprintf(`{ Statement } [ %s ]`, strconv.Quote(string(g.Terminator))))
	w.production("Statement", strings.Join(stmtNames, " | "))

	for len(w.queue) > 0 {
		node := w.queue[0]
		w.queue = w.queue[1:]
		w.production(w.names[node], w.body(node))
	}

	if w.context {
		w.production("Context", fmt.Sprintf(`{ Statement } %s`, strconv.Quote(string(g.Terminator))))
	}

	helpers := make(map[string]struct{})
	for kind := TokenKind(0); kind <= OTHER; kind++ {
		if _, ok := w.lexical[kind]; ok {
			lp := lexicalProductions[kind]
			w.production(lp.name, lp.body)

			for _, dep := range lp.deps {
				helpers[dep] = struct{}{}
			}
		}
	}

	for _, hp := range helperProductions {
		if _, ok := helpers[hp.name]; ok {
			w.production(hp.name, hp.body)
		}
	}

	return w.sb.String()
}

func (w *ebnfWriter) production(name, body string) {
	fmt.Fprintf(&w.sb, "%s = %s .\n", name, body)
}

// nameOf returns the production name of a named node, queueing its production
// the first time the node is seen.  Production names are capitalized: lower
// case names denote lexical productions.
func (w *ebnfWriter) nameOf(n *Node) string {
	if name, ok := w.names[n]; ok {
		return name
	}

	r, size := utf8.DecodeRuneInString(n.Name)
	base := string(unicode.ToUpper(r)) + n.Name[size:]

	name := base
	for i := 2; ; i++ {
		if _, ok := w.used[name]; !ok {
			break
		}

		name = base + strconv.Itoa(i)
	}

	w.used[name] = struct{}{}
	w.names[n] = name
	w.queue = append(w.queue, n)
	return name
}

// body renders the right hand side of a named node's production
func (w *ebnfWriter) body(n *Node) string {
	switch n.Mode {
	case ModeBranch:
		return w.alternatives(n)
	case ModeOnce:
		return w.sequence(n)
	default:
		return w.inline(n)
	}
}

func (w *ebnfWriter) sequence(n *Node) string {
	parts := make([]string, len(n.Elements))
	for i, elem := range n.Elements {
		parts[i] = w.expr(elem)
	}

	return strings.Join(parts, " ")
}

func (w *ebnfWriter) alternatives(n *Node) string {
	parts := make([]string, len(n.Elements))
	for i, elem := range n.Elements {
		parts[i] = w.expr(elem)
	}

	return strings.Join(parts, " | ")
}

// inline renders a node in place according to its mode
func (w *ebnfWriter) inline(n *Node) string {
	switch n.Mode {
	case ModeOnceOrNone:
		return "[ " + w.sequence(n) + " ]"
	case ModeZeroOrMore:
		return "{ " + w.sequence(n) + " }"
	case ModeOnceOrMore:
		seq := w.sequence(n)
		return "( " + seq + " ) { " + seq + " }"
	case ModeBranch:
		return "( " + w.alternatives(n) + " )"
	default:
		if len(n.Elements) == 1 {
			return w.sequence(n)
		}

		return "( " + w.sequence(n) + " )"
	}
}

func (w *ebnfWriter) expr(elem GrammaticalElement) string {
	switch v := elem.(type) {
	case Keyword:
		return strconv.Quote(string(v))
	case Terminal:
		kind := TokenKind(v)
		if lp, ok := lexicalProductions[kind]; ok {
			w.lexical[kind] = struct{}{}
			return lp.name
		}

		for r, k := range symbolPatterns {
			if k == kind {
				return strconv.Quote(string(r))
			}
		}

		return strconv.Quote("<" + kind.String() + ">")
	case *Node:
		if v.Kind() == GKindContext {
			w.context = true
			return "Context"
		}

		if v.Name == "" {
			return w.inline(v)
		}

		return w.nameOf(v)
	}

	panic(fmt.Sprintf("syntax: unknown grammatical element %T", elem))
}

// Verify checks the EBNF rendering of the grammar (every production must be
// defined and reachable from Program) and checks that no node can be
// re-entered without consuming a token
func (g *Grammar) Verify() error {
	src := g.EBNF()

	eg, err := ebnf.Parse("grammar.ebnf", strings.NewReader(src))
	if err != nil {
		return fmt.Errorf("parsing grammar EBNF: %w", err)
	}

	if err := ebnf.Verify(eg, StartProduction); err != nil {
		return fmt.Errorf("verifying grammar EBNF: %w", err)
	}

	if cycle := g.leftCycle(); cycle != nil {
		return fmt.Errorf("grammar is left recursive: %s", cycleString(cycle))
	}

	return nil
}
