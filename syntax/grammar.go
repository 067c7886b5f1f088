package syntax

// Mode determines how a node matches its elements
type Mode int

// Enumeration of node modes
const (
	ModeOnce       Mode = iota // every element in sequence, exactly once
	ModeOnceOrNone             // the sequence or nothing
	ModeOnceOrMore             // the sequence repeated at least once
	ModeZeroOrMore             // the sequence repeated any number of times
	ModeBranch                 // the first element that matches
)

var modeNames = [...]string{
	ModeOnce:       "ONCE",
	ModeOnceOrNone: "ONCE_OR_NONE",
	ModeOnceOrMore: "ONCE_OR_MORE",
	ModeZeroOrMore: "ZERO_OR_MORE",
	ModeBranch:     "BRANCH",
}

func (m Mode) String() string {
	return modeNames[m]
}

// Used to designate the different kinds of grammatical constructs
const (
	GKindNode = iota
	GKindContext
	GKindTerminal
	GKindKeyword
)

// GrammaticalElement represents a piece of the grammar: a nested node, a
// context reference, a token kind or a keyword
type GrammaticalElement interface {
	Kind() int
}

// Terminal grammatical element matching a token of the given kind
type Terminal TokenKind

// Keyword grammatical element matching a keyword token with the given text
type Keyword string

// Kind of a terminal is GKindTerminal
func (Terminal) Kind() int {
	return GKindTerminal
}

// Kind of a keyword is GKindKeyword
func (Keyword) Kind() int {
	return GKindKeyword
}

// Node is a named, composable production.  Nodes are compared by identity so
// they may reference each other in cycles.  A node with no elements is a
// reference to a nested statement context.
type Node struct {
	// Name is used in diagnostics and grammar dumps; it may be empty
	Name string

	Mode     Mode
	Elements []GrammaticalElement

	sealed bool
}

// NewNode creates a new node
func NewNode(name string, mode Mode, elems ...GrammaticalElement) *Node {
	return &Node{Name: name, Mode: mode, Elements: elems}
}

// NewContext creates a reference to a nested statement context
func NewContext(name string) *Node {
	return &Node{Name: name, Mode: ModeOnce}
}

// Kind of a node is GKindContext if it is a context reference and GKindNode
// otherwise
func (n *Node) Kind() int {
	if len(n.Elements) == 0 {
		return GKindContext
	}

	return GKindNode
}

// Add appends elements to the node
func (n *Node) Add(elems ...GrammaticalElement) *Node {
	n.checkMutable()
	n.Elements = append(n.Elements, elems...)
	return n
}

// Insert inserts an element at the given position
func (n *Node) Insert(ndx int, elem GrammaticalElement) *Node {
	n.checkMutable()
	n.Elements = append(n.Elements, nil)
	copy(n.Elements[ndx+1:], n.Elements[ndx:])
	n.Elements[ndx] = elem
	return n
}

func (n *Node) checkMutable() {
	if n.sealed {
		panic("syntax: modification of sealed grammar node `" + n.Name + "`")
	}
}

// Grammar is the set of statement forms recognized inside a context
type Grammar struct {
	// Statements are tried in order
	Statements []*Node

	// Context is the node nested contexts are referenced by
	Context *Node

	// Terminator closes a context
	Terminator Keyword

	sealed bool
}

// Seal marks every node reachable from the grammar as read-only.  A sealed
// grammar may be shared by any number of concurrent parses.
func (g *Grammar) Seal() {
	for _, n := range g.nodes() {
		n.sealed = true
	}

	g.sealed = true
}

// Sealed reports whether the grammar has been sealed
func (g *Grammar) Sealed() bool {
	return g.sealed
}

// Lookup returns the statement with the given name
func (g *Grammar) Lookup(name string) (*Node, bool) {
	for _, stmt := range g.Statements {
		if stmt.Name == name {
			return stmt, true
		}
	}

	return nil, false
}
