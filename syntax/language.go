package syntax

// NewLanguage builds and seals the grammar of the statement language.  The
// grammar is built once and may then be shared by every parse.
func NewLanguage() *Grammar {
	// declare the shared nodes first so they can reference each other (and
	// themselves) when they are wired below
	context := NewContext("context")
	typeName := NewNode("typeName", ModeBranch)
	literal := NewNode("literal", ModeBranch)
	value := NewNode("value", ModeBranch)
	math := NewNode("math", ModeOnce)
	mathOperand := NewNode("mathOperand", ModeBranch)
	mathOperator := NewNode("mathOperator", ModeBranch)
	functionCallChain := NewNode("functionCallChain", ModeOnce)
	compare := NewNode("compare", ModeOnce)
	logicOperand := NewNode("logicOperand", ModeBranch)
	condition := NewNode("condition", ModeOnce)
	parameter := NewNode("parameter", ModeOnce)
	ifStmt := NewNode("if", ModeOnce)
	elseClause := NewNode("else", ModeBranch)

	// expressions
	typeName.Add(Terminal(BASETYPE), Terminal(IDENTIFIER))

	literal.Add(
		Terminal(NUMBERLIT),
		Terminal(STRINGLIT),
		Terminal(CHARLIT),
		Keyword("true"),
		Keyword("false"),
	)

	mathOperator.Add(Terminal(PLUS), Terminal(MINUS), Terminal(STAR), Terminal(SLASH))

	mathOperand.Add(
		NewNode("", ModeOnce, Terminal(LPAREN), value, Terminal(RPAREN)),
		NewNode("", ModeOnce, Terminal(MINUS), mathOperand),
		literal,
		Terminal(IDENTIFIER),
	)

	math.Add(
		mathOperand,
		mathOperator,
		mathOperand,
		NewNode("", ModeZeroOrMore, mathOperator, mathOperand),
	)

	value.Add(math, mathOperand)

	functionCallChain.Add(
		Terminal(IDENTIFIER),
		NewNode("", ModeZeroOrMore, Terminal(DOT), Terminal(IDENTIFIER)),
		Terminal(LPAREN),
		separatedList(value),
		Terminal(RPAREN),
	)

	// calls are operands too; they must be tried before plain identifiers
	mathOperand.Insert(0, functionCallChain)

	compare.Add(
		value,
		NewNode("",
			ModeBranch,
			Keyword("above"),
			Keyword("below"),
			NewNode("", ModeOnce, Keyword("not"), Terminal(ASSIGN)),
			Terminal(ASSIGN),
		),
		value,
	)

	logicOperand.Add(
		NewNode("", ModeOnce, Terminal(NOT), logicOperand),
		compare,
		NewNode("", ModeOnce, Terminal(LPAREN), condition, Terminal(RPAREN)),
		value,
	)

	condition.Add(
		logicOperand,
		NewNode("", ModeZeroOrMore,
			NewNode("", ModeBranch, Terminal(AMP), Terminal(PIPE)),
			logicOperand,
		),
	)

	parameter.Add(Terminal(IDENTIFIER), Terminal(COLON), typeName)

	// statements
	create := NewNode("create", ModeOnce,
		Keyword("create"),
		Terminal(IDENTIFIER),
		NewNode("", ModeOnceOrNone, Terminal(COLON), typeName),
		NewNode("", ModeOnceOrNone, Terminal(ASSIGN), value),
	)

	deleteStmt := NewNode("delete", ModeOnce, Keyword("delete"), Terminal(IDENTIFIER))

	set := NewNode("set", ModeOnce, Keyword("set"), Terminal(IDENTIFIER), Terminal(ASSIGN), value)

	increment := NewNode("increment", ModeOnce,
		Keyword("inc"),
		Terminal(IDENTIFIER),
		NewNode("", ModeOnceOrNone, Keyword("by"), value),
	)

	decrement := NewNode("decrement", ModeOnce,
		Keyword("dec"),
		Terminal(IDENTIFIER),
		NewNode("", ModeOnceOrNone, Keyword("by"), value),
	)

	invoke := NewNode("invoke", ModeOnce, Keyword("invoke"), functionCallChain)

	ifStmt.Add(
		Keyword("if"),
		condition,
		Terminal(COLON),
		context,
		NewNode("", ModeOnceOrNone, elseClause),
	)

	// `else if` refers back to `if`
	elseClause.Add(
		NewNode("", ModeOnce, Keyword("else"), ifStmt),
		NewNode("", ModeOnce, Keyword("else"), Terminal(COLON), context),
	)

	while := NewNode("while", ModeOnce, Keyword("while"), condition, Terminal(COLON), context)

	forStmt := NewNode("for", ModeOnce,
		Keyword("for"),
		Terminal(IDENTIFIER),
		Keyword("from"),
		value,
		NewNode("", ModeBranch, Keyword("up"), Keyword("down")),
		Keyword("to"),
		value,
		NewNode("", ModeOnceOrNone, Keyword("step"), value),
		Terminal(COLON),
		context,
	)

	function := NewNode("function", ModeOnce,
		Keyword("function"),
		Terminal(IDENTIFIER),
		Terminal(LPAREN),
		separatedList(parameter),
		Terminal(RPAREN),
		Terminal(COLON),
		typeName,
		context,
	)

	returnStmt := NewNode("return", ModeOnce, Keyword("return"), NewNode("", ModeOnceOrNone, value))

	exit := NewNode("exit", ModeOnce, Keyword("exit"), NewNode("", ModeOnceOrNone, value))

	g := &Grammar{
		Statements: []*Node{
			create,
			deleteStmt,
			set,
			increment,
			decrement,
			invoke,
			ifStmt,
			while,
			forStmt,
			function,
			returnStmt,
			exit,
		},
		Context:    context,
		Terminator: Keyword("done"),
	}

	g.Seal()
	return g
}

// separatedList builds an optional comma separated list of elem
func separatedList(elem GrammaticalElement) *Node {
	return NewNode("", ModeOnceOrNone,
		elem,
		NewNode("", ModeZeroOrMore, Terminal(COMMA), elem),
	)
}
