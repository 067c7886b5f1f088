package syntax

import "strings"

// nodes returns every node reachable from the grammar
func (g *Grammar) nodes() []*Node {
	var nodes []*Node
	visited := make(map[*Node]struct{})

	var walk func(n *Node)
	walk = func(n *Node) {
		if _, ok := visited[n]; ok {
			return
		}

		visited[n] = struct{}{}
		nodes = append(nodes, n)

		for _, elem := range n.Elements {
			if sub, ok := elem.(*Node); ok {
				walk(sub)
			}
		}
	}

	for _, stmt := range g.Statements {
		walk(stmt)
	}

	if g.Context != nil {
		walk(g.Context)
	}

	return nodes
}

// nullableNodes computes the nodes that can match without consuming a token.
// Contexts always consume their terminator.
func nullableNodes(nodes []*Node) map[*Node]bool {
	nullable := make(map[*Node]bool)

	elemNullable := func(elem GrammaticalElement) bool {
		if sub, ok := elem.(*Node); ok {
			return nullable[sub]
		}

		return false
	}

	for changed := true; changed; {
		changed = false

		for _, n := range nodes {
			if nullable[n] || n.Kind() == GKindContext {
				continue
			}

			var result bool
			switch n.Mode {
			case ModeOnceOrNone, ModeZeroOrMore:
				result = true
			case ModeBranch:
				for _, elem := range n.Elements {
					if elemNullable(elem) {
						result = true
						break
					}
				}
			default:
				result = true
				for _, elem := range n.Elements {
					if !elemNullable(elem) {
						result = false
						break
					}
				}
			}

			if result {
				nullable[n] = true
				changed = true
			}
		}
	}

	return nullable
}

// leftEdges returns the nodes the matcher may enter at the same position as n
func (g *Grammar) leftEdges(n *Node, nullable map[*Node]bool) []*Node {
	if n.Kind() == GKindContext {
		return g.Statements
	}

	var edges []*Node
	for _, elem := range n.Elements {
		sub, ok := elem.(*Node)
		if ok {
			edges = append(edges, sub)
		}

		// every alternative of a branch starts at the same position; a
		// sequence only moves on past nullable elements
		if n.Mode != ModeBranch && (!ok || !nullable[sub]) {
			break
		}
	}

	return edges
}

// leftCycle returns a cycle of nodes that can be re-entered without consuming
// a token or nil if the grammar has none
func (g *Grammar) leftCycle() []*Node {
	nodes := g.nodes()
	nullable := nullableNodes(nodes)

	const (
		unvisited = iota
		active
		finished
	)

	state := make(map[*Node]int)
	var stack []*Node

	var visit func(n *Node) []*Node
	visit = func(n *Node) []*Node {
		switch state[n] {
		case active:
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i] == n {
					return append(append([]*Node(nil), stack[i:]...), n)
				}
			}
		case finished:
			return nil
		}

		state[n] = active
		stack = append(stack, n)

		for _, next := range g.leftEdges(n, nullable) {
			if cycle := visit(next); cycle != nil {
				return cycle
			}
		}

		stack = stack[:len(stack)-1]
		state[n] = finished
		return nil
	}

	for _, n := range nodes {
		if cycle := visit(n); cycle != nil {
			return cycle
		}
	}

	return nil
}

// cycleString renders a cycle by the names of its named nodes
func cycleString(cycle []*Node) string {
	var names []string
	for _, n := range cycle {
		if n.Name != "" {
			names = append(names, n.Name)
		}
	}

	if len(names) == 0 {
		return "(anonymous nodes)"
	}

	return strings.Join(names, " -> ")
}
