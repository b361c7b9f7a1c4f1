package ast

import "errors"

// ErrSkipChildren is returned by a WalkFunc to skip the children of the
// node it was called with.
var ErrSkipChildren = errors.New("skip children")

// WalkFunc is called for every node visited by Walk. depth is 0 for the
// node Walk started from.
type WalkFunc func(n Node, depth int) error

// Walk visits n and its descendants in pre-order, siblings in tree order.
// AnyToMany children are visited collection by collection in Names order.
//
// Walk uses an explicit stack, so arbitrarily deep relation nesting does
// not grow the goroutine stack.
func Walk(n Node, fn WalkFunc) error {
	type frame struct {
		node  Node
		depth int
	}
	stack := []frame{{node: n}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if err := fn(f.node, f.depth); err != nil {
			if errors.Is(err, ErrSkipChildren) {
				continue
			}
			return err
		}

		kids := childrenOf(f.node)
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: kids[i], depth: f.depth + 1})
		}
	}
	return nil
}

func childrenOf(n Node) []Child {
	switch t := n.(type) {
	case *Root:
		return t.children
	case *ManyToOne:
		return t.children
	case *OneToMany:
		return t.children
	case *AnyToMany:
		var all []Child
		for _, name := range t.names {
			all = append(all, t.children[name]...)
		}
		return all
	default:
		return nil
	}
}

// Collect returns every node of type T under n (n included), in Walk order.
func Collect[T Node](n Node) []T {
	var out []T
	_ = Walk(n, func(node Node, _ int) error {
		if t, ok := node.(T); ok {
			out = append(out, t)
		}
		return nil
	})
	return out
}
