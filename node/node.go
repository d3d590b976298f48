// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package node implements the scene's graph.
package node

import (
	"github.com/gviegas/greenspace/internal/bitm"
	"github.com/gviegas/greenspace/linear"
)

// Interface of a node.
type Interface interface {
	// Local returns the local transform of the node.
	// It must not return nil.
	Local() *linear.M4

	// Changed returns whether the local transform
	// has changed since the last call to Changed.
	Changed() bool
}

// Node identifies a node in a Graph.
type Node int

// Nil represents an invalid Node.
const Nil Node = 0

// node links a Node to its relatives.
// The prev field of the first immediate descendant
// refers to its immediate ancestor, so prev is only
// Nil for nodes at the top of the graph.
type node struct {
	next Node
	prev Node
	sub  Node
	data int
}

type data struct {
	local Interface
	world linear.M4
	node  Node
	fresh bool
}

// Graph is a node graph.
// The zero value is an empty graph ready for use.
type Graph struct {
	top     Node
	nodes   []node
	nodeMap bitm.Bitm[uint32]
	data    []data
}

// Insert inserts a new node as immediate descendant of prev.
// If prev is Nil, the node is inserted at the top of the graph.
func (g *Graph) Insert(n Interface, prev Node) Node {
	if g.nodeMap.Rem() == 0 {
		g.nodeMap.Grow(1)
		var elems [32]node
		g.nodes = append(g.nodes, elems[:]...)
	}
	idx, ok := g.nodeMap.Search()
	if !ok {
		// Should never happen.
		panic("unexpected failure from bitm.Bitm.Search")
	}
	g.nodeMap.Set(idx)
	nd := Node(idx + 1)
	g.nodes[idx] = node{data: len(g.data)}
	var world linear.M4
	world.I()
	g.data = append(g.data, data{local: n, world: world, node: nd, fresh: true})
	g.link(nd, prev)
	return nd
}

// link inserts n as the first immediate descendant of prev.
func (g *Graph) link(n, prev Node) {
	nd := g.at(n)
	if prev == Nil {
		nd.next = g.top
		if g.top != Nil {
			g.at(g.top).prev = n
		}
		g.top = n
		return
	}
	anc := g.at(prev)
	nd.next = anc.sub
	nd.prev = prev
	if anc.sub != Nil {
		g.at(anc.sub).prev = n
	}
	anc.sub = n
}

// unlink removes n from its siblings and ancestor.
func (g *Graph) unlink(n Node) {
	nd := g.at(n)
	switch {
	case nd.prev == Nil:
		g.top = nd.next
	case g.at(nd.prev).sub == n:
		g.at(nd.prev).sub = nd.next
	default:
		g.at(nd.prev).next = nd.next
	}
	if nd.next != Nil {
		g.at(nd.next).prev = nd.prev
	}
	nd.next = Nil
	nd.prev = Nil
}

func (g *Graph) at(n Node) *node { return &g.nodes[n-1] }

// Remove removes n and all of its descendants.
// It returns the Interface that n was inserted with.
// n must belong to g.
func (g *Graph) Remove(n Node) Interface {
	g.unlink(n)
	local := g.data[g.at(n).data].local
	que := []Node{n}
	for len(que) > 0 {
		for nd := que[0]; nd != Nil; {
			// unlink cleared n.next, so the loop
			// never leaves n's subtree.
			next := g.at(nd).next
			if sub := g.at(nd).sub; sub != Nil {
				que = append(que, sub)
			}
			g.free(nd)
			nd = next
		}
		que = que[1:]
	}
	return local
}

// free releases the slot and data of n.
func (g *Graph) free(n Node) {
	d := g.at(n).data
	last := len(g.data) - 1
	if d < last {
		g.data[d] = g.data[last]
		g.at(g.data[d].node).data = d
	}
	g.data[last] = data{}
	g.data = g.data[:last]
	g.nodes[n-1] = node{}
	g.nodeMap.Unset(int(n - 1))
}

// Contains reports whether n is a node of g.
func (g *Graph) Contains(n Node) bool {
	return n > Nil && int(n) <= len(g.nodes) && g.nodeMap.IsSet(int(n-1))
}

// Get returns the Interface of n.
// n must belong to g.
func (g *Graph) Get(n Node) Interface { return g.data[g.at(n).data].local }

// Parent returns the immediate ancestor of n, or Nil
// if n is at the top of the graph.
func (g *Graph) Parent(n Node) Node {
	for {
		prev := g.at(n).prev
		if prev == Nil || g.at(prev).sub == n {
			return prev
		}
		n = prev
	}
}

// Len returns the number of nodes in g.
func (g *Graph) Len() int { return len(g.data) }

// World returns the world transform of n as computed by
// the last call to Update.
// n must belong to g.
func (g *Graph) World(n Node) *linear.M4 { return &g.data[g.at(n).data].world }

// Update recomputes the world transform of every node
// whose local transform, or that of an ancestor, has
// changed.
func (g *Graph) Update() {
	type item struct {
		n       Node
		world   *linear.M4
		changed bool
	}
	var ident linear.M4
	ident.I()
	que := []item{{g.top, &ident, false}}
	for len(que) > 0 {
		it := que[0]
		que = que[1:]
		for nd := it.n; nd != Nil; nd = g.at(nd).next {
			d := &g.data[g.at(nd).data]
			changed := d.local.Changed() || d.fresh || it.changed
			d.fresh = false
			if changed {
				d.world.Mul(it.world, d.local.Local())
			}
			if sub := g.at(nd).sub; sub != Nil {
				que = append(que, item{sub, &d.world, changed})
			}
		}
	}
}

// ForEach calls f for each node in g.
// Ancestors are processed first.
// The graph must not be changed until this method returns.
func (g *Graph) ForEach(f func(Node)) {
	g.Until(func(n Node) bool {
		f(n)
		return true
	})
}

// Until calls f for each node in g.
// Ancestors are processed first. If f returns false,
// Until returns immediately.
// The graph must not be changed until this method returns.
func (g *Graph) Until(f func(Node) bool) {
	if g.top == Nil {
		return
	}
	que := []Node{g.top}
	for len(que) > 0 {
		for nd := que[0]; nd != Nil; nd = g.at(nd).next {
			if !f(nd) {
				return
			}
			if sub := g.at(nd).sub; sub != Nil {
				que = append(que, sub)
			}
		}
		que = que[1:]
	}
}
