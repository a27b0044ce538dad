// Package tree encodes a number's prime factorization as a tree and renders it as indented text.
//
// Every node has three optional edges. The set edge encodes the exponent of a factor, the link
// edge leads to the node of the next factor, and the offset edge encodes how far the prime
// index advanced since the previous factor. Exponents and gaps are encoded recursively as
// trees of their own, so the whole structure is built from leaves alone. The encoding is
// one-way; nothing parses a tree back into a number.
//
// With trimming enabled, exponent-1 markers that the surrounding structure already implies are
// left out. This makes trees smaller but leaves 0 and 1 without a representation.
package tree

import (
	"strings"

	"primetree/primes"
)

// UnrepresentableTrimmed is rendered in place of a tree for 0 and 1 when trimming is enabled.
const UnrepresentableTrimmed = "0 and 1 are unrepresentable in trimmed notation"

// Factorizer produces the factorization of a number ordered by ascending prime index.
type Factorizer interface {
	Factorize(num uint64) ([]primes.Factor, error)
}

// NodeID is the position of a node in its tree's arena.
type NodeID int

// Node is a tree node; a nil edge is absent.
type Node struct {
	Set    *NodeID
	Link   *NodeID
	Offset *NodeID
}

// IsLeaf reports whether the node has no edges.
func (n Node) IsLeaf() bool {
	return n.Set == nil && n.Link == nil && n.Offset == nil
}

// Tree owns an append-only arena of nodes rooted at position 0.
type Tree struct {
	factorizer Factorizer
	nodes      []Node
	trimming   bool
}

// New creates an empty tree that factorizes with f.
func New(f Factorizer, trimming bool) *Tree {
	return &Tree{
		factorizer: f,
		nodes:      make([]Node, 0),
		trimming:   trimming,
	}
}

// Representable reports whether num has a tree under the given trimming policy.
func Representable(num uint64, trimming bool) bool {
	if trimming {
		return num > 1
	}
	return num > 0
}

// Trimming reports whether the tree omits implied exponent nodes.
func (t *Tree) Trimming() bool {
	return t.trimming
}

// Len returns the number of nodes in the arena.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Root returns the root position, which is absent when the last number was unrepresentable.
func (t *Tree) Root() (NodeID, bool) {
	if len(t.nodes) == 0 {
		return 0, false
	}
	return 0, true
}

// Node returns the node at id.
func (t *Tree) Node(id NodeID) (Node, bool) {
	if id < 0 || int(id) >= len(t.nodes) {
		return Node{}, false
	}
	return t.nodes[id], true
}

// FillWithNum discards any previous contents and builds the tree for num.
// Unrepresentable numbers leave the tree empty, as does a factorization error, which is
// returned unchanged.
func (t *Tree) FillWithNum(num uint64) error {
	t.nodes = t.nodes[:0]
	if !Representable(num, t.trimming) {
		return nil
	}
	if _, err := t.fill(num, true); err != nil {
		t.nodes = t.nodes[:0]
		return err
	}
	return nil
}

func (t *Tree) newNode() NodeID {
	t.nodes = append(t.nodes, Node{})
	return NodeID(len(t.nodes) - 1)
}

// fill appends the subtree for num and returns its root. parentIsSet tells whether num is an
// exponent, or the number at the top level.
func (t *Tree) fill(num uint64, parentIsSet bool) (NodeID, error) {
	root := t.newNode()

	factors, err := t.factorizer.Factorize(num)
	if err != nil {
		return 0, err
	}

	id := root
	var offsets uint64
	for i, factor := range factors {
		last := i == len(factors)-1
		index := uint64(factor.Index)
		var node Node

		switch {
		case factor.Exponent > 1:
			set, err := t.fill(factor.Exponent, true)
			if err != nil {
				return 0, err
			}
			node.Set = &set
		case t.trimming && (parentIsSet || index > offsets || !last):
			// implied by the surrounding edges
		default:
			set := t.newNode()
			node.Set = &set
		}

		if index > offsets {
			offset, err := t.fill(index-offsets, false)
			if err != nil {
				return 0, err
			}
			offsets += index
			node.Offset = &offset
		}

		next := id
		if !last {
			offsets++
			next = t.newNode()
			node.Link = &next
		}

		t.nodes[id] = node
		id = next
	}

	return root, nil
}

// Render renders the subtree at id, indented by depth levels. It reports false for an unknown id.
func (t *Tree) Render(id NodeID, depth int) (string, bool) {
	var sb strings.Builder
	if !t.render(&sb, id, depth) {
		return "", false
	}
	return sb.String(), true
}

func (t *Tree) render(sb *strings.Builder, id NodeID, depth int) bool {
	node, ok := t.Node(id)
	if !ok {
		return false
	}
	if node.IsLeaf() {
		sb.WriteString("*")
		return true
	}

	indent := strings.Repeat("  ", depth)
	edges := []struct {
		label byte
		edge  *NodeID
	}{
		{'s', node.Set},
		{'l', node.Link},
		{'o', node.Offset},
	}
	for _, e := range edges {
		sb.WriteByte('\n')
		sb.WriteString(indent)
		sb.WriteByte(e.label)
		if e.edge != nil {
			t.render(sb, *e.edge, depth+1)
		}
	}
	return true
}

// String renders the whole tree, or the policy's placeholder when there is no root.
func (t *Tree) String() string {
	if s, ok := t.Render(0, 0); ok {
		return s
	}
	if t.trimming {
		return UnrepresentableTrimmed
	}
	return ""
}
