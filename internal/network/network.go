// Package network accumulates parsed requirements into a graph of named
// entities. Nodes are created in first-mention order and carry the facts
// asserted about them; containment edges record "X has a Y" structure.
package network

import (
	"sort"

	"github.com/ppiankov/attest/internal/model"
)

// Fact is one assertion attached to a node, traceable back to the
// requirement that produced it
type Fact struct {
	RequirementID int                `json:"requirement_id"`
	Action        string             `json:"action"`
	Target        string             `json:"target,omitempty"`
	Attributes    []string           `json:"attributes,omitempty"`
	Constraints   []model.Constraint `json:"constraints,omitempty"`
	Negated       bool               `json:"negated,omitempty"`
}

// Node is one named entity in the network
type Node struct {
	Name        string `json:"name"`
	ContainedBy string `json:"contained_by,omitempty"`
	Facts       []Fact `json:"facts,omitempty"`
}

// Network holds nodes keyed by canonical name, preserving first-mention
// order for deterministic iteration
type Network struct {
	nodes map[string]*Node
	order []string
}

func New() *Network {
	return &Network{nodes: make(map[string]*Node)}
}

func (n *Network) ensure(name string) *Node {
	if node, ok := n.nodes[name]; ok {
		return node
	}
	node := &Node{Name: name}
	n.nodes[name] = node
	n.order = append(n.order, name)
	return node
}

// Node returns the named node, or nil
func (n *Network) Node(name string) *Node {
	return n.nodes[name]
}

// ContainedBy returns the name of the node's container, or "" when the
// node is unknown or top-level
func (n *Network) ContainedBy(name string) string {
	if node, ok := n.nodes[name]; ok {
		return node.ContainedBy
	}
	return ""
}

// Nodes returns all nodes in first-mention order
func (n *Network) Nodes() []*Node {
	out := make([]*Node, 0, len(n.order))
	for _, name := range n.order {
		out = append(out, n.nodes[name])
	}
	return out
}

func (n *Network) Len() int {
	return len(n.nodes)
}

// Names returns all node names sorted alphabetically, for display
func (n *Network) Names() []string {
	names := make([]string, len(n.order))
	copy(names, n.order)
	sort.Strings(names)
	return names
}

// Builder folds requirements into a Network. It must see requirements in
// input order; adding the same requirement twice is a no-op. When two
// requirements disagree on a node's container the later one wins.
type Builder struct {
	network *Network
	seen    map[int]bool
}

func NewBuilder() *Builder {
	return &Builder{network: New(), seen: make(map[int]bool)}
}

// Add records one requirement's entities and facts
func (b *Builder) Add(req *model.Requirement) {
	if b.seen[req.ID] {
		return
	}
	b.seen[req.ID] = true

	actor := b.network.ensure(req.Actor)

	fact := Fact{
		RequirementID: req.ID,
		Action:        req.Action,
		Target:        req.Target,
		Attributes:    req.Attributes,
		Constraints:   req.Constraints,
		Negated:       req.Negated,
	}

	if req.Target == "" {
		actor.Facts = append(actor.Facts, fact)
		return
	}

	target := b.network.ensure(req.Target)
	if req.Containment {
		// Structural assertion: the fact describes the target, and the
		// target now lives under this actor.
		target.ContainedBy = req.Actor
		target.Facts = append(target.Facts, fact)
		return
	}
	actor.Facts = append(actor.Facts, fact)
}

// Network returns the accumulated graph
func (b *Builder) Network() *Network {
	return b.network
}
