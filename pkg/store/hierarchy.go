package store

import (
	"encoding/json"
	"slices"
)

// Ranks of the hierarchy levels, from the root down.
var Ranks = []string{"class", "order", "family", "genus"}

// Node is a level of the class/order/family/genus hierarchy. It records
// only presence of names, leaves are genera with no children.
type Node struct {
	Children map[string]*Node
}

// NewNode creates an empty node.
func NewNode() *Node {
	return &Node{Children: make(map[string]*Node)}
}

// Insert adds a path of names under the node, creating missing levels.
func (n *Node) Insert(path ...string) {
	curr := n
	for _, name := range path {
		child, ok := curr.Children[name]
		if !ok {
			child = NewNode()
			curr.Children[name] = child
		}
		curr = child
	}
}

// Has checks if the path of names exists under the node.
func (n *Node) Has(path ...string) bool {
	curr := n
	for _, name := range path {
		child, ok := curr.Children[name]
		if !ok {
			return false
		}
		curr = child
	}
	return true
}

// Names returns sorted names of the children.
func (n *Node) Names() []string {
	res := make([]string, 0, len(n.Children))
	for k := range n.Children {
		res = append(res, k)
	}
	slices.Sort(res)
	return res
}

// Child returns a child by name or nil.
func (n *Node) Child(name string) *Node {
	return n.Children[name]
}

// Leaves counts nodes that have no children.
func (n *Node) Leaves() int {
	if len(n.Children) == 0 {
		return 1
	}
	var res int
	for _, v := range n.Children {
		res += v.Leaves()
	}
	return res
}

// MarshalJSON writes the tree as nested objects with empty objects as
// leaves.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n == nil || n.Children == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(n.Children)
}

// UnmarshalJSON reads the tree written by MarshalJSON.
func (n *Node) UnmarshalJSON(data []byte) error {
	children := make(map[string]*Node)
	if err := json.Unmarshal(data, &children); err != nil {
		return err
	}
	for k, v := range children {
		if v == nil {
			children[k] = NewNode()
		}
	}
	n.Children = children
	return nil
}
