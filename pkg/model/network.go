package model

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/openconfigurator/odconf-go/pkg/project"
)

// Network errors.
var (
	ErrDuplicateNode   = errors.New("duplicate node ID")
	ErrNetworkMismatch = errors.New("node belongs to another network")
	ErrNodeNotFound    = errors.New("node not found")
	ErrEntryNotFound   = errors.New("object not found")
)

// Network groups the nodes of one project.
type Network struct {
	id string

	mu    sync.RWMutex
	nodes map[uint8]*Node
}

// NewNetwork creates an empty network.
func NewNetwork(id string) *Network {
	return &Network{id: id, nodes: make(map[uint8]*Node)}
}

// ID returns the network identifier.
func (n *Network) ID() string { return n.id }

// AddNode adds a node. Its network ID must match.
func (n *Network) AddNode(node *Node) error {
	if node == nil {
		return ErrNilNode
	}
	if node.NetworkID() != n.id {
		return fmt.Errorf("%w: %q", ErrNetworkMismatch, node.NetworkID())
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if _, exists := n.nodes[node.NodeID()]; exists {
		return fmt.Errorf("%w: %d", ErrDuplicateNode, node.NodeID())
	}
	n.nodes[node.NodeID()] = node
	return nil
}

// Node returns the node with the given ID.
func (n *Network) Node(nodeID uint8) (*Node, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	node, ok := n.nodes[nodeID]
	return node, ok
}

// Nodes returns all nodes ordered by node ID.
func (n *Network) Nodes() []*Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]*Node, 0, len(n.nodes))
	for _, node := range n.nodes {
		out = append(out, node)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NodeID() < out[j].NodeID() })
	return out
}

// Lookup returns the entry identified by key on the node.
func (n *Network) Lookup(nodeID uint8, key project.Key) (Entry, error) {
	node, ok := n.Node(nodeID)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNodeNotFound, nodeID)
	}
	e, ok := node.Dictionary().Lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s on node %d", ErrEntryNotFound, key, nodeID)
	}
	return e, nil
}
