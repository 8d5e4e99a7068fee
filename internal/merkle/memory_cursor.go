package merkle

import (
	"errors"
	"sort"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
)

var errNoCurrentNode = errors.New("cursor has no current node")

// MemoryCursor is a PruningCursor over an in-memory slice of block txes.
type MemoryCursor struct {
	nodes []model.BlockTx
	pos   int
	// deleted is set after DeleteNode; pos then points at the following slot.
	deleted bool
}

// NewMemoryCursor returns a cursor over a copy of txes, which must be sorted
// by index.
func NewMemoryCursor(txes []model.BlockTx) *MemoryCursor {
	nodes := make([]model.BlockTx, len(txes))
	copy(nodes, txes)
	return &MemoryCursor{nodes: nodes, pos: -1}
}

// Nodes returns the current node set in index order.
func (c *MemoryCursor) Nodes() []model.BlockTx {
	return c.nodes
}

func (c *MemoryCursor) TryMoveToIndex(index int) (bool, error) {
	i := sort.Search(len(c.nodes), func(i int) bool { return c.nodes[i].Index >= index })
	if i == len(c.nodes) || c.nodes[i].Index != index {
		return false, nil
	}
	c.pos, c.deleted = i, false
	return true, nil
}

func (c *MemoryCursor) TryMoveLeft() (bool, error) {
	if c.pos-1 < 0 {
		return false, nil
	}
	c.pos--
	c.deleted = false
	return true, nil
}

func (c *MemoryCursor) TryMoveRight() (bool, error) {
	next := c.pos + 1
	if c.deleted {
		next = c.pos
	}
	if c.pos < 0 || next >= len(c.nodes) {
		return false, nil
	}
	c.pos, c.deleted = next, false
	return true, nil
}

func (c *MemoryCursor) ReadNode() (model.MerkleTreeNode, error) {
	if c.deleted || c.pos < 0 || c.pos >= len(c.nodes) {
		return model.MerkleTreeNode{}, errNoCurrentNode
	}
	return c.nodes[c.pos].MerkleTreeNode, nil
}

func (c *MemoryCursor) WriteNode(node model.MerkleTreeNode) error {
	if c.deleted || c.pos < 0 || c.pos >= len(c.nodes) {
		return errNoCurrentNode
	}
	if !node.Pruned {
		panicf("writing unpruned node %d/%d", node.Index, node.Depth)
	}
	c.nodes[c.pos] = model.BlockTx{MerkleTreeNode: node}
	return nil
}

func (c *MemoryCursor) DeleteNode() error {
	if c.deleted || c.pos < 0 || c.pos >= len(c.nodes) {
		return errNoCurrentNode
	}
	c.nodes = append(c.nodes[:c.pos], c.nodes[c.pos+1:]...)
	c.deleted = true
	return nil
}
