package merkle

import (
	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
)

// PruningCursor walks the stored nodes of one block's tree in index order.
// After DeleteNode the cursor has no current node; the next move is relative
// to the deleted position.
type PruningCursor interface {
	TryMoveToIndex(index int) (bool, error)
	TryMoveLeft() (bool, error)
	TryMoveRight() (bool, error)
	ReadNode() (model.MerkleTreeNode, error)
	// WriteNode replaces the current node. Only pruned nodes may be written.
	WriteNode(node model.MerkleTreeNode) error
	DeleteNode() error
}

// mustMove checks a move back over a node the cursor has just visited.
func mustMove(moved bool, err error) error {
	if err != nil {
		return err
	}
	if !moved {
		panicf("cursor lost a node it just visited")
	}
	return nil
}

// PruneNode prunes the leaf at index and merges every pruned sibling pair it
// creates, walking up the tree. Pruning a leaf that is already gone is a no-op.
func PruneNode(cursor PruningCursor, index int) error {
	found, err := cursor.TryMoveToIndex(index)
	if err != nil || !found {
		return err
	}
	node, err := cursor.ReadNode()
	if err != nil {
		return err
	}
	if node.Depth != 0 {
		return nil
	}
	if !node.Pruned {
		node = node.AsPruned()
		if err := cursor.WriteNode(node); err != nil {
			return err
		}
	}

	for {
		var merged bool
		if node.IsLeft() {
			merged, node, err = mergeRight(cursor, node)
		} else {
			merged, node, err = mergeLeft(cursor, node)
		}
		if err != nil {
			return err
		}
		if !merged {
			return nil
		}
	}
}

// mergeRight pairs a left node with its right sibling, or with itself when the
// node is the last one at its depth. The cursor ends on the merged node.
func mergeRight(cursor PruningCursor, node model.MerkleTreeNode) (bool, model.MerkleTreeNode, error) {
	moved, err := cursor.TryMoveRight()
	if err != nil {
		return false, node, err
	}
	if !moved {
		if node.Index == 0 {
			return false, node, nil
		}
		parent := PairWithSelf(node)
		if err := cursor.WriteNode(parent); err != nil {
			return false, node, err
		}
		return true, parent, nil
	}

	right, err := cursor.ReadNode()
	if err != nil {
		return false, node, err
	}
	if !right.Pruned || right.Depth != node.Depth {
		return false, node, mustMove(cursor.TryMoveLeft())
	}

	parent := PairWith(node, right)
	if err := cursor.DeleteNode(); err != nil {
		return false, node, err
	}
	if err := mustMove(cursor.TryMoveLeft()); err != nil {
		return false, node, err
	}
	if err := cursor.WriteNode(parent); err != nil {
		return false, node, err
	}
	return true, parent, nil
}

// mergeLeft pairs a right node with its left sibling. The parent replaces the
// left sibling and the cursor ends on it.
func mergeLeft(cursor PruningCursor, node model.MerkleTreeNode) (bool, model.MerkleTreeNode, error) {
	moved, err := cursor.TryMoveLeft()
	if err != nil || !moved {
		return false, node, err
	}

	left, err := cursor.ReadNode()
	if err != nil {
		return false, node, err
	}
	if !left.Pruned || left.Depth != node.Depth {
		return false, node, mustMove(cursor.TryMoveRight())
	}

	parent := PairWith(left, node)
	if err := cursor.WriteNode(parent); err != nil {
		return false, node, err
	}
	if err := mustMove(cursor.TryMoveRight()); err != nil {
		return false, node, err
	}
	if err := cursor.DeleteNode(); err != nil {
		return false, node, err
	}
	if err := mustMove(cursor.TryMoveLeft()); err != nil {
		return false, node, err
	}
	return true, parent, nil
}
