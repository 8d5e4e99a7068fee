// Package merkle computes block transaction Merkle roots and prunes leaves
// from a stored tree while keeping the root recomputable.
package merkle

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
)

// ErrEmptyTree is returned when a root is requested for no nodes.
var ErrEmptyTree = errors.New("merkle tree has no nodes")

func panicf(format string, args ...any) {
	panic(fmt.Sprintf("merkle: "+format, args...))
}

func hashPair(left, right chainhash.Hash) chainhash.Hash {
	var buf [chainhash.HashSize * 2]byte
	copy(buf[:chainhash.HashSize], left[:])
	copy(buf[chainhash.HashSize:], right[:])
	return chainhash.DoubleHashH(buf[:])
}

func combine(left, right model.MerkleTreeNode) model.MerkleTreeNode {
	if left.Depth != right.Depth {
		panicf("pairing node %d/%d with node %d/%d of different depth", left.Index, left.Depth, right.Index, right.Depth)
	}
	if !left.IsLeft() || right.IsLeft() || left.Index+left.Width() != right.Index {
		panicf("nodes %d/%d and %d/%d are not siblings", left.Index, left.Depth, right.Index, right.Depth)
	}
	if left.Depth >= model.MaxMerkleDepth {
		panicf("node %d/%d is at maximum depth", left.Index, left.Depth)
	}
	return model.MerkleTreeNode{
		Index:  left.Index,
		Depth:  left.Depth + 1,
		Hash:   hashPair(left.Hash, right.Hash),
		Pruned: true,
	}
}

// PairWith merges two pruned sibling nodes into their parent.
func PairWith(left, right model.MerkleTreeNode) model.MerkleTreeNode {
	if !left.Pruned || !right.Pruned {
		panicf("pairing unpruned node %d/%d with %d/%d", left.Index, left.Depth, right.Index, right.Depth)
	}
	return combine(left, right)
}

// PairWithSelf completes the subtree of a left node that has no right
// sibling, hashing it with a copy of itself.
func PairWithSelf(node model.MerkleTreeNode) model.MerkleTreeNode {
	if !node.Pruned {
		panicf("self-pairing unpruned node %d/%d", node.Index, node.Depth)
	}
	return completeSubtree(node)
}

func completeSubtree(node model.MerkleTreeNode) model.MerkleTreeNode {
	if !node.IsLeft() {
		panicf("self-pairing right node %d/%d", node.Index, node.Depth)
	}
	twin := node
	twin.Index += node.Width()
	return combine(node, twin)
}

// ComputeRoot returns the root hash of a tree given as an ordered sequence of
// nodes tiling the leaf range, leaves and pruned subtrees alike.
func ComputeRoot(nodes []model.MerkleTreeNode) (chainhash.Hash, error) {
	root, err := ComputeRootNode(nodes)
	if err != nil {
		return chainhash.Hash{}, err
	}
	return root.Hash, nil
}

// ComputeRootNode is ComputeRoot returning the full root node, whose depth is
// ceil(log2(leaves)).
func ComputeRootNode(nodes []model.MerkleTreeNode) (model.MerkleTreeNode, error) {
	if len(nodes) == 0 {
		return model.MerkleTreeNode{}, ErrEmptyTree
	}

	stack := make([]model.MerkleTreeNode, 0, model.MaxMerkleDepth+1)
	expectedIndex := 0
	for _, node := range nodes {
		if node.Index != expectedIndex {
			return model.MerkleTreeNode{}, fmt.Errorf("node at index %d, expected %d", node.Index, expectedIndex)
		}
		if node.Depth < 0 || node.Depth > model.MaxMerkleDepth || node.Index%node.Width() != 0 {
			return model.MerkleTreeNode{}, fmt.Errorf("invalid node %d/%d", node.Index, node.Depth)
		}
		expectedIndex += node.Width()

		stack = append(stack, node)
		for len(stack) >= 2 {
			left, right := stack[len(stack)-2], stack[len(stack)-1]
			if left.Depth < right.Depth {
				return model.MerkleTreeNode{}, fmt.Errorf("node %d/%d follows shallower node %d/%d", right.Index, right.Depth, left.Index, left.Depth)
			}
			if left.Depth != right.Depth {
				break
			}
			stack = append(stack[:len(stack)-2], combine(left, right))
		}
	}

	for len(stack) > 1 {
		top := stack[len(stack)-1]
		stack[len(stack)-1] = completeSubtree(top)
		for len(stack) >= 2 && stack[len(stack)-2].Depth == stack[len(stack)-1].Depth {
			left, right := stack[len(stack)-2], stack[len(stack)-1]
			stack = append(stack[:len(stack)-2], combine(left, right))
		}
	}
	return stack[0], nil
}
