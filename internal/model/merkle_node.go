package model

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// MaxMerkleDepth bounds node depth so index arithmetic stays within int32.
const MaxMerkleDepth = 31

// MerkleTreeNode is a node of a block's transaction Merkle tree. Index is the
// position of the node's leftmost leaf; depth 0 is a leaf.
type MerkleTreeNode struct {
	Index  int
	Depth  int
	Hash   chainhash.Hash
	Pruned bool
}

// NewMerkleTreeNode validates node structure: depth bound, subtree alignment
// and that only leaves may be unpruned.
func NewMerkleTreeNode(index, depth int, hash chainhash.Hash, pruned bool) (MerkleTreeNode, error) {
	if index < 0 {
		return MerkleTreeNode{}, fmt.Errorf("merkle node: negative index %d", index)
	}
	if depth < 0 || depth > MaxMerkleDepth {
		return MerkleTreeNode{}, fmt.Errorf("merkle node: depth %d out of range", depth)
	}
	if index%(1<<depth) != 0 {
		return MerkleTreeNode{}, fmt.Errorf("merkle node: index %d not aligned to depth %d", index, depth)
	}
	if depth > 0 && !pruned {
		return MerkleTreeNode{}, fmt.Errorf("merkle node: depth %d node must be pruned", depth)
	}
	return MerkleTreeNode{Index: index, Depth: depth, Hash: hash, Pruned: pruned}, nil
}

// IsLeft reports whether the node is the left child of its parent.
func (n MerkleTreeNode) IsLeft() bool {
	return (n.Index>>n.Depth)%2 == 0
}

// Width is the number of leaf positions covered by the node.
func (n MerkleTreeNode) Width() int {
	return 1 << n.Depth
}

// AsPruned returns the node marked pruned.
func (n MerkleTreeNode) AsPruned() MerkleTreeNode {
	n.Pruned = true
	return n
}

// BlockTx is a Merkle node that, while an unpruned leaf, carries the encoded
// transaction.
type BlockTx struct {
	MerkleTreeNode
	TxBytes []byte
}

// NewBlockTx encodes a leaf for tx at index.
func NewBlockTx(index int, tx *wire.MsgTx) (BlockTx, error) {
	var buf bytes.Buffer
	if err := tx.Serialize(&buf); err != nil {
		return BlockTx{}, fmt.Errorf("serialize tx %d: %w", index, err)
	}
	return BlockTx{
		MerkleTreeNode: MerkleTreeNode{Index: index, Hash: tx.TxHash()},
		TxBytes:        buf.Bytes(),
	}, nil
}

// Tx decodes the carried transaction.
func (b BlockTx) Tx() (*wire.MsgTx, error) {
	if b.Pruned || b.Depth != 0 {
		return nil, fmt.Errorf("block tx %d/%d is pruned", b.Index, b.Depth)
	}
	tx := new(wire.MsgTx)
	if err := tx.Deserialize(bytes.NewReader(b.TxBytes)); err != nil {
		return nil, fmt.Errorf("deserialize tx %d: %w", b.Index, err)
	}
	return tx, nil
}

// AsPruned discards the transaction bytes.
func (b BlockTx) AsPruned() BlockTx {
	return BlockTx{MerkleTreeNode: b.MerkleTreeNode.AsPruned()}
}
