// Package chain holds immutable, height- and hash-indexed header chains and
// computes the rewind/advance path between two of them.
package chain

import (
	"bytes"
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
	"github.com/google/btree"
)

const indexDegree = 32

func lessByHash(a, b *model.ChainedHeader) bool {
	return bytes.Compare(a.Hash[:], b.Hash[:]) < 0
}

func newIndex() *btree.BTreeG[*model.ChainedHeader] {
	return btree.NewG(indexDegree, lessByHash)
}

// Chain is an immutable sequence of chained headers from genesis to tip.
// Chains share structure with the builders they were frozen from.
type Chain struct {
	blocks []*model.ChainedHeader
	index  *btree.BTreeG[*model.ChainedHeader]

	// cloneMu guards index.Clone, which writes to the source tree.
	cloneMu sync.Mutex
}

// Empty returns a chain with no blocks.
func Empty() *Chain {
	return &Chain{index: newIndex()}
}

// New builds a chain from headers ordered from genesis.
func New(headers ...*model.ChainedHeader) (*Chain, error) {
	b := NewBuilder()
	for _, h := range headers {
		if err := b.AddBlock(h); err != nil {
			return nil, err
		}
	}
	return b.ToImmutable(), nil
}

// Len is the number of blocks including genesis.
func (c *Chain) Len() int {
	return len(c.blocks)
}

// Height is the tip height, or -1 for an empty chain.
func (c *Chain) Height() int {
	return len(c.blocks) - 1
}

// IsEmpty reports whether the chain has no blocks.
func (c *Chain) IsEmpty() bool {
	return len(c.blocks) == 0
}

// Genesis returns the first block or nil.
func (c *Chain) Genesis() *model.ChainedHeader {
	if len(c.blocks) == 0 {
		return nil
	}
	return c.blocks[0]
}

// LastBlock returns the tip or nil.
func (c *Chain) LastBlock() *model.ChainedHeader {
	if len(c.blocks) == 0 {
		return nil
	}
	return c.blocks[len(c.blocks)-1]
}

// Blocks returns the headers from genesis to tip. The slice must not be modified.
func (c *Chain) Blocks() []*model.ChainedHeader {
	return c.blocks[:len(c.blocks):len(c.blocks)]
}

// BlockAt returns the block at height.
func (c *Chain) BlockAt(height int) (*model.ChainedHeader, bool) {
	if height < 0 || height >= len(c.blocks) {
		return nil, false
	}
	return c.blocks[height], true
}

// TryGetBlock looks a block up by hash.
func (c *Chain) TryGetBlock(hash chainhash.Hash) (*model.ChainedHeader, bool) {
	return c.index.Get(&model.ChainedHeader{Hash: hash})
}

// Contains reports whether a block with hash is part of the chain.
func (c *Chain) Contains(hash chainhash.Hash) bool {
	return c.index.Has(&model.ChainedHeader{Hash: hash})
}

// ContainsAt reports whether h is the chain's block at h.Height.
func (c *Chain) ContainsAt(h *model.ChainedHeader) bool {
	block, ok := c.BlockAt(h.Height)
	return ok && block.Hash == h.Hash
}

// FindForkPoint returns the highest block shared with other.
func (c *Chain) FindForkPoint(other *Chain) (*model.ChainedHeader, bool) {
	height := min(c.Height(), other.Height())
	for ; height >= 0; height-- {
		if c.blocks[height].Hash == other.blocks[height].Hash {
			return c.blocks[height], true
		}
	}
	return nil, false
}

// ToBuilder returns a builder starting from this chain. The chain itself is
// never modified by the builder.
func (c *Chain) ToBuilder() *Builder {
	c.cloneMu.Lock()
	index := c.index.Clone()
	c.cloneMu.Unlock()

	return &Builder{
		blocks: c.Blocks(),
		index:  index,
		shared: true,
	}
}

// Truncate returns the chain cut down to its first n blocks.
func (c *Chain) Truncate(n int) *Chain {
	if n >= c.Len() {
		return c
	}
	b := c.ToBuilder()
	for b.Len() > max(n, 0) {
		_ = b.RemoveBlock(b.LastBlock())
	}
	return b.ToImmutable()
}
