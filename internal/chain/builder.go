package chain

import (
	"errors"
	"fmt"
	"slices"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
	"github.com/google/btree"
)

var (
	// ErrNotConnected is returned when a block does not extend the tip.
	ErrNotConnected = errors.New("block does not connect to chain tip")
	// ErrNotTip is returned when removing a block other than the tip.
	ErrNotTip = errors.New("block is not the chain tip")
)

// Builder is a mutable chain that only changes at its tip.
type Builder struct {
	blocks []*model.ChainedHeader
	index  *btree.BTreeG[*model.ChainedHeader]
	// shared is set while the backing array of blocks is visible to a frozen Chain.
	shared bool
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{index: newIndex()}
}

func (b *Builder) Len() int {
	return len(b.blocks)
}

func (b *Builder) Height() int {
	return len(b.blocks) - 1
}

func (b *Builder) LastBlock() *model.ChainedHeader {
	if len(b.blocks) == 0 {
		return nil
	}
	return b.blocks[len(b.blocks)-1]
}

// AddBlock appends h at the tip.
func (b *Builder) AddBlock(h *model.ChainedHeader) error {
	if tip := b.LastBlock(); tip == nil {
		if h.Height != 0 {
			return fmt.Errorf("%w: first block %s has height %d", ErrNotConnected, h.Hash, h.Height)
		}
	} else if h.Height != tip.Height+1 || h.PreviousBlockHash() != tip.Hash {
		return fmt.Errorf("%w: %s at height %d onto %s", ErrNotConnected, h.Hash, h.Height, tip.Hash)
	}

	// Frozen chains only read below their own length.
	b.blocks = append(b.blocks, h)
	b.index.ReplaceOrInsert(h)
	return nil
}

// RemoveBlock removes h, which must be the tip.
func (b *Builder) RemoveBlock(h *model.ChainedHeader) error {
	tip := b.LastBlock()
	if tip == nil || tip.Hash != h.Hash {
		return fmt.Errorf("%w: %s", ErrNotTip, h.Hash)
	}
	if b.shared {
		b.blocks = slices.Clone(b.blocks)
		b.shared = false
	}
	b.blocks[len(b.blocks)-1] = nil
	b.blocks = b.blocks[:len(b.blocks)-1]
	b.index.Delete(h)
	return nil
}

// ToImmutable freezes the current state into a Chain.
func (b *Builder) ToImmutable() *Chain {
	b.shared = true
	return &Chain{
		blocks: b.blocks[:len(b.blocks):len(b.blocks)],
		index:  b.index.Clone(),
	}
}
