package model

import (
	"fmt"
	"math/big"
	"time"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// ChainedHeader is a block header annotated with its height and the cumulative
// proof-of-work of the chain ending at it. Values are immutable once built;
// TotalWork must never be mutated in place.
type ChainedHeader struct {
	Header    wire.BlockHeader
	Hash      chainhash.Hash
	Height    int
	TotalWork *big.Int
	DateSeen  time.Time
}

// NewGenesisHeader builds the chained header for a genesis block.
func NewGenesisHeader(header wire.BlockHeader, dateSeen time.Time) *ChainedHeader {
	return &ChainedHeader{
		Header:    header,
		Hash:      header.BlockHash(),
		Height:    0,
		TotalWork: blockchain.CalcWork(header.Bits),
		DateSeen:  dateSeen.UTC(),
	}
}

// NewChainedHeader chains header onto prev, accumulating its work.
func NewChainedHeader(prev *ChainedHeader, header wire.BlockHeader, dateSeen time.Time) (*ChainedHeader, error) {
	if prev == nil {
		return nil, fmt.Errorf("chain header %s: missing previous header", header.BlockHash())
	}
	if header.PrevBlock != prev.Hash {
		return nil, fmt.Errorf("chain header %s: previous block %s does not match %s",
			header.BlockHash(), header.PrevBlock, prev.Hash)
	}
	totalWork := new(big.Int).Add(prev.TotalWork, blockchain.CalcWork(header.Bits))
	return &ChainedHeader{
		Header:    header,
		Hash:      header.BlockHash(),
		Height:    prev.Height + 1,
		TotalWork: totalWork,
		DateSeen:  dateSeen.UTC(),
	}, nil
}

// RestoreChainedHeader rebuilds a persisted chained header. The hash is
// recomputed from the header fields rather than trusted from storage.
func RestoreChainedHeader(header wire.BlockHeader, height int, totalWork *big.Int, dateSeen time.Time) (*ChainedHeader, error) {
	if height < 0 {
		return nil, fmt.Errorf("restore header %s: negative height %d", header.BlockHash(), height)
	}
	if totalWork == nil || totalWork.Sign() < 0 {
		return nil, fmt.Errorf("restore header %s: invalid total work", header.BlockHash())
	}
	return &ChainedHeader{
		Header:    header,
		Hash:      header.BlockHash(),
		Height:    height,
		TotalWork: new(big.Int).Set(totalWork),
		DateSeen:  dateSeen.UTC(),
	}, nil
}

// PreviousBlockHash returns the hash of the parent block.
func (h *ChainedHeader) PreviousBlockHash() chainhash.Hash {
	return h.Header.PrevBlock
}

// IsGenesis reports whether the header is at height zero.
func (h *ChainedHeader) IsGenesis() bool {
	return h.Height == 0
}

// Equal compares every persisted field of two chained headers.
func (h *ChainedHeader) Equal(other *ChainedHeader) bool {
	if h == nil || other == nil {
		return h == other
	}
	return h.Hash == other.Hash &&
		h.Height == other.Height &&
		h.TotalWork.Cmp(other.TotalWork) == 0 &&
		h.DateSeen.Equal(other.DateSeen)
}

func (h *ChainedHeader) String() string {
	return fmt.Sprintf("%s@%d", h.Hash, h.Height)
}
