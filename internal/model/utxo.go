package model

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// UnspentTx is a confirmed transaction with at least one unspent output.
type UnspentTx struct {
	TxHash       chainhash.Hash
	BlockHeight  int
	TxIndex      int
	OutputStates OutputStates
}

// NewUnspentTx returns an entry with every output unspent.
func NewUnspentTx(txHash chainhash.Hash, blockHeight, txIndex, outputCount int) UnspentTx {
	return UnspentTx{
		TxHash:       txHash,
		BlockHeight:  blockHeight,
		TxIndex:      txIndex,
		OutputStates: NewOutputStates(outputCount, Unspent),
	}
}

// IsFullySpent reports whether no output remains unspent.
func (u UnspentTx) IsFullySpent() bool {
	return u.OutputStates.All(Spent)
}

// SetOutputState returns a copy with output i set to state.
func (u UnspentTx) SetOutputState(i int, state OutputState) UnspentTx {
	u.OutputStates = u.OutputStates.Set(i, state)
	return u
}

// ToSpentTx converts the entry into its replay record.
func (u UnspentTx) ToSpentTx() SpentTx {
	return SpentTx{
		TxHash:               u.TxHash,
		ConfirmedBlockHeight: u.BlockHeight,
		TxIndex:              u.TxIndex,
		OutputCount:          u.OutputStates.Len(),
	}
}

// Equal compares two entries field by field.
func (u UnspentTx) Equal(other UnspentTx) bool {
	return u.TxHash == other.TxHash &&
		u.BlockHeight == other.BlockHeight &&
		u.TxIndex == other.TxIndex &&
		u.OutputStates.Equal(other.OutputStates)
}

// SpentTx records a transaction that became fully spent in a specific block.
type SpentTx struct {
	TxHash               chainhash.Hash
	ConfirmedBlockHeight int
	TxIndex              int
	OutputCount          int
}

// BlockSpentTxes is the spent-tx replay log of one block, in spend order.
type BlockSpentTxes []SpentTx

// TxLookupKey locates a transaction inside block transaction storage.
type TxLookupKey struct {
	BlockHash chainhash.Hash
	TxIndex   int
}

// UnmintedTx records, for one transaction of a block, where each previous
// output it spent was confirmed. Keys are in input order. Overwritten holds
// the earlier unspent entry with the same hash that the transaction replaced,
// which only happens in blocks exempt from the duplicate transaction rule.
type UnmintedTx struct {
	TxHash           chainhash.Hash
	PrevOutputTxKeys []TxLookupKey
	Overwritten      *UnspentTx
}

// BlockUnmintedTxes is the unminted-tx replay log of one block, in block order.
type BlockUnmintedTxes []UnmintedTx

// UnspentOutput pairs an outpoint with the output it references.
type UnspentOutput struct {
	OutPoint wire.OutPoint
	TxOut    *wire.TxOut
}
