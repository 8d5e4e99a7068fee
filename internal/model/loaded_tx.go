package model

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// PrevOutput is a previous output resolved for one input.
type PrevOutput struct {
	TxOut       *wire.TxOut
	BlockHeight int
	IsCoinbase  bool
}

// LoadedTx is a block transaction with every input's previous output
// resolved, ready for validation. PrevOutputs is empty for the coinbase.
type LoadedTx struct {
	Tx          *wire.MsgTx
	TxHash      chainhash.Hash
	TxIndex     int
	PrevOutputs []PrevOutput
}

func (t LoadedTx) IsCoinbase() bool {
	return t.TxIndex == 0
}

// InputValue sums the values of the resolved previous outputs.
func (t LoadedTx) InputValue() int64 {
	var total int64
	for _, prev := range t.PrevOutputs {
		total += prev.TxOut.Value
	}
	return total
}

// OutputValue sums the transaction's output values.
func (t LoadedTx) OutputValue() int64 {
	var total int64
	for _, out := range t.Tx.TxOut {
		total += out.Value
	}
	return total
}

// BlockTally accumulates a block's totals while its transactions are applied.
type BlockTally struct {
	TxCount       int
	InputCount    int
	OutputCount   int
	TotalFees     int64
	CoinbaseValue int64
}
