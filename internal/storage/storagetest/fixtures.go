// Package storagetest holds conformance suites run against every storage backend.
package storagetest

import (
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
)

var fixtureDate = time.Unix(1700000000, 0)

// Headers returns a regtest genesis header followed by n-1 linked headers.
func Headers(n int, salt uint32) []*model.ChainedHeader {
	genesis := model.NewGenesisHeader(chaincfg.RegressionNetParams.GenesisBlock.Header, fixtureDate)
	headers := []*model.ChainedHeader{genesis}
	for len(headers) < n {
		prev := headers[len(headers)-1]
		next, err := model.NewChainedHeader(prev, wire.BlockHeader{
			Version:   1,
			PrevBlock: prev.Hash,
			Timestamp: prev.Header.Timestamp.Add(10 * time.Minute),
			Bits:      chaincfg.RegressionNetParams.PowLimitBits,
			Nonce:     salt,
		}, fixtureDate)
		if err != nil {
			panic(fmt.Sprintf("fixture header: %v", err))
		}
		headers = append(headers, next)
	}
	return headers
}

// Txes returns n distinct transactions.
func Txes(n int, salt byte) []*wire.MsgTx {
	txes := make([]*wire.MsgTx, n)
	for i := range txes {
		tx := wire.NewMsgTx(wire.TxVersion)
		tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&chainhash.Hash{salt, 0xee}, uint32(i)), []byte{salt}, nil))
		tx.AddTxOut(wire.NewTxOut(int64(i+1)*1000, []byte{0x51, salt, byte(i)}))
		txes[i] = tx
	}
	return txes
}

func unspentTx(seed byte, outputs int) model.UnspentTx {
	return model.NewUnspentTx(chainhash.Hash{seed, 0x01}, int(seed), int(seed)%7, outputs)
}

func spentTxes(seed byte) model.BlockSpentTxes {
	return model.BlockSpentTxes{
		{TxHash: chainhash.Hash{seed, 0x02}, ConfirmedBlockHeight: 1, TxIndex: 0, OutputCount: 2},
		{TxHash: chainhash.Hash{seed, 0x03}, ConfirmedBlockHeight: 2, TxIndex: 5, OutputCount: 1},
	}
}

func unmintedTxes(seed byte) model.BlockUnmintedTxes {
	return model.BlockUnmintedTxes{
		{TxHash: chainhash.Hash{seed, 0x04}, PrevOutputTxKeys: []model.TxLookupKey{}},
		{TxHash: chainhash.Hash{seed, 0x05}, PrevOutputTxKeys: []model.TxLookupKey{
			{BlockHash: chainhash.Hash{seed, 0x06}, TxIndex: 3},
		}},
	}
}

func outPoint(seed byte, index uint32) wire.OutPoint {
	return wire.OutPoint{Hash: chainhash.Hash{seed, 0x07}, Index: index}
}
