// Package blockgen mines deterministic regtest blocks for tests. Outputs pay
// to OP_TRUE so spends need no signatures.
package blockgen

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
)

const (
	// Fee paid by every generated spend.
	Fee = 1000

	minSpendValue = 3 * Fee
)

var (
	dateSeen     = time.Unix(1700000000, 0)
	opTrueScript = []byte{txscript.OP_TRUE}
)

type spendable struct {
	outPoint wire.OutPoint
	value    int64
	// height at which the output matures.
	matures int
}

// Block is a generated block with its chained header.
type Block struct {
	Header *model.ChainedHeader
	Block  *wire.MsgBlock
}

// Generator extends one chain. Fork copies it to grow a competing branch.
type Generator struct {
	params    *chaincfg.Params
	rng       *rand.Rand
	salt      string
	blocks    []Block
	spendable []spendable
}

// New starts a chain at params' genesis block.
func New(params *chaincfg.Params, seed uint64) *Generator {
	genesis := params.GenesisBlock
	return &Generator{
		params: params,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		blocks: []Block{{
			Header: model.NewGenesisHeader(genesis.Header, dateSeen),
			Block:  genesis,
		}},
	}
}

func (g *Generator) Params() *chaincfg.Params {
	return g.params
}

// Blocks returns every block from genesis to the tip.
func (g *Generator) Blocks() []Block {
	return slices.Clone(g.blocks)
}

func (g *Generator) Tip() Block {
	return g.blocks[len(g.blocks)-1]
}

// Headers returns every chained header from genesis to the tip.
func (g *Generator) Headers() []*model.ChainedHeader {
	headers := make([]*model.ChainedHeader, len(g.blocks))
	for i, b := range g.blocks {
		headers[i] = b.Header
	}
	return headers
}

// Fork returns an independent copy whose future blocks differ from g's.
func (g *Generator) Fork(salt string) *Generator {
	state := g.rng.Uint64()
	return &Generator{
		params:    g.params,
		rng:       rand.New(rand.NewPCG(state, state^0x2545f4914f6cdd1d)),
		salt:      salt,
		blocks:    slices.Clone(g.blocks),
		spendable: slices.Clone(g.spendable),
	}
}

// Next mines a block with a coinbase and up to spends spending
// transactions. Later transactions may spend outputs created earlier in the
// same block.
func (g *Generator) Next(spends int) Block {
	prev := g.Tip().Header
	height := prev.Height + 1

	var (
		txes []*wire.MsgTx
		fees int64
	)
	for range spends {
		tx, ok := g.spendTx(height)
		if !ok {
			break
		}
		txes = append(txes, tx)
		fees += Fee
	}

	coinbase := g.coinbaseTx(height, blockchain.CalcBlockSubsidy(int32(height), g.params)+fees)
	txes = append([]*wire.MsgTx{coinbase}, txes...)
	g.addOutputs(coinbase, height+int(g.params.CoinbaseMaturity))

	block := &wire.MsgBlock{
		Header: wire.BlockHeader{
			Version:    4,
			PrevBlock:  prev.Hash,
			MerkleRoot: merkleRoot(txes),
			Timestamp:  prev.Header.Timestamp.Add(10 * time.Minute),
			Bits:       prev.Header.Bits,
		},
		Transactions: txes,
	}
	mine(&block.Header)

	header, err := model.NewChainedHeader(prev, block.Header, dateSeen)
	if err != nil {
		panic(fmt.Sprintf("blockgen: chain header: %v", err))
	}
	b := Block{Header: header, Block: block}
	g.blocks = append(g.blocks, b)
	return b
}

// Extend mines n blocks with up to spends spending transactions each.
func (g *Generator) Extend(n, spends int) []Block {
	out := make([]Block, 0, n)
	for range n {
		out = append(out, g.Next(spends))
	}
	return out
}

func (g *Generator) coinbaseTx(height int, value int64) *wire.MsgTx {
	sigScript, err := txscript.NewScriptBuilder().
		AddInt64(int64(height)).
		AddData([]byte("blockgen" + g.salt)).
		Script()
	if err != nil {
		panic(fmt.Sprintf("blockgen: coinbase script: %v", err))
	}

	tx := wire.NewMsgTx(wire.TxVersion)
	tx.AddTxIn(&wire.TxIn{
		PreviousOutPoint: wire.OutPoint{Index: wire.MaxPrevOutIndex},
		SignatureScript:  sigScript,
		Sequence:         wire.MaxTxInSequenceNum,
	})
	half := value / 2
	tx.AddTxOut(wire.NewTxOut(half, opTrueScript))
	tx.AddTxOut(wire.NewTxOut(value-half, opTrueScript))
	return tx
}

// spendTx spends one or two mature outputs into two new outputs.
func (g *Generator) spendTx(height int) (*wire.MsgTx, bool) {
	tx := wire.NewMsgTx(wire.TxVersion)
	var total int64
	inputs := 1 + g.rng.IntN(2)
	for len(tx.TxIn) < inputs {
		i, ok := g.pickMature(height)
		if !ok {
			break
		}
		out := g.spendable[i]
		g.spendable = slices.Delete(g.spendable, i, i+1)
		tx.AddTxIn(wire.NewTxIn(&out.outPoint, nil, nil))
		total += out.value
	}
	if len(tx.TxIn) == 0 {
		return nil, false
	}

	value := total - Fee
	first := value / int64(2+g.rng.IntN(3))
	tx.AddTxOut(wire.NewTxOut(first, opTrueScript))
	tx.AddTxOut(wire.NewTxOut(value-first, opTrueScript))
	g.addOutputs(tx, height)
	return tx, true
}

func (g *Generator) pickMature(height int) (int, bool) {
	var candidates []int
	for i, s := range g.spendable {
		if s.matures <= height {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}
	return candidates[g.rng.IntN(len(candidates))], true
}

func (g *Generator) addOutputs(tx *wire.MsgTx, matures int) {
	hash := tx.TxHash()
	for i, out := range tx.TxOut {
		if out.Value < minSpendValue {
			continue
		}
		g.spendable = append(g.spendable, spendable{
			outPoint: wire.OutPoint{Hash: hash, Index: uint32(i)},
			value:    out.Value,
			matures:  matures,
		})
	}
}

func merkleRoot(txes []*wire.MsgTx) chainhash.Hash {
	utxes := make([]*btcutil.Tx, len(txes))
	for i, tx := range txes {
		utxes[i] = btcutil.NewTx(tx)
	}
	return blockchain.CalcMerkleRoot(utxes, false)
}

// mine searches nonces until the header hash meets its own target.
func mine(header *wire.BlockHeader) {
	target := blockchain.CompactToBig(header.Bits)
	for nonce := uint32(0); ; nonce++ {
		header.Nonce = nonce
		hash := header.BlockHash()
		if blockchain.HashToBig(&hash).Cmp(target) <= 0 {
			return
		}
		if nonce == ^uint32(0) {
			panic("blockgen: nonce space exhausted")
		}
	}
}
