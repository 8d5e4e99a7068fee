// Package rules checks blocks and transactions against the Bitcoin
// consensus rules the chain-state builder relies on.
package rules

import (
	"errors"
	"fmt"
	"math/big"
	"slices"
	"time"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/chain"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
)

const (
	medianTimeBlocks = 11
	maxTimeOffset    = 2 * time.Hour
)

// never marks a soft fork that is not enforced on a network.
const never = -1

// activation holds the heights from which the version-bits soft forks are
// enforced, buried the way Bitcoin Core buries them, and the time from
// which P2SH is enforced.
type activation struct {
	bip16   time.Time
	csv     int
	segwit  int
	taproot int
}

// activations by network. Unlisted networks enforce everything from genesis.
// Testnet3 taproot was never buried, so taproot spends there are not checked.
var activations = map[wire.BitcoinNet]activation{
	wire.MainNet:  {bip16: txscript.Bip16Activation, csv: 419328, segwit: 481824, taproot: 709632},
	wire.TestNet3: {bip16: txscript.Bip16Activation, csv: 770112, segwit: 834624, taproot: never},
	wire.TestNet:  {csv: 1},
}

// duplicateTxBlocks are the blocks that replaced an unspent coinbase with an
// identical one before BIP34 made that impossible.
var duplicateTxBlocks = map[wire.BitcoinNet]map[int]chainhash.Hash{
	wire.MainNet: {
		91842: mustHash("00000000000a4d0a398161ffc163c503763b1f4360639393e0e4c8e300e0caec"),
		91880: mustHash("00000000000743f190a18c5577a3c2d2a1f610ae9601ac046a38084ccb7cd721"),
	},
}

func mustHash(s string) chainhash.Hash {
	h, err := chainhash.NewHashFromStr(s)
	if err != nil {
		panic(err)
	}
	return *h
}

var (
	ErrGenesisHash      = errors.New("genesis block hash mismatch")
	ErrNotConnected     = errors.New("block does not extend the chain tip")
	ErrBadDifficulty    = errors.New("unexpected difficulty bits")
	ErrBadPoW           = errors.New("block hash above target")
	ErrTimeTooOld       = errors.New("timestamp not after median time past")
	ErrTimeTooNew       = errors.New("timestamp too far in the future")
	ErrCoinbasePosition = errors.New("coinbase must be first and only first")
	ErrMissingPrevOut   = errors.New("previous output count mismatch")
	ErrImmatureSpend    = errors.New("spend of immature coinbase")
	ErrBadValue         = errors.New("invalid transaction value")
	ErrBadCoinbaseValue = errors.New("coinbase pays more than subsidy and fees")
	ErrScript           = errors.New("script verification failed")
)

// Rules validates against one network's parameters.
type Rules struct {
	params      *chaincfg.Params
	activations activation
	now         func() time.Time
}

func New(params *chaincfg.Params) *Rules {
	return &Rules{params: params, activations: activations[params.Net], now: time.Now}
}

// DuplicateTxAllowed reports whether header is one of the historical blocks
// allowed to overwrite an unspent transaction.
func (r *Rules) DuplicateTxAllowed(header *model.ChainedHeader) bool {
	hash, ok := duplicateTxBlocks[r.params.Net][header.Height]
	return ok && hash == header.Hash
}

// ScriptFlags returns the script verification flags in force for header.
func (r *Rules) ScriptFlags(header *model.ChainedHeader) txscript.ScriptFlags {
	var flags txscript.ScriptFlags
	a := r.activations
	if !header.Header.Timestamp.Before(a.bip16) {
		flags |= txscript.ScriptBip16
	}
	if header.Height >= int(r.params.BIP0066Height) {
		flags |= txscript.ScriptVerifyDERSignatures
	}
	if header.Height >= int(r.params.BIP0065Height) {
		flags |= txscript.ScriptVerifyCheckLockTimeVerify
	}
	if active(a.csv, header.Height) {
		flags |= txscript.ScriptVerifyCheckSequenceVerify
	}
	if active(a.segwit, header.Height) {
		flags |= txscript.ScriptVerifyWitness | txscript.ScriptStrictMultiSig
	}
	if active(a.taproot, header.Height) {
		flags |= txscript.ScriptVerifyTaproot
	}
	return flags
}

func active(since, height int) bool {
	return since != never && height >= since
}

// PreValidateBlock checks header linkage, timestamps and proof of work
// against c, the chain header extends.
func (r *Rules) PreValidateBlock(c *chain.Chain, header *model.ChainedHeader) error {
	if header.Height == 0 {
		if header.Hash != *r.params.GenesisHash {
			return fmt.Errorf("%w: %s", ErrGenesisHash, header.Hash)
		}
		return nil
	}

	prev := c.LastBlock()
	if prev == nil || prev.Hash != header.PreviousBlockHash() || prev.Height+1 != header.Height {
		return fmt.Errorf("%w: %s at height %d", ErrNotConnected, header.Hash, header.Height)
	}

	if !header.Header.Timestamp.After(medianTimePast(c)) {
		return fmt.Errorf("%w: %s", ErrTimeTooOld, header.Header.Timestamp)
	}
	if header.Header.Timestamp.After(r.now().Add(maxTimeOffset)) {
		return fmt.Errorf("%w: %s", ErrTimeTooNew, header.Header.Timestamp)
	}

	want, err := r.requiredBits(c, header.Height)
	if err != nil {
		return err
	}
	if want != nil && header.Header.Bits != *want {
		return fmt.Errorf("%w: got %08x want %08x", ErrBadDifficulty, header.Header.Bits, *want)
	}

	target := blockchain.CompactToBig(header.Header.Bits)
	if target.Sign() <= 0 || target.Cmp(r.params.PowLimit) > 0 {
		return fmt.Errorf("%w: target %064x out of range", ErrBadPoW, target)
	}
	if blockchain.HashToBig(&header.Hash).Cmp(target) > 0 {
		return fmt.Errorf("%w: %s", ErrBadPoW, header.Hash)
	}
	return nil
}

func medianTimePast(c *chain.Chain) time.Time {
	times := make([]time.Time, 0, medianTimeBlocks)
	for h := c.Height(); h >= 0 && len(times) < medianTimeBlocks; h-- {
		b, _ := c.BlockAt(h)
		times = append(times, b.Header.Timestamp)
	}
	slices.SortFunc(times, func(a, b time.Time) int { return a.Compare(b) })
	return times[len(times)/2]
}

// requiredBits returns the difficulty a block at height must carry, or nil
// when the network allows minimum-difficulty blocks between retargets.
func (r *Rules) requiredBits(c *chain.Chain, height int) (*uint32, error) {
	prev := c.LastBlock()
	interval := int(r.params.TargetTimespan / r.params.TargetTimePerBlock)
	if r.params.PoWNoRetargeting {
		bits := prev.Header.Bits
		return &bits, nil
	}
	if height%interval != 0 {
		if r.params.ReduceMinDifficulty {
			return nil, nil
		}
		bits := prev.Header.Bits
		return &bits, nil
	}

	first, ok := c.BlockAt(height - interval)
	if !ok {
		return nil, fmt.Errorf("retarget at %d: missing block %d", height, height-interval)
	}
	timespan := int64(r.params.TargetTimespan / time.Second)
	factor := r.params.RetargetAdjustmentFactor
	actual := prev.Header.Timestamp.Unix() - first.Header.Timestamp.Unix()
	actual = max(timespan/factor, min(actual, timespan*factor))

	target := blockchain.CompactToBig(prev.Header.Bits)
	target.Mul(target, big.NewInt(actual))
	target.Div(target, big.NewInt(timespan))
	if target.Cmp(r.params.PowLimit) > 0 {
		target.Set(r.params.PowLimit)
	}
	bits := blockchain.BigToCompact(target)
	return &bits, nil
}

// ValidateTransaction checks one transaction whose previous outputs are
// already resolved.
func (r *Rules) ValidateTransaction(header *model.ChainedHeader, tx model.LoadedTx) error {
	if err := blockchain.CheckTransactionSanity(btcutil.NewTx(tx.Tx)); err != nil {
		return err
	}
	if blockchain.IsCoinBaseTx(tx.Tx) != tx.IsCoinbase() {
		return fmt.Errorf("%w: tx %d", ErrCoinbasePosition, tx.TxIndex)
	}
	if tx.IsCoinbase() {
		return nil
	}

	if len(tx.PrevOutputs) != len(tx.Tx.TxIn) {
		return fmt.Errorf("%w: %d inputs, %d resolved", ErrMissingPrevOut, len(tx.Tx.TxIn), len(tx.PrevOutputs))
	}
	var inputValue int64
	for i, prev := range tx.PrevOutputs {
		if prev.IsCoinbase && header.Height-prev.BlockHeight < int(r.params.CoinbaseMaturity) {
			return fmt.Errorf("%w: input %d confirmed at %d", ErrImmatureSpend, i, prev.BlockHeight)
		}
		if prev.TxOut.Value < 0 || prev.TxOut.Value > btcutil.MaxSatoshi {
			return fmt.Errorf("%w: input %d value %d", ErrBadValue, i, prev.TxOut.Value)
		}
		inputValue += prev.TxOut.Value
		if inputValue > btcutil.MaxSatoshi {
			return fmt.Errorf("%w: total input value %d", ErrBadValue, inputValue)
		}
	}
	if outputValue := tx.OutputValue(); inputValue < outputValue {
		return fmt.Errorf("%w: inputs %d below outputs %d", ErrBadValue, inputValue, outputValue)
	}
	return nil
}

// ValidateTransactionScript runs the script engine for every input.
func (r *Rules) ValidateTransactionScript(header *model.ChainedHeader, tx model.LoadedTx) error {
	if tx.IsCoinbase() {
		return nil
	}
	flags := r.ScriptFlags(header)
	prevOuts := make(map[wire.OutPoint]*wire.TxOut, len(tx.Tx.TxIn))
	for i, in := range tx.Tx.TxIn {
		prevOuts[in.PreviousOutPoint] = tx.PrevOutputs[i].TxOut
	}
	fetcher := txscript.NewMultiPrevOutFetcher(prevOuts)
	sigHashes := txscript.NewTxSigHashes(tx.Tx, fetcher)

	for i := range tx.Tx.TxIn {
		prevOut := tx.PrevOutputs[i].TxOut
		vm, err := txscript.NewEngine(prevOut.PkScript, tx.Tx, i, flags, nil, sigHashes, prevOut.Value, fetcher)
		if err != nil {
			return fmt.Errorf("%w: input %d: %w", ErrScript, i, err)
		}
		if err := vm.Execute(); err != nil {
			return fmt.Errorf("%w: input %d: %w", ErrScript, i, err)
		}
	}
	return nil
}

// PostValidateBlock checks block totals once every transaction is applied.
func (r *Rules) PostValidateBlock(_ *chain.Chain, header *model.ChainedHeader, tally model.BlockTally) error {
	allowed := blockchain.CalcBlockSubsidy(int32(header.Height), r.params) + tally.TotalFees
	if tally.CoinbaseValue > allowed {
		return fmt.Errorf("%w: %d > %d", ErrBadCoinbaseValue, tally.CoinbaseValue, allowed)
	}
	return nil
}
