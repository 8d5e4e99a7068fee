package chainstate

import (
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/chain"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Rules is the consensus capability the builder calls into. Any error it
	// returns invalidates the block. DuplicateTxAllowed reports whether the
	// block may replace an unspent transaction with the same hash.
	Rules interface {
		PreValidateBlock(c *chain.Chain, header *model.ChainedHeader) error
		DuplicateTxAllowed(header *model.ChainedHeader) bool
		ValidateTransaction(header *model.ChainedHeader, tx model.LoadedTx) error
		ValidateTransactionScript(header *model.ChainedHeader, tx model.LoadedTx) error
		PostValidateBlock(c *chain.Chain, header *model.ChainedHeader, tally model.BlockTally) error
	}

	// TxLookup reads previously stored block transactions during rollback.
	TxLookup interface {
		TryGetTransaction(blockHash chainhash.Hash, txIndex int) (*wire.MsgTx, bool, error)
	}

	Metrics interface {
		ObserveAddBlock(err error, txCount int, started time.Time)
		ObserveRollbackBlock(err error, txCount int, started time.Time)
		SetTip(height int)
	}
)
