package chainstate

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

var (
	ErrMerkleRootMismatch = errors.New("merkle root mismatch")
	ErrMissingPrevOutput  = errors.New("previous output not found")
	ErrDoubleSpend        = errors.New("previous output already spent")
	ErrDuplicateTx        = errors.New("transaction hash already unspent")
	// ErrStateMismatch means the stored chain tip disagrees with the
	// builder's chain. It is not recoverable without operator action.
	ErrStateMismatch = errors.New("chain state does not match chain")
	// ErrReplayLogMissing means a block's spent or unminted log is gone, so
	// the block cannot be rolled back.
	ErrReplayLogMissing = errors.New("replay log missing")
)

// ValidationError reports a block that breaks consensus rules. The block
// should be marked invalid.
type ValidationError struct {
	BlockHash chainhash.Hash
	Err       error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("block %s invalid: %v", e.BlockHash, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(blockHash chainhash.Hash, err error) error {
	return &ValidationError{BlockHash: blockHash, Err: err}
}

// MissingDataError reports that a block's transactions are not stored
// locally. The block should be requested and the operation retried.
type MissingDataError struct {
	BlockHash chainhash.Hash
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("block %s transactions not available", e.BlockHash)
}
