// Package kvstore implements the chain-state cursor over any ordered,
// transactional key-value engine. Engines only provide a KV adapter.
package kvstore

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

import (
	"context"
)

// Table is one logical chain-state table.
type Table byte

const (
	Globals Table = iota + 1
	Headers
	UnspentTxes
	UnspentTxOutputs
	BlockSpentTxes
	BlockUnmintedTxes
)

// Tables lists every table in key-prefix order.
var Tables = []Table{Globals, Headers, UnspentTxes, UnspentTxOutputs, BlockSpentTxes, BlockUnmintedTxes}

func (t Table) String() string {
	switch t {
	case Globals:
		return "globals"
	case Headers:
		return "headers"
	case UnspentTxes:
		return "unspentTxes"
	case UnspentTxOutputs:
		return "unspentTxOutputs"
	case BlockSpentTxes:
		return "blockSpentTxes"
	case BlockUnmintedTxes:
		return "blockUnmintedTxes"
	default:
		return "unknown"
	}
}

// KV is an ordered key-value engine with snapshot transactions. Write
// transactions must be serialized by the engine.
type KV interface {
	Begin(ctx context.Context, readOnly bool) (Tx, error)
	Flush() error
	Defragment() error
	Close() error
}

// Tx is one engine transaction. Values passed to callbacks and returned by
// Get are only valid until the transaction ends.
type Tx interface {
	Get(table Table, key []byte) ([]byte, bool, error)
	Put(table Table, key, value []byte) error
	Delete(table Table, key []byte) error
	// ForEach visits every entry of table in key order until fn returns an error.
	ForEach(table Table, fn func(key, value []byte) error) error
	Commit() error
	Rollback() error
}
