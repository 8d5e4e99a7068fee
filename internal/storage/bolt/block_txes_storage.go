package bolt

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/codec"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/merkle"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/storage"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

var (
	blocksBucket   = []byte("blocks")
	blockTxsBucket = []byte("blockTxes")
)

// BlockTxesStorage stores each block's Merkle nodes under
// blockHash||index keys so a bbolt cursor walks them in tree order.
type BlockTxesStorage struct {
	db     *bbolt.DB
	logger *zap.Logger
}

var _ storage.BlockTxesStorage = (*BlockTxesStorage)(nil)

// OpenBlockTxes opens or creates block transaction storage at path.
func OpenBlockTxes(path string, opts Options, logger *zap.Logger) (*BlockTxesStorage, error) {
	db, err := openDB(path, opts, blocksBucket, blockTxsBucket)
	if err != nil {
		return nil, err
	}
	return &BlockTxesStorage{
		db:     db,
		logger: logger.Named("boltBlockTxes").With(zap.String("path", path)),
	}, nil
}

func (s *BlockTxesStorage) Close() error {
	return s.db.Close()
}

func (s *BlockTxesStorage) ContainsBlock(blockHash chainhash.Hash) (bool, error) {
	var ok bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		ok = tx.Bucket(blocksBucket).Get(codec.HashKey(blockHash)) != nil
		return nil
	})
	return ok, err
}

func (s *BlockTxesStorage) TryAddBlockTransactions(blockHash chainhash.Hash, txes []*wire.MsgTx) (bool, error) {
	blockKey := codec.HashKey(blockHash)
	var added bool
	err := s.db.Update(func(tx *bbolt.Tx) error {
		blocks := tx.Bucket(blocksBucket)
		if blocks.Get(blockKey) != nil {
			return nil
		}
		nodes := tx.Bucket(blockTxsBucket)
		for i, msgTx := range txes {
			node, err := model.NewBlockTx(i, msgTx)
			if err != nil {
				return err
			}
			if err := putNode(nodes, blockHash, node); err != nil {
				return err
			}
		}
		added = true
		return blocks.Put(blockKey, codec.Int64Bytes(int64(len(txes))))
	})
	if err != nil {
		return false, fmt.Errorf("add block %s: %w", blockHash, err)
	}
	return added, nil
}

func putNode(bucket *bbolt.Bucket, blockHash chainhash.Hash, node model.BlockTx) error {
	key, err := codec.BlockTxKey(blockHash, node.Index)
	if err != nil {
		return err
	}
	value, err := codec.BlockTxBytes(node)
	if err != nil {
		return err
	}
	return bucket.Put(key, value)
}

func (s *BlockTxesStorage) TryGetTransaction(blockHash chainhash.Hash, txIndex int) (*wire.MsgTx, bool, error) {
	key, err := codec.BlockTxKey(blockHash, txIndex)
	if err != nil {
		return nil, false, err
	}
	var msgTx *wire.MsgTx
	err = s.db.View(func(tx *bbolt.Tx) error {
		value := tx.Bucket(blockTxsBucket).Get(key)
		if value == nil {
			return nil
		}
		node, err := codec.BlockTxFromBytes(value)
		if err != nil {
			return err
		}
		if node.Pruned {
			return nil
		}
		msgTx, err = node.Tx()
		return err
	})
	if err != nil {
		return nil, false, fmt.Errorf("get block %s tx %d: %w", blockHash, txIndex, err)
	}
	return msgTx, msgTx != nil, nil
}

func (s *BlockTxesStorage) ReadBlockTransactions(blockHash chainhash.Hash) ([]model.BlockTx, bool, error) {
	blockKey := codec.HashKey(blockHash)
	var (
		nodes []model.BlockTx
		found bool
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket(blocksBucket).Get(blockKey) == nil {
			return nil
		}
		found = true
		c := tx.Bucket(blockTxsBucket).Cursor()
		for k, v := c.Seek(blockKey); k != nil && bytes.HasPrefix(k, blockKey); k, v = c.Next() {
			node, err := codec.BlockTxFromBytes(v)
			if err != nil {
				return err
			}
			nodes = append(nodes, node)
		}
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("read block %s: %w", blockHash, err)
	}
	return nodes, found, nil
}

func (s *BlockTxesStorage) TryRemoveBlockTransactions(blockHash chainhash.Hash) (bool, error) {
	blockKey := codec.HashKey(blockHash)
	var removed bool
	err := s.db.Update(func(tx *bbolt.Tx) error {
		blocks := tx.Bucket(blocksBucket)
		if blocks.Get(blockKey) == nil {
			return nil
		}
		nodes := tx.Bucket(blockTxsBucket)
		var keys [][]byte
		c := nodes.Cursor()
		for k, _ := c.Seek(blockKey); k != nil && bytes.HasPrefix(k, blockKey); k, _ = c.Next() {
			keys = append(keys, bytes.Clone(k))
		}
		for _, k := range keys {
			if err := nodes.Delete(k); err != nil {
				return err
			}
		}
		removed = true
		return blocks.Delete(blockKey)
	})
	if err != nil {
		return false, fmt.Errorf("remove block %s: %w", blockHash, err)
	}
	return removed, nil
}

func (s *BlockTxesStorage) PruneElements(blockHash chainhash.Hash, txIndices []int) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		if tx.Bucket(blocksBucket).Get(codec.HashKey(blockHash)) == nil {
			return nil
		}
		cursor := newPruningCursor(tx.Bucket(blockTxsBucket), blockHash)
		for _, index := range txIndices {
			if err := merkle.PruneNode(cursor, index); err != nil {
				return fmt.Errorf("tx %d: %w", index, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("prune block %s: %w", blockHash, err)
	}
	return nil
}

func (s *BlockTxesStorage) BlockCount() (int, error) {
	var n int
	err := s.db.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket(blocksBucket).Stats().KeyN
		return nil
	})
	return n, err
}

func (s *BlockTxesStorage) Flush() error {
	return s.db.Sync()
}

// Defragment only logs free-page stats and reclaims nothing, like
// KV.Defragment.
func (s *BlockTxesStorage) Defragment() error {
	stats := s.db.Stats()
	s.logger.Info("bolt free space",
		zap.Int("freePages", stats.FreePageN),
		zap.Int("freeBytes", stats.FreeAlloc),
	)
	return nil
}

var errNoCurrentNode = errors.New("pruning cursor has no current node")

// pruningCursor walks one block's nodes inside a write transaction. bbolt
// cursors are invalidated by writes, so every move seeks again from the
// current key.
type pruningCursor struct {
	bucket    *bbolt.Bucket
	blockHash chainhash.Hash
	prefix    []byte
	key       []byte
	deleted   bool
}

var _ merkle.PruningCursor = (*pruningCursor)(nil)

func newPruningCursor(bucket *bbolt.Bucket, blockHash chainhash.Hash) *pruningCursor {
	return &pruningCursor{bucket: bucket, blockHash: blockHash, prefix: codec.HashKey(blockHash)}
}

func (c *pruningCursor) TryMoveToIndex(index int) (bool, error) {
	key, err := codec.BlockTxKey(c.blockHash, index)
	if err != nil {
		return false, err
	}
	if c.bucket.Get(key) == nil {
		return false, nil
	}
	c.key, c.deleted = key, false
	return true, nil
}

func (c *pruningCursor) moveTo(k []byte) bool {
	if k == nil || !bytes.HasPrefix(k, c.prefix) {
		return false
	}
	c.key, c.deleted = bytes.Clone(k), false
	return true
}

func (c *pruningCursor) TryMoveLeft() (bool, error) {
	if c.key == nil {
		return false, nil
	}
	cur := c.bucket.Cursor()
	k, _ := cur.Seek(c.key)
	if k == nil {
		k, _ = cur.Last()
	} else {
		k, _ = cur.Prev()
	}
	return c.moveTo(k), nil
}

func (c *pruningCursor) TryMoveRight() (bool, error) {
	if c.key == nil {
		return false, nil
	}
	cur := c.bucket.Cursor()
	k, _ := cur.Seek(c.key)
	if !c.deleted && k != nil {
		k, _ = cur.Next()
	}
	return c.moveTo(k), nil
}

func (c *pruningCursor) ReadNode() (model.MerkleTreeNode, error) {
	if c.key == nil || c.deleted {
		return model.MerkleTreeNode{}, errNoCurrentNode
	}
	value := c.bucket.Get(c.key)
	if value == nil {
		return model.MerkleTreeNode{}, errNoCurrentNode
	}
	node, err := codec.BlockTxFromBytes(value)
	if err != nil {
		return model.MerkleTreeNode{}, err
	}
	return node.MerkleTreeNode, nil
}

func (c *pruningCursor) WriteNode(node model.MerkleTreeNode) error {
	if c.key == nil || c.deleted {
		return errNoCurrentNode
	}
	if !node.Pruned {
		panic(fmt.Sprintf("bolt: writing unpruned merkle node %d/%d", node.Index, node.Depth))
	}
	index, err := codec.BlockTxIndexFromKey(c.key)
	if err != nil {
		return err
	}
	if index != node.Index {
		panic(fmt.Sprintf("bolt: writing merkle node %d at position %d", node.Index, index))
	}
	return putNode(c.bucket, c.blockHash, model.BlockTx{MerkleTreeNode: node})
}

func (c *pruningCursor) DeleteNode() error {
	if c.key == nil || c.deleted {
		return errNoCurrentNode
	}
	if err := c.bucket.Delete(c.key); err != nil {
		return err
	}
	c.deleted = true
	return nil
}
