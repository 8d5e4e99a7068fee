package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-node/pkg/safe"
)

// HashKeySize is the length of an encoded hash key.
const HashKeySize = chainhash.HashSize

// HashKey encodes a hash as a big-endian number. chainhash stores hashes
// little-endian, so the bytes are reversed.
func HashKey(h chainhash.Hash) []byte {
	key := make([]byte, HashKeySize)
	for i := 0; i < HashKeySize; i++ {
		key[i] = h[HashKeySize-1-i]
	}
	return key
}

// HashFromKey decodes a key built by HashKey.
func HashFromKey(key []byte) (chainhash.Hash, error) {
	var h chainhash.Hash
	if len(key) < HashKeySize {
		return h, fmt.Errorf("hash key: %d bytes", len(key))
	}
	for i := 0; i < HashKeySize; i++ {
		h[i] = key[HashKeySize-1-i]
	}
	return h, nil
}

// HeightKey encodes a block height as 4 big-endian bytes.
func HeightKey(height int) ([]byte, error) {
	u, err := safe.Uint32(height)
	if err != nil {
		return nil, fmt.Errorf("height key: %w", err)
	}
	key := make([]byte, 4)
	binary.BigEndian.PutUint32(key, u)
	return key, nil
}

// HeightFromKey decodes a key built by HeightKey.
func HeightFromKey(key []byte) (int, error) {
	if len(key) != 4 {
		return 0, fmt.Errorf("height key: %d bytes", len(key))
	}
	return int(binary.BigEndian.Uint32(key)), nil
}

// OutPointKey encodes an outpoint as hash key followed by the big-endian index.
func OutPointKey(op wire.OutPoint) []byte {
	key := make([]byte, HashKeySize+4)
	copy(key, HashKey(op.Hash))
	binary.BigEndian.PutUint32(key[HashKeySize:], op.Index)
	return key
}

// BlockTxKey encodes a (block hash, tx index) position.
func BlockTxKey(blockHash chainhash.Hash, index int) ([]byte, error) {
	u, err := safe.Uint32(index)
	if err != nil {
		return nil, fmt.Errorf("block tx key: %w", err)
	}
	key := make([]byte, HashKeySize+4)
	copy(key, HashKey(blockHash))
	binary.BigEndian.PutUint32(key[HashKeySize:], u)
	return key, nil
}

// BlockTxIndexFromKey extracts the tx index from a key built by BlockTxKey.
func BlockTxIndexFromKey(key []byte) (int, error) {
	if len(key) != HashKeySize+4 {
		return 0, fmt.Errorf("block tx key: %d bytes", len(key))
	}
	return int(binary.BigEndian.Uint32(key[HashKeySize:])), nil
}
