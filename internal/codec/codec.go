// Package codec encodes chain-state records to the fixed binary layouts used
// on disk. Protocol fields are little-endian; keys are big-endian so that
// byte-wise ordering matches numeric ordering.
package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-node/pkg/safe"
)

const (
	pver = 0

	maxScriptSize = wire.MaxBlockPayload
	maxTxSize     = wire.MaxBlockPayload
	maxWorkSize   = 64
	maxListLength = wire.MaxBlockPayload
)

var (
	byteOrder = binary.LittleEndian

	// ErrTrailingBytes is returned when a value decodes without consuming its input.
	ErrTrailingBytes = errors.New("trailing bytes after value")
)

func writeUint32(w io.Writer, v int, field string) error {
	u, err := safe.Uint32(v)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	var scratch [4]byte
	byteOrder.PutUint32(scratch[:], u)
	_, err = w.Write(scratch[:])
	return err
}

func readUint32(r io.Reader) (int, error) {
	var scratch [4]byte
	if _, err := io.ReadFull(r, scratch[:]); err != nil {
		return 0, err
	}
	return int(byteOrder.Uint32(scratch[:])), nil
}

func writeInt64(w io.Writer, v int64) error {
	var scratch [8]byte
	byteOrder.PutUint64(scratch[:], uint64(v))
	_, err := w.Write(scratch[:])
	return err
}

func readInt64(r io.Reader) (int64, error) {
	var scratch [8]byte
	if _, err := io.ReadFull(r, scratch[:]); err != nil {
		return 0, err
	}
	return int64(byteOrder.Uint64(scratch[:])), nil
}

func writeHash(w io.Writer, h chainhash.Hash) error {
	_, err := w.Write(h[:])
	return err
}

func readHash(r io.Reader) (chainhash.Hash, error) {
	var h chainhash.Hash
	_, err := io.ReadFull(r, h[:])
	return h, err
}

func writeCount(w io.Writer, n int) error {
	u, err := safe.Uint64(n)
	if err != nil {
		return err
	}
	return wire.WriteVarInt(w, pver, u)
}

func readCount(r io.Reader, max int) (int, error) {
	n, err := wire.ReadVarInt(r, pver)
	if err != nil {
		return 0, err
	}
	length, err := safe.Int(n)
	if err != nil || length > max {
		return 0, fmt.Errorf("list length %d exceeds limit %d", n, max)
	}
	return length, nil
}

// decodeAll runs decode over b and rejects trailing input.
func decodeAll[T any](b []byte, decode func(io.Reader) (T, error)) (T, error) {
	r := bytes.NewReader(b)
	v, err := decode(r)
	if err != nil {
		return v, err
	}
	if r.Len() != 0 {
		var zero T
		return zero, ErrTrailingBytes
	}
	return v, nil
}

func encodeToBytes[T any](v T, encode func(io.Writer, T) error) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeChainedHeader writes the 80-byte wire header followed by height,
// total work (big-endian magnitude, varint length) and date seen (unix nanos).
func EncodeChainedHeader(w io.Writer, h *model.ChainedHeader) error {
	if err := h.Header.Serialize(w); err != nil {
		return fmt.Errorf("header: %w", err)
	}
	if err := writeUint32(w, h.Height, "height"); err != nil {
		return err
	}
	if err := wire.WriteVarBytes(w, pver, h.TotalWork.Bytes()); err != nil {
		return fmt.Errorf("total work: %w", err)
	}
	return writeInt64(w, h.DateSeen.UnixNano())
}

// DecodeChainedHeader reads a header written by EncodeChainedHeader.
func DecodeChainedHeader(r io.Reader) (*model.ChainedHeader, error) {
	var header wire.BlockHeader
	if err := header.Deserialize(r); err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	height, err := readUint32(r)
	if err != nil {
		return nil, fmt.Errorf("height: %w", err)
	}
	work, err := wire.ReadVarBytes(r, pver, maxWorkSize, "totalWork")
	if err != nil {
		return nil, fmt.Errorf("total work: %w", err)
	}
	nanos, err := readInt64(r)
	if err != nil {
		return nil, fmt.Errorf("date seen: %w", err)
	}
	return model.RestoreChainedHeader(header, height, new(big.Int).SetBytes(work), time.Unix(0, nanos))
}

// ChainedHeaderBytes encodes h.
func ChainedHeaderBytes(h *model.ChainedHeader) ([]byte, error) {
	return encodeToBytes(h, EncodeChainedHeader)
}

// ChainedHeaderFromBytes decodes a chained header.
func ChainedHeaderFromBytes(b []byte) (*model.ChainedHeader, error) {
	return decodeAll(b, DecodeChainedHeader)
}

// EncodeOutputStates writes the output count followed by the packed bitset.
// Bit polarity is preserved exactly: a set bit is an unspent output.
func EncodeOutputStates(w io.Writer, s model.OutputStates) error {
	if err := writeCount(w, s.Len()); err != nil {
		return fmt.Errorf("output count: %w", err)
	}
	_, err := w.Write(s.Bytes())
	return err
}

// DecodeOutputStates reads a bitset written by EncodeOutputStates.
func DecodeOutputStates(r io.Reader) (model.OutputStates, error) {
	n, err := readCount(r, maxListLength)
	if err != nil {
		return model.OutputStates{}, fmt.Errorf("output count: %w", err)
	}
	packed := make([]byte, (n+7)/8)
	if _, err := io.ReadFull(r, packed); err != nil {
		return model.OutputStates{}, fmt.Errorf("output states: %w", err)
	}
	return model.OutputStatesFromBytes(n, packed)
}

// EncodeUnspentTx writes tx hash, confirming height, tx index and output states.
func EncodeUnspentTx(w io.Writer, u model.UnspentTx) error {
	if err := writeHash(w, u.TxHash); err != nil {
		return err
	}
	if err := writeUint32(w, u.BlockHeight, "block height"); err != nil {
		return err
	}
	if err := writeUint32(w, u.TxIndex, "tx index"); err != nil {
		return err
	}
	return EncodeOutputStates(w, u.OutputStates)
}

// DecodeUnspentTx reads an entry written by EncodeUnspentTx.
func DecodeUnspentTx(r io.Reader) (model.UnspentTx, error) {
	var (
		u   model.UnspentTx
		err error
	)
	if u.TxHash, err = readHash(r); err != nil {
		return u, fmt.Errorf("tx hash: %w", err)
	}
	if u.BlockHeight, err = readUint32(r); err != nil {
		return u, fmt.Errorf("block height: %w", err)
	}
	if u.TxIndex, err = readUint32(r); err != nil {
		return u, fmt.Errorf("tx index: %w", err)
	}
	if u.OutputStates, err = DecodeOutputStates(r); err != nil {
		return u, err
	}
	return u, nil
}

// UnspentTxBytes encodes u.
func UnspentTxBytes(u model.UnspentTx) ([]byte, error) {
	return encodeToBytes(u, EncodeUnspentTx)
}

// UnspentTxFromBytes decodes an unspent tx.
func UnspentTxFromBytes(b []byte) (model.UnspentTx, error) {
	return decodeAll(b, DecodeUnspentTx)
}

func encodeSpentTx(w io.Writer, s model.SpentTx) error {
	if err := writeHash(w, s.TxHash); err != nil {
		return err
	}
	if err := writeUint32(w, s.ConfirmedBlockHeight, "confirmed height"); err != nil {
		return err
	}
	if err := writeUint32(w, s.TxIndex, "tx index"); err != nil {
		return err
	}
	return writeCount(w, s.OutputCount)
}

func decodeSpentTx(r io.Reader) (model.SpentTx, error) {
	var (
		s   model.SpentTx
		err error
	)
	if s.TxHash, err = readHash(r); err != nil {
		return s, err
	}
	if s.ConfirmedBlockHeight, err = readUint32(r); err != nil {
		return s, err
	}
	if s.TxIndex, err = readUint32(r); err != nil {
		return s, err
	}
	if s.OutputCount, err = readCount(r, maxListLength); err != nil {
		return s, err
	}
	return s, nil
}

// EncodeBlockSpentTxes writes a varint count followed by each spent tx.
func EncodeBlockSpentTxes(w io.Writer, txes model.BlockSpentTxes) error {
	if err := writeCount(w, len(txes)); err != nil {
		return err
	}
	for i, s := range txes {
		if err := encodeSpentTx(w, s); err != nil {
			return fmt.Errorf("spent tx %d: %w", i, err)
		}
	}
	return nil
}

// DecodeBlockSpentTxes reads a log written by EncodeBlockSpentTxes.
func DecodeBlockSpentTxes(r io.Reader) (model.BlockSpentTxes, error) {
	n, err := readCount(r, maxListLength)
	if err != nil {
		return nil, err
	}
	txes := make(model.BlockSpentTxes, 0, n)
	for i := 0; i < n; i++ {
		s, err := decodeSpentTx(r)
		if err != nil {
			return nil, fmt.Errorf("spent tx %d: %w", i, err)
		}
		txes = append(txes, s)
	}
	return txes, nil
}

// BlockSpentTxesBytes encodes txes.
func BlockSpentTxesBytes(txes model.BlockSpentTxes) ([]byte, error) {
	return encodeToBytes(txes, EncodeBlockSpentTxes)
}

// BlockSpentTxesFromBytes decodes a spent-tx log.
func BlockSpentTxesFromBytes(b []byte) (model.BlockSpentTxes, error) {
	return decodeAll(b, DecodeBlockSpentTxes)
}

func encodeUnmintedTx(w io.Writer, u model.UnmintedTx) error {
	if err := writeHash(w, u.TxHash); err != nil {
		return err
	}
	if err := writeCount(w, len(u.PrevOutputTxKeys)); err != nil {
		return err
	}
	for _, key := range u.PrevOutputTxKeys {
		if err := writeHash(w, key.BlockHash); err != nil {
			return err
		}
		if err := writeUint32(w, key.TxIndex, "tx index"); err != nil {
			return err
		}
	}
	if u.Overwritten == nil {
		return writeCount(w, 0)
	}
	if err := writeCount(w, 1); err != nil {
		return err
	}
	return EncodeUnspentTx(w, *u.Overwritten)
}

func decodeUnmintedTx(r io.Reader) (model.UnmintedTx, error) {
	var (
		u   model.UnmintedTx
		err error
	)
	if u.TxHash, err = readHash(r); err != nil {
		return u, err
	}
	n, err := readCount(r, maxListLength)
	if err != nil {
		return u, err
	}
	u.PrevOutputTxKeys = make([]model.TxLookupKey, 0, n)
	for i := 0; i < n; i++ {
		var key model.TxLookupKey
		if key.BlockHash, err = readHash(r); err != nil {
			return u, err
		}
		if key.TxIndex, err = readUint32(r); err != nil {
			return u, err
		}
		u.PrevOutputTxKeys = append(u.PrevOutputTxKeys, key)
	}
	overwritten, err := readCount(r, 1)
	if err != nil {
		return u, fmt.Errorf("overwritten: %w", err)
	}
	if overwritten == 1 {
		prev, err := DecodeUnspentTx(r)
		if err != nil {
			return u, fmt.Errorf("overwritten: %w", err)
		}
		u.Overwritten = &prev
	}
	return u, nil
}

// EncodeBlockUnmintedTxes writes a varint count followed by each unminted tx.
func EncodeBlockUnmintedTxes(w io.Writer, txes model.BlockUnmintedTxes) error {
	if err := writeCount(w, len(txes)); err != nil {
		return err
	}
	for i, u := range txes {
		if err := encodeUnmintedTx(w, u); err != nil {
			return fmt.Errorf("unminted tx %d: %w", i, err)
		}
	}
	return nil
}

// DecodeBlockUnmintedTxes reads a log written by EncodeBlockUnmintedTxes.
func DecodeBlockUnmintedTxes(r io.Reader) (model.BlockUnmintedTxes, error) {
	n, err := readCount(r, maxListLength)
	if err != nil {
		return nil, err
	}
	txes := make(model.BlockUnmintedTxes, 0, n)
	for i := 0; i < n; i++ {
		u, err := decodeUnmintedTx(r)
		if err != nil {
			return nil, fmt.Errorf("unminted tx %d: %w", i, err)
		}
		txes = append(txes, u)
	}
	return txes, nil
}

// BlockUnmintedTxesBytes encodes txes.
func BlockUnmintedTxesBytes(txes model.BlockUnmintedTxes) ([]byte, error) {
	return encodeToBytes(txes, EncodeBlockUnmintedTxes)
}

// BlockUnmintedTxesFromBytes decodes an unminted-tx log.
func BlockUnmintedTxesFromBytes(b []byte) (model.BlockUnmintedTxes, error) {
	return decodeAll(b, DecodeBlockUnmintedTxes)
}

// EncodeTxOut writes value and script in wire layout.
func EncodeTxOut(w io.Writer, out *wire.TxOut) error {
	return wire.WriteTxOut(w, pver, 0, out)
}

// DecodeTxOut reads an output written by EncodeTxOut.
func DecodeTxOut(r io.Reader) (*wire.TxOut, error) {
	value, err := readInt64(r)
	if err != nil {
		return nil, fmt.Errorf("value: %w", err)
	}
	script, err := wire.ReadVarBytes(r, pver, maxScriptSize, "pkScript")
	if err != nil {
		return nil, fmt.Errorf("pk script: %w", err)
	}
	return wire.NewTxOut(value, script), nil
}

// TxOutBytes encodes out.
func TxOutBytes(out *wire.TxOut) ([]byte, error) {
	return encodeToBytes(out, EncodeTxOut)
}

// TxOutFromBytes decodes an output.
func TxOutFromBytes(b []byte) (*wire.TxOut, error) {
	return decodeAll(b, DecodeTxOut)
}

// EncodeBlockTx writes a Merkle node; unpruned leaves carry their tx bytes.
func EncodeBlockTx(w io.Writer, tx model.BlockTx) error {
	if err := writeUint32(w, tx.Index, "index"); err != nil {
		return err
	}
	if tx.Depth < 0 || tx.Depth > model.MaxMerkleDepth {
		return fmt.Errorf("depth %d out of range", tx.Depth)
	}
	pruned := byte(0)
	if tx.Pruned {
		pruned = 1
	}
	if _, err := w.Write([]byte{byte(tx.Depth), pruned}); err != nil {
		return err
	}
	if err := writeHash(w, tx.Hash); err != nil {
		return err
	}
	if tx.Pruned {
		return nil
	}
	return wire.WriteVarBytes(w, pver, tx.TxBytes)
}

// DecodeBlockTx reads a node written by EncodeBlockTx and validates its structure.
func DecodeBlockTx(r io.Reader) (model.BlockTx, error) {
	index, err := readUint32(r)
	if err != nil {
		return model.BlockTx{}, fmt.Errorf("index: %w", err)
	}
	var flags [2]byte
	if _, err := io.ReadFull(r, flags[:]); err != nil {
		return model.BlockTx{}, fmt.Errorf("depth: %w", err)
	}
	hash, err := readHash(r)
	if err != nil {
		return model.BlockTx{}, fmt.Errorf("hash: %w", err)
	}
	node, err := model.NewMerkleTreeNode(index, int(flags[0]), hash, flags[1] != 0)
	if err != nil {
		return model.BlockTx{}, err
	}
	tx := model.BlockTx{MerkleTreeNode: node}
	if !node.Pruned {
		if tx.TxBytes, err = wire.ReadVarBytes(r, pver, maxTxSize, "txBytes"); err != nil {
			return model.BlockTx{}, fmt.Errorf("tx bytes: %w", err)
		}
	}
	return tx, nil
}

// BlockTxBytes encodes tx.
func BlockTxBytes(tx model.BlockTx) ([]byte, error) {
	return encodeToBytes(tx, EncodeBlockTx)
}

// BlockTxFromBytes decodes a block tx node.
func BlockTxFromBytes(b []byte) (model.BlockTx, error) {
	return decodeAll(b, DecodeBlockTx)
}

// Int64Bytes encodes a global counter.
func Int64Bytes(v int64) []byte {
	var scratch [8]byte
	byteOrder.PutUint64(scratch[:], uint64(v))
	return scratch[:]
}

// Int64FromBytes decodes a global counter.
func Int64FromBytes(b []byte) (int64, error) {
	if len(b) != 8 {
		return 0, fmt.Errorf("counter: %d bytes, want 8", len(b))
	}
	return int64(byteOrder.Uint64(b)), nil
}
