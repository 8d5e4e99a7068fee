// Package export writes chain-state snapshots to Parquet files.
package export

import (
	"context"
	"encoding/hex"
	"fmt"
	"iter"
	"time"

	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/chain"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
	"go.uber.org/zap"
)

const (
	writerParallelism = 4
	progressEvery     = 100_000
)

// Snapshot is the read side of a chain-state snapshot. It must serve
// TryGetUnspentTxOutput while ReadUnspentTransactions is iterating, so it
// needs at least two cursors.
type Snapshot interface {
	Chain() *chain.Chain
	ReadUnspentTransactions(ctx context.Context) iter.Seq2[model.UnspentTx, error]
	TryGetUnspentTxOutput(ctx context.Context, outPoint wire.OutPoint) (*wire.TxOut, bool, error)
}

// UnspentOutputRow is one unspent output in the Parquet file.
type UnspentOutputRow struct {
	TxHash      string `parquet:"name=tx_hash, type=BYTE_ARRAY, convertedtype=UTF8"`
	Vout        int64  `parquet:"name=vout, type=INT64"`
	Value       int64  `parquet:"name=value, type=INT64"`
	PkScript    string `parquet:"name=pk_script, type=BYTE_ARRAY, convertedtype=UTF8"`
	BlockHeight int64  `parquet:"name=block_height, type=INT64"`
	TxIndex     int64  `parquet:"name=tx_index, type=INT64"`
}

// Summary describes a finished export.
type Summary struct {
	Height  int
	Outputs int
	Value   int64
}

// WriteUnspentOutputs writes every unspent output of snapshot to file. The
// file is not closed.
func WriteUnspentOutputs(ctx context.Context, snapshot Snapshot, file source.ParquetFile, logger *zap.Logger) (Summary, error) {
	pw, err := writer.NewParquetWriter(file, new(UnspentOutputRow), writerParallelism)
	if err != nil {
		return Summary{}, fmt.Errorf("create parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	summary := Summary{Height: snapshot.Chain().Height()}
	started := time.Now()
	for u, err := range snapshot.ReadUnspentTransactions(ctx) {
		if err != nil {
			return summary, fmt.Errorf("read unspent transactions: %w", err)
		}
		for i := range u.OutputStates.Len() {
			if u.OutputStates.Get(i) != model.Unspent {
				continue
			}
			op := wire.OutPoint{Hash: u.TxHash, Index: uint32(i)}
			out, ok, err := snapshot.TryGetUnspentTxOutput(ctx, op)
			if err != nil {
				return summary, fmt.Errorf("read output %s: %w", op, err)
			}
			if !ok {
				return summary, fmt.Errorf("unspent output %s not stored", op)
			}
			err = pw.Write(UnspentOutputRow{
				TxHash:      u.TxHash.String(),
				Vout:        int64(i),
				Value:       out.Value,
				PkScript:    hex.EncodeToString(out.PkScript),
				BlockHeight: int64(u.BlockHeight),
				TxIndex:     int64(u.TxIndex),
			})
			if err != nil {
				return summary, fmt.Errorf("write output %s: %w", op, err)
			}
			summary.Outputs++
			summary.Value += out.Value
			if summary.Outputs%progressEvery == 0 {
				logger.Info("export progress", zap.Int("outputs", summary.Outputs), zap.Duration("elapsed", time.Since(started)))
			}
		}
	}

	if err := pw.WriteStop(); err != nil {
		return summary, fmt.Errorf("finish parquet file: %w", err)
	}
	return summary, nil
}
