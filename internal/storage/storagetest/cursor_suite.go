package storagetest

import (
	"context"
	"testing"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/storage"
	"github.com/stretchr/testify/suite"
)

// CursorSuite checks a backend against the ChainStateCursor contract.
type CursorSuite struct {
	suite.Suite

	// NewStorage returns a fresh, empty store.
	NewStorage func(t *testing.T) storage.ChainStateStorage

	store   storage.ChainStateStorage
	cursors []storage.ChainStateCursor
}

func (s *CursorSuite) SetupTest() {
	s.store = s.NewStorage(s.T())
	s.cursors = nil
}

func (s *CursorSuite) TearDownTest() {
	for _, c := range s.cursors {
		if c.InTransaction() {
			s.NoError(c.RollbackTransaction())
		}
		s.NoError(c.Close())
	}
	s.NoError(s.store.Close())
}

func (s *CursorSuite) cursor() storage.ChainStateCursor {
	c, err := s.store.OpenCursor()
	s.Require().NoError(err)
	s.cursors = append(s.cursors, c)
	return c
}

func (s *CursorSuite) begin(c storage.ChainStateCursor, readOnly bool) {
	s.Require().NoError(c.BeginTransaction(context.Background(), readOnly))
}

func (s *CursorSuite) TestTransactionStateMachine() {
	c := s.cursor()

	_, err := c.ChainTip()
	s.ErrorIs(err, storage.ErrNotInTransaction)
	_, err = c.ContainsUnspentTx(chainhash.Hash{})
	s.ErrorIs(err, storage.ErrNotInTransaction)
	s.ErrorIs(c.CommitTransaction(), storage.ErrNotInTransaction)
	s.ErrorIs(c.RollbackTransaction(), storage.ErrNotInTransaction)
	s.ErrorIs(c.SetUnspentTxCount(1), storage.ErrNotInTransaction)
	s.NotPanics(func() {
		_, err = c.TryAddUnspentTx(unspentTx(1, 1))
	})
	s.ErrorIs(err, storage.ErrInvalidOperation)
	s.False(c.InTransaction())

	s.begin(c, true)
	s.True(c.InTransaction())
	s.ErrorIs(c.BeginTransaction(context.Background(), false), storage.ErrInTransaction)
	s.ErrorIs(c.SetUnspentTxCount(1), storage.ErrReadOnlyTransaction)
	_, err = c.TryAddUnspentTx(unspentTx(1, 1))
	s.ErrorIs(err, storage.ErrReadOnlyTransaction)
	_, err = c.TryRemoveHeader(chainhash.Hash{})
	s.ErrorIs(err, storage.ErrReadOnlyTransaction)
	s.ErrorIs(err, storage.ErrInvalidOperation)
	s.Require().NoError(c.CommitTransaction())
	s.False(c.InTransaction())

	s.begin(c, false)
	s.Require().NoError(c.SetUnspentTxCount(1))
	s.Require().NoError(c.RollbackTransaction())
}

func (s *CursorSuite) TestScalars() {
	c := s.cursor()
	headers := Headers(2, 0)

	s.begin(c, true)
	tip, err := c.ChainTip()
	s.Require().NoError(err)
	s.Nil(tip)
	n, err := c.TotalTxCount()
	s.Require().NoError(err)
	s.Zero(n)
	s.Require().NoError(c.RollbackTransaction())

	s.begin(c, false)
	s.Require().NoError(c.SetChainTip(headers[1]))
	s.Require().NoError(c.SetUnspentTxCount(11))
	s.Require().NoError(c.SetUnspentOutputCount(12))
	s.Require().NoError(c.SetTotalTxCount(13))
	s.Require().NoError(c.SetTotalInputCount(14))
	s.Require().NoError(c.SetTotalOutputCount(15))
	s.Require().NoError(c.CommitTransaction())

	s.begin(c, true)
	defer func() { s.NoError(c.RollbackTransaction()) }()
	tip, err = c.ChainTip()
	s.Require().NoError(err)
	s.True(headers[1].Equal(tip))
	for want, get := range map[int]func() (int, error){
		11: c.UnspentTxCount,
		12: c.UnspentOutputCount,
		13: c.TotalTxCount,
		14: c.TotalInputCount,
		15: c.TotalOutputCount,
	} {
		got, err := get()
		s.Require().NoError(err)
		s.Equal(want, got)
	}
}

func (s *CursorSuite) TestHeaderRoundTrip() {
	var c storage.ChainStateCursor
	header := Headers(3, 1)[2]
	s.roundTripOn(&c,
		func() (bool, error) { return c.TryAddHeader(header) },
		func() (any, bool, error) {
			h, ok, err := c.TryGetHeader(header.Hash)
			if h != nil {
				s.True(header.Equal(h))
				return h.Hash, ok, err
			}
			return nil, ok, err
		},
		func() (bool, error) { return c.ContainsHeader(header.Hash) },
		func() (bool, error) { return c.TryRemoveHeader(header.Hash) },
		header.Hash,
	)
}

func (s *CursorSuite) TestUnspentTxRoundTrip() {
	var c storage.ChainStateCursor
	u := unspentTx(3, 9).SetOutputState(4, model.Spent)
	s.roundTripOn(&c,
		func() (bool, error) { return c.TryAddUnspentTx(u) },
		func() (any, bool, error) {
			got, ok, err := c.TryGetUnspentTx(u.TxHash)
			if ok {
				s.True(u.Equal(got))
			}
			return got.TxHash, ok, err
		},
		func() (bool, error) { return c.ContainsUnspentTx(u.TxHash) },
		func() (bool, error) { return c.TryRemoveUnspentTx(u.TxHash) },
		u.TxHash,
	)
}

func (s *CursorSuite) TestUnspentTxOutputRoundTrip() {
	var c storage.ChainStateCursor
	op := outPoint(4, 2)
	out := wire.NewTxOut(4200, []byte{0x00, 0x14, 0xaa})
	s.roundTripOn(&c,
		func() (bool, error) { return c.TryAddUnspentTxOutput(op, out) },
		func() (any, bool, error) {
			got, ok, err := c.TryGetUnspentTxOutput(op)
			return got, ok, err
		},
		func() (bool, error) { return c.ContainsUnspentTxOutput(op) },
		func() (bool, error) { return c.TryRemoveUnspentTxOutput(op) },
		out,
	)
}

func (s *CursorSuite) TestBlockSpentTxesRoundTrip() {
	var c storage.ChainStateCursor
	txes := spentTxes(5)
	s.roundTripOn(&c,
		func() (bool, error) { return c.TryAddBlockSpentTxes(42, txes) },
		func() (any, bool, error) {
			got, ok, err := c.TryGetBlockSpentTxes(42)
			return got, ok, err
		},
		func() (bool, error) { return c.ContainsBlockSpentTxes(42) },
		func() (bool, error) { return c.TryRemoveBlockSpentTxes(42) },
		txes,
	)
}

func (s *CursorSuite) TestBlockUnmintedTxesRoundTrip() {
	var c storage.ChainStateCursor
	hash := chainhash.Hash{6, 6}
	txes := unmintedTxes(6)
	s.roundTripOn(&c,
		func() (bool, error) { return c.TryAddBlockUnmintedTxes(hash, txes) },
		func() (any, bool, error) {
			got, ok, err := c.TryGetBlockUnmintedTxes(hash)
			return got, ok, err
		},
		func() (bool, error) { return c.ContainsBlockUnmintedTxes(hash) },
		func() (bool, error) { return c.TryRemoveBlockUnmintedTxes(hash) },
		txes,
	)
}

// roundTripOn binds *c to the cursor roundTrip opens.
func (s *CursorSuite) roundTripOn(
	c *storage.ChainStateCursor,
	add func() (bool, error),
	get func() (any, bool, error),
	contains func() (bool, error),
	remove func() (bool, error),
	want any,
) {
	*c = s.cursor()
	s.roundTripWith(*c, add, get, contains, remove, want)
}

// roundTripWith exercises add, duplicate add, get, remove and re-add of one entry.
func (s *CursorSuite) roundTripWith(
	c storage.ChainStateCursor,
	add func() (bool, error),
	get func() (any, bool, error),
	contains func() (bool, error),
	remove func() (bool, error),
	want any,
) {
	s.begin(c, false)

	ok, err := add()
	s.Require().NoError(err)
	s.True(ok, "first add")
	ok, err = add()
	s.Require().NoError(err)
	s.False(ok, "duplicate add")

	got, ok, err := get()
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal(want, got)
	ok, err = contains()
	s.Require().NoError(err)
	s.True(ok)

	ok, err = remove()
	s.Require().NoError(err)
	s.True(ok, "remove")
	_, ok, err = get()
	s.Require().NoError(err)
	s.False(ok, "get after remove")
	ok, err = contains()
	s.Require().NoError(err)
	s.False(ok)
	ok, err = remove()
	s.Require().NoError(err)
	s.False(ok, "second remove")

	ok, err = add()
	s.Require().NoError(err)
	s.True(ok, "re-add after remove")
	s.Require().NoError(c.CommitTransaction())

	s.begin(c, true)
	got, ok, err = get()
	s.Require().NoError(err)
	s.Require().True(ok, "committed value visible")
	s.Equal(want, got)
	s.Require().NoError(c.RollbackTransaction())
}

func (s *CursorSuite) TestTryUpdateUnspentTx() {
	c := s.cursor()
	u := unspentTx(7, 3)

	s.begin(c, false)
	ok, err := c.TryUpdateUnspentTx(u)
	s.Require().NoError(err)
	s.False(ok, "update of missing entry")

	ok, err = c.TryAddUnspentTx(u)
	s.Require().NoError(err)
	s.Require().True(ok)

	updated := u.SetOutputState(0, model.Spent)
	ok, err = c.TryUpdateUnspentTx(updated)
	s.Require().NoError(err)
	s.True(ok)
	s.Require().NoError(c.CommitTransaction())

	s.begin(c, true)
	got, ok, err := c.TryGetUnspentTx(u.TxHash)
	s.Require().NoError(err)
	s.Require().True(ok)
	s.True(updated.Equal(got))
	s.Equal(model.Spent, got.OutputStates.Get(0))
	s.Equal(model.Unspent, got.OutputStates.Get(1))
	s.Require().NoError(c.RollbackTransaction())
}

func (s *CursorSuite) TestReadUnspentTransactions() {
	c := s.cursor()
	want := map[chainhash.Hash]model.UnspentTx{}

	s.begin(c, false)
	for seed := byte(10); seed < 20; seed++ {
		u := unspentTx(seed, int(seed))
		want[u.TxHash] = u
		ok, err := c.TryAddUnspentTx(u)
		s.Require().NoError(err)
		s.Require().True(ok)
	}
	s.Require().NoError(c.CommitTransaction())

	s.begin(c, true)
	got := map[chainhash.Hash]model.UnspentTx{}
	for u, err := range c.ReadUnspentTransactions() {
		s.Require().NoError(err)
		got[u.TxHash] = u
	}
	s.Require().NoError(c.RollbackTransaction())

	s.Require().Len(got, len(want))
	for hash, u := range want {
		s.True(u.Equal(got[hash]), hash.String())
	}
}

// A read transaction sees the snapshot taken when it began.
func (s *CursorSuite) TestIsolation() {
	writer, reader := s.cursor(), s.cursor()
	u := unspentTx(21, 2)

	s.begin(writer, false)
	ok, err := writer.TryAddUnspentTx(u)
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Require().NoError(writer.SetTotalTxCount(5))

	s.begin(reader, true)
	ok, err = reader.ContainsUnspentTx(u.TxHash)
	s.Require().NoError(err)
	s.False(ok, "uncommitted add visible to reader")

	s.Require().NoError(writer.CommitTransaction())

	ok, err = reader.ContainsUnspentTx(u.TxHash)
	s.Require().NoError(err)
	s.False(ok, "commit visible inside an older snapshot")
	n, err := reader.TotalTxCount()
	s.Require().NoError(err)
	s.Zero(n)
	s.Require().NoError(reader.RollbackTransaction())

	s.begin(reader, true)
	ok, err = reader.ContainsUnspentTx(u.TxHash)
	s.Require().NoError(err)
	s.True(ok)
	n, err = reader.TotalTxCount()
	s.Require().NoError(err)
	s.Equal(5, n)
	s.Require().NoError(reader.RollbackTransaction())
}

type stateDump struct {
	Tip          *chainhash.Hash
	Counters     [5]int
	Headers      map[chainhash.Hash]bool
	UnspentTxes  map[chainhash.Hash]string
	Outputs      map[wire.OutPoint]int64
	SpentTxes    map[int]int
	UnmintedTxes map[chainhash.Hash]int
}

func (s *CursorSuite) dump(c storage.ChainStateCursor, headers []*model.ChainedHeader, txes []model.UnspentTx, ops []wire.OutPoint, heights []int) stateDump {
	d := stateDump{
		Headers:      map[chainhash.Hash]bool{},
		UnspentTxes:  map[chainhash.Hash]string{},
		Outputs:      map[wire.OutPoint]int64{},
		SpentTxes:    map[int]int{},
		UnmintedTxes: map[chainhash.Hash]int{},
	}
	tip, err := c.ChainTip()
	s.Require().NoError(err)
	if tip != nil {
		d.Tip = &tip.Hash
	}
	for i, get := range []func() (int, error){c.UnspentTxCount, c.UnspentOutputCount, c.TotalTxCount, c.TotalInputCount, c.TotalOutputCount} {
		d.Counters[i], err = get()
		s.Require().NoError(err)
	}
	for _, h := range headers {
		ok, err := c.ContainsHeader(h.Hash)
		s.Require().NoError(err)
		d.Headers[h.Hash] = ok

		txes, ok, err := c.TryGetBlockUnmintedTxes(h.Hash)
		s.Require().NoError(err)
		if ok {
			d.UnmintedTxes[h.Hash] = len(txes)
		}
	}
	for _, u := range txes {
		got, ok, err := c.TryGetUnspentTx(u.TxHash)
		s.Require().NoError(err)
		if ok {
			d.UnspentTxes[u.TxHash] = got.OutputStates.String()
		}
	}
	for _, op := range ops {
		out, ok, err := c.TryGetUnspentTxOutput(op)
		s.Require().NoError(err)
		if ok {
			d.Outputs[op] = out.Value
		}
	}
	for _, height := range heights {
		txes, ok, err := c.TryGetBlockSpentTxes(height)
		s.Require().NoError(err)
		if ok {
			d.SpentTxes[height] = len(txes)
		}
	}
	return d
}

// Rolling back any mix of mutations restores the state at begin.
func (s *CursorSuite) TestRollbackAtomicity() {
	c := s.cursor()
	headers := Headers(3, 2)
	txes := []model.UnspentTx{unspentTx(30, 3), unspentTx(31, 1)}
	ops := []wire.OutPoint{outPoint(30, 0), outPoint(31, 0)}
	heights := []int{1, 2}

	s.begin(c, false)
	s.Require().NoError(c.SetChainTip(headers[1]))
	s.Require().NoError(c.SetUnspentTxCount(1))
	s.Require().NoError(c.SetTotalOutputCount(3))
	_, err := c.TryAddHeader(headers[1])
	s.Require().NoError(err)
	_, err = c.TryAddUnspentTx(txes[0])
	s.Require().NoError(err)
	_, err = c.TryAddUnspentTxOutput(ops[0], wire.NewTxOut(10, []byte{1}))
	s.Require().NoError(err)
	_, err = c.TryAddBlockSpentTxes(1, spentTxes(30))
	s.Require().NoError(err)
	_, err = c.TryAddBlockUnmintedTxes(headers[1].Hash, unmintedTxes(30))
	s.Require().NoError(err)
	s.Require().NoError(c.CommitTransaction())

	s.begin(c, true)
	before := s.dump(c, headers, txes, ops, heights)
	s.Require().NoError(c.RollbackTransaction())

	s.begin(c, false)
	s.Require().NoError(c.SetChainTip(headers[2]))
	s.Require().NoError(c.SetUnspentTxCount(7))
	s.Require().NoError(c.SetUnspentOutputCount(7))
	s.Require().NoError(c.SetTotalTxCount(7))
	s.Require().NoError(c.SetTotalInputCount(7))
	s.Require().NoError(c.SetTotalOutputCount(7))
	_, err = c.TryAddHeader(headers[2])
	s.Require().NoError(err)
	_, err = c.TryRemoveHeader(headers[1].Hash)
	s.Require().NoError(err)
	_, err = c.TryUpdateUnspentTx(txes[0].SetOutputState(1, model.Spent))
	s.Require().NoError(err)
	_, err = c.TryAddUnspentTx(txes[1])
	s.Require().NoError(err)
	_, err = c.TryRemoveUnspentTxOutput(ops[0])
	s.Require().NoError(err)
	_, err = c.TryAddUnspentTxOutput(ops[1], wire.NewTxOut(20, []byte{2}))
	s.Require().NoError(err)
	_, err = c.TryRemoveBlockSpentTxes(1)
	s.Require().NoError(err)
	_, err = c.TryAddBlockSpentTxes(2, spentTxes(31))
	s.Require().NoError(err)
	_, err = c.TryRemoveBlockUnmintedTxes(headers[1].Hash)
	s.Require().NoError(err)
	_, err = c.TryAddBlockUnmintedTxes(headers[2].Hash, unmintedTxes(31))
	s.Require().NoError(err)
	s.NotEqual(before, s.dump(c, headers, txes, ops, heights))
	s.Require().NoError(c.RollbackTransaction())

	s.begin(c, true)
	s.Equal(before, s.dump(c, headers, txes, ops, heights))
	s.Require().NoError(c.RollbackTransaction())
}

// Write transactions on one store are serialized.
func (s *CursorSuite) TestSingleWriter() {
	first, second := s.cursor(), s.cursor()
	s.begin(first, false)

	begun := make(chan error, 1)
	go func() {
		err := second.BeginTransaction(context.Background(), false)
		if err == nil {
			err = second.SetTotalTxCount(2)
		}
		if err == nil {
			err = second.CommitTransaction()
		}
		begun <- err
	}()

	select {
	case err := <-begun:
		s.FailNow("second writer ran concurrently", "err=%v", err)
	case <-time.After(50 * time.Millisecond):
	}

	s.Require().NoError(first.SetTotalTxCount(1))
	s.Require().NoError(first.CommitTransaction())

	select {
	case err := <-begun:
		s.Require().NoError(err)
	case <-time.After(5 * time.Second):
		s.FailNow("second writer never started")
	}

	s.begin(first, true)
	n, err := first.TotalTxCount()
	s.Require().NoError(err)
	s.Equal(2, n)
	s.Require().NoError(first.RollbackTransaction())
}

// Readers do not wait for an open writer.
func (s *CursorSuite) TestReaderDoesNotBlockOnWriter() {
	writer, reader := s.cursor(), s.cursor()
	s.begin(writer, false)
	defer func() { s.NoError(writer.RollbackTransaction()) }()

	done := make(chan error, 1)
	go func() {
		err := reader.BeginTransaction(context.Background(), true)
		if err == nil {
			_, err = reader.ChainTip()
		}
		if err == nil {
			err = reader.RollbackTransaction()
		}
		done <- err
	}()
	select {
	case err := <-done:
		s.Require().NoError(err)
	case <-time.After(5 * time.Second):
		s.FailNow("reader blocked by writer")
	}
}

func (s *CursorSuite) TestFlushAndDefragment() {
	c := s.cursor()
	s.begin(c, false)
	_, err := c.TryAddUnspentTx(unspentTx(40, 1))
	s.Require().NoError(err)
	s.Require().NoError(c.CommitTransaction())

	s.NoError(c.Flush())
	s.NoError(c.Defragment())

	s.begin(c, true)
	ok, err := c.ContainsUnspentTx(unspentTx(40, 1).TxHash)
	s.Require().NoError(err)
	s.True(ok)
	s.Require().NoError(c.RollbackTransaction())
}
