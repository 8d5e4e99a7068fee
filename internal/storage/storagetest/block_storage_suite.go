package storagetest

import (
	"context"
	"testing"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/storage"
	"github.com/stretchr/testify/suite"
)

// BlockStorageSuite checks a BlockStorage implementation.
type BlockStorageSuite struct {
	suite.Suite

	NewStorage func(t *testing.T) storage.BlockStorage

	store storage.BlockStorage
}

func (s *BlockStorageSuite) SetupTest() {
	s.store = s.NewStorage(s.T())
}

func (s *BlockStorageSuite) TestChainedHeaders() {
	ctx := context.Background()
	headers := Headers(4, 3)

	_, ok, err := s.store.FindMaxTotalWork(ctx)
	s.Require().NoError(err)
	s.False(ok)

	for _, h := range headers {
		ok, err := s.store.TryAddChainedHeader(ctx, h)
		s.Require().NoError(err)
		s.True(ok)
	}
	ok, err = s.store.TryAddChainedHeader(ctx, headers[1])
	s.Require().NoError(err)
	s.False(ok, "duplicate header")

	got, ok, err := s.store.TryGetChainedHeader(ctx, headers[2].Hash)
	s.Require().NoError(err)
	s.Require().True(ok)
	s.True(headers[2].Equal(got))

	all, err := s.store.ReadChainedHeaders(ctx)
	s.Require().NoError(err)
	s.Len(all, len(headers))

	best, ok, err := s.store.FindMaxTotalWork(ctx)
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal(headers[3].Hash, best.Hash)

	ok, err = s.store.TryRemoveChainedHeader(ctx, headers[3].Hash)
	s.Require().NoError(err)
	s.True(ok)
	ok, err = s.store.TryRemoveChainedHeader(ctx, headers[3].Hash)
	s.Require().NoError(err)
	s.False(ok)
	_, ok, err = s.store.TryGetChainedHeader(ctx, headers[3].Hash)
	s.Require().NoError(err)
	s.False(ok)

	s.NoError(s.store.Flush(ctx))
	s.NoError(s.store.Defragment(ctx))
}

func (s *BlockStorageSuite) TestInvalidBlocks() {
	ctx := context.Background()
	headers := Headers(3, 4)
	for _, h := range headers {
		_, err := s.store.TryAddChainedHeader(ctx, h)
		s.Require().NoError(err)
	}

	invalid, err := s.store.IsBlockInvalid(ctx, headers[2].Hash)
	s.Require().NoError(err)
	s.False(invalid)

	s.Require().NoError(s.store.MarkBlockInvalid(ctx, headers[2].Hash))
	s.Require().NoError(s.store.MarkBlockInvalid(ctx, headers[2].Hash))

	invalid, err = s.store.IsBlockInvalid(ctx, headers[2].Hash)
	s.Require().NoError(err)
	s.True(invalid)

	best, ok, err := s.store.FindMaxTotalWork(ctx)
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal(headers[1].Hash, best.Hash, "invalid block excluded from best chain")

	all, err := s.store.ReadChainedHeaders(ctx)
	s.Require().NoError(err)
	s.Len(all, 2)
}
