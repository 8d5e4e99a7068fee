package storagetest

import (
	"math/bits"
	"math/rand/v2"
	"testing"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/merkle"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/storage"
	"github.com/stretchr/testify/suite"
)

// BlockTxesSuite checks a BlockTxesStorage implementation, including Merkle
// pruning through the backend's own pruning cursor.
type BlockTxesSuite struct {
	suite.Suite

	NewStorage func(t *testing.T) storage.BlockTxesStorage

	store storage.BlockTxesStorage
}

func (s *BlockTxesSuite) SetupTest() {
	s.store = s.NewStorage(s.T())
}

func merkleRoot(txes []*wire.MsgTx) chainhash.Hash {
	utxes := make([]*btcutil.Tx, len(txes))
	for i, tx := range txes {
		utxes[i] = btcutil.NewTx(tx)
	}
	return blockchain.CalcMerkleRoot(utxes, false)
}

func (s *BlockTxesSuite) rootOf(blockHash chainhash.Hash) (chainhash.Hash, []model.BlockTx) {
	nodes, ok, err := s.store.ReadBlockTransactions(blockHash)
	s.Require().NoError(err)
	s.Require().True(ok)
	tree := make([]model.MerkleTreeNode, len(nodes))
	for i, n := range nodes {
		tree[i] = n.MerkleTreeNode
	}
	root, err := merkle.ComputeRoot(tree)
	s.Require().NoError(err)
	return root, nodes
}

func (s *BlockTxesSuite) TestAddGetRemove() {
	hash := chainhash.Hash{1}
	txes := Txes(3, 1)

	ok, err := s.store.ContainsBlock(hash)
	s.Require().NoError(err)
	s.False(ok)

	ok, err = s.store.TryAddBlockTransactions(hash, txes)
	s.Require().NoError(err)
	s.True(ok)
	ok, err = s.store.TryAddBlockTransactions(hash, txes)
	s.Require().NoError(err)
	s.False(ok, "duplicate block")

	ok, err = s.store.ContainsBlock(hash)
	s.Require().NoError(err)
	s.True(ok)
	n, err := s.store.BlockCount()
	s.Require().NoError(err)
	s.Equal(1, n)

	for i, want := range txes {
		tx, ok, err := s.store.TryGetTransaction(hash, i)
		s.Require().NoError(err)
		s.Require().True(ok)
		s.Equal(want.TxHash(), tx.TxHash())
	}
	_, ok, err = s.store.TryGetTransaction(hash, 3)
	s.Require().NoError(err)
	s.False(ok)
	_, ok, err = s.store.TryGetTransaction(chainhash.Hash{2}, 0)
	s.Require().NoError(err)
	s.False(ok)

	root, nodes := s.rootOf(hash)
	s.Equal(merkleRoot(txes), root)
	s.Len(nodes, 3)

	ok, err = s.store.TryRemoveBlockTransactions(hash)
	s.Require().NoError(err)
	s.True(ok)
	ok, err = s.store.TryRemoveBlockTransactions(hash)
	s.Require().NoError(err)
	s.False(ok)
	_, ok, err = s.store.ReadBlockTransactions(hash)
	s.Require().NoError(err)
	s.False(ok)

	s.NoError(s.store.Flush())
	s.NoError(s.store.Defragment())
}

// Pruning every leaf in any order leaves one node holding the block's root
// at depth ceil(log2(n)).
func (s *BlockTxesSuite) TestPruneOrderIndependence() {
	rng := rand.New(rand.NewPCG(1, 2))
	for i, n := range []int{1, 2, 3, 5, 8, 11} {
		hash := chainhash.Hash{byte(i + 10)}
		txes := Txes(n, byte(i+10))
		want := merkleRoot(txes)

		ok, err := s.store.TryAddBlockTransactions(hash, txes)
		s.Require().NoError(err)
		s.Require().True(ok)

		order := rng.Perm(n)
		half := order[:n/2]
		s.Require().NoError(s.store.PruneElements(hash, half))
		root, _ := s.rootOf(hash)
		s.Equal(want, root, "n=%d after pruning %v", n, half)
		for _, index := range half {
			_, ok, err := s.store.TryGetTransaction(hash, index)
			s.Require().NoError(err)
			s.False(ok, "pruned tx %d still readable", index)
		}

		s.Require().NoError(s.store.PruneElements(hash, order[n/2:]))
		s.Require().NoError(s.store.PruneElements(hash, order))

		root, nodes := s.rootOf(hash)
		s.Equal(want, root)
		s.Require().Len(nodes, 1, "n=%d", n)
		s.Equal(want, nodes[0].Hash)
		s.Equal(bits.Len(uint(n-1)), nodes[0].Depth)
		s.True(nodes[0].Pruned)
	}
}

// Pruning one block never touches the nodes of its neighbours.
func (s *BlockTxesSuite) TestPruneLocality() {
	blocks := []chainhash.Hash{{0x20}, {0x21}, {0x22}}
	txes := [][]*wire.MsgTx{Txes(4, 0x20), Txes(6, 0x21), Txes(3, 0x22)}
	for i, hash := range blocks {
		ok, err := s.store.TryAddBlockTransactions(hash, txes[i])
		s.Require().NoError(err)
		s.Require().True(ok)
	}

	s.Require().NoError(s.store.PruneElements(blocks[1], []int{5, 0, 3, 1, 2, 4}))

	for _, i := range []int{0, 2} {
		root, nodes := s.rootOf(blocks[i])
		s.Equal(merkleRoot(txes[i]), root)
		s.Len(nodes, len(txes[i]))
		for _, node := range nodes {
			s.False(node.Pruned)
		}
	}
	root, nodes := s.rootOf(blocks[1])
	s.Equal(merkleRoot(txes[1]), root)
	s.Len(nodes, 1)
}

func (s *BlockTxesSuite) TestPruneMissingBlock() {
	s.NoError(s.store.PruneElements(chainhash.Hash{0x30}, []int{0}))
}
