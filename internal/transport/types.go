// Package transport serves the node's status over HTTP.
package transport

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/chain"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/chainstate"
)

// ChainStateSource is the chain state the status reports on.
type ChainStateSource interface {
	Chain() *chain.Chain
	ToChainState(ctx context.Context, cursors int) (*chainstate.ChainState, error)
}

// TargetChainSource publishes the chain the node is syncing towards.
type TargetChainSource interface {
	TargetChain() *chain.Chain
}
