package transport

import (
	"encoding/json"
	"net/http"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/chain"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
	"go.uber.org/zap"
)

// TipStatus describes the last block of a chain. Height is -1 for an empty
// chain.
type TipStatus struct {
	Height int    `json:"height"`
	Hash   string `json:"hash,omitempty"`
}

// CountsStatus mirrors the chain-state counters.
type CountsStatus struct {
	UnspentTxes   int `json:"unspent_txes"`
	UnspentOutput int `json:"unspent_outputs"`
	TotalTxes     int `json:"total_txes"`
	TotalInputs   int `json:"total_inputs"`
	TotalOutputs  int `json:"total_outputs"`
}

// Status is the body of GET /v1/status.
type Status struct {
	Network    string       `json:"network"`
	Backend    string       `json:"backend"`
	ChainState TipStatus    `json:"chain_state"`
	Target     TipStatus    `json:"target"`
	Syncing    bool         `json:"syncing"`
	Counts     CountsStatus `json:"counts"`
}

// StatusHandler reports how far the chain state is and what it holds.
type StatusHandler struct {
	logger     *zap.Logger
	network    model.Network
	backend    string
	chainState ChainStateSource
	target     TargetChainSource
}

func NewStatusHandler(network model.Network, backend string, chainState ChainStateSource, target TargetChainSource, logger *zap.Logger) *StatusHandler {
	return &StatusHandler{
		logger:     logger.Named("status"),
		network:    network,
		backend:    backend,
		chainState: chainState,
		target:     target,
	}
}

func tipStatus(c *chain.Chain) TipStatus {
	if c == nil || c.IsEmpty() {
		return TipStatus{Height: -1}
	}
	tip := c.LastBlock()
	return TipStatus{Height: tip.Height, Hash: tip.Hash.String()}
}

// ServeStatus has the signature of a grpc-gateway runtime.HandlerFunc so it
// can be mounted with ServeMux.HandlePath.
func (h *StatusHandler) ServeStatus(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	snapshot, err := h.chainState.ToChainState(r.Context(), 1)
	if err != nil {
		h.logger.Error("open chain state snapshot", zap.Error(err))
		http.Error(w, "chain state unavailable", http.StatusServiceUnavailable)
		return
	}
	defer func() {
		if err := snapshot.Close(); err != nil {
			h.logger.Warn("close chain state snapshot", zap.Error(err))
		}
	}()

	counts, err := snapshot.Counts(r.Context())
	if err != nil {
		h.logger.Error("read chain state counts", zap.Error(err))
		http.Error(w, "chain state unavailable", http.StatusServiceUnavailable)
		return
	}

	current, target := snapshot.Chain(), h.target.TargetChain()
	status := Status{
		Network:    string(h.network),
		Backend:    h.backend,
		ChainState: tipStatus(current),
		Target:     tipStatus(target),
		Counts: CountsStatus{
			UnspentTxes:   counts.UnspentTx,
			UnspentOutput: counts.UnspentOutput,
			TotalTxes:     counts.TotalTx,
			TotalInputs:   counts.TotalInput,
			TotalOutputs:  counts.TotalOutput,
		},
	}
	status.Syncing = target == nil || status.ChainState != status.Target

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(status); err != nil {
		h.logger.Warn("write status", zap.Error(err))
	}
}
