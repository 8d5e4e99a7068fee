package bitcoin

import (
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/rpcclient"
	"github.com/btcsuite/btcd/wire"
)

// ConnConfig addresses the trusted node's JSON-RPC endpoint.
type ConnConfig struct {
	Host       string
	User       string
	Password   string
	DisableTLS bool
}

// Dial opens an HTTP POST mode RPC client.
func Dial(cfg ConnConfig) (*rpcclient.Client, error) {
	client, err := rpcclient.New(&rpcclient.ConnConfig{
		Host:         cfg.Host,
		User:         cfg.User,
		Pass:         cfg.Password,
		HTTPPostMode: true,
		DisableTLS:   cfg.DisableTLS,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("create rpc client for %s: %w", cfg.Host, err)
	}
	return client, nil
}

// ObservedClient times every call to the trusted node.
type ObservedClient struct {
	client  RPCClient
	metrics RPCMetrics
}

func NewObservedClient(client RPCClient, metrics RPCMetrics) *ObservedClient {
	return &ObservedClient{client: client, metrics: metrics}
}

func (c *ObservedClient) observe(method string, started time.Time, err error) {
	c.metrics.Observe(method, err, started)
}

// GetBlockCount also publishes the node's best height.
func (c *ObservedClient) GetBlockCount() (int64, error) {
	started := time.Now()
	count, err := c.client.GetBlockCount()
	c.observe("getblockcount", started, err)
	if err == nil {
		c.metrics.SetBestHeight(count)
	}
	return count, err
}

func (c *ObservedClient) GetBlockHash(height int64) (*chainhash.Hash, error) {
	started := time.Now()
	hash, err := c.client.GetBlockHash(height)
	c.observe("getblockhash", started, err)
	return hash, err
}

func (c *ObservedClient) GetBlockHeader(hash *chainhash.Hash) (*wire.BlockHeader, error) {
	started := time.Now()
	header, err := c.client.GetBlockHeader(hash)
	c.observe("getblockheader", started, err)
	return header, err
}

func (c *ObservedClient) GetBlock(hash *chainhash.Hash) (*wire.MsgBlock, error) {
	started := time.Now()
	block, err := c.client.GetBlock(hash)
	c.observe("getblock", started, err)
	return block, err
}
