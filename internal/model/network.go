// Package model defines the domain models shared by the chain-state core.
package model

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
)

// Network names a bitcoin network the node follows.
type Network string

var (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet3"
	Regtest Network = "regtest"
	Signet  Network = "signet"
)

// Params returns the consensus parameters of the network.
func (n Network) Params() (*chaincfg.Params, error) {
	switch n {
	case Mainnet:
		return &chaincfg.MainNetParams, nil
	case Testnet:
		return &chaincfg.TestNet3Params, nil
	case Regtest:
		return &chaincfg.RegressionNetParams, nil
	case Signet:
		return &chaincfg.SigNetParams, nil
	default:
		return nil, fmt.Errorf("unknown network %q", string(n))
	}
}
