// Copyright (c) 2026 The Gas Station Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package hub

import (
	"github.com/Mentors4EDU/gsn/gsn"
)

// Config holds the hub's economic and operational parameters. It is fixed at
// construction; the per-token minimum stake table is the only runtime-mutable
// piece of configuration and lives in state.
type Config struct {
	// Owner may adjust the minimum stake table.
	Owner gsn.Address
	// TrustedGateway is the caller allowed to submit relay calls carrying an
	// empty user signature. Zero disables the gateway path.
	TrustedGateway gsn.Address
	// GasOverhead is the fixed computation added to metered gas at settlement.
	GasOverhead uint64
	// PostOverhead stands in for the paymaster post hook in the gas-use
	// estimate handed to it; the hook runs after the estimate is taken.
	PostOverhead uint64
	// MaxWorkerCount caps workers per relay manager.
	MaxWorkerCount uint64
	// MinimumUnstakeDelay is the least unlock delay a manager's stake must
	// carry to authorize its workers.
	MinimumUnstakeDelay uint64
	// MaxAcceptanceBudget is the largest paymaster acceptance budget the
	// relay is willing to risk on a rejected attempt.
	MaxAcceptanceBudget uint64
}

// DefaultConfig returns a config with the protocol defaults and no owner.
func DefaultConfig() *Config {
	return &Config{
		GasOverhead:         gsn.RelayCallGasOverhead,
		PostOverhead:        gsn.PostRelayedCallGasOverhead,
		MaxWorkerCount:      gsn.DefaultMaxWorkerCount,
		MinimumUnstakeDelay: gsn.DefaultMinimumUnstakeDelay,
		MaxAcceptanceBudget: 2 * gsn.RelayCallGasOverhead,
	}
}
