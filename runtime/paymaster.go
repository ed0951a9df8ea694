// Copyright (c) 2026 The Gas Station Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"math/big"

	"github.com/Mentors4EDU/gsn/tx"
)

// PaymasterLimits declares the gas budgets a paymaster commits to.
type PaymasterLimits struct {
	// AcceptanceBudget is the worst-case gas a rejected attempt may cost the
	// relay; a relay refuses paymasters whose budget exceeds what it accepts.
	AcceptanceBudget uint64
	// PreRelayedCallGasLimit bounds the pre hook.
	PreRelayedCallGasLimit uint64
	// PostRelayedCallGasLimit bounds the post hook.
	PostRelayedCallGasLimit uint64
}

// Paymaster is the ledger-resident payer contract deciding whether to
// sponsor a relay request. Hook errors are reverts; the hub discards the
// hook's effects per the relay-call semantics.
type Paymaster interface {
	// Limits returns the paymaster's declared gas budgets.
	Limits() PaymasterLimits

	// PreRelayedCall decides whether to sponsor the request. The returned
	// bytes are passed through to PostRelayedCall untouched.
	PreRelayedCall(env *Env, req *tx.RelayRequest, sig, approvalData []byte, maxPossibleCharge *big.Int) ([]byte, error)

	// PostRelayedCall runs after the relayed call, successful or not.
	PostRelayedCall(env *Env, context []byte, success bool, gasUseEstimate uint64, req *tx.RelayRequest) error
}
