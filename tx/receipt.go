// Copyright (c) 2026 The Gas Station Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"math/big"

	"github.com/Mentors4EDU/gsn/gsn"
)

// Status is the terminal outcome of a relay-call attempt that entered execution.
type Status uint8

const (
	// StatusOK relayed call succeeded and all effects are kept.
	StatusOK Status = iota
	// StatusRelayedCallFailed the recipient call reverted; its effects are
	// rolled back while the hooks' effects are kept. Still charged.
	StatusRelayedCallFailed
	// StatusPreRelayedFailed the paymaster pre hook reverted; the whole attempt
	// is rolled back and nothing is charged.
	StatusPreRelayedFailed
	// StatusPostRelayedFailed the paymaster post hook reverted; the inner
	// sequence is rolled back but computation is still charged.
	StatusPostRelayedFailed
	// StatusPaymasterBalanceChanged the paymaster's hub balance moved while
	// the inner sequence ran; everything is rolled back but still charged.
	StatusPaymasterBalanceChanged
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusRelayedCallFailed:
		return "RelayedCallFailed"
	case StatusPreRelayedFailed:
		return "PreRelayedFailed"
	case StatusPostRelayedFailed:
		return "PostRelayedFailed"
	case StatusPaymasterBalanceChanged:
		return "PaymasterBalanceChanged"
	default:
		return "Unknown"
	}
}

// Receipt is the outcome event of a relay-call attempt.
type Receipt struct {
	// RequestHash identifies the executed relay request.
	RequestHash gsn.Bytes32
	// Status of the attempt.
	Status Status
	// GasUsed is the metered computation, overhead included.
	GasUsed uint64
	// Charge is the amount moved from the paymaster to the relay manager.
	Charge *big.Int
	// ReturnData carries the recipient return data on success, or the
	// failure reason otherwise.
	ReturnData []byte
}
