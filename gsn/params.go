// Copyright (c) 2026 The Gas Station Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package gsn

// Constants of the relay protocol.
const (
	TxGas            uint64 = 21000 // intrinsic cost of a relayed submission
	TxDataZeroGas    uint64 = 4     // per zero byte of published call data
	TxDataNonZeroGas uint64 = 68    // per non-zero byte of published call data

	SloadGas       uint64 = 200   // cost charged to callees per storage read
	SstoreSetGas   uint64 = 20000 // cost charged to callees per storage write to a fresh slot
	SstoreResetGas uint64 = 5000  // cost charged to callees per storage overwrite
	CallGas        uint64 = 700   // base cost charged per nested callee invocation

	// RelayCallGasOverhead is the fixed computation overhead the hub adds on top
	// of metered gas when settling a relayed call.
	RelayCallGasOverhead uint64 = 34000
	// PostRelayedCallGasOverhead is reserved for the paymaster post hook.
	PostRelayedCallGasOverhead uint64 = 11000

	// MaxRelayedCallGas caps the inner gas, call-data gas and paymaster hook
	// limits of a single relayed call, keeping the budget arithmetic well
	// clear of uint64 wraparound.
	MaxRelayedCallGas uint64 = 10_000_000

	// DefaultMaxWorkerCount limits how many workers a single relay manager may register.
	DefaultMaxWorkerCount uint64 = 10
	// DefaultMinimumUnstakeDelay is the least unlock delay (in seconds) a manager's
	// stake must carry to authorize its workers.
	DefaultMinimumUnstakeDelay uint64 = 7 * 24 * 3600
)

// Well-known ledger-resident contract addresses.
var (
	RelayHubAddress     = BytesToAddress([]byte("RelayHub"))
	StakeManagerAddress = BytesToAddress([]byte("StakeManager"))
	ForwarderAddress    = BytesToAddress([]byte("Forwarder"))
	PenalizerAddress    = BytesToAddress([]byte("Penalizer"))
)

// IntrinsicDataGas computes the cost of publishing the given call data,
// charged per byte on top of TxGas.
func IntrinsicDataGas(data []byte) uint64 {
	var gas uint64
	for _, b := range data {
		if b == 0 {
			gas += TxDataZeroGas
		} else {
			gas += TxDataNonZeroGas
		}
	}
	return gas
}
