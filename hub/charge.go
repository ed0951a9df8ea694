// Copyright (c) 2026 The Gas Station Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package hub

import (
	"math/big"

	"github.com/Mentors4EDU/gsn/runtime"
	"github.com/Mentors4EDU/gsn/tx"
)

var big100 = big.NewInt(100)

// EffectivePrice returns the per-gas price a relayed call settles at: the
// lesser of the client-agreed cap and the price the relay actually paid.
func EffectivePrice(data *tx.RelayData, actualPrice *big.Int) *big.Int {
	if data.MaxFeePerGas.Cmp(actualPrice) < 0 {
		return new(big.Int).Set(data.MaxFeePerGas)
	}
	return new(big.Int).Set(actualPrice)
}

// CalculateCharge computes the settlement amount for gasUsed units at price,
// marked up by the relay's percentage fee and topped with its base fee.
// Integer floor division throughout.
func CalculateCharge(gasUsed uint64, price *big.Int, data *tx.RelayData) *big.Int {
	charge := new(big.Int).SetUint64(gasUsed)
	charge.Mul(charge, price)
	charge.Mul(charge, new(big.Int).SetUint64(100+data.PctRelayFee))
	charge.Div(charge, big100)
	return charge.Add(charge, data.BaseRelayFee)
}

// executionBudget is the total computation one relay call attempt may meter:
// the client's inner gas, both declared paymaster hook limits and the hub's
// fixed overhead.
func (h *Hub) executionBudget(requestGas uint64, limits *runtime.PaymasterLimits) uint64 {
	return requestGas + limits.PreRelayedCallGasLimit + limits.PostRelayedCallGasLimit + h.cfg.GasOverhead
}

// maxPossibleCharge is the pessimistic bound on what a relay call could cost
// the paymaster: the full execution budget, the settlement overhead and the
// published call-data cost, priced at the client-agreed cap. Metered gas is
// capped by the budget, so the settled charge can never exceed this bound.
func (h *Hub) maxPossibleCharge(req *tx.RelayRequest, limits *runtime.PaymasterLimits) *big.Int {
	request := req.Request()
	data := req.Data()
	gas := h.executionBudget(request.Gas, limits) + h.cfg.GasOverhead + data.CalldataGasUsed
	return CalculateCharge(gas, data.MaxFeePerGas, &data)
}
