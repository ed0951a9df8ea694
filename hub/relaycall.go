// Copyright (c) 2026 The Gas Station Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package hub

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/Mentors4EDU/gsn/gsn"
	"github.com/Mentors4EDU/gsn/runtime"
	"github.com/Mentors4EDU/gsn/tx"
)

// RelayCall executes one relayed call attempt. Entry precondition failures
// are returned as plain errors with no receipt and no state change; once the
// attempt enters execution the outcome is always a receipt, with the state
// rolled back as the receipt status dictates. Mutating hub entry points
// reject reentry from paymaster hooks and recipients while a call is in
// flight; a mid-flight withdrawal fails the hook instead of deadlocking.
func (h *Hub) RelayCall(ctx *runtime.Context, caller gsn.Address, req *tx.RelayRequest, sig, approvalData []byte, maxAcceptanceBudget uint64) (*tx.Receipt, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.inFlight.Store(true)
	defer h.inFlight.Store(false)

	request := req.Request()
	data := req.Data()

	// caller identity: a registered worker, or the trusted gateway with an
	// empty signature
	verifySig := true
	if len(sig) == 0 {
		if h.cfg.TrustedGateway.IsZero() || caller != h.cfg.TrustedGateway {
			return nil, errors.New("missing user signature")
		}
		verifySig = false
	} else if caller != data.RelayWorker {
		return nil, errors.New("caller is not the relay worker")
	}
	manager, ok := h.WorkerManager(data.RelayWorker)
	if !ok {
		return nil, errors.New("unknown relay worker")
	}

	// sanity cap keeps the budget arithmetic clear of wraparound
	if request.Gas > gsn.MaxRelayedCallGas || data.CalldataGasUsed > gsn.MaxRelayedCallGas {
		return nil, errors.New("request gas too high")
	}

	// stale pricing and expiry
	if data.MaxFeePerGas.Cmp(ctx.GasPrice) < 0 || data.MaxPriorityFee.Cmp(ctx.PriorityFee) < 0 {
		return nil, errors.New("relay fee terms below submission price")
	}
	if request.ValidUntil != 0 && ctx.Time > request.ValidUntil {
		return nil, errors.New("request expired")
	}

	if verifySig {
		if err := h.fwd.Verify(req, sig); err != nil {
			return nil, err
		}
	}

	if err := h.verifyManagerStaked(manager); err != nil {
		return nil, err
	}

	pm, ok := h.paymasters[data.Paymaster]
	if !ok {
		return nil, errors.New("unknown paymaster")
	}
	limits := pm.Limits()
	if limits.PreRelayedCallGasLimit > gsn.MaxRelayedCallGas || limits.PostRelayedCallGasLimit > gsn.MaxRelayedCallGas {
		return nil, errors.New("paymaster gas limits too high")
	}
	if maxAcceptanceBudget == 0 {
		maxAcceptanceBudget = h.cfg.MaxAcceptanceBudget
	}
	if limits.AcceptanceBudget > maxAcceptanceBudget {
		return nil, errors.New("paymaster acceptance budget too high")
	}
	maxCharge := h.maxPossibleCharge(req, &limits)
	if h.BalanceOf(data.Paymaster).Cmp(maxCharge) < 0 {
		return nil, errors.New("paymaster balance too low")
	}

	receipt, err := h.execute(ctx, req, sig, approvalData, pm, &limits, manager, verifySig, maxCharge)
	if err != nil {
		return nil, err
	}

	metricRelayedCalls().AddWithLabel(1, map[string]string{"status": receipt.Status.String()})
	metricGasUsed().Observe(int64(receipt.GasUsed / 1000))
	logger.Info("relayed call",
		"status", receipt.Status,
		"worker", data.RelayWorker,
		"paymaster", data.Paymaster,
		"gas", receipt.GasUsed,
		"charge", receipt.Charge)
	return receipt, nil
}

// execute runs the inner sub-sequence of a relay call under one outer
// checkpoint and settles the charge.
func (h *Hub) execute(
	ctx *runtime.Context,
	req *tx.RelayRequest,
	sig, approvalData []byte,
	pm runtime.Paymaster,
	limits *runtime.PaymasterLimits,
	manager gsn.Address,
	verifySig bool,
	maxCharge *big.Int,
) (*tx.Receipt, error) {
	request := req.Request()
	data := req.Data()

	budget := h.executionBudget(request.Gas, limits)
	env := runtime.NewEnv(h.state, ctx, h.addr, budget)

	cp := h.state.NewCheckpoint()
	balBefore := h.BalanceOf(data.Paymaster)

	var preContext []byte
	preErr := env.Call(data.Paymaster, limits.PreRelayedCallGasLimit, func(sub *runtime.Env) error {
		out, err := pm.PreRelayedCall(sub, req, sig, approvalData, maxCharge)
		preContext = out
		return err
	})
	if preErr != nil {
		h.state.RevertTo(cp)
		return h.receipt(req, tx.StatusPreRelayedFailed, env, &data, nil, []byte(preErr.Error())), nil
	}

	success, ret, fwdErr := h.fwd.Execute(env, req, sig, verifySig)
	if fwdErr != nil {
		// request verification failed between entry and dispatch
		h.state.RevertTo(cp)
		return nil, fwdErr
	}

	// the post hook itself has not been metered yet; PostOverhead stands in
	gasUseEstimate := env.GasUsed() + h.cfg.GasOverhead + h.cfg.PostOverhead
	postErr := env.Call(data.Paymaster, limits.PostRelayedCallGasLimit, func(sub *runtime.Env) error {
		return pm.PostRelayedCall(sub, preContext, success, gasUseEstimate, req)
	})

	var status tx.Status
	var returnData []byte
	switch {
	case h.BalanceOf(data.Paymaster).Cmp(balBefore) != 0:
		h.state.RevertTo(cp)
		status, returnData = tx.StatusPaymasterBalanceChanged, []byte("paymaster balance changed")
	case postErr != nil:
		h.state.RevertTo(cp)
		status, returnData = tx.StatusPostRelayedFailed, []byte(postErr.Error())
	case !success:
		status, returnData = tx.StatusRelayedCallFailed, ret
	default:
		status, returnData = tx.StatusOK, ret
	}

	price := EffectivePrice(&data, ctx.GasPrice)
	charge := CalculateCharge(env.GasUsed()+h.cfg.GasOverhead+data.CalldataGasUsed, price, &data)
	if err := h.chargeLedger(data.Paymaster, manager, charge); err != nil {
		h.state.RevertTo(cp)
		return nil, errors.WithMessage(err, "settlement")
	}
	return h.receipt(req, status, env, &data, charge, returnData), nil
}

func (h *Hub) receipt(req *tx.RelayRequest, status tx.Status, env *runtime.Env, data *tx.RelayData, charge *big.Int, returnData []byte) *tx.Receipt {
	if charge == nil {
		charge = &big.Int{}
	}
	return &tx.Receipt{
		RequestHash: req.SigningHash(),
		Status:      status,
		GasUsed:     env.GasUsed() + h.cfg.GasOverhead + data.CalldataGasUsed,
		Charge:      charge,
		ReturnData:  returnData,
	}
}
