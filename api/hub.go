// Copyright (c) 2026 The Gas Station Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/Mentors4EDU/gsn/gsn"
	"github.com/Mentors4EDU/gsn/hub"
	"github.com/Mentors4EDU/gsn/tx"
)

// HubAPI exposes the hub's read surface and the relay call entry point.
type HubAPI struct {
	hub *hub.Hub
}

// NewHubAPI create a new instance.
func NewHubAPI(h *hub.Hub) *HubAPI {
	return &HubAPI{h}
}

func (a *HubAPI) handleGetBalance(w http.ResponseWriter, req *http.Request) error {
	addr, err := gsn.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return badRequest(errors.WithMessage(err, "address"))
	}
	balance := (*math.HexOrDecimal256)(a.hub.BalanceOf(addr))
	return writeJSON(w, map[string]*math.HexOrDecimal256{"balance": balance})
}

func (a *HubAPI) handleGetStake(w http.ResponseWriter, req *http.Request) error {
	manager, err := gsn.ParseAddress(mux.Vars(req)["manager"])
	if err != nil {
		return badRequest(errors.WithMessage(err, "manager"))
	}
	info := a.hub.Stakes().GetStakeInfo(manager)
	if info.IsEmpty() {
		return notFound(errors.New("no stake for manager"))
	}
	return writeJSON(w, &StakeInfo{
		Token:        info.Token,
		Amount:       (*math.HexOrDecimal256)(info.Amount),
		UnstakeDelay: info.UnstakeDelay,
		WithdrawTime: info.WithdrawTime,
		Owner:        info.Owner,
		Penalized:    info.Penalized,
	})
}

func (a *HubAPI) handleGetWorker(w http.ResponseWriter, req *http.Request) error {
	worker, err := gsn.ParseAddress(mux.Vars(req)["worker"])
	if err != nil {
		return badRequest(errors.WithMessage(err, "worker"))
	}
	manager, ok := a.hub.WorkerManager(worker)
	if !ok {
		return notFound(errors.New("unknown relay worker"))
	}
	return writeJSON(w, map[string]string{"manager": manager.String()})
}

func (a *HubAPI) handleGetConfig(w http.ResponseWriter, _ *http.Request) error {
	cfg := a.hub.Config()
	return writeJSON(w, &HubConfig{
		Address:             a.hub.Address(),
		Owner:               cfg.Owner,
		TrustedGateway:      cfg.TrustedGateway,
		GasOverhead:         cfg.GasOverhead,
		PostOverhead:        cfg.PostOverhead,
		MaxWorkerCount:      cfg.MaxWorkerCount,
		MinimumUnstakeDelay: cfg.MinimumUnstakeDelay,
		MaxAcceptanceBudget: cfg.MaxAcceptanceBudget,
	})
}

func (a *HubAPI) handleRelayCall(w http.ResponseWriter, req *http.Request) error {
	var call RelayCall
	if err := parseJSON(req.Body, &call); err != nil {
		return badRequest(errors.WithMessage(err, "body"))
	}
	var relayReq tx.RelayRequest
	if err := rlp.DecodeBytes(call.RelayRequest, &relayReq); err != nil {
		return badRequest(errors.WithMessage(err, "relayRequest"))
	}

	receipt, err := a.hub.RelayCall(
		call.Context.toRuntime(),
		call.Caller,
		&relayReq,
		call.Signature,
		call.ApprovalData,
		call.MaxAcceptanceBudget,
	)
	if err != nil {
		// entry rejection: the attempt never entered execution
		return forbidden(err)
	}
	return writeJSON(w, convertReceipt(receipt))
}

// Mount attaches the hub endpoints to the router.
func (a *HubAPI) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/ledger/{address}/balance").Methods("GET").HandlerFunc(wrapHandlerFunc(a.handleGetBalance))
	sub.Path("/stakes/{manager}").Methods("GET").HandlerFunc(wrapHandlerFunc(a.handleGetStake))
	sub.Path("/workers/{worker}").Methods("GET").HandlerFunc(wrapHandlerFunc(a.handleGetWorker))
	sub.Path("/hub/config").Methods("GET").HandlerFunc(wrapHandlerFunc(a.handleGetConfig))
	sub.Path("/relaycalls").Methods("POST").HandlerFunc(wrapHandlerFunc(a.handleRelayCall))
}
