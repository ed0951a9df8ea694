// Copyright (c) 2026 The Gas Station Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/Mentors4EDU/gsn/gsn"
	"github.com/Mentors4EDU/gsn/runtime"
	"github.com/Mentors4EDU/gsn/tx"
)

// CallContext is the submission environment a relay call runs under.
type CallContext struct {
	BlockNumber uint64                `json:"blockNumber"`
	Time        uint64                `json:"time"`
	GasPrice    *math.HexOrDecimal256 `json:"gasPrice"`
	PriorityFee *math.HexOrDecimal256 `json:"priorityFee"`
}

func (c *CallContext) toRuntime() *runtime.Context {
	gasPrice := (*big.Int)(c.GasPrice)
	if gasPrice == nil {
		gasPrice = new(big.Int)
	}
	priorityFee := (*big.Int)(c.PriorityFee)
	if priorityFee == nil {
		priorityFee = new(big.Int)
	}
	return &runtime.Context{
		BlockNumber: c.BlockNumber,
		Time:        c.Time,
		GasPrice:    gasPrice,
		PriorityFee: priorityFee,
	}
}

// RelayCall is the payload of a relay call submission.
type RelayCall struct {
	Caller              gsn.Address   `json:"caller"`
	RelayRequest        hexutil.Bytes `json:"relayRequest"` // rlp encoded
	Signature           hexutil.Bytes `json:"signature"`
	ApprovalData        hexutil.Bytes `json:"approvalData"`
	MaxAcceptanceBudget uint64        `json:"maxAcceptanceBudget"`
	Context             CallContext   `json:"context"`
}

// Receipt is the JSON form of a relay call outcome.
type Receipt struct {
	RequestHash gsn.Bytes32           `json:"requestHash"`
	Status      string                `json:"status"`
	GasUsed     uint64                `json:"gasUsed"`
	Charge      *math.HexOrDecimal256 `json:"charge"`
	ReturnData  hexutil.Bytes         `json:"returnData"`
}

func convertReceipt(r *tx.Receipt) *Receipt {
	return &Receipt{
		RequestHash: r.RequestHash,
		Status:      r.Status.String(),
		GasUsed:     r.GasUsed,
		Charge:      (*math.HexOrDecimal256)(r.Charge),
		ReturnData:  r.ReturnData,
	}
}

// Penalization is the payload of a penalization evidence submission.
type Penalization struct {
	Kind        string        `json:"kind"` // "repeated-nonce" or "illegal-tx"
	RawTx       hexutil.Bytes `json:"rawTx"`
	Signature   hexutil.Bytes `json:"signature"`
	RawTx2      hexutil.Bytes `json:"rawTx2,omitempty"`
	Signature2  hexutil.Bytes `json:"signature2,omitempty"`
	Beneficiary gsn.Address   `json:"beneficiary"`
}

// StakeInfo is the JSON form of a manager's stake record.
type StakeInfo struct {
	Token        gsn.Address           `json:"token"`
	Amount       *math.HexOrDecimal256 `json:"amount"`
	UnstakeDelay uint64                `json:"unstakeDelay"`
	WithdrawTime uint64                `json:"withdrawTime"`
	Owner        gsn.Address           `json:"owner"`
	Penalized    bool                  `json:"penalized"`
}

// HubConfig is the JSON form of the hub's fixed parameters.
type HubConfig struct {
	Address             gsn.Address `json:"address"`
	Owner               gsn.Address `json:"owner"`
	TrustedGateway      gsn.Address `json:"trustedGateway"`
	GasOverhead         uint64      `json:"gasOverhead"`
	PostOverhead        uint64      `json:"postOverhead"`
	MaxWorkerCount      uint64      `json:"maxWorkerCount"`
	MinimumUnstakeDelay uint64      `json:"minimumUnstakeDelay"`
	MaxAcceptanceBudget uint64      `json:"maxAcceptanceBudget"`
}
