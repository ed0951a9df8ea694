// Copyright (c) 2026 The Gas Station Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/Mentors4EDU/gsn/gsn"
)

// ForwardRequest is the call intent of a relay request: what the user wants
// executed, authenticated and replay-protected by the forwarding layer.
type ForwardRequest struct {
	From       gsn.Address
	To         gsn.Address
	Value      *big.Int
	Gas        uint64
	Nonce      uint64
	Data       []byte
	ValidUntil uint64 // unix time; zero means no expiry
}

// RelayData is the relay terms of a relay request: how the relay gets paid
// and which collaborators take part in the execution.
type RelayData struct {
	PctRelayFee     uint64
	BaseRelayFee    *big.Int
	CalldataGasUsed uint64
	MaxFeePerGas    *big.Int
	MaxPriorityFee  *big.Int
	RelayWorker     gsn.Address
	Forwarder       gsn.Address
	Paymaster       gsn.Address
	PaymasterData   []byte
	ClientID        *big.Int
}

type body struct {
	Request ForwardRequest
	Data    RelayData
}

// RelayRequest is an immutable relay request type. It is constructed and
// signed off-ledger by the client and consumed by the hub.
type RelayRequest struct {
	body body

	cache struct {
		signingHash *gsn.Bytes32
	}
}

// Request returns a copy of the call intent.
func (r *RelayRequest) Request() ForwardRequest {
	req := r.body.Request
	req.Value = bigCopy(req.Value)
	req.Data = append([]byte(nil), req.Data...)
	return req
}

// Data returns a copy of the relay terms.
func (r *RelayRequest) Data() RelayData {
	data := r.body.Data
	data.BaseRelayFee = bigCopy(data.BaseRelayFee)
	data.MaxFeePerGas = bigCopy(data.MaxFeePerGas)
	data.MaxPriorityFee = bigCopy(data.MaxPriorityFee)
	data.ClientID = bigCopy(data.ClientID)
	data.PaymasterData = append([]byte(nil), data.PaymasterData...)
	return data
}

// SigningHash returns the hash the user signs to authorize this request.
func (r *RelayRequest) SigningHash() gsn.Bytes32 {
	if cached := r.cache.signingHash; cached != nil {
		return *cached
	}

	h := gsn.Blake2bFn(func(w io.Writer) {
		rlp.Encode(w, &r.body)
	})
	r.cache.signingHash = &h
	return h
}

// EncodeRLP implements rlp.Encoder.
func (r *RelayRequest) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &r.body)
}

// DecodeRLP implements rlp.Decoder.
func (r *RelayRequest) DecodeRLP(s *rlp.Stream) error {
	var b body
	if err := s.Decode(&b); err != nil {
		return err
	}
	*r = RelayRequest{body: b}
	return nil
}

func bigCopy(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}
