// Copyright (c) 2026 The Gas Station Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"math/big"

	"github.com/Mentors4EDU/gsn/gsn"
)

// Builder to make it easy to build a relay request.
type Builder struct {
	body body
}

// NewBuilder creates a builder with sane zero terms.
func NewBuilder() *Builder {
	return &Builder{
		body: body{
			Request: ForwardRequest{
				Value: &big.Int{},
			},
			Data: RelayData{
				BaseRelayFee:   &big.Int{},
				MaxFeePerGas:   &big.Int{},
				MaxPriorityFee: &big.Int{},
				ClientID:       &big.Int{},
			},
		},
	}
}

// From set the originating user.
func (b *Builder) From(from gsn.Address) *Builder {
	b.body.Request.From = from
	return b
}

// To set the target contract.
func (b *Builder) To(to gsn.Address) *Builder {
	b.body.Request.To = to
	return b
}

// Value set the attached value.
func (b *Builder) Value(value *big.Int) *Builder {
	b.body.Request.Value = new(big.Int).Set(value)
	return b
}

// Gas set the inner gas limit.
func (b *Builder) Gas(gas uint64) *Builder {
	b.body.Request.Gas = gas
	return b
}

// Nonce set the replay-protection nonce.
func (b *Builder) Nonce(nonce uint64) *Builder {
	b.body.Request.Nonce = nonce
	return b
}

// Data set the call data.
func (b *Builder) Data(data []byte) *Builder {
	b.body.Request.Data = append([]byte(nil), data...)
	return b
}

// ValidUntil set the expiry time. Zero means no expiry.
func (b *Builder) ValidUntil(t uint64) *Builder {
	b.body.Request.ValidUntil = t
	return b
}

// PctRelayFee set the percentage markup.
func (b *Builder) PctRelayFee(pct uint64) *Builder {
	b.body.Data.PctRelayFee = pct
	return b
}

// BaseRelayFee set the flat base fee.
func (b *Builder) BaseRelayFee(fee *big.Int) *Builder {
	b.body.Data.BaseRelayFee = new(big.Int).Set(fee)
	return b
}

// CalldataGasUsed set the calldata-cost charge.
func (b *Builder) CalldataGasUsed(gas uint64) *Builder {
	b.body.Data.CalldataGasUsed = gas
	return b
}

// MaxFeePerGas set the max total fee rate the client agrees to.
func (b *Builder) MaxFeePerGas(price *big.Int) *Builder {
	b.body.Data.MaxFeePerGas = new(big.Int).Set(price)
	return b
}

// MaxPriorityFee set the max priority fee rate the client agrees to.
func (b *Builder) MaxPriorityFee(price *big.Int) *Builder {
	b.body.Data.MaxPriorityFee = new(big.Int).Set(price)
	return b
}

// RelayWorker set the worker expected to submit this request.
func (b *Builder) RelayWorker(worker gsn.Address) *Builder {
	b.body.Data.RelayWorker = worker
	return b
}

// Forwarder set the forwarding contract address.
func (b *Builder) Forwarder(forwarder gsn.Address) *Builder {
	b.body.Data.Forwarder = forwarder
	return b
}

// Paymaster set the payer address.
func (b *Builder) Paymaster(paymaster gsn.Address) *Builder {
	b.body.Data.Paymaster = paymaster
	return b
}

// PaymasterData set the payer-specific opaque data.
func (b *Builder) PaymasterData(data []byte) *Builder {
	b.body.Data.PaymasterData = append([]byte(nil), data...)
	return b
}

// ClientID set the client-supplied correlation id.
func (b *Builder) ClientID(id *big.Int) *Builder {
	b.body.Data.ClientID = new(big.Int).Set(id)
	return b
}

// Build build the relay request object.
func (b *Builder) Build() *RelayRequest {
	return &RelayRequest{body: b.body}
}
