// Copyright (c) 2026 The Gas Station Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package forwarder

import (
	"github.com/pkg/errors"

	"github.com/Mentors4EDU/gsn/gsn"
	"github.com/Mentors4EDU/gsn/runtime"
	"github.com/Mentors4EDU/gsn/state"
	"github.com/Mentors4EDU/gsn/tx"
)

func nonceKey(user gsn.Address) gsn.Bytes32 {
	return gsn.Blake2b([]byte("nonce"), user.Bytes())
}

// Forwarder authenticates relay requests and rewrites the effective caller:
// the recipient observes the originating user, not the relay worker. The
// replay nonce is checked and advanced in the same atomic unit as the
// recipient call.
type Forwarder struct {
	addr     gsn.Address
	state    *state.State
	registry *runtime.Registry
}

// New create a new instance.
func New(addr gsn.Address, st *state.State, registry *runtime.Registry) *Forwarder {
	return &Forwarder{addr, st, registry}
}

// Address returns the forwarder's ledger address.
func (f *Forwarder) Address() gsn.Address {
	return f.addr
}

// GetNonce returns the next expected replay nonce of the given user.
func (f *Forwarder) GetNonce(user gsn.Address) uint64 {
	var nonce uint64
	f.state.GetStructuredStorage(f.addr, nonceKey(user), &nonce)
	return nonce
}

// Verify checks that sig is the originating user's signature over the
// request and that the request carries the user's current nonce.
func (f *Forwarder) Verify(req *tx.RelayRequest, sig []byte) error {
	signer, err := tx.Signer(req, sig)
	if err != nil {
		return err
	}
	request := req.Request()
	if signer != request.From {
		return errors.New("signature mismatch")
	}
	return f.verifyNonce(&request)
}

func (f *Forwarder) verifyNonce(request *tx.ForwardRequest) error {
	if request.Nonce != f.GetNonce(request.From) {
		return errors.New("nonce mismatch")
	}
	return nil
}

// Execute advances the user's nonce and dispatches the recipient call with
// the effective caller rewritten to the originating user. The recipient's
// effects are discarded when it fails, but the nonce advance is kept.
// verifySig is false only for submissions through the trusted zero-signature
// gateway, which authenticates the user upstream.
func (f *Forwarder) Execute(env *runtime.Env, req *tx.RelayRequest, sig []byte, verifySig bool) (success bool, ret []byte, err error) {
	request := req.Request()
	if verifySig {
		if err := f.Verify(req, sig); err != nil {
			return false, nil, err
		}
	} else if err := f.verifyNonce(&request); err != nil {
		return false, nil, err
	}

	f.state.SetStructuredStorage(f.addr, nonceKey(request.From), request.Nonce+1)

	cp := f.state.NewCheckpoint()
	callErr := env.Call(request.From, request.Gas, func(sub *runtime.Env) error {
		if request.Value.Sign() > 0 {
			if !sub.State().SubBalance(f.addr, request.Value) {
				return errors.New("insufficient value escrow")
			}
			sub.State().AddBalance(request.To, request.Value)
		}
		callee, ok := f.registry.Lookup(request.To)
		if !ok {
			// plain transfer to a contract-less account
			return nil
		}
		out, err := callee.Call(sub, request.Value, request.Data)
		ret = out
		return err
	})
	if callErr != nil {
		f.state.RevertTo(cp)
		return false, []byte(callErr.Error()), nil
	}
	return true, ret, nil
}
