// Copyright (c) 2026 The Gas Station Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package penalty implements the penalization engine: it verifies evidence of
// relay worker misbehavior over raw submitted transactions and slashes the
// offending manager's stake through the hub.
package penalty

import (
	"math/big"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/Mentors4EDU/gsn/gsn"
)

// RawTx is the decoded form of a worker-submitted ledger transaction, in the
// canonical legacy wire layout. Evidence arrives as the raw unsigned encoding
// plus the worker's signature over its hash.
type RawTx struct {
	Nonce    uint64
	GasPrice *big.Int
	Gas      uint64
	To       gsn.Address
	Value    *big.Int
	Data     []byte
}

// DecodeRawTx decodes the raw wire encoding of an unsigned transaction.
func DecodeRawTx(raw []byte) (*RawTx, error) {
	var tx RawTx
	if err := rlp.DecodeBytes(raw, &tx); err != nil {
		return nil, errors.WithMessage(err, "decode raw tx")
	}
	return &tx, nil
}

// PayloadHash returns the canonical hash of the raw encoding, the hash the
// submitting worker signs.
func PayloadHash(raw []byte) gsn.Bytes32 {
	return gsn.Keccak256(raw)
}

// RecoverSigner recovers the worker address that signed the raw encoding.
func RecoverSigner(raw, sig []byte) (gsn.Address, error) {
	hash := PayloadHash(raw)
	pub, err := crypto.SigToPub(hash.Bytes(), sig)
	if err != nil {
		return gsn.Address{}, errors.WithMessage(err, "recover signer")
	}
	return gsn.PubkeyToAddress(pub), nil
}

// methodID derives the 4-byte call selector of a named hub operation.
func methodID(name string) (id [4]byte) {
	hash := gsn.Keccak256([]byte(name))
	copy(id[:], hash.Bytes()[:4])
	return
}

// Selectors a relay worker is allowed to submit to the hub. Anything else
// from a worker key is proof of misbehavior.
var allowedSelectors = [][4]byte{
	methodID("relayCall"),
	methodID("addRelayWorkers"),
	methodID("registerRelayServer"),
}

// isAllowedCall reports whether the decoded transaction is a call a relay
// worker may legally submit to the given hub address.
func isAllowedCall(tx *RawTx, hubAddr gsn.Address) bool {
	if tx.To != hubAddr {
		return false
	}
	if len(tx.Data) < 4 {
		return false
	}
	var sel [4]byte
	copy(sel[:], tx.Data[:4])
	for _, allowed := range allowedSelectors {
		if sel == allowed {
			return true
		}
	}
	return false
}
