// Copyright (c) 2026 The Gas Station Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package penalty

import (
	"github.com/pkg/errors"

	"github.com/Mentors4EDU/gsn/gsn"
	"github.com/Mentors4EDU/gsn/hub"
	"github.com/Mentors4EDU/gsn/log"
	"github.com/Mentors4EDU/gsn/metrics"
)

var (
	logger = log.WithContext("pkg", "penalty")

	metricPenalizations = metrics.LazyLoadCounterVec("penalization_count", []string{"kind"})
)

// Penalizer verifies misbehavior evidence and dispatches the slash.
type Penalizer struct {
	addr gsn.Address
	hub  *hub.Hub
}

// New create a new instance.
func New(h *hub.Hub) *Penalizer {
	return &Penalizer{addr: gsn.PenalizerAddress, hub: h}
}

// PenalizeRepeatedNonce slashes the manager of a worker that signed two
// different transactions carrying the same nonce. The evidence is the two raw
// unsigned encodings and the worker's signature over each.
func (p *Penalizer) PenalizeRepeatedNonce(raw1, sig1, raw2, sig2 []byte, beneficiary gsn.Address) error {
	tx1, err := DecodeRawTx(raw1)
	if err != nil {
		return err
	}
	tx2, err := DecodeRawTx(raw2)
	if err != nil {
		return err
	}
	signer1, err := RecoverSigner(raw1, sig1)
	if err != nil {
		return err
	}
	signer2, err := RecoverSigner(raw2, sig2)
	if err != nil {
		return err
	}

	if signer1 != signer2 {
		return errors.New("transactions are from different signers")
	}
	if tx1.Nonce != tx2.Nonce {
		return errors.New("nonces differ")
	}
	if PayloadHash(raw1) == PayloadHash(raw2) {
		return errors.New("transactions are identical")
	}

	if err := p.hub.Penalize(p.addr, signer1, beneficiary); err != nil {
		return err
	}
	metricPenalizations().AddWithLabel(1, map[string]string{"kind": "repeated-nonce"})
	logger.Warn("penalized repeated nonce", "worker", signer1, "nonce", tx1.Nonce)
	return nil
}

// PenalizeIllegalTransaction slashes the manager of a worker that signed a
// transaction outside the allowed hub operations: a foreign target, or a
// selector a relay worker must never submit.
func (p *Penalizer) PenalizeIllegalTransaction(raw, sig []byte, beneficiary gsn.Address) error {
	tx, err := DecodeRawTx(raw)
	if err != nil {
		return err
	}
	signer, err := RecoverSigner(raw, sig)
	if err != nil {
		return err
	}
	if isAllowedCall(tx, p.hub.Address()) {
		return errors.New("transaction is legal")
	}

	if err := p.hub.Penalize(p.addr, signer, beneficiary); err != nil {
		return err
	}
	metricPenalizations().AddWithLabel(1, map[string]string{"kind": "illegal-tx"})
	logger.Warn("penalized illegal transaction", "worker", signer, "to", tx.To)
	return nil
}
