// Copyright (c) 2026 The Gas Station Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/crypto"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/Mentors4EDU/gsn/gsn"
)

var signerCache, _ = lru.New(1024)

// Sign signs a relay request using the provided private key.
// It returns the 65-byte [R || S || V] signature.
func Sign(req *RelayRequest, pk *ecdsa.PrivateKey) ([]byte, error) {
	hash := req.SigningHash()
	sig, err := crypto.Sign(hash.Bytes(), pk)
	if err != nil {
		return nil, errors.Wrap(err, "unable to sign relay request")
	}
	return sig, nil
}

// MustSign signs a relay request and panics if the signing fails.
func MustSign(req *RelayRequest, pk *ecdsa.PrivateKey) []byte {
	sig, err := Sign(req, pk)
	if err != nil {
		panic(err)
	}
	return sig
}

// Signer recovers the account that signed the given relay request.
// Recovered addresses are cached by (signing hash, signature).
func Signer(req *RelayRequest, sig []byte) (gsn.Address, error) {
	if len(sig) != 65 {
		return gsn.Address{}, errors.New("invalid signature length")
	}
	hash := req.SigningHash()

	cacheKey := gsn.Blake2b(hash.Bytes(), sig)
	if cached, ok := signerCache.Get(cacheKey); ok {
		return cached.(gsn.Address), nil
	}

	pub, err := crypto.SigToPub(hash.Bytes(), sig)
	if err != nil {
		return gsn.Address{}, errors.Wrap(err, "recover relay request signer")
	}
	signer := gsn.PubkeyToAddress(pub)
	signerCache.Add(cacheKey, signer)
	return signer, nil
}
