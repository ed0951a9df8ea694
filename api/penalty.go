// Copyright (c) 2026 The Gas Station Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/Mentors4EDU/gsn/penalty"
)

// PenaltyAPI exposes the penalization evidence entry point.
type PenaltyAPI struct {
	penalizer *penalty.Penalizer
}

// NewPenaltyAPI create a new instance.
func NewPenaltyAPI(p *penalty.Penalizer) *PenaltyAPI {
	return &PenaltyAPI{p}
}

func (a *PenaltyAPI) handlePenalize(w http.ResponseWriter, req *http.Request) error {
	var evidence Penalization
	if err := parseJSON(req.Body, &evidence); err != nil {
		return badRequest(errors.WithMessage(err, "body"))
	}

	var err error
	switch evidence.Kind {
	case "repeated-nonce":
		err = a.penalizer.PenalizeRepeatedNonce(
			evidence.RawTx, evidence.Signature,
			evidence.RawTx2, evidence.Signature2,
			evidence.Beneficiary)
	case "illegal-tx":
		err = a.penalizer.PenalizeIllegalTransaction(
			evidence.RawTx, evidence.Signature, evidence.Beneficiary)
	default:
		return badRequest(errors.New("unknown evidence kind"))
	}
	if err != nil {
		return forbidden(err)
	}
	return writeJSON(w, map[string]bool{"penalized": true})
}

// Mount attaches the penalization endpoint to the router.
func (a *PenaltyAPI) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("/penalizations").Methods("POST").HandlerFunc(wrapHandlerFunc(a.handlePenalize))
}
