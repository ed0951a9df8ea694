// Copyright (c) 2026 The Gas Station Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mentors4EDU/gsn/forwarder"
	"github.com/Mentors4EDU/gsn/gsn"
	"github.com/Mentors4EDU/gsn/hub"
	"github.com/Mentors4EDU/gsn/lvldb"
	"github.com/Mentors4EDU/gsn/penalty"
	"github.com/Mentors4EDU/gsn/runtime"
	"github.com/Mentors4EDU/gsn/stake"
	"github.com/Mentors4EDU/gsn/state"
	"github.com/Mentors4EDU/gsn/tx"
)

type nopRecipient struct{}

func (nopRecipient) Call(env *runtime.Env, _ *big.Int, data []byte) ([]byte, error) {
	return data, nil
}

type openPaymaster struct{}

func (openPaymaster) Limits() runtime.PaymasterLimits {
	return runtime.PaymasterLimits{AcceptanceBudget: 50000, PreRelayedCallGasLimit: 50000, PostRelayedCallGasLimit: 50000}
}

func (openPaymaster) PreRelayedCall(*runtime.Env, *tx.RelayRequest, []byte, []byte, *big.Int) ([]byte, error) {
	return nil, nil
}

func (openPaymaster) PostRelayedCall(*runtime.Env, []byte, bool, uint64, *tx.RelayRequest) error {
	return nil
}

type testServer struct {
	url     string
	hub     *hub.Hub
	manager gsn.Address
	worker  gsn.Address
	pmAddr  gsn.Address
}

func newTestServer(t *testing.T) (*httptest.Server, *testServer, *tx.RelayRequest, []byte) {
	kv, err := lvldb.NewMem()
	require.NoError(t, err)
	st := state.New(kv)

	owner := gsn.BytesToAddress([]byte("owner"))
	manager := gsn.BytesToAddress([]byte("manager"))
	worker := gsn.BytesToAddress([]byte("worker"))
	token := gsn.BytesToAddress([]byte("token"))
	pmAddr := gsn.BytesToAddress([]byte("paymaster"))
	recipientAddr := gsn.BytesToAddress([]byte("recipient"))

	registry := runtime.NewRegistry()
	registry.Register(recipientAddr, nopRecipient{})

	stakes := stake.New(gsn.StakeManagerAddress, st)
	fwd := forwarder.New(gsn.ForwarderAddress, st, registry)
	cfg := hub.DefaultConfig()
	cfg.Owner = owner
	cfg.MaxAcceptanceBudget = 100000
	h := hub.New(gsn.RelayHubAddress, st, stakes, fwd, cfg)

	deposit, _ := new(big.Int).SetString("1000000000000000000", 10)
	st.SetBalance(owner, new(big.Int).Add(deposit, big.NewInt(100000)))
	require.NoError(t, h.SetMinimumStakes(owner, []gsn.Address{token}, []*big.Int{big.NewInt(500)}))
	require.NoError(t, stakes.StakeForManager(owner, manager, token, big.NewInt(1000), cfg.MinimumUnstakeDelay))
	require.NoError(t, stakes.AuthorizeHub(owner, manager, gsn.RelayHubAddress))
	require.NoError(t, h.AddRelayWorkers(manager, []gsn.Address{worker}))
	h.RegisterPaymaster(pmAddr, openPaymaster{})
	require.NoError(t, h.DepositFor(owner, pmAddr, deposit))

	userKey, err := crypto.GenerateKey()
	require.NoError(t, err)

	req := tx.NewBuilder().
		From(gsn.PubkeyToAddress(&userKey.PublicKey)).
		To(recipientAddr).
		Gas(100000).
		Data([]byte("payload")).
		PctRelayFee(10).
		BaseRelayFee(big.NewInt(10000)).
		MaxFeePerGas(big.NewInt(2_000_000_000)).
		MaxPriorityFee(big.NewInt(10)).
		RelayWorker(worker).
		Forwarder(gsn.ForwarderAddress).
		Paymaster(pmAddr).
		Build()
	sig := tx.MustSign(req, userKey)

	srv := httptest.NewServer(New(h, penalty.New(h), Options{AllowedOrigins: "*"}))
	t.Cleanup(srv.Close)

	return srv, &testServer{
		url:     srv.URL,
		hub:     h,
		manager: manager,
		worker:  worker,
		pmAddr:  pmAddr,
	}, req, sig
}

func httpGet(t *testing.T, url string) (int, []byte) {
	t.Helper()
	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, body
}

func httpPost(t *testing.T, url string, obj any) (int, []byte) {
	t.Helper()
	payload, err := json.Marshal(obj)
	require.NoError(t, err)
	res, err := http.Post(url, jsonContentType, bytes.NewReader(payload))
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, body
}

func TestGetEndpoints(t *testing.T) {
	_, ts, _, _ := newTestServer(t)

	code, body := httpGet(t, ts.url+"/ledger/"+ts.pmAddr.String()+"/balance")
	assert.Equal(t, http.StatusOK, code)
	var balance map[string]*math.HexOrDecimal256
	require.NoError(t, json.Unmarshal(body, &balance))
	deposit, _ := new(big.Int).SetString("1000000000000000000", 10)
	assert.Equal(t, deposit, (*big.Int)(balance["balance"]))

	code, body = httpGet(t, ts.url+"/stakes/"+ts.manager.String())
	assert.Equal(t, http.StatusOK, code)
	var info StakeInfo
	require.NoError(t, json.Unmarshal(body, &info))
	assert.Equal(t, big.NewInt(1000), (*big.Int)(info.Amount))
	assert.False(t, info.Penalized)

	code, _ = httpGet(t, ts.url+"/stakes/"+gsn.BytesToAddress([]byte("nobody")).String())
	assert.Equal(t, http.StatusNotFound, code)

	code, body = httpGet(t, ts.url+"/workers/"+ts.worker.String())
	assert.Equal(t, http.StatusOK, code)
	var workerRes map[string]string
	require.NoError(t, json.Unmarshal(body, &workerRes))
	assert.Equal(t, ts.manager.String(), workerRes["manager"])

	code, body = httpGet(t, ts.url+"/hub/config")
	assert.Equal(t, http.StatusOK, code)
	var cfg HubConfig
	require.NoError(t, json.Unmarshal(body, &cfg))
	assert.Equal(t, gsn.RelayHubAddress, cfg.Address)
	assert.Equal(t, gsn.RelayCallGasOverhead, cfg.GasOverhead)

	code, _ = httpGet(t, ts.url+"/ledger/not-an-address/balance")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestPostRelayCall(t *testing.T) {
	_, ts, req, sig := newTestServer(t)

	raw, err := rlp.EncodeToBytes(req)
	require.NoError(t, err)

	call := &RelayCall{
		Caller:              ts.worker,
		RelayRequest:        raw,
		Signature:           sig,
		MaxAcceptanceBudget: 100000,
		Context: CallContext{
			BlockNumber: 1,
			Time:        1000,
			GasPrice:    (*math.HexOrDecimal256)(big.NewInt(1_000_000_000)),
			PriorityFee: (*math.HexOrDecimal256)(big.NewInt(10)),
		},
	}

	code, body := httpPost(t, ts.url+"/relaycalls", call)
	require.Equal(t, http.StatusOK, code, string(body))
	var receipt Receipt
	require.NoError(t, json.Unmarshal(body, &receipt))
	assert.Equal(t, "OK", receipt.Status)
	assert.Equal(t, hexutil.Bytes([]byte("payload")), receipt.ReturnData)
	assert.True(t, (*big.Int)(receipt.Charge).Sign() > 0)

	// replay is an entry rejection
	code, body = httpPost(t, ts.url+"/relaycalls", call)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Contains(t, string(body), "nonce mismatch")
}

func TestPostPenalization(t *testing.T) {
	_, ts, _, _ := newTestServer(t)

	code, body := httpPost(t, ts.url+"/penalizations", &Penalization{Kind: "nonsense"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(body), "unknown evidence kind")

	// garbage evidence is forbidden, not a server error
	code, _ = httpPost(t, ts.url+"/penalizations", &Penalization{
		Kind:        "illegal-tx",
		RawTx:       []byte{0x01},
		Signature:   make([]byte, 65),
		Beneficiary: gsn.BytesToAddress([]byte("reporter")),
	})
	assert.Equal(t, http.StatusForbidden, code)
}
