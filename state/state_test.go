// Copyright (c) 2026 The Gas Station Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mentors4EDU/gsn/gsn"
	"github.com/Mentors4EDU/gsn/lvldb"
)

func TestStateBalance(t *testing.T) {
	kv, _ := lvldb.NewMem()
	st := New(kv)

	addr := gsn.BytesToAddress([]byte("a1"))

	assert.Equal(t, &big.Int{}, st.GetBalance(addr))

	st.SetBalance(addr, big.NewInt(100))
	assert.Equal(t, big.NewInt(100), st.GetBalance(addr))

	st.AddBalance(addr, big.NewInt(10))
	assert.Equal(t, big.NewInt(110), st.GetBalance(addr))

	assert.False(t, st.SubBalance(addr, big.NewInt(111)))
	assert.Equal(t, big.NewInt(110), st.GetBalance(addr))

	assert.True(t, st.SubBalance(addr, big.NewInt(110)))
	assert.Equal(t, &big.Int{}, st.GetBalance(addr))
	assert.NoError(t, st.Err())
}

func TestStateRevert(t *testing.T) {
	kv, _ := lvldb.NewMem()
	st := New(kv)

	addr := gsn.BytesToAddress([]byte("a1"))
	key := gsn.BytesToBytes32([]byte("k"))

	st.SetBalance(addr, big.NewInt(10))

	chk := st.NewCheckpoint()
	st.SetBalance(addr, big.NewInt(20))
	st.SetRawStorage(addr, key, []byte("data"))

	assert.Equal(t, big.NewInt(20), st.GetBalance(addr))
	assert.Equal(t, []byte("data"), st.GetRawStorage(addr, key))

	st.RevertTo(chk)
	assert.Equal(t, big.NewInt(10), st.GetBalance(addr))
	assert.Nil(t, st.GetRawStorage(addr, key))
}

func TestStateNestedCheckpoints(t *testing.T) {
	kv, _ := lvldb.NewMem()
	st := New(kv)

	addr := gsn.BytesToAddress([]byte("a1"))
	st.SetBalance(addr, big.NewInt(1))

	outer := st.NewCheckpoint()
	st.SetBalance(addr, big.NewInt(2))

	inner := st.NewCheckpoint()
	st.SetBalance(addr, big.NewInt(3))
	st.RevertTo(inner)
	assert.Equal(t, big.NewInt(2), st.GetBalance(addr))

	st.RevertTo(outer)
	assert.Equal(t, big.NewInt(1), st.GetBalance(addr))
}

func TestStructuredStorage(t *testing.T) {
	kv, _ := lvldb.NewMem()
	st := New(kv)

	addr := gsn.BytesToAddress([]byte("a1"))
	key := gsn.BytesToBytes32([]byte("counter"))

	var v big.Int
	st.GetStructuredStorage(addr, key, &v)
	assert.Equal(t, big.Int{}, v)

	st.SetStructuredStorage(addr, key, big.NewInt(42))

	var loaded big.Int
	st.GetStructuredStorage(addr, key, &loaded)
	assert.Equal(t, *big.NewInt(42), loaded)
	assert.NoError(t, st.Err())
}

func TestStageCommit(t *testing.T) {
	kv, _ := lvldb.NewMem()
	st := New(kv)

	addr := gsn.BytesToAddress([]byte("a1"))
	key := gsn.BytesToBytes32([]byte("k"))

	st.SetBalance(addr, big.NewInt(7))
	st.SetRawStorage(addr, key, []byte("v"))

	// reverted writes must not be committed
	chk := st.NewCheckpoint()
	st.SetBalance(gsn.BytesToAddress([]byte("a2")), big.NewInt(9))
	st.RevertTo(chk)

	stage, err := st.Stage()
	require.NoError(t, err)
	require.NoError(t, stage.Commit())

	// a fresh state over the same kv must observe committed values
	st2 := New(kv)
	assert.Equal(t, big.NewInt(7), st2.GetBalance(addr))
	assert.Equal(t, []byte("v"), st2.GetRawStorage(addr, key))
	assert.Equal(t, &big.Int{}, st2.GetBalance(gsn.BytesToAddress([]byte("a2"))))
}

func TestStateReset(t *testing.T) {
	kv, _ := lvldb.NewMem()
	st := New(kv)

	addr := gsn.BytesToAddress([]byte("a1"))
	st.SetBalance(addr, big.NewInt(5))

	stage, err := st.Stage()
	require.NoError(t, err)
	require.NoError(t, stage.Commit())
	st.Reset()

	assert.Equal(t, big.NewInt(5), st.GetBalance(addr))
	st.AddBalance(addr, big.NewInt(1))
	assert.Equal(t, big.NewInt(6), st.GetBalance(addr))
}
