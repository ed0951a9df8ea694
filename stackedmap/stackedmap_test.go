// Copyright (c) 2026 The Gas Station Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stackedmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Mentors4EDU/gsn/stackedmap"
)

func TestStackedMap(t *testing.T) {
	assert := assert.New(t)
	src := make(map[string]string)
	src["base"] = "from src"

	sm := stackedmap.New(func(key any) (any, bool) {
		v, ok := src[key.(string)]
		return v, ok
	})

	v, ok := sm.Get("base")
	assert.True(ok)
	assert.Equal("from src", v)

	d0 := sm.Push()
	assert.Equal(0, d0)
	sm.Put("k1", "v1")
	v, ok = sm.Get("k1")
	assert.True(ok)
	assert.Equal("v1", v)

	d1 := sm.Push()
	sm.Put("k1", "v1'")
	sm.Put("k2", "v2")
	v, _ = sm.Get("k1")
	assert.Equal("v1'", v)

	sm.PopTo(d1)
	v, _ = sm.Get("k1")
	assert.Equal("v1", v)
	_, ok = sm.Get("k2")
	assert.False(ok)

	sm.Pop()
	_, ok = sm.Get("k1")
	assert.False(ok)
	assert.Equal(0, sm.Depth())
}

func TestStackedMapJournal(t *testing.T) {
	sm := stackedmap.New(func(_ any) (any, bool) { return nil, false })

	sm.Push()
	sm.Put("a", 1)
	chk := sm.Push()
	sm.Put("b", 2)
	sm.PopTo(chk)
	sm.Put("a", 3)

	var journal []any
	sm.Journal(func(k, v any) bool {
		journal = append(journal, k, v)
		return true
	})
	// reverted "b" must not appear
	assert.Equal(t, []any{"a", 1, "a", 3}, journal)
}
