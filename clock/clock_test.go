// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package clock

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSystem(t *testing.T) {
	now, err := System{}.Now()
	assert.NoError(t, err)
	assert.InDelta(t, time.Now().Unix(), now, 2)
}

func TestManual(t *testing.T) {
	c := NewManual(100)

	now, err := c.Now()
	assert.NoError(t, err)
	assert.Equal(t, int64(100), now)

	assert.Equal(t, int64(160), c.Advance(60))
	c.Set(31_536_000)
	now, _ = c.Now()
	assert.Equal(t, int64(31_536_000), now)

	c.Fail(ErrUnavailable)
	_, err = c.Now()
	assert.ErrorIs(t, err, ErrUnavailable)

	c.Fail(nil)
	_, err = c.Now()
	assert.NoError(t, err)
}

func TestCheckOffset(t *testing.T) {
	var asked string
	query := func(offset time.Duration, err error) QueryFunc {
		return func(server string) (time.Duration, error) {
			asked = server
			return offset, err
		}
	}

	offset, ok, err := CheckOffset(query(-2*time.Second, nil), "", 5*time.Second)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, -2*time.Second, offset)
	assert.Equal(t, DefaultNTPServer, asked)

	_, ok, err = CheckOffset(query(10*time.Second, nil), "time.local", 5*time.Second)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "time.local", asked)

	_, _, err = CheckOffset(query(0, errors.New("timeout")), "", time.Second)
	assert.EqualError(t, err, "timeout")
}
