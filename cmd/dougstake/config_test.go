// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dougstake/dougstake/stake"
)

var testMint = stake.BytesToAddress([]byte("mint"))

func ptr[T any](v T) *T { return &v }

func writeConfigFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestMergeConfig(t *testing.T) {
	t.Run("defaults to classic", func(t *testing.T) {
		cfg, err := mergeConfig(nil, nil)
		require.NoError(t, err)
		assert.Equal(t, stake.ClassicConfig(), cfg)
	})

	t.Run("pinned needs a mint", func(t *testing.T) {
		_, err := mergeConfig(nil, &configOverrides{Variant: ptr("pinned")})
		assert.Error(t, err)

		cfg, err := mergeConfig(nil, &configOverrides{Variant: ptr("pinned"), TokenMint: &testMint})
		require.NoError(t, err)
		assert.Equal(t, stake.PinnedConfig(testMint), cfg)
	})

	t.Run("unknown variant", func(t *testing.T) {
		_, err := mergeConfig(&fileConfig{Variant: ptr("turbo")}, nil)
		assert.Error(t, err)
	})

	t.Run("flags override file", func(t *testing.T) {
		fc := &fileConfig{
			APRFactor:     ptr(2.0),
			SecondsPerDay: ptr(uint64(60)),
		}
		cfg, err := mergeConfig(fc, &configOverrides{APRFactor: ptr(0.5)})
		require.NoError(t, err)
		assert.Equal(t, 0.5, cfg.APRFactor)
		assert.Equal(t, uint64(60), cfg.SecondsPerDay)
		assert.False(t, cfg.MintPinned())
	})

	t.Run("invalid result is rejected", func(t *testing.T) {
		_, err := mergeConfig(&fileConfig{APRFactor: ptr(0.0)}, nil)
		assert.Error(t, err)

		_, err = mergeConfig(&fileConfig{SecondsPerDay: ptr(uint64(0))}, nil)
		assert.Error(t, err)

		// top-up without a mint
		_, err = mergeConfig(nil, &configOverrides{TopUp: ptr(true)})
		assert.Error(t, err)
	})

	t.Run("mint on classic pins it", func(t *testing.T) {
		cfg, err := mergeConfig(&fileConfig{TokenMint: &testMint}, nil)
		require.NoError(t, err)
		require.True(t, cfg.MintPinned())
		assert.Equal(t, testMint, *cfg.TokenMint)
		assert.False(t, cfg.TopUp)
	})
}

func TestReadConfigFile(t *testing.T) {
	path := writeConfigFile(t, `
variant: pinned
token-mint: "`+testMint.String()+`"
seconds-per-day: 60
`)
	fc, err := readConfigFile(path)
	require.NoError(t, err)
	require.NotNil(t, fc.Variant)
	assert.Equal(t, "pinned", *fc.Variant)
	require.NotNil(t, fc.TokenMint)
	assert.Equal(t, testMint, *fc.TokenMint)
	assert.Nil(t, fc.APRFactor)

	cfg, err := mergeConfig(fc, nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, cfg.APRFactor)
	assert.Equal(t, uint64(60), cfg.SecondsPerDay)
	assert.True(t, cfg.TopUp)

	_, err = readConfigFile(writeConfigFile(t, "token-mint: nope\n"))
	assert.Error(t, err)

	_, err = readConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
