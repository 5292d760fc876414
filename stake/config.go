// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// Config selects the ledger variant. The classic build has no mint pinning and
// no top-up, the pinned build has both.
type Config struct {
	APRFactor     float64  `yaml:"apr-factor"`
	SecondsPerDay uint64   `yaml:"seconds-per-day"`
	TokenMint     *Address `yaml:"token-mint"`
	TopUp         bool     `yaml:"top-up"`
}

// ClassicConfig is the higher-yield variant without mint pinning.
func ClassicConfig() Config {
	return Config{
		APRFactor:     3.0,
		SecondsPerDay: SecondsPerDay,
	}
}

// PinnedConfig is the lower-yield variant pinned to a single mint, with top-up enabled.
func PinnedConfig(mint Address) Config {
	return Config{
		APRFactor:     1.0,
		SecondsPerDay: SecondsPerDay,
		TokenMint:     &mint,
		TopUp:         true,
	}
}

// ConfigByVariant returns the preset for the named variant.
func ConfigByVariant(name string, mint *Address) (Config, error) {
	switch name {
	case "", "classic":
		return ClassicConfig(), nil
	case "pinned":
		if mint == nil {
			return Config{}, errors.New("pinned variant requires a token mint")
		}
		return PinnedConfig(*mint), nil
	default:
		return Config{}, fmt.Errorf("unknown variant %q", name)
	}
}

// MintPinned returns whether requests must assert the configured mint.
func (c *Config) MintPinned() bool {
	return c.TokenMint != nil
}

// Validate checks the config for values the reward model cannot handle.
func (c *Config) Validate() error {
	if math.IsNaN(c.APRFactor) || math.IsInf(c.APRFactor, 0) || c.APRFactor <= 0 {
		return errors.Errorf("invalid apr factor %v", c.APRFactor)
	}
	if c.SecondsPerDay == 0 {
		return errors.New("seconds per day must be positive")
	}
	if c.TopUp && c.TokenMint == nil {
		return errors.New("top-up requires a token mint")
	}
	return nil
}

func (c Config) String() string {
	mint := "none"
	if c.TokenMint != nil {
		mint = c.TokenMint.AbbrevString()
	}
	return fmt.Sprintf("apr=%v secondsPerDay=%v mint=%v topUp=%v", c.APRFactor, c.SecondsPerDay, mint, c.TopUp)
}
