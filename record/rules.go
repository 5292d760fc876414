// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package record

import (
	"math"
	"math/bits"

	"github.com/dougstake/dougstake/reverts"
	"github.com/dougstake/dougstake/reward"
	"github.com/dougstake/dougstake/stake"
)

// Rules bundles the configured parameters the transitions depend on.
type Rules struct {
	model         *reward.Model
	secondsPerDay uint64
	tokenMint     *stake.Address
	topUp         bool
}

// NewRules creates rules from a validated config.
func NewRules(cfg stake.Config) *Rules {
	var mint *stake.Address
	if cfg.TokenMint != nil {
		m := *cfg.TokenMint
		mint = &m
	}
	return &Rules{
		model:         reward.New(cfg.APRFactor),
		secondsPerDay: cfg.SecondsPerDay,
		tokenMint:     mint,
		topUp:         cfg.TopUp,
	}
}

// Model returns the reward model.
func (r *Rules) Model() *reward.Model {
	return r.model
}

// SecondsPerDay returns the length of a lock day.
func (r *Rules) SecondsPerDay() uint64 {
	return r.secondsPerDay
}

func (r *Rules) checkMint(mint stake.Address) error {
	if r.tokenMint != nil && *r.tokenMint != mint {
		return reverts.ErrInvalidMint
	}
	return nil
}

// unlockAt returns now shifted by days lock days.
func (r *Rules) unlockAt(now int64, days uint64) (int64, error) {
	hi, secs := bits.Mul64(r.secondsPerDay, days)
	if hi != 0 || secs > math.MaxInt64 || now > math.MaxInt64-int64(secs) {
		return 0, reverts.ErrOverflow
	}
	return now + int64(secs), nil
}

// remainingDays returns the whole lock days left before unlockableAt.
func (r *Rules) remainingDays(unlockableAt, now int64) uint64 {
	if unlockableAt <= now {
		return 0
	}
	return uint64(unlockableAt-now) / r.secondsPerDay
}
