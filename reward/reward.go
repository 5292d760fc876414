// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reward computes the reward reserved for a stake position.
//
// The reward line is evaluated in IEEE-754 binary64 and rounded up, so every
// node evaluating the same (amount, duration, factor) arrives at the same
// base-unit value:
//
//	multiplier = (86400*days / (86400*365)) * factor + 1
//	reward     = ceil(amount * multiplier) - amount
package reward

import (
	"math"

	"github.com/dougstake/dougstake/stake"
)

const (
	secondsPerDay  = 86400
	secondsPerYear = secondsPerDay * stake.DaysPerYear

	// 2^64 as binary64; gross values at or above it do not fit in uint64.
	maxGross = 18446744073709551616.0
)

// Model evaluates the reward line for a fixed APR factor.
type Model struct {
	aprFactor float64
}

// New creates a model with the given slope.
func New(aprFactor float64) *Model {
	return &Model{aprFactor: aprFactor}
}

// APRFactor returns the slope of the reward line.
func (m *Model) APRFactor() float64 {
	return m.aprFactor
}

// Multiplier returns the gross multiplier for a lock of days.
// The explicit float64 conversion is a rounding barrier: it keeps the compiler
// from fusing the multiply and add into one FMA instruction.
func (m *Model) Multiplier(days uint64) float64 {
	unstakeTime := float64(secondsPerDay * days)
	return float64((unstakeTime/float64(secondsPerYear))*m.aprFactor) + 1.0
}

// Rewards returns the base units reserved for amount locked for days.
// The result saturates at the uint64 range and never underflows.
func (m *Model) Rewards(amount, days uint64) uint64 {
	gross := math.Ceil(float64(float64(amount) * m.Multiplier(days)))
	if gross >= maxGross {
		return math.MaxUint64 - amount
	}
	g := uint64(gross)
	if g < amount {
		// amounts above 2^53 lose precision on the way into binary64
		return 0
	}
	return g - amount
}
