// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

// Constants of the staking ledger. Amounts are in base units.
const (
	DecimalsPerToken uint64 = 1_000_000
	StakeMinimum            = 100 * DecimalsPerToken

	DurationMin uint64 = 14  // days
	DurationMax uint64 = 365 // days

	SecondsPerDay     uint64 = 86400
	TestSecondsPerDay uint64 = 60

	DaysPerYear uint64 = 365
)
