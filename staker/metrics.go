// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"github.com/dougstake/dougstake/metrics"
	"github.com/dougstake/dougstake/reverts"
	"github.com/dougstake/dougstake/vaultinfo"
)

var (
	metricActions             = metrics.LazyLoadCounterVec("staker_actions_count", []string{"action", "result"})
	metricTotalValueLocked    = metrics.LazyLoadGauge("staker_total_value_locked")
	metricLifetimeValueLocked = metrics.LazyLoadGauge("staker_lifetime_value_locked")
	metricSettlementFailures  = metrics.LazyLoadCounter("staker_settlement_failures_count")
)

func recordAction(action string, err error) {
	result := "ok"
	if err != nil {
		if code := reverts.CodeOf(err); code != 0 {
			result = code.String()
		} else {
			result = "internal"
		}
	}
	metricActions().AddWithLabel(1, map[string]string{"action": action, "result": result})
}

func recordVaultInfo(info *vaultinfo.Info) {
	// gauges are int64, clamp
	metricTotalValueLocked().Set(int64(min(info.TotalValueLocked, 1<<63-1)))
	metricLifetimeValueLocked().Set(int64(min(info.LifetimeValueLocked, 1<<63-1)))
}
