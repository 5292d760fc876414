// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package clock

import (
	"time"

	"github.com/beevik/ntp"
)

// DefaultNTPServer is queried by CheckOffset when no server is given.
const DefaultNTPServer = "pool.ntp.org"

// QueryFunc asks a time server for the local clock offset.
type QueryFunc func(server string) (time.Duration, error)

// NTPQuery queries server over NTP.
func NTPQuery(server string) (time.Duration, error) {
	resp, err := ntp.Query(server)
	if err != nil {
		return 0, err
	}
	return resp.ClockOffset, nil
}

// CheckOffset reports whether the host clock is within tolerance of the time
// server. Lock deadlines are absolute seconds, so a drifting host shifts every
// unlock by the same drift.
func CheckOffset(query QueryFunc, server string, tolerance time.Duration) (time.Duration, bool, error) {
	if server == "" {
		server = DefaultNTPServer
	}
	offset, err := query(server)
	if err != nil {
		return 0, false, err
	}
	abs := offset
	if abs < 0 {
		abs = -abs
	}
	return offset, abs <= tolerance, nil
}
