// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state persists stake records and the vault counters.
//
//	[ Repository ] -- reads --> [ record cache ] --> [ kv.Store ]
//	      |
//	   Stage() -> PutRecord / PutVaultInfo -> Commit (one atomic bulk)
//
// Records live in their own bucket keyed by owner. The vault counters are a
// singleton in the meta bucket. Values are rlp encoded.
package state
