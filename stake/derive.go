// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

import (
	"golang.org/x/crypto/blake2b"
)

var (
	UserVaultSeed    = []byte("user_vault")
	StakeRecordSeed  = []byte("stake_account")
	VaultInfoSeed    = []byte("vault_info")
	RewardVaultSeed  = []byte("reward_vault")
	deriveDomainSeed = []byte("dougstake")
)

// Blake2b computes blake2b-256 checksum for given data.
func Blake2b(data ...[]byte) (h Address) {
	hasher, _ := blake2b.New256(nil)
	for _, b := range data {
		hasher.Write(b)
	}
	hasher.Sum(h[:0])
	return
}

// DeriveAddress derives a stable handle from seeds. Bumps are tried from 255
// down, the first digest with its high bit clear wins.
func DeriveAddress(seeds ...[]byte) (Address, uint8) {
	parts := make([][]byte, 0, len(seeds)+2)
	parts = append(parts, deriveDomainSeed)
	parts = append(parts, seeds...)
	parts = append(parts, nil)

	bump := [1]byte{}
	for i := 255; i >= 0; i-- {
		bump[0] = byte(i)
		parts[len(parts)-1] = bump[:]
		if h := Blake2b(parts...); h[0]&0x80 == 0 {
			return h, bump[0]
		}
	}
	// unreachable in practice, 256 digests all with the high bit set
	return Blake2b(parts...), 0
}

// UserVault returns the custodial sub-vault handle of owner.
func UserVault(owner Address) (Address, uint8) {
	return DeriveAddress(UserVaultSeed, owner.Bytes())
}

// RewardVault returns the handle of the global reward vault.
func RewardVault() Address {
	addr, _ := DeriveAddress(RewardVaultSeed)
	return addr
}
